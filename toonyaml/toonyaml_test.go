// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package toonyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/toon"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("zebra: 1\nalpha: 2\nmango: 3\n"))
	require.NoError(t, err)
	require.Equal(t, toon.KindMap, v.Kind())
	assert.Equal(t, []string{"zebra", "alpha", "mango"}, v.Map().Keys())
}

func TestDecode_Scalars(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("str: hello\nnum: 42\ndec: 2.5\nflag: true\nnothing: null\nquoted: \"42\"\n"))
	require.NoError(t, err)
	m := v.Map()

	get := func(key string) toon.Value {
		val, ok := m.Get(key)
		require.True(t, ok, "missing %q", key)
		return val
	}

	assert.True(t, get("str").Equal(toon.Str("hello")))
	assert.True(t, get("num").Equal(toon.Int(42)))
	assert.Equal(t, toon.KindDecimal, get("dec").Kind())
	assert.Equal(t, "2.5", get("dec").Decimal().String())
	assert.True(t, get("flag").Equal(toon.Bool(true)))
	assert.True(t, get("nothing").Equal(toon.Null()))
	assert.True(t, get("quoted").Equal(toon.Str("42")))
}

func TestDecode_NonFiniteFloats(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("a: .nan\nb: .inf\nc: -.inf\n"))
	require.NoError(t, err)
	m := v.Map()
	for _, key := range []string{"a", "b", "c"} {
		val, ok := m.Get(key)
		require.True(t, ok)
		assert.True(t, val.Equal(toon.Null()), "key %q", key)
	}
}

func TestDecode_Sequences(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("- 1\n- two\n- false\n"))
	require.NoError(t, err)
	require.Equal(t, toon.KindList, v.Kind())
	items := v.Items()
	require.Len(t, items, 3)
	assert.True(t, items[0].Equal(toon.Int(1)))
	assert.True(t, items[1].Equal(toon.Str("two")))
	assert.True(t, items[2].Equal(toon.Bool(false)))
}

func TestDecode_Anchors(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("base: &b 7\ncopy: *b\n"))
	require.NoError(t, err)
	m := v.Map()
	cp, ok := m.Get("copy")
	require.True(t, ok)
	assert.True(t, cp.Equal(toon.Int(7)))
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	v, err := Decode(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(toon.Null()))
}

func TestEncode_InsertionOrder(t *testing.T) {
	t.Parallel()

	m := toon.NewMap().
		Set("zebra", toon.Int(1)).
		Set("alpha", toon.Str("two"))
	out, err := Encode(toon.Object(m))
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\nalpha: two\n", string(out))
}

func TestEncode_AmbiguousStringStaysString(t *testing.T) {
	t.Parallel()

	out, err := Encode(toon.Object(toon.NewMap().Set("v", toon.Str("42"))))
	require.NoError(t, err)

	back, err := Decode(out)
	require.NoError(t, err)
	v, ok := back.Map().Get("v")
	require.True(t, ok)
	assert.True(t, v.Equal(toon.Str("42")))
}

func TestBridge_ToTOON(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte("users:\n  - id: 1\n    name: Alice\n  - id: 2\n    name: Bob\n"))
	require.NoError(t, err)
	assert.Equal(t, "users[2]{id,name}:\n  1,Alice\n  2,Bob", toon.Encode(v))
}
