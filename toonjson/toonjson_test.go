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

package toonjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/toon"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"zebra":1,"alpha":2,"mango":3}`))
	require.NoError(t, err)
	require.Equal(t, toon.KindMap, v.Kind())
	assert.Equal(t, []string{"zebra", "alpha", "mango"}, v.Map().Keys())
}

func TestDecode_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want toon.Value
	}{
		{name: "null", in: `null`, want: toon.Null()},
		{name: "bool", in: `true`, want: toon.Bool(true)},
		{name: "integer", in: `42`, want: toon.Int(42)},
		{name: "negative integer", in: `-7`, want: toon.Int(-7)},
		{name: "string", in: `"hi"`, want: toon.Str("hi")},
		{name: "escapes", in: `"a\nb"`, want: toon.Str("a\nb")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(v), "want %s got %s", tt.want, v)
		})
	}
}

func TestDecode_Numbers(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"a":3.14,"b":1e3,"c":2}`))
	require.NoError(t, err)
	m := v.Map()

	a, _ := m.Get("a")
	assert.Equal(t, toon.KindDecimal, a.Kind())
	assert.Equal(t, "3.14", a.Decimal().String())

	b, _ := m.Get("b")
	assert.Equal(t, toon.KindDecimal, b.Kind())
	assert.True(t, b.Decimal().IsInteger())

	c, _ := m.Get("c")
	assert.Equal(t, toon.KindInt, c.Kind())
}

func TestDecode_Nested(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`))
	require.NoError(t, err)

	users, ok := v.Map().Get("users")
	require.True(t, ok)
	require.Equal(t, toon.KindList, users.Kind())
	require.Len(t, users.Items(), 2)

	first := users.Items()[0].Map()
	assert.Equal(t, []string{"id", "name"}, first.Keys())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = Decode([]byte(`1 2`))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestEncode_InsertionOrder(t *testing.T) {
	t.Parallel()

	m := toon.NewMap().
		Set("zebra", toon.Int(1)).
		Set("alpha", toon.Str("two")).
		Set("nested", toon.Object(toon.NewMap().Set("b", toon.Null()).Set("a", toon.Bool(false))))

	out, err := Encode(toon.Object(m))
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"alpha":"two","nested":{"b":null,"a":false}}`, string(out))
}

func TestEncodeIndent(t *testing.T) {
	t.Parallel()

	out, err := EncodeIndent(toon.Object(toon.NewMap().Set("a", toon.Int(1))), "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := `{"id":123,"name":"Ada","scores":[1,2.5,null],"meta":{"z":true,"a":"x"}}`
	v, err := Decode([]byte(in))
	require.NoError(t, err)

	out, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestBridge_ToTOONAndBack(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"users":[{"id":1,"name":"Alice","role":"admin"},{"id":2,"name":"Bob","role":"user"}]}`))
	require.NoError(t, err)

	text := toon.Encode(v)
	assert.Equal(t, "users[2]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user", text)

	back, err := toon.Decode(text)
	require.NoError(t, err)

	out, err := Encode(back)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[{"id":1,"name":"Alice","role":"admin"},{"id":2,"name":"Bob","role":"user"}]}`, string(out))
}
