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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/toon"
)

func TestDetectMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  mode
	}{
		{input: "", want: modeEncode},
		{input: "-", want: modeEncode},
		{input: "data.json", want: modeEncode},
		{input: "data.JSON", want: modeEncode},
		{input: "config.yaml", want: modeEncode},
		{input: "config.yml", want: modeEncode},
		{input: "data.toon", want: modeDecode},
		{input: "notes.txt", want: modeDecode},
		{input: "noextension", want: modeDecode},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectMode(tt.input), "input %q", tt.input)
	}
}

func TestInputFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, formatJSON, inputFormat("data.json"))
	assert.Equal(t, formatJSON, inputFormat(""))
	assert.Equal(t, formatYAML, inputFormat("config.yaml"))
	assert.Equal(t, formatYAML, inputFormat("config.yml"))
}

func TestConvert_EncodeJSON(t *testing.T) {
	t.Parallel()

	out, stats, err := convert(
		[]byte(`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`),
		convertRequest{mode: modeEncode, format: formatJSON},
	)
	require.NoError(t, err)
	assert.Nil(t, stats)
	assert.Equal(t, "users[2]{id,name}:\n  1,Alice\n  2,Bob", string(out))
}

func TestConvert_EncodeYAML(t *testing.T) {
	t.Parallel()

	out, _, err := convert(
		[]byte("tags:\n  - a\n  - b\n"),
		convertRequest{mode: modeEncode, format: formatYAML},
	)
	require.NoError(t, err)
	assert.Equal(t, "tags[2]: a,b", string(out))
}

func TestConvert_Decode(t *testing.T) {
	t.Parallel()

	out, stats, err := convert(
		[]byte("users[2]{id,name}:\n  1,Alice\n  2,Bob"),
		convertRequest{mode: modeDecode},
	)
	require.NoError(t, err)
	assert.Nil(t, stats)
	assert.Equal(t, `{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`, string(out))
}

func TestConvert_Options(t *testing.T) {
	t.Parallel()

	out, _, err := convert(
		[]byte(`{"tags":["a","b"]}`),
		convertRequest{
			mode:   modeEncode,
			format: formatJSON,
			options: []toon.Option{
				toon.WithDelimiter(toon.Pipe),
				toon.WithLengthMarker(true),
			},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "tags[#2|]: a|b", string(out))
}

func TestConvert_Stats(t *testing.T) {
	t.Parallel()

	in := []byte(`{"tags":["a","b","c"]}`)
	_, stats, err := convert(in, convertRequest{mode: modeEncode, format: formatJSON, stats: true})
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, len(in)/4+10, stats.inputTokens)
	assert.Positive(t, stats.outputTokens)
}

func TestConvert_DecodeError(t *testing.T) {
	t.Parallel()

	_, _, err := convert([]byte("[bogus"), convertRequest{mode: modeDecode})
	require.Error(t, err)

	var decErr *toon.DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestTokenStats_Savings(t *testing.T) {
	t.Parallel()

	stats := &tokenStats{inputTokens: 100, outputTokens: 60}
	assert.Equal(t, 40, stats.savingsPercent())

	zero := &tokenStats{}
	assert.Equal(t, 0, zero.savingsPercent())
}

func TestDelimiterFlag(t *testing.T) {
	t.Parallel()

	var f delimiterFlag
	require.NoError(t, f.Set("|"))
	assert.Equal(t, toon.Pipe, f.value)
	require.NoError(t, f.Set(`\t`))
	assert.Equal(t, toon.Tab, f.value)
	assert.Equal(t, `\t`, f.String())
	assert.Error(t, f.Set("x"))
}
