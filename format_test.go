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

package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		delim byte
		want  bool
	}{
		{name: "plain word", in: "hello", delim: ',', want: false},
		{name: "inner space", in: "hello world", delim: ',', want: false},
		{name: "empty", in: "", delim: ',', want: true},
		{name: "leading space", in: " x", delim: ',', want: true},
		{name: "trailing space", in: "x ", delim: ',', want: true},
		{name: "colon", in: "a:b", delim: ',', want: true},
		{name: "double quote", in: `a"b`, delim: ',', want: true},
		{name: "backslash", in: `a\b`, delim: ',', want: true},
		{name: "newline", in: "a\nb", delim: ',', want: true},
		{name: "carriage return", in: "a\rb", delim: ',', want: true},
		{name: "tab always quoted", in: "a\tb", delim: ',', want: true},
		{name: "open bracket", in: "a[b", delim: ',', want: true},
		{name: "close brace", in: "a}b", delim: ',', want: true},
		{name: "active delimiter comma", in: "a,b", delim: ',', want: true},
		{name: "inactive comma under pipe", in: "a,b", delim: '|', want: false},
		{name: "active delimiter pipe", in: "a|b", delim: '|', want: true},
		{name: "inactive pipe under comma", in: "a|b", delim: ',', want: false},
		{name: "reserved true", in: "true", delim: ',', want: true},
		{name: "reserved false", in: "false", delim: ',', want: true},
		{name: "reserved null", in: "null", delim: ',', want: true},
		{name: "reserved is exact match only", in: "truest", delim: ',', want: false},
		{name: "integer", in: "42", delim: ',', want: true},
		{name: "negative decimal", in: "-3.14", delim: ',', want: true},
		{name: "exponent", in: "1e5", delim: ',', want: true},
		{name: "signed exponent", in: "-2E+10", delim: ',', want: true},
		{name: "leading zero run", in: "007", delim: ',', want: true},
		{name: "version-ish is not a number", in: "1.2.3", delim: ',', want: false},
		{name: "array header", in: "[5]", delim: ',', want: true},
		{name: "brace group", in: "{key}", delim: ',', want: true},
		{name: "inline array form", in: "[2]:x", delim: ',', want: true},
		{name: "list marker", in: "- item", delim: ',', want: true},
		{name: "lone dash", in: "-", delim: ',', want: true},
		{name: "dash prefix", in: "-item", delim: ',', want: true},
		{name: "inner dash", in: "x-y", delim: ',', want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, needsQuotes(tt.in, tt.delim))
		})
	}
}

func TestEscapeAndQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: `""`},
		{in: "plain", want: `"plain"`},
		{in: `say "hi"`, want: `"say \"hi\""`},
		{in: `back\slash`, want: `"back\\slash"`},
		{in: "line\nbreak", want: `"line\nbreak"`},
		{in: "car\rreturn", want: `"car\rreturn"`},
		{in: "tab\tstop", want: `"tab\tstop"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeAndQuote(tt.in))
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "round trip escapes", in: `"say \"hi\"\n"`, want: "say \"hi\"\n"},
		{name: "unknown escape is literal", in: `"a\qb"`, want: "aqb"},
		{name: "not quoted passes through", in: "plain", want: "plain"},
		{name: "single quote char passes through", in: `"`, want: `"`},
		{name: "empty quoted", in: `""`, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unquote(tt.in))
		})
	}
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "id", want: "id"},
		{in: "_private", want: "_private"},
		{in: "dotted.path", want: "dotted.path"},
		{in: "Ada99", want: "Ada99"},
		{in: "", want: `""`},
		{in: "9lives", want: `"9lives"`},
		{in: "full name", want: `"full name"`},
		{in: "order:id", want: `"order:id"`},
		{in: "dash-key", want: `"dash-key"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatKey(tt.in))
	}
}

func TestEscapeUnquoteInverse(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "plain", `with "quotes"`, `back\slashes\\double`,
		"multi\nline\r\ttabbed", `mixed "q" and \n literal`,
	}
	for _, s := range inputs {
		assert.Equal(t, s, unquote(escapeAndQuote(s)), "input %q", s)
	}
}
