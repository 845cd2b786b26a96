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

import "fmt"

// Delimiter selects the separator used in inline arrays, tabular rows, and
// tabular key headers.
type Delimiter int

const (
	// Comma separates values with ',' and leaves array headers undecorated.
	Comma Delimiter = iota

	// Tab separates values with a tab; headers carry the tab inside the
	// brackets, e.g. "[3\t]".
	Tab

	// Pipe separates values with '|'; headers carry it, e.g. "[3|]".
	Pipe
)

// byte returns the delimiter character.
func (d Delimiter) byte() byte {
	switch d {
	case Tab:
		return '\t'
	case Pipe:
		return '|'
	default:
		return ','
	}
}

// indicator returns the character placed inside array header brackets:
// empty for the comma delimiter, the literal character otherwise.
func (d Delimiter) indicator() string {
	if d == Comma {
		return ""
	}
	return string(d.byte())
}

// String returns the delimiter as a one-character string.
func (d Delimiter) String() string {
	return string(d.byte())
}

// ParseDelimiter converts a delimiter spelling to a Delimiter. It accepts
// ",", "|", a literal tab, and the escaped spelling "\t".
func ParseDelimiter(s string) (Delimiter, error) {
	switch s {
	case ",":
		return Comma, nil
	case "\t", `\t`:
		return Tab, nil
	case "|":
		return Pipe, nil
	default:
		return Comma, fmt.Errorf("%w: %q (use one of %q, %q, %q)", ErrUnknownDelimiter, s, ",", "|", `\t`)
	}
}

// DefaultIndent is the number of spaces per nesting level unless overridden
// with WithIndent.
const DefaultIndent = 2

// Options configures encoding and decoding.
//
// Options are applied per call via functional options; a fresh Options is
// built for every Encode and Decode, so Option values are safe to share
// across goroutines.
type Options struct {
	// Indent is the number of spaces per nesting level. Minimum 1.
	Indent int

	// Delimiter separates inline and tabular row values.
	Delimiter Delimiter

	// LengthMarker prefixes array header sizes with '#'.
	LengthMarker bool

	// Strict rejects malformed input during decoding. When false, the
	// decoder replaces unparseable nodes with null and keeps going.
	Strict bool
}

// Option configures a single Encode or Decode call.
type Option func(*Options)

// WithIndent sets the spaces per nesting level. Values below 1 are ignored.
func WithIndent(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Indent = n
		}
	}
}

// WithDelimiter selects the value separator.
func WithDelimiter(d Delimiter) Option {
	return func(o *Options) {
		o.Delimiter = d
	}
}

// WithLengthMarker toggles the '#' prefix on array header sizes.
func WithLengthMarker(on bool) Option {
	return func(o *Options) {
		o.LengthMarker = on
	}
}

// WithStrict toggles strict decoding. Strict is the default; pass false for
// best-effort decoding of malformed input.
func WithStrict(on bool) Option {
	return func(o *Options) {
		o.Strict = on
	}
}

func applyOptions(opts []Option) Options {
	cfg := Options{
		Indent:    DefaultIndent,
		Delimiter: Comma,
		Strict:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
