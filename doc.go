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

// Package toon implements TOON (Token-Oriented Object Notation), a compact
// indentation-based text format for embedding structured data into language
// model prompts with fewer tokens than JSON.
//
// TOON encodes the same tree of values JSON does, but uses whitespace for
// nesting, leaves strings unquoted where unambiguous, declares array lengths
// and field names once per array, and lays uniform object arrays out as
// delimiter-separated rows:
//
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//
// # Quick Start
//
// Encode any Go value and decode TOON text back into the [Value] model:
//
//	out, err := toon.Marshal(map[string]any{"tags": []string{"a", "b"}})
//	// tags[2]: a,b
//
//	v, err := toon.Decode("id: 1\nname: Ada")
//
// Values are a tagged variant over null, booleans, 64-bit integers,
// arbitrary-precision decimals, strings, lists, and insertion-ordered maps.
// Construct them directly when order matters:
//
//	m := toon.NewMap().Set("id", toon.Int(1)).Set("name", toon.Str("Ada"))
//	text := toon.Encode(toon.Object(m))
//
// # Options
//
// Encoding and decoding accept functional options:
//
//	toon.Encode(v,
//	    toon.WithDelimiter(toon.Tab),
//	    toon.WithLengthMarker(true),
//	)
//
// [WithIndent] sets the spaces per nesting level, [WithDelimiter] selects the
// row separator (comma, tab, or pipe), [WithLengthMarker] prefixes array
// sizes with '#', and [WithStrict] toggles between rejecting malformed input
// and best-effort decoding.
//
// # Host Bridges
//
// The codec itself never parses JSON or YAML. The rivaas.dev/toon/toonjson
// and rivaas.dev/toon/toonyaml packages bridge those formats to the Value
// model while preserving object key order.
//
// Encode and Decode are pure functions with no shared state; they are safe
// for concurrent use from multiple goroutines.
package toon
