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
	"regexp"
	"strings"
)

// The formatter decides when strings must be quoted. Keys are bare only when
// they match the identifier grammar; values are quoted whenever leaving them
// bare would collide with TOON structure, the active delimiter, or a literal.

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

	// Signed decimal with optional fraction and exponent, or a leading-zero
	// digit run such as "007".
	numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$|^0\d+$`)

	// Array headers, brace groups, inline array forms, and list markers.
	structuralPattern = regexp.MustCompile(`^(\[\d+]|\{.+}|\[\d+]:.+|- .+)`)
)

// isIdentifier reports whether s may appear as a bare key.
func isIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// needsQuotes reports whether a string value must be quoted under the given
// delimiter.
func needsQuotes(s string, delim byte) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		return true
	}
	if strings.ContainsAny(s, ":\"\\\n\r\t[]{}") {
		return true
	}
	if strings.IndexByte(s, delim) >= 0 {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if numberPattern.MatchString(s) {
		return true
	}
	if structuralPattern.MatchString(s) {
		return true
	}
	return strings.HasPrefix(s, "-")
}

// escapeAndQuote surrounds s with double quotes, escaping quotes,
// backslashes, newlines, carriage returns, and tabs. Other characters pass
// through unchanged.
func escapeAndQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// formatString formats a string value, quoting only when required under the
// active delimiter.
func formatString(s string, delim byte) string {
	if needsQuotes(s, delim) {
		return escapeAndQuote(s)
	}
	return s
}

// formatKey formats an object key, quoting unless it is a bare identifier.
// The empty key is always quoted.
func formatKey(key string) string {
	if isIdentifier(key) {
		return key
	}
	return escapeAndQuote(key)
}

// unescapeChar decodes the character following a backslash. Unknown escapes
// yield the character itself.
func unescapeChar(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

// unquote strips surrounding double quotes from s and decodes escapes. It
// returns s unchanged when it is not quoted.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	var sb strings.Builder
	sb.Grow(len(inner))
	escaped := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if escaped {
			sb.WriteByte(unescapeChar(c))
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
