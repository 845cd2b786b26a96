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
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decode parses TOON text into a Value. Empty or blank input decodes to
// null.
//
// In strict mode (the default) malformed input returns a [DecodeError] and
// no partial value. With [WithStrict](false) the decoder replaces locally
// unparseable nodes with null and keeps going.
func Decode(text string, opts ...Option) (Value, error) {
	cfg := applyOptions(opts)
	if trimASCII(text) == "" {
		return Null(), nil
	}

	raw := strings.Split(strings.TrimRight(text, " \t\r\n"), "\n")
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	start := 0
	for start < len(raw) && trimASCII(raw[start]) == "" {
		start++
	}

	d := &decoder{
		lines: raw[start:],
		base:  start,
		opts:  cfg,
		delim: cfg.Delimiter.byte(),
	}
	return d.parseDocument()
}

// Unmarshal is Decode for byte slices.
func Unmarshal(data []byte, opts ...Option) (Value, error) {
	return Decode(string(data), opts...)
}

// trimASCII trims ASCII whitespace only. Unicode spaces are content: a bare
// string starting with U+00A0 must survive a round trip.
func trimASCII(s string) string {
	return strings.Trim(s, " \t\r\n")
}

// decoder holds the per-call parsing state: the line array, a monotonically
// advancing cursor, and the options. The cursor never rewinds; nested-value
// detection peeks at lines[line+1].
type decoder struct {
	lines []string
	line  int
	base  int
	opts  Options
	delim byte
}

// lineNum reports the 1-based line number of the cursor in the original
// input.
func (d *decoder) lineNum() int {
	return d.base + d.line + 1
}

// depth measures a line's indentation in whole units of the configured
// indent size.
func (d *decoder) depth(line string) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i / d.opts.Indent
}

// content strips depth indent units from the front of a line.
func (d *decoder) content(line string, depth int) string {
	return line[depth*d.opts.Indent:]
}

// parseDocument dispatches on the first content line: root array headers,
// keyed arrays, key-value pairs, or a bare scalar.
func (d *decoder) parseDocument() (Value, error) {
	if d.line >= len(d.lines) {
		return Null(), nil
	}

	line := d.lines[d.line]
	if d.depth(line) > 0 {
		if d.opts.Strict {
			return Value{}, decodeErr(d.lineNum(), ErrUnexpectedIndent, "unexpected indentation at root")
		}
		return Null(), nil
	}

	if strings.HasPrefix(line, "[") {
		return d.parseArray(line, 0)
	}

	if key, rest, ok := d.splitKeyedArray(line); ok {
		arr, err := d.parseArray(rest, 0)
		if err != nil {
			return Value{}, err
		}
		obj := NewMap().Set(key, arr)
		if err := d.collectRootFields(obj); err != nil {
			return Value{}, err
		}
		return Object(obj), nil
	}

	if colon := findUnquotedColon(line); colon > 0 {
		key := unquote(trimASCII(line[:colon]))
		value := trimASCII(line[colon+1:])
		obj := NewMap()
		if err := d.keyValueInto(obj, key, value, 0); err != nil {
			return Value{}, err
		}
		if err := d.collectRootFields(obj); err != nil {
			return Value{}, err
		}
		return Object(obj), nil
	}

	d.line++
	return d.scalarText(trimASCII(line)), nil
}

// collectRootFields consumes further depth-0 key-value pairs and keyed
// arrays after the first root field.
func (d *decoder) collectRootFields(obj *Map) error {
	for d.line < len(d.lines) {
		line := d.lines[d.line]
		if d.depth(line) != 0 {
			return nil
		}

		if key, rest, ok := d.splitKeyedArray(line); ok {
			arr, err := d.parseArray(rest, 0)
			if err != nil {
				return err
			}
			obj.Set(key, arr)
			continue
		}

		colon := findUnquotedColon(line)
		if colon <= 0 {
			return nil
		}
		key := unquote(trimASCII(line[:colon]))
		value := trimASCII(line[colon+1:])
		if err := d.keyValueInto(obj, key, value, 0); err != nil {
			return err
		}
	}
	return nil
}

// keyValueInto stores one key-value pair, peeking one line ahead to decide
// between an inline scalar and a nested map body.
func (d *decoder) keyValueInto(m *Map, key, raw string, depth int) error {
	if d.line+1 < len(d.lines) && d.depth(d.lines[d.line+1]) > depth {
		d.line++
		nested, err := d.parseBlockMap(depth)
		if err != nil {
			return err
		}
		m.Set(key, nested)
		return nil
	}
	m.Set(key, d.scalarText(raw))
	d.line++
	return nil
}

// parseBlockMap parses the map body below a "key:" line. Lines at
// parentDepth+1 become fields; anything at parentDepth or above ends the
// block.
func (d *decoder) parseBlockMap(parentDepth int) (Value, error) {
	obj := NewMap()
	for d.line < len(d.lines) {
		line := d.lines[d.line]
		depth := d.depth(line)
		if depth <= parentDepth {
			break
		}
		if depth > parentDepth+1 {
			d.line++
			continue
		}

		content := d.content(line, depth)
		if key, rest, ok := d.splitKeyedArray(content); ok {
			arr, err := d.parseArray(rest, depth)
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, arr)
			continue
		}
		if colon := findUnquotedColon(content); colon > 0 {
			key := unquote(trimASCII(content[:colon]))
			value := trimASCII(content[colon+1:])
			if err := d.keyValueInto(obj, key, value, depth); err != nil {
				return Value{}, err
			}
			continue
		}
		d.line++
	}
	return Object(obj), nil
}

// arrayHeader is the parsed bracket expression of an array header.
type arrayHeader struct {
	marker bool
	size   int
	delim  byte // 0 when no indicator is present
}

// hostile inputs can declare absurd sizes; cap what we pre-allocate.
const maxPresize = 1024

func (h arrayHeader) capacity() int {
	if h.size > maxPresize {
		return maxPresize
	}
	return h.size
}

// parseArrayHeader parses "[", optional '#', digits, optional delimiter
// indicator, "]" and returns the remainder of the line.
func parseArrayHeader(s string) (arrayHeader, string, bool) {
	if !strings.HasPrefix(s, "[") {
		return arrayHeader{}, "", false
	}
	i := 1
	var h arrayHeader
	if i < len(s) && s[i] == '#' {
		h.marker = true
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return arrayHeader{}, "", false
	}
	size, err := strconv.Atoi(s[start:i])
	if err != nil {
		return arrayHeader{}, "", false
	}
	h.size = size
	if i < len(s) && (s[i] == '\t' || s[i] == '|') {
		h.delim = s[i]
		i++
	}
	if i >= len(s) || s[i] != ']' {
		return arrayHeader{}, "", false
	}
	return h, s[i+1:], true
}

// checkHeader enforces that header decoration matches the configured
// options; decoration is advisory in lenient mode.
func (d *decoder) checkHeader(h arrayHeader) error {
	if !d.opts.Strict {
		return nil
	}
	if h.marker != d.opts.LengthMarker {
		return decodeErr(d.lineNum(), ErrLengthMarkerMismatch, "length marker mismatch")
	}
	want := byte(0)
	if d.opts.Delimiter != Comma {
		want = d.delim
	}
	if h.delim != want {
		return decodeErr(d.lineNum(), ErrDelimiterMismatch, "delimiter indicator mismatch")
	}
	return nil
}

// parseArray parses an array from its header text onward. header carries
// everything from the opening bracket to the end of the line; depth is the
// indentation level of the header line.
func (d *decoder) parseArray(header string, depth int) (Value, error) {
	h, rest, ok := parseArrayHeader(header)
	if !ok {
		if d.opts.Strict {
			return Value{}, decodeErr(d.lineNum(), ErrMalformedHeader, "invalid array header %q", header)
		}
		d.line++
		return Null(), nil
	}
	if err := d.checkHeader(h); err != nil {
		return Value{}, err
	}

	if strings.HasPrefix(rest, "{") {
		return d.parseTabularArray(h, rest, depth)
	}

	rest = trimASCII(rest)
	if !strings.HasPrefix(rest, ":") {
		if d.opts.Strict {
			return Value{}, decodeErr(d.lineNum(), ErrMalformedHeader, "array header missing ':' in %q", header)
		}
		d.line++
		return Null(), nil
	}

	inline := trimASCII(rest[1:])
	if inline != "" {
		values := d.delimitedValues(inline)
		d.line++
		return List(values...), nil
	}

	// Size zero, or values on the following lines.
	d.line++
	if d.line >= len(d.lines) {
		return List(), nil
	}
	next := d.lines[d.line]
	nextDepth := d.depth(next)
	if nextDepth <= depth {
		return List(), nil
	}
	nextContent := d.content(next, nextDepth)
	if strings.HasPrefix(nextContent, "- ") {
		return d.parseListBody(h, depth)
	}
	values := d.delimitedValues(nextContent)
	d.line++
	return List(values...), nil
}

// parseTabularArray parses "{fields}:" plus one row line per element at
// depth+1.
func (d *decoder) parseTabularArray(h arrayHeader, rest string, depth int) (Value, error) {
	inner, after, ok := scanBraceGroup(rest)
	if !ok || !strings.HasPrefix(after, ":") {
		if d.opts.Strict {
			return Value{}, decodeErr(d.lineNum(), ErrMalformedHeader, "invalid tabular header %q", rest)
		}
		d.line++
		return Null(), nil
	}

	fieldToks := scanDelimited(inner, d.delim)
	fields := make([]string, len(fieldToks))
	for i, tok := range fieldToks {
		fields[i] = tok.text
	}

	result := make([]Value, 0, h.capacity())
	d.line++
	for d.line < len(d.lines) {
		line := d.lines[d.line]
		lineDepth := d.depth(line)
		if lineDepth < depth+1 {
			break
		}
		if lineDepth == depth+1 {
			row := NewMap()
			toks := scanDelimited(d.content(line, depth+1), d.delim)
			for i, field := range fields {
				if i < len(toks) {
					row.Set(field, toks[i].value())
				}
			}
			result = append(result, Object(row))
		}
		d.line++
	}
	return List(result...), nil
}

// parseListBody parses "- " items at depth+1. The cursor sits on the first
// candidate line.
func (d *decoder) parseListBody(h arrayHeader, depth int) (Value, error) {
	result := make([]Value, 0, h.capacity())
	for d.line < len(d.lines) {
		line := d.lines[d.line]
		lineDepth := d.depth(line)
		if lineDepth < depth+1 {
			break
		}
		if lineDepth == depth+1 {
			content := d.content(line, depth+1)
			if strings.HasPrefix(content, "- ") {
				item, err := d.parseListItem(content, depth)
				if err != nil {
					return Value{}, err
				}
				result = append(result, item)
				continue
			}
		}
		d.line++
	}
	return List(result...), nil
}

// parseListItem parses a single "- " item: a bare scalar, or a map whose
// first field rides on the item line with further fields at depth+2.
func (d *decoder) parseListItem(content string, depth int) (Value, error) {
	itemText := trimASCII(content[2:])

	if key, rest, ok := d.splitKeyedArray(itemText); ok {
		item := NewMap()
		arr, err := d.parseArray(rest, depth+1)
		if err != nil {
			return Value{}, err
		}
		item.Set(key, arr)
		if err := d.listItemFields(item, depth); err != nil {
			return Value{}, err
		}
		return Object(item), nil
	}

	colon := findUnquotedColon(itemText)
	if colon <= 0 {
		d.line++
		return d.scalarText(itemText), nil
	}

	key := unquote(trimASCII(itemText[:colon]))
	value := trimASCII(itemText[colon+1:])
	item := NewMap().Set(key, d.scalarText(value))
	d.line++
	if err := d.listItemFields(item, depth); err != nil {
		return Value{}, err
	}
	return Object(item), nil
}

// listItemFields consumes the remaining fields of a map list item at
// depth+2, recursing for keyed arrays and nested map bodies.
func (d *decoder) listItemFields(item *Map, depth int) error {
	for d.line < len(d.lines) {
		line := d.lines[d.line]
		lineDepth := d.depth(line)
		if lineDepth < depth+2 {
			return nil
		}
		if lineDepth > depth+2 {
			d.line++
			continue
		}

		content := d.content(line, depth+2)
		if key, rest, ok := d.splitKeyedArray(content); ok {
			arr, err := d.parseArray(rest, depth+2)
			if err != nil {
				return err
			}
			item.Set(key, arr)
			continue
		}
		if colon := findUnquotedColon(content); colon > 0 {
			key := unquote(trimASCII(content[:colon]))
			value := trimASCII(content[colon+1:])
			if err := d.keyValueInto(item, key, value, depth+2); err != nil {
				return err
			}
			continue
		}
		d.line++
	}
	return nil
}

// splitKeyedArray recognizes "<key>[<header>]{fields}?:" lines. It returns
// the unquoted key and the remainder starting at the bracket.
func (d *decoder) splitKeyedArray(content string) (string, string, bool) {
	pos := findUnquotedByte(content, '[')
	if pos <= 0 {
		return "", "", false
	}
	_, after, ok := parseArrayHeader(content[pos:])
	if !ok {
		return "", "", false
	}
	if strings.HasPrefix(after, "{") {
		_, rest, ok := scanBraceGroup(after)
		if !ok {
			return "", "", false
		}
		after = rest
	}
	if !strings.HasPrefix(after, ":") {
		return "", "", false
	}
	key := unquote(trimASCII(content[:pos]))
	return key, content[pos:], true
}

// delimitedValues scans one inline line into scalar values.
func (d *decoder) delimitedValues(input string) []Value {
	toks := scanDelimited(input, d.delim)
	values := make([]Value, len(toks))
	for i, tok := range toks {
		values[i] = tok.value()
	}
	return values
}

// scalarText interprets a raw (not yet unescaped) scalar from a full line or
// key-value position.
func (d *decoder) scalarText(raw string) Value {
	if raw == "" {
		return Str("")
	}
	switch raw {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return Str(unquote(raw))
	}
	return coerceScalar(raw)
}

// token is one value produced by the delimited-value scanner, with escapes
// decoded and quotes stripped.
type token struct {
	text   string
	quoted bool
}

// value interprets the token: quoted tokens stay strings, everything else
// goes through scalar coercion.
func (t token) value() Value {
	if t.quoted {
		return Str(t.text)
	}
	if t.text == "" {
		return Str("")
	}
	switch t.text {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return coerceScalar(t.text)
}

// coerceScalar tries integer (no '.'), then decimal (with '.'), falling back
// to the raw string. Only spellings the number grammar recognizes coerce;
// anything the encoder would leave bare (such as "+5" or ".5") stays a
// string, which keeps the round trip exact.
func coerceScalar(text string) Value {
	if !numberPattern.MatchString(text) {
		return Str(text)
	}
	if strings.ContainsRune(text, '.') {
		if dec, err := decimal.NewFromString(text); err == nil {
			return Dec(dec)
		}
		return Str(text)
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(n)
	}
	return Str(text)
}

// scanDelimited splits input on the unquoted delimiter in a single pass,
// decoding escapes and tracking quoted state per value. Unquoted values are
// trimmed of surrounding whitespace; quoted values are kept verbatim. A
// trailing delimiter yields a trailing empty value.
func scanDelimited(input string, delim byte) []token {
	var toks []token
	var sb strings.Builder
	quoted := false
	inQuotes := false
	escaped := false

	flush := func() {
		text := sb.String()
		if !quoted {
			text = trimASCII(text)
		}
		toks = append(toks, token{text: text, quoted: quoted})
		sb.Reset()
		quoted = false
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		if escaped {
			sb.WriteByte(unescapeChar(c))
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
			quoted = true
		case c == delim && !inQuotes:
			flush()
		default:
			sb.WriteByte(c)
		}
	}
	if sb.Len() > 0 || quoted || strings.HasSuffix(input, string(delim)) {
		flush()
	}
	return toks
}

// scanBraceGroup splits "{inner}rest", honoring quotes and escapes inside
// the braces.
func scanBraceGroup(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", "", false
	}
	inQuotes := false
	escaped := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == '}' && !inQuotes:
			return s[1:i], s[i+1:], true
		}
	}
	return "", "", false
}

// findUnquotedColon returns the index of the first colon outside quotes, or
// -1. Quoted keys such as "order:id" rely on this.
func findUnquotedColon(content string) int {
	return findUnquotedByte(content, ':')
}

func findUnquotedByte(content string, target byte) int {
	inQuotes := false
	escaped := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == target && !inQuotes:
			return i
		}
	}
	return -1
}
