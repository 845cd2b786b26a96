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

// Encode renders a Value as TOON text. Encoding cannot fail for values of
// the model; use Marshal to encode arbitrary Go values.
func Encode(v Value, opts ...Option) string {
	cfg := applyOptions(opts)
	e := &encoder{opts: cfg, first: true}
	e.value(v, 0, "", false)
	return e.sb.String()
}

// Marshal normalizes an arbitrary Go value into the TOON data model and
// encodes it. It fails only when normalization does, for values outside the
// model such as channels or maps with unstringifiable keys.
func Marshal(v any, opts ...Option) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}
	return []byte(Encode(normalized, opts...)), nil
}

// encoder walks the value tree and appends complete output lines. The only
// per-call state is the output buffer and the current depth carried through
// the recursion.
type encoder struct {
	sb    strings.Builder
	opts  Options
	first bool
}

func (e *encoder) writeLine(depth int, content string) {
	if !e.first {
		e.sb.WriteByte('\n')
	}
	e.first = false
	for i := 0; i < depth*e.opts.Indent; i++ {
		e.sb.WriteByte(' ')
	}
	e.sb.WriteString(content)
}

// value emits one value at the given depth. key is the already formatted key
// context; hasKey distinguishes "key: value" lines from bare values.
func (e *encoder) value(v Value, depth int, key string, hasKey bool) {
	switch v.Kind() {
	case KindList:
		e.array(v.Items(), depth, key, hasKey)
	case KindMap:
		e.object(v.Map(), depth, key, hasKey)
	default:
		e.primitive(v, depth, key, hasKey)
	}
}

func (e *encoder) primitive(v Value, depth int, key string, hasKey bool) {
	text := e.inlineValue(v)
	if hasKey {
		e.writeLine(depth, key+": "+text)
		return
	}
	e.writeLine(depth, text)
}

func (e *encoder) object(m *Map, depth int, key string, hasKey bool) {
	if m.Len() == 0 {
		if hasKey {
			e.writeLine(depth, key+":")
		}
		return
	}

	if hasKey {
		e.writeLine(depth, key+":")
		depth++
	}

	m.Range(func(field string, value Value) bool {
		e.value(value, depth, formatKey(field), true)
		return true
	})
}

func (e *encoder) array(items []Value, depth int, key string, hasKey bool) {
	if keys, ok := detectTabular(items); ok {
		e.tabularArray(items, keys, depth, key, hasKey)
		return
	}
	if isPrimitiveArray(items) {
		e.primitiveArray(items, depth, key, hasKey)
		return
	}
	e.listArray(items, depth, key, hasKey)
}

func (e *encoder) primitiveArray(items []Value, depth int, key string, hasKey bool) {
	line := e.arrayHeader(len(items))
	if len(items) > 0 {
		values := make([]string, len(items))
		for i, item := range items {
			values[i] = e.inlineValue(item)
		}
		line += ": " + strings.Join(values, e.opts.Delimiter.String())
	} else {
		line += ":"
	}

	if hasKey {
		e.writeLine(depth, key+line)
		return
	}
	e.writeLine(depth, line)
}

func (e *encoder) tabularArray(items []Value, keys []string, depth int, key string, hasKey bool) {
	formattedKeys := make([]string, len(keys))
	for i, k := range keys {
		formattedKeys[i] = formatKey(k)
	}
	header := e.arrayHeader(len(items)) + "{" + strings.Join(formattedKeys, e.opts.Delimiter.String()) + "}:"

	if hasKey {
		e.writeLine(depth, key+header)
	} else {
		e.writeLine(depth, header)
	}

	for _, row := range items {
		values := make([]string, len(keys))
		for i, k := range keys {
			cell, _ := row.Map().Get(k)
			values[i] = e.inlineValue(cell)
		}
		e.writeLine(depth+1, strings.Join(values, e.opts.Delimiter.String()))
	}
}

func (e *encoder) listArray(items []Value, depth int, key string, hasKey bool) {
	header := e.arrayHeader(len(items)) + ":"
	if hasKey {
		e.writeLine(depth, key+header)
	} else {
		e.writeLine(depth, header)
	}

	for _, item := range items {
		if item.Kind() == KindMap && item.Map().Len() > 0 {
			e.listItem(item.Map(), depth+1)
			continue
		}
		e.writeLine(depth+1, "- "+e.inlineValue(item))
	}
}

// listItem emits a map list element. The first field rides on the "- " line;
// the remaining fields follow one level deeper.
func (e *encoder) listItem(item *Map, depth int) {
	first := true
	item.Range(func(field string, value Value) bool {
		formatted := formatKey(field)
		if first {
			first = false
			if value.IsScalar() {
				e.writeLine(depth, "- "+formatted+": "+e.inlineValue(value))
				return true
			}
			e.value(value, depth, "- "+formatted, true)
			return true
		}
		e.value(value, depth+1, formatted, true)
		return true
	})
}

// inlineValue renders a scalar (or, for mixed list items, a nested array)
// for use inside a single line.
func (e *encoder) inlineValue(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindDecimal:
		return formatDecimal(v.Decimal())
	case KindString:
		return formatString(v.Str(), e.opts.Delimiter.byte())
	case KindList:
		values := make([]string, len(v.Items()))
		for i, item := range v.Items() {
			values[i] = e.inlineValue(item)
		}
		return e.arrayHeader(len(values)) + ": " + strings.Join(values, e.opts.Delimiter.String())
	default:
		return "null"
	}
}

func (e *encoder) arrayHeader(size int) string {
	marker := ""
	if e.opts.LengthMarker {
		marker = "#"
	}
	return "[" + marker + strconv.Itoa(size) + e.opts.Delimiter.indicator() + "]"
}

// formatDecimal renders a decimal in plain notation with trailing fraction
// zeroes stripped. Any value equal to zero renders as "0".
func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	s := d.String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// isPrimitiveArray reports whether every element is a scalar. The empty
// array counts as primitive.
func isPrimitiveArray(items []Value) bool {
	for _, item := range items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

// detectTabular reports whether the array qualifies for tabular layout:
// non-empty, every element a non-empty map carrying exactly the first
// element's keys in the same insertion order, and every field value scalar.
// It returns the shared key list.
func detectTabular(items []Value) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	first := items[0]
	if first.Kind() != KindMap || first.Map().Len() == 0 {
		return nil, false
	}
	keys := first.Map().Keys()

	for _, item := range items {
		if item.Kind() != KindMap || item.Map().Len() != len(keys) {
			return nil, false
		}
		m := item.Map()
		for i, k := range keys {
			gotKey, gotValue := m.At(i)
			if gotKey != k || !gotValue.IsScalar() {
				return nil, false
			}
		}
	}
	return keys, true
}
