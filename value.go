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
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the null value.
	KindNull Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindInt is a signed 64-bit integer.
	KindInt

	// KindDecimal is an arbitrary-precision decimal number.
	KindDecimal

	// KindString is a Unicode string.
	KindString

	// KindList is an ordered list of values.
	KindList

	// KindMap is a string-keyed map preserving insertion order.
	KindMap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is a single node in the TOON data model: null, a boolean, a 64-bit
// integer, an arbitrary-precision decimal, a string, a list, or an
// insertion-ordered map.
//
// The zero Value is null. Values are immutable from the codec's perspective:
// Encode never mutates its input and Decode returns freshly allocated
// structures.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    decimal.Decimal
	s    string
	list []Value
	m    *Map
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Dec returns a decimal value.
func Dec(v decimal.Decimal) Value {
	return Value{kind: KindDecimal, d: v}
}

// Str returns a string value.
func Str(v string) Value {
	return Value{kind: KindString, s: v}
}

// List returns a list value holding the given items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Object returns a map value. A nil map is treated as empty.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether the value is null, a boolean, a number, or a
// string.
func (v Value) IsScalar() bool {
	return v.kind != KindList && v.kind != KindMap
}

// Bool returns the boolean payload. It is false for any other kind.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. It is zero for any other kind.
func (v Value) Int() int64 { return v.i }

// Decimal returns the decimal payload. It is zero for any other kind.
func (v Value) Decimal() decimal.Decimal { return v.d }

// Str returns the string payload. It is empty for any other kind.
func (v Value) Str() string { return v.s }

// Items returns the list payload. It is nil for any other kind. The returned
// slice must not be modified.
func (v Value) Items() []Value { return v.list }

// Map returns the map payload. It is nil for any other kind.
func (v Value) Map() *Map { return v.m }

// Equal reports deep equality. Maps compare by key sequence and per-key
// values, so two maps with the same entries in different insertion order are
// not equal. Integers only equal integers and decimals only equal decimals.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindDecimal:
		return v.d.Equal(other.d)
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(other.m)
	default:
		return false
	}
}

// String returns a compact debug representation. It is not TOON text; use
// Encode for that.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.d.String()
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(item.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindMap:
		return v.m.String()
	default:
		return "invalid"
	}
}

// Map is a string-keyed collection of values that preserves insertion order.
// Keys are unique: setting an existing key replaces its value in place.
//
// The zero value is not usable; call NewMap.
type Map struct {
	entries []mapEntry
	index   map[string]int
}

type mapEntry struct {
	key   string
	value Value
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

// Set stores value under key, appending the key if new and replacing the
// value in place if the key already exists. It returns the map for chaining.
func (m *Map) Set(key string, value Value) *Map {
	if idx, ok := m.index[key]; ok {
		m.entries[idx].value = value
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, mapEntry{key: key, value: value})
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	idx, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[idx].value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// At returns the entry at position i in insertion order.
func (m *Map) At(i int) (string, Value) {
	e := m.entries[i]
	return e.key, e.value
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, value Value) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Equal reports whether both maps hold the same keys in the same insertion
// order with equal values. Two nil or empty maps are equal.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil {
		return true
	}
	for i := range m.entries {
		oe := other.entries[i]
		if m.entries[i].key != oe.key || !m.entries[i].value.Equal(oe.value) {
			return false
		}
	}
	return true
}

// String returns a compact debug representation.
func (m *Map) String() string {
	if m == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", e.key, e.value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
