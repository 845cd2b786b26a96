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

// Package toonjson bridges JSON documents and the rivaas.dev/toon value
// model.
//
// The TOON codec never parses JSON itself; a host bridge marshals between
// JSON text and [toon.Value] trees. This bridge walks the JSON token stream
// so that object keys keep their document order, which the codec's
// round-trip contract depends on.
//
//	v, err := toonjson.Decode([]byte(`{"id":1,"name":"Ada"}`))
//	text := toon.Encode(v)
//	// id: 1
//	// name: Ada
package toonjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"rivaas.dev/toon"
)

// ErrTrailingData indicates JSON input with content after the first
// top-level value.
var ErrTrailingData = errors.New("toonjson: trailing data after JSON value")

// Decode parses one JSON document into a Value, preserving object key
// order. Numbers without a fraction or exponent that fit in 64 bits become
// integers; all others become decimals.
func Decode(data []byte) (toon.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readValue(dec)
	if err != nil {
		return toon.Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return toon.Value{}, ErrTrailingData
	}
	return v, nil
}

func readValue(dec *json.Decoder) (toon.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return toon.Value{}, fmt.Errorf("toonjson: %w", err)
	}
	return tokenValue(dec, tok)
}

func tokenValue(dec *json.Decoder, tok json.Token) (toon.Value, error) {
	switch t := tok.(type) {
	case nil:
		return toon.Null(), nil
	case bool:
		return toon.Bool(t), nil
	case string:
		return toon.Str(t), nil
	case json.Number:
		return numberValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return readObject(dec)
		case '[':
			return readArray(dec)
		}
	}
	return toon.Value{}, fmt.Errorf("toonjson: unexpected token %v", tok)
}

func readObject(dec *json.Decoder) (toon.Value, error) {
	obj := toon.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return toon.Value{}, fmt.Errorf("toonjson: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return toon.Value{}, fmt.Errorf("toonjson: object key %v is not a string", keyTok)
		}
		value, err := readValue(dec)
		if err != nil {
			return toon.Value{}, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return toon.Value{}, fmt.Errorf("toonjson: %w", err)
	}
	return toon.Object(obj), nil
}

func readArray(dec *json.Decoder) (toon.Value, error) {
	var items []toon.Value
	for dec.More() {
		item, err := readValue(dec)
		if err != nil {
			return toon.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return toon.Value{}, fmt.Errorf("toonjson: %w", err)
	}
	return toon.List(items...), nil
}

func numberValue(n json.Number) toon.Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return toon.Int(i)
		}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return toon.Dec(d)
	}
	return toon.Str(s)
}

// Encode renders a Value as compact JSON with map keys in insertion order.
func Encode(v toon.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeIndent renders a Value as indented JSON with map keys in insertion
// order.
func EncodeIndent(v toon.Value, prefix, indent string) ([]byte, error) {
	compact, err := Encode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, fmt.Errorf("toonjson: %w", err)
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v toon.Value) error {
	switch v.Kind() {
	case toon.KindNull:
		buf.WriteString("null")
	case toon.KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case toon.KindInt:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case toon.KindDecimal:
		buf.WriteString(v.Decimal().String())
	case toon.KindString:
		quoted, err := json.Marshal(v.Str())
		if err != nil {
			return fmt.Errorf("toonjson: %w", err)
		}
		buf.Write(quoted)
	case toon.KindList:
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case toon.KindMap:
		buf.WriteByte('{')
		first := true
		var werr error
		v.Map().Range(func(key string, value toon.Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			quoted, err := json.Marshal(key)
			if err != nil {
				werr = fmt.Errorf("toonjson: %w", err)
				return false
			}
			buf.Write(quoted)
			buf.WriteByte(':')
			werr = writeValue(buf, value)
			return werr == nil
		})
		if werr != nil {
			return werr
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("toonjson: invalid value kind %v", v.Kind())
	}
	return nil
}
