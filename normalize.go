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
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// normalize converts an arbitrary Go value into the TOON data model:
// non-finite floats and negative zero collapse per the model invariants,
// times become ISO-8601 strings, and map keys outside string are
// stringified. Values outside the model (channels, funcs) are fatal.
func normalize(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Map:
		return Object(x), nil
	case bool:
		return Bool(x), nil
	case string:
		return Str(x), nil
	case []byte:
		return Str(string(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return normalizeUint(uint64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return normalizeUint(x), nil
	case float32:
		return normalizeFloat(float64(x)), nil
	case float64:
		return normalizeFloat(x), nil
	case decimal.Decimal:
		return Dec(x), nil
	case json.Number:
		return normalizeNumber(x), nil
	case time.Time:
		return Str(x.Format(time.RFC3339)), nil
	case map[string]any:
		return normalizeStringMap(x)
	case []any:
		return normalizeSlice(reflect.ValueOf(x))
	}
	return normalizeReflect(reflect.ValueOf(v))
}

// normalizeUint widens values beyond the int64 range into decimals.
func normalizeUint(x uint64) Value {
	if x > math.MaxInt64 {
		return Dec(decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0))
	}
	return Int(int64(x))
}

// normalizeFloat applies the model invariants: NaN and infinities become
// null, negative zero becomes integer zero.
func normalizeFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	if f == 0 {
		return Int(0)
	}
	return Dec(decimal.NewFromFloat(f))
}

func normalizeNumber(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return Dec(d)
	}
	return Str(s)
}

func normalizeStringMap(m map[string]any) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := NewMap()
	for _, k := range keys {
		item, err := normalize(m[k])
		if err != nil {
			return Value{}, err
		}
		obj.Set(k, item)
	}
	return Object(obj), nil
}

func normalizeSlice(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		item, err := normalize(rv.Index(i).Interface())
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return List(items...), nil
}

func normalizeReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalize(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalizeSlice(rv)

	case reflect.Array:
		return normalizeSlice(rv)

	case reflect.Map:
		return normalizeMap(rv)

	case reflect.Struct:
		return normalizeStruct(rv)

	case reflect.String:
		return Str(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return normalizeUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float()), nil

	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Kind())
	}
}

// normalizeMap stringifies keys and sorts them for deterministic output;
// native Go maps carry no insertion order to preserve. Use *Map when order
// matters.
func normalizeMap(rv reflect.Value) (Value, error) {
	if rv.IsNil() {
		return Null(), nil
	}

	type pair struct {
		key   string
		value reflect.Value
	}
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		if k.Kind() == reflect.String {
			key = k.String()
		} else {
			s, err := cast.ToStringE(k.Interface())
			if err != nil {
				return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedKey, k.Interface())
			}
			key = s
		}
		pairs = append(pairs, pair{key: key, value: iter.Value()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	obj := NewMap()
	for _, p := range pairs {
		item, err := normalize(p.value.Interface())
		if err != nil {
			return Value{}, err
		}
		obj.Set(p.key, item)
	}
	return Object(obj), nil
}

// normalizeStruct walks exported fields in declaration order, honoring
// `toon` tags with `json` tags as a fallback.
func normalizeStruct(rv reflect.Value) (Value, error) {
	t := rv.Type()
	obj := NewMap()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, omitEmpty, skip := fieldName(f)
		if skip {
			continue
		}

		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}

		item, err := normalize(fv.Interface())
		if err != nil {
			return Value{}, err
		}
		obj.Set(name, item)
	}
	return Object(obj), nil
}

func fieldName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("toon")
	if tag == "" {
		tag = f.Tag.Get("json")
	}
	if tag == "" {
		return f.Name, false, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "-" && len(parts) == 1 {
		return "", false, true
	}
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
