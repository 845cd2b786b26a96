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

// Package toonyaml bridges YAML documents and the rivaas.dev/toon value
// model.
//
// It decodes through the gopkg.in/yaml.v3 node API rather than into Go
// maps, so mapping keys keep their document order the way the TOON codec
// requires.
package toonyaml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"rivaas.dev/toon"
)

// Decode parses one YAML document into a Value, preserving mapping key
// order. Empty input decodes to null.
func Decode(data []byte) (toon.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return toon.Value{}, fmt.Errorf("toonyaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return toon.Null(), nil
	}
	return nodeValue(root.Content[0])
}

func nodeValue(n *yaml.Node) (toon.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarValue(n), nil

	case yaml.MappingNode:
		obj := toon.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			value, err := nodeValue(n.Content[i+1])
			if err != nil {
				return toon.Value{}, err
			}
			obj.Set(keyNode.Value, value)
		}
		return toon.Object(obj), nil

	case yaml.SequenceNode:
		items := make([]toon.Value, len(n.Content))
		for i, child := range n.Content {
			item, err := nodeValue(child)
			if err != nil {
				return toon.Value{}, err
			}
			items[i] = item
		}
		return toon.List(items...), nil

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return toon.Null(), nil
		}
		return nodeValue(n.Content[0])

	default:
		return toon.Value{}, fmt.Errorf("toonyaml: unsupported node kind %d", n.Kind)
	}
}

func scalarValue(n *yaml.Node) toon.Value {
	switch n.Tag {
	case "!!null":
		return toon.Null()
	case "!!bool":
		if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
			return toon.Bool(b)
		}
		return toon.Str(n.Value)
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return toon.Int(i)
		}
		if d, err := decimal.NewFromString(n.Value); err == nil {
			return toon.Dec(d)
		}
		return toon.Str(n.Value)
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".nan", ".inf", "+.inf", "-.inf":
			return toon.Null()
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return toon.Null()
		}
		if d, err := decimal.NewFromString(n.Value); err == nil {
			return toon.Dec(d)
		}
		return toon.Str(n.Value)
	default:
		return toon.Str(n.Value)
	}
}

// Encode renders a Value as YAML with map keys in insertion order.
func Encode(v toon.Value) ([]byte, error) {
	node, err := valueNode(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("toonyaml: %w", err)
	}
	return out, nil
}

func valueNode(v toon.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case toon.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case toon.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}, nil
	case toon.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}, nil
	case toon.KindDecimal:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.Decimal().String()}, nil
	case toon.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}, nil

	case toon.KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case toon.KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var werr error
		v.Map().Range(func(key string, value toon.Value) bool {
			child, err := valueNode(value)
			if err != nil {
				werr = err
				return false
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
			return true
		})
		if werr != nil {
			return nil, werr
		}
		return node, nil

	default:
		return nil, fmt.Errorf("toonyaml: invalid value kind %v", v.Kind())
	}
}
