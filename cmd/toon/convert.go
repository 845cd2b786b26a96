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

package main

import (
	"path/filepath"
	"strings"

	"rivaas.dev/toon"
	"rivaas.dev/toon/toonjson"
	"rivaas.dev/toon/toonyaml"
)

type mode string

const (
	modeEncode mode = "encode"
	modeDecode mode = "decode"
)

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

type convertRequest struct {
	mode    mode
	format  format
	stats   bool
	options []toon.Option
}

// tokenStats is the display-only token estimate printed by --stats. Counts
// use a length heuristic; real tokenizers vary.
type tokenStats struct {
	inputTokens  int
	outputTokens int
}

func (s *tokenStats) savingsPercent() int {
	if s.inputTokens == 0 {
		return 0
	}
	return int(100.0 * (1.0 - float64(s.outputTokens)/float64(s.inputTokens)))
}

func estimateTokens(text []byte) int {
	return len(text)/4 + 10
}

// detectMode picks the conversion direction from the input file extension.
// Stdin defaults to encoding.
func detectMode(input string) mode {
	if input == "" || input == "-" {
		return modeEncode
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".json", ".yaml", ".yml":
		return modeEncode
	default:
		return modeDecode
	}
}

// inputFormat picks the parser used on the encode path.
func inputFormat(input string) format {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// convert runs one conversion. On encode it returns token statistics when
// requested; on decode stats are always nil.
func convert(data []byte, req convertRequest) ([]byte, *tokenStats, error) {
	if req.mode == modeDecode {
		v, err := toon.Decode(string(data), req.options...)
		if err != nil {
			return nil, nil, err
		}
		out, err := toonjson.Encode(v)
		if err != nil {
			return nil, nil, err
		}
		return out, nil, nil
	}

	var v toon.Value
	var err error
	switch req.format {
	case formatYAML:
		v, err = toonyaml.Decode(data)
	default:
		v, err = toonjson.Decode(data)
	}
	if err != nil {
		return nil, nil, err
	}

	out := []byte(toon.Encode(v, req.options...))
	if !req.stats {
		return out, nil, nil
	}
	return out, &tokenStats{
		inputTokens:  estimateTokens(data),
		outputTokens: estimateTokens(out),
	}, nil
}
