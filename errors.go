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
	"errors"
	"fmt"
)

// Static errors raised by the codec.
var (
	// ErrMalformedHeader indicates an array header whose bracket expression
	// could not be parsed.
	ErrMalformedHeader = errors.New("malformed array header")

	// ErrUnexpectedIndent indicates indented content where depth-0 content
	// was required.
	ErrUnexpectedIndent = errors.New("unexpected indentation at root")

	// ErrDelimiterMismatch indicates an array header whose delimiter
	// indicator disagrees with the configured delimiter.
	ErrDelimiterMismatch = errors.New("array header delimiter does not match configured delimiter")

	// ErrLengthMarkerMismatch indicates an array header whose '#' marker
	// disagrees with the configured length marker option.
	ErrLengthMarkerMismatch = errors.New("array header length marker does not match configuration")

	// ErrUnknownDelimiter indicates a delimiter spelling outside ",", "|",
	// and tab.
	ErrUnknownDelimiter = errors.New("unknown delimiter")

	// ErrUnsupportedType indicates a Go value that cannot be normalized
	// into the TOON data model.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedKey indicates a map key that cannot be converted to a
	// string.
	ErrUnsupportedKey = errors.New("unsupported map key")
)

// DecodeError reports a strict-mode decoding failure with the offending
// line. Lines are numbered from 1.
//
// Use [errors.As] to retrieve it and [errors.Is] to match the underlying
// cause:
//
//	_, err := toon.Decode(input)
//	var decErr *toon.DecodeError
//	if errors.As(err, &decErr) {
//	    fmt.Println(decErr.Line, decErr.Reason)
//	}
type DecodeError struct {
	// Line is the 1-based input line the decoder was positioned on.
	Line int

	// Reason is a short human-readable description.
	Reason string

	// Err is the underlying sentinel error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("toon: line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("toon: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("toon: line %d: decode failed", e.Line)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(line int, err error, format string, args ...any) *DecodeError {
	return &DecodeError{
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
