// Package rjson decodes a restricted, JSON-like document format into Go
// values.
//
// The grammar is a subset of JSON: numbers are unsigned digit runs with at
// most one '.', strings have no escape sequences, and the only bare words
// are true, false and null. Characters that cannot start a token, including
// all whitespace, are skipped. Only the first value in a document is
// decoded; anything after it is ignored.
//
// Decoding runs in three stages, each exported for callers that want the
// intermediate results:
//
//  1. Tokenize turns source text into located tokens.
//  2. Parse builds a syntax tree with one token of lookahead.
//  3. ToValue converts the tree into a Value.
//
// The first error from any stage aborts the decode. Errors are
// *SyntaxError values carrying a line:column location and unwrap to one of
// the Err* sentinels.
package rjson

import (
	"io"

	"github.com/pkg/errors"
)

// Value is a decoded value: int64, float64, string, bool, nil, []Value or
// *Object.
type Value = any

// Decode decodes the first value in content.
func Decode(content string) (Value, error) {
	return DecodeWithConfig(content, Config{})
}

// DecodeWithConfig is Decode with the limits in cfg applied.
func DecodeWithConfig(content string, cfg Config) (Value, error) {
	tokens, err := Tokenize(content)
	if err != nil {
		return nil, err
	}
	root, err := ParseWithConfig(tokens, cfg)
	if err != nil {
		return nil, err
	}
	return ToValue(root), nil
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader) (Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "rjson: read document")
	}
	return Decode(string(b))
}
