package rjson

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why a document was rejected.
type ErrorKind int

const (
	InvalidNumber ErrorKind = iota + 1
	UnknownIdentifier
	UnterminatedString
	MissingComma
	MissingSeparator
	KeyMustBeString
	UnexpectedToken
	UnexpectedEnd
	NestingTooDeep
)

// Sentinel errors, one per ErrorKind. A *SyntaxError unwraps to the
// sentinel for its kind, so callers can use errors.Is.
var (
	ErrInvalidNumber      = errors.New("invalid number")
	ErrUnknownIdentifier  = errors.New("unknown identifier")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrMissingComma       = errors.New("missing comma")
	ErrMissingSeparator   = errors.New("missing separator")
	ErrKeyMustBeString    = errors.New("key must be a string")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrUnexpectedEnd      = errors.New("unexpected end of input")
	ErrNestingTooDeep     = errors.New("nesting too deep")
)

var kindSentinels = map[ErrorKind]error{
	InvalidNumber:      ErrInvalidNumber,
	UnknownIdentifier:  ErrUnknownIdentifier,
	UnterminatedString: ErrUnterminatedString,
	MissingComma:       ErrMissingComma,
	MissingSeparator:   ErrMissingSeparator,
	KeyMustBeString:    ErrKeyMustBeString,
	UnexpectedToken:    ErrUnexpectedToken,
	UnexpectedEnd:      ErrUnexpectedEnd,
	NestingTooDeep:     ErrNestingTooDeep,
}

var kindNames = map[ErrorKind]string{
	InvalidNumber:      "InvalidNumber",
	UnknownIdentifier:  "UnknownIdentifier",
	UnterminatedString: "UnterminatedString",
	MissingComma:       "MissingComma",
	MissingSeparator:   "MissingSeparator",
	KeyMustBeString:    "KeyMustBeString",
	UnexpectedToken:    "UnexpectedToken",
	UnexpectedEnd:      "UnexpectedEnd",
	NestingTooDeep:     "NestingTooDeep",
}

func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError describes the first problem found in a document.
type SyntaxError struct {
	Kind ErrorKind
	Loc  Location
	// Text is the offending token text, when there is one.
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rjson: %s at %s", e.Msg, e.Loc)
}

// Unwrap returns the sentinel error for e.Kind.
func (e *SyntaxError) Unwrap() error {
	return kindSentinels[e.Kind]
}

func newSyntaxError(kind ErrorKind, loc Location, text, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind: kind,
		Loc:  loc,
		Text: text,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// KindOf returns the ErrorKind carried by err, or 0 if err does not wrap a
// *SyntaxError.
func KindOf(err error) ErrorKind {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
