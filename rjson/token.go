package rjson

import "fmt"

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	Number TokenKind = iota
	String
	Boolean
	Null
	LeftSquare
	RightSquare
	LeftBrace
	RightBrace
	Comma
	Colon
)

var tokenKindNames = [...]string{
	Number:      "number",
	String:      "string",
	Boolean:     "boolean",
	Null:        "null",
	LeftSquare:  "[",
	RightSquare: "]",
	LeftBrace:   "{",
	RightBrace:  "}",
	Comma:       ",",
	Colon:       ":",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// IsScalar reports whether k is one of the leaf kinds.
func (k TokenKind) IsScalar() bool {
	return k == Number || k == String || k == Boolean || k == Null
}

// Location is a position in source text. Line is 1-based; Column counts
// runes from the start of the line, so the first rune is column 1.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token is a classified, located lexical unit. For strings Text excludes
// the surrounding quotes.
type Token struct {
	Kind TokenKind
	Text string
	Loc  Location
}

func (t Token) String() string {
	if t.Kind == String {
		return fmt.Sprintf("%q", t.Text)
	}
	return t.Text
}
