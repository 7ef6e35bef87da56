package rjson

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var punctuation = map[rune]TokenKind{
	'[': LeftSquare,
	']': RightSquare,
	'{': LeftBrace,
	'}': RightBrace,
	',': Comma,
	':': Colon,
}

// lexer holds the scanning state for one call to Tokenize.
type lexer struct {
	src  string
	pos  int // byte offset of the next rune
	line int
	col  int // runes consumed on the current line

	tokens []Token
}

// Tokenize scans source into tokens. Whitespace and any character that
// cannot start a token are skipped. It fails on the first malformed number,
// unknown bare word or unterminated string.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{src: source, line: 1}
	for !l.done() {
		r, _ := l.peek()
		loc := l.loc()
		switch {
		case isDigit(r):
			if err := l.number(loc); err != nil {
				return nil, err
			}
		case r == '"':
			if err := l.str(loc); err != nil {
				return nil, err
			}
		case unicode.IsLetter(r):
			if err := l.word(loc); err != nil {
				return nil, err
			}
		default:
			l.advance()
			if kind, ok := punctuation[r]; ok {
				l.emit(kind, string(r), loc)
			}
		}
	}
	return l.tokens, nil
}

func (l *lexer) done() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

// advance consumes one rune and keeps line and column current.
func (l *lexer) advance() rune {
	r, size := l.peek()
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

// loc is the location of the next rune.
func (l *lexer) loc() Location {
	return Location{Line: l.line, Column: l.col + 1}
}

func (l *lexer) emit(kind TokenKind, text string, loc Location) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Loc: loc})
}

// number consumes a run of digits and dots. The text is kept as scanned;
// only a second dot is rejected here.
func (l *lexer) number(loc Location) error {
	start := l.pos
	for !l.done() {
		r, _ := l.peek()
		if !isDigit(r) && r != '.' {
			break
		}
		l.advance()
	}
	text := l.src[start:l.pos]
	if strings.Count(text, ".") > 1 {
		return newSyntaxError(InvalidNumber, loc, text, "invalid number %q", text)
	}
	l.emit(Number, text, loc)
	return nil
}

// str consumes a quoted string. There are no escapes: the first quote
// after the opening one ends the string.
func (l *lexer) str(loc Location) error {
	l.advance()
	start := l.pos
	for !l.done() {
		if l.advance() == '"' {
			l.emit(String, l.src[start:l.pos-1], loc)
			return nil
		}
	}
	text := l.src[start:]
	return newSyntaxError(UnterminatedString, loc, text, "unterminated string %q", truncate(text, 32))
}

func (l *lexer) word(loc Location) error {
	start := l.pos
	for !l.done() {
		r, _ := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advance()
	}
	text := l.src[start:l.pos]
	switch text {
	case "true", "false":
		l.emit(Boolean, text, loc)
	case "null":
		l.emit(Null, text, loc)
	default:
		return newSyntaxError(UnknownIdentifier, loc, text, "unknown identifier %q", text)
	}
	return nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
