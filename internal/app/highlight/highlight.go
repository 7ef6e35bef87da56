// Package highlight renders document source as HTML with token spans.
package highlight

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/rjview/rjson"
)

var kindClass = map[rjson.TokenKind]string{
	rjson.Number:      "number",
	rjson.String:      "string",
	rjson.Boolean:     "boolean",
	rjson.Null:        "null",
	rjson.LeftSquare:  "punct",
	rjson.RightSquare: "punct",
	rjson.LeftBrace:   "punct",
	rjson.RightBrace:  "punct",
	rjson.Comma:       "punct",
	rjson.Colon:       "punct",
}

// Format escapes src and wraps each token in a span with classes like
// `tok tok-number`. Tokens must be in source order, as Tokenize returns
// them. If errAt is non-nil the rune at that location is wrapped in
// `<mark class="err">`; a location past the end of src gets an empty mark
// appended instead.
func Format(src string, tokens []rjson.Token, errAt *rjson.Location) template.HTML {
	var b strings.Builder
	b.Grow(len(src) + len(tokens)*32)

	line, col := 1, 0
	next := 0      // index of the next token to open
	remaining := 0 // runes left in the open span
	marked := false

	for _, r := range src {
		here := rjson.Location{Line: line, Column: col + 1}
		if remaining == 0 && next < len(tokens) && tokens[next].Loc == here {
			t := tokens[next]
			b.WriteString(`<span class="tok tok-`)
			b.WriteString(kindClass[t.Kind])
			b.WriteString(`">`)
			remaining = width(t)
			next++
		}

		if errAt != nil && !marked && *errAt == here {
			b.WriteString(`<mark class="err">`)
			b.WriteString(template.HTMLEscapeString(string(r)))
			b.WriteString(`</mark>`)
			marked = true
		} else {
			b.WriteString(template.HTMLEscapeString(string(r)))
		}

		if remaining > 0 {
			remaining--
			if remaining == 0 {
				b.WriteString(`</span>`)
			}
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	if remaining > 0 {
		b.WriteString(`</span>`)
	}
	if errAt != nil && !marked {
		b.WriteString(`<mark class="err"></mark>`)
	}
	return template.HTML(b.String())
}

// width is the number of source runes a token covers.
func width(t rjson.Token) int {
	n := utf8.RuneCountInString(t.Text)
	if t.Kind == rjson.String {
		n += 2
	}
	return n
}
