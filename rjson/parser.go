package rjson

import "fmt"

// parser reads a value with one token of lookahead. Containers that are
// still open are kept on an explicit stack rather than the call stack, so
// nesting depth is bounded only by memory.
type parser struct {
	tokens []Token
	pos    int

	// last is the location of the most recently consumed token; end of
	// input errors are reported there.
	last Location

	maxDepth int
}

// frame is a container whose closing bracket has not been consumed yet.
type frame struct {
	list *ListNode
	obj  *ObjectNode
	// key is the key of the property whose value is being read.
	key Token
}

func (f *frame) node() Node {
	if f.list != nil {
		return f.list
	}
	return f.obj
}

// Parse builds a syntax tree from the first complete value in tokens.
// Tokens after that value are not inspected.
func Parse(tokens []Token) (Node, error) {
	return ParseWithConfig(tokens, Config{})
}

// ParseWithConfig is Parse with the limits in cfg applied.
func ParseWithConfig(tokens []Token, cfg Config) (Node, error) {
	p := &parser{
		tokens:   tokens,
		last:     Location{Line: 1, Column: 1},
		maxDepth: cfg.MaxDepth,
	}
	return p.parse()
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
		p.last = t.Loc
	}
	return t, ok
}

func (p *parser) parse() (Node, error) {
	var stack []*frame
	for {
		t, ok := p.next()
		if !ok {
			return nil, p.unexpectedEnd("a value")
		}

		var n Node
		switch t.Kind {
		case Number, String, Boolean, Null:
			n = &Scalar{Kind: t.Kind, Text: t.Text, At: t.Loc}
		case LeftSquare, LeftBrace:
			if p.maxDepth > 0 && len(stack) >= p.maxDepth {
				return nil, newSyntaxError(NestingTooDeep, t.Loc, t.Text, "nesting exceeds maximum depth of %d", p.maxDepth)
			}
			f, closer := &frame{}, RightSquare
			if t.Kind == LeftSquare {
				f.list = &ListNode{At: t.Loc}
			} else {
				f.obj = &ObjectNode{At: t.Loc}
				closer = RightBrace
			}
			if c, ok := p.peek(); ok && c.Kind == closer {
				p.next()
				n = f.node()
				break
			}
			stack = append(stack, f)
			if f.obj != nil {
				if err := p.key(f); err != nil {
					return nil, err
				}
			}
			continue
		default:
			return nil, newSyntaxError(UnexpectedToken, t.Loc, t.Text, "unexpected %s, expected a value", describe(t))
		}

		// n is complete; hand it to the enclosing containers, closing each
		// one whose closing bracket follows.
		for {
			if len(stack) == 0 {
				return n, nil
			}
			f := stack[len(stack)-1]
			more, err := p.add(f, n)
			if err != nil {
				return nil, err
			}
			if more {
				break
			}
			n = f.node()
			stack = stack[:len(stack)-1]
		}
	}
}

// add appends n to the open container f and consumes the token after it.
// It reports whether f expects another value; false means f was closed.
func (p *parser) add(f *frame, n Node) (bool, error) {
	if f.list != nil {
		f.list.Elements = append(f.list.Elements, n)
		t, ok := p.next()
		if !ok {
			return false, p.unexpectedEnd("',' or ']'")
		}
		switch t.Kind {
		case RightSquare:
			return false, nil
		case Comma:
			// a comma directly before the closing bracket ends the list
			if c, ok := p.peek(); ok && c.Kind == RightSquare {
				p.next()
				return false, nil
			}
			return true, nil
		}
		return false, newSyntaxError(MissingComma, t.Loc, t.Text, "expected ',' or ']' but found %s", describe(t))
	}

	f.obj.Properties = append(f.obj.Properties, Property{Key: f.key.Text, KeyLoc: f.key.Loc, Value: n})
	t, ok := p.next()
	if !ok {
		return false, p.unexpectedEnd("',' or '}'")
	}
	switch t.Kind {
	case RightBrace:
		return false, nil
	case Comma:
		return true, p.key(f)
	}
	return false, newSyntaxError(MissingComma, t.Loc, t.Text, "expected ',' or '}' but found %s", describe(t))
}

// key consumes a property key and its ':' into f.
func (p *parser) key(f *frame) error {
	key, ok := p.next()
	if !ok {
		return p.unexpectedEnd("a string key")
	}
	if key.Kind != String {
		return newSyntaxError(KeyMustBeString, key.Loc, key.Text, "object key must be a string, found %s", describe(key))
	}
	sep, ok := p.next()
	if !ok {
		return p.unexpectedEnd("':'")
	}
	if sep.Kind != Colon {
		return newSyntaxError(MissingSeparator, sep.Loc, sep.Text, "expected ':' after key %q but found %s", key.Text, describe(sep))
	}
	f.key = key
	return nil
}

func (p *parser) unexpectedEnd(want string) error {
	return newSyntaxError(UnexpectedEnd, p.last, "", "unexpected end of input, expected %s", want)
}

// describe renders a token for error messages.
func describe(t Token) string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Number, Boolean:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	case Null:
		return "null"
	}
	return fmt.Sprintf("'%s'", t.Text)
}
