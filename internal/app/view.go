package app

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jmoiron/rjview/internal/app/highlight"
	"github.com/jmoiron/rjview/rjson"
)

// Inspection holds every stage of decoding one source text, for rendering.
// Stages after the first failing one are left empty.
type Inspection struct {
	Source      string
	Tokens      []TokenRow
	Tree        *Outline
	Value       *Outline
	Highlighted template.HTML

	Err    error
	ErrLoc string
	// Stage names the stage that failed: "lex" or "parse".
	Stage string
}

// TokenRow is one token as shown in the token table.
type TokenRow struct {
	Index int
	Kind  string
	Text  string
	Loc   string
}

// Outline is a node in a rendered tree, used for both syntax trees and
// decoded values.
type Outline struct {
	// Label is the object key or list index leading to this node.
	Label    string
	Type     string
	Text     string
	Loc      string
	Children []*Outline
	// Truncated is set on a container whose children are not shown
	// because it sits at outlineDepth.
	Truncated bool
}

// outlineDepth bounds how deep outlines go; the outline template recurses
// once per level.
const outlineDepth = 256

// Inspect runs each decode stage on src separately and keeps the results.
func Inspect(src string, cfg rjson.Config) *Inspection {
	in := &Inspection{Source: src}

	tokens, err := rjson.Tokenize(src)
	if err != nil {
		in.fail("lex", err)
		in.Highlighted = highlight.Format(src, nil, syntaxLoc(err))
		return in
	}
	for i, t := range tokens {
		in.Tokens = append(in.Tokens, TokenRow{Index: i, Kind: t.Kind.String(), Text: t.Text, Loc: t.Loc.String()})
	}

	root, err := rjson.ParseWithConfig(tokens, cfg)
	if err != nil {
		in.fail("parse", err)
		in.Highlighted = highlight.Format(src, tokens, syntaxLoc(err))
		return in
	}
	in.Highlighted = highlight.Format(src, tokens, nil)
	in.Tree = treeOutline("", root)
	in.Value = valueOutline("", rjson.ToValue(root))
	return in
}

func (in *Inspection) fail(stage string, err error) {
	in.Stage = stage
	in.Err = err
	if loc := syntaxLoc(err); loc != nil {
		in.ErrLoc = loc.String()
	}
}

func syntaxLoc(err error) *rjson.Location {
	var se *rjson.SyntaxError
	if errors.As(err, &se) {
		return &se.Loc
	}
	return nil
}

// treeOutline and valueOutline walk with an explicit stack and stop
// descending at outlineDepth.
func treeOutline(label string, root rjson.Node) *Outline {
	type item struct {
		n rjson.Node
		o *Outline
		d int
	}
	out := &Outline{Label: label, Loc: root.Pos().String()}
	stack := []item{{root, out, 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		o := it.o
		switch n := it.n.(type) {
		case *rjson.Scalar:
			o.Type = "Scalar(" + n.Kind.String() + ")"
			o.Text = n.Text
		case *rjson.ListNode:
			o.Type = "List"
			o.Truncated = it.d >= outlineDepth && len(n.Elements) > 0
			if o.Truncated {
				continue
			}
			for i, e := range n.Elements {
				c := &Outline{Label: fmt.Sprintf("[%d]", i), Loc: e.Pos().String()}
				o.Children = append(o.Children, c)
				stack = append(stack, item{e, c, it.d + 1})
			}
		case *rjson.ObjectNode:
			o.Type = "Object"
			o.Truncated = it.d >= outlineDepth && len(n.Properties) > 0
			if o.Truncated {
				continue
			}
			for _, p := range n.Properties {
				c := &Outline{Label: strconv.Quote(p.Key), Loc: p.KeyLoc.String()}
				o.Children = append(o.Children, c)
				stack = append(stack, item{p.Value, c, it.d + 1})
			}
		}
	}
	return out
}

func valueOutline(label string, root rjson.Value) *Outline {
	type item struct {
		v rjson.Value
		o *Outline
		d int
	}
	out := &Outline{Label: label}
	stack := []item{{root, out, 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		o := it.o
		o.Type = kindOf(it.v)
		switch v := it.v.(type) {
		case int64:
			o.Text = strconv.FormatInt(v, 10)
		case float64:
			o.Text = strconv.FormatFloat(v, 'g', -1, 64)
		case string:
			o.Text = v
		case bool:
			o.Text = strconv.FormatBool(v)
		case nil:
			o.Text = "null"
		case []rjson.Value:
			o.Truncated = it.d >= outlineDepth && len(v) > 0
			if o.Truncated {
				continue
			}
			for i, e := range v {
				c := &Outline{Label: fmt.Sprintf("[%d]", i)}
				o.Children = append(o.Children, c)
				stack = append(stack, item{e, c, it.d + 1})
			}
		case *rjson.Object:
			o.Truncated = it.d >= outlineDepth && v.Len() > 0
			if o.Truncated {
				continue
			}
			for p := v.Oldest(); p != nil; p = p.Next() {
				c := &Outline{Label: strconv.Quote(p.Key)}
				o.Children = append(o.Children, c)
				stack = append(stack, item{p.Value, c, it.d + 1})
			}
		}
	}
	return out
}

// kindOf names the Go type a decoded value materialized as.
func kindOf(v rjson.Value) string {
	switch v.(type) {
	case int64:
		return "int64"
	case float64:
		return "float64"
	case string:
		return "string"
	case bool:
		return "bool"
	case nil:
		return "null"
	case []rjson.Value:
		return "list"
	case *rjson.Object:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
