package rjson

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ToValue converts a syntax tree into a native value. It cannot fail for a
// tree produced by Parse.
//
// The mapping is:
//   - number without '.' -> int64 (float64 if it overflows int64)
//   - number with '.'    -> float64
//   - string             -> string, exactly as written
//   - true, false        -> bool
//   - null               -> nil
//   - list               -> []Value
//   - object             -> *Object
func ToValue(n Node) Value {
	f := newBuildFrame(n)
	if f == nil {
		return leafValue(n)
	}
	stack := []*buildFrame{f}
	for {
		top := stack[len(stack)-1]
		if child, ok := top.next(); ok {
			if cf := newBuildFrame(child); cf != nil {
				stack = append(stack, cf)
			} else {
				top.add(leafValue(child))
			}
			continue
		}
		stack = stack[:len(stack)-1]
		v := top.value()
		if len(stack) == 0 {
			return v
		}
		stack[len(stack)-1].add(v)
	}
}

// buildFrame is a container being converted; i indexes the next child.
type buildFrame struct {
	list *ListNode
	obj  *ObjectNode
	i    int

	vals []Value
	m    *Object
}

func newBuildFrame(n Node) *buildFrame {
	switch n := n.(type) {
	case *ListNode:
		return &buildFrame{list: n, vals: make([]Value, 0, len(n.Elements))}
	case *ObjectNode:
		return &buildFrame{obj: n, m: NewObject()}
	}
	return nil
}

func (f *buildFrame) next() (Node, bool) {
	if f.list != nil {
		if f.i < len(f.list.Elements) {
			return f.list.Elements[f.i], true
		}
		return nil, false
	}
	if f.i < len(f.obj.Properties) {
		return f.obj.Properties[f.i].Value, true
	}
	return nil, false
}

// add stores v as the value of the current child and moves to the next.
func (f *buildFrame) add(v Value) {
	if f.list != nil {
		f.vals = append(f.vals, v)
	} else {
		f.m.Set(f.obj.Properties[f.i].Key, v)
	}
	f.i++
}

func (f *buildFrame) value() Value {
	if f.list != nil {
		return f.vals
	}
	return f.m
}

func leafValue(n Node) Value {
	if s, ok := n.(*Scalar); ok {
		return scalarValue(s)
	}
	return nil
}

func scalarValue(s *Scalar) Value {
	switch s.Kind {
	case Number:
		return numberValue(s.Text)
	case String:
		return s.Text
	case Boolean:
		return s.Text == "true"
	}
	return nil
}

func numberValue(text string) Value {
	if strings.Contains(text, ".") {
		// the lexer only admits digits and a single dot, so the only
		// failure left is overflow, for which ParseFloat returns ±Inf
		f, _ := strconv.ParseFloat(text, 64)
		return f
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

// Object is a mapping from string keys to values that iterates in
// insertion order. Setting an existing key replaces its value and keeps
// its position.
type Object = orderedmap.OrderedMap[string, Value]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, Value]()
}

// Keys returns the keys of m in iteration order.
func Keys(m *Object) []string {
	keys := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}
