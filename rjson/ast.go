package rjson

// Node is a syntax tree node produced by Parse. The set of node types is
// closed: *Scalar, *ListNode and *ObjectNode.
type Node interface {
	// Pos is the location of the first token of the node.
	Pos() Location
	node()
}

// Scalar is a leaf: a number, string, boolean or null token.
type Scalar struct {
	Kind TokenKind
	Text string
	At   Location
}

// ListNode is a bracketed sequence of values.
type ListNode struct {
	Elements []Node
	At       Location
}

// ObjectNode is a braced sequence of key/value pairs in source order. Keys may
// repeat; duplicates are resolved by ToValue.
type ObjectNode struct {
	Properties []Property
	At         Location
}

// Property is one key/value pair of an ObjectNode.
type Property struct {
	Key    string
	KeyLoc Location
	Value  Node
}

func (s *Scalar) Pos() Location     { return s.At }
func (l *ListNode) Pos() Location   { return l.At }
func (o *ObjectNode) Pos() Location { return o.At }

func (*Scalar) node()     {}
func (*ListNode) node()   {}
func (*ObjectNode) node() {}
