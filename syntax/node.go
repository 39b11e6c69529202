// Package syntax holds the labelled syntax tree that language plugins describe,
// and the small amount of machinery an editor needs to ask a plugin questions
// about it: how far to indent a line, which regions fold, and what highlight tag
// a node carries.
//
// Trees are immutable once built. A Language and everything it references is
// immutable too, so a single Language can be shared by any number of buffers.
package syntax

// ErrorKind labels nodes the parser could not make sense of.
const ErrorKind = "⚠"

// A Node is a labelled span [From, To) of a document. Nodes are created bottom up
// with NewNode and never change afterwards.
type Node struct {
	kind     string
	from, to int
	parent   *Node
	children []*Node
}

// NewNode creates a node spanning from..to and adopts children, which must be in
// document order and lie inside the span.
func NewNode(kind string, from, to int, children ...*Node) *Node {
	n := &Node{kind: kind, from: from, to: to, children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

func (n *Node) Kind() string { return n.kind }
func (n *Node) From() int    { return n.from }
func (n *Node) To() int      { return n.to }

// Parent returns nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. Do not modify the returned slice.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) IsError() bool { return n.kind == ErrorKind }

// FirstChild returns nil when the node is a leaf.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns nil when the node is a leaf.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Root climbs to the top of the tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// IsAncestorOf reports whether n is other or one of its ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for ; other != nil; other = other.parent {
		if other == n {
			return true
		}
	}
	return false
}

// Resolve returns the innermost node below n that covers pos. With side 0 a node
// must start before and end after pos; a negative side also enters nodes ending
// at pos, a positive side nodes starting at pos. n itself is returned when no
// child qualifies.
func (n *Node) Resolve(pos, side int) *Node {
	cur := n
	for {
		next := (*Node)(nil)
		for _, c := range cur.children {
			if covers(c, pos, side) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

func covers(n *Node, pos, side int) bool {
	switch {
	case side < 0:
		return n.from < pos && n.to >= pos
	case side > 0:
		return n.from <= pos && n.to > pos
	default:
		return n.from < pos && n.to > pos
	}
}

// Walk visits n and its descendants in document order. Returning false from
// enter skips the node's children.
func (n *Node) Walk(enter func(*Node) bool) {
	if !enter(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(enter)
	}
}

// A Tree is the result of parsing a document.
type Tree struct {
	root *Node
}

func NewTree(root *Node) *Tree {
	return &Tree{root: root}
}

func (t *Tree) Root() *Node { return t.root }

// Len is the length of the document the tree was parsed from.
func (t *Tree) Len() int { return t.root.to }

// Resolve is shorthand for t.Root().Resolve(pos, side).
func (t *Tree) Resolve(pos, side int) *Node {
	return t.root.Resolve(pos, side)
}
