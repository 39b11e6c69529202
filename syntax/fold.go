package syntax

// A Range is a half-open span of byte offsets.
type Range struct {
	From, To int
}

// A FoldRule returns the foldable region of a node, or false when the node has
// nothing worth folding.
type FoldRule func(n *Node, doc Document) (Range, bool)

// FoldInside folds everything between a node's first and last child, which are
// taken to be its delimiters. An unterminated node (last child is an error) folds
// to its own end.
func FoldInside(n *Node, _ Document) (Range, bool) {
	first, last := n.FirstChild(), n.LastChild()
	if first == nil || first == last || first.To() >= last.From() {
		return Range{}, false
	}
	to := last.From()
	if last.IsError() {
		to = n.To()
	}
	return Range{From: first.To(), To: to}, true
}

// FoldRange returns the fold region of a single node.
func (l *Language) FoldRange(n *Node, doc Document) (Range, bool) {
	rule, ok := l.fold[n.Kind()]
	if !ok {
		return Range{}, false
	}
	return rule(n, doc)
}

// Folds lists the fold regions of every node in the tree, in document order.
func (l *Language) Folds(tree *Tree, doc Document) []Range {
	var folds []Range
	tree.Root().Walk(func(n *Node) bool {
		if r, ok := l.FoldRange(n, doc); ok {
			folds = append(folds, r)
		}
		return true
	})
	return folds
}

// FoldAt returns the innermost fold region that starts on line and ends after it.
func (l *Language) FoldAt(tree *Tree, doc Document, line Line) (Range, bool) {
	var found Range
	var ok bool
	tree.Root().Walk(func(n *Node) bool {
		if n.To() <= line.From || n.From() > line.To {
			return false
		}
		if r, has := l.FoldRange(n, doc); has && r.From >= line.From && r.From <= line.To && r.To > line.To {
			found, ok = r, true
		}
		return true
	})
	return found, ok
}
