package python

import (
	"strings"

	"github.com/fivemoreminix/pyedit/syntax"
)

func foldRules() map[string]syntax.FoldRule {
	return map[string]syntax.FoldRule{
		"Body": foldBody,
		"ArrayExpression DictionaryExpression SetExpression": syntax.FoldInside,
	}
}

// foldBody folds a block from the end of its header's colon to the end of its
// last statement. Bodies have no closing delimiter, so trailing whitespace the
// Body absorbed is trimmed off.
func foldBody(n *syntax.Node, doc syntax.Document) (syntax.Range, bool) {
	colon := n.FirstChild()
	if colon == nil || colon.Kind() != ":" || n.ChildCount() < 2 {
		return syntax.Range{}, false
	}
	from := colon.To()
	to := from + len(strings.TrimRight(doc.Slice(from, n.To()), " \t\r\n\f"))
	if to <= from {
		return syntax.Range{}, false
	}
	return syntax.Range{From: from, To: to}, true
}
