package python

import (
	"regexp"

	"github.com/fivemoreminix/pyedit/syntax"
)

// Lines starting with these keywords close the block above them.
var blockContinuation = regexp.MustCompile(`^\s*(else|elif|except|finally)\b`)

func indentRules() map[string]syntax.IndentRule {
	return map[string]syntax.IndentRule{
		"Body": syntax.ContinuedIndent(blockContinuation),
		"TupleExpression DictionaryExpression ArrayExpression": syntax.ContinuedIndent(nil),
		"Script": scriptIndent,
		syntax.ErrorKind: errorIndent,
	}
}

// errorIndent covers a block continuation that the parser could not fit into
// its statement, so no Body encloses it. That happens while an else is still
// at the indentation of the block it closes. Such a line lines up with the
// header of the last block opened before it.
func errorIndent(ctx *syntax.IndentContext) (int, bool) {
	if !blockContinuation.MatchString(ctx.TextAfter) {
		return ctx.Continue()
	}
	var header *syntax.Node
	for _, kid := range ctx.Node.Children() {
		if kid.From() >= ctx.Pos {
			break
		}
		if kid.Kind() == ":" || kid.Kind() == "Body" {
			header = kid
		}
	}
	if header == nil {
		return ctx.Continue()
	}
	return ctx.LineIndent(header.From()), true
}

// scriptIndent handles lines past the last statement of a file. A parser cannot
// close the blocks that are still open at the end of the input, so indenting
// from the Script node alone would fall back to column zero. Instead, look
// through the chain of trailing children that end with the file and indent one
// level past the innermost Body among them.
func scriptIndent(ctx *syntax.IndentContext) (int, bool) {
	if ctx.Pos+leadingSpace(ctx.TextAfter) < ctx.Node.To() {
		return ctx.Continue()
	}
	var endBody *syntax.Node
	for cur := ctx.Node; ; {
		last := cur.LastChild()
		if last == nil || last.To() != cur.To() {
			break
		}
		if last.Kind() == "Body" {
			endBody = last
		}
		cur = last
	}
	if endBody == nil {
		return 0, false
	}
	return ctx.LineIndent(endBody.From()) + ctx.Unit(), true
}

func leadingSpace(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
		default:
			return i
		}
	}
	return len(s)
}
