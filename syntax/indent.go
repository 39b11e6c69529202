package syntax

import (
	"regexp"
	"strings"
)

// IndentOptions describe how columns are counted and how wide a level is.
type IndentOptions struct {
	Unit    int // Columns per indentation level
	TabSize int // Columns a tab advances to
}

// DefaultIndent is four spaces per level with four-column tabs.
var DefaultIndent = IndentOptions{Unit: 4, TabSize: 4}

// An IndentRule computes the indentation, in columns, for the line at the
// context's position. Returning false means the rule has no opinion and the
// editor should use its own default.
type IndentRule func(ctx *IndentContext) (int, bool)

// IndentContext is handed to an IndentRule. It is only valid for the duration
// of the call.
type IndentContext struct {
	Pos       int    // Byte offset the indentation is computed for
	TextAfter string // Text on Pos's line after Pos
	Node      *Node  // Node whose rule is running
	Doc       Document
	Options   IndentOptions

	lang *Language
}

// Unit is the width of one indentation level in columns.
func (c *IndentContext) Unit() int { return c.Options.Unit }

// LineIndent returns the indentation, in columns, of the line containing pos.
func (c *IndentContext) LineIndent(pos int) int {
	return CountIndent(c.Doc.LineAt(pos).Text, c.Options.TabSize)
}

// BaseIndent is the indentation of the line the node starts on. When that line's
// start lies inside some unrelated node (say, the node begins after a multi-line
// argument list), earlier lines are tried until one starts inside an ancestor
// of the node.
func (c *IndentContext) BaseIndent() int {
	root := c.Node.Root()
	line := c.Doc.LineAt(c.Node.From())
	for {
		atBreak := root.Resolve(line.From, 0)
		for atBreak.Parent() != nil && atBreak.Parent().From() == atBreak.From() {
			atBreak = atBreak.Parent()
		}
		if atBreak.IsAncestorOf(c.Node) {
			break
		}
		line = c.Doc.LineAt(atBreak.From())
	}
	return CountIndent(line.Text, c.Options.TabSize)
}

// Continue runs the rule of the nearest ancestor that has one, as if this node
// had no rule of its own.
func (c *IndentContext) Continue() (int, bool) {
	parent := c.Node.Parent()
	if parent == nil {
		return 0, false
	}
	return c.lang.indentFrom(parent, c.Pos, c.TextAfter, c.Doc, c.Options)
}

// ContinuedIndent indents one unit past the node's base indentation, except when
// the text after the cursor matches except, in which case the line lines up with
// the base. except may be nil.
func ContinuedIndent(except *regexp.Regexp) IndentRule {
	return func(ctx *IndentContext) (int, bool) {
		if except != nil && except.MatchString(ctx.TextAfter) {
			return ctx.BaseIndent(), true
		}
		return ctx.BaseIndent() + ctx.Unit(), true
	}
}

// Indentation asks the language how far the line at pos should be indented.
// The innermost node strictly covering pos is resolved and rules are looked up
// from there towards the root. A root without a rule yields column zero.
func (l *Language) Indentation(tree *Tree, doc Document, pos int, opts IndentOptions) (int, bool) {
	line := doc.LineAt(pos)
	after := ""
	if pos < line.To {
		after = doc.Slice(pos, line.To)
	}
	return l.indentFrom(tree.Resolve(pos, 0), pos, after, doc, opts)
}

func (l *Language) indentFrom(node *Node, pos int, after string, doc Document, opts IndentOptions) (int, bool) {
	for ; node != nil; node = node.Parent() {
		if rule, ok := l.indent[node.Kind()]; ok {
			return rule(&IndentContext{
				Pos:       pos,
				TextAfter: after,
				Node:      node,
				Doc:       doc,
				Options:   opts,
				lang:      l,
			})
		}
		if node.Parent() == nil {
			return 0, true
		}
	}
	return 0, false
}

// CountIndent returns the column of the first non-whitespace character of line.
func CountIndent(line string, tabSize int) int {
	col := 0
	for _, r := range line {
		switch r {
		case ' ':
			col++
		case '\t':
			col += tabSize - col%tabSize
		default:
			return col
		}
	}
	return col
}

// IndentString renders cols columns of indentation, using tabs where possible
// when hardTabs is set.
func IndentString(cols int, opts IndentOptions, hardTabs bool) string {
	if cols <= 0 {
		return ""
	}
	if hardTabs && opts.TabSize > 0 {
		return strings.Repeat("\t", cols/opts.TabSize) + strings.Repeat(" ", cols%opts.TabSize)
	}
	return strings.Repeat(" ", cols)
}
