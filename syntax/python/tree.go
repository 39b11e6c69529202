package python

import (
	"strings"

	"github.com/pkg/errors"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/fivemoreminix/pyedit/syntax"
)

// Labels for tree-sitter kinds that do not follow the CamelCase default.
var kindLabels = map[string]string{
	"module":                   "Script",
	"block":                    "Body",
	"call":                     "CallExpression",
	"attribute":                "MemberExpression",
	"parameters":               "ParamList",
	"lambda_parameters":        "ParamList",
	"argument_list":            "ArgList",
	"tuple":                    "TupleExpression",
	"list":                     "ArrayExpression",
	"dictionary":               "DictionaryExpression",
	"set":                      "SetExpression",
	"list_comprehension":       "ArrayComprehensionExpression",
	"dictionary_comprehension": "DictionaryComprehensionExpression",
	"set_comprehension":        "SetComprehensionExpression",
	"integer":                  "Number",
	"float":                    "Number",
	"true":                     "Boolean",
	"false":                    "Boolean",
	"none":                     "None",
	"comment":                  "Comment",
	"ellipsis":                 "Ellipsis",
	"interpolation":            "FormatReplacement",
	"type_conversion":          "FormatConversion",
	"keyword_identifier":       "VariableName",
}

// Nodes whose text is already covered by their parent's span.
var droppedKinds = map[string]bool{
	"string_start":         true,
	"string_content":       true,
	"string_end":           true,
	"escape_sequence":      true,
	"escape_interpolation": true,
}

// Named nodes whose whole span is one token. Whatever tree-sitter hangs below
// them is ignored.
var leafKinds = map[string]bool{
	"identifier": true,
	"integer":    true,
	"float":      true,
	"true":       true,
	"false":      true,
	"none":       true,
	"comment":    true,
	"ellipsis":   true,
}

// Statements that tree-sitter may produce without a keyword child.
var keywordStatements = map[string]string{
	"pass_statement":     "pass",
	"break_statement":    "break",
	"continue_statement": "continue",
}

var arithOps = map[string]bool{"+": true, "-": true, "*": true, "@": true, "/": true, "%": true, "//": true, "**": true}
var bitOps = map[string]bool{"|": true, "&": true, "^": true, "<<": true, ">>": true, "~": true}
var compareOps = map[string]bool{"<": true, "<=": true, "==": true, "!=": true, ">=": true, ">": true, "<>": true}

// parser turns Python source into a labelled syntax tree using tree-sitter.
type parser struct {
	language *tree_sitter.Language
}

func newParser() *parser {
	return &parser{language: tree_sitter.NewLanguage(tree_sitter_python.Language())}
}

// Parse builds a fresh tree-sitter parser per call so the Language stays safe to
// share between goroutines.
func (p *parser) Parse(src []byte) (*syntax.Tree, error) {
	ts := tree_sitter.NewParser()
	defer ts.Close()
	if err := ts.SetLanguage(p.language); err != nil {
		return nil, errors.Wrap(err, "loading python grammar")
	}
	tree := ts.Parse(src, nil)
	if tree == nil {
		return nil, errors.New("python parser returned no tree")
	}
	defer tree.Close()

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	c := converter{src: src}
	spans := c.walk(cursor, "", len(src))

	root := &span{label: "Script", from: 0, to: len(src)}
	if len(spans) == 1 && spans[0].label == "Script" {
		root.kids = spans[0].kids
	} else {
		root.kids = spans
	}
	return syntax.NewTree(root.build()), nil
}

// span is a node under construction. Spans can still be stretched; syntax.Nodes
// cannot.
type span struct {
	label    string
	from, to int
	kids     []*span
}

func (s *span) build() *syntax.Node {
	kids := make([]*syntax.Node, len(s.kids))
	for i, k := range s.kids {
		kids[i] = k.build()
	}
	return syntax.NewNode(s.label, s.from, s.to, kids...)
}

type converter struct {
	src []byte
}

// walk converts the node under the cursor. Unlabelled nodes are spliced into
// their parent, so walk returns zero or more spans. No span grows past limit,
// the start of whatever follows the node.
func (c *converter) walk(cursor *tree_sitter.TreeCursor, parentKind string, limit int) []*span {
	n := cursor.Node()
	field := cursor.FieldName()

	var kids []*span
	if cursor.GotoFirstChild() {
		for {
			childLimit := limit
			if next := cursor.Node().NextSibling(); next != nil {
				childLimit = min(childLimit, int(next.StartByte()))
			}
			kids = append(kids, c.walk(cursor, n.Kind(), childLimit)...)
			if !cursor.GotoNextSibling() {
				break
			}
		}
		cursor.GotoParent()
	}
	if leafKinds[n.Kind()] {
		kids = nil
	}

	label := c.label(n, field, parentKind, kids)
	if label == "" {
		return kids
	}
	s := &span{label: label, from: int(n.StartByte()), to: int(n.EndByte()), kids: attachColons(kids)}
	if label == "Body" {
		s.to = max(s.to, min(c.skipSpace(s.to), limit))
	}
	if last := len(s.kids) - 1; last >= 0 && s.kids[last].to > s.to {
		s.to = s.kids[last].to
	}
	return []*span{s}
}

func (c *converter) label(n *tree_sitter.Node, field, parentKind string, kids []*span) string {
	kind := n.Kind()
	switch {
	case n.IsError():
		return syntax.ErrorKind
	case droppedKinds[kind]:
		return ""
	case !n.IsNamed():
		return tokenLabel(kind, parentKind)
	}

	switch kind {
	case "identifier":
		switch {
		case parentKind == "attribute" && field == "attribute":
			return "PropertyName"
		case string(c.src[n.StartByte():n.EndByte()]) == "self":
			return "self"
		}
		return "VariableName"
	case "string":
		for _, k := range kids {
			if k.label == "FormatReplacement" {
				return "FormatString"
			}
		}
		return "String"
	}
	if kw, ok := keywordStatements[kind]; ok && len(kids) == 0 {
		return kw
	}
	if l, ok := kindLabels[kind]; ok {
		return l
	}
	return camelCase(kind)
}

// tokenLabel names anonymous tokens. Most keep their text; operators are grouped
// by the construct they appear in.
func tokenLabel(tok, parentKind string) string {
	switch parentKind {
	case "binary_operator", "unary_operator":
		if arithOps[tok] {
			return "ArithOp"
		}
		if bitOps[tok] {
			return "BitOp"
		}
	case "comparison_operator":
		if compareOps[tok] {
			return "CompareOp"
		}
	case "assignment", "named_expression", "keyword_argument", "default_parameter", "typed_default_parameter":
		if tok == "=" || tok == ":=" {
			return "AssignOp"
		}
	case "augmented_assignment":
		if strings.HasSuffix(tok, "=") {
			return "UpdateOp"
		}
	case "decorator":
		if tok == "@" {
			return "At"
		}
	}
	switch tok {
	case "not in":
		return "not"
	case "is not":
		return "is"
	}
	return tok
}

// attachColons moves the ':' that opens a block, and any comments between it
// and the block, into the Body so the Body starts on its header line.
func attachColons(kids []*span) []*span {
	for i := 0; i < len(kids); i++ {
		body := kids[i]
		if body.label != "Body" {
			continue
		}
		j := i - 1
		for j >= 0 && kids[j].label == "Comment" {
			j--
		}
		if j < 0 || kids[j].label != ":" {
			continue
		}
		moved := append([]*span(nil), kids[j:i]...)
		body.kids = append(moved, body.kids...)
		body.from = kids[j].from
		kids = append(kids[:j], kids[i:]...)
		i = j
	}
	return kids
}

// skipSpace returns the offset of the first non-whitespace byte at or after pos.
func (c *converter) skipSpace(pos int) int {
	for pos < len(c.src) {
		switch c.src[pos] {
		case ' ', '\t', '\r', '\n', '\f':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func camelCase(kind string) string {
	var b strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
