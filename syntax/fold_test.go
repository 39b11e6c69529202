package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldInside(t *testing.T) {
	args := callTree().Root().FirstChild().LastChild()
	r, ok := FoldInside(args, nil)
	require.True(t, ok)
	assert.Equal(t, Range{From: 4, To: 8}, r)

	_, ok = FoldInside(NewNode("ArgList", 0, 2, NewNode("(", 0, 1), NewNode(")", 1, 2)), nil)
	assert.False(t, ok, "nothing between the brackets")

	_, ok = FoldInside(NewNode("ArgList", 0, 1, NewNode("(", 0, 1)), nil)
	assert.False(t, ok, "a lone bracket")

	_, ok = FoldInside(NewNode("VariableName", 0, 3), nil)
	assert.False(t, ok)

	unterminated := NewNode("ArgList", 0, 7,
		NewNode("(", 0, 1),
		NewNode("VariableName", 2, 3),
		NewNode(ErrorKind, 4, 5),
	)
	r, ok = FoldInside(unterminated, nil)
	require.True(t, ok)
	assert.Equal(t, Range{From: 1, To: 7}, r)
}

func TestLanguageFolds(t *testing.T) {
	doc := Text("foo(\nbar)")
	lang := NewLanguage(LanguageConfig{
		Name: "test",
		Fold: map[string]FoldRule{"ArgList CallExpression": FoldInside},
	})
	tree := callTree()

	// The CallExpression's first child ends where its last begins.
	assert.Equal(t, []Range{{From: 4, To: 8}}, lang.Folds(tree, doc))

	r, ok := lang.FoldAt(tree, doc, doc.LineAt(0))
	require.True(t, ok)
	assert.Equal(t, Range{From: 4, To: 8}, r)

	_, ok = lang.FoldAt(tree, doc, doc.LineAt(5))
	assert.False(t, ok)
}
