package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivemoreminix/pyedit/syntax"
)

func folds(t *testing.T, src string) []syntax.Range {
	t.Helper()
	return Language().Folds(parse(t, src), syntax.Text(src))
}

func TestFoldBody(t *testing.T) {
	src := "def f(x):\n    return x\n"
	assert.Equal(t, []syntax.Range{{From: 9, To: 22}}, folds(t, src))

	doc := syntax.Text(src)
	r, ok := Language().FoldAt(parse(t, src), doc, doc.LineAt(0))
	require.True(t, ok)
	assert.Equal(t, "\n    return x", src[r.From:r.To])

	_, ok = Language().FoldAt(parse(t, src), doc, doc.LineAt(12))
	assert.False(t, ok, "the body's own line has nothing to fold")
}

func TestFoldNestedBodies(t *testing.T) {
	src := "class A:\n    def m(self):\n        pass\n\nx = 1\n"
	got := folds(t, src)
	require.Len(t, got, 2)
	assert.Equal(t, "\n    def m(self):\n        pass", src[got[0].From:got[0].To])
	assert.Equal(t, "\n        pass", src[got[1].From:got[1].To])
}

func TestFoldCollections(t *testing.T) {
	src := "x = [\n    1,\n    2,\n]\n"
	assert.Equal(t, []syntax.Range{{From: 5, To: 20}}, folds(t, src))

	src = "d = {\n    'a': 1,\n}\ns = {\n    1,\n}\n"
	got := folds(t, src)
	require.Len(t, got, 2)
	assert.Equal(t, "\n    'a': 1,\n", src[got[0].From:got[0].To])
	assert.Equal(t, "\n    1,\n", src[got[1].From:got[1].To])
}

func TestFoldNothing(t *testing.T) {
	assert.Empty(t, folds(t, "d = {}\nl = []\n"))
	assert.Empty(t, folds(t, "t = (\n1,\n)\n"), "tuples do not fold")
	assert.Empty(t, folds(t, "x = 1\n"))
}

func TestFoldBodyWithoutStatements(t *testing.T) {
	src := "if a:\n"
	body := syntax.NewNode("Body", 4, 6, syntax.NewNode(":", 4, 5))
	syntax.NewNode("Script", 0, 6, syntax.NewNode("IfStatement", 0, 6, body))
	_, ok := foldBody(body, syntax.Text(src))
	assert.False(t, ok)
}
