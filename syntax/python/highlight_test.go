package python

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivemoreminix/pyedit/syntax"
)

type highlight struct {
	From, To int
	Tag      string
}

func highlights(t *testing.T, src string) []highlight {
	t.Helper()
	var hs []highlight
	Language().Styles().Highlight(parse(t, src).Root(), func(from, to int, tag syntax.Tag) {
		hs = append(hs, highlight{from, to, tag.String()})
	})
	return hs
}

// tagOf returns the tag painted over the first occurrence of text in src.
func tagOf(t *testing.T, src, text string) string {
	t.Helper()
	from := strings.Index(src, text)
	require.GreaterOrEqual(t, from, 0, "%q not in %q", text, src)
	for _, h := range highlights(t, src) {
		if h.From == from && h.To == from+len(text) {
			return h.Tag
		}
	}
	return ""
}

func TestHighlightCalls(t *testing.T) {
	assert.Equal(t, []highlight{
		{0, 3, "function(variableName)"},
		{3, 4, "paren"},
		{4, 5, "variableName"},
		{5, 6, "paren"},
	}, highlights(t, "foo(x)\n"))

	assert.Equal(t, []highlight{
		{0, 1, "variableName"},
		{1, 2, "derefOperator"},
		{2, 3, "function(propertyName)"},
		{3, 4, "paren"},
		{4, 5, "variableName"},
		{5, 6, "paren"},
	}, highlights(t, "a.b(c)\n"))
}

func TestHighlightTags(t *testing.T) {
	tests := []struct {
		src, text, want string
	}{
		{"a.b\n", "b", "propertyName"},
		{"def run(self):\n    return None\n", "run", "function(definition(variableName))"},
		{"def run(self):\n    return None\n", "def", "definitionKeyword"},
		{"def run(self):\n    return None\n", "self", "self"},
		{"def run(self):\n    return None\n", "return", "controlKeyword"},
		{"def run(self):\n    return None\n", "None", "null"},
		{"class Cat:\n    pass\n", "Cat", "definition(className)"},
		{"class Cat:\n    pass\n", "class", "definitionKeyword"},
		{"class Cat:\n    pass\n", "pass", "controlKeyword"},
		{"x = 1 + 2.5\n", "=", "definitionOperator"},
		{"x = 1 + 2.5\n", "1", "number"},
		{"x = 1 + 2.5\n", "+", "arithmeticOperator"},
		{"x = 1 + 2.5\n", "2.5", "number"},
		{"y = True\n", "True", "bool"},
		{"z = 'hi'\n", "'hi'", "string"},
		{"# note\n", "# note", "lineComment"},
		{"s = f'{v!r}'\n", "f'", "special(string)"},
		{"s = f'{v!r}'\n", "!r", "modifier"},
		{"n += 1\n", "+=", "updateOperator"},
		{"p < q\n", "<", "compareOperator"},
		{"p | q\n", "|", "bitwiseOperator"},
		{"p ** q\n", "**", "arithmeticOperator"},
		{"g(**kw)\n", "**", "modifier"},
		{"u in w\n", "in", "operatorKeyword"},
		{"not u\n", "not", "operatorKeyword"},
		{"u and w\n", "and", "operatorKeyword"},
		{"del u\n", "del", "operatorKeyword"},
		{"@dec\ndef g(): ...\n", "@", "meta"},
		{"@dec\ndef g(): ...\n", "...", "punctuation"},
		{"import os\n", "import", "definitionKeyword"},
		{"global gv\n", "global", "definitionKeyword"},
		{"f = lambda: 0\n", "lambda", "definitionKeyword"},
		{"for i in r:\n    break\n", "for", "controlKeyword"},
		{"for i in r:\n    break\n", "in", "operatorKeyword"},
		{"for i in r:\n    break\n", "break", "controlKeyword"},
		{"async def h():\n    await z\n", "async", "modifier"},
		{"async def h():\n    await z\n", "await", "controlKeyword"},
		{"with open(p) as fh:\n    pass\n", "with", "controlKeyword"},
		{"with open(p) as fh:\n    pass\n", "as", "keyword"},
		{"t = (1, 2)\n", ",", "separator"},
		{"t = (1, 2)\n", "(", "paren"},
		{"l = [1]\n", "[", "squareBracket"},
		{"d = {1: 2}\n", "{", "brace"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tagOf(t, tt.src, tt.text), "%q in %q", tt.text, tt.src)
	}
}

func TestHighlightIsOrderedAndDisjoint(t *testing.T) {
	src := "class A(B):\n    def m(self, x=1):\n        return f'{x}' + self.y[0]\n"
	hs := highlights(t, src)
	require.NotEmpty(t, hs)
	end := 0
	for _, h := range hs {
		assert.GreaterOrEqual(t, h.From, end, "%v overlaps", h)
		assert.Less(t, h.From, h.To, "%v is empty", h)
		end = h.To
	}
	assert.Equal(t, hs, highlights(t, src))
}
