package syntax

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A StyleRule assigns Tag to every node matched by Pattern.
//
// Pattern holds whitespace-separated alternatives. Each alternative is a node
// label, optionally qualified by the labels of its direct ancestors, outermost
// first and separated by slashes: "CallExpression/VariableName" matches a
// VariableName whose parent is a CallExpression. Labels that collide with the
// pattern syntax may be quoted: "'*' '/'".
type StyleRule struct {
	Pattern string
	Tag     Tag
}

type compiledRule struct {
	path  []string // Ancestors first, node label last
	tag   Tag
	order int
}

// A StyleTable maps nodes to highlight tags. When several paths match a node,
// the longest wins, and among equally long paths the earliest rule.
type StyleTable struct {
	byLabel map[string][]compiledRule
}

// NewStyleTable compiles rules.
func NewStyleTable(rules ...StyleRule) (*StyleTable, error) {
	t := &StyleTable{byLabel: make(map[string][]compiledRule)}
	order := 0
	for _, r := range rules {
		alts := strings.Fields(r.Pattern)
		if len(alts) == 0 {
			return nil, errors.Errorf("style rule for %s has an empty pattern", r.Tag)
		}
		for _, alt := range alts {
			path, err := splitPath(alt)
			if err != nil {
				return nil, err
			}
			label := path[len(path)-1]
			t.byLabel[label] = append(t.byLabel[label], compiledRule{path: path, tag: r.Tag, order: order})
			order++
		}
	}
	for _, rules := range t.byLabel {
		sort.SliceStable(rules, func(i, j int) bool {
			if len(rules[i].path) != len(rules[j].path) {
				return len(rules[i].path) > len(rules[j].path)
			}
			return rules[i].order < rules[j].order
		})
	}
	return t, nil
}

// MustStyleTable is like NewStyleTable but panics on a malformed pattern. It is
// meant for tables declared at package level.
func MustStyleTable(rules ...StyleRule) *StyleTable {
	t, err := NewStyleTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

func splitPath(alt string) ([]string, error) {
	var path []string
	for len(alt) > 0 {
		var seg string
		if q := alt[0]; q == '\'' || q == '"' {
			end := strings.IndexByte(alt[1:], q)
			if end < 0 {
				return nil, errors.Errorf("pattern %q: unterminated quote", alt)
			}
			seg, alt = alt[1:end+1], alt[end+2:]
		} else if i := strings.IndexByte(alt, '/'); i >= 0 {
			seg, alt = alt[:i], alt[i:]
		} else {
			seg, alt = alt, ""
		}
		if seg == "" {
			return nil, errors.Errorf("pattern %q: empty segment", alt)
		}
		path = append(path, seg)
		if len(alt) > 0 {
			if alt[0] != '/' || len(alt) == 1 {
				return nil, errors.Errorf("pattern %q: expected '/' between segments", alt)
			}
			alt = alt[1:]
		}
	}
	return path, nil
}

// Match returns the tag for n, and false when no rule applies.
func (t *StyleTable) Match(n *Node) (Tag, bool) {
	for _, r := range t.byLabel[n.Kind()] {
		if matchAncestors(n, r.path) {
			return r.tag, true
		}
	}
	return Tag{}, false
}

func matchAncestors(n *Node, path []string) bool {
	cur := n
	for i := len(path) - 2; i >= 0; i-- {
		cur = cur.Parent()
		if cur == nil || cur.Kind() != path[i] {
			return false
		}
	}
	return true
}

// Highlight walks the tree below root and calls emit for each highlighted span,
// in document order and without overlaps. A tagged node colors the parts of its
// span not covered by children; children are colored by their own tags.
func (t *StyleTable) Highlight(root *Node, emit func(from, to int, tag Tag)) {
	tag, tagged := t.Match(root)
	pos := root.From()
	for _, c := range root.Children() {
		if tagged && c.From() > pos {
			emit(pos, c.From(), tag)
		}
		t.Highlight(c, emit)
		if c.To() > pos {
			pos = c.To()
		}
	}
	if tagged && root.To() > pos {
		emit(pos, root.To(), tag)
	}
}
