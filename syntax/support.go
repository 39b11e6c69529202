package syntax

import (
	"sort"
	"strings"
)

var closerFor = map[string]string{"(": ")", "[": "]", "{": "}"}

// Support is what an editor holds for a buffer's language: the Language itself
// and the editing behaviour derived from its Data, such as bracket auto-closing,
// bracket matching and line comments.
type Support struct {
	Language *Language

	openers []string          // Longest first
	closers map[string]string // Opening bracket or quote to its closer
}

// NewSupport wraps lang.
func NewSupport(lang *Language) *Support {
	s := &Support{Language: lang, closers: make(map[string]string)}
	for _, open := range lang.Data().CloseBrackets {
		closer, ok := closerFor[open]
		if !ok {
			closer = open // Quotes close themselves
		}
		s.closers[open] = closer
		s.openers = append(s.openers, open)
	}
	sort.SliceStable(s.openers, func(i, j int) bool {
		return len(s.openers[i]) > len(s.openers[j])
	})
	return s
}

// AutoClose returns the text to insert after the cursor when typed is entered
// after before. Longer brackets win, so typing the third quote of `'''` closes
// with `'''`.
func (s *Support) AutoClose(before string, typed rune) (string, bool) {
	text := before + string(typed)
	for _, open := range s.openers {
		if strings.HasSuffix(text, open) {
			return s.closers[open], true
		}
	}
	return "", false
}

// SkipsOver reports whether typing typed in front of after should move the
// cursor over an automatically inserted closer instead of inserting.
func (s *Support) SkipsOver(typed rune, after string) bool {
	ch := string(typed)
	if !strings.HasPrefix(after, ch) {
		return false
	}
	for _, closer := range s.closers {
		if closer == ch {
			return true
		}
	}
	return false
}

// MatchBracket finds the bracket paired with the one starting at pos, using
// the tree rather than counting characters, so brackets inside strings and
// comments are never paired.
func (s *Support) MatchBracket(tree *Tree, pos int) (int, bool) {
	tok := tree.Resolve(pos, 1)
	parent := tok.Parent()
	if tok.ChildCount() != 0 || tok.From() != pos || parent == nil {
		return 0, false
	}
	first, last := parent.FirstChild(), parent.LastChild()
	switch {
	case tok == first && closerFor[tok.Kind()] != "" && last.Kind() == closerFor[tok.Kind()]:
		return last.From(), true
	case tok == last && first != last && closerFor[first.Kind()] == tok.Kind():
		return first.From(), true
	}
	return 0, false
}

// ToggleComment comments out lines with the language's line comment, or
// uncomments them when every non-blank line is already commented. The comment
// marker goes at the smallest indentation among the lines.
func (s *Support) ToggleComment(lines []string) []string {
	marker := s.Language.Data().LineComment
	if marker == "" {
		return lines
	}
	out := make([]string, len(lines))
	commented := true
	minIndent := -1
	for _, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, marker) {
			commented = false
		}
		if ind := len(l) - len(trimmed); minIndent < 0 || ind < minIndent {
			minIndent = ind
		}
	}
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		switch {
		case trimmed == "":
			out[i] = l
		case commented:
			indent := l[:len(l)-len(trimmed)]
			rest := strings.TrimPrefix(trimmed, marker)
			out[i] = indent + strings.TrimPrefix(rest, " ")
		default:
			out[i] = l[:minIndent] + marker + " " + l[minIndent:]
		}
	}
	return out
}
