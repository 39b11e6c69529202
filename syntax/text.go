package syntax

import (
	"bytes"
	"sort"
)

// A Line is one line of a Document, without its line delimiter.
type Line struct {
	Number   int // Starts at zero
	From, To int
	Text     string
}

// Document is the read-only view of the text a tree was parsed from.
type Document interface {
	// LineAt returns the line containing the byte offset pos. A pos equal to
	// Len() belongs to the last line.
	LineAt(pos int) Line
	// Slice returns the text between two byte offsets.
	Slice(from, to int) string
	Len() int
}

// Text is a Document over a byte slice. The slice must not change while the
// Text is in use. Its LineAt counts lines from the start of the text; see Lines
// for a Document that answers many LineAt calls.
type Text []byte

func (t Text) Len() int { return len(t) }

func (t Text) Slice(from, to int) string {
	return string(t[from:to])
}

func (t Text) LineAt(pos int) Line {
	if pos < 0 {
		pos = 0
	} else if pos > len(t) {
		pos = len(t)
	}
	from := bytes.LastIndexByte(t[:pos], '\n') + 1
	to := len(t)
	if i := bytes.IndexByte(t[from:], '\n'); i >= 0 {
		to = from + i
	}
	return t.line(bytes.Count(t[:from], []byte{'\n'}), from, to)
}

func (t Text) line(number, from, to int) Line {
	text := t[from:to]
	if n := len(text); n > 0 && text[n-1] == '\r' { // CRLF
		text = text[:n-1]
	}
	return Line{Number: number, From: from, To: to, Text: string(text)}
}

// Lines is a Text with the start of every line indexed, so finding a line is a
// binary search rather than a scan from the top. Build one per snapshot.
type Lines struct {
	Text
	starts []int
}

// IndexLines indexes the lines of t.
func IndexLines(t Text) Lines {
	starts := []int{0}
	for i, b := range t {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Lines{Text: t, starts: starts}
}

func (l Lines) LineAt(pos int) Line {
	if len(l.starts) == 0 {
		return l.Text.LineAt(pos)
	}
	pos = min(max(pos, 0), len(l.Text))
	n := sort.SearchInts(l.starts, pos+1) - 1
	to := len(l.Text)
	if n+1 < len(l.starts) {
		to = l.starts[n+1] - 1
	}
	return l.Text.line(n, l.starts[n], to)
}
