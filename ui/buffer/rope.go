package buffer

import (
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

// LineColToPos returns the index of the byte at line, col. If line is less than
// zero, or more than the number of available lines, the function will panic. If
// col is less than zero, the function will panic. If col is greater than the
// length of the line, the position of the line delimiter is returned, instead.
func (b *RopeBuffer) LineColToPos(line, col int) int {
	pos := b.getLineStartPos(line)

	if col > 0 {
		b.eachByteFrom(pos, func(data []byte, i int) (int, bool) {
			if col == 0 || data[i] == '\n' {
				return 0, true // Found the position of the column
			}
			// Respect Utf-8 codepoint boundaries
			_, size := utf8.DecodeRune(data[i:])
			pos += size
			col--
			return size, false
		})
	}

	return pos
}

// eachByteFrom walks the leaves of the rope from pos to the end, calling fn with
// the leaf data and an index into it. fn returns how far to advance, and true to
// stop.
func (b *RopeBuffer) eachByteFrom(pos int, fn func(data []byte, i int) (int, bool)) {
	_rope := (*rope.Node)(b)
	_, r := _rope.SplitAt(pos)
	r.EachLeaf(func(n *rope.Node) bool {
		data := n.Value() // Reference; not a copy.
		for i := 0; i < len(data); {
			size, stop := fn(data, i)
			if stop {
				return true
			}
			if size < 1 {
				size = 1
			}
			i += size
		}
		return false
	})
}

// Line returns a slice of the data at the given line, including the ending line-
// delimiter. line starts from zero. Data returned may or may not be a copy: do not
// write it.
func (b *RopeBuffer) Line(line int) []byte {
	pos := b.getLineStartPos(line)
	bytes := 0

	b.eachByteFrom(pos, func(data []byte, i int) (int, bool) {
		bytes++
		return 1, data[i] == '\n' // Read (past-tense) the whole line
	})

	return (*rope.Node)(b).Slice(pos, pos+bytes)
}

// Returns a slice of the buffer from startLine, startCol, to endLine, endCol,
// inclusive bounds. The returned value may or may not be a copy of the data,
// so do not write to it.
func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	endPos := b.LineColToPos(endLine, endCol) + 1
	if length := (*rope.Node)(b).Len(); endPos > length {
		endPos = length
	}
	return (*rope.Node)(b).Slice(b.LineColToPos(startLine, startCol), endPos)
}

// Bytes returns all of the bytes in the buffer. This function is very likely
// to copy all of the data in the buffer. Use sparingly. Try using other methods,
// where possible.
func (b *RopeBuffer) Bytes() []byte {
	return (*rope.Node)(b).Value()
}

// Insert copies a byte slice (inserting it) into the position at line, col.
func (b *RopeBuffer) Insert(line, col int, value []byte) {
	(*rope.Node)(b).Insert(b.LineColToPos(line, col), value)
}

// Remove deletes any characters between startLine, startCol, and endLine,
// endCol, inclusive bounds.
func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)
	if end < b.Len() {
		_, size := utf8.DecodeRune(b.byteRange(end, min(end+utf8.UTFMax, b.Len())))
		end += size
	}

	if start > end {
		start = end
	}

	(*rope.Node)(b).Remove(start, end)
}

func (b *RopeBuffer) byteRange(from, to int) []byte {
	return (*rope.Node)(b).Slice(from, to)
}

// Returns the number of occurrences of 'sequence' in the buffer, within the range
// of start line and col, to end line and col. End is exclusive.
func (b *RopeBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	startPos := b.LineColToPos(startLine, startCol)
	endPos := b.LineColToPos(endLine, endCol)
	return (*rope.Node)(b).Count(startPos, endPos, sequence)
}

// Len returns the number of bytes in the buffer.
func (b *RopeBuffer) Len() int {
	return (*rope.Node)(b).Len()
}

// Lines returns the number of lines in the buffer. If the buffer is empty,
// 1 is returned, because there is always at least one line. This function
// basically counts the number of newline ('\n') characters in a buffer.
func (b *RopeBuffer) Lines() int {
	rope := (*rope.Node)(b)
	return rope.Count(0, rope.Len(), []byte{'\n'}) + 1
}

// getLineStartPos returns the first byte index of the given line (starting from zero).
// The returned index can be equal to the length of the buffer, not pointing to any byte,
// which means the byte is on the last, and empty, line of the buffer. If line is greater
// than or equal to the number of lines in the buffer, a panic is issued.
func (b *RopeBuffer) getLineStartPos(line int) int {
	_rope := (*rope.Node)(b)
	var pos int

	if line > 0 {
		_rope.IndexAllFunc(0, _rope.Len(), []byte{'\n'}, func(idx int) bool {
			line--
			pos = idx + 1  // idx+1 = start of line after delimiter
			return line <= 0 // Stop once pos is the start of the line we're searching for
		})
	}

	if line > 0 { // If there aren't enough lines to reach line...
		panic("getLineStartPos: not enough lines in buffer to reach position")
	}

	return pos
}

// RunesInLineWithDelim returns the number of runes in the given line. That is, the
// number of Utf-8 codepoints in the line, not bytes. Includes the line delimiter
// in the count. If that line delimiter is CRLF ('\r\n'), then it adds two.
func (b *RopeBuffer) RunesInLineWithDelim(line int) int {
	var count int
	b.eachByteFrom(b.getLineStartPos(line), func(data []byte, i int) (int, bool) {
		count++
		_, size := utf8.DecodeRune(data[i:])
		return size, data[i] == '\n'
	})
	return count
}

// RunesInLine returns the number of runes in the given line. That is, the
// number of Utf-8 codepoints in the line, not bytes. Excludes line delimiters.
func (b *RopeBuffer) RunesInLine(line int) int {
	var count int
	var isCR bool // true if the last byte was '\r'
	b.eachByteFrom(b.getLineStartPos(line), func(data []byte, i int) (int, bool) {
		if data[i] == '\n' {
			return 0, true // Read (past-tense) the whole line
		}
		if isCR {
			count++ // Add the '\r' we previously thought was part of the delim.
		}
		isCR = data[i] == '\r'
		if !isCR {
			count++
		}
		_, size := utf8.DecodeRune(data[i:])
		return size, false
	})
	if isCR {
		count++ // A lone '\r' at the end of the buffer
	}
	return count
}

// ClampLineCol is a utility function to clamp any provided line and col to
// only possible values within the buffer, pointing to runes. It first clamps
// the line, then clamps the column. The column is clamped between zero and
// the last rune before the line delimiter.
func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

// PosToLineCol converts a byte offset (position) of the buffer's bytes, into
// a line and column. Position will be clamped.
func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	var line, col int
	if pos <= 0 {
		return line, col
	}
	if l := b.Len(); pos > l {
		pos = l
	}

	b.eachByteFrom(0, func(data []byte, i int) (int, bool) {
		if pos <= 0 {
			return 0, true
		}
		if data[i] == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
		_, size := utf8.DecodeRune(data[i:])
		pos -= size
		return size, false
	})

	return line, col
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return (*rope.Node)(b).WriteTo(w)
}
