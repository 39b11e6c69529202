package buffer

import "math"

// The cursor needs a reference to the buffer to know where lines end and how it
// can move. The buffer is the city, and the Cursor is the car.

type position struct {
	line int
	col  int
}

// A Cursor's functions emulate common cursor actions. Cursors are values: every
// movement returns the moved Cursor and leaves the receiver alone.
type Cursor struct {
	buffer *Buffer
	position
}

func NewCursor(in *Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = (*c.buffer).RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= (*c.buffer).RunesInLine(c.line) && c.line < (*c.buffer).Lines()-1 {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, c.col+1)
	}
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line-1, c.col)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == (*c.buffer).Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, c.col)
	}
	return c
}

// Home moves to the first non-blank column of the line, or to column zero when
// already there.
func (c Cursor) Home() Cursor {
	text := LineText(*c.buffer, c.line)
	indent := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		indent++
	}
	if c.col == indent {
		indent = 0
	}
	c.col = indent
	return c
}

func (c Cursor) End() Cursor {
	c.col = (*c.buffer).RunesInLine(c.line)
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// Pos is the byte offset of the cursor in the buffer.
func (c Cursor) Pos() int {
	return (*c.buffer).LineColToPos(c.line, c.col)
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = (*c.buffer).ClampLineCol(line, col)
	return c
}

// SetPos moves the cursor to the rune at byte offset pos.
func (c Cursor) SetPos(pos int) Cursor {
	return c.SetLineCol((*c.buffer).PosToLineCol(pos))
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}
