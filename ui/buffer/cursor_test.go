package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorMovement(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("def f():\n    pass\n"))
	c := NewCursor(&buf)

	c = c.End()
	line, col := c.GetLineCol()
	assert.Equal(t, [2]int{0, 8}, [2]int{line, col})

	c = c.Right() // Wraps to the next line
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{1, 0}, [2]int{line, col})

	c = c.Home()
	_, col = c.GetLineCol()
	assert.Equal(t, 4, col, "home goes to the first non-blank")
	c = c.Home()
	_, col = c.GetLineCol()
	assert.Equal(t, 0, col, "and then to column zero")

	c = c.Left()
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{0, 8}, [2]int{line, col})

	c = c.Down().Down()
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{2, 0}, [2]int{line, col})

	c = c.Up().Up().Up()
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{0, 0}, [2]int{line, col})
}

func TestCursorPos(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("é = 1\nx"))
	c := NewCursor(&buf).SetLineCol(0, 1)
	assert.Equal(t, 2, c.Pos())

	c = c.SetPos(7)
	line, col := c.GetLineCol()
	assert.Equal(t, [2]int{1, 0}, [2]int{line, col})
	assert.True(t, c.Eq(NewCursor(&buf).SetLineCol(1, 0)))
}
