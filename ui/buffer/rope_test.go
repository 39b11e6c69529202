package buffer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRopePosToLineCol(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("line0\nline1\n\nline3\n"))
	//line0
	//line1
	//
	//line3
	//

	startLine, startCol := buf.PosToLineCol(0)
	assert.Equal(t, 0, startLine)
	assert.Equal(t, 0, startCol)

	endLine, endCol := buf.PosToLineCol(buf.Len() - 1)
	assert.Equal(t, 3, endLine)
	assert.Equal(t, 5, endCol)

	line1Line, line1Col := buf.PosToLineCol(11) // Byte index of the delim separating line1 and line 2
	assert.Equal(t, 1, line1Line)
	assert.Equal(t, 5, line1Col)

	lastLine, lastCol := buf.PosToLineCol(buf.Len() + 10)
	assert.Equal(t, 4, lastLine)
	assert.Equal(t, 0, lastCol)
}

func TestRopeMultibyteColumns(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("s = 'é'\nx"))
	// 'é' is two bytes, so the closing quote is column 6 but byte 7.
	assert.Equal(t, 7, buf.LineColToPos(0, 6))
	line, col := buf.PosToLineCol(7)
	assert.Equal(t, 0, line)
	assert.Equal(t, 6, col)

	assert.Equal(t, 9, buf.LineColToPos(1, 0))
	assert.Equal(t, 8, buf.LineColToPos(0, 100), "clamped to the delimiter")
}

func TestRopeInserting(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("some"))
	buf.Insert(0, 4, []byte(" text\n")) // Insert " text" after "some"
	buf.Insert(0, 0, []byte("with\n\t"))
	//with
	//	some text
	//

	buf.Remove(0, 4, 1, 5) // Delete from line 0, col 4, to line 1, col 6 "\n\tsome "

	assert.Equal(t, "withtext\n", string(buf.Bytes()))
}

func TestRopeRemoveMultibyte(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("aéb"))
	buf.Remove(0, 1, 0, 1)
	assert.Equal(t, "ab", string(buf.Bytes()))
}

func TestRopeBounds(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("this\nis (は)\n\tsome\ntext\n"))
	//this
	//is (は)
	//	some
	//text
	//

	assert.Equal(t, 5, buf.Lines())
	assert.Equal(t, 6, buf.RunesInLine(1), "\"is\" in English and in japanese")
	assert.Equal(t, 0, buf.RunesInLineWithDelim(4))
	assert.Equal(t, 6, buf.RunesInLineWithDelim(2))

	line, col := buf.ClampLineCol(15, 5) // Should become last line, first column
	assert.Equal(t, [2]int{4, 0}, [2]int{line, col})

	line, col = buf.ClampLineCol(4, -1)
	assert.Equal(t, [2]int{4, 0}, [2]int{line, col})

	line, col = buf.ClampLineCol(2, 5) // Should be third line, pointing at the newline char
	assert.Equal(t, [2]int{2, 5}, [2]int{line, col})

	assert.Equal(t, "\tsome\n", string(buf.Line(2)))
	assert.Equal(t, "", string(buf.Line(4)))
	assert.Equal(t, "\tsome", LineText(buf, 2))
}

func TestRopeCRLF(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("ab\r\ncd"))
	assert.Equal(t, 2, buf.RunesInLine(0))
	assert.Equal(t, 4, buf.RunesInLineWithDelim(0))
	assert.Equal(t, "ab", LineText(buf, 0))
	assert.Equal(t, 2, buf.LineColToPos(0, 2))
}

func TestRopeCount(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("\t\tlot of\n\ttabs"))

	assert.Equal(t, 2, buf.Count(0, 0, 0, 7, []byte{'\t'}), "tabs before 'of'")
	assert.Equal(t, 0, buf.Count(0, 0, 0, 0, []byte{'\t'}), "no tabs at column zero")
}

func TestRopeSlice(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("abc\ndef\n"))

	// Position points to after the newline char
	assert.Equal(t, "abc\ndef\n", string(buf.Slice(0, 0, 2, 0)))
	assert.Equal(t, "def\n", string(buf.Slice(1, 0, 1, 3)))
}

func TestRopeWriteTo(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("print(1)\n"))
	var out bytes.Buffer
	n, err := buf.WriteTo(&out)
	assert.NoError(t, err)
	assert.EqualValues(t, 9, n)
	assert.Equal(t, "print(1)\n", out.String())
}
