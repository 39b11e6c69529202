package ui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/fivemoreminix/pyedit/syntax"
	"github.com/fivemoreminix/pyedit/ui/buffer"
)

var _ Component = (*TextEdit)(nil)

// TextEdit is a field for line-based editing. When it has a language Support it
// keeps a syntax tree of its contents, which drives highlighting, indentation,
// bracket handling and folding.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	Support     *syntax.Support // Nil for plain text
	LineNumbers bool            // Whether to render line numbers (and therefore the column)
	Dirty       bool            // Whether the buffer has been edited
	UseHardTabs bool            // When true, indentation uses '\t' where it can
	TabSize     int             // How many columns a tab advances to
	IndentUnit  int             // How many columns one indentation level is
	IsCRLF      bool            // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string          // Will be empty if the file has not been saved yet

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	doc      syntax.Lines // Contents as of the last edit
	tree     *syntax.Tree // Nil without a language, or when parsing failed
	folded   []syntax.Range
	foldable map[int]bool // Lines where a fold region starts
	theme    *Theme
	log      *logrus.Entry

	baseComponent
}

// NewTextEdit will initialize the buffer using the given 'contents'. If the 'filePath' is empty,
// it can be assumed that the TextEdit has no file association, or it is unsaved. support may
// be nil for plain text.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, support *syntax.Support, colorscheme *buffer.Colorscheme, theme *Theme) *TextEdit {
	te := &TextEdit{
		Support:     support,
		LineNumbers: true,
		TabSize:     4,
		IndentUnit:  4,
		FilePath:    filePath,

		screen: screen,
		theme:  theme,
		log:    logrus.WithField("file", filePath),
	}
	te.SetContents(contents, colorscheme)
	return te
}

// SetContents applies the string to the internal buffer of the TextEdit component.
// The string is determined to be either CRLF or LF based on line-endings.
func (t *TextEdit) SetContents(contents []byte, colorscheme *buffer.Colorscheme) {
	t.IsCRLF = false
	if i := bytes.IndexByte(contents, '\n'); i > 0 && contents[i-1] == '\r' {
		t.IsCRLF = true
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.Highlighter = buffer.NewHighlighter(t.Buffer, t.Support, colorscheme)
	t.folded = nil
	t.reparse()
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

func (t *TextEdit) indentOptions() syntax.IndentOptions {
	return syntax.IndentOptions{Unit: t.IndentUnit, TabSize: t.TabSize}
}

// Tree returns the syntax tree of the current contents, or nil.
func (t *TextEdit) Tree() *syntax.Tree {
	return t.tree
}

// reparse brings the document snapshot, the tree and the highlighting up to date
// with the buffer.
func (t *TextEdit) reparse() {
	t.doc = syntax.IndexLines(t.Buffer.Bytes())
	t.tree = nil
	t.foldable = nil
	if t.Support != nil {
		tree, err := t.Support.Language.Parse(t.doc.Text)
		if err != nil {
			t.log.WithError(err).Warn("parse failed")
		} else {
			t.tree = tree
			t.foldable = make(map[int]bool)
			for _, r := range t.Support.Language.Folds(tree, t.doc) {
				t.foldable[t.doc.LineAt(r.From).Number] = true
			}
		}
	}
	t.Highlighter.Update(t.tree, t.doc)
}

// replace swaps the bytes between from and to for text, and leaves the cursor at the
// end of the inserted text.
func (t *TextEdit) replace(from, to int, text string) {
	if to > from {
		_, size := utf8.DecodeLastRune(t.doc.Text[:to])
		startLine, startCol := t.Buffer.PosToLineCol(from)
		endLine, endCol := t.Buffer.PosToLineCol(to - size)
		t.Buffer.Remove(startLine, startCol, endLine, endCol)
	}
	if text != "" {
		line, col := t.Buffer.PosToLineCol(from)
		t.Buffer.Insert(line, col, []byte(text))
	}
	t.Dirty = true
	t.folded = nil // Offsets are stale
	t.reparse()
	t.cursor = t.cursor.SetPos(from + len(text))
}

// Insert writes `contents` at the cursor position, as is. Line delimiters are
// converted to the buffer's own.
func (t *TextEdit) Insert(contents string) {
	contents = strings.ReplaceAll(contents, "\r\n", "\n")
	if t.IsCRLF {
		contents = strings.ReplaceAll(contents, "\n", "\r\n")
	}
	pos := t.cursor.Pos()
	t.replace(pos, pos, contents)
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
func (t *TextEdit) Delete(forwards bool) {
	pos := t.cursor.Pos()
	doc := t.doc
	if forwards {
		if pos >= doc.Len() {
			return
		}
		_, size := utf8.DecodeRune(doc.Text[pos:])
		if strings.HasPrefix(string(doc.Text[pos:]), "\r\n") {
			size = 2
		}
		t.replace(pos, pos+size, "")
	} else {
		if pos <= 0 {
			return
		}
		line := doc.LineAt(pos)
		before := doc.Slice(line.From, pos)
		from, to := pos, pos
		switch {
		case before != "" && !t.UseHardTabs && strings.Trim(before, " ") == "":
			// Back up to the previous indentation stop
			unit := max(t.IndentUnit, 1)
			from -= (len(before)-1)%unit + 1
		case t.Support != nil && t.isEmptyPair(before, doc.Slice(pos, line.To)):
			from, to = pos-1, pos+1
		default:
			_, size := utf8.DecodeLastRune(doc.Text[:pos])
			if strings.HasSuffix(string(doc.Text[:pos]), "\r\n") {
				size = 2
			}
			from -= size
		}
		t.replace(from, to, "")
	}
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// isEmptyPair reports whether the cursor sits between a bracket or quote and its
// automatically inserted closer.
func (t *TextEdit) isEmptyPair(before, after string) bool {
	if before == "" || after == "" {
		return false
	}
	closer, ok := t.Support.AutoClose(before[:len(before)-1], rune(before[len(before)-1]))
	return ok && len(closer) == 1 && after[0] == closer[0]
}

// TypeRune inserts a character the way typing it would: closing brackets and quotes
// are skipped over or inserted automatically, and lines the language wants
// re-indented once typed (like a dedenting `else:`) are re-indented.
func (t *TextEdit) TypeRune(r rune) {
	pos := t.cursor.Pos()
	line := t.doc.LineAt(pos)
	before, after := t.doc.Slice(line.From, pos), t.doc.Slice(pos, line.To)

	if t.Support != nil && t.Support.SkipsOver(r, after) {
		t.cursor = t.cursor.SetPos(pos + utf8.RuneLen(r))
		t.ScrollToCursor()
		t.updateCursorVisibility()
		return
	}

	t.replace(pos, pos, string(r))
	if t.Support == nil {
		t.ScrollToCursor()
		t.updateCursorVisibility()
		return
	}

	end := pos + utf8.RuneLen(r)
	if closer, ok := t.Support.AutoClose(before, r); ok && closesHere(before, after, r) {
		t.replace(end, end, closer)
		t.cursor = t.cursor.SetPos(end)
	}
	if re := t.Support.Language.Data().IndentOnInput; re != nil && re.MatchString(before+string(r)) {
		t.ReindentLine()
	}
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// closesHere decides whether an opener just typed should get its closer. Brackets
// close in front of whitespace and closing punctuation. Quotes also need to not be
// glued to a word, unless that word is a string prefix like f or rb.
func closesHere(before, after string, typed rune) bool {
	if next, _ := utf8.DecodeRuneInString(after); after != "" && !unicode.IsSpace(next) && !strings.ContainsRune(")]}:,;", next) {
		return false
	}
	if typed != '\'' && typed != '"' {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(before)
	if before == "" || (!unicode.IsLetter(prev) && !unicode.IsDigit(prev) && prev != '_') {
		return true
	}
	word := before[strings.LastIndexFunc(before, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})+1:]
	switch strings.ToLower(word) {
	case "f", "r", "b", "u", "fr", "rf", "br", "rb":
		return true
	}
	return false
}

// indentationAt asks the language for the indentation of the line starting at pos.
func (t *TextEdit) indentationAt(pos int) (int, bool) {
	if t.Support == nil || t.tree == nil {
		return 0, false
	}
	return t.Support.Language.Indentation(t.tree, t.doc, pos, t.indentOptions())
}

// Newline breaks the line at the cursor and indents the new line. Whitespace around
// the cursor is dropped. Without an answer from the language, the new line copies
// the indentation of the one it was split from.
func (t *TextEdit) Newline() {
	pos := t.cursor.Pos()
	line := t.doc.LineAt(pos)
	before, after := t.doc.Slice(line.From, pos), t.doc.Slice(pos, line.To)
	from := pos - (len(before) - len(strings.TrimRight(before, " \t")))
	to := pos + (len(after) - len(strings.TrimLeft(after, " \t")))

	t.replace(from, to, t.GetLineDelimiter())
	start := t.cursor.Pos()
	cols, ok := t.indentationAt(start)
	if !ok {
		cols = syntax.CountIndent(line.Text, t.TabSize)
	}
	t.log.WithFields(logrus.Fields{"line": line.Number + 1, "cols": cols, "language": ok}).Debug("newline")
	t.replace(start, start, syntax.IndentString(cols, t.indentOptions(), t.UseHardTabs))
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// ReindentLine sets the indentation of the cursor's line to what the language asks
// for, keeping the cursor on the same character. It reports whether the language
// had an answer.
func (t *TextEdit) ReindentLine() bool {
	pos := t.cursor.Pos()
	line := t.doc.LineAt(pos)
	cols, ok := t.indentationAt(line.From)
	if !ok {
		return false
	}
	ws := len(line.Text) - len(strings.TrimLeft(line.Text, " \t"))
	offset := max(pos-(line.From+ws), 0)
	indent := syntax.IndentString(cols, t.indentOptions(), t.UseHardTabs)
	if line.Text[:ws] != indent {
		t.replace(line.From, line.From+ws, indent)
		t.log.WithFields(logrus.Fields{"line": line.Number + 1, "cols": cols}).Debug("reindent")
	}
	t.cursor = t.cursor.SetPos(line.From + len(indent) + offset)
	return true
}

// ToggleComment comments or uncomments the cursor's line.
func (t *TextEdit) ToggleComment() {
	if t.Support == nil {
		return
	}
	pos := t.cursor.Pos()
	line := t.doc.LineAt(pos)
	out := t.Support.ToggleComment([]string{line.Text})[0]
	if out == line.Text {
		return
	}
	offset := pos - line.From
	t.replace(line.From, line.From+len(line.Text), out)
	t.cursor = t.cursor.SetPos(line.From + max(0, min(len(out), offset+len(out)-len(line.Text))))
	t.updateCursorVisibility()
}

// ToggleFold folds the innermost region starting on the cursor's line, or unfolds it
// when it is already folded.
func (t *TextEdit) ToggleFold() {
	if t.Support == nil || t.tree == nil {
		return
	}
	line := t.doc.LineAt(t.cursor.Pos())
	for i, r := range t.folded {
		if t.doc.LineAt(r.From).Number == line.Number {
			t.folded = append(t.folded[:i], t.folded[i+1:]...)
			return
		}
	}
	if r, ok := t.Support.Language.FoldAt(t.tree, t.doc, line); ok {
		t.folded = append(t.folded, r)
		t.log.WithField("line", line.Number+1).Debug("fold")
		t.ScrollToCursor()
	}
}

// hiddenLines maps each line hidden by a fold to the line of its fold header. The
// last line of a region stays visible when something other than whitespace
// follows the region on it, like a closing bracket.
func (t *TextEdit) hiddenLines() map[int]int {
	hidden := make(map[int]int)
	for _, r := range t.folded {
		header := t.doc.LineAt(r.From).Number
		end := t.doc.LineAt(r.To)
		last := end.Number
		if strings.TrimSpace(t.doc.Slice(r.To, end.To)) != "" {
			last--
		}
		for l := header + 1; l <= last; l++ {
			if _, ok := hidden[l]; !ok {
				hidden[l] = header
			}
		}
	}
	return hidden
}

// visibleLines lists the buffer lines that are drawn, in order.
func (t *TextEdit) visibleLines() []int {
	hidden := t.hiddenLines()
	lines := make([]int, 0, t.Buffer.Lines())
	for l := 0; l < t.Buffer.Lines(); l++ {
		if _, ok := hidden[l]; !ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// visibleIndex returns the index of line among the visible lines, or of the
// fold header hiding it.
func (t *TextEdit) visibleIndex(visible []int, line int) int {
	if header, ok := t.hiddenLines()[line]; ok {
		line = header
	}
	for i, l := range visible {
		if l >= line {
			return i
		}
	}
	return len(visible) - 1
}

// moveVertical moves the cursor by delta visible lines.
func (t *TextEdit) moveVertical(delta int) {
	visible := t.visibleLines()
	line, col := t.cursor.GetLineCol()
	idx := t.visibleIndex(visible, line) + delta
	switch {
	case idx < 0:
		t.cursor = t.cursor.SetLineCol(0, 0)
	case idx >= len(visible):
		t.cursor = t.cursor.SetLineCol(visible[len(visible)-1], col).End()
	default:
		t.cursor = t.cursor.SetLineCol(visible[idx], col)
	}
}

// skipHidden moves a cursor that ended up inside a fold out of it.
func (t *TextEdit) skipHidden(forward bool) {
	line, _ := t.cursor.GetLineCol()
	header, ok := t.hiddenLines()[line]
	if !ok {
		return
	}
	if !forward {
		t.cursor = t.cursor.SetLineCol(header, 0).End()
		return
	}
	visible := t.visibleLines()
	if idx := t.visibleIndex(visible, header) + 1; idx < len(visible) {
		t.cursor = t.cursor.SetLineCol(visible[idx], 0)
	} else {
		t.cursor = t.cursor.SetLineCol(header, 0).End()
	}
}

// visualCol returns the screen column, before scrolling, of rune col in text.
func (t *TextEdit) visualCol(text string, col int) int {
	var vcol, i int
	for _, r := range text {
		if i >= col {
			break
		}
		vcol += t.runeWidth(r, vcol)
		i++
	}
	return vcol
}

func (t *TextEdit) runeWidth(r rune, vcol int) int {
	if r == '\t' {
		return t.TabSize - vcol%t.TabSize
	}
	return max(runewidth.RuneWidth(r), 1)
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Sends a signal to show the cursor if the TextEdit
// is focused.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && t.screen != nil {
		line, col := t.cursor.GetLineCol()
		row := t.visibleIndex(t.visibleLines(), line) - t.scrolly
		vcol := t.visualCol(buffer.LineText(t.Buffer, line), col)
		(*t.screen).ShowCursor(t.x+t.getColumnWidth()+vcol-t.scrollx, t.y+row)
	}
}

// Scroll the screen if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()
	row := t.visibleIndex(t.visibleLines(), line)

	// Scroll the screen when going to lines out of view
	if row >= t.scrolly+t.height { // If the new line is below view...
		t.scrolly = row - t.height + 1 // Scroll just enough to view that line
	} else if row < t.scrolly { // If the new line is above view
		t.scrolly = row
	}

	textWidth := t.width - t.getColumnWidth()
	vcol := t.visualCol(buffer.LineText(t.Buffer, line), col)

	// Scroll the screen horizontally when going to columns out of view
	if vcol >= t.scrollx+textWidth { // If the new column is right of view
		t.scrollx = vcol - textWidth + 1 // Scroll just enough to view that column
	} else if vcol < t.scrollx { // If the new column is left of view
		t.scrollx = vcol // Scroll left enough to view that column
	}
	t.scrolly = max(t.scrolly, 0)
	t.scrollx = max(t.scrollx, 0)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.updateCursorVisibility()
}

// getColumnWidth returns the width of the line numbers column if it is present: the
// digits, a fold marker and the separator.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(4, 2+len(strconv.Itoa(t.Buffer.Lines())))
	}
	return columnWidth
}

// CurrentLine returns the cursor's line without its delimiter.
func (t *TextEdit) CurrentLine() string {
	line, _ := t.cursor.GetLineCol()
	return buffer.LineText(t.Buffer, line)
}

// DeleteLine removes the cursor's line, delimiter included.
func (t *TextEdit) DeleteLine() {
	line := t.doc.LineAt(t.cursor.Pos())
	to := line.To
	if to < t.doc.Len() {
		to++ // The '\n'
	}
	t.replace(line.From, to, "")
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// bracketMatch returns the byte offsets of the bracket at or just before the cursor
// and its partner.
func (t *TextEdit) bracketMatch() (int, int, bool) {
	if t.Support == nil || t.tree == nil {
		return 0, 0, false
	}
	pos := t.cursor.Pos()
	if m, ok := t.Support.MatchBracket(t.tree, pos); ok {
		return pos, m, true
	}
	if pos > 0 {
		if m, ok := t.Support.MatchBracket(t.tree, pos-1); ok {
			return pos - 1, m, true
		}
	}
	return 0, 0, false
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	visible := t.visibleLines()
	folded := make(map[int]bool)
	for _, r := range t.folded {
		folded[t.doc.LineAt(r.From).Number] = true
	}

	defaultStyle := t.Highlighter.Colorscheme.GetStyle(syntax.Default.Tag())
	columnStyle := t.Highlighter.Colorscheme.GetStyle(syntax.Column.Tag())
	foldStyle := t.theme.GetOrDefault("TextEditFolded")
	matchStyle := t.theme.GetOrDefault("TextEditMatch")

	var marks []int
	if a, b, ok := t.bracketMatch(); ok {
		marks = []int{a, b}
	}

	for row := 0; row < t.height; row++ {
		y := t.y + row
		DrawRect(s, t.x, y, t.width, 1, ' ', defaultStyle)

		lineNumStr := ""
		marker := ' '
		if idx := row + t.scrolly; idx < len(visible) {
			line := visible[idx]
			lineNumStr = strconv.Itoa(line + 1)
			switch {
			case folded[line]:
				marker = '+'
			case t.foldable[line]:
				marker = '-'
			}
			end := t.drawLine(s, line, y, columnWidth, defaultStyle, matchStyle, marks)
			if folded[line] && end < t.x+t.width {
				DrawStr(s, end+1, y, "...", foldStyle)
			}
		}

		if t.LineNumbers {
			columnStr := fmt.Sprintf("%*s%c│", columnWidth-2, lineNumStr, marker) // Right align line number
			DrawStr(s, t.x, y, columnStr, columnStyle)                           // Draw column
		}
	}

	t.updateCursorVisibility()
}

// drawLine draws one buffer line at screen row y and returns the screen column
// after its last character.
func (t *TextEdit) drawLine(s tcell.Screen, line, y, columnWidth int, defaultStyle, matchStyle tcell.Style, marks []int) int {
	text := buffer.LineText(t.Buffer, line)
	matches := t.Highlighter.GetLineMatches(line)
	pos := t.Buffer.LineColToPos(line, 0)
	left := t.x + columnWidth

	var vcol, mi, runeIdx int
	for _, r := range text {
		for mi < len(matches) && matches[mi].EndCol < runeIdx {
			mi++ // Passed that highlight data
		}
		style := defaultStyle
		if mi < len(matches) && matches[mi].Col <= runeIdx {
			style = t.Highlighter.GetStyle(matches[mi])
		}
		for _, m := range marks {
			if m == pos {
				style = matchStyle
			}
		}

		width := t.runeWidth(r, vcol)
		if r == '\t' {
			r = ' '
		}
		for i := 0; i < width; i++ {
			x := left + vcol + i - t.scrollx
			if x >= left && x < t.x+t.width {
				if i == 0 {
					s.SetContent(x, y, r, nil, style)
				} else if r == ' ' {
					s.SetContent(x, y, ' ', nil, style)
				}
			}
		}
		vcol += width
		pos += utf8.RuneLen(r)
		runeIdx++
	}
	return left + vcol - t.scrollx
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		(*t.screen).HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.moveVertical(-1)
		case tcell.KeyDown:
			t.moveVertical(1)
		case tcell.KeyLeft:
			t.cursor = t.cursor.Left()
			t.skipHidden(false)
		case tcell.KeyRight:
			t.cursor = t.cursor.Right()
			t.skipHidden(true)
		case tcell.KeyHome:
			t.cursor = t.cursor.Home()
		case tcell.KeyEnd:
			t.cursor = t.cursor.End()
		case tcell.KeyPgUp:
			t.moveVertical(-t.height) // Go a page up
		case tcell.KeyPgDn:
			t.moveVertical(t.height) // Go a page down

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			if t.UseHardTabs {
				t.Insert("\t")
			} else {
				t.Insert(strings.Repeat(" ", t.IndentUnit))
			}
		case tcell.KeyEnter:
			t.Newline()
		case tcell.KeyCtrlUnderscore:
			t.ToggleComment()
		case tcell.KeyCtrlT:
			t.ToggleFold()

		// Inserting
		case tcell.KeyRune:
			t.TypeRune(ev.Rune())
		default:
			return false
		}
		t.ScrollToCursor()
		t.updateCursorVisibility()
		return true
	}
	return false
}
