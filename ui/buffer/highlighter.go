package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/fivemoreminix/pyedit/syntax"
)

type Colorscheme map[syntax.Tag]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given tag. A tag that
// is not in the map falls back to the same tag without its modifiers, then to
// its broader categories, then to Default, and finally to tcell.StyleDefault.
func (c *Colorscheme) GetStyle(tag syntax.Tag) tcell.Style {
	if c != nil {
		for _, t := range tag.Fallbacks() {
			if val, ok := (*c)[t]; ok {
				return val
			}
		}
		if val, ok := (*c)[syntax.Default.Tag()]; ok {
			return val // Use default colorscheme value, instead
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// ParseColorscheme reads overrides of the form tag: "fg[:bg] [bold] [italic]
// [underline] [reverse]", e.g. "function(variableName)": "yellow bold", on top
// of base. base itself is not modified.
func ParseColorscheme(base Colorscheme, overrides map[string]string) (Colorscheme, error) {
	c := make(Colorscheme, len(base)+len(overrides))
	for k, v := range base {
		c[k] = v
	}
	for name, spec := range overrides {
		tag, err := syntax.ParseTag(name)
		if err != nil {
			return nil, errors.Wrap(err, "colorscheme")
		}
		style, err := parseStyle(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "colorscheme entry %s", name)
		}
		c[tag] = style
	}
	return c, nil
}

func parseStyle(spec string) (tcell.Style, error) {
	style := tcell.StyleDefault
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return style, errors.New("empty style")
	}
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "reverse":
			style = style.Reverse(true)
		default:
			fg, bg, hasBg := strings.Cut(f, ":")
			color := tcell.GetColor(fg)
			if color == tcell.ColorDefault && fg != "default" {
				return style, errors.Errorf("unknown color %q", fg)
			}
			style = style.Foreground(color)
			if hasBg {
				color = tcell.GetColor(bg)
				if color == tcell.ColorDefault && bg != "default" {
					return style, errors.Errorf("unknown color %q", bg)
				}
				style = style.Background(color)
			}
		}
	}
	return style, nil
}

// A Match is a highlighted run of runes on one line.
type Match struct {
	Col    int
	EndCol int // Inclusive
	Tag    syntax.Tag
}

// ByCol implements sort.Interface for []Match based on the Col field.
type ByCol []Match

func (c ByCol) Len() int           { return len(c) }
func (c ByCol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c ByCol) Less(i, j int) bool { return c[i].Col < c[j].Col }

// A Highlighter can answer how to color any part of a provided Buffer. It does so
// by running the language's style table over the buffer's syntax tree.
type Highlighter struct {
	Buffer      Buffer
	Support     *syntax.Support
	Colorscheme *Colorscheme

	lineMatches [][]Match
}

func NewHighlighter(buffer Buffer, support *syntax.Support, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		buffer,
		support,
		colorscheme,
		make([][]Match, buffer.Lines()),
	}
}

// Update recomputes the matches of every line from tree, which must have been
// parsed from doc, the current contents of the buffer. doc is asked for the line
// of every span, so pass syntax.Lines rather than a bare syntax.Text.
func (h *Highlighter) Update(tree *syntax.Tree, doc syntax.Document) {
	h.lineMatches = make([][]Match, h.Buffer.Lines())
	if h.Support == nil || tree == nil {
		return
	}
	h.Support.Language.Styles().Highlight(tree.Root(), func(from, to int, tag syntax.Tag) {
		for from < to {
			line := doc.LineAt(from)
			end := min(to, line.To)
			if end > from && line.Number < len(h.lineMatches) {
				col := utf8.RuneCountInString(doc.Slice(line.From, from))
				width := utf8.RuneCountInString(doc.Slice(from, end))
				h.lineMatches[line.Number] = append(h.lineMatches[line.Number], Match{col, col + width - 1, tag})
			}
			from = line.To + 1 // Past the delimiter
		}
	})
}

func (h *Highlighter) GetLineMatches(line int) []Match {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	data := h.lineMatches[line]
	sort.Sort(ByCol(data))
	return data
}

func (h *Highlighter) GetStyle(match Match) tcell.Style {
	return h.Colorscheme.GetStyle(match.Tag)
}
