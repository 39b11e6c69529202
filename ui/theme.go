package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/pyedit/syntax"
	"github.com/fivemoreminix/pyedit/ui/buffer"
)

// A Theme is a map of string names to styles. Themes can be passed by reference to components
// to set their styles. If a theme value cannot be found, then the `DefaultTheme` value will be
// used, instead. An updated list of theme keys can be found on the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"StatusBar":      tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"StatusBarError": tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon),
	"TextEditFolded": tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	"TextEditMatch":  tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal),
}

// DefaultColorscheme colors the broad highlight categories. Everything more specific
// falls back to these.
var DefaultColorscheme = buffer.Colorscheme{
	syntax.Default.Tag():                       tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	syntax.Column.Tag():                        tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	syntax.Comment.Tag():                       tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	syntax.Keyword.Tag():                       tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack).Bold(true),
	syntax.Modifier.Tag():                      tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	syntax.Self.Tag():                          tcell.Style{}.Foreground(tcell.ColorTeal).Background(tcell.ColorBlack),
	syntax.String.Tag():                        tcell.Style{}.Foreground(tcell.ColorOlive).Background(tcell.ColorBlack),
	syntax.String.Tag().Special():              tcell.Style{}.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
	syntax.Number.Tag():                        tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
	syntax.Literal.Tag():                       tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
	syntax.VariableName.Tag().Function():       tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	syntax.PropertyName.Tag().Function():       tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	syntax.ClassName.Tag():                     tcell.Style{}.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
	syntax.Operator.Tag():                      tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	syntax.Meta.Tag():                          tcell.Style{}.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack),

	syntax.VariableName.Tag().Definition().Function(): tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack).Bold(true),
}
