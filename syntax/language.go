package syntax

import (
	"regexp"
	"strings"
)

// A Parser turns source text into a labelled tree. Implementations must be safe
// for concurrent use.
type Parser interface {
	Parse(src []byte) (*Tree, error)
}

// Data is editor-facing metadata a language declares about itself.
type Data struct {
	// CloseBrackets lists the opening brackets and quotes that are closed
	// automatically. Multi-character entries like `"""` are allowed.
	CloseBrackets []string
	// LineComment starts a comment that runs to the end of the line.
	LineComment string
	// IndentOnInput matches the text before the cursor on lines that must be
	// re-indented once typed, like a lone closing bracket.
	IndentOnInput *regexp.Regexp
}

// LanguageConfig is everything needed to define a Language.
type LanguageConfig struct {
	Name      string
	Filetypes []string // .py, .pyi, etc.
	Parser    Parser
	Indent    map[string]IndentRule
	Fold      map[string]FoldRule
	Styles    *StyleTable
	Data      Data
}

// A Language bundles a parser with the rules that describe its trees. It is
// immutable once created.
type Language struct {
	name      string
	filetypes []string
	parser    Parser
	indent    map[string]IndentRule
	fold      map[string]FoldRule
	styles    *StyleTable
	data      Data
}

// NewLanguage copies cfg into a Language. Rule maps may be keyed by several
// space-separated labels at once, as in "ArrayExpression DictionaryExpression".
func NewLanguage(cfg LanguageConfig) *Language {
	l := &Language{
		name:      cfg.Name,
		filetypes: append([]string(nil), cfg.Filetypes...),
		parser:    cfg.Parser,
		indent:    make(map[string]IndentRule),
		fold:      make(map[string]FoldRule),
		styles:    cfg.Styles,
		data:      cfg.Data,
	}
	l.data.CloseBrackets = append([]string(nil), cfg.Data.CloseBrackets...)
	for labels, rule := range cfg.Indent {
		for _, label := range strings.Fields(labels) {
			l.indent[label] = rule
		}
	}
	for labels, rule := range cfg.Fold {
		for _, label := range strings.Fields(labels) {
			l.fold[label] = rule
		}
	}
	if l.styles == nil {
		l.styles = MustStyleTable()
	}
	return l
}

func (l *Language) Name() string { return l.name }

// Filetypes returns the file extensions the language handles.
func (l *Language) Filetypes() []string {
	return append([]string(nil), l.filetypes...)
}

func (l *Language) Parse(src []byte) (*Tree, error) {
	return l.parser.Parse(src)
}

func (l *Language) Styles() *StyleTable { return l.styles }

func (l *Language) Data() Data { return l.data }

// HasIndentRule reports whether nodes labelled kind carry an indentation rule.
func (l *Language) HasIndentRule(kind string) bool {
	_, ok := l.indent[kind]
	return ok
}
