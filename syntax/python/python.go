// Package python is the Python language plugin: a tree-sitter backed parser
// with indentation, folding and highlighting rules for the syntax package.
package python

import (
	"regexp"

	"github.com/fivemoreminix/pyedit/syntax"
)

// Lines that should be re-indented as soon as they are typed: a lone closing
// bracket, or a clause that continues the block above.
var indentOnInput = regexp.MustCompile(`^\s*([\}\]\)]|else:|elif |except |finally:)$`)

var (
	language = New()
	support  = syntax.NewSupport(language)
)

// Language returns the shared Python language definition.
func Language() *syntax.Language { return language }

// Support returns the shared Python language support for editors.
func Support() *syntax.Support { return support }

// New builds a new Python language definition. Most callers want the shared
// one from Language.
func New() *syntax.Language {
	return syntax.NewLanguage(syntax.LanguageConfig{
		Name:      "Python",
		Filetypes: []string{".py", ".pyw", ".pyi"},
		Parser:    newParser(),
		Indent:    indentRules(),
		Fold:      foldRules(),
		Styles:    styles,
		Data: syntax.Data{
			CloseBrackets: []string{"(", "[", "{", "'", `"`, "'''", `"""`},
			LineComment:   "#",
			IndentOnInput: indentOnInput,
		},
	})
}
