package syntax

import (
	"strings"

	"github.com/pkg/errors"
)

// Base is a highlight category. Categories form a shallow hierarchy (every
// operator kind is an Operator, every keyword kind a Keyword) which colorschemes
// use as fallback.
type Base uint8

const (
	Default Base = iota
	Column       // Not a syntax category; useful for colorscheming the editor column
	Comment
	LineComment
	Name
	VariableName
	PropertyName
	ClassName
	Keyword
	ControlKeyword
	OperatorKeyword
	DefinitionKeyword
	Modifier
	Self
	Literal
	String
	Number
	Bool
	Null
	Operator
	UpdateOperator
	ArithmeticOperator
	BitwiseOperator
	CompareOperator
	DefinitionOperator
	DerefOperator
	Punctuation
	Separator
	Bracket
	Paren
	SquareBracket
	Brace
	Meta
	baseCount
)

var baseNames = [baseCount]string{
	Default:            "default",
	Column:             "column",
	Comment:            "comment",
	LineComment:        "lineComment",
	Name:               "name",
	VariableName:       "variableName",
	PropertyName:       "propertyName",
	ClassName:          "className",
	Keyword:            "keyword",
	ControlKeyword:     "controlKeyword",
	OperatorKeyword:    "operatorKeyword",
	DefinitionKeyword:  "definitionKeyword",
	Modifier:           "modifier",
	Self:               "self",
	Literal:            "literal",
	String:             "string",
	Number:             "number",
	Bool:               "bool",
	Null:               "null",
	Operator:           "operator",
	UpdateOperator:     "updateOperator",
	ArithmeticOperator: "arithmeticOperator",
	BitwiseOperator:    "bitwiseOperator",
	CompareOperator:    "compareOperator",
	DefinitionOperator: "definitionOperator",
	DerefOperator:      "derefOperator",
	Punctuation:        "punctuation",
	Separator:          "separator",
	Bracket:            "bracket",
	Paren:              "paren",
	SquareBracket:      "squareBracket",
	Brace:              "brace",
	Meta:               "meta",
}

var baseParents = map[Base]Base{
	LineComment:        Comment,
	VariableName:       Name,
	PropertyName:       Name,
	ClassName:          Name,
	ControlKeyword:     Keyword,
	OperatorKeyword:    Keyword,
	DefinitionKeyword:  Keyword,
	Modifier:           Keyword,
	Self:               Keyword,
	String:             Literal,
	Number:             Literal,
	Bool:               Literal,
	Null:               Literal,
	UpdateOperator:     Operator,
	ArithmeticOperator: Operator,
	BitwiseOperator:    Operator,
	CompareOperator:    Operator,
	DefinitionOperator: Operator,
	DerefOperator:      Operator,
	Separator:          Punctuation,
	Bracket:            Punctuation,
	Paren:              Bracket,
	SquareBracket:      Bracket,
	Brace:              Bracket,
}

func (b Base) String() string {
	if b < baseCount {
		return baseNames[b]
	}
	return "unknown"
}

// Parent returns the broader category, and false for top-level categories.
func (b Base) Parent() (Base, bool) {
	p, ok := baseParents[b]
	return p, ok
}

// Tag returns the unmodified tag for the category.
func (b Base) Tag() Tag { return Tag{Base: b} }

// Mod is a set of tag modifiers.
type Mod uint8

const (
	ModDefinition Mod = 1 << iota // The name is being defined here
	ModFunction                   // The name refers to a function
	ModSpecial                    // A special variant of the category, like f-strings
)

// Modifiers in the order they wrap a category when printed, innermost first.
var modOrder = []struct {
	mod  Mod
	name string
}{
	{ModDefinition, "definition"},
	{ModFunction, "function"},
	{ModSpecial, "special"},
}

// A Tag is what a highlighter assigns to a node: a category plus modifiers.
// Tags are comparable and can be used as map keys.
type Tag struct {
	Base Base
	Mods Mod
}

func (t Tag) Function() Tag   { t.Mods |= ModFunction; return t }
func (t Tag) Definition() Tag { t.Mods |= ModDefinition; return t }
func (t Tag) Special() Tag    { t.Mods |= ModSpecial; return t }

// String prints the tag the way ParseTag reads it, e.g.
// "function(definition(variableName))".
func (t Tag) String() string {
	s := t.Base.String()
	for _, m := range modOrder {
		if t.Mods&m.mod != 0 {
			s = m.name + "(" + s + ")"
		}
	}
	return s
}

// Fallbacks lists the tags a colorscheme should try for t, most specific first:
// the tag itself, then with modifiers removed innermost first, then each parent
// category.
func (t Tag) Fallbacks() []Tag {
	tags := []Tag{t}
	for _, m := range modOrder {
		if t.Mods&m.mod != 0 {
			t.Mods &^= m.mod
			tags = append(tags, t)
		}
	}
	for b, ok := t.Base.Parent(); ok; b, ok = b.Parent() {
		tags = append(tags, b.Tag())
	}
	return tags
}

// ParseTag reads the textual form produced by Tag.String. Names are matched
// without regard to case, since config keys are often lowercased.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Tag{}, errors.Errorf("tag %q: unbalanced parenthesis", s)
		}
		inner, err := ParseTag(s[open+1 : len(s)-1])
		if err != nil {
			return Tag{}, err
		}
		name := s[:open]
		for _, m := range modOrder {
			if strings.EqualFold(m.name, name) {
				inner.Mods |= m.mod
				return inner, nil
			}
		}
		return Tag{}, errors.Errorf("tag %q: unknown modifier %q", s, name)
	}
	for b, name := range baseNames {
		if strings.EqualFold(name, s) {
			return Tag{Base: Base(b)}, nil
		}
	}
	return Tag{}, errors.Errorf("unknown tag %q", s)
}
