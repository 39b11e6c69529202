package python

import "github.com/fivemoreminix/pyedit/syntax"

var styles = syntax.MustStyleTable(
	syntax.StyleRule{Pattern: "async '*' '**' FormatConversion", Tag: syntax.Modifier.Tag()},
	syntax.StyleRule{Pattern: "for while if elif else try except finally return raise break continue with pass assert await yield", Tag: syntax.ControlKeyword.Tag()},
	syntax.StyleRule{Pattern: "in not and or is del", Tag: syntax.OperatorKeyword.Tag()},
	syntax.StyleRule{Pattern: "import from def class global nonlocal lambda", Tag: syntax.DefinitionKeyword.Tag()},
	syntax.StyleRule{Pattern: "with as print", Tag: syntax.Keyword.Tag()},
	syntax.StyleRule{Pattern: "self", Tag: syntax.Self.Tag()},
	syntax.StyleRule{Pattern: "Boolean", Tag: syntax.Bool.Tag()},
	syntax.StyleRule{Pattern: "None", Tag: syntax.Null.Tag()},
	syntax.StyleRule{Pattern: "VariableName", Tag: syntax.VariableName.Tag()},
	syntax.StyleRule{Pattern: "CallExpression/VariableName", Tag: syntax.VariableName.Tag().Function()},
	syntax.StyleRule{Pattern: "FunctionDefinition/VariableName", Tag: syntax.VariableName.Tag().Definition().Function()},
	syntax.StyleRule{Pattern: "ClassDefinition/VariableName", Tag: syntax.ClassName.Tag().Definition()},
	syntax.StyleRule{Pattern: "PropertyName", Tag: syntax.PropertyName.Tag()},
	syntax.StyleRule{Pattern: "CallExpression/MemberExpression/PropertyName", Tag: syntax.PropertyName.Tag().Function()},
	syntax.StyleRule{Pattern: "Comment", Tag: syntax.LineComment.Tag()},
	syntax.StyleRule{Pattern: "Number", Tag: syntax.Number.Tag()},
	syntax.StyleRule{Pattern: "String", Tag: syntax.String.Tag()},
	syntax.StyleRule{Pattern: "FormatString", Tag: syntax.String.Tag().Special()},
	syntax.StyleRule{Pattern: "UpdateOp", Tag: syntax.UpdateOperator.Tag()},
	syntax.StyleRule{Pattern: "ArithOp", Tag: syntax.ArithmeticOperator.Tag()},
	syntax.StyleRule{Pattern: "BitOp", Tag: syntax.BitwiseOperator.Tag()},
	syntax.StyleRule{Pattern: "CompareOp", Tag: syntax.CompareOperator.Tag()},
	syntax.StyleRule{Pattern: "AssignOp", Tag: syntax.DefinitionOperator.Tag()},
	syntax.StyleRule{Pattern: "Ellipsis", Tag: syntax.Punctuation.Tag()},
	syntax.StyleRule{Pattern: "At", Tag: syntax.Meta.Tag()},
	syntax.StyleRule{Pattern: "( )", Tag: syntax.Paren.Tag()},
	syntax.StyleRule{Pattern: "[ ]", Tag: syntax.SquareBracket.Tag()},
	syntax.StyleRule{Pattern: "{ }", Tag: syntax.Brace.Tag()},
	syntax.StyleRule{Pattern: ".", Tag: syntax.DerefOperator.Tag()},
	syntax.StyleRule{Pattern: ", ;", Tag: syntax.Separator.Tag()},
)
