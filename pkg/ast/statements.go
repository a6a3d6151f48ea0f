package ast

import "github.com/rscarson/lavendeux-parser/internal/token"

// VariableAssignment is `ident = expr`. Evaluating it binds Name in the
// parser state and yields the RHS value.
type VariableAssignment struct {
	base
	Name  string
	Value Expression
}

func NewVariableAssignment(pos token.Position, text, name string, value Expression) *VariableAssignment {
	return &VariableAssignment{base: newBase(pos, text), Name: name, Value: value}
}
func (*VariableAssignment) expressionNode() {}

// IndexedAssignment is `ident[idx1][idx2]... = expr`. Indices are applied
// in order against the variable named Base; only that slot is replaced,
// the rest of the array/object is left untouched.
type IndexedAssignment struct {
	base
	Base    string
	Indices []Expression
	Value   Expression
}

func NewIndexedAssignment(pos token.Position, text, base_ string, indices []Expression, value Expression) *IndexedAssignment {
	return &IndexedAssignment{base: newBase(pos, text), Base: base_, Indices: indices, Value: value}
}
func (*IndexedAssignment) expressionNode() {}

// FunctionAssignment is `ident(params) = expr`, defining a user function.
// Its own line never evaluates Body — the rendered value of this line is
// Body's source text itself, which is also what this node's Text returns.
type FunctionAssignment struct {
	base
	Name   string
	Params []string
	Body   Expression
}

func NewFunctionAssignment(pos token.Position, text, name string, params []string, body Expression) *FunctionAssignment {
	return &FunctionAssignment{base: newBase(pos, text), Name: name, Params: params, Body: body}
}
func (*FunctionAssignment) expressionNode() {}

// Line is one terminated expression from the input script: an optional
// expression (nil when the segment has none, e.g. a bare `;` or a
// decorator with nothing before it), an optional decorator name, and the
// exact source text of the line for error reporting and the token tree.
type Line struct {
	base
	Expr         Expression
	Decorator    string
	HasDecorator bool
	DecoratorPos token.Position
}

func NewLine(pos token.Position, text string, expr Expression, decorator string, hasDecorator bool, decoratorPos token.Position) *Line {
	return &Line{
		base:         newBase(pos, text),
		Expr:         expr,
		Decorator:    decorator,
		HasDecorator: hasDecorator,
		DecoratorPos: decoratorPos,
	}
}

// Script is the root parse-tree node: one Line per newline- or
// `;`-terminated segment; blank lines produce none.
type Script struct {
	Lines []*Line
}
