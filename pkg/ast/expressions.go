package ast

import "github.com/rscarson/lavendeux-parser/internal/token"

// IntegerLiteral is a decimal, comma-grouped, hex, binary, or octal integer.
type IntegerLiteral struct {
	base
	Value int64
}

func NewIntegerLiteral(pos token.Position, text string, value int64) *IntegerLiteral {
	return &IntegerLiteral{base: newBase(pos, text), Value: value}
}
func (*IntegerLiteral) expressionNode() {}

// FloatLiteral is a decimal or scientific-notation float.
type FloatLiteral struct {
	base
	Value float64
}

func NewFloatLiteral(pos token.Position, text string, value float64) *FloatLiteral {
	return &FloatLiteral{base: newBase(pos, text), Value: value}
}
func (*FloatLiteral) expressionNode() {}

// CurrencyLiteral is a numeric literal with an attached currency symbol.
type CurrencyLiteral struct {
	base
	Value   float64
	IsFloat bool
	Symbol  string
}

func NewCurrencyLiteral(pos token.Position, text string, value float64, isFloat bool, symbol string) *CurrencyLiteral {
	return &CurrencyLiteral{base: newBase(pos, text), Value: value, IsFloat: isFloat, Symbol: symbol}
}
func (*CurrencyLiteral) expressionNode() {}

// StringLiteral is a single- or double-quoted string literal, already
// escape-decoded by the lexer.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(pos token.Position, text string, value string) *StringLiteral {
	return &StringLiteral{base: newBase(pos, text), Value: value}
}
func (*StringLiteral) expressionNode() {}

// BooleanLiteral is `true` or `false` (case-insensitive in source).
type BooleanLiteral struct {
	base
	Value bool
}

func NewBooleanLiteral(pos token.Position, text string, value bool) *BooleanLiteral {
	return &BooleanLiteral{base: newBase(pos, text), Value: value}
}
func (*BooleanLiteral) expressionNode() {}

// Identifier is a bare name, resolved against variables (or parameters,
// inside a user function's frame) at evaluation time.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(pos token.Position, text string, name string) *Identifier {
	return &Identifier{base: newBase(pos, text), Name: name}
}
func (*Identifier) expressionNode() {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	base
	Elements []Expression
}

func NewArrayLiteral(pos token.Position, text string, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{base: newBase(pos, text), Elements: elements}
}
func (*ArrayLiteral) expressionNode() {}

// ObjectLiteral is `{k1: v1, k2: v2, ...}`, keys retaining insertion order.
type ObjectLiteral struct {
	base
	Keys   []Expression
	Values []Expression
}

func NewObjectLiteral(pos token.Position, text string, keys, values []Expression) *ObjectLiteral {
	return &ObjectLiteral{base: newBase(pos, text), Keys: keys, Values: values}
}
func (*ObjectLiteral) expressionNode() {}
