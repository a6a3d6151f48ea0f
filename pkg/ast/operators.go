package ast

import "github.com/rscarson/lavendeux-parser/internal/token"

// BinaryExpr covers every left-associative binary tier in §4.1: boolean
// or/and, comparison, bitwise or/xor/and, shift, additive, multiplicative,
// implied multiplication, and right-associative power.
type BinaryExpr struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpr(pos token.Position, text, op string, left, right Expression) *BinaryExpr {
	return &BinaryExpr{base: newBase(pos, text), Operator: op, Left: left, Right: right}
}
func (*BinaryExpr) expressionNode() {}

// UnaryExpr is a prefix operator: `~` (boolean/bitwise not) or `-` (negate).
type UnaryExpr struct {
	base
	Operator string
	Operand  Expression
}

func NewUnaryExpr(pos token.Position, text, op string, operand Expression) *UnaryExpr {
	return &UnaryExpr{base: newBase(pos, text), Operator: op, Operand: operand}
}
func (*UnaryExpr) expressionNode() {}

// PostfixExpr is the `!` factorial operator.
type PostfixExpr struct {
	base
	Operator string
	Operand  Expression
}

func NewPostfixExpr(pos token.Position, text, op string, operand Expression) *PostfixExpr {
	return &PostfixExpr{base: newBase(pos, text), Operator: op, Operand: operand}
}
func (*PostfixExpr) expressionNode() {}

// TernaryExpr is `cond ? then : else`, right-associative, short-circuit.
type TernaryExpr struct {
	base
	Cond Expression
	Then Expression
	Else Expression
}

func NewTernaryExpr(pos token.Position, text string, cond, then, els Expression) *TernaryExpr {
	return &TernaryExpr{base: newBase(pos, text), Cond: cond, Then: then, Else: els}
}
func (*TernaryExpr) expressionNode() {}

// IndexExpr is `target[index]`, chainable.
type IndexExpr struct {
	base
	Target Expression
	Index  Expression
}

func NewIndexExpr(pos token.Position, text string, target, index Expression) *IndexExpr {
	return &IndexExpr{base: newBase(pos, text), Target: target, Index: index}
}
func (*IndexExpr) expressionNode() {}

// CallExpr is `callee(args...)`. Callee is always a bare identifier per the
// fixed grammar (no first-class function values).
type CallExpr struct {
	base
	Callee string
	Args   []Expression
}

func NewCallExpr(pos token.Position, text, callee string, args []Expression) *CallExpr {
	return &CallExpr{base: newBase(pos, text), Callee: callee, Args: args}
}
func (*CallExpr) expressionNode() {}
