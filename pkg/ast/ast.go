// Package ast defines the concrete parse tree produced by the parser: one
// node type per grammar production in the specification's expression
// hierarchy (§4.1), plus the line/script wrapper nodes.
package ast

import "github.com/rscarson/lavendeux-parser/internal/token"

// Node is implemented by every parse-tree node.
type Node interface {
	Pos() token.Position
	// Text returns the exact source slice the node was parsed from. This is
	// used both for the token tree's "source text" requirement and for
	// un-evaluated renderings (a function definition's body is displayed,
	// never evaluated, for its defining line).
	Text() string
}

// Expression is any node that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

type base struct {
	pos  token.Position
	text string
}

func (b base) Pos() token.Position { return b.pos }
func (b base) Text() string        { return b.text }

func newBase(pos token.Position, text string) base {
	return base{pos: pos, text: text}
}
