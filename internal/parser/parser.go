// Package parser implements Lavendeux's fixed-precedence expression
// grammar as a hand-written recursive-descent parser: one function per
// precedence tier, each built on the next-tightest tier.
//
// Unlike a dynamic-operator-set Pratt parser, Lavendeux's precedence
// table never changes at runtime, so there is no prefix/infix function
// registry — each tier is a small, explicit function.
package parser

import (
	"strconv"
	"strings"

	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/lexer"
	"github.com/rscarson/lavendeux-parser/internal/token"
	"github.com/rscarson/lavendeux-parser/pkg/ast"
)

// Parser turns source text into a Script by recursive descent over the
// token stream produced by the lexer.
type Parser struct {
	l      *lexer.Lexer
	source string

	cur  token.Token
	peek token.Token

	groupDepth  int
	errs        []*errors.Error
	lexErrsSeen int
}

// New creates a Parser over source.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source), source: source}
	p.advance()
	p.advance()
	return p
}

// Parse parses source into a Script and returns any errors encountered.
// Parsing is resilient: a malformed line does not prevent the rest of the
// script from being parsed, and every parsed Line, including one that
// produced errors, is kept in the Script's Lines.
func Parse(source string) (*ast.Script, []*errors.Error) {
	p := New(source)
	script := p.parseScript()
	return script, p.errs
}

// Errors returns parse errors accumulated so far.
func (p *Parser) Errors() []*errors.Error { return p.errs }

func (p *Parser) errorf(kind errors.Kind, pos token.Position, tok string, format string, args ...any) {
	p.errs = append(p.errs, errors.New(kind, pos, tok, format, args...))
}

// advance pulls the next raw token from the lexer, skipping NEWLINE while
// inside an unclosed (, [, or { so multi-line literals/calls are allowed.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.rawNext()
	for p.groupDepth > 0 && p.peek.Type == token.NEWLINE {
		p.peek = p.rawNext()
	}
}

func (p *Parser) rawNext() token.Token {
	t := p.l.NextToken()
	if errs := p.l.Errors(); len(errs) > p.lexErrsSeen {
		p.errs = append(p.errs, errs[p.lexErrsSeen:]...)
		p.lexErrsSeen = len(errs)
	}
	return t
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) enterGroup() {
	p.groupDepth++
	p.advance()
}

func (p *Parser) leaveGroup() {
	p.groupDepth--
	p.advance()
}

// expectClose consumes the expected closing token, or records
// UnterminatedGroup if EOF is reached first.
func (p *Parser) expectClose(closeType token.Type, openTok token.Token) bool {
	if p.curIs(closeType) {
		p.leaveGroup()
		return true
	}
	if p.curIs(token.EOF) {
		p.errorf(errors.UnterminatedGroup, openTok.Pos, openTok.Literal,
			"%q is never closed", openTok.Literal)
		p.groupDepth--
		return false
	}
	p.errorf(errors.UnexpectedToken, p.cur.Pos, p.cur.Literal,
		"expected %q, found %q", closeType, p.cur.Literal)
	p.groupDepth--
	return false
}

// sliceSource returns the exact source text between two positions.
func (p *Parser) sliceSource(start, end token.Position) string {
	if end.Offset <= start.Offset || end.Offset > len(p.source) {
		return strings.TrimSpace(p.source[start.Offset:])
	}
	return strings.TrimSpace(p.source[start.Offset:end.Offset])
}

func (p *Parser) parseScript() *ast.Script {
	script := &ast.Script{}
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		line := p.parseLine()
		if line != nil {
			script.Lines = append(script.Lines, line)
		}
		if p.curIs(token.SEMICOLON) || p.curIs(token.NEWLINE) {
			p.advance()
		}
	}
	return script
}

func (p *Parser) parseLine() *ast.Line {
	startTok := p.cur
	var expr ast.Expression
	var decorator string
	var hasDecorator bool
	var decoratorPos token.Position

	if !p.curIs(token.AT) && !p.curIs(token.SEMICOLON) && !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) {
		expr = p.parseLineExpression()
	}

	if p.curIs(token.AT) {
		decoratorPos = p.cur.Pos
		if expr == nil {
			p.errorf(errors.StrayDecorator, p.cur.Pos, "@", "decorator has no expression to format")
		}
		p.advance()
		if p.curIs(token.IDENT) {
			decorator = p.cur.Literal
			hasDecorator = true
			p.advance()
		} else {
			p.errorf(errors.StrayDecorator, decoratorPos, "@", "expected a decorator name after '@'")
		}
		if p.curIs(token.AT) {
			p.errorf(errors.StrayDecorator, p.cur.Pos, "@", "only one decorator is allowed per line")
			for p.curIs(token.AT) {
				p.advance()
				if p.curIs(token.IDENT) {
					p.advance()
				}
			}
		}
	}

	endPos := p.cur.Pos
	text := p.sliceSource(startTok.Pos, endPos)
	return ast.NewLine(startTok.Pos, text, expr, decorator, hasDecorator, decoratorPos)
}

// parseLineExpression parses either an assignment form or a plain
// expression, per §4.1's three assignment shapes.
func (p *Parser) parseLineExpression() ast.Expression {
	startTok := p.cur
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if !p.curIs(token.ASSIGN) {
		return expr
	}

	assignPos := p.cur.Pos
	switch target := expr.(type) {
	case *ast.Identifier:
		p.advance()
		rhs := p.parseExpression()
		text := p.sliceSource(startTok.Pos, p.cur.Pos)
		return ast.NewVariableAssignment(startTok.Pos, text, target.Name, rhs)

	case *ast.IndexExpr:
		base, indices, ok := flattenIndexChain(target)
		if !ok {
			p.errorf(errors.UnexpectedToken, assignPos, "=", "left side of an indexed assignment must be a variable")
			p.advance()
			return p.parseExpression()
		}
		p.advance()
		rhs := p.parseExpression()
		text := p.sliceSource(startTok.Pos, p.cur.Pos)
		return ast.NewIndexedAssignment(startTok.Pos, text, base, indices, rhs)

	case *ast.CallExpr:
		params := make([]string, 0, len(target.Args))
		ok := true
		for _, arg := range target.Args {
			id, isIdent := arg.(*ast.Identifier)
			if !isIdent {
				ok = false
				break
			}
			params = append(params, id.Name)
		}
		if !ok {
			p.errorf(errors.UnexpectedToken, assignPos, "=", "function definition parameters must be plain names")
			p.advance()
			return p.parseExpression()
		}
		p.advance()
		bodyStart := p.cur.Pos
		body := p.parseExpression()
		bodyText := p.sliceSource(bodyStart, p.cur.Pos)
		fn := ast.NewFunctionAssignment(startTok.Pos, bodyText, target.Callee, params, body)
		return fn

	default:
		p.errorf(errors.UnexpectedToken, assignPos, "=", "left side of an assignment must be a variable, index, or function definition")
		p.advance()
		return p.parseExpression()
	}
}

// flattenIndexChain unwraps a chain of IndexExpr nodes rooted at an
// Identifier into (name, ordered index expressions).
func flattenIndexChain(expr ast.Expression) (string, []ast.Expression, bool) {
	var indices []ast.Expression
	cur := expr
	for {
		idx, ok := cur.(*ast.IndexExpr)
		if !ok {
			break
		}
		indices = append([]ast.Expression{idx.Index}, indices...)
		cur = idx.Target
	}
	id, ok := cur.(*ast.Identifier)
	if !ok {
		return "", nil, false
	}
	return id.Name, indices, true
}

func parseIntLiteralText(lit string) (int64, error) {
	clean := strings.ReplaceAll(lit, ",", "")
	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
		v, err := strconv.ParseUint(clean[2:], 16, 64)
		return int64(v), err
	case strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B"):
		v, err := strconv.ParseUint(clean[2:], 2, 64)
		return int64(v), err
	case strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O"):
		v, err := strconv.ParseUint(clean[2:], 8, 64)
		return int64(v), err
	default:
		v, err := strconv.ParseInt(clean, 10, 64)
		return v, err
	}
}

func parseFloatLiteralText(lit string) (float64, error) {
	clean := strings.ReplaceAll(lit, ",", "")
	return strconv.ParseFloat(clean, 64)
}
