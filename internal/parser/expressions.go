package parser

import (
	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/token"
	"github.com/rscarson/lavendeux-parser/pkg/ast"
)

// parseExpression is the grammar's entry point: the ternary tier, the
// loosest-binding production in §4.1.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseTernary()
}

// parseTernary handles `cond ? then : else`, right-associative.
func (p *Parser) parseTernary() ast.Expression {
	start := p.cur.Pos
	cond := p.parseOr()
	if cond == nil {
		return nil
	}
	if !p.curIs(token.QUESTION) {
		return cond
	}
	p.advance()
	then := p.parseTernary()
	if !p.curIs(token.COLON) {
		p.errorf(errors.UnexpectedToken, p.cur.Pos, p.cur.Literal, "expected ':' in ternary expression")
		return ast.NewTernaryExpr(start, p.sliceSource(start, p.cur.Pos), cond, then, nil)
	}
	p.advance()
	els := p.parseTernary()
	return ast.NewTernaryExpr(start, p.sliceSource(start, p.cur.Pos), cond, then, els)
}

// parseOr handles `||`, left-associative.
func (p *Parser) parseOr() ast.Expression {
	start := p.cur.Pos
	left := p.parseAnd()
	for p.curIs(token.OROR) {
		op := p.cur.Literal
		p.advance()
		right := p.parseAnd()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

// parseAnd handles `&&`, left-associative.
func (p *Parser) parseAnd() ast.Expression {
	start := p.cur.Pos
	left := p.parseComparison()
	for p.curIs(token.ANDAND) {
		op := p.cur.Literal
		p.advance()
		right := p.parseComparison()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

var comparisonOps = map[token.Type]bool{
	token.EQ: true, token.NOTEQ: true, token.LT: true, token.LTE: true, token.GT: true, token.GTE: true,
}

// parseComparison handles `== != < <= > >=`, left-associative.
func (p *Parser) parseComparison() ast.Expression {
	start := p.cur.Pos
	left := p.parseBitOr()
	for comparisonOps[p.cur.Type] {
		op := p.cur.Literal
		p.advance()
		right := p.parseBitOr()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	start := p.cur.Pos
	left := p.parseBitXor()
	for p.curIs(token.PIPE) {
		p.advance()
		right := p.parseBitXor()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), "|", left, right)
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	start := p.cur.Pos
	left := p.parseBitAnd()
	for p.curIs(token.CARET) {
		p.advance()
		right := p.parseBitAnd()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), "^", left, right)
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	start := p.cur.Pos
	left := p.parseShift()
	for p.curIs(token.AMP) {
		p.advance()
		right := p.parseShift()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), "&", left, right)
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	start := p.cur.Pos
	left := p.parseAdditive()
	for p.curIs(token.SHL) || p.curIs(token.SHR) {
		op := p.cur.Literal
		p.advance()
		right := p.parseAdditive()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	start := p.cur.Pos
	left := p.parseMultiplicative()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		op := p.cur.Literal
		p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	start := p.cur.Pos
	left := p.parseImplied()
	for p.curIs(token.ASTERISK) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		op := p.cur.Literal
		p.advance()
		right := p.parseImplied()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), op, left, right)
	}
	return left
}

// canStartFactor reports whether t can begin a new power-tier factor, used
// to detect implied multiplication (juxtaposition with no operator token).
// MINUS is deliberately excluded: `2 -3` is subtraction, never `2 * -3`.
func canStartFactor(t token.Type) bool {
	switch t {
	case token.IDENT, token.INTEGER, token.FLOAT, token.STRING, token.BOOLEAN,
		token.CURRENCY, token.LPAREN, token.LBRACKET, token.LBRACE, token.TILDE:
		return true
	default:
		return false
	}
}

// parseImplied handles juxtaposition ("2pi", "3(4)") as multiplication with
// no explicit operator token, left-associative.
func (p *Parser) parseImplied() ast.Expression {
	start := p.cur.Pos
	left := p.parsePower()
	for canStartFactor(p.cur.Type) {
		right := p.parsePower()
		left = ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), "*", left, right)
	}
	return left
}

// parsePower handles `**`, right-associative; its operand comes from
// parseUnary, so prefix/postfix/indexing all bind tighter than power.
func (p *Parser) parsePower() ast.Expression {
	start := p.cur.Pos
	left := p.parseUnary()
	if !p.curIs(token.POW) {
		return left
	}
	p.advance()
	right := p.parsePower()
	return ast.NewBinaryExpr(start, p.sliceSource(start, p.cur.Pos), "**", left, right)
}

// parseUnary handles the prefix operators `-` and `~`; it recurses on
// itself so repeated prefixes (`--x`) are legal, then falls through to the
// postfix/indexing/term chain.
func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.MINUS) || p.curIs(token.TILDE) {
		start := p.cur.Pos
		op := p.cur.Literal
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start, p.sliceSource(start, p.cur.Pos), op, operand)
	}
	return p.parsePostfix()
}

// parsePostfix applies trailing `!` (factorial) and `[index]` (indexing)
// suffixes, in the order they appear, to a term.
func (p *Parser) parsePostfix() ast.Expression {
	start := p.cur.Pos
	expr := p.parseTerm()
	for {
		switch {
		case p.curIs(token.BANG):
			p.advance()
			expr = ast.NewPostfixExpr(start, p.sliceSource(start, p.cur.Pos), "!", expr)
		case p.curIs(token.LBRACKET):
			openTok := p.cur
			p.enterGroup()
			index := p.parseExpression()
			p.expectClose(token.RBRACKET, openTok)
			expr = ast.NewIndexExpr(start, p.sliceSource(start, p.cur.Pos), expr, index)
		default:
			return expr
		}
	}
}

// parseTerm parses an atom: literals, identifiers, calls, parenthesized
// groups, and array/object literals. A stray `!` with nothing preceding it
// (e.g. at the start of a line) is reported here, since no valid term ever
// starts with one.
func (p *Parser) parseTerm() ast.Expression {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.INTEGER:
		lit := p.cur.Literal
		v, err := parseIntLiteralText(lit)
		if err != nil {
			p.errorf(errors.Overflow, start, lit, "integer literal %q is out of range", lit)
		}
		p.advance()
		return ast.NewIntegerLiteral(start, lit, v)

	case token.FLOAT:
		lit := p.cur.Literal
		v, err := parseFloatLiteralText(lit)
		if err != nil {
			p.errorf(errors.UnexpectedToken, start, lit, "malformed float literal %q", lit)
		}
		p.advance()
		return ast.NewFloatLiteral(start, lit, v)

	case token.CURRENCY:
		lit := p.cur.Literal
		sym, numPart, isFloat := splitCurrencyLiteral(lit)
		var v float64
		if isFloat {
			fv, err := parseFloatLiteralText(numPart)
			if err != nil {
				p.errorf(errors.UnexpectedToken, start, lit, "malformed currency literal %q", lit)
			}
			v = fv
		} else {
			iv, err := parseIntLiteralText(numPart)
			if err != nil {
				p.errorf(errors.Overflow, start, lit, "currency literal %q is out of range", lit)
			}
			v = float64(iv)
		}
		p.advance()
		return ast.NewCurrencyLiteral(start, lit, v, isFloat, sym)

	case token.STRING:
		lit := p.cur.Literal
		p.advance()
		return ast.NewStringLiteral(start, lit, lit)

	case token.BOOLEAN:
		lit := p.cur.Literal
		p.advance()
		return ast.NewBooleanLiteral(start, lit, isTrueLiteral(lit))

	case token.IDENT:
		name := p.cur.Literal
		p.advance()
		if p.curIs(token.LPAREN) {
			return p.parseCall(start, name)
		}
		return ast.NewIdentifier(start, name, name)

	case token.LPAREN:
		openTok := p.cur
		p.enterGroup()
		inner := p.parseExpression()
		p.expectClose(token.RPAREN, openTok)
		return inner

	case token.LBRACKET:
		return p.parseArrayLiteral(start)

	case token.LBRACE:
		return p.parseObjectLiteral(start)

	case token.BANG:
		p.errorf(errors.StrayPostfix, start, "!", "'!' has no preceding expression to apply to")
		p.advance()
		return p.parseTerm()

	default:
		p.errorf(errors.UnexpectedToken, start, p.cur.Literal, "unexpected %q", p.cur.Literal)
		p.advance()
		return nil
	}
}

func isTrueLiteral(lit string) bool {
	return len(lit) == 4 && (lit[0] == 't' || lit[0] == 'T')
}

// splitCurrencyLiteral separates a currency token's symbol from its numeric
// text and reports whether the numeric part is a float.
func splitCurrencyLiteral(lit string) (symbol, numeric string, isFloat bool) {
	runes := []rune(lit)
	i := 0
	for i < len(runes) && !isDigitRune(runes[i]) && runes[i] != '.' {
		i++
	}
	symbol = string(runes[:i])
	numeric = string(runes[i:])
	for _, r := range numeric {
		if r == '.' || r == 'e' || r == 'E' {
			isFloat = true
			break
		}
	}
	return symbol, numeric, isFloat
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func (p *Parser) parseCall(start token.Position, callee string) ast.Expression {
	openTok := p.cur
	p.enterGroup()
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.expectClose(token.RPAREN, openTok)
	return ast.NewCallExpr(start, p.sliceSource(start, p.cur.Pos), callee, args)
}

func (p *Parser) parseArrayLiteral(start token.Position) ast.Expression {
	openTok := p.cur
	p.enterGroup()
	var elems []ast.Expression
	if !p.curIs(token.RBRACKET) {
		elems = append(elems, p.parseExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			if p.curIs(token.RBRACKET) {
				break
			}
			elems = append(elems, p.parseExpression())
		}
	}
	p.expectClose(token.RBRACKET, openTok)
	return ast.NewArrayLiteral(start, p.sliceSource(start, p.cur.Pos), elems)
}

func (p *Parser) parseObjectLiteral(start token.Position) ast.Expression {
	openTok := p.cur
	p.enterGroup()
	var keys, values []ast.Expression
	if !p.curIs(token.RBRACE) {
		k, v := p.parseObjectEntry()
		keys, values = append(keys, k), append(values, v)
		for p.curIs(token.COMMA) {
			p.advance()
			if p.curIs(token.RBRACE) {
				break
			}
			k, v := p.parseObjectEntry()
			keys, values = append(keys, k), append(values, v)
		}
	}
	p.expectClose(token.RBRACE, openTok)
	return ast.NewObjectLiteral(start, p.sliceSource(start, p.cur.Pos), keys, values)
}

func (p *Parser) parseObjectEntry() (ast.Expression, ast.Expression) {
	key := p.parseExpression()
	if !p.curIs(token.COLON) {
		p.errorf(errors.UnexpectedToken, p.cur.Pos, p.cur.Literal, "expected ':' after object key")
		return key, nil
	}
	p.advance()
	value := p.parseExpression()
	return key, value
}
