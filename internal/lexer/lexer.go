// Package lexer scans Lavendeux source text into a stream of tokens.
//
// The lexer is rune-based so that column positions count Unicode code
// points rather than bytes, matching how a text editor would report them.
// Whitespace (other than line/semicolon terminators) is insignificant;
// line (`//`) and block (`/* */`, single-line only) comments are skipped.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/token"
)

// currencySymbols lists the recognized currency prefix/suffix glyphs.
const currencySymbols = "$€£¥"

// Lexer scans one input string into a sequence of tokens, on demand.
type Lexer struct {
	input        string
	errs         []*errors.Error
	position     int // byte offset of ch
	readPosition int // byte offset of next rune
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if present.
func New(input string) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Errors returns lexical errors accumulated while scanning (e.g.
// unterminated string literals). Parser-level errors (unterminated
// groups, stray decorators/postfix) are reported by the parser instead.
func (l *Lexer) Errors() []*errors.Error {
	return l.errs
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += w
	l.ch = r
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.readPosition
	var r rune
	for i := 0; i <= offset; i++ {
		if idx >= len(l.input) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		idx += w
	}
	return r
}

// skipInsignificant consumes spaces/tabs/carriage-returns and comments, but
// stops at a newline so the caller can emit a NEWLINE token.
func (l *Lexer) skipInsignificant() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	startPos := l.pos()
	l.readChar() // consume '/'
	l.readChar() // consume '*'
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.errs = append(l.errs, errors.New(errors.UnterminatedLiteral, startPos, "/*",
				"block comment is not terminated before end of line"))
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

// NextToken scans and returns the next token in the stream.
func (l *Lexer) NextToken() token.Token {
	l.skipInsignificant()

	pos := l.pos()

	if l.ch == '\n' {
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: pos}
	}

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	}

	switch {
	case l.ch == '"' || l.ch == '\'':
		return l.readString(pos)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(pos)
	case strings.ContainsRune(currencySymbols, l.ch):
		return l.readCurrencyOrSymbol(pos)
	case isIdentStart(l.ch):
		return l.readIdentifier(pos)
	default:
		return l.readOperator(pos)
	}
}

func isDigit(ch rune) bool      { return ch >= '0' && ch <= '9' }
func isIdentStart(ch rune) bool { return ch == '_' || unicode.IsLetter(ch) }
func isIdentCont(ch rune) bool  { return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) }

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.position
	for isIdentCont(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	lower := strings.ToLower(lit)
	if lower == "true" || lower == "false" {
		return token.Token{Type: token.BOOLEAN, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}
}

// readCurrencyOrSymbol handles a currency glyph appearing as a numeric
// prefix ("$5.25"); a suffix glyph is instead recognized by readNumber
// once it has already scanned the digits.
func (l *Lexer) readCurrencyOrSymbol(pos token.Position) token.Token {
	sym := l.ch
	if isDigit(l.peekChar()) || (l.peekChar() == '.' && isDigit(l.peekAt(0))) {
		l.readChar() // consume symbol
		// The reported position stays at the symbol.
		tok := l.readNumberDigits(pos)
		tok.Type = token.CURRENCY
		tok.Literal = string(sym) + tok.Literal
		return tok
	}
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: string(sym), Pos: pos}
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	ch := l.ch
	two := func(next rune, t token.Type, lit string) (token.Token, bool) {
		if l.peekChar() == next {
			l.readChar()
			l.readChar()
			return token.Token{Type: t, Literal: lit, Pos: pos}, true
		}
		return token.Token{}, false
	}

	switch ch {
	case '*':
		if tok, ok := two('*', token.POW, "**"); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.ASTERISK, Literal: "*", Pos: pos}
	case '&':
		if tok, ok := two('&', token.ANDAND, "&&"); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.AMP, Literal: "&", Pos: pos}
	case '|':
		if tok, ok := two('|', token.OROR, "||"); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.PIPE, Literal: "|", Pos: pos}
	case '<':
		if tok, ok := two('<', token.SHL, "<<"); ok {
			return tok
		}
		if tok, ok := two('=', token.LTE, "<="); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.LT, Literal: "<", Pos: pos}
	case '>':
		if tok, ok := two('>', token.SHR, ">>"); ok {
			return tok
		}
		if tok, ok := two('=', token.GTE, ">="); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.GT, Literal: ">", Pos: pos}
	case '=':
		if tok, ok := two('=', token.EQ, "=="); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.ASSIGN, Literal: "=", Pos: pos}
	case '!':
		if tok, ok := two('=', token.NOTEQ, "!="); ok {
			return tok
		}
		l.readChar()
		return token.Token{Type: token.BANG, Literal: "!", Pos: pos}
	case '\\':
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			l.errs = append(l.errs, errors.New(errors.UnexpectedToken, pos, "\\",
				"stray line-continuation backslash"))
		}
		return token.Token{Type: token.ILLEGAL, Literal: "\\", Pos: pos}
	}

	single := map[rune]token.Type{
		'+': token.PLUS, '-': token.MINUS, '/': token.SLASH, '%': token.PERCENT,
		'~': token.TILDE, '^': token.CARET, '?': token.QUESTION, ':': token.COLON,
		',': token.COMMA, '(': token.LPAREN, ')': token.RPAREN,
		'[': token.LBRACKET, ']': token.RBRACKET, '{': token.LBRACE, '}': token.RBRACE,
		'@': token.AT, ';': token.SEMICOLON,
	}
	if t, ok := single[ch]; ok {
		l.readChar()
		return token.Token{Type: t, Literal: string(ch), Pos: pos}
	}

	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
}
