package lexer

import (
	"strings"

	"github.com/rscarson/lavendeux-parser/internal/token"
)

// readNumber scans every numeric literal form: decimal integers (with
// optional comma grouping), floats, scientific notation, hex/binary/octal,
// and a trailing currency suffix.
//
// Octal disambiguation (documented per the open question in the source
// spec): a leading '0' followed by a run of digits is read as octal only
// if every digit in that run is 0-7; otherwise the whole run, leading zero
// included, is read as a decimal integer. A lone "0" is decimal zero.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		return l.readRadix(pos, "0x", 16, isHexDigit)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		return l.readRadix(pos, "0b", 2, isBinDigit)
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		return l.readRadix(pos, "0o", 8, isOctDigit)
	}
	if l.ch == '0' && isDigit(l.peekChar()) {
		if tok, ok := l.tryLeadingZeroOctal(pos); ok {
			return tok
		}
	}
	return l.readNumberDigits(pos)
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
func isBinDigit(ch rune) bool { return ch == '0' || ch == '1' }
func isOctDigit(ch rune) bool { return ch >= '0' && ch <= '7' }

func (l *Lexer) readRadix(pos token.Position, prefix string, base int, digitOK func(rune) bool) token.Token {
	start := l.position
	l.readChar() // '0'
	l.readChar() // x/b/o
	digitsStart := l.position
	for digitOK(l.ch) {
		l.readChar()
	}
	if l.position == digitsStart {
		lit := l.input[start:l.position]
		return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
	}
	return token.Token{Type: token.INTEGER, Literal: l.input[start:l.position], Pos: pos}
}

// tryLeadingZeroOctal speculatively scans a leading-zero digit run and
// decides whether it is octal or decimal, per the disambiguation above.
func (l *Lexer) tryLeadingZeroOctal(pos token.Position) (token.Token, bool) {
	start := l.position
	savedPos, savedReadPos, savedLine, savedCol, savedCh := l.position, l.readPosition, l.line, l.column, l.ch

	l.readChar() // consume '0'
	allOctal := true
	for isDigit(l.ch) {
		if !isOctDigit(l.ch) {
			allOctal = false
		}
		l.readChar()
	}
	// A following '.' or 'e'/'E' makes this a float/scientific literal,
	// not an integer at all; fall back to the generic scanner.
	if l.ch == '.' && isDigit(l.peekChar()) || l.ch == 'e' || l.ch == 'E' {
		l.position, l.readPosition, l.line, l.column, l.ch = savedPos, savedReadPos, savedLine, savedCol, savedCh
		return token.Token{}, false
	}
	if !allOctal {
		l.position, l.readPosition, l.line, l.column, l.ch = savedPos, savedReadPos, savedLine, savedCol, savedCh
		return token.Token{}, false
	}
	return token.Token{Type: token.INTEGER, Literal: "0o" + l.input[start+1:l.position], Pos: pos}, true
}

// readNumberDigits scans decimal-integer / float / scientific forms,
// followed by an optional currency suffix.
func (l *Lexer) readNumberDigits(pos token.Position) token.Token {
	start := l.position
	isFloat := false

	l.consumeDigitRun()

	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // '.'
		l.consumeDigitRun()
	}

	if l.ch == 'e' || l.ch == 'E' {
		save := l.position
		savedReadPos, savedLine, savedCol, savedCh := l.readPosition, l.line, l.column, l.ch
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isFloat = true
			l.consumeDigitRun()
		} else {
			l.position, l.readPosition, l.line, l.column, l.ch = save, savedReadPos, savedLine, savedCol, savedCh
		}
	}

	lit := l.input[start:l.position]
	typ := token.INTEGER
	if isFloat {
		typ = token.FLOAT
	}

	if strings.ContainsRune(currencySymbols, l.ch) {
		sym := l.ch
		l.readChar()
		return token.Token{Type: token.CURRENCY, Literal: lit + string(sym), Pos: pos}
	}

	return token.Token{Type: typ, Literal: lit, Pos: pos}
}

// consumeDigitRun scans digits, allowing comma grouping in groups of
// three once the first one to three leading digits are consumed, or a
// contiguous run of four-or-more digits with no commas at all.
func (l *Lexer) consumeDigitRun() {
	lead := 0
	for isDigit(l.ch) {
		l.readChar()
		lead++
	}
	for lead <= 3 && l.ch == ',' && isDigit(l.peekChar()) && l.groupOfThreeAhead() {
		l.readChar() // consume ','
		for i := 0; i < 3 && isDigit(l.ch); i++ {
			l.readChar()
		}
	}
}

// groupOfThreeAhead reports whether the digits following a comma form an
// exact group of three (i.e. the comma is plausibly a thousands separator,
// not an unrelated expression/array separator).
func (l *Lexer) groupOfThreeAhead() bool {
	count := 0
	for i := 0; ; i++ {
		ch := l.peekAt(i)
		if isDigit(ch) {
			count++
			continue
		}
		break
	}
	return count == 3
}
