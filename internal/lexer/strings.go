package lexer

import (
	"strings"

	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/token"
)

// readString scans a single- or double-quoted string literal with
// backslash escapes. A literal (unescaped) newline inside the string is
// not permitted and aborts the literal with an UnterminatedLiteral error;
// a backslash immediately followed by a newline is an escaped line
// continuation and is kept out of the decoded value.
func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	l.readChar() // consume opening quote

	var sb strings.Builder
	for {
		switch {
		case l.ch == quote:
			l.readChar()
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
		case l.ch == 0:
			l.errs = append(l.errs, errors.New(errors.UnterminatedLiteral, pos, string(quote),
				"string literal is not terminated before end of input"))
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
		case l.ch == '\n':
			l.errs = append(l.errs, errors.New(errors.UnterminatedLiteral, pos, string(quote),
				"string literal contains an unescaped newline"))
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
		case l.ch == '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune(0)
			case '\\':
				sb.WriteRune('\\')
			case '\'':
				sb.WriteRune('\'')
			case '"':
				sb.WriteRune('"')
			case '\n':
				// escaped line continuation: swallow the newline itself.
			case 0:
				l.errs = append(l.errs, errors.New(errors.UnterminatedLiteral, pos, string(quote),
					"string literal is not terminated before end of input"))
				return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}
