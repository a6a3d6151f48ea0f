package lexer

import (
	"testing"

	"github.com/rscarson/lavendeux-parser/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextTokenOperatorsAndStructure(t *testing.T) {
	input := `1 + 2 * 3 ** 2 / 4 % 2 == 4 && true || false ? 1 : 2`
	toks := tokenize(t, input)

	wantTypes := []token.Type{
		token.INTEGER, token.PLUS, token.INTEGER, token.ASTERISK, token.INTEGER,
		token.POW, token.INTEGER, token.SLASH, token.INTEGER, token.PERCENT, token.INTEGER,
		token.EQ, token.INTEGER, token.ANDAND, token.BOOLEAN, token.OROR, token.BOOLEAN,
		token.QUESTION, token.INTEGER, token.COLON, token.INTEGER, token.EOF,
	}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantTypes), toks)
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, want)
		}
	}
}

func TestNextTokenTwoCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"<<", token.SHL}, {">>", token.SHR}, {"<=", token.LTE}, {">=", token.GTE},
		{"==", token.EQ}, {"!=", token.NOTEQ}, {"&&", token.ANDAND}, {"||", token.OROR},
		{"**", token.POW},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Type != tt.want {
			t.Errorf("tokenize(%q)[0].Type = %s, want %s", tt.input, toks[0].Type, tt.want)
		}
		if toks[0].Literal != tt.input {
			t.Errorf("tokenize(%q)[0].Literal = %q, want %q", tt.input, toks[0].Literal, tt.input)
		}
	}
}

func TestNextTokenStrings(t *testing.T) {
	toks := tokenize(t, `"hi\nthere" 'single'`)
	if toks[0].Type != token.STRING || toks[0].Literal != "hi\nthere" {
		t.Errorf("toks[0] = %+v", toks[0])
	}
	if toks[1].Type != token.STRING || toks[1].Literal != "single" {
		t.Errorf("toks[1] = %+v", toks[1])
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("Type = %v, want STRING", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want 1 error", l.Errors())
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input   string
		want    token.Type
		literal string
	}{
		{"42", token.INTEGER, "42"},
		{"3.14", token.FLOAT, "3.14"},
		{"1e10", token.FLOAT, "1e10"},
		{"1,000", token.INTEGER, "1,000"},
		{"0x1F", token.INTEGER, "0x1F"},
		{"0b101", token.INTEGER, "0b101"},
		{"0o17", token.INTEGER, "0o17"},
		{"017", token.INTEGER, "0o17"},
		{"089", token.INTEGER, "089"},
		{"$5.25", token.CURRENCY, "$5.25"},
		{"5.25$", token.CURRENCY, "5.25$"},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Type != tt.want {
			t.Errorf("tokenize(%q)[0].Type = %s, want %s", tt.input, toks[0].Type, tt.want)
		}
		if toks[0].Literal != tt.literal {
			t.Errorf("tokenize(%q)[0].Literal = %q, want %q", tt.input, toks[0].Literal, tt.literal)
		}
	}
}

func TestNextTokenIdentifiersAndBooleans(t *testing.T) {
	toks := tokenize(t, "foo_bar True FALSE baz")
	want := []token.Type{token.IDENT, token.BOOLEAN, token.BOOLEAN, token.IDENT, token.EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	toks := tokenize(t, "1 // trailing comment\n2 /* inline */ + 3")
	wantTypes := []token.Type{token.INTEGER, token.NEWLINE, token.INTEGER, token.PLUS, token.INTEGER, token.EOF}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantTypes), toks)
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, want)
		}
	}
}

func TestNextTokenPositionsCountRunes(t *testing.T) {
	l := New("é + 1")
	first := l.NextToken()
	if first.Pos.Column != 1 {
		t.Errorf("first token column = %d, want 1", first.Pos.Column)
	}
	second := l.NextToken()
	if second.Pos.Column != 3 {
		t.Errorf("second token column = %d, want 3 (one rune, not two bytes)", second.Pos.Column)
	}
}

func TestNewStripsLeadingBOM(t *testing.T) {
	l := New("\xEF\xBB\xBF42")
	tok := l.NextToken()
	if tok.Type != token.INTEGER || tok.Literal != "42" {
		t.Errorf("tok = %+v, want INTEGER(42)", tok)
	}
}
