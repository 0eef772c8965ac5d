package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `var x = 5 + foo * (1.5 - "bar");
if (x >= 10) { x++; } else { x--; }
// line comment
/* block
comment */
x == y && z != w || !a`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{KEYWORD, "var"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUMBER, "5"},
		{PLUS, "+"},
		{IDENT, "foo"},
		{STAR, "*"},
		{LPAREN, "("},
		{NUMBER, "1.5"},
		{MINUS, "-"},
		{STRING, "bar"},
		{RPAREN, ")"},
		{SEMI, ";"},
		{KEYWORD, "if"},
		{LPAREN, "("},
		{IDENT, "x"},
		{GTE, ">="},
		{NUMBER, "10"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{IDENT, "x"},
		{INC, "++"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{KEYWORD, "else"},
		{LBRACE, "{"},
		{IDENT, "x"},
		{DEC, "--"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{IDENT, "x"},
		{EQ, "=="},
		{IDENT, "y"},
		{AND, "&&"},
		{IDENT, "z"},
		{NEQ, "!="},
		{IDENT, "w"},
		{OR, "||"},
		{NOT, "!"},
		{IDENT, "a"},
		{EOF, ""},
	}

	l := New(input)
	for i, tc := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != tc.typ {
			t.Fatalf("token %d: type = %v, want %v (literal %q)", i, tok.Type, tc.typ, tok.Literal)
		}
		if tok.Literal != tc.literal {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tc.literal)
		}
	}
}

func TestNextTokenStrictEquality(t *testing.T) {
	l := New("a === b !== c")
	want := []TokenType{IDENT, SEQ, IDENT, SNEQ, IDENT, EOF}
	for i, w := range want {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok.Type != w {
			t.Fatalf("token %d: type = %v, want %v", i, tok.Type, w)
		}
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New(`"unterminated`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\nbb")
	first, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Line != 1 || first.Column != 1 {
		t.Fatalf("first token at %d:%d, want 1:1", first.Line, first.Column)
	}
	second, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Line != 2 || second.Column != 1 {
		t.Fatalf("second token at %d:%d, want 2:1", second.Line, second.Column)
	}
}
