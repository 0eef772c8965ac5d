// Package lexer tokenizes ES3/5-subset source text for internal/parser.
package lexer

type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	IDENT
	NUMBER
	STRING
	KEYWORD

	// punctuators
	ASSIGN     // =
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	USHR_ASSIGN

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	INC
	DEC

	EQ
	NEQ
	SEQ
	SNEQ
	LT
	LTE
	GT
	GTE

	AND
	OR
	NOT

	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR
	USHR

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMI
	COMMA
	DOT
	QUESTION
	COLON
)

type Token struct {
	Type    TokenType
	Literal string
	Start   int
	End     int
	Line    int
	Column  int
}

var keywords = map[string]bool{
	"var": true, "function": true, "return": true, "if": true, "else": true,
	"for": true, "while": true, "do": true, "in": true, "with": true,
	"switch": true, "case": true, "default": true, "break": true, "continue": true,
	"throw": true, "try": true, "catch": true, "finally": true, "new": true,
	"delete": true, "typeof": true, "void": true, "instanceof": true,
	"this": true, "true": true, "false": true, "null": true, "undefined": true,
	"debugger": true,
}

// "get" and "set" are contextual keywords (object-literal accessor syntax
// only); they stay valid identifiers everywhere else, so they are
// deliberately absent from the reserved-word table above.

// IsKeyword reports whether word is a reserved word of the subset this
// lexer/parser implements.
func IsKeyword(word string) bool { return keywords[word] }
