// Package parser is a recursive-descent parser for the ES3/5 subset this
// module evaluates, producing internal/ast nodes directly (no JSON
// round-trip). Its file layout — core state in parser.go, expression
// grammar in expressions.go, statement grammar in statements.go — mirrors
// the teacher's internal/parser split into expressions_*.go/statements_*.go
// files, generalized from funxy's grammar to the ES3/5 subset's.
package parser

import (
	"fmt"

	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/lexer"
)

// SyntaxError is returned for any malformed input; the bundled parser never panics.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

type Parser struct {
	lex *lexer.Lexer
	src string

	cur  lexer.Token
	peek lexer.Token

	noIn bool // true while parsing a for-loop head's init clause
}

// Parse lexes and parses source into a Program. evaluator.Runtime.Evaluate
// calls it directly, and it is the entry point for anyone embedding just
// the parser.
func Parse(source string) (*ast.Program, error) {
	p := &Parser{lex: lexer.New(source), src: source}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return &SyntaxError{Msg: err.Error(), Line: p.cur.Line, Column: p.cur.Column}
	}
	p.peek = tok
	return nil
}

func (p *Parser) errf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) isKeyword(word string) bool {
	return p.cur.Type == lexer.KEYWORD && p.cur.Literal == word
}

func (p *Parser) isPunct(tt lexer.TokenType) bool { return p.cur.Type == tt }

func (p *Parser) expectPunct(tt lexer.TokenType, what string) error {
	if p.cur.Type != tt {
		return p.errf("expected %s, got %q", what, p.cur.Literal)
	}
	return p.advance()
}

func (p *Parser) expectKeyword(word string) error {
	if !p.isKeyword(word) {
		return p.errf("expected keyword %q, got %q", word, p.cur.Literal)
	}
	return p.advance()
}

// consumeSemi accepts an explicit `;`, or tolerates its absence before `}`
// or EOF. This module does not implement full automatic-semicolon-insertion
// line-break rules (not named by spec.md, and not load-bearing for any
// listed law/scenario); it only tolerates the common trailing-omission case
// so ordinary scripts need not be semicolon-perfect.
func (p *Parser) consumeSemi() error {
	if p.isPunct(lexer.SEMI) {
		return p.advance()
	}
	if p.isPunct(lexer.RBRACE) || p.cur.Type == lexer.EOF {
		return nil
	}
	return p.errf("expected ';', got %q", p.cur.Literal)
}

func (p *Parser) identifier() (*ast.Identifier, error) {
	if p.cur.Type != lexer.IDENT && p.cur.Type != lexer.KEYWORD {
		return nil, p.errf("expected identifier, got %q", p.cur.Literal)
	}
	id := &ast.Identifier{Pos: ast.Pos{Start: p.cur.Start, End: p.cur.End}, Name: p.cur.Literal}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return id, nil
}
