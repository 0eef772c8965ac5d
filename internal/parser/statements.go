package parser

import (
	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/lexer"
)

// parseProgram parses a full source file: a sequence of statements up to EOF.
func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.cur.Start
	var body []ast.Statement
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return &ast.Program{Pos: ast.Pos{Start: start, End: p.cur.Start}, Body: body}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.isPunct(lexer.LBRACE):
		return p.parseBlockStatement()
	case p.isPunct(lexer.SEMI):
		start := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.EmptyStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}}, nil
	case p.isKeyword("var"):
		return p.parseVariableStatement()
	case p.isKeyword("function"):
		return p.parseFunctionDeclaration()
	case p.isKeyword("if"):
		return p.parseIfStatement()
	case p.isKeyword("return"):
		return p.parseReturnStatement()
	case p.isKeyword("break"):
		return p.parseBreakContinue(true)
	case p.isKeyword("continue"):
		return p.parseBreakContinue(false)
	case p.isKeyword("with"):
		return p.parseWithStatement()
	case p.isKeyword("switch"):
		return p.parseSwitchStatement()
	case p.isKeyword("throw"):
		return p.parseThrowStatement()
	case p.isKeyword("try"):
		return p.parseTryStatement()
	case p.isKeyword("while"):
		return p.parseWhileStatement()
	case p.isKeyword("do"):
		return p.parseDoWhileStatement()
	case p.isKeyword("for"):
		return p.parseForStatement()
	case p.isKeyword("debugger"):
		start := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.consumeSemi(); err != nil {
			return nil, err
		}
		return &ast.DebuggerStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}}, nil
	case p.cur.Type == lexer.IDENT && p.peek.Type == lexer.COLON:
		return p.parseLabeledStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	start := p.cur.Start
	if err := p.expectPunct(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.isPunct(lexer.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if err := p.expectPunct(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Body: body}, nil
}

func (p *Parser) parseVariableStatement() (ast.Statement, error) {
	decl, err := p.parseVariableDeclaration()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseVariableDeclaration parses `var x = 1, y;` without the trailing
// semicolon, shared by the ordinary var statement and a classic for-loop's
// init clause.
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	start := p.cur.Start
	if err := p.expectKeyword("var"); err != nil {
		return nil, err
	}
	var decls []*ast.VariableDeclarator
	for {
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.isPunct(lexer.ASSIGN) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.noIn {
				init, err = p.parseAssignmentNoIn()
			} else {
				init, err = p.parseAssignment()
			}
			if err != nil {
				return nil, err
			}
		}
		decls = append(decls, &ast.VariableDeclarator{Id: id, Init: init})
		if p.isPunct(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return &ast.VariableDeclaration{Pos: ast.Pos{Start: start, End: p.cur.Start}, Declarations: decls}, nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Pos: ast.Pos{Start: start, End: p.cur.Start}, Id: id, Params: params, Body: body}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var alt ast.Statement
	if p.isKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		alt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Test: test, Consequent: cons, Alternate: alt}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	var arg ast.Expression
	if !p.isPunct(lexer.SEMI) && !p.isPunct(lexer.RBRACE) && p.cur.Type != lexer.EOF {
		var err error
		arg, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Argument: arg}, nil
}

func (p *Parser) parseBreakContinue(isBreak bool) (ast.Statement, error) {
	start := p.cur.Start
	if err := p.advance(); err != nil { // consume 'break'/'continue'
		return nil, err
	}
	var label *ast.Identifier
	if p.cur.Type == lexer.IDENT {
		var err error
		label, err = p.identifier()
		if err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	if isBreak {
		return &ast.BreakStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Label: label}, nil
	}
	return &ast.ContinueStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Label: label}, nil
}

func (p *Parser) parseWithStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("with"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	obj, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WithStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Object: obj, Body: body}, nil
}

func (p *Parser) parseSwitchStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("switch"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var cases []*ast.SwitchCase
	for !p.isPunct(lexer.RBRACE) {
		caseStart := p.cur.Start
		var test ast.Expression
		if p.isKeyword("case") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			test, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		} else if err := p.expectKeyword("default"); err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.COLON, "':'"); err != nil {
			return nil, err
		}
		var body []ast.Statement
		for !p.isKeyword("case") && !p.isKeyword("default") && !p.isPunct(lexer.RBRACE) {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		cases = append(cases, &ast.SwitchCase{Pos: ast.Pos{Start: caseStart, End: p.cur.Start}, Test: test, Consequent: body})
	}
	if err := p.expectPunct(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.SwitchStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Discriminant: disc, Cases: cases}, nil
}

func (p *Parser) parseThrowStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("throw"); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Argument: arg}, nil
}

func (p *Parser) parseTryStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("try"); err != nil {
		return nil, err
	}
	block, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	if p.isKeyword("catch") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
			return nil, err
		}
		param, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		catchBody, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		handler = &ast.CatchClause{Param: param, Body: catchBody}
	}
	var finalizer *ast.BlockStatement
	if p.isKeyword("finally") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		finalizer, err = p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
	}
	if handler == nil && finalizer == nil {
		return nil, p.errf("missing catch or finally after try block")
	}
	return &ast.TryStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Block: block, Handler: handler, Finalizer: finalizer}, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Test: test, Body: body}, nil
}

func (p *Parser) parseDoWhileStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Test: test, Body: body}, nil
}

// parseForStatement disambiguates `for (init; test; update)` from
// `for (lhs in obj)` by parsing the head's first clause with the noIn
// flag set, then checking for a following `in` keyword.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	start := p.cur.Start
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}

	var init ast.Node
	if p.isKeyword("var") {
		p.noIn = true
		decl, err := p.parseVariableDeclaration()
		p.noIn = false
		if err != nil {
			return nil, err
		}
		if p.isKeyword("in") && len(decl.Declarations) == 1 {
			return p.finishForIn(start, decl)
		}
		init = decl
	} else if !p.isPunct(lexer.SEMI) {
		expr, err := p.parseAssignmentNoIn()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("in") {
			return p.finishForIn(start, expr)
		}
		// A classic for-loop's init clause can be a comma-separated
		// expression list (`for (a = 1, b = 2; ...)`); fold it into a
		// SequenceExpression the same way parseExpression does, so every
		// clause's side effect actually runs instead of only the first.
		if p.isPunct(lexer.COMMA) {
			exprs := []ast.Expression{expr}
			for p.isPunct(lexer.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				e, err := p.parseAssignmentNoIn()
				if err != nil {
					return nil, err
				}
				exprs = append(exprs, e)
			}
			exprStart, _ := expr.Span()
			expr = &ast.SequenceExpression{Pos: ast.Pos{Start: exprStart, End: p.cur.Start}, Expressions: exprs}
		}
		init = expr
	}

	if err := p.expectPunct(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	var test ast.Expression
	if !p.isPunct(lexer.SEMI) {
		var err error
		test, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	var update ast.Expression
	if !p.isPunct(lexer.RPAREN) {
		var err error
		update, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Init: init, Test: test, Update: update, Body: body}, nil
}

func (p *Parser) finishForIn(start int, left ast.Node) (ast.Statement, error) {
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForInStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Left: left, Right: right, Body: body}, nil
}

func (p *Parser) parseLabeledStatement() (ast.Statement, error) {
	start := p.cur.Start
	label, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.LabeledStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Label: label, Body: body}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.cur.Start
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemi(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Pos: ast.Pos{Start: start, End: p.cur.Start}, Expression: expr}, nil
}
