package parser

import (
	"strconv"
	"strings"

	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/lexer"
)

// precedence levels, lowest to highest, mirroring JS's operator precedence
// table restricted to the ES3/5 subset's operator set.
const (
	precNone = iota
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binPrec = map[lexer.TokenType]int{
	lexer.OR:  precLogicalOr,
	lexer.AND: precLogicalAnd,

	lexer.PIPE:  precBitOr,
	lexer.CARET: precBitXor,
	lexer.AMP:   precBitAnd,

	lexer.EQ: precEquality, lexer.NEQ: precEquality,
	lexer.SEQ: precEquality, lexer.SNEQ: precEquality,

	lexer.LT: precRelational, lexer.LTE: precRelational,
	lexer.GT: precRelational, lexer.GTE: precRelational,

	lexer.SHL: precShift, lexer.SHR: precShift, lexer.USHR: precShift,

	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,

	lexer.STAR: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN: "=", lexer.PLUS_ASSIGN: "+=", lexer.MINUS_ASSIGN: "-=",
	lexer.STAR_ASSIGN: "*=", lexer.SLASH_ASSIGN: "/=", lexer.PERCENT_ASSIGN: "%=",
	lexer.AMP_ASSIGN: "&=", lexer.PIPE_ASSIGN: "|=", lexer.CARET_ASSIGN: "^=",
	lexer.SHL_ASSIGN: "<<=", lexer.SHR_ASSIGN: ">>=", lexer.USHR_ASSIGN: ">>>=",
}

// parseExpression parses a full comma-separated SequenceExpression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	start := p.cur.Start
	first, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if !p.isPunct(lexer.COMMA) {
		return first, nil
	}
	exprs := []ast.Expression{first}
	for p.isPunct(lexer.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ast.SequenceExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Expressions: exprs}, nil
}

// parseAssignmentNoIn parses an assignment-level expression but stops
// before a bare `in` keyword, used while scanning a for-loop head to
// disambiguate `for (x in obj)` from `for (x; ...)`.
func (p *Parser) parseAssignmentNoIn() (ast.Expression, error) {
	p.noIn = true
	defer func() { p.noIn = false }()
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	start := p.cur.Start
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.cur.Type]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	start := p.cur.Start
	test, err := p.parseBinary(precNone)
	if err != nil {
		return nil, err
	}
	if !p.isPunct(lexer.QUESTION) {
		return test, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cons, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Test: test, Consequent: cons, Alternate: alt}, nil
}

// parseBinary implements precedence climbing over binary/logical operators
// plus the keyword operators `instanceof` and `in`.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	start := p.cur.Start
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.isKeyword("instanceof") {
			if precRelational < minPrec {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseBinary(precRelational + 1)
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: "instanceof", Left: left, Right: right}
			continue
		}
		if p.isKeyword("in") && !p.noIn {
			if precRelational < minPrec {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseBinary(precRelational + 1)
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: "in", Left: left, Right: right}
			continue
		}
		prec, ok := binPrec[p.cur.Type]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		if opTok.Type == lexer.AND || opTok.Type == lexer.OR {
			left = &ast.LogicalExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: opTok.Literal, Left: left, Right: right}
		} else {
			left = &ast.BinaryExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: opTok.Literal, Left: left, Right: right}
		}
	}
	return left, nil
}

var unaryOps = map[lexer.TokenType]string{
	lexer.NOT: "!", lexer.TILDE: "~", lexer.PLUS: "+", lexer.MINUS: "-",
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	start := p.cur.Start
	if op, ok := unaryOps[p.cur.Type]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: op, Argument: arg}, nil
	}
	if p.isKeyword("typeof") || p.isKeyword("void") || p.isKeyword("delete") {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: op, Argument: arg}, nil
	}
	if p.isPunct(lexer.INC) || p.isPunct(lexer.DEC) {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: op, Argument: arg, Prefix: true}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	start := p.cur.Start
	expr, err := p.parseCallOrMember()
	if err != nil {
		return nil, err
	}
	if p.isPunct(lexer.INC) || p.isPunct(lexer.DEC) {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Operator: op, Argument: expr, Prefix: false}, nil
	}
	return expr, nil
}

func (p *Parser) parseCallOrMember() (ast.Expression, error) {
	start := p.cur.Start
	var expr ast.Expression
	var err error
	if p.isKeyword("new") {
		expr, err = p.parseNew()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct(lexer.DOT):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.identifier()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Object: expr, Property: prop, Computed: false}
		case p.isPunct(lexer.LBRACKET):
			if err := p.advance(); err != nil {
				return nil, err
			}
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Object: expr, Property: key, Computed: true}
		case p.isPunct(lexer.LPAREN):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseNew() (ast.Expression, error) {
	start := p.cur.Start
	if err := p.expectKeyword("new"); err != nil {
		return nil, err
	}
	var callee ast.Expression
	var err error
	if p.isKeyword("new") {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	// allow member access on the constructor expression before the call parens:
	// new a.B(x)
	for {
		if p.isPunct(lexer.DOT) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.identifier()
			if err != nil {
				return nil, err
			}
			callee = &ast.MemberExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Object: callee, Property: prop}
			continue
		}
		break
	}
	var args []ast.Expression
	if p.isPunct(lexer.LPAREN) {
		args, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
	}
	return &ast.NewExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Callee: callee, Arguments: args}, nil
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.isPunct(lexer.RPAREN) {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.isPunct(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	start := p.cur.Start
	switch {
	case p.isKeyword("this"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ThisExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}}, nil
	case p.isKeyword("true"), p.isKeyword("false"):
		v := p.isKeyword("true")
		raw := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Pos: ast.Pos{Start: start, End: p.cur.Start}, Value: v, Raw: raw}, nil
	case p.isKeyword("null"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Pos: ast.Pos{Start: start, End: p.cur.Start}, Value: nil, Raw: "null"}, nil
	case p.isKeyword("undefined"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Pos: ast.Pos{Start: start, End: p.cur.Start}, Name: "undefined"}, nil
	case p.isKeyword("function"):
		return p.parseFunctionExpression()
	case p.cur.Type == lexer.NUMBER:
		lit := p.cur.Literal
		n, err := parseNumberLiteral(lit)
		if err != nil {
			return nil, p.errf("invalid number literal %q", lit)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Pos: ast.Pos{Start: start, End: p.cur.Start}, Value: n, Raw: lit}, nil
	case p.cur.Type == lexer.STRING:
		s := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Pos: ast.Pos{Start: start, End: p.cur.Start}, Value: s, Raw: s}, nil
	case p.cur.Type == lexer.IDENT:
		return p.identifier()
	case p.isPunct(lexer.LPAREN):
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case p.isPunct(lexer.LBRACKET):
		return p.parseArrayLiteral()
	case p.isPunct(lexer.LBRACE):
		return p.parseObjectLiteral()
	}
	return nil, p.errf("unexpected token %q", p.cur.Literal)
}

func parseNumberLiteral(lit string) (float64, error) {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, err := strconv.ParseInt(lit[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	return strconv.ParseFloat(lit, 64)
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	start := p.cur.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for !p.isPunct(lexer.RBRACKET) {
		if p.isPunct(lexer.COMMA) {
			elems = append(elems, nil) // hole
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		e, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.isPunct(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	if err := p.expectPunct(lexer.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Elements: elems}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	start := p.cur.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var props []*ast.Property
	for !p.isPunct(lexer.RBRACE) {
		prop, err := p.parseObjectProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if p.isPunct(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	if err := p.expectPunct(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.ObjectExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Properties: props}, nil
}

func (p *Parser) parseObjectProperty() (*ast.Property, error) {
	// Accessor syntax: get/set are contextual keywords, only recognized
	// when followed by a property-name token (not ':' or ',').
	if p.cur.Type == lexer.IDENT && (p.cur.Literal == "get" || p.cur.Literal == "set") {
		kind := p.cur.Literal
		if p.peek.Type != lexer.COLON && p.peek.Type != lexer.COMMA && p.peek.Type != lexer.RBRACE {
			if err := p.advance(); err != nil {
				return nil, err
			}
			key, err := p.parsePropertyKey()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
				return nil, err
			}
			var params []*ast.Identifier
			if kind == "set" {
				id, err := p.identifier()
				if err != nil {
					return nil, err
				}
				params = append(params, id)
			}
			if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
				return nil, err
			}
			body, err := p.parseBlockStatement()
			if err != nil {
				return nil, err
			}
			fn := &ast.FunctionExpression{Params: params, Body: body}
			return &ast.Property{Key: key, Value: fn, Kind: kind}, nil
		}
	}
	key, computed, err := p.parsePropertyKeyMaybeComputed()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	val, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Property{Key: key, Value: val, Kind: "init", Computed: computed}, nil
}

func (p *Parser) parsePropertyKey() (ast.Expression, error) {
	key, _, err := p.parsePropertyKeyMaybeComputed()
	return key, err
}

func (p *Parser) parsePropertyKeyMaybeComputed() (ast.Expression, bool, error) {
	switch {
	case p.cur.Type == lexer.STRING:
		s := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &ast.Literal{Value: s, Raw: s}, false, nil
	case p.cur.Type == lexer.NUMBER:
		lit := p.cur.Literal
		n, err := parseNumberLiteral(lit)
		if err != nil {
			return nil, false, p.errf("invalid number literal %q", lit)
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &ast.Literal{Value: n, Raw: lit}, false, nil
	default:
		id, err := p.identifier()
		return id, false, err
	}
}

func (p *Parser) parseFunctionExpression() (ast.Expression, error) {
	start := p.cur.Start
	if err := p.expectKeyword("function"); err != nil {
		return nil, err
	}
	var id *ast.Identifier
	if p.cur.Type == lexer.IDENT {
		var err error
		id, err = p.identifier()
		if err != nil {
			return nil, err
		}
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{Pos: ast.Pos{Start: start, End: p.cur.Start}, Id: id, Params: params, Body: body}, nil
}

func (p *Parser) parseParams() ([]*ast.Identifier, error) {
	if err := p.expectPunct(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Identifier
	for !p.isPunct(lexer.RPAREN) {
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		params = append(params, id)
		if p.isPunct(lexer.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}
