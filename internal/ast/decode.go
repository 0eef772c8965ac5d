package ast

import (
	"encoding/json"
	"fmt"
)

// Decode parses raw ESTree JSON (as produced by an acorn/esprima-style
// parser invoked with `ranges: true, locations: true`) into this package's
// typed node tree. This is the bridge for callers who already own a JS
// parser and only want this module's evaluator; callers using the bundled
// internal/parser never need it.
//
// No example in this module's reference corpus ships an ESTree JSON
// decoder (none of them consume JSON ASTs from an external parser), so this
// is a standard-library encoding/json implementation rather than a
// wired third-party one.
func Decode(data []byte) (*Program, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: invalid JSON: %w", err)
	}
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: root node must be Program, got %s", raw.Type)
	}
	return prog, nil
}

type rawNode struct {
	Type  string            `json:"type"`
	Start int               `json:"start"`
	End   int                `json:"end"`
	Raw   json.RawMessage
}

func (r *rawNode) UnmarshalJSON(data []byte) error {
	type alias rawNode
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func pos(r rawNode) Pos { return Pos{Start: r.Start, End: r.End} }

func decodeNode(r rawNode) (Node, error) {
	switch r.Type {
	case "Program":
		var v struct {
			Body []rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		stmts, err := decodeStmtList(v.Body)
		if err != nil {
			return nil, err
		}
		return &Program{Pos: pos(r), Body: stmts}, nil
	case "Identifier":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		return &Identifier{Pos: pos(r), Name: v.Name}, nil
	case "Literal":
		var v struct {
			Value any    `json:"value"`
			Raw   string `json:"raw"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		return &Literal{Pos: pos(r), Value: v.Value, Raw: v.Raw}, nil
	case "ThisExpression":
		return &ThisExpression{Pos: pos(r)}, nil
	case "ArrayExpression":
		var v struct {
			Elements []*rawNode `json:"elements"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		elems := make([]Expression, len(v.Elements))
		for i, e := range v.Elements {
			if e == nil {
				continue // hole
			}
			n, err := decodeNode(*e)
			if err != nil {
				return nil, err
			}
			ex, ok := n.(Expression)
			if !ok {
				return nil, fmt.Errorf("ast: array element %d is not an expression", i)
			}
			elems[i] = ex
		}
		return &ArrayExpression{Pos: pos(r), Elements: elems}, nil
	case "ObjectExpression":
		var v struct {
			Properties []struct {
				Key      rawNode `json:"key"`
				Value    rawNode `json:"value"`
				Kind     string  `json:"kind"`
				Computed bool    `json:"computed"`
			} `json:"properties"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		props := make([]*Property, len(v.Properties))
		for i, p := range v.Properties {
			keyN, err := decodeNode(p.Key)
			if err != nil {
				return nil, err
			}
			key, ok := keyN.(Expression)
			if !ok {
				return nil, fmt.Errorf("ast: property key is not an expression")
			}
			valN, err := decodeNode(p.Value)
			if err != nil {
				return nil, err
			}
			val, ok := valN.(Expression)
			if !ok {
				return nil, fmt.Errorf("ast: property value is not an expression")
			}
			kind := p.Kind
			if kind == "" {
				kind = "init"
			}
			props[i] = &Property{Key: key, Value: val, Kind: kind, Computed: p.Computed}
		}
		return &ObjectExpression{Pos: pos(r), Properties: props}, nil
	case "FunctionExpression", "FunctionDeclaration":
		id, params, body, err := decodeFunctionParts(r)
		if err != nil {
			return nil, err
		}
		if r.Type == "FunctionDeclaration" {
			return &FunctionDeclaration{Pos: pos(r), Id: id, Params: params, Body: body}, nil
		}
		return &FunctionExpression{Pos: pos(r), Id: id, Params: params, Body: body}, nil
	case "UnaryExpression":
		var v struct {
			Operator string  `json:"operator"`
			Argument rawNode `json:"argument"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(v.Argument)
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Pos: pos(r), Operator: v.Operator, Argument: arg}, nil
	case "UpdateExpression":
		var v struct {
			Operator string  `json:"operator"`
			Argument rawNode `json:"argument"`
			Prefix   bool    `json:"prefix"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(v.Argument)
		if err != nil {
			return nil, err
		}
		return &UpdateExpression{Pos: pos(r), Operator: v.Operator, Argument: arg, Prefix: v.Prefix}, nil
	case "BinaryExpression", "LogicalExpression":
		var v struct {
			Operator string  `json:"operator"`
			Left     rawNode `json:"left"`
			Right    rawNode `json:"right"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		l, err := decodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		rr, err := decodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		if r.Type == "LogicalExpression" {
			return &LogicalExpression{Pos: pos(r), Operator: v.Operator, Left: l, Right: rr}, nil
		}
		return &BinaryExpression{Pos: pos(r), Operator: v.Operator, Left: l, Right: rr}, nil
	case "AssignmentExpression":
		var v struct {
			Operator string  `json:"operator"`
			Left     rawNode `json:"left"`
			Right    rawNode `json:"right"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		l, err := decodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		rr, err := decodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return &AssignmentExpression{Pos: pos(r), Operator: v.Operator, Left: l, Right: rr}, nil
	case "MemberExpression":
		var v struct {
			Object   rawNode `json:"object"`
			Property rawNode `json:"property"`
			Computed bool    `json:"computed"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		obj, err := decodeExpr(v.Object)
		if err != nil {
			return nil, err
		}
		propN, err := decodeNode(v.Property)
		if err != nil {
			return nil, err
		}
		prop, ok := propN.(Expression)
		if !ok {
			return nil, fmt.Errorf("ast: member property is not an expression")
		}
		return &MemberExpression{Pos: pos(r), Object: obj, Property: prop, Computed: v.Computed}, nil
	case "ConditionalExpression":
		var v struct {
			Test       rawNode `json:"test"`
			Consequent rawNode `json:"consequent"`
			Alternate  rawNode `json:"alternate"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpr(v.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeExpr(v.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeExpr(v.Alternate)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpression{Pos: pos(r), Test: test, Consequent: cons, Alternate: alt}, nil
	case "CallExpression", "NewExpression":
		var v struct {
			Callee    rawNode   `json:"callee"`
			Arguments []rawNode `json:"arguments"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		callee, err := decodeExpr(v.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(v.Arguments)
		if err != nil {
			return nil, err
		}
		if r.Type == "NewExpression" {
			return &NewExpression{Pos: pos(r), Callee: callee, Arguments: args}, nil
		}
		return &CallExpression{Pos: pos(r), Callee: callee, Arguments: args}, nil
	case "SequenceExpression":
		var v struct {
			Expressions []rawNode `json:"expressions"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		exprs, err := decodeExprList(v.Expressions)
		if err != nil {
			return nil, err
		}
		return &SequenceExpression{Pos: pos(r), Expressions: exprs}, nil
	case "ExpressionStatement":
		var v struct {
			Expression rawNode `json:"expression"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		e, err := decodeExpr(v.Expression)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Pos: pos(r), Expression: e}, nil
	case "BlockStatement":
		var v struct {
			Body []rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		stmts, err := decodeStmtList(v.Body)
		if err != nil {
			return nil, err
		}
		return &BlockStatement{Pos: pos(r), Body: stmts}, nil
	case "EmptyStatement":
		return &EmptyStatement{Pos: pos(r)}, nil
	case "DebuggerStatement":
		return &DebuggerStatement{Pos: pos(r)}, nil
	case "VariableDeclaration":
		var v struct {
			Declarations []struct {
				Id   rawNode  `json:"id"`
				Init *rawNode `json:"init"`
			} `json:"declarations"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		decls := make([]*VariableDeclarator, len(v.Declarations))
		for i, d := range v.Declarations {
			idN, err := decodeNode(d.Id)
			if err != nil {
				return nil, err
			}
			id, ok := idN.(*Identifier)
			if !ok {
				return nil, fmt.Errorf("ast: var declarator id must be an Identifier")
			}
			var init Expression
			if d.Init != nil {
				init, err = decodeExpr(*d.Init)
				if err != nil {
					return nil, err
				}
			}
			decls[i] = &VariableDeclarator{Id: id, Init: init}
		}
		return &VariableDeclaration{Pos: pos(r), Declarations: decls}, nil
	case "ReturnStatement":
		var v struct {
			Argument *rawNode `json:"argument"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		var arg Expression
		if v.Argument != nil {
			var err error
			arg, err = decodeExpr(*v.Argument)
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStatement{Pos: pos(r), Argument: arg}, nil
	case "IfStatement":
		var v struct {
			Test       rawNode  `json:"test"`
			Consequent rawNode  `json:"consequent"`
			Alternate  *rawNode `json:"alternate"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpr(v.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeStmt(v.Consequent)
		if err != nil {
			return nil, err
		}
		var alt Statement
		if v.Alternate != nil {
			alt, err = decodeStmt(*v.Alternate)
			if err != nil {
				return nil, err
			}
		}
		return &IfStatement{Pos: pos(r), Test: test, Consequent: cons, Alternate: alt}, nil
	case "LabeledStatement":
		var v struct {
			Label rawNode `json:"label"`
			Body  rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		labelN, err := decodeNode(v.Label)
		if err != nil {
			return nil, err
		}
		label, ok := labelN.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("ast: label must be an Identifier")
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &LabeledStatement{Pos: pos(r), Label: label, Body: body}, nil
	case "BreakStatement", "ContinueStatement":
		var v struct {
			Label *rawNode `json:"label"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		var label *Identifier
		if v.Label != nil {
			labelN, err := decodeNode(*v.Label)
			if err != nil {
				return nil, err
			}
			var ok bool
			label, ok = labelN.(*Identifier)
			if !ok {
				return nil, fmt.Errorf("ast: label must be an Identifier")
			}
		}
		if r.Type == "BreakStatement" {
			return &BreakStatement{Pos: pos(r), Label: label}, nil
		}
		return &ContinueStatement{Pos: pos(r), Label: label}, nil
	case "WithStatement":
		var v struct {
			Object rawNode `json:"object"`
			Body   rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		obj, err := decodeExpr(v.Object)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &WithStatement{Pos: pos(r), Object: obj, Body: body}, nil
	case "SwitchStatement":
		var v struct {
			Discriminant rawNode `json:"discriminant"`
			Cases        []struct {
				Test       *rawNode  `json:"test"`
				Consequent []rawNode `json:"consequent"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		disc, err := decodeExpr(v.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]*SwitchCase, len(v.Cases))
		for i, c := range v.Cases {
			var test Expression
			if c.Test != nil {
				test, err = decodeExpr(*c.Test)
				if err != nil {
					return nil, err
				}
			}
			body, err := decodeStmtList(c.Consequent)
			if err != nil {
				return nil, err
			}
			cases[i] = &SwitchCase{Test: test, Consequent: body}
		}
		return &SwitchStatement{Pos: pos(r), Discriminant: disc, Cases: cases}, nil
	case "ThrowStatement":
		var v struct {
			Argument rawNode `json:"argument"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(v.Argument)
		if err != nil {
			return nil, err
		}
		return &ThrowStatement{Pos: pos(r), Argument: arg}, nil
	case "TryStatement":
		var v struct {
			Block     rawNode  `json:"block"`
			Handler   *rawNode `json:"handler"`
			Finalizer *rawNode `json:"finalizer"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		blockN, err := decodeNode(v.Block)
		if err != nil {
			return nil, err
		}
		block, ok := blockN.(*BlockStatement)
		if !ok {
			return nil, fmt.Errorf("ast: try block must be a BlockStatement")
		}
		var handler *CatchClause
		if v.Handler != nil {
			var hv struct {
				Param rawNode `json:"param"`
				Body  rawNode `json:"body"`
			}
			if err := json.Unmarshal(v.Handler.Raw, &hv); err != nil {
				return nil, err
			}
			paramN, err := decodeNode(hv.Param)
			if err != nil {
				return nil, err
			}
			param, ok := paramN.(*Identifier)
			if !ok {
				return nil, fmt.Errorf("ast: catch param must be an Identifier")
			}
			bodyN, err := decodeNode(hv.Body)
			if err != nil {
				return nil, err
			}
			body, ok := bodyN.(*BlockStatement)
			if !ok {
				return nil, fmt.Errorf("ast: catch body must be a BlockStatement")
			}
			handler = &CatchClause{Param: param, Body: body}
		}
		var fin *BlockStatement
		if v.Finalizer != nil {
			finN, err := decodeNode(*v.Finalizer)
			if err != nil {
				return nil, err
			}
			var ok bool
			fin, ok = finN.(*BlockStatement)
			if !ok {
				return nil, fmt.Errorf("ast: finally block must be a BlockStatement")
			}
		}
		return &TryStatement{Pos: pos(r), Block: block, Handler: handler, Finalizer: fin}, nil
	case "WhileStatement":
		var v struct {
			Test rawNode `json:"test"`
			Body rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpr(v.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStatement{Pos: pos(r), Test: test, Body: body}, nil
	case "DoWhileStatement":
		var v struct {
			Test rawNode `json:"test"`
			Body rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpr(v.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &DoWhileStatement{Pos: pos(r), Test: test, Body: body}, nil
	case "ForStatement":
		var v struct {
			Init   *rawNode `json:"init"`
			Test   *rawNode `json:"test"`
			Update *rawNode `json:"update"`
			Body   rawNode  `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		var init Node
		if v.Init != nil {
			n, err := decodeNode(*v.Init)
			if err != nil {
				return nil, err
			}
			init = n
		}
		var test, update Expression
		if v.Test != nil {
			var err error
			test, err = decodeExpr(*v.Test)
			if err != nil {
				return nil, err
			}
		}
		if v.Update != nil {
			var err error
			update, err = decodeExpr(*v.Update)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &ForStatement{Pos: pos(r), Init: init, Test: test, Update: update, Body: body}, nil
	case "ForInStatement":
		var v struct {
			Left  rawNode `json:"left"`
			Right rawNode `json:"right"`
			Body  rawNode `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &v); err != nil {
			return nil, err
		}
		left, err := decodeNode(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return &ForInStatement{Pos: pos(r), Left: left, Right: right, Body: body}, nil
	default:
		return nil, fmt.Errorf("ast: unknown node kind %q", r.Type)
	}
}

func decodeFunctionParts(r rawNode) (*Identifier, []*Identifier, *BlockStatement, error) {
	var v struct {
		Id     *rawNode  `json:"id"`
		Params []rawNode `json:"params"`
		Body   rawNode   `json:"body"`
	}
	if err := json.Unmarshal(r.Raw, &v); err != nil {
		return nil, nil, nil, err
	}
	var id *Identifier
	if v.Id != nil {
		idN, err := decodeNode(*v.Id)
		if err != nil {
			return nil, nil, nil, err
		}
		var ok bool
		id, ok = idN.(*Identifier)
		if !ok {
			return nil, nil, nil, fmt.Errorf("ast: function id must be an Identifier")
		}
	}
	params := make([]*Identifier, len(v.Params))
	for i, p := range v.Params {
		pn, err := decodeNode(p)
		if err != nil {
			return nil, nil, nil, err
		}
		id, ok := pn.(*Identifier)
		if !ok {
			return nil, nil, nil, fmt.Errorf("ast: only identifier parameters are supported")
		}
		params[i] = id
	}
	bodyN, err := decodeNode(v.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	body, ok := bodyN.(*BlockStatement)
	if !ok {
		return nil, nil, nil, fmt.Errorf("ast: function body must be a BlockStatement")
	}
	return id, params, body, nil
}

func decodeExpr(r rawNode) (Expression, error) {
	n, err := decodeNode(r)
	if err != nil {
		return nil, err
	}
	e, ok := n.(Expression)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not an expression", r.Type)
	}
	return e, nil
}

func decodeStmt(r rawNode) (Statement, error) {
	n, err := decodeNode(r)
	if err != nil {
		return nil, err
	}
	s, ok := n.(Statement)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not a statement", r.Type)
	}
	return s, nil
}

func decodeExprList(rs []rawNode) ([]Expression, error) {
	out := make([]Expression, len(rs))
	for i, r := range rs {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeStmtList(rs []rawNode) ([]Statement, error) {
	out := make([]Statement, len(rs))
	for i, r := range rs {
		s, err := decodeStmt(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
