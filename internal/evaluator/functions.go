package evaluator

import (
	"fmt"

	"github.com/thunklang/es3vm/internal/ast"
)

// makeFunctionValue compiles a function body once and wraps it as a host
// Value via Host.NewFunction. Each call allocates a fresh activation scope
// whose parent is the scope the function was defined in, hoists the body's
// declarations into it, and binds `arguments` and the parameters there, so
// recursive and re-entrant calls never share local variables.
func makeFunctionValue(node ast.Node, id *ast.Identifier, params []*ast.Identifier, body *ast.BlockStatement, source string, rt *Runtime, outerScope *Scope) (Value, error) {
	name := ""
	if id != nil {
		name = id.Name
	}

	bodyThunk, err := compileStatements(body.Body, source)
	if err != nil {
		return nil, err
	}

	start, end := node.Span()
	label := fmt.Sprintf("%s(%d,%d)", name, start, end)
	srcStart, srcEnd := start, end
	if srcEnd > len(source) {
		srcEnd = len(source)
	}
	srcText := ""
	if srcStart >= 0 && srcStart <= srcEnd {
		srcText = source[srcStart:srcEnd]
	}

	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
	}

	native := func(this Value, args []Value) (Value, error) {
		if err := rt.tickStep(); err != nil {
			return nil, err
		}
		rt.pushFrame(label)
		defer rt.popFrame()

		fnScope := newScope(name, outerScope)
		if err := hoistStatements(body.Body, fnScope, rt, source); err != nil {
			return nil, err
		}
		fnScope.declare("arguments", rt.host.NewArray(append([]Value(nil), args...)))
		for i, pname := range paramNames {
			if i < len(args) {
				fnScope.declare(pname, args[i])
			} else {
				fnScope.declare(pname, rt.host.Undefined())
			}
		}

		rt.pushThis(this)
		defer rt.popThis()

		result, err := bodyThunk(rt, fnScope)
		if err != nil {
			return nil, err
		}
		switch result.tag {
		case ctrlReturn:
			return result.value, nil
		default:
			return rt.host.Undefined(), nil
		}
	}

	return rt.host.NewFunction(native, len(paramNames), name, srcText), nil
}

func compileFunctionDeclarationStatement() (stmtThunk, error) {
	// The function value was already installed at hoist time
	// (hoistStatement's *ast.FunctionDeclaration case); the declaration's
	// own position in the statement list is a no-op at run time.
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		return ctrlEmptyResult, nil
	}, nil
}

func compileFunctionExpression(n *ast.FunctionExpression, source string) (exprThunk, error) {
	return func(rt *Runtime, sc *Scope) (Value, error) {
		fn, err := makeFunctionValue(n, n.Id, n.Params, n.Body, source, rt, sc)
		if err != nil {
			return nil, err
		}
		return fn, nil
	}, nil
}
