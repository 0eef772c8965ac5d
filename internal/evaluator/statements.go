package evaluator

import "github.com/thunklang/es3vm/internal/ast"

func compileExpressionStatement(n *ast.ExpressionStatement, source string) (stmtThunk, error) {
	exprT, err := compileExpr(n.Expression, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		v, err := exprT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		rt.setValue(v)
		return ctrlOKValue(v), nil
	}, nil
}

// compileVariableDeclaration only needs to run declarators' initializers
// as assignments: the name itself was already bound to undefined (or left
// alone if a function of the same name won) at hoist time.
func compileVariableDeclaration(n *ast.VariableDeclaration, source string) (stmtThunk, error) {
	type initAssign struct {
		name string
		init exprThunk
	}
	var assigns []initAssign
	for _, d := range n.Declarations {
		if d.Init == nil {
			continue
		}
		t, err := compileExpr(d.Init, source)
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, initAssign{name: d.Id.Name, init: t})
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		var last Value
		have := false
		for _, a := range assigns {
			v, err := a.init(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			sc.set(a.name, v)
			last, have = v, true
		}
		if !have {
			return ctrlEmptyResult, nil
		}
		return ctrlOKValue(last), nil
	}, nil
}

func compileReturnStatement(n *ast.ReturnStatement, source string) (stmtThunk, error) {
	if n.Argument == nil {
		return func(rt *Runtime, sc *Scope) (ctrl, error) {
			return ctrlReturnValue(rt.host.Undefined()), nil
		}, nil
	}
	argT, err := compileExpr(n.Argument, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		v, err := argT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		return ctrlReturnValue(v), nil
	}, nil
}

func compileIfStatement(n *ast.IfStatement, source string) (stmtThunk, error) {
	testT, err := compileExpr(n.Test, source)
	if err != nil {
		return nil, err
	}
	consT, err := compileStmt(n.Consequent, source)
	if err != nil {
		return nil, err
	}
	var altT stmtThunk
	if n.Alternate != nil {
		altT, err = compileStmt(n.Alternate, source)
		if err != nil {
			return nil, err
		}
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		tv, err := testT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		if rt.host.Truthy(tv) {
			return consT(rt, sc)
		}
		if altT != nil {
			return altT(rt, sc)
		}
		return ctrlEmptyResult, nil
	}, nil
}

func compileThrowStatement(n *ast.ThrowStatement, source string) (stmtThunk, error) {
	argT, err := compileExpr(n.Argument, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		v, err := argT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		return ctrl{}, &Thrown{Value: v}
	}, nil
}

func compileBreakStatement(n *ast.BreakStatement) (stmtThunk, error) {
	if n.Label != nil {
		label := n.Label.Name
		return func(rt *Runtime, sc *Scope) (ctrl, error) {
			return ctrlBreakTo(label), nil
		}, nil
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		return ctrlBreakUnlabeled(), nil
	}, nil
}

func compileContinueStatement(n *ast.ContinueStatement) (stmtThunk, error) {
	if n.Label != nil {
		label := n.Label.Name
		return func(rt *Runtime, sc *Scope) (ctrl, error) {
			return ctrlContinueTo(label), nil
		}, nil
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		return ctrlContinueUnlabeled(), nil
	}, nil
}

// compileLabeledStatement pushes the label onto the current scope's label
// stack for the duration of the body. A labeled loop learns its own label
// at compile time instead (compileLabelableStatement passes it down as
// ownLabels), which is how it recognizes a BreakLabel/ContinueLabel
// addressed to itself; switch takes no label and propagates labeled
// signals. A bare labeled non-loop statement (e.g. `foo: { ... }`) only
// needs to swallow a matching BreakLabel here, since nothing else would
// ever consume it.
func compileLabeledStatement(n *ast.LabeledStatement, source string) (stmtThunk, error) {
	label := n.Label.Name
	bodyT, err := compileLabelableStatement(n.Body, source, label)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		sc.pushLabel(label)
		defer sc.popLabel()
		r, err := bodyT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		if r.tag == ctrlBreakLabel && r.label == label {
			return ctrlEmptyResult, nil
		}
		return r, nil
	}, nil
}

// compileLabelableStatement compiles body, passing the enclosing label
// down to While/DoWhile/For/ForIn so their own ContinueLabel handling can
// recognize a `continue label;` that targets this exact loop.
func compileLabelableStatement(body ast.Statement, source string, label string) (stmtThunk, error) {
	switch n := body.(type) {
	case *ast.WhileStatement:
		return compileWhileStatement(n, source, []string{label})
	case *ast.DoWhileStatement:
		return compileDoWhileStatement(n, source, []string{label})
	case *ast.ForStatement:
		return compileForStatement(n, source, []string{label})
	case *ast.ForInStatement:
		return compileForInStatement(n, source, []string{label})
	default:
		return compileStmt(body, source)
	}
}

// compileWithStatement evaluates Object once into a fresh child scope
// named "with" whose data table is seeded with a shallow copy of Object's
// enumerable properties. Mutations of those names inside the with-body
// mutate the overlay copy, not the original object — a deliberate,
// documented divergence from host-delegated with semantics (see
// SPEC_FULL.md's Open Question on `with`).
func compileWithStatement(n *ast.WithStatement, source string) (stmtThunk, error) {
	objT, err := compileExpr(n.Object, source)
	if err != nil {
		return nil, err
	}
	bodyT, err := compileStmt(n.Body, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		obj, err := objT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		withScope := newScope("with", sc)
		keys, err := rt.host.Enumerate(obj)
		if err != nil {
			return ctrl{}, hostErr(rt, err)
		}
		for _, k := range keys {
			v, err := rt.host.GetProperty(obj, k)
			if err != nil {
				return ctrl{}, hostErr(rt, err)
			}
			withScope.declare(k, v)
		}
		return bodyT(rt, withScope)
	}, nil
}
