package evaluator

import "github.com/thunklang/es3vm/internal/ast"

// applyLoopStep is the unified for/while/do-while body-result action table
// spec.md §4 describes: Empty and unlabeled Continue simply advance to the
// next iteration; Break stops the loop, yielding whatever value a prior
// iteration already recorded; a ContinueLabel addressed to one of this
// loop's own labels is swallowed the same as a plain Continue, but any
// other label (or a BreakLabel, Return, or Throw) propagates out of the
// loop entirely; an ordinary completion value is recorded into acc and the
// loop advances.
func applyLoopStep(r ctrl, ownLabels []string, acc *ctrl) (stop bool, propagate *ctrl) {
	switch r.tag {
	case ctrlEmpty, ctrlContinue:
		return false, nil
	case ctrlContinueLabel:
		if hasLabel(ownLabels, r.label) {
			return false, nil
		}
		rr := r
		return true, &rr
	case ctrlBreak:
		return true, nil
	case ctrlOK:
		*acc = r
		return false, nil
	default: // ctrlBreakLabel, ctrlReturn, ctrlDefaultCase
		rr := r
		return true, &rr
	}
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func compileWhileStatement(n *ast.WhileStatement, source string, ownLabels []string) (stmtThunk, error) {
	testT, err := compileExpr(n.Test, source)
	if err != nil {
		return nil, err
	}
	bodyT, err := compileStmt(n.Body, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		acc := ctrlEmptyResult
		for {
			if err := rt.tickStep(); err != nil {
				return ctrl{}, err
			}
			tv, err := testT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			if !rt.host.Truthy(tv) {
				return acc, nil
			}
			r, err := bodyT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			stop, prop := applyLoopStep(r, ownLabels, &acc)
			if stop {
				if prop != nil {
					return *prop, nil
				}
				return acc, nil
			}
		}
	}, nil
}

func compileDoWhileStatement(n *ast.DoWhileStatement, source string, ownLabels []string) (stmtThunk, error) {
	testT, err := compileExpr(n.Test, source)
	if err != nil {
		return nil, err
	}
	bodyT, err := compileStmt(n.Body, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		acc := ctrlEmptyResult
		for {
			if err := rt.tickStep(); err != nil {
				return ctrl{}, err
			}
			r, err := bodyT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			stop, prop := applyLoopStep(r, ownLabels, &acc)
			if stop {
				if prop != nil {
					return *prop, nil
				}
				return acc, nil
			}
			tv, err := testT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			if !rt.host.Truthy(tv) {
				return acc, nil
			}
		}
	}, nil
}

func compileForStatement(n *ast.ForStatement, source string, ownLabels []string) (stmtThunk, error) {
	var initT stmtThunk
	if n.Init != nil {
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			t, err := compileVariableDeclaration(init, source)
			if err != nil {
				return nil, err
			}
			initT = t
		case ast.Expression:
			t, err := compileExpr(init, source)
			if err != nil {
				return nil, err
			}
			initT = func(rt *Runtime, sc *Scope) (ctrl, error) {
				_, err := t(rt, sc)
				return ctrlEmptyResult, err
			}
		default:
			return nil, compileErrf("unsupported for-init node %T", n.Init)
		}
	}

	var testT exprThunk
	if n.Test != nil {
		t, err := compileExpr(n.Test, source)
		if err != nil {
			return nil, err
		}
		testT = t
	}

	var updateT exprThunk
	if n.Update != nil {
		t, err := compileExpr(n.Update, source)
		if err != nil {
			return nil, err
		}
		updateT = t
	}

	bodyT, err := compileStmt(n.Body, source)
	if err != nil {
		return nil, err
	}

	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		if initT != nil {
			if _, err := initT(rt, sc); err != nil {
				return ctrl{}, err
			}
		}
		acc := ctrlEmptyResult
		for {
			if err := rt.tickStep(); err != nil {
				return ctrl{}, err
			}
			if testT != nil {
				tv, err := testT(rt, sc)
				if err != nil {
					return ctrl{}, err
				}
				if !rt.host.Truthy(tv) {
					return acc, nil
				}
			}
			r, err := bodyT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			stop, prop := applyLoopStep(r, ownLabels, &acc)
			if stop {
				if prop != nil {
					return *prop, nil
				}
				return acc, nil
			}
			if updateT != nil {
				if _, err := updateT(rt, sc); err != nil {
					return ctrl{}, err
				}
			}
		}
	}, nil
}

// compileForInStatement pre-hoists a `var` target if present (hoisting
// already declared the name; this just records which name to assign into
// each iteration), then synthesizes `left = <key>` per enumerated
// property, in whatever order Host.Enumerate returns them.
func compileForInStatement(n *ast.ForInStatement, source string, ownLabels []string) (stmtThunk, error) {
	rightT, err := compileExpr(n.Right, source)
	if err != nil {
		return nil, err
	}
	bodyT, err := compileStmt(n.Body, source)
	if err != nil {
		return nil, err
	}

	var assign func(rt *Runtime, sc *Scope, key string) error
	switch left := n.Left.(type) {
	case *ast.VariableDeclaration:
		name := left.Declarations[0].Id.Name
		assign = func(rt *Runtime, sc *Scope, key string) error {
			sc.set(name, key)
			return nil
		}
	case ast.Expression:
		lv, err := compileLvalue(left, source)
		if err != nil {
			return nil, err
		}
		assign = func(rt *Runtime, sc *Scope, key string) error {
			return lv.set(rt, sc, key)
		}
	default:
		return nil, compileErrf("unsupported for-in left node %T", n.Left)
	}

	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		obj, err := rightT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}
		keys, err := rt.host.Enumerate(obj)
		if err != nil {
			return ctrl{}, hostErr(rt, err)
		}
		acc := ctrlEmptyResult
		for _, key := range keys {
			if err := rt.tickStep(); err != nil {
				return ctrl{}, err
			}
			if err := assign(rt, sc, key); err != nil {
				return ctrl{}, err
			}
			r, err := bodyT(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			stop, prop := applyLoopStep(r, ownLabels, &acc)
			if stop {
				if prop != nil {
					return *prop, nil
				}
				return acc, nil
			}
		}
		return acc, nil
	}, nil
}
