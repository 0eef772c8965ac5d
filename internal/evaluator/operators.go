package evaluator

import "github.com/thunklang/es3vm/internal/ast"

func compileUnaryExpression(n *ast.UnaryExpression, source string) (exprThunk, error) {
	op := n.Operator

	// `delete` and `typeof <identifier>` both need lvalue-shaped access
	// rather than a plain value: delete needs the (object, key) pair to
	// remove, and typeof must not throw on an undeclared identifier the
	// way a plain read would.
	if op == "delete" {
		lv, err := compileLvalue(n.Argument, source)
		if err != nil {
			return nil, err
		}
		return func(rt *Runtime, sc *Scope) (Value, error) {
			ok, err := lv.del(rt, sc)
			if err != nil {
				return nil, err
			}
			return ok, nil
		}, nil
	}

	if op == "typeof" {
		if id, ok := n.Argument.(*ast.Identifier); ok {
			name := id.Name
			return func(rt *Runtime, sc *Scope) (Value, error) {
				v, ok := sc.get(name)
				if !ok {
					global := rt.rootThis()
					if has, err := rt.host.HasProperty(global, name); err != nil || !has {
						return "undefined", nil
					}
					gv, err := rt.host.GetProperty(global, name)
					if err != nil {
						return nil, hostErr(rt, err)
					}
					v = gv
				}
				return rt.host.Typeof(v), nil
			}, nil
		}
	}

	argT, err := compileExpr(n.Argument, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		v, err := argT(rt, sc)
		if err != nil {
			return nil, err
		}
		if op == "typeof" {
			return rt.host.Typeof(v), nil
		}
		if op == "void" {
			return rt.host.Undefined(), nil
		}
		result, err := rt.host.UnaryOp(op, v)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		return result, nil
	}, nil
}

func compileUpdateExpression(n *ast.UpdateExpression, source string) (exprThunk, error) {
	lv, err := compileLvalue(n.Argument, source)
	if err != nil {
		return nil, err
	}
	op := n.Operator
	prefix := n.Prefix
	return func(rt *Runtime, sc *Scope) (Value, error) {
		old, err := lv.get(rt, sc)
		if err != nil {
			return nil, err
		}
		updated, err := rt.host.UpdateOp(op, old)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		if err := lv.set(rt, sc, updated); err != nil {
			return nil, err
		}
		if prefix {
			return updated, nil
		}
		return old, nil
	}, nil
}

func compileBinaryExpression(n *ast.BinaryExpression, source string) (exprThunk, error) {
	leftT, err := compileExpr(n.Left, source)
	if err != nil {
		return nil, err
	}
	rightT, err := compileExpr(n.Right, source)
	if err != nil {
		return nil, err
	}
	op := n.Operator
	return func(rt *Runtime, sc *Scope) (Value, error) {
		l, err := leftT(rt, sc)
		if err != nil {
			return nil, err
		}
		r, err := rightT(rt, sc)
		if err != nil {
			return nil, err
		}
		switch op {
		case "===":
			return rt.host.StrictEquals(l, r), nil
		case "!==":
			return !rt.host.StrictEquals(l, r), nil
		case "instanceof":
			ok, err := rt.host.InstanceOf(l, r)
			if err != nil {
				return nil, hostErr(rt, err)
			}
			return ok, nil
		case "in":
			key := toPropertyKey(rt, l)
			ok, err := rt.host.HasIn(key, r)
			if err != nil {
				return nil, hostErr(rt, err)
			}
			return ok, nil
		}
		result, err := rt.host.BinaryOp(op, l, r)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		return result, nil
	}, nil
}

func compileLogicalExpression(n *ast.LogicalExpression, source string) (exprThunk, error) {
	leftT, err := compileExpr(n.Left, source)
	if err != nil {
		return nil, err
	}
	rightT, err := compileExpr(n.Right, source)
	if err != nil {
		return nil, err
	}
	isAnd := n.Operator == "&&"
	return func(rt *Runtime, sc *Scope) (Value, error) {
		l, err := leftT(rt, sc)
		if err != nil {
			return nil, err
		}
		truthy := rt.host.Truthy(l)
		if isAnd && !truthy {
			return l, nil
		}
		if !isAnd && truthy {
			return l, nil
		}
		return rightT(rt, sc)
	}, nil
}

// compileAssignmentExpression handles `=` and every compound operator
// (+=, -=, ...). It also implements spec.md §4's anonymous-function-
// naming rule: `x = function(){}` names the right-hand function value
// after x when the function itself is anonymous.
func compileAssignmentExpression(n *ast.AssignmentExpression, source string) (exprThunk, error) {
	lv, err := compileLvalue(n.Left, source)
	if err != nil {
		return nil, err
	}
	rightT, err := compileExpr(n.Right, source)
	if err != nil {
		return nil, err
	}

	if n.Operator == "=" {
		leftIdent, _ := n.Left.(*ast.Identifier)
		rightFn, rightIsAnonFn := n.Right.(*ast.FunctionExpression)
		nameHint := leftIdent != nil && rightIsAnonFn && rightFn.Id == nil

		return func(rt *Runtime, sc *Scope) (Value, error) {
			v, err := rightT(rt, sc)
			if err != nil {
				return nil, err
			}
			if nameHint {
				if err := rt.host.SetProperty(v, "$name", leftIdent.Name); err != nil {
					return nil, hostErr(rt, err)
				}
			}
			if err := lv.set(rt, sc, v); err != nil {
				return nil, err
			}
			return v, nil
		}, nil
	}

	binOp := n.Operator[:len(n.Operator)-1] // "+=" -> "+"
	return func(rt *Runtime, sc *Scope) (Value, error) {
		old, err := lv.get(rt, sc)
		if err != nil {
			return nil, err
		}
		r, err := rightT(rt, sc)
		if err != nil {
			return nil, err
		}
		result, err := rt.host.BinaryOp(binOp, old, r)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		if err := lv.set(rt, sc, result); err != nil {
			return nil, err
		}
		return result, nil
	}, nil
}

// compileCallExpression distinguishes a method call (`obj.m()`, where
// `this` inside m is obj) from a plain call (`f()`, where `this` is the
// root context — the caller-supplied global object — not undefined).
func compileCallExpression(n *ast.CallExpression, source string) (exprThunk, error) {
	argThunks := make([]exprThunk, len(n.Arguments))
	for i, a := range n.Arguments {
		t, err := compileExpr(a, source)
		if err != nil {
			return nil, err
		}
		argThunks[i] = t
	}

	if mem, ok := n.Callee.(*ast.MemberExpression); ok {
		objT, err := compileExpr(mem.Object, source)
		if err != nil {
			return nil, err
		}
		var keyThunk exprThunk
		var staticKey string
		if mem.Computed {
			keyThunk, err = compileExpr(mem.Property, source)
			if err != nil {
				return nil, err
			}
		} else {
			id, ok := mem.Property.(*ast.Identifier)
			if !ok {
				return nil, compileErrf("non-computed member property must be an identifier")
			}
			staticKey = id.Name
		}
		return func(rt *Runtime, sc *Scope) (Value, error) {
			if err := rt.tickStep(); err != nil {
				return nil, err
			}
			recv, err := objT(rt, sc)
			if err != nil {
				return nil, err
			}
			key := staticKey
			if mem.Computed {
				kv, err := keyThunk(rt, sc)
				if err != nil {
					return nil, err
				}
				key = toPropertyKey(rt, kv)
			}
			key, err = rewriteFunctionKey(rt, recv, key)
			if err != nil {
				return nil, err
			}
			fn, err := rt.host.GetProperty(recv, key)
			if err != nil {
				return nil, hostErr(rt, err)
			}
			args, err := evalArgs(rt, sc, argThunks)
			if err != nil {
				return nil, err
			}
			result, err := rt.host.Call(fn, recv, args)
			if err != nil {
				return nil, hostErr(rt, err)
			}
			return result, nil
		}, nil
	}

	calleeT, err := compileExpr(n.Callee, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		if err := rt.tickStep(); err != nil {
			return nil, err
		}
		fn, err := calleeT(rt, sc)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(rt, sc, argThunks)
		if err != nil {
			return nil, err
		}
		result, err := rt.host.Call(fn, rt.rootThis(), args)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		return result, nil
	}, nil
}

func compileNewExpression(n *ast.NewExpression, source string) (exprThunk, error) {
	calleeT, err := compileExpr(n.Callee, source)
	if err != nil {
		return nil, err
	}
	argThunks := make([]exprThunk, len(n.Arguments))
	for i, a := range n.Arguments {
		t, err := compileExpr(a, source)
		if err != nil {
			return nil, err
		}
		argThunks[i] = t
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		if err := rt.tickStep(); err != nil {
			return nil, err
		}
		ctor, err := calleeT(rt, sc)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(rt, sc, argThunks)
		if err != nil {
			return nil, err
		}
		result, err := rt.host.Construct(ctor, args)
		if err != nil {
			return nil, hostErr(rt, err)
		}
		return result, nil
	}, nil
}

func evalArgs(rt *Runtime, sc *Scope, thunks []exprThunk) ([]Value, error) {
	args := make([]Value, len(thunks))
	for i, t := range thunks {
		v, err := t(rt, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
