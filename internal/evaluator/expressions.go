package evaluator

import (
	"github.com/thunklang/es3vm/internal/ast"
)

func compileIdentifier(n *ast.Identifier) (exprThunk, error) {
	lv, err := compileLvalue(n, "")
	if err != nil {
		return nil, err
	}
	return lv.get, nil
}

func compileLiteral(n *ast.Literal) (exprThunk, error) {
	val := n.Value
	return func(rt *Runtime, sc *Scope) (Value, error) {
		if val == nil {
			return rt.host.Null(), nil
		}
		return val, nil
	}, nil
}

func compileThisExpression() (exprThunk, error) {
	return func(rt *Runtime, sc *Scope) (Value, error) {
		return rt.currentThis(), nil
	}, nil
}

func compileArrayExpression(n *ast.ArrayExpression, source string) (exprThunk, error) {
	thunks := make([]exprThunk, len(n.Elements))
	for i, el := range n.Elements {
		if el == nil {
			continue
		}
		t, err := compileExpr(el, source)
		if err != nil {
			return nil, err
		}
		thunks[i] = t
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		elems := make([]Value, len(thunks))
		for i, t := range thunks {
			if t == nil {
				elems[i] = rt.host.Undefined()
				continue
			}
			v, err := t(rt, sc)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return rt.host.NewArray(elems), nil
	}, nil
}

// objectProp is one compiled ObjectExpression member: an "init" property
// carries a value thunk, a "get"/"set" property carries an accessor
// function thunk instead.
type objectProp struct {
	key      string
	computed exprThunk // non-nil when the key itself is a computed expression
	kind     string    // "init", "get", "set"
	value    exprThunk
}

func compileObjectExpression(n *ast.ObjectExpression, source string) (exprThunk, error) {
	props := make([]objectProp, len(n.Properties))
	for i, p := range n.Properties {
		op := objectProp{kind: p.Kind}
		if p.Computed {
			kt, err := compileExpr(p.Key, source)
			if err != nil {
				return nil, err
			}
			op.computed = kt
		} else {
			switch k := p.Key.(type) {
			case *ast.Identifier:
				op.key = k.Name
			case *ast.Literal:
				op.key = toPropertyKeyLiteral(k)
			default:
				return nil, compileErrf("unsupported object property key %T", p.Key)
			}
		}
		vt, err := compileExpr(p.Value, source)
		if err != nil {
			return nil, err
		}
		op.value = vt
		props[i] = op
	}

	return func(rt *Runtime, sc *Scope) (Value, error) {
		obj := rt.host.NewObject()
		// Getters/setters for the same key must combine into one accessor
		// install, so accumulate them before calling DefineAccessor —
		// "last wins" for duplicate init keys falls out of calling
		// SetProperty in source order, same as plain JS object literals.
		type accessor struct {
			get, set       Value
			hasGet, hasSet bool
		}
		accessors := map[string]*accessor{}
		order := []string{}

		for _, p := range props {
			key := p.key
			if p.computed != nil {
				kv, err := p.computed(rt, sc)
				if err != nil {
					return nil, err
				}
				key = toPropertyKey(rt, kv)
			}
			v, err := p.value(rt, sc)
			if err != nil {
				return nil, err
			}
			switch p.kind {
			case "get", "set":
				a, ok := accessors[key]
				if !ok {
					a = &accessor{}
					accessors[key] = a
					order = append(order, key)
				}
				if p.kind == "get" {
					a.get, a.hasGet = v, true
				} else {
					a.set, a.hasSet = v, true
				}
			default:
				if err := rt.host.SetProperty(obj, key, v); err != nil {
					return nil, hostErr(rt, err)
				}
			}
		}
		for _, key := range order {
			a := accessors[key]
			if err := rt.host.DefineAccessor(obj, key, a.get, a.set, a.hasGet, a.hasSet); err != nil {
				return nil, hostErr(rt, err)
			}
		}
		return obj, nil
	}, nil
}

func toPropertyKeyLiteral(lit *ast.Literal) string {
	switch v := lit.Value.(type) {
	case string:
		return v
	default:
		return lit.Raw
	}
}

func compileSequenceExpression(n *ast.SequenceExpression, source string) (exprThunk, error) {
	thunks := make([]exprThunk, len(n.Expressions))
	for i, e := range n.Expressions {
		t, err := compileExpr(e, source)
		if err != nil {
			return nil, err
		}
		thunks[i] = t
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		var last Value = rt.host.Undefined()
		for _, t := range thunks {
			v, err := t(rt, sc)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	}, nil
}

func compileConditionalExpression(n *ast.ConditionalExpression, source string) (exprThunk, error) {
	testT, err := compileExpr(n.Test, source)
	if err != nil {
		return nil, err
	}
	consT, err := compileExpr(n.Consequent, source)
	if err != nil {
		return nil, err
	}
	altT, err := compileExpr(n.Alternate, source)
	if err != nil {
		return nil, err
	}
	return func(rt *Runtime, sc *Scope) (Value, error) {
		tv, err := testT(rt, sc)
		if err != nil {
			return nil, err
		}
		if rt.host.Truthy(tv) {
			return consT(rt, sc)
		}
		return altT(rt, sc)
	}, nil
}

func compileMemberExpression(n *ast.MemberExpression, source string) (exprThunk, error) {
	lv, err := compileLvalue(n, source)
	if err != nil {
		return nil, err
	}
	return lv.get, nil
}
