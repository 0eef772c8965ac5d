package evaluator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/thunklang/es3vm/internal/ast"
)

// lvalueOps is the compiled (object-thunk, name-thunk) pair spec.md §4
// describes for every assignable expression: an Identifier's "object" is
// its owning scope, a MemberExpression's object is its evaluated receiver.
// Compiling to closures here, instead of literally returning a (Value,
// string) pair, lets delete/++/--/compound-assignment share one
// evaluate-the-receiver-once code path without re-deriving it at each
// call site.
type lvalueOps struct {
	get func(rt *Runtime, sc *Scope) (Value, error)
	set func(rt *Runtime, sc *Scope, v Value) error
	del func(rt *Runtime, sc *Scope) (bool, error)
}

func compileLvalue(node ast.Expression, source string) (*lvalueOps, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		name := n.Name
		return &lvalueOps{
			get: func(rt *Runtime, sc *Scope) (Value, error) {
				v, ok := sc.get(name)
				if !ok {
					global := rt.rootThis()
					has, err := rt.host.HasProperty(global, name)
					if err != nil {
						return nil, hostErr(rt, err)
					}
					if !has {
						return nil, &Thrown{Value: rt.host.ToError(fmt.Errorf("%s is not defined", name))}
					}
					if v, err = rt.host.GetProperty(global, name); err != nil {
						return nil, hostErr(rt, err)
					}
				}
				return v, nil
			},
			set: func(rt *Runtime, sc *Scope, v Value) error {
				sc.set(name, v)
				return nil
			},
			del: func(rt *Runtime, sc *Scope) (bool, error) {
				return false, nil
			},
		}, nil

	case *ast.MemberExpression:
		objThunk, err := compileExpr(n.Object, source)
		if err != nil {
			return nil, err
		}
		var keyThunk exprThunk
		var staticKey string
		if n.Computed {
			keyThunk, err = compileExpr(n.Property, source)
			if err != nil {
				return nil, err
			}
		} else {
			id, ok := n.Property.(*ast.Identifier)
			if !ok {
				return nil, compileErrf("non-computed member property must be an identifier")
			}
			staticKey = id.Name
		}

		resolveKey := func(rt *Runtime, sc *Scope, obj Value) (string, error) {
			key := staticKey
			if n.Computed {
				kv, err := keyThunk(rt, sc)
				if err != nil {
					return "", err
				}
				key = toPropertyKey(rt, kv)
			}
			return rewriteFunctionKey(rt, obj, key)
		}

		return &lvalueOps{
			get: func(rt *Runtime, sc *Scope) (Value, error) {
				obj, err := objThunk(rt, sc)
				if err != nil {
					return nil, err
				}
				key, err := resolveKey(rt, sc, obj)
				if err != nil {
					return nil, err
				}
				v, err := rt.host.GetProperty(obj, key)
				if err != nil {
					return nil, hostErr(rt, err)
				}
				return v, nil
			},
			set: func(rt *Runtime, sc *Scope, v Value) error {
				obj, err := objThunk(rt, sc)
				if err != nil {
					return err
				}
				key, err := resolveKey(rt, sc, obj)
				if err != nil {
					return err
				}
				if err := rt.host.SetProperty(obj, key, v); err != nil {
					return hostErr(rt, err)
				}
				return nil
			},
			del: func(rt *Runtime, sc *Scope) (bool, error) {
				obj, err := objThunk(rt, sc)
				if err != nil {
					return false, err
				}
				key, err := resolveKey(rt, sc, obj)
				if err != nil {
					return false, err
				}
				ok, err := rt.host.DeleteProperty(obj, key)
				if err != nil {
					return false, hostErr(rt, err)
				}
				return ok, nil
			},
		}, nil

	default:
		return nil, compileErrf("invalid assignment target %T", node)
	}
}

// rewriteFunctionKey implements spec.md §4's member-access special rule:
// reading/writing "length" or "name" on a function value is redirected to
// "$length"/"$name", the names Host uses internally so a function's own
// arity/name metadata doesn't collide with ordinary own-property storage.
func rewriteFunctionKey(rt *Runtime, obj Value, key string) (string, error) {
	if key != "length" && key != "name" {
		return key, nil
	}
	isFn, err := rt.host.GetProperty(obj, "$isFunction")
	if err != nil {
		return "", hostErr(rt, err)
	}
	if rt.host.Truthy(isFn) {
		return "$" + key, nil
	}
	return key, nil
}

// toPropertyKey stringifies a computed member key. Host owns value
// representation entirely and exposes no ToString operation, so this
// relies on the convention every Host implementation in this module
// follows: primitives round-trip as native Go string/float64/bool, and
// every object Value implements fmt.Stringer with its own ToString
// behavior. Integral float64 keys below 1e21 are printed in plain decimal
// (1000000, not %v's 1e+06); every other value goes through fmt's %v.
func toPropertyKey(rt *Runtime, v Value) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1e21 {
		if f == 0 {
			f = 0 // -0 prints as "0"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// hostErr wraps a raw Go error returned from a Host call as a Thrown
// scripted exception, the channel spec.md §7 designates for host-call
// failures (as opposed to CompileError, which never reaches run time).
func hostErr(rt *Runtime, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Thrown); ok {
		return err
	}
	return &Thrown{Value: rt.host.ToError(err)}
}
