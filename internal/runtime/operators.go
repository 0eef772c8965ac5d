package runtime

import "math"

// BinaryOp implements every non-short-circuiting operator spec.md's
// BinaryExpression/AssignmentExpression thunks delegate to Host for: the
// evaluator itself carries no opinion on primitive coercion, so all of
// ES3/5's ToNumber/ToString/ToPrimitive rules live here instead.
func (h *DefaultHost) BinaryOp(op string, l, r any) (any, error) {
	switch op {
	case "+":
		lp, rp := toPrimitiveAny(l), toPrimitiveAny(r)
		if isString(lp) || isString(rp) {
			return toStringValue(lp) + toStringValue(rp), nil
		}
		return toNumber(lp) + toNumber(rp), nil
	case "-":
		return toNumber(l) - toNumber(r), nil
	case "*":
		return toNumber(l) * toNumber(r), nil
	case "/":
		return toNumber(l) / toNumber(r), nil
	case "%":
		return math.Mod(toNumber(l), toNumber(r)), nil
	case "==":
		return looseEquals(l, r), nil
	case "!=":
		return !looseEquals(l, r), nil
	case "<":
		return compareLess(l, r), nil
	case ">":
		return compareLess(r, l), nil
	case "<=":
		return !compareLess(r, l) && !isNaNEither(l, r), nil
	case ">=":
		return !compareLess(l, r) && !isNaNEither(l, r), nil
	case "&":
		return float64(toInt32(l) & toInt32(r)), nil
	case "|":
		return float64(toInt32(l) | toInt32(r)), nil
	case "^":
		return float64(toInt32(l) ^ toInt32(r)), nil
	case "<<":
		return float64(toInt32(l) << (toUint32(r) & 31)), nil
	case ">>":
		return float64(toInt32(l) >> (toUint32(r) & 31)), nil
	case ">>>":
		return float64(toUint32(l) >> (toUint32(r) & 31)), nil
	default:
		return nil, errUnsupportedOperator(op)
	}
}

func (h *DefaultHost) UnaryOp(op string, v any) (any, error) {
	switch op {
	case "!":
		return !toBoolean(v), nil
	case "-":
		return -toNumber(v), nil
	case "+":
		return toNumber(v), nil
	case "~":
		return float64(^toInt32(v)), nil
	default:
		return nil, errUnsupportedOperator(op)
	}
}

func (h *DefaultHost) UpdateOp(op string, old any) (any, error) {
	switch op {
	case "++":
		return toNumber(old) + 1, nil
	case "--":
		return toNumber(old) - 1, nil
	default:
		return nil, errUnsupportedOperator(op)
	}
}

func (h *DefaultHost) Typeof(v any) string {
	switch x := v.(type) {
	case undefinedType:
		return "undefined"
	case nullType:
		return "object"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Object:
		if x.call != nil {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

func (h *DefaultHost) InstanceOf(v, ctor any) (bool, error) {
	co, ok := ctor.(*Object)
	if !ok || co.call == nil {
		return false, errNotCallable(ctor)
	}
	proto, _ := co.mustGet("prototype").(*Object)
	vo, ok := v.(*Object)
	if !ok || proto == nil {
		return false, nil
	}
	for cur := vo.proto; cur != nil; cur = cur.proto {
		if cur == proto {
			return true, nil
		}
	}
	return false, nil
}

func (h *DefaultHost) HasIn(key string, obj any) (bool, error) {
	return h.HasProperty(obj, key)
}

func (h *DefaultHost) Truthy(v any) bool { return toBoolean(v) }

// StrictEquals implements ES3/5's === without any coercion: different
// underlying Go types are never equal (including the two singleton
// undefined/null values, which only equal themselves), NaN never equals
// itself, and objects compare by identity.
func (h *DefaultHost) StrictEquals(l, r any) bool {
	switch lv := l.(type) {
	case float64:
		rv, ok := r.(float64)
		return ok && lv == rv
	case string:
		rv, ok := r.(string)
		return ok && lv == rv
	case bool:
		rv, ok := r.(bool)
		return ok && lv == rv
	case undefinedType:
		_, ok := r.(undefinedType)
		return ok
	case nullType:
		_, ok := r.(nullType)
		return ok
	case *Object:
		rv, ok := r.(*Object)
		return ok && lv == rv
	default:
		return false
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNaNEither(l, r any) bool {
	return math.IsNaN(toNumber(l)) || math.IsNaN(toNumber(r))
}

// toPrimitiveAny is toPrimitive generalized to any Value, for the `+`
// operator's "try toPrimitive on both sides first" rule.
func toPrimitiveAny(v any) any {
	if o, ok := v.(*Object); ok {
		return toPrimitive(o, "default")
	}
	return v
}

func compareLess(l, r any) bool {
	lp, rp := toPrimitiveAny(l), toPrimitiveAny(r)
	if isString(lp) && isString(rp) {
		return lp.(string) < rp.(string)
	}
	ln, rn := toNumber(lp), toNumber(rp)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return false
	}
	return ln < rn
}

// looseEquals implements ES3/5's == coercion table for the primitive
// subset this module represents directly, plus the one-sided
// object-to-primitive coercion `==` performs that `===` never does.
func looseEquals(l, r any) bool {
	switch lv := l.(type) {
	case undefinedType:
		switch r.(type) {
		case undefinedType, nullType:
			return true
		default:
			return false
		}
	case nullType:
		switch r.(type) {
		case undefinedType, nullType:
			return true
		default:
			return false
		}
	case float64:
		switch rv := r.(type) {
		case float64:
			return lv == rv
		case string:
			return lv == toNumber(rv)
		case bool:
			return lv == toNumber(rv)
		case *Object:
			return looseEquals(lv, toPrimitive(rv, "default"))
		default:
			return false
		}
	case string:
		switch rv := r.(type) {
		case string:
			return lv == rv
		case float64:
			return toNumber(lv) == rv
		case bool:
			return toNumber(lv) == toNumber(rv)
		case *Object:
			return looseEquals(lv, toPrimitive(rv, "default"))
		default:
			return false
		}
	case bool:
		return looseEquals(toNumber(lv), r)
	case *Object:
		switch r.(type) {
		case *Object:
			return lv == r
		default:
			return looseEquals(toPrimitive(lv, "default"), r)
		}
	default:
		return false
	}
}
