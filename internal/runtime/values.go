// Package runtime is the reference evaluator.Host implementation: plain
// prototype-based objects backed by an insertion-ordered property table,
// arrays as Array-class objects, and functions as Function-class objects
// wrapping a Go closure. Grounded on the teacher's own object-family split
// (internal/evaluator/object*.go, host_object.go) and on CWBudde-go-dws's
// internal/interp/runtime package naming, generalized from funxy's
// statically-typed, typesystem.Type-tagged Object hierarchy to a single
// dynamically-typed Object shape, since spec.md's Value has no static type
// system to carry.
package runtime

import (
	"math"
	"strconv"
)

// undefinedValue and nullValue are the two singleton primitives every
// DefaultHost shares; comparing against them by identity is how
// StrictEquals and Typeof recognize undefined/null without a tagged union.
type undefinedType struct{}
type nullType struct{}

var (
	undefinedValue = undefinedType{}
	nullValue      = nullType{}
)

func (undefinedType) String() string { return "undefined" }
func (nullType) String() string      { return "null" }

// toNumber implements ES3/5 ToNumber for the primitive subset this module
// represents as native Go values (float64, string, bool, undefined, null);
// objects go through toPrimitive with the "number" hint first.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		if x == "" {
			return 0
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	case undefinedType:
		return math.NaN()
	case nullType:
		return 0
	case *Object:
		return toNumber(toPrimitive(x, "number"))
	default:
		return math.NaN()
	}
}

// toStringValue implements ES3/5 ToString for display/concatenation.
func toStringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case undefinedType:
		return "undefined"
	case nullType:
		return "null"
	case *Object:
		return toStringValue(toPrimitive(x, "string"))
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// toPrimitive applies a minimal OrdinaryToPrimitive: try toString()/
// valueOf() (in the order ES3/5's hint dictates), falling back to a
// built-in Inspect-style rendering for plain objects that define neither.
func toPrimitive(o *Object, hint string) any {
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fn := o.mustGet(name)
		fo, isObj := fn.(*Object)
		if !isObj || fo.call == nil {
			continue
		}
		result, err := fo.call(o, nil)
		if err != nil {
			continue
		}
		if _, isObj := result.(*Object); !isObj {
			return result
		}
	}
	return defaultInspect(o)
}

func defaultInspect(o *Object) string {
	switch o.class {
	case "Array":
		return inspectArray(o)
	default:
		return "[object " + o.class + "]"
	}
}

func inspectArray(o *Object) string {
	n := int(toNumber(o.mustGet("length")))
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		v, ok := o.ownProp(strconv.Itoa(i))
		if ok {
			out += toStringValue(v.value)
		}
	}
	return out
}

// toBoolean implements ES3/5 ToBoolean.
func toBoolean(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case undefinedType, nullType:
		return false
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// toInt32 implements ES3/5 ToInt32, used by the bitwise operators.
func toInt32(v any) int32 {
	f := toNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(int64(f))
}

func toUint32(v any) uint32 {
	f := toNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(f))
}
