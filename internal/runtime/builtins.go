package runtime

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/thunklang/es3vm/internal/evaluator"
)

// installObjectProto registers Object.prototype's own methods.
func (h *DefaultHost) installObjectProto() {
	h.method(h.objectProto, "toString", 0, func(this any, args []any) (any, error) {
		o, ok := this.(*Object)
		if !ok {
			return toStringValue(this), nil
		}
		return "[object " + o.class + "]", nil
	})
	h.method(h.objectProto, "hasOwnProperty", 1, func(this any, args []any) (any, error) {
		o, ok := this.(*Object)
		if !ok || len(args) == 0 {
			return false, nil
		}
		_, has := o.ownProp(toStringValue(args[0]))
		return has, nil
	})
}

// installArrayProto registers the handful of Array.prototype methods an
// ES3/5 program is likely to reach for: mutators (push/pop/shift/
// unshift/splice/reverse/sort), accessors (slice/concat/join/indexOf),
// and iteration (forEach/map/filter/reduce).
func (h *DefaultHost) installArrayProto() {
	length := func(o *Object) int { return int(toNumber(o.mustGet("length"))) }
	elem := func(o *Object, i int) any {
		v, ok := o.ownProp(strconv.Itoa(i))
		if !ok {
			return undefinedValue
		}
		return v.value
	}
	setLen := func(o *Object, n int) { o.setOwn("length", float64(n)) }

	h.method(h.arrayProto, "push", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		for i, a := range args {
			o.setOwn(strconv.Itoa(n+i), a)
		}
		setLen(o, n+len(args))
		return float64(n + len(args)), nil
	})
	h.method(h.arrayProto, "pop", 0, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		if n == 0 {
			return undefinedValue, nil
		}
		v := elem(o, n-1)
		o.deleteOwn(strconv.Itoa(n - 1))
		setLen(o, n-1)
		return v, nil
	})
	h.method(h.arrayProto, "shift", 0, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		if n == 0 {
			return undefinedValue, nil
		}
		v := elem(o, 0)
		for i := 1; i < n; i++ {
			o.setOwn(strconv.Itoa(i-1), elem(o, i))
		}
		o.deleteOwn(strconv.Itoa(n - 1))
		setLen(o, n-1)
		return v, nil
	})
	h.method(h.arrayProto, "unshift", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		shift := len(args)
		for i := n - 1; i >= 0; i-- {
			o.setOwn(strconv.Itoa(i+shift), elem(o, i))
		}
		for i, a := range args {
			o.setOwn(strconv.Itoa(i), a)
		}
		setLen(o, n+shift)
		return float64(n + shift), nil
	})
	h.method(h.arrayProto, "reverse", 0, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		vals := make([]any, n)
		for i := 0; i < n; i++ {
			vals[i] = elem(o, i)
		}
		for i := 0; i < n; i++ {
			o.setOwn(strconv.Itoa(i), vals[n-1-i])
		}
		return o, nil
	})
	h.method(h.arrayProto, "sort", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		vals := make([]any, n)
		for i := 0; i < n; i++ {
			vals[i] = elem(o, i)
		}
		var cmpErr error
		var cmp *Object
		if len(args) > 0 {
			cmp, _ = args[0].(*Object)
		}
		sort.SliceStable(vals, func(i, j int) bool {
			if cmpErr != nil {
				return false
			}
			if cmp != nil && cmp.call != nil {
				r, err := cmp.call(undefinedValue, []any{vals[i], vals[j]})
				if err != nil {
					cmpErr = err
					return false
				}
				return toNumber(r) < 0
			}
			return toStringValue(vals[i]) < toStringValue(vals[j])
		})
		if cmpErr != nil {
			return nil, cmpErr
		}
		for i, v := range vals {
			o.setOwn(strconv.Itoa(i), v)
		}
		return o, nil
	})
	h.method(h.arrayProto, "slice", 2, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		start, end := sliceBounds(args, n)
		out := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, elem(o, i))
		}
		return h.NewArray(out), nil
	})
	h.method(h.arrayProto, "splice", 2, func(this any, args []any) (any, error) {
		o := this.(*Object)
		n := length(o)
		start := 0
		if len(args) > 0 {
			start = clampIndex(int(toNumber(args[0])), n)
		}
		del := n - start
		if len(args) > 1 {
			del = int(toNumber(args[1]))
			if del < 0 {
				del = 0
			}
			if start+del > n {
				del = n - start
			}
		}
		removed := make([]any, 0, del)
		for i := 0; i < del; i++ {
			removed = append(removed, elem(o, start+i))
		}
		var inserts []any
		if len(args) > 2 {
			inserts = args[2:]
		}
		tail := make([]any, 0, n-start-del)
		for i := start + del; i < n; i++ {
			tail = append(tail, elem(o, i))
		}
		idx := start
		for _, v := range inserts {
			o.setOwn(strconv.Itoa(idx), v)
			idx++
		}
		for _, v := range tail {
			o.setOwn(strconv.Itoa(idx), v)
			idx++
		}
		for i := idx; i < n; i++ {
			o.deleteOwn(strconv.Itoa(i))
		}
		setLen(o, idx)
		return h.NewArray(removed), nil
	})
	h.method(h.arrayProto, "concat", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		out := make([]any, 0, length(o))
		for i := 0; i < length(o); i++ {
			out = append(out, elem(o, i))
		}
		for _, a := range args {
			if ao, ok := a.(*Object); ok && ao.class == "Array" {
				for i := 0; i < length(ao); i++ {
					out = append(out, elem(ao, i))
				}
				continue
			}
			out = append(out, a)
		}
		return h.NewArray(out), nil
	})
	h.method(h.arrayProto, "join", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		sep := ","
		if len(args) > 0 {
			sep = toStringValue(args[0])
		}
		n := length(o)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			v := elem(o, i)
			if v == undefinedValue || v == nullValue {
				parts[i] = ""
				continue
			}
			parts[i] = toStringValue(v)
		}
		return strings.Join(parts, sep), nil
	})
	h.method(h.arrayProto, "indexOf", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		if len(args) == 0 {
			return float64(-1), nil
		}
		for i := 0; i < length(o); i++ {
			if h.StrictEquals(elem(o, i), args[0]) {
				return float64(i), nil
			}
		}
		return float64(-1), nil
	})
	h.method(h.arrayProto, "forEach", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		if len(args) == 0 {
			return undefinedValue, nil
		}
		fn, _ := args[0].(*Object)
		if fn == nil || fn.call == nil {
			return nil, errNotCallable(args[0])
		}
		for i := 0; i < length(o); i++ {
			if _, err := fn.call(undefinedValue, []any{elem(o, i), float64(i), o}); err != nil {
				return nil, err
			}
		}
		return undefinedValue, nil
	})
	h.method(h.arrayProto, "map", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		if len(args) == 0 {
			return nil, errNotCallable(nil)
		}
		fn, _ := args[0].(*Object)
		if fn == nil || fn.call == nil {
			return nil, errNotCallable(args[0])
		}
		n := length(o)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			v, err := fn.call(undefinedValue, []any{elem(o, i), float64(i), o})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return h.NewArray(out), nil
	})
	h.method(h.arrayProto, "filter", 1, func(this any, args []any) (any, error) {
		o := this.(*Object)
		if len(args) == 0 {
			return nil, errNotCallable(nil)
		}
		fn, _ := args[0].(*Object)
		if fn == nil || fn.call == nil {
			return nil, errNotCallable(args[0])
		}
		var out []any
		for i := 0; i < length(o); i++ {
			v := elem(o, i)
			keep, err := fn.call(undefinedValue, []any{v, float64(i), o})
			if err != nil {
				return nil, err
			}
			if toBoolean(keep) {
				out = append(out, v)
			}
		}
		return h.NewArray(out), nil
	})
	h.method(h.arrayProto, "reduce", 2, func(this any, args []any) (any, error) {
		o := this.(*Object)
		if len(args) == 0 {
			return nil, errNotCallable(nil)
		}
		fn, _ := args[0].(*Object)
		if fn == nil || fn.call == nil {
			return nil, errNotCallable(args[0])
		}
		n := length(o)
		i := 0
		var acc any
		if len(args) > 1 {
			acc = args[1]
		} else {
			if n == 0 {
				return nil, fmt.Errorf("reduce of empty array with no initial value")
			}
			acc = elem(o, 0)
			i = 1
		}
		for ; i < n; i++ {
			v, err := fn.call(undefinedValue, []any{acc, elem(o, i), float64(i), o})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})
	h.method(h.arrayProto, "toString", 0, func(this any, args []any) (any, error) {
		return inspectArray(this.(*Object)), nil
	})
}

func (h *DefaultHost) installFunctionProto() {
	h.method(h.functionProto, "call", 1, func(this any, args []any) (any, error) {
		fn, ok := this.(*Object)
		if !ok || fn.call == nil {
			return nil, errNotCallable(this)
		}
		var recv any = undefinedValue
		var rest []any
		if len(args) > 0 {
			recv, rest = args[0], args[1:]
		}
		return fn.call(recv, rest)
	})
	h.method(h.functionProto, "apply", 2, func(this any, args []any) (any, error) {
		fn, ok := this.(*Object)
		if !ok || fn.call == nil {
			return nil, errNotCallable(this)
		}
		var recv any = undefinedValue
		if len(args) > 0 {
			recv = args[0]
		}
		var rest []any
		if len(args) > 1 {
			if arr, ok := args[1].(*Object); ok && arr.class == "Array" {
				n := int(toNumber(arr.mustGet("length")))
				rest = make([]any, n)
				for i := 0; i < n; i++ {
					v, _ := arr.ownProp(strconv.Itoa(i))
					if v != nil {
						rest[i] = v.value
					} else {
						rest[i] = undefinedValue
					}
				}
			}
		}
		return fn.call(recv, rest)
	})
	h.method(h.functionProto, "toString", 0, func(this any, args []any) (any, error) {
		fn, ok := this.(*Object)
		if !ok {
			return "function () {}", nil
		}
		if src, ok := fn.mustGet("$source").(string); ok && src != "" {
			return src, nil
		}
		return "function () { [native code] }", nil
	})
}

func (h *DefaultHost) installErrorProto() {
	h.method(h.errorProto, "toString", 0, func(this any, args []any) (any, error) {
		o, ok := this.(*Object)
		if !ok {
			return "Error", nil
		}
		name := toStringValue(o.mustGet("name"))
		msg := toStringValue(o.mustGet("message"))
		if msg == "" {
			return name, nil
		}
		return name + ": " + msg, nil
	})
}

// installGlobals wires Object/Array/Function/Error constructors, console,
// Math, and the handful of free functions (parseInt/parseFloat/isNaN/
// isFinite) an ES3/5 script expects to find on the global object.
func (h *DefaultHost) installGlobals() {
	h.global.setOwn("Object", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) > 0 {
			if o, ok := args[0].(*Object); ok {
				return o, nil
			}
		}
		return h.NewObject(), nil
	}, 1, "Object", ""))
	if ctor, ok := h.global.mustGet("Object").(*Object); ok {
		ctor.setOwn("prototype", h.objectProto)
	}

	h.global.setOwn("Array", h.NewFunction(func(this any, args []any) (any, error) {
		return h.NewArray(append([]any(nil), args...)), nil
	}, 1, "Array", ""))
	if ctor, ok := h.global.mustGet("Array").(*Object); ok {
		ctor.setOwn("prototype", h.arrayProto)
	}

	h.global.setOwn("Function", h.NewFunction(func(this any, args []any) (any, error) {
		return nil, fmt.Errorf("the Function constructor is not supported")
	}, 1, "Function", ""))
	if ctor, ok := h.global.mustGet("Function").(*Object); ok {
		ctor.setOwn("prototype", h.functionProto)
	}

	h.global.setOwn("Error", h.NewFunction(func(this any, args []any) (any, error) {
		msg := ""
		if len(args) > 0 {
			msg = toStringValue(args[0])
		}
		if o, ok := this.(*Object); ok {
			o.setOwn("name", "Error")
			o.setOwn("message", msg)
			return o, nil
		}
		return h.newError("Error", msg), nil
	}, 1, "Error", ""))
	if ctor, ok := h.global.mustGet("Error").(*Object); ok {
		ctor.setOwn("prototype", h.errorProto)
	}

	console := h.NewObject().(*Object)
	logFn := h.NewFunction(func(this any, args []any) (any, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = toStringValue(a)
		}
		fmt.Println(strings.Join(parts, " "))
		return undefinedValue, nil
	}, 0, "log", "")
	console.setOwn("log", logFn)
	console.setOwn("error", logFn)
	console.setOwn("warn", logFn)
	h.global.setOwn("console", console)

	h.global.setOwn("parseInt", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return math.NaN(), nil
		}
		s := strings.TrimSpace(toStringValue(args[0]))
		base := 10
		if len(args) > 1 {
			if b := int(toNumber(args[1])); b != 0 {
				base = b
			}
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg, s = true, s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if base == 16 || base == 10 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
			base = 16
		}
		end := 0
		for end < len(s) && isBaseDigit(s[end], base) {
			end++
		}
		if end == 0 {
			return math.NaN(), nil
		}
		n, err := strconv.ParseInt(s[:end], base, 64)
		if err != nil {
			return math.NaN(), nil
		}
		if neg {
			n = -n
		}
		return float64(n), nil
	}, 2, "parseInt", ""))

	h.global.setOwn("parseFloat", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return math.NaN(), nil
		}
		s := strings.TrimSpace(toStringValue(args[0]))
		end := 0
		seenDot, seenExp := false, false
		for end < len(s) {
			c := s[end]
			if c >= '0' && c <= '9' {
				end++
				continue
			}
			if c == '.' && !seenDot && !seenExp {
				seenDot = true
				end++
				continue
			}
			if (c == 'e' || c == 'E') && !seenExp && end > 0 {
				seenExp = true
				end++
				if end < len(s) && (s[end] == '+' || s[end] == '-') {
					end++
				}
				continue
			}
			if (c == '+' || c == '-') && end == 0 {
				end++
				continue
			}
			break
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	}, 1, "parseFloat", ""))

	h.global.setOwn("isNaN", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return true, nil
		}
		return math.IsNaN(toNumber(args[0])), nil
	}, 1, "isNaN", ""))

	h.global.setOwn("isFinite", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return false, nil
		}
		f := toNumber(args[0])
		return !math.IsNaN(f) && !math.IsInf(f, 0), nil
	}, 1, "isFinite", ""))

	h.installMath()
}

func (h *DefaultHost) installMath() {
	m := h.NewObject().(*Object)
	m.setOwn("PI", math.Pi)
	m.setOwn("E", math.E)
	unary := map[string]func(float64) float64{
		"abs": math.Abs, "floor": math.Floor, "ceil": math.Ceil,
		"round": math.Round, "sqrt": math.Sqrt, "sin": math.Sin,
		"cos": math.Cos, "tan": math.Tan, "log": math.Log, "exp": math.Exp,
	}
	for name, fn := range unary {
		fn := fn
		m.setOwn(name, h.NewFunction(func(this any, args []any) (any, error) {
			if len(args) == 0 {
				return math.NaN(), nil
			}
			return fn(toNumber(args[0])), nil
		}, 1, name, ""))
	}
	m.setOwn("pow", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) < 2 {
			return math.NaN(), nil
		}
		return math.Pow(toNumber(args[0]), toNumber(args[1])), nil
	}, 2, "pow", ""))
	m.setOwn("max", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return math.Inf(-1), nil
		}
		best := toNumber(args[0])
		for _, a := range args[1:] {
			if v := toNumber(a); v > best {
				best = v
			}
		}
		return best, nil
	}, 2, "max", ""))
	m.setOwn("min", h.NewFunction(func(this any, args []any) (any, error) {
		if len(args) == 0 {
			return math.Inf(1), nil
		}
		best := toNumber(args[0])
		for _, a := range args[1:] {
			if v := toNumber(a); v < best {
				best = v
			}
		}
		return best, nil
	}, 2, "min", ""))
	m.setOwn("random", h.NewFunction(func(this any, args []any) (any, error) {
		return pseudoRandom(), nil
	}, 0, "random", ""))
	h.global.setOwn("Math", m)
}

func (h *DefaultHost) method(proto *Object, name string, length int, fn evaluator.NativeFunc) {
	proto.setOwn(name, h.NewFunction(fn, length, name, ""))
}

func sliceBounds(args []any, n int) (int, int) {
	start, end := 0, n
	if len(args) > 0 {
		start = clampIndex(int(toNumber(args[0])), n)
	}
	if len(args) > 1 {
		end = clampIndex(int(toNumber(args[1])), n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// pseudoRandom backs Math.random via math/rand's default source, which is
// seeded randomly once at program start, not per call.
func pseudoRandom() float64 {
	return rand.Float64()
}

func isBaseDigit(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}
