package hostlib

import (
	"fmt"

	"github.com/thunklang/es3vm/internal/evaluator"
)

// hostToGo converts a script Value into a plain Go value built from
// map[string]any/[]any/string/float64/bool/nil — the shape both
// encoding/json and yaml.v3 marshal natively. Arrays are recognized by the
// presence of a numeric "length" property (the same convention
// internal/runtime's Object uses for its Array class); anything else that
// answers Enumerate is treated as a plain object.
func hostToGo(h evaluator.Host, v evaluator.Value) (any, error) {
	switch v.(type) {
	case nil:
		return nil, nil
	case bool, float64, string:
		return v, nil
	}
	if v == h.Undefined() || v == h.Null() {
		return nil, nil
	}
	if h.IsCallable(v) {
		return nil, nil
	}
	if n, isArr, err := arrayLength(h, v); err != nil {
		return nil, err
	} else if isArr {
		out := make([]any, n)
		for i := 0; i < n; i++ {
			elemKey := indexKey(i)
			ev, err := h.GetProperty(v, elemKey)
			if err != nil {
				return nil, err
			}
			gv, err := hostToGo(h, ev)
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	}
	keys, err := h.Enumerate(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		fv, err := h.GetProperty(v, k)
		if err != nil {
			return nil, err
		}
		gv, err := hostToGo(h, fv)
		if err != nil {
			return nil, err
		}
		out[k] = gv
	}
	return out, nil
}

// goToHost is hostToGo's inverse: build a script Value back out of the
// native Go shapes yaml.v3/encoding/json decode into.
func goToHost(h evaluator.Host, v any) (evaluator.Value, error) {
	switch x := v.(type) {
	case nil:
		return h.Null(), nil
	case bool, string:
		return x, nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case []any:
		elems := make([]evaluator.Value, len(x))
		for i, item := range x {
			ev, err := goToHost(h, item)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return h.NewArray(elems), nil
	case map[string]any:
		obj := h.NewObject()
		for k, item := range x {
			ev, err := goToHost(h, item)
			if err != nil {
				return nil, err
			}
			if err := h.SetProperty(obj, k, ev); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case map[any]any:
		obj := h.NewObject()
		for k, item := range x {
			ev, err := goToHost(h, item)
			if err != nil {
				return nil, err
			}
			if err := h.SetProperty(obj, toKeyString(k), ev); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return h.Null(), nil
	}
}

func arrayLength(h evaluator.Host, v evaluator.Value) (int, bool, error) {
	has, err := h.HasProperty(v, "length")
	if err != nil || !has {
		return 0, false, err
	}
	lv, err := h.GetProperty(v, "length")
	if err != nil {
		return 0, false, err
	}
	n, ok := lv.(float64)
	if !ok {
		return 0, false, nil
	}
	return int(n), true, nil
}

func indexKey(i int) string {
	return intToString(i)
}

func intToString(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// toKeyString stringifies a YAML map key (yaml.v3 decodes untagged map
// keys as `any`, almost always a scalar) the same way ES3/5's ToString
// would: numbers and bools get their literal text, anything else its
// fmt default.
func toKeyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return intToString(x)
	default:
		return fmt.Sprint(x)
	}
}
