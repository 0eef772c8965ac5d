package hostlib

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thunklang/es3vm/internal/evaluator"
)

var errYAMLArgs = errors.New("YAML function called with wrong argument types")

// installYAML wires a YAML global: stringify/parse for in-memory values,
// plus readFile/writeFile for script-level config round-tripping. Grounded
// on the teacher's lib/yaml virtual package (builtins_yaml.go's
// yamlDecode/yamlEncode/yamlRead/yamlWrite quartet), generalized off its
// Funxy-specific Record/List conversion to the hostToGo/goToHost bridge
// shared with JSON.
func installYAML(h evaluator.Host) {
	setGlobal(h, "YAML", newNamespace(h, map[string]evaluator.Value{
		"stringify": h.NewFunction(yamlStringify(h), 1, "stringify", ""),
		"parse":     h.NewFunction(yamlParse(h), 1, "parse", ""),
		"readFile":  h.NewFunction(yamlReadFile(h), 1, "readFile", ""),
		"writeFile": h.NewFunction(yamlWriteFile(h), 2, "writeFile", ""),
	}))
}

func yamlStringify(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return h.Undefined(), nil
		}
		native, err := hostToGo(h, args[0])
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(native)
		if err != nil {
			return nil, err
		}
		return string(out), nil
	}
}

func yamlParse(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		text, err := yamlArgText(args)
		if err != nil {
			return nil, err
		}
		var native any
		if err := yaml.Unmarshal([]byte(text), &native); err != nil {
			return nil, err
		}
		return goToHost(h, native)
	}
}

func yamlReadFile(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		path, err := yamlArgText(args)
		if err != nil {
			return nil, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var native any
		if err := yaml.Unmarshal(content, &native); err != nil {
			return nil, err
		}
		return goToHost(h, native)
	}
}

func yamlWriteFile(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) < 2 {
			return nil, errYAMLArgs
		}
		path, ok := args[0].(string)
		if !ok {
			return nil, errYAMLArgs
		}
		native, err := hostToGo(h, args[1])
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(native)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return nil, err
		}
		return h.Undefined(), nil
	}
}

func yamlArgText(args []evaluator.Value) (string, error) {
	if len(args) == 0 {
		return "", errYAMLArgs
	}
	s, ok := args[0].(string)
	if !ok {
		return "", errYAMLArgs
	}
	return s, nil
}
