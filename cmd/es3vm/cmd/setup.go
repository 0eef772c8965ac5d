package cmd

import (
	"fmt"

	"github.com/thunklang/es3vm/internal/config"
	"github.com/thunklang/es3vm/internal/evaluator"
	"github.com/thunklang/es3vm/internal/hostlib"
	"github.com/thunklang/es3vm/internal/runtime"
)

// buildRuntime constructs a fresh default host (plus hostlib globals
// unless disabled), merges any --globals file onto it, and wraps it in a
// Runtime configured from cfg.
func buildRuntime(cfg config.Config) (*evaluator.Runtime, error) {
	host := runtime.NewDefaultHost()

	opts := hostlib.DefaultOptions()
	if cfg.DisableHostlib {
		opts = hostlib.Options{}
	}
	if err := hostlib.Install(host, opts); err != nil {
		return nil, fmt.Errorf("installing host library: %w", err)
	}

	if cfg.Globals != "" {
		globals, err := config.LoadGlobals(cfg.Globals)
		if err != nil {
			return nil, err
		}
		for name, v := range globals {
			hv, err := goValueToHost(host, v)
			if err != nil {
				return nil, fmt.Errorf("globals.%s: %w", name, err)
			}
			if err := host.SetProperty(host.Global(), name, hv); err != nil {
				return nil, err
			}
		}
	}

	rt := evaluator.New(host.Global(), host, evaluator.Options{Timeout: cfg.Timeout})
	return rt, nil
}

// goValueToHost converts a YAML-decoded Go value (map[string]any/[]any/
// scalar) into a script Value, the same shape internal/hostlib's
// goToHost implements for JSON/YAML globals — duplicated narrowly here
// rather than exported from hostlib, since the CLI's --globals loader is
// the only caller outside that package.
func goValueToHost(h evaluator.Host, v any) (evaluator.Value, error) {
	switch x := v.(type) {
	case nil:
		return h.Null(), nil
	case bool, string, float64:
		return x, nil
	case int:
		return float64(x), nil
	case []any:
		elems := make([]evaluator.Value, len(x))
		for i, item := range x {
			ev, err := goValueToHost(h, item)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return h.NewArray(elems), nil
	case map[string]any:
		obj := h.NewObject()
		for k, item := range x {
			ev, err := goValueToHost(h, item)
			if err != nil {
				return nil, err
			}
			if err := h.SetProperty(obj, k, ev); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return h.Undefined(), nil
	}
}
