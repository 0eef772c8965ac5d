// Package hostlib installs optional global functions/objects on top of an
// internal/runtime global object: JSON, YAML marshalling, UUID generation,
// and a dynamic gRPC client library. None of this is evaluator semantics —
// spec.md's Non-goals bind language *features*, not what a reference host
// chooses to expose as callable globals — so hostlib speaks only the
// evaluator.Host interface and never reaches into internal/runtime's
// concrete Object type, the same separation the teacher draws between its
// core evaluator and its per-concern builtins_*.go files.
package hostlib

import "github.com/thunklang/es3vm/internal/evaluator"

// Options selects which optional globals Install wires up. The zero value
// enables none; DefaultOptions enables all of them, and a caller building a
// sandboxed embedding can leave the riskier ones (filesystem, network) off.
type Options struct {
	JSON bool
	YAML bool
	UUID bool
	GRPC bool
}

// DefaultOptions enables every optional global.
func DefaultOptions() Options {
	return Options{JSON: true, YAML: true, UUID: true, GRPC: true}
}

// Install wires the selected globals onto host.Global() per opts.
func Install(h evaluator.Host, opts Options) error {
	if opts.JSON {
		installJSON(h)
	}
	if opts.YAML {
		installYAML(h)
	}
	if opts.UUID {
		installUUID(h)
	}
	if opts.GRPC {
		installGRPC(h)
	}
	return nil
}

func setGlobal(h evaluator.Host, name string, v evaluator.Value) {
	h.SetProperty(h.Global(), name, v)
}

func newNamespace(h evaluator.Host, members map[string]evaluator.Value) evaluator.Value {
	ns := h.NewObject()
	for k, v := range members {
		h.SetProperty(ns, k, v)
	}
	return ns
}
