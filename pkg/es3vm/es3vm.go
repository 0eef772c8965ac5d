// Package es3vm is the public embedding surface for this module's ES3/5
// evaluator: it re-exports internal/evaluator's constructors and Host
// contract, plus internal/runtime's reference Host implementation, so an
// external Go program can run scripts without importing anything under
// internal/. Grounded on the teacher's own pkg/cli re-export shape (a thin
// pkg/ package sitting in front of internal/ packages it doesn't want
// embedders reaching into directly).
package es3vm

import (
	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/evaluator"
	"github.com/thunklang/es3vm/internal/hostlib"
	"github.com/thunklang/es3vm/internal/parser"
	"github.com/thunklang/es3vm/internal/runtime"
)

// Value is any ES3/5 runtime value: a primitive (nil, bool, float64,
// string) or whatever opaque object type the Host implementation uses.
type Value = evaluator.Value

// Host is the object-model contract the evaluator compiles against. See
// internal/evaluator.Host for the full method set.
type Host = evaluator.Host

// NativeFunc is the Go function shape a Host wraps as a callable script
// value.
type NativeFunc = evaluator.NativeFunc

// Options configures a Runtime; the zero value means no timeout.
type Options = evaluator.Options

// Runtime holds one embedding's scope chain, context stack, call stack,
// and step-counting watchdog.
type Runtime = evaluator.Runtime

// Program is a parsed AST root, for callers that parse themselves (or
// receive ESTree JSON from an external parser) and want to skip this
// module's bundled lexer/parser.
type Program = ast.Program

// New builds a Runtime rooted at global, backed by host.
func New(global Value, host Host, opts Options) *Runtime {
	return evaluator.New(global, host, opts)
}

// NewDefaultHost returns internal/runtime's reference Host: a minimal
// prototype-based object model with Object/Array/Function/Error
// constructors, console, Math, and the ES3/5 free functions already
// wired onto its global object.
func NewDefaultHost() Host {
	return runtime.NewDefaultHost()
}

// InstallHostlib wires internal/hostlib's optional globals (JSON, YAML,
// uuid, a dynamic gRPC client) onto host.Global(), per opts. Pass
// hostlib.DefaultOptions() to enable everything.
func InstallHostlib(host Host, opts hostlib.Options) error {
	return hostlib.Install(host, opts)
}

// ParseProgram parses source with the bundled recursive-descent parser,
// for callers who want the AST without also running it.
func ParseProgram(source string) (*Program, error) {
	return parser.Parse(source)
}
