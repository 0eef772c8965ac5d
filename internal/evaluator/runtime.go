package evaluator

import (
	"time"

	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/parser"
)

// Options configures a Runtime. Zero value means no timeout.
type Options struct {
	Timeout time.Duration
}

// frame is one call-stack entry: a human-readable label of the function
// currently executing, used only for introspection (Runtime.CallStack) and
// error reporting — it carries no semantics the evaluator itself depends
// on.
type frame struct {
	label string
}

// Runtime holds all state for one embedding of the evaluator: the global
// scope/context, the call stack, the step counter driving the timeout
// watchdog, and the last completed expression value (the REPL-style "last
// value" spec.md's setValue policy maintains). A Runtime is not safe for
// concurrent use — spec.md §5 places the scope chain, context stack, and
// call stack entirely outside any concurrency contract.
type Runtime struct {
	host Host
	opts Options

	global *Scope
	ctxs   []Value // `this` binding stack
	calls  []frame

	lastValue Value

	steps    int
	deadline time.Time
	hasDL    bool
}

// New builds a Runtime rooted at global: the root scope's data table IS
// the global object's property view for var/function declarations, and
// the root context's `this` is global itself, matching spec.md §3's Scope
// and Context definitions for the top-level program.
func New(global Value, host Host, opts Options) *Runtime {
	rt := &Runtime{host: host, opts: opts}
	rt.global = newScope("global", nil)
	// The lexer reserves `undefined` as a keyword, but the parser turns it
	// into an ordinary Identifier node (there is no literal node for it), so
	// it must resolve through the normal scope chain like any other name.
	rt.global.declare("undefined", host.Undefined())
	rt.ctxs = []Value{global}
	rt.lastValue = host.Undefined()
	return rt
}

// Evaluate parses source and runs it as a top-level program against the
// existing global scope (declarations accumulate across calls, the same
// way a REPL's globals persist between inputs).
func (rt *Runtime) Evaluate(source string) (Value, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return rt.EvaluateNode(prog, source)
}

// EvaluateNode runs an already-parsed Program. source is kept alongside
// the AST only so function values can slice their own source text for
// toString/valueOf (see ast.Pos.Span and the function-value thunk).
func (rt *Runtime) EvaluateNode(prog *ast.Program, source string) (Value, error) {
	rt.resetDeadline()

	thunk, err := compileProgram(prog, source, rt, rt.global)
	if err != nil {
		return nil, err
	}
	result, err := thunk(rt, rt.global)
	if err != nil {
		if th, ok := err.(*Thrown); ok {
			return nil, th
		}
		return nil, err
	}
	switch result.tag {
	case ctrlBreak, ctrlContinue, ctrlBreakLabel, ctrlContinueLabel:
		return nil, ErrUnhandledSignal
	}
	return rt.lastValue, nil
}

// GetValue returns the value of the last top-level expression statement
// evaluated, the same value a REPL would echo back.
func (rt *Runtime) GetValue() Value {
	return rt.lastValue
}

// CallStack returns frame labels innermost-last, "<name>(<start>,<end>)"
// per spec.md §3's call-frame-label format.
func (rt *Runtime) CallStack() []string {
	out := make([]string, len(rt.calls))
	for i, f := range rt.calls {
		out[i] = f.label
	}
	return out
}

func (rt *Runtime) pushFrame(label string) {
	rt.calls = append(rt.calls, frame{label: label})
}

func (rt *Runtime) popFrame() {
	rt.calls = rt.calls[:len(rt.calls)-1]
}

func (rt *Runtime) pushThis(v Value) {
	rt.ctxs = append(rt.ctxs, v)
}

func (rt *Runtime) popThis() {
	rt.ctxs = rt.ctxs[:len(rt.ctxs)-1]
}

func (rt *Runtime) currentThis() Value {
	return rt.ctxs[len(rt.ctxs)-1]
}

// rootThis returns the root context's `this` binding — the caller-supplied
// global object — the receiver spec.md §3/§4.2 designates for a plain call
// (any callee other than a MemberExpression), as opposed to a method call's
// receiver-as-this binding.
func (rt *Runtime) rootThis() Value {
	return rt.ctxs[0]
}

// setValue implements spec.md §4's setValue policy: only the outermost,
// non-call, non-control-signal completion value is remembered — an
// expression statement deep inside a function call must not clobber the
// REPL's notion of "the last thing the top level did".
func (rt *Runtime) setValue(v Value) {
	if len(rt.calls) != 0 {
		return
	}
	rt.lastValue = v
}

func (rt *Runtime) resetDeadline() {
	rt.steps = 0
	if rt.opts.Timeout > 0 {
		rt.deadline = time.Now().Add(rt.opts.Timeout)
		rt.hasDL = true
	} else {
		rt.hasDL = false
	}
}

// tickStep is called once per loop iteration, once per call or `new`
// expression, and once more on entry to a script function's body (so a
// script-function call counts two steps) — the two unbounded-recursion/unbounded-iteration sources spec.md's
// timeout exists to bound. Only every 256th call actually reads the clock,
// keeping the watchdog's overhead off the hot path.
func (rt *Runtime) tickStep() error {
	rt.steps++
	if !rt.hasDL || rt.steps&0xFF != 0 {
		return nil
	}
	if time.Now().After(rt.deadline) {
		return &Thrown{Value: rt.host.ToError(ErrTimeout)}
	}
	return nil
}
