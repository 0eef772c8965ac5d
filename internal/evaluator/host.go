// Package evaluator is the tree-walking core: it compiles internal/ast
// nodes into Go closures ("thunks") and runs them against a caller-supplied
// Host. The evaluator owns no value representation of its own — Value is
// whatever the Host says it is — so every object/array/function operation
// is a call out to Host rather than a method on a package-local type. This
// mirrors the teacher's split between internal/evaluator (tree-walk driver)
// and internal/evaluator's object family, generalized here so the object
// model lives entirely on the caller's side of the interface.
package evaluator

// Value is an opaque script value. The evaluator never constructs or
// inspects one directly except through Host.
type Value = any

// NativeFunc is a Go function exposed to scripts as a callable value via
// Host.NewFunction.
type NativeFunc func(this Value, args []Value) (Value, error)

// Host supplies the object model, property semantics, and primitive
// operator behavior the evaluator has no opinion about. One Host instance
// is shared by every Runtime built on top of it; Runtime itself holds all
// per-evaluation state (scope chain, call stack, step counter).
type Host interface {
	Global() Value

	GetProperty(obj Value, key string) (Value, error)
	SetProperty(obj Value, key string, val Value) error
	DeleteProperty(obj Value, key string) (bool, error)
	HasProperty(obj Value, key string) (bool, error)
	Enumerate(obj Value) ([]string, error)

	NewObject() Value
	NewArray(elems []Value) Value
	DefineAccessor(obj Value, key string, get, set Value, hasGet, hasSet bool) error

	NewFunction(fn NativeFunc, length int, name, source string) Value
	IsCallable(v Value) bool
	Call(fn Value, this Value, args []Value) (Value, error)
	Construct(ctor Value, args []Value) (Value, error)

	BinaryOp(op string, l, r Value) (Value, error)
	UnaryOp(op string, v Value) (Value, error)
	UpdateOp(op string, old Value) (Value, error)
	Typeof(v Value) string
	InstanceOf(v, ctor Value) (bool, error)
	HasIn(key string, obj Value) (bool, error)
	Truthy(v Value) bool
	StrictEquals(l, r Value) bool

	Undefined() Value
	Null() Value
	ToError(goErr error) Value
}
