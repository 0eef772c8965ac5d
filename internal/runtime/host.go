package runtime

import "github.com/thunklang/es3vm/internal/evaluator"

// DefaultHost is the reference evaluator.Host: a minimal prototype-based
// object model with a handful of built-in globals (Object, Array,
// Function, Error constructors; console; a handful of Object/Array
// prototype methods) wired up the way a from-scratch embedding would.
// Grounded on CWBudde-go-dws's internal/interp/runtime package — a
// similarly self-contained "the host IS the runtime" split — generalized
// from its Pascal-flavored value set to ES3/5's.
type DefaultHost struct {
	global *Object

	objectProto   *Object
	arrayProto    *Object
	functionProto *Object
	errorProto    *Object
}

// NewDefaultHost builds a DefaultHost with its prototype chain and global
// object fully wired: Object.prototype, Array.prototype,
// Function.prototype, Error.prototype, and a global object exposing the
// Object/Array/Function/Error constructors plus console.
func NewDefaultHost() *DefaultHost {
	h := &DefaultHost{}
	h.objectProto = &Object{class: "Object", props: make(map[string]*prop)}
	h.functionProto = newObjectWithProto("Function", h.objectProto)
	h.arrayProto = newObjectWithProto("Array", h.objectProto)
	h.errorProto = newObjectWithProto("Error", h.objectProto)
	h.global = newObjectWithProto("Object", h.objectProto)

	h.installObjectProto()
	h.installArrayProto()
	h.installFunctionProto()
	h.installErrorProto()
	h.installGlobals()

	return h
}

func (h *DefaultHost) Global() any { return h.global }

func (h *DefaultHost) Undefined() any { return undefinedValue }
func (h *DefaultHost) Null() any      { return nullValue }

// ToError wraps a host-side Go error (including a propagated *Thrown, for
// which it just returns the carried value unchanged) as a scripted Error
// object, the channel spec.md §7 designates for host-call failures that
// must become catchable script exceptions.
func (h *DefaultHost) ToError(goErr error) any {
	if th, ok := goErr.(*evaluator.Thrown); ok {
		return th.Value
	}
	e := newObjectWithProto("Error", h.errorProto)
	e.setOwn("message", goErr.Error())
	e.setOwn("name", "Error")
	return e
}

func (h *DefaultHost) newError(name, message string) *Object {
	e := newObjectWithProto("Error", h.errorProto)
	e.setOwn("name", name)
	e.setOwn("message", message)
	return e
}
