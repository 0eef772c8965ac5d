package runtime

import "github.com/thunklang/es3vm/internal/evaluator"

// NewFunction wraps fn as a callable Object. length/name are stashed
// under "$length"/"$name" rather than "length"/"name" directly — the
// evaluator's member-access rewrite rule (see internal/evaluator/
// lvalue.go) redirects reads/writes of "length"/"name" on any object
// whose "$isFunction" is truthy to these internal slots, so ordinary own
// properties named "length"/"name" on a function value (rare, but legal)
// don't collide with its arity/name metadata.
func (h *DefaultHost) NewFunction(fn evaluator.NativeFunc, length int, name, source string) any {
	o := newObjectWithProto("Function", h.functionProto)
	o.call = fn
	o.setOwn("$isFunction", true)
	o.setOwn("$length", float64(length))
	o.setOwn("$name", name)
	o.setOwn("$source", source)

	proto := newObjectWithProto("Object", h.objectProto)
	proto.setOwn("constructor", o)
	o.setOwn("prototype", proto)
	return o
}

func (h *DefaultHost) IsCallable(v any) bool {
	o, ok := v.(*Object)
	return ok && o.call != nil
}

func (h *DefaultHost) Call(fn any, this any, args []any) (any, error) {
	o, ok := fn.(*Object)
	if !ok || o.call == nil {
		return nil, errNotCallable(fn)
	}
	return o.call(this, args)
}

func (h *DefaultHost) Construct(ctor any, args []any) (any, error) {
	o, ok := ctor.(*Object)
	if !ok || o.call == nil {
		return nil, errNotCallable(ctor)
	}
	proto := h.objectProto
	if p, ok := o.mustGet("prototype").(*Object); ok {
		proto = p
	}
	instance := newObjectWithProto("Object", proto)
	result, err := o.call(instance, args)
	if err != nil {
		return nil, err
	}
	if ro, ok := result.(*Object); ok {
		return ro, nil
	}
	return instance, nil
}
