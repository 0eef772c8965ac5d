package runtime

import (
	"strconv"

	"github.com/thunklang/es3vm/internal/evaluator"
)

// prop is one property slot: either a plain value, or a getter/setter
// pair when accessor is true (either side may be absent).
type prop struct {
	value    any
	get, set any
	accessor bool
}

// Object is the single backing representation for every non-primitive
// Value: plain objects, arrays (class "Array"), functions (class
// "Function", non-nil call), and Error wrappers (class "Error") are all
// the same struct, distinguished by class and by whether call is set —
// the same "one Object, tagged by class" shape the teacher uses, stripped
// of its typesystem.Type bookkeeping since this module's Value has no
// static type to carry.
type Object struct {
	class string
	proto *Object
	keys  []string
	props map[string]*prop
	call  evaluator.NativeFunc
}

func newObjectWithProto(class string, proto *Object) *Object {
	return &Object{class: class, proto: proto, props: make(map[string]*prop)}
}

// String makes every Object satisfy fmt.Stringer via the same ES3/5
// ToString conversion the evaluator runs for template/concatenation
// purposes — the convention internal/evaluator/lvalue.go's toPropertyKey
// (computed member keys) and the CLI's result-printing both lean on
// instead of hand-rolling their own object-to-string fallback.
func (o *Object) String() string {
	return toStringValue(o)
}

func (o *Object) ownProp(key string) (*prop, bool) {
	p, ok := o.props[key]
	return p, ok
}

// mustGet reads an own-or-inherited data property ignoring accessors,
// used internally (e.g. array length bookkeeping) where the key is never
// user-overridden with a getter.
func (o *Object) mustGet(key string) any {
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[key]; ok {
			return p.value
		}
	}
	return undefinedValue
}

func (o *Object) setOwn(key string, val any) {
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = &prop{value: val}
	if o.class == "Array" {
		o.bumpLength(key)
	}
}

func (o *Object) bumpLength(key string) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 {
		return
	}
	cur := int(toNumber(o.mustGet("length")))
	if idx+1 > cur {
		if _, exists := o.props["length"]; !exists {
			o.keys = append(o.keys, "length")
		}
		o.props["length"] = &prop{value: float64(idx + 1)}
	}
}

func (o *Object) deleteOwn(key string) bool {
	if _, ok := o.props[key]; !ok {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// --- evaluator.Host property methods ---

func (h *DefaultHost) GetProperty(obj any, key string) (any, error) {
	o, ok := obj.(*Object)
	if !ok {
		return undefinedValue, nil
	}
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[key]; ok {
			if p.accessor {
				if p.get == nil {
					return undefinedValue, nil
				}
				return h.Call(p.get, obj, nil)
			}
			return p.value, nil
		}
	}
	return undefinedValue, nil
}

func (h *DefaultHost) SetProperty(obj any, key string, val any) error {
	o, ok := obj.(*Object)
	if !ok {
		return nil
	}
	for cur := o; cur != nil; cur = cur.proto {
		p, ok := cur.props[key]
		if !ok {
			continue
		}
		if p.accessor {
			if p.set == nil {
				return nil
			}
			_, err := h.Call(p.set, obj, []any{val})
			return err
		}
		break // an inherited data property is shadowed by an own one below
	}
	o.setOwn(key, val)
	return nil
}

func (h *DefaultHost) DeleteProperty(obj any, key string) (bool, error) {
	o, ok := obj.(*Object)
	if !ok {
		return true, nil
	}
	return o.deleteOwn(key), nil
}

func (h *DefaultHost) HasProperty(obj any, key string) (bool, error) {
	o, ok := obj.(*Object)
	if !ok {
		return false, nil
	}
	for cur := o; cur != nil; cur = cur.proto {
		if _, ok := cur.props[key]; ok {
			return true, nil
		}
	}
	return false, nil
}

// Enumerate walks obj's own properties and its prototype chain, in
// insertion order, skipping internal "$"-prefixed slots (function
// $length/$name/$isFunction metadata) and the built-in Object/Array/
// Function/Error prototypes' methods the same way a real engine skips
// non-enumerable properties — giving the evaluator's member-access
// rewrite rule a free side effect: rewritten keys never leak into for-in.
func (h *DefaultHost) Enumerate(obj any) ([]string, error) {
	o, ok := obj.(*Object)
	if !ok {
		return nil, nil
	}
	seen := map[string]bool{}
	var out []string
	for cur := o; cur != nil; cur = cur.proto {
		if cur == h.objectProto || cur == h.arrayProto || cur == h.functionProto || cur == h.errorProto {
			continue
		}
		for _, k := range cur.keys {
			if len(k) > 0 && k[0] == '$' {
				continue
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

func (h *DefaultHost) NewObject() any {
	return newObjectWithProto("Object", h.objectProto)
}

func (h *DefaultHost) NewArray(elems []any) any {
	arr := newObjectWithProto("Array", h.arrayProto)
	for i, v := range elems {
		arr.setOwn(strconv.Itoa(i), v)
	}
	if _, ok := arr.props["length"]; !ok {
		arr.setOwn("length", float64(len(elems)))
	}
	return arr
}

func (h *DefaultHost) DefineAccessor(obj any, key string, get, set any, hasGet, hasSet bool) error {
	o, ok := obj.(*Object)
	if !ok {
		return nil
	}
	p, exists := o.props[key]
	if !exists || !p.accessor {
		p = &prop{accessor: true}
		if !exists {
			o.keys = append(o.keys, key)
		}
		o.props[key] = p
	}
	if hasGet {
		p.get = get
	}
	if hasSet {
		p.set = set
	}
	return nil
}
