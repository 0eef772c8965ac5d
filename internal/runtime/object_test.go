package runtime

import "testing"

func TestObjectPropertyRoundTrip(t *testing.T) {
	h := NewDefaultHost()
	obj := h.NewObject()
	if err := h.SetProperty(obj, "name", "ada"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	got, err := h.GetProperty(obj, "name")
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if got != "ada" {
		t.Fatalf("got %v, want %q", got, "ada")
	}
	has, err := h.HasProperty(obj, "name")
	if err != nil || !has {
		t.Fatalf("HasProperty: got (%v, %v), want (true, nil)", has, err)
	}
	deleted, err := h.DeleteProperty(obj, "name")
	if err != nil || !deleted {
		t.Fatalf("DeleteProperty: got (%v, %v), want (true, nil)", deleted, err)
	}
	has, _ = h.HasProperty(obj, "name")
	if has {
		t.Fatal("property should be gone after delete")
	}
}

func TestObjectEnumerateInsertionOrder(t *testing.T) {
	h := NewDefaultHost()
	obj := h.NewObject()
	h.SetProperty(obj, "z", 1.0)
	h.SetProperty(obj, "a", 2.0)
	h.SetProperty(obj, "m", 3.0)

	keys, err := h.Enumerate(obj)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(keys), len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key %d = %q, want %q (insertion order)", i, keys[i], k)
		}
	}
}

func TestArrayLengthBumpsOnIndexedSet(t *testing.T) {
	h := NewDefaultHost()
	arr := h.NewArray(nil)
	if err := h.SetProperty(arr, "2", "x"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	length, err := h.GetProperty(arr, "length")
	if err != nil {
		t.Fatalf("GetProperty(length): %v", err)
	}
	if length != float64(3) {
		t.Fatalf("length = %v, want 3", length)
	}
}

func TestObjectStringerDelegatesToToStringValue(t *testing.T) {
	h := NewDefaultHost()
	obj := h.NewObject()
	if s := obj.(*Object).String(); s != "[object Object]" {
		t.Fatalf("Object.String() = %q, want %q", s, "[object Object]")
	}
}

func TestPrimitiveStringersForUndefinedAndNull(t *testing.T) {
	h := NewDefaultHost()
	if s := toStringValue(h.Undefined()); s != "undefined" {
		t.Fatalf("toStringValue(undefined) = %q", s)
	}
	if s := toStringValue(h.Null()); s != "null" {
		t.Fatalf("toStringValue(null) = %q", s)
	}
}

func TestDefineAccessorGetterIsInvoked(t *testing.T) {
	h := NewDefaultHost()
	obj := h.NewObject()
	getter := h.NewFunction(func(this any, args []any) (any, error) {
		return "computed", nil
	}, 0, "get", "")
	if err := h.DefineAccessor(obj, "value", getter, nil, true, false); err != nil {
		t.Fatalf("DefineAccessor: %v", err)
	}
	got, err := h.GetProperty(obj, "value")
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if got != "computed" {
		t.Fatalf("got %v, want %q", got, "computed")
	}
}
