package hostlib

import (
	"testing"

	"github.com/thunklang/es3vm/internal/runtime"
)

func TestHostToGoAndBackRoundTrip(t *testing.T) {
	h := runtime.NewDefaultHost()

	obj := h.NewObject()
	h.SetProperty(obj, "name", "ada")
	h.SetProperty(obj, "age", float64(36))
	arr := h.NewArray([]any{float64(1), float64(2), float64(3)})
	h.SetProperty(obj, "tags", arr)

	native, err := hostToGo(h, obj)
	if err != nil {
		t.Fatalf("hostToGo: %v", err)
	}
	m, ok := native.(map[string]any)
	if !ok {
		t.Fatalf("hostToGo returned %T, want map[string]any", native)
	}
	if m["name"] != "ada" || m["age"] != float64(36) {
		t.Fatalf("unexpected native map: %#v", m)
	}
	tags, ok := m["tags"].([]any)
	if !ok || len(tags) != 3 {
		t.Fatalf("tags = %#v, want a 3-element []any", m["tags"])
	}

	back, err := goToHost(h, native)
	if err != nil {
		t.Fatalf("goToHost: %v", err)
	}
	name, err := h.GetProperty(back, "name")
	if err != nil || name != "ada" {
		t.Fatalf("GetProperty(name) = (%v, %v), want (ada, nil)", name, err)
	}
}

func TestJSONStringifyAndParse(t *testing.T) {
	h := runtime.NewDefaultHost()
	if err := Install(h, Options{JSON: true}); err != nil {
		t.Fatalf("Install: %v", err)
	}

	jsonNS, err := h.GetProperty(h.Global(), "JSON")
	if err != nil {
		t.Fatalf("GetProperty(JSON): %v", err)
	}
	stringify, err := h.GetProperty(jsonNS, "stringify")
	if err != nil {
		t.Fatalf("GetProperty(stringify): %v", err)
	}
	parse, err := h.GetProperty(jsonNS, "parse")
	if err != nil {
		t.Fatalf("GetProperty(parse): %v", err)
	}

	obj := h.NewObject()
	h.SetProperty(obj, "ok", true)

	text, err := h.Call(stringify, nil, []any{obj})
	if err != nil {
		t.Fatalf("JSON.stringify: %v", err)
	}
	if text != `{"ok":true}` {
		t.Fatalf("stringify result = %v, want %q", text, `{"ok":true}`)
	}

	parsed, err := h.Call(parse, nil, []any{text})
	if err != nil {
		t.Fatalf("JSON.parse: %v", err)
	}
	ok, err := h.GetProperty(parsed, "ok")
	if err != nil || ok != true {
		t.Fatalf("parsed.ok = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestYAMLStringifyAndParse(t *testing.T) {
	h := runtime.NewDefaultHost()
	if err := Install(h, Options{YAML: true}); err != nil {
		t.Fatalf("Install: %v", err)
	}

	yamlNS, err := h.GetProperty(h.Global(), "YAML")
	if err != nil {
		t.Fatalf("GetProperty(YAML): %v", err)
	}
	stringify, err := h.GetProperty(yamlNS, "stringify")
	if err != nil {
		t.Fatalf("GetProperty(stringify): %v", err)
	}
	parse, err := h.GetProperty(yamlNS, "parse")
	if err != nil {
		t.Fatalf("GetProperty(parse): %v", err)
	}

	obj := h.NewObject()
	h.SetProperty(obj, "name", "es3vm")
	h.SetProperty(obj, "version", float64(1))

	text, err := h.Call(stringify, nil, []any{obj})
	if err != nil {
		t.Fatalf("YAML.stringify: %v", err)
	}
	s, ok := text.(string)
	if !ok || s == "" {
		t.Fatalf("stringify result = %#v, want a non-empty string", text)
	}

	parsed, err := h.Call(parse, nil, []any{s})
	if err != nil {
		t.Fatalf("YAML.parse: %v", err)
	}
	name, err := h.GetProperty(parsed, "name")
	if err != nil || name != "es3vm" {
		t.Fatalf("parsed.name = (%v, %v), want (es3vm, nil)", name, err)
	}
}

func TestUUIDGlobalProducesDistinctStrings(t *testing.T) {
	h := runtime.NewDefaultHost()
	if err := Install(h, Options{UUID: true}); err != nil {
		t.Fatalf("Install: %v", err)
	}
	fn, err := h.GetProperty(h.Global(), "uuid")
	if err != nil {
		t.Fatalf("GetProperty(uuid): %v", err)
	}
	a, err := h.Call(fn, nil, nil)
	if err != nil {
		t.Fatalf("uuid(): %v", err)
	}
	b, err := h.Call(fn, nil, nil)
	if err != nil {
		t.Fatalf("uuid(): %v", err)
	}
	if a == b {
		t.Fatal("two calls to uuid() produced the same string")
	}
	if _, ok := a.(string); !ok {
		t.Fatalf("uuid() returned %T, want string", a)
	}
}
