package es3vm_test

import (
	"testing"

	"github.com/thunklang/es3vm/internal/hostlib"
	"github.com/thunklang/es3vm/pkg/es3vm"
)

func TestEmbeddingEvaluatesAScript(t *testing.T) {
	host := es3vm.NewDefaultHost()
	if err := es3vm.InstallHostlib(host, hostlib.DefaultOptions()); err != nil {
		t.Fatalf("InstallHostlib: %v", err)
	}
	rt := es3vm.New(host.Global(), host, es3vm.Options{})

	result, err := rt.Evaluate(`JSON.stringify({a: 1 + 2});`)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result != `{"a":3}` {
		t.Fatalf("got %v, want %q", result, `{"a":3}`)
	}
}

func TestParseProgramReturnsAST(t *testing.T) {
	prog, err := es3vm.ParseProgram("var x = 1;")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
}
