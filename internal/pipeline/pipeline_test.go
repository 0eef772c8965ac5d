package pipeline_test

import (
	"testing"

	"github.com/thunklang/es3vm/internal/pipeline"
	"github.com/thunklang/es3vm/internal/runtime"
)

func TestStandardPipelineEvaluatesSource(t *testing.T) {
	host := runtime.NewDefaultHost()
	ctx := &pipeline.PipelineContext{Source: "1 + 2;", Host: host}

	out := pipeline.Standard().Run(ctx)
	if err := out.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result != float64(3) {
		t.Fatalf("Result = %v, want 3", out.Result)
	}
}

func TestStandardPipelineCollectsParseError(t *testing.T) {
	host := runtime.NewDefaultHost()
	ctx := &pipeline.PipelineContext{Source: "var = ;", Host: host}

	out := pipeline.Standard().Run(ctx)
	if out.ParseErr == nil {
		t.Fatal("expected a parse error")
	}
	if out.Err() != out.ParseErr {
		t.Fatalf("Err() should surface ParseErr first")
	}
	if out.EvaluateErr != nil {
		t.Fatalf("EvaluateStage should have been skipped, got %v", out.EvaluateErr)
	}
}

func TestCustomPipelineRunsStagesInOrder(t *testing.T) {
	var order []string
	a := pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		order = append(order, "a")
		return ctx
	})
	b := pipeline.ProcessorFunc(func(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
		order = append(order, "b")
		return ctx
	})

	pipeline.New(a, b).Run(&pipeline.PipelineContext{})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("stage order = %v, want [a b]", order)
	}
}
