package pipeline

import (
	"github.com/thunklang/es3vm/internal/ast"
	"github.com/thunklang/es3vm/internal/evaluator"
)

// PipelineContext threads through every stage of a run: source text in,
// parsed program, evaluated result, and whatever failed along the way.
// Stages never stop the pipeline on error — Pipeline.Run continues
// through every Processor so a caller inspecting ctx afterward sees every
// diagnostic a later stage could still produce, the same "don't short-
// circuit, collect everything" rule the teacher's own Run documents for
// its LSP use.
type PipelineContext struct {
	Source string

	Program *ast.Program
	Result  evaluator.Value

	ParseErr    error
	EvaluateErr error

	Host evaluator.Host
	Opts evaluator.Options
}

// Err returns the first-stage error that occurred, if any — ParseErr
// takes priority since a failed parse makes EvaluateErr meaningless.
func (c *PipelineContext) Err() error {
	if c.ParseErr != nil {
		return c.ParseErr
	}
	return c.EvaluateErr
}
