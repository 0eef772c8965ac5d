package pipeline

import (
	"github.com/thunklang/es3vm/internal/evaluator"
	"github.com/thunklang/es3vm/internal/parser"
)

// Processor is one stage of a Pipeline: read whatever prior stages left
// in ctx, do its work, write back, and return (possibly a new) ctx.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a plain function to Processor, the same adapter
// shape net/http.HandlerFunc uses for http.Handler.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// ParseStage parses ctx.Source with the bundled recursive-descent parser,
// populating ctx.Program or ctx.ParseErr.
var ParseStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	prog, err := parser.Parse(ctx.Source)
	ctx.Program = prog
	ctx.ParseErr = err
	return ctx
})

// EvaluateStage runs ctx.Program against ctx.Host, skipping entirely if
// an earlier stage already failed to parse.
var EvaluateStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	if ctx.ParseErr != nil || ctx.Program == nil {
		return ctx
	}
	rt := evaluator.New(ctx.Host.Global(), ctx.Host, ctx.Opts)
	result, err := rt.EvaluateNode(ctx.Program, ctx.Source)
	ctx.Result = result
	ctx.EvaluateErr = err
	return ctx
})

// Standard is the parse-then-evaluate pipeline: ParseStage followed by
// EvaluateStage.
func Standard() *Pipeline {
	return New(ParseStage, EvaluateStage)
}
