package evaluator

import (
	"errors"

	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/pipeline"
)

// EvaluatorProcessor runs ctx.Program unless an earlier stage failed.
type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.Failed() {
		return ctx
	}

	e := New()
	if ctx.Ctx != nil {
		e.Context = ctx.Ctx
	}
	if ctx.Out != nil {
		e.Out = ctx.Out
	}
	if ctx.In != nil {
		e.In = ctx.In
	}
	if ctx.Config != nil {
		e.Scoping = ScopingFor(ctx.Config.Scoping)
		if ctx.Config.MaxDepth > 0 {
			e.MaxDepth = ctx.Config.MaxDepth
		}
	}

	result, err := e.EvalProgram(ctx.Program)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.PhaseRuntime, diagnostics.ErrRuntime, "%v", err)
		}
		ctx.AddError(de)
		return ctx
	}
	ctx.Result = result
	return ctx
}
