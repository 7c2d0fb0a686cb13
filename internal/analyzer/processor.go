package analyzer

import (
	"errors"

	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/pipeline"
)

// SemanticAnalyzerProcessor runs the checker over ctx.Program. It is the
// gate in front of the evaluator: an error recorded here stops evaluation.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.Failed() {
		return ctx
	}
	if ctx.Config != nil && ctx.Config.SkipCheck {
		return ctx
	}

	checker := New(ctx.Supply)
	checker.File = ctx.FilePath
	resultType, err := checker.CheckProgram(ctx.Program)
	ctx.TypeMap = checker.TypeMap
	if err != nil {
		ctx.AddError(asDiagnostic(err))
		return ctx
	}
	ctx.ResultType = resultType
	return ctx
}

func asDiagnostic(err error) *diagnostics.DiagnosticError {
	var de *diagnostics.DiagnosticError
	if errors.As(err, &de) {
		return de
	}
	return diagnostics.NewError(diagnostics.PhaseCheck, diagnostics.ErrTypeMismatch, "%v", err)
}
