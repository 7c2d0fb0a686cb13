package parser

import (
	"errors"

	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.SourceCode == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.PhaseParse, diagnostics.ErrInvalidProgram, "no source code"))
		return ctx
	}

	program, err := New(ctx.FilePath).ParseProgram(ctx.SourceCode)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if !errors.As(err, &de) {
			de = diagnostics.NewError(diagnostics.PhaseParse, diagnostics.ErrInvalidProgram, "%v", err)
		}
		ctx.AddError(de)
		return ctx
	}
	ctx.Program = program
	return ctx
}
