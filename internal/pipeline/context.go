package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/typesystem"
)

// PipelineContext carries one program through parse, check and evaluate.
type PipelineContext struct {
	Ctx        context.Context
	SourceCode []byte
	FilePath   string
	Config     *config.Config

	Program *ast.Program

	// Filled by the checker.
	TypeMap    map[ast.Expression]typesystem.Type
	ResultType typesystem.Type
	Supply     *typesystem.TypeVarSupply

	// Filled by the evaluator; holds an evaluator.Object.
	Result interface{}

	In  io.Reader
	Out io.Writer

	Errors []*diagnostics.DiagnosticError
}

// NewPipelineContext prepares a context for source read from filePath.
func NewPipelineContext(source []byte, filePath string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{
		Ctx:        context.Background(),
		SourceCode: source,
		FilePath:   filePath,
		Config:     cfg,
		Supply:     typesystem.NewTypeVarSupply(),
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}

// Failed reports whether any stage recorded an error.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0
}

// AddError records err, tagging it with the context's file.
func (c *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}
