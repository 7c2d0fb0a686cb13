package analyzer

import (
	"fmt"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/prettyprinter"
	"github.com/funvibe/minilang/internal/typesystem"
)

// maxNodeLen bounds the rendered expression attached to a diagnostic.
const maxNodeLen = 60

func errorAt(node ast.Node, code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.PhaseCheck, code, format, args...).
		WithNode(prettyprinter.Compact(node, maxNodeLen))
}

func describeArity(fn typesystem.TFunc) string {
	if fn.IsVariadic {
		return fmt.Sprintf("at least %d arguments", len(fn.Params)-1)
	}
	if len(fn.Params) == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", len(fn.Params))
}
