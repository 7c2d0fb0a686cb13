package evaluator

import (
	"fmt"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/prettyprinter"
)

func isCallable(obj Object) bool {
	switch obj.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}

// ApplyFunction calls fn with already evaluated arguments. The caller
// environment handed to the scoping strategy is e.CurrentEnv, so builtins
// such as map call back with the environment map itself was called from.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) (Object, error) {
	switch f := fn.(type) {
	case *Builtin:
		return f.Fn(e, args...)
	case *Function:
		def := f.Def
		if len(args) != len(def.Params) {
			return nil, runtimeError(diagnostics.ErrArityMismatch,
				"function %s expects %s, got %d", def.Name, plural(len(def.Params), "argument"), len(args))
		}
		callEnv := e.Scoping.CallEnvironment(e.CurrentEnv, def.ParamNames(), args)
		return e.Eval(def.Body, callEnv)
	default:
		return nil, runtimeError(diagnostics.ErrUnsupportedOperandKind, "%s is not a function", kindName(fn))
	}
}

// runtimeError is an error with no node yet; the enclosing call attaches it.
func runtimeError(code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.PhaseRuntime, code, format, args...)
}

func renderNode(n ast.Node) string {
	return prettyprinter.Compact(n, maxNodeLen)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
