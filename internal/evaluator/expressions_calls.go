package evaluator

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
)

// evalCall resolves the callee (functions by name first, then a variable
// holding a function), evaluates the arguments left to right and applies.
func (e *Evaluator) evalCall(n *ast.Call, env *Environment) (Object, error) {
	callee, ok := e.lookupFunction(n.Name)
	if !ok {
		val, found := env.Get(n.Name)
		switch {
		case !found:
			return nil, newError(n, diagnostics.ErrUndefinedFunction, "function %s is not defined", n.Name)
		case !isCallable(val):
			return nil, newError(n, diagnostics.ErrUnsupportedOperandKind,
				"%s is not a function, it is a %s", n.Name, kindName(val))
		}
		callee = val
	}

	args := make([]Object, len(n.Args))
	for i, arg := range n.Args {
		obj, err := e.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = obj
	}

	result, err := e.ApplyFunction(callee, args)
	if err != nil {
		if de, ok := err.(*diagnostics.DiagnosticError); ok {
			return nil, de.WithNode(renderNode(n))
		}
		return nil, err
	}
	return result, nil
}
