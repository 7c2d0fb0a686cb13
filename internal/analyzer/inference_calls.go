package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// resolveCallee finds the signature a call refers to: a function of that
// name first, otherwise a variable holding a function.
func (c *Checker) resolveCallee(n *ast.Call, table *symbols.SymbolTable) (typesystem.TFunc, []typesystem.TVar, error) {
	if sym, ok := table.FindFunction(n.Name); ok {
		fn, _ := sym.Signature()
		return fn, sym.TypeParams, nil
	}
	if sym, ok := table.FindVariable(n.Name); ok {
		if fn, ok := sym.Type.(typesystem.TFunc); ok {
			return fn, nil, nil
		}
		return typesystem.TFunc{}, nil, errorAt(n, diagnostics.ErrTypeMismatch,
			"%s is not a function, it has type %s", n.Name, sym.Type)
	}
	return typesystem.TFunc{}, nil, errorAt(n, diagnostics.ErrUndefinedFunction, "function %s is not defined", n.Name)
}

// inferCall instantiates the callee's signature, matches the argument
// types against it and returns the substituted return type.
func (c *Checker) inferCall(n *ast.Call, table *symbols.SymbolTable) (typesystem.Type, error) {
	callee, typeParams, err := c.resolveCallee(n, table)
	if err != nil {
		return nil, err
	}
	if len(typeParams) > 0 {
		callee = typesystem.Instantiate(callee, typeParams, c.supply).(typesystem.TFunc)
	}

	if !typesystem.ArityOK(callee, len(n.Args)) {
		return nil, errorAt(n, diagnostics.ErrArityMismatch,
			"function %s expects %s, got %d", n.Name, describeArity(callee), len(n.Args))
	}

	argTypes := make([]typesystem.Type, len(n.Args))
	for i, arg := range n.Args {
		t, err := c.infer(arg, table)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	subst := make(typesystem.Subst)
	for i, argType := range argTypes {
		param := typesystem.ParamAt(callee, i)
		if !typesystem.Match(param, argType, subst) {
			return nil, errorAt(n, diagnostics.ErrTypeMismatch,
				"argument %d of %s: expected %s, got %s", i+1, n.Name, param.Apply(subst), argType.Apply(subst))
		}
	}
	return callee.ReturnType.Apply(subst), nil
}
