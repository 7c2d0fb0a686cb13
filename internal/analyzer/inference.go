package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// infer computes the type of expr in table and records it in TypeMap.
func (c *Checker) infer(expr ast.Expression, table *symbols.SymbolTable) (typesystem.Type, error) {
	var (
		t   typesystem.Type
		err error
	)
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		t = typesystem.Number
	case *ast.StringLiteral:
		t = typesystem.String
	case *ast.BooleanLiteral:
		t = typesystem.Boolean
	case *ast.VarRef:
		t, err = c.inferVarRef(n, table)
	case *ast.Assignment:
		t, err = c.inferAssignment(n, table)
	case *ast.BinaryOp:
		t, err = c.inferBinaryOp(n, table)
	case *ast.If:
		t, err = c.inferIf(n, table)
	case *ast.While:
		t, err = c.inferWhile(n, table)
	case *ast.Seq:
		t, err = c.inferSeq(n, table)
	case *ast.Call:
		t, err = c.inferCall(n, table)
	case *ast.ListLiteral:
		t, err = c.inferList(n, table)
	case *ast.DictLiteral:
		t, err = c.inferDict(n, table)
	default:
		err = errorAt(expr, diagnostics.ErrInvalidProgram, "unknown expression %T", expr)
	}
	if err != nil {
		return nil, err
	}
	c.TypeMap[expr] = t
	return t, nil
}

func (c *Checker) inferVarRef(n *ast.VarRef, table *symbols.SymbolTable) (typesystem.Type, error) {
	// A function named by a variable reference keeps its generic
	// signature; it is instantiated only where it is called.
	if sym, ok := table.Find(n.Name); ok {
		return sym.Type, nil
	}
	return nil, errorAt(n, diagnostics.ErrUndefinedVariable, "variable %s is not defined", n.Name)
}

func (c *Checker) inferAssignment(n *ast.Assignment, table *symbols.SymbolTable) (typesystem.Type, error) {
	t, err := c.infer(n.Value, table)
	if err != nil {
		return nil, err
	}
	table.Define(n.Name, t)
	return t, nil
}
