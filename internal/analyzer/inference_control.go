package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

func (c *Checker) inferCondition(cond ast.Expression, table *symbols.SymbolTable) error {
	t, err := c.infer(cond, table)
	if err != nil {
		return err
	}
	if !typesystem.Equal(t, typesystem.Boolean) {
		return errorAt(cond, diagnostics.ErrTypeMismatch, "condition must be %s, got %s", typesystem.Boolean, t)
	}
	return nil
}

func (c *Checker) inferIf(n *ast.If, table *symbols.SymbolTable) (typesystem.Type, error) {
	if err := c.inferCondition(n.Cond, table); err != nil {
		return nil, err
	}
	thenType, err := c.infer(n.Then, table)
	if err != nil {
		return nil, err
	}
	elseType, err := c.infer(n.Else, table)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(thenType, elseType) {
		return nil, errorAt(n, diagnostics.ErrTypeMismatch,
			"branches of if must have the same type: then is %s, else is %s", thenType, elseType)
	}
	return thenType, nil
}

func (c *Checker) inferWhile(n *ast.While, table *symbols.SymbolTable) (typesystem.Type, error) {
	if err := c.inferCondition(n.Cond, table); err != nil {
		return nil, err
	}
	if _, err := c.infer(n.Body, table); err != nil {
		return nil, err
	}
	return typesystem.Void, nil
}

func (c *Checker) inferSeq(n *ast.Seq, table *symbols.SymbolTable) (typesystem.Type, error) {
	var result typesystem.Type = typesystem.Void
	for _, body := range n.Bodies {
		t, err := c.infer(body, table)
		if err != nil {
			return nil, err
		}
		result = t
	}
	return result, nil
}
