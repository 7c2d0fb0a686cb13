package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// IsArithmetic reports whether op is one of + - * / %.
func IsArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

// IsComparison reports whether op is one of < > <= >= == !=.
func IsComparison(op string) bool {
	switch op {
	case "<", ">", "<=", ">=", "==", "!=":
		return true
	}
	return false
}

func (c *Checker) inferBinaryOp(n *ast.BinaryOp, table *symbols.SymbolTable) (typesystem.Type, error) {
	left, err := c.infer(n.Left, table)
	if err != nil {
		return nil, err
	}
	right, err := c.infer(n.Right, table)
	if err != nil {
		return nil, err
	}

	switch {
	case IsArithmetic(n.Operator):
		if typesystem.Equal(left, typesystem.Number) && typesystem.Equal(right, typesystem.Number) {
			return typesystem.Number, nil
		}
		if n.Operator == "+" {
			if typesystem.Equal(left, typesystem.String) && typesystem.Equal(right, typesystem.String) {
				return typesystem.String, nil
			}
			ll, lok := left.(typesystem.TList)
			rl, rok := right.(typesystem.TList)
			if lok && rok && typesystem.Equal(ll.Elem, rl.Elem) {
				return typesystem.TList{Elem: ll.Elem}, nil
			}
		}
		return nil, errorAt(n, diagnostics.ErrTypeMismatch,
			"unsupported operand types for %s: %s and %s", n.Operator, left, right)
	case IsComparison(n.Operator):
		// Operands are unconstrained.
		return typesystem.Boolean, nil
	default:
		return nil, errorAt(n, diagnostics.ErrUnsupportedOperator, "unsupported operator %q", n.Operator)
	}
}
