package evaluator

import (
	"cmp"
	"math"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
)

func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp, env *Environment) (Object, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+":
		return evalPlus(n, left, right)
	case "-", "*", "/", "%":
		l, lok := left.(*Number)
		r, rok := right.(*Number)
		if !lok || !rok {
			return nil, operandError(n, left, right)
		}
		return &Number{Value: arithmetic(n.Operator, l.Value, r.Value)}, nil
	case "<", ">", "<=", ">=":
		return evalOrdering(n, left, right)
	case "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right)), nil
	case "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right)), nil
	default:
		return nil, newError(n, diagnostics.ErrUnsupportedOperator, "unsupported operator %q", n.Operator)
	}
}

// evalPlus adds numbers, concatenates when either side is a string, and
// concatenates two lists.
func evalPlus(n *ast.BinaryOp, left, right Object) (Object, error) {
	if l, ok := left.(*Number); ok {
		if r, ok := right.(*Number); ok {
			return &Number{Value: l.Value + r.Value}, nil
		}
	}
	_, ls := left.(*String)
	_, rs := right.(*String)
	if ls || rs {
		return &String{Value: left.Inspect() + right.Inspect()}, nil
	}
	if l, ok := left.(*List); ok {
		if r, ok := right.(*List); ok {
			elems := make([]Object, 0, len(l.Elements)+len(r.Elements))
			elems = append(elems, l.Elements...)
			elems = append(elems, r.Elements...)
			return &List{Elements: elems}, nil
		}
	}
	return nil, operandError(n, left, right)
}

func arithmetic(op string, l, r float64) float64 {
	switch op {
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	default: // %
		return math.Mod(l, r)
	}
}

// evalOrdering is total: booleans order false before true, and operands
// of different or unordered kinds compare false.
func evalOrdering(n *ast.BinaryOp, left, right Object) (Object, error) {
	order, ok := compareObjects(left, right)
	if !ok {
		return FALSE, nil
	}

	var result bool
	switch n.Operator {
	case "<":
		result = order < 0
	case ">":
		result = order > 0
	case "<=":
		result = order <= 0
	default: // >=
		result = order >= 0
	}
	return nativeBoolToBooleanObject(result), nil
}

func compareObjects(left, right Object) (int, bool) {
	switch l := left.(type) {
	case *Number:
		r, ok := right.(*Number)
		// Any comparison involving NaN is false.
		if !ok || l.Value != l.Value || r.Value != r.Value {
			return 0, false
		}
		return cmp.Compare(l.Value, r.Value), true
	case *String:
		r, ok := right.(*String)
		if !ok {
			return 0, false
		}
		return cmp.Compare(l.Value, r.Value), true
	case *Boolean:
		r, ok := right.(*Boolean)
		if !ok {
			return 0, false
		}
		return cmp.Compare(boolRank(l.Value), boolRank(r.Value)), true
	}
	return 0, false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func operandError(n *ast.BinaryOp, left, right Object) error {
	return newError(n, diagnostics.ErrUnsupportedOperandKind,
		"unsupported operand types for %s: %s and %s", n.Operator, kindName(left), kindName(right))
}
