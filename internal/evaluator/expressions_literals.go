package evaluator

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
)

func (e *Evaluator) evalList(n *ast.ListLiteral, env *Environment) (Object, error) {
	elems := make([]Object, len(n.Elements))
	for i, el := range n.Elements {
		obj, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = obj
	}
	return &List{Elements: elems}, nil
}

// evalDict keeps entries in source order; a repeated key keeps its first
// position and takes the last value.
func (e *Evaluator) evalDict(n *ast.DictLiteral, env *Environment) (Object, error) {
	dict := NewDict()
	for _, entry := range n.Entries {
		key, err := e.Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		value, err := e.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !dict.Set(key, value) {
			return nil, newError(entry.Key, diagnostics.ErrUnsupportedOperandKind,
				"%s cannot be used as a dictionary key", kindName(key))
		}
	}
	return dict, nil
}
