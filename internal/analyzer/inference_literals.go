package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// inferList types a list literal from its first element; every other
// element must have exactly that type. An empty literal gets a fresh
// element variable.
func (c *Checker) inferList(n *ast.ListLiteral, table *symbols.SymbolTable) (typesystem.Type, error) {
	if len(n.Elements) == 0 {
		return typesystem.TList{Elem: c.supply.Fresh("T")}, nil
	}
	var elem typesystem.Type
	for i, e := range n.Elements {
		t, err := c.infer(e, table)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elem = t
			continue
		}
		if !typesystem.Equal(t, elem) {
			return nil, errorAt(n, diagnostics.ErrTypeMismatch,
				"all elements of a list must have the same type: element 0 is %s, element %d is %s", elem, i, t)
		}
	}
	return typesystem.TList{Elem: elem}, nil
}

func (c *Checker) inferDict(n *ast.DictLiteral, table *symbols.SymbolTable) (typesystem.Type, error) {
	if len(n.Entries) == 0 {
		return typesystem.TDict{Key: c.supply.Fresh("K"), Value: c.supply.Fresh("V")}, nil
	}
	var key, value typesystem.Type
	for i, entry := range n.Entries {
		kt, err := c.infer(entry.Key, table)
		if err != nil {
			return nil, err
		}
		vt, err := c.infer(entry.Value, table)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			key, value = kt, vt
			continue
		}
		if !typesystem.Equal(kt, key) {
			return nil, errorAt(n, diagnostics.ErrTypeMismatch,
				"all keys of a dictionary must have the same type: %s and %s", key, kt)
		}
		if !typesystem.Equal(vt, value) {
			return nil, errorAt(n, diagnostics.ErrTypeMismatch,
				"all values of a dictionary must have the same type: %s and %s", value, vt)
		}
	}
	return typesystem.TDict{Key: key, Value: value}, nil
}
