package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/typesystem"
)

var baseTypes = map[string]typesystem.Type{
	config.NumberTypeName:  typesystem.Number,
	config.StringTypeName:  typesystem.String,
	config.BooleanTypeName: typesystem.Boolean,
	config.VoidTypeName:    typesystem.Void,
}

// parseType reads a type term:
//
//	"Number" | "String" | "Boolean" | "Void" | <type parameter>
//	["List", T] | ["Dict", K, V] | ["Fun", [P...], R]
func (p *Parser) parseType(node *yaml.Node) (typesystem.Type, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if t, ok := baseTypes[node.Value]; ok {
			return t, nil
		}
		if p.typeParams[node.Value] {
			return typesystem.TVar{Name: node.Value}, nil
		}
		return nil, p.errorAt(node, "unknown type %q", node.Value)
	case yaml.SequenceNode:
		return p.parseTypeApplication(node)
	default:
		return nil, p.errorAt(node, "expected a type")
	}
}

func (p *Parser) parseTypeApplication(node *yaml.Node) (typesystem.Type, error) {
	if len(node.Content) == 0 {
		return nil, p.errorAt(node, "empty type")
	}
	head := resolve(node.Content[0])
	args := node.Content[1:]
	arity := map[string]int{
		config.ListTypeName:     1,
		config.DictTypeName:     2,
		config.FunctionTypeName: 2,
	}
	want, ok := arity[head.Value]
	if !ok {
		return nil, p.errorAt(head, "unknown type constructor %q", head.Value)
	}
	if len(args) != want {
		return nil, p.errorAt(node, "%s takes %d type arguments, got %d", head.Value, want, len(args))
	}

	switch head.Value {
	case config.ListTypeName:
		elem, err := p.parseType(args[0])
		if err != nil {
			return nil, err
		}
		return typesystem.TList{Elem: elem}, nil
	case config.DictTypeName:
		key, err := p.parseType(args[0])
		if err != nil {
			return nil, err
		}
		value, err := p.parseType(args[1])
		if err != nil {
			return nil, err
		}
		return typesystem.TDict{Key: key, Value: value}, nil
	default:
		paramList := resolve(args[0])
		if paramList.Kind != yaml.SequenceNode {
			return nil, p.errorAt(paramList, "function type parameters must be an array")
		}
		params := make([]typesystem.Type, len(paramList.Content))
		for i, pn := range paramList.Content {
			t, err := p.parseType(pn)
			if err != nil {
				return nil, err
			}
			params[i] = t
		}
		ret, err := p.parseType(args[1])
		if err != nil {
			return nil, err
		}
		return typesystem.TFunc{Params: params, ReturnType: ret}, nil
	}
}
