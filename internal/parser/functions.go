package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

func (p *Parser) parseFunctions(node *yaml.Node) ([]*ast.FunctionDef, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil, p.errorAt(node, "\"functions\" must be an array")
	}
	defs := make([]*ast.FunctionDef, len(node.Content))
	for i, entry := range node.Content {
		def, err := p.parseFunction(entry)
		if err != nil {
			return nil, err
		}
		defs[i] = def
	}
	return defs, nil
}

// parseFunction accepts the untyped form [name, [params], body] and the
// typed object form {name, typeParams, params: [{name, type}], returns, body}.
func (p *Parser) parseFunction(node *yaml.Node) (*ast.FunctionDef, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.SequenceNode:
		return p.parseUntypedFunction(node)
	case yaml.MappingNode:
		return p.parseTypedFunction(node)
	default:
		return nil, p.errorAt(node, "function must be an array or an object")
	}
}

func (p *Parser) parseUntypedFunction(node *yaml.Node) (*ast.FunctionDef, error) {
	if len(node.Content) != 3 {
		return nil, p.errorAt(node, "function must be [name, [params], body]")
	}
	name, err := p.parseName(node.Content[0])
	if err != nil {
		return nil, err
	}
	paramList := resolve(node.Content[1])
	if paramList.Kind != yaml.SequenceNode {
		return nil, p.errorAt(paramList, "parameters of %s must be an array of names", name)
	}
	def := &ast.FunctionDef{Name: name}
	for _, pn := range paramList.Content {
		param, err := p.parseName(pn)
		if err != nil {
			return nil, err
		}
		def.Params = append(def.Params, ast.Param{Name: param})
	}
	p.typeParams = nil
	if def.Body, err = p.parseExpression(node.Content[2]); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parseTypedFunction(node *yaml.Node) (*ast.FunctionDef, error) {
	fields := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		switch key.Value {
		case "name", "typeParams", "params", "returns", "body":
			fields[key.Value] = node.Content[i+1]
		default:
			return nil, p.errorAt(key, "unknown function field %q", key.Value)
		}
	}
	if fields["name"] == nil {
		return nil, p.errorAt(node, "function needs a \"name\"")
	}
	name, err := p.parseName(fields["name"])
	if err != nil {
		return nil, err
	}
	if fields["body"] == nil {
		return nil, p.errorAt(node, "function %s needs a \"body\"", name)
	}
	def := &ast.FunctionDef{Name: name}

	p.typeParams = make(map[string]bool)
	defer func() { p.typeParams = nil }()
	if tps := fields["typeParams"]; tps != nil {
		tps = resolve(tps)
		if tps.Kind != yaml.SequenceNode {
			return nil, p.errorAt(tps, "typeParams of %s must be an array of names", name)
		}
		for _, tp := range tps.Content {
			tpName, err := p.parseName(tp)
			if err != nil {
				return nil, err
			}
			p.typeParams[tpName] = true
			def.TypeParams = append(def.TypeParams, typesystem.TVar{Name: tpName})
		}
	}

	if params := fields["params"]; params != nil {
		params = resolve(params)
		if params.Kind != yaml.SequenceNode {
			return nil, p.errorAt(params, "params of %s must be an array", name)
		}
		for _, pn := range params.Content {
			param, err := p.parseParam(pn)
			if err != nil {
				return nil, err
			}
			def.Params = append(def.Params, param)
		}
	}

	if ret := fields["returns"]; ret != nil {
		if def.ReturnType, err = p.parseType(ret); err != nil {
			return nil, err
		}
	}

	if def.Body, err = p.parseExpression(fields["body"]); err != nil {
		return nil, err
	}
	return def, nil
}

// parseParam reads {name, type}; a bare name is an untyped parameter.
func (p *Parser) parseParam(node *yaml.Node) (ast.Param, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		name, err := p.parseName(node)
		return ast.Param{Name: name}, err
	}
	if node.Kind != yaml.MappingNode {
		return ast.Param{}, p.errorAt(node, "parameter must be a name or {\"name\", \"type\"}")
	}
	var param ast.Param
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			name, err := p.parseName(value)
			if err != nil {
				return ast.Param{}, err
			}
			param.Name = name
		case "type":
			t, err := p.parseType(value)
			if err != nil {
				return ast.Param{}, err
			}
			param.Type = t
		default:
			return ast.Param{}, p.errorAt(key, "unknown parameter field %q", key.Value)
		}
	}
	if param.Name == "" {
		return ast.Param{}, p.errorAt(node, "parameter needs a \"name\"")
	}
	return param, nil
}
