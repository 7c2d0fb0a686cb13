package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/minilang/internal/ast"
)

// Opcodes heading an expression array.
const (
	OpSeq    = "seq"
	OpIf     = "if"
	OpWhile  = "while"
	OpAssign = "<-"
	OpRef    = "ref"
	OpCall   = "call"
	OpList   = "list"
	OpDict   = "dict"
)

var binaryOperators = []string{"+", "-", "*", "/", "%", "<", ">", "<=", ">=", "==", "!="}

// parseExpression translates one expression node. Scalars are literals;
// arrays start with an opcode.
func (p *Parser) parseExpression(node *yaml.Node) (ast.Expression, error) {
	node = resolve(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return p.parseLiteral(node)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, p.errorAt(node, "empty expression array")
		}
		head := resolve(node.Content[0])
		if head.Kind != yaml.ScalarNode || head.ShortTag() != "!!str" {
			return nil, p.errorAt(head, "expression array must start with an operator name")
		}
		fn, ok := p.ops[head.Value]
		if !ok {
			return nil, p.errorAt(head, "unknown operator %q", head.Value)
		}
		return fn(node, node.Content[1:])
	default:
		return nil, p.errorAt(node, "expected an expression, got an object")
	}
}

func (p *Parser) parseExpressionList(nodes []*yaml.Node) ([]ast.Expression, error) {
	exprs := make([]ast.Expression, len(nodes))
	for i, n := range nodes {
		expr, err := p.parseExpression(n)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

func (p *Parser) parseLiteral(node *yaml.Node) (ast.Expression, error) {
	switch node.ShortTag() {
	case "!!int", "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return nil, p.errorAt(node, "invalid number %q", node.Value)
		}
		return &ast.NumberLiteral{Value: v}, nil
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return nil, p.errorAt(node, "invalid boolean %q", node.Value)
		}
		return &ast.BooleanLiteral{Value: v}, nil
	case "!!str":
		return &ast.StringLiteral{Value: node.Value}, nil
	default:
		return nil, p.errorAt(node, "unsupported literal %q", node.Value)
	}
}

// expectArgs checks the number of operands after the opcode.
func (p *Parser) expectArgs(node *yaml.Node, args []*yaml.Node, n int) error {
	if len(args) != n {
		return p.errorAt(node, "%q expects %d operands, got %d", resolve(node.Content[0]).Value, n, len(args))
	}
	return nil
}

// parseName reads a scalar naming a variable or function.
func (p *Parser) parseName(node *yaml.Node) (string, error) {
	node = resolve(node)
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" || node.Value == "" {
		return "", p.errorAt(node, "expected a name")
	}
	return node.Value, nil
}

func (p *Parser) parseBinary(op string) opParseFn {
	return func(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
		if err := p.expectArgs(node, args, 2); err != nil {
			return nil, err
		}
		left, err := p.parseExpression(args[0])
		if err != nil {
			return nil, err
		}
		right, err := p.parseExpression(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Operator: op, Left: left, Right: right}, nil
	}
}

func (p *Parser) parseSeq(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	bodies, err := p.parseExpressionList(args)
	if err != nil {
		return nil, err
	}
	return &ast.Seq{Bodies: bodies}, nil
}

func (p *Parser) parseIf(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	if err := p.expectArgs(node, args, 3); err != nil {
		return nil, err
	}
	parts, err := p.parseExpressionList(args)
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: parts[0], Then: parts[1], Else: parts[2]}, nil
}

func (p *Parser) parseWhile(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	if err := p.expectArgs(node, args, 2); err != nil {
		return nil, err
	}
	parts, err := p.parseExpressionList(args)
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: parts[0], Body: parts[1]}, nil
}

func (p *Parser) parseAssign(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	if err := p.expectArgs(node, args, 2); err != nil {
		return nil, err
	}
	name, err := p.parseName(args[0])
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression(args[1])
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: name, Value: value}, nil
}

func (p *Parser) parseRef(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	if err := p.expectArgs(node, args, 1); err != nil {
		return nil, err
	}
	name, err := p.parseName(args[0])
	if err != nil {
		return nil, err
	}
	return &ast.VarRef{Name: name}, nil
}

func (p *Parser) parseCall(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, p.errorAt(node, "\"call\" needs a function name")
	}
	name, err := p.parseName(args[0])
	if err != nil {
		return nil, err
	}
	callArgs, err := p.parseExpressionList(args[1:])
	if err != nil {
		return nil, err
	}
	return &ast.Call{Name: name, Args: callArgs}, nil
}

func (p *Parser) parseList(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	elems, err := p.parseExpressionList(args)
	if err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Elements: elems}, nil
}

// parseDict reads ["dict", [k1, v1], [k2, v2], ...].
func (p *Parser) parseDict(node *yaml.Node, args []*yaml.Node) (ast.Expression, error) {
	entries := make([]ast.DictEntry, len(args))
	for i, arg := range args {
		pair := resolve(arg)
		if pair.Kind != yaml.SequenceNode || len(pair.Content) != 2 {
			return nil, p.errorAt(pair, "dictionary entry must be a [key, value] pair")
		}
		key, err := p.parseExpression(pair.Content[0])
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpression(pair.Content[1])
		if err != nil {
			return nil, err
		}
		entries[i] = ast.DictEntry{Key: key, Value: value}
	}
	return &ast.DictLiteral{Entries: entries}, nil
}
