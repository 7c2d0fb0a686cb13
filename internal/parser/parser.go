package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
)

// opParseFn translates the arguments of one opcode array. node is the
// whole array, args are its elements after the opcode.
type opParseFn func(node *yaml.Node, args []*yaml.Node) (ast.Expression, error)

// Parser translates program documents into ast nodes. Documents are
// nested arrays with an opcode head, e.g. ["+", 1, ["ref", "x"]], decoded
// with yaml.v3 so JSON and YAML sources are both accepted.
type Parser struct {
	File string

	ops map[string]opParseFn

	// type parameters of the function being translated
	typeParams map[string]bool
}

func New(file string) *Parser {
	p := &Parser{File: file}
	p.ops = make(map[string]opParseFn)
	for _, op := range binaryOperators {
		p.registerOp(op, p.parseBinary(op))
	}
	p.registerOp(OpSeq, p.parseSeq)
	p.registerOp(OpIf, p.parseIf)
	p.registerOp(OpWhile, p.parseWhile)
	p.registerOp(OpAssign, p.parseAssign)
	p.registerOp(OpRef, p.parseRef)
	p.registerOp(OpCall, p.parseCall)
	p.registerOp(OpList, p.parseList)
	p.registerOp(OpDict, p.parseDict)
	return p
}

func (p *Parser) registerOp(op string, fn opParseFn) {
	p.ops[op] = fn
}

// ParseProgram translates a program document:
//
//	{"functions": [...], "body": expr}
//	{"functions": [...], "expressions": [expr, ...]}
func ParseProgram(data []byte, file string) (*ast.Program, error) {
	return New(file).ParseProgram(data)
}

func (p *Parser) ParseProgram(data []byte) (*ast.Program, error) {
	root, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, p.errorAt(root, "program must be an object with \"functions\" and \"body\"")
	}

	program := &ast.Program{File: p.File}
	var body, expressions *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "functions":
			defs, err := p.parseFunctions(value)
			if err != nil {
				return nil, err
			}
			program.Defs = defs
		case "body":
			body = value
		case "expressions":
			expressions = value
		default:
			return nil, p.errorAt(key, "unknown program field %q", key.Value)
		}
	}

	switch {
	case body != nil && expressions != nil:
		return nil, p.errorAt(root, "program has both \"body\" and \"expressions\"")
	case body != nil:
		expr, err := p.parseExpression(body)
		if err != nil {
			return nil, err
		}
		program.Expressions = []ast.Expression{expr}
	case expressions != nil:
		node := resolve(expressions)
		if node.Kind != yaml.SequenceNode {
			return nil, p.errorAt(node, "\"expressions\" must be an array")
		}
		exprs, err := p.parseExpressionList(node.Content)
		if err != nil {
			return nil, err
		}
		program.Expressions = exprs
	}
	return program, nil
}

// ParseExpression translates a document holding a single expression.
func (p *Parser) ParseExpression(data []byte) (ast.Expression, error) {
	root, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return p.parseExpression(root)
}

// ParseEntry translates one interactive entry: an object or an untyped
// [name, [params], body] array is a function definition, anything else an
// expression.
func (p *Parser) ParseEntry(data []byte) (*ast.FunctionDef, ast.Expression, error) {
	root, err := p.decode(data)
	if err != nil {
		return nil, nil, err
	}
	if root.Kind == yaml.MappingNode || p.isUntypedFunction(root) {
		def, err := p.parseFunction(root)
		return def, nil, err
	}
	expr, err := p.parseExpression(root)
	return nil, expr, err
}

// isUntypedFunction reports whether node has the shape [name, [...], body]
// with a name that is not an opcode.
func (p *Parser) isUntypedFunction(node *yaml.Node) bool {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 3 {
		return false
	}
	head := resolve(node.Content[0])
	if head.Kind != yaml.ScalarNode || head.ShortTag() != "!!str" {
		return false
	}
	if _, isOp := p.ops[head.Value]; isOp {
		return false
	}
	return resolve(node.Content[1]).Kind == yaml.SequenceNode
}

func (p *Parser) decode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(normalizeJSON(data), &doc); err != nil {
		return nil, p.newError("%v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, p.newError("empty document")
	}
	return resolve(doc.Content[0]), nil
}

// normalizeJSON replaces tabs in JSON documents with spaces: YAML rejects
// tab indentation and JSON strings cannot hold raw tabs.
func normalizeJSON(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return data
	}
	return bytes.ReplaceAll(data, []byte("\t"), []byte(" "))
}

// resolve follows YAML aliases to their anchored node.
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func (p *Parser) newError(format string, args ...interface{}) *diagnostics.DiagnosticError {
	err := diagnostics.NewError(diagnostics.PhaseParse, diagnostics.ErrInvalidProgram, format, args...)
	err.File = p.File
	return err
}

// errorAt reports an error with the node's line and column.
func (p *Parser) errorAt(node *yaml.Node, format string, args ...interface{}) *diagnostics.DiagnosticError {
	pos := fmt.Sprintf("%d:%d: ", node.Line, node.Column)
	return p.newError(pos+format, args...)
}
