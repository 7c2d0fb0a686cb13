package ast

import (
	"github.com/funvibe/minilang/internal/typesystem"
)

// Node is the base interface for all AST nodes.
type Node interface {
	Accept(v Visitor)
}

// Expression is a Node that produces a value.
// The set of expressions is closed; see Visitor for the full list.
type Expression interface {
	Node
	expressionNode()
}

// Visitor has one method per node kind. Adding a node kind means adding a
// method here, so every visitor stops compiling until it handles it.
type Visitor interface {
	VisitProgram(p *Program)
	VisitFunctionDef(fd *FunctionDef)
	VisitAssignment(a *Assignment)
	VisitBinaryOp(b *BinaryOp)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(s *StringLiteral)
	VisitBooleanLiteral(b *BooleanLiteral)
	VisitVarRef(r *VarRef)
	VisitCall(c *Call)
	VisitIf(i *If)
	VisitWhile(w *While)
	VisitSeq(s *Seq)
	VisitListLiteral(l *ListLiteral)
	VisitDictLiteral(d *DictLiteral)
}

// Program is the root node: function definitions plus top-level
// expressions run in order. The value of the last expression is the
// program's result.
type Program struct {
	File        string // Source file path, if loaded from disk
	Defs        []*FunctionDef
	Expressions []Expression
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }

// NewProgram builds a program from definitions and top-level expressions.
func NewProgram(defs []*FunctionDef, exprs ...Expression) *Program {
	return &Program{Defs: defs, Expressions: exprs}
}

// Param is a declared function parameter.
// Type is nil for untyped programs; such programs can only be evaluated.
type Param struct {
	Name string
	Type typesystem.Type
}

// FunctionDef represents a function definition.
// fun name<T, U>(params) returnType = body
type FunctionDef struct {
	Name       string
	Params     []Param
	ReturnType typesystem.Type
	Body       Expression
	TypeParams []typesystem.TVar // generic parameters the signature is polymorphic over
}

func (fd *FunctionDef) Accept(v Visitor) { v.VisitFunctionDef(fd) }

// Signature returns the declared function type.
func (fd *FunctionDef) Signature() typesystem.TFunc {
	params := make([]typesystem.Type, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.Type
	}
	return typesystem.TFunc{Params: params, ReturnType: fd.ReturnType}
}

// ParamNames returns the formal parameter names in order.
func (fd *FunctionDef) ParamNames() []string {
	names := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		names[i] = p.Name
	}
	return names
}

// IsTyped reports whether every parameter and the return type are declared.
func (fd *FunctionDef) IsTyped() bool {
	if fd.ReturnType == nil {
		return false
	}
	for _, p := range fd.Params {
		if p.Type == nil {
			return false
		}
	}
	return true
}
