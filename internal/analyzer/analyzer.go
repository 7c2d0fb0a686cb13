package analyzer

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// Checker verifies programs against their declared types.
//
// Functions are never inferred: a body is checked against its annotation.
// Calls to generic functions instantiate the callee's signature with fresh
// variables and match it against the argument types. Checking stops at
// the first violation.
type Checker struct {
	symbolTable *symbols.SymbolTable // global scope; prelude is its parent
	supply      *typesystem.TypeVarSupply
	File        string                             // attached to diagnostics
	TypeMap     map[ast.Expression]typesystem.Type // type of every checked node
}

// New creates a Checker with a fresh global scope. A nil supply means
// typesystem.DefaultSupply.
func New(supply *typesystem.TypeVarSupply) *Checker {
	if supply == nil {
		supply = typesystem.DefaultSupply
	}
	return &Checker{
		symbolTable: symbols.NewSymbolTable(),
		supply:      supply,
		TypeMap:     make(map[ast.Expression]typesystem.Type),
	}
}

// SymbolTable exposes the global scope (variables and user functions).
func (c *Checker) SymbolTable() *symbols.SymbolTable {
	return c.symbolTable
}

// CheckProgram checks a whole program and returns the type of its last
// top-level expression (Void when there is none).
//
// Order: builtins (the prelude), then every user signature, then every
// body, then the top-level expressions. Signatures are all visible before
// any body is checked, so functions may refer to each other in any order.
func CheckProgram(program *ast.Program) (typesystem.Type, error) {
	return New(nil).CheckProgram(program)
}

func (c *Checker) CheckProgram(program *ast.Program) (typesystem.Type, error) {
	if program.File != "" {
		c.File = program.File
	}
	for _, def := range program.Defs {
		if err := c.declare(def); err != nil {
			return nil, err
		}
	}
	for _, def := range program.Defs {
		if err := c.CheckFunction(def); err != nil {
			return nil, err
		}
	}
	var result typesystem.Type = typesystem.Void
	for _, expr := range program.Expressions {
		t, err := c.CheckExpression(expr)
		if err != nil {
			return nil, err
		}
		result = t
	}
	return result, nil
}

// declare registers the signature of def in the global scope.
func (c *Checker) declare(def *ast.FunctionDef) error {
	if !def.IsTyped() {
		return c.fileErr(diagnostics.NewError(diagnostics.PhaseCheck, diagnostics.ErrInvalidProgram,
			"function %s has no type annotations and cannot be checked", def.Name))
	}
	c.symbolTable.DefineFunction(def)
	return nil
}

// CheckFunction checks def's body against its declared return type.
// The body sees its parameters and every function, but no variables
// from the global scope. The signature must already be declared.
func (c *Checker) CheckFunction(def *ast.FunctionDef) error {
	scope := symbols.NewEnclosedSymbolTable(c.symbolTable, symbols.ScopeFunction)
	for _, p := range def.Params {
		scope.Define(p.Name, p.Type)
	}
	bodyType, err := c.infer(def.Body, scope)
	if err != nil {
		return c.fileErr(err)
	}
	if !typesystem.Equal(bodyType, def.ReturnType) {
		return c.fileErr(errorAt(def.Body, diagnostics.ErrTypeMismatch,
			"return type mismatch in function %s: declared %s, body has type %s",
			def.Name, def.ReturnType, bodyType))
	}
	return nil
}

// DefineFunction adds one function to an existing session (REPL, embed).
// On failure the previous definition of the same name, if any, is restored.
func (c *Checker) DefineFunction(def *ast.FunctionDef) error {
	prev, existed := c.symbolTable.LocalFunction(def.Name)
	if err := c.declare(def); err != nil {
		return err
	}
	if err := c.CheckFunction(def); err != nil {
		if existed {
			c.symbolTable.SetFunction(prev)
		} else {
			c.symbolTable.RemoveFunction(def.Name)
		}
		return err
	}
	return nil
}

// CheckExpression checks one top-level expression in the global scope.
// Assignments it makes stay visible to later calls.
func (c *Checker) CheckExpression(expr ast.Expression) (typesystem.Type, error) {
	t, err := c.infer(expr, c.symbolTable)
	if err != nil {
		return nil, c.fileErr(err)
	}
	return t, nil
}

func (c *Checker) fileErr(err error) error {
	if de, ok := err.(*diagnostics.DiagnosticError); ok && de.File == "" {
		de.File = c.File
	}
	return err
}
