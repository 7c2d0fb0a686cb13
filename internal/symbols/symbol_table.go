package symbols

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude  ScopeType = iota // Built-in functions
	ScopeGlobal                    // User code top-level
	ScopeFunction                  // One function body; sees only its parameters
)

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
)

// Symbol is a named entry of the symbol table.
// For functions Type is always a typesystem.TFunc.
type Symbol struct {
	Name       string
	Type       typesystem.Type
	Kind       SymbolKind
	TypeParams []typesystem.TVar // generic parameters of a function signature
	Def        *ast.FunctionDef  // user definition, nil for builtins
	IsBuiltin  bool
}

// Signature returns the function type of a function symbol.
func (s Symbol) Signature() (typesystem.TFunc, bool) {
	fn, ok := s.Type.(typesystem.TFunc)
	return fn, ok && s.Kind == FunctionSymbol
}

// IsGeneric reports whether the symbol needs instantiation before use.
func (s Symbol) IsGeneric() bool {
	return len(s.TypeParams) > 0
}

// SymbolTable is one scope of names. Variables and functions live in
// separate namespaces so an assignment never hides a function definition.
type SymbolTable struct {
	store     map[string]Symbol // variables
	funcs     map[string]Symbol // functions
	outer     *SymbolTable
	scopeType ScopeType
}
