package symbols

import (
	"maps"
	"sort"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		funcs:     make(map[string]Symbol),
		scopeType: ScopeGlobal, // Default to global
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsFunctionScope returns true if this symbol table corresponds to a function scope.
func (s *SymbolTable) IsFunctionScope() bool {
	return s.scopeType == ScopeFunction
}

// IsGlobalScope returns true if this symbol table is the root (global) scope.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

// Define binds a variable in the current scope, replacing any earlier type.
func (s *SymbolTable) Define(name string, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol}
}

// DefineFunction registers a user function signature.
func (s *SymbolTable) DefineFunction(def *ast.FunctionDef) {
	s.funcs[def.Name] = Symbol{
		Name:       def.Name,
		Type:       def.Signature(),
		Kind:       FunctionSymbol,
		TypeParams: def.TypeParams,
		Def:        def,
	}
}

// DefineBuiltin registers a native function signature.
func (s *SymbolTable) DefineBuiltin(name string, t typesystem.TFunc, typeParams ...string) {
	tps := make([]typesystem.TVar, len(typeParams))
	for i, n := range typeParams {
		tps[i] = typesystem.TVar{Name: n}
	}
	s.funcs[name] = Symbol{Name: name, Type: t, Kind: FunctionSymbol, TypeParams: tps, IsBuiltin: true}
}

// SetFunction stores a function symbol as is. Used to restore a
// signature after a failed redefinition.
func (s *SymbolTable) SetFunction(sym Symbol) {
	s.funcs[sym.Name] = sym
}

// RemoveFunction drops a function from the current scope only.
func (s *SymbolTable) RemoveFunction(name string) {
	delete(s.funcs, name)
}

// LocalFunction returns a function defined in the current scope only.
func (s *SymbolTable) LocalFunction(name string) (Symbol, bool) {
	sym, ok := s.funcs[name]
	return sym, ok
}

// FindVariable looks a variable up through the enclosing scopes, stopping
// at a function boundary: a function body never sees its caller's
// variables or the global ones.
func (s *SymbolTable) FindVariable(name string) (Symbol, bool) {
	if sym, ok := s.store[name]; ok {
		return sym, true
	}
	if s.scopeType == ScopeFunction || s.outer == nil {
		return Symbol{}, false
	}
	return s.outer.FindVariable(name)
}

// FindFunction looks a function up through every enclosing scope.
func (s *SymbolTable) FindFunction(name string) (Symbol, bool) {
	if sym, ok := s.funcs[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.FindFunction(name)
	}
	return Symbol{}, false
}

// Find resolves a name the way a variable reference does: variables first,
// then functions.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	if sym, ok := s.FindVariable(name); ok {
		return sym, true
	}
	return s.FindFunction(name)
}

func (s *SymbolTable) IsDefined(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// IsDefinedLocally checks if a variable is defined in the current scope (shallow check)
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// Variables returns the names of the variables of this scope, sorted.
func (s *SymbolTable) Variables() []string {
	return sortedKeys(s.store)
}

// Functions returns the names of every visible function, sorted.
func (s *SymbolTable) Functions() []string {
	all := make(map[string]Symbol)
	for st := s; st != nil; st = st.outer {
		for name, sym := range st.funcs {
			if _, shadowed := all[name]; !shadowed {
				all[name] = sym
			}
		}
	}
	return sortedKeys(all)
}

func sortedKeys(m map[string]Symbol) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot holds the variables and functions of one scope at a point in
// time.
type Snapshot struct {
	vars  map[string]Symbol
	funcs map[string]Symbol
}

// Snapshot copies the bindings of the current scope.
func (s *SymbolTable) Snapshot() Snapshot {
	return Snapshot{vars: maps.Clone(s.store), funcs: maps.Clone(s.funcs)}
}

// Restore resets the current scope to snap, dropping names added since.
func (s *SymbolTable) Restore(snap Snapshot) {
	s.store = maps.Clone(snap.vars)
	s.funcs = maps.Clone(snap.funcs)
}

// RestoreVariable resets one variable to its binding in snap, or removes
// it when snap did not have it.
func (s *SymbolTable) RestoreVariable(snap Snapshot, name string) {
	if sym, ok := snap.vars[name]; ok {
		s.store[name] = sym
		return
	}
	delete(s.store, name)
}
