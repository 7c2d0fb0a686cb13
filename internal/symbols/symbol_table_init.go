package symbols

import (
	"sync"

	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/typesystem"
)

// Singleton prelude table containing all built-in symbols
var (
	preludeTable *SymbolTable
	preludeOnce  sync.Once
)

// GetPrelude returns the singleton prelude SymbolTable containing the
// signatures of every builtin function. It is never written after
// initialization, so sharing it across sessions is safe.
func GetPrelude() *SymbolTable {
	preludeOnce.Do(func() {
		preludeTable = NewEmptySymbolTable()
		preludeTable.scopeType = ScopePrelude
		preludeTable.InitBuiltins()
	})
	return preludeTable
}

// NewSymbolTable creates a new global symbol table.
// It inherits from Prelude.
func NewSymbolTable() *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = GetPrelude()
	st.scopeType = ScopeGlobal
	return st
}

// ResetPrelude resets the prelude singleton (for testing only).
func ResetPrelude() {
	preludeOnce = sync.Once{}
	preludeTable = nil
}

func (st *SymbolTable) InitBuiltins() {
	var (
		T = typesystem.TVar{Name: "T"}
		U = typesystem.TVar{Name: "U"}
		K = typesystem.TVar{Name: "K"}
		V = typesystem.TVar{Name: "V"}

		num  = typesystem.Number
		str  = typesystem.String
		boo  = typesystem.Boolean
		dict = typesystem.TDict{Key: K, Value: V}
	)
	fn := func(ret typesystem.Type, params ...typesystem.Type) typesystem.TFunc {
		return typesystem.TFunc{Params: params, ReturnType: ret}
	}

	// IO
	st.DefineBuiltin(config.PrintFuncName, fn(T, T), "T")
	st.DefineBuiltin(config.InputFuncName, fn(str))

	// Arithmetic: add(...Number) -> Number
	variadicNum := typesystem.TFunc{Params: []typesystem.Type{num}, ReturnType: num, IsVariadic: true}
	st.DefineBuiltin(config.AddFuncName, variadicNum)
	st.DefineBuiltin(config.MulFuncName, variadicNum)

	st.DefineBuiltin(config.LenFuncName, fn(num, T), "T")

	// Higher-order list functions
	st.DefineBuiltin(config.MapFuncName,
		fn(typesystem.TList{Elem: U}, typesystem.TList{Elem: T}, fn(U, T)), "T", "U")
	st.DefineBuiltin(config.FilterFuncName,
		fn(typesystem.TList{Elem: T}, typesystem.TList{Elem: T}, fn(boo, T)), "T")
	st.DefineBuiltin(config.ReduceFuncName,
		fn(U, typesystem.TList{Elem: T}, fn(U, U, T), U), "T", "U")

	// Strings
	st.DefineBuiltin(config.ToUpperCaseFuncName, fn(str, str))
	st.DefineBuiltin(config.SplitFuncName, fn(typesystem.TList{Elem: str}, str, str))
	st.DefineBuiltin(config.JoinFuncName, fn(str, typesystem.TList{Elem: str}, str))

	// Dictionaries
	st.DefineBuiltin(config.KeysFuncName, fn(typesystem.TList{Elem: K}, dict), "K", "V")
	st.DefineBuiltin(config.ValuesFuncName, fn(typesystem.TList{Elem: V}, dict), "K", "V")
	st.DefineBuiltin(config.GetFuncName, fn(V, dict, K), "K", "V")
	st.DefineBuiltin(config.HasKeyFuncName, fn(boo, dict, K), "K", "V")
	st.DefineBuiltin(config.MergeFuncName, fn(dict, dict, dict), "K", "V")

	// Booleans
	st.DefineBuiltin(config.AndFuncName, fn(boo, boo, boo))
	st.DefineBuiltin(config.OrFuncName, fn(boo, boo, boo))
	st.DefineBuiltin(config.NotFuncName, fn(boo, boo))
}
