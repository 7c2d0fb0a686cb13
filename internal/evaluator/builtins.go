package evaluator

import (
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/symbols"
)

// builtinImpls maps builtin names to implementations. Signatures come
// from the symbols prelude, so the checker and evaluator agree on them.
var builtinImpls = map[string]BuiltinFunction{
	config.PrintFuncName:       builtinPrint,
	config.InputFuncName:       builtinInput,
	config.AddFuncName:         builtinAdd,
	config.MulFuncName:         builtinMul,
	config.LenFuncName:         builtinLen,
	config.MapFuncName:         builtinMap,
	config.FilterFuncName:      builtinFilter,
	config.ReduceFuncName:      builtinReduce,
	config.ToUpperCaseFuncName: builtinToUpperCase,
	config.SplitFuncName:       builtinSplit,
	config.JoinFuncName:        builtinJoin,
	config.KeysFuncName:        builtinKeys,
	config.ValuesFuncName:      builtinValues,
	config.GetFuncName:         builtinGet,
	config.HasKeyFuncName:      builtinHasKey,
	config.MergeFuncName:       builtinMerge,
	config.AndFuncName:         builtinAnd,
	config.OrFuncName:          builtinOr,
	config.NotFuncName:         builtinNot,
}

// Builtins returns a fresh table of builtin function objects.
func Builtins() map[string]*Builtin {
	prelude := symbols.GetPrelude()
	out := make(map[string]*Builtin, len(builtinImpls))
	for name, fn := range builtinImpls {
		b := &Builtin{Name: name, Fn: fn}
		if sym, ok := prelude.FindFunction(name); ok {
			b.TypeInfo, _ = sym.Signature()
			b.TypeParams = sym.TypeParams
		}
		out[name] = b
	}
	return out
}

func checkArity(name string, args []Object, n int) error {
	if len(args) != n {
		return runtimeError(diagnostics.ErrArityMismatch, "%s expects %s, got %d", name, plural(n, "argument"), len(args))
	}
	return nil
}

func kindError(name string, want string, got Object) error {
	return runtimeError(diagnostics.ErrUnsupportedOperandKind, "%s expects %s, got %s", name, want, kindName(got))
}

func numberArg(name string, obj Object) (float64, error) {
	n, ok := obj.(*Number)
	if !ok {
		return 0, kindError(name, "a Number", obj)
	}
	return n.Value, nil
}

func stringArg(name string, obj Object) (string, error) {
	s, ok := obj.(*String)
	if !ok {
		return "", kindError(name, "a String", obj)
	}
	return s.Value, nil
}

func boolArg(name string, obj Object) (bool, error) {
	b, ok := obj.(*Boolean)
	if !ok {
		return false, kindError(name, "a Boolean", obj)
	}
	return b.Value, nil
}

func listArg(name string, obj Object) (*List, error) {
	l, ok := obj.(*List)
	if !ok {
		return nil, kindError(name, "a List", obj)
	}
	return l, nil
}

func dictArg(name string, obj Object) (*Dict, error) {
	d, ok := obj.(*Dict)
	if !ok {
		return nil, kindError(name, "a Dict", obj)
	}
	return d, nil
}

func funcArg(name string, obj Object) (Object, error) {
	if !isCallable(obj) {
		return nil, kindError(name, "a function", obj)
	}
	return obj, nil
}
