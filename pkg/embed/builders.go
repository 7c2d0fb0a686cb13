package minilang

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

// Program building blocks for hosts that construct code directly instead
// of passing source text.
type (
	Expression  = ast.Expression
	FunctionDef = ast.FunctionDef
	Param       = ast.Param
	Type        = typesystem.Type
)

// Declared types.
var (
	Number  Type = typesystem.Number
	String  Type = typesystem.String
	Boolean Type = typesystem.Boolean
	Void    Type = typesystem.Void
)

func ListOf(elem Type) Type       { return typesystem.TList{Elem: elem} }
func DictOf(key, value Type) Type { return typesystem.TDict{Key: key, Value: value} }
func TypeVar(name string) Type    { return typesystem.TVar{Name: name} }

func Fun(ret Type, params ...Type) Type {
	return typesystem.TFunc{Params: params, ReturnType: ret}
}

var (
	Num    = ast.Num
	Str    = ast.Str
	Bool   = ast.Bool
	Ref    = ast.Ref
	Seq    = ast.Seqn
	List   = ast.List
	Assign = ast.Assign
	Bin    = ast.Bin
	Call   = ast.CallFn
	If     = ast.IfElse
	While  = ast.Loop
	P      = ast.P
	Def    = ast.Def
)

// Dict builds a dictionary literal from alternating keys and values.
func Dict(kv ...Expression) Expression {
	entries := make([]ast.DictEntry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, ast.Entry(kv[i], kv[i+1]))
	}
	return ast.Dict(entries...)
}
