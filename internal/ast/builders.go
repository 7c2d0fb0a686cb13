package ast

import "github.com/funvibe/minilang/internal/typesystem"

// Shorthand constructors for building programs in Go code.

func Num(v float64) *NumberLiteral   { return &NumberLiteral{Value: v} }
func Str(v string) *StringLiteral    { return &StringLiteral{Value: v} }
func Bool(v bool) *BooleanLiteral    { return &BooleanLiteral{Value: v} }
func Ref(name string) *VarRef        { return &VarRef{Name: name} }
func Seqn(bodies ...Expression) *Seq { return &Seq{Bodies: bodies} }

func List(elems ...Expression) *ListLiteral {
	return &ListLiteral{Elements: elems}
}

func Assign(name string, value Expression) *Assignment {
	return &Assignment{Name: name, Value: value}
}

func Bin(op string, left, right Expression) *BinaryOp {
	return &BinaryOp{Operator: op, Left: left, Right: right}
}

func CallFn(name string, args ...Expression) *Call {
	return &Call{Name: name, Args: args}
}

func IfElse(cond, then, els Expression) *If {
	return &If{Cond: cond, Then: then, Else: els}
}

func Loop(cond, body Expression) *While {
	return &While{Cond: cond, Body: body}
}

func Dict(entries ...DictEntry) *DictLiteral {
	return &DictLiteral{Entries: entries}
}

func Entry(key, value Expression) DictEntry {
	return DictEntry{Key: key, Value: value}
}

// P declares a typed parameter.
func P(name string, t typesystem.Type) Param {
	return Param{Name: name, Type: t}
}

// Def declares a function. Type parameters, if any, are given by name.
func Def(name string, params []Param, ret typesystem.Type, body Expression, typeParams ...string) *FunctionDef {
	tps := make([]typesystem.TVar, len(typeParams))
	for i, n := range typeParams {
		tps[i] = typesystem.TVar{Name: n}
	}
	return &FunctionDef{Name: name, Params: params, ReturnType: ret, Body: body, TypeParams: tps}
}
