package evaluator

import (
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	BOOLEAN_OBJ  = "BOOLEAN"
	LIST_OBJ     = "LIST"
	DICT_OBJ     = "DICT"
	NIL_OBJ      = "NIL"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
)

// Object is a runtime value. The set of implementations is closed.
type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeType() typesystem.Type // Returns the type system representation
}

// Shared immutable values.
var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Number
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType             { return NUMBER_OBJ }
func (n *Number) Inspect() string              { return formatNumber(n.Value) }
func (n *Number) RuntimeType() typesystem.Type { return typesystem.Number }

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType             { return STRING_OBJ }
func (s *String) Inspect() string              { return s.Value }
func (s *String) RuntimeType() typesystem.Type { return typesystem.String }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType             { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string              { return formatBool(b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type { return typesystem.Boolean }

// Nil is the value of loops, empty sequences and absent dictionary keys.
type Nil struct{}

func (n *Nil) Type() ObjectType             { return NIL_OBJ }
func (n *Nil) Inspect() string              { return "nil" }
func (n *Nil) RuntimeType() typesystem.Type { return typesystem.Void }

// List
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string  { return formatList(l) }

// RuntimeType takes the element type from the first element; an empty
// list has an unknown element type.
func (l *List) RuntimeType() typesystem.Type {
	if len(l.Elements) == 0 {
		return typesystem.TList{Elem: typesystem.TVar{Name: "T"}}
	}
	return typesystem.TList{Elem: l.Elements[0].RuntimeType()}
}

// Function is a user-defined function used as a value.
type Function struct {
	Def *ast.FunctionDef
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "<function " + f.Def.Name + ">" }
func (f *Function) RuntimeType() typesystem.Type {
	if !f.Def.IsTyped() {
		return typesystem.TCon{Name: "Function"}
	}
	return f.Def.Signature()
}

// BuiltinFunction implements a builtin. The calling environment is
// available as e.CurrentEnv.
type BuiltinFunction func(e *Evaluator, args ...Object) (Object, error)

type Builtin struct {
	Fn         BuiltinFunction
	Name       string            // Name of the builtin
	TypeInfo   typesystem.TFunc  // Declared signature
	TypeParams []typesystem.TVar // Generic parameters of TypeInfo
}

func (b *Builtin) Type() ObjectType             { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string              { return "<builtin " + b.Name + ">" }
func (b *Builtin) RuntimeType() typesystem.Type { return b.TypeInfo }

// kindName is the user-facing name of an object's kind.
func kindName(obj Object) string {
	switch obj.(type) {
	case *Number:
		return "Number"
	case *String:
		return "String"
	case *Boolean:
		return "Boolean"
	case *List:
		return "List"
	case *Dict:
		return "Dict"
	case *Nil:
		return "Nil"
	case *Function, *Builtin:
		return "Function"
	default:
		return string(obj.Type())
	}
}

// isTruthy decides conditions: false, 0, NaN, "" and nil are false.
func isTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Number:
		return o.Value != 0 && o.Value == o.Value
	case *String:
		return o.Value != ""
	case *Nil:
		return false
	default:
		return true
	}
}

// objectsEqual is structural equality. Dictionaries compare as sets of
// entries regardless of insertion order.
func objectsEqual(a, b Object) bool {
	switch a := a.(type) {
	case *Number:
		b, ok := b.(*Number)
		return ok && a.Value == b.Value
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *Boolean:
		b, ok := b.(*Boolean)
		return ok && a.Value == b.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *List:
		b, ok := b.(*List)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !objectsEqual(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, pair := range a.Pairs() {
			other, found := b.Get(pair.Key)
			if !found || !objectsEqual(pair.Value, other) {
				return false
			}
		}
		return true
	case *Function:
		b, ok := b.(*Function)
		return ok && a.Def == b.Def
	case *Builtin:
		b, ok := b.(*Builtin)
		return ok && a.Name == b.Name
	default:
		return false
	}
}
