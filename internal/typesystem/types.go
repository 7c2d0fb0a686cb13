package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/minilang/internal/config"
)

// Type is the interface for all types in our system.
// The set of implementations is closed: TCon, TFunc, TList, TDict, TVar.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
	typeNode()
}

// TVar represents a type variable (e.g. 'T', 'U', 'T3').
// Two variables are the same variable iff their names match.
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }
func (t TVar) typeNode()      {}

func (t TVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a primitive type constant (Number, String, Boolean, Void).
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) typeNode()                 {}
func (t TCon) Apply(s Subst) Type        { return t } // Constants don't change
func (t TCon) FreeTypeVariables() []TVar { return nil }

// Primitive types
var (
	Number  = TCon{Name: config.NumberTypeName}
	String  = TCon{Name: config.StringTypeName}
	Boolean = TCon{Name: config.BooleanTypeName}
	// Void is the type of loops and empty sequences.
	Void = TCon{Name: config.VoidTypeName}
)

// TFunc represents a function type (e.g. (Number, Number) -> Boolean).
// When IsVariadic is set the last parameter may repeat zero or more times.
type TFunc struct {
	Params     []Type
	ReturnType Type
	IsVariadic bool
}

func (t TFunc) typeNode() {}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = typeString(p)
	}
	if t.IsVariadic {
		if len(params) > 0 {
			params[len(params)-1] = "..." + params[len(params)-1]
		} else {
			params = append(params, "...")
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), typeString(t.ReturnType))
}

func (t TFunc) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, p := range t.Params {
		if p != nil {
			vars = append(vars, p.FreeTypeVariables()...)
		}
	}
	if t.ReturnType != nil {
		vars = append(vars, t.ReturnType.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TList represents a homogeneous list type (e.g. List<Number>).
type TList struct {
	Elem Type
}

func (t TList) typeNode()      {}
func (t TList) String() string { return fmt.Sprintf("%s<%s>", config.ListTypeName, typeString(t.Elem)) }
func (t TList) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TList) FreeTypeVariables() []TVar {
	if t.Elem == nil {
		return nil
	}
	return t.Elem.FreeTypeVariables()
}

// TDict represents a dictionary type (e.g. Dict<String, Number>).
type TDict struct {
	Key   Type
	Value Type
}

func (t TDict) typeNode() {}

func (t TDict) String() string {
	return fmt.Sprintf("%s<%s, %s>", config.DictTypeName, typeString(t.Key), typeString(t.Value))
}

func (t TDict) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TDict) FreeTypeVariables() []TVar {
	vars := []TVar{}
	if t.Key != nil {
		vars = append(vars, t.Key.FreeTypeVariables()...)
	}
	if t.Value != nil {
		vars = append(vars, t.Value.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// typeString renders a possibly-nil type.
func typeString(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

// Equal reports whether a and b are structurally identical.
// Variables compare by name only; no substitution is consulted.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TCon:
		b, ok := b.(TCon)
		return ok && a.Name == b.Name
	case TVar:
		b, ok := b.(TVar)
		return ok && a.Name == b.Name
	case TList:
		b, ok := b.(TList)
		return ok && Equal(a.Elem, b.Elem)
	case TDict:
		b, ok := b.(TDict)
		return ok && Equal(a.Key, b.Key) && Equal(a.Value, b.Value)
	case TFunc:
		b, ok := b.(TFunc)
		if !ok || len(a.Params) != len(b.Params) || a.IsVariadic != b.IsVariadic {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.ReturnType, b.ReturnType)
	default:
		return false
	}
}

// Subst is a mapping from type variable names to Types.
type Subst map[string]Type

// ApplyWithCycleCheck applies substitution with cycle detection.
// This is the main entry point for substitution application.
// A variable met again while expanding its own binding is left in place.
func ApplyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		if replacement, ok := s[typ.Name]; ok {
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			newVisited := copyVisited(visited)
			newVisited[typ.Name] = true
			return ApplyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TCon:
		return typ

	case TList:
		return TList{Elem: ApplyWithCycleCheck(typ.Elem, s, visited)}

	case TDict:
		return TDict{
			Key:   ApplyWithCycleCheck(typ.Key, s, visited),
			Value: ApplyWithCycleCheck(typ.Value, s, visited),
		}

	case TFunc:
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = ApplyWithCycleCheck(p, s, visited)
		}
		return TFunc{
			Params:     newParams,
			ReturnType: ApplyWithCycleCheck(typ.ReturnType, s, visited),
			IsVariadic: typ.IsVariadic,
		}

	default:
		return t
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m)+1)
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

func uniqueTVars(vars []TVar) []TVar {
	seen := make(map[string]bool, len(vars))
	result := make([]TVar, 0, len(vars))
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			result = append(result, v)
		}
	}
	return result
}
