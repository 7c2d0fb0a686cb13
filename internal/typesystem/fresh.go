package typesystem

import (
	"strconv"
	"sync/atomic"
)

// TypeVarSupply hands out type variables with unique names.
// Names are the requested prefix followed by a counter that only grows
// until Reset is called. Independent checking sessions should each own a
// supply; sharing one is safe because the counter is atomic.
type TypeVarSupply struct {
	counter atomic.Int64
}

func NewTypeVarSupply() *TypeVarSupply {
	return &TypeVarSupply{}
}

// Fresh returns a new variable named prefix+N.
func (s *TypeVarSupply) Fresh(prefix string) TVar {
	if prefix == "" {
		prefix = "T"
	}
	n := s.counter.Add(1) - 1
	return TVar{Name: prefix + strconv.FormatInt(n, 10)}
}

// Reset restarts numbering at zero. Only call it between independent runs:
// variables handed out earlier may be reissued afterwards.
func (s *TypeVarSupply) Reset() {
	s.counter.Store(0)
}

// DefaultSupply is the process-wide supply used when none is injected.
var DefaultSupply = NewTypeVarSupply()

// FreshVar returns a fresh variable from DefaultSupply.
func FreshVar(prefix string) TVar {
	return DefaultSupply.Fresh(prefix)
}

// ResetFreshVars resets DefaultSupply (useful for tests).
func ResetFreshVars() {
	DefaultSupply.Reset()
}

// Instantiate replaces every type parameter of a generic function type with
// a fresh variable, so that each call site reasons about its own copy.
// A nil supply means DefaultSupply.
func Instantiate(t Type, typeParams []TVar, supply *TypeVarSupply) Type {
	if len(typeParams) == 0 {
		return t
	}
	if supply == nil {
		supply = DefaultSupply
	}
	subst := make(Subst, len(typeParams))
	for _, tp := range typeParams {
		subst[tp.Name] = supply.Fresh(tp.Name)
	}
	return t.Apply(subst)
}
