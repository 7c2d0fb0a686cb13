package typesystem

// Match matches pattern against concrete, extending s in place.
//
// This is one-directional matching, not full unification: an unbound
// variable in the pattern is bound to the concrete type unconditionally
// (no occurs check), and a bound variable is re-matched through its
// binding. The first binding of a variable wins.
func Match(pattern, concrete Type, s Subst) bool {
	if tv, ok := pattern.(TVar); ok {
		if bound, ok := s[tv.Name]; ok {
			return Match(bound, concrete, s)
		}
		// A variable matched against itself binds nothing.
		if ctv, ok := concrete.(TVar); ok && ctv.Name == tv.Name {
			return true
		}
		s[tv.Name] = concrete
		return true
	}

	if _, ok := concrete.(TVar); ok {
		return Match(concrete, pattern, s)
	}

	switch p := pattern.(type) {
	case TCon:
		c, ok := concrete.(TCon)
		return ok && p.Name == c.Name
	case TList:
		c, ok := concrete.(TList)
		return ok && Match(p.Elem, c.Elem, s)
	case TDict:
		c, ok := concrete.(TDict)
		return ok && Match(p.Key, c.Key, s) && Match(p.Value, c.Value, s)
	case TFunc:
		c, ok := concrete.(TFunc)
		if !ok || len(p.Params) != len(c.Params) || p.IsVariadic != c.IsVariadic {
			return false
		}
		for i := range p.Params {
			if !Match(p.Params[i], c.Params[i], s) {
				return false
			}
		}
		return Match(p.ReturnType, c.ReturnType, s)
	default:
		return false
	}
}

// MatchFunc matches the parameter types of fn against argTypes, extending s.
// The return type is not checked here; callers substitute it afterwards.
func MatchFunc(fn TFunc, argTypes []Type, s Subst) bool {
	if !ArityOK(fn, len(argTypes)) {
		return false
	}
	for i, arg := range argTypes {
		if !Match(ParamAt(fn, i), arg, s) {
			return false
		}
	}
	return true
}

// ArityOK reports whether fn accepts n arguments.
func ArityOK(fn TFunc, n int) bool {
	if fn.IsVariadic {
		return n >= len(fn.Params)-1
	}
	return n == len(fn.Params)
}

// ParamAt returns the declared type of argument i, repeating the last
// parameter of a variadic function.
func ParamAt(fn TFunc, i int) Type {
	if fn.IsVariadic && i >= len(fn.Params)-1 {
		return fn.Params[len(fn.Params)-1]
	}
	return fn.Params[i]
}

// Unify matches pattern against concrete with an empty substitution and
// returns the bindings it produced.
func Unify(pattern, concrete Type) (Subst, error) {
	s := make(Subst)
	if !Match(pattern, concrete, s) {
		return nil, errMatch(pattern, concrete)
	}
	return s, nil
}
