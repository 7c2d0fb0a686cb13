package typesystem

import "fmt"

// MatchError describes a failed match between a pattern and a concrete type.
type MatchError struct {
	Pattern  Type
	Concrete Type
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("cannot match %s with %s", typeString(e.Pattern), typeString(e.Concrete))
}

func errMatch(pattern, concrete Type) error {
	return &MatchError{Pattern: pattern, Concrete: concrete}
}
