package evaluator

import "github.com/funvibe/minilang/internal/config"

// Scoping decides what a called function can see besides its parameters.
type Scoping interface {
	Name() string
	// CallEnvironment builds the environment a function body runs in.
	CallEnvironment(caller *Environment, params []string, args []Object) *Environment
}

// StaticScoping runs every call in a fresh environment holding only the
// formal parameters.
type StaticScoping struct{}

func (StaticScoping) Name() string { return config.ScopingStatic }

func (StaticScoping) CallEnvironment(caller *Environment, params []string, args []Object) *Environment {
	return bindParams(NewEnvironment(), params, args)
}

// DynamicScoping runs every call in a copy of the caller's environment
// plus the formal parameters. Assignments inside the callee do not leak
// back to the caller.
type DynamicScoping struct{}

func (DynamicScoping) Name() string { return config.ScopingDynamic }

func (DynamicScoping) CallEnvironment(caller *Environment, params []string, args []Object) *Environment {
	if caller == nil {
		return bindParams(NewEnvironment(), params, args)
	}
	return bindParams(caller.Clone(), params, args)
}

func bindParams(env *Environment, params []string, args []Object) *Environment {
	for i, name := range params {
		env.Set(name, args[i])
	}
	return env
}

// ScopingFor maps a configured policy name to a strategy.
func ScopingFor(name string) Scoping {
	if name == config.ScopingDynamic {
		return DynamicScoping{}
	}
	return StaticScoping{}
}
