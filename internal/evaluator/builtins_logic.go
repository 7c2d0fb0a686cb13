package evaluator

import (
	"github.com/funvibe/minilang/internal/config"
)

func builtinAnd(e *Evaluator, args ...Object) (Object, error) {
	a, b, err := twoBools(config.AndFuncName, args)
	if err != nil {
		return nil, err
	}
	return nativeBoolToBooleanObject(a && b), nil
}

func builtinOr(e *Evaluator, args ...Object) (Object, error) {
	a, b, err := twoBools(config.OrFuncName, args)
	if err != nil {
		return nil, err
	}
	return nativeBoolToBooleanObject(a || b), nil
}

func builtinNot(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.NotFuncName, args, 1); err != nil {
		return nil, err
	}
	v, err := boolArg(config.NotFuncName, args[0])
	if err != nil {
		return nil, err
	}
	return nativeBoolToBooleanObject(!v), nil
}

func twoBools(name string, args []Object) (bool, bool, error) {
	if err := checkArity(name, args, 2); err != nil {
		return false, false, err
	}
	a, err := boolArg(name, args[0])
	if err != nil {
		return false, false, err
	}
	b, err := boolArg(name, args[1])
	if err != nil {
		return false, false, err
	}
	return a, b, nil
}
