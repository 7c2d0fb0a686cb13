package evaluator

import (
	"strings"

	"github.com/funvibe/minilang/internal/config"
)

func builtinToUpperCase(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.ToUpperCaseFuncName, args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg(config.ToUpperCaseFuncName, args[0])
	if err != nil {
		return nil, err
	}
	return &String{Value: strings.ToUpper(s)}, nil
}

func builtinSplit(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.SplitFuncName, args, 2); err != nil {
		return nil, err
	}
	s, err := stringArg(config.SplitFuncName, args[0])
	if err != nil {
		return nil, err
	}
	sep, err := stringArg(config.SplitFuncName, args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]Object, len(parts))
	for i, p := range parts {
		out[i] = &String{Value: p}
	}
	return &List{Elements: out}, nil
}

// join renders non-string elements as they print; nil elements are empty.
func builtinJoin(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.JoinFuncName, args, 2); err != nil {
		return nil, err
	}
	list, err := listArg(config.JoinFuncName, args[0])
	if err != nil {
		return nil, err
	}
	sep, err := stringArg(config.JoinFuncName, args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(list.Elements))
	for i, el := range list.Elements {
		if _, isNil := el.(*Nil); !isNil {
			parts[i] = el.Inspect()
		}
	}
	return &String{Value: strings.Join(parts, sep)}, nil
}
