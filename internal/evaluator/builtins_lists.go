package evaluator

import (
	"unicode/utf8"

	"github.com/funvibe/minilang/internal/config"
)

func builtinAdd(e *Evaluator, args ...Object) (Object, error) {
	sum := 0.0
	for _, arg := range args {
		v, err := numberArg(config.AddFuncName, arg)
		if err != nil {
			return nil, err
		}
		sum += v
	}
	return &Number{Value: sum}, nil
}

func builtinMul(e *Evaluator, args ...Object) (Object, error) {
	product := 1.0
	for _, arg := range args {
		v, err := numberArg(config.MulFuncName, arg)
		if err != nil {
			return nil, err
		}
		product *= v
	}
	return &Number{Value: product}, nil
}

// len counts runes of a string, elements of a list or entries of a dict.
func builtinLen(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.LenFuncName, args, 1); err != nil {
		return nil, err
	}
	switch arg := args[0].(type) {
	case *String:
		return &Number{Value: float64(utf8.RuneCountInString(arg.Value))}, nil
	case *List:
		return &Number{Value: float64(len(arg.Elements))}, nil
	case *Dict:
		return &Number{Value: float64(arg.Len())}, nil
	default:
		return nil, kindError(config.LenFuncName, "a String, List or Dict", arg)
	}
}

func builtinMap(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.MapFuncName, args, 2); err != nil {
		return nil, err
	}
	list, err := listArg(config.MapFuncName, args[0])
	if err != nil {
		return nil, err
	}
	fn, err := funcArg(config.MapFuncName, args[1])
	if err != nil {
		return nil, err
	}
	out := make([]Object, len(list.Elements))
	for i, el := range list.Elements {
		v, err := e.ApplyFunction(fn, []Object{el})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &List{Elements: out}, nil
}

func builtinFilter(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.FilterFuncName, args, 2); err != nil {
		return nil, err
	}
	list, err := listArg(config.FilterFuncName, args[0])
	if err != nil {
		return nil, err
	}
	fn, err := funcArg(config.FilterFuncName, args[1])
	if err != nil {
		return nil, err
	}
	out := []Object{}
	for _, el := range list.Elements {
		keep, err := e.ApplyFunction(fn, []Object{el})
		if err != nil {
			return nil, err
		}
		if isTruthy(keep) {
			out = append(out, el)
		}
	}
	return &List{Elements: out}, nil
}

// reduce folds from the left: fn(fn(initial, x0), x1)...
func builtinReduce(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.ReduceFuncName, args, 3); err != nil {
		return nil, err
	}
	list, err := listArg(config.ReduceFuncName, args[0])
	if err != nil {
		return nil, err
	}
	fn, err := funcArg(config.ReduceFuncName, args[1])
	if err != nil {
		return nil, err
	}
	acc := args[2]
	for _, el := range list.Elements {
		acc, err = e.ApplyFunction(fn, []Object{acc, el})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
