package evaluator

import (
	"github.com/funvibe/minilang/internal/config"
)

func builtinKeys(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.KeysFuncName, args, 1); err != nil {
		return nil, err
	}
	d, err := dictArg(config.KeysFuncName, args[0])
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, d.Len())
	for _, pair := range d.Pairs() {
		out = append(out, pair.Key)
	}
	return &List{Elements: out}, nil
}

func builtinValues(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.ValuesFuncName, args, 1); err != nil {
		return nil, err
	}
	d, err := dictArg(config.ValuesFuncName, args[0])
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, d.Len())
	for _, pair := range d.Pairs() {
		out = append(out, pair.Value)
	}
	return &List{Elements: out}, nil
}

// get returns nil for an absent key instead of failing.
func builtinGet(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.GetFuncName, args, 2); err != nil {
		return nil, err
	}
	d, err := dictArg(config.GetFuncName, args[0])
	if err != nil {
		return nil, err
	}
	if v, ok := d.Get(args[1]); ok {
		return v, nil
	}
	return NIL, nil
}

func builtinHasKey(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.HasKeyFuncName, args, 2); err != nil {
		return nil, err
	}
	d, err := dictArg(config.HasKeyFuncName, args[0])
	if err != nil {
		return nil, err
	}
	return nativeBoolToBooleanObject(d.Has(args[1])), nil
}

// merge returns a new dictionary: the left entries in order, overwritten
// by the right ones, with new right keys appended.
func builtinMerge(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.MergeFuncName, args, 2); err != nil {
		return nil, err
	}
	left, err := dictArg(config.MergeFuncName, args[0])
	if err != nil {
		return nil, err
	}
	right, err := dictArg(config.MergeFuncName, args[1])
	if err != nil {
		return nil, err
	}
	out := left.Copy()
	for _, pair := range right.Pairs() {
		out.Set(pair.Key, pair.Value)
	}
	return out, nil
}
