package evaluator

import (
	"github.com/funvibe/minilang/internal/ast"
)

// evalIf evaluates exactly one branch.
func (e *Evaluator) evalIf(n *ast.If, env *Environment) (Object, error) {
	cond, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return e.Eval(n.Then, env)
	}
	return e.Eval(n.Else, env)
}

func (e *Evaluator) evalWhile(n *ast.While, env *Environment) (Object, error) {
	for {
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return NIL, nil
		}
		if _, err := e.Eval(n.Body, env); err != nil {
			return nil, err
		}
	}
}

func (e *Evaluator) evalSeq(n *ast.Seq, env *Environment) (Object, error) {
	var result Object = NIL
	for _, body := range n.Bodies {
		obj, err := e.Eval(body, env)
		if err != nil {
			return nil, err
		}
		result = obj
	}
	return result, nil
}
