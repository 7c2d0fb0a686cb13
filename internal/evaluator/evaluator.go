package evaluator

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/prettyprinter"
)

// maxEvalDepth is the default maximum nesting depth of Eval calls.
// Prevents stack overflow from infinite recursion in user programs.
const maxEvalDepth = 10000

// maxNodeLen bounds the rendered expression attached to a diagnostic.
const maxNodeLen = 60

// Evaluator executes programs. It ignores declared types entirely, so it
// runs unchecked (untyped) programs as well.
type Evaluator struct {
	// Context for cancellation
	Context context.Context

	Out io.Writer
	In  io.Reader

	// Scoping builds call environments for user functions.
	Scoping Scoping

	// MaxDepth caps Eval nesting; zero means maxEvalDepth.
	MaxDepth int

	// Global environment of top-level expressions.
	GlobalEnv *Environment

	// Environment of the expression being evaluated; builtins that call
	// back into user code use it as the caller environment.
	CurrentEnv *Environment

	functions map[string]*Function
	builtins  map[string]*Builtin
	reader    *bufio.Reader
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Context:   context.Background(),
		Out:       os.Stdout,
		In:        os.Stdin,
		Scoping:   StaticScoping{},
		MaxDepth:  maxEvalDepth,
		GlobalEnv: NewEnvironment(),
		functions: make(map[string]*Function),
		builtins:  Builtins(),
	}
}

// EvalProgram evaluates program with a default evaluator.
func EvalProgram(program *ast.Program) (Object, error) {
	return New().EvalProgram(program)
}

// EvalProgram registers the program's functions, then runs its top-level
// expressions in order and returns the value of the last one (nil value
// when there is none).
func (e *Evaluator) EvalProgram(program *ast.Program) (Object, error) {
	for _, def := range program.Defs {
		e.DefineFunction(def)
	}
	var result Object = NIL
	for _, expr := range program.Expressions {
		obj, err := e.EvalExpression(expr)
		if err != nil {
			if de, ok := err.(*diagnostics.DiagnosticError); ok && de.File == "" {
				de.File = program.File
			}
			return nil, err
		}
		result = obj
	}
	return result, nil
}

// DefineFunction makes def callable by name. A later definition with the
// same name replaces it.
func (e *Evaluator) DefineFunction(def *ast.FunctionDef) {
	e.functions[def.Name] = &Function{Def: def}
}

// DefineBuiltin adds or replaces a host-provided builtin.
func (e *Evaluator) DefineBuiltin(b *Builtin) {
	e.builtins[b.Name] = b
}

// LookupFunction finds a callable by name: user functions first, then
// builtins.
func (e *Evaluator) LookupFunction(name string) (Object, bool) {
	return e.lookupFunction(name)
}

// EvalExpression evaluates one expression in the global environment.
func (e *Evaluator) EvalExpression(expr ast.Expression) (Object, error) {
	return e.Eval(expr, e.GlobalEnv)
}

func (e *Evaluator) Eval(node ast.Expression, env *Environment) (Object, error) {
	// Check recursion depth to prevent Go stack overflow
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	limit := e.MaxDepth
	if limit <= 0 {
		limit = maxEvalDepth
	}
	if e.evalDepth > limit {
		return nil, newError(node, diagnostics.ErrRuntime, "maximum recursion depth exceeded")
	}

	// Check for cancellation
	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return nil, newError(node, diagnostics.ErrRuntime, "execution cancelled: %v", e.Context.Err())
		default:
		}
	}

	oldEnv := e.CurrentEnv
	e.CurrentEnv = env
	defer func() { e.CurrentEnv = oldEnv }()

	return e.evalCore(node, env)
}

func (e *Evaluator) evalCore(node ast.Expression, env *Environment) (Object, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return &Number{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &String{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(n.Value), nil
	case *ast.VarRef:
		return e.evalVarRef(n, env)
	case *ast.Assignment:
		val, err := e.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		return env.Set(n.Name, val), nil
	case *ast.BinaryOp:
		return e.evalBinaryOp(n, env)
	case *ast.If:
		return e.evalIf(n, env)
	case *ast.While:
		return e.evalWhile(n, env)
	case *ast.Seq:
		return e.evalSeq(n, env)
	case *ast.Call:
		return e.evalCall(n, env)
	case *ast.ListLiteral:
		return e.evalList(n, env)
	case *ast.DictLiteral:
		return e.evalDict(n, env)
	default:
		return nil, newError(node, diagnostics.ErrInvalidProgram, "unknown expression %T", node)
	}
}

// lookupFunction searches the user functions, then the builtins.
func (e *Evaluator) lookupFunction(name string) (Object, bool) {
	if fn, ok := e.functions[name]; ok {
		return fn, true
	}
	if b, ok := e.builtins[name]; ok {
		return b, true
	}
	return nil, false
}

func (e *Evaluator) evalVarRef(n *ast.VarRef, env *Environment) (Object, error) {
	if val, ok := env.Get(n.Name); ok {
		return val, nil
	}
	if fn, ok := e.lookupFunction(n.Name); ok {
		return fn, nil
	}
	return nil, newError(n, diagnostics.ErrUndefinedVariable, "variable %s is not defined", n.Name)
}

func newError(node ast.Node, code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.PhaseRuntime, code, format, args...).
		WithNode(prettyprinter.Compact(node, maxNodeLen))
}

// input returns the buffered reader over In, created on first use.
func (e *Evaluator) input() *bufio.Reader {
	if e.reader == nil {
		in := e.In
		if in == nil {
			in = os.Stdin
		}
		e.reader = bufio.NewReader(in)
	}
	return e.reader
}
