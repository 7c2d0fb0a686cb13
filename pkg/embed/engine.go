package minilang

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/google/uuid"

	"github.com/funvibe/minilang/internal/analyzer"
	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/parser"
	"github.com/funvibe/minilang/internal/symbols"
	"github.com/funvibe/minilang/internal/typesystem"
)

// Engine is a long-lived interpreter session for host programs.
// Functions, globals and bound Go functions persist across calls.
// Unless SetSkipCheck(true) is called, every definition and expression is
// checked before it runs. An Engine is not safe for concurrent use.
type Engine struct {
	SessionID string

	checker    *analyzer.Checker
	machine    *evaluator.Evaluator
	parser     *parser.Parser
	marshaller *Marshaller
	bindings   map[string]Binding
	skipCheck  bool
}

// Binding records a Go function bound with Bind.
type Binding struct {
	Value interface{}
	Type  typesystem.TFunc
}

// New creates an Engine with static scoping and type checking enabled.
func New() *Engine {
	return &Engine{
		SessionID:  uuid.NewString(),
		checker:    analyzer.New(typesystem.NewTypeVarSupply()),
		machine:    evaluator.New(),
		parser:     parser.New("<embed>"),
		marshaller: NewMarshaller(),
		bindings:   make(map[string]Binding),
	}
}

// SetScoping selects config.ScopingStatic or config.ScopingDynamic.
func (e *Engine) SetScoping(name string) error {
	switch name {
	case config.ScopingStatic, config.ScopingDynamic:
		e.machine.Scoping = evaluator.ScopingFor(name)
		return nil
	default:
		return fmt.Errorf("scoping must be %q or %q, got %q", config.ScopingStatic, config.ScopingDynamic, name)
	}
}

func (e *Engine) SetOutput(w io.Writer) { e.machine.Out = w }

func (e *Engine) SetInput(r io.Reader) { e.machine.In = r }

func (e *Engine) SetContext(ctx context.Context) { e.machine.Context = ctx }

// SetSkipCheck disables the checker. Untyped functions can only be
// defined with checking off.
func (e *Engine) SetSkipCheck(skip bool) { e.skipCheck = skip }

// Bind registers a Go function under name. Its signature is derived from
// the Go type: numeric kinds map to Number, slices to List, maps to Dict.
// A trailing error result becomes a runtime error when non-nil.
func (e *Engine) Bind(name string, fn interface{}) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("bind %s: expected a function, got %T", name, fn)
	}
	sig, err := funcType(fv.Type())
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}

	e.bindings[name] = Binding{Value: fn, Type: sig}
	e.checker.SymbolTable().DefineBuiltin(name, sig)
	e.machine.DefineBuiltin(&evaluator.Builtin{
		Name:     name,
		TypeInfo: sig,
		Fn: func(_ *evaluator.Evaluator, args ...evaluator.Object) (evaluator.Object, error) {
			return e.callHost(name, fv, args)
		},
	})
	return nil
}

// Bindings returns the Go functions bound so far.
func (e *Engine) Bindings() map[string]Binding {
	return e.bindings
}

func (e *Engine) callHost(name string, fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	if isVariadic {
		if len(args) < numIn-1 {
			return nil, hostError(diagnostics.ErrArityMismatch, "%s expects at least %d arguments, got %d", name, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, hostError(diagnostics.ErrArityMismatch, "%s expects %d arguments, got %d", name, numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		targetType := fnType.In(min(i, numIn-1))
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		}
		val, err := e.marshaller.FromValue(arg, targetType)
		if err != nil {
			return nil, hostError(diagnostics.ErrUnsupportedOperandKind, "%s: argument %d: %v", name, i+1, err)
		}
		goArgs[i] = valueOf(val, targetType)
	}

	results := fn.Call(goArgs)
	if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
		if errVal := results[n-1]; !errVal.IsNil() {
			return nil, hostError(diagnostics.ErrRuntime, "%s: %v", name, errVal.Interface())
		}
		results = results[:n-1]
	}
	if len(results) == 0 {
		return evaluator.NIL, nil
	}
	obj, err := e.marshaller.ToValue(results[0].Interface())
	if err != nil {
		return nil, hostError(diagnostics.ErrRuntime, "%s: result: %v", name, err)
	}
	return obj, nil
}

func hostError(code diagnostics.ErrorCode, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.PhaseRuntime, code, format, args...)
}

// Set assigns a global variable. Its checked type comes from the Go type
// of val when that maps to a language type, otherwise from the converted
// value.
func (e *Engine) Set(name string, val interface{}) error {
	obj, err := e.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	t := obj.RuntimeType()
	if val != nil {
		if goType, err := typeOf(reflect.TypeOf(val)); err == nil {
			t = goType
		}
	}
	e.checker.SymbolTable().Define(name, t)
	e.machine.GlobalEnv.Set(name, obj)
	return nil
}

// Get returns a global variable converted to a Go value.
func (e *Engine) Get(name string) (interface{}, error) {
	obj, ok := e.machine.GlobalEnv.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable %s is not defined", name)
	}
	return e.marshaller.FromValue(obj, nil)
}

// Define adds or replaces a function. With checking on, a definition that
// fails to check leaves the previous one in place.
func (e *Engine) Define(def *ast.FunctionDef) error {
	if !e.skipCheck {
		if err := e.checker.DefineFunction(def); err != nil {
			return err
		}
	}
	e.machine.DefineFunction(def)
	return nil
}

// Eval reads one entry: a function definition (returns nil, nil) or an
// expression, whose value is returned as a Go value.
func (e *Engine) Eval(source string) (interface{}, error) {
	obj, err := e.EvalObject(source)
	if err != nil || obj == nil {
		return nil, err
	}
	return e.marshaller.FromValue(obj, nil)
}

// EvalObject is Eval without the conversion to Go.
func (e *Engine) EvalObject(source string) (evaluator.Object, error) {
	def, expr, err := e.parser.ParseEntry([]byte(source))
	if err != nil {
		return nil, err
	}
	if def != nil {
		return nil, e.Define(def)
	}
	return e.evalExpression(expr)
}

func (e *Engine) evalExpression(expr ast.Expression) (evaluator.Object, error) {
	if e.skipCheck {
		return e.machine.EvalExpression(expr)
	}
	table := e.checker.SymbolTable()
	snap := table.Snapshot()
	if _, err := e.checker.CheckExpression(expr); err != nil {
		table.Restore(snap)
		return nil, err
	}
	return e.run(snap, func() (evaluator.Object, error) {
		return e.machine.EvalExpression(expr)
	})
}

// run evaluates after a successful check. When evaluation fails, checked
// assignments that never ran are taken back so the checker only knows the
// variables the evaluator holds.
func (e *Engine) run(snap symbols.Snapshot, eval func() (evaluator.Object, error)) (evaluator.Object, error) {
	before := e.machine.GlobalEnv.GetStore()
	obj, err := eval()
	if err == nil {
		return obj, nil
	}
	table := e.checker.SymbolTable()
	for _, name := range table.Variables() {
		now, ok := e.machine.GlobalEnv.Get(name)
		old, had := before[name]
		if !ok || (had && now == old) {
			table.RestoreVariable(snap, name)
		}
	}
	return nil, err
}

// EvalProgram checks and runs a whole program inside the session. Its
// functions and assignments stay defined afterwards.
func (e *Engine) EvalProgram(source, file string) (interface{}, error) {
	obj, err := e.EvalProgramObject(source, file)
	if err != nil {
		return nil, err
	}
	return e.marshaller.FromValue(obj, nil)
}

// EvalProgramObject is EvalProgram without the conversion to Go.
func (e *Engine) EvalProgramObject(source, file string) (evaluator.Object, error) {
	program, err := parser.ParseProgram([]byte(source), file)
	if err != nil {
		return nil, err
	}
	if e.skipCheck {
		return e.machine.EvalProgram(program)
	}
	defer func() { e.checker.File = "" }()
	table := e.checker.SymbolTable()
	snap := table.Snapshot()
	if _, err := e.checker.CheckProgram(program); err != nil {
		table.Restore(snap)
		return nil, err
	}
	return e.run(snap, func() (evaluator.Object, error) {
		return e.machine.EvalProgram(program)
	})
}

// Type checks an expression without running it and returns its type.
// Assignments inside the expression are not recorded.
func (e *Engine) Type(source string) (typesystem.Type, error) {
	expr, err := e.parser.ParseExpression([]byte(source))
	if err != nil {
		return nil, err
	}
	probe := analyzer.New(typesystem.NewTypeVarSupply())
	table := probe.SymbolTable()
	global := e.checker.SymbolTable()
	for _, name := range global.Variables() {
		sym, _ := global.FindVariable(name)
		table.Define(name, sym.Type)
	}
	for _, name := range global.Functions() {
		if sym, ok := global.LocalFunction(name); ok {
			table.SetFunction(sym)
		}
	}
	return probe.CheckExpression(expr)
}

// Call invokes a user function or builtin by name with Go arguments.
func (e *Engine) Call(name string, args ...interface{}) (interface{}, error) {
	fn, ok := e.machine.LookupFunction(name)
	if !ok {
		if v, found := e.machine.GlobalEnv.Get(name); found {
			fn = v
		} else {
			return nil, fmt.Errorf("function %s is not defined", name)
		}
	}
	objs := make([]evaluator.Object, len(args))
	for i, arg := range args {
		obj, err := e.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("call %s: argument %d: %w", name, i+1, err)
		}
		objs[i] = obj
	}
	e.machine.CurrentEnv = e.machine.GlobalEnv
	result, err := e.machine.ApplyFunction(fn, objs)
	if err != nil {
		return nil, err
	}
	return e.marshaller.FromValue(result, nil)
}
