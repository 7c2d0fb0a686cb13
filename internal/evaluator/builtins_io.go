package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
)

// print writes its arguments separated by spaces and returns the first.
func builtinPrint(e *Evaluator, args ...Object) (Object, error) {
	if len(args) == 0 {
		return nil, runtimeError(diagnostics.ErrArityMismatch, "%s expects at least 1 argument, got 0", config.PrintFuncName)
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	if _, err := fmt.Fprintln(e.Out, strings.Join(parts, " ")); err != nil {
		return nil, runtimeError(diagnostics.ErrRuntime, "%s: %v", config.PrintFuncName, err)
	}
	return args[0], nil
}

// input reads one line from e.In without its line terminator. At end of
// input it returns what was read so far, possibly "".
func builtinInput(e *Evaluator, args ...Object) (Object, error) {
	if err := checkArity(config.InputFuncName, args, 0); err != nil {
		return nil, err
	}
	line, err := e.input().ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, runtimeError(diagnostics.ErrRuntime, "%s: %v", config.InputFuncName, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return &String{Value: line}, nil
}
