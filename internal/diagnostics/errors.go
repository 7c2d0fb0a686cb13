package diagnostics

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of language error.
type ErrorCode string

const (
	ErrUndefinedVariable      ErrorCode = "E001"
	ErrUndefinedFunction      ErrorCode = "E002"
	ErrArityMismatch          ErrorCode = "E003"
	ErrTypeMismatch           ErrorCode = "E004" // operator, branch, homogeneity, return type
	ErrUnsupportedOperator    ErrorCode = "E005"
	ErrUnsupportedOperandKind ErrorCode = "E006" // runtime only
	ErrInvalidProgram         ErrorCode = "E007" // program document could not be translated
	ErrRuntime                ErrorCode = "E008" // recursion limit, cancellation, IO
)

var codeNames = map[ErrorCode]string{
	ErrUndefinedVariable:      "UndefinedVariable",
	ErrUndefinedFunction:      "UndefinedFunction",
	ErrArityMismatch:          "ArityMismatch",
	ErrTypeMismatch:           "TypeMismatch",
	ErrUnsupportedOperator:    "UnsupportedOperator",
	ErrUnsupportedOperandKind: "UnsupportedOperandKind",
	ErrInvalidProgram:         "InvalidProgram",
	ErrRuntime:                "RuntimeError",
}

// Name returns the taxonomy name of the code, e.g. "TypeMismatch".
func (c ErrorCode) Name() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return string(c)
}

// Phase is the pass that detected an error.
type Phase string

const (
	PhaseParse   Phase = "parse"
	PhaseCheck   Phase = "check"
	PhaseRuntime Phase = "runtime"
)

// DiagnosticError is the single error type produced by the language passes.
type DiagnosticError struct {
	Code    ErrorCode
	Phase   Phase
	Message string
	Node    string // rendered offending expression, may be empty
	File    string
}

func (e *DiagnosticError) Error() string {
	msg := fmt.Sprintf("%s error %s: %s", e.Phase, e.Code, e.Message)
	if e.Node != "" {
		msg += " (in " + e.Node + ")"
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

func NewError(phase Phase, code ErrorCode, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithNode attaches the rendered offending expression unless one is set.
func (e *DiagnosticError) WithNode(node string) *DiagnosticError {
	if e.Node == "" {
		e.Node = node
	}
	return e
}

// HasCode reports whether err is (or wraps) a DiagnosticError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of a DiagnosticError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
