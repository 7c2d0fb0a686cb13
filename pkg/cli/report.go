package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/minilang/internal/diagnostics"
)

const (
	ansiRed   = "\033[31m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// colorEnabled reports whether w is a terminal that should get ANSI colour.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report prints one error. Diagnostics get their code highlighted.
func (a *app) report(err error) {
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) || !a.color {
		fmt.Fprintln(a.stderr, err)
		return
	}
	loc := ""
	if de.File != "" {
		loc = de.File + ": "
	}
	fmt.Fprintf(a.stderr, "%s%s%s error %s%s (%s)%s: %s", loc, ansiBold, de.Phase, ansiRed, de.Code, de.Code.Name(), ansiReset, de.Message)
	if de.Node != "" {
		fmt.Fprintf(a.stderr, " (in %s)", de.Node)
	}
	fmt.Fprintln(a.stderr)
}

func (a *app) reportAll(errs []*diagnostics.DiagnosticError) {
	for _, err := range errs {
		a.report(err)
	}
}
