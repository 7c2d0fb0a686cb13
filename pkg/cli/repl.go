package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/prettyprinter"
	minilang "github.com/funvibe/minilang/pkg/embed"
)

const (
	historyFile = ".minilang_history"
	promptMain  = "minilang> "
	promptCont  = "      ... "
)

const replHelp = `Enter an expression such as ["+", 1, 2] or a function definition.
Commands:
  :type <expr>   show the type of an expression without running it
  :load <file>   run a program file inside this session
  :help          show this help
  :quit          leave the session
`

func (a *app) handleRepl(args []string) int {
	var pf programFlags
	fs := a.newFlagSet("repl", &pf)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := a.loadConfig(pf, ".")
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	engine := minilang.New()
	engine.SetOutput(a.stdout)
	engine.SetSkipCheck(cfg.SkipCheck)
	if err := engine.SetScoping(cfg.Scoping); err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	fmt.Fprintf(a.stdout, "minilang %s (%s scoping, checking %s). :help for help.\n",
		config.Version, cfg.Scoping, onOff(!cfg.SkipCheck))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil && !config.IsTestMode {
		histPath = filepath.Join(home, historyFile)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			break
		}
		if strings.TrimSpace(entry) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
		if a.replLine(engine, entry) {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return exitOK
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// replLine handles one complete entry and reports whether to exit.
func (a *app) replLine(engine *minilang.Engine, entry string) (exit bool) {
	trimmed := strings.TrimSpace(entry)
	if strings.HasPrefix(trimmed, ":") {
		return a.replCommand(engine, trimmed)
	}
	obj, err := engine.EvalObject(entry)
	if err != nil {
		a.report(err)
		return false
	}
	if obj != nil {
		fmt.Fprintln(a.stdout, evaluator.Repr(obj))
	}
	return false
}

func (a *app) replCommand(engine *minilang.Engine, line string) (exit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprint(a.stdout, replHelp)
	case ":type", ":t":
		t, err := engine.Type(arg)
		if err != nil {
			a.report(err)
			return false
		}
		fmt.Fprintln(a.stdout, prettyprinter.FormatType(t))
	case ":load", ":l":
		source, file, err := a.readSource(arg)
		if err != nil {
			fmt.Fprintln(a.stderr, err)
			return false
		}
		res, err := engine.EvalProgramObject(string(source), file)
		if err != nil {
			a.report(err)
			return false
		}
		if res != nil && res != evaluator.NIL {
			fmt.Fprintln(a.stdout, evaluator.Repr(res))
		}
	default:
		fmt.Fprintf(a.stderr, "unknown command %s (try :help)\n", cmd)
	}
	return false
}

// readEntry reads lines until brackets balance, so an entry may span
// several lines. ok is false at end of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending entry.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if bracketDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// bracketDepth counts unclosed [ and { outside string literals.
func bracketDepth(src string) int {
	depth := 0
	inString := false
	escaped := false
	for _, r := range src {
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '[' || r == '{':
			depth++
		case r == ']' || r == '}':
			depth--
		}
	}
	return depth
}
