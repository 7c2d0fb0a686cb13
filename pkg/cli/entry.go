package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/minilang/internal/config"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1 // the program failed to parse, check or run
	exitUsage = 2 // bad arguments, unreadable files
)

// app carries the streams of one CLI invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

const usage = `Usage: minilang <command> [flags] [file]

Commands:
  run    [-dynamic] [-nocheck] [-config path] <file>   check and run a program
  check  [-config path] <file>                         check a program and print its type
  fmt    <file>                                        print a program in readable form
  dump   <file>                                        print the parsed syntax tree
  repl   [-dynamic] [-nocheck]                         interactive session
  serve  [-addr host:port] [-config path]              serve the Engine gRPC API

A bare file argument is the same as "run <file>". Use "-" to read stdin.
`

func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(exitError)
		}
	}()

	if os.Getenv("MINILANG_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Main runs the CLI with explicit streams and returns the exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		color:  colorEnabled(stderr),
	}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "-v", "-version", "--version", "version":
		fmt.Fprintln(stdout, "minilang "+config.Version)
		return exitOK
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	case "run":
		return a.handleRun(rest)
	case "check":
		return a.handleCheck(rest)
	case "fmt":
		return a.handleFmt(rest)
	case "dump":
		return a.handleDump(rest)
	case "repl":
		return a.handleRepl(rest)
	case "serve":
		return a.handleServe(rest)
	default:
		if strings.HasPrefix(cmd, "-") || !isSourceFile(cmd) {
			fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
			return exitUsage
		}
		return a.handleRun(args)
	}
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
