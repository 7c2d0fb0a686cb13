package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/funvibe/minilang/internal/analyzer"
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/parser"
	"github.com/funvibe/minilang/internal/pipeline"
	"github.com/funvibe/minilang/internal/prettyprinter"
	"github.com/funvibe/minilang/internal/server"
)

// programFlags are shared by run, check and repl.
type programFlags struct {
	dynamic    bool
	noCheck    bool
	configPath string
}

func (a *app) newFlagSet(name string, pf *programFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if pf != nil {
		fs.BoolVar(&pf.dynamic, "dynamic", false, "use dynamic scoping")
		fs.BoolVar(&pf.noCheck, "nocheck", false, "run without the type checker")
		fs.StringVar(&pf.configPath, "config", "", "path to minilang.yaml")
	}
	return fs
}

// loadConfig reads the explicit config path, or the nearest minilang.yaml
// above dir. Command-line flags override file settings.
func (a *app) loadConfig(pf programFlags, dir string) (*config.Config, error) {
	path := pf.configPath
	if path == "" {
		found, err := config.FindConfig(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if pf.dynamic {
		cfg.Scoping = config.ScopingDynamic
	}
	if pf.noCheck {
		cfg.SkipCheck = true
	}
	return cfg, nil
}

// readSource reads a program file; "-" means stdin.
func (a *app) readSource(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		return data, "<stdin>", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, path, nil
}

// singleFile parses fs and returns its one positional argument.
func (a *app) singleFile(fs *flag.FlagSet, args []string) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(a.stderr, "Usage: minilang %s [flags] <file>\n", fs.Name())
		return "", false
	}
	return fs.Arg(0), true
}

func configDir(path string) string {
	if path == "-" {
		return "."
	}
	return filepath.Dir(path)
}

func (a *app) handleRun(args []string) int {
	var pf programFlags
	path, ok := a.singleFile(a.newFlagSet("run", &pf), args)
	if !ok {
		return exitUsage
	}
	cfg, err := a.loadConfig(pf, configDir(path))
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}
	source, file, err := a.readSource(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pctx := pipeline.NewPipelineContext(source, file, cfg)
	pctx.Ctx = ctx
	pctx.In = a.stdin
	pctx.Out = a.stdout
	pctx = pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&evaluator.EvaluatorProcessor{},
	).Run(pctx)

	if pctx.Failed() {
		a.reportAll(pctx.Errors)
		return exitError
	}
	return exitOK
}

func (a *app) handleCheck(args []string) int {
	var pf programFlags
	path, ok := a.singleFile(a.newFlagSet("check", &pf), args)
	if !ok {
		return exitUsage
	}
	cfg, err := a.loadConfig(pf, configDir(path))
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}
	cfg.SkipCheck = false
	source, file, err := a.readSource(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	pctx := pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(pipeline.NewPipelineContext(source, file, cfg))

	if pctx.Failed() {
		a.reportAll(pctx.Errors)
		return exitError
	}
	fmt.Fprintln(a.stdout, prettyprinter.FormatType(pctx.ResultType))
	return exitOK
}

func (a *app) handleFmt(args []string) int {
	path, ok := a.singleFile(a.newFlagSet("fmt", nil), args)
	if !ok {
		return exitUsage
	}
	source, file, err := a.readSource(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}
	program, err := parser.ParseProgram(source, file)
	if err != nil {
		a.report(err)
		return exitError
	}
	fmt.Fprint(a.stdout, prettyprinter.Print(program))
	return exitOK
}

// dumpConfig prints syntax trees without addresses so dumps are stable.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) handleDump(args []string) int {
	path, ok := a.singleFile(a.newFlagSet("dump", nil), args)
	if !ok {
		return exitUsage
	}
	source, file, err := a.readSource(path)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}
	program, err := parser.ParseProgram(source, file)
	if err != nil {
		a.report(err)
		return exitError
	}
	dumpConfig.Fdump(a.stdout, program)
	return exitOK
}

func (a *app) handleServe(args []string) int {
	var pf programFlags
	var addr string
	fs := a.newFlagSet("serve", &pf)
	fs.StringVar(&addr, "addr", "", "listen address (default "+config.DefaultServerAddr+")")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := a.loadConfig(pf, ".")
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	log.SetOutput(a.stderr)
	log.SetFlags(0)
	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitError
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		log.Printf("Shutting down")
		srv.Stop()
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Printf("serve: %v", err)
		return exitError
	}
	return exitOK
}
