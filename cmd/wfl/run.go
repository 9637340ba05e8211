package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wfl-lang/wfl/compiler/analyzer"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
	"github.com/wfl-lang/wfl/compiler/typecheck"
	"github.com/wfl-lang/wfl/internal/config"
	"github.com/wfl-lang/wfl/internal/logger"
	"github.com/wfl-lang/wfl/runtime/interp"
	"github.com/wfl-lang/wfl/runtime/resource"
	"github.com/wfl-lang/wfl/runtime/scheduler"
	"github.com/wfl-lang/wfl/stdlib"
)

// runScript executes the WFL program at path: lex, parse, analyze,
// type check, then interpret. Each compile phase's diagnostics are
// collected into a single werrors.ErrorRecovery before the pipeline
// decides whether to continue, so a phase that finds several problems
// reports all of them together rather than stopping at the first; a
// phase whose diagnostics are all warnings still lets later phases run.
func runScript(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("wfl: cannot read %s: %w", path, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("wfl: loading config: %w", err)
	}

	recovery := werrors.NewErrorRecovery()

	tokens, lexErrs := lexer.Tokenize(string(source))
	for _, e := range lexErrs {
		recovery.Recover(toWFLError(werrors.Syntax, path, e.Span.Line, e.Span.Column, e.Span.Length, e.Message))
	}
	if recovery.HasErrors() {
		fmt.Fprintln(os.Stderr, recovery.FormatForTerminal(false))
		return fmt.Errorf("wfl: %s", recovery.Summary())
	}

	program, parseErrs := parser.New(tokens).Parse()
	for _, e := range parseErrs {
		recovery.Recover(toWFLError(werrors.Syntax, path, e.Location.Line, e.Location.Column, e.Location.Length, e.Message))
	}
	if recovery.HasErrors() {
		fmt.Fprintln(os.Stderr, recovery.FormatForTerminal(false))
		return fmt.Errorf("wfl: %s", recovery.Summary())
	}

	for _, d := range analyzer.Analyze(program) {
		we := toWFLError(werrors.Semantic, path, d.Location.Line, d.Location.Column, d.Location.Length, d.Message)
		if d.Severity == analyzer.SeverityWarning {
			we = we.WithSeverity(werrors.Warning)
		}
		recovery.Recover(we)
	}
	if recovery.HasErrors() {
		fmt.Fprintln(os.Stderr, recovery.FormatForTerminal(false))
		return fmt.Errorf("wfl: %s", recovery.Summary())
	}

	for _, e := range typecheck.CheckProgram(program) {
		we := toWFLError(werrors.Type, path, e.Location.Line, e.Location.Column, 0, e.Message)
		if e.Severity == typecheck.SeverityWarning {
			we = we.WithSeverity(werrors.Warning)
		}
		recovery.Recover(we)
	}
	if recovery.HasErrors() {
		fmt.Fprintln(os.Stderr, recovery.FormatForTerminal(false))
		return fmt.Errorf("wfl: %s", recovery.Summary())
	}

	if recovery.HasWarnings() {
		fmt.Fprintln(os.Stderr, recovery.FormatForTerminal(false))
	}

	lg, err := logger.New(logger.Options{
		Enabled:           cfg.LoggingEnabled,
		Level:             cfg.LogLevel,
		VerboseExecution:  cfg.VerboseExecution,
		LogLoopIterations: cfg.LogLoopIterations,
		ThrottleFactor:    cfg.LogThrottleFactor,
	})
	if err != nil {
		return fmt.Errorf("wfl: building logger: %w", err)
	}
	defer lg.Sync()

	it := interp.New()
	it.Logger = lg
	stdlib.RegisterNatives(it)
	applyConfig(it, cfg)

	ctx := context.Background()
	if cfg.TimeoutSeconds > 0 {
		it.Watchdog = scheduler.NewWatchdog(time.Duration(cfg.TimeoutSeconds) * time.Second)
		var cancel context.CancelFunc
		ctx, cancel = it.Watchdog.Context(ctx)
		defer cancel()
	}

	if err := it.Run(ctx, program); err != nil {
		printRuntimeError(err, path)
		return fmt.Errorf("wfl: execution failed")
	}
	return nil
}

// applyConfig wires .wflcfg's subprocess and web server keys into the
// interpreter's runtime policy, leaving everything else at
// interp.New()'s defaults.
func applyConfig(it *interp.Interpreter, cfg *config.Config) {
	it.BindAddr = cfg.WebServerBindAddress
	it.Policy = resource.SubprocessPolicy{
		AllowShellExecution:  cfg.AllowShellExecution,
		Mode:                 resource.ShellMode(cfg.ShellExecutionMode),
		AllowedCommands:      cfg.AllowedCommandSet(),
		WarnOnShellExecution: cfg.WarnOnShellExecution,
		MaxConcurrent:        cfg.MaxConcurrentProcesses,
		MaxOutputBytes:       cfg.MaxBufferSizeBytes,
	}
}

// hasFatal reports whether diags holds at least one error-severity
// analyzer diagnostic; warnings alone are not fatal.
func hasFatal(diags []analyzer.AnalysisError) bool {
	for _, d := range diags {
		if d.Severity == analyzer.SeverityError {
			return true
		}
	}
	return false
}

func toWFLError(kind werrors.Kind, file string, line, col, length int, message string) werrors.WFLError {
	loc := werrors.SourceLocation{File: file, Line: line, Column: col, Length: length}
	err := werrors.New(kind, message, loc)
	return werrors.EnrichErrorFromFile(err)
}

// printRuntimeError renders a runtime error the interpreter raised. A
// werrors.WFLError gets the same enriched terminal rendering as a
// compile-time diagnostic; any other error (a Go-level bug, not a WFL
// condition) is printed plainly.
func printRuntimeError(err error, path string) {
	var wflErr werrors.WFLError
	if errors.As(err, &wflErr) {
		if wflErr.Location.File == "" {
			wflErr.Location.File = path
		}
		fmt.Fprintln(os.Stderr, werrors.EnrichErrorFromFile(wflErr).FormatForTerminal(false))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
