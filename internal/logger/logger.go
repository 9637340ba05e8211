// Package logger wraps a zap.SugaredLogger with WFL's execution-tracing
// policy: whether logging runs at all, at what level, and how often a
// loop body reports its own iteration.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interpreter's execution tracer: a sugared zap logger
// plus the throttle state that decides which loop iterations actually
// get logged.
type Logger struct {
	sugar *zap.SugaredLogger

	enabled           bool
	verboseExecution  bool
	logLoopIterations bool
	throttleFactor    int

	iteration int64
}

// Options configures a Logger from the matching .wflcfg keys
// (internal/config.Config carries the same field names).
type Options struct {
	Enabled           bool
	Level             string
	VerboseExecution  bool
	LogLoopIterations bool
	ThrottleFactor    int
}

// New builds a Logger from opts. A disabled logger still accepts every
// call below (they become no-ops), so callers never need to guard a
// log call behind a separate enabled check.
func New(opts Options) (*Logger, error) {
	if !opts.Enabled {
		return &Logger{sugar: zap.NewNop().Sugar(), enabled: false}, nil
	}

	level := parseLevel(opts.Level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	throttle := opts.ThrottleFactor
	if throttle < 1 {
		throttle = 1
	}

	return &Logger{
		sugar:             zl.Sugar(),
		enabled:           true,
		verboseExecution:  opts.VerboseExecution,
		logLoopIterations: opts.LogLoopIterations,
		throttleFactor:    throttle,
	}, nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Statement logs a single statement execution when verbose_execution is
// on, mirroring the per-statement trace line spec.md's log_level/
// verbose_execution keys describe.
func (l *Logger) Statement(kind string, line int) {
	if l == nil || !l.enabled || !l.verboseExecution {
		return
	}
	l.sugar.Debugw("statement", "kind", kind, "line", line)
}

// LoopIteration logs one loop step, sampled every ThrottleFactor-th
// call so a tight loop doesn't flood the log.
func (l *Logger) LoopIteration(loopKind string, line int) {
	if l == nil || !l.enabled || !l.logLoopIterations {
		return
	}
	l.iteration++
	if l.iteration%int64(l.throttleFactor) != 0 {
		return
	}
	l.sugar.Infow("loop iteration", "kind", loopKind, "line", line, "count", l.iteration)
}

// RuntimeError logs a runtime error at error level, regardless of
// verbose_execution, so failures are never silently dropped.
func (l *Logger) RuntimeError(kind, message string, line int) {
	if l == nil || !l.enabled {
		return
	}
	l.sugar.Errorw("runtime error", "kind", kind, "message", message, "line", line)
}

// ReplaceCore swaps the underlying zap core, used by tests to observe
// emitted log entries without writing to a real sink.
func (l *Logger) ReplaceCore(core zapcore.Core) {
	if l == nil || l.sugar == nil {
		return
	}
	l.sugar = l.sugar.Desugar().WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return core
	})).Sugar()
}

// Sync flushes any buffered log entries; callers defer it from main.
func (l *Logger) Sync() error {
	if l == nil || l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
