package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wfl-lang/wfl/internal/logger"
)

func newObservedLogger(t *testing.T, opts logger.Options) (*logger.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	opts.Enabled = true
	l, err := logger.New(opts)
	require.NoError(t, err)
	l.ReplaceCore(core)
	return l, recorded
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	l, err := logger.New(logger.Options{Enabled: false})
	require.NoError(t, err)
	l.Statement("display", 1)
	l.LoopIteration("count", 2)
	l.RuntimeError("RuntimeArithmetic", "division by zero", 3)
	require.NoError(t, l.Sync())
}

func TestStatementLoggedOnlyWhenVerbose(t *testing.T) {
	l, recorded := newObservedLogger(t, logger.Options{Enabled: true, VerboseExecution: true, ThrottleFactor: 1})
	l.Statement("display", 10)
	assert.Equal(t, 1, recorded.Len())
}

func TestLoopIterationThrottled(t *testing.T) {
	l, recorded := newObservedLogger(t, logger.Options{Enabled: true, LogLoopIterations: true, ThrottleFactor: 3})
	for i := 0; i < 9; i++ {
		l.LoopIteration("count", 1)
	}
	assert.Equal(t, 3, recorded.Len())
}
