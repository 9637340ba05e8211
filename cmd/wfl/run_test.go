package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfl-lang/wfl/compiler/analyzer"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/internal/config"
	"github.com/wfl-lang/wfl/runtime/interp"
)

func TestHasFatalIgnoresWarnings(t *testing.T) {
	warningsOnly := []analyzer.AnalysisError{
		{Severity: analyzer.SeverityWarning, Message: "unused variable: x"},
	}
	assert.False(t, hasFatal(warningsOnly))

	withError := append(warningsOnly, analyzer.AnalysisError{Severity: analyzer.SeverityError, Message: "undefined name: y"})
	assert.True(t, hasFatal(withError))
}

func TestToWFLErrorCarriesLocationAndKind(t *testing.T) {
	err := toWFLError(werrors.Syntax, "nonexistent.wfl", 3, 4, 1, "unexpected token")
	assert.Equal(t, werrors.Syntax, err.Kind)
	assert.Equal(t, 3, err.Location.Line)
	assert.Equal(t, "unexpected token", err.Message)
}

func TestApplyConfigWiresSubprocessPolicyAndBindAddress(t *testing.T) {
	it := interp.New()
	cfg := &config.Config{
		WebServerBindAddress:   "0.0.0.0",
		AllowShellExecution:    true,
		ShellExecutionMode:     config.ShellSanitized,
		AllowedShellCommands:   "ls,cat",
		WarnOnShellExecution:   true,
		MaxConcurrentProcesses: 5,
		MaxBufferSizeBytes:     1024,
	}

	applyConfig(it, cfg)

	assert.Equal(t, "0.0.0.0", it.BindAddr)
	assert.True(t, it.Policy.AllowShellExecution)
	assert.Equal(t, 5, it.Policy.MaxConcurrent)
	assert.Equal(t, 1024, it.Policy.MaxOutputBytes)
	assert.True(t, it.Policy.AllowedCommands["ls"])
	assert.True(t, it.Policy.AllowedCommands["cat"])
}
