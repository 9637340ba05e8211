package resource_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/runtime/resource"
)

func TestDefaultPolicyForbidsShell(t *testing.T) {
	p := resource.DefaultPolicy()
	_, err := p.Authorize("ls", true)
	assert.Error(t, err)
}

func TestDirectExecutionBypassesShellPolicy(t *testing.T) {
	p := resource.DefaultPolicy()
	warn, err := p.Authorize("ls", false)
	require.NoError(t, err)
	assert.False(t, warn)
}

func TestAllowlistOnlyRejectsUnlistedCommand(t *testing.T) {
	p := resource.SubprocessPolicy{
		AllowShellExecution: true,
		Mode:                resource.ShellAllowlistOnly,
		AllowedCommands:     map[string]bool{"echo hi": true},
	}
	_, err := p.Authorize("rm -rf /", true)
	assert.Error(t, err)

	warn, err := p.Authorize("echo hi", true)
	require.NoError(t, err)
	assert.False(t, warn)
}

func TestSanitizedModeWarns(t *testing.T) {
	p := resource.SubprocessPolicy{
		AllowShellExecution:  true,
		Mode:                 resource.ShellSanitized,
		WarnOnShellExecution: true,
	}
	warn, err := p.Authorize("echo hi", true)
	require.NoError(t, err)
	assert.True(t, warn)
}

func TestSpawnDirectCapturesStdout(t *testing.T) {
	p := resource.DefaultPolicy()
	res, sp, warn, err := resource.Spawn(context.Background(), "echo", []string{"hello"}, false, p)
	require.NoError(t, err)
	assert.False(t, warn)
	require.NotNil(t, res)

	out, err := sp.Wait()
	require.NoError(t, err)
	assert.Contains(t, out, "hello")

	require.NoError(t, res.Close())
	assert.True(t, res.Closed())
}
