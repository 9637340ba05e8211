package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/internal/config"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WFL_GLOBAL_CONFIG_PATH", filepath.Join(dir, "no-such-global.cfg"))

	cfg, err := config.Load(filepath.Join(dir, "script.wfl"))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, "127.0.0.1", cfg.WebServerBindAddress)
	assert.Equal(t, config.ShellForbidden, cfg.ShellExecutionMode)
	assert.Equal(t, 100, cfg.MaxConcurrentProcesses)
}

func TestLoadLocalOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.cfg")
	require.NoError(t, os.WriteFile(globalPath, []byte("timeout_seconds = 30\nlog_level = warn\n"), 0o644))
	t.Setenv("WFL_GLOBAL_CONFIG_PATH", globalPath)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".wflcfg"), []byte(
		"# local override\ntimeout_seconds = 5\nallow_shell_execution = true\nshell_execution_mode = sanitized\n",
	), 0o644))

	cfg, err := config.Load(filepath.Join(dir, "script.wfl"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.AllowShellExecution)
	assert.Equal(t, config.ShellExecutionMode("sanitized"), cfg.ShellExecutionMode)
}

func TestLoadWalksUpForNearestConfig(t *testing.T) {
	root := t.TempDir()
	t.Setenv("WFL_GLOBAL_CONFIG_PATH", filepath.Join(root, "no-such-global.cfg"))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".wflcfg"), []byte("max_line_length = 42\n"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := config.Load(filepath.Join(nested, "script.wfl"))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxLineLength)
}

func TestAllowedCommandSetSplitsAndTrims(t *testing.T) {
	cfg := &config.Config{AllowedShellCommands: "ls, cat,  grep"}
	set := cfg.AllowedCommandSet()
	assert.True(t, set["ls"])
	assert.True(t, set["cat"])
	assert.True(t, set["grep"])
	assert.Len(t, set, 3)
}

func TestGlobalConfigPathDefaultsByOS(t *testing.T) {
	t.Setenv("WFL_GLOBAL_CONFIG_PATH", "")
	p := config.GlobalConfigPath()
	assert.NotEmpty(t, p)
}
