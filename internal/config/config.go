// Package config loads WFL's .wflcfg file: a flat key = value text
// format with # comments, read with the nearest file (walking up from
// the script directory) overriding a global system-wide file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// ShellExecutionMode mirrors runtime/resource.ShellMode's string values
// so config can be decoded without importing the resource package and
// creating a cycle (resource is a leaf package interp depends on).
type ShellExecutionMode string

const (
	ShellForbidden     ShellExecutionMode = "forbidden"
	ShellAllowlistOnly ShellExecutionMode = "allowlist_only"
	ShellSanitized     ShellExecutionMode = "sanitized"
	ShellUnrestricted  ShellExecutionMode = "unrestricted"
)

// Config is the decoded contents of .wflcfg, with every key spec.md's
// configuration table names and the same defaults.
type Config struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	LoggingEnabled     bool   `mapstructure:"logging_enabled"`
	LogLevel           string `mapstructure:"log_level"`
	DebugReportEnabled bool   `mapstructure:"debug_report_enabled"`
	ExecutionLogging   bool   `mapstructure:"execution_logging"`
	VerboseExecution   bool   `mapstructure:"verbose_execution"`
	LogLoopIterations  bool   `mapstructure:"log_loop_iterations"`
	LogThrottleFactor  int    `mapstructure:"log_throttle_factor"`

	MaxLineLength        int  `mapstructure:"max_line_length"`
	MaxNestingDepth      int  `mapstructure:"max_nesting_depth"`
	IndentSize           int  `mapstructure:"indent_size"`
	SnakeCaseVariables   bool `mapstructure:"snake_case_variables"`
	TrailingWhitespace   bool `mapstructure:"trailing_whitespace"`
	ConsistentKeywordCase bool `mapstructure:"consistent_keyword_case"`

	AllowShellExecution  bool               `mapstructure:"allow_shell_execution"`
	ShellExecutionMode   ShellExecutionMode `mapstructure:"shell_execution_mode"`
	AllowedShellCommands string             `mapstructure:"allowed_shell_commands"`
	WarnOnShellExecution bool               `mapstructure:"warn_on_shell_execution"`
	MaxConcurrentProcesses int              `mapstructure:"max_concurrent_processes"`
	MaxBufferSizeBytes     int              `mapstructure:"max_buffer_size_bytes"`
	KillOnShutdown         bool             `mapstructure:"kill_on_shutdown"`

	WebServerBindAddress string `mapstructure:"web_server_bind_address"`
}

// AllowedCommandSet splits AllowedShellCommands's comma list into the
// set shape runtime/resource.SubprocessPolicy.AllowedCommands expects.
func (c *Config) AllowedCommandSet() map[string]bool {
	set := make(map[string]bool)
	for _, name := range strings.Split(c.AllowedShellCommands, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = true
		}
	}
	return set
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timeout_seconds", 60)

	v.SetDefault("logging_enabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("debug_report_enabled", true)
	v.SetDefault("verbose_execution", false)
	v.SetDefault("log_loop_iterations", false)
	v.SetDefault("log_throttle_factor", 1000)

	v.SetDefault("max_line_length", 100)
	v.SetDefault("max_nesting_depth", 5)
	v.SetDefault("indent_size", 4)
	v.SetDefault("snake_case_variables", true)
	v.SetDefault("trailing_whitespace", false)
	v.SetDefault("consistent_keyword_case", true)

	v.SetDefault("allow_shell_execution", false)
	v.SetDefault("shell_execution_mode", string(ShellForbidden))
	v.SetDefault("allowed_shell_commands", "")
	v.SetDefault("warn_on_shell_execution", true)
	v.SetDefault("max_concurrent_processes", 100)
	v.SetDefault("max_buffer_size_bytes", 10485760)
	v.SetDefault("kill_on_shutdown", false)

	v.SetDefault("web_server_bind_address", "127.0.0.1")
}

// GlobalConfigPath returns the system-wide .wflcfg location, honoring
// WFL_GLOBAL_CONFIG_PATH per spec.md's CLI surface section.
func GlobalConfigPath() string {
	if p := os.Getenv("WFL_GLOBAL_CONFIG_PATH"); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		return `C:\wfl\config`
	}
	return "/etc/wfl/wfl.cfg"
}

// findNearest walks up from dir looking for a .wflcfg file, returning
// "" if none is found before the filesystem root.
func findNearest(dir string) string {
	for {
		candidate := filepath.Join(dir, ".wflcfg")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load resolves .wflcfg for a script at scriptPath: the global file
// first, then the nearest local file found walking up from the
// script's directory, with the local file's keys overriding the
// global ones wherever both set the same key.
func Load(scriptPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	setDefaults(v)

	if global := GlobalConfigPath(); global != "" {
		if data, err := os.ReadFile(global); err == nil {
			if err := v.MergeConfig(strings.NewReader(string(data))); err != nil {
				return nil, fmt.Errorf("config: reading global config %s: %w", global, err)
			}
		}
	}

	dir := filepath.Dir(scriptPath)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if local := findNearest(dir); local != "" {
		data, err := os.ReadFile(local)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", local, err)
		}
		if err := v.MergeConfig(strings.NewReader(string(data))); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", local, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
