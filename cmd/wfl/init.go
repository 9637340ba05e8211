package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
)

// runInit interactively builds a .wflcfg file in dir, asking only the
// keys a new project is most likely to want to change and leaving
// everything else at spec.md's documented defaults.
func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("wfl --init: creating %s: %w", dir, err)
	}

	timeoutStr := "60"
	if err := survey.AskOne(&survey.Input{
		Message: "Execution timeout (seconds):",
		Default: timeoutStr,
	}, &timeoutStr, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("wfl --init: %w", err)
	}
	timeoutSeconds, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSeconds < 1 {
		return fmt.Errorf("wfl --init: timeout_seconds must be an integer >= 1, got %q", timeoutStr)
	}

	loggingEnabled := false
	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable execution logging?",
		Default: false,
	}, &loggingEnabled); err != nil {
		return fmt.Errorf("wfl --init: %w", err)
	}

	logLevel := "info"
	if err := survey.AskOne(&survey.Select{
		Message: "Log level:",
		Options: []string{"debug", "info", "warn", "error"},
		Default: logLevel,
	}, &logLevel); err != nil {
		return fmt.Errorf("wfl --init: %w", err)
	}

	bindAddress := "127.0.0.1"
	if err := survey.AskOne(&survey.Input{
		Message: "Web server bind address:",
		Default: bindAddress,
	}, &bindAddress); err != nil {
		return fmt.Errorf("wfl --init: %w", err)
	}

	shellMode := "forbidden"
	if err := survey.AskOne(&survey.Select{
		Message: "Subprocess shell execution policy:",
		Options: []string{"forbidden", "allowlist_only", "sanitized", "unrestricted"},
		Default: shellMode,
	}, &shellMode); err != nil {
		return fmt.Errorf("wfl --init: %w", err)
	}
	allowShell := shellMode != "forbidden"

	content := fmt.Sprintf(`# generated by wfl --init
timeout_seconds = %d
logging_enabled = %t
log_level = %s
web_server_bind_address = %s
allow_shell_execution = %t
shell_execution_mode = %s
`, timeoutSeconds, loggingEnabled, logLevel, bindAddress, allowShell, shellMode)

	cfgPath := filepath.Join(dir, ".wflcfg")
	if _, err := os.Stat(cfgPath); err == nil {
		overwrite := false
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("%s already exists, overwrite?", cfgPath),
			Default: false,
		}, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("wfl --init: writing %s: %w", cfgPath, err)
	}

	fmt.Printf("\nwrote %s\n", cfgPath)
	return nil
}
