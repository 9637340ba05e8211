package errors

import (
	"fmt"
	"strings"
)

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 100

// ErrorRecovery accumulates diagnostics across a compile pass (lexer
// through type checker) so a single run reports every problem it finds
// rather than stopping at the first one.
type ErrorRecovery struct {
	errors   []WFLError
	warnings []WFLError
	maxCount int
}

// NewErrorRecovery creates a new ErrorRecovery instance.
func NewErrorRecovery() *ErrorRecovery {
	return &ErrorRecovery{maxCount: MaxErrors}
}

// NewErrorRecoveryWithMax creates a new ErrorRecovery with custom max count.
func NewErrorRecoveryWithMax(maxCount int) *ErrorRecovery {
	return &ErrorRecovery{maxCount: maxCount}
}

// Recover adds an error to the collection, enriching it with source
// context first if a file is available and context hasn't been attached yet.
func (r *ErrorRecovery) Recover(err WFLError) {
	if len(r.errors) >= r.maxCount && (err.IsError() || err.IsFatal()) {
		return
	}

	if err.Location.File != "" && len(err.Context.SourceLines) == 0 {
		err = EnrichErrorFromFile(err)
	}

	if err.IsWarning() || err.IsInfo() {
		r.warnings = append(r.warnings, err)
	} else {
		r.errors = append(r.errors, err)
	}
}

// RecoverMultiple adds multiple errors to the collection.
func (r *ErrorRecovery) RecoverMultiple(errs []WFLError) {
	for _, err := range errs {
		if len(r.errors) >= r.maxCount {
			break
		}
		r.Recover(err)
	}
}

func (r *ErrorRecovery) HasErrors() bool   { return len(r.errors) > 0 }
func (r *ErrorRecovery) HasWarnings() bool { return len(r.warnings) > 0 }

func (r *ErrorRecovery) HasFatals() bool {
	for _, err := range r.errors {
		if err.IsFatal() {
			return true
		}
	}
	return false
}

func (r *ErrorRecovery) ErrorCount() int   { return len(r.errors) }
func (r *ErrorRecovery) WarningCount() int { return len(r.warnings) }
func (r *ErrorRecovery) TotalCount() int   { return len(r.errors) + len(r.warnings) }

func (r *ErrorRecovery) GetErrors() []WFLError   { return r.errors }
func (r *ErrorRecovery) GetWarnings() []WFLError { return r.warnings }

// GetAll returns all errors and warnings combined.
func (r *ErrorRecovery) GetAll() []WFLError {
	all := make([]WFLError, 0, len(r.errors)+len(r.warnings))
	all = append(all, r.errors...)
	all = append(all, r.warnings...)
	return all
}

// Clear resets all errors and warnings.
func (r *ErrorRecovery) Clear() {
	r.errors = nil
	r.warnings = nil
}

// FormatForTerminal formats all errors and warnings for terminal output.
func (r *ErrorRecovery) FormatForTerminal(noColor bool) string {
	var sb strings.Builder

	for i, err := range r.errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(err.FormatForTerminal(noColor))
	}

	for i, warn := range r.warnings {
		if len(r.errors) > 0 || i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(warn.FormatForTerminal(noColor))
	}

	if r.TotalCount() > 0 {
		sb.WriteString(FormatSummary(len(r.errors), len(r.warnings), noColor))
	}

	if len(r.errors) >= r.maxCount {
		sb.WriteString(fmt.Sprintf("\nNote: error limit reached (%d). Additional errors not shown.\n", r.maxCount))
	}

	return sb.String()
}

// FormatAsJSON formats all errors as JSON.
func (r *ErrorRecovery) FormatAsJSON() (string, error) {
	return FormatErrorsAsJSON(r.GetAll())
}

// FormatAsJSONCompact formats all errors as compact JSON.
func (r *ErrorRecovery) FormatAsJSONCompact() (string, error) {
	return FormatErrorsAsJSONCompact(r.GetAll())
}

// FirstError returns the first error, or nil if there are none.
func (r *ErrorRecovery) FirstError() *WFLError {
	if len(r.errors) == 0 {
		return nil
	}
	return &r.errors[0]
}

// FirstFatal returns the first fatal error, or nil if there are none.
func (r *ErrorRecovery) FirstFatal() *WFLError {
	for i := range r.errors {
		if r.errors[i].IsFatal() {
			return &r.errors[i]
		}
	}
	return nil
}

// Error implements the error interface.
func (r *ErrorRecovery) Error() string {
	if len(r.errors) == 0 && len(r.warnings) == 0 {
		return "no errors"
	}
	if len(r.errors) == 1 && len(r.warnings) == 0 {
		return r.errors[0].Error()
	}
	return fmt.Sprintf("%d error(s) and %d warning(s)", len(r.errors), len(r.warnings))
}

// Summary returns a human-readable one-line summary.
func (r *ErrorRecovery) Summary() string {
	if len(r.errors) == 0 && len(r.warnings) == 0 {
		return "No errors or warnings"
	}

	var parts []string
	if len(r.errors) > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", len(r.errors)))
	}
	if len(r.warnings) > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", len(r.warnings)))
	}
	return "Found " + strings.Join(parts, " and ")
}

// GetErrorsByKind returns errors of a specific Kind.
func (r *ErrorRecovery) GetErrorsByKind(kind Kind) []WFLError {
	var result []WFLError
	for _, err := range r.errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// GetErrorsBySeverity returns errors and warnings at a specific severity.
func (r *ErrorRecovery) GetErrorsBySeverity(severity Severity) []WFLError {
	var result []WFLError
	for _, err := range r.errors {
		if err.Severity == severity {
			result = append(result, err)
		}
	}
	for _, warn := range r.warnings {
		if warn.Severity == severity {
			result = append(result, warn)
		}
	}
	return result
}
