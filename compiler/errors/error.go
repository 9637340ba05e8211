package errors

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of an error.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	switch str {
	case "info":
		*s = Info
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	case "fatal":
		*s = Fatal
	default:
		*s = Error
	}
	return nil
}

// SourceLocation represents a location in source code.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

// ErrorContext contains surrounding code for an error.
type ErrorContext struct {
	SourceLines []string  `json:"source_lines"`
	Highlight   Highlight `json:"highlight"`
}

// Highlight specifies which part of the context to highlight.
type Highlight struct {
	Line  int `json:"line"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// FixSuggestion represents an auto-fix suggestion.
type FixSuggestion struct {
	Description string  `json:"description"`
	OldCode     string  `json:"old_code"`
	NewCode     string  `json:"new_code"`
	Confidence  float64 `json:"confidence"`
}

// WFLError is a diagnostic raised at any phase: lexer, parser, analyzer,
// type checker, or interpreter. Kind is the closed taxonomy slot;
// Condition (when set) is the specific named failure a `when` clause
// matches against, e.g. CondFileNotFound under RuntimeResource.
type WFLError struct {
	Kind          Kind
	Condition     Condition
	Message       string
	Location      SourceLocation
	Severity      Severity
	Context       ErrorContext
	Suggestion    *FixSuggestion
	RelatedErrors []WFLError

	// Data carries structured detail specific to the condition (e.g.
	// {"expected": "Number", "actual": "Text"} for a type mismatch, or
	// {"status": 404} for an http error), surfaced in JSON output and
	// available to `when` handlers that bind the error's fields.
	Data map[string]any
}

// Error implements the error interface.
func (e WFLError) Error() string {
	if e.Location.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Location.File, e.Location.Line, e.Location.Column, e.Kind, e.Message)
}

// New creates a WFLError at Error severity with no condition, context,
// or suggestion attached.
func New(kind Kind, message string, location SourceLocation) WFLError {
	return WFLError{
		Kind:     kind,
		Message:  message,
		Location: location,
		Severity: Error,
	}
}

// NewCondition creates a WFLError whose Kind is derived from cond via
// KindOf, for the common case of raising a specific runtime condition.
func NewCondition(cond Condition, message string, location SourceLocation) WFLError {
	return WFLError{
		Kind:      KindOf(cond),
		Condition: cond,
		Message:   message,
		Location:  location,
		Severity:  Error,
	}
}

// WithSeverity overrides the default Error severity, e.g. for analyzer
// warnings that don't abort compilation.
func (e WFLError) WithSeverity(s Severity) WFLError {
	e.Severity = s
	return e
}

// WithContext attaches source context to the error.
func (e WFLError) WithContext(ctx ErrorContext) WFLError {
	e.Context = ctx
	return e
}

// WithSuggestion attaches a fix suggestion to the error.
func (e WFLError) WithSuggestion(suggestion FixSuggestion) WFLError {
	e.Suggestion = &suggestion
	return e
}

// WithRelatedError appends a cascading related error.
func (e WFLError) WithRelatedError(related WFLError) WFLError {
	e.RelatedErrors = append(e.RelatedErrors, related)
	return e
}

// WithData attaches a structured detail field.
func (e WFLError) WithData(key string, value any) WFLError {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

// MarshalJSON implements json.Marshaler.
func (e WFLError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind          string         `json:"kind"`
		Condition     string         `json:"condition,omitempty"`
		Message       string         `json:"message"`
		Severity      Severity       `json:"severity"`
		Location      SourceLocation `json:"location"`
		Context       ErrorContext   `json:"context"`
		Suggestion    *FixSuggestion `json:"suggestion,omitempty"`
		RelatedErrors []WFLError     `json:"related_errors,omitempty"`
		Data          map[string]any `json:"data,omitempty"`
	}{
		Kind:          e.Kind.String(),
		Condition:     string(e.Condition),
		Message:       e.Message,
		Severity:      e.Severity,
		Location:      e.Location,
		Context:       e.Context,
		Suggestion:    e.Suggestion,
		RelatedErrors: e.RelatedErrors,
		Data:          e.Data,
	})
}

// IsError returns true if the error is at Error or Fatal severity.
func (e WFLError) IsError() bool { return e.Severity == Error || e.Severity == Fatal }

// IsWarning returns true if the error is at Warning severity.
func (e WFLError) IsWarning() bool { return e.Severity == Warning }

// IsInfo returns true if the error is at Info severity.
func (e WFLError) IsInfo() bool { return e.Severity == Info }

// IsFatal returns true if the error is at Fatal severity.
func (e WFLError) IsFatal() bool { return e.Severity == Fatal }

// Matches reports whether a `when` clause naming target (either a
// Condition string like "file not found" or a Kind name like
// "resource error") matches this error, per spec.md's Try/catch
// semantics: a when clause names an error condition mapping to one or
// more kinds, the first source-order match wins.
func (e WFLError) Matches(target string) bool {
	if target == string(e.Condition) {
		return true
	}
	return target == e.Kind.String()
}
