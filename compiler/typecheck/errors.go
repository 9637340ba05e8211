// Package typecheck infers and validates WFL's static types: primitives,
// lists, maps, functions, unions, and the Unknown gradual-typing
// fallback, generalizing the teacher's nullable-primitive checker into
// spec.md's type lattice.
package typecheck

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/types"
)

// ErrorCode identifies a specific category of type error.
type ErrorCode string

const (
	ErrTypeMismatch     ErrorCode = "TYP100"
	ErrInvalidBinaryOp  ErrorCode = "TYP101"
	ErrInvalidUnaryOp   ErrorCode = "TYP102"
	ErrInvalidPatternOp ErrorCode = "TYP103"

	ErrUndefinedField    ErrorCode = "TYP201"
	ErrUndefinedContainer ErrorCode = "TYP202"

	ErrUndefinedFunction    ErrorCode = "TYP300"
	ErrInvalidArgumentCount ErrorCode = "TYP301"
	ErrInvalidArgumentType  ErrorCode = "TYP302"

	ErrInvalidIndexOp ErrorCode = "TYP400"
	ErrIndexNotNumber ErrorCode = "TYP401"
)

// Severity distinguishes a hard error from an advisory warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// TypeError carries both a terminal-friendly message and the structured
// fields needed to render it as JSON for tooling.
type TypeError struct {
	Code     ErrorCode          `json:"code"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location"`
	Expected string             `json:"expected,omitempty"`
	Actual   string             `json:"actual,omitempty"`
}

// Error implements the error interface.
func (e *TypeError) Error() string { return e.Format() }

// Format renders a human-readable terminal message.
func (e *TypeError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s [%s] %s\n", e.Location.Line, e.Location.Column, strings.ToUpper(string(e.Severity)), e.Code, e.Message)
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&b, "  expected: %s\n  actual:   %s\n", e.Expected, e.Actual)
	}
	return b.String()
}

// ToJSON renders the error as an indented JSON document.
func (e *TypeError) ToJSON() (string, error) {
	b, err := json.MarshalIndent(e, "", "  ")
	return string(b), err
}

// ErrorList accumulates diagnostics from a single check pass.
type ErrorList []*TypeError

// Error implements the error interface.
func (el ErrorList) Error() string {
	var b strings.Builder
	for i, e := range el {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Format())
	}
	return b.String()
}

// HasErrors reports whether the list contains any hard errors (as
// opposed to only warnings).
func (el ErrorList) HasErrors() bool {
	for _, e := range el {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func newTypeMismatch(loc ast.SourceLocation, context string, expected, actual types.Type) *TypeError {
	return &TypeError{
		Code: ErrTypeMismatch, Severity: SeverityError,
		Message: fmt.Sprintf("type mismatch in %s", context), Location: loc,
		Expected: expected.String(), Actual: actual.String(),
	}
}

func newInvalidBinaryOp(loc ast.SourceLocation, op string, left, right types.Type) *TypeError {
	return &TypeError{
		Code: ErrInvalidBinaryOp, Severity: SeverityError,
		Message: fmt.Sprintf("operator %q cannot be applied to %s and %s", op, left.String(), right.String()),
		Location: loc,
	}
}

func newInvalidUnaryOp(loc ast.SourceLocation, op string, operand types.Type) *TypeError {
	return &TypeError{
		Code: ErrInvalidUnaryOp, Severity: SeverityError,
		Message: fmt.Sprintf("operator %q cannot be applied to %s", op, operand.String()), Location: loc,
	}
}

func newInvalidPatternOp(loc ast.SourceLocation, context string, actual types.Type) *TypeError {
	return &TypeError{
		Code: ErrInvalidPatternOp, Severity: SeverityError,
		Message: fmt.Sprintf("%s requires text, got %s", context, actual.String()), Location: loc,
	}
}

func newUndefinedField(loc ast.SourceLocation, field, containerName string) *TypeError {
	return &TypeError{
		Code: ErrUndefinedField, Severity: SeverityError,
		Message: fmt.Sprintf("container %s has no property or method named %q", containerName, field), Location: loc,
	}
}

func newUndefinedContainer(loc ast.SourceLocation, name string) *TypeError {
	return &TypeError{
		Code: ErrUndefinedContainer, Severity: SeverityError,
		Message: fmt.Sprintf("undefined container: %s", name), Location: loc,
	}
}

func newUndefinedFunction(loc ast.SourceLocation, name string) *TypeError {
	return &TypeError{
		Code: ErrUndefinedFunction, Severity: SeverityError,
		Message: fmt.Sprintf("undefined action: %s", name), Location: loc,
	}
}

func newInvalidArgumentCount(loc ast.SourceLocation, name string, expected, actual int) *TypeError {
	return &TypeError{
		Code: ErrInvalidArgumentCount, Severity: SeverityError,
		Message:  fmt.Sprintf("action %s expects %d argument(s), got %d", name, expected, actual),
		Location: loc, Expected: fmt.Sprintf("%d", expected), Actual: fmt.Sprintf("%d", actual),
	}
}

func newInvalidArgumentType(loc ast.SourceLocation, name string, index int, expected, actual types.Type) *TypeError {
	return &TypeError{
		Code: ErrInvalidArgumentType, Severity: SeverityError,
		Message:  fmt.Sprintf("action %s: argument %d has the wrong type", name, index+1),
		Location: loc, Expected: expected.String(), Actual: actual.String(),
	}
}

func newInvalidIndexOp(loc ast.SourceLocation, actual types.Type) *TypeError {
	return &TypeError{
		Code: ErrInvalidIndexOp, Severity: SeverityError,
		Message: fmt.Sprintf("type %s is not indexable", actual.String()), Location: loc,
	}
}

func newIndexNotNumber(loc ast.SourceLocation, actual types.Type) *TypeError {
	return &TypeError{
		Code: ErrIndexNotNumber, Severity: SeverityError,
		Message: fmt.Sprintf("list index must be a number, got %s", actual.String()), Location: loc,
	}
}
