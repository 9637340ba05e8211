// Package analyzer resolves names, flags unused bindings and
// unreachable code, validates loop/action control-flow placement, and
// checks container/interface conformance, generalizing the teacher's
// pass-over-AST-with-diagnostics checking style from type checking to
// name resolution.
package analyzer

import (
	"fmt"

	"github.com/wfl-lang/wfl/compiler/ast"
)

// ErrorKind categorizes a semantic diagnostic.
type ErrorKind int

const (
	ErrUndefinedName ErrorKind = iota
	ErrAlreadyDeclared
	ErrBreakOutsideLoop
	ErrContinueOutsideLoop
	ErrReturnOutsideAction
	ErrRetryOutsideHandler
	ErrUnknownErrorCondition
	ErrInterfaceNotSatisfied
	ErrUnusedVariable
	ErrUnreachableCode
	ErrDuplicateEventHandler
	ErrInvalidPattern
	ErrReadOnlyAssignment
	ErrArityMismatch
)

// Severity distinguishes hard errors from advisory warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// AnalysisError is a single semantic diagnostic.
type AnalysisError struct {
	Kind     ErrorKind
	Severity Severity
	Message  string
	Location ast.SourceLocation
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Location.Line, e.Location.Column, e.Message)
}

func newError(kind ErrorKind, loc ast.SourceLocation, message string) AnalysisError {
	return AnalysisError{Kind: kind, Severity: SeverityError, Message: message, Location: loc}
}

func newWarning(kind ErrorKind, loc ast.SourceLocation, message string) AnalysisError {
	return AnalysisError{Kind: kind, Severity: SeverityWarning, Message: message, Location: loc}
}
