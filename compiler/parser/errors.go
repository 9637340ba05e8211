// Package parser implements WFL's recursive-descent parser, transforming
// token streams into Abstract Syntax Trees with panic-mode error recovery
// so a single run can report multiple syntax errors.
package parser

import (
	"fmt"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// ErrorKind categorizes a parse diagnostic.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrMissingEnd
	ErrReservedWordAsIdentifier
	ErrInvalidPatternRange
	ErrMalformedContainer
	ErrInvalidExpression
)

// ParseError represents a single diagnostic encountered during parsing.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Location ast.SourceLocation
	Token    lexer.Token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s (near %q)",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

// NewParseError builds a ParseError anchored at token with a generic
// unexpected-token kind.
func NewParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Kind:     ErrUnexpectedToken,
		Message:  message,
		Location: ast.LocFromToken(token),
		Token:    token,
	}
}

// NewParseErrorKind builds a ParseError with an explicit kind.
func NewParseErrorKind(kind ErrorKind, message string, token lexer.Token) ParseError {
	return ParseError{
		Kind:     kind,
		Message:  message,
		Location: ast.LocFromToken(token),
		Token:    token,
	}
}
