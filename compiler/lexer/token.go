// Package lexer tokenizes WFL source text into a position-annotated stream
// of tokens for the parser.
package lexer

import "fmt"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_NEWLINE
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL

	// Literal keywords
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NOTHING // nothing, missing, undefined all lex to this

	// Variable/control statements
	TOKEN_STORE
	TOKEN_CREATE
	TOKEN_CHANGE
	TOKEN_TO
	TOKEN_AS
	TOKEN_DISPLAY
	TOKEN_CHECK
	TOKEN_IF
	TOKEN_THEN
	TOKEN_OTHERWISE
	TOKEN_END
	TOKEN_COUNT
	TOKEN_FROM
	TOKEN_BY
	TOKEN_STEP
	TOKEN_UP
	TOKEN_DOWN
	TOKEN_FOR
	TOKEN_EACH
	TOKEN_IN
	TOKEN_OF
	TOKEN_WHILE
	TOKEN_UNTIL
	TOKEN_REPEAT
	TOKEN_FOREVER
	TOKEN_MAIN
	TOKEN_LOOP
	TOKEN_DEFINE
	TOKEN_ACTION
	TOKEN_CALLED
	TOKEN_WITH
	TOKEN_NEEDS
	TOKEN_GIVES
	TOKEN_BACK
	TOKEN_RETURN
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_SKIP

	// Error handling
	TOKEN_TRY
	TOKEN_WHEN
	TOKEN_CATCH
	TOKEN_FINALLY
	TOKEN_RETRY

	// I/O & resources
	TOKEN_OPEN
	TOKEN_CLOSE
	TOKEN_FILE
	TOKEN_URL
	TOKEN_DATABASE
	TOKEN_AT
	TOKEN_READ
	TOKEN_WRITE
	TOKEN_INTO
	TOKEN_LISTEN
	TOKEN_ON
	TOKEN_PORT
	TOKEN_WAIT
	TOKEN_REQUEST
	TOKEN_RESPOND
	TOKEN_STATUS
	TOKEN_CONTENT_TYPE
	TOKEN_EXECUTE
	TOKEN_COMMAND
	TOKEN_SPAWN
	TOKEN_PROCESS
	TOKEN_KILL
	TOKEN_SHELL
	TOKEN_USING
	TOKEN_SERVER

	// Containers / object system
	TOKEN_CONTAINER
	TOKEN_INTERFACE
	TOKEN_EXTENDS
	TOKEN_IMPLEMENTS
	TOKEN_PROPERTY
	TOKEN_STATIC
	TOKEN_EVENT
	TOKEN_HANDLER
	TOKEN_TRIGGER
	TOKEN_NEW
	TOKEN_INSTANCE
	TOKEN_PARENT
	TOKEN_PUBLIC
	TOKEN_PRIVATE
	TOKEN_REQUIRES

	// Patterns (contextual keywords inside create pattern ... end pattern)
	TOKEN_PATTERN
	TOKEN_MATCHES
	TOKEN_FINDTEXT
	TOKEN_REPLACE
	TOKEN_SPLIT
	TOKEN_CAPTURE
	TOKEN_OPTIONAL
	TOKEN_ZERO
	TOKEN_ONE
	TOKEN_MORE
	TOKEN_EXACTLY
	TOKEN_LEAST
	TOKEN_MOST
	TOKEN_DIGIT
	TOKEN_LETTER
	TOKEN_WHITESPACE
	TOKEN_ANY
	TOKEN_CHARACTER
	TOKEN_PUNCTUATION
	TOKEN_START
	TOKEN_TEXT
	TOKEN_FOLLOWED
	TOKEN_PRECEDED

	// Natural-language operators
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_TIMES
	TOKEN_DIVIDED
	TOKEN_MOD
	TOKEN_IS
	TOKEN_NOT
	TOKEN_EQUAL
	TOKEN_GREATER
	TOKEN_LESS
	TOKEN_THAN
	TOKEN_ABOVE
	TOKEN_BELOW
	TOKEN_OR
	TOKEN_AND

	// Punctuation
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_COMMA
	TOKEN_COLON
	TOKEN_DOT
)

// tokenTypeNames maps token types to display names, used for diagnostics.
var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_NEWLINE:        "NEWLINE",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_INT_LITERAL:    "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:  "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL: "STRING_LITERAL",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NOTHING:        "NOTHING",
	TOKEN_STORE:          "STORE",
	TOKEN_CREATE:         "CREATE",
	TOKEN_CHANGE:         "CHANGE",
	TOKEN_TO:             "TO",
	TOKEN_AS:             "AS",
	TOKEN_DISPLAY:        "DISPLAY",
	TOKEN_CHECK:          "CHECK",
	TOKEN_IF:             "IF",
	TOKEN_THEN:           "THEN",
	TOKEN_OTHERWISE:      "OTHERWISE",
	TOKEN_END:            "END",
	TOKEN_COUNT:          "COUNT",
	TOKEN_FROM:           "FROM",
	TOKEN_BY:             "BY",
	TOKEN_STEP:           "STEP",
	TOKEN_UP:             "UP",
	TOKEN_DOWN:           "DOWN",
	TOKEN_FOR:            "FOR",
	TOKEN_EACH:           "EACH",
	TOKEN_IN:             "IN",
	TOKEN_OF:             "OF",
	TOKEN_WHILE:          "WHILE",
	TOKEN_UNTIL:          "UNTIL",
	TOKEN_REPEAT:         "REPEAT",
	TOKEN_FOREVER:        "FOREVER",
	TOKEN_MAIN:           "MAIN",
	TOKEN_LOOP:           "LOOP",
	TOKEN_DEFINE:         "DEFINE",
	TOKEN_ACTION:         "ACTION",
	TOKEN_CALLED:         "CALLED",
	TOKEN_WITH:           "WITH",
	TOKEN_NEEDS:          "NEEDS",
	TOKEN_GIVES:          "GIVES",
	TOKEN_BACK:           "BACK",
	TOKEN_RETURN:         "RETURN",
	TOKEN_BREAK:          "BREAK",
	TOKEN_CONTINUE:       "CONTINUE",
	TOKEN_SKIP:           "SKIP",
	TOKEN_TRY:            "TRY",
	TOKEN_WHEN:           "WHEN",
	TOKEN_CATCH:          "CATCH",
	TOKEN_FINALLY:        "FINALLY",
	TOKEN_RETRY:          "RETRY",
	TOKEN_OPEN:           "OPEN",
	TOKEN_CLOSE:          "CLOSE",
	TOKEN_FILE:           "FILE",
	TOKEN_URL:            "URL",
	TOKEN_DATABASE:       "DATABASE",
	TOKEN_AT:             "AT",
	TOKEN_READ:           "READ",
	TOKEN_WRITE:          "WRITE",
	TOKEN_INTO:           "INTO",
	TOKEN_LISTEN:         "LISTEN",
	TOKEN_ON:             "ON",
	TOKEN_PORT:           "PORT",
	TOKEN_WAIT:           "WAIT",
	TOKEN_REQUEST:        "REQUEST",
	TOKEN_RESPOND:        "RESPOND",
	TOKEN_STATUS:         "STATUS",
	TOKEN_CONTENT_TYPE:   "CONTENT_TYPE",
	TOKEN_EXECUTE:        "EXECUTE",
	TOKEN_COMMAND:        "COMMAND",
	TOKEN_SPAWN:          "SPAWN",
	TOKEN_PROCESS:        "PROCESS",
	TOKEN_KILL:           "KILL",
	TOKEN_SHELL:          "SHELL",
	TOKEN_USING:          "USING",
	TOKEN_SERVER:         "SERVER",
	TOKEN_CONTAINER:      "CONTAINER",
	TOKEN_INTERFACE:      "INTERFACE",
	TOKEN_EXTENDS:        "EXTENDS",
	TOKEN_IMPLEMENTS:     "IMPLEMENTS",
	TOKEN_PROPERTY:       "PROPERTY",
	TOKEN_STATIC:         "STATIC",
	TOKEN_EVENT:          "EVENT",
	TOKEN_HANDLER:        "HANDLER",
	TOKEN_TRIGGER:        "TRIGGER",
	TOKEN_NEW:            "NEW",
	TOKEN_INSTANCE:       "INSTANCE",
	TOKEN_PARENT:         "PARENT",
	TOKEN_PUBLIC:         "PUBLIC",
	TOKEN_PRIVATE:        "PRIVATE",
	TOKEN_REQUIRES:       "REQUIRES",
	TOKEN_PATTERN:        "PATTERN",
	TOKEN_MATCHES:        "MATCHES",
	TOKEN_FINDTEXT:       "FIND",
	TOKEN_REPLACE:        "REPLACE",
	TOKEN_SPLIT:          "SPLIT",
	TOKEN_CAPTURE:        "CAPTURE",
	TOKEN_OPTIONAL:       "OPTIONAL",
	TOKEN_ZERO:           "ZERO",
	TOKEN_ONE:            "ONE",
	TOKEN_MORE:           "MORE",
	TOKEN_EXACTLY:        "EXACTLY",
	TOKEN_LEAST:          "LEAST",
	TOKEN_MOST:           "MOST",
	TOKEN_DIGIT:          "DIGIT",
	TOKEN_LETTER:         "LETTER",
	TOKEN_WHITESPACE:     "WHITESPACE",
	TOKEN_ANY:            "ANY",
	TOKEN_CHARACTER:      "CHARACTER",
	TOKEN_PUNCTUATION:    "PUNCTUATION",
	TOKEN_START:          "START",
	TOKEN_TEXT:           "TEXT",
	TOKEN_FOLLOWED:       "FOLLOWED",
	TOKEN_PRECEDED:       "PRECEDED",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_TIMES:          "TIMES",
	TOKEN_DIVIDED:        "DIVIDED",
	TOKEN_MOD:            "MOD",
	TOKEN_IS:             "IS",
	TOKEN_NOT:            "NOT",
	TOKEN_EQUAL:          "EQUAL",
	TOKEN_GREATER:        "GREATER",
	TOKEN_LESS:           "LESS",
	TOKEN_THAN:           "THAN",
	TOKEN_ABOVE:          "ABOVE",
	TOKEN_BELOW:          "BELOW",
	TOKEN_OR:             "OR",
	TOKEN_AND:            "AND",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_COMMA:          "COMMA",
	TOKEN_COLON:          "COLON",
	TOKEN_DOT:            "DOT",
}

// String returns the display name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Span is a source location: a 1-based line/column and a byte length.
type Span struct {
	Line   int
	Column int
	Length int
}

// Token is a single lexical token with its source position.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // parsed value for INT/FLOAT/STRING/TRUE/FALSE literals
	Span    Span
}

// String renders the token for diagnostics and test failures.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Type, t.Lexeme, t.Literal, t.Span.Line, t.Span.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Span.Line, t.Span.Column)
}

// Keywords is the closed set of WFL reserved words. Case-sensitive,
// lowercase only, per spec.md §4.1. Multi-word operators such as
// "divided by" are represented as two adjacent keyword tokens joined by
// the parser, not as a single lexer-level entry.
var Keywords = map[string]TokenType{
	"store": TOKEN_STORE, "create": TOKEN_CREATE, "change": TOKEN_CHANGE,
	"to": TOKEN_TO, "as": TOKEN_AS, "display": TOKEN_DISPLAY,
	"check": TOKEN_CHECK, "if": TOKEN_IF, "then": TOKEN_THEN,
	"otherwise": TOKEN_OTHERWISE, "end": TOKEN_END, "count": TOKEN_COUNT,
	"from": TOKEN_FROM, "by": TOKEN_BY, "step": TOKEN_STEP,
	"up": TOKEN_UP, "down": TOKEN_DOWN, "for": TOKEN_FOR, "each": TOKEN_EACH,
	"in": TOKEN_IN, "of": TOKEN_OF, "while": TOKEN_WHILE, "until": TOKEN_UNTIL,
	"repeat": TOKEN_REPEAT, "forever": TOKEN_FOREVER, "main": TOKEN_MAIN,
	"loop": TOKEN_LOOP, "define": TOKEN_DEFINE, "action": TOKEN_ACTION,
	"called": TOKEN_CALLED, "with": TOKEN_WITH, "needs": TOKEN_NEEDS,
	"gives": TOKEN_GIVES, "give": TOKEN_GIVES, "back": TOKEN_BACK, "return": TOKEN_RETURN,
	"break": TOKEN_BREAK, "continue": TOKEN_CONTINUE, "skip": TOKEN_SKIP,
	"try": TOKEN_TRY, "when": TOKEN_WHEN, "catch": TOKEN_CATCH,
	"finally": TOKEN_FINALLY, "retry": TOKEN_RETRY,
	"open": TOKEN_OPEN, "close": TOKEN_CLOSE, "file": TOKEN_FILE,
	"url": TOKEN_URL, "database": TOKEN_DATABASE, "at": TOKEN_AT,
	"read": TOKEN_READ, "write": TOKEN_WRITE, "into": TOKEN_INTO,
	"listen": TOKEN_LISTEN, "on": TOKEN_ON, "port": TOKEN_PORT,
	"wait": TOKEN_WAIT, "request": TOKEN_REQUEST, "respond": TOKEN_RESPOND,
	"status": TOKEN_STATUS, "content_type": TOKEN_CONTENT_TYPE,
	"execute": TOKEN_EXECUTE, "command": TOKEN_COMMAND, "spawn": TOKEN_SPAWN,
	"process": TOKEN_PROCESS, "kill": TOKEN_KILL, "shell": TOKEN_SHELL,
	"using": TOKEN_USING, "server": TOKEN_SERVER,
	"container": TOKEN_CONTAINER, "interface": TOKEN_INTERFACE,
	"extends": TOKEN_EXTENDS, "implements": TOKEN_IMPLEMENTS,
	"property": TOKEN_PROPERTY, "static": TOKEN_STATIC, "event": TOKEN_EVENT,
	"handler": TOKEN_HANDLER, "trigger": TOKEN_TRIGGER, "new": TOKEN_NEW,
	"instance": TOKEN_INSTANCE, "parent": TOKEN_PARENT,
	"public": TOKEN_PUBLIC, "private": TOKEN_PRIVATE, "requires": TOKEN_REQUIRES,
	"pattern": TOKEN_PATTERN, "matches": TOKEN_MATCHES, "find": TOKEN_FINDTEXT,
	"replace": TOKEN_REPLACE, "split": TOKEN_SPLIT,
	"capture": TOKEN_CAPTURE, "optional": TOKEN_OPTIONAL, "zero": TOKEN_ZERO,
	"one": TOKEN_ONE, "more": TOKEN_MORE, "exactly": TOKEN_EXACTLY,
	"least": TOKEN_LEAST, "most": TOKEN_MOST, "digit": TOKEN_DIGIT,
	"letter": TOKEN_LETTER, "whitespace": TOKEN_WHITESPACE, "any": TOKEN_ANY,
	"character": TOKEN_CHARACTER, "punctuation": TOKEN_PUNCTUATION,
	"start": TOKEN_START, "text": TOKEN_TEXT, "followed": TOKEN_FOLLOWED,
	"preceded": TOKEN_PRECEDED,
	"plus": TOKEN_PLUS, "minus": TOKEN_MINUS, "times": TOKEN_TIMES,
	"divided": TOKEN_DIVIDED, "mod": TOKEN_MOD, "is": TOKEN_IS, "not": TOKEN_NOT,
	"equal": TOKEN_EQUAL, "greater": TOKEN_GREATER, "less": TOKEN_LESS,
	"than": TOKEN_THAN, "above": TOKEN_ABOVE, "below": TOKEN_BELOW,
	"or": TOKEN_OR, "and": TOKEN_AND,
	"true": TOKEN_TRUE, "false": TOKEN_FALSE,
	"nothing": TOKEN_NOTHING, "missing": TOKEN_NOTHING, "undefined": TOKEN_NOTHING,
}

// IsKeyword reports whether s is a WFL reserved word.
func IsKeyword(s string) bool {
	_, ok := Keywords[s]
	return ok
}

// LexError describes a single lexical error.
type LexError struct {
	Message string
	Span    Span
	Lexeme  string
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s (near %q)", e.Span.Line, e.Span.Column, e.Message, e.Lexeme)
}
