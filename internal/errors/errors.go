// Package errors defines the structured error taxonomy surfaced by every
// pipeline stage (lexer, parser, evaluator, registry, extension adapter),
// and formats them with source context the way a CLI front-end would print
// them: a position, a message, and a line-and-caret rendering.
package errors

import (
	"fmt"
	"strings"

	"github.com/rscarson/lavendeux-parser/internal/token"
)

// Kind identifies a specific error condition from the taxonomy in the
// specification's error-handling design.
type Kind string

const (
	// Parse errors.
	UnexpectedToken    Kind = "UnexpectedToken"
	UnterminatedLiteral Kind = "UnterminatedLiteral"
	UnterminatedGroup  Kind = "UnterminatedGroup"
	StrayDecorator     Kind = "StrayDecorator"
	StrayPostfix       Kind = "StrayPostfix"

	// Name resolution errors.
	UnknownVariable  Kind = "UnknownVariable"
	UnknownFunction  Kind = "UnknownFunction"
	UnknownDecorator Kind = "UnknownDecorator"
	ReadOnly         Kind = "ReadOnly"

	// Type / arity errors.
	ArgumentCount    Kind = "ArgumentCount"
	ArgumentType     Kind = "ArgumentType"
	IndexType        Kind = "IndexType"
	KeyMissing       Kind = "KeyMissing"
	IndexOutOfRange  Kind = "IndexOutOfRange"

	// Arithmetic errors.
	DivideByZero Kind = "DivideByZero"
	Overflow     Kind = "Overflow"
	DomainError  Kind = "DomainError"

	// Runtime errors.
	RecursionLimit   Kind = "RecursionLimit"
	ExtensionFailure Kind = "ExtensionFailure"

	// I/O errors.
	NetworkError Kind = "NetworkError"
	IOError      Kind = "IOError"
)

// Error is the structured error type produced anywhere in the pipeline. It
// always carries a Kind, a human-readable message, and the source position
// that produced it, plus the offending token text where there is one.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Token   string

	// Handler is set only for ExtensionFailure: the name of the extension
	// function/decorator handler whose invocation failed.
	Handler string
	// Wrapped is the underlying sandbox error for ExtensionFailure, if any.
	Wrapped error

	// Trace is the user-function call stack active when the error was
	// raised, set by the evaluator only for RecursionLimit.
	Trace StackTrace
}

// New builds an Error with a formatted message.
func New(kind Kind, pos token.Position, tok string, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Token:   tok,
	}
}

// Error implements the error interface with a one-line rendering.
func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s at %s (%q): %s", e.Kind, e.Pos, e.Token, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

// Unwrap exposes the wrapped sandbox error, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Format renders the error with a source-line-and-caret view, for CLI
// consumption.
func (e *Error) Format(source string, color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))

	if line := sourceLine(source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if len(e.Trace) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.Trace.String())
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
