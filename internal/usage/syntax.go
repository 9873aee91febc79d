package usage

import (
	"fmt"
	"strings"
)

func syntax(kind ErrorKind, input string, cursor int, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Input: input, Cursor: cursor}
}

// UnterminatedQuote is returned when a quoted string has no closing quote.
func UnterminatedQuote(input string, cursor int) *Error {
	return syntax(ErrUnterminatedQuote, input, cursor, "unclosed quoted string")
}

// ExpectedQuote is returned when a quoted string is required but the input
// does not start with a quote.
func ExpectedQuote(input string, cursor int) *Error {
	return syntax(ErrExpectedQuote, input, cursor, "expected quote to start a string")
}

// InvalidEscape is returned for a backslash followed by anything but a quote or backslash.
func InvalidEscape(input string, cursor int, ch byte) *Error {
	return syntax(ErrInvalidEscape, input, cursor, fmt.Sprintf("invalid escape sequence '\\%c' in quoted string", ch))
}

// EndOfInput is returned when a read is attempted past the end of the input.
func EndOfInput(input string, cursor int) *Error {
	return syntax(ErrEndOfInput, input, cursor, "unexpected end of input")
}

// ExpectedSeparator is returned when an argument is followed by trailing data.
func ExpectedSeparator(input string, cursor int) *Error {
	return syntax(ErrExpectedSeparator, input, cursor, "expected whitespace to end one argument, but found trailing data")
}

// NoMatchingChild is returned when no node accepts the token at cursor.
// Hints are similar literal names, best first.
func NoMatchingChild(input string, cursor int, hints ...string) *Error {
	msg := "unknown or incorrect argument"
	if len(hints) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(hints), ", "))
	}
	e := syntax(ErrNoMatchingChild, input, cursor, msg)
	e.Hints = hints
	return e
}

// InvalidInteger is returned when an integer argument cannot be read.
func InvalidInteger(input string, cursor int, got string) *Error {
	if got == "" {
		return syntax(ErrInvalidInteger, input, cursor, "expected integer")
	}
	return syntax(ErrInvalidInteger, input, cursor, fmt.Sprintf("invalid integer '%s'", got))
}

// InvalidBool is returned when a boolean argument is neither true nor false.
func InvalidBool(input string, cursor int, got string) *Error {
	if got == "" {
		return syntax(ErrInvalidBool, input, cursor, "expected bool")
	}
	return syntax(ErrInvalidBool, input, cursor, fmt.Sprintf("invalid bool, expected true or false but found '%s'", got))
}

// InvalidSelector is returned for malformed or multi-target entity selectors.
func InvalidSelector(input string, cursor int, reason string) *Error {
	return syntax(ErrInvalidSelector, input, cursor, "invalid entity selector: "+reason)
}

// EmptyArgument is returned when an argument would consume no input.
func EmptyArgument(input string, cursor int) *Error {
	return syntax(ErrEmptyArgument, input, cursor, "expected argument")
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = "'" + s + "'"
	}
	return out
}
