package usage

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota

	// Syntax errors raised while reading input.
	ErrUnterminatedQuote
	ErrExpectedQuote
	ErrInvalidEscape
	ErrEndOfInput
	ErrExpectedSeparator
	ErrNoMatchingChild
	ErrInvalidInteger
	ErrInvalidBool
	ErrInvalidSelector
	ErrEmptyArgument

	// Tree construction errors.
	ErrUnknownArgumentType
	ErrUnknownNode
	ErrRedirectCycle
	ErrInvalidTree

	// Errors raised at dispatch or execution time.
	ErrNoSuchEntity
	ErrNotAPlayer
	ErrNoHandlerAttached
	ErrInvalidArgument

	// Host environment errors.
	ErrInvalidConfig
	ErrStore
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Tree construction errors
//	  - Handler asking for a missing or mistyped argument
//	  - Invalid config, store failures
//
//	Exit 2: User input errors
//	  - Every syntax error
//	  - Unknown entity, not a player
//	  - Incomplete command (no handler attached)
var exitCodes = map[ErrorKind]int{
	ErrUnknown:             1,
	ErrUnterminatedQuote:   2,
	ErrExpectedQuote:       2,
	ErrInvalidEscape:       2,
	ErrEndOfInput:          2,
	ErrExpectedSeparator:   2,
	ErrNoMatchingChild:     2,
	ErrInvalidInteger:      2,
	ErrInvalidBool:         2,
	ErrInvalidSelector:     2,
	ErrEmptyArgument:       2,
	ErrUnknownArgumentType: 1,
	ErrUnknownNode:         1,
	ErrRedirectCycle:       1,
	ErrInvalidTree:         1,
	ErrNoSuchEntity:        2,
	ErrNotAPlayer:          2,
	ErrNoHandlerAttached:   2,
	ErrInvalidArgument:     1,
	ErrInvalidConfig:       1,
	ErrStore:               1,
}

// contextAmount is how many characters of input precede the <--[HERE] marker.
const contextAmount = 10

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string

	// Input and Cursor locate syntax errors. Cursor is -1 when the error
	// is not tied to a position in the input.
	Input  string
	Cursor int

	// Hints holds "did you mean" candidates or usage lines.
	Hints []string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	ctx := e.Context()
	if ctx == "" {
		return e.Message
	}
	return e.Message + " at position " + strconv.Itoa(e.Cursor) + ": " + ctx
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a usage error of the same kind, so callers
// can write errors.Is(err, usage.Kind(usage.ErrNotAPlayer)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Context renders the input up to the cursor followed by a marker, e.g.
// "...ll2 Steve<--[HERE]". Empty when the error has no position.
func (e *Error) Context() string {
	if e.Cursor < 0 || e.Input == "" {
		return ""
	}

	cursor := min(e.Cursor, len(e.Input))

	start := max(0, cursor-contextAmount)
	for start > 0 && !utf8.RuneStart(e.Input[start]) {
		start--
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(e.Input[start:cursor])
	b.WriteString("<--[HERE]")
	return b.String()
}

// GetExitCode returns the appropriate exit code for this error.
func (e *Error) GetExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Kind returns a sentinel for comparisons with errors.Is.
func Kind(kind ErrorKind) *Error {
	return &Error{Kind: kind, Cursor: -1}
}

// KindOf returns the kind of the first usage error in err's chain,
// or ErrUnknown if there is none.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)

// ExitCode maps any error to a process exit code: 0 for nil, the kind's
// code for usage errors, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}
