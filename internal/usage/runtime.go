package usage

import (
	"fmt"
	"strings"
)

// NoSuchEntity is returned when a selector matches no live entity.
func NoSuchEntity(selector string) *Error {
	return &Error{
		Kind:    ErrNoSuchEntity,
		Message: fmt.Sprintf("no entity was found for '%s'", selector),
		Cursor:  -1,
	}
}

// NotAPlayer is returned when a player selector resolves to a non-player entity.
func NotAPlayer(name string) *Error {
	return &Error{
		Kind:    ErrNotAPlayer,
		Message: fmt.Sprintf("'%s' is not a player", name),
		Cursor:  -1,
	}
}

// NoHandlerAttached is returned when neither the deepest matched node nor
// any of its ancestors can execute. Cursor is where parsing stopped and
// Hints carry the valid continuations.
func NoHandlerAttached(input string, cursor int, command string, continuations []string) *Error {
	msg := "unknown or incomplete command"
	if command != "" {
		msg += fmt.Sprintf(" '%s'", command)
	}
	if len(continuations) > 0 {
		msg += "; expected " + strings.Join(continuations, " | ")
	}
	return &Error{
		Kind:    ErrNoHandlerAttached,
		Message: msg,
		Input:   input,
		Cursor:  cursor,
		Hints:   continuations,
	}
}

// InvalidArgument is returned when a handler asks for an argument the
// parse did not bind, or reads it as the wrong type.
func InvalidArgument(name, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidArgument,
		Message: fmt.Sprintf("argument '%s' %s", name, reason),
		Cursor:  -1,
	}
}

// InvalidConfig is returned when the host configuration cannot be used.
func InvalidConfig(reason string) *Error {
	return &Error{
		Kind:    ErrInvalidConfig,
		Message: "invalid configuration: " + reason,
		Cursor:  -1,
	}
}

// Store wraps a world store failure.
func Store(op string, err error) *Error {
	return &Error{
		Kind:    ErrStore,
		Message: fmt.Sprintf("store: %s: %v", op, err),
		Cursor:  -1,
		Err:     err,
	}
}
