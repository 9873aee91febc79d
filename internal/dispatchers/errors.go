package dispatchers

import (
	"fmt"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// NoHandlerError is returned by Dispatch when no node on the matched path
// carries a handler. Node is the deepest node reached and Usage lists its
// valid continuations.
type NoHandlerError struct {
	Node    NodeID
	Command string
	Usage   []string

	err *usage.Error
}

func (e *NoHandlerError) Error() string { return e.err.Error() }

// Unwrap exposes the usage error so exit codes and kinds apply.
func (e *NoHandlerError) Unwrap() error { return e.err }

// ExecutionError wraps an error returned by a handler. Dispatch does not
// fall back to ancestors when a handler fails.
type ExecutionError struct {
	Node    NodeID
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns the handler's error unchanged.
func (e *ExecutionError) Unwrap() error { return e.Err }
