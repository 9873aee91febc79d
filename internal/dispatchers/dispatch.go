package dispatchers

import (
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Status classifies a handler's integer result.
type Status int

const (
	StatusFailure Status = iota - 1
	StatusNoEffect
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoEffect:
		return "no effect"
	default:
		return "failure"
	}
}

// Classify maps a handler result to a Status. The magnitude is not
// interpreted.
func Classify(result int) Status {
	switch {
	case result > 0:
		return StatusSuccess
	case result == 0:
		return StatusNoEffect
	default:
		return StatusFailure
	}
}

// Outcome is the result of running a handler.
type Outcome struct {
	Result int
	Status Status

	// Node is the node whose handler ran. It differs from the deepest
	// matched node when the handler was found on an ancestor.
	Node     NodeID
	Fallback bool
}

// Dispatch runs the handler of res's deepest node, or of its closest
// ancestor that has one.
func (d *Dispatcher) Dispatch(res *ParseResult) (Outcome, error) {
	return Dispatch(res)
}

// Execute parses input for source and dispatches it.
func (d *Dispatcher) Execute(input string, source any) (Outcome, error) {
	res, err := d.Parse(input, source)
	if err != nil {
		return Outcome{}, err
	}
	return Dispatch(res)
}

// Dispatch runs the handler of res's deepest node, or of its closest
// ancestor that has one. A handler error is returned as *ExecutionError
// without trying further ancestors. With no handler anywhere on the path
// it returns *NoHandlerError for the deepest node.
func Dispatch(res *ParseResult) (Outcome, error) {
	if res == nil || len(res.Path) == 0 {
		return Outcome{}, usage.NoHandlerAttached("", -1, "", nil)
	}

	deepest := len(res.Path) - 1
	for i := deepest; i >= 0; i-- {
		n := res.snap.node(res.Path[i])
		if n.handler == nil {
			continue
		}

		result, err := n.handler(newCommandContext(res, n.id))
		if err != nil {
			return Outcome{Node: n.id}, &ExecutionError{
				Node:    n.id,
				Command: res.snap.pathOf(n),
				Err:     err,
			}
		}
		return Outcome{
			Result:   result,
			Status:   Classify(result),
			Node:     n.id,
			Fallback: i != deepest,
		}, nil
	}

	return Outcome{}, newNoHandlerError(res)
}

func newNoHandlerError(res *ParseResult) *NoHandlerError {
	n := res.Node()
	command := res.snap.pathOf(n)
	continuations := childUsage(res.snap, n, res.Source)
	return &NoHandlerError{
		Node:    n.id,
		Command: command,
		Usage:   continuations,
		err:     usage.NoHandlerAttached(res.Input, res.Cursor, command, continuations),
	}
}
