package dispatchers

import (
	"fmt"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// CommandContext is what a handler sees: the source, the input, the node
// being executed and every argument bound along the matched path.
type CommandContext struct {
	Source any
	Input  string
	Node   NodeID
	Path   []NodeID

	arguments map[string]ParsedArgument
	snap      *snapshot
}

func newCommandContext(res *ParseResult, node NodeID) *CommandContext {
	path := make([]NodeID, len(res.Path))
	copy(path, res.Path)
	return &CommandContext{
		Source:    res.Source,
		Input:     res.Input,
		Node:      node,
		Path:      path,
		arguments: res.Arguments,
		snap:      res.snap,
	}
}

// Command returns the display path of the executing node.
func (c *CommandContext) Command() string {
	return c.snap.pathOf(c.snap.node(c.Node))
}

// Has reports whether an argument called name was bound.
func (c *CommandContext) Has(name string) bool {
	_, ok := c.arguments[name]
	return ok
}

// Argument returns the raw binding for name.
func (c *CommandContext) Argument(name string) (ParsedArgument, bool) {
	a, ok := c.arguments[name]
	return a, ok
}

// RawArgument returns the exact input text an argument was read from.
func (c *CommandContext) RawArgument(name string) string {
	a, ok := c.arguments[name]
	if !ok {
		return ""
	}
	return c.Input[a.Start:a.End]
}

func argumentAs[T any](c *CommandContext, name string) (T, error) {
	var zero T
	a, ok := c.arguments[name]
	if !ok {
		return zero, usage.InvalidArgument(name, "was not provided")
	}
	v, ok := a.Value.(T)
	if !ok {
		return zero, usage.InvalidArgument(name, fmt.Sprintf("is a %T, not a %T", a.Value, zero))
	}
	return v, nil
}

// String returns a string-valued argument (literal-string, word).
func (c *CommandContext) String(name string) (string, error) {
	return argumentAs[string](c, name)
}

// Int returns an integer argument.
func (c *CommandContext) Int(name string) (int, error) {
	return argumentAs[int](c, name)
}

// IntOr returns an integer argument, or def if it was not bound.
func (c *CommandContext) IntOr(name string, def int) (int, error) {
	if !c.Has(name) {
		return def, nil
	}
	return c.Int(name)
}

// Bool returns a boolean argument.
func (c *CommandContext) Bool(name string) (bool, error) {
	return argumentAs[bool](c, name)
}

// Message returns a greedy-message argument.
func (c *CommandContext) Message(name string) (Message, error) {
	return argumentAs[Message](c, name)
}

// Selector returns an unresolved entity selector argument.
func (c *CommandContext) Selector(name string) (EntitySelector, error) {
	return argumentAs[EntitySelector](c, name)
}

// GetEntity resolves an entity-selector argument against the source.
func GetEntity(c *CommandContext, name string) (Entity, error) {
	sel, err := c.Selector(name)
	if err != nil {
		return nil, err
	}
	return sel.Resolve(c.Source)
}

// GetPlayer resolves a selector argument and requires a player.
func GetPlayer(c *CommandContext, name string) (Entity, error) {
	sel, err := c.Selector(name)
	if err != nil {
		return nil, err
	}
	sel.PlayersOnly = true
	return sel.Resolve(c.Source)
}
