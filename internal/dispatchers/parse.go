package dispatchers

import (
	"github.com/footprint-tools/cmdtree/internal/usage"
)

const defaultSuggestionsCount = 3

// ParsedArgument is a value bound by an argument node, with the span of
// input it was read from.
type ParsedArgument struct {
	Start int
	End   int
	Value any
}

// Alternative lists the siblings that would also have accepted the token
// read at Cursor under node At. The child that won is not among Nodes.
type Alternative struct {
	At     NodeID
	Cursor int
	Nodes  []NodeID
}

// ParseResult is a successful descent through the tree: the matched path
// from the root, the argument bindings along it and the source it was
// parsed for. It pins the tree version it was parsed against.
type ParseResult struct {
	Input     string
	Source    any
	Path      []NodeID
	Arguments map[string]ParsedArgument
	Cursor    int

	// Alternatives records each step where more than one visible child
	// matched. The first match still wins.
	Alternatives []Alternative

	snap *snapshot
}

// Remaining returns the input after the cursor. Parse rejects unconsumed
// input, so this is empty for any result it returns.
func (r *ParseResult) Remaining() string {
	return r.Input[min(r.Cursor, len(r.Input)):]
}

// Node returns the deepest matched node.
func (r *ParseResult) Node() *Node {
	return r.snap.node(r.Path[len(r.Path)-1])
}

// Nodes returns the matched path as nodes, root first.
func (r *ParseResult) Nodes() []*Node {
	out := make([]*Node, len(r.Path))
	for i, id := range r.Path {
		out[i] = r.snap.node(id)
	}
	return out
}

// Parse matches input against the tree for source. It fails with the exact
// cursor offset if any input is left that no visible child accepts.
func (d *Dispatcher) Parse(input string, source any) (*ParseResult, error) {
	snap := d.snap.Load()
	reader := NewStringReader(input)

	res := &ParseResult{
		Input:     input,
		Source:    source,
		Path:      []NodeID{rootID},
		Arguments: make(map[string]ParsedArgument),
		snap:      snap,
	}

	current := snap.root()
	for !reader.AtEnd() {
		if len(res.Path) > 1 {
			if err := reader.ExpectSeparator(); err != nil {
				return nil, err
			}
		}

		start := reader.Cursor()
		child, arg, err := matchChild(snap, current, reader, source)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, noMatch(snap, current, reader, source)
		}

		if others := alsoAccepting(snap, current, child, input, start, source); len(others) > 0 {
			res.Alternatives = append(res.Alternatives, Alternative{At: current.id, Cursor: start, Nodes: others})
		}

		res.Path = append(res.Path, child.id)
		if child.kind == KindArgument {
			res.Arguments[child.name] = arg
		}
		current = child
	}

	res.Cursor = reader.Cursor()
	return res, nil
}

// matchChild tries current's visible children at the cursor: literals
// first, then arguments, each in insertion order. The first match wins and
// the reader is left after it. With no match the reader is unchanged and
// the first argument parse error, if any, is returned.
func matchChild(snap *snapshot, current *Node, reader *StringReader, source any) (*Node, ParsedArgument, error) {
	children := snap.effectiveChildren(current)
	tok := reader.peekToken()

	for _, c := range children {
		if c.kind == KindLiteral && c.name == tok && c.CanUse(source) {
			reader.SetCursor(reader.Cursor() + len(tok))
			return c, ParsedArgument{}, nil
		}
	}

	if tok == "" {
		// Nothing but a separator or end of input at the cursor; only a
		// greedy argument could take it, and those refuse empty input.
		return nil, ParsedArgument{}, nil
	}

	var firstErr error
	for _, c := range children {
		if c.kind != KindArgument || !c.CanUse(source) {
			continue
		}

		arg, err := readArgument(c, reader)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return c, arg, nil
	}

	return nil, ParsedArgument{}, firstErr
}

// readArgument parses c's value at the cursor. The span must be non-empty
// and end at a separator or the end of input. On failure the cursor is
// restored.
func readArgument(c *Node, reader *StringReader) (ParsedArgument, error) {
	start := reader.Cursor()
	value, err := c.argType.Parse(reader)
	if err == nil && reader.Cursor() == start {
		err = usage.EmptyArgument(reader.Input(), start)
	}
	if err == nil && !reader.AtEnd() {
		if ch, _ := reader.Peek(); ch != separator {
			err = usage.ExpectedSeparator(reader.Input(), reader.Cursor())
		}
	}
	if err != nil {
		reader.SetCursor(start)
		return ParsedArgument{}, err
	}
	return ParsedArgument{Start: start, End: reader.Cursor(), Value: value}, nil
}

// alsoAccepting returns the visible children of current, other than
// winner, that would have matched the token at start.
func alsoAccepting(snap *snapshot, current, winner *Node, input string, start int, source any) []NodeID {
	var out []NodeID
	for _, c := range snap.effectiveChildren(current) {
		if c.id == winner.id || !c.CanUse(source) {
			continue
		}

		trial := NewStringReader(input)
		trial.SetCursor(start)
		if c.kind == KindLiteral {
			if c.name == trial.peekToken() {
				out = append(out, c.id)
			}
			continue
		}
		if _, err := readArgument(c, trial); err == nil {
			out = append(out, c.id)
		}
	}
	return out
}

func noMatch(snap *snapshot, current *Node, reader *StringReader, source any) error {
	var names []string
	for _, c := range snap.effectiveChildren(current) {
		if c.kind == KindLiteral && c.CanUse(source) {
			names = append(names, c.name)
		}
	}
	hints := FindSimilar(reader.peekToken(), names, defaultSuggestionsCount)
	return usage.NoMatchingChild(reader.Input(), reader.Cursor(), hints...)
}
