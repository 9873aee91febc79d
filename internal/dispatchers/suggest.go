package dispatchers

import "strings"

// Suggest returns the candidate completions for the last, incomplete token
// of partial. Completed tokens (those followed by a separator) are matched
// as Parse would; suggestions are gathered at the first incomplete one in
// child insertion order. It never fails and never modifies the tree.
func (d *Dispatcher) Suggest(partial string, source any) []string {
	snap := d.snap.Load()
	reader := NewStringReader(partial)

	current := snap.root()
	for {
		start := reader.Cursor()
		child, _, _ := matchChild(snap, current, reader, source)
		if child == nil || reader.AtEnd() {
			reader.SetCursor(start)
			break
		}
		// matchChild only stops short of the end at a separator.
		reader.Skip()
		current = child
	}

	return collectSuggestions(snap, current, reader, source)
}

func collectSuggestions(snap *snapshot, current *Node, reader *StringReader, source any) []string {
	start := reader.Cursor()
	partial := strings.ToLower(reader.Remaining())

	out := []string{}
	for _, c := range snap.effectiveChildren(current) {
		if !c.CanUse(source) {
			continue
		}
		switch c.kind {
		case KindLiteral:
			if strings.HasPrefix(strings.ToLower(c.name), partial) {
				out = append(out, c.name)
			}
		case KindArgument:
			if c.argType.Suggest == nil {
				continue
			}
			out = append(out, c.argType.Suggest(reader, source)...)
			reader.SetCursor(start)
		}
	}
	return out
}
