package dispatchers

import (
	"slices"
	"strings"
)

// Usage returns one usage line per visible continuation of node id, e.g.
// ["clear", "rain", "thunder"] for a weather node.
func (d *Dispatcher) Usage(id NodeID, source any) []string {
	snap := d.snap.Load()
	n := snap.node(id)
	if n == nil {
		return nil
	}
	return childUsage(snap, n, source)
}

// AllUsage lists every executable or redirecting path visible to source,
// in tree order, e.g. "test_weather rain" or "msg -> tell2".
func (d *Dispatcher) AllUsage(source any) []string {
	snap := d.snap.Load()
	var out []string
	collectUsage(snap, snap.root(), nil, source, &out)
	return out
}

func collectUsage(snap *snapshot, n *Node, prefix []string, source any, out *[]string) {
	if n.kind != KindRoot {
		prefix = append(prefix, n.UsageToken())
		if n.redirect != NoNode {
			target := snap.node(n.redirect)
			dest := snap.pathOf(target)
			if target.kind == KindRoot {
				dest = "..."
			}
			*out = append(*out, strings.Join(prefix, " ")+" -> "+dest)
			return
		}
		if n.handler != nil {
			*out = append(*out, strings.Join(prefix, " "))
		}
	}
	for _, id := range n.children {
		c := snap.node(id)
		if c.CanUse(source) {
			collectUsage(snap, c, slices.Clip(prefix), source, out)
		}
	}
}

func childUsage(snap *snapshot, n *Node, source any) []string {
	var out []string
	for _, c := range snap.effectiveChildren(n) {
		if c.CanUse(source) {
			out = append(out, smartUsage(snap, c, source))
		}
	}
	return out
}

// smartUsage renders a node and one level of its continuations, Brigadier
// style: "tell2 <player>", "kill2 [<target>]" when kill2 itself executes,
// "weather (clear|rain|thunder)".
func smartUsage(snap *snapshot, n *Node, source any) string {
	token := n.UsageToken()
	if n.redirect != NoNode {
		target := snap.node(n.redirect)
		if target.kind == KindRoot {
			return token + " -> ..."
		}
		return token + " -> " + snap.pathOf(target)
	}

	var next []string
	for _, c := range snap.effectiveChildren(n) {
		if c.CanUse(source) {
			next = append(next, c.UsageToken())
		}
	}
	if len(next) == 0 {
		return token
	}

	opening, closing := "(", ")"
	if n.handler != nil {
		opening, closing = "[", "]"
	}
	if len(next) == 1 && n.handler == nil {
		return token + " " + next[0]
	}
	return token + " " + opening + strings.Join(next, "|") + closing
}
