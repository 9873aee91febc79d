package dispatchers

import "strings"

// NodeID addresses a node in a Dispatcher's arena. IDs are stable for the
// lifetime of the dispatcher.
type NodeID int

// NoNode is the absence of a node reference.
const NoNode NodeID = -1

// NodeKind distinguishes the root container from matchable nodes.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindLiteral
	KindArgument
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Command is a handler attached to a node. The returned integer is a
// convention: >0 success (with a magnitude), 0 no effect, <0 failure.
// A returned error reports a problem only discoverable at execution time.
type Command func(ctx *CommandContext) (int, error)

// Requirement decides whether a node is visible to the given source.
type Requirement func(source any) bool

// Node is a node of the live tree. Nodes are immutable once published;
// structural edits replace them with modified copies.
type Node struct {
	id          NodeID
	kind        NodeKind
	name        string
	typeTag     TypeTag
	argType     ArgumentType
	children    []NodeID
	handler     Command
	requirement Requirement
	redirect    NodeID
	parent      NodeID
}

func (n *Node) ID() NodeID        { return n.id }
func (n *Node) Kind() NodeKind    { return n.kind }
func (n *Node) Name() string      { return n.name }
func (n *Node) TypeTag() TypeTag  { return n.typeTag }
func (n *Node) Redirect() NodeID  { return n.redirect }
func (n *Node) Parent() NodeID    { return n.parent }
func (n *Node) HasHandler() bool  { return n.handler != nil }
func (n *Node) IsRedirect() bool  { return n.redirect != NoNode }
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Children returns the ids of the node's own children in insertion order.
func (n *Node) Children() []NodeID {
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// CanUse reports whether the node's requirement passes for source.
func (n *Node) CanUse(source any) bool {
	return n.requirement == nil || n.requirement(source)
}

// UsageToken is how the node appears in usage strings.
func (n *Node) UsageToken() string {
	switch n.kind {
	case KindArgument:
		return "<" + n.name + ">"
	case KindLiteral:
		return n.name
	default:
		return ""
	}
}

// snapshot is one published version of the arena.
type snapshot struct {
	nodes []*Node
}

const rootID NodeID = 0

func newSnapshot() *snapshot {
	root := &Node{
		id:       rootID,
		kind:     KindRoot,
		redirect: NoNode,
		parent:   NoNode,
	}
	return &snapshot{nodes: []*Node{root}}
}

func (s *snapshot) node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

func (s *snapshot) root() *Node { return s.nodes[rootID] }

// child finds a direct child of parent by name.
func (s *snapshot) child(parent *Node, name string) *Node {
	for _, id := range parent.children {
		if c := s.nodes[id]; c.name == name {
			return c
		}
	}
	return nil
}

// target follows n's redirect chain to the node whose children stand in
// for n's. Chains are acyclic by construction.
func (s *snapshot) target(n *Node) *Node {
	for n.redirect != NoNode {
		n = s.nodes[n.redirect]
	}
	return n
}

// effectiveChildren returns the children parsing continues with after n.
func (s *snapshot) effectiveChildren(n *Node) []*Node {
	t := s.target(n)
	out := make([]*Node, len(t.children))
	for i, id := range t.children {
		out[i] = s.nodes[id]
	}
	return out
}

// attached reports whether n is reachable from the root via children.
func (s *snapshot) attached(n *Node) bool {
	for n.parent != NoNode {
		n = s.nodes[n.parent]
	}
	return n.id == rootID
}

// pathOf returns the space-joined names from the root to n.
func (s *snapshot) pathOf(n *Node) string {
	var names []string
	for ; n != nil && n.kind != KindRoot; n = s.node(n.parent) {
		names = append(names, n.UsageToken())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}
