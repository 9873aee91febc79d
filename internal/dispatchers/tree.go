package dispatchers

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Dispatcher owns a command tree and parses, dispatches and suggests
// against it. Reads are lock-free against an immutable snapshot; edits are
// serialized and published atomically, so a parse sees either all of an
// edit or none of it.
type Dispatcher struct {
	mu    sync.Mutex
	snap  atomic.Pointer[snapshot]
	types *ArgumentTypes
}

// NewDispatcher returns a dispatcher holding an empty root. A nil types
// registry means DefaultArgumentTypes.
func NewDispatcher(types *ArgumentTypes) *Dispatcher {
	if types == nil {
		types = DefaultArgumentTypes()
	}
	d := &Dispatcher{types: types}
	d.snap.Store(newSnapshot())
	return d
}

// Types returns the argument type registry used to build nodes.
func (d *Dispatcher) Types() *ArgumentTypes { return d.types }

// Root returns the id of the root node.
func (d *Dispatcher) Root() NodeID { return rootID }

// Node returns the current version of node id.
func (d *Dispatcher) Node(id NodeID) (*Node, bool) {
	n := d.snap.Load().node(id)
	return n, n != nil
}

// Child returns the id of parent's child called name.
func (d *Dispatcher) Child(parent NodeID, name string) (NodeID, bool) {
	snap := d.snap.Load()
	p := snap.node(parent)
	if p == nil {
		return NoNode, false
	}
	if c := snap.child(p, name); c != nil {
		return c.id, true
	}
	return NoNode, false
}

// Find resolves a space-separated path of literal or argument names from
// the root, e.g. "effect list".
func (d *Dispatcher) Find(path string) (NodeID, bool) {
	snap := d.snap.Load()
	n := snap.root()
	for _, name := range strings.Fields(path) {
		if n = snap.child(n, name); n == nil {
			return NoNode, false
		}
	}
	return n.id, true
}

// FindVisible is Find limited to nodes source may use. A node whose
// requirement fails hides everything below it.
func (d *Dispatcher) FindVisible(path string, source any) (NodeID, bool) {
	snap := d.snap.Load()
	n := snap.root()
	for _, name := range strings.Fields(path) {
		if n = snap.child(n, name); n == nil || !n.CanUse(source) {
			return NoNode, false
		}
	}
	return n.id, true
}

// Path returns the display path of node id, e.g. "tell2 <player>".
func (d *Dispatcher) Path(id NodeID) string {
	snap := d.snap.Load()
	return snap.pathOf(snap.node(id))
}

// Build materializes b and its nested children as a detached subtree and
// returns the id of its top node. Attach it later with Attach.
func (d *Dispatcher) Build(b NodeBuilder) (NodeID, error) {
	var id NodeID
	err := d.edit(func(e *editor) error {
		var err error
		id, err = e.materialize(b)
		return err
	})
	if err != nil {
		return NoNode, err
	}
	return id, nil
}

// Attach links a detached node under parent. A sibling with the same name
// is replaced in place.
func (d *Dispatcher) Attach(parent, child NodeID) error {
	return d.edit(func(e *editor) error {
		return e.attach(parent, child)
	})
}

// AddChild builds b and attaches it under parent in one atomic edit. It may
// be called at any time, including while other goroutines dispatch.
func (d *Dispatcher) AddChild(parent NodeID, b NodeBuilder) (NodeID, error) {
	var id NodeID
	err := d.edit(func(e *editor) error {
		var err error
		if id, err = e.materialize(b); err != nil {
			return err
		}
		return e.attach(parent, id)
	})
	if err != nil {
		return NoNode, err
	}
	return id, nil
}

// Register adds b as a top-level command.
func (d *Dispatcher) Register(b NodeBuilder) (NodeID, error) {
	return d.AddChild(rootID, b)
}

// Redirect points an existing, childless node at target.
func (d *Dispatcher) Redirect(from, target NodeID) error {
	return d.edit(func(e *editor) error {
		n := e.get(from)
		if n == nil {
			return usage.UnknownNode(int(from))
		}
		if n.kind == KindRoot {
			return usage.InvalidTree("the root cannot redirect")
		}
		if len(n.children) > 0 {
			return usage.InvalidTree("node '" + n.name + "' has children and cannot redirect")
		}
		if err := e.checkRedirect(from, target); err != nil {
			return err
		}
		e.mutable(from).redirect = target
		return nil
	})
}

// Len returns the number of nodes in the arena, attached or not.
func (d *Dispatcher) Len() int {
	return len(d.snap.Load().nodes)
}

func (d *Dispatcher) edit(fn func(e *editor) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e := &editor{
		nodes: slices.Clone(d.snap.Load().nodes),
		owned: make(map[NodeID]bool),
		types: d.types,
	}
	if err := fn(e); err != nil {
		return err
	}
	d.snap.Store(&snapshot{nodes: e.nodes})
	return nil
}

// editor stages one copy-on-write edit of the arena.
type editor struct {
	nodes []*Node
	owned map[NodeID]bool
	types *ArgumentTypes
}

func (e *editor) get(id NodeID) *Node {
	if id < 0 || int(id) >= len(e.nodes) {
		return nil
	}
	return e.nodes[id]
}

// mutable returns a private copy of node id that this edit may modify.
func (e *editor) mutable(id NodeID) *Node {
	if e.owned[id] {
		return e.nodes[id]
	}
	cp := *e.nodes[id]
	cp.children = slices.Clone(cp.children)
	e.nodes[id] = &cp
	e.owned[id] = true
	return &cp
}

func (e *editor) materialize(b NodeBuilder) (NodeID, error) {
	if err := validateBuilder(b); err != nil {
		return NoNode, err
	}

	n := &Node{
		id:          NodeID(len(e.nodes)),
		kind:        b.kind,
		name:        b.name,
		typeTag:     b.typeTag,
		handler:     b.handler,
		requirement: b.requirement,
		redirect:    NoNode,
		parent:      NoNode,
	}

	if b.kind == KindArgument {
		at, err := e.types.Lookup(b.typeTag)
		if err != nil {
			return NoNode, err
		}
		n.argType = at
	}

	e.nodes = append(e.nodes, n)
	e.owned[n.id] = true

	if b.redirect != NoNode {
		if err := e.checkRedirect(n.id, b.redirect); err != nil {
			return NoNode, err
		}
		n.redirect = b.redirect
	}

	for _, cb := range b.children {
		cid, err := e.materialize(cb)
		if err != nil {
			return NoNode, err
		}
		e.link(n.id, cid)
	}
	return n.id, nil
}

func (e *editor) attach(parent, child NodeID) error {
	p, c := e.get(parent), e.get(child)
	if p == nil {
		return usage.UnknownNode(int(parent))
	}
	if c == nil {
		return usage.UnknownNode(int(child))
	}
	if c.kind == KindRoot {
		return usage.InvalidTree("the root cannot be attached")
	}
	if c.parent != NoNode {
		return usage.InvalidTree("node '" + c.name + "' is already attached")
	}
	if p.redirect != NoNode {
		return usage.InvalidTree("node '" + p.name + "' redirects and cannot have children")
	}
	for a := p; a != nil; a = e.get(a.parent) {
		if a.id == child {
			return usage.InvalidTree("node '" + c.name + "' cannot be attached below itself")
		}
	}
	e.link(parent, child)
	return nil
}

// link appends child to parent, replacing a same-named sibling in place.
func (e *editor) link(parent, child NodeID) {
	p := e.mutable(parent)
	name := e.nodes[child].name

	replaced := false
	for i, id := range p.children {
		if e.nodes[id].name == name {
			e.mutable(id).parent = NoNode
			p.children[i] = child
			replaced = true
			break
		}
	}
	if !replaced {
		p.children = append(p.children, child)
	}
	e.mutable(child).parent = parent
}

// checkRedirect rejects unknown targets and chains that lead back to from.
func (e *editor) checkRedirect(from, target NodeID) error {
	t := e.get(target)
	if t == nil {
		return usage.UnknownNode(int(target))
	}
	chain := []string{e.label(from)}
	for n := t; n != nil; n = e.get(n.redirect) {
		chain = append(chain, e.label(n.id))
		if n.id == from {
			return usage.RedirectCycle(strings.Join(chain, " -> "))
		}
	}
	return nil
}

func (e *editor) label(id NodeID) string {
	n := e.get(id)
	if n == nil || n.kind == KindRoot {
		return "<root>"
	}
	return n.UsageToken()
}

func validateBuilder(b NodeBuilder) error {
	switch b.kind {
	case KindLiteral:
		if b.name == "" || strings.ContainsRune(b.name, separator) {
			return usage.InvalidTree("literal name '" + b.name + "' must be a single non-empty token")
		}
	case KindArgument:
		if b.name == "" {
			return usage.InvalidTree("argument name must not be empty")
		}
	default:
		return usage.InvalidTree("builder has no kind; use Literal or Argument")
	}
	if b.redirect != NoNode && len(b.children) > 0 {
		return usage.InvalidTree("node '" + b.name + "' redirects and cannot have children")
	}
	return nil
}
