package dispatchers

// NodeBuilder declares a node before it exists in a tree. Builders are
// values: every method returns a modified copy and leaves the receiver
// untouched, so a builder can be reused as a template.
type NodeBuilder struct {
	kind        NodeKind
	name        string
	typeTag     TypeTag
	handler     Command
	requirement Requirement
	redirect    NodeID
	children    []NodeBuilder
}

// Literal declares a node matching exactly the token name.
func Literal(name string) NodeBuilder {
	return NodeBuilder{kind: KindLiteral, name: name, redirect: NoNode}
}

// Argument declares a node that parses a value of type tag and binds it
// to name.
func Argument(name string, tag TypeTag) NodeBuilder {
	return NodeBuilder{kind: KindArgument, name: name, typeTag: tag, redirect: NoNode}
}

// Name returns the declared name.
func (b NodeBuilder) Name() string { return b.name }

// Executes attaches a handler.
func (b NodeBuilder) Executes(h Command) NodeBuilder {
	b.handler = h
	return b
}

// Requires attaches a visibility predicate.
func (b NodeBuilder) Requires(p Requirement) NodeBuilder {
	b.requirement = p
	return b
}

// RedirectTo makes the node's children an alias for target's children.
// The target must already exist when the builder is built.
func (b NodeBuilder) RedirectTo(target NodeID) NodeBuilder {
	b.redirect = target
	return b
}

// Then nests child under the receiver and returns the receiver, not the
// child: p.Then(x).Then(y) gives p two children. Build a chain by nesting,
// a.Then(b.Then(c)).
func (b NodeBuilder) Then(child NodeBuilder) NodeBuilder {
	children := make([]NodeBuilder, len(b.children), len(b.children)+1)
	copy(children, b.children)
	b.children = append(children, child)
	return b
}
