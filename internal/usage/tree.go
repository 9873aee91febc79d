package usage

import "fmt"

func structural(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Cursor: -1}
}

// UnknownArgumentType is returned when a node references an unregistered type tag.
func UnknownArgumentType(tag string) *Error {
	return structural(ErrUnknownArgumentType, fmt.Sprintf("unknown argument type '%s'", tag))
}

// UnknownNode is returned when a node id does not exist in the tree.
func UnknownNode(id int) *Error {
	return structural(ErrUnknownNode, fmt.Sprintf("unknown node #%d", id))
}

// RedirectCycle is returned when a redirect chain would loop back on itself.
func RedirectCycle(path string) *Error {
	return structural(ErrRedirectCycle, fmt.Sprintf("redirect cycle: %s", path))
}

// InvalidTree is returned for structural edits that would break tree ownership.
func InvalidTree(reason string) *Error {
	return structural(ErrInvalidTree, "invalid tree: "+reason)
}
