package dispatchers

import (
	"sort"
	"strings"
	"sync"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// TypeTag names an argument type in an ArgumentTypes registry.
type TypeTag string

// Built-in argument types.
const (
	TypeEntitySelector TypeTag = "entity-selector"
	TypePlayerSelector TypeTag = "player-selector"
	TypeGreedyMessage  TypeTag = "greedy-message"
	TypeLiteralString  TypeTag = "literal-string"
	TypeWord           TypeTag = "word"
	TypeInteger        TypeTag = "integer"
	TypeBool           TypeTag = "bool"
)

// ParseFunc reads one argument value starting at the reader's cursor.
type ParseFunc func(r *StringReader) (any, error)

// SuggestFunc returns candidates for the partial token at the reader's
// cursor. Source is the opaque execution context of the caller.
type SuggestFunc func(r *StringReader, source any) []string

// ArgumentType couples a parser with a suggestion provider.
type ArgumentType struct {
	Tag      TypeTag
	Parse    ParseFunc
	Suggest  SuggestFunc
	Examples []string
}

// Message is the value of a greedy-message argument.
type Message string

// ArgumentTypes is a registry of argument types, safe for concurrent use.
type ArgumentTypes struct {
	mu    sync.RWMutex
	types map[TypeTag]ArgumentType
}

// NewArgumentTypes returns an empty registry.
func NewArgumentTypes() *ArgumentTypes {
	return &ArgumentTypes{types: make(map[TypeTag]ArgumentType)}
}

// DefaultArgumentTypes returns a registry holding the built-in types.
func DefaultArgumentTypes() *ArgumentTypes {
	t := NewArgumentTypes()
	t.Register(ArgumentType{
		Tag:      TypeEntitySelector,
		Parse:    parseSelector(false),
		Suggest:  suggestSelector(false),
		Examples: []string{"Steve", "@s", "@p", "dd12be42-52a9-4a91-a8a1-11c01849e498"},
	})
	t.Register(ArgumentType{
		Tag:      TypePlayerSelector,
		Parse:    parseSelector(true),
		Suggest:  suggestSelector(true),
		Examples: []string{"Steve", "@s", "@p"},
	})
	t.Register(ArgumentType{
		Tag:      TypeGreedyMessage,
		Parse:    parseGreedyMessage,
		Examples: []string{"hello", "hello world", `"hello world"`},
	})
	t.Register(ArgumentType{
		Tag:      TypeLiteralString,
		Parse:    func(r *StringReader) (any, error) { return r.ReadString() },
		Examples: []string{"word", `"quoted phrase"`, `""`},
	})
	t.Register(ArgumentType{
		Tag:      TypeWord,
		Parse:    func(r *StringReader) (any, error) { return r.ReadUnquotedString(), nil },
		Examples: []string{"word", "words_with_underscores"},
	})
	t.Register(ArgumentType{
		Tag:      TypeInteger,
		Parse:    func(r *StringReader) (any, error) { return r.ReadInt() },
		Examples: []string{"0", "123", "-123"},
	})
	t.Register(ArgumentType{
		Tag:      TypeBool,
		Parse:    func(r *StringReader) (any, error) { return r.ReadBool() },
		Suggest:  func(r *StringReader, _ any) []string { return filterPrefix(r.Remaining(), []string{"true", "false"}) },
		Examples: []string{"true", "false"},
	})
	return t
}

// Register adds or replaces an argument type.
func (t *ArgumentTypes) Register(at ArgumentType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[at.Tag] = at
}

// Lookup returns the type registered under tag.
func (t *ArgumentTypes) Lookup(tag TypeTag) (ArgumentType, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	at, ok := t.types[tag]
	if !ok {
		return ArgumentType{}, usage.UnknownArgumentType(string(tag))
	}
	return at, nil
}

// Tags returns all registered tags, sorted.
func (t *ArgumentTypes) Tags() []TypeTag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tags := make([]TypeTag, 0, len(t.types))
	for tag := range t.types {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// parseGreedyMessage consumes the rest of the input. A remainder that is a
// single complete quoted string is unquoted; anything else is taken verbatim.
func parseGreedyMessage(r *StringReader) (any, error) {
	if r.AtEnd() {
		return nil, usage.EmptyArgument(r.Input(), r.Cursor())
	}

	start := r.Cursor()
	if ch, _ := r.Peek(); ch == quote {
		s, err := r.ReadQuotedString()
		if err == nil && r.AtEnd() {
			return Message(s), nil
		}
		r.SetCursor(start)
	}

	msg := r.Remaining()
	r.SetCursor(len(r.Input()))
	return Message(msg), nil
}

// filterPrefix keeps candidates that start with partial, ignoring case.
func filterPrefix(partial string, candidates []string) []string {
	lower := strings.ToLower(partial)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}
