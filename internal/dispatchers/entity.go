package dispatchers

import (
	"strings"

	"github.com/google/uuid"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Entity is a live object in the host's world that selectors can target.
type Entity interface {
	UUID() uuid.UUID
	Name() string
	IsPlayer() bool
}

// EntityProvider is implemented by execution sources that can resolve
// entity selectors. Sources that do not implement it resolve nothing.
type EntityProvider interface {
	// Executor returns the entity running the command, or nil for the console.
	Executor() Entity

	// Entities returns the live entities, players first, nearest first.
	Entities() []Entity
}

// SelectorKind distinguishes the forms an entity selector can take.
type SelectorKind int

const (
	SelectorName SelectorKind = iota
	SelectorUUID
	SelectorSelf
	SelectorNearestPlayer
)

// EntitySelector is the parsed, unresolved value of a selector argument.
// It is resolved against the live world only when the handler asks for it.
type EntitySelector struct {
	Kind        SelectorKind
	Raw         string
	Name        string
	ID          uuid.UUID
	PlayersOnly bool
}

// Resolve finds the single entity the selector designates.
func (s EntitySelector) Resolve(source any) (Entity, error) {
	provider, ok := source.(EntityProvider)
	if !ok {
		return nil, usage.NoSuchEntity(s.Raw)
	}

	var found Entity
	switch s.Kind {
	case SelectorSelf:
		found = provider.Executor()
	case SelectorNearestPlayer:
		for _, e := range provider.Entities() {
			if e.IsPlayer() {
				found = e
				break
			}
		}
	case SelectorUUID:
		for _, e := range provider.Entities() {
			if e.UUID() == s.ID {
				found = e
				break
			}
		}
	default:
		for _, e := range provider.Entities() {
			if strings.EqualFold(e.Name(), s.Name) {
				found = e
				break
			}
		}
	}

	if found == nil {
		return nil, usage.NoSuchEntity(s.Raw)
	}
	if s.PlayersOnly && !found.IsPlayer() {
		return nil, usage.NotAPlayer(found.Name())
	}
	return found, nil
}

func parseSelector(playersOnly bool) ParseFunc {
	return func(r *StringReader) (any, error) {
		start := r.Cursor()
		tok := r.ReadUnquotedString()
		if tok == "" {
			return nil, usage.EmptyArgument(r.Input(), start)
		}

		sel := EntitySelector{Raw: tok, PlayersOnly: playersOnly}

		if strings.HasPrefix(tok, "@") {
			switch tok {
			case "@s":
				sel.Kind = SelectorSelf
			case "@p":
				sel.Kind = SelectorNearestPlayer
			case "@e", "@a", "@r":
				r.SetCursor(start)
				return nil, usage.InvalidSelector(r.Input(), start, "only one entity is allowed, but "+tok+" allows more than one")
			default:
				r.SetCursor(start)
				return nil, usage.InvalidSelector(r.Input(), start, "unknown selector type '"+tok+"'")
			}
			return sel, nil
		}

		if id, err := uuid.Parse(tok); err == nil {
			sel.Kind = SelectorUUID
			sel.ID = id
			return sel, nil
		}

		sel.Kind = SelectorName
		sel.Name = tok
		return sel, nil
	}
}

func suggestSelector(playersOnly bool) SuggestFunc {
	return func(r *StringReader, source any) []string {
		candidates := []string{"@s", "@p"}
		if provider, ok := source.(EntityProvider); ok {
			for _, e := range provider.Entities() {
				if playersOnly && !e.IsPlayer() {
					continue
				}
				candidates = append(candidates, e.Name())
			}
		}
		return filterPrefix(r.Remaining(), candidates)
	}
}
