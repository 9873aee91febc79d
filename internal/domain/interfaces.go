package domain

import (
	"github.com/google/uuid"
)

// WorldStore defines the host state that command handlers act upon.
type WorldStore interface {
	// AddEntity inserts or revives an entity. A nil ID is derived from
	// the entity's name.
	AddEntity(e WorldEntity) (WorldEntity, error)

	// Entities returns living entities, players first, then by insertion.
	Entities() ([]WorldEntity, error)

	// EntityByUUID returns a single entity, alive or not.
	EntityByUUID(id uuid.UUID) (WorldEntity, bool, error)

	// Kill marks an entity dead. It reports false if it was already dead
	// or does not exist.
	Kill(id uuid.UUID) (bool, error)

	// SetWeather replaces the current weather.
	SetWeather(w Weather) error

	// Weather returns the current weather.
	Weather() (Weather, error)

	// AddEffect applies an effect, replacing one of the same name.
	AddEffect(e StatusEffect) error

	// ClearEffects removes every effect from an entity and returns how many.
	ClearEffects(id uuid.UUID) (int64, error)

	// Effects lists an entity's effects by name.
	Effects(id uuid.UUID) ([]StatusEffect, error)

	// Tell stores a private message.
	Tell(m TellMessage) error

	// Inbox returns the messages sent to an entity, oldest first.
	Inbox(id uuid.UUID) ([]TellMessage, error)

	// Close closes the store connection.
	Close() error
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// Styler defines text styling operations.
type Styler interface {
	// Enabled returns true if styling is enabled.
	Enabled() bool

	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string

	// Usage styles a usage line produced by the dispatcher.
	Usage(line string) string
}

// OutputWriter is where command feedback goes.
type OutputWriter interface {
	Printf(format string, args ...any) (int, error)
	Println(args ...any) (int, error)

	// Pager shows long content, through a pager when attached to a terminal.
	Pager(content string)
}
