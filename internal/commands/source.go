// Package commands registers the demonstration command set on a
// dispatcher and defines the execution source its handlers act upon.
package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/format"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// ConsoleName is the display name of a source with no executing entity.
const ConsoleName = "Server"

// Source is the execution context handed to the dispatcher. It runs
// commands as one entity of the world, or as the console when that entity
// is unset or dead.
type Source struct {
	World  domain.WorldStore
	Out    domain.OutputWriter
	Style  domain.Styler
	Logger domain.Logger

	executor uuid.UUID
	now      func() time.Time
	layout   format.Layout
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithExecutor runs commands as the entity with the given id.
func WithExecutor(id uuid.UUID) SourceOption {
	return func(s *Source) {
		s.executor = id
	}
}

// WithStyler sets the feedback styler.
func WithStyler(st domain.Styler) SourceOption {
	return func(s *Source) {
		s.Style = st
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) SourceOption {
	return func(s *Source) {
		s.Logger = l
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SourceOption {
	return func(s *Source) {
		s.now = now
	}
}

// WithLayout sets how feedback renders dates and times.
func WithLayout(l format.Layout) SourceOption {
	return func(s *Source) {
		s.layout = l
	}
}

// NewSource creates a console source over world writing feedback to out.
func NewSource(world domain.WorldStore, out domain.OutputWriter, opts ...SourceOption) *Source {
	s := &Source{
		World:  world,
		Out:    out,
		Style:  style.NopStyler{},
		Logger: log.NopLogger{},
		now:    time.Now,
		layout: format.DefaultLayout(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Executor returns the living entity commands run as, or nil for the
// console.
func (s *Source) Executor() dispatchers.Entity {
	e, ok := s.executorEntity()
	if !ok {
		return nil
	}
	return entity{e}
}

func (s *Source) executorEntity() (domain.WorldEntity, bool) {
	if s.executor == uuid.Nil {
		return domain.WorldEntity{}, false
	}
	e, ok, err := s.World.EntityByUUID(s.executor)
	if err != nil {
		s.Logger.Warn("source: lookup executor %s: %v", s.executor, err)
		return domain.WorldEntity{}, false
	}
	if !ok || !e.Alive {
		return domain.WorldEntity{}, false
	}
	return e, true
}

// Entities returns the living entities, players first.
func (s *Source) Entities() []dispatchers.Entity {
	all, err := s.World.Entities()
	if err != nil {
		s.Logger.Warn("source: list entities: %v", err)
		return nil
	}

	out := make([]dispatchers.Entity, 0, len(all))
	for _, e := range all {
		out = append(out, entity{e})
	}
	return out
}

// DisplayName is the executor's name, or ConsoleName.
func (s *Source) DisplayName() string {
	if e, ok := s.executorEntity(); ok {
		return e.Name
	}
	return ConsoleName
}

// Feedback writes one line of command output.
func (s *Source) Feedback(format string, args ...any) {
	_, _ = s.Out.Println(fmt.Sprintf(format, args...))
}

// SendError writes one line of error output.
func (s *Source) SendError(format string, args ...any) {
	_, _ = s.Out.Println(s.Style.Error(fmt.Sprintf(format, args...)))
}

// RequiresPlayer is a requirement that hides a node from sources not run
// by a living player.
func RequiresPlayer(source any) bool {
	s, ok := source.(*Source)
	if !ok {
		return false
	}
	e, ok := s.executorEntity()
	return ok && e.IsPlayer()
}

// sourceOf returns the host source of a handler invocation.
func sourceOf(ctx *dispatchers.CommandContext) (*Source, error) {
	s, ok := ctx.Source.(*Source)
	if !ok {
		return nil, usage.InvalidArgument("source", fmt.Sprintf("is a %T, not a command source", ctx.Source))
	}
	return s, nil
}

// entity adapts a world entity to the dispatcher's view of one.
type entity struct {
	e domain.WorldEntity
}

func (e entity) UUID() uuid.UUID { return e.e.ID }
func (e entity) Name() string    { return e.e.Name }
func (e entity) IsPlayer() bool  { return e.e.IsPlayer() }

var _ dispatchers.EntityProvider = (*Source)(nil)
