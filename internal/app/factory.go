// Package app wires configuration, logging, styling, the world store and
// the command dispatcher into a runnable host.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/commands"
	"github.com/footprint-tools/cmdtree/internal/config"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/format"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/ui"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/world"
)

// Host is a running command host.
type Host struct {
	Config     *config.Config
	World      domain.WorldStore
	Dispatcher *dispatchers.Dispatcher
	Source     *commands.Source
	Logger     domain.Logger
	Output     domain.OutputWriter
	Styler     domain.Styler
}

// Options configures the application factory.
type Options struct {
	Config *config.Config

	// Out receives command feedback. Defaults to stdout.
	Out io.Writer

	PagerDisabled bool
	StyleEnabled  bool
}

// New creates a Host with all dependencies wired up.
func New(opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := newLogger(cfg)

	style.Init(opts.StyleEnabled, cfg.Theme)
	var styler domain.Styler = style.NopStyler{}
	if style.Enabled() {
		styler = style.NewStyler()
	}

	if cfg.DBPath != world.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("create world directory: %w", err)
		}
	}
	store, err := world.Open(cfg.DBPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}

	h, err := assemble(cfg, store, ui.NewWriterTo(out, writerOpts...), styler, logger)
	if err != nil {
		_ = Close(&Host{World: store, Logger: logger})
		return nil, err
	}
	return h, nil
}

// NewForTesting creates a Host over an existing world with no logging and
// no styling.
func NewForTesting(cfg *config.Config, store domain.WorldStore, out io.Writer) (*Host, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	return assemble(cfg, store, ui.NewWriterTo(out, ui.WithPagerDisabled()), style.NopStyler{}, log.NopLogger{})
}

func assemble(cfg *config.Config, store domain.WorldStore, out domain.OutputWriter, styler domain.Styler, logger domain.Logger) (*Host, error) {
	// Seeds only fill in missing entities; a seed killed in an earlier run
	// stays dead.
	for _, e := range cfg.Seeds() {
		_, exists, err := store.EntityByUUID(e.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if _, err := store.AddEntity(e); err != nil {
			return nil, err
		}
	}

	d, err := commands.NewDispatcher()
	if err != nil {
		return nil, err
	}

	srcOpts := []commands.SourceOption{
		commands.WithStyler(styler),
		commands.WithLogger(logger),
		commands.WithLayout(format.NewLayout(cfg.DisplayDate, cfg.DisplayTime)),
	}
	executor, err := findExecutor(store, cfg.Executor)
	if err != nil {
		return nil, err
	}
	if executor != nil {
		srcOpts = append(srcOpts, commands.WithExecutor(executor.ID))
	} else if cfg.Executor != "" {
		logger.Warn("app: executor %q is not in the world, running as the console", cfg.Executor)
	}

	return &Host{
		Config:     cfg,
		World:      store,
		Dispatcher: d,
		Source:     commands.NewSource(store, out, srcOpts...),
		Logger:     logger,
		Output:     out,
		Styler:     styler,
	}, nil
}

func newLogger(cfg *config.Config) domain.Logger {
	if !cfg.EnableLog {
		return log.NopLogger{}
	}

	l, err := log.New(cfg.LogPath, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		// Fall back to NopLogger on error
		return log.NopLogger{}
	}
	log.SetDefault(l)
	return l
}

func findExecutor(store domain.WorldStore, name string) (*domain.WorldEntity, error) {
	if name == "" {
		return nil, nil
	}
	all, err := store.Entities()
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if strings.EqualFold(e.Name, name) {
			return &e, nil
		}
	}
	return nil, nil
}

// Execute parses and runs one command line.
func (h *Host) Execute(input string) (dispatchers.Outcome, error) {
	h.Logger.Debug("execute: %q as %s", input, h.Source.DisplayName())
	out, err := h.Dispatcher.Execute(input, h.Source)
	if err != nil {
		h.Logger.Debug("execute: %q failed: %v", input, err)
		return out, err
	}
	h.Logger.Debug("execute: %q returned %d (%s)", input, out.Result, out.Status)
	return out, nil
}

// Suggest returns completions for partial as the host's source.
func (h *Host) Suggest(partial string) []string {
	return h.Dispatcher.Suggest(partial, h.Source)
}

// Usage lists every command path the host's source can run.
func (h *Host) Usage() []string {
	return h.Dispatcher.AllUsage(h.Source)
}

// Close cleans up host resources.
func Close(h *Host) error {
	if h == nil {
		return nil
	}
	if h.Logger != nil {
		_ = h.Logger.Close()
	}
	if h.World != nil {
		return h.World.Close()
	}
	return nil
}
