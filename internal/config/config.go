// Package config loads the cmdtree host configuration from a TOML file.
//
// Configuration file: ~/.cmdtree.toml
//
// Example:
//
//	executor = "Steve"
//	prompt = "> "
//	color = "auto"
//	log_level = "debug"
//
//	[[entities]]
//	name = "Steve"
//	kind = "player"
//
//	[[entities]]
//	name = "Zombie"
//	kind = "mob"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/paths"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the host configuration.
type Config struct {
	DBPath   string `toml:"db_path"`
	Executor string `toml:"executor"`
	Prompt   string `toml:"prompt"`
	Color    string `toml:"color"`
	Theme    string `toml:"theme"`

	DisplayDate string `toml:"display_date"`
	DisplayTime string `toml:"display_time"`

	EnableLog bool   `toml:"enable_log"`
	LogPath   string `toml:"log_path"`
	LogLevel  string `toml:"log_level"`

	// Entities seeds the world on startup. Existing entities are revived.
	Entities []EntityConfig `toml:"entities"`
}

// EntityConfig is one [[entities]] entry.
type EntityConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
	UUID string `toml:"uuid,omitempty"`
}

// Default returns the built-in configuration: defaults from
// domain.ConfigKeys, app-dir paths, and a small cast of entities.
func Default() *Config {
	cfg := &Config{
		DBPath:  paths.DatabasePath(),
		LogPath: paths.LogFilePath(),
		Entities: []EntityConfig{
			{Name: "Steve", Kind: "player"},
			{Name: "Alex", Kind: "player"},
			{Name: "Zombie", Kind: "mob"},
		},
	}
	for _, key := range domain.ConfigKeys {
		if key.Default != "" {
			_ = cfg.Set(key.Name, key.Default)
		}
	}
	return cfg
}

// Load reads ~/.cmdtree.toml over the defaults and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, usage.InvalidConfig(err.Error())
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the TOML file at path over the defaults, applies
// environment overrides and validates the result.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("config: no file at %s, using defaults", path)
	case err != nil:
		return nil, usage.InvalidConfig(fmt.Sprintf("decode %s: %v", path, err))
	default:
		for _, key := range meta.Undecoded() {
			log.Warn("config: unknown key %q in %s", key.String(), path)
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides:
//   - CMDTREE_DB: overrides db_path
//   - CMDTREE_LOG_LEVEL: overrides log_level
//   - CMDTREE_EXECUTOR: overrides executor
func (c *Config) ApplyEnvOverrides() {
	if db := os.Getenv("CMDTREE_DB"); db != "" {
		c.DBPath = db
	}
	if level := os.Getenv("CMDTREE_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if executor := os.Getenv("CMDTREE_EXECUTOR"); executor != "" {
		c.Executor = executor
	}
}

// Validate checks enumerations and the entity list.
func (c *Config) Validate() error {
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return usage.InvalidConfig(fmt.Sprintf("color must be auto, always or never, got %q", c.Color))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		return usage.InvalidConfig(fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if !validTheme(c.Theme) {
		return usage.InvalidConfig(fmt.Sprintf("unknown theme %q, expected one of %s", c.Theme, strings.Join(style.BaseThemeNames, ", ")))
	}
	if c.DisplayTime != "12h" && c.DisplayTime != "24h" {
		return usage.InvalidConfig(fmt.Sprintf("display_time must be 12h or 24h, got %q", c.DisplayTime))
	}
	if c.DBPath == "" {
		return usage.InvalidConfig("db_path must not be empty")
	}

	seen := make(map[string]bool)
	for i, e := range c.Entities {
		if e.Name == "" || strings.ContainsRune(e.Name, ' ') {
			return usage.InvalidConfig(fmt.Sprintf("entities[%d]: name must be a single non-empty word", i))
		}
		if strings.HasPrefix(e.Name, "@") {
			return usage.InvalidConfig(fmt.Sprintf("entities[%d]: name %q would read as a selector", i, e.Name))
		}
		if seen[strings.ToLower(e.Name)] {
			return usage.InvalidConfig(fmt.Sprintf("entities[%d]: duplicate name %q", i, e.Name))
		}
		seen[strings.ToLower(e.Name)] = true

		if _, err := domain.ParseEntityKind(e.Kind); err != nil {
			return usage.InvalidConfig(fmt.Sprintf("entities[%d]: %v", i, err))
		}
		if e.UUID != "" {
			if _, err := uuid.Parse(e.UUID); err != nil {
				return usage.InvalidConfig(fmt.Sprintf("entities[%d]: invalid uuid %q", i, e.UUID))
			}
		}
	}
	return nil
}

func validTheme(name string) bool {
	if slices.Contains(style.BaseThemeNames, name) {
		return true
	}
	_, ok := style.Themes[name]
	return ok
}

// Seeds converts the entity list to world entities.
func (c *Config) Seeds() []domain.WorldEntity {
	out := make([]domain.WorldEntity, 0, len(c.Entities))
	for _, e := range c.Entities {
		kind, _ := domain.ParseEntityKind(e.Kind)
		id, err := uuid.Parse(e.UUID)
		if err != nil {
			id = domain.EntityID(e.Name)
		}
		out = append(out, domain.WorldEntity{ID: id, Name: e.Name, Kind: kind})
	}
	return out
}

// Get returns a top-level key by its TOML name.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "db_path":
		return c.DBPath, true
	case "executor":
		return c.Executor, true
	case "prompt":
		return c.Prompt, true
	case "color":
		return c.Color, true
	case "theme":
		return c.Theme, true
	case "display_date":
		return c.DisplayDate, true
	case "display_time":
		return c.DisplayTime, true
	case "enable_log":
		return strconv.FormatBool(c.EnableLog), true
	case "log_path":
		return c.LogPath, true
	case "log_level":
		return c.LogLevel, true
	}
	return "", false
}

// Set assigns a top-level key from its string form.
func (c *Config) Set(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfig(fmt.Sprintf("unknown key %q", key))
	}

	switch key {
	case "db_path":
		c.DBPath = value
	case "executor":
		c.Executor = value
	case "prompt":
		c.Prompt = value
	case "color":
		c.Color = value
	case "theme":
		c.Theme = value
	case "display_date":
		c.DisplayDate = value
	case "display_time":
		c.DisplayTime = value
	case "enable_log":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return usage.InvalidConfig(fmt.Sprintf("enable_log must be true or false, got %q", value))
		}
		c.EnableLog = b
	case "log_path":
		c.LogPath = value
	case "log_level":
		c.LogLevel = value
	}
	return nil
}

// SaveTOML writes the configuration to path with owner-only permissions.
func SaveTOML(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	fmt.Fprintln(file, "# cmdtree configuration")
	fmt.Fprintln(file)

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
