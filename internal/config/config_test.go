package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmdtree.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "Steve", cfg.Executor)
	require.Equal(t, "> ", cfg.Prompt)
	require.Equal(t, ColorAuto, cfg.Color)
	require.Equal(t, "default", cfg.Theme)
	require.Equal(t, "Jan 02", cfg.DisplayDate)
	require.Equal(t, "24h", cfg.DisplayTime)
	require.True(t, cfg.EnableLog)
	require.Equal(t, "info", cfg.LogLevel)
	require.NotEmpty(t, cfg.DBPath)
	require.Len(t, cfg.Entities, 3)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CMDTREE_DB", "")
	t.Setenv("CMDTREE_LOG_LEVEL", "")
	t.Setenv("CMDTREE_EXECUTOR", "")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, Default().Executor, cfg.Executor)
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	t.Setenv("CMDTREE_DB", "")
	t.Setenv("CMDTREE_LOG_LEVEL", "")
	t.Setenv("CMDTREE_EXECUTOR", "")

	path := writeConfig(t, `
executor = "Alex"
color = "never"
log_level = "debug"

[[entities]]
name = "Alex"
kind = "player"

[[entities]]
name = "Creeper"
kind = "mob"
uuid = "8d2c4e6a-1f3b-4c5d-9e7f-0a1b2c3d4e5f"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "Alex", cfg.Executor)
	require.Equal(t, ColorNever, cfg.Color)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "> ", cfg.Prompt, "unset keys keep their defaults")
	require.Len(t, cfg.Entities, 2, "the file replaces the default cast")
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	t.Setenv("CMDTREE_DB", "/tmp/other.db")
	t.Setenv("CMDTREE_LOG_LEVEL", "warn")
	t.Setenv("CMDTREE_EXECUTOR", "Alex")

	path := writeConfig(t, `executor = "Steve"`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/other.db", cfg.DBPath)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "Alex", cfg.Executor)
}

func TestLoadFromPath_Errors(t *testing.T) {
	t.Setenv("CMDTREE_DB", "")
	t.Setenv("CMDTREE_LOG_LEVEL", "")
	t.Setenv("CMDTREE_EXECUTOR", "")

	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `executor = `},
		{"bad color", `color = "sometimes"`},
		{"bad level", `log_level = "loud"`},
		{"bad clock", `display_time = "36h"`},
		{"bad theme", `theme = "neon"`},
		{"bad kind", "[[entities]]\nname = \"Pig\"\nkind = \"animal\""},
		{"selector name", "[[entities]]\nname = \"@p\"\nkind = \"mob\""},
		{"spaced name", "[[entities]]\nname = \"Big Pig\"\nkind = \"mob\""},
		{"duplicate name", "[[entities]]\nname = \"Pig\"\nkind = \"mob\"\n[[entities]]\nname = \"pig\"\nkind = \"mob\""},
		{"bad uuid", "[[entities]]\nname = \"Pig\"\nkind = \"mob\"\nuuid = \"nope\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.content))
			require.Error(t, err)
			require.Equal(t, usage.ErrInvalidConfig, usage.KindOf(err))
			require.Equal(t, 1, usage.ExitCode(err))
		})
	}
}

func TestSeeds(t *testing.T) {
	cfg := &Config{Entities: []EntityConfig{
		{Name: "Steve", Kind: "player"},
		{Name: "Creeper", Kind: "mob", UUID: "8d2c4e6a-1f3b-4c5d-9e7f-0a1b2c3d4e5f"},
	}}

	seeds := cfg.Seeds()
	require.Len(t, seeds, 2)

	require.Equal(t, domain.EntityID("Steve"), seeds[0].ID)
	require.Equal(t, domain.KindPlayer, seeds[0].Kind)

	require.Equal(t, "8d2c4e6a-1f3b-4c5d-9e7f-0a1b2c3d4e5f", seeds[1].ID.String())
	require.Equal(t, domain.KindMob, seeds[1].Kind)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	for _, key := range domain.ConfigKeys {
		_, ok := cfg.Get(key.Name)
		require.True(t, ok, key.Name)
	}

	require.NoError(t, cfg.Set("enable_log", "false"))
	v, _ := cfg.Get("enable_log")
	require.Equal(t, "false", v)

	err := cfg.Set("enable_log", "maybe")
	require.Equal(t, usage.ErrInvalidConfig, usage.KindOf(err))

	err = cfg.Set("nope", "x")
	require.Equal(t, usage.ErrInvalidConfig, usage.KindOf(err))

	_, ok := cfg.Get("nope")
	require.False(t, ok)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	t.Setenv("CMDTREE_DB", "")
	t.Setenv("CMDTREE_LOG_LEVEL", "")
	t.Setenv("CMDTREE_EXECUTOR", "")

	path := filepath.Join(t.TempDir(), "nested", "cmdtree.toml")

	cfg := Default()
	cfg.Executor = "Alex"
	cfg.Entities = []EntityConfig{{Name: "Alex", Kind: "player"}}
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Executor, loaded.Executor)
	require.Equal(t, cfg.Entities, loaded.Entities)
}
