package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/config"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/testutil"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

func TestNewForTesting_SeedsAndRunsAsExecutor(t *testing.T) {
	var out bytes.Buffer
	h, err := NewForTesting(config.Default(), testutil.NewTestWorld(t), &out)
	require.NoError(t, err)

	entities, err := h.World.Entities()
	require.NoError(t, err)
	require.Len(t, entities, 3)

	require.Equal(t, "Steve", h.Source.DisplayName())
	require.Contains(t, h.Usage(), "inbox")

	res, err := h.Execute("test_kill")
	require.NoError(t, err)
	require.Equal(t, 1, res.Result)
	require.Equal(t, "Killed Steve\n", out.String())
	require.Equal(t, "Server", h.Source.DisplayName())
}

func TestNewForTesting_SeedsDoNotReviveTheDead(t *testing.T) {
	store := testutil.NewTestWorld(t)

	first, err := NewForTesting(config.Default(), store, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = first.Execute("kill2 Zombie")
	require.NoError(t, err)

	second, err := NewForTesting(config.Default(), store, &bytes.Buffer{})
	require.NoError(t, err)

	zombie, ok, err := second.World.EntityByUUID(domain.EntityID("Zombie"))
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, zombie.Alive)

	entities, err := second.World.Entities()
	require.NoError(t, err)
	require.Len(t, entities, 2)
}

func TestNewForTesting_UnknownExecutorRunsAsConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Executor = "Herobrine"

	h, err := NewForTesting(cfg, testutil.NewTestWorld(t), &bytes.Buffer{})
	require.NoError(t, err)
	require.Nil(t, h.Source.Executor())
	require.NotContains(t, h.Usage(), "inbox")
}

func TestNewForTesting_ExecutorMatchesCaseInsensitively(t *testing.T) {
	cfg := config.Default()
	cfg.Executor = "alex"

	h, err := NewForTesting(cfg, testutil.NewTestWorld(t), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, domain.EntityID("Alex"), h.Source.Executor().UUID())
}

func TestHost_SuggestAndErrors(t *testing.T) {
	h, err := NewForTesting(config.Default(), testutil.NewTestWorld(t), &bytes.Buffer{})
	require.NoError(t, err)

	require.Equal(t, []string{"clear", "rain", "thunder"}, h.Suggest("test_weather "))

	_, err = h.Execute("test_weather")
	var noHandler *dispatchers.NoHandlerError
	require.ErrorAs(t, err, &noHandler)
	require.Equal(t, 2, usage.ExitCode(err))
}

func TestNew_OpensWorldOnDisk(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "nested", "world.db")
	cfg.LogPath = filepath.Join(dir, "cmdtree.log")
	cfg.EnableLog = false

	var out bytes.Buffer
	h, err := New(Options{Config: cfg, Out: &out, PagerDisabled: true})
	require.NoError(t, err)

	_, err = h.Execute("test_weather rain")
	require.NoError(t, err)
	require.Equal(t, "Set the weather to rain\n", out.String())
	require.NoError(t, Close(h))

	// Reopening keeps the world.
	h, err = New(Options{Config: cfg, Out: &out, PagerDisabled: true})
	require.NoError(t, err)
	defer func() { _ = Close(h) }()

	w, err := h.World.Weather()
	require.NoError(t, err)
	require.Equal(t, domain.WeatherRain, w.State)
}

func TestClose_Nil(t *testing.T) {
	require.NoError(t, Close(nil))
	require.NoError(t, Close(&Host{}))
}
