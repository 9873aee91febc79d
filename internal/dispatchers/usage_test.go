package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsage_Children(t *testing.T) {
	d, _ := createTestTree(t)
	src := newFakeSource()

	weather, ok := d.Find("test_weather")
	require.True(t, ok)
	require.Equal(t, []string{"clear", "rain", "thunder"}, d.Usage(weather, src))

	require.Equal(t, []string{
		"test_kill",
		"test_weather (clear|rain|thunder)",
		"kill2 [<target>]",
		"tell2 <player>",
		"msg -> tell2",
		"effect (give|clear|list)",
	}, d.Usage(d.Root(), src))

	require.Nil(t, d.Usage(999, src))
}

func TestUsage_All(t *testing.T) {
	d, _ := createTestTree(t)

	want := []string{
		"test_kill",
		"test_weather clear",
		"test_weather rain",
		"test_weather thunder",
		"kill2",
		"kill2 <target>",
		"tell2 <player> <message>",
		"msg -> tell2",
		"effect give <target> <effect>",
		"effect give <target> <effect> <amplifier>",
		"effect clear <target>",
		"effect list",
	}
	require.Equal(t, want, d.AllUsage(newFakeSource()))

	op := newFakeSource()
	op.admin = true
	require.Equal(t, append(want, "admin"), d.AllUsage(op))
}

func TestUsage_RedirectToRoot(t *testing.T) {
	d := NewDispatcher(nil)
	_, err := d.Register(Literal("execute").Then(Literal("run").RedirectTo(d.Root())))
	require.NoError(t, err)

	require.Equal(t, []string{"execute run -> ..."}, d.AllUsage(nil))
	require.Equal(t, []string{"execute run"}, d.Usage(d.Root(), nil))
}
