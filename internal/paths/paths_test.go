package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppDataDir_ContainsAppName(t *testing.T) {
	dir := AppDataDir()
	require.NotEqual(t, ".", dir)
	require.True(t, strings.HasSuffix(dir, "cmdtree"),
		"AppDataDir should end with 'cmdtree': %s", dir)
	require.True(t, filepath.IsAbs(dir),
		"AppDataDir should return an absolute path: %s", dir)
}

func TestAppLocalDataDir_Platform(t *testing.T) {
	dir := AppLocalDataDir()
	require.True(t, strings.HasSuffix(dir, "cmdtree"))

	switch runtime.GOOS {
	case "darwin":
		require.Contains(t, dir, "Application Support")
	case "linux":
		require.True(t, strings.Contains(dir, ".local/share") ||
			os.Getenv("XDG_DATA_HOME") != "",
			"Linux path should use XDG_DATA_HOME or .local/share: %s", dir)
	case "windows":
		require.Contains(t, dir, "AppData")
	}
}

func TestAppLocalDataDir_WithXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_DATA_HOME", "/tmp/custom/data")

	require.Equal(t, "/tmp/custom/data/cmdtree", AppLocalDataDir())
	require.Equal(t, "/tmp/custom/data/cmdtree/world.db", DatabasePath())
}

func TestAppLocalDataDir_WithoutXDGDataHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Test only runs on Linux")
	}

	t.Setenv("XDG_DATA_HOME", "")

	require.Contains(t, AppLocalDataDir(), ".local/share")
}

func TestConfigFilePath_UnderHomeDir(t *testing.T) {
	path, err := ConfigFilePath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, ".cmdtree.toml"), path)
}

func TestLogFilePath_IsUnderAppDataDir(t *testing.T) {
	logPath := LogFilePath()

	require.True(t, strings.HasPrefix(logPath, AppDataDir()))
	require.Equal(t, "cmdtree.log", filepath.Base(logPath))
}

func TestPaths_NoDotDotComponents(t *testing.T) {
	cfgPath, err := ConfigFilePath()
	require.NoError(t, err)

	for _, p := range []string{AppDataDir(), AppLocalDataDir(), DatabasePath(), LogFilePath(), cfgPath} {
		require.False(t, strings.Contains(p, ".."),
			"Path should not contain '..': %s", p)
	}
}
