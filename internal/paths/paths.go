package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "cmdtree"

// AppDataDir returns the application directory for logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory, where
// the world database lives.
//   - macOS: ~/Library/Application Support/cmdtree
//   - Linux: $XDG_DATA_HOME/cmdtree or ~/.local/share/cmdtree
//   - Windows: %LOCALAPPDATA%\cmdtree
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// DatabasePath returns the default location of the world database.
func DatabasePath() string {
	return filepath.Join(AppLocalDataDir(), "world.db")
}

// ConfigFilePath returns ~/.cmdtree.toml.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cmdtree.toml"), nil
}

// LogFilePath returns the path to the application log file:
//   - macOS: ~/Library/Application Support/cmdtree/cmdtree.log
//   - Linux: $XDG_CONFIG_HOME/cmdtree/cmdtree.log or ~/.config/cmdtree/cmdtree.log
//   - Windows: %AppData%\cmdtree\cmdtree.log
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "cmdtree.log")
}
