package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success  string
	Warning  string
	Error    string
	Info     string
	Muted    string
	Header   string
	Literal  string
	Argument string
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{"default", "mono"}

// Themes contains the built-in color themes. Dark themes use bright colors,
// light themes use dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success:  "10",  // bright green
		Warning:  "11",  // bright yellow
		Error:    "9",   // bright red
		Info:     "14",  // bright cyan
		Muted:    "245", // medium gray
		Header:   "bold",
		Literal:  "15", // white
		Argument: "12", // bright blue
	},
	"default-light": {
		Success:  "28",  // dark green
		Warning:  "130", // dark orange
		Error:    "124", // dark red
		Info:     "27",  // dark blue
		Muted:    "242", // dark gray
		Header:   "bold",
		Literal:  "0",  // black
		Argument: "25", // deep blue
	},
	"mono-dark": {
		Success:  "15",
		Warning:  "bold",
		Error:    "bold",
		Info:     "252",
		Muted:    "242",
		Header:   "bold",
		Literal:  "15",
		Argument: "250",
	},
	"mono-light": {
		Success:  "0",
		Warning:  "bold",
		Error:    "bold",
		Info:     "236",
		Muted:    "246",
		Header:   "bold",
		Literal:  "0",
		Argument: "238",
	},
}

// IsDarkBackground returns true if the terminal has a dark background.
// Uses termenv to query the terminal. Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ResolveThemeName appends -dark or -light to a base theme name based on
// the terminal background. Names that already carry a suffix are kept.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}

	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig returns the colors of the named theme.
// Resolution priority:
// 1. CMDTREE_COLOR_THEME
// 2. theme argument
// 3. default, auto-detected for the terminal background
//
// Unknown themes fall back to default-dark.
func LoadColorConfig(theme string) ColorConfig {
	name := "default"
	if env := os.Getenv("CMDTREE_COLOR_THEME"); env != "" {
		name = env
	} else if theme != "" {
		name = theme
	}

	cfg, ok := Themes[ResolveThemeName(name)]
	if !ok {
		return Themes["default-dark"]
	}
	return cfg
}
