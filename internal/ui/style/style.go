// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. Styling is
// semantic (Success, Error, Argument...) rather than visual.
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool
	colors  ColorConfig

	successStyle  lipgloss.Style
	warningStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	infoStyle     lipgloss.Style
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	literalStyle  lipgloss.Style
	argumentStyle lipgloss.Style
)

// Init sets whether output is styled and which theme to use. NO_COLOR and
// CMDTREE_NO_COLOR disable styling regardless of enable.
func Init(enable bool, theme string) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CMDTREE_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		colors = LoadColorConfig(theme)
		initStyles(colors)
	}
}

// GetColors returns the current color configuration.
func GetColors() ColorConfig {
	return colors
}

func initStyles(colors ColorConfig) {
	// ANSI256 regardless of TTY detection; the caller already decided.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	literalStyle = makeStyle(colors.Literal)
	argumentStyle = makeStyle(colors.Argument).Italic(true)
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func Success(text string) string { return render(successStyle, text) }
func Warning(text string) string { return render(warningStyle, text) }
func Error(text string) string   { return render(errorStyle, text) }
func Info(text string) string    { return render(infoStyle, text) }
func Header(text string) string  { return render(headerStyle, text) }
func Muted(text string) string   { return render(mutedStyle, text) }

// Result styles text by a handler's integer result: positive is success,
// zero is muted, negative is an error.
func Result(result int, text string) string {
	switch {
	case result > 0:
		return Success(text)
	case result == 0:
		return Muted(text)
	default:
		return Error(text)
	}
}

// Usage styles a usage line token by token: <arguments>, literals, and the
// grouping punctuation of alternatives.
func Usage(line string) string {
	if !enabled {
		return line
	}

	fields := strings.Fields(line)
	for i, f := range fields {
		switch {
		case f == "->":
			fields[i] = mutedStyle.Render(f)
		case strings.ContainsAny(f, "<>"):
			fields[i] = argumentStyle.Render(f)
		case strings.ContainsAny(f, "()[]|"):
			fields[i] = mutedStyle.Render(f)
		default:
			fields[i] = literalStyle.Render(f)
		}
	}
	return strings.Join(fields, " ")
}
