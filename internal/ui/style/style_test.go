package style

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	t.Setenv("CMDTREE_NO_COLOR", "")
	t.Setenv("CMDTREE_COLOR_THEME", "")
}

var semantic = []struct {
	name string
	fn   func(string) string
}{
	{"Success", Success},
	{"Warning", Warning},
	{"Error", Error},
	{"Info", Info},
	{"Header", Header},
	{"Muted", Muted},
}

func TestDisabledReturnsPlainText(t *testing.T) {
	clearEnv(t)
	Init(false, "default-dark")

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn("test message"); got != "test message" {
				t.Errorf("%s() with disabled styling: got %q", tt.name, got)
			}
		})
	}

	if got := Usage("tell2 <player> <message>"); got != "tell2 <player> <message>" {
		t.Errorf("Usage() with disabled styling: got %q", got)
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	clearEnv(t)
	Init(true, "default-dark")
	t.Cleanup(func() { Init(false, "") })

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.fn("test message")
			if !strings.Contains(output, "test message") {
				t.Errorf("%s() output %q does not contain input", tt.name, output)
			}
			if !strings.Contains(output, "\x1b[") {
				t.Errorf("%s() with enabled styling should contain ANSI codes: %q", tt.name, output)
			}
		})
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, env := range []string{"NO_COLOR", "CMDTREE_NO_COLOR"} {
		t.Run(env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env, "1")

			Init(true, "default-dark")
			if Enabled() {
				t.Errorf("Enabled() should return false when %s is set", env)
			}
			if got := Success("test"); got != "test" {
				t.Errorf("Success() should return plain text: got %q", got)
			}
		})
	}
}

func TestResult(t *testing.T) {
	clearEnv(t)
	Init(true, "default-dark")
	t.Cleanup(func() { Init(false, "") })

	if got, want := Result(6000, "ok"), Success("ok"); got != want {
		t.Errorf("Result(6000) = %q, want %q", got, want)
	}
	if got, want := Result(0, "meh"), Muted("meh"); got != want {
		t.Errorf("Result(0) = %q, want %q", got, want)
	}
	if got, want := Result(-1, "bad"), Error("bad"); got != want {
		t.Errorf("Result(-1) = %q, want %q", got, want)
	}
}

func TestUsage_KeepsTokens(t *testing.T) {
	clearEnv(t)
	Init(true, "default-dark")
	t.Cleanup(func() { Init(false, "") })

	out := Usage("test_weather (clear|rain|thunder)")
	for _, tok := range []string{"test_weather", "(clear|rain|thunder)"} {
		if !strings.Contains(out, tok) {
			t.Errorf("Usage() lost token %q: %q", tok, out)
		}
	}
}

func TestLoadColorConfig(t *testing.T) {
	clearEnv(t)

	if got := LoadColorConfig("mono-light"); got != Themes["mono-light"] {
		t.Errorf("mono-light not loaded: %+v", got)
	}
	if got := LoadColorConfig("nope-dark"); got != Themes["default-dark"] {
		t.Errorf("unknown theme should fall back to default-dark: %+v", got)
	}

	t.Setenv("CMDTREE_COLOR_THEME", "mono-dark")
	if got := LoadColorConfig("default-light"); got != Themes["mono-dark"] {
		t.Errorf("env theme should win: %+v", got)
	}
}

func TestResolveThemeName_KeepsSuffix(t *testing.T) {
	for _, name := range []string{"default-dark", "mono-light"} {
		if got := ResolveThemeName(name); got != name {
			t.Errorf("ResolveThemeName(%q) = %q", name, got)
		}
	}
}
