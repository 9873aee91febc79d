package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_BasicLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(logPath, LevelDebug)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("parse %q", "test_weather rain")
	logger.Info("dispatched %s", "test_weather rain")
	logger.Warn("no handler for %s", "test_weather")
	logger.Error("store: %v", "locked")
	_ = logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	for _, want := range []string{
		`DEBUG: parse "test_weather rain"`,
		"INFO: dispatched test_weather rain",
		"WARN: no handler for test_weather",
		"ERROR: store: locked",
	} {
		if !strings.Contains(string(content), want) {
			t.Errorf("%q not found in log", want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered: %s", out)
	}
	if !strings.Contains(out, "warning message") || !strings.Contains(out, "error message") {
		t.Errorf("warn and error should be present: %s", out)
	}
}

func TestLogger_FilePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(logPath, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("appended")
	_ = logger.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600, got %o", perm)
	}

	content, _ := os.ReadFile(logPath)
	if !strings.HasPrefix(string(content), "old\n") || !strings.Contains(string(content), "appended") {
		t.Errorf("log should be appended to: %q", content)
	}
}

func TestLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelInfo)

	logger.Info("enabled message")
	logger.SetEnabled(false)
	logger.Info("disabled message")
	logger.SetEnabled(true)
	logger.Info("enabled again")

	out := buf.String()
	if !strings.Contains(out, "enabled message") || !strings.Contains(out, "enabled again") {
		t.Errorf("enabled messages missing: %s", out)
	}
	if strings.Contains(out, "disabled message") {
		t.Error("Disabled message should not be present")
	}
}

func TestLogger_CloseStopsWriting(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatal(err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() should be a no-op, got %v", err)
	}
	logger.Info("after close")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	if got := Level(99).String(); got != "UNKNOWN" {
		t.Errorf("Level(99).String() = %q", got)
	}
	if got := LevelError.String(); got != "ERROR" {
		t.Errorf("LevelError.String() = %q", got)
	}
}

func TestLogger_NilIsSilent(t *testing.T) {
	var logger *Logger
	logger.SetEnabled(true)
	logger.Debug("test")
	logger.Error("test")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nil logger should return nil, got %v", err)
	}
}

func TestGlobalLogger(t *testing.T) {
	saved := GetLogger()
	t.Cleanup(func() {
		defaultLoggerMu.Lock()
		defaultLogger = saved
		defaultLoggerMu.Unlock()
	})

	defaultLoggerMu.Lock()
	defaultLogger = nil
	defaultLoggerMu.Unlock()

	Info("dropped")
	if err := Close(); err != nil {
		t.Errorf("Close() with no global logger should return nil, got %v", err)
	}

	logPath := filepath.Join(t.TempDir(), "nested", "global.log")
	if err := Init(logPath, LevelDebug); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	Debug("debug message")
	Warn("warn message")
	if err := Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "debug message") || !strings.Contains(string(content), "warn message") {
		t.Errorf("global messages missing: %s", content)
	}
}
