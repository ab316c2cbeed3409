package observability

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "mixed case Info", input: "Info", expected: slog.LevelInfo},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInitLoggerJSON(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "debug", Format: "json"})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}
	logger.Info("test message", "key", "value")
}

func TestInitLoggerText(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "text"})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}
	logger.Info("test message", "key", "value")
}

func TestInitLoggerSetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "json"})

	defaultLogger := slog.Default()
	if defaultLogger == nil {
		t.Fatal("slog.Default() returned nil after InitLogger")
	}
	if logger.Handler() != defaultLogger.Handler() {
		t.Error("InitLogger did not set the default logger")
	}
}
