package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_FiltersAndAnnotates(t *testing.T) {
	var buf bytes.Buffer
	logger := WithRequestID(WithComponent(NewLogger(&buf, "warn"), "reconciler"), "req-1")

	logger.Info("dropped")
	logger.Warn("kept", "count", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" || entry["component"] != "reconciler" || entry["request_id"] != "req-1" {
		t.Errorf("unexpected log entry: %v", entry)
	}
	if entry["count"] != float64(2) {
		t.Errorf("expected count attribute, got %v", entry["count"])
	}
}
