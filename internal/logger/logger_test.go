package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(Options{Development: false, Environment: "production", Output: &buf})

	slog.Debug("hidden")
	slog.Info("check-in recorded", "user_id", "u1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "check-in recorded" || entry["user_id"] != "u1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestInitDevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(Options{Development: true, Output: &buf})
	slog.Debug("sequencer advanced", "field", "goals")

	if !strings.Contains(buf.String(), "field=goals") {
		t.Errorf("expected text output with debug entry, got %q", buf.String())
	}
	if Log == nil {
		t.Error("Log should be set")
	}
}
