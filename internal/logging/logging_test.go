package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" ERROR ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"JSON", log.JSONFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromConfigFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "info", "logfmt", false)

	logger.Debug("hidden")
	logger.Info("loaded store", "tasks", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "loaded store") || !strings.Contains(out, "tasks=3") {
		t.Errorf("output = %q, want info message with tasks=3", out)
	}
}

func TestFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "debug", "json", false)
	logger.Debug("wrote", "path", "pm/index.yml")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "wrote" {
		t.Errorf("msg = %v, want wrote", entry["msg"])
	}
	if entry["path"] != "pm/index.yml" {
		t.Errorf("path = %v, want pm/index.yml", entry["path"])
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != log.WarnLevel {
		t.Errorf("Level = %v, want warn", opts.Level)
	}
	if opts.Prefix != "pm" {
		t.Errorf("Prefix = %q, want pm", opts.Prefix)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want default info", logger.GetLevel())
	}
}
