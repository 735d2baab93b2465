package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
	}
	for _, tt := range tests {
		l, _, err := NewLogger(config.LogConfig{Level: tt.level}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("level %q: %v", tt.level, err)
		}
		if l.GetLevel() != tt.want {
			t.Errorf("level %q: got %v", tt.level, l.GetLevel())
		}
	}

	if _, _, err := NewLogger(config.LogConfig{Level: "loud"}, nil); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := NewLogger(config.LogConfig{Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.WithField("level_name", "n2").Info("loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["msg"] != "loaded" || entry["level_name"] != "n2" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tango.log")
	var fallback bytes.Buffer

	l, closer, err := NewLogger(config.LogConfig{File: path}, &fallback)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "to file") {
		t.Errorf("log file = %q", raw)
	}
	if fallback.Len() != 0 {
		t.Errorf("fallback should be unused, got %q", fallback.String())
	}
}
