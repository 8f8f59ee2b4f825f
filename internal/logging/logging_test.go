package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"taproom/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewFromConfig(t *testing.T) {
	clearEnv(t)
	var buf bytes.Buffer
	log := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Level = %v, want debug", log.GetLevel())
	}

	log.WithField("component", "render").Debug("frame")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not json: %v (%q)", err, buf.String())
	}
	if entry["component"] != "render" || entry["msg"] != "frame" {
		t.Errorf("Entry = %v", entry)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")

	log := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "text"}, &bytes.Buffer{})
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("Level = %v, want warn", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Formatter = %T, want json", log.Formatter)
	}
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	clearEnv(t)
	log := NewWithOutput(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{})
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Level = %v, want info", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Formatter = %T, want text", log.Formatter)
	}
}
