package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"fskanban/internal/infrastructure/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	cfg.Log.File = filepath.Join(dir, "logs", "fskanban.log")

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	logger.WithField("row", 3).Debug("board loaded")

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"board loaded"`) || !strings.Contains(string(data), `"row":3`) {
		t.Errorf("unexpected log output %q", data)
	}
}

func TestNewDefaultsToStderr(t *testing.T) {
	logger, err := New(config.Default(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Out != os.Stderr {
		t.Error("expected stderr output")
	}
	if _, ok := logger.Formatter.(*log.TextFormatter); !ok {
		t.Errorf("expected text formatter, got %T", logger.Formatter)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Log.Level = "loud"

	if _, err := New(cfg); err == nil {
		t.Error("expected error")
	}
}
