package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hrithikpandeyhp/cortex/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cortex.log")

	log, err := New(config.LogConfig{
		Level:      "debug",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	log.Debug("turn opened")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	if err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("CORTEX_LOG", "/tmp/override.log")
	p, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != "/tmp/override.log" {
		t.Errorf("path = %q, want CORTEX_LOG value", p)
	}

	t.Setenv("CORTEX_LOG", "")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err = DefaultLogPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join("/tmp/state", "cortex", "cortex.log") {
		t.Errorf("path = %q", p)
	}
}
