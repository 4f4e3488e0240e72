package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points every config search path at empty temp dirs so tests
// never pick up a real config file or ambient CORTEX_* variables.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CORTEX_CONFIG", "")
	t.Setenv("CORTEX_DB", "")
	t.Setenv("CORTEX_LOG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Engine.Alpha != 0.3 || cfg.Engine.Threshold != 0.8 || cfg.Engine.MinAttempts != 3 {
		t.Errorf("engine defaults = %+v", cfg.Engine)
	}
	if cfg.Engine.RemediationThreshold != 0.5 {
		t.Errorf("remediation threshold = %v, want 0.5", cfg.Engine.RemediationThreshold)
	}
	if cfg.Session.TurnTimeout != 30*time.Second {
		t.Errorf("turn timeout = %v, want 30s", cfg.Session.TurnTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Curriculum.Dir != "" || cfg.Storage.DBPath != "" {
		t.Errorf("expected empty path defaults, got %+v / %+v", cfg.Curriculum, cfg.Storage)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `engine:
  alpha: 0.4
  threshold: 0.9
  min_attempts: 5
  remediation_threshold: 0.6
session:
  turn_timeout: 45s
storage:
  db_path: /tmp/cortex-test.db
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Engine.Alpha != 0.4 || cfg.Engine.Threshold != 0.9 || cfg.Engine.MinAttempts != 5 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	if cfg.Engine.RemediationThreshold != 0.6 {
		t.Errorf("remediation threshold = %v", cfg.Engine.RemediationThreshold)
	}
	if cfg.Session.TurnTimeout != 45*time.Second {
		t.Errorf("turn timeout = %v", cfg.Session.TurnTimeout)
	}
	if cfg.Storage.DBPath != "/tmp/cortex-test.db" {
		t.Errorf("db path = %q", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CORTEX_ENGINE_ALPHA", "0.5")
	t.Setenv("CORTEX_DB", "/tmp/env-cortex.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Engine.Alpha != 0.5 {
		t.Errorf("alpha = %v, want env override 0.5", cfg.Engine.Alpha)
	}
	if cfg.Storage.DBPath != "/tmp/env-cortex.db" {
		t.Errorf("db path = %q, want CORTEX_DB value", cfg.Storage.DBPath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
	}{
		{"alpha above one", "engine:\n  alpha: 1.5\n"},
		{"zero min attempts", "engine:\n  min_attempts: 0\n"},
		{"negative timeout", "session:\n  turn_timeout: -5s\n"},
		{"remediation above one", "engine:\n  remediation_threshold: 2.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParamMapping(t *testing.T) {
	e := EngineConfig{Alpha: 0.4, Threshold: 0.9, MinAttempts: 4, RemediationThreshold: 0.55}

	mp := e.MasteryParams()
	if mp.Alpha != 0.4 || mp.Threshold != 0.9 || mp.MinAttempts != 4 {
		t.Errorf("mastery params = %+v", mp)
	}
	pp := e.PlannerParams()
	if pp.RemediationThreshold != 0.55 {
		t.Errorf("planner params = %+v", pp)
	}
}
