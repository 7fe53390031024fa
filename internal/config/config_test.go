package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Reminders.Interval != 30*time.Second || cfg.Reminders.ToastTTL != 5*time.Second {
		t.Fatalf("unexpected reminder defaults: %+v", cfg.Reminders)
	}
	if cfg.Reminders.Buffer != 64 || cfg.Notifications.Desktop {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("unexpected default level: %v", cfg.SlogLevel())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultRuntimeConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
reminders:
  interval: 10s
  buffer: 8
seed:
  path: /tmp/seed.yaml
log:
  level: debug
notifications:
  desktop: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AGENCYD_REMINDERS_TOAST_TTL", "2s")
	t.Setenv("AGENCYD_JOURNAL_PATH", "/tmp/journal.db")
	t.Setenv("AGENCYD_REMINDERS_BUFFER", "128")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reminders.Interval != 10*time.Second || cfg.Reminders.ToastTTL != 2*time.Second {
		t.Fatalf("unexpected reminders: %+v", cfg.Reminders)
	}
	if cfg.Reminders.Buffer != 128 {
		t.Fatalf("expected env to win over file, got buffer %d", cfg.Reminders.Buffer)
	}
	if cfg.Seed.Path != "/tmp/seed.yaml" || cfg.Journal.Path != "/tmp/journal.db" {
		t.Fatalf("unexpected paths: %+v %+v", cfg.Seed, cfg.Journal)
	}
	if !cfg.Notifications.Desktop || cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("unexpected notifications/log: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("AGENCYD_REMINDERS_INTERVAL", "0s")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("reminders: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSlogLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Log.Level = "chatty"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", cfg.SlogLevel())
	}
	cfg.Log.Level = "WARN"
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("expected warn, got %v", cfg.SlogLevel())
	}
}
