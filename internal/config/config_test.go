package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tydlig")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("default config.yaml not written: %v", err)
	}
	if cfg.BeforeLunchHours != 4 {
		t.Fatalf("before_lunch_hours = %d, want 4", cfg.BeforeLunchHours)
	}
	if cfg.TickSeconds != 60 {
		t.Fatalf("tick_seconds = %d, want 60", cfg.TickSeconds)
	}
	if cfg.DBPath != "" {
		t.Fatalf("db_path = %q, want empty default", cfg.DBPath)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "db_path: /tmp/custom.db\nbefore_lunch_hours: 5\ntick_seconds: 30\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("db_path = %q", cfg.DBPath)
	}
	if cfg.BeforeLunchWindow() != 5*time.Hour {
		t.Fatalf("window = %v, want 5h", cfg.BeforeLunchWindow())
	}
	if cfg.TickInterval() != 30*time.Second {
		t.Fatalf("tick = %v, want 30s", cfg.TickInterval())
	}
}

func TestLoadKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "tick_seconds: 10\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Fatal("existing config.yaml was overwritten")
	}
}
