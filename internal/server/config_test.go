package server

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Addr() != "localhost:8080" {
		t.Errorf("expected default addr localhost:8080, got %s", cfg.Addr())
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("expected memory backend by default, got %s", cfg.Store.Backend)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

store "sqlite" {
  path = "/tmp/practice.db"
}
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", cfg.Addr())
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.Server.LogLevel)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "/tmp/practice.db" {
		t.Errorf("unexpected store settings: %+v", cfg.Store)
	}
}

func TestLoadConfigPartialFillsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server {
  port = 9999
}

store "json" {}
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Address != "localhost" || cfg.Server.Port != 9999 {
		t.Errorf("expected defaults to fill in, got %+v", cfg.Server)
	}
	if cfg.Store.Path != "data" {
		t.Errorf("expected default json path, got %s", cfg.Store.Path)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
server {}

store "redis" {}
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown store backend")
	}
}
