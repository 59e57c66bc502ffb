package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("backend = %s, want file", cfg.Store.Backend)
	}
	if !cfg.Catalog.Watch {
		t.Error("watch should default on")
	}
}

func TestLoadMissingOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Error("missing optional file should yield defaults")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true); err == nil {
		t.Error("expected error for missing required file")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archpad.toml")
	content := `
[server]
addr = ":9999"

[catalog]
path = "/srv/catalog.json"

[store]
backend = "redis"
redis_addr = "redis.internal:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Catalog.Path != "/srv/catalog.json" {
		t.Errorf("catalog path = %s", cfg.Catalog.Path)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "redis.internal:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	// Untouched sections keep defaults.
	if cfg.Catalog.Descriptions != "data/descriptions.json" {
		t.Errorf("descriptions = %s, want default", cfg.Catalog.Descriptions)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archpad.toml")
	if err := os.WriteFile(path, []byte("[store]\nbackend = \"dynamo\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, true); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archpad.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, true); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
