package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("empty path should yield defaults: %v", err)
	}
	if cfg.Cache.RedisAddr == "" {
		t.Error("defaults should include a redis address")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[force]
link_distance = 120.0
repulsion = -250.0
seed = 7

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[render]
show_labels = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Force.LinkDistance != 120 {
		t.Errorf("link_distance = %v, want 120", cfg.Force.LinkDistance)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
	}
	if !cfg.Render.ShowLabels {
		t.Error("show_labels should be true")
	}

	opts := cfg.PipelineOptions()
	if opts.LinkDistance != 120 || opts.Repulsion != -250 || opts.Seed != 7 {
		t.Errorf("pipeline options not mapped: %+v", opts)
	}
	if !opts.ShowLabels {
		t.Error("ShowLabels should carry over")
	}
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("unknown backend should be an error")
	}
	// Defaults still usable after the error
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("fallback backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[force\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed TOML should be an error")
	}
}
