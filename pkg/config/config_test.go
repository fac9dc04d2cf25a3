package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[layout]
grid_unit = 50
seed = 7

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.GridUnit != 50 {
		t.Errorf("grid_unit = %v", cfg.Layout.GridUnit)
	}
	if cfg.Layout.Seed != 7 {
		t.Errorf("seed = %v", cfg.Layout.Seed)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("explicit missing config should fail")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, "not = [valid")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "file"
`)
	t.Setenv("SCHEMATIC_CACHE_BACKEND", "memory")
	t.Setenv("SCHEMATIC_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("env override lost: backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env override lost: addr = %q", cfg.Server.Addr)
	}
}

func TestCacheDirExplicit(t *testing.T) {
	c := CacheConfig{Dir: "/tmp/custom"}
	dir, err := c.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/custom" {
		t.Errorf("dir = %q", dir)
	}
}
