// Package config loads service and CLI configuration from TOML files with
// environment variable overrides.
//
// Configuration is optional: everything has a working default, a config
// file refines it, and environment variables win over both. The search
// order for the file is an explicit --config path, then
// $SCHEMATIC_CONFIG, then ~/.config/schematic/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "SCHEMATIC_CONFIG"

// Config is the full application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig overrides engine defaults for every run.
type LayoutConfig struct {
	GridUnit            float64 `toml:"grid_unit"`
	Padding             float64 `toml:"padding"`
	Seed                uint64  `toml:"seed"`
	AnnealingIterations int     `toml:"annealing_iterations"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "memory", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory. Defaults to the user cache dir.
	Dir string `toml:"dir"`
	// RedisAddr is the redis backend's host:port.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	// KeyPrefix namespaces cache keys, for shared Redis instances.
	KeyPrefix string `toml:"key_prefix"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBodyBytes caps request body size. Zero keeps the default.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the baseline configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080", MaxBodyBytes: 1 << 20},
	}
}

// Load reads configuration from path. An empty path falls back to
// $SCHEMATIC_CONFIG and then the default location; a missing file at a
// fallback location is not an error, a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = defaultPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		applyEnv(&cfg)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides loaded values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SCHEMATIC_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("SCHEMATIC_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("SCHEMATIC_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("SCHEMATIC_REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("SCHEMATIC_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = db
		}
	}
	if v := os.Getenv("SCHEMATIC_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// CacheDir resolves the file backend directory, defaulting to the OS user
// cache dir.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, "schematic"), nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "schematic", "config.toml")
}
