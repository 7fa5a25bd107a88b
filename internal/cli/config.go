package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mlindqvist/arkigraf/pkg/pipeline"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the on-disk configuration, read from
// ~/.config/arkigraf/config.toml. Every field has a working default so the
// file is optional.
type Config struct {
	Force  ForceConfig  `toml:"force"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ForceConfig overrides the simulation parameters.
type ForceConfig struct {
	LinkDistance  float64 `toml:"link_distance"`
	Repulsion     float64 `toml:"repulsion"`
	CollideRadius float64 `toml:"collide_radius"`
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Seed          int64   `toml:"seed"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file (default), redis, none
	RedisAddr string `toml:"redis_addr"`
}

// RenderConfig holds static-export preferences.
type RenderConfig struct {
	ShowLabels bool `toml:"show_labels"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
	}
}

// DefaultConfigPath returns the config file location using the OS config
// directory (~/.config/arkigraf/config.toml on Linux).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// LoadConfig reads a TOML config file. A missing file is not an error and
// yields the defaults; a malformed file returns the defaults alongside the
// parse error so the CLI can warn and continue.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendFile
	}
	return nil
}

// PipelineOptions converts the config into pipeline options. Zero values
// stay zero so the pipeline defaults apply.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:         c.Force.Width,
		Height:        c.Force.Height,
		Seed:          c.Force.Seed,
		LinkDistance:  c.Force.LinkDistance,
		Repulsion:     c.Force.Repulsion,
		CollideRadius: c.Force.CollideRadius,
		ShowLabels:    c.Render.ShowLabels,
	}
}
