// Package config loads lineage's TOML configuration file.
//
// Every field has a default, so an absent file is the same as an empty one.
// Command-line flags are applied on top of the loaded values by the CLI.
//
//	[layout]
//	row_spacing = 350
//	couple_gap = 220
//	max_passes = 50
//	strict = false
//	viewport_width = 1200
//
//	[cache]
//	backend = "redis"          # "file", "redis" or "none"
//	layout_ttl = "168h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "lineage:"
//
//	[store]
//	backend = "mongo"          # "memory" or "mongo"
//	uri = "mongodb://localhost:27017"
//	database = "lineage"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
)

// FileName is the name of the configuration file looked up by [Find].
const FileName = "lineage.toml"

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the complete configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// LayoutConfig configures the engine.
type LayoutConfig struct {
	layout.Spacing
	MaxPasses     int     `toml:"max_passes"`
	Strict        bool    `toml:"strict"`
	ViewportWidth float64 `toml:"viewport_width"`
}

// RenderConfig configures artifact rendering.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend     string      `toml:"backend"`
	Dir         string      `toml:"dir"`
	LayoutTTL   Duration    `toml:"layout_ttl"`
	ArtifactTTL Duration    `toml:"artifact_ttl"`
	Redis       RedisConfig `toml:"redis"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects and configures the layout store.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("90s", "168h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Spacing:       layout.DefaultSpacing(),
			MaxPasses:     generation.DefaultMaxPasses,
			ViewportWidth: 1200,
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
			Scale:   1,
		},
		Cache: CacheConfig{
			Backend:     CacheFile,
			LayoutTTL:   Duration{cache.TTLLayout},
			ArtifactTTL: Duration{cache.TTLArtifact},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "lineage:",
			},
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			Database:   "lineage",
			Collection: "layouts",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 4 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the file at path over the defaults. Unknown keys are an error
// so that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find returns the first existing configuration file: ./lineage.toml, then
// lineage/config.toml in the user configuration directory. It returns ""
// when there is none.
func Find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "lineage", "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// LoadDefault loads the file at path, or the file found by [Find] when path
// is empty, or the defaults when there is none.
func LoadDefault(path string) (Config, error) {
	if path == "" {
		path = Find()
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks backend names and numeric ranges.
func (c Config) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if !slices.Contains([]string{StoreMemory, StoreMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend %q (want memory or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.uri is required for the mongo backend")
	}
	if c.Layout.MaxPasses < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.max_passes must not be negative")
	}
	if c.Layout.ViewportWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.viewport_width must not be negative")
	}
	if c.Layout.RowSpacing < 0 || c.Layout.ColumnSpacing < 0 || c.Layout.CoupleGap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout spacing must not be negative")
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must not be negative")
	}
	return nil
}
