package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Layout.Spacing != layout.DefaultSpacing() {
		t.Errorf("Layout.Spacing = %+v, want defaults", cfg.Layout.Spacing)
	}
	if cfg.Layout.MaxPasses != 50 {
		t.Errorf("MaxPasses = %d, want 50", cfg.Layout.MaxPasses)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[layout]
row_spacing = 400
couple_gap = 200
strict = true

[cache]
backend = "redis"
layout_ttl = "2h"

[cache.redis]
addr = "redis:6379"
db = 2

[store]
backend = "mongo"
uri = "mongodb://mongo:27017"

[server]
addr = ":9090"
read_timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.RowSpacing != 400 || cfg.Layout.CoupleGap != 200 {
		t.Errorf("spacing = %+v", cfg.Layout.Spacing)
	}
	if cfg.Layout.ColumnSpacing != layout.DefaultColumnSpacing {
		t.Errorf("ColumnSpacing = %v, want default %v", cfg.Layout.ColumnSpacing, layout.DefaultColumnSpacing)
	}
	if !cfg.Layout.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Prefix != "lineage:" {
		t.Errorf("Redis.Prefix = %q, want default", cfg.Cache.Redis.Prefix)
	}
	if cfg.Cache.LayoutTTL.Duration != 2*time.Hour {
		t.Errorf("LayoutTTL = %v, want 2h", cfg.Cache.LayoutTTL)
	}
	if cfg.Store.Backend != StoreMongo || cfg.Store.Database != "lineage" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\nrow_spcing = 10\n", errors.ErrCodeInvalidConfig},
		{"bad duration", "[cache]\nlayout_ttl = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n", errors.ErrCodeInvalidConfig},
		{"negative passes", "[layout]\nmax_passes = -1\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault("")
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}

	if err := os.WriteFile(FileName, []byte("[server]\naddr = \":7000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadDefault("")
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
}

func TestDurationText(t *testing.T) {
	d := Duration{90 * time.Second}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load("../../examples/lineage.toml")
	if err != nil {
		t.Fatalf("example config: %v", err)
	}
	if cfg.Render.Scale != 2 {
		t.Errorf("Render.Scale = %v, want 2", cfg.Render.Scale)
	}
	if cfg.Cache.ArtifactTTL.Duration != 720*time.Hour {
		t.Errorf("ArtifactTTL = %v", cfg.Cache.ArtifactTTL)
	}
}
