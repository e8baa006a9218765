package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/config"
	"github.com/matzehuels/lineage/pkg/observability"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.Config.Cache.Dir = t.TempDir()
	return c
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,dot", []string{"svg", "pdf", "dot"}},
		{"spaces and empties", " svg , ,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "charts/family.json", "charts/family"},
		{"", "charts/family.toml", "charts/family"},
		{"", "charts/family.layout.json", "charts/family"},
		{"out/tree.svg", "family.json", "out/tree"},
		{"out/tree", "family.json", "out/tree"},
		{"out/tree.v2", "family.json", "out/tree.v2"},
	}

	for _, tt := range tests {
		if got := outputBase(tt.output, tt.input); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	if got := artifactPath("out/tree", "tree.svg", "svg", 1); got != "tree.svg" {
		t.Errorf("single format with output = %q", got)
	}
	if got := artifactPath("out/tree", "tree.svg", "png", 2); got != "out/tree.png" {
		t.Errorf("multiple formats = %q", got)
	}
	if got := layoutPath("charts/family.toml"); got != "charts/family.layout.json" {
		t.Errorf("layoutPath = %q", got)
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	c := testCLI(t)
	c.Config.Layout.Strict = true
	c.Config.Layout.RowSpacing = 400
	c.Config.Render.Scale = 3

	opts := c.pipelineOptions()
	if !opts.Strict || opts.Spacing.RowSpacing != 400 || opts.Scale != 3 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Logger != c.Logger {
		t.Error("options should carry the CLI logger")
	}
}

func TestLayoutFlagsOverrideOnlyWhenSet(t *testing.T) {
	c := testCLI(t)
	c.Config.Layout.MaxPasses = 20
	c.Config.Layout.ViewportWidth = 900

	var flags layoutFlags
	fs := pflag.NewFlagSet("layout", pflag.ContinueOnError)
	flags.bind(fs)
	if err := fs.Parse([]string{"--width", "1600", "--strict"}); err != nil {
		t.Fatal(err)
	}

	opts := c.pipelineOptions()
	flags.apply(fs, &opts)
	if opts.ViewportWidth != 1600 || !opts.Strict {
		t.Errorf("flags not applied: width %v strict %v", opts.ViewportWidth, opts.Strict)
	}
	if opts.MaxPasses != 20 {
		t.Errorf("MaxPasses = %d, want the configured 20", opts.MaxPasses)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c := testCLI(t)
	ch, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := ch.(*cache.FileCache); !ok || fc.Dir() != c.Config.Cache.Dir {
		t.Errorf("file backend = %T", ch)
	}

	ch, _ = c.newCache(ctx, true)
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("--no-cache backend = %T, want NullCache", ch)
	}

	c.Config.Cache.Backend = config.CacheNone
	ch, _ = c.newCache(ctx, false)
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want NullCache", ch)
	}
}

func TestNewRunnerTTLs(t *testing.T) {
	c := testCLI(t)
	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.LayoutTTL != cache.TTLLayout || r.ArtifactTTL != cache.TTLArtifact {
		t.Errorf("TTLs = %v, %v", r.LayoutTTL, r.ArtifactTTL)
	}
}

func TestLoadConfig(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	dir := t.TempDir()
	path := filepath.Join(dir, "lineage.toml")
	content := "[layout]\nstrict = true\n\n[log]\nlevel = \"warn\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if !c.Config.Layout.Strict {
		t.Error("strict from file not applied")
	}
	if c.Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", c.Logger.GetLevel())
	}

	if _, ok := observability.Pipeline().(*observability.LogHooks); ok {
		t.Error("log hooks installed below debug level")
	}

	c.verbose = true
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("--verbose level = %v, want debug", c.Logger.GetLevel())
	}
	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Errorf("pipeline hooks = %T, want *LogHooks", observability.Pipeline())
	}
}
