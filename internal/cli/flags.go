package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/lineage/pkg/pipeline"
)

// layoutFlags are the engine options shared by layout, render and inspect.
// Only flags given on the command line override the configuration.
type layoutFlags struct {
	family        string
	strict        bool
	maxPasses     int
	viewportWidth float64
	rowSpacing    float64
	columnSpacing float64
	coupleGap     float64
	noCache       bool
	refresh       bool
}

func (f *layoutFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.family, "family", "", "family id recorded in the layout")
	fs.BoolVar(&f.strict, "strict", false, "fail on inconsistent generations and unresolved alignments")
	fs.IntVar(&f.maxPasses, "max-passes", 0, "generation propagation pass limit (default from config)")
	fs.Float64Var(&f.viewportWidth, "width", 0, "viewport width the chart is fitted to (default from config)")
	fs.Float64Var(&f.rowSpacing, "row-spacing", 0, "vertical distance between generations")
	fs.Float64Var(&f.columnSpacing, "column-spacing", 0, "horizontal distance between people")
	fs.Float64Var(&f.coupleGap, "couple-gap", 0, "horizontal distance between spouses")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

func (f *layoutFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("family") {
		opts.Family = f.family
	}
	if fs.Changed("strict") {
		opts.Strict = f.strict
	}
	if fs.Changed("max-passes") {
		opts.MaxPasses = f.maxPasses
	}
	if fs.Changed("width") {
		opts.ViewportWidth = f.viewportWidth
	}
	if fs.Changed("row-spacing") {
		opts.Spacing.RowSpacing = f.rowSpacing
	}
	if fs.Changed("column-spacing") {
		opts.Spacing.ColumnSpacing = f.columnSpacing
	}
	if fs.Changed("couple-gap") {
		opts.Spacing.CoupleGap = f.coupleGap
	}
	opts.Refresh = f.refresh
}

// renderFlags are the artifact options shared by render and visualize.
type renderFlags struct {
	output    string
	formats   string
	scale     float64
	portraits bool
}

func (f *renderFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	fs.Float64Var(&f.scale, "scale", 0, "PNG resolution multiplier (default from config)")
	fs.BoolVar(&f.portraits, "portraits", false, "draw portrait images inside person nodes")
}

func (f *renderFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Portraits = f.portraits
	return pipeline.ValidateFormats(opts.Formats)
}
