// Package pipeline provides the chart pipeline for lineage.
//
// This package implements the complete chart → layout → render pipeline used
// by the CLI and the HTTP server. By centralizing this logic, both surfaces
// produce identical layouts for identical input and share one cache.
//
// # Architecture
//
// The layout stage runs the engine end to end:
//
//  1. Index: build the relationship index from the chart's links
//  2. Resolve: assign a generation to every person
//  3. Elements: build node and edge elements, deduplicating parent edges
//  4. Place: position every person row by row
//  5. Links: move link nodes next to their descendants
//  6. Frame: bounding box, canvas height, fitted viewport and chapter bands
//
// The render stage turns a [graph.Layout] into artifacts (JSON, DOT, SVG,
// PNG, PDF). Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.ComputeLayout(ctx, data, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
//
// # Strict Mode
//
// By default the engine is best-effort: inconsistent generation constraints
// and unresolvable alignments are reported in the layout's diagnostics. With
// [Options.Strict] set they become errors with the codes
// INCONSISTENT_GENERATIONS and FORWARD_REFERENCE.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultViewportWidth is the width the viewport is fitted to.
	DefaultViewportWidth = 1200.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = graph.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Family        string         `json:"family,omitempty"`
	Spacing       layout.Spacing `json:"spacing,omitempty"`
	MaxPasses     int            `json:"max_passes,omitempty"`
	Strict        bool           `json:"strict,omitempty"`
	ViewportWidth float64        `json:"viewport_width,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Portraits bool     `json:"portraits,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the chart the pipeline ran on.
	Data family.Data

	// ChartHash is the content hash of the chart.
	ChartHash string

	// Layout is the computed chart.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	People      int
	Links       int
	Generations int
	Passes      int
	Deferred    int
	IndexTime   time.Duration
	ResolveTime time.Duration
	PlaceTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is a supported output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, graph.OutputFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.Spacing = o.Spacing.WithDefaults()
	if o.MaxPasses == 0 {
		o.MaxPasses = generation.DefaultMaxPasses
	}
	if o.ViewportWidth == 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.MaxPasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_passes must not be negative, got %d", o.MaxPasses)
	}
	if o.ViewportWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport_width must not be negative, got %g", o.ViewportWidth)
	}
	if o.Family != "" {
		if err := errors.ValidateChartID(o.Family); err != nil {
			return err
		}
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %g", o.Scale)
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RowSpacing:    o.Spacing.RowSpacing,
		ColumnSpacing: o.Spacing.ColumnSpacing,
		CoupleGap:     o.Spacing.CoupleGap,
		Baseline:      o.Spacing.Baseline,
		StartX:        o.Spacing.StartX,
		LinkOffset:    o.Spacing.LinkOffset,
		MaxPasses:     o.MaxPasses,
		Strict:        o.Strict,
		ViewportWidth: o.ViewportWidth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case graph.FormatPNG:
		opts.Scale = o.Scale
		opts.Portraits = o.Portraits
	case graph.FormatSVG, graph.FormatPDF, graph.FormatDOT:
		opts.Portraits = o.Portraits
	}
	return opts
}
