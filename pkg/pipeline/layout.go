package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/observability"
)

// maxReportedViolations bounds the violations quoted in a strict-mode error.
const maxReportedViolations = 3

// =============================================================================
// Layout Generation
// =============================================================================

// BuildLayout computes the complete layout of a chart. Options are expected
// to have layout defaults applied.
//
// The result is a pure function of data and the layout options: building the
// same chart twice yields identical layouts.
func BuildLayout(ctx context.Context, data family.Data, opts Options) (graph.Layout, error) {
	l, _, err := buildLayout(ctx, data, opts)
	return l, err
}

func buildLayout(ctx context.Context, data family.Data, opts Options) (graph.Layout, Stats, error) {
	hooks := observability.Pipeline()
	stats := Stats{People: len(data.Nodes), Links: len(data.Links)}

	// Index
	start := time.Now()
	idx := family.BuildIndex(data.Links)
	stats.IndexTime = time.Since(start)
	hooks.OnIndex(ctx, len(data.Links), stats.IndexTime)

	// Resolve
	start = time.Now()
	res := generation.Resolve(data.Nodes, idx, generation.WithMaxPasses(opts.MaxPasses))
	stats.ResolveTime = time.Since(start)
	stats.Passes = res.Passes
	stats.Generations = res.Count()
	hooks.OnResolve(ctx, len(data.Nodes), res.Passes, res.Converged, stats.ResolveTime)

	if opts.Strict && !res.Consistent() {
		return graph.Layout{}, stats, inconsistent(res)
	}

	// Elements and placement
	start = time.Now()
	els := elements.Build(data.Nodes, idx, res)
	placed, err := layout.Place(els.Nodes, idx, family.NewRuleBook(data.Layout),
		layout.WithSpacing(opts.Spacing), layout.WithStrict(opts.Strict))
	if err != nil {
		hooks.OnLayout(ctx, len(data.Nodes), 0, time.Since(start), err)
		return graph.Layout{}, stats, err
	}
	layout.RepositionLinks(placed, els.Nodes, idx, layout.WithSpacing(opts.Spacing))
	stats.PlaceTime = time.Since(start)
	stats.Deferred = len(placed.Deferred)
	hooks.OnLayout(ctx, len(data.Nodes), len(placed.Deferred), stats.PlaceTime, nil)

	// Framing
	box := layout.BoundingBox(placed, els.Nodes)

	violations := make([]string, len(res.Violations))
	for i, v := range res.Violations {
		violations[i] = v.String()
	}

	return graph.Layout{
		Family:        opts.Family,
		Nodes:         els.Nodes,
		Edges:         els.Edges,
		Positions:     placed.Positions,
		Rows:          placed.Rows,
		Bounds:        box,
		CanvasHeight:  layout.CanvasHeight(box),
		ViewportWidth: opts.ViewportWidth,
		Viewport:      layout.Fit(box, opts.ViewportWidth),
		Chapters:      layout.ChapterBands(placed, els.Nodes, data.Chapters),
		Spacing:       opts.Spacing,
		Generations:   res.Count(),
		Passes:        res.Passes,
		Converged:     res.Converged,
		Violations:    violations,
		Deferred:      placed.Deferred,
	}, stats, nil
}

// inconsistent builds the strict-mode error for a resolution that did not
// settle.
func inconsistent(res generation.Result) error {
	if len(res.Violations) == 0 {
		return errors.New(errors.ErrCodeInconsistentGenerations,
			"generations did not converge after %d passes", res.Passes)
	}

	quoted := make([]string, 0, maxReportedViolations)
	for _, v := range res.Violations {
		if len(quoted) == maxReportedViolations {
			break
		}
		quoted = append(quoted, v.String())
	}
	msg := strings.Join(quoted, "; ")
	if extra := len(res.Violations) - len(quoted); extra > 0 {
		return errors.New(errors.ErrCodeInconsistentGenerations,
			"%d generation constraints violated: %s (and %d more)", len(res.Violations), msg, extra)
	}
	return errors.New(errors.ErrCodeInconsistentGenerations,
		"%d generation constraints violated: %s", len(res.Violations), msg)
}
