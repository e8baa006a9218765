package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lineage/pkg/core/render/nodelink"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/observability"
)

// RenderLayout generates output artifacts in the requested formats. Options
// are expected to have render defaults applied.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	dot := nodelink.ToDOT(l, nodelink.Options{Portraits: opts.Portraits})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		start := time.Now()
		data, err := renderFormat(ctx, l, dot, format, opts)
		hooks.OnRender(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderFormat(ctx context.Context, l graph.Layout, dot, format string, opts Options) ([]byte, error) {
	switch format {
	case graph.FormatJSON:
		return graph.MarshalLayout(l)
	case graph.FormatDOT:
		return []byte(dot), nil
	case graph.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case graph.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case graph.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported output format: %s", format)
	}
}
