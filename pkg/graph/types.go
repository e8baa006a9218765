package graph

import (
	"maps"
	"slices"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Chart document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ChartFormats lists the accepted chart document formats.
var ChartFormats = []string{FormatJSON, FormatTOML}

// OutputFormats lists the formats a layout can be exported to.
var OutputFormats = []string{FormatJSON, FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// =============================================================================
// Layout - Computed Chart
// =============================================================================

// Layout is the serialization format of a computed chart.
//
// Elements and positions are what a renderer draws. The viewport fields tell
// it how to frame the content, and Chapters gives the background bands. The
// diagnostics (Converged, Passes, Violations, Deferred) report how well the
// input data fit together; a layout is produced either way.
type Layout struct {
	// Identity (set when stored)
	ID     string `json:"id,omitempty" bson:"_id,omitempty"`
	Family string `json:"family,omitempty" bson:"family,omitempty"`

	// Chart content
	Nodes     []elements.Node         `json:"nodes" bson:"nodes"`
	Edges     []elements.Edge         `json:"edges" bson:"edges"`
	Positions map[string]layout.Point `json:"positions" bson:"positions"`
	Rows      map[int][]string        `json:"rows,omitempty" bson:"rows,omitempty"`

	// Framing
	Bounds        layout.Box           `json:"bounds" bson:"bounds"`
	CanvasHeight  float64              `json:"canvas_height" bson:"canvas_height"`
	ViewportWidth float64              `json:"viewport_width" bson:"viewport_width"`
	Viewport      layout.Viewport      `json:"viewport" bson:"viewport"`
	Chapters      []layout.ChapterBand `json:"chapters,omitempty" bson:"chapters,omitempty"`
	Spacing       layout.Spacing       `json:"spacing" bson:"spacing"`

	// Diagnostics
	Generations int                `json:"generations" bson:"generations"`
	Passes      int                `json:"passes" bson:"passes"`
	Converged   bool               `json:"converged" bson:"converged"`
	Violations  []string           `json:"violations,omitempty" bson:"violations,omitempty"`
	Deferred    []layout.Alignment `json:"deferred,omitempty" bson:"deferred,omitempty"`
}

// Position returns the point of id.
func (l *Layout) Position(id string) (layout.Point, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// Node returns the node element with the given id.
func (l *Layout) Node(id string) (elements.Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return elements.Node{}, false
}

// Clone returns a copy of l that shares no slices or maps with it.
func (l *Layout) Clone() Layout {
	out := *l
	out.Nodes = slices.Clone(l.Nodes)
	out.Edges = slices.Clone(l.Edges)
	out.Positions = maps.Clone(l.Positions)
	if l.Rows != nil {
		out.Rows = make(map[int][]string, len(l.Rows))
		for g, ids := range l.Rows {
			out.Rows[g] = slices.Clone(ids)
		}
	}
	out.Chapters = slices.Clone(l.Chapters)
	out.Violations = slices.Clone(l.Violations)
	out.Deferred = slices.Clone(l.Deferred)
	return out
}

// Consistent reports whether the generations converged without
// violations.
func (l *Layout) Consistent() bool { return l.Converged && len(l.Violations) == 0 }
