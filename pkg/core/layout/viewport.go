package layout

import (
	"math"

	"github.com/matzehuels/lineage/pkg/core/elements"
)

// Node extents in pixels.
const (
	PersonSize = 180
	LinkSize   = 90
)

// Viewport framing.
const (
	CanvasPadding   = 400  // added to the content height
	SidePadding     = 0.05 // of the viewport width, per side
	TopMargin       = 20
	ChapterZoom     = 1.0 // chapter bands are only drawn at this zoom
	ChapterBandPad  = PersonSize / 2
	MinViewportSize = 1
)

// Box is an axis-aligned rectangle.
type Box struct {
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
	X2 float64 `json:"x2" bson:"x2"`
	Y2 float64 `json:"y2" bson:"y2"`
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Center returns the middle of the box.
func (b Box) Center() Point { return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2} }

// Viewport is the zoom and pan a renderer applies to show a layout.
type Viewport struct {
	Zoom float64 `json:"zoom" bson:"zoom"`
	PanX float64 `json:"pan_x" bson:"pan_x"`
	PanY float64 `json:"pan_y" bson:"pan_y"`
}

// ShowsChapters reports whether chapter bands line up with the content at
// this zoom.
func (v Viewport) ShowsChapters() bool { return v.Zoom == ChapterZoom }

// BoundingBox returns the extent of all placed nodes, including their size.
// The zero box is returned for an empty layout.
func BoundingBox(l *Layout, nodes []elements.Node) Box {
	box := Box{X1: math.Inf(1), Y1: math.Inf(1), X2: math.Inf(-1), Y2: math.Inf(-1)}
	found := false
	for _, n := range nodes {
		pt, ok := l.Positions[n.ID]
		if !ok {
			continue
		}
		found = true
		half := float64(PersonSize) / 2
		if n.IsLinkNode() {
			half = float64(LinkSize) / 2
		}
		box.X1 = min(box.X1, pt.X-half)
		box.Y1 = min(box.Y1, pt.Y-half)
		box.X2 = max(box.X2, pt.X+half)
		box.Y2 = max(box.Y2, pt.Y+half)
	}
	if !found {
		return Box{}
	}
	return box
}

// CanvasHeight returns the drawing height needed for box.
func CanvasHeight(box Box) float64 {
	return box.Height() + CanvasPadding
}

// Fit returns the viewport that shows box horizontally centred in a view of
// the given width, with SidePadding on each side and the top of the content
// TopMargin below the top edge. Fit never zooms in past 1.
func Fit(box Box, width float64) Viewport {
	width = max(width, MinViewportSize)
	pad := width * SidePadding
	zoom := 1.0
	if w := box.Width(); w > 0 {
		zoom = min((width-2*pad)/w, 1)
	}
	c := box.Center()
	return Viewport{
		Zoom: zoom,
		PanX: width/2 - c.X*zoom,
		PanY: TopMargin - box.Y1*zoom,
	}
}
