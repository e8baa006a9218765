package layout

import (
	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
)

// ChapterBand is the vertical extent of one chapter in chart coordinates.
type ChapterBand struct {
	ID       string  `json:"id" bson:"id"`
	Title    string  `json:"title" bson:"title"`
	Subtitle string  `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Top      float64 `json:"top" bson:"top"`
	Bottom   float64 `json:"bottom" bson:"bottom"`
}

// Screen converts the band to screen space under v. header is the height
// of any fixed header above the chart area.
func (b ChapterBand) Screen(v Viewport, header float64) (top, height float64) {
	top = b.Top*v.Zoom + v.PanY + header
	height = (b.Bottom - b.Top) * v.Zoom
	return top, height
}

// ChapterBands groups people by chapter and returns one band per chapter,
// spanning its highest to lowest member plus half a node. Link nodes and
// people without a chapter are ignored. Bands are in order of first
// appearance in nodes; chapters without members produce no band, and a
// chapter missing from chapters is titled with its id.
func ChapterBands(l *Layout, nodes []elements.Node, chapters []family.Chapter) []ChapterBand {
	meta := make(map[string]family.Chapter, len(chapters))
	for _, c := range chapters {
		meta[c.ID] = c
	}

	var out []ChapterBand
	pos := make(map[string]int)
	for _, n := range nodes {
		if n.Chapter == "" || n.IsLinkNode() {
			continue
		}
		pt, ok := l.Positions[n.ID]
		if !ok {
			continue
		}
		i, seen := pos[n.Chapter]
		if !seen {
			c, known := meta[n.Chapter]
			title := c.Title
			if !known || title == "" {
				title = n.Chapter
			}
			out = append(out, ChapterBand{ID: n.Chapter, Title: title, Subtitle: c.Subtitle, Top: pt.Y, Bottom: pt.Y})
			i = len(out) - 1
			pos[n.Chapter] = i
		}
		out[i].Top = min(out[i].Top, pt.Y)
		out[i].Bottom = max(out[i].Bottom, pt.Y)
	}

	for i := range out {
		out[i].Top -= ChapterBandPad
		out[i].Bottom += ChapterBandPad
	}
	return out
}
