package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
)

func TestRepositionLinks(t *testing.T) {
	link := elements.Node{ID: "L", Name: "Weber family", LinkToFamily: "weber"}
	nodes := []elements.Node{link, node("other", 1, 1800), node("D", 1, 1850), node("orphan", 0, 0)}
	nodes = append(nodes, elements.Node{ID: "L2", LinkToFamily: "braun"})
	idx := family.BuildIndex([]family.Link{
		{Source: "L", Target: "D", Type: family.LinkDescent, Gap: 3},
		{Source: "L", Target: "other", Type: family.LinkDescent, Gap: 3},
	})
	l := mustPlace(t, nodes, idx, family.Rules{})

	before, _ := l.Position("L2")
	moved := RepositionLinks(l, nodes, idx)

	if len(moved) != 1 || moved[0] != "L" {
		t.Errorf("moved = %v, want [L]", moved)
	}
	// First descent target wins, even when another is placed earlier.
	assertPos(t, l, "L", 600, 600-DefaultLinkOffset)
	assertPos(t, l, "L2", before.X, before.Y)
}

func TestRepositionLinksSpacing(t *testing.T) {
	nodes := []elements.Node{{ID: "L", LinkToFamily: "x"}, node("D", 1, 0)}
	idx := family.BuildIndex([]family.Link{{Source: "L", Target: "D", Type: family.LinkDescent}})
	l := mustPlace(t, nodes, idx, family.Rules{})

	RepositionLinks(l, nodes, idx, WithSpacing(Spacing{LinkOffset: 50}))
	assertPos(t, l, "L", 300, 550)
}

func TestBoundingBox(t *testing.T) {
	l := &Layout{Positions: map[string]Point{"p": {300, 250}, "l": {600, 100}}}
	nodes := []elements.Node{{ID: "p"}, {ID: "l", LinkToFamily: "x"}, {ID: "unplaced"}}

	got := BoundingBox(l, nodes)
	want := Box{X1: 210, Y1: 55, X2: 645, Y2: 340}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}
	if h := CanvasHeight(got); h != 685 {
		t.Errorf("CanvasHeight = %v, want 685", h)
	}

	if got := BoundingBox(&Layout{}, nodes); got != (Box{}) {
		t.Errorf("empty BoundingBox = %+v, want zero", got)
	}
}

func TestFit(t *testing.T) {
	box := Box{X1: 0, Y1: 100, X2: 1000, Y2: 900}
	tests := []struct {
		name  string
		width float64
		want  Viewport
	}{
		{"narrow view zooms out", 1000, Viewport{Zoom: 0.9, PanX: 50, PanY: -70}},
		{"wide view stays at 1", 2000, Viewport{Zoom: 1, PanX: 500, PanY: -80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(box, tt.width)
			if !near(got.Zoom, tt.want.Zoom) || !near(got.PanX, tt.want.PanX) || !near(got.PanY, tt.want.PanY) {
				t.Errorf("Fit = %+v, want %+v", got, tt.want)
			}
		})
	}

	if v := Fit(box, 2000); !v.ShowsChapters() {
		t.Error("zoom 1 should show chapters")
	}
	if v := Fit(box, 1000); v.ShowsChapters() {
		t.Error("zoom 0.9 should not show chapters")
	}
}

func TestChapterBands(t *testing.T) {
	l := &Layout{Positions: map[string]Point{
		"a": {300, 250}, "b": {300, 600}, "c": {300, 950}, "link": {300, 0}, "none": {600, 250},
	}}
	nodes := []elements.Node{
		{ID: "c", Chapter: "later"},
		{ID: "a", Chapter: "origins"},
		{ID: "b", Chapter: "origins"},
		{ID: "link", Chapter: "origins", LinkToFamily: "x"},
		{ID: "none"},
	}
	chapters := []family.Chapter{{ID: "origins", Title: "Origins", Subtitle: "1700–1800"}}

	bands := ChapterBands(l, nodes, chapters)
	want := []ChapterBand{
		{ID: "later", Title: "later", Top: 860, Bottom: 1040},
		{ID: "origins", Title: "Origins", Subtitle: "1700–1800", Top: 160, Bottom: 690},
	}
	if len(bands) != len(want) {
		t.Fatalf("got %d bands, want %d: %+v", len(bands), len(want), bands)
	}
	for i := range want {
		if bands[i] != want[i] {
			t.Errorf("band %d = %+v, want %+v", i, bands[i], want[i])
		}
	}

	top, height := bands[1].Screen(Viewport{Zoom: 1, PanY: -80}, 60)
	if top != 140 || height != 530 {
		t.Errorf("Screen = (%v, %v), want (140, 530)", top, height)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
