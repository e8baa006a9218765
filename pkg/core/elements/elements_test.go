package elements

import (
	"testing"

	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
)

func build(people []family.Person, links []family.Link) Elements {
	idx := family.BuildIndex(links)
	return Build(people, idx, generation.Resolve(people, idx))
}

func TestBuildCoupleWithChild(t *testing.T) {
	people := []family.Person{
		{ID: "A", Name: "Anna", Year: family.YearOf(1850)},
		{ID: "B", Name: "Bernd", Year: family.YearOf(1848)},
		{ID: "C", Name: "Clara", Year: family.ParseYear("1870s")},
	}
	got := build(people, []family.Link{
		{Source: "A", Target: "B", Type: family.LinkMarriage},
		{Source: "A", Target: "C", Type: family.LinkChild},
		{Source: "B", Target: "C", Type: family.LinkChild},
	})

	if len(got.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(got.Nodes))
	}
	wantGen := map[string]int{"A": 0, "B": 0, "C": 1}
	for _, n := range got.Nodes {
		if n.Generation != wantGen[n.ID] {
			t.Errorf("%s generation = %d, want %d", n.ID, n.Generation, wantGen[n.ID])
		}
	}
	if got.Nodes[2].Label != "Clara\nc. 1870s" {
		t.Errorf("label = %q", got.Nodes[2].Label)
	}

	// Second child edge into C is dropped.
	if len(got.Edges) != 2 {
		t.Fatalf("got %d edges, want 2: %+v", len(got.Edges), got.Edges)
	}
	if got.Edges[1].ID != "A-C-child" {
		t.Errorf("kept child edge = %s, want A-C-child", got.Edges[1].ID)
	}
}

func TestBuildEdgeDedup(t *testing.T) {
	links := []family.Link{
		{Source: "p1", Target: "c", Type: family.LinkChild},
		{Source: "p2", Target: "c", Type: family.LinkChild},
		{Source: "r1", Target: "c", Type: family.LinkDescent, Gap: 3},
		{Source: "r2", Target: "c", Type: family.LinkDescent, Gap: 3},
		{Source: "c", Target: "w1", Type: family.LinkMarriage},
		{Source: "c", Target: "w2", Type: family.LinkMarriage},
		{Source: "c", Target: "s", Type: family.LinkSibling},
		{Source: "c", Target: "s", Type: family.LinkSibling},
	}
	got := build([]family.Person{{ID: "c"}}, links)

	count := map[family.LinkType]int{}
	for _, e := range got.Edges {
		count[e.Type]++
	}
	want := map[family.LinkType]int{
		family.LinkChild:    1,
		family.LinkDescent:  1,
		family.LinkMarriage: 2,
		family.LinkSibling:  2,
	}
	for typ, n := range want {
		if count[typ] != n {
			t.Errorf("%s edges = %d, want %d", typ, count[typ], n)
		}
	}
	if got.Edges[0].Source != "p1" || got.Edges[1].Source != "r1" {
		t.Errorf("first links should win, got %s and %s", got.Edges[0].Source, got.Edges[1].Source)
	}
}

func TestBuildKeepsDanglingEdges(t *testing.T) {
	got := build([]family.Person{{ID: "a"}}, []family.Link{
		{Source: "a", Target: "ghost", Type: family.LinkChild, Adopted: true},
	})
	if len(got.Nodes) != 1 || len(got.Edges) != 1 {
		t.Fatalf("nodes=%d edges=%d, want 1 and 1", len(got.Nodes), len(got.Edges))
	}
	if !got.Edges[0].Adopted {
		t.Error("adopted flag lost")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		p    family.Person
		want string
	}{
		{"numeric year", family.Person{Name: "Ida", Year: family.YearOf(1901)}, "Ida\nc. 1901"},
		{"text year", family.Person{Name: "Ida", Year: family.ParseYear("1790s")}, "Ida\nc. 1790s"},
		{"no year", family.Person{Name: "Ida"}, "Ida"},
		{"link node", family.Person{Name: "Weber family", Year: family.YearOf(1700), LinkToFamily: "weber"}, "Weber family"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.p); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
