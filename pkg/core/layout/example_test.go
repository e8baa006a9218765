package layout_test

import (
	"fmt"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
	"github.com/matzehuels/lineage/pkg/core/layout"
)

func ExamplePlace() {
	people := []family.Person{
		{ID: "anna", Name: "Anna", Year: family.YearOf(1850)},
		{ID: "karl", Name: "Karl", Year: family.YearOf(1848)},
		{ID: "ida", Name: "Ida", Year: family.YearOf(1875)},
	}
	links := []family.Link{
		{Source: "anna", Target: "karl", Type: family.LinkMarriage},
		{Source: "anna", Target: "ida", Type: family.LinkChild},
	}
	rules := family.Rules{Couples: []family.CoupleRule{
		{Person1: "anna", Person2: "karl", Person1Side: family.SideLeft},
	}}

	idx := family.BuildIndex(links)
	els := elements.Build(people, idx, generation.Resolve(people, idx))
	l, err := layout.Place(els.Nodes, idx, family.NewRuleBook(rules))
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, id := range l.Order {
		p, _ := l.Position(id)
		fmt.Printf("%s: (%.0f, %.0f)\n", id, p.X, p.Y)
	}
	// Output:
	// anna: (300, 250)
	// karl: (520, 250)
	// ida: (300, 600)
}

func ExampleFit() {
	box := layout.Box{X1: 0, Y1: 100, X2: 1000, Y2: 900}
	v := layout.Fit(box, 1000)
	fmt.Printf("zoom %.2f pan (%.0f, %.0f)\n", v.Zoom, v.PanX, v.PanY)
	// Output: zoom 0.90 pan (50, -70)
}
