package generation_test

import (
	"fmt"

	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
)

func ExampleResolve() {
	people := []family.Person{{ID: "founder"}, {ID: "spouse"}, {ID: "heir"}, {ID: "descendant"}}
	links := []family.Link{
		{Source: "founder", Target: "spouse", Type: family.LinkMarriage},
		{Source: "founder", Target: "heir", Type: family.LinkChild},
		{Source: "heir", Target: "descendant", Type: family.LinkDescent, Label: "~5 generations"},
	}

	res := generation.Resolve(people, family.BuildIndex(links))

	for _, p := range people {
		fmt.Printf("%s: raw %d, row %d\n", p.ID, res.Raw[p.ID], res.Of(p.ID))
	}
	fmt.Println("converged:", res.Converged)
	// Output:
	// founder: raw 0, row 0
	// spouse: raw 0, row 0
	// heir: raw 1, row 1
	// descendant: raw 6, row 2
	// converged: true
}

func ExampleCompact() {
	rows := generation.Compact(map[string]int{"a": 0, "b": 1, "c": 16, "d": 20})
	fmt.Println(rows["a"], rows["b"], rows["c"], rows["d"])
	// Output: 0 1 2 3
}
