package generation

import (
	"maps"
	"slices"

	"github.com/matzehuels/lineage/pkg/core/family"
)

// Levels returns the distinct values of gens in ascending order.
func Levels(gens map[string]int) []int {
	set := make(map[int]struct{}, len(gens))
	for _, g := range gens {
		set[g] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Compact rewrites every value of gens to its rank among the distinct
// values, preserving order and equality.
//
//	Compact({a: 0, b: 1, c: 16, d: 20, e: 16}) == {a: 0, b: 1, c: 2, d: 3, e: 2}
func Compact(gens map[string]int) map[string]int {
	rank := rankOf(Levels(gens))
	out := make(map[string]int, len(gens))
	for id, g := range gens {
		out[id] = rank[g]
	}
	return out
}

// compactPeople compacts the values of the given people only, so ids that
// appear in links but not in the person set do not create empty rows.
// People without a raw value get generation 0.
func compactPeople(people []family.Person, raw map[string]int) map[string]int {
	present := make(map[string]int, len(people))
	for _, p := range people {
		if g, ok := raw[p.ID]; ok {
			present[p.ID] = g
		}
	}
	out := Compact(present)
	for _, p := range people {
		if _, ok := out[p.ID]; !ok {
			out[p.ID] = 0
		}
	}
	return out
}

func rankOf(levels []int) map[int]int {
	rank := make(map[int]int, len(levels))
	for i, g := range levels {
		rank[g] = i
	}
	return rank
}
