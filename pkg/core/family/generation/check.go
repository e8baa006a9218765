package generation

import (
	"fmt"

	"github.com/matzehuels/lineage/pkg/core/family"
)

// ViolationKind names the constraint a [Violation] breaks.
type ViolationKind string

const (
	ViolationGap     ViolationKind = "gap"
	ViolationSpouse  ViolationKind = "spouse"
	ViolationSibling ViolationKind = "sibling"
)

// Violation is one constraint that does not hold for a set of raw
// generation values.
type Violation struct {
	Kind ViolationKind
	From string
	To   string
	Want int // expected generation of To
	Got  int // actual generation of To
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s→%s: want %d, got %d", v.Kind, v.From, v.To, v.Want, v.Got)
}

// Check lists the constraints of idx that gens does not satisfy. Ids
// without a value are skipped.
//
// Every marriage is checked, not only first spouses.
func Check(idx *family.Index, gens map[string]int) []Violation {
	var out []Violation

	for _, parent := range idx.Parents() {
		pg, ok := gens[parent]
		if !ok {
			continue
		}
		for _, d := range idx.Children(parent) {
			cg, ok := gens[d.Child]
			if ok && cg != pg+d.Gap {
				out = append(out, Violation{Kind: ViolationGap, From: parent, To: d.Child, Want: pg + d.Gap, Got: cg})
			}
		}
	}

	for _, p := range idx.Marriages() {
		if v, ok := equal(ViolationSpouse, p.A, p.B, gens); ok {
			out = append(out, v)
		}
	}

	for _, p := range idx.Siblings() {
		if v, ok := equal(ViolationSibling, p.A, p.B, gens); ok {
			out = append(out, v)
		}
	}

	return out
}

func equal(kind ViolationKind, a, b string, gens map[string]int) (Violation, bool) {
	ga, okA := gens[a]
	gb, okB := gens[b]
	if !okA || !okB || ga == gb {
		return Violation{}, false
	}
	return Violation{Kind: kind, From: a, To: b, Want: ga, Got: gb}, true
}
