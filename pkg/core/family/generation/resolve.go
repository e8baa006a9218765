package generation

import (
	"github.com/matzehuels/lineage/pkg/core/family"
)

// DefaultMaxPasses bounds the number of propagation passes. It is a safety
// limit for inconsistent input; consistent family data converges long before.
const DefaultMaxPasses = 50

// Option configures [Resolve].
type Option func(*config)

type config struct {
	maxPasses int
}

// WithMaxPasses overrides [DefaultMaxPasses]. Values below 1 are ignored.
func WithMaxPasses(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

// Result is the outcome of one resolution.
type Result struct {
	// Generations maps each person to their compacted generation (0..K-1).
	// Values are dense over the people passed to Resolve only: ids that
	// appear in links but not among the people do not take up a rank.
	Generations map[string]int
	// Raw holds the uncompacted values for every id that was reached,
	// including ids that only appear in links.
	Raw map[string]int
	// Passes is the number of propagation passes that ran.
	Passes int
	// Converged reports whether the last pass changed nothing.
	Converged bool
	// Violations lists the constraints the raw values still break.
	// It is empty for consistent input.
	Violations []Violation
}

// Of returns the generation of id. People that were never reached default
// to generation 0.
func (r Result) Of(id string) int { return r.Generations[id] }

// Count returns the number of distinct generations.
func (r Result) Count() int {
	seen := make(map[int]bool, len(r.Generations))
	for _, g := range r.Generations {
		seen[g] = true
	}
	return len(seen)
}

// Consistent reports whether resolution converged without violations.
func (r Result) Consistent() bool { return r.Converged && len(r.Violations) == 0 }

// Resolve assigns a generation to every person in people using the
// constraints in idx. It never fails; see [Result.Consistent] for
// diagnosing bad input.
func Resolve(people []family.Person, idx *family.Index, opts ...Option) Result {
	cfg := config{maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &resolver{idx: idx, gens: make(map[string]int, len(people))}
	for _, p := range people {
		if !idx.IsDescendant(p.ID) {
			r.gens[p.ID] = 0
		}
	}

	passes, converged := 0, false
	for passes < cfg.maxPasses {
		passes++
		if !r.pass() {
			converged = true
			break
		}
	}

	return Result{
		Generations: compactPeople(people, r.gens),
		Raw:         r.gens,
		Passes:      passes,
		Converged:   converged,
		Violations:  Check(idx, r.gens),
	}
}

// =============================================================================
// Propagation
// =============================================================================

// resolver holds the mutable state of a single Resolve call.
type resolver struct {
	idx  *family.Index
	gens map[string]int
}

// pass applies every constraint once and reports whether anything changed.
func (r *resolver) pass() bool {
	changed := r.applyLineage()
	if r.applySpouses() {
		changed = true
	}
	if r.applySiblings() {
		changed = true
	}
	return changed
}

// applyLineage sets child = parent + gap for every parent with a generation.
// A child that moves takes its first spouse along.
func (r *resolver) applyLineage() bool {
	changed := false
	for _, parent := range r.idx.Parents() {
		pg, ok := r.gens[parent]
		if !ok {
			continue
		}
		for _, d := range r.idx.Children(parent) {
			g := pg + d.Gap
			if !r.set(d.Child, g) {
				continue
			}
			changed = true
			if spouse, ok := r.idx.FirstSpouse(d.Child); ok {
				r.set(spouse, g)
			}
		}
	}
	return changed
}

// applySpouses lifts every first-spouse pair to the larger generation, then
// every marriage in declaration order.
func (r *resolver) applySpouses() bool {
	changed := false
	for _, p := range r.idx.FirstSpousePairs() {
		if r.equalize(p.A, p.B) {
			changed = true
		}
	}
	for _, p := range r.idx.Marriages() {
		if r.equalize(p.A, p.B) {
			changed = true
		}
	}
	return changed
}

// applySiblings lifts every sibling pair to the larger generation.
func (r *resolver) applySiblings() bool {
	changed := false
	for _, p := range r.idx.Siblings() {
		if r.equalize(p.A, p.B) {
			changed = true
		}
	}
	return changed
}

// set assigns g to id and reports whether the value changed.
func (r *resolver) set(id string, g int) bool {
	if cur, ok := r.gens[id]; ok && cur == g {
		return false
	}
	r.gens[id] = g
	return true
}

// equalize moves both a and b to the larger of their generations when both
// are assigned and differ.
func (r *resolver) equalize(a, b string) bool {
	ga, okA := r.gens[a]
	gb, okB := r.gens[b]
	if !okA || !okB || ga == gb {
		return false
	}
	g := max(ga, gb)
	r.gens[a] = g
	r.gens[b] = g
	return true
}
