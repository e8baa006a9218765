package family

import "slices"

// Descent is one parent → child entry of the index.
type Descent struct {
	Child string   // Target person ID
	Gap   int      // Generation levels between parent and child
	Type  LinkType // LinkChild or LinkDescent
}

// Pair is an unordered pair of people, kept in declaration order.
type Pair struct {
	A, B string
}

// Index holds the read-only lookups derived from a link list.
//
// Every slice returned by an Index method is a view into the index and must
// not be modified.
type Index struct {
	links []Link

	firstSpouse map[string]string
	spousePairs []Pair // (person, first spouse) in first-write order
	spouses     map[string][]string
	marriages   []Pair // distinct marriages in declaration order

	children    map[string][]Descent
	parents     []string
	descendants map[string]bool
	descents    map[string][]string

	siblings []Pair
}

// BuildIndex scans links once, in order, and builds every lookup.
func BuildIndex(links []Link) *Index {
	idx := &Index{
		links:       slices.Clone(links),
		firstSpouse: make(map[string]string),
		spouses:     make(map[string][]string),
		children:    make(map[string][]Descent),
		descendants: make(map[string]bool),
		descents:    make(map[string][]string),
	}

	for _, l := range links {
		switch l.Type {
		case LinkMarriage:
			idx.addMarriage(l.Source, l.Target)
		case LinkChild, LinkDescent:
			if _, ok := idx.children[l.Source]; !ok {
				idx.parents = append(idx.parents, l.Source)
			}
			idx.children[l.Source] = append(idx.children[l.Source], Descent{
				Child: l.Target,
				Gap:   l.GenerationGap(),
				Type:  l.Type,
			})
			idx.descendants[l.Target] = true
			if l.Type == LinkDescent {
				idx.descents[l.Source] = append(idx.descents[l.Source], l.Target)
			}
		case LinkSibling:
			idx.siblings = append(idx.siblings, Pair{A: l.Source, B: l.Target})
		}
	}
	return idx
}

func (idx *Index) addMarriage(a, b string) {
	if _, ok := idx.firstSpouse[a]; !ok {
		idx.firstSpouse[a] = b
		idx.spousePairs = append(idx.spousePairs, Pair{A: a, B: b})
	}
	if _, ok := idx.firstSpouse[b]; !ok {
		idx.firstSpouse[b] = a
		idx.spousePairs = append(idx.spousePairs, Pair{A: b, B: a})
	}
	if !slices.Contains(idx.spouses[a], b) {
		idx.spouses[a] = append(idx.spouses[a], b)
		idx.marriages = append(idx.marriages, Pair{A: a, B: b})
	}
	if !slices.Contains(idx.spouses[b], a) {
		idx.spouses[b] = append(idx.spouses[b], a)
	}
}

// Links returns a copy of the raw link list in input order.
func (idx *Index) Links() []Link { return slices.Clone(idx.links) }

// FirstSpouse returns the spouse declared first for id.
func (idx *Index) FirstSpouse(id string) (string, bool) {
	s, ok := idx.firstSpouse[id]
	return s, ok
}

// FirstSpousePairs returns (person, first spouse) pairs in the order the
// first-spouse entries were written.
func (idx *Index) FirstSpousePairs() []Pair { return idx.spousePairs }

// Marriages returns each distinct marriage once, in declaration order. A
// repeated or reversed marriage link does not add a second pair.
func (idx *Index) Marriages() []Pair { return idx.marriages }

// Spouses returns every spouse of id in declaration order.
func (idx *Index) Spouses(id string) []string { return idx.spouses[id] }

// Children returns the child and descent entries of parent in declaration order.
func (idx *Index) Children(parent string) []Descent { return idx.children[parent] }

// Parents returns every person with at least one child or descent link, in
// the order they first appear as a source.
func (idx *Index) Parents() []string { return idx.parents }

// IsDescendant reports whether id is the target of any child or descent link.
func (idx *Index) IsDescendant(id string) bool { return idx.descendants[id] }

// DescentTargets returns the targets of id's descent links in declaration order.
func (idx *Index) DescentTargets(id string) []string { return idx.descents[id] }

// Siblings returns the sibling pairs in declaration order.
func (idx *Index) Siblings() []Pair { return idx.siblings }
