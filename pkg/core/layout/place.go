package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/errors"
)

// Point is a position in chart pixels. Y grows downwards.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Alignment is an align_with rule that could not be applied.
type Alignment struct {
	Left  string `json:"left" bson:"left"`
	Right string `json:"right" bson:"right"`
	With  string `json:"with" bson:"with"`
	// Missing is set when With was never placed at all, as opposed to
	// being placed later in the walk.
	Missing bool `json:"missing,omitempty" bson:"missing,omitempty"`
}

// Layout is the output of [Place].
type Layout struct {
	// Positions holds exactly one point per placed person.
	Positions map[string]Point
	// Order lists ids in the order the walk placed them.
	Order []string
	// Rows maps each generation to its ids in placement order.
	Rows map[int][]string
	// Deferred lists alignments left at their walk position.
	Deferred []Alignment
}

// Position returns the point of id.
func (l *Layout) Position(id string) (Point, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// Generations returns the row numbers in ascending order.
func (l *Layout) Generations() []int {
	return slices.Sorted(maps.Keys(l.Rows))
}

// Place positions every node. nodes must carry their generation; idx
// supplies marriages and rules the couple and single overrides. A nil rules
// book places everything with defaults.
//
// Place only fails in strict mode, when an alignment cannot be applied.
func Place(nodes []elements.Node, idx *family.Index, rules *family.RuleBook, opts ...Option) (*Layout, error) {
	o := newOptions(opts)
	p := &placer{
		sp:    o.spacing,
		idx:   idx,
		rules: rules,
		seq:   make(map[string]int, len(nodes)),
		out: &Layout{
			Positions: make(map[string]Point, len(nodes)),
			Rows:      make(map[int][]string),
		},
	}

	rows := make(map[int][]elements.Node)
	for _, n := range nodes {
		rows[n.Generation] = append(rows[n.Generation], n)
	}
	for _, gen := range slices.Sorted(maps.Keys(rows)) {
		p.placeRow(gen, rows[gen])
	}

	p.align()

	if o.strict && len(p.out.Deferred) > 0 {
		d := p.out.Deferred[0]
		if d.Missing {
			return nil, errors.New(errors.ErrCodeForwardReference,
				"couple %s/%s aligns with %q, which is not in the chart", d.Left, d.Right, d.With)
		}
		return nil, errors.New(errors.ErrCodeForwardReference,
			"couple %s/%s aligns with %q, which is placed after it", d.Left, d.Right, d.With)
	}
	return p.out, nil
}

// =============================================================================
// Row Walk
// =============================================================================

type pendingAlign struct {
	left, right string
	with        string
	y           float64
}

type placer struct {
	sp      Spacing
	idx     *family.Index
	rules   *family.RuleBook
	out     *Layout
	seq     map[string]int
	pending []pendingAlign
}

func (p *placer) placeRow(gen int, nodes []elements.Node) {
	row := slices.Clone(nodes)
	slices.SortStableFunc(row, func(a, b elements.Node) int {
		return cmp.Compare(a.Year.Value, b.Year.Value)
	})

	inRow := make(map[string]bool, len(row))
	for _, n := range row {
		inRow[n.ID] = true
	}

	y := p.sp.Baseline + float64(gen)*p.sp.RowSpacing
	x := p.sp.StartX

	for _, n := range row {
		if p.placed(n.ID) {
			continue
		}
		spouses := p.rowSpouses(n.ID, inRow)
		if p.spouseLeads(spouses, inRow) {
			continue
		}
		switch {
		case len(spouses) > 1:
			x = p.placeGroup(gen, n.ID, spouses, x, y)
		case len(spouses) == 1 && !p.placed(spouses[0]):
			x = p.placeCouple(gen, n.ID, spouses[0], x, y)
		default:
			x = p.placeSingle(gen, n.ID, x, y)
		}
	}

	// Anyone the walk skipped over without a spouse placing them.
	for _, n := range row {
		if !p.placed(n.ID) {
			x = p.placeSingle(gen, n.ID, x, y)
		}
	}
}

// rowSpouses returns the spouses of id that are in the same row.
func (p *placer) rowSpouses(id string, inRow map[string]bool) []string {
	var out []string
	for _, s := range p.idx.Spouses(id) {
		if inRow[s] {
			out = append(out, s)
		}
	}
	return out
}

// spouseLeads reports whether one of spouses has several spouses in the
// row and therefore places the group.
func (p *placer) spouseLeads(spouses []string, inRow map[string]bool) bool {
	for _, s := range spouses {
		if len(p.rowSpouses(s, inRow)) > 1 {
			return true
		}
	}
	return false
}

// placeGroup places anchor between two of its spouses. Sides come from
// rules written from the spouse's side (Person1 = spouse, Person2 = anchor);
// without them the first two spouses go left and right.
func (p *placer) placeGroup(gen int, anchor string, spouses []string, x, y float64) float64 {
	var left, right string
	var offset float64
	for _, s := range spouses {
		r, ok := p.rules.For(s)
		if !ok || r.Person2 != anchor {
			continue
		}
		switch r.Person1Side {
		case family.SideLeft:
			left = s
		case family.SideRight:
			right = s
		}
		if r.Offset != 0 {
			offset = r.Offset
		}
	}

	switch {
	case left == "" && right == "":
		left, right = spouses[0], spouses[1]
	case left == "":
		left = firstOther(spouses, right)
	case right == "":
		right = firstOther(spouses, left)
	}

	gap := p.sp.CoupleGap
	p.set(gen, left, Point{x + offset, y})
	p.set(gen, anchor, Point{x + offset + gap, y})
	p.set(gen, right, Point{x + offset + 2*gap, y})
	return x + 2*gap + p.sp.ColumnSpacing + offset
}

// placeCouple places a person and their only in-row spouse side by side.
func (p *placer) placeCouple(gen int, id, spouse string, x, y float64) float64 {
	gap := p.sp.CoupleGap
	rule, ok := p.rules.Couple(id, spouse)
	left, right := id, spouse
	if ok {
		left, right = rule.Order(id, spouse)
	}
	x0 := x + rule.Offset
	y0 := y + rule.YOffset

	switch {
	case ok && rule.AlignWith != "":
		p.set(gen, left, Point{x0 - gap, y0})
		p.set(gen, right, Point{x0, y0})
		p.pending = append(p.pending, pendingAlign{left: left, right: right, with: rule.AlignWith, y: y0})
	case ok && rule.Anchor != "" && rule.Anchor == right:
		p.set(gen, right, Point{x0, y0})
		p.set(gen, left, Point{x0 - gap, y0})
	default:
		p.set(gen, left, Point{x0, y0})
		p.set(gen, right, Point{x0 + gap, y0})
	}
	return x + gap + p.sp.ColumnSpacing
}

// placeSingle places id alone, shifted by its single rule.
func (p *placer) placeSingle(gen int, id string, x, y float64) float64 {
	r := p.rules.Single(id)
	p.set(gen, id, Point{x + r.Offset, y + r.YOffset})
	return x + p.sp.ColumnSpacing
}

func (p *placer) set(gen int, id string, pt Point) {
	if _, ok := p.seq[id]; !ok {
		p.seq[id] = len(p.out.Order)
		p.out.Order = append(p.out.Order, id)
		p.out.Rows[gen] = append(p.out.Rows[gen], id)
	}
	p.out.Positions[id] = pt
}

func (p *placer) placed(id string) bool {
	_, ok := p.seq[id]
	return ok
}

func firstOther(ids []string, not string) string {
	for _, id := range ids {
		if id != not {
			return id
		}
	}
	return ""
}

// =============================================================================
// Alignment
// =============================================================================

// align applies pending align_with rules in placement order, so a pair that
// aligns with an already aligned person sees its final position.
func (p *placer) align() {
	gap := p.sp.CoupleGap
	for _, a := range p.pending {
		refSeq, ok := p.seq[a.with]
		if !ok {
			p.out.Deferred = append(p.out.Deferred, Alignment{Left: a.left, Right: a.right, With: a.with, Missing: true})
			continue
		}
		if refSeq >= p.seq[a.left] {
			p.out.Deferred = append(p.out.Deferred, Alignment{Left: a.left, Right: a.right, With: a.with})
			continue
		}
		ref := p.out.Positions[a.with]
		p.out.Positions[a.left] = Point{ref.X - gap, a.y}
		p.out.Positions[a.right] = Point{ref.X, a.y}
	}
}
