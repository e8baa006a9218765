package family

import (
	"encoding/json"
	"fmt"
)

// Side is the horizontal side of a couple a person is placed on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// =============================================================================
// Couple Rules
// =============================================================================

// CoupleRule overrides the default placement of a married pair.
//
// Person1 is placed on Person1Side. Offset and YOffset shift the pair; Anchor
// names which of the two the offset is measured from. AlignWith places the
// pair so that its right member sits at the recorded x of another person
// already placed.
//
// For multi-spouse groups the rule is read from the spouse's side: a rule
// whose Person2 is the person with several spouses places Person1 on
// Person1Side of them, and its Offset shifts the whole group.
type CoupleRule struct {
	Person1     string  `json:"person1" toml:"person1"`
	Person2     string  `json:"person2" toml:"person2"`
	Person1Side Side    `json:"person1_side,omitempty" toml:"person1_side,omitempty"`
	Offset      float64 `json:"offset,omitempty" toml:"offset,omitempty"`
	YOffset     float64 `json:"y_offset,omitempty" toml:"y_offset,omitempty"`
	AlignWith   string  `json:"align_with,omitempty" toml:"align_with,omitempty"`
	Anchor      string  `json:"anchor,omitempty" toml:"anchor,omitempty"`
}

// Involves reports whether the rule is about the pair (a, b) in either order.
func (r CoupleRule) Involves(a, b string) bool {
	return (r.Person1 == a && r.Person2 == b) || (r.Person1 == b && r.Person2 == a)
}

// Order returns the pair (a, b) as (left, right) according to Person1Side.
// Without a side the order is returned unchanged.
func (r CoupleRule) Order(a, b string) (left, right string) {
	other := a
	if r.Person1 == a {
		other = b
	}
	switch r.Person1Side {
	case SideLeft:
		return r.Person1, other
	case SideRight:
		return other, r.Person1
	}
	return a, b
}

// =============================================================================
// Single Rules
// =============================================================================

// SingleRule shifts a person placed on their own.
//
// The legacy form is a bare number, which is read as Offset.
type SingleRule struct {
	Offset  float64 `json:"offset,omitempty" toml:"offset,omitempty"`
	YOffset float64 `json:"y_offset,omitempty" toml:"y_offset,omitempty"`
}

// UnmarshalJSON accepts either a number or {"offset", "y_offset"}.
func (r *SingleRule) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = SingleRule{Offset: n}
		return nil
	}
	type plain SingleRule
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("single rule: %w", err)
	}
	*r = SingleRule(p)
	return nil
}

// UnmarshalTOML accepts either a number or a table with offset and y_offset.
func (r *SingleRule) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		*r = SingleRule{Offset: float64(t)}
	case float64:
		*r = SingleRule{Offset: t}
	case map[string]any:
		*r = SingleRule{Offset: tomlFloat(t["offset"]), YOffset: tomlFloat(t["y_offset"])}
	default:
		return fmt.Errorf("single rule: unsupported value %v (%T)", v, v)
	}
	return nil
}

func tomlFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// =============================================================================
// Rules
// =============================================================================

// Rules is the "layout" section of a chart document.
type Rules struct {
	Couples []CoupleRule          `json:"couples,omitempty" toml:"couples,omitempty"`
	Singles map[string]SingleRule `json:"singles,omitempty" toml:"singles,omitempty"`
}

// RuleBook is a lookup over [Rules], keyed by both people of every couple
// rule. When several rules name the same person the last one wins.
type RuleBook struct {
	byPerson map[string]CoupleRule
	singles  map[string]SingleRule
}

// NewRuleBook indexes r for placement lookups.
func NewRuleBook(r Rules) *RuleBook {
	b := &RuleBook{
		byPerson: make(map[string]CoupleRule, 2*len(r.Couples)),
		singles:  r.Singles,
	}
	for _, rule := range r.Couples {
		b.byPerson[rule.Person1] = rule
		b.byPerson[rule.Person2] = rule
	}
	return b
}

// For returns the couple rule last registered for id.
func (b *RuleBook) For(id string) (CoupleRule, bool) {
	if b == nil {
		return CoupleRule{}, false
	}
	r, ok := b.byPerson[id]
	return r, ok
}

// Couple returns the rule for the pair (a, b), looking it up from either side.
func (b *RuleBook) Couple(a, c string) (CoupleRule, bool) {
	if r, ok := b.For(a); ok && r.Involves(a, c) {
		return r, true
	}
	if r, ok := b.For(c); ok && r.Involves(a, c) {
		return r, true
	}
	return CoupleRule{}, false
}

// Single returns the single-person rule for id. The zero rule is returned
// when none exists.
func (b *RuleBook) Single(id string) SingleRule {
	if b == nil {
		return SingleRule{}
	}
	return b.singles[id]
}
