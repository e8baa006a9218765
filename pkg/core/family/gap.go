package family

import (
	"regexp"
	"strconv"
)

// DefaultDescentGap is the generation gap of a descent link that states
// neither an explicit gap nor a readable "~N generations" label.
const DefaultDescentGap = 4

// generationsRe matches labels such as "~4 generations" or "3 generation".
var generationsRe = regexp.MustCompile(`~?(\d+)\s+generation`)

// GenerationGap returns how many generation levels the link spans.
//
// Child links span one generation. Descent links use, in order of
// preference, a positive explicit Gap, the number in a "~N generations"
// label, and [DefaultDescentGap]. Marriage and sibling links span none.
func (l Link) GenerationGap() int {
	switch l.Type {
	case LinkChild:
		return 1
	case LinkDescent:
		return DescentGap(l.Gap, l.Label)
	}
	return 0
}

// DescentGap resolves the gap of a descent link from its explicit gap field
// and its label. Labels that cannot be read fall back to [DefaultDescentGap].
func DescentGap(gap int, label string) int {
	if gap > 0 {
		return gap
	}
	m := generationsRe.FindStringSubmatch(label)
	if m == nil {
		return DefaultDescentGap
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultDescentGap
	}
	return n
}
