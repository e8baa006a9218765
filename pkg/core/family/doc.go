// Package family defines the input model of a family chart and the
// relationship index every later stage reads from.
//
// # Data Model
//
// A chart is a [Data] document: people ([Person]), typed relationships
// ([Link]), manual layout rules ([Rules]) and chapter metadata ([Chapter]).
// The document is treated as best-effort data authored by a maintainer, so
// decoding is lenient: years may be numbers or free text, single-person rules
// may be a bare number, and malformed descent labels fall back to
// [DefaultDescentGap].
//
// # Relationship Index
//
// [BuildIndex] scans the ordered link list exactly once and produces the
// lookups used by generation resolution and layout:
//
//   - first spouse per person (first declaration wins)
//   - all spouses per person (symmetric, declaration order)
//   - parent → children with generation gaps (child and descent links)
//   - sibling pairs and descent targets
//
// The resulting [Index] is read-only. No later component re-scans the raw
// links for relationship structure.
//
//	idx := family.BuildIndex(data.Links)
//	for _, parent := range idx.Parents() {
//	    for _, d := range idx.Children(parent) {
//	        fmt.Println(parent, "→", d.Child, "gap", d.Gap)
//	    }
//	}
package family
