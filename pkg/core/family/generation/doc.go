// Package generation assigns every person of a family chart a discrete
// generation number.
//
// # Overview
//
// Family data is rarely complete or perfectly consistent: a descendant may be
// linked to an ancestor "~4 generations" above, spouses may come from
// different branches, and siblings may only be known through a sibling link.
// [Resolve] turns such data into one integer per person so that:
//
//   - child = parent + gap for every child and descent link
//   - spouses share a generation
//   - explicit siblings share a generation
//
// # Algorithm
//
// Resolution is constraint propagation to a fixed point, scoped entirely to
// one call:
//
//  1. Roots (people who are nobody's child or descendant) start at 0.
//  2. Each pass applies every gap constraint of every parent that already
//     has a generation, forcing the child's first spouse along with it; then
//     lifts every first-spouse pair to the larger of the two; then lifts every
//     sibling pair the same way.
//  3. Passes repeat until one changes nothing or [DefaultMaxPasses] is hit.
//  4. The distinct raw values are compacted to their ranks, so large descent
//     gaps do not leave empty rows: raw {0, 1, 16, 20} becomes {0, 1, 2, 3}.
//
// # Inconsistent Input
//
// When two paths reach the same person with different gaps the constraints
// cannot all hold. Within a pass the last write wins, and the bounded pass
// count guarantees termination. The [Result] reports whether a fixed point
// was reached and [Check] lists the constraints the raw values still break,
// so callers can decide to reject the data instead of drawing it.
package generation
