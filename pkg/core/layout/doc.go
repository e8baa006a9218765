// Package layout assigns pixel coordinates to the people of a family chart.
//
// # Overview
//
// Each generation is a horizontal row:
//
//	y = Baseline + generation × RowSpacing
//
// Rows are processed in ascending generation order. Within a row people are
// ordered by birth year (unknown years first, ties keep input order) and a
// cursor walks left to right placing one group at a time:
//
//   - A person with two or more spouses in the row is placed between two of
//     them, left spouse, anchor, right spouse, each [Spacing.CoupleGap] apart.
//   - A person with exactly one spouse in the row is placed next to that
//     spouse. Couple rules choose sides, offsets and alignment.
//   - Everyone else is placed alone, shifted by their single rule if any.
//
// Spouses of a multi-spouse anchor are skipped when the walk reaches them;
// the anchor places them.
//
// # Alignment
//
// A couple rule with AlignWith moves the pair so that its right member sits
// directly below the referenced person: left = ref.x − CoupleGap, right =
// ref.x. Alignment is resolved after the walk, in placement order, so a
// reference must have been placed earlier in the walk. Later references are
// listed in [Layout.Deferred] and the pair keeps its walk position; with
// [WithStrict] they are an error instead.
//
// # Link Nodes
//
// People that reference another family chart are placed by the walk like
// anyone else and then moved by [RepositionLinks] to sit LinkOffset above
// their first descent target.
//
// # Viewport
//
// [BoundingBox], [CanvasHeight] and [Fit] describe how a renderer frames the
// finished layout. [ChapterBands] computes the vertical extent of each
// chapter for background bands.
package layout
