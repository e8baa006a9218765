// Package nodelink draws computed charts with Graphviz.
//
// # Architecture
//
// Placement is done by the layout engine, not by Graphviz. [ToDOT] pins
// every node to its computed position and the neato engine only routes
// edges and draws shapes:
//
//	graph.Layout → ToDOT() → DOT → RenderSVG() → SVG
//	                               RenderPNG()  → PNG (via rsvg-convert)
//
// Positions are written as pos="x,-y!" with inputscale=72, so one chart
// pixel is one point and the y axis is flipped into Graphviz's upward
// orientation.
//
// # Styling
//
//   - People: 180px ellipses labelled with name and year
//   - Link nodes: 90px rounded boxes pointing at another family
//   - Marriage: undirected gold line
//   - Sibling: undirected dashed grey line
//   - Child: solid arrow, dashed and labelled "Adopted" for adoptions
//   - Descent: dashed arrow carrying its label ("~5 generations")
//
// Edges whose endpoints are not nodes of the layout are dropped; Graphviz
// would otherwise invent unpinned nodes for them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG and PDF conversion requires librsvg (rsvg-convert).
package nodelink
