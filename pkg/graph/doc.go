// Package graph provides the file formats of lineage: chart documents in and
// computed layouts out.
//
// This package defines the canonical wire format for lineage data, used for
// chart files, layout files, API responses, caching and the layout store.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external formats:
//
//   - [family.Data]: a chart document as authored (nodes, links, layout rules,
//     chapters)
//   - [Layout]: the computed chart (elements, positions, viewport, chapter
//     bands and diagnostics)
//
// The pipeline builds a [Layout] from the engine's stage outputs; renderers
// and the HTTP server only ever see this type.
//
// # Chart Documents
//
// Charts are read from JSON or TOML, chosen by file extension:
//
//	{
//	  "nodes": [{"id": "anna", "name": "Anna", "year": 1850}],
//	  "links": [{"source": "anna", "target": "ida", "type": "child"}],
//	  "layout": {"couples": [], "singles": {"ida": 40}},
//	  "chapters": [{"id": "origins", "title": "Origins"}]
//	}
//
// Common operations:
//
//	data, _ := graph.ReadChartFile("mueller.json")  // File → Data
//	data, _ := graph.ReadChart(r, graph.FormatTOML) // Reader → Data
//	raw, _ := graph.MarshalChart(data)              // Data → canonical JSON
//
// [MarshalChart] is also the input to content hashing: two documents that
// decode to the same data hash the same, whatever their source format.
//
// # Layout Serialization
//
//	graph.WriteLayoutFile(l, "mueller.layout.json")
//	l, _ := graph.ReadLayoutFile("mueller.layout.json")
//
// Layouts carry both json and bson tags so the same value is written to
// files, returned by the API and stored in MongoDB.
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
