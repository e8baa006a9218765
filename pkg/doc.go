// Package pkg provides the core libraries for Lineage family chart layout.
//
// # Overview
//
// Lineage takes a family chart (people, the links between them and a set of
// placement rules) and turns it into a positioned layout: every person is
// assigned a generation row and an x/y coordinate, couples sit side by side
// and descendants line up under their parents. The pkg directory is
// organized into these areas:
//
//  1. [core] - Domain logic (family model, generations, placement, rendering)
//  2. [pipeline] - Orchestration (read → resolve → place → render)
//  3. [graph] - Serialization types for charts and layouts
//  4. [cache], [store] - Layout caching and persistence
//  5. [server] - HTTP API over the pipeline and store
//
// # Architecture
//
// The typical data flow:
//
//	family.json / family.toml
//	         ↓
//	    [graph] package (read chart)
//	         ↓
//	    [core/family] package (link index + rule book)
//	         ↓
//	    [core/family/generation] package (assign generation rows)
//	         ↓
//	    [core/layout] package (couples, singles, alignment, link nodes)
//	         ↓
//	    [core/render/nodelink] package (DOT, SVG, PNG, PDF)
//
// # Quick Start
//
// Build and render a layout:
//
//	data, _ := graph.ReadChartFile("family.json")
//
//	opts := pipeline.Options{Family: "mueller", Formats: []string{"svg"}}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, data, opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("family.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// [core/family] - People, links, chapters and per-family placement rules.
// [family.BuildIndex] turns the link list into parent, spouse and sibling
// lookups used by every later stage.
//
// [core/family/generation] - Fixed-point generation assignment with gap
// propagation, spouse and sibling equalization, and row compaction.
//
// [core/layout] - Coordinate placement. Couples and singles are placed per
// row, align_with rules are resolved in a second pass and link nodes are
// moved over their descendants.
//
// [core/render/nodelink] - Graphviz rendering with pinned positions.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// [pipeline] - The read → layout → render pipeline shared by the CLI and
// the HTTP server, with caching of layouts and artifacts.
//
// [cache] - Null, file and Redis cache backends keyed by content hash.
//
// [store] - Persistent layout records in memory or MongoDB.
//
// [config] - TOML configuration for the CLI and server.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/layout/...        # Specific package
//	go test -run Example                 # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core
// [core/family]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/family
// [core/family/generation]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/family/generation
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/layout
// [core/render/nodelink]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/render/nodelink
// [family.BuildIndex]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/family#BuildIndex
// [render]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/core/render
// [graph]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/lineage/pkg/server
package pkg
