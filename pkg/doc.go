// Package pkg provides the core libraries for schematic circuit layout.
//
// # Overview
//
// Schematic turns an electrical circuit topology (nodes plus two-terminal
// branches) into a deterministic 2D diagram. The pkg directory is organized
// around the layout pipeline:
//
//	Topology JSON
//	     ↓
//	[circuit] package (topology model + validation)
//	     ↓
//	[layout] package (patterns → placement → routing → labels)
//	     ↓
//	[render] package (SVG, and PDF/PNG/DOT conversions)
//
// # Main Packages
//
// [circuit] - The topology model: nodes, branches, adjacency queries, and
// JSON serialization. Topologies are multigraphs; parallel branches and
// self-loops are legal.
//
// [geom] - Small 2D geometry helpers shared by layout and rendering,
// built on gonum's r2 vectors. Includes quadratic bezier sampling for
// curved branch paths.
//
// [layout] - The layout engine. Subpackages implement the stages:
// [layout/pattern] recognizes series/parallel/bridge structures and
// collapses them into super-nodes, [layout/place] runs force-directed
// placement with grid snapping and optional annealing refinement,
// [layout/route] scores and selects branch paths, and [layout/label]
// positions node and branch labels.
//
// [render] - Output sinks: standalone SVG documents, Graphviz DOT export,
// and SVG-to-PDF/PNG conversion via rsvg-convert.
//
// # Infrastructure
//
// [pipeline] - Orchestrates validate → layout → render with caching, used
// by both the CLI and the HTTP API.
//
// [cache] - Cache backends (file, memory, Redis, null) and content-hash
// key derivation for layouts and rendered artifacts.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hook interfaces for instrumenting pipeline stages,
// cache traffic, and API requests.
//
// [circuit]: https://pkg.go.dev/github.com/azsce/schematic/pkg/circuit
// [geom]: https://pkg.go.dev/github.com/azsce/schematic/pkg/geom
// [layout]: https://pkg.go.dev/github.com/azsce/schematic/pkg/layout
// [layout/pattern]: https://pkg.go.dev/github.com/azsce/schematic/pkg/layout/pattern
// [layout/place]: https://pkg.go.dev/github.com/azsce/schematic/pkg/layout/place
// [layout/route]: https://pkg.go.dev/github.com/azsce/schematic/pkg/layout/route
// [layout/label]: https://pkg.go.dev/github.com/azsce/schematic/pkg/layout/label
// [render]: https://pkg.go.dev/github.com/azsce/schematic/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/azsce/schematic/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/azsce/schematic/pkg/cache
// [config]: https://pkg.go.dev/github.com/azsce/schematic/pkg/config
// [observability]: https://pkg.go.dev/github.com/azsce/schematic/pkg/observability
package pkg
