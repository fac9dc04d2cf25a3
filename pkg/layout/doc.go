// Package layout computes deterministic 2D schematic layouts for circuit
// topologies.
//
// The pipeline runs in fixed stages: structural validation, sub-topology
// recognition and collapse ([github.com/azsce/schematic/pkg/layout/pattern]),
// force-directed placement with grid snapping and optional planarity
// refinement ([github.com/azsce/schematic/pkg/layout/place]), expansion back
// to the full node set, path-scored edge routing
// ([github.com/azsce/schematic/pkg/layout/route]), and label placement
// ([github.com/azsce/schematic/pkg/layout/label]).
//
// [Engine.Calculate] is the single entry point. Identical input and options
// always produce identical output; every stochastic component is seeded
// from [Options.Seed].
package layout
