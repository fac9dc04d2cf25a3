// Package circuit models a circuit topology as an undirected multigraph of
// electrical nodes and branches, and provides the graph-theory primitives the
// layout engine builds on: adjacency lists, breadth- and depth-first search,
// disjoint-path discovery, cycle detection, and spanning forests.
//
// The package treats the topology purely structurally. Branch kinds are
// opaque strings carried through for the presentation layer; electrical
// values (resistance, voltage) never appear here.
//
// # Building a topology
//
//	t := circuit.New()
//	t.AddNode("n1")
//	t.AddNode("n2")
//	t.AddBranch(circuit.Branch{ID: "b1", Kind: "resistor", From: "n1", To: "n2"})
//
// Parallel branches between the same node pair are legal and common (e.g.
// parallel resistors). Self-loops are tolerated but skipped by most analysis.
//
// # Serialization
//
// Topologies round-trip through a stable JSON format ([TopologyJSON]) with
// nodes sorted by ID, so identical topologies always serialize identically.
// This property is what makes layout caching by content hash possible.
package circuit
