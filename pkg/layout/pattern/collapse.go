package pattern

import (
	"fmt"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
)

// ExternalConn records a branch crossing a super-node boundary: the branch,
// the matched node it attaches to inside the pattern, and the node on the
// far side.
type ExternalConn struct {
	ExternalNode string
	InternalNode string
	BranchID     string
}

// SuperNode stands in for a collapsed pattern during placement. It owns the
// match and knows every branch crossing its boundary.
type SuperNode struct {
	ID       string
	Match    Match
	External []ExternalConn
}

// Simplified partitions the full topology for placement: unmatched nodes,
// branches with both endpoints unmatched, and one super-node per match.
// Every original node belongs to exactly one of Nodes or a super-node;
// every original branch is an unmatched branch, a pattern-internal branch,
// or an external connection of some super-node.
type Simplified struct {
	Nodes      []string
	Branches   []*circuit.Branch
	SuperNodes []*SuperNode

	// Membership maps every matched node ID to the ID of its super-node.
	Membership map[string]string
}

// Owner returns the placement unit that represents the given original node:
// its super-node ID when matched, otherwise the node's own ID.
func (s *Simplified) Owner(nodeID string) string {
	if super, ok := s.Membership[nodeID]; ok {
		return super
	}
	return nodeID
}

// Collapse replaces each match's nodes and branches with a single super-node.
// External connections are discovered by scanning all branches for exactly
// one endpoint inside the matched node set.
func Collapse(t *circuit.Topology, matches []Match) *Simplified {
	s := &Simplified{Membership: make(map[string]string)}

	for i, m := range matches {
		super := &SuperNode{
			ID:    fmt.Sprintf("super-%s-%d", m.Pattern.Kind, i),
			Match: m,
		}
		for _, n := range m.Pattern.Nodes {
			s.Membership[n] = super.ID
		}
		s.SuperNodes = append(s.SuperNodes, super)
	}

	matchedBranches := make(map[string]bool)
	for _, m := range matches {
		for _, b := range m.Pattern.Branches {
			matchedBranches[b] = true
		}
	}

	for _, super := range s.SuperNodes {
		inside := super.Match.NodeIndex
		for _, b := range t.Branches() {
			_, fromIn := inside[b.From]
			_, toIn := inside[b.To]
			if fromIn == toIn {
				continue
			}
			conn := ExternalConn{BranchID: b.ID}
			if fromIn {
				conn.InternalNode, conn.ExternalNode = b.From, b.To
			} else {
				conn.InternalNode, conn.ExternalNode = b.To, b.From
			}
			super.External = append(super.External, conn)
		}
	}

	for _, id := range t.NodeIDs() {
		if _, matched := s.Membership[id]; !matched {
			s.Nodes = append(s.Nodes, id)
		}
	}
	for _, b := range t.Branches() {
		_, fromMatched := s.Membership[b.From]
		_, toMatched := s.Membership[b.To]
		if !fromMatched && !toMatched && !matchedBranches[b.ID] {
			s.Branches = append(s.Branches, b)
		}
	}
	return s
}

// PlacementTopology builds the reduced graph the node placer runs on:
// ordinary nodes plus one node per super-node, with every surviving branch
// remapped to the units that own its endpoints. Branches that collapse onto
// a single unit (both endpoints in the same super-node) are dropped; among
// multiple branches joining the same unit pair only the first is kept, since
// placement needs connectivity rather than multiplicity.
func (s *Simplified) PlacementTopology() *circuit.Topology {
	pt := circuit.New()
	for _, id := range s.Nodes {
		pt.AddNode(id)
	}
	for _, super := range s.SuperNodes {
		pt.AddNode(super.ID)
	}

	addBranch := func(id, from, to string) {
		if from == to {
			return
		}
		if pt.HasBranchBetween(from, to) {
			return
		}
		pt.AddBranch(circuit.Branch{ID: id, From: from, To: to})
	}

	for _, b := range s.Branches {
		addBranch(b.ID, b.From, b.To)
	}
	for _, super := range s.SuperNodes {
		for _, conn := range super.External {
			addBranch(conn.BranchID, super.ID, s.Owner(conn.ExternalNode))
		}
	}
	return pt
}

// Expand maps every original node to its final position. Matched nodes are
// placed at superPosition + template[index]·scale; nodes outside any pattern
// pass through from unitPositions unchanged.
func Expand(s *Simplified, unitPositions map[string]geom.Point, scale float64) map[string]geom.Point {
	out := make(map[string]geom.Point, len(s.Nodes)+len(s.Membership))
	for _, id := range s.Nodes {
		out[id] = unitPositions[id]
	}
	for _, super := range s.SuperNodes {
		anchor := unitPositions[super.ID]
		tmpl := super.Match.Pattern.Template
		for node, idx := range super.Match.NodeIndex {
			out[node] = anchor.Add(tmpl[idx].Scale(scale))
		}
	}
	return out
}
