package pattern

import (
	"github.com/azsce/schematic/pkg/circuit"
)

// scratch is the shared claim state for one Find call. Every detection pass
// skips nodes and branches claimed by an earlier match, which makes the
// greedy largest-pattern-first ordering work. The sets die with the call.
type scratch struct {
	nodes    map[string]bool
	branches map[string]bool
}

func newScratch() *scratch {
	return &scratch{nodes: make(map[string]bool), branches: make(map[string]bool)}
}

func (s *scratch) claim(p Pattern) {
	for _, n := range p.Nodes {
		s.nodes[n] = true
	}
	for _, b := range p.Branches {
		s.branches[b] = true
	}
}

// Find detects sub-topology patterns in fixed priority order: bridge, pi, T,
// series. Matching is greedy: once a node or branch is claimed it is
// invisible to later passes, so no two returned matches share a node or
// branch ID.
func Find(t *circuit.Topology) []Match {
	s := newScratch()
	var out []Match
	out = append(out, findBridges(t, s)...)
	out = append(out, findPis(t, s)...)
	out = append(out, findTs(t, s)...)
	out = append(out, findSeries(t, s)...)
	return out
}

// findBridges looks for diamond sub-topologies: an unused node pair with no
// direct branch, connected by two node-disjoint, branch-disjoint two-branch
// paths. The union must cover exactly four nodes and four branches.
func findBridges(t *circuit.Topology, s *scratch) []Match {
	var out []Match
	ids := t.NodeIDs()
	for i, a := range ids {
		if s.nodes[a] {
			continue
		}
		for _, b := range ids[i+1:] {
			if s.nodes[b] || s.nodes[a] || t.HasBranchBetween(a, b) {
				continue
			}
			p1, p2, ok := t.DisjointPaths(a, b, 2, s.nodes, s.branches)
			if !ok || len(p1.Branches) != 2 || len(p2.Branches) != 2 {
				continue
			}
			top, bottom := p1.Nodes[1], p2.Nodes[1]
			if s.nodes[top] || s.nodes[bottom] {
				continue
			}
			p := Pattern{
				Kind:     Bridge,
				Nodes:    []string{a, top, bottom, b},
				Branches: []string{p1.Branches[0], p1.Branches[1], p2.Branches[0], p2.Branches[1]},
				Template: bridgeTemplate(),
			}
			s.claim(p)
			out = append(out, newMatch(p))
			break // a is claimed; move to the next outer node
		}
	}
	return out
}

// findPis looks for isolated three-cycles: three unused nodes forming a
// triangle with every node at degree exactly two.
func findPis(t *circuit.Topology, s *scratch) []Match {
	var out []Match
	ids := t.NodeIDs()
	for i, a := range ids {
		if s.nodes[a] || t.Degree(a) != 2 {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b := ids[j]
			if s.nodes[b] || s.nodes[a] || t.Degree(b) != 2 {
				continue
			}
			for k := j + 1; k < len(ids); k++ {
				c := ids[k]
				if s.nodes[c] || s.nodes[a] || s.nodes[b] || t.Degree(c) != 2 {
					continue
				}
				ab := t.BranchesBetween(a, b)
				bc := t.BranchesBetween(b, c)
				ca := t.BranchesBetween(c, a)
				if len(ab) != 1 || len(bc) != 1 || len(ca) != 1 {
					continue
				}
				if s.branches[ab[0]] || s.branches[bc[0]] || s.branches[ca[0]] {
					continue
				}
				p := Pattern{
					Kind:     Pi,
					Nodes:    []string{a, b, c},
					Branches: []string{ab[0], bc[0], ca[0]},
					Template: piTemplate(),
				}
				s.claim(p)
				out = append(out, newMatch(p))
			}
		}
	}
	return out
}

// findTs looks for degree-three hubs whose three neighbors are distinct and
// connect only to the hub within the induced four-node subgraph.
func findTs(t *circuit.Topology, s *scratch) []Match {
	var out []Match
	for _, hub := range t.NodeIDs() {
		if s.nodes[hub] || t.Degree(hub) != 3 {
			continue
		}
		nbrs := t.Neighbors(hub)
		n1, n2, n3 := nbrs[0], nbrs[1], nbrs[2]
		if n1.NodeID == n2.NodeID || n2.NodeID == n3.NodeID || n1.NodeID == n3.NodeID {
			continue // parallel branches, not three spokes
		}
		if s.nodes[n1.NodeID] || s.nodes[n2.NodeID] || s.nodes[n3.NodeID] {
			continue
		}
		if s.branches[n1.BranchID] || s.branches[n2.BranchID] || s.branches[n3.BranchID] {
			continue
		}
		// Spokes must not connect to each other.
		if t.HasBranchBetween(n1.NodeID, n2.NodeID) ||
			t.HasBranchBetween(n2.NodeID, n3.NodeID) ||
			t.HasBranchBetween(n1.NodeID, n3.NodeID) {
			continue
		}
		p := Pattern{
			Kind:     T,
			Nodes:    []string{hub, n1.NodeID, n2.NodeID, n3.NodeID},
			Branches: []string{n1.BranchID, n2.BranchID, n3.BranchID},
			Template: tTemplate(),
		}
		s.claim(p)
		out = append(out, newMatch(p))
	}
	return out
}

// findSeries follows chains from unused degree-one nodes through nodes of
// degree at most two, stopping at a branch point, an already-claimed node,
// or a second degree-one node. Chains of fewer than three nodes are ignored.
func findSeries(t *circuit.Topology, s *scratch) []Match {
	var out []Match
	for _, start := range t.NodeIDs() {
		if s.nodes[start] || t.Degree(start) != 1 {
			continue
		}
		nodes := []string{start}
		var branches []string
		curr := start
		var via string // branch we arrived through

		for {
			var next *circuit.Neighbor
			for _, n := range t.Neighbors(curr) {
				if n.BranchID != via && !s.branches[n.BranchID] && n.NodeID != curr {
					next = &n
					break
				}
			}
			if next == nil {
				break
			}
			if s.nodes[next.NodeID] || t.Degree(next.NodeID) > 2 {
				break // chain ends before a branch point or claimed node
			}
			nodes = append(nodes, next.NodeID)
			branches = append(branches, next.BranchID)
			curr = next.NodeID
			via = next.BranchID
			if t.Degree(curr) == 1 {
				break
			}
		}

		if len(nodes) < 3 {
			continue
		}
		p := Pattern{
			Kind:     Series,
			Nodes:    nodes,
			Branches: branches,
			Template: seriesTemplate(len(nodes)),
		}
		s.claim(p)
		out = append(out, newMatch(p))
	}
	return out
}
