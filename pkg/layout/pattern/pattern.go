package pattern

import (
	"github.com/azsce/schematic/pkg/geom"
)

// Kind identifies one of the recognized sub-topology shapes. Each kind knows
// an ideal relative layout (its template); detection is purely structural.
type Kind int

const (
	// Bridge is the Wheatstone-bridge diamond: two nodes joined by two
	// node-disjoint two-branch paths, four nodes and four branches total.
	Bridge Kind = iota
	// Pi is an isolated three-node cycle with every node at degree two.
	Pi
	// T is a degree-three hub whose neighbors connect only to the hub
	// within the induced four-node subgraph.
	T
	// Series is a chain of three or more nodes of degree at most two,
	// starting from a degree-one node.
	Series
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Bridge:
		return "bridge"
	case Pi:
		return "pi"
	case T:
		return "t"
	case Series:
		return "series"
	}
	return "unknown"
}

// Pattern is a concrete occurrence shape: the matched node and branch IDs
// plus the reusable relative-coordinate template. Nodes[i] corresponds to
// Template[i]. Patterns are immutable once built.
type Pattern struct {
	Kind     Kind
	Nodes    []string
	Branches []string
	Template []geom.Point
}

// Match is a detected occurrence of a pattern in the input graph.
// NodeIndex maps each matched node ID to its template index; BranchIndex
// maps each matched branch ID to its position in Pattern.Branches.
type Match struct {
	Pattern     Pattern
	NodeIndex   map[string]int
	BranchIndex map[string]int
}

// newMatch builds a Match and derives both index maps from the pattern's
// node and branch ordering.
func newMatch(p Pattern) Match {
	m := Match{
		Pattern:     p,
		NodeIndex:   make(map[string]int, len(p.Nodes)),
		BranchIndex: make(map[string]int, len(p.Branches)),
	}
	for i, n := range p.Nodes {
		m.NodeIndex[n] = i
	}
	for i, b := range p.Branches {
		m.BranchIndex[b] = i
	}
	return m
}

// Templates are expressed in grid-unit-relative coordinates around the
// super-node anchor; Expand scales them to the configured grid size.
const triHeight = 0.866 // equilateral triangle height over half the base

// bridgeTemplate is a diamond: left, top, bottom, right.
func bridgeTemplate() []geom.Point {
	return []geom.Point{
		geom.Pt(-1, 0), // left terminal
		geom.Pt(0, -1), // top arm
		geom.Pt(0, 1),  // bottom arm
		geom.Pt(1, 0),  // right terminal
	}
}

// piTemplate is an equilateral triangle centered on the anchor.
func piTemplate() []geom.Point {
	return []geom.Point{
		geom.Pt(0, -triHeight/2),
		geom.Pt(-0.5, triHeight/2),
		geom.Pt(0.5, triHeight/2),
	}
}

// tTemplate is the hub followed by three spokes: left, right, below.
func tTemplate() []geom.Point {
	return []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(-1, 0),
		geom.Pt(1, 0),
		geom.Pt(0, 1),
	}
}

// seriesTemplate spaces n nodes uniformly along the x axis, centered on the
// anchor.
func seriesTemplate(n int) []geom.Point {
	out := make([]geom.Point, n)
	half := float64(n-1) / 2
	for i := range out {
		out[i] = geom.Pt(float64(i)-half, 0)
	}
	return out
}
