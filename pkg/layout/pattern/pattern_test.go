package pattern

import (
	"math"
	"testing"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
)

func build(t *testing.T, nodes []string, branches [][3]string) *circuit.Topology {
	t.Helper()
	topo := circuit.New()
	for _, n := range nodes {
		if err := topo.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n, err)
		}
	}
	for _, b := range branches {
		if err := topo.AddBranch(circuit.Branch{ID: b[0], From: b[1], To: b[2]}); err != nil {
			t.Fatalf("AddBranch(%s): %v", b[0], err)
		}
	}
	return topo
}

// diamond is the canonical bridge topology: l joined to r through t and b.
func diamond(t *testing.T) *circuit.Topology {
	return build(t,
		[]string{"l", "t", "b", "r"},
		[][3]string{{"lt", "l", "t"}, {"tr", "t", "r"}, {"lb", "l", "b"}, {"br", "b", "r"}},
	)
}

func TestFindBridge(t *testing.T) {
	matches := Find(diamond(t))
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Pattern.Kind != Bridge {
		t.Fatalf("kind = %s, want bridge", m.Pattern.Kind)
	}
	if len(m.Pattern.Nodes) != 4 || len(m.Pattern.Branches) != 4 {
		t.Errorf("bridge covers %d nodes, %d branches", len(m.Pattern.Nodes), len(m.Pattern.Branches))
	}
	// Terminals sit at the left and right template corners.
	if m.NodeIndex["l"] != 0 || m.NodeIndex["r"] != 3 {
		t.Errorf("terminal indices: l=%d r=%d", m.NodeIndex["l"], m.NodeIndex["r"])
	}
}

func TestFindBridgeRejectsDirectBranch(t *testing.T) {
	// A direct branch between l and r disqualifies that pair as bridge
	// terminals; the t–b pair (still unconnected) takes over instead.
	topo := diamond(t)
	topo.AddBranch(circuit.Branch{ID: "lr", From: "l", To: "r"})
	matches := Find(topo)
	if len(matches) == 0 || matches[0].Pattern.Kind != Bridge {
		t.Fatalf("matches = %+v, want a bridge", matches)
	}
	m := matches[0]
	if m.Pattern.Nodes[0] == "l" && m.Pattern.Nodes[3] == "r" {
		t.Fatal("directly connected pair used as bridge terminals")
	}
	if m.Pattern.Nodes[0] != "t" || m.Pattern.Nodes[3] != "b" {
		t.Errorf("terminals = %s, %s, want t, b", m.Pattern.Nodes[0], m.Pattern.Nodes[3])
	}
}

func TestFindPi(t *testing.T) {
	topo := build(t,
		[]string{"a", "b", "c"},
		[][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"ca", "c", "a"}},
	)
	matches := Find(topo)
	if len(matches) != 1 || matches[0].Pattern.Kind != Pi {
		t.Fatalf("matches = %+v, want one pi", matches)
	}

	// An extra branch raises a node above degree 2: no longer a pi.
	topo2 := build(t,
		[]string{"a", "b", "c", "d"},
		[][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"ca", "c", "a"}, {"ad", "a", "d"}},
	)
	for _, m := range Find(topo2) {
		if m.Pattern.Kind == Pi {
			t.Fatal("pi matched with an attached node")
		}
	}
}

func TestFindT(t *testing.T) {
	topo := build(t,
		[]string{"hub", "x", "y", "z"},
		[][3]string{{"hx", "hub", "x"}, {"hy", "hub", "y"}, {"hz", "hub", "z"}},
	)
	matches := Find(topo)
	if len(matches) != 1 || matches[0].Pattern.Kind != T {
		t.Fatalf("matches = %+v, want one T", matches)
	}
	if matches[0].NodeIndex["hub"] != 0 {
		t.Errorf("hub index = %d, want 0", matches[0].NodeIndex["hub"])
	}
}

func TestFindSeries(t *testing.T) {
	topo := build(t,
		[]string{"a", "b", "c", "d"},
		[][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"cd", "c", "d"}},
	)
	matches := Find(topo)
	if len(matches) != 1 || matches[0].Pattern.Kind != Series {
		t.Fatalf("matches = %+v, want one series", matches)
	}
	m := matches[0]
	if len(m.Pattern.Nodes) != 4 || len(m.Pattern.Branches) != 3 {
		t.Errorf("series covers %d nodes, %d branches", len(m.Pattern.Nodes), len(m.Pattern.Branches))
	}
	// Template is evenly spaced on one horizontal line.
	for i := 1; i < len(m.Pattern.Template); i++ {
		step := m.Pattern.Template[i].X - m.Pattern.Template[i-1].X
		if math.Abs(step-1) > 1e-9 || m.Pattern.Template[i].Y != 0 {
			t.Fatalf("template not uniformly horizontal: %+v", m.Pattern.Template)
		}
	}
}

func TestFindSeriesTooShort(t *testing.T) {
	topo := build(t, []string{"a", "b"}, [][3]string{{"ab", "a", "b"}})
	if matches := Find(topo); len(matches) != 0 {
		t.Fatalf("two-node chain matched: %+v", matches)
	}
}

func TestMatchesAreMutuallyExclusive(t *testing.T) {
	// Diamond with a tail: bridge should claim the diamond, leaving the tail
	// too short for a series.
	topo := diamond(t)
	topo.AddNode("t1")
	topo.AddNode("t2")
	topo.AddBranch(circuit.Branch{ID: "rt1", From: "r", To: "t1"})
	topo.AddBranch(circuit.Branch{ID: "t1t2", From: "t1", To: "t2"})

	matches := Find(topo)
	nodeSeen := make(map[string]bool)
	branchSeen := make(map[string]bool)
	for _, m := range matches {
		for _, n := range m.Pattern.Nodes {
			if nodeSeen[n] {
				t.Fatalf("node %s claimed twice", n)
			}
			nodeSeen[n] = true
		}
		for _, b := range m.Pattern.Branches {
			if branchSeen[b] {
				t.Fatalf("branch %s claimed twice", b)
			}
			branchSeen[b] = true
		}
	}
}

func TestCollapseExpandRoundTrip(t *testing.T) {
	// Diamond plus an external node hanging off the right terminal.
	topo := diamond(t)
	topo.AddNode("ext")
	topo.AddBranch(circuit.Branch{ID: "rext", From: "r", To: "ext"})

	matches := Find(topo)
	s := Collapse(topo, matches)

	if len(s.SuperNodes) != 1 {
		t.Fatalf("got %d super-nodes, want 1", len(s.SuperNodes))
	}
	super := s.SuperNodes[0]
	if len(super.External) != 1 || super.External[0].BranchID != "rext" {
		t.Fatalf("external connections = %+v", super.External)
	}
	if super.External[0].InternalNode != "r" || super.External[0].ExternalNode != "ext" {
		t.Errorf("external connection endpoints wrong: %+v", super.External[0])
	}

	positions := map[string]geom.Point{
		super.ID: geom.Pt(100, 50),
		"ext":    geom.Pt(200, 50),
	}
	expanded := Expand(s, positions, 40)

	// Key set equals the original node set.
	if len(expanded) != topo.NodeCount() {
		t.Fatalf("expanded %d nodes, want %d", len(expanded), topo.NodeCount())
	}
	for _, id := range topo.NodeIDs() {
		if _, ok := expanded[id]; !ok {
			t.Errorf("node %s missing from expansion", id)
		}
	}

	// Untouched nodes pass through unchanged.
	if expanded["ext"] != positions["ext"] {
		t.Errorf("ext moved: %+v", expanded["ext"])
	}

	// Matched nodes land on anchor + template·scale.
	want := geom.Pt(100-40, 50) // left terminal template (-1, 0)
	if got := expanded["l"]; math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("l at (%v, %v), want (%v, %v)", got.X, got.Y, want.X, want.Y)
	}
}

func TestPlacementTopology(t *testing.T) {
	topo := diamond(t)
	topo.AddNode("ext")
	topo.AddBranch(circuit.Branch{ID: "rext", From: "r", To: "ext"})

	s := Collapse(topo, Find(topo))
	pt := s.PlacementTopology()

	if pt.NodeCount() != 2 { // super-node + ext
		t.Fatalf("placement graph has %d nodes, want 2", pt.NodeCount())
	}
	if pt.BranchCount() != 1 {
		t.Fatalf("placement graph has %d branches, want 1", pt.BranchCount())
	}
}

func TestCollapseWithoutMatchesPassesEverythingThrough(t *testing.T) {
	topo := build(t, []string{"a", "b"}, [][3]string{{"ab", "a", "b"}})
	s := Collapse(topo, nil)
	if len(s.Nodes) != 2 || len(s.Branches) != 1 || len(s.SuperNodes) != 0 {
		t.Fatalf("unexpected simplified graph: %+v", s)
	}
}
