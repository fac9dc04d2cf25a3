package circuit

import (
	"bytes"
	"errors"
	"slices"
	"testing"
)

// build constructs a topology from shorthand, failing the test on error.
// Branches are given as [id, from, to] triples.
func build(t *testing.T, nodes []string, branches [][3]string) *Topology {
	t.Helper()
	topo := New()
	for _, n := range nodes {
		if err := topo.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n, err)
		}
	}
	for _, b := range branches {
		if err := topo.AddBranch(Branch{ID: b[0], From: b[1], To: b[2]}); err != nil {
			t.Fatalf("AddBranch(%s): %v", b[0], err)
		}
	}
	return topo
}

func TestAddErrors(t *testing.T) {
	topo := New()
	if err := topo.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty node ID: got %v", err)
	}
	topo.AddNode("a")
	if err := topo.AddNode("a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate node: got %v", err)
	}
	if err := topo.AddBranch(Branch{From: "a", To: "a"}); !errors.Is(err, ErrInvalidBranchID) {
		t.Errorf("empty branch ID: got %v", err)
	}
	if err := topo.AddBranch(Branch{ID: "b", From: "a", To: "missing"}); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("unknown endpoint: got %v", err)
	}
	topo.AddBranch(Branch{ID: "b", From: "a", To: "a"})
	if err := topo.AddBranch(Branch{ID: "b", From: "a", To: "a"}); !errors.Is(err, ErrDuplicateBranchID) {
		t.Errorf("duplicate branch: got %v", err)
	}
}

func TestAdjacency(t *testing.T) {
	topo := build(t,
		[]string{"a", "b", "c"},
		[][3]string{{"ab", "a", "b"}, {"ab2", "a", "b"}, {"bc", "b", "c"}},
	)

	if got := topo.Degree("b"); got != 3 {
		t.Errorf("Degree(b) = %d, want 3", got)
	}
	if got := topo.BranchesBetween("a", "b"); !slices.Equal(got, []string{"ab", "ab2"}) {
		t.Errorf("BranchesBetween = %v", got)
	}
	if !topo.HasBranchBetween("b", "c") || topo.HasBranchBetween("a", "c") {
		t.Error("HasBranchBetween gave wrong answers")
	}
}

func TestShortestPath(t *testing.T) {
	// a-b-c-d plus shortcut a-d
	topo := build(t,
		[]string{"a", "b", "c", "d"},
		[][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"cd", "c", "d"}, {"ad", "a", "d"}},
	)

	p, ok := topo.ShortestPath("a", "d", nil, nil)
	if !ok {
		t.Fatal("no path found")
	}
	if !slices.Equal(p.Branches, []string{"ad"}) {
		t.Errorf("path branches = %v, want [ad]", p.Branches)
	}

	// Avoiding the shortcut forces the long way round.
	p, ok = topo.ShortestPath("a", "d", nil, map[string]bool{"ad": true})
	if !ok {
		t.Fatal("no path when avoiding shortcut")
	}
	if !slices.Equal(p.Nodes, []string{"a", "b", "c", "d"}) {
		t.Errorf("path nodes = %v", p.Nodes)
	}

	if _, ok := topo.ShortestPath("a", "d", map[string]bool{"b": true}, map[string]bool{"ad": true}); ok {
		t.Error("expected no path with both routes blocked")
	}
}

func TestDisjointPaths(t *testing.T) {
	// Diamond: two node-disjoint 2-branch routes from l to r.
	topo := build(t,
		[]string{"l", "t", "b", "r"},
		[][3]string{{"lt", "l", "t"}, {"tr", "t", "r"}, {"lb", "l", "b"}, {"br", "b", "r"}},
	)

	p1, p2, ok := topo.DisjointPaths("l", "r", 2, nil, nil)
	if !ok {
		t.Fatal("expected disjoint paths in diamond")
	}
	if len(p1.Branches) != 2 || len(p2.Branches) != 2 {
		t.Errorf("path lengths = %d, %d, want 2, 2", len(p1.Branches), len(p2.Branches))
	}
	if p1.Nodes[1] == p2.Nodes[1] {
		t.Error("paths share an intermediate node")
	}

	// A simple chain has only one route.
	chain := build(t, []string{"x", "y", "z"}, [][3]string{{"xy", "x", "y"}, {"yz", "y", "z"}})
	if _, _, ok := chain.DisjointPaths("x", "z", 2, nil, nil); ok {
		t.Error("chain must not yield disjoint paths")
	}
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []string
		branches [][3]string
		want     bool
	}{
		{"Chain", []string{"a", "b", "c"}, [][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}}, false},
		{"Triangle", []string{"a", "b", "c"}, [][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"ca", "c", "a"}}, true},
		{"ParallelPair", []string{"a", "b"}, [][3]string{{"p1", "a", "b"}, {"p2", "a", "b"}}, true},
		{"SelfLoop", []string{"a"}, [][3]string{{"loop", "a", "a"}}, true},
		{"TwoComponents", []string{"a", "b", "c", "d"}, [][3]string{{"ab", "a", "b"}, {"cd", "c", "d"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := build(t, tt.nodes, tt.branches)
			if got := topo.HasCycle(); got != tt.want {
				t.Errorf("HasCycle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanningForest(t *testing.T) {
	topo := build(t,
		[]string{"a", "b", "c"},
		[][3]string{{"ab", "a", "b"}, {"bc", "b", "c"}, {"ca", "c", "a"}},
	)
	tree, chords := topo.SpanningForest()
	if len(tree) != 2 || len(chords) != 1 {
		t.Fatalf("tree=%v chords=%v", tree, chords)
	}
	if len(tree)+len(chords) != topo.BranchCount() {
		t.Error("forest does not partition the branch set")
	}
}

func TestConnectedComponents(t *testing.T) {
	topo := build(t,
		[]string{"a", "b", "c", "d", "e"},
		[][3]string{{"ab", "a", "b"}, {"cd", "c", "d"}},
	)
	comps := topo.ConnectedComponents()
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	topo := build(t,
		[]string{"n2", "n1"},
		[][3]string{{"b1", "n1", "n2"}, {"b2", "n2", "n1"}},
	)

	data, err := Marshal(topo)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.NodeCount() != 2 || back.BranchCount() != 2 {
		t.Errorf("round trip lost elements: %d nodes, %d branches", back.NodeCount(), back.BranchCount())
	}

	// Deterministic output regardless of insertion order.
	again, err := Marshal(back)
	if err != nil {
		t.Fatalf("Marshal again: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("serialization is not stable")
	}
}

func TestToTopologyRejectsDangling(t *testing.T) {
	_, err := ToTopology(TopologyJSON{
		Nodes:    []NodeJSON{{ID: "a"}},
		Branches: []BranchJSON{{ID: "b", From: "a", To: "ghost"}},
	})
	if !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("got %v, want ErrUnknownEndpoint", err)
	}
}
