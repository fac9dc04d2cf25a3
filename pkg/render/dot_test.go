package render

import (
	"strings"
	"testing"

	"github.com/azsce/schematic/pkg/circuit"
)

func dotTopology(t *testing.T) *circuit.Topology {
	t.Helper()
	topo := circuit.New()
	for _, id := range []string{"in", "out"} {
		if err := topo.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	err := topo.AddBranch(circuit.Branch{ID: "b1", Kind: "resistor", From: "in", To: "out"})
	if err != nil {
		t.Fatal(err)
	}
	return topo
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(dotTopology(t), DOTOptions{})

	for _, want := range []string{
		"graph circuit {",
		`"in";`,
		`"out";`,
		`"in" -- "out";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot missing %q", want)
		}
	}
	if strings.Contains(dot, "resistor") {
		t.Error("kind rendered without option")
	}
}

func TestToDOTKinds(t *testing.T) {
	dot := ToDOT(dotTopology(t), DOTOptions{Kinds: true})
	if !strings.Contains(dot, `"in" -- "out" [label="resistor"];`) {
		t.Error("kind label missing")
	}
}
