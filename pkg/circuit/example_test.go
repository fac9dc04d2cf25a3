package circuit_test

import (
	"fmt"

	"github.com/azsce/schematic/pkg/circuit"
)

func Example() {
	t := circuit.New()
	for _, id := range []string{"a", "b", "c"} {
		if err := t.AddNode(id); err != nil {
			panic(err)
		}
	}
	branches := []circuit.Branch{
		{ID: "R1", Kind: "resistor", From: "a", To: "b"},
		{ID: "R2", Kind: "resistor", From: "b", To: "c"},
		{ID: "C1", Kind: "capacitor", From: "a", To: "c"},
	}
	for _, b := range branches {
		if err := t.AddBranch(b); err != nil {
			panic(err)
		}
	}

	fmt.Println(t.NodeCount(), "nodes,", t.BranchCount(), "branches")
	fmt.Println("a-b connected directly:", t.HasBranchBetween("a", "b"))

	path, ok := t.ShortestPath("a", "c", nil, nil)
	fmt.Println("shortest a to c:", ok, len(path.Branches), "branch")
	// Output:
	// 3 nodes, 3 branches
	// a-b connected directly: true
	// shortest a to c: true 1 branch
}
