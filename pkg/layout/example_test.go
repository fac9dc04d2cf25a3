package layout_test

import (
	"fmt"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/layout"
)

func ExampleEngine_Calculate() {
	t := circuit.New()
	for _, id := range []string{"in", "out"} {
		if err := t.AddNode(id); err != nil {
			panic(err)
		}
	}
	if err := t.AddBranch(circuit.Branch{ID: "R1", Kind: "resistor", From: "in", To: "out"}); err != nil {
		panic(err)
	}

	engine := layout.New(layout.DefaultOptions(), nil)
	g, err := engine.Calculate(t)
	if err != nil {
		panic(err)
	}

	fmt.Println("nodes placed:", len(g.Nodes))
	fmt.Println("edges routed:", len(g.Edges))
	fmt.Println("straight path:", !g.Edge("R1").Curved)
	// Output:
	// nodes placed: 2
	// edges routed: 1
	// straight path: true
}
