package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/layout"
)

// ComputeLayout runs the layout engine without caching. Runner methods wrap
// this with the cache; it is exported for callers that already manage their
// own storage.
func ComputeLayout(t *circuit.Topology, opts Options) (*layout.Graph, error) {
	opts.SetLayoutDefaults()
	eng := layout.New(opts.EngineOptions(), opts.Logger)
	return eng.Calculate(t)
}

// MarshalGraph serializes a computed layout for caching or JSON export.
func MarshalGraph(g *layout.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return data, nil
}

// UnmarshalGraph deserializes a cached layout.
func UnmarshalGraph(data []byte) (*layout.Graph, error) {
	var g layout.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	return &g, nil
}
