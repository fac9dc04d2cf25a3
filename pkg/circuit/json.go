package circuit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// TopologyJSON is the canonical serialization format for circuit topologies.
// It is the on-disk and over-the-wire input format of the layout service:
// import → layout → export never mutates the topology.
type TopologyJSON struct {
	Nodes    []NodeJSON   `json:"nodes"`
	Branches []BranchJSON `json:"branches"`
}

// NodeJSON is the serialized form of a node. The incident branch list is
// derived on load and therefore omitted from the format.
type NodeJSON struct {
	ID string `json:"id"`
}

// BranchJSON is the serialized form of a branch.
type BranchJSON struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
	From string `json:"from"`
	To   string `json:"to"`
}

// FromTopology converts a topology to its serialization format. Nodes are
// sorted by ID for deterministic output; branches keep insertion order.
func FromTopology(t *Topology) TopologyJSON {
	ids := t.NodeIDs()
	slices.Sort(ids)

	out := TopologyJSON{
		Nodes:    make([]NodeJSON, len(ids)),
		Branches: make([]BranchJSON, 0, t.BranchCount()),
	}
	for i, id := range ids {
		out.Nodes[i] = NodeJSON{ID: id}
	}
	for _, b := range t.Branches() {
		out.Branches = append(out.Branches, BranchJSON{ID: b.ID, Kind: b.Kind, From: b.From, To: b.To})
	}
	return out
}

// ToTopology converts the serialization format back to a topology.
// Returns an error when the structure violates topology constraints
// (duplicate IDs, branches referencing unknown nodes).
func ToTopology(tj TopologyJSON) (*Topology, error) {
	t := New()
	for _, nj := range tj.Nodes {
		if err := t.AddNode(nj.ID); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}
	for _, bj := range tj.Branches {
		if err := t.AddBranch(Branch{ID: bj.ID, Kind: bj.Kind, From: bj.From, To: bj.To}); err != nil {
			return nil, fmt.Errorf("add branch %s: %w", bj.ID, err)
		}
	}
	return t, nil
}

// Marshal converts a topology to indented JSON bytes.
func Marshal(t *Topology) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a topology as JSON to w.
func Write(t *Topology, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromTopology(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON topology from r.
func Read(r io.Reader) (*Topology, error) {
	var data TopologyJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToTopology(data)
}

// ReadFile reads a JSON file and returns the decoded topology.
func ReadFile(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a topology to a JSON file with 0644 permissions.
func WriteFile(t *Topology, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(t, f)
}
