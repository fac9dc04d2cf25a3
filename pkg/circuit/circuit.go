package circuit

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Topology.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Topology.AddNode] when a node with
	// the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidBranchID is returned by [Topology.AddBranch] when the branch
	// ID is empty.
	ErrInvalidBranchID = errors.New("branch ID must not be empty")

	// ErrDuplicateBranchID is returned by [Topology.AddBranch] when a branch
	// with the same ID already exists.
	ErrDuplicateBranchID = errors.New("duplicate branch ID")

	// ErrUnknownEndpoint is returned by [Topology.AddBranch] and
	// [Topology.Validate] when a branch references a node that does not
	// exist in the topology.
	ErrUnknownEndpoint = errors.New("branch endpoint references unknown node")
)

// Node is an electrical node: a junction where one or more branches meet.
// Branches lists the IDs of every branch incident to the node and is
// maintained automatically by [Topology.AddBranch].
type Node struct {
	ID       string
	Branches []string
}

// Branch is an undirected edge between two nodes. Kind carries just enough
// identity for a presentation layer to distinguish branches (e.g. "resistor",
// "wire"); the layout engine never interprets it. From and To name the
// endpoints but imply no direction; only arrow rendering uses their order.
type Branch struct {
	ID   string
	Kind string
	From string
	To   string
}

// SelfLoop reports whether both endpoints of the branch are the same node.
// Self-loops are not expected in circuit topologies but are tolerated
// throughout the engine.
func (b Branch) SelfLoop() bool { return b.From == b.To }

// Other returns the endpoint of b that is not nodeID. For self-loops it
// returns the node itself.
func (b Branch) Other(nodeID string) string {
	if b.From == nodeID {
		return b.To
	}
	return b.From
}

// Neighbor pairs an adjacent node with the branch that reaches it. Parallel
// branches produce one Neighbor each.
type Neighbor struct {
	NodeID   string
	BranchID string
}

// Topology is an undirected multigraph of electrical nodes and branches.
// Parallel branches between the same node pair are legal. The zero value is
// not usable; construct with [New].
//
// Topology is not safe for concurrent mutation; the layout engine only reads
// it, so sharing a fully built topology between goroutines is fine.
type Topology struct {
	nodes     map[string]*Node
	branches  map[string]*Branch
	nodeOrder []string
	brOrder   []string
	adj       map[string][]Neighbor
}

// New creates an empty topology.
func New() *Topology {
	return &Topology{
		nodes:    make(map[string]*Node),
		branches: make(map[string]*Branch),
		adj:      make(map[string][]Neighbor),
	}
}

// AddNode adds a node with the given ID. Returns ErrInvalidNodeID for an
// empty ID or ErrDuplicateNodeID if the node already exists.
func (t *Topology) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := t.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	t.nodes[id] = &Node{ID: id}
	t.nodeOrder = append(t.nodeOrder, id)
	return nil
}

// AddBranch adds a branch connecting two existing nodes and indexes it in
// both adjacency lists. Returns ErrInvalidBranchID, ErrDuplicateBranchID, or
// ErrUnknownEndpoint on invalid input.
func (t *Topology) AddBranch(b Branch) error {
	if b.ID == "" {
		return ErrInvalidBranchID
	}
	if _, exists := t.branches[b.ID]; exists {
		return ErrDuplicateBranchID
	}
	from, okFrom := t.nodes[b.From]
	to, okTo := t.nodes[b.To]
	if !okFrom || !okTo {
		return ErrUnknownEndpoint
	}

	br := b
	t.branches[b.ID] = &br
	t.brOrder = append(t.brOrder, b.ID)

	from.Branches = append(from.Branches, b.ID)
	t.adj[b.From] = append(t.adj[b.From], Neighbor{NodeID: b.To, BranchID: b.ID})
	if !b.SelfLoop() {
		to.Branches = append(to.Branches, b.ID)
		t.adj[b.To] = append(t.adj[b.To], Neighbor{NodeID: b.From, BranchID: b.ID})
	}
	return nil
}

// Node returns the node with the given ID, or nil if absent.
func (t *Topology) Node(id string) *Node { return t.nodes[id] }

// Branch returns the branch with the given ID, or nil if absent.
func (t *Topology) Branch(id string) *Branch { return t.branches[id] }

// Nodes returns all nodes in insertion order.
func (t *Topology) Nodes() []*Node {
	out := make([]*Node, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		out = append(out, t.nodes[id])
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (t *Topology) NodeIDs() []string { return slices.Clone(t.nodeOrder) }

// Branches returns all branches in insertion order.
func (t *Topology) Branches() []*Branch {
	out := make([]*Branch, 0, len(t.brOrder))
	for _, id := range t.brOrder {
		out = append(out, t.branches[id])
	}
	return out
}

// BranchIDs returns all branch IDs in insertion order.
func (t *Topology) BranchIDs() []string { return slices.Clone(t.brOrder) }

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int { return len(t.nodes) }

// BranchCount returns the number of branches.
func (t *Topology) BranchCount() int { return len(t.branches) }

// Degree returns the number of branch endpoints incident to the node.
// Parallel branches each count once; a self-loop counts once.
func (t *Topology) Degree(id string) int { return len(t.adj[id]) }

// Neighbors returns the adjacency list of the node: one entry per incident
// branch, in branch insertion order. The returned slice is shared; callers
// must not mutate it.
func (t *Topology) Neighbors(id string) []Neighbor { return t.adj[id] }

// BranchesBetween returns the IDs of every branch whose endpoints are
// exactly {a, b}, in insertion order. Used to detect parallel branches.
func (t *Topology) BranchesBetween(a, b string) []string {
	var out []string
	for _, id := range t.brOrder {
		br := t.branches[id]
		if (br.From == a && br.To == b) || (br.From == b && br.To == a) {
			out = append(out, id)
		}
	}
	return out
}

// HasBranchBetween reports whether any branch directly connects a and b.
func (t *Topology) HasBranchBetween(a, b string) bool {
	for _, n := range t.adj[a] {
		if n.NodeID == b {
			return true
		}
	}
	return false
}

// Validate checks structural integrity: every branch endpoint must reference
// an existing node. Returns ErrUnknownEndpoint wrapped with the offending
// branch, or nil. A topology built exclusively through AddNode/AddBranch is
// always valid; Validate matters for deserialized input.
func (t *Topology) Validate() error {
	for _, id := range t.brOrder {
		b := t.branches[id]
		if _, ok := t.nodes[b.From]; !ok {
			return endpointErr(b.ID, b.From)
		}
		if _, ok := t.nodes[b.To]; !ok {
			return endpointErr(b.ID, b.To)
		}
	}
	return nil
}

func endpointErr(branchID, nodeID string) error {
	return fmt.Errorf("branch %s: node %s: %w", branchID, nodeID, ErrUnknownEndpoint)
}
