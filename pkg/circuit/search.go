package circuit

import "slices"

// Path is a walk through the topology: the visited node IDs and the branch
// IDs traversed between them. A valid path has len(Branches) == len(Nodes)-1.
type Path struct {
	Nodes    []string
	Branches []string
}

// ShortestPath returns a minimum-hop path from from to to using breadth-first
// search, skipping any node in avoidNodes and any branch in avoidBranches
// (either may be nil). The second return value is false when no path exists.
func (t *Topology) ShortestPath(from, to string, avoidNodes, avoidBranches map[string]bool) (Path, bool) {
	if from == to {
		return Path{Nodes: []string{from}}, true
	}
	prevNode := map[string]string{from: from}
	prevBranch := make(map[string]string)
	queue := []string{from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, n := range t.adj[curr] {
			if avoidNodes[n.NodeID] || avoidBranches[n.BranchID] {
				continue
			}
			if _, seen := prevNode[n.NodeID]; seen {
				continue
			}
			prevNode[n.NodeID] = curr
			prevBranch[n.NodeID] = n.BranchID
			if n.NodeID == to {
				var p Path
				for at := to; ; at = prevNode[at] {
					p.Nodes = append(p.Nodes, at)
					if at == from {
						break
					}
					p.Branches = append(p.Branches, prevBranch[at])
				}
				slices.Reverse(p.Nodes)
				slices.Reverse(p.Branches)
				return p, true
			}
			queue = append(queue, n.NodeID)
		}
	}
	return Path{}, false
}

// SimplePaths returns every simple path from from to to with at most
// maxBranches branches, skipping avoided nodes and branches. Paths are
// discovered by depth-first search in adjacency order, so the result is
// deterministic for a given topology.
func (t *Topology) SimplePaths(from, to string, maxBranches int, avoidNodes, avoidBranches map[string]bool) []Path {
	var out []Path
	seen := map[string]bool{from: true}
	var walk func(curr string, p Path)
	walk = func(curr string, p Path) {
		if len(p.Branches) > maxBranches {
			return
		}
		if curr == to && len(p.Branches) > 0 {
			out = append(out, Path{Nodes: slices.Clone(p.Nodes), Branches: slices.Clone(p.Branches)})
			return
		}
		if len(p.Branches) == maxBranches {
			return
		}
		for _, n := range t.adj[curr] {
			if seen[n.NodeID] || avoidNodes[n.NodeID] || avoidBranches[n.BranchID] {
				continue
			}
			seen[n.NodeID] = true
			walk(n.NodeID, Path{
				Nodes:    append(p.Nodes, n.NodeID),
				Branches: append(p.Branches, n.BranchID),
			})
			seen[n.NodeID] = false
		}
	}
	walk(from, Path{Nodes: []string{from}})
	return out
}

// DisjointPaths searches for two paths from from to to that share no
// intermediate node and no branch, each using at most maxBranches branches.
// Returns the pair and true on success. Candidates are examined in
// deterministic DFS order, so the same topology always yields the same pair.
func (t *Topology) DisjointPaths(from, to string, maxBranches int, avoidNodes, avoidBranches map[string]bool) (Path, Path, bool) {
	paths := t.SimplePaths(from, to, maxBranches, avoidNodes, avoidBranches)
	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			if pathsDisjoint(paths[i], paths[j]) {
				return paths[i], paths[j], true
			}
		}
	}
	return Path{}, Path{}, false
}

// pathsDisjoint reports whether a and b share no branch and no node other
// than the two endpoints.
func pathsDisjoint(a, b Path) bool {
	for _, br := range a.Branches {
		if slices.Contains(b.Branches, br) {
			return false
		}
	}
	inner := a.Nodes[1 : len(a.Nodes)-1]
	for _, n := range inner {
		if slices.Contains(b.Nodes, n) {
			return false
		}
	}
	return true
}

// HasCycle reports whether the topology contains any cycle, including one
// formed by parallel branches or a self-loop.
func (t *Topology) HasCycle() bool {
	visited := make(map[string]bool)
	var dfs func(curr, viaBranch string) bool
	dfs = func(curr, viaBranch string) bool {
		visited[curr] = true
		for _, n := range t.adj[curr] {
			if n.BranchID == viaBranch {
				continue
			}
			if n.NodeID == curr {
				return true // self-loop
			}
			if visited[n.NodeID] {
				return true
			}
			if dfs(n.NodeID, n.BranchID) {
				return true
			}
		}
		return false
	}
	for _, id := range t.nodeOrder {
		if !visited[id] {
			if dfs(id, "") {
				return true
			}
		}
	}
	return false
}

// ConnectedComponents partitions the node set into connected components,
// each listed in BFS discovery order starting from the earliest-inserted
// unvisited node.
func (t *Topology) ConnectedComponents() [][]string {
	var comps [][]string
	visited := make(map[string]bool)
	for _, start := range t.nodeOrder {
		if visited[start] {
			continue
		}
		comp := []string{start}
		visited[start] = true
		for i := 0; i < len(comp); i++ {
			for _, n := range t.adj[comp[i]] {
				if !visited[n.NodeID] {
					visited[n.NodeID] = true
					comp = append(comp, n.NodeID)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// SpanningForest returns the branch IDs of a breadth-first spanning forest
// and, separately, the branches outside it (chords: parallel extras, cycle
// closers, self-loops). Every branch appears in exactly one of the two
// slices.
func (t *Topology) SpanningForest() (tree, chords []string) {
	inTree := make(map[string]bool)
	visited := make(map[string]bool)
	for _, start := range t.nodeOrder {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []string{start}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, n := range t.adj[curr] {
				if visited[n.NodeID] {
					continue
				}
				visited[n.NodeID] = true
				inTree[n.BranchID] = true
				queue = append(queue, n.NodeID)
			}
		}
	}
	for _, id := range t.brOrder {
		if inTree[id] {
			tree = append(tree, id)
		} else {
			chords = append(chords, id)
		}
	}
	return tree, chords
}

// DegreeSequence returns the sorted degree of every node, ascending. Useful
// for quick structural comparisons in tests and pattern screening.
func (t *Topology) DegreeSequence() []int {
	out := make([]int, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		out = append(out, len(t.adj[id]))
	}
	slices.Sort(out)
	return out
}
