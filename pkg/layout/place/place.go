package place

import (
	"math"
	"slices"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
)

// Config tunes the placement pipeline. The zero value is not usable; start
// from [DefaultConfig].
type Config struct {
	// GridUnit is the snap grid size in output units.
	GridUnit float64
	// PreferredLength is the spring rest length between connected nodes.
	PreferredLength float64
	// Repulsion scales the inverse-square repulsion between all node pairs.
	Repulsion float64
	// Spring scales the attraction along branches toward PreferredLength.
	Spring float64
	// Damping is applied to node velocity each iteration.
	Damping float64
	// MaxIterations caps the force relaxation loop.
	MaxIterations int
	// MoveThreshold stops relaxation once the largest per-iteration movement
	// falls below it.
	MoveThreshold float64
	// AlignTolerance is the axis distance within which two nodes are forced
	// onto the same coordinate.
	AlignTolerance float64
	// CrowdingThreshold is the branch count per region above which spacing
	// is relaxed.
	CrowdingThreshold int
	// CrowdingSpread is the expansion factor applied inside crowded regions.
	CrowdingSpread float64
}

// DefaultConfig returns the tuning used by the layout engine unless
// overridden.
func DefaultConfig() Config {
	return Config{
		GridUnit:          40,
		PreferredLength:   80,
		Repulsion:         120000,
		Spring:            0.06,
		Damping:           0.85,
		MaxIterations:     300,
		MoveThreshold:     0.25,
		AlignTolerance:    12,
		CrowdingThreshold: 3,
		CrowdingSpread:    1.25,
	}
}

// Place computes positions for every node of t by force-directed relaxation
// followed by grid snapping, axis alignment, symmetry enforcement,
// crowding-aware spacing, and centering. The returned bounds are the tight
// bounding box of the final positions.
//
// Place is deterministic: initial positions come from node insertion order,
// and no ambient randomness is used anywhere in the pipeline.
func Place(t *circuit.Topology, cfg Config) (map[string]geom.Point, geom.Rect) {
	pos := initialPositions(t, cfg)
	relax(t, pos, cfg)
	snapToGrid(t, pos, cfg.GridUnit)
	alignAxes(t, pos, cfg)
	enforceSymmetry(t, pos, cfg)
	relaxCrowding(t, pos, cfg)
	center(t, pos)
	return pos, bounds(t, pos)
}

// initialPositions seeds the relaxation with nodes evenly spaced on a
// circle, in insertion order. A single node sits at the origin.
func initialPositions(t *circuit.Topology, cfg Config) map[string]geom.Point {
	ids := t.NodeIDs()
	pos := make(map[string]geom.Point, len(ids))
	if len(ids) == 1 {
		pos[ids[0]] = geom.Pt(0, 0)
		return pos
	}
	radius := cfg.PreferredLength * float64(len(ids)) / (2 * math.Pi)
	radius = max(radius, cfg.PreferredLength)
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		a := float64(i) * step
		pos[id] = geom.Pt(radius*math.Cos(a), radius*math.Sin(a))
	}
	return pos
}

// relax runs the force simulation: pairwise inverse-square repulsion plus
// spring attraction along every branch, with velocity damping, until the
// largest movement drops below the threshold or the iteration cap is hit.
func relax(t *circuit.Topology, pos map[string]geom.Point, cfg Config) {
	ids := t.NodeIDs()
	vel := make(map[string]geom.Point, len(ids))

	for range cfg.MaxIterations {
		force := make(map[string]geom.Point, len(ids))

		for i, a := range ids {
			for _, b := range ids[i+1:] {
				d := pos[b].Sub(pos[a])
				dist := max(geom.Dist(pos[a], pos[b]), 1e-3)
				push := d.Scale(-cfg.Repulsion / (dist * dist * dist))
				force[a] = force[a].Add(push)
				force[b] = force[b].Sub(push)
			}
		}

		for _, br := range t.Branches() {
			if br.SelfLoop() {
				continue
			}
			d := pos[br.To].Sub(pos[br.From])
			dist := max(geom.Dist(pos[br.From], pos[br.To]), 1e-3)
			pull := d.Scale(cfg.Spring * (dist - cfg.PreferredLength) / dist)
			force[br.From] = force[br.From].Add(pull)
			force[br.To] = force[br.To].Sub(pull)
		}

		maxMove := 0.0
		for _, id := range ids {
			vel[id] = vel[id].Add(force[id]).Scale(cfg.Damping)
			pos[id] = pos[id].Add(vel[id])
			maxMove = max(maxMove, math.Hypot(vel[id].X, vel[id].Y))
		}
		if maxMove < cfg.MoveThreshold {
			break
		}
	}
}

// snapToGrid quantizes every position to the grid and nudges nodes that
// collapse onto an occupied grid point one unit down, in insertion order, so
// snapping never merges two nodes.
func snapToGrid(t *circuit.Topology, pos map[string]geom.Point, unit float64) {
	if unit <= 0 {
		return
	}
	taken := make(map[[2]int]bool, len(pos))
	for _, id := range t.NodeIDs() {
		gx := int(math.Round(pos[id].X / unit))
		gy := int(math.Round(pos[id].Y / unit))
		for taken[[2]int{gx, gy}] {
			gy++
		}
		taken[[2]int{gx, gy}] = true
		pos[id] = geom.Pt(float64(gx)*unit, float64(gy)*unit)
	}
}

// alignAxes clusters nodes whose coordinate on one axis differs by at most
// the tolerance and forces each cluster onto a single shared coordinate.
func alignAxes(t *circuit.Topology, pos map[string]geom.Point, cfg Config) {
	ids := t.NodeIDs()
	alignOne := func(get func(geom.Point) float64, set func(*geom.Point, float64)) {
		order := slices.Clone(ids)
		slices.SortStableFunc(order, func(a, b string) int {
			switch {
			case get(pos[a]) < get(pos[b]):
				return -1
			case get(pos[a]) > get(pos[b]):
				return 1
			}
			return 0
		})
		for i := 0; i < len(order); {
			j := i + 1
			for j < len(order) && get(pos[order[j]])-get(pos[order[j-1]]) <= cfg.AlignTolerance {
				j++
			}
			if j-i > 1 {
				// Anchor the cluster at its first member's coordinate so
				// aligned nodes stay on-grid.
				anchor := get(pos[order[i]])
				for _, id := range order[i:j] {
					p := pos[id]
					set(&p, anchor)
					pos[id] = p
				}
			}
			i = j
		}
	}
	alignOne(func(p geom.Point) float64 { return p.X }, func(p *geom.Point, v float64) { p.X = v })
	alignOne(func(p geom.Point) float64 { return p.Y }, func(p *geom.Point, v float64) { p.Y = v })
}

// enforceSymmetry reflects mirrored substructures about their shared axis.
// Two non-adjacent nodes that connect to the same pair of anchor nodes (the
// diamond arms, or the two sides of a parallel split) are placed as exact
// mirror images across the anchor line, provided the reflection is a small
// correction rather than a jump.
func enforceSymmetry(t *circuit.Topology, pos map[string]geom.Point, cfg Config) {
	ids := t.NodeIDs()
	for i, u := range ids {
		for _, v := range ids[i+1:] {
			if t.HasBranchBetween(u, v) {
				continue
			}
			anchors := sharedNeighbors(t, u, v)
			if len(anchors) < 2 {
				continue
			}
			mirror := reflectAcross(pos[u], pos[anchors[0]], pos[anchors[1]])
			if geom.Dist(mirror, pos[v]) <= 1.5*cfg.GridUnit {
				pos[v] = mirror
			}
		}
	}
}

// sharedNeighbors returns node IDs adjacent to both u and v, in insertion
// order, without duplicates from parallel branches.
func sharedNeighbors(t *circuit.Topology, u, v string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, nu := range t.Neighbors(u) {
		if seen[nu.NodeID] {
			continue
		}
		seen[nu.NodeID] = true
		for _, nv := range t.Neighbors(v) {
			if nv.NodeID == nu.NodeID {
				out = append(out, nu.NodeID)
				break
			}
		}
	}
	return out
}

// reflectAcross mirrors p across the line through a and b.
func reflectAcross(p, a, b geom.Point) geom.Point {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 < 1e-12 {
		return p
	}
	t := p.Sub(a).Dot(d) / l2
	foot := a.Add(d.Scale(t))
	return foot.Scale(2).Sub(p)
}

// Region is a crowded area of the layout: the bounds of a midpoint cluster
// and the number of branch midpoints in it.
type Region struct {
	Bounds   geom.Rect
	Branches int
}

// DetectCrowding finds dense areas by counting, for each branch midpoint,
// the midpoints within one grid unit of it. A midpoint whose neighborhood
// exceeds the threshold seeds a region claiming that whole neighborhood, so
// a cluster is detected regardless of where it sits on the grid. Regions
// are returned in scanline order.
func DetectCrowding(t *circuit.Topology, pos map[string]geom.Point, cfg Config) []Region {
	radius := cfg.GridUnit
	if radius <= 0 {
		return nil
	}
	branches := t.Branches()
	mids := make([]geom.Point, len(branches))
	for i, br := range branches {
		mids[i] = geom.Mid(pos[br.From], pos[br.To])
	}

	claimed := make([]bool, len(mids))
	var out []Region
	for i := range mids {
		if claimed[i] {
			continue
		}
		var cluster []int
		for j := range mids {
			if !claimed[j] && geom.Dist(mids[i], mids[j]) <= radius {
				cluster = append(cluster, j)
			}
		}
		if len(cluster) <= cfg.CrowdingThreshold {
			continue
		}
		pts := make([]geom.Point, len(cluster))
		for k, j := range cluster {
			claimed[j] = true
			pts[k] = mids[j]
		}
		out = append(out, Region{
			Bounds:   geom.RectAround(pts).Pad(radius / 2),
			Branches: len(cluster),
		})
	}

	slices.SortFunc(out, func(a, b Region) int {
		switch {
		case a.Bounds.Min.Y < b.Bounds.Min.Y:
			return -1
		case a.Bounds.Min.Y > b.Bounds.Min.Y:
			return 1
		case a.Bounds.Min.X < b.Bounds.Min.X:
			return -1
		case a.Bounds.Min.X > b.Bounds.Min.X:
			return 1
		}
		return 0
	})
	return out
}

// relaxCrowding expands spacing inside crowded regions only, scaling node
// positions away from each region's center. Sparse regions are untouched;
// nodes inside a crowded region may end up off-grid, which is accepted.
func relaxCrowding(t *circuit.Topology, pos map[string]geom.Point, cfg Config) {
	for _, region := range DetectCrowding(t, pos, cfg) {
		c := region.Bounds.Center()
		for _, id := range t.NodeIDs() {
			p := pos[id]
			if p.X < region.Bounds.Min.X || p.X > region.Bounds.Max.X ||
				p.Y < region.Bounds.Min.Y || p.Y > region.Bounds.Max.Y {
				continue
			}
			pos[id] = c.Add(p.Sub(c).Scale(cfg.CrowdingSpread))
		}
	}
}

// center translates all positions so the centroid sits at the origin.
func center(t *circuit.Topology, pos map[string]geom.Point) {
	ids := t.NodeIDs()
	if len(ids) == 0 {
		return
	}
	var sum geom.Point
	for _, id := range ids {
		sum = sum.Add(pos[id])
	}
	c := sum.Scale(1 / float64(len(ids)))
	for _, id := range ids {
		pos[id] = pos[id].Sub(c)
	}
}

func bounds(t *circuit.Topology, pos map[string]geom.Point) geom.Rect {
	pts := make([]geom.Point, 0, len(pos))
	for _, id := range t.NodeIDs() {
		pts = append(pts, pos[id])
	}
	return geom.RectAround(pts)
}
