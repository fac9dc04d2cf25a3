package route

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
)

// Scoring weights. Lower total wins; ties favor the earlier (straighter)
// candidate.
const (
	// IntersectionPenalty is charged per crossing with a node body or a
	// previously routed edge.
	IntersectionPenalty = 1000.0
	// ProximityPenalty is charged per unit of clearance violation against
	// non-endpoint nodes.
	ProximityPenalty = 100.0
	// CurvePenalty biases selection toward straight lines.
	CurvePenalty = 10.0
	// MirrorBonus rewards a candidate that mirrors a parallel sibling's
	// curve, producing symmetric lens shapes.
	MirrorBonus = 50.0
)

// Config tunes the router.
type Config struct {
	// NodeRadius is the body radius of a node; a path passing closer than
	// this to a non-endpoint node counts as intersecting it.
	NodeRadius float64
	// NodeClearance is the preferred distance kept from non-endpoint nodes;
	// the shortfall is charged at ProximityPenalty per unit.
	NodeClearance float64
	// LowArc is the apex offset of the gentle curve candidates.
	LowArc float64
	// HighArc is the apex offset of the long-bypass candidates.
	HighArc float64
	// MinParallelClearance is the enforced separation between adjacent
	// parallel branches.
	MinParallelClearance float64
	// LoopRadius sizes the teardrop drawn for a self-loop.
	LoopRadius float64
}

// DefaultConfig returns the router tuning used by the layout engine unless
// overridden.
func DefaultConfig() Config {
	return Config{
		NodeRadius:           10,
		NodeClearance:        22,
		LowArc:               28,
		HighArc:              64,
		MinParallelClearance: 24,
		LoopRadius:           18,
	}
}

// Arrow is the arrowhead placement for a routed branch: the path point at
// parameter 0.5 and the tangent direction there, in radians.
type Arrow struct {
	X, Y  float64
	Angle float64
}

// Routed is the geometry chosen for one branch.
type Routed struct {
	// Path holds absolute drawing commands (M/L/Q/C) for the presentation
	// layer.
	Path string
	// Points is a polyline approximation of the path, used for collision
	// scoring and label placement. It always starts at the source position
	// and ends at the target position.
	Points []geom.Point
	// Curved reports whether a non-straight candidate was selected.
	Curved bool
	// Offset is the signed apex offset from the straight baseline; zero for
	// straight paths.
	Offset float64
	Arrow  Arrow
}

// Route chooses a path for every branch of t against the given node
// positions. Branches are processed in insertion order; each one is scored
// against nodes and all previously routed branches, so the result is
// deterministic.
func Route(t *circuit.Topology, pos map[string]geom.Point, cfg Config) map[string]Routed {
	out := make(map[string]Routed, t.BranchCount())
	offsets := parallelOffsets(t, cfg)

	var done []*circuit.Branch
	for _, br := range t.Branches() {
		var r Routed
		switch {
		case br.SelfLoop():
			r = routeSelfLoop(pos[br.From], cfg)
		case hasAssignedOffset(offsets, br.ID):
			// The assigned offset is expressed against the canonical
			// (lexicographic) endpoint order; flip it when this branch is
			// stored the other way round so siblings fan out on distinct
			// sides regardless of From/To orientation.
			off := offsets[br.ID]
			geo := off
			if br.From > br.To {
				geo = -off
			}
			r = buildCandidate(pos[br.From], pos[br.To], geo)
			r.Offset = off
		default:
			r = pickCandidate(t, br, pos, out, done, cfg)
		}
		out[br.ID] = r
		done = append(done, br)
	}
	return out
}

func hasAssignedOffset(offsets map[string]float64, id string) bool {
	_, ok := offsets[id]
	return ok
}

// parallelOffsets assigns every branch belonging to a parallel group (two or
// more branches sharing both endpoints) a deterministic perpendicular apex
// offset. Offsets are symmetric about the straight baseline, alternate in
// sign, and adjacent apexes are separated by at least the configured
// clearance. With an odd group size the middle branch runs straight.
func parallelOffsets(t *circuit.Topology, cfg Config) map[string]float64 {
	grouped := make(map[[2]string][]string)
	for _, br := range t.Branches() {
		if br.SelfLoop() {
			continue
		}
		key := [2]string{br.From, br.To}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		grouped[key] = append(grouped[key], br.ID)
	}

	sep := max(cfg.MinParallelClearance, 1)
	out := make(map[string]float64)
	for _, ids := range grouped {
		k := len(ids)
		if k < 2 {
			continue
		}
		slices.Sort(ids) // stable regardless of insertion order
		half := float64(k-1) / 2
		for i, id := range ids {
			out[id] = (float64(i) - half) * sep
		}
	}
	return out
}

// pickCandidate generates the straight, low-arc, and high-arc candidates
// for a branch and returns the lowest-scoring one. Candidate order embeds
// the straight-line bias: later candidates replace the incumbent only with
// a strictly lower score.
func pickCandidate(t *circuit.Topology, br *circuit.Branch, pos map[string]geom.Point, routed map[string]Routed, done []*circuit.Branch, cfg Config) Routed {
	a, b := pos[br.From], pos[br.To]
	candidates := []Routed{
		buildCandidate(a, b, 0),
		buildCandidate(a, b, cfg.LowArc),
		buildCandidate(a, b, -cfg.LowArc),
		buildCandidate(a, b, cfg.HighArc),
		buildCandidate(a, b, -cfg.HighArc),
	}

	best := candidates[0]
	bestScore := score(t, br, candidates[0], pos, routed, done, cfg)
	for _, c := range candidates[1:] {
		if s := score(t, br, c, pos, routed, done, cfg); s < bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// buildCandidate constructs the path geometry for a given apex offset.
// Offset zero yields the straight segment; otherwise a quadratic curve
// through mid + offset·perpendicular.
func buildCandidate(a, b geom.Point, offset float64) Routed {
	if offset == 0 {
		return Routed{
			Path:   fmt.Sprintf("M %s L %s", coord(a), coord(b)),
			Points: []geom.Point{a, b},
			Arrow:  arrowAt(geom.Mid(a, b), geom.Angle(b.Sub(a))),
		}
	}
	apex := geom.Mid(a, b).Add(geom.Perp(geom.UnitBetween(a, b)).Scale(offset))
	ctrl := geom.QuadControlFor(a, b, apex)
	return Routed{
		Path:   fmt.Sprintf("M %s Q %s %s", coord(a), coord(ctrl), coord(b)),
		Points: sampleQuad(a, ctrl, b),
		Curved: true,
		Offset: offset,
		Arrow:  arrowAt(geom.QuadPoint(a, ctrl, b, 0.5), geom.Angle(geom.QuadTangent(a, ctrl, b, 0.5))),
	}
}

// routeSelfLoop draws a teardrop to the upper right of the node. Self-loops
// are not expected in circuit topologies but must never crash the engine.
func routeSelfLoop(p geom.Point, cfg Config) Routed {
	r := cfg.LoopRadius
	c1 := p.Add(geom.Pt(1.8*r, -1.8*r))
	c2 := p.Add(geom.Pt(-1.8*r, -1.8*r))
	top := p.Add(geom.Pt(0, -1.35*r)) // cubic midpoint for these controls
	return Routed{
		Path:   fmt.Sprintf("M %s C %s %s %s", coord(p), coord(c1), coord(c2), coord(p)),
		Points: []geom.Point{p, top, p},
		Curved: true,
		Arrow:  arrowAt(top, math.Pi),
	}
}

// score evaluates one candidate against the node set and everything routed
// so far.
func score(t *circuit.Topology, br *circuit.Branch, c Routed, pos map[string]geom.Point, routed map[string]Routed, done []*circuit.Branch, cfg Config) float64 {
	s := 0.0
	if c.Curved {
		s += CurvePenalty
	}

	for _, id := range t.NodeIDs() {
		if id == br.From || id == br.To {
			continue
		}
		d := distToPolyline(pos[id], c.Points)
		if d < cfg.NodeRadius {
			s += IntersectionPenalty
		} else if d < cfg.NodeClearance {
			s += ProximityPenalty * (cfg.NodeClearance - d)
		}
	}

	for _, other := range done {
		or := routed[other.ID]
		if crossesPolyline(c.Points, or.Points) {
			s += IntersectionPenalty
		}
		// Symmetry bonus: mirroring a sibling that shares both endpoints.
		if c.Curved && sameEndpoints(br, other) && mirrors(c.Offset, or.Offset) {
			s -= MirrorBonus
		}
	}
	return s
}

func sameEndpoints(a, b *circuit.Branch) bool {
	return (a.From == b.From && a.To == b.To) || (a.From == b.To && a.To == b.From)
}

// mirrors reports whether two apex offsets are opposite-signed and equal in
// magnitude within a small tolerance.
func mirrors(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	diff := a + b
	return diff < 1e-6 && diff > -1e-6
}

func distToPolyline(p geom.Point, line []geom.Point) float64 {
	best := geom.Dist(p, line[0])
	for i := 1; i < len(line); i++ {
		best = min(best, geom.PointSegmentDist(p, line[i-1], line[i]))
	}
	return best
}

func crossesPolyline(a, b []geom.Point) bool {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if geom.SegmentsCross(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

// quadSamples is the polyline resolution used for scoring curved paths.
const quadSamples = 8

func sampleQuad(a, ctrl, b geom.Point) []geom.Point {
	out := make([]geom.Point, 0, quadSamples+1)
	for i := 0; i <= quadSamples; i++ {
		out = append(out, geom.QuadPoint(a, ctrl, b, float64(i)/quadSamples))
	}
	return out
}

func arrowAt(p geom.Point, angle float64) Arrow {
	return Arrow{X: p.X, Y: p.Y, Angle: angle}
}

func coord(p geom.Point) string {
	return fmt.Sprintf("%s %s", trimFloat(p.X), trimFloat(p.Y))
}

// trimFloat formats a coordinate with two decimals and no trailing zeros,
// keeping path strings compact and stable.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
