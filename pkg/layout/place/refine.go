package place

import (
	"maps"
	"math"
	"math/rand/v2"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
)

// CrossingPenalty is the planarity score contribution of one pairwise
// straight-line edge crossing.
const CrossingPenalty = 1000.0

// PlanarityScore evaluates a candidate placement: a large fixed penalty per
// pairwise straight-line branch crossing, summed over all branch pairs.
// Branches meeting at a shared node do not count as crossing. The function
// is pure: identical inputs always produce identical scores.
func PlanarityScore(pos map[string]geom.Point, branches []*circuit.Branch) float64 {
	score := 0.0
	for i, a := range branches {
		if a.SelfLoop() {
			continue
		}
		for _, b := range branches[i+1:] {
			if b.SelfLoop() {
				continue
			}
			if sharesEndpoint(a, b) {
				continue
			}
			if geom.SegmentsCross(pos[a.From], pos[a.To], pos[b.From], pos[b.To]) {
				score += CrossingPenalty
			}
		}
	}
	return score
}

func sharesEndpoint(a, b *circuit.Branch) bool {
	return a.From == b.From || a.From == b.To || a.To == b.From || a.To == b.To
}

// CountCrossings returns the number of pairwise straight-line crossings in
// the placement. Reported by the CLI after layout.
func CountCrossings(pos map[string]geom.Point, branches []*circuit.Branch) int {
	return int(PlanarityScore(pos, branches) / CrossingPenalty)
}

// PlaceForPlanarity runs the standard placement pipeline and then refines
// the result with simulated annealing against the planarity score: random
// single-node perturbations, unconditional acceptance of improvements,
// probabilistic acceptance of regressions with an exponentially decaying
// temperature, and retention of the best configuration seen.
//
// All randomness comes from a PCG generator seeded with seed, so the same
// topology, configuration, iteration count, and seed always produce the
// same positions.
func PlaceForPlanarity(t *circuit.Topology, cfg Config, iterations int, seed uint64) (map[string]geom.Point, geom.Rect) {
	pos, _ := Place(t, cfg)
	pos = Anneal(t, pos, cfg, iterations, seed)
	center(t, pos)
	return pos, bounds(t, pos)
}

// Anneal refines an existing placement in-place-style (the input map is not
// mutated; the refined copy is returned). Exposed separately so the engine
// can anneal the simplified graph between collapse and expand.
func Anneal(t *circuit.Topology, start map[string]geom.Point, cfg Config, iterations int, seed uint64) map[string]geom.Point {
	ids := t.NodeIDs()
	branches := t.Branches()
	if iterations <= 0 || len(ids) < 2 {
		return maps.Clone(start)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	curr := maps.Clone(start)
	best := maps.Clone(start)
	currScore := PlanarityScore(curr, branches)
	bestScore := currScore

	initialTemp := cfg.GridUnit * 4
	for i := range iterations {
		if currScore == 0 {
			break // already planar
		}
		// Exponential cooling over the iteration budget.
		temp := initialTemp * math.Pow(0.01, float64(i)/float64(iterations))

		id := ids[rng.IntN(len(ids))]
		old := curr[id]
		curr[id] = old.Add(geom.Pt(
			(rng.Float64()*2-1)*temp,
			(rng.Float64()*2-1)*temp,
		))

		next := PlanarityScore(curr, branches)
		accept := next <= currScore ||
			rng.Float64() < math.Exp((currScore-next)/max(temp, 1e-6))
		if !accept {
			curr[id] = old
			continue
		}
		currScore = next
		if currScore < bestScore {
			bestScore = currScore
			best = maps.Clone(curr)
		}
	}

	if cfg.GridUnit > 0 {
		snapped := maps.Clone(best)
		snapToGrid(t, snapped, cfg.GridUnit)
		// Keep the snap only if it does not reintroduce a crossing.
		if PlanarityScore(snapped, branches) <= bestScore {
			return snapped
		}
	}
	return best
}
