// Package label chooses collision-free anchor points for node and edge
// labels. It works purely on point sets: the caller supplies the routed path
// and the obstacles to stay clear of.
package label

import (
	"github.com/azsce/schematic/pkg/geom"
)

// Proximity thresholds. A candidate closer than these to an obstacle is
// rejected in the first pass.
const (
	// WaypointClearance is the minimum distance a label keeps from any
	// waypoint (other nodes, path bend points).
	WaypointClearance = 12.0
	// EndpointClearance is the minimum distance a label keeps from the
	// source and target of its own path.
	EndpointClearance = 16.0
)

// Place picks a label anchor for a path. Candidates are the midpoint of
// every path segment plus the overall path midpoint, in that order. The
// first candidate whose distance to every waypoint exceeds
// WaypointClearance and whose distance to both endpoints exceeds
// EndpointClearance wins. When no candidate qualifies, the one maximizing
// the minimum distance to all waypoints is returned, so a label always gets
// an anchor.
func Place(points []geom.Point, waypoints []geom.Point, source, target geom.Point) geom.Point {
	candidates := candidatesFor(points, source, target)

	for _, c := range candidates {
		if clears(c, waypoints, source, target) {
			return c
		}
	}

	best := candidates[0]
	bestDist := minDistance(best, waypoints)
	for _, c := range candidates[1:] {
		if d := minDistance(c, waypoints); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// candidatesFor returns segment midpoints followed by the overall midpoint.
// A degenerate path (fewer than two points) falls back to the midpoint of
// source and target.
func candidatesFor(points []geom.Point, source, target geom.Point) []geom.Point {
	if len(points) < 2 {
		return []geom.Point{geom.Mid(source, target)}
	}
	out := make([]geom.Point, 0, len(points))
	for i := 1; i < len(points); i++ {
		out = append(out, geom.Mid(points[i-1], points[i]))
	}
	return append(out, pathMidpoint(points))
}

// pathMidpoint returns the point halfway along the polyline by arc length.
func pathMidpoint(points []geom.Point) geom.Point {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geom.Dist(points[i-1], points[i])
	}
	if total == 0 {
		return points[0]
	}
	remaining := total / 2
	for i := 1; i < len(points); i++ {
		seg := geom.Dist(points[i-1], points[i])
		if seg >= remaining {
			return geom.Lerp(points[i-1], points[i], remaining/seg)
		}
		remaining -= seg
	}
	return points[len(points)-1]
}

func clears(c geom.Point, waypoints []geom.Point, source, target geom.Point) bool {
	if geom.Dist(c, source) <= EndpointClearance || geom.Dist(c, target) <= EndpointClearance {
		return false
	}
	for _, w := range waypoints {
		if geom.Dist(c, w) <= WaypointClearance {
			return false
		}
	}
	return true
}

// NodeOffset is the distance from a node center to its label anchor.
const NodeOffset = 14.0

// PlaceNode anchors a node label away from the node's incident branches:
// opposite the average direction of its neighbors, or above-right for an
// isolated node. The result is deterministic in the order of neighbors.
func PlaceNode(node geom.Point, neighbors []geom.Point) geom.Point {
	if len(neighbors) == 0 {
		return node.Add(geom.Pt(NodeOffset, -NodeOffset))
	}
	var sum geom.Point
	for _, n := range neighbors {
		sum = sum.Add(geom.UnitBetween(node, n))
	}
	away := sum.Scale(-1)
	if geom.Dist(geom.Pt(0, 0), away) < 1e-6 {
		// Branches pull symmetrically; step aside perpendicular to the
		// first one instead.
		away = geom.Perp(geom.UnitBetween(node, neighbors[0]))
	}
	return node.Add(geom.UnitBetween(geom.Pt(0, 0), away).Scale(NodeOffset))
}

func minDistance(c geom.Point, waypoints []geom.Point) float64 {
	if len(waypoints) == 0 {
		return 0
	}
	best := geom.Dist(c, waypoints[0])
	for _, w := range waypoints[1:] {
		best = min(best, geom.Dist(c, w))
	}
	return best
}
