// Package geom provides the 2D geometric primitives used by the layout
// engine: vector helpers on top of gonum's spatial/r2 vectors, line-segment
// intersection tests, and quadratic Bézier evaluation.
//
// All functions are pure and operate on value types. The package holds no
// state and is safe for concurrent use.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D coordinate backed by an r2.Vec. gonum exposes its vector
// arithmetic as package-level functions; the methods below wrap them so
// callers can chain operations.
type Point r2.Vec

// Pt constructs a Point from its coordinates.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns the vector sum v + u.
func (v Point) Add(u Point) Point { return Point(r2.Add(r2.Vec(v), r2.Vec(u))) }

// Sub returns the vector difference v - u.
func (v Point) Sub(u Point) Point { return Point(r2.Sub(r2.Vec(v), r2.Vec(u))) }

// Scale returns v scaled by f.
func (v Point) Scale(f float64) Point { return Point(r2.Scale(f, r2.Vec(v))) }

// Dot returns the dot product of v and u.
func (v Point) Dot(u Point) float64 { return r2.Dot(r2.Vec(v), r2.Vec(u)) }

// Cross returns the z component of the cross product of v and u.
func (v Point) Cross(u Point) float64 { return r2.Cross(r2.Vec(v), r2.Vec(u)) }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 { return r2.Norm(r2.Vec(a.Sub(b))) }

// Lerp linearly interpolates between a and b. t=0 yields a, t=1 yields b.
func Lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).Scale(t))
}

// Mid returns the midpoint of a and b.
func Mid(a, b Point) Point { return Lerp(a, b, 0.5) }

// Perp returns v rotated 90° counter-clockwise. The result has the same
// magnitude as v.
func Perp(v Point) Point { return Point{X: -v.Y, Y: v.X} }

// Angle returns the direction of v in radians, in (-π, π].
func Angle(v Point) float64 { return math.Atan2(v.Y, v.X) }

// UnitBetween returns the unit vector pointing from a to b. If a and b
// coincide it returns the unit x-axis so callers always get a usable
// direction.
func UnitBetween(a, b Point) Point {
	d := b.Sub(a)
	if n := r2.Norm(r2.Vec(d)); n > 1e-12 {
		return d.Scale(1 / n)
	}
	return Point{X: 1}
}

// orient returns the signed area of the triangle (a, b, c): positive for a
// counter-clockwise turn, negative for clockwise, zero for collinear.
func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// SegmentsCross reports whether the open segments a1–a2 and b1–b2 properly
// intersect. Touching at a shared endpoint does not count as a crossing,
// which is the behavior the planarity score relies on: two branches meeting
// at a common node must not be penalized.
func SegmentsCross(a1, a2, b1, b2 Point) bool {
	const eps = 1e-9
	if samePoint(a1, b1) || samePoint(a1, b2) || samePoint(a2, b1) || samePoint(a2, b2) {
		return false
	}
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	return d1*d2 < -eps && d3*d4 < -eps
}

// SegmentIntersection returns the intersection point of segments a1–a2 and
// b1–b2, and whether they properly intersect. For non-crossing segments the
// zero Point is returned.
func SegmentIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	if !SegmentsCross(a1, a2, b1, b2) {
		return Point{}, false
	}
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	t := b1.Sub(a1).Cross(db) / denom
	return a1.Add(da.Scale(t)), true
}

// PointSegmentDist returns the distance from p to the closest point on the
// segment a–b.
func PointSegmentDist(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-12 {
		return Dist(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = max(0, min(1, t))
	return Dist(p, a.Add(ab.Scale(t)))
}

func samePoint(a, b Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
