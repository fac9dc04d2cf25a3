package geom

// QuadPoint evaluates the quadratic Bézier curve with endpoints p0, p2 and
// control point p1 at parameter t ∈ [0, 1].
func QuadPoint(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	// B(t) = (1-t)²·p0 + 2t(1-t)·p1 + t²·p2
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

// QuadTangent returns the (unnormalized) tangent vector of the quadratic
// Bézier curve at parameter t. At t=0.5 this is simply p2−p0, which makes
// arrow angles on a curved branch agree with the straight-line direction
// between its endpoints.
func QuadTangent(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	// B'(t) = 2(1-t)·(p1-p0) + 2t·(p2-p1)
	return p1.Sub(p0).Scale(2 * u).Add(p2.Sub(p1).Scale(2 * t))
}

// QuadControlFor returns the control point that makes the quadratic curve
// from a to b pass through through at t=0.5. Used by the router to bend a
// branch through a chosen apex point.
func QuadControlFor(a, b, through Point) Point {
	// B(0.5) = 0.25·a + 0.5·c + 0.25·b  ⇒  c = 2·through − (a+b)/2
	return through.Scale(2).Sub(Mid(a, b))
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min, Max Point
}

// RectAround returns the smallest Rect containing all pts. An empty input
// yields the zero Rect.
func RectAround(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Include(p)
	}
	return r
}

// Include returns r grown to contain p.
func (r Rect) Include(p Point) Rect {
	r.Min.X = min(r.Min.X, p.X)
	r.Min.Y = min(r.Min.Y, p.Y)
	r.Max.X = max(r.Max.X, p.X)
	r.Max.Y = max(r.Max.Y, p.Y)
	return r
}

// Pad returns r expanded by d on every side.
func (r Rect) Pad(d float64) Rect {
	r.Min.X -= d
	r.Min.Y -= d
	r.Max.X += d
	r.Max.Y += d
	return r
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center point of r.
func (r Rect) Center() Point { return Mid(r.Min, r.Max) }
