package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	a, b := Pt(3, 4), Pt(1, -2)

	if got := a.Add(b); got != Pt(4, 2) {
		t.Errorf("Add = %v, want (4, 2)", got)
	}
	if got := a.Sub(b); got != Pt(2, 6) {
		t.Errorf("Sub = %v, want (2, 6)", got)
	}
	if got := a.Scale(2); got != Pt(6, 8) {
		t.Errorf("Scale = %v, want (6, 8)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross = %v, want -10", got)
	}
	if got := Dist(a, Pt(0, 0)); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}

	// Chained operations stay on the Point type.
	if got := a.Sub(b).Scale(0.5).Add(b); got != Pt(2, 1) {
		t.Errorf("chained = %v, want (2, 1)", got)
	}
}

func TestSegmentsCross(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Point
		want           bool
	}{
		{
			name: "PlainX",
			a1:   Pt(0, 0), a2: Pt(10, 10),
			b1: Pt(0, 10), b2: Pt(10, 0),
			want: true,
		},
		{
			name: "ParallelHorizontal",
			a1:   Pt(0, 0), a2: Pt(10, 0),
			b1: Pt(0, 5), b2: Pt(10, 5),
			want: false,
		},
		{
			name: "SharedEndpointNotACrossing",
			a1:   Pt(0, 0), a2: Pt(10, 0),
			b1: Pt(0, 0), b2: Pt(0, 10),
			want: false,
		},
		{
			name: "TouchingMidpointNotProper",
			a1:   Pt(0, 0), a2: Pt(10, 0),
			b1: Pt(5, 0), b2: Pt(5, 10),
			want: false,
		},
		{
			name: "DisjointFarApart",
			a1:   Pt(0, 0), a2: Pt(1, 1),
			b1: Pt(5, 5), b2: Pt(6, 6),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsCross(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("SegmentsCross = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("intersection = (%v, %v), want (5, 5)", p.X, p.Y)
	}

	if _, ok := SegmentIntersection(Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1)); ok {
		t.Error("parallel segments must not intersect")
	}
}

func TestPointSegmentDist(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"AboveMiddle", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"BeyondEnd", Pt(13, 4), Pt(0, 0), Pt(10, 0), 5},
		{"OnSegment", Pt(5, 0), Pt(0, 0), Pt(10, 0), 0},
		{"DegenerateSegment", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointSegmentDist(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PointSegmentDist = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuadBezier(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	apex := Pt(5, 5)
	c := QuadControlFor(a, b, apex)

	got := QuadPoint(a, c, b, 0.5)
	if math.Abs(got.X-apex.X) > 1e-9 || math.Abs(got.Y-apex.Y) > 1e-9 {
		t.Errorf("curve misses apex: got (%v, %v)", got.X, got.Y)
	}

	// Endpoints are exact.
	if p := QuadPoint(a, c, b, 0); p != a {
		t.Errorf("t=0 gives %v, want %v", p, a)
	}
	if p := QuadPoint(a, c, b, 1); p != b {
		t.Errorf("t=1 gives %v, want %v", p, b)
	}

	// Midpoint tangent of a symmetric arc is parallel to the chord.
	tan := QuadTangent(a, c, b, 0.5)
	if math.Abs(Angle(tan)) > 1e-9 {
		t.Errorf("midpoint tangent angle = %v, want 0", Angle(tan))
	}
}

func TestRect(t *testing.T) {
	r := RectAround([]Point{Pt(1, 2), Pt(-3, 8), Pt(4, -1)})
	if r.Min.X != -3 || r.Min.Y != -1 || r.Max.X != 4 || r.Max.Y != 8 {
		t.Fatalf("unexpected bounds: %+v", r)
	}
	p := r.Pad(2)
	if p.Width() != r.Width()+4 || p.Height() != r.Height()+4 {
		t.Errorf("pad: got %vx%v", p.Width(), p.Height())
	}
}
