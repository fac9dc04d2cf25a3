package label

import (
	"testing"

	"github.com/azsce/schematic/pkg/geom"
)

func TestPlacePrefersClearSegmentMidpoint(t *testing.T) {
	// Long horizontal path, no obstacles: the first segment midpoint wins.
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)}
	got := Place(points, nil, points[0], points[2])
	want := geom.Pt(50, 0)
	if got != want {
		t.Errorf("Place = %+v, want %+v", got, want)
	}
}

func TestPlaceSkipsCrowdedCandidates(t *testing.T) {
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)}
	// Obstacle sitting on the first segment midpoint pushes the label to
	// the second segment.
	waypoints := []geom.Point{geom.Pt(50, 0)}
	got := Place(points, waypoints, points[0], points[2])
	want := geom.Pt(150, 0)
	if got != want {
		t.Errorf("Place = %+v, want %+v", got, want)
	}
}

func TestPlaceFallsBackToFarthestCandidate(t *testing.T) {
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(20, 0)}
	// Endpoints are closer than EndpointClearance to every candidate, so
	// no candidate qualifies; the fallback must still return something
	// sensible. Here the only candidates are the segment midpoint and the
	// identical overall midpoint.
	waypoints := []geom.Point{geom.Pt(0, 0), geom.Pt(20, 0)}
	got := Place(points, waypoints, points[0], points[1])
	want := geom.Pt(10, 0)
	if got != want {
		t.Errorf("Place = %+v, want %+v", got, want)
	}
}

func TestPlaceDegeneratePath(t *testing.T) {
	src, dst := geom.Pt(0, 0), geom.Pt(40, 0)
	got := Place(nil, nil, src, dst)
	if got != geom.Mid(src, dst) {
		t.Errorf("Place on empty path = %+v", got)
	}
}

func TestPathMidpointByArcLength(t *testing.T) {
	// Uneven segments: 10 then 30 units; halfway (20) lies in the second.
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(40, 0)}
	got := pathMidpoint(points)
	if got != geom.Pt(20, 0) {
		t.Errorf("pathMidpoint = %+v, want (20, 0)", got)
	}
}
