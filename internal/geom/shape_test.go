package geom

import (
	"math"
	"testing"
)

func TestPathLengthOpen(t *testing.T) {
	s := Shape{Points: []Point{{0, 0}, {30, 40}, {30, 100}}}
	if got := s.PathLength(); math.Abs(got-110) > 1e-9 {
		t.Errorf("expected length 110, got %f", got)
	}
}

func TestPathLengthClosedAddsClosingSegment(t *testing.T) {
	// 60x80 right triangle: 60 + 80 + 100 with the closing edge.
	s := Shape{Points: []Point{{0, 0}, {60, 0}, {60, 80}}, Closed: true}
	if got := s.PathLength(); math.Abs(got-240) > 1e-9 {
		t.Errorf("expected length 240, got %f", got)
	}
}

func TestPathLengthDegenerate(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
	}{
		{"empty", Shape{}},
		{"single point", Shape{Points: []Point{{10, 10}}}},
		{"single point closed", Shape{Points: []Point{{10, 10}}, Closed: true}},
		{"coincident points", Shape{Points: []Point{{5, 5}, {5, 5}, {5, 5}}}},
	}
	for _, tt := range tests {
		if got := tt.s.PathLength(); got != 0 {
			t.Errorf("%s: expected zero length, got %f", tt.name, got)
		}
	}
}

func TestTracePathClosed(t *testing.T) {
	s := Shape{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	path := s.TracePath()
	if len(path) != 5 {
		t.Fatalf("expected 5 points (4 edges + closing), got %d", len(path))
	}
	if path[4] != path[0] {
		t.Errorf("closing point should equal first point, got %v", path[4])
	}
	// The stored shape must stay untouched.
	if len(s.Points) != 4 {
		t.Errorf("closing point leaked into stored shape: %d points", len(s.Points))
	}
}

func TestPointAt(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	tests := []struct {
		d    float64
		want Point
	}{
		{-5, Point{0, 0}},
		{0, Point{0, 0}},
		{5, Point{5, 0}},
		{10, Point{10, 0}},
		{15, Point{10, 5}},
		{20, Point{10, 10}},
		{99, Point{10, 10}},
	}
	for _, tt := range tests {
		got := PointAt(pts, tt.d)
		if got.Dist(tt.want) > 1e-9 {
			t.Errorf("PointAt(%f) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestPointAtSkipsZeroSegments(t *testing.T) {
	pts := []Point{{0, 0}, {0, 0}, {10, 0}}
	got := PointAt(pts, 5)
	if got.Dist(Point{5, 0}) > 1e-9 {
		t.Errorf("expected {5,0}, got %v", got)
	}
}

func TestPrefix(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}

	head := Prefix(pts, 0)
	if len(head) != 1 || head[0] != pts[0] {
		t.Fatalf("zero-length prefix should be just the start, got %v", head)
	}

	mid := Prefix(pts, 15)
	if len(mid) != 3 {
		t.Fatalf("expected 3 points, got %d", len(mid))
	}
	if mid[2].Dist(Point{10, 5}) > 1e-9 {
		t.Errorf("expected tip {10,5}, got %v", mid[2])
	}

	full := Prefix(pts, 100)
	if len(full) != 3 || full[2] != pts[2] {
		t.Errorf("overlong prefix should cover the whole path, got %v", full)
	}
}

func TestPrefixTipMatchesPointAt(t *testing.T) {
	pts := []Point{{0, 0}, {30, 40}, {60, 40}, {60, 0}}
	total := PolylineLength(pts)
	for i := 0; i <= 20; i++ {
		d := total * float64(i) / 20
		pre := Prefix(pts, d)
		tip := pre[len(pre)-1]
		if tip.Dist(PointAt(pts, d)) > 1e-9 {
			t.Fatalf("at d=%f stroke tip %v diverges from beam %v", d, tip, PointAt(pts, d))
		}
	}
}
