package geom

// Shape is an ordered polyline on the logical grid. An empty point list is
// a valid shape that schedulers skip. A Closed shape gains a virtual
// segment back to Points[0] at trace and render time; the closing point is
// never stored.
type Shape struct {
	ID     string
	Points []Point
	Closed bool
}

// TracePath returns the point sequence the beam actually walks: the stored
// points, plus the closing point for closed shapes with at least one edge.
func (s Shape) TracePath() []Point {
	if !s.Closed || len(s.Points) < 2 {
		return s.Points
	}
	path := make([]Point, len(s.Points)+1)
	copy(path, s.Points)
	path[len(s.Points)] = s.Points[0]
	return path
}

// PathLength is the total arclength of the trace path, closing segment
// included for closed shapes.
func (s Shape) PathLength() float64 {
	return PolylineLength(s.TracePath())
}

// PolylineLength sums the Euclidean lengths of consecutive segments.
func PolylineLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}

// PointAt returns the position at arclength d along pts, interpolating
// linearly inside the enclosing segment. d is clamped to [0, length].
// pts must be non-empty; zero-length segments are stepped over.
func PointAt(pts []Point, d float64) Point {
	if d <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		seg := pts[i-1].Dist(pts[i])
		if seg <= 0 {
			continue
		}
		if d <= seg {
			return pts[i-1].Lerp(pts[i], d/seg)
		}
		d -= seg
	}
	return pts[len(pts)-1]
}

// Prefix returns the part of pts revealed after walking arclength d from
// the start: every vertex passed in full plus the interpolated tip. The
// same walk that positions the beam reveals the stroke, so the two cannot
// drift apart.
func Prefix(pts []Point, d float64) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, 1, len(pts))
	out[0] = pts[0]
	if d <= 0 {
		return out
	}
	for i := 1; i < len(pts); i++ {
		seg := pts[i-1].Dist(pts[i])
		if seg <= 0 {
			continue
		}
		if d < seg {
			out = append(out, pts[i-1].Lerp(pts[i], d/seg))
			return out
		}
		out = append(out, pts[i])
		d -= seg
	}
	return out
}
