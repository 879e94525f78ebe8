package geom

// LogicalMax is the extent of the logical square on both axes.
const LogicalMax = 100.0

// Viewport is the device pixel area available for rendering.
type Viewport struct {
	W, H float64
}

// Valid reports whether the viewport has renderable area. With a zero or
// negative dimension the mapping is undefined and callers must not render.
func (v Viewport) Valid() bool {
	return v.W > 0 && v.H > 0
}

// ToDevice maps a logical point into device pixels, keeping margin pixels
// free on every side. Linear and monotonic on each axis; the same mapping
// renders shapes and positions the beam marker, so a point converted back
// through ToLogical lands where it started.
func ToDevice(p Point, vp Viewport, margin float64) Point {
	return Point{
		X: margin + p.X/LogicalMax*(vp.W-2*margin),
		Y: margin + p.Y/LogicalMax*(vp.H-2*margin),
	}
}

// ToLogical inverts ToDevice and clamps the result onto the logical square,
// so pointer input outside the drawable area snaps to the nearest edge.
func ToLogical(p Point, vp Viewport, margin float64) Point {
	return Point{
		X: clamp((p.X-margin)/(vp.W-2*margin)*LogicalMax, 0, LogicalMax),
		Y: clamp((p.Y-margin)/(vp.H-2*margin)*LogicalMax, 0, LogicalMax),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
