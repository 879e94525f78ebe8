package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crtsim/internal/crt"
	"crtsim/internal/geom"
)

// Intensities of the fixed furniture. Strokes carry their own opacity.
const (
	gridLevel = 0.14
	scanLevel = 0.55
	beamLevel = 1.0
)

// Margin is the device-space border kept free around the logical square,
// in canvas sub-pixels.
const Margin = 4.0

// DrawFrame rasterizes one engine frame onto the canvas: static grid
// first, then afterglow and live strokes, then the beam or scanline
// marker. The same geom mapping positions strokes and markers, so the TUI
// agrees with every other front-end about where things are.
func DrawFrame(c *Canvas, f crt.Frame) {
	vp := geom.Viewport{W: float64(c.Width * 2), H: float64(c.Height * 4)}
	if !vp.Valid() {
		return
	}

	drawGrid(c, vp)

	for _, s := range f.Strokes {
		drawStroke(c, s, vp)
	}

	if f.Scan != nil {
		left := device(geom.Point{X: 0, Y: *f.Scan}, vp)
		right := device(geom.Point{X: geom.LogicalMax, Y: *f.Scan}, vp)
		c.DrawLine(int(left.X), int(left.Y), int(right.X), int(right.Y), scanLevel, false)
	}

	if f.Beam != nil {
		b := device(*f.Beam, vp)
		drawBeam(c, int(b.X), int(b.Y))
	}
}

func device(p geom.Point, vp geom.Viewport) geom.Point {
	return geom.ToDevice(p, vp, Margin)
}

func drawGrid(c *Canvas, vp geom.Viewport) {
	for v := 0.0; v <= geom.LogicalMax; v += crt.GridStep {
		top := device(geom.Point{X: v, Y: 0}, vp)
		bottom := device(geom.Point{X: v, Y: geom.LogicalMax}, vp)
		c.DrawLine(int(top.X), int(top.Y), int(bottom.X), int(bottom.Y), gridLevel, true)

		left := device(geom.Point{X: 0, Y: v}, vp)
		right := device(geom.Point{X: geom.LogicalMax, Y: v}, vp)
		c.DrawLine(int(left.X), int(left.Y), int(right.X), int(right.Y), gridLevel, true)
	}
}

func drawStroke(c *Canvas, s crt.Stroke, vp geom.Viewport) {
	if len(s.Points) == 0 || s.Opacity <= 0 {
		return
	}
	if len(s.Points) == 1 {
		// A dot: a blanking flash or a glyph tittle.
		p := device(s.Points[0], vp)
		x, y := int(p.X), int(p.Y)
		c.Set(x, y, s.Opacity)
		c.Set(x+1, y, s.Opacity)
		c.Set(x, y+1, s.Opacity)
		c.Set(x+1, y+1, s.Opacity)
		return
	}
	prev := device(s.Points[0], vp)
	for _, lp := range s.Points[1:] {
		cur := device(lp, vp)
		c.DrawLine(int(prev.X), int(prev.Y), int(cur.X), int(cur.Y), s.Opacity, s.Dashed)
		prev = cur
	}
}

func drawBeam(c *Canvas, x, y int) {
	c.Set(x, y, beamLevel)
	c.Set(x-1, y, beamLevel)
	c.Set(x+1, y, beamLevel)
	c.Set(x, y-1, beamLevel)
	c.Set(x, y+1, beamLevel)
}

// Render colors the canvas through the theme's shade ramp, batching runs
// of equally bright cells into single styled segments.
func (c *Canvas) Render(ramp []lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		col := 0
		for col < c.Width {
			bucket := shadeBucket(c.Level[row][col], len(ramp))
			run := col
			for run < c.Width && shadeBucket(c.Level[row][run], len(ramp)) == bucket {
				run++
			}
			segment := string(c.Grid[row][col:run])
			if bucket < 0 {
				b.WriteString(segment)
			} else {
				b.WriteString(ramp[bucket].Render(segment))
			}
			col = run
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shadeBucket(level float64, n int) int {
	if level <= 0 {
		return -1
	}
	bucket := int(level * float64(n))
	if bucket >= n {
		bucket = n - 1
	}
	return bucket
}
