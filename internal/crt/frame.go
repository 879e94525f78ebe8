// Package crt holds the scan schedulers of the simulated display: the
// vector beam tracer, the raster sweep, and the lifecycle engine that owns
// exactly one of them at a time.
package crt

import (
	"time"

	"crtsim/internal/geom"
	"crtsim/internal/phosphor"
)

// GridStep is the logical spacing of the static background grid lines.
const GridStep = 10.0

// Stroke is one renderable line path. A single-point stroke is a dot (a
// blanking flash or a glyph tittle). Opacity 1 is a freshly excited
// phosphor; renderers dim toward the background from there.
type Stroke struct {
	Points  []geom.Point
	Opacity float64
	Dashed  bool
}

// Frame is the engine output for one tick: everything a 2D surface needs
// to draw on top of the static grid. Terminal, raylib and SVG front-ends
// all consume the same frame.
type Frame struct {
	Strokes []Stroke
	// Beam is the vector beam marker in logical coordinates; nil while
	// blanking, idle, or in raster mode.
	Beam *geom.Point
	// Scan is the raster scanline's logical y; nil in vector mode.
	Scan *float64
}

func glowStrokes(c *phosphor.Controller, now time.Time) []Stroke {
	glows := c.Glows(now)
	strokes := make([]Stroke, 0, len(glows)+1)
	for _, g := range glows {
		strokes = append(strokes, Stroke{Points: g.Shape.TracePath(), Opacity: g.Opacity})
	}
	return strokes
}
