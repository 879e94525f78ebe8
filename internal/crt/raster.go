package crt

import (
	"time"

	"crtsim/internal/geom"
	"crtsim/internal/phosphor"
)

const (
	sweepBase = 2400 * time.Millisecond
	// ghostFloor keeps a raster scene from ever fading fully to black;
	// each sweep re-excites the phosphor back to full brightness.
	ghostFloor = 0.35
)

// SweepDuration is one top-to-bottom scan at the given speed.
func SweepDuration(speed int) time.Duration {
	return sweepBase / time.Duration(clampSpeed(speed))
}

// RasterScheduler renders the whole scene at once as dashed, pixelated
// strokes and sweeps a scanline over it. The sweep and the ghosting decay
// share one cycle origin, so both restart in the same tick: a sawtooth,
// never a ping-pong.
type RasterScheduler struct {
	token uint64
	live  func(uint64) bool

	scene       []geom.Shape
	sweep       time.Duration
	ghostWindow time.Duration
	ghost       phosphor.Curve

	cycleStart time.Time
}

// NewRasterScheduler starts a run over scene with the first sweep
// beginning at now.
func NewRasterScheduler(scene []geom.Shape, speed int, persistence time.Duration, token uint64, live func(uint64) bool, now time.Time) *RasterScheduler {
	sweep := SweepDuration(speed)
	return &RasterScheduler{
		token: token,
		live:  live,
		scene: scene,
		sweep: sweep,
		// Brightness recovers with each refresh, so the decay window spans
		// the configured persistence plus one full sweep.
		ghostWindow: persistence + sweep,
		ghost:       phosphor.GhostFloor(ghostFloor),
		cycleStart:  now,
	}
}

// Advance rolls the shared cycle origin forward over every sweep boundary
// that elapsed. The token is re-checked at each boundary.
func (r *RasterScheduler) Advance(now time.Time) {
	if !r.live(r.token) {
		return
	}
	for now.Sub(r.cycleStart) >= r.sweep {
		if !r.live(r.token) {
			return
		}
		r.cycleStart = r.cycleStart.Add(r.sweep)
	}
}

// ScanY is the scanline's logical y at now: 0 at each cycle start,
// strictly increasing within a sweep, resetting discontinuously at the
// boundary and never reaching past the bottom edge.
func (r *RasterScheduler) ScanY(now time.Time) float64 {
	el := now.Sub(r.cycleStart)
	if el < 0 {
		return 0
	}
	frac := float64(el%r.sweep) / float64(r.sweep)
	return frac * geom.LogicalMax
}

// Frame renders the static dashed scene at the current ghost level plus
// the scanline marker.
func (r *RasterScheduler) Frame(now time.Time) Frame {
	el := now.Sub(r.cycleStart)
	if el < 0 {
		el = 0
	}
	op := r.ghost(float64(el) / float64(r.ghostWindow))

	f := Frame{Strokes: make([]Stroke, 0, len(r.scene))}
	for _, s := range r.scene {
		if len(s.Points) == 0 {
			continue
		}
		f.Strokes = append(f.Strokes, Stroke{Points: s.TracePath(), Opacity: op, Dashed: true})
	}
	y := r.ScanY(now)
	f.Scan = &y
	return f
}
