// Package phosphor times the afterglow of rendered strokes: the simulated
// persistence of a CRT phosphor coating.
package phosphor

import (
	"time"

	"crtsim/internal/geom"
)

// Curve maps normalized elapsed time in [0,1] to an opacity.
type Curve func(t float64) float64

// EaseOut is the vector-mode afterglow: convex, full brightness at the
// start and exactly transparent at the end of the window.
func EaseOut(t float64) float64 {
	if t <= 0 {
		return 1
	}
	if t >= 1 {
		return 0
	}
	r := 1 - t
	return r * r * r
}

// GhostFloor is the raster-mode refresh ghost: linear toward floor and
// never below it, so a raster scene never fades fully to black.
func GhostFloor(floor float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 1
		}
		if t >= 1 {
			return floor
		}
		return 1 - (1-floor)*t
	}
}

type glow struct {
	shape geom.Shape
	start time.Time
	dur   time.Duration
	curve Curve
}

// Glow is one live afterglow stroke with its opacity at the sampled time.
type Glow struct {
	Shape   geom.Shape
	Opacity float64
}

// Controller owns the set of fading strokes belonging to one scheduler
// run. The lifecycle manager clears it on every restart so no stale glow
// outlives its scene.
type Controller struct {
	glows []glow
}

func NewController() *Controller {
	return &Controller{}
}

// Deposit starts fading shape from full opacity along curve over dur.
// Empty shapes and non-positive windows are dropped.
func (c *Controller) Deposit(shape geom.Shape, start time.Time, dur time.Duration, curve Curve) {
	if dur <= 0 || len(shape.Points) == 0 {
		return
	}
	c.glows = append(c.glows, glow{shape: shape, start: start, dur: dur, curve: curve})
}

// Glows samples every live stroke at now, pruning the ones whose window
// has elapsed. Decays of several shapes routinely overlap in time.
func (c *Controller) Glows(now time.Time) []Glow {
	out := make([]Glow, 0, len(c.glows))
	live := c.glows[:0]
	for _, g := range c.glows {
		t := float64(now.Sub(g.start)) / float64(g.dur)
		if t >= 1 {
			continue
		}
		live = append(live, g)
		op := g.curve(t)
		if op <= 0 {
			continue
		}
		out = append(out, Glow{Shape: g.shape, Opacity: op})
	}
	c.glows = live
	return out
}

// Len reports how many strokes are still fading.
func (c *Controller) Len() int {
	return len(c.glows)
}

// Clear drops every pending glow. Called on scheduler teardown.
func (c *Controller) Clear() {
	c.glows = c.glows[:0]
}
