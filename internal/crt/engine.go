package crt

import (
	"fmt"
	"time"

	"crtsim/internal/geom"
	"crtsim/internal/phosphor"
)

// DisplayMode selects the scan architecture.
type DisplayMode int

const (
	Vector DisplayMode = iota
	Raster
)

func (m DisplayMode) String() string {
	if m == Raster {
		return "raster"
	}
	return "vector"
}

// ParseDisplayMode maps a config/flag string onto a display mode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "vector":
		return Vector, nil
	case "raster":
		return Raster, nil
	}
	return Vector, fmt.Errorf("unknown display mode %q", s)
}

// Inputs is everything the engine reacts to. Any change (mode, scene,
// tunables, a resize) goes through the same full cancel-and-restart path;
// there is no resize-only patching.
type Inputs struct {
	Display     DisplayMode
	Scene       []geom.Shape
	BeamSpeed   int
	Persistence time.Duration
	Viewport    geom.Viewport
}

type scheduler interface {
	Advance(now time.Time)
	Frame(now time.Time) Frame
}

// Engine is the lifecycle manager for one display instance. It owns the
// generation counter and exactly one scheduler at a time. A scheduler run
// captures its token at start; once Apply or Close bumps the counter,
// every Advance belonging to the stale run is a no-op, so a timer that
// fires after a restart cannot mutate the new display.
//
// The engine is single-threaded: one tick source drives it, and no state
// is shared across engine instances.
type Engine struct {
	gen    uint64
	decay  *phosphor.Controller
	sched  scheduler
	inputs Inputs
	closed bool
}

func NewEngine() *Engine {
	return &Engine{decay: phosphor.NewController()}
}

// Generation returns the token identifying the current scheduler run.
// Tick callbacks must carry it back.
func (e *Engine) Generation() uint64 {
	return e.gen
}

// Inputs returns the inputs of the current run.
func (e *Engine) Inputs() Inputs {
	return e.inputs
}

func (e *Engine) alive(token uint64) bool {
	return !e.closed && token == e.gen
}

// Apply cancels the running scheduler, clears its transient visuals, and
// starts a fresh run against the new inputs. A zero-area viewport
// suppresses instantiation entirely: the engine idles, grid only, until a
// valid size arrives.
func (e *Engine) Apply(in Inputs, now time.Time) {
	if e.closed {
		return
	}
	e.gen++ // supersede the old run before touching anything visible
	e.decay.Clear()
	e.sched = nil
	e.inputs = in
	if !in.Viewport.Valid() {
		return
	}
	switch in.Display {
	case Raster:
		e.sched = NewRasterScheduler(in.Scene, in.BeamSpeed, in.Persistence, e.gen, e.alive, now)
	default:
		e.sched = NewVectorScheduler(in.Scene, in.BeamSpeed, in.Persistence, e.decay, e.gen, e.alive, now)
	}
}

// Tick advances the current run. A stale token, from a tick scheduled
// before a restart that resolved after it, is a routine cancellation
// outcome and does nothing.
func (e *Engine) Tick(token uint64, now time.Time) {
	if !e.alive(token) || e.sched == nil {
		return
	}
	e.sched.Advance(now)
}

// Frame renders the current state. An idle or torn-down engine yields an
// empty frame; the surface still draws its static grid.
func (e *Engine) Frame(now time.Time) Frame {
	if e.closed || e.sched == nil {
		return Frame{}
	}
	return e.sched.Frame(now)
}

// Close tears the display down for good: the token is invalidated, all
// afterglow dropped, and nothing will be scheduled again.
func (e *Engine) Close() {
	e.gen++
	e.decay.Clear()
	e.sched = nil
	e.closed = true
}
