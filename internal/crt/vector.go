package crt

import (
	"time"

	"crtsim/internal/geom"
	"crtsim/internal/phosphor"
)

// Timing constants. The exact numbers are calibration, not contract: trace
// time must grow with path length and shrink with beam speed, and blanking
// must not depend on speed at all.
const (
	blankDelay   = 60 * time.Millisecond
	flashFade    = 220 * time.Millisecond
	traceUnit    = 45 * time.Millisecond // per logical unit at speed 1
	cycleGapBase = 1200 * time.Millisecond
)

// TraceDuration is how long the beam spends revealing a path of length l
// at the given speed. Strictly decreasing in speed, increasing in l.
func TraceDuration(l float64, speed int) time.Duration {
	return time.Duration(l * float64(traceUnit) / float64(clampSpeed(speed)))
}

// CycleGap is the pause between full scene cycles; faster beams idle less.
func CycleGap(speed int) time.Duration {
	return cycleGapBase / time.Duration(clampSpeed(speed))
}

func clampSpeed(speed int) int {
	if speed < 1 {
		return 1
	}
	if speed > 10 {
		return 10
	}
	return speed
}

type vectorPhase int

const (
	phaseIdle vectorPhase = iota
	phaseBlanking
	phaseFlash
	phaseTracing
	phaseCycleGap
)

// VectorScheduler traces shapes point to point, one at a time, strictly in
// scene order, while finished strokes decay concurrently in the phosphor
// controller. It never finishes on its own: the cycle restarts at shape 0
// until the generation token is superseded.
//
// It is advanced only by Advance calls from a single external tick source.
// There are no self-rescheduling callbacks; cancellation is one token
// check.
type VectorScheduler struct {
	token uint64
	live  func(uint64) bool

	scene       []geom.Shape
	speed       int
	persistence time.Duration
	decay       *phosphor.Controller

	phase      vectorPhase
	shape      int
	path       []geom.Point // trace path of the current shape, closing point included
	length     float64
	phaseStart time.Time
	phaseDur   time.Duration
	beam       geom.Point
}

// NewVectorScheduler starts a run over scene at now. The scene is owned by
// this run and must not be mutated while it is live.
func NewVectorScheduler(scene []geom.Shape, speed int, persistence time.Duration, decay *phosphor.Controller, token uint64, live func(uint64) bool, now time.Time) *VectorScheduler {
	v := &VectorScheduler{
		token:       token,
		live:        live,
		scene:       scene,
		speed:       clampSpeed(speed),
		persistence: persistence,
		decay:       decay,
		phase:       phaseIdle,
	}
	if v.firstTraceable(0) < 0 {
		return v // nothing to trace, stay idle
	}
	v.enterShape(0, now)
	return v
}

// firstTraceable returns the index of the first shape at or after i with
// any points, or -1. Empty shapes are valid no-ops.
func (v *VectorScheduler) firstTraceable(i int) int {
	for ; i < len(v.scene); i++ {
		if len(v.scene[i].Points) > 0 {
			return i
		}
	}
	return -1
}

func (v *VectorScheduler) enterShape(i int, now time.Time) {
	next := v.firstTraceable(i)
	if next < 0 {
		v.phase = phaseCycleGap
		v.phaseStart = now
		v.phaseDur = CycleGap(v.speed)
		return
	}
	v.shape = next
	v.path = v.scene[next].TracePath()
	v.length = geom.PolylineLength(v.path)
	// The beam jumps to the start instantly and invisibly; the blanking
	// wait stands in for deflection settling and never scales with speed.
	v.beam = v.path[0]
	v.phase = phaseBlanking
	v.phaseStart = now
	v.phaseDur = blankDelay
}

// Advance settles every phase boundary that elapsed up to now. A slow tick
// may cross several boundaries; they are processed in order at their exact
// boundary times so the FSM never drifts. The token is re-checked after
// every suspension before any further mutation.
func (v *VectorScheduler) Advance(now time.Time) {
	if !v.live(v.token) || v.phase == phaseIdle {
		return
	}
	for now.Sub(v.phaseStart) >= v.phaseDur {
		if !v.live(v.token) {
			return
		}
		boundary := v.phaseStart.Add(v.phaseDur)
		switch v.phase {
		case phaseBlanking:
			if len(v.path) < 2 || v.length == 0 {
				// Degenerate shape: a brief flash instead of a trace.
				v.decay.Deposit(geom.Shape{Points: []geom.Point{v.beam}}, boundary, flashFade, phosphor.EaseOut)
				v.phase = phaseFlash
				v.phaseStart = boundary
				v.phaseDur = flashFade
				continue
			}
			v.phase = phaseTracing
			v.phaseStart = boundary
			v.phaseDur = TraceDuration(v.length, v.speed)
		case phaseTracing:
			// Hand the fully revealed stroke to the phosphor; its decay
			// overlaps the blanking and tracing of the following shapes.
			v.decay.Deposit(v.scene[v.shape], boundary, v.persistence, phosphor.EaseOut)
			v.enterShape(v.shape+1, boundary)
		case phaseFlash:
			v.enterShape(v.shape+1, boundary)
		case phaseCycleGap:
			v.enterShape(0, boundary)
		}
	}
}

// Frame renders the current beam state plus all live afterglow.
func (v *VectorScheduler) Frame(now time.Time) Frame {
	f := Frame{Strokes: glowStrokes(v.decay, now)}
	switch v.phase {
	case phaseTracing:
		frac := float64(now.Sub(v.phaseStart)) / float64(v.phaseDur)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		// One arclength walk drives both the revealed stroke and the beam
		// marker, so the two cannot drift apart.
		d := frac * v.length
		beam := geom.PointAt(v.path, d)
		f.Strokes = append(f.Strokes, Stroke{Points: geom.Prefix(v.path, d), Opacity: 1})
		f.Beam = &beam
	case phaseFlash:
		beam := v.beam
		f.Beam = &beam
	}
	return f
}
