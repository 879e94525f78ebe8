package crt

import (
	"testing"
	"time"

	"crtsim/internal/geom"
	"crtsim/internal/phosphor"
)

func alwaysLive(uint64) bool { return true }

func squareScene() []geom.Shape {
	return []geom.Shape{{
		ID:     "square",
		Points: []geom.Point{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}},
		Closed: true,
	}}
}

func TestTraceDurationDecreasingInSpeed(t *testing.T) {
	prev := TraceDuration(100, 1)
	for speed := 2; speed <= 10; speed++ {
		cur := TraceDuration(100, speed)
		if cur >= prev {
			t.Fatalf("duration not strictly decreasing at speed %d: %v >= %v", speed, cur, prev)
		}
		prev = cur
	}
}

func TestTraceDurationIncreasingInLength(t *testing.T) {
	prev := TraceDuration(10, 5)
	for _, l := range []float64{20, 50, 100, 320, 1000} {
		cur := TraceDuration(l, 5)
		if cur <= prev {
			t.Fatalf("duration not increasing at length %f: %v <= %v", l, cur, prev)
		}
		prev = cur
	}
}

func TestTraceDurationClampsSpeed(t *testing.T) {
	if TraceDuration(100, -3) != TraceDuration(100, 1) {
		t.Error("speed below range should clamp to 1")
	}
	if TraceDuration(100, 99) != TraceDuration(100, 10) {
		t.Error("speed above range should clamp to 10")
	}
}

func TestVectorCycleClosedSquare(t *testing.T) {
	t0 := time.Unix(100, 0)
	decay := phosphor.NewController()
	v := NewVectorScheduler(squareScene(), 5, time.Second, decay, 1, alwaysLive, t0)

	if v.phase != phaseBlanking {
		t.Fatalf("expected Blanking on shape 0, got %v", v.phase)
	}
	if len(v.path) != 5 {
		t.Fatalf("closed 4-point polygon should trace 5 points (4 edges + closing), got %d", len(v.path))
	}
	if v.length != 320 {
		t.Fatalf("expected perimeter 320, got %f", v.length)
	}

	v.Advance(t0.Add(blankDelay))
	if v.phase != phaseTracing {
		t.Fatalf("expected Tracing after blanking, got %v", v.phase)
	}

	traceDur := TraceDuration(320, 5)
	traceStart := t0.Add(blankDelay)

	// Quarter way in, the beam must sit exactly one edge and a quarter...
	// at d = 80: the end of the first edge.
	quarter := traceStart.Add(traceDur / 4)
	f := v.Frame(quarter)
	if f.Beam == nil {
		t.Fatal("no beam marker while tracing")
	}
	if f.Beam.Dist(geom.Point{X: 90, Y: 10}) > 1e-6 {
		t.Errorf("beam at quarter trace = %v, want corner {90,10}", *f.Beam)
	}

	// Trace completes: the stroke moves into the phosphor and the lone
	// shape's cycle ends in the inter-cycle gap.
	v.Advance(traceStart.Add(traceDur))
	if decay.Len() != 1 {
		t.Fatalf("completed stroke not handed to phosphor, %d glows", decay.Len())
	}
	if v.phase != phaseCycleGap {
		t.Fatalf("expected CycleGap after last shape, got %v", v.phase)
	}

	// And the gap ends back at shape 0, blanking again.
	v.Advance(traceStart.Add(traceDur).Add(CycleGap(5)))
	if v.phase != phaseBlanking || v.shape != 0 {
		t.Fatalf("cycle did not restart at shape 0: phase %v shape %d", v.phase, v.shape)
	}
}

func TestVectorBeamTracksStrokeTip(t *testing.T) {
	t0 := time.Unix(0, 0)
	decay := phosphor.NewController()
	v := NewVectorScheduler(squareScene(), 3, time.Second, decay, 1, alwaysLive, t0)
	v.Advance(t0.Add(blankDelay))

	traceDur := TraceDuration(320, 3)
	for i := 1; i < 10; i++ {
		now := t0.Add(blankDelay).Add(traceDur * time.Duration(i) / 10)
		f := v.Frame(now)
		if f.Beam == nil {
			t.Fatalf("no beam at step %d", i)
		}
		partial := f.Strokes[len(f.Strokes)-1]
		tip := partial.Points[len(partial.Points)-1]
		if tip.Dist(*f.Beam) > 1e-9 {
			t.Fatalf("stroke tip %v drifted from beam %v at step %d", tip, *f.Beam, i)
		}
	}
}

func TestVectorEmptySceneStaysIdle(t *testing.T) {
	t0 := time.Unix(0, 0)
	for _, scene := range [][]geom.Shape{nil, {}, {{ID: "a"}, {ID: "b"}}} {
		decay := phosphor.NewController()
		v := NewVectorScheduler(scene, 5, time.Second, decay, 1, alwaysLive, t0)
		if v.phase != phaseIdle {
			t.Fatalf("empty scene should be Idle, got %v", v.phase)
		}
		v.Advance(t0.Add(time.Hour))
		f := v.Frame(t0.Add(time.Hour))
		if len(f.Strokes) != 0 || f.Beam != nil {
			t.Errorf("idle scheduler produced visuals: %+v", f)
		}
	}
}

func TestVectorSkipsEmptyShapes(t *testing.T) {
	t0 := time.Unix(0, 0)
	scene := []geom.Shape{
		{ID: "empty"},
		{ID: "line", Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
	}
	decay := phosphor.NewController()
	v := NewVectorScheduler(scene, 5, time.Second, decay, 1, alwaysLive, t0)
	if v.shape != 1 {
		t.Fatalf("scheduler should skip the empty shape, traces shape %d", v.shape)
	}
}

func TestVectorSinglePointFlash(t *testing.T) {
	t0 := time.Unix(0, 0)
	scene := []geom.Shape{{ID: "dot", Points: []geom.Point{{X: 42, Y: 17}}}}
	decay := phosphor.NewController()
	v := NewVectorScheduler(scene, 5, time.Second, decay, 1, alwaysLive, t0)

	v.Advance(t0.Add(blankDelay))
	if v.phase != phaseFlash {
		t.Fatalf("single-point shape should flash, got phase %v", v.phase)
	}

	glows := decay.Glows(t0.Add(blankDelay))
	if len(glows) != 1 || len(glows[0].Shape.Points) != 1 {
		t.Fatalf("flash glow missing: %+v", glows)
	}

	f := v.Frame(t0.Add(blankDelay + flashFade/2))
	if f.Beam == nil || f.Beam.Dist(geom.Point{X: 42, Y: 17}) > 1e-9 {
		t.Errorf("beam should rest on the flash point, got %+v", f.Beam)
	}

	// The flash never enters Tracing; it moves straight on.
	v.Advance(t0.Add(blankDelay + flashFade))
	if v.phase == phaseTracing {
		t.Error("flash shape entered Tracing")
	}
}

func TestVectorCoincidentPointsFlash(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := geom.Point{X: 5, Y: 5}
	scene := []geom.Shape{{ID: "collapsed", Points: []geom.Point{p, p, p}}}
	decay := phosphor.NewController()
	v := NewVectorScheduler(scene, 5, time.Second, decay, 1, alwaysLive, t0)

	v.Advance(t0.Add(blankDelay))
	if v.phase != phaseFlash {
		t.Fatalf("zero-length path should flash, not trace; got %v", v.phase)
	}
}

func TestVectorSceneOrder(t *testing.T) {
	t0 := time.Unix(0, 0)
	scene := []geom.Shape{
		{ID: "first", Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{ID: "second", Points: []geom.Point{{X: 0, Y: 10}, {X: 10, Y: 10}}},
	}
	decay := phosphor.NewController()
	v := NewVectorScheduler(scene, 5, time.Hour, decay, 1, alwaysLive, t0)

	end1 := t0.Add(blankDelay).Add(TraceDuration(10, 5))
	v.Advance(end1)
	if v.shape != 1 || v.phase != phaseBlanking {
		t.Fatalf("after first trace expected Blanking on shape 1, got phase %v shape %d", v.phase, v.shape)
	}
	// Shape 0 keeps decaying while shape 1 is being set up.
	if decay.Len() != 1 {
		t.Errorf("first stroke should decay concurrently, %d glows", decay.Len())
	}
}

func TestVectorSupersededHaltsWithoutMutation(t *testing.T) {
	t0 := time.Unix(0, 0)
	live := true
	decay := phosphor.NewController()
	v := NewVectorScheduler(squareScene(), 5, time.Second, decay, 7, func(tok uint64) bool { return live && tok == 7 }, t0)

	v.Advance(t0.Add(blankDelay)) // mid-run, tracing now
	live = false

	// The trace "completes" long after cancellation: no deposit, no
	// transition may happen.
	v.Advance(t0.Add(time.Hour))
	if decay.Len() != 0 {
		t.Error("superseded scheduler deposited a stroke")
	}
	if v.phase != phaseTracing {
		t.Errorf("superseded scheduler kept transitioning: %v", v.phase)
	}
}
