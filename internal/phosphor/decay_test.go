package phosphor

import (
	"testing"
	"time"

	"crtsim/internal/geom"
)

func TestEaseOutEndpoints(t *testing.T) {
	if got := EaseOut(0); got != 1 {
		t.Errorf("EaseOut(0) = %f, want 1", got)
	}
	if got := EaseOut(1); got != 0 {
		t.Errorf("EaseOut(1) = %f, want 0", got)
	}
	if got := EaseOut(-0.5); got != 1 {
		t.Errorf("EaseOut before start = %f, want 1", got)
	}
	if got := EaseOut(2); got != 0 {
		t.Errorf("EaseOut past end = %f, want 0", got)
	}
}

func TestEaseOutConvex(t *testing.T) {
	// Convex fade: always below the straight line between endpoints.
	for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		if EaseOut(x) >= 1-x {
			t.Errorf("EaseOut(%f) = %f, not below linear %f", x, EaseOut(x), 1-x)
		}
	}
	// And monotonically decreasing.
	prev := EaseOut(0)
	for x := 0.05; x <= 1.0; x += 0.05 {
		cur := EaseOut(x)
		if cur > prev {
			t.Fatalf("EaseOut not decreasing at %f", x)
		}
		prev = cur
	}
}

func TestGhostFloorNeverDark(t *testing.T) {
	curve := GhostFloor(0.35)
	if got := curve(0); got != 1 {
		t.Errorf("ghost at cycle start = %f, want 1", got)
	}
	for _, x := range []float64{0.2, 0.5, 0.9, 1, 5} {
		got := curve(x)
		if got < 0.35 {
			t.Errorf("ghost(%f) = %f dropped below floor", x, got)
		}
	}
	if got := curve(1); got != 0.35 {
		t.Errorf("ghost(1) = %f, want the floor", got)
	}
}

func TestControllerDepositAndPrune(t *testing.T) {
	c := NewController()
	t0 := time.Now()
	shape := geom.Shape{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}

	c.Deposit(shape, t0, time.Second, EaseOut)

	glows := c.Glows(t0)
	if len(glows) != 1 {
		t.Fatalf("expected 1 glow at start, got %d", len(glows))
	}
	if glows[0].Opacity != 1 {
		t.Errorf("fresh glow opacity = %f, want 1", glows[0].Opacity)
	}

	mid := c.Glows(t0.Add(500 * time.Millisecond))
	if len(mid) != 1 || mid[0].Opacity >= 1 || mid[0].Opacity <= 0 {
		t.Errorf("mid-decay glow wrong: %+v", mid)
	}

	if got := c.Glows(t0.Add(time.Second)); len(got) != 0 {
		t.Errorf("expired glow survived: %+v", got)
	}
	if c.Len() != 0 {
		t.Errorf("expired glow not pruned, %d left", c.Len())
	}
}

func TestControllerOverlappingDecays(t *testing.T) {
	c := NewController()
	t0 := time.Now()
	shape := geom.Shape{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}

	c.Deposit(shape, t0, time.Second, EaseOut)
	c.Deposit(shape, t0.Add(400*time.Millisecond), time.Second, EaseOut)

	glows := c.Glows(t0.Add(600 * time.Millisecond))
	if len(glows) != 2 {
		t.Fatalf("expected 2 overlapping glows, got %d", len(glows))
	}
	if glows[0].Opacity >= glows[1].Opacity {
		t.Errorf("older glow should be dimmer: %f vs %f", glows[0].Opacity, glows[1].Opacity)
	}
}

func TestControllerIgnoresEmptyDeposits(t *testing.T) {
	c := NewController()
	t0 := time.Now()
	c.Deposit(geom.Shape{}, t0, time.Second, EaseOut)
	c.Deposit(geom.Shape{Points: []geom.Point{{X: 1, Y: 1}}}, t0, 0, EaseOut)
	if c.Len() != 0 {
		t.Errorf("degenerate deposits accepted: %d", c.Len())
	}
}

func TestControllerClear(t *testing.T) {
	c := NewController()
	t0 := time.Now()
	shape := geom.Shape{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	c.Deposit(shape, t0, time.Minute, EaseOut)
	c.Clear()
	if got := c.Glows(t0); len(got) != 0 {
		t.Errorf("glow survived Clear: %+v", got)
	}
}
