package crt

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crtsim/internal/geom"
)

func TestCrtSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CRT Scheduler Suite")
}

var _ = Describe("Engine", func() {
	var (
		e  *Engine
		t0 time.Time
	)

	BeforeEach(func() {
		e = NewEngine()
		t0 = time.Unix(1000, 0)
	})

	Describe("restarting mid-trace", func() {
		It("supersedes the old run so late ticks change nothing", func() {
			e.Apply(vectorInputs(squareScene()), t0)
			old := e.Generation()
			e.Tick(old, t0.Add(blankDelay+time.Second))
			Expect(e.Frame(t0.Add(blankDelay + time.Second)).Beam).NotTo(BeNil())

			line := []geom.Shape{{ID: "line", Points: []geom.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}}}
			e.Apply(vectorInputs(line), t0.Add(2*time.Second))
			Expect(e.Generation()).To(BeNumerically(">", old))

			before := e.Frame(t0.Add(2 * time.Second))
			e.Tick(old, t0.Add(time.Hour))
			after := e.Frame(t0.Add(2 * time.Second))
			Expect(after).To(Equal(before), "a stale tick must be a no-op")
		})

		It("drops every visual of the previous scene", func() {
			e.Apply(vectorInputs(squareScene()), t0)
			done := t0.Add(blankDelay).Add(TraceDuration(320, 5))
			e.Tick(e.Generation(), done)
			Expect(e.Frame(done).Strokes).NotTo(BeEmpty())

			e.Apply(vectorInputs(nil), done)
			Expect(e.Frame(done).Strokes).To(BeEmpty())
			Expect(e.Frame(done).Beam).To(BeNil())
		})
	})

	Describe("vector cycling", func() {
		It("repeats the scene from shape 0 without a terminal state", func() {
			e.Apply(vectorInputs(squareScene()), t0)
			gen := e.Generation()

			cycle := blankDelay + TraceDuration(320, 5) + CycleGap(5)
			for i := 1; i <= 3; i++ {
				mid := t0.Add(time.Duration(i) * cycle).Add(blankDelay + time.Second)
				e.Tick(gen, mid)
				Expect(e.Frame(mid).Beam).NotTo(BeNil(), "beam must be tracing again in cycle %d", i)
			}
		})
	})

	Describe("raster mode", func() {
		It("starts sweep and ghost on the same cycle origin", func() {
			in := vectorInputs(squareScene())
			in.Display = Raster
			e.Apply(in, t0)
			gen := e.Generation()

			sweep := SweepDuration(in.BeamSpeed)
			e.Tick(gen, t0.Add(sweep))
			f := e.Frame(t0.Add(sweep))
			Expect(*f.Scan).To(BeZero())
			Expect(f.Strokes[0].Opacity).To(Equal(1.0))
		})
	})
})
