package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// Mains hum plus the flyback whine of a real tube.
	humFreq     = 60.0
	flybackFreq = 15734.0
)

// Hum synthesizes the idle drone of a powered tube: a low mains hum with
// a faint high flyback overtone. Level follows beam activity and is
// smoothed inside the callback so restarts never click.
type Hum struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	target float64

	time        float64
	level       float64
	filterState [2]float64
	active      bool
}

func NewHum() *Hum {
	return &Hum{}
}

func (h *Hum) Start() error {
	portaudio.Initialize()

	// Output only. Duplex streams often fail on Linux when the default
	// input and output devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, h.synthesize)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	h.stream = stream
	h.active = true
	return nil
}

func (h *Hum) Stop() {
	if h.stream != nil {
		h.stream.Stop()
		h.stream.Close()
		h.stream = nil
	}
	if h.active {
		portaudio.Terminate()
		h.active = false
	}
}

func (h *Hum) Active() bool { return h.active }

// SetLevel sets the target loudness in [0,1]. Called from the render
// loop, read by the audio callback.
func (h *Hum) SetLevel(level float64) {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	h.mu.Lock()
	h.target = level
	h.mu.Unlock()
}

// Triangle wave, smooth and buzz-free.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (h *Hum) synthesize(out [][]float32) {
	h.mu.Lock()
	target := h.target
	h.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	vol := 0.22

	for i := 0; i < len(out[0]); i++ {
		// Slow slew toward the target so level changes breathe.
		h.level += (target - h.level) * 0.0005

		// Hum fundamental plus second harmonic, slightly detuned per
		// channel for width.
		humL := triangle(h.time*humFreq*0.999)*0.7 + triangle(h.time*humFreq*2)*0.3
		humR := triangle(h.time*humFreq*1.001)*0.7 + triangle(h.time*humFreq*2)*0.3

		// The flyback whine rides on top, barely audible.
		whine := math.Sin(2*math.Pi*h.time*flybackFreq) * 0.015 * h.level

		// Level also opens the filter, brighter when the beam works hard.
		cutoff := 120.0 + 600.0*h.level

		var outL, outR float64
		outL, h.filterState[0] = lpf(humL, cutoff, dt, h.filterState[0])
		outR, h.filterState[1] = lpf(humR, cutoff, dt, h.filterState[1])

		out[0][i] = float32((outL*h.level + whine) * vol)
		out[1][i] = float32((outR*h.level + whine) * vol)

		h.time += dt
	}
}
