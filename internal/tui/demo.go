package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crtsim/internal/config"
	"crtsim/internal/crt"
	"crtsim/internal/geom"
	"crtsim/internal/scene"
	"crtsim/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// RunDemo drives the display non-interactively for a fixed duration,
// printing ANSI frames straight to stdout. Handy for quick looks and for
// piping into a recording.
func RunDemo(ctx context.Context, cfg *config.Config, duration time.Duration, w, h int) error {
	display, err := crt.ParseDisplayMode(cfg.Display)
	if err != nil {
		return err
	}
	content, err := scene.ParseMode(cfg.Content)
	if err != nil {
		return err
	}

	src := scene.NewSource(nil)
	src.SetMode(content)
	src.SetText(cfg.Text)

	vp := geom.Viewport{W: float64(w * 2), H: float64(h * 4)}
	if !vp.Valid() {
		return fmt.Errorf("demo area %dx%d too small", w, h)
	}

	eng := crt.NewEngine()
	defer eng.Close()

	start := time.Now()
	eng.Apply(crt.Inputs{
		Display:     display,
		Scene:       src.Scene(),
		BeamSpeed:   cfg.BeamSpeed,
		Persistence: cfg.Persistence(),
		Viewport:    vp,
	}, start)
	gen := eng.Generation()

	ramp := viz.ThemeByName(cfg.Theme).ShadeRamp(shadeBuckets)
	canvas := viz.NewCanvas(w, h)

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)

	ticker := time.NewTicker(frameTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if now.Sub(start) >= duration {
				return nil
			}
			eng.Tick(gen, now)

			canvas.Clear()
			viz.DrawFrame(canvas, eng.Frame(now))

			var b strings.Builder
			b.WriteString(clearScreen)
			b.WriteString(canvas.Render(ramp))
			b.WriteString(fmt.Sprintf(" %s/%s  beam %d  persist %dms  t=%.1fs\n",
				cfg.Display, cfg.Content, cfg.BeamSpeed, cfg.PersistenceMs,
				now.Sub(start).Seconds()))
			fmt.Print(b.String())
		}
	}
}
