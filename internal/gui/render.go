package gui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"crtsim/internal/crt"
	"crtsim/internal/geom"
	"crtsim/internal/scene"
)

const (
	strokeThick = 2.0
	dashOn      = 8.0
	dashOff     = 6.0
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.colBg)

	f := a.eng.Frame(time.Now())
	vp := a.viewport()

	a.drawGrid(vp)

	for _, s := range f.Strokes {
		a.drawStroke(s, vp)
	}

	if f.Scan != nil {
		a.drawScanline(*f.Scan, vp)
	}
	if f.Beam != nil {
		a.drawBeam(*f.Beam, vp)
	}

	a.drawOverlay()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) device(p geom.Point, vp geom.Viewport) rl.Vector2 {
	d := geom.ToDevice(p, vp, winMargin)
	return rl.NewVector2(float32(d.X), float32(d.Y))
}

func (a *App) drawGrid(vp geom.Viewport) {
	for v := 0.0; v <= geom.LogicalMax; v += crt.GridStep {
		top := a.device(geom.Point{X: v, Y: 0}, vp)
		bottom := a.device(geom.Point{X: v, Y: geom.LogicalMax}, vp)
		rl.DrawLineV(top, bottom, a.colGrid)

		left := a.device(geom.Point{X: 0, Y: v}, vp)
		right := a.device(geom.Point{X: geom.LogicalMax, Y: v}, vp)
		rl.DrawLineV(left, right, a.colGrid)
	}
}

func (a *App) drawStroke(s crt.Stroke, vp geom.Viewport) {
	if len(s.Points) == 0 || s.Opacity <= 0 {
		return
	}
	col := rl.Fade(a.colGlow, float32(s.Opacity))
	if len(s.Points) == 1 {
		p := a.device(s.Points[0], vp)
		rl.DrawCircleV(p, strokeThick*1.5, col)
		return
	}
	prev := a.device(s.Points[0], vp)
	for _, lp := range s.Points[1:] {
		cur := a.device(lp, vp)
		if s.Dashed {
			drawDashed(prev, cur, col)
		} else {
			rl.DrawLineEx(prev, cur, strokeThick, col)
		}
		prev = cur
	}
}

// drawDashed chops a segment into on/off runs for the raster ghost look.
func drawDashed(from, to rl.Vector2, col rl.Color) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for d := 0.0; d < length; d += dashOn + dashOff {
		end := d + dashOn
		if end > length {
			end = length
		}
		p0 := rl.NewVector2(from.X+float32(d*ux), from.Y+float32(d*uy))
		p1 := rl.NewVector2(from.X+float32(end*ux), from.Y+float32(end*uy))
		rl.DrawLineEx(p0, p1, strokeThick, col)
	}
}

func (a *App) drawScanline(y float64, vp geom.Viewport) {
	left := a.device(geom.Point{X: 0, Y: y}, vp)
	right := a.device(geom.Point{X: geom.LogicalMax, Y: y}, vp)
	rl.DrawLineEx(left, right, strokeThick, rl.Fade(a.colBeam, 0.8))
	// Soft trailing band above the line.
	for i := 1; i <= 4; i++ {
		off := float32(i) * 3
		rl.DrawLineV(
			rl.NewVector2(left.X, left.Y-off),
			rl.NewVector2(right.X, right.Y-off),
			rl.Fade(a.colGlow, 0.25/float32(i)),
		)
	}
}

func (a *App) drawBeam(p geom.Point, vp geom.Viewport) {
	b := a.device(p, vp)
	rl.DrawCircleV(b, 12, rl.Fade(a.colGlow, 0.12))
	rl.DrawCircleV(b, 7, rl.Fade(a.colGlow, 0.3))
	rl.DrawCircleV(b, 3.5, a.colBeam)
}

// drawOverlay lays faint horizontal stripes over everything for the tube
// look.
func (a *App) drawOverlay() {
	for y := int32(0); y < int32(a.height); y += 4 {
		rl.DrawRectangle(0, y, int32(a.width), 1, rl.NewColor(0, 0, 0, 36))
	}
}

func (a *App) drawHUD() {
	rl.DrawText("crtsim", 16, 12, 22, a.colText)
	rl.DrawText(fmt.Sprintf(":: %s/%s", a.display, a.src.Mode()), 110, 17, 14, a.colDim)

	status := fmt.Sprintf("beam %d  persist %dms  %s",
		a.speed, a.persistence/time.Millisecond, a.theme.Name)
	rl.DrawText(status, 16, int32(a.height)-52, 14, a.colDim)

	if a.src.Mode() == scene.Draw {
		rl.DrawText(fmt.Sprintf("%d points", a.src.ClickCount()), int32(a.width)-110, 17, 14, a.colDim)
	}

	if a.typing {
		rl.DrawRectangle(0, int32(a.height)-32, int32(a.width), 32, rl.NewColor(0, 0, 0, 200))
		rl.DrawText("text> "+a.textBuf+"_", 16, int32(a.height)-26, 18, a.colText)
		rl.DrawText("ENTER apply  ESC cancel", int32(a.width)-220, int32(a.height)-24, 14, a.colDim)
	} else {
		help := "[V/R] SCAN  [P/D/3] CONTENT  [T] TEXT  [C] CLEAR  [+/-] BEAM  [ ] PERSIST  [G] PHOSPHOR  [Q] QUIT"
		rl.DrawText(help, 16, int32(a.height)-24, 12, a.colDim)
	}
}
