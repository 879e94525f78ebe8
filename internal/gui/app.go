package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"crtsim/internal/audio"
	"crtsim/internal/config"
	"crtsim/internal/crt"
	"crtsim/internal/geom"
	"crtsim/internal/scene"
	"crtsim/internal/viz"
)

const (
	winWidth  = 960
	winHeight = 720
	winMargin = 28.0
	maxText   = 24
)

type App struct {
	eng *crt.Engine
	src *scene.Source
	hum *audio.Hum

	display     crt.DisplayMode
	speed       int
	persistence time.Duration
	theme       viz.Theme

	// Theme colors resolved for raylib.
	colBg   rl.Color
	colGlow rl.Color
	colBeam rl.Color
	colText rl.Color
	colDim  rl.Color
	colGrid rl.Color

	typing  bool
	textBuf string

	width, height int
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(winWidth, winHeight, "crtsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, hum *audio.Hum) *App {
	display, _ := crt.ParseDisplayMode(cfg.Display)
	content, _ := scene.ParseMode(cfg.Content)

	src := scene.NewSource(nil)
	src.SetMode(content)
	src.SetText(cfg.Text)

	a := &App{
		eng:         crt.NewEngine(),
		src:         src,
		hum:         hum,
		display:     display,
		speed:       cfg.BeamSpeed,
		persistence: cfg.Persistence(),
		width:       winWidth,
		height:      winHeight,
	}
	a.setTheme(viz.ThemeByName(cfg.Theme))
	return a
}

func (a *App) setTheme(t viz.Theme) {
	a.theme = t
	a.colBg = rlColor(string(t.Background), 255)
	a.colGlow = rlColor(string(t.Primary), 255)
	a.colBeam = rlColor(string(t.Secondary), 255)
	a.colText = rlColor(string(t.Text), 255)
	a.colDim = rlColor(string(t.Muted), 255)
	a.colGrid = rlColor(string(t.Muted), 70)
}

// rlColor converts a hex theme color into a raylib color with the given
// alpha. Bad hex falls back to mid gray rather than crashing the window.
func rlColor(hex string, alpha uint8) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.NewColor(128, 128, 128, alpha)
	}
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, alpha)
}

func (a *App) viewport() geom.Viewport {
	return geom.Viewport{W: float64(a.width), H: float64(a.height)}
}

func (a *App) restart() {
	a.eng.Apply(crt.Inputs{
		Display:     a.display,
		Scene:       a.src.Scene(),
		BeamSpeed:   a.speed,
		Persistence: a.persistence,
		Viewport:    a.viewport(),
	}, time.Now())
}

// Run opens the window and blocks until it closes.
func Run(cfg *config.Config) {
	initWindow()
	defer rl.CloseWindow()

	var hum *audio.Hum
	if cfg.Audio {
		hum = audio.NewHum()
		if err := hum.Start(); err != nil {
			hum = nil
		}
	}

	a := NewApp(cfg, hum)
	a.restart()
	a.RunLoop()

	if a.hum != nil {
		a.hum.Stop()
	}
	a.eng.Close()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) && !a.typing {
			break
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	now := time.Now()

	if rl.IsWindowResized() {
		a.width = rl.GetScreenWidth()
		a.height = rl.GetScreenHeight()
		a.restart()
	}

	if a.typing {
		a.updateTextEntry()
	} else {
		a.updateKeys()
		a.updateMouse()
	}

	a.eng.Tick(a.eng.Generation(), now)

	if a.hum != nil {
		level := 0.15
		if f := a.eng.Frame(now); f.Beam != nil || f.Scan != nil {
			level = 0.3 + 0.07*float64(a.speed)
		}
		a.hum.SetLevel(level)
	}
}

func (a *App) updateKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyV):
		a.display = crt.Vector
		a.restart()
	case rl.IsKeyPressed(rl.KeyR):
		a.display = crt.Raster
		a.restart()
	case rl.IsKeyPressed(rl.KeyP), rl.IsKeyPressed(rl.KeyOne):
		a.src.SetMode(scene.Preset)
		a.restart()
	case rl.IsKeyPressed(rl.KeyD), rl.IsKeyPressed(rl.KeyTwo):
		a.src.SetMode(scene.Draw)
		a.restart()
	case rl.IsKeyPressed(rl.KeyThree):
		a.src.SetMode(scene.Text)
		a.restart()
	case rl.IsKeyPressed(rl.KeyT):
		a.typing = true
		a.textBuf = a.src.Text()
	case rl.IsKeyPressed(rl.KeyC):
		a.src.ClearClicks()
		a.restart()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		if a.speed < config.MaxBeamSpeed {
			a.speed++
			a.restart()
		}
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		if a.speed > config.MinBeamSpeed {
			a.speed--
			a.restart()
		}
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.persistence += 250 * time.Millisecond
		a.restart()
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		if a.persistence > 250*time.Millisecond {
			a.persistence -= 250 * time.Millisecond
			a.restart()
		}
	case rl.IsKeyPressed(rl.KeyG):
		a.setTheme(viz.NextTheme(a.theme))
	}
}

func (a *App) updateMouse() {
	if a.src.Mode() != scene.Draw {
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	pos := rl.GetMousePosition()
	p := geom.ToLogical(geom.Point{X: float64(pos.X), Y: float64(pos.Y)}, a.viewport(), winMargin)
	a.src.AddClick(p)
	a.restart()
}

func (a *App) updateTextEntry() {
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if ch >= ' ' && ch < 127 && len(a.textBuf) < maxText {
			a.textBuf += string(rune(ch))
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		if len(a.textBuf) > 0 {
			a.textBuf = a.textBuf[:len(a.textBuf)-1]
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		a.typing = false
		a.src.SetText(a.textBuf)
		a.src.SetMode(scene.Text)
		a.restart()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.typing = false
	}
}
