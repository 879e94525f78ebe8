package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crtsim/internal/audio"
	"crtsim/internal/config"
	"crtsim/internal/crt"
	"crtsim/internal/geom"
	"crtsim/internal/scene"
	"crtsim/internal/viz"
)

const (
	statusRows   = 3
	maxTextLen   = 24
	frameTick    = 16 * time.Millisecond
	shadeBuckets = 6
)

type uiState int

const (
	stateDisplay uiState = iota
	stateTextEntry
)

// tickMsg carries the generation token of the run that scheduled it. A
// tick that resolves after a restart finds a newer generation and becomes
// a no-op, which is the whole cancellation story of the TUI.
type tickMsg struct {
	gen uint64
	t   time.Time
}

func tick(gen uint64) tea.Cmd {
	return tea.Tick(frameTick, func(t time.Time) tea.Msg { return tickMsg{gen: gen, t: t} })
}

type model struct {
	eng *crt.Engine
	src *scene.Source
	hum *audio.Hum

	display     crt.DisplayMode
	speed       int
	persistence time.Duration

	theme viz.Theme
	ramp  []lipgloss.Style
	text  lipgloss.Style
	muted lipgloss.Style
	hot   lipgloss.Style

	state   uiState
	textBuf string

	width  int
	height int
}

func newModel(cfg *config.Config, hum *audio.Hum) *model {
	display, _ := crt.ParseDisplayMode(cfg.Display)
	content, _ := scene.ParseMode(cfg.Content)

	src := scene.NewSource(nil)
	src.SetMode(content)
	src.SetText(cfg.Text)

	m := &model{
		eng:         crt.NewEngine(),
		src:         src,
		hum:         hum,
		display:     display,
		speed:       cfg.BeamSpeed,
		persistence: cfg.Persistence(),
	}
	m.setTheme(viz.ThemeByName(cfg.Theme))
	return m
}

func (m *model) setTheme(t viz.Theme) {
	m.theme = t
	m.ramp = t.ShadeRamp(shadeBuckets)
	m.text = lipgloss.NewStyle().Foreground(t.Text)
	m.muted = lipgloss.NewStyle().Foreground(t.Muted)
	m.hot = lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
}

func (m *model) Init() tea.Cmd {
	return tick(m.eng.Generation())
}

// viewport is the braille sub-pixel area left after the status rows.
func (m *model) viewport() geom.Viewport {
	cw := m.width
	ch := m.height - statusRows
	if cw < 24 || ch < 8 {
		return geom.Viewport{}
	}
	return geom.Viewport{W: float64(cw * 2), H: float64(ch * 4)}
}

// restart is the single path for every input change: cancel the running
// scheduler, rebuild the scene, start fresh, and chain ticks carrying the
// new generation.
func (m *model) restart() tea.Cmd {
	m.eng.Apply(crt.Inputs{
		Display:     m.display,
		Scene:       m.src.Scene(),
		BeamSpeed:   m.speed,
		Persistence: m.persistence,
		Viewport:    m.viewport(),
	}, time.Now())
	return tick(m.eng.Generation())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// A resize is a full scene-invalidating event, same path as any
		// other change.
		return m, m.restart()

	case tickMsg:
		if msg.gen != m.eng.Generation() {
			return m, nil // stale timer from a superseded run
		}
		m.eng.Tick(msg.gen, msg.t)
		m.updateHum(msg.t)
		return m, tick(msg.gen)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.state == stateTextEntry {
			return m, m.textEntryKey(msg)
		}
		return m, m.displayKey(msg)
	}
	return m, nil
}

func (m *model) updateHum(now time.Time) {
	if m.hum == nil {
		return
	}
	level := 0.15
	if f := m.eng.Frame(now); f.Beam != nil || f.Scan != nil {
		level = 0.3 + 0.07*float64(m.speed)
	}
	m.hum.SetLevel(level)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.src.Mode() != scene.Draw {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	vp := m.viewport()
	if !vp.Valid() || msg.Y >= m.height-statusRows {
		return nil
	}
	// Cell to sub-pixel, sampled at the cell center, then through the one
	// inverse mapping shared with the renderer.
	device := geom.Point{X: float64(msg.X*2) + 1, Y: float64(msg.Y*4) + 2}
	m.src.AddClick(geom.ToLogical(device, vp, viz.Margin))
	return m.restart()
}

func (m *model) displayKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.eng.Close()
		if m.hum != nil {
			m.hum.Stop()
		}
		return tea.Quit
	case "v":
		m.display = crt.Vector
		return m.restart()
	case "r":
		m.display = crt.Raster
		return m.restart()
	case "p", "1":
		m.src.SetMode(scene.Preset)
		return m.restart()
	case "d", "2":
		m.src.SetMode(scene.Draw)
		return m.restart()
	case "3":
		m.src.SetMode(scene.Text)
		return m.restart()
	case "t":
		m.state = stateTextEntry
		m.textBuf = m.src.Text()
		return nil
	case "c":
		m.src.ClearClicks()
		return m.restart()
	case "+", "=":
		if m.speed < config.MaxBeamSpeed {
			m.speed++
			return m.restart()
		}
	case "-", "_":
		if m.speed > config.MinBeamSpeed {
			m.speed--
			return m.restart()
		}
	case "]":
		m.persistence += 250 * time.Millisecond
		return m.restart()
	case "[":
		if m.persistence > 250*time.Millisecond {
			m.persistence -= 250 * time.Millisecond
			return m.restart()
		}
	case "g":
		m.setTheme(viz.NextTheme(m.theme))
		return nil // purely cosmetic, the run keeps going
	}
	return nil
}

func (m *model) textEntryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.state = stateDisplay
		m.src.SetText(m.textBuf)
		m.src.SetMode(scene.Text)
		return m.restart()
	case "esc":
		m.state = stateDisplay
		return nil
	case "backspace":
		if len(m.textBuf) > 0 {
			m.textBuf = m.textBuf[:len(m.textBuf)-1]
		}
	default:
		if msg.Type == tea.KeyRunes && len(m.textBuf) < maxTextLen {
			for _, r := range msg.Runes {
				if r >= ' ' && r < 127 {
					m.textBuf += string(r)
				}
			}
		} else if msg.String() == " " && len(m.textBuf) < maxTextLen {
			m.textBuf += " "
		}
	}
	return nil
}

func (m *model) View() string {
	vp := m.viewport()
	if !vp.Valid() {
		return m.muted.Render("\n  display too small, enlarge the terminal\n")
	}

	canvas := viz.NewCanvas(m.width, m.height-statusRows)
	viz.DrawFrame(canvas, m.eng.Frame(time.Now()))

	var b strings.Builder
	b.WriteString(canvas.Render(m.ramp))
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m *model) statusLine() string {
	mode := fmt.Sprintf("%s/%s", m.display, m.src.Mode())
	speedBar := strings.Repeat("━", m.speed) + strings.Repeat("─", config.MaxBeamSpeed-m.speed)

	parts := []string{
		m.hot.Render(" " + mode),
		m.text.Render("beam ") + m.hot.Render(speedBar),
		m.text.Render(fmt.Sprintf("persist %dms", m.persistence/time.Millisecond)),
		m.muted.Render(m.theme.Name),
	}
	if m.src.Mode() == scene.Draw {
		parts = append(parts, m.muted.Render(fmt.Sprintf("%d points", m.src.ClickCount())))
	}
	return strings.Join(parts, m.muted.Render("  │  "))
}

func (m *model) helpLine() string {
	if m.state == stateTextEntry {
		return m.hot.Render(" text> ") + m.text.Render(m.textBuf+"▋") + m.muted.Render("  enter apply · esc cancel")
	}
	help := " v/r scan mode · p/d/3 content · t text · click to draw · c clear · ± beam · [] persist · g phosphor · q quit"
	return m.muted.Render(help)
}

// RunInteractive starts the interactive display and blocks until quit.
func RunInteractive(cfg *config.Config) error {
	var hum *audio.Hum
	if cfg.Audio {
		hum = audio.NewHum()
		if err := hum.Start(); err != nil {
			// No sound device is not fatal, the display runs silent.
			hum = nil
		}
	}
	p := tea.NewProgram(newModel(cfg, hum), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
