package scene

import (
	"fmt"

	"crtsim/internal/geom"
)

// Mode selects where the displayed shapes come from.
type Mode int

const (
	Preset Mode = iota
	Draw
	Text
)

func (m Mode) String() string {
	switch m {
	case Draw:
		return "draw"
	case Text:
		return "text"
	default:
		return "preset"
	}
}

// ParseMode maps a config/flag string onto a content mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "preset":
		return Preset, nil
	case "draw":
		return Draw, nil
	case "text":
		return Text, nil
	}
	return Preset, fmt.Errorf("unknown content mode %q", s)
}

// GlyphFunc converts text into line shapes, positioned from startX along a
// baseline. It is an external collaborator: it may fail or panic, and the
// Source degrades to an empty scene either way.
type GlyphFunc func(text string, baselineY, startX, spacing float64) ([]geom.Shape, error)

// craft is the preset silhouette: a closed 4-vertex dart.
var craft = []geom.Point{{X: 50, Y: 22}, {X: 78, Y: 74}, {X: 50, Y: 60}, {X: 22, Y: 74}}

// Source assembles the ordered shape list for the active content mode.
// Every Scene call builds a fresh slice, so a running scheduler owns its
// copy outright and later clicks or text edits cannot mutate it.
type Source struct {
	mode   Mode
	text   string
	clicks []geom.Point
	glyphs GlyphFunc
}

// NewSource returns a Source using the given glyph generator, or the
// built-in vector font when nil.
func NewSource(glyphs GlyphFunc) *Source {
	if glyphs == nil {
		glyphs = Glyphs
	}
	return &Source{glyphs: glyphs}
}

func (s *Source) Mode() Mode      { return s.mode }
func (s *Source) SetMode(m Mode)  { s.mode = m }
func (s *Source) Text() string    { return s.text }
func (s *Source) SetText(t string) { s.text = t }

// AddClick appends one sketch point, already mapped into logical space.
func (s *Source) AddClick(p geom.Point) { s.clicks = append(s.clicks, p) }

// ClearClicks resets the sketch to empty.
func (s *Source) ClearClicks() { s.clicks = nil }

// ClickCount reports how many sketch points have accumulated.
func (s *Source) ClickCount() int { return len(s.clicks) }

// Scene returns the ordered shapes for the current mode; the order is the
// trace order. The result may be empty (draw mode before the first click,
// or a failed glyph collaborator) and the caller must cope with that.
func (s *Source) Scene() []geom.Shape {
	switch s.mode {
	case Draw:
		if len(s.clicks) == 0 {
			return nil
		}
		pts := make([]geom.Point, len(s.clicks))
		copy(pts, s.clicks)
		return []geom.Shape{{ID: "sketch", Points: pts}}
	case Text:
		return s.textScene()
	default:
		pts := make([]geom.Point, len(craft))
		copy(pts, craft)
		return []geom.Shape{{ID: "craft", Points: pts, Closed: true}}
	}
}

// textScene shields the engine from the glyph collaborator: any error or
// panic becomes an empty scene, never a fault inside a scheduler.
func (s *Source) textScene() (shapes []geom.Shape) {
	defer func() {
		if r := recover(); r != nil {
			shapes = nil
		}
	}()
	out, err := s.glyphs(s.text, 58, 10, 9)
	if err != nil {
		return nil
	}
	return out
}
