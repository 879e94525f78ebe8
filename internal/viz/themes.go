package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the color scheme for one phosphor coating.
type Theme struct {
	Name       string
	Primary    lipgloss.Color // excited phosphor
	Secondary  lipgloss.Color // beam / scanline marker
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Available themes, named after classic phosphor coatings.
var (
	ThemeGreen = Theme{
		Name:       "green",
		Primary:    lipgloss.Color("#33ff66"),
		Secondary:  lipgloss.Color("#ccffdd"),
		Background: lipgloss.Color("#06110a"),
		Text:       lipgloss.Color("#33ff66"),
		Muted:      lipgloss.Color("#1a5533"),
	}

	ThemeAmber = Theme{
		Name:       "amber",
		Primary:    lipgloss.Color("#ffb000"),
		Secondary:  lipgloss.Color("#ffe8b0"),
		Background: lipgloss.Color("#140d00"),
		Text:       lipgloss.Color("#ffb000"),
		Muted:      lipgloss.Color("#664400"),
	}

	ThemeBlue = Theme{
		Name:       "blue",
		Primary:    lipgloss.Color("#66ccff"),
		Secondary:  lipgloss.Color("#ddf4ff"),
		Background: lipgloss.Color("#020a12"),
		Text:       lipgloss.Color("#66ccff"),
		Muted:      lipgloss.Color("#224466"),
	}

	ThemeWhite = Theme{
		Name:       "white",
		Primary:    lipgloss.Color("#e8e8e8"),
		Secondary:  lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#e8e8e8"),
		Muted:      lipgloss.Color("#555555"),
	}
)

var themes = []Theme{ThemeGreen, ThemeAmber, ThemeBlue, ThemeWhite}

// ThemeByName returns the named theme, falling back to green phosphor.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeGreen
}

// NextTheme cycles through the available themes.
func NextTheme(current Theme) Theme {
	for i, t := range themes {
		if t.Name == current.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeGreen
}

// ThemeNames lists the selectable theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ShadeRamp blends the background toward the phosphor color in n steps,
// dimmest first. Intensity rendering buckets stroke opacity into these
// shades.
func (t Theme) ShadeRamp(n int) []lipgloss.Style {
	bg, _ := colorful.Hex(string(t.Background))
	fg, _ := colorful.Hex(string(t.Primary))
	styles := make([]lipgloss.Style, n)
	for i := 0; i < n; i++ {
		f := float64(i+1) / float64(n)
		// Even the dimmest bucket stays visibly above the background.
		c := bg.BlendLab(fg, 0.25+0.75*f).Clamped()
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return styles
}
