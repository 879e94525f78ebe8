package config

// Presets are ready-made display setups, keyed by name.
var Presets = map[string]*Config{
	"oscilloscope": {
		Display: "vector", Content: "preset", BeamSpeed: 8, PersistenceMs: 400,
		Theme: "green", Text: DefaultText,
	},
	"storage-tube": {
		// Very long persistence, the Tektronix look: strokes pile up
		// before the oldest ones let go.
		Display: "vector", Content: "preset", BeamSpeed: 4, PersistenceMs: 6000,
		Theme: "green", Text: DefaultText,
	},
	"radar": {
		Display: "vector", Content: "preset", BeamSpeed: 2, PersistenceMs: 2500,
		Theme: "blue", Text: DefaultText,
	},
	"sketchpad": {
		Display: "vector", Content: "draw", BeamSpeed: 6, PersistenceMs: 1500,
		Theme: "green", Text: DefaultText,
	},
	"marquee": {
		Display: "vector", Content: "text", BeamSpeed: 9, PersistenceMs: 1200,
		Theme: "amber", Text: "CRTSIM",
	},
	"terminal": {
		Display: "raster", Content: "text", BeamSpeed: 7, PersistenceMs: 800,
		Theme: "green", Text: "READY.",
	},
	"broadcast": {
		Display: "raster", Content: "preset", BeamSpeed: 5, PersistenceMs: 1000,
		Theme: "white", Text: DefaultText,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
