package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"crtsim/internal/config"
	"crtsim/internal/crt"
	"crtsim/internal/export"
	"crtsim/internal/geom"
	"crtsim/internal/gui"
	"crtsim/internal/scene"
	"crtsim/internal/tui"
	"crtsim/internal/viz"
)

var (
	configFile  string
	preset      string
	display     string
	content     string
	text        string
	beamSpeed   int
	persistence int
	theme       string
	audioOn     bool
	// demo flags
	demoTime   float64
	demoWidth  int
	demoHeight int
	// export flags
	outFile   string
	atSeconds float64
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crtsim",
		Short: "cathode ray tube display simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a named preset")
	rootCmd.PersistentFlags().StringVar(&display, "display", config.DefaultDisplay, "scan mode: vector or raster")
	rootCmd.PersistentFlags().StringVar(&content, "content", config.DefaultContent, "content: preset, draw or text")
	rootCmd.PersistentFlags().StringVar(&text, "text", config.DefaultText, "text-mode input")
	rootCmd.PersistentFlags().IntVar(&beamSpeed, "speed", config.DefaultBeamSpeed, "beam speed 1..10")
	rootCmd.PersistentFlags().IntVar(&persistence, "persistence", config.DefaultPersistence, "phosphor persistence in ms")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "phosphor theme")
	rootCmd.PersistentFlags().BoolVar(&audioOn, "audio", false, "synthesize the tube hum")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the display in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run non-interactively for a fixed time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dur := time.Duration(demoTime * float64(time.Second))
			return tui.RunDemo(context.Background(), cfg, dur, demoWidth, demoHeight)
		},
	}
	demoCmd.Flags().Float64Var(&demoTime, "time", 10.0, "demo duration in seconds")
	demoCmd.Flags().IntVar(&demoWidth, "width", 80, "canvas width in cells")
	demoCmd.Flags().IntVar(&demoHeight, "height", 28, "canvas height in cells")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render one frame to SVG",
		RunE:  exportFrame,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "frame.svg", "output file")
	exportCmd.Flags().Float64Var(&atSeconds, "at", 1.0, "seconds into the run to capture")
	exportCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "plot beam timing curves",
		RunE:  calibrate,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(guiCmd, demoCmd, exportCmd, calibrateCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: preset, then config file, then
// explicit flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("display") {
		cfg.Display = display
	}
	if flags.Changed("content") {
		cfg.Content = content
	}
	if flags.Changed("text") {
		cfg.Text = text
	}
	if flags.Changed("speed") {
		cfg.BeamSpeed = beamSpeed
	}
	if flags.Changed("persistence") {
		cfg.PersistenceMs = persistence
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("audio") {
		cfg.Audio = audioOn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exportFrame runs the engine against a synthetic clock and captures the
// frame at the requested offset, so the same instant is reproducible.
func exportFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	displayMode, err := crt.ParseDisplayMode(cfg.Display)
	if err != nil {
		return err
	}
	contentMode, err := scene.ParseMode(cfg.Content)
	if err != nil {
		return err
	}

	src := scene.NewSource(nil)
	src.SetMode(contentMode)
	src.SetText(cfg.Text)

	eng := crt.NewEngine()
	defer eng.Close()

	t0 := time.Unix(0, 0)
	eng.Apply(crt.Inputs{
		Display:     displayMode,
		Scene:       src.Scene(),
		BeamSpeed:   cfg.BeamSpeed,
		Persistence: cfg.Persistence(),
		Viewport:    geom.Viewport{W: float64(svgWidth), H: float64(svgHeight)},
	}, t0)
	gen := eng.Generation()

	// Step the clock in frame-sized increments up to the capture point, so
	// afterglow deposits happen exactly as they would live.
	at := time.Duration(atSeconds * float64(time.Second))
	for el := time.Duration(0); el <= at; el += 16 * time.Millisecond {
		eng.Tick(gen, t0.Add(el))
	}
	f := eng.Frame(t0.Add(at))

	svg := export.FrameToSVG(f, svgWidth, svgHeight, viz.ThemeByName(cfg.Theme))
	if svg == "" {
		return fmt.Errorf("bad image size %dx%d", svgWidth, svgHeight)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s at t=%.2fs)\n", outFile, cfg.Display, atSeconds)
	return nil
}

func calibrate(cmd *cobra.Command, args []string) error {
	src := scene.NewSource(nil)
	length := 0.0
	for _, s := range src.Scene() {
		length += s.PathLength()
	}

	traceData := make([]float64, 0, config.MaxBeamSpeed)
	sweepData := make([]float64, 0, config.MaxBeamSpeed)
	for speed := config.MinBeamSpeed; speed <= config.MaxBeamSpeed; speed++ {
		traceData = append(traceData, crt.TraceDuration(length, speed).Seconds())
		sweepData = append(sweepData, crt.SweepDuration(speed).Seconds())
	}

	fmt.Printf("preset scene path length: %.1f logical units\n\n", length)

	fmt.Println(asciigraph.Plot(traceData,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("vector trace duration (s) vs beam speed"),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(sweepData,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("raster sweep duration (s) vs beam speed"),
	))
	fmt.Println()

	// One sweep of the scanline sawtooth at default speed.
	sweep := crt.SweepDuration(config.DefaultBeamSpeed)
	samples := make([]float64, 80)
	for i := range samples {
		el := time.Duration(float64(sweep) * float64(i) / float64(len(samples)))
		samples[i] = float64(el%sweep) / float64(sweep) * 100
	}
	fmt.Println(asciigraph.Plot(samples,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("scanline position over one sweep (speed %d)", config.DefaultBeamSpeed)),
	))

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY\tCONTENT\tSPEED\tPERSIST\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%s\n",
			name, p.Display, p.Content, p.BeamSpeed, p.PersistenceMs, p.Theme)
	}
	return w.Flush()
}
