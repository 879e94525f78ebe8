package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDisplay     = "vector"
	DefaultContent     = "preset"
	DefaultText        = "HELLO"
	DefaultBeamSpeed   = 5
	DefaultPersistence = 900 // milliseconds
	DefaultTheme       = "green"

	MinBeamSpeed = 1
	MaxBeamSpeed = 10
)

// Config is the externally supplied tuning of one display instance. The
// engine itself owns none of it; every change restarts the active
// scheduler.
type Config struct {
	Display       string `yaml:"display"`        // vector | raster
	Content       string `yaml:"content"`        // preset | draw | text
	Text          string `yaml:"text"`           // text-mode input
	BeamSpeed     int    `yaml:"beam_speed"`     // 1..10, higher is faster
	PersistenceMs int    `yaml:"persistence_ms"` // phosphor decay window
	Theme         string `yaml:"theme"`          // phosphor coating
	Audio         bool   `yaml:"audio"`          // beam hum
}

func DefaultConfig() *Config {
	return &Config{
		Display:       DefaultDisplay,
		Content:       DefaultContent,
		Text:          DefaultText,
		BeamSpeed:     DefaultBeamSpeed,
		PersistenceMs: DefaultPersistence,
		Theme:         DefaultTheme,
	}
}

// Load reads a yaml config, layered over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Display {
	case "vector", "raster":
	default:
		return fmt.Errorf("display must be vector or raster, got %q", c.Display)
	}
	switch c.Content {
	case "preset", "draw", "text":
	default:
		return fmt.Errorf("content must be preset, draw or text, got %q", c.Content)
	}
	if c.BeamSpeed < MinBeamSpeed || c.BeamSpeed > MaxBeamSpeed {
		return fmt.Errorf("beam_speed must be in [%d,%d], got %d", MinBeamSpeed, MaxBeamSpeed, c.BeamSpeed)
	}
	if c.PersistenceMs <= 0 {
		return fmt.Errorf("persistence_ms must be positive, got %d", c.PersistenceMs)
	}
	return nil
}

// Persistence returns the phosphor decay window as a duration.
func (c *Config) Persistence() time.Duration {
	return time.Duration(c.PersistenceMs) * time.Millisecond
}
