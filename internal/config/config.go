// Package config loads viewer settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/stlview/pkg/viewer"
)

// Config holds every tunable of the viewer and its frontends
type Config struct {
	Window   Window   `toml:"window"`
	Camera   Camera   `toml:"camera"`
	Controls Controls `toml:"controls"`
	Style    Style    `toml:"style"`
	LogLevel string   `toml:"log_level"`
}

// Window describes the render surface
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	FPS    int `toml:"fps"`
}

// Camera describes the perspective camera created with the scene
type Camera struct {
	FOV      float64 `toml:"fov"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	Distance float64 `toml:"distance"`
}

// Controls tunes orbit navigation
type Controls struct {
	EnableDamping   bool    `toml:"enable_damping"`
	DampingFactor   float64 `toml:"damping_factor"`
	AutoRotate      bool    `toml:"auto_rotate"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed"`
}

// Style holds colours as #rrggbb strings
type Style struct {
	Background string  `toml:"background"`
	Wireframe  string  `toml:"wireframe"`
	DepthCue   float64 `toml:"depth_cue"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Window: Window{Width: 1200, Height: 800, FPS: 60},
		Camera: Camera{FOV: 75, Near: 0.1, Far: 1000, Distance: 5},
		Controls: Controls{
			DampingFactor:   0.05,
			AutoRotateSpeed: 2.0,
		},
		Style:    Style{Background: "#000000", Wireframe: "#00ff00"},
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.Window.FPS))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be within (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("near must be positive and below far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance must be positive, got %v", c.Camera.Distance))
	}
	if c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("damping factor must be within [0, 1], got %v", c.Controls.DampingFactor))
	}
	if _, err := ParseColor(c.Style.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := ParseColor(c.Style.Wireframe); err != nil {
		errs = append(errs, fmt.Errorf("wireframe: %w", err))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ViewerOptions converts the config for viewer.New
func (c Config) ViewerOptions(logger *slog.Logger) viewer.Options {
	bg, _ := ParseColor(c.Style.Background)
	wf, _ := ParseColor(c.Style.Wireframe)
	return viewer.Options{
		Logger:          logger,
		Width:           c.Window.Width,
		Height:          c.Window.Height,
		FOV:             c.Camera.FOV,
		Near:            c.Camera.Near,
		Far:             c.Camera.Far,
		CameraDistance:  c.Camera.Distance,
		Background:      bg,
		Wireframe:       wf,
		DepthCue:        c.Style.DepthCue,
		EnableDamping:   c.Controls.EnableDamping,
		DampingFactor:   c.Controls.DampingFactor,
		AutoRotate:      c.Controls.AutoRotate,
		AutoRotateSpeed: c.Controls.AutoRotateSpeed,
	}
}

// ParseColor parses #rrggbb or rrggbb into an opaque colour
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
