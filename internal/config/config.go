// Package config holds the window description and the loaders that build it
// from defaults, a TOML or YAML file and WMA_* environment variables.
package config

import (
	"fmt"
	"log/slog"
)

// WindowConfig describes the window to create. Only Width and Height change
// after creation, when the backend reports a resize.
type WindowConfig struct {
	Title      string `toml:"title" yaml:"title"`
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Resizable  bool   `toml:"resizable" yaml:"resizable"`
	TargetFPS  int    `toml:"target_fps" yaml:"target_fps"`
	VSync      bool   `toml:"vsync" yaml:"vsync"`
	Fullscreen bool   `toml:"fullscreen" yaml:"fullscreen"`

	// Sensitivity scales mouse deltas.
	Sensitivity float64 `toml:"sensitivity" yaml:"sensitivity"`
	// CloseOnEscape installs an Escape key action that requests close.
	CloseOnEscape bool `toml:"close_on_escape" yaml:"close_on_escape"`
}

// Default returns an 800x600 resizable window paced at 60 FPS.
func Default() WindowConfig {
	return WindowConfig{
		Title:         "wma",
		Width:         800,
		Height:        600,
		Resizable:     true,
		TargetFPS:     60,
		VSync:         false,
		Fullscreen:    false,
		Sensitivity:   1.0,
		CloseOnEscape: true,
	}
}

// Validate reports the first field that cannot describe a window.
func (c WindowConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return &ValidationError{Field: "width", Value: c.Width, Message: "must be positive"}
	case c.Height <= 0:
		return &ValidationError{Field: "height", Value: c.Height, Message: "must be positive"}
	case c.TargetFPS < 0:
		return &ValidationError{Field: "target_fps", Value: c.TargetFPS, Message: "must not be negative"}
	case c.Sensitivity <= 0:
		return &ValidationError{Field: "sensitivity", Value: c.Sensitivity, Message: "must be positive"}
	}
	return nil
}

// Settings is everything Load produces: the window plus the backend, the
// graphics API and the log level to run with.
type Settings struct {
	Window   WindowConfig
	Backend  Backend
	API      GraphicsAPI
	LogLevel slog.Level
}

// DefaultSettings returns the built-in settings for backend.
func DefaultSettings(backend Backend) Settings {
	return Settings{
		Window:   Default(),
		Backend:  backend,
		API:      OpenGL,
		LogLevel: slog.LevelInfo,
	}
}

func (s Settings) String() string {
	return fmt.Sprintf("%s/%s %dx%d@%d", s.Backend, s.API, s.Window.Width, s.Window.Height, s.Window.TargetFPS)
}
