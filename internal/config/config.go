// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Output backends.
const (
	BackendASCII = "ascii"
	BackendImage = "image"
	BackendSDL   = "sdl"
)

// Snapshot formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings. Width and Height size windows and
// images; Columns and Rows size the terminal grid of the ascii backend.
type GraphicsConfig struct {
	Backend    string  `yaml:"backend"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPS        float64 `yaml:"fps"`
	Thickness  float32 `yaml:"line_thickness" split_words:"true"`
}

// CameraConfig holds the perspective and the orbit controls of the main
// camera. Angles are in degrees. A zero Distance frames the whole scene.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"`
	Distance    float32 `yaml:"distance"`
	Pitch       float32 `yaml:"pitch"`
	Yaw         float32 `yaml:"yaw"`
	RotateSpeed float32 `yaml:"rotate_speed" split_words:"true"`
	ZoomSpeed   float32 `yaml:"zoom_speed" split_words:"true"`
}

// RenderConfig holds shading settings. Colours are palette names.
type RenderConfig struct {
	Lighting   bool    `yaml:"lighting"`
	Ambient    float32 `yaml:"ambient"`
	Background string  `yaml:"background"`
	Wireframe  string  `yaml:"wireframe"`
	Mesh       string  `yaml:"mesh"`
}

// OutputConfig holds snapshot settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
	Scale  int    `yaml:"scale"`
	Frames int    `yaml:"frames"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file" split_words:"true"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Backend:   BackendASCII,
			Width:     800,
			Height:    600,
			Columns:   120,
			Rows:      40,
			VSync:     true,
			FPS:       30,
			Thickness: 1,
		},
		Camera: CameraConfig{
			FOV:         60,
			Distance:    120,
			Pitch:       20,
			Yaw:         30,
			RotateSpeed: 1.5,
			ZoomSpeed:   1,
		},
		Render: RenderConfig{
			Lighting:   false,
			Ambient:    0.15,
			Background: "black",
			Wireframe:  "white",
			Mesh:       "teal",
		},
		Output: OutputConfig{
			Dir:    "snapshots",
			Prefix: "vbag",
			Format: FormatPNG,
			Scale:  1,
			Frames: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	switch c.Graphics.Backend {
	case BackendASCII, BackendImage, BackendSDL:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Graphics.Backend)
	}
	if c.Graphics.Width < 1 || c.Graphics.Height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.Columns < 1 || c.Graphics.Rows < 1 {
		return fmt.Errorf("%w: terminal size %dx%d", ErrInvalid, c.Graphics.Columns, c.Graphics.Rows)
	}
	if c.Graphics.FPS < 0 {
		return fmt.Errorf("%w: negative fps %v", ErrInvalid, c.Graphics.FPS)
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("%w: field of view %v", ErrInvalid, c.Camera.FOV)
	}
	switch c.Output.Format {
	case FormatPNG, FormatWebP:
	default:
		return fmt.Errorf("%w: unknown snapshot format %q", ErrInvalid, c.Output.Format)
	}
	if c.Output.Scale < 1 {
		return fmt.Errorf("%w: snapshot scale %d", ErrInvalid, c.Output.Scale)
	}
	return nil
}
