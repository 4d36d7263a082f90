package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagBackend    = flag.String("backend", "", "Output backend: ascii, image or sdl")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window or image width")
	flagHeight     = flag.Int("height", 0, "Window or image height")
	flagFPS        = flag.Float64("fps", -1, "Target frame rate, 0 disables pacing")
	flagLighting   = flag.Bool("lighting", false, "Enable point light shading")
	flagOut        = flag.String("out", "", "Snapshot output directory")
	flagFormat     = flag.String("format", "", "Snapshot format: png or webp")
	flagFrames     = flag.Int("frames", 0, "Number of frames to snapshot")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBackend != "" {
		cfg.Graphics.Backend = *flagBackend
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFPS >= 0 {
		cfg.Graphics.FPS = *flagFPS
	}
	if *flagLighting {
		cfg.Render.Lighting = true
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagFrames > 0 {
		cfg.Output.Frames = *flagFrames
	}
}
