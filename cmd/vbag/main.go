// Package main is the entry point for the interactive vbag demo.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/config"
	"github.com/Faultbox/vbag/internal/demo"
	"github.com/Faultbox/vbag/internal/engine/animation"
	"github.com/Faultbox/vbag/internal/engine/input"
	"github.com/Faultbox/vbag/internal/engine/input/sdlinput"
	"github.com/Faultbox/vbag/internal/engine/pipeline"
	"github.com/Faultbox/vbag/internal/engine/renderer"
	"github.com/Faultbox/vbag/internal/engine/scene"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/internal/engine/window"
	"github.com/Faultbox/vbag/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal backend owns the screen, so it only logs to the file.
	var console io.Writer = os.Stderr
	if cfg.Graphics.Backend == config.BackendASCII {
		console = nil
	}
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== vbag ===", zap.String("backend", cfg.Graphics.Backend))
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("renderer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	popts := pipeline.Options{Lighting: cfg.Render.Lighting, Ambient: cfg.Render.Ambient}
	background, err := demo.Color(cfg.Render.Background)
	if err != nil {
		return err
	}

	switch cfg.Graphics.Backend {
	case config.BackendSDL:
		return runSDL(ctx, cfg, popts, background)
	case config.BackendImage:
		return runImage(ctx, cfg)
	default:
		return runASCII(ctx, cfg, popts, background)
	}
}

// runASCII animates the scene in the terminal. There is no keyboard, so the
// scene spins until interrupted.
func runASCII(ctx context.Context, cfg *config.Config, popts pipeline.Options, bg surface.Color) error {
	out := surface.NewChar(cfg.Graphics.Columns, cfg.Graphics.Rows, os.Stdout)
	out.Thickness = cfg.Graphics.Thickness
	out.Background = bg

	w, err := demo.Build(cfg, demo.Aspect(out.Width(), out.Height(), demo.CellAspect))
	if err != nil {
		return err
	}
	controls := demo.NewControls(w, input.NewStatic())

	e := animation.New(w.Scene, out,
		animation.WithFrameRate(cfg.Graphics.FPS),
		animation.WithPipeline(pipeline.New(popts)),
		animation.WithLoop(controls.Loop),
	)
	return e.Run(ctx)
}

// runImage writes snapshots of the demo scene instead of showing it.
func runImage(ctx context.Context, cfg *config.Config) error {
	return demo.Snapshots(ctx, cfg, func(f demo.Frame) {
		logger.Info("snapshot written",
			zap.Int("frame", f.Index),
			zap.String("path", f.Path),
			zap.Int("lines", f.Stats.Lines),
			zap.Int("triangles", f.Stats.Triangles),
		)
	})
}

// runSDL opens a window and draws with OpenGL, driven by the keyboard.
func runSDL(ctx context.Context, cfg *config.Config, popts pipeline.Options, bg surface.Color) error {
	win, err := window.New(window.Config{
		Title:      "vbag",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Renderer goes AFTER the window, since the OpenGL context must exist
	width, height := win.Size()
	out, err := renderer.New(renderer.Config{Width: width, Height: height, Background: bg}, win)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer out.Close()

	w, err := demo.Build(cfg, demo.Aspect(width, height, 1))
	if err != nil {
		return err
	}
	in := sdlinput.New()
	controls := demo.NewControls(w, in)

	e := animation.New(w.Scene, out,
		animation.WithFrameRate(cfg.Graphics.FPS),
		animation.WithPipeline(pipeline.New(popts)),
		animation.WithLoop(func(e *animation.Engine) error {
			if in.Update() {
				return animation.ErrStop
			}
			for _, ev := range in.Events() {
				if ev.Type == input.EventWindowResize {
					out.Resize(ev.Width, ev.Height)
					if err := resizeCamera(w, ev.Width, ev.Height); err != nil {
						return err
					}
				}
			}
			return controls.Loop(e)
		}),
	)
	return e.Run(ctx)
}

// resizeCamera rebuilds the main camera projection for a new window size.
func resizeCamera(w *demo.World, width, height int) error {
	var err error
	if uerr := w.Scene.Update(w.Camera, func(o *scene.Object) {
		err = o.Camera.SetAspectRatio(demo.Aspect(width, height, 1))
	}); uerr != nil {
		return uerr
	}
	return err
}
