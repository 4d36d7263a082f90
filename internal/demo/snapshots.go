package demo

import (
	"context"
	"fmt"

	"github.com/Faultbox/vbag/internal/config"
	"github.com/Faultbox/vbag/internal/engine/animation"
	"github.com/Faultbox/vbag/internal/engine/input"
	"github.com/Faultbox/vbag/internal/engine/pipeline"
	"github.com/Faultbox/vbag/internal/engine/surface"
)

// Frame describes one written snapshot.
type Frame struct {
	Index int
	Path  string
	Stats pipeline.Stats
}

// Snapshots renders cfg.Output.Frames frames of the idle demo scene into an
// image surface and writes each one to cfg.Output.Dir. Frames advance by a
// fixed step of one frame period, so runs are reproducible. report, if not
// nil, is called after each write.
func Snapshots(ctx context.Context, cfg *config.Config, report func(Frame)) error {
	bg, err := Color(cfg.Render.Background)
	if err != nil {
		return err
	}
	out := surface.NewImage(cfg.Graphics.Width, cfg.Graphics.Height)
	out.Thickness = cfg.Graphics.Thickness
	out.Background = bg

	snap, err := surface.NewSnapshotter(cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Format, cfg.Output.Scale)
	if err != nil {
		return err
	}

	w, err := Build(cfg, Aspect(out.Width(), out.Height(), 1))
	if err != nil {
		return err
	}
	controls := NewControls(w, input.NewStatic())
	p := pipeline.New(pipeline.Options{Lighting: cfg.Render.Lighting, Ambient: cfg.Render.Ambient})

	fps := cfg.Graphics.FPS
	if fps <= 0 {
		fps = animation.DefaultFrameRate
	}
	dt := float32(1 / fps)

	for i := range cfg.Output.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if err := controls.Step(dt); err != nil {
				return err
			}
		}
		stats, err := p.Draw(w.Scene, out)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path, err := snap.Capture(out.Image(), i)
		if err != nil {
			return err
		}
		if report != nil {
			report(Frame{Index: i, Path: path, Stats: stats})
		}
	}
	return nil
}
