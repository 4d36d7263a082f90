// Package animation drives a scene frame by frame: it runs user callbacks,
// draws through the pipeline and paces frames to a target rate.
package animation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/engine/pipeline"
	"github.com/Faultbox/vbag/internal/engine/scene"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/internal/logger"
)

// DefaultFrameRate is used when no frame rate is configured.
const DefaultFrameRate = 30

// ErrStop can be returned by a callback to end Run without an error.
var ErrStop = errors.New("animation stopped")

// Func is a setup or per-frame callback.
type Func func(e *Engine) error

// Option configures an Engine.
type Option func(*Engine)

// WithSetup sets the callback run once before the first frame.
func WithSetup(fn Func) Option {
	return func(e *Engine) { e.setup = fn }
}

// WithLoop sets the callback run at the start of every frame.
func WithLoop(fn Func) Option {
	return func(e *Engine) { e.loop = fn }
}

// WithFrameRate sets the target frames per second. Zero or less disables
// pacing.
func WithFrameRate(fps float64) Option {
	return func(e *Engine) { e.frameRate = fps }
}

// WithFrameLimit stops Run after n frames. Zero means no limit.
func WithFrameLimit(n uint64) Option {
	return func(e *Engine) { e.limit = n }
}

// WithPipeline replaces the default pipeline.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(e *Engine) { e.pipeline = p }
}

// Engine owns the frame loop for one scene and one surface.
type Engine struct {
	scene    *scene.Scene
	surface  surface.Surface
	pipeline *pipeline.Pipeline

	setup Func
	loop  Func

	frameRate float64
	limit     uint64

	frame uint64
	delta time.Duration
	stats pipeline.Stats

	now func() time.Time
	log *zap.Logger
}

// New creates an engine drawing sc onto out.
func New(sc *scene.Scene, out surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		scene:     sc,
		surface:   out,
		frameRate: DefaultFrameRate,
		now:       time.Now,
		log:       logger.Named("animation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pipeline == nil {
		e.pipeline = pipeline.New(pipeline.DefaultOptions())
	}
	return e
}

// Scene returns the animated scene.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Surface returns the output surface.
func (e *Engine) Surface() surface.Surface { return e.surface }

// Pipeline returns the pipeline used for drawing.
func (e *Engine) Pipeline() *pipeline.Pipeline { return e.pipeline }

// Frame returns the number of frames drawn so far.
func (e *Engine) Frame() uint64 { return e.frame }

// DeltaTime returns the seconds elapsed between the start of the previous
// frame and the current one. It is zero on the first frame.
func (e *Engine) DeltaTime() float32 { return float32(e.delta.Seconds()) }

// FrameRate returns the target frames per second.
func (e *Engine) FrameRate() float64 { return e.frameRate }

// FrameTime returns the target duration of a frame in milliseconds, or zero
// when pacing is disabled.
func (e *Engine) FrameTime() float64 {
	if e.frameRate <= 0 {
		return 0
	}
	return 1000 / e.frameRate
}

// Stats returns what the last frame drew.
func (e *Engine) Stats() pipeline.Stats { return e.stats }

// Run calls the setup callback once, then loops: per-frame callback, draw,
// wait for the next frame. It returns nil when ctx is cancelled, the frame
// limit is reached or a callback returns ErrStop, and the first other error
// otherwise.
func (e *Engine) Run(ctx context.Context) error {
	if e.setup != nil {
		if err := e.setup(e); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return fmt.Errorf("setup: %w", err)
		}
	}

	e.log.Info("starting frame loop", zap.Float64("fps", e.frameRate))

	var period time.Duration
	if e.frameRate > 0 {
		period = time.Duration(float64(time.Second) / e.frameRate)
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	last := e.now()
	fpsTimer := last
	frameCount := 0

	for e.limit == 0 || e.frame < e.limit {
		if ctx.Err() != nil {
			return nil
		}

		start := e.now()
		if e.frame > 0 {
			e.delta = start.Sub(last)
		}
		last = start

		if e.loop != nil {
			if err := e.loop(e); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return fmt.Errorf("frame %d: %w", e.frame, err)
			}
		}

		stats, err := e.pipeline.Draw(e.scene, e.surface)
		if err != nil {
			return fmt.Errorf("frame %d: %w", e.frame, err)
		}
		e.stats = stats
		e.frame++

		frameCount++
		if since := e.now().Sub(fpsTimer); since >= time.Second {
			e.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", e.delta.Seconds()*1000),
			)
			frameCount = 0
			fpsTimer = e.now()
		}

		if period > 0 {
			if wait := period - e.now().Sub(start); wait > 0 {
				timer.Reset(wait)
				select {
				case <-ctx.Done():
					return nil
				case <-timer.C:
				}
			}
		}
	}
	return nil
}
