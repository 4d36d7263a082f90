package demo

import (
	"context"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vbag/internal/config"
	"github.com/Faultbox/vbag/internal/engine/animation"
	"github.com/Faultbox/vbag/internal/engine/input"
	"github.com/Faultbox/vbag/internal/engine/pipeline"
	"github.com/Faultbox/vbag/internal/engine/scene"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/pkg/math"
)

func build(t *testing.T) *World {
	t.Helper()
	w, err := Build(config.Default(), 1)
	require.NoError(t, err)
	return w
}

func translation(t *testing.T, w *World, h scene.Handle) math.Vec3 {
	t.Helper()
	o, err := w.Scene.Object(h)
	require.NoError(t, err)
	return o.Transform.Translation()
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-3, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-3, "z")
}

func TestAspect(t *testing.T) {
	assert.Equal(t, float32(1), Aspect(100, 100, 1))
	assert.Equal(t, float32(0.75), Aspect(800, 600, 1))
	assert.InDelta(t, 2*40.0/120.0, Aspect(120, 40, CellAspect), 1e-6)
	assert.Equal(t, float32(1), Aspect(0, 10, 1))
}

func TestBuild(t *testing.T) {
	w := build(t)
	assert.Equal(t, 5, w.Scene.Len())

	parent, err := w.Scene.Parent(w.Cube)
	require.NoError(t, err)
	assert.Equal(t, w.Pyramid, parent)

	main, ok := w.Scene.MainCamera()
	require.True(t, ok)
	assert.Equal(t, w.Camera, main)
	assertVec(t, w.Orbit.Position(), translation(t, w, w.Camera))
	assertVec(t, math.Vec3{X: 30}, translation(t, w, w.Cube))

	floor, err := w.Scene.Object(w.Floor)
	require.NoError(t, err)
	assert.Equal(t, surface.Teal, floor.Color)

	stats, err := pipeline.New(pipeline.DefaultOptions()).Draw(w.Scene, surface.NewRecorder(200, 200))
	require.NoError(t, err)
	assert.Equal(t, pipeline.Stats{Objects: 3, Lines: 16 + 12, Triangles: 72}, stats)
}

func TestBuildRejectsColour(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Mesh = "ultraviolet"
	_, err := Build(cfg, 1)
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestControlsMove(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic(input.KeyW, input.KeyD))
	c.Spin = 0

	require.NoError(t, c.Step(0.5))
	assertVec(t, math.Vec3{X: 20, Z: -20}, translation(t, w, w.Pyramid))
	assertVec(t, math.Vec3{X: 50, Z: -20}, translation(t, w, w.Cube))
}

func TestControlsOpposingKeysCancel(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic(input.KeyA, input.KeyD))
	c.Spin = 0

	require.NoError(t, c.Step(1))
	assertVec(t, math.Vec3{}, translation(t, w, w.Pyramid))
}

func TestControlsSpinCarriesCube(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic())

	require.NoError(t, c.Step(1))
	s, co := math32.Sincos(0.5)
	assertVec(t, math.Vec3{X: 30 * co, Z: -30 * s}, translation(t, w, w.Cube))
	assertVec(t, math.Vec3{}, translation(t, w, w.Pyramid))
}

func TestControlsTurnCubeInPlace(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic(input.KeyE))
	c.Spin = 0

	require.NoError(t, c.Step(0.25))
	assertVec(t, math.Vec3{X: 30}, translation(t, w, w.Cube))

	o, err := w.Scene.Object(w.Cube)
	require.NoError(t, err)
	s, co := math32.Sincos(0.5)
	assertVec(t, math.Vec3{X: co, Z: -s}, o.Transform.Right())
}

func TestControlsOrbit(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic(input.KeyRight))
	c.Spin = 0
	yaw := w.Orbit.Yaw

	require.NoError(t, c.Step(0.5))
	assert.InDelta(t, yaw+0.75, w.Orbit.Yaw, 1e-5)
	assertVec(t, w.Orbit.Position(), translation(t, w, w.Camera))
}

func TestControlsEscape(t *testing.T) {
	w := build(t)
	c := NewControls(w, input.NewStatic(input.KeyEscape, input.KeyW))
	assert.ErrorIs(t, c.Step(1), animation.ErrStop)
	assertVec(t, math.Vec3{}, translation(t, w, w.Pyramid))
}

func TestControlsDriveEngine(t *testing.T) {
	w := build(t)
	kb := input.NewStatic()
	c := NewControls(w, kb)

	rec := surface.NewRecorder(64, 64)
	e := animation.New(w.Scene, rec,
		animation.WithFrameRate(0),
		animation.WithLoop(func(e *animation.Engine) error {
			if e.Frame() == 3 {
				kb.Press(input.KeyEscape)
			}
			return c.Loop(e)
		}),
	)
	require.NoError(t, e.Run(t.Context()))
	assert.Equal(t, uint64(3), e.Frame())
	assert.Equal(t, 3, rec.Frames)
}

func TestSnapshots(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Width, cfg.Graphics.Height = 80, 60
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Frames = 3
	cfg.Output.Scale = 2

	var frames []Frame
	require.NoError(t, Snapshots(t.Context(), cfg, func(f Frame) { frames = append(frames, f) }))
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.FileExists(t, f.Path)
		assert.Equal(t, 3, f.Stats.Objects)
	}
	assert.NotEqual(t, frames[0].Path, frames[2].Path)
}

func TestSnapshotsCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, Snapshots(ctx, cfg, nil), context.Canceled)
}

func TestFitCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Distance = 0
	w, err := Build(cfg, 1)
	require.NoError(t, err)

	b, ok := w.Scene.Bounds()
	require.True(t, ok)
	assertVec(t, b.Center(), w.Orbit.Center)
	assert.InDelta(t, 2*b.Radius(), w.Orbit.Distance, 1e-3)
	assertVec(t, w.Orbit.Position(), translation(t, w, w.Camera))

	// Zooming away and pressing C frames the scene again.
	w.Orbit.Distance = 500
	require.NoError(t, NewControls(w, input.NewStatic(input.KeyC)).Step(0.1))
	assert.InDelta(t, 2*b.Radius(), w.Orbit.Distance, 1e-3)
}
