// Package demo builds the showcase scene shared by the vbag binaries and the
// keyboard controls that drive it.
package demo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/config"
	"github.com/Faultbox/vbag/internal/engine/camera"
	"github.com/Faultbox/vbag/internal/engine/geometry"
	"github.com/Faultbox/vbag/internal/engine/lighting"
	"github.com/Faultbox/vbag/internal/engine/scene"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/internal/logger"
	"github.com/Faultbox/vbag/pkg/math"
)

// Object names in the demo scene.
const (
	NamePyramid = "pyramid"
	NameCube    = "cube"
	NameFloor   = "floor"
	NameLight   = "light"
	NameCamera  = "camera"
)

// CellAspect is the height to width ratio of a terminal character cell.
const CellAspect = 2

// ErrUnknownColor is returned for colour names missing from the palette.
var ErrUnknownColor = errors.New("unknown colour")

// World is the demo scene and handles to its objects.
type World struct {
	Scene *scene.Scene
	Orbit *camera.Orbit
	FOV   float32

	Pyramid scene.Handle
	Cube    scene.Handle
	Floor   scene.Handle
	Light   scene.Handle
	Camera  scene.Handle
}

// Aspect returns the camera aspect ratio that keeps geometry undistorted on a
// surface of width x height cells, each cellAspect times taller than wide.
// The projection scales x by aspect before mapping to the surface width, so
// the ratio is height over width.
func Aspect(width, height int, cellAspect float32) float32 {
	if width < 1 || height < 1 {
		return 1
	}
	return cellAspect * float32(height) / float32(width)
}

// Color looks up a palette colour by name.
func Color(name string) (surface.Color, error) {
	c, ok := surface.Named(name)
	if !ok {
		return surface.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// Build creates the demo scene: a cube parented to a double pyramid, a floor
// plane, a point light and an orbiting main camera.
func Build(cfg *config.Config, aspect float32) (*World, error) {
	wire, err := Color(cfg.Render.Wireframe)
	if err != nil {
		return nil, err
	}
	mesh, err := Color(cfg.Render.Mesh)
	if err != nil {
		return nil, err
	}

	w := &World{Scene: scene.New(), FOV: cfg.Camera.FOV}
	sc := w.Scene

	pyramid := scene.NewGraph(NamePyramid, geometry.Pyramid())
	pyramid.Color = wire
	if w.Pyramid, err = sc.Add(pyramid); err != nil {
		return nil, err
	}

	cube := scene.NewGraph(NameCube, geometry.Cube(10))
	cube.Color = wire
	if w.Cube, err = sc.AddUnder(w.Pyramid, cube); err != nil {
		return nil, err
	}
	if err := sc.Translate(w.Cube, math.Vec3{X: 30}); err != nil {
		return nil, err
	}

	floor := scene.NewQuadMesh(NameFloor, geometry.Plane(6, 120))
	floor.Color = mesh
	if w.Floor, err = sc.Add(floor); err != nil {
		return nil, err
	}
	if err := sc.Translate(w.Floor, math.Vec3{Y: -25}); err != nil {
		return nil, err
	}

	if w.Light, err = sc.Add(scene.NewPointLight(NameLight, lighting.NewPointLight(1))); err != nil {
		return nil, err
	}
	if err := sc.Translate(w.Light, math.Vec3{X: 40, Y: 60, Z: 40}); err != nil {
		return nil, err
	}

	cam, err := camera.New(cfg.Camera.FOV, aspect)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if w.Camera, err = sc.Add(scene.NewCamera(NameCamera, cam)); err != nil {
		return nil, err
	}
	if err := sc.SetMainCamera(NameCamera); err != nil {
		return nil, err
	}

	w.Orbit = camera.NewOrbit(cfg.Camera.Distance)
	w.Orbit.Pitch = math.DegToRad(cfg.Camera.Pitch)
	w.Orbit.Yaw = math.DegToRad(cfg.Camera.Yaw)
	w.Orbit.RotateSpeed = cfg.Camera.RotateSpeed
	w.Orbit.ZoomSpeed = cfg.Camera.ZoomSpeed
	if cfg.Camera.Distance <= 0 {
		err = w.FitCamera()
	} else {
		err = w.SyncCamera()
	}
	if err != nil {
		return nil, err
	}

	logger.Named("demo").Debug("scene built",
		zap.Int("objects", sc.Len()),
		zap.Float32("aspect", aspect),
		zap.Float32("distance", w.Orbit.Distance),
	)
	return w, nil
}

// SyncCamera moves the camera object to the orbit's current pose.
func (w *World) SyncCamera() error {
	return w.Scene.SetMatrix(w.Camera, w.Orbit.Matrix())
}

// FitCamera centres the orbit on the scene and backs off until everything
// drawable is in view.
func (w *World) FitCamera() error {
	b, ok := w.Scene.Bounds()
	if !ok {
		return w.SyncCamera()
	}
	w.Orbit.FitToRadius(b.Center(), b.Radius(), w.FOV)
	return w.SyncCamera()
}
