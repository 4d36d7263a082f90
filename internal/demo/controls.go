package demo

import (
	"github.com/Faultbox/vbag/internal/engine/animation"
	"github.com/Faultbox/vbag/internal/engine/input"
	"github.com/Faultbox/vbag/pkg/math"
)

// Controls maps held keys to scene changes:
//
//	W/S A/D   move the pyramid (and the cube with it) along Z and X
//	Q/E       spin the cube in place
//	R/F       spin the pyramid in place
//	arrows    orbit the camera
//	Z/X       zoom in and out
//	C         frame the whole scene
//	Escape    quit
type Controls struct {
	World    *World
	Keyboard input.Keyboard

	MoveSpeed float32 // units per second
	TurnSpeed float32 // radians per second
	// Spin is the idle rotation of the pyramid in radians per second.
	Spin float32
}

// NewControls returns controls with default speeds.
func NewControls(w *World, kb input.Keyboard) *Controls {
	return &Controls{
		World:     w,
		Keyboard:  kb,
		MoveSpeed: 40,
		TurnSpeed: 2,
		Spin:      0.5,
	}
}

// Loop is an animation.Func applying one frame of input.
func (c *Controls) Loop(e *animation.Engine) error {
	return c.Step(e.DeltaTime())
}

// Step applies dt seconds of held keys. It returns animation.ErrStop when
// Escape is down.
func (c *Controls) Step(dt float32) error {
	kb := c.Keyboard
	if kb.IsKeyDown(input.KeyEscape) {
		return animation.ErrStop
	}
	w := c.World
	sc := w.Scene

	move := math.Vec3{
		X: axis(kb, input.KeyD, input.KeyA),
		Z: axis(kb, input.KeyS, input.KeyW),
	}
	if !move.IsZero() {
		if err := sc.Translate(w.Pyramid, move.Scale(c.MoveSpeed*dt)); err != nil {
			return err
		}
	}

	if turn := axis(kb, input.KeyE, input.KeyQ); turn != 0 {
		if err := sc.RotateInPlace(w.Cube, math.Vec3{Y: turn * c.TurnSpeed * dt}); err != nil {
			return err
		}
	}

	spin := c.Spin + axis(kb, input.KeyR, input.KeyF)*c.TurnSpeed
	if spin != 0 {
		if err := sc.RotateInPlace(w.Pyramid, math.Vec3{Y: spin * dt}); err != nil {
			return err
		}
	}

	if kb.IsKeyDown(input.KeyC) {
		return w.FitCamera()
	}

	yaw := axis(kb, input.KeyRight, input.KeyLeft)
	pitch := axis(kb, input.KeyUp, input.KeyDown)
	zoom := axis(kb, input.KeyZ, input.KeyX)
	if yaw == 0 && pitch == 0 && zoom == 0 {
		return nil
	}
	w.Orbit.Rotate(yaw, pitch, dt)
	w.Orbit.Zoom(zoom, dt)
	return w.SyncCamera()
}

// axis returns 1 when pos is held, -1 when neg is held and 0 for both or
// neither.
func axis(kb input.Keyboard, pos, neg input.Key) float32 {
	var v float32
	if kb.IsKeyDown(pos) {
		v++
	}
	if kb.IsKeyDown(neg) {
		v--
	}
	return v
}
