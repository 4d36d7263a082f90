// Package camera provides the pinhole projection used by the pipeline and an
// orbit controller that positions it.
package camera

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vbag/pkg/math"
)

// Camera errors.
var (
	ErrInvalidFOV    = errors.New("field of view must be in (0, 180) degrees")
	ErrInvalidAspect = errors.New("aspect ratio must be positive")
)

// Camera is a pinhole camera. The projection is fixed at construction; the
// world-to-camera matrix follows the owning scene node through Update.
type Camera struct {
	FOVDegrees  float32
	AspectRatio float32

	perspective   math.Mat4
	worldToCamera math.Mat4
}

// New creates a camera at the origin looking down -Z.
func New(fovDegrees, aspect float32) (*Camera, error) {
	if !(fovDegrees > 0 && fovDegrees < 180) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFOV, fovDegrees)
	}
	if !(aspect > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAspect, aspect)
	}
	return &Camera{
		FOVDegrees:    fovDegrees,
		AspectRatio:   aspect,
		perspective:   math.Perspective(fovDegrees, aspect),
		worldToCamera: math.Identity(),
	}, nil
}

// SetAspectRatio rebuilds the projection for a new aspect ratio, for example
// after the output surface was resized.
func (c *Camera) SetAspectRatio(aspect float32) error {
	if !(aspect > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, aspect)
	}
	c.AspectRatio = aspect
	c.perspective = math.Perspective(c.FOVDegrees, aspect)
	return nil
}

// Perspective returns the projection matrix.
func (c *Camera) Perspective() math.Mat4 {
	return c.perspective
}

// WorldToCamera returns the cached view matrix.
func (c *Camera) WorldToCamera() math.Mat4 {
	return c.worldToCamera
}

// Update recomputes the view matrix from the camera's world matrix, which
// must be rigid (rotation and translation only).
func (c *Camera) Update(world math.Mat4) {
	c.worldToCamera = RigidInverse(world)
}

// Clone returns an independent copy.
func (c *Camera) Clone() *Camera {
	cp := *c
	return &cp
}

// RigidInverse inverts a rotation+translation matrix by transposing the
// rotation block and rotating the negated translation.
func RigidInverse(m math.Mat4) math.Mat4 {
	return math.Mat4{
		m[0], m[4], m[8], -(m[0]*m[3] + m[4]*m[7] + m[8]*m[11]),
		m[1], m[5], m[9], -(m[1]*m[3] + m[5]*m[7] + m[9]*m[11]),
		m[2], m[6], m[10], -(m[2]*m[3] + m[6]*m[7] + m[10]*m[11]),
		0, 0, 0, 1,
	}
}
