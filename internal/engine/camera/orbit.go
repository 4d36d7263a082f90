package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vbag/pkg/math"
)

// Orbit positions a camera on a sphere around a centre point.
type Orbit struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	RotateSpeed float32 // radians per second
	ZoomSpeed   float32 // fraction of distance per second
}

// NewOrbit creates an orbit controller with default settings.
func NewOrbit(distance float32) *Orbit {
	return &Orbit{
		Distance:    distance,
		MinDistance: 1,
		MaxDistance: 1000,
		MinPitch:    -1.5,
		MaxPitch:    1.5,
		RotateSpeed: 1.5,
		ZoomSpeed:   1,
	}
}

// Position returns the camera position in world space.
func (o *Orbit) Position() math.Vec3 {
	sp, cp := math32.Sincos(o.Pitch)
	sy, cy := math32.Sincos(o.Yaw)
	return o.Center.Add(math.Vec3{
		X: o.Distance * cp * sy,
		Y: o.Distance * sp,
		Z: o.Distance * cp * cy,
	})
}

// Matrix returns the camera's world matrix, looking at the centre.
func (o *Orbit) Matrix() math.Mat4 {
	return math.LookAt(o.Position(), o.Center, math.Up())
}

// Rotate turns the camera by yaw/pitch steps scaled by RotateSpeed and dt.
func (o *Orbit) Rotate(yaw, pitch, dt float32) {
	o.Yaw += yaw * o.RotateSpeed * dt
	o.Pitch += pitch * o.RotateSpeed * dt
	o.Pitch = clamp(o.Pitch, o.MinPitch, o.MaxPitch)
}

// Zoom moves towards (positive delta) or away from the centre.
func (o *Orbit) Zoom(delta, dt float32) {
	o.Distance -= delta * o.Distance * o.ZoomSpeed * dt
	o.Distance = clamp(o.Distance, o.MinDistance, o.MaxDistance)
}

// FitToRadius centres on c and backs off far enough to frame a sphere of
// radius r with the given vertical field of view.
func (o *Orbit) FitToRadius(c math.Vec3, r, fovDegrees float32) {
	o.Center = c
	half := math.DegToRad(fovDegrees) / 2
	o.Distance = clamp(r/math32.Sin(half), o.MinDistance, o.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
