package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vbag/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds returns the box enclosing points. ok is false for no points.
func Bounds(points []math.Vec3) (b AABB, ok bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	b = AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b, true
}

// Extend grows b to contain p.
func (b AABB) Extend(p math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: math32.Min(b.Min.X, p.X), Y: math32.Min(b.Min.Y, p.Y), Z: math32.Min(b.Min.Z, p.Z)},
		Max: math.Vec3{X: math32.Max(b.Max.X, p.X), Y: math32.Max(b.Max.Y, p.Y), Z: math32.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the box enclosing both b and o.
func (b AABB) Union(o AABB) AABB {
	return b.Extend(o.Min).Extend(o.Max)
}

// Pad expands the box by d on all sides.
func (b AABB) Pad(d float32) AABB {
	pad := math.Vec3{X: d, Y: d, Z: d}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns half the diagonal: the radius of the enclosing sphere
// centred on Center.
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

// Transform returns the box enclosing b after m, computed from its 8
// corners so rotations stay enclosed.
func (b AABB) Transform(m math.Mat4) AABB {
	lo, hi := b.Min, b.Max
	out := AABB{Min: m.TransformPoint(lo), Max: m.TransformPoint(lo)}
	for i := 1; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		out = out.Extend(m.TransformPoint(c))
	}
	return out
}

// Bounds returns the box enclosing the mesh vertices.
func (m *QuadMesh) Bounds() (AABB, bool) {
	if len(m.vertices) == 0 {
		return AABB{}, false
	}
	b := AABB{Min: m.vertices[0].Position, Max: m.vertices[0].Position}
	for _, v := range m.vertices[1:] {
		b = b.Extend(v.Position)
	}
	return b, true
}
