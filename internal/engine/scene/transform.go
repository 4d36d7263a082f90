package scene

import "github.com/Faultbox/vbag/pkg/math"

// Transform is an object's world matrix. Hierarchical operations live on
// Scene; the methods here touch only this matrix.
type Transform struct {
	m math.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{m: math.Identity()}
}

// Matrix returns the world matrix.
func (t *Transform) Matrix() math.Mat4 { return t.m }

// Translation returns the translation column.
func (t *Transform) Translation() math.Vec3 { return t.m.Translation() }

// Right returns the normalized local X column.
func (t *Transform) Right() math.Vec3 { return t.m.Column(0).Normalize() }

// Up returns the normalized local Y column.
func (t *Transform) Up() math.Vec3 { return t.m.Column(1).Normalize() }

// Forward returns the normalized local Z column.
func (t *Transform) Forward() math.Vec3 { return t.m.Column(2).Normalize() }

// Apply transforms a point by the world matrix.
func (t *Transform) Apply(p math.Vec3) math.Vec3 { return t.m.TransformPoint(p) }

// applyScale scales the local basis. The translation is kept.
func (t *Transform) applyScale(v math.Vec3) {
	t.m = t.m.Mul(math.Scale(v.X, v.Y, v.Z))
}

// applyRotation rotates about the world origin.
func (t *Transform) applyRotation(r math.Mat4) {
	t.m = r.Mul(t.m)
}

func (t *Transform) applyTranslation(v math.Vec3) {
	t.m[3] += v.X
	t.m[7] += v.Y
	t.m[11] += v.Z
}
