package scene

import (
	"fmt"

	"github.com/Faultbox/vbag/pkg/math"
)

// walk visits h and its descendants breadth-first. Callers hold the lock.
func (s *Scene) walk(h Handle, fn func(Handle, *Object)) {
	queue := []Handle{h}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		o, err := s.get(cur)
		if err != nil {
			continue
		}
		fn(cur, o)
		queue = append(queue, o.children...)
	}
}

// propagate resolves h under the write lock, builds the operation from the
// root object and applies it to the root and every descendant.
func (s *Scene) propagate(h Handle, prepare func(root *Object) (func(*Object), error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.get(h)
	if err != nil {
		return err
	}
	op, err := prepare(root)
	if err != nil {
		return err
	}
	s.walk(h, func(_ Handle, o *Object) {
		op(o)
		o.syncCamera()
	})
	return nil
}

// Scale scales the local basis of h and of each descendant by v. Cameras
// cannot be scaled: scaling one directly fails and descendant cameras are
// skipped.
func (s *Scene) Scale(h Handle, v math.Vec3) error {
	return s.propagate(h, func(root *Object) (func(*Object), error) {
		if root.Kind == KindCamera {
			return nil, fmt.Errorf("%w: %q", ErrScaleCamera, root.Name)
		}
		return func(o *Object) {
			if o.Kind != KindCamera {
				o.Transform.applyScale(v)
			}
		}, nil
	})
}

// Rotate applies the Euler rotation (radians, X then Y then Z) about the world
// origin to h and its descendants.
func (s *Scene) Rotate(h Handle, euler math.Vec3) error {
	r := math.RotateEuler(euler)
	return s.propagate(h, func(*Object) (func(*Object), error) {
		return func(o *Object) { o.Transform.applyRotation(r) }, nil
	})
}

// RotateInPlace rotates h about its own translation, leaving that translation
// unchanged. Descendants are carried rigidly about the same pivot.
func (s *Scene) RotateInPlace(h Handle, euler math.Vec3) error {
	r := math.RotateEuler(euler)
	return s.propagate(h, func(root *Object) (func(*Object), error) {
		t := root.Transform.Translation()
		d := math.Translate(t.X, t.Y, t.Z).Mul(r).Mul(math.Translate(-t.X, -t.Y, -t.Z))
		return func(o *Object) { o.Transform.applyRotation(d) }, nil
	})
}

// Translate moves h and its descendants by v.
func (s *Scene) Translate(h Handle, v math.Vec3) error {
	return s.propagate(h, func(*Object) (func(*Object), error) {
		return func(o *Object) { o.Transform.applyTranslation(v) }, nil
	})
}

// rigidTolerance bounds the basis drift accepted as "unscaled" for cameras.
const rigidTolerance = 1e-4

// SetMatrix replaces the world matrix of h. Descendants receive the same
// change, so their pose relative to h is kept. A camera only accepts a rigid
// matrix; camera descendants keep the rotation and translation of the change
// and drop any scale or shear.
func (s *Scene) SetMatrix(h Handle, m math.Mat4) error {
	return s.propagate(h, func(root *Object) (func(*Object), error) {
		if root.Kind == KindCamera && !m.IsRigid(rigidTolerance) {
			return nil, fmt.Errorf("%w: %q", ErrScaleCamera, root.Name)
		}
		delta := m.Mul(root.Transform.Matrix().Inverse())
		return func(o *Object) {
			switch {
			case o == root:
				o.Transform.m = m
			case o.Kind == KindCamera:
				o.Transform.m = carryRigid(delta, o.Transform.m)
			default:
				o.Transform.m = delta.Mul(o.Transform.m)
			}
		}, nil
	})
}

// carryRigid applies delta to a camera matrix without letting scale in.
// The camera position follows delta exactly. Its orientation keeps only the
// rotation of delta, or stays put when delta collapses an axis.
func carryRigid(delta, cam math.Mat4) math.Mat4 {
	pos := delta.TransformPoint(cam.Translation())
	r, ok := delta.Mul(cam).Orthonormalize()
	if !ok {
		r = cam
	}
	r[3], r[7], r[11] = pos.X, pos.Y, pos.Z
	return r
}
