package scene

import (
	"fmt"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vbag/internal/engine/camera"
	"github.com/Faultbox/vbag/internal/engine/geometry"
	"github.com/Faultbox/vbag/internal/engine/lighting"
	"github.com/Faultbox/vbag/pkg/math"
)

func cube(name string) *Object {
	return NewGraph(name, geometry.Cube(1))
}

func mustAdd(t *testing.T, s *Scene, o *Object) Handle {
	t.Helper()
	h, err := s.Add(o)
	require.NoError(t, err)
	return h
}

func mustCamera(t *testing.T, name string) *Object {
	t.Helper()
	c, err := camera.New(60, 1)
	require.NoError(t, err)
	return NewCamera(name, c)
}

func translation(t *testing.T, s *Scene, h Handle) math.Vec3 {
	t.Helper()
	o, err := s.Object(h)
	require.NoError(t, err)
	return o.Transform.Translation()
}

func TestAddValidates(t *testing.T) {
	s := New()
	mustAdd(t, s, cube("a"))

	_, err := s.Add(cube("a"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.Add(nil)
	assert.ErrorIs(t, err, ErrNilObject)

	_, err = s.Add(NewGraph("empty", nil))
	assert.ErrorIs(t, err, ErrInvalidObject)

	_, err = s.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestAddChild(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	b := mustAdd(t, s, cube("b"))
	c := mustAdd(t, s, cube("c"))

	require.NoError(t, s.AddChild(a, b))
	require.NoError(t, s.AddChild(b, c))

	assert.ErrorIs(t, s.AddChild(a, a), ErrChildIsParent)
	assert.ErrorIs(t, s.AddChild(c, a), ErrCycle)
	assert.ErrorIs(t, s.AddChild(b, a), ErrCycle)
	assert.ErrorIs(t, s.AddChild(a, Handle{}), ErrStaleHandle)

	// Re-parenting detaches from the old parent.
	require.NoError(t, s.AddChild(a, c))
	children, err := s.Children(b)
	require.NoError(t, err)
	assert.Empty(t, children)
	children, err = s.Children(a)
	require.NoError(t, err)
	assert.Equal(t, []Handle{b, c}, children)

	parent, err := s.Parent(c)
	require.NoError(t, err)
	assert.Equal(t, a, parent)

	// Adding the same link twice is a no-op.
	require.NoError(t, s.AddChild(a, c))
	children, _ = s.Children(a)
	assert.Len(t, children, 2)
}

func TestRemoveChild(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	b := mustAdd(t, s, cube("b"))
	require.NoError(t, s.AddChild(a, b))

	assert.ErrorIs(t, s.RemoveChild(b, a), ErrNotChild)
	require.NoError(t, s.RemoveChild(a, b))

	parent, err := s.Parent(b)
	require.NoError(t, err)
	assert.False(t, parent.Valid())
	assert.Equal(t, 2, s.Len(), "detached child stays in the scene")
}

func TestRemoveRecursive(t *testing.T) {
	s := New()
	root := mustAdd(t, s, cube("root"))
	a, err := s.AddUnder(root, cube("a"))
	require.NoError(t, err)
	b, err := s.AddUnder(a, cube("b"))
	require.NoError(t, err)
	keep := mustAdd(t, s, cube("keep"))
	cam := mustAdd(t, s, mustCamera(t, "cam"))
	require.NoError(t, s.AddChild(b, cam))
	require.NoError(t, s.SetMainCamera("cam"))

	require.NoError(t, s.Remove("a"))
	assert.Equal(t, 2, s.Len())

	for _, h := range []Handle{a, b, cam} {
		_, err := s.Object(h)
		assert.ErrorIs(t, err, ErrStaleHandle)
	}
	_, ok := s.MainCamera()
	assert.False(t, ok, "removing the main camera clears it")

	children, err := s.Children(root)
	require.NoError(t, err)
	assert.Empty(t, children)
	_, err = s.Object(keep)
	assert.NoError(t, err)

	// Freed slots are reused under a new generation.
	c := mustAdd(t, s, cube("a"))
	_, err = s.Object(a)
	assert.ErrorIs(t, err, ErrStaleHandle)
	_, err = s.Object(c)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Remove("a-gone"), ErrNotFound)
}

func TestAddUnderRollsBack(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	require.NoError(t, s.Remove("a"))

	_, err := s.AddUnder(a, cube("b"))
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.Zero(t, s.Len())
}

func TestSetMainCamera(t *testing.T) {
	s := New()
	mustAdd(t, s, cube("mesh"))
	cam := mustAdd(t, s, mustCamera(t, "cam"))
	mustAdd(t, s, mustCamera(t, "spare"))

	assert.ErrorIs(t, s.SetMainCamera("nope"), ErrNotFound)
	assert.ErrorIs(t, s.SetMainCamera("mesh"), ErrNotCamera)

	_, ok := s.MainCamera()
	assert.False(t, ok)

	require.NoError(t, s.SetMainCamera("cam"))
	h, ok := s.MainCamera()
	assert.True(t, ok)
	assert.Equal(t, cam, h)
}

func TestTranslateRoundTrip(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	b, err := s.AddUnder(a, cube("b"))
	require.NoError(t, err)
	require.NoError(t, s.Translate(b, math.Vec3{X: 1}))

	before, _ := s.Object(b)
	v := math.Vec3{X: 3, Y: -2, Z: 7}
	require.NoError(t, s.Translate(a, v))
	assert.Equal(t, v, translation(t, s, a))
	assert.Equal(t, math.Vec3{X: 4, Y: -2, Z: 7}, translation(t, s, b))

	require.NoError(t, s.Translate(a, v.Negate()))
	after, _ := s.Object(b)
	assert.True(t, after.Transform.Matrix().ApproxEqual(before.Transform.Matrix()))
}

func TestRotateAboutOrigin(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	require.NoError(t, s.Translate(a, math.Vec3{X: 5}))
	require.NoError(t, s.Rotate(a, math.Vec3{Z: math32.Pi / 2}))
	assert.True(t, translation(t, s, a).ApproxEqual(math.Vec3{Y: 5}))
}

func TestRotateInPlace(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	b, err := s.AddUnder(a, cube("b"))
	require.NoError(t, err)
	require.NoError(t, s.Translate(a, math.Vec3{X: 5}))
	require.NoError(t, s.Translate(b, math.Vec3{Z: 2}))

	require.NoError(t, s.RotateInPlace(a, math.Vec3{Y: math32.Pi / 2}))

	assert.True(t, translation(t, s, a).ApproxEqual(math.Vec3{X: 5}), "pivot keeps its translation")
	assert.True(t, translation(t, s, b).ApproxEqual(math.Vec3{X: 7}), "child swings about the pivot: %v", translation(t, s, b))

	o, _ := s.Object(a)
	assert.True(t, o.Transform.Right().ApproxEqual(math.Vec3{Z: -1}))
	assert.True(t, o.Transform.Forward().ApproxEqual(math.Vec3{X: 1}))
}

func TestRotateInPlaceKeepsTranslation(t *testing.T) {
	tests := []struct {
		name  string
		euler math.Vec3
	}{
		{"none", math.Vec3{}},
		{"x", math.Vec3{X: 0.5}},
		{"y", math.Vec3{Y: -1.2}},
		{"z half turn", math.Vec3{Z: math32.Pi}},
		{"mixed", math.Vec3{X: 0.3, Y: 0.7, Z: -0.2}},
		{"large", math.Vec3{X: 2.5, Y: -1.1, Z: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			a := mustAdd(t, s, cube("a"))
			require.NoError(t, s.Translate(a, math.Vec3{X: 5, Y: -3, Z: 2}))
			require.NoError(t, s.Rotate(a, math.Vec3{X: 0.4, Y: -0.9, Z: 1.3}))
			require.NoError(t, s.Scale(a, math.Vec3{X: 2, Y: 1, Z: 3}))

			before, _ := s.Object(a)
			b := before.Transform.Matrix()
			require.NoError(t, s.RotateInPlace(a, tt.euler))
			after, _ := s.Object(a)
			m := after.Transform.Matrix()

			want, got := b.Translation(), m.Translation()
			assert.InDelta(t, want.X, got.X, 1e-4)
			assert.InDelta(t, want.Y, got.Y, 1e-4)
			assert.InDelta(t, want.Z, got.Z, 1e-4)

			r := math.RotateEuler(tt.euler)
			for col := 0; col < 3; col++ {
				wantCol := r.TransformDirection(b.Column(col))
				gotCol := m.Column(col)
				assert.InDelta(t, wantCol.X, gotCol.X, 1e-4, "column %d", col)
				assert.InDelta(t, wantCol.Y, gotCol.Y, 1e-4, "column %d", col)
				assert.InDelta(t, wantCol.Z, gotCol.Z, 1e-4, "column %d", col)
			}
		})
	}
}

func TestScale(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	m, err := s.AddUnder(a, cube("m"))
	require.NoError(t, err)
	cam, err := s.AddUnder(a, mustCamera(t, "cam"))
	require.NoError(t, err)
	require.NoError(t, s.Translate(a, math.Vec3{Y: 3}))

	assert.ErrorIs(t, s.Scale(cam, math.Vec3{X: 2, Y: 2, Z: 2}), ErrScaleCamera)

	require.NoError(t, s.Scale(a, math.Vec3{X: 2, Y: 2, Z: 2}))
	assert.Equal(t, math.Vec3{Y: 3}, translation(t, s, a), "translation is kept")

	o, _ := s.Object(m)
	assert.InDelta(t, 2, o.Transform.Matrix().Column(0).Length(), 1e-6)

	c, _ := s.Object(cam)
	assert.InDelta(t, 1, c.Transform.Matrix().Column(0).Length(), 1e-6, "cameras are skipped")
}

func TestBasisIsNormalized(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	require.NoError(t, s.Scale(a, math.Vec3{X: 3, Y: 4, Z: 5}))

	o, _ := s.Object(a)
	tr := o.Transform
	assert.InDelta(t, 1, tr.Right().Length(), 1e-6)
	assert.InDelta(t, 1, tr.Up().Length(), 1e-6)
	assert.InDelta(t, 1, tr.Forward().Length(), 1e-6)
	assert.Equal(t, math.Vec3{X: 1}, tr.Right())
	assert.Equal(t, math.Vec3{Y: 1}, tr.Up())
	assert.Equal(t, math.Vec3{Z: 1}, tr.Forward())

	m := tr.Matrix()
	assert.InDelta(t, 3, m.Column(0).Length(), 1e-6, "scale stays in the matrix")
	assert.InDelta(t, 4, m.Column(1).Length(), 1e-6)
	assert.InDelta(t, 5, m.Column(2).Length(), 1e-6)
}

func TestCameraFollowsTransform(t *testing.T) {
	s := New()
	cam := mustAdd(t, s, mustCamera(t, "cam"))
	require.NoError(t, s.SetMainCamera("cam"))
	require.NoError(t, s.Translate(cam, math.Vec3{Z: 10}))

	var snap Snapshot
	s.Snapshot(&snap)
	require.True(t, snap.HasCamera)
	p := snap.Camera.WorldToCamera().TransformPoint(math.Vec3{})
	assert.True(t, p.ApproxEqual(math.Vec3{Z: -10}), "got %v", p)

	orbit := camera.NewOrbit(20)
	require.NoError(t, s.SetMatrix(cam, orbit.Matrix()))
	s.Snapshot(&snap)
	p = snap.Camera.WorldToCamera().TransformPoint(math.Vec3{})
	assert.True(t, p.ApproxEqual(math.Vec3{Z: -20}), "got %v", p)
}

func TestSetMatrixKeepsRelativePose(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	b, err := s.AddUnder(a, cube("b"))
	require.NoError(t, err)
	require.NoError(t, s.Translate(b, math.Vec3{X: 1}))

	require.NoError(t, s.SetMatrix(a, math.Translate(0, 5, 0)))
	assert.True(t, translation(t, s, a).ApproxEqual(math.Vec3{Y: 5}))
	assert.True(t, translation(t, s, b).ApproxEqual(math.Vec3{X: 1, Y: 5}))
}

func TestSetMatrixRejectsScaledCamera(t *testing.T) {
	s := New()
	cam := mustAdd(t, s, mustCamera(t, "cam"))

	err := s.SetMatrix(cam, math.Translate(0, 0, 10).Mul(math.Scale(2, 2, 2)))
	assert.ErrorIs(t, err, ErrScaleCamera)
	c, _ := s.Object(cam)
	assert.Equal(t, math.Identity(), c.Transform.Matrix(), "rejected matrix is not applied")

	world := math.Translate(0, 0, 10).Mul(math.RotateY(0.6))
	require.NoError(t, s.SetMatrix(cam, world))
	c, _ = s.Object(cam)
	assert.True(t, c.Camera.WorldToCamera().Mul(c.Transform.Matrix()).ApproxEqual(math.Identity()))
}

func TestSetMatrixKeepsDescendantCamerasRigid(t *testing.T) {
	s := New()
	a := mustAdd(t, s, cube("a"))
	m, err := s.AddUnder(a, cube("m"))
	require.NoError(t, err)
	cam, err := s.AddUnder(a, mustCamera(t, "cam"))
	require.NoError(t, err)
	require.NoError(t, s.Translate(m, math.Vec3{X: 1}))
	require.NoError(t, s.Translate(cam, math.Vec3{Z: 10}))

	require.NoError(t, s.SetMatrix(a, math.Scale(3, 3, 3)))

	o, _ := s.Object(m)
	assert.InDelta(t, 3, o.Transform.Matrix().Column(0).Length(), 1e-5, "meshes take the scale")

	c, _ := s.Object(cam)
	w := c.Transform.Matrix()
	assert.True(t, w.IsRigid(1e-4), "camera stays unscaled: %v", w)
	assert.True(t, w.Translation().ApproxEqual(math.Vec3{Z: 30}), "camera is carried: %v", w.Translation())
	assert.True(t, c.Camera.WorldToCamera().Mul(w).ApproxEqual(math.Identity()))

	require.NoError(t, s.SetMatrix(a, math.Translate(0, 2, 0).Mul(math.RotateY(math32.Pi/2))))
	c, _ = s.Object(cam)
	w = c.Transform.Matrix()
	assert.True(t, w.IsRigid(1e-4), "camera stays unscaled: %v", w)
	assert.True(t, c.Camera.WorldToCamera().Mul(w).ApproxEqual(math.Identity()))
}

func TestUpdateResyncsCamera(t *testing.T) {
	s := New()
	cam := mustAdd(t, s, mustCamera(t, "cam"))
	other := mustAdd(t, s, cube("other"))
	require.NoError(t, s.Translate(other, math.Vec3{Z: 7}))
	moved, _ := s.Object(other)

	require.NoError(t, s.Update(cam, func(o *Object) {
		o.Transform = moved.Transform
	}))
	c, _ := s.Object(cam)
	p := c.Camera.WorldToCamera().TransformPoint(math.Vec3{})
	assert.True(t, p.ApproxEqual(math.Vec3{Z: -7}), "got %v", p)
}

func TestEachOrder(t *testing.T) {
	s := New()
	for _, n := range []string{"c", "a", "b"} {
		mustAdd(t, s, cube(n))
	}
	var names []string
	s.Each(func(_ Handle, o *Object) bool {
		names = append(names, o.Name)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)

	count := 0
	s.Each(func(Handle, *Object) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestSnapshot(t *testing.T) {
	s := New()
	mustAdd(t, s, cube("mesh"))
	l := mustAdd(t, s, NewPointLight("light", lighting.NewPointLight(1)))
	mustAdd(t, s, mustCamera(t, "cam"))
	mustAdd(t, s, mustCamera(t, "spare"))
	require.NoError(t, s.SetMainCamera("cam"))
	require.NoError(t, s.Translate(l, math.Vec3{Y: 4}))

	var snap Snapshot
	s.Snapshot(&snap)
	assert.Equal(t, "cam", snap.CameraName)
	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, "light", snap.Nodes[0].Name)
	assert.Equal(t, math.Vec3{Y: 4}, snap.Nodes[0].Light.Position)
	assert.Equal(t, KindGraph, snap.Nodes[1].Kind)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	s := New()
	h := mustAdd(t, s, cube("a"))
	require.NoError(t, s.Update(h, func(o *Object) {
		o.Name = "renamed"
		o.Color.R = 0.5
	}))
	o, err := s.Object(h)
	require.NoError(t, err)
	assert.Equal(t, "a", o.Name)
	assert.Equal(t, float32(0.5), o.Color.R)
}

func TestDeepHierarchy(t *testing.T) {
	s := New()
	root := mustAdd(t, s, cube("n0"))
	prev := root
	const depth = 2000
	var last Handle
	for i := 1; i < depth; i++ {
		h, err := s.AddUnder(prev, cube(fmt.Sprintf("n%d", i)))
		require.NoError(t, err)
		prev, last = h, h
	}
	require.NoError(t, s.Translate(root, math.Vec3{X: 1}))
	assert.Equal(t, math.Vec3{X: 1}, translation(t, s, last))

	require.NoError(t, s.Remove("n0"))
	assert.Zero(t, s.Len())
}

func TestConcurrentSnapshot(t *testing.T) {
	s := New()
	h := mustAdd(t, s, cube("a"))
	mustAdd(t, s, mustCamera(t, "cam"))
	require.NoError(t, s.SetMainCamera("cam"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = s.RotateInPlace(h, math.Vec3{Y: 0.01})
		}
	}()
	go func() {
		defer wg.Done()
		var snap Snapshot
		for i := 0; i < 500; i++ {
			s.Snapshot(&snap)
		}
	}()
	wg.Wait()
	assert.True(t, translation(t, s, h).ApproxEqual(math.Vec3{}))
}

func TestBounds(t *testing.T) {
	s := New()
	_, ok := s.Bounds()
	assert.False(t, ok)

	mustAdd(t, s, mustCamera(t, "cam"))
	_, ok = s.Bounds()
	assert.False(t, ok, "cameras have no extent")

	a := mustAdd(t, s, cube("a"))
	b := mustAdd(t, s, cube("b"))
	require.NoError(t, s.Translate(a, math.Vec3{X: -5}))
	require.NoError(t, s.Translate(b, math.Vec3{Y: 3}))

	box, ok := s.Bounds()
	require.True(t, ok)
	assert.True(t, box.Min.ApproxEqual(math.Vec3{X: -5.5, Y: -0.5, Z: -0.5}), "%v", box.Min)
	assert.True(t, box.Max.ApproxEqual(math.Vec3{X: 0.5, Y: 3.5, Z: 0.5}), "%v", box.Max)
}
