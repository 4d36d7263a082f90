package scene

import (
	"github.com/Faultbox/vbag/internal/engine/camera"
	"github.com/Faultbox/vbag/internal/engine/geometry"
	"github.com/Faultbox/vbag/internal/engine/lighting"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/pkg/math"
)

// Kind selects the payload an Object carries.
type Kind uint8

// Object kinds.
const (
	KindGraph Kind = iota + 1
	KindTriangleMesh
	KindQuadMesh
	KindCamera
	KindPointLight
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindTriangleMesh:
		return "triangle-mesh"
	case KindQuadMesh:
		return "quad-mesh"
	case KindCamera:
		return "camera"
	case KindPointLight:
		return "point-light"
	default:
		return "unknown"
	}
}

// Renderable reports whether the pipeline draws objects of this kind.
func (k Kind) Renderable() bool {
	return k == KindGraph || k == KindTriangleMesh || k == KindQuadMesh
}

// Object is a named scene node. Exactly one payload field, selected by Kind,
// is set. After Scene.Add the scene owns the object; change it through Scene
// methods only.
type Object struct {
	Name      string
	Kind      Kind
	Color     surface.Color
	Transform Transform

	Graph        *geometry.Graph[math.Vec3]
	TriangleMesh *geometry.TriangleMesh
	QuadMesh     *geometry.QuadMesh
	Camera       *camera.Camera
	Light        *lighting.PointLight

	parent   Handle
	children []Handle
}

func newObject(name string, kind Kind) *Object {
	return &Object{
		Name:      name,
		Kind:      kind,
		Color:     surface.White,
		Transform: NewTransform(),
	}
}

// NewGraph wraps a wireframe graph.
func NewGraph(name string, g *geometry.Graph[math.Vec3]) *Object {
	o := newObject(name, KindGraph)
	o.Graph = g
	return o
}

// NewTriangleMesh wraps a triangle mesh.
func NewTriangleMesh(name string, m *geometry.TriangleMesh) *Object {
	o := newObject(name, KindTriangleMesh)
	o.TriangleMesh = m
	return o
}

// NewQuadMesh wraps a quad mesh.
func NewQuadMesh(name string, m *geometry.QuadMesh) *Object {
	o := newObject(name, KindQuadMesh)
	o.QuadMesh = m
	return o
}

// NewCamera wraps a camera.
func NewCamera(name string, c *camera.Camera) *Object {
	o := newObject(name, KindCamera)
	o.Camera = c
	return o
}

// NewPointLight wraps a point light.
func NewPointLight(name string, l lighting.PointLight) *Object {
	o := newObject(name, KindPointLight)
	o.Light = &l
	return o
}

// valid reports whether the payload matching Kind is present.
func (o *Object) valid() bool {
	switch o.Kind {
	case KindGraph:
		return o.Graph != nil
	case KindTriangleMesh:
		return o.TriangleMesh != nil
	case KindQuadMesh:
		return o.QuadMesh != nil
	case KindCamera:
		return o.Camera != nil
	case KindPointLight:
		return o.Light != nil
	}
	return false
}

// syncCamera refreshes the cached view matrix after the transform changed.
func (o *Object) syncCamera() {
	if o.Kind == KindCamera && o.Camera != nil {
		o.Camera.Update(o.Transform.Matrix())
	}
}
