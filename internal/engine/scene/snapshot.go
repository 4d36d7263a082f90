package scene

import (
	"github.com/Faultbox/vbag/internal/engine/camera"
	"github.com/Faultbox/vbag/internal/engine/geometry"
	"github.com/Faultbox/vbag/internal/engine/lighting"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/pkg/math"
)

// Node is the drawable state of one object captured at a frame boundary.
type Node struct {
	Name  string
	Kind  Kind
	Color surface.Color
	World math.Mat4

	Graph        *geometry.Graph[math.Vec3]
	TriangleMesh *geometry.TriangleMesh
	QuadMesh     *geometry.QuadMesh
	Light        lighting.PointLight // Position in world space
}

// Snapshot is a consistent copy of everything one frame needs. Geometry is
// shared with the scene, matrices and the camera are copied.
type Snapshot struct {
	Nodes      []Node // renderables and lights in name order
	Camera     camera.Camera
	CameraName string
	HasCamera  bool
}

// Snapshot fills dst under the read lock, reusing its slices. Cameras other
// than the main camera are left out.
func (s *Scene) Snapshot(dst *Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dst.Nodes = dst.Nodes[:0]
	dst.HasCamera = false
	dst.CameraName = ""

	for _, name := range s.order {
		h := s.names[name]
		o := s.slots[h.index].obj

		if o.Kind == KindCamera {
			if h == s.mainCamera {
				dst.Camera = *o.Camera
				dst.CameraName = o.Name
				dst.HasCamera = true
			}
			continue
		}

		n := Node{
			Name:         o.Name,
			Kind:         o.Kind,
			Color:        o.Color,
			World:        o.Transform.Matrix(),
			Graph:        o.Graph,
			TriangleMesh: o.TriangleMesh,
			QuadMesh:     o.QuadMesh,
		}
		if o.Kind == KindPointLight {
			n.Light = *o.Light
			n.Light.Position = o.Transform.Translation()
		}
		dst.Nodes = append(dst.Nodes, n)
	}
}
