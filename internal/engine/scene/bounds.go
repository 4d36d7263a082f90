package scene

import "github.com/Faultbox/vbag/internal/engine/geometry"

// Bounds returns the world-space box enclosing every renderable object. ok is
// false when the scene has nothing to draw.
func (s *Scene) Bounds() (b geometry.AABB, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range s.order {
		o := s.slots[s.names[name].index].obj
		local, has := localBounds(o)
		if !has {
			continue
		}
		world := local.Transform(o.Transform.Matrix())
		if !ok {
			b, ok = world, true
			continue
		}
		b = b.Union(world)
	}
	return b, ok
}

func localBounds(o *Object) (geometry.AABB, bool) {
	switch o.Kind {
	case KindGraph:
		return geometry.Bounds(o.Graph.Vertices())
	case KindTriangleMesh:
		return geometry.Bounds(o.TriangleMesh.Vertices())
	case KindQuadMesh:
		return o.QuadMesh.Bounds()
	}
	return geometry.AABB{}, false
}
