package geometry

import (
	"fmt"

	"github.com/Faultbox/vbag/pkg/math"
)

// Triangle indexes three vertices of a TriangleMesh.
type Triangle [3]int

// TriangleMesh holds vertices, per-vertex normals and triangles.
type TriangleMesh struct {
	vertices  []math.Vec3
	normals   []math.Vec3
	triangles []Triangle
}

// NewTriangleMesh creates an empty triangle mesh.
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *TriangleMesh) AddVertex(v math.Vec3) int {
	m.vertices = append(m.vertices, v)
	return len(m.vertices) - 1
}

// AddNormal appends a normal. normals[i] belongs to vertices[i] and is
// stored normalized.
func (m *TriangleMesh) AddNormal(n math.Vec3) {
	m.normals = append(m.normals, n.Normalize())
}

// AddTriangle appends a triangle after validating its indices.
func (m *TriangleMesh) AddTriangle(a, b, c int) error {
	for _, i := range [3]int{a, b, c} {
		if i < 0 || i >= len(m.vertices) {
			return fmt.Errorf("%w: triangle index %d (vertices %d)", ErrVertexOutOfRange, i, len(m.vertices))
		}
	}
	m.triangles = append(m.triangles, Triangle{a, b, c})
	return nil
}

// Vertices returns the vertex positions.
func (m *TriangleMesh) Vertices() []math.Vec3 { return m.vertices }

// Normals returns the vertex normals.
func (m *TriangleMesh) Normals() []math.Vec3 { return m.normals }

// Triangles returns the triangle list.
func (m *TriangleMesh) Triangles() []Triangle { return m.triangles }

// Normal returns the normal of vertex i, or the zero vector when none was given.
func (m *TriangleMesh) Normal(i int) math.Vec3 {
	if i < 0 || i >= len(m.normals) {
		return math.Vec3{}
	}
	return m.normals[i]
}

// QuadMeshFromTriangles converts a triangle mesh into a quad mesh where every
// triangle becomes the degenerate quad (v1, v2, v3, v1).
func QuadMeshFromTriangles(tm *TriangleMesh) (*QuadMesh, error) {
	qm := NewQuadMesh()
	for _, v := range tm.vertices {
		qm.AddVertex(v)
	}
	for _, n := range tm.normals {
		qm.AddNormal(n)
	}
	for _, t := range tm.triangles {
		if _, err := qm.AddQuad(t[0], t[1], t[2], t[0]); err != nil {
			return nil, err
		}
	}
	return qm, nil
}
