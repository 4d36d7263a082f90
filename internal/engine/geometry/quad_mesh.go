package geometry

import (
	"fmt"

	"github.com/Faultbox/vbag/pkg/math"
)

// Quad indexes four vertices in winding order.
type Quad [4]int

// QuadVertex is a vertex with the faces and edges that touch it.
type QuadVertex struct {
	Position math.Vec3
	Faces    []int
	Edges    []int
}

// QuadFace is one quad with its edge indices and cached centroid.
type QuadFace struct {
	Vertices Quad
	Edges    [4]int
	Centroid math.Vec3
}

// QuadEdge is an undirected edge shared by up to two faces in a manifold mesh.
type QuadEdge struct {
	A, B     int
	Midpoint math.Vec3
	Faces    []int
}

// Other returns the endpoint of e that is not v.
func (e QuadEdge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// QuadMesh is a quad mesh that keeps vertex, edge and face adjacency in sync
// as faces are added.
type QuadMesh struct {
	vertices []QuadVertex
	normals  []math.Vec3
	faces    []QuadFace
	edges    []QuadEdge
	edgeIdx  map[edgeKey]int
}

// NewQuadMesh creates an empty quad mesh.
func NewQuadMesh() *QuadMesh {
	return &QuadMesh{edgeIdx: make(map[edgeKey]int)}
}

// AddVertex appends a vertex and returns its index.
func (m *QuadMesh) AddVertex(v math.Vec3) int {
	m.vertices = append(m.vertices, QuadVertex{Position: v})
	return len(m.vertices) - 1
}

// AddNormal appends a normalized per-vertex normal.
func (m *QuadMesh) AddNormal(n math.Vec3) {
	m.normals = append(m.normals, n.Normalize())
}

// AddQuad adds a face over four existing vertices and returns its index.
// Edges v1-v2, v2-v3, v3-v4 and v4-v1 are reused when another face already
// created them.
func (m *QuadMesh) AddQuad(v1, v2, v3, v4 int) (int, error) {
	q := Quad{v1, v2, v3, v4}
	for _, i := range q {
		if i < 0 || i >= len(m.vertices) {
			return -1, fmt.Errorf("%w: quad index %d (vertices %d)", ErrVertexOutOfRange, i, len(m.vertices))
		}
	}

	fi := len(m.faces)
	face := QuadFace{Vertices: q}

	var sum math.Vec3
	for k, vi := range q {
		sum = sum.Add(m.vertices[vi].Position)
		ei := m.edge(vi, q[(k+1)%4])
		face.Edges[k] = ei
		m.edges[ei].Faces = appendUnique(m.edges[ei].Faces, fi)
		m.vertices[vi].Faces = appendUnique(m.vertices[vi].Faces, fi)
	}
	face.Centroid = sum.Div(4)

	m.faces = append(m.faces, face)
	return fi, nil
}

// edge returns the index of edge a-b, creating it if needed.
func (m *QuadMesh) edge(a, b int) int {
	key := makeEdgeKey(a, b)
	if ei, ok := m.edgeIdx[key]; ok {
		return ei
	}
	ei := len(m.edges)
	pa, pb := m.vertices[a].Position, m.vertices[b].Position
	m.edges = append(m.edges, QuadEdge{
		A:        a,
		B:        b,
		Midpoint: pa.Add(pb).Scale(0.5),
	})
	m.edgeIdx[key] = ei
	m.vertices[a].Edges = appendUnique(m.vertices[a].Edges, ei)
	m.vertices[b].Edges = appendUnique(m.vertices[b].Edges, ei)
	return ei
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// FindEdge returns the index of the edge joining a and b.
func (m *QuadMesh) FindEdge(a, b int) (int, bool) {
	ei, ok := m.edgeIdx[makeEdgeKey(a, b)]
	return ei, ok
}

// Vertices returns the vertex records.
func (m *QuadMesh) Vertices() []QuadVertex { return m.vertices }

// Normals returns the vertex normals.
func (m *QuadMesh) Normals() []math.Vec3 { return m.normals }

// Faces returns the face records.
func (m *QuadMesh) Faces() []QuadFace { return m.faces }

// Edges returns the edge records.
func (m *QuadMesh) Edges() []QuadEdge { return m.edges }

// Position returns the position of vertex i.
func (m *QuadMesh) Position(i int) math.Vec3 { return m.vertices[i].Position }

// Normal returns the normal of vertex i, or the zero vector when none was given.
func (m *QuadMesh) Normal(i int) math.Vec3 {
	if i < 0 || i >= len(m.normals) {
		return math.Vec3{}
	}
	return m.normals[i]
}

// VertexFaces returns the faces touching vertex i.
func (m *QuadMesh) VertexFaces(i int) []int {
	if i < 0 || i >= len(m.vertices) {
		return nil
	}
	return m.vertices[i].Faces
}

// VertexEdges returns the edges touching vertex i.
func (m *QuadMesh) VertexEdges(i int) []int {
	if i < 0 || i >= len(m.vertices) {
		return nil
	}
	return m.vertices[i].Edges
}

// EdgeFaces returns the faces sharing edge e.
func (m *QuadMesh) EdgeFaces(e int) []int {
	if e < 0 || e >= len(m.edges) {
		return nil
	}
	return m.edges[e].Faces
}

// TriangleMesh splits every quad into (v1, v2, v3) and (v1, v3, v4).
func (m *QuadMesh) TriangleMesh() *TriangleMesh {
	tm := &TriangleMesh{
		vertices:  make([]math.Vec3, len(m.vertices)),
		normals:   append([]math.Vec3(nil), m.normals...),
		triangles: make([]Triangle, 0, 2*len(m.faces)),
	}
	for i, v := range m.vertices {
		tm.vertices[i] = v.Position
	}
	for _, f := range m.faces {
		q := f.Vertices
		tm.triangles = append(tm.triangles,
			Triangle{q[0], q[1], q[2]},
			Triangle{q[0], q[2], q[3]},
		)
	}
	return tm
}
