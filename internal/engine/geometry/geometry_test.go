package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/vbag/pkg/math"
)

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph[math.Vec3]()
	a := g.AddVertex(math.Vec3{})
	b := g.AddVertex(math.Vec3{X: 1})

	require.NoError(t, g.AddEdge(a, b))
	assert.Equal(t, []int{b}, g.Edges(a))
	assert.Equal(t, []int{a}, g.Edges(b))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, [][2]int{{0, 1}}, g.UniqueEdges())

	err := g.AddEdge(a, 2)
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddEdge(-1, a), ErrVertexOutOfRange)
	assert.Equal(t, 1, g.EdgeCount(), "failed edge must not be stored")
	assert.Nil(t, g.Edges(7))
}

func TestGraphSelfLoop(t *testing.T) {
	g := NewGraph[int]()
	v := g.AddVertex(42)
	require.NoError(t, g.AddEdge(v, v))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, [][2]int{{0, 0}}, g.UniqueEdges())
}

func TestCube(t *testing.T) {
	g := Cube(2)
	assert.Equal(t, 8, g.Order())
	assert.Equal(t, 12, g.EdgeCount())
	assert.Len(t, g.UniqueEdges(), 12)
	for i := 0; i < g.Order(); i++ {
		assert.Len(t, g.Edges(i), 3, "vertex %d", i)
	}
	for _, v := range g.Vertices() {
		assert.InDelta(t, 1, v.X*v.X, 1e-6)
	}
	assert.True(t, Centroid(g).IsZero())
}

func TestAppendUniqueEdges(t *testing.T) {
	g := Cube(2)
	want := g.UniqueEdges()

	got := g.AppendUniqueEdges([][2]int{{9, 9}})
	require.Len(t, got, 13)
	assert.Equal(t, [2]int{9, 9}, got[0], "existing entries are kept")
	assert.Equal(t, want, got[1:])

	buf := make([][2]int, 0, 12)
	allocs := testing.AllocsPerRun(10, func() {
		buf = g.AppendUniqueEdges(buf[:0])
	})
	assert.Zero(t, allocs, "a large enough buffer is reused")
	assert.Equal(t, want, buf)
}

func TestPyramid(t *testing.T) {
	g := Pyramid()
	assert.Equal(t, 9, g.Order())
	assert.Equal(t, 16, g.EdgeCount())
	assert.Len(t, g.Edges(4), 8, "apex joins every base corner")
	assert.Equal(t, math.Vec3{}, g.Vertices()[4])
}

func TestTriangleMesh(t *testing.T) {
	m := NewTriangleMesh()
	for _, v := range []math.Vec3{{}, {X: 1}, {Y: 1}} {
		m.AddVertex(v)
		m.AddNormal(math.Vec3{Z: 5})
	}
	require.NoError(t, m.AddTriangle(0, 1, 2))
	assert.ErrorIs(t, m.AddTriangle(0, 1, 3), ErrVertexOutOfRange)
	assert.Equal(t, []Triangle{{0, 1, 2}}, m.Triangles())
	assert.Equal(t, math.Vec3{Z: 1}, m.Normal(1))
	assert.Equal(t, math.Vec3{}, m.Normal(9))
}

func newTwoQuadMesh(t *testing.T) *QuadMesh {
	t.Helper()
	m := NewQuadMesh()
	for _, v := range []math.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 2, Y: 0}, {X: 2, Y: 1},
	} {
		m.AddVertex(v)
	}
	_, err := m.AddQuad(0, 1, 2, 3)
	require.NoError(t, err)
	_, err = m.AddQuad(1, 4, 5, 2)
	require.NoError(t, err)
	return m
}

func TestQuadMeshSharedEdge(t *testing.T) {
	m := newTwoQuadMesh(t)

	assert.Len(t, m.Faces(), 2)
	assert.Len(t, m.Edges(), 7)

	shared, ok := m.FindEdge(2, 1)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{0, 1}, m.EdgeFaces(shared))
	assert.Equal(t, math.Vec3{X: 1, Y: 0.5}, m.Edges()[shared].Midpoint)

	for ei, e := range m.Edges() {
		if ei == shared {
			continue
		}
		assert.Len(t, e.Faces, 1, "edge %d-%d", e.A, e.B)
	}

	_, ok = m.FindEdge(0, 2)
	assert.False(t, ok, "diagonal is not an edge")
}

func TestQuadMeshAdjacency(t *testing.T) {
	m := newTwoQuadMesh(t)

	assert.ElementsMatch(t, []int{0, 1}, m.VertexFaces(1))
	assert.ElementsMatch(t, []int{0, 1}, m.VertexFaces(2))
	assert.Equal(t, []int{0}, m.VertexFaces(0))
	assert.Len(t, m.VertexEdges(1), 3)
	assert.Len(t, m.VertexEdges(0), 2)
	assert.Nil(t, m.VertexFaces(99))
	assert.Nil(t, m.EdgeFaces(99))

	f := m.Faces()[0]
	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.5}, f.Centroid)
	for k, ei := range f.Edges {
		e := m.Edges()[ei]
		a, b := f.Vertices[k], f.Vertices[(k+1)%4]
		assert.Equal(t, b, e.Other(a))
	}
}

func TestQuadMeshInvalidIndex(t *testing.T) {
	m := newTwoQuadMesh(t)
	_, err := m.AddQuad(0, 1, 2, 6)
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
	assert.Len(t, m.Faces(), 2)
	assert.Len(t, m.Edges(), 7)
}

func TestQuadMeshToTriangles(t *testing.T) {
	tm := newTwoQuadMesh(t).TriangleMesh()
	assert.Len(t, tm.Vertices(), 6)
	assert.Equal(t, []Triangle{
		{0, 1, 2}, {0, 2, 3},
		{1, 4, 5}, {1, 5, 2},
	}, tm.Triangles())
}

func TestQuadMeshFromTriangles(t *testing.T) {
	tm := NewTriangleMesh()
	tm.AddVertex(math.Vec3{})
	tm.AddVertex(math.Vec3{X: 1})
	tm.AddVertex(math.Vec3{Y: 1})
	require.NoError(t, tm.AddTriangle(0, 1, 2))

	qm, err := QuadMeshFromTriangles(tm)
	require.NoError(t, err)
	require.Len(t, qm.Faces(), 1)
	assert.Equal(t, Quad{0, 1, 2, 0}, qm.Faces()[0].Vertices)
}

func TestPlane(t *testing.T) {
	m := Plane(2, 2)
	assert.Len(t, m.Vertices(), 9)
	assert.Len(t, m.Faces(), 4)
	assert.Len(t, m.Edges(), 12)
	assert.Len(t, m.VertexFaces(4), 4, "centre vertex touches every face")
	assert.Equal(t, math.Up(), m.Normal(4))
	assert.Len(t, m.TriangleMesh().Triangles(), 8)
}

func TestBox(t *testing.T) {
	g := Box(AABB{Min: math.Vec3{X: 1, Y: 2, Z: 3}, Max: math.Vec3{X: 4, Y: 6, Z: 8}})
	assert.Equal(t, 8, g.Order())
	assert.Equal(t, 12, g.EdgeCount())
	b, ok := Bounds(g.Vertices())
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, b.Min)
	assert.Equal(t, math.Vec3{X: 4, Y: 6, Z: 8}, b.Max)
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	assert.False(t, ok)

	b, ok := Bounds(Cube(2).Vertices())
	require.True(t, ok)
	assert.Equal(t, math.Vec3{}, b.Center())
	assert.InDelta(t, math32.Sqrt(3), b.Radius(), 1e-6)

	p := b.Pad(1)
	assert.Equal(t, math.Vec3{X: -2, Y: -2, Z: -2}, p.Min)

	u := b.Union(AABB{Min: math.Vec3{X: 5}, Max: math.Vec3{X: 6, Y: 0.5}})
	assert.Equal(t, math.Vec3{X: 6, Y: 1, Z: 1}, u.Max)
	assert.Equal(t, b.Min, u.Min)

	// A quarter turn about Y keeps the cube's box; a translation moves it.
	r := b.Transform(math.RotateY(math32.Pi / 2))
	assert.InDelta(t, -1, r.Min.X, 1e-5)
	assert.InDelta(t, 1, r.Max.Z, 1e-5)
	m := b.Transform(math.Translate(10, 0, 0))
	assert.Equal(t, math.Vec3{X: 11, Y: 1, Z: 1}, m.Max)

	qb, ok := Plane(2, 4).Bounds()
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: -2, Z: -2}, qb.Min)
	assert.Equal(t, math.Vec3{X: 2, Z: 2}, qb.Max)
	_, ok = NewQuadMesh().Bounds()
	assert.False(t, ok)
}
