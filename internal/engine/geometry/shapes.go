package geometry

import "github.com/Faultbox/vbag/pkg/math"

// cubeEdges joins the box corners: back face, front face, then the
// connecting edges.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Cube returns a wireframe cube of the given edge length centred on the origin.
func Cube(size float32) *Graph[math.Vec3] {
	h := size / 2
	return Box(AABB{Min: math.Vec3{X: -h, Y: -h, Z: -h}, Max: math.Vec3{X: h, Y: h, Z: h}})
}

// Box returns the wireframe of b: 8 corners joined by 12 edges.
func Box(b AABB) *Graph[math.Vec3] {
	lo, hi := b.Min, b.Max
	g := NewGraph[math.Vec3]()
	for _, v := range [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0: bottom-left-back
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1: bottom-right-back
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2: top-right-back
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3: top-left-back
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4: bottom-left-front
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5: bottom-right-front
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6: top-right-front
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7: top-left-front
	} {
		g.AddVertex(v)
	}
	for _, e := range cubeEdges {
		// indices are constant and in range
		_ = g.AddEdge(e[0], e[1])
	}
	return g
}

// Pyramid returns two square pyramids joined at their apex on the origin,
// 40 units tall and 20 units wide.
func Pyramid() *Graph[math.Vec3] {
	g := NewGraph[math.Vec3]()
	for _, v := range [9]math.Vec3{
		// 0-3: lower base
		{X: -10, Y: -20, Z: -10},
		{X: -10, Y: -20, Z: 10},
		{X: 10, Y: -20, Z: -10},
		{X: 10, Y: -20, Z: 10},
		// 4: apex
		{},
		// 5-8: upper base
		{X: -10, Y: 20, Z: -10},
		{X: -10, Y: 20, Z: 10},
		{X: 10, Y: 20, Z: -10},
		{X: 10, Y: 20, Z: 10},
	} {
		g.AddVertex(v)
	}
	edges := [][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 3},
		{0, 4}, {1, 4}, {2, 4}, {3, 4},
		{4, 5}, {4, 6}, {4, 7}, {4, 8},
		{5, 6}, {5, 7}, {6, 8}, {7, 8},
	}
	for _, e := range edges {
		_ = g.AddEdge(e[0], e[1])
	}
	return g
}

// Plane returns an n×n grid of quads in the XZ plane, size units across,
// centred on the origin with normals pointing up.
func Plane(n int, size float32) *QuadMesh {
	if n < 1 {
		n = 1
	}
	m := NewQuadMesh()
	step := size / float32(n)
	half := size / 2
	for row := 0; row <= n; row++ {
		for col := 0; col <= n; col++ {
			m.AddVertex(math.Vec3{
				X: -half + float32(col)*step,
				Z: -half + float32(row)*step,
			})
			m.AddNormal(math.Up())
		}
	}
	stride := n + 1
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := row*stride + col
			_, _ = m.AddQuad(i, i+stride, i+stride+1, i+1)
		}
	}
	return m
}
