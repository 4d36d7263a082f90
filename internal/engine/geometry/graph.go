// Package geometry holds the vertex data the renderer draws: wireframe graphs,
// triangle meshes and quad meshes with edge/face adjacency.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vbag/pkg/math"
)

// Geometry errors.
var (
	ErrVertexOutOfRange = errors.New("vertex index out of range")
)

// Graph stores vertices and an undirected adjacency list.
type Graph[V any] struct {
	vertices  []V
	adjacency [][]int
}

// NewGraph creates an empty graph.
func NewGraph[V any]() *Graph[V] {
	return &Graph[V]{}
}

// AddVertex appends a vertex and returns its index.
func (g *Graph[V]) AddVertex(v V) int {
	g.vertices = append(g.vertices, v)
	g.adjacency = append(g.adjacency, nil)
	return len(g.vertices) - 1
}

// AddEdge connects i and j in both directions.
func (g *Graph[V]) AddEdge(i, j int) error {
	if err := g.checkIndex(i); err != nil {
		return err
	}
	if err := g.checkIndex(j); err != nil {
		return err
	}
	g.adjacency[i] = append(g.adjacency[i], j)
	g.adjacency[j] = append(g.adjacency[j], i)
	return nil
}

func (g *Graph[V]) checkIndex(i int) error {
	if i < 0 || i >= len(g.vertices) {
		return fmt.Errorf("%w: %d (order %d)", ErrVertexOutOfRange, i, len(g.vertices))
	}
	return nil
}

// Edges returns the neighbours of vertex i, or nil for an invalid index.
func (g *Graph[V]) Edges(i int) []int {
	if i < 0 || i >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[i]
}

// Vertices returns the vertex slice. Callers may modify vertex values in place.
func (g *Graph[V]) Vertices() []V {
	return g.vertices
}

// Order returns the number of vertices.
func (g *Graph[V]) Order() int {
	return len(g.vertices)
}

// EdgeCount returns the number of undirected edges, counting parallel edges.
func (g *Graph[V]) EdgeCount() int {
	n := 0
	for _, adj := range g.adjacency {
		n += len(adj)
	}
	return n / 2
}

// UniqueEdges returns every undirected edge once as an (i, j) pair with i <= j.
// Parallel edges added twice are reported twice.
func (g *Graph[V]) UniqueEdges() [][2]int {
	return g.AppendUniqueEdges(make([][2]int, 0, g.EdgeCount()))
}

// AppendUniqueEdges appends the pairs UniqueEdges reports to edges and
// returns the extended slice.
func (g *Graph[V]) AppendUniqueEdges(edges [][2]int) [][2]int {
	for i, adj := range g.adjacency {
		selfLoops := 0
		for _, j := range adj {
			switch {
			case i < j:
				edges = append(edges, [2]int{i, j})
			case i == j:
				// a self loop is stored twice in its own list
				selfLoops++
				if selfLoops%2 == 1 {
					edges = append(edges, [2]int{i, i})
				}
			}
		}
	}
	return edges
}

// Centroid returns the average vertex position of a Vec3 graph.
func Centroid(g *Graph[math.Vec3]) math.Vec3 {
	var c math.Vec3
	if g.Order() == 0 {
		return c
	}
	for _, v := range g.vertices {
		c = c.Add(v)
	}
	return c.Div(float32(g.Order()))
}
