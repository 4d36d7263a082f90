package surface

import "github.com/Faultbox/vbag/pkg/math"

// BatchStride is the number of floats per batched vertex: x, y, r, g, b.
const BatchStride = 5

// Batch collects a frame's primitives as interleaved vertex data for GPU
// backends. Lines and triangles are kept in separate arrays so each can be
// drawn with a single call.
type Batch struct {
	Lines     []float32
	Triangles []float32
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	b.Lines = b.Lines[:0]
	b.Triangles = b.Triangles[:0]
}

// AddLine appends a segment. Non-finite segments are dropped.
func (b *Batch) AddLine(p0, p1 math.Vec2, c Color) {
	if !finite2(p0) || !finite2(p1) {
		return
	}
	c = c.Clamped()
	b.Lines = appendVertex(b.Lines, p0, c)
	b.Lines = appendVertex(b.Lines, p1, c)
}

// AddTriangle appends a triangle. Non-finite triangles are dropped.
func (b *Batch) AddTriangle(v1, v2, v3 math.Vec2, c1, c2, c3 Color) {
	if !finite2(v1) || !finite2(v2) || !finite2(v3) {
		return
	}
	b.Triangles = appendVertex(b.Triangles, v1, c1.Clamped())
	b.Triangles = appendVertex(b.Triangles, v2, c2.Clamped())
	b.Triangles = appendVertex(b.Triangles, v3, c3.Clamped())
}

// LineVertices returns the number of vertices in Lines.
func (b *Batch) LineVertices() int { return len(b.Lines) / BatchStride }

// TriangleVertices returns the number of vertices in Triangles.
func (b *Batch) TriangleVertices() int { return len(b.Triangles) / BatchStride }

func appendVertex(dst []float32, p math.Vec2, c Color) []float32 {
	return append(dst, p.X, p.Y, c.R, c.G, c.B)
}
