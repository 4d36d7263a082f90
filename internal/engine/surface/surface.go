// Package surface defines the output surface the pipeline draws onto and
// software implementations of it: a raster core, a character grid, an image
// buffer and a call recorder.
//
// All coordinates are centred screen coordinates: the origin is the middle of
// the surface and +Y points up.
package surface

import "github.com/Faultbox/vbag/pkg/math"

// Surface receives the primitives of one frame.
type Surface interface {
	// Clear resets the frame.
	Clear()
	Width() int
	Height() int
	DrawLine(p0, p1 math.Vec2, c Color)
	DrawLines(lines []Line)
	DrawTriangle(v1, v2, v3 math.Vec2, c1, c2, c3 Color)
	// Present makes the frame visible.
	Present() error
}

// Line is one segment of a DrawLines batch.
type Line struct {
	P0, P1 math.Vec2
	Color  Color
}

// Triangle is a recorded triangle with per-vertex colours.
type Triangle struct {
	V      [3]math.Vec2
	Colors [3]Color
}
