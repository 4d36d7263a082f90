package surface

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vbag/pkg/math"
)

// DefaultThickness is the line half-width in pixels.
const DefaultThickness float32 = 1

// Raster is a software framebuffer of colours. It implements every Surface
// method except presentation, which Char and Image add on top.
type Raster struct {
	Thickness  float32
	Background Color

	width, height int
	pix           []Color
	filled        []bool
}

// NewRaster allocates a cleared raster of at least 1x1 pixels.
func NewRaster(width, height int) *Raster {
	r := &Raster{Thickness: DefaultThickness}
	r.Resize(width, height)
	return r
}

// Resize reallocates the buffers and clears them.
func (r *Raster) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width, r.height = width, height
	r.pix = make([]Color, width*height)
	r.filled = make([]bool, width*height)
	r.Clear()
}

// Clear fills the raster with the background colour.
func (r *Raster) Clear() {
	for i := range r.pix {
		r.pix[i] = r.Background
		r.filled[i] = false
	}
}

// Width returns the width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the height in pixels.
func (r *Raster) Height() int { return r.height }

// Present is a no-op for a bare raster.
func (r *Raster) Present() error { return nil }

// At returns the colour at a pixel and whether anything was drawn there.
func (r *Raster) At(col, row int) (Color, bool) {
	if col < 0 || col >= r.width || row < 0 || row >= r.height {
		return Color{}, false
	}
	i := row*r.width + col
	return r.pix[i], r.filled[i]
}

// Filled returns the number of drawn pixels.
func (r *Raster) Filled() int {
	n := 0
	for _, f := range r.filled {
		if f {
			n++
		}
	}
	return n
}

// Set colours a pixel.
func (r *Raster) Set(col, row int, c Color) {
	if col < 0 || col >= r.width || row < 0 || row >= r.height {
		return
	}
	i := row*r.width + col
	r.pix[i] = c
	r.filled[i] = true
}

// Point returns the centred coordinates of pixel (col, row).
func (r *Raster) Point(col, row int) math.Vec2 {
	return math.Vec2{
		X: float32(col) - float32(r.width)/2,
		Y: float32(r.height) - float32(row) - 1 - float32(r.height)/2,
	}
}

// bounds returns the pixel rectangle covering centred coordinates
// [minX, maxX] x [minY, maxY], clipped to the raster. ok is false when the
// rectangle misses the raster entirely.
func (r *Raster) bounds(minX, minY, maxX, maxY float32) (c0, r0, c1, r1 int, ok bool) {
	hw, hh := float32(r.width)/2, float32(r.height)/2
	top := float32(r.height) - 1 - hh

	c0 = clampIndex(math32.Floor(minX+hw), r.width-1)
	c1 = clampIndex(math32.Ceil(maxX+hw), r.width-1)
	r0 = clampIndex(math32.Floor(top-maxY), r.height-1)
	r1 = clampIndex(math32.Ceil(top-minY), r.height-1)

	ok = maxX+hw >= 0 && minX+hw <= float32(r.width-1) &&
		top-minY >= 0 && top-maxY <= float32(r.height-1)
	return c0, r0, c1, r1, ok
}

func clampIndex(v float32, hi int) int {
	if v < 0 {
		return 0
	}
	if v > float32(hi) {
		return hi
	}
	return int(v)
}

// DrawLine fills every pixel whose perpendicular distance to the segment is
// below Thickness and whose projection falls strictly inside it, so shared
// endpoints are not drawn twice. Only the segment's padded bounding box is
// scanned.
func (r *Raster) DrawLine(p0, p1 math.Vec2, c Color) {
	if !finite2(p0) || !finite2(p1) {
		return
	}
	d := p1.Sub(p0)
	length := d.Length()
	if length < math.Epsilon {
		return
	}
	dir := d.Scale(1 / length)
	th := r.Thickness

	c0, r0, c1, r1, ok := r.bounds(
		math32.Min(p0.X, p1.X)-th, math32.Min(p0.Y, p1.Y)-th,
		math32.Max(p0.X, p1.X)+th, math32.Max(p0.Y, p1.Y)+th,
	)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if onSegment(p0, d, dir, th, r.Point(col, row)) {
				r.Set(col, row, c)
			}
		}
	}
}

// onSegment is the line fill predicate. d is the segment vector and dir its
// unit direction.
func onSegment(a, d, dir math.Vec2, thickness float32, p math.Vec2) bool {
	ap := p.Sub(a)
	proj := dir.Scale(ap.Dot(dir))

	var t float32
	if math32.Abs(d.X) < math.Epsilon {
		t = proj.Y / d.Y
	} else {
		t = proj.X / d.X
	}
	return ap.Sub(proj).Length() < thickness && t > 0 && t < 1
}

// DrawLines draws a batch of segments.
func (r *Raster) DrawLines(lines []Line) {
	for _, l := range lines {
		r.DrawLine(l.P0, l.P1, l.Color)
	}
}

// DrawTriangle fills a triangle with barycentric colour interpolation.
// Degenerate triangles draw nothing.
func (r *Raster) DrawTriangle(v1, v2, v3 math.Vec2, c1, c2, c3 Color) {
	if !finite2(v1) || !finite2(v2) || !finite2(v3) {
		return
	}
	area := edgeFunc(v1, v2, v3)
	if math32.Abs(area) < math.Epsilon {
		return
	}

	c0, r0, cMax, rMax, ok := r.bounds(
		math32.Min(v1.X, math32.Min(v2.X, v3.X)), math32.Min(v1.Y, math32.Min(v2.Y, v3.Y)),
		math32.Max(v1.X, math32.Max(v2.X, v3.X)), math32.Max(v1.Y, math32.Max(v2.Y, v3.Y)),
	)
	if !ok {
		return
	}
	inv := 1 / area
	for row := r0; row <= rMax; row++ {
		for col := c0; col <= cMax; col++ {
			p := r.Point(col, row)
			w1 := edgeFunc(v2, v3, p) * inv
			w2 := edgeFunc(v3, v1, p) * inv
			w3 := edgeFunc(v1, v2, p) * inv
			if w1 < 0 || w2 < 0 || w3 < 0 {
				continue
			}
			r.Set(col, row, Blend(c1, c2, c3, w1, w2, w3))
		}
	}
}

// edgeFunc is twice the signed area of (a, b, p).
func edgeFunc(a, b, p math.Vec2) float32 {
	return b.Sub(a).Cross(p.Sub(a))
}

func finite2(v math.Vec2) bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0)
}
