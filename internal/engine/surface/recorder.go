package surface

import "github.com/Faultbox/vbag/pkg/math"

// Recorder keeps the primitives of the current frame instead of drawing them.
type Recorder struct {
	W, H int

	Lines     []Line
	Triangles []Triangle
	Clears    int
	Frames    int
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

// Clear drops the recorded primitives.
func (r *Recorder) Clear() {
	r.Lines = r.Lines[:0]
	r.Triangles = r.Triangles[:0]
	r.Clears++
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) DrawLine(p0, p1 math.Vec2, c Color) {
	r.Lines = append(r.Lines, Line{P0: p0, P1: p1, Color: c})
}

func (r *Recorder) DrawLines(lines []Line) {
	r.Lines = append(r.Lines, lines...)
}

func (r *Recorder) DrawTriangle(v1, v2, v3 math.Vec2, c1, c2, c3 Color) {
	r.Triangles = append(r.Triangles, Triangle{
		V:      [3]math.Vec2{v1, v2, v3},
		Colors: [3]Color{c1, c2, c3},
	})
}

// Present counts the frame.
func (r *Recorder) Present() error {
	r.Frames++
	return nil
}
