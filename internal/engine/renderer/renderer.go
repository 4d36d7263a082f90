// Package renderer provides an OpenGL implementation of surface.Surface.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/engine/shader"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/internal/logger"
	"github.com/Faultbox/vbag/pkg/math"
)

// Swapper presents the back buffer, usually a window.
type Swapper interface {
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background surface.Color
}

// GL draws a frame's primitives with OpenGL. Primitives are batched on the
// CPU and uploaded in one buffer per primitive type when the frame is
// presented.
type GL struct {
	config Config
	swap   Swapper

	program  uint32
	halfSize int32
	vao      uint32
	vbo      uint32

	batch surface.Batch
	log   *zap.Logger
}

var _ surface.Surface = (*GL)(nil)

// New creates the GL surface.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, swap Swapper) (*GL, error) {
	r := &GL{
		config: cfg,
		swap:   swap,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	bg := cfg.Background.Clamped()
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)

	var err error
	r.program, err = shader.CompileProgram(shader.ScreenVertex, shader.ScreenFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.halfSize = shader.MustUniform(r.program, "uHalfSize")

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	const stride = surface.BatchStride * 4
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases GPU resources.
func (r *GL) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *GL) Resize(width, height int) {
	r.config.Width = max(width, 1)
	r.config.Height = max(height, 1)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	r.log.Debug("renderer resized",
		zap.Int("width", r.config.Width),
		zap.Int("height", r.config.Height),
	)
}

// Width returns the framebuffer width in pixels.
func (r *GL) Width() int { return r.config.Width }

// Height returns the framebuffer height in pixels.
func (r *GL) Height() int { return r.config.Height }

// Clear starts a new frame.
func (r *GL) Clear() {
	r.batch.Reset()
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawLine queues a line.
func (r *GL) DrawLine(p0, p1 math.Vec2, c surface.Color) {
	r.batch.AddLine(p0, p1, c)
}

// DrawLines queues a batch of lines.
func (r *GL) DrawLines(lines []surface.Line) {
	for _, l := range lines {
		r.batch.AddLine(l.P0, l.P1, l.Color)
	}
}

// DrawTriangle queues a triangle.
func (r *GL) DrawTriangle(v1, v2, v3 math.Vec2, c1, c2, c3 surface.Color) {
	r.batch.AddTriangle(v1, v2, v3, c1, c2, c3)
}

// Present uploads the queued primitives, draws them and swaps buffers.
// Triangles are drawn first so wireframes stay visible on top.
func (r *GL) Present() error {
	gl.UseProgram(r.program)
	gl.Uniform2f(r.halfSize, float32(r.config.Width)/2, float32(r.config.Height)/2)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	r.upload(gl.TRIANGLES, r.batch.Triangles, r.batch.TriangleVertices())
	r.upload(gl.LINES, r.batch.Lines, r.batch.LineVertices())

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", e)
	}
	if r.swap != nil {
		r.swap.SwapBuffers()
	}
	return nil
}

func (r *GL) upload(mode uint32, data []float32, count int) {
	if count == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
}
