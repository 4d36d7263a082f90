// Package pipeline turns a scene into surface primitives: it composes the
// model-view-projection matrix per object, projects vertices, applies the
// behind-camera guard and emits lines and triangles.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/engine/geometry"
	"github.com/Faultbox/vbag/internal/engine/lighting"
	"github.com/Faultbox/vbag/internal/engine/scene"
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/internal/logger"
	"github.com/Faultbox/vbag/pkg/math"
)

// ErrNoMainCamera is returned when the scene has no main camera selected.
var ErrNoMainCamera = errors.New("scene has no main camera selected")

// Options controls shading.
type Options struct {
	// Lighting enables per-vertex diffuse shading from the scene's point
	// lights. Objects without normals stay flat.
	Lighting bool
	// Ambient is the fraction of the base colour kept in full shadow.
	Ambient float32
}

// DefaultOptions returns flat shading with a dim ambient term.
func DefaultOptions() Options {
	return Options{Ambient: 0.15}
}

// Stats counts what one Draw emitted.
type Stats struct {
	Objects   int
	Lines     int
	Triangles int
	Culled    int // primitives dropped by the behind-camera guard
}

// Pipeline draws scenes. It reuses its buffers across frames and is not safe
// for concurrent Draw calls.
type Pipeline struct {
	opts Options

	snap   scene.Snapshot
	lights *lighting.Buffer

	// per-object scratch, indexed by vertex
	positions []math.Vec3
	screen    []math.Vec2
	visible   []bool
	colors    []surface.Color
	lines     []surface.Line
	edges     [][2]int

	log *zap.Logger
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{
		opts:   opts,
		lights: lighting.NewBuffer(),
		log:    logger.Named("pipeline"),
	}
}

// Options returns the current options.
func (p *Pipeline) Options() Options { return p.opts }

// SetOptions replaces the options for subsequent frames.
func (p *Pipeline) SetOptions(opts Options) { p.opts = opts }

// Draw renders one frame of sc onto out: clear, draw every object except
// cameras and lights, present.
func (p *Pipeline) Draw(sc *scene.Scene, out surface.Surface) (Stats, error) {
	sc.Snapshot(&p.snap)
	return p.DrawSnapshot(&p.snap, out)
}

// DrawSnapshot renders an already captured frame.
func (p *Pipeline) DrawSnapshot(snap *scene.Snapshot, out surface.Surface) (Stats, error) {
	var stats Stats
	if !snap.HasCamera {
		return stats, ErrNoMainCamera
	}

	out.Clear()

	p.lights.Clear()
	if p.opts.Lighting {
		for i := range snap.Nodes {
			if snap.Nodes[i].Kind == scene.KindPointLight && !p.lights.Add(snap.Nodes[i].Light) {
				p.log.Warn("point light limit reached", zap.Int("max", lighting.MaxPointLights))
				break
			}
		}
	}

	view := snap.Camera.WorldToCamera()
	proj := snap.Camera.Perspective()
	halfW := float32(out.Width()) / 2
	halfH := float32(out.Height()) / 2

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		if !n.Kind.Renderable() {
			continue
		}
		mv := view.Mul(n.World)
		mvp := proj.Mul(mv)
		stats.Objects++

		switch n.Kind {
		case scene.KindGraph:
			p.project(n.Graph.Vertices(), mv, mvp, halfW, halfH)
			p.lines = p.lines[:0]
			p.edges = n.Graph.AppendUniqueEdges(p.edges[:0])
			for _, e := range p.edges {
				if !p.visible[e[0]] || !p.visible[e[1]] {
					stats.Culled++
					continue
				}
				p.lines = append(p.lines, surface.Line{
					P0:    p.screen[e[0]],
					P1:    p.screen[e[1]],
					Color: n.Color,
				})
			}
			out.DrawLines(p.lines)
			stats.Lines += len(p.lines)

		case scene.KindTriangleMesh:
			m := n.TriangleMesh
			p.project(m.Vertices(), mv, mvp, halfW, halfH)
			p.shade(n, m.Vertices(), m.Normals())
			for _, t := range m.Triangles() {
				if p.emitTriangle(out, t[0], t[1], t[2]) {
					stats.Triangles++
				} else {
					stats.Culled++
				}
			}

		case scene.KindQuadMesh:
			m := n.QuadMesh
			positions := p.quadPositions(m)
			p.project(positions, mv, mvp, halfW, halfH)
			p.shade(n, positions, m.Normals())
			for _, f := range m.Faces() {
				q := f.Vertices
				for _, t := range [2][3]int{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}} {
					if p.emitTriangle(out, t[0], t[1], t[2]) {
						stats.Triangles++
					} else {
						stats.Culled++
					}
				}
			}
		}
	}

	if err := out.Present(); err != nil {
		return stats, fmt.Errorf("presenting frame: %w", err)
	}
	p.log.Debug("frame drawn",
		zap.Int("objects", stats.Objects),
		zap.Int("lines", stats.Lines),
		zap.Int("triangles", stats.Triangles),
		zap.Int("culled", stats.Culled),
	)
	return stats, nil
}

func (p *Pipeline) emitTriangle(out surface.Surface, a, b, c int) bool {
	if !p.visible[a] || !p.visible[b] || !p.visible[c] {
		return false
	}
	out.DrawTriangle(p.screen[a], p.screen[b], p.screen[c], p.colors[a], p.colors[b], p.colors[c])
	return true
}

// resize makes the scratch buffers hold n vertices.
func (p *Pipeline) resize(n int) {
	if cap(p.screen) < n {
		p.screen = make([]math.Vec2, n)
		p.visible = make([]bool, n)
		p.colors = make([]surface.Color, n)
	}
	p.screen = p.screen[:n]
	p.visible = p.visible[:n]
	p.colors = p.colors[:n]
}

// projectVertex maps a model-space vertex to centred screen coordinates.
// ok is false when the vertex is not in front of the camera or projects to a
// degenerate or non-finite point.
func projectVertex(v math.Vec3, mv, mvp math.Mat4, halfW, halfH float32) (math.Vec2, bool) {
	if z := mv.TransformPoint(v).Z; !(z < 0) {
		return math.Vec2{}, false
	}
	h := mvp.TransformHomogeneous(v)
	w := h[3]
	if math32.Abs(w) < math.Epsilon {
		return math.Vec2{}, false
	}
	s := math.Vec2{X: h[0] / w * halfW, Y: h[1] / w * halfH}
	if math32.IsNaN(s.X) || math32.IsInf(s.X, 0) || math32.IsNaN(s.Y) || math32.IsInf(s.Y, 0) {
		return math.Vec2{}, false
	}
	return s, true
}

func (p *Pipeline) project(vertices []math.Vec3, mv, mvp math.Mat4, halfW, halfH float32) {
	p.resize(len(vertices))
	for i, v := range vertices {
		p.screen[i], p.visible[i] = projectVertex(v, mv, mvp, halfW, halfH)
	}
}

// shade fills the vertex colours of n: flat, or diffuse when lighting is on
// and the mesh has normals.
func (p *Pipeline) shade(n *scene.Node, vertices []math.Vec3, normals []math.Vec3) {
	lit := p.opts.Lighting && p.lights.Count > 0 && len(normals) >= len(vertices)
	if !lit {
		for i := range vertices {
			p.colors[i] = n.Color
		}
		return
	}
	nm := n.World.NormalMatrix()
	for i, v := range vertices {
		wv := n.World.TransformPoint(v)
		wn := nm.TransformDirection(normals[i])
		intensity := lighting.Diffuse(wv, wn, p.lights.Lights)
		p.colors[i] = lighting.Shade(n.Color, intensity, p.opts.Ambient)
	}
}

// quadPositions copies quad mesh vertex positions into reusable scratch.
func (p *Pipeline) quadPositions(m *geometry.QuadMesh) []math.Vec3 {
	p.positions = p.positions[:0]
	for _, v := range m.Vertices() {
		p.positions = append(p.positions, v.Position)
	}
	return p.positions
}
