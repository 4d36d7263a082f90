// Package lighting provides best-effort point light shading for the pipeline.
package lighting

import (
	"github.com/Faultbox/vbag/internal/engine/surface"
	"github.com/Faultbox/vbag/pkg/math"
)

// MaxPointLights is the maximum number of point lights evaluated per frame.
const MaxPointLights = 32

// MaxIntensity is the upper bound of a shading intensity.
const MaxIntensity float32 = 255

// PointLight is a point light source. Position is filled in world space by the
// pipeline from the owning scene node.
type PointLight struct {
	Position  math.Vec3
	Range     float32 // falloff distance, 0 means unlimited
	Intensity float32 // multiplier
}

// NewPointLight returns an unlimited-range light of the given intensity.
func NewPointLight(intensity float32) PointLight {
	return PointLight{Intensity: intensity}
}

// Buffer holds the lights gathered for one frame.
type Buffer struct {
	Lights []PointLight
	Count  int
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// Add adds a point light to the buffer.
// Returns false if buffer is full.
func (b *Buffer) Add(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Set replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *Buffer) Set(lights []PointLight) {
	b.Clear()
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Diffuse returns the Lambert intensity at vertex for the given normal, summed
// over lights and clamped to [0, MaxIntensity]. Vertex, normal and light
// positions must share one space.
func Diffuse(vertex, normal math.Vec3, lights []PointLight) float32 {
	n := normal.Normalize()
	if n.IsZero() {
		return 0
	}
	var sum float32
	for _, l := range lights {
		toLight := l.Position.Sub(vertex)
		dist := toLight.Length()
		if l.Range > 0 && dist >= l.Range {
			continue
		}
		cos := n.Dot(toLight.Normalize())
		if cos <= 0 {
			continue
		}
		atten := float32(1)
		if l.Range > 0 {
			atten = 1 - dist/l.Range
		}
		sum += cos * atten * l.Intensity * MaxIntensity
	}
	return clamp(sum, 0, MaxIntensity)
}

// Shade scales base by an intensity in [0, MaxIntensity], keeping ambient as
// the darkest fraction of base.
func Shade(base surface.Color, intensity, ambient float32) surface.Color {
	f := clamp(intensity, 0, MaxIntensity) / MaxIntensity
	f = ambient + (1-ambient)*f
	return base.Scale(f).Clamped()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
