package surface

import "image/color"

// Color is a linear RGB colour with channels nominally in [0, 1].
type Color struct {
	R, G, B float32
}

// Named colours.
var (
	Black     = Color{0, 0, 0}
	White     = Color{1, 1, 1}
	Red       = Color{1, 0, 0}
	Green     = Color{0, 1, 0}
	Blue      = Color{0, 0, 1}
	Yellow    = Color{1, 1, 0}
	Cyan      = Color{0, 1, 1}
	Magenta   = Color{1, 0, 1}
	Grey      = Color{0.5, 0.5, 0.5}
	LightGrey = Color{0.75, 0.75, 0.75}
	DarkGrey  = Color{0.25, 0.25, 0.25}
	Orange    = Color{1, 0.5, 0}
	Purple    = Color{0.5, 0, 0.5}
	Brown     = Color{0.6, 0.4, 0.2}
	Pink      = Color{1, 0.6, 0.8}
	Teal      = Color{0, 0.5, 0.5}
)

var palette = map[string]Color{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"grey":      Grey,
	"gray":      Grey,
	"lightgrey": LightGrey,
	"lightgray": LightGrey,
	"darkgrey":  DarkGrey,
	"darkgray":  DarkGrey,
	"orange":    Orange,
	"purple":    Purple,
	"brown":     Brown,
	"pink":      Pink,
	"teal":      Teal,
}

// Named looks up a palette colour by lower-case name.
func Named(name string) (Color, bool) {
	c, ok := palette[name]
	return c, ok
}

// Clamped limits every channel to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Luminance returns the Rec. 709 relative luminance of the clamped colour.
func (c Color) Luminance() float32 {
	c = c.Clamped()
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// RGBA converts to an opaque 8-bit colour.
func (c Color) RGBA() color.RGBA {
	c = c.Clamped()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}

// Blend mixes three colours with barycentric weights.
func Blend(c1, c2, c3 Color, w1, w2, w3 float32) Color {
	return Color{
		c1.R*w1 + c2.R*w2 + c3.R*w3,
		c1.G*w1 + c2.G*w2 + c3.G*w3,
		c1.B*w1 + c2.B*w2 + c3.B*w3,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
