package surface

import (
	"image"
)

// Image renders the raster into an RGBA image on Present.
type Image struct {
	*Raster

	img *image.RGBA
}

// NewImage creates an image surface.
func NewImage(width, height int) *Image {
	s := &Image{Raster: NewRaster(width, height)}
	s.img = image.NewRGBA(image.Rect(0, 0, s.Width(), s.Height()))
	return s
}

// Resize reallocates the raster and the image.
func (s *Image) Resize(width, height int) {
	s.Raster.Resize(width, height)
	s.img = image.NewRGBA(image.Rect(0, 0, s.Width(), s.Height()))
}

// Present copies the raster into the image.
func (s *Image) Present() error {
	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			c, _ := s.At(col, row)
			s.img.SetRGBA(col, row, c.RGBA())
		}
	}
	return nil
}

// Image returns the last presented frame. The image is reused by the next
// Present; copy it to keep it.
func (s *Image) Image() *image.RGBA {
	return s.img
}
