package surface

import (
	"bufio"
	"fmt"
	"io"
)

// Ramp orders printable characters from darkest to brightest.
const Ramp = "`.-':_,^=;><+!rc*/z?sLTv)J7(|Fi{C}fI31tlu[neoZ5Yxjya]2ESwqkP6h9d4VpOGbUAKXHm8RD#$Bg0MNWQ%&@"

// ClearScreen resets a VT100 terminal.
const ClearScreen = "\033c"

// Char renders the raster as a character grid. Each drawn pixel becomes the
// ramp character matching its luminance; undrawn pixels are spaces.
type Char struct {
	*Raster

	// Prefix is written before every frame.
	Prefix string

	out  io.Writer
	line []byte
}

// NewChar creates a character surface writing frames to out.
func NewChar(width, height int, out io.Writer) *Char {
	return &Char{
		Raster: NewRaster(width, height),
		Prefix: ClearScreen,
		out:    out,
	}
}

// Glyph returns the ramp character for a colour.
func Glyph(c Color) byte {
	i := int(c.Luminance()*float32(len(Ramp)-1) + 0.5)
	if i >= len(Ramp) {
		i = len(Ramp) - 1
	}
	return Ramp[i]
}

// Present writes the frame, one text row per raster row.
func (s *Char) Present() error {
	w := bufio.NewWriter(s.out)
	if _, err := w.WriteString(s.Prefix); err != nil {
		return fmt.Errorf("writing frame prefix: %w", err)
	}
	for row := 0; row < s.Height(); row++ {
		s.line = s.appendRow(s.line[:0], row)
		s.line = append(s.line, '\n')
		if _, err := w.Write(s.line); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// String returns the current frame without the prefix.
func (s *Char) String() string {
	var buf []byte
	for row := 0; row < s.Height(); row++ {
		buf = s.appendRow(buf, row)
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (s *Char) appendRow(buf []byte, row int) []byte {
	for col := 0; col < s.Width(); col++ {
		c, ok := s.At(col, row)
		if !ok {
			buf = append(buf, ' ')
			continue
		}
		buf = append(buf, Glyph(c))
	}
	return buf
}
