package surface

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnknownFormat is returned for snapshot formats other than png and webp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Snapshot formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Snapshotter writes frames to timestamped image files.
type Snapshotter struct {
	outputDir string
	prefix    string
	format    string
	scale     int
}

// NewSnapshotter creates a snapshot writer. scale > 1 upscales every frame
// before encoding, which keeps low-resolution frames readable.
func NewSnapshotter(outputDir, prefix, format string, scale int) (*Snapshotter, error) {
	format = strings.ToLower(format)
	if format != FormatPNG && format != FormatWebP {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if scale < 1 {
		scale = 1
	}
	return &Snapshotter{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		scale:     scale,
	}, nil
}

// GenerateFilename generates a snapshot filename for frame without saving.
func (sn *Snapshotter) GenerateFilename(frame int) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%04d.%s", sn.prefix, timestamp, frame, sn.format)
	if sn.outputDir != "" {
		filename = filepath.Join(sn.outputDir, filename)
	}
	return filename
}

// Capture encodes img into a new file and returns its path.
func (sn *Snapshotter) Capture(img image.Image, frame int) (string, error) {
	// Create output directory if needed
	if sn.outputDir != "" {
		if err := os.MkdirAll(sn.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sn.GenerateFilename(frame)
	if err := SaveImage(filename, Upscale(img, sn.scale)); err != nil {
		return "", err
	}
	return filename, nil
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
// so pixel edges stay sharp.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SaveImage writes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext != FormatPNG && ext != FormatWebP {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch ext {
	case FormatWebP:
		if err := nativewebp.Encode(file, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}
