package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-direct-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output formats that cannot be encoded
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultJPEGQuality is used when encoding JPEG output
const DefaultJPEGQuality = 95

// ToNRGBA converts a rendered frame to an opaque 8-bit image. Each channel in
// [0, 1] maps to round(v * 255).
func ToNRGBA(frame *renderer.Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: channelToByte(c.R),
				G: channelToByte(c.G),
				B: channelToByte(c.B),
				A: 255,
			})
		}
	}

	return img
}

// channelToByte maps [0, 1] to [0, 255]; anything outside, including NaN,
// is pinned to the nearest end
func channelToByte(v float32) uint8 {
	scaled := math.Round(float64(v) * 255)
	if !(scaled > 0) {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// ParseFormat resolves a format name or file extension such as "png",
// ".jpg" or "tiff"
func ParseFormat(name string) (imaging.Format, error) {
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return format, nil
}

// Extension returns the preferred file extension for a format, without the dot
func Extension(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "jpg"
	case imaging.PNG:
		return "png"
	case imaging.GIF:
		return "gif"
	case imaging.TIFF:
		return "tiff"
	case imaging.BMP:
		return "bmp"
	default:
		return "bin"
	}
}

// ContentType returns the MIME type for a format
func ContentType(format imaging.Format) string {
	switch format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(DefaultJPEGQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// EncodeBytes encodes img in the given format into memory
func EncodeBytes(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to path, choosing the format from the file extension
func Save(img image.Image, path string) error {
	if _, err := ParseFormat(filepath.Ext(path)); err != nil {
		return err
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(DefaultJPEGQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales img down to the given width, preserving aspect ratio.
// Images already no wider than width are returned unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || img.Bounds().Dx() <= width {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}
