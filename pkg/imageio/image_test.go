package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
)

func TestToNRGBA(t *testing.T) {
	frame := renderer.NewFrame(3, 2)
	frame.Set(0, 0, core.NewColour(1, 0.5, 0))
	frame.Set(1, 0, core.NewColour(0.2, 0.002, 0.998))
	frame.Set(2, 1, core.NewColour(1, 1, 1))

	img := ToNRGBA(frame)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}

	tests := []struct {
		x, y       int
		r, g, b, a uint8
	}{
		{0, 0, 255, 128, 0, 255}, // 127.5 rounds up
		{1, 0, 51, 1, 254, 255},
		{2, 1, 255, 255, 255, 255},
		{0, 1, 0, 0, 0, 255}, // background is opaque black
	}

	for _, tt := range tests {
		c := img.NRGBAAt(tt.x, tt.y)
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
			t.Errorf("Pixel (%d,%d): expected (%d,%d,%d,%d), got %v", tt.x, tt.y, tt.r, tt.g, tt.b, tt.a, c)
		}
	}
}

func TestChannelToByte_OutOfRange(t *testing.T) {
	tests := []struct {
		in  float32
		out uint8
	}{
		{-0.5, 0},
		{2, 255},
		{0.0019, 0},
		{0.0021, 1},
	}
	for _, tt := range tests {
		if got := channelToByte(tt.in); got != tt.out {
			t.Errorf("channelToByte(%f) = %d, want %d", tt.in, got, tt.out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected imaging.Format
		ext      string
		mime     string
	}{
		{"png", imaging.PNG, "png", "image/png"},
		{".jpg", imaging.JPEG, "jpg", "image/jpeg"},
		{"jpeg", imaging.JPEG, "jpg", "image/jpeg"},
		{"TIFF", imaging.TIFF, "tiff", "image/tiff"},
		{"bmp", imaging.BMP, "bmp", "image/bmp"},
		{"gif", imaging.GIF, "gif", "image/gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ParseFormat(tt.name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, format)
			}
			if Extension(format) != tt.ext || ContentType(format) != tt.mime {
				t.Errorf("Unexpected extension %q or content type %q", Extension(format), ContentType(format))
			}
		})
	}

	if _, err := ParseFormat("webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEncode_RoundTripPNG(t *testing.T) {
	frame := renderer.NewFrame(4, 2)
	frame.Set(1, 1, core.NewColour(0, 1, 0))

	var buf bytes.Buffer
	if err := Encode(&buf, ToNRGBA(frame), imaging.PNG); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, a := decoded.At(1, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("Expected opaque green, got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestSave(t *testing.T) {
	img := ToNRGBA(renderer.NewFrame(8, 4))
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.bmp"} {
		path := filepath.Join(dir, name)
		if err := Save(img, path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected non-empty %s", name)
		}
	}

	if err := Save(img, filepath.Join(dir, "out.webp")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	img := ToNRGBA(renderer.NewFrame(800, 600))

	thumb := Thumbnail(img, 200)
	if thumb.Bounds().Dx() != 200 || thumb.Bounds().Dy() != 150 {
		t.Errorf("Expected 200x150 thumbnail, got %v", thumb.Bounds())
	}

	if Thumbnail(img, 0) != image.Image(img) || Thumbnail(img, 1000) != image.Image(img) {
		t.Error("Expected image unchanged when no downscale is needed")
	}
}
