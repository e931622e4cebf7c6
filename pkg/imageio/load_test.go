package imageio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
)

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	frame := FromImage(img)
	if frame.Width != 2 || frame.Height != 2 {
		t.Fatalf("Expected 2x2 frame, got %dx%d", frame.Width, frame.Height)
	}

	tests := []struct {
		x, y     int
		expected core.Colour
	}{
		{0, 0, core.NewColour(1, 1, 1)},
		{1, 0, core.NewColour(1, 0, 0)},
		{0, 1, core.NewColour(0, 1, 0)},
		{1, 1, core.NewColour(0, 0, 1)},
	}
	for _, tt := range tests {
		if got := frame.At(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestLoadFrame_RoundTrip(t *testing.T) {
	frame := renderer.NewFrame(16, 8)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			frame.Set(x, y, core.NewColour(float32(x)/15, float32(y)/7, 0.3))
		}
	}

	path := filepath.Join(t.TempDir(), "reference.png")
	if err := Save(ToNRGBA(frame), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrame(path)
	if err != nil {
		t.Fatalf("LoadFrame failed: %v", err)
	}

	// 8-bit quantisation loses at most half a step
	diff, err := frame.MaxDifference(loaded)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff > 0.5/255+1e-6 {
		t.Errorf("Expected round trip within half a step, got %f", diff)
	}
}

func TestLoadFrame_Missing(t *testing.T) {
	if _, err := LoadFrame(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
