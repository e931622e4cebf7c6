package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

func TestFrame_SetAt(t *testing.T) {
	frame := NewFrame(4, 3)
	red := core.NewColour(1, 0, 0)
	frame.Set(3, 2, red)

	if frame.At(3, 2) != red {
		t.Errorf("Expected red at (3,2), got %v", frame.At(3, 2))
	}
	if frame.Pixels[11] != red {
		t.Error("Expected row-major storage")
	}
	if !frame.At(0, 0).IsBlack() {
		t.Error("Expected new frame to be black")
	}
	if frame.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Unexpected bounds %v", frame.Bounds())
	}
}

func TestFrame_SubFrame(t *testing.T) {
	frame := NewFrame(5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			frame.Set(x, y, core.NewColour(float32(x), float32(y), 0))
		}
	}

	sub := frame.SubFrame(image.Rect(1, 2, 4, 4))
	if sub.Width != 3 || sub.Height != 2 {
		t.Fatalf("Expected 3x2 sub-frame, got %dx%d", sub.Width, sub.Height)
	}
	if sub.At(0, 0) != core.NewColour(1, 2, 0) || sub.At(2, 1) != core.NewColour(3, 3, 0) {
		t.Errorf("Unexpected sub-frame contents %v", sub.Pixels)
	}

	// Copies are independent
	sub.Set(0, 0, core.Black())
	if frame.At(1, 2).IsBlack() {
		t.Error("Modifying sub-frame changed the original")
	}

	// Bounds are clipped to the frame
	clipped := frame.SubFrame(image.Rect(3, 3, 10, 10))
	if clipped.Width != 2 || clipped.Height != 1 {
		t.Errorf("Expected clipped 2x1 sub-frame, got %dx%d", clipped.Width, clipped.Height)
	}
}

func TestFrame_AverageLuminance(t *testing.T) {
	// Red, green, blue and black average to (0.299 + 0.587 + 0.114) / 4
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewColour(1, 0, 0))
	frame.Set(1, 0, core.NewColour(0, 1, 0))
	frame.Set(0, 1, core.NewColour(0, 0, 1))

	if avg := frame.AverageLuminance(); math.Abs(avg-0.25) > 1e-6 {
		t.Errorf("Expected average luminance 0.25, got %f", avg)
	}
	if avg := NewFrame(0, 0).AverageLuminance(); avg != 0 {
		t.Errorf("Expected 0 for empty frame, got %f", avg)
	}
}

func TestFrame_MaxDifference(t *testing.T) {
	a := NewFrame(2, 2)
	b := NewFrame(2, 2)
	a.Set(0, 1, core.NewColour(0.5, 0.25, 1))
	b.Set(0, 1, core.NewColour(0.5, 0.5, 0.75))

	diff, err := a.MaxDifference(b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff != 0.25 {
		t.Errorf("Expected max difference 0.25, got %f", diff)
	}

	if diff, _ := a.MaxDifference(a); diff != 0 {
		t.Errorf("Expected identical frames to differ by 0, got %f", diff)
	}

	if _, err := a.MaxDifference(NewFrame(3, 2)); err == nil {
		t.Error("Expected error comparing frames of different sizes")
	}
}
