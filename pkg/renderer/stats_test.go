package renderer

import (
	"testing"
	"time"
)

func TestRenderStats_Merge(t *testing.T) {
	stats := RenderStats{TotalPixels: 10, HitPixels: 4, ShadowRays: 8, OccludedShadowRays: 2, Duration: time.Second}
	stats.Merge(RenderStats{TotalPixels: 6, HitPixels: 6, ShadowRays: 12, OccludedShadowRays: 1, Duration: time.Hour})

	expected := RenderStats{TotalPixels: 16, HitPixels: 10, ShadowRays: 20, OccludedShadowRays: 3, Duration: time.Second}
	if stats != expected {
		t.Errorf("Expected %+v, got %+v", expected, stats)
	}
}

func TestRenderStats_HitRatio(t *testing.T) {
	if r := (RenderStats{}).HitRatio(); r != 0 {
		t.Errorf("Expected 0 for empty stats, got %f", r)
	}
	if r := (RenderStats{TotalPixels: 8, HitPixels: 2}).HitRatio(); r != 0.25 {
		t.Errorf("Expected 0.25, got %f", r)
	}
}
