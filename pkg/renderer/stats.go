package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels        int           // Total number of pixels rendered
	HitPixels          int           // Pixels whose primary ray hit a surface
	ShadowRays         int           // Shadow rays cast toward lights
	OccludedShadowRays int           // Shadow rays blocked before reaching their light
	Duration           time.Duration // Wall-clock render time
}

// Merge adds the counters of other into s. Durations are not summed since
// tiles render concurrently.
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.ShadowRays += other.ShadowRays
	s.OccludedShadowRays += other.OccludedShadowRays
}

// HitRatio returns the fraction of pixels that hit a surface
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
