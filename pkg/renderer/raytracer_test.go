package renderer

import (
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

var white = core.NewColour(1, 1, 1)

func mustBuild(t *testing.T, b *scene.Builder) *scene.Scene {
	t.Helper()
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	return s
}

func TestRender_UnlitSphereIsBlack(t *testing.T) {
	s := mustBuild(t, scene.NewBuilder(800, 600, 90).
		AddSphere(core.NewPoint(0, 0, -5), 5, core.NewColour(0.4, 1, 0.4), 0.18))

	frame, stats := NewRaytracer(s).Render()

	if frame.Width != 800 || frame.Height != 600 || len(frame.Pixels) != 800*600 {
		t.Fatalf("Expected 800x600 frame, got %dx%d with %d pixels", frame.Width, frame.Height, len(frame.Pixels))
	}
	if stats.TotalPixels != 800*600 {
		t.Errorf("Expected %d pixels in stats, got %d", 800*600, stats.TotalPixels)
	}
	if stats.HitPixels == 0 {
		t.Error("Expected primary rays to hit the sphere")
	}
	if stats.ShadowRays != 0 {
		t.Errorf("Expected no shadow rays without lights, got %d", stats.ShadowRays)
	}
	for i, c := range frame.Pixels {
		if !c.IsBlack() {
			t.Fatalf("Pixel %d should be black without lights, got %v", i, c)
		}
	}
}

func TestRender_EmptySceneIsBlack(t *testing.T) {
	s := mustBuild(t, scene.NewBuilder(40, 30, 90).
		AddDirectionalLight(core.NewVec3(0, 0, -1), white, 10))

	frame := Render(s)
	for i, c := range frame.Pixels {
		if !c.IsBlack() {
			t.Fatalf("Pixel %d should be background black, got %v", i, c)
		}
	}
}

func TestShade_CentreBrighterThanSilhouette(t *testing.T) {
	// Light travels away from the camera, so it falls on the visible hemisphere
	s := mustBuild(t, scene.NewBuilder(201, 101, 90).
		AddSphere(core.NewPoint(0, 0, -5), 1, white, 1).
		AddDirectionalLight(core.NewVec3(0, 0, -1), white, 2))
	rt := NewRaytracer(s)

	centre := rt.PixelColour(100, 50)
	if centre.IsBlack() {
		t.Fatal("Centre pixel should be lit")
	}

	// Walk right along the centre row to the last pixel still on the sphere
	edgeX := -1
	for x := 100; x < s.Width; x++ {
		if _, ok := s.Trace(rt.camera.GetRay(x, 50)); ok {
			edgeX = x
		}
	}
	if edgeX <= 100 {
		t.Fatal("Expected sphere to cover pixels right of centre")
	}

	edge := rt.PixelColour(edgeX, 50)
	if !(centre.R > edge.R && centre.G > edge.G && centre.B > edge.B) {
		t.Errorf("Centre %v should be brighter than silhouette pixel %d %v", centre, edgeX, edge)
	}
}

func TestShade_LambertianValue(t *testing.T) {
	// Head-on directional light: colour = surface * light * intensity * albedo / π
	s := mustBuild(t, scene.NewBuilder(201, 101, 90).
		AddSphere(core.NewPoint(0, 0, -5), 1, core.NewColour(1, 0.5, 0.25), 0.5).
		AddDirectionalLight(core.NewVec3(0, 0, -1), white, 2))

	got := NewRaytracer(s).PixelColour(100, 50)
	expected := float32(2 * 0.5 / 3.14159265)
	tests := []struct {
		name     string
		got, exp float32
	}{
		{"red", got.R, expected},
		{"green", got.G, expected * 0.5},
		{"blue", got.B, expected * 0.25},
	}
	for _, tt := range tests {
		if diff := tt.got - tt.exp; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.exp, tt.got)
		}
	}
}

func TestShade_BackFacingLightContributesNothing(t *testing.T) {
	// Light travels toward the camera, so it only reaches the far side
	s := mustBuild(t, scene.NewBuilder(201, 101, 90).
		AddSphere(core.NewPoint(0, 0, -5), 1, white, 1).
		AddDirectionalLight(core.NewVec3(0, 0, 1), white, 100))

	if c := NewRaytracer(s).PixelColour(100, 50); !c.IsBlack() {
		t.Errorf("Expected black, got %v", c)
	}
}

func TestShade_ClampsToOne(t *testing.T) {
	s := mustBuild(t, scene.NewBuilder(201, 101, 90).
		AddSphere(core.NewPoint(0, 0, -5), 1, white, 1).
		AddDirectionalLight(core.NewVec3(0, 0, -1), white, 1000))

	if c := NewRaytracer(s).PixelColour(100, 50); c != white {
		t.Errorf("Expected clamped white, got %v", c)
	}
}

// occlusionScene is a floor with a sphere hovering over it and the given light
func occlusionScene(t *testing.T, addLight func(*scene.Builder)) *scene.Scene {
	b := scene.NewBuilder(201, 101, 90).
		AddPlane(core.NewPoint(0, -2, 0), core.NewVec3(0, -1, 0), white, 1).
		AddSphere(core.NewPoint(0, 0, -5), 1, white, 1)
	addLight(b)
	return mustBuild(t, b)
}

func TestShade_Occlusion(t *testing.T) {
	// Ray from the camera to the floor point directly below the sphere
	floorPoint := core.NewPoint(0, -2, -5)
	ray := core.NewRay(core.Origin(), floorPoint.Subtract(core.Origin()).Normalize())

	tests := []struct {
		name  string
		light func(*scene.Builder)
		lit   bool
	}{
		{"point light above sphere", func(b *scene.Builder) {
			b.AddSphericalLight(core.NewPoint(0, 5, -5), white, 1000)
		}, false},
		{"directional light from above", func(b *scene.Builder) {
			b.AddDirectionalLight(core.NewVec3(0, -1, 0), white, 1)
		}, false},
		{"point light between floor and sphere", func(b *scene.Builder) {
			b.AddSphericalLight(core.NewPoint(0, -1.5, -5), white, 1)
		}, true},
		{"point light off to the side", func(b *scene.Builder) {
			b.AddSphericalLight(core.NewPoint(5, 5, -5), white, 1000)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := occlusionScene(t, tt.light)
			rt := NewRaytracer(s)

			hit, ok := s.Trace(ray)
			if !ok {
				t.Fatal("Expected ray to hit the floor")
			}
			if _, isPlane := s.Surface(hit).Plane(); !isPlane {
				t.Fatal("Expected ray to hit the floor before the sphere")
			}

			var stats RenderStats
			c := rt.shade(ray, hit, &stats)
			if tt.lit && c.IsBlack() {
				t.Error("Expected floor point to be lit")
			}
			if !tt.lit && !c.IsBlack() {
				t.Errorf("Expected occluded floor point to be black, got %v", c)
			}
			if stats.ShadowRays != 1 {
				t.Errorf("Expected 1 shadow ray, got %d", stats.ShadowRays)
			}
			if occluded := stats.OccludedShadowRays == 1; occluded == tt.lit {
				t.Errorf("Occluded shadow ray count %d does not match lit=%v", stats.OccludedShadowRays, tt.lit)
			}
		})
	}
}

func TestShade_MonotonicInLights(t *testing.T) {
	base := func() *scene.Builder {
		return scene.NewBuilder(64, 48, 90).
			AddPlane(core.NewPoint(0, -2, 0), core.NewVec3(0, -1, 0), core.NewColour(0.2, 0.2, 0.2), 0.18).
			AddSphere(core.NewPoint(0, 0, -5), 1, core.NewColour(0, 0, 1), 0.18).
			AddSphere(core.NewPoint(2, 1, -6), 1.5, core.NewColour(0, 1, 0), 0.18)
	}
	addLights := []func(*scene.Builder){
		func(b *scene.Builder) { b.AddDirectionalLight(core.NewVec3(0.25, -1, -2), white, 2) },
		func(b *scene.Builder) { b.AddSphericalLight(core.NewPoint(-2, 10, -3), core.NewColour(3, 0.8, 0.3), 4000) },
		func(b *scene.Builder) { b.AddSphericalLight(core.NewPoint(3, 1, -2), white, 200) },
	}

	var previous *Frame
	for n := 0; n <= len(addLights); n++ {
		b := base()
		for _, add := range addLights[:n] {
			add(b)
		}
		frame := Render(mustBuild(t, b))

		if previous != nil {
			for i := range frame.Pixels {
				c, p := frame.Pixels[i], previous.Pixels[i]
				if c.R < p.R || c.G < p.G || c.B < p.B {
					t.Fatalf("Pixel %d got darker adding light %d: %v -> %v", i, n, p, c)
				}
			}
		}
		previous = frame
	}
}

func TestRender_OutputInDisplayRange(t *testing.T) {
	s, err := scene.NewDefaultScene(160, 120)
	if err != nil {
		t.Fatalf("Failed to build default scene: %v", err)
	}

	frame := Render(s)
	for i, c := range frame.Pixels {
		for _, ch := range []float32{c.R, c.G, c.B} {
			if ch < 0 || ch > 1 {
				t.Fatalf("Pixel %d channel out of range: %v", i, c)
			}
		}
	}
	if frame.AverageLuminance() <= 0 {
		t.Error("Expected default scene to contain lit pixels")
	}
}

func TestNewRaytracer_PortraitScenePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for scene with width <= height")
		}
	}()
	NewRaytracer(&scene.Scene{Width: 100, Height: 200, FOV: 90})
}
