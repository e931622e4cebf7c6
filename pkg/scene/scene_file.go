package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// FileDescription is the JSON form of a scene. Surfaces and lights are kept
// in a single ordered list each because order decides ties between equally
// distant surfaces.
type FileDescription struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Group       string            `json:"group,omitempty"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	FOV         float64           `json:"fov"`
	ShadowBias  float64           `json:"shadowBias,omitempty"`
	Surfaces    []SurfaceDocument `json:"surfaces"`
	Lights      []LightDocument   `json:"lights"`
}

// SurfaceDocument describes one sphere or plane
type SurfaceDocument struct {
	Type   string     `json:"type"` // "sphere" or "plane"
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius,omitempty"`
	Origin [3]float64 `json:"origin"`
	Normal [3]float64 `json:"normal"`
	Colour [3]float32 `json:"colour"`
	Albedo float32    `json:"albedo"`
}

// LightDocument describes one directional or spherical light
type LightDocument struct {
	Type      string     `json:"type"` // "directional" or "spherical"
	Direction [3]float64 `json:"direction"`
	Position  [3]float64 `json:"position"`
	Colour    [3]float32 `json:"colour"`
	Intensity float32    `json:"intensity"`
}

// LoadFile reads a JSON scene description from disk
func LoadFile(path string) (*Scene, error) {
	return loadSized(path, 0, 0)
}

// Parse decodes a JSON scene description and builds it
func Parse(r io.Reader) (*Scene, error) {
	desc, err := decodeDescription(r)
	if err != nil {
		return nil, err
	}
	return desc.Build()
}

// decodeDescription rejects unknown fields so that typos in scene files are
// reported instead of silently ignored
func decodeDescription(r io.Reader) (FileDescription, error) {
	var desc FileDescription
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return desc, fmt.Errorf("failed to decode scene: %w", err)
	}
	return desc, nil
}

// Build converts the description into a validated Scene. Missing image
// settings fall back to the built-in defaults.
func (d FileDescription) Build() (*Scene, error) {
	width, height := sizeOrDefault(d.Width, d.Height)
	fov := d.FOV
	if fov == 0 {
		fov = DefaultFOV
	}

	b := NewBuilder(width, height, fov)
	if d.ShadowBias != 0 {
		b.ShadowBias(d.ShadowBias)
	}

	for i, s := range d.Surfaces {
		colour := toColour(s.Colour)
		switch strings.ToLower(s.Type) {
		case "sphere":
			b.AddSphere(toPoint(s.Center), s.Radius, colour, s.Albedo)
		case "plane":
			b.AddPlane(toPoint(s.Origin), toVec3(s.Normal), colour, s.Albedo)
		default:
			return nil, fmt.Errorf("surface %d: unknown type %q", i, s.Type)
		}
	}

	for i, l := range d.Lights {
		colour := toColour(l.Colour)
		switch strings.ToLower(l.Type) {
		case "directional":
			b.AddDirectionalLight(toVec3(l.Direction), colour, l.Intensity)
		case "spherical", "point":
			b.AddSphericalLight(toPoint(l.Position), colour, l.Intensity)
		default:
			return nil, fmt.Errorf("light %d: unknown type %q", i, l.Type)
		}
	}

	return b.Build()
}

func toPoint(v [3]float64) core.Point   { return core.NewPoint(v[0], v[1], v[2]) }
func toVec3(v [3]float64) core.Vec3     { return core.NewVec3(v[0], v[1], v[2]) }
func toColour(v [3]float32) core.Colour { return core.NewColour(v[0], v[1], v[2]) }
