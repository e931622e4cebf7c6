package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	SurfaceIndex int                    `json:"surfaceIndex"`
	SurfaceType  string                 `json:"surfaceType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Colour       [3]float32             `json:"colour"` // Shaded pixel colour
	Lights       []LightInfo            `json:"lights"`
	Properties   map[string]interface{} `json:"properties"`
}

// LightInfo describes how one light reaches the inspected point
type LightInfo struct {
	Type      string  `json:"type"`
	Intensity float32 `json:"intensity"`
	Facing    bool    `json:"facing"` // Light is on the lit side of the surface
}

// inspectPixel casts the primary ray through a pixel and describes the nearest surface
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	camera := renderer.NewCamera(sceneObj.Width, sceneObj.Height, sceneObj.FOV)
	ray := camera.GetRay(pixelX, pixelY)

	hit, ok := sceneObj.Trace(ray)
	if !ok {
		return InspectResponse{Hit: false, SurfaceIndex: -1}
	}

	surface := sceneObj.Surface(hit)
	point := ray.At(hit.Distance)
	normal := surface.SurfaceNormal(point)
	colour := renderer.NewRaytracer(sceneObj).Shade(ray, hit)

	lightInfo := make([]LightInfo, 0, len(sceneObj.Lights))
	for _, light := range sceneObj.Lights {
		lightInfo = append(lightInfo, LightInfo{
			Type:      string(light.Type()),
			Intensity: light.Intensity(point),
			Facing:    normal.Dot(light.DirectionFrom(point)) > 0,
		})
	}

	return InspectResponse{
		Hit:          true,
		SurfaceIndex: hit.Surface,
		SurfaceType:  surface.Kind().String(),
		Point:        [3]float64{point.X, point.Y, point.Z},
		Normal:       [3]float64{normal.X, normal.Y, normal.Z},
		Distance:     hit.Distance,
		Colour:       colourArray(colour),
		Lights:       lightInfo,
		Properties:   surfaceProperties(surface),
	}
}

// surfaceProperties extracts the defining parameters of a surface
func surfaceProperties(surface geometry.Surface) map[string]interface{} {
	properties := map[string]interface{}{
		"colour": colourArray(surface.Colour()),
		"albedo": surface.Albedo(),
	}

	if sphere, ok := surface.Sphere(); ok {
		properties["center"] = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
		properties["radius"] = sphere.Radius
	}
	if plane, ok := surface.Plane(); ok {
		properties["origin"] = [3]float64{plane.Origin.X, plane.Origin.Y, plane.Origin.Z}
		properties["normal"] = [3]float64{plane.Normal.X, plane.Normal.Y, plane.Normal.Z}
	}

	return properties
}

func colourArray(c core.Colour) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
