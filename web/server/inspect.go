package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/geometry"
	"github.com/df07/go-sphere-raycaster/pkg/integrator"
	"github.com/df07/go-sphere-raycaster/pkg/material"
	"github.com/df07/go-sphere-raycaster/pkg/renderer"
	"github.com/df07/go-sphere-raycaster/pkg/scene"
)

var errPixelOutOfBounds = errors.New("pixel coordinates out of bounds")

// InspectResponse represents the JSON response for sphere inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	Index      int                    `json:"index"`
	Surface    string                 `json:"surface"`
	Point      [3]float32             `json:"point"`
	Normal     [3]float32             `json:"normal"` // points toward the center
	Distance   float32                `json:"distance"`
	Brightness float32                `json:"brightness"`
	Color      string                 `json:"color"` // final pixel color
	Properties map[string]interface{} `json:"properties"`
}

// extractSurfaceInfo describes a sphere's surface options
func extractSurfaceInfo(options material.SurfaceOptions) map[string]interface{} {
	properties := map[string]interface{}{
		"specular":  options.Specular,
		"diffuse":   options.Diffuse,
		"ambient":   options.Ambient,
		"shininess": options.Shininess,
	}

	switch surface := options.Surface.(type) {
	case material.Opaque:
		properties["baseColor"] = hexColor(surface.Color)
	case material.Transparent:
		properties["indexRatio"] = surface.IndexRatio
	}
	return properties
}

// extractGeometryInfo describes a sphere's shape
func extractGeometryInfo(sphere geometry.Sphere) map[string]interface{} {
	return map[string]interface{}{
		"center": [3]float32(sphere.Center),
		"radius": sphere.Radius,
	}
}

// inspectPixel casts the camera ray through a pixel and describes the
// nearest sphere it hits
func inspectPixel(sceneObj *scene.Scene, config integrator.Config, pixelX, pixelY int) (InspectResponse, error) {
	camera := sceneObj.Camera()
	if width, height := camera.Size(); pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return InspectResponse{}, errPixelOutOfBounds
	}
	ray := camera.GetRay(pixelX, pixelY)

	hit, ok := sceneObj.NearestHit(ray.Origin, ray.Direction)
	if !ok {
		return InspectResponse{Hit: false, Index: -1, Color: hexColor(renderer.DefaultConfig().Background)}, nil
	}

	rc := integrator.NewRayCastingIntegrator(sceneObj, config)
	color, _, err := rc.ColorAlong(ray.Origin, ray.Direction)
	if err != nil {
		return InspectResponse{}, err
	}

	sphere := sceneObj.Sphere(hit.Index)
	p := ray.At(hit.Distance)

	return InspectResponse{
		Hit:        true,
		Index:      hit.Index,
		Surface:    sphere.Options.Surface.Kind(),
		Point:      [3]float32(p),
		Normal:     [3]float32(sphere.InwardNormal(p)),
		Distance:   hit.Distance,
		Brightness: rc.Brightness(hit.Index, p, ray.Direction),
		Color:      hexColor(color),
		Properties: map[string]interface{}{
			"surface":  extractSurfaceInfo(sphere.Options),
			"geometry": extractGeometryInfo(sphere),
		},
	}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
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
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := integrator.DefaultConfig()
	config.MaxDepth = inspectReq.MaxDepth
	response, err := inspectPixel(sceneObj, config, pixelX, pixelY)
	if errors.Is(err, errPixelOutOfBounds) {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func hexColor(c core.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
