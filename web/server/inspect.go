package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Box:
		properties["min"] = toArray(geom.Min)
		properties["max"] = toArray(geom.Max)
		return "box", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Object    geometry.Hittable // nil when the world holds no matching object
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), row 0 at the top,
// and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	camera, err := renderer.NewCamera(sceneObj.CameraConfig)
	if err != nil {
		return InspectResult{}, err
	}

	u := (float64(pixelX) + 0.5) / float64(sceneObj.Width-1)
	v := (float64(sceneObj.Height-1-pixelY) + 0.5) / float64(sceneObj.Height-1)
	ray := camera.GetRay(u, v)

	hit, isHit := sceneObj.World.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}, nil
	}

	// The world reports the nearest hit but not which object produced it
	for _, object := range sceneObj.World.Objects() {
		if objectHit, ok := object.Hit(ray, 0.001, hit.T); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}, nil
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneReq, err := parseSceneRequest(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createSizedScene(sceneReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(result.HitRecord.Point),
		Normal:       toArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
