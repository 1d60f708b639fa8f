package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
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

// InspectResult contains the hit record and the shape that produced it
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

// centerSampler returns 0.5 for every dimension, which puts lens samples at
// the lens center so inspection rays are pinhole rays
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), counted
// from the top-left corner, at the given shutter time
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int, time float64) InspectResult {
	width := sceneObj.SamplingConfig.Width
	height := sceneObj.SamplingConfig.Height

	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(s, t, centerSampler{})
	ray.Time = time

	var closest *material.HitRecord
	var closestShape geometry.Shape
	tMax := math.Inf(1)
	for _, shape := range sceneObj.World.Shapes {
		if hit, ok := shape.Hit(ray, 0.001, tMax); ok {
			closest, closestShape, tMax = hit, shape, hit.T
		}
	}

	if closest == nil {
		return InspectResult{Hit: false}
	}
	return InspectResult{Hit: true, HitRecord: closest, Shape: closestShape}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape, time float64) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		properties["hollow"] = geom.Radius < 0
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(geom.Center0)
		properties["center1"] = vecArray(geom.Center1)
		properties["centerAtTime"] = vecArray(geom.Center(time))
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := scene.CreateScene(req.Scene, s.config.ScenesDir)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.ApplyOverrides(req.Width, req.Height, req.Samples, req.Depth); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Pixel coordinates out of bounds for %dx%d", width, height))
		return
	}

	time, err := parseFloatParam(query, "time", sceneObj.CameraConfig.ShutterOpen, 0, math.MaxFloat64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY, time)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if !result.Hit {
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape, time)

	hit := result.HitRecord
	json.NewEncoder(w).Encode(InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a linear color as #rrggbb, clamping each channel to [0, 1]
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
