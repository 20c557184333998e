package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/geometry"
	"github.com/df07/go-flatland-raytracer/pkg/material"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for an inspection ray
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Inside       bool                   `json:"inside"` // Whether the ray starts inside an object
	MaterialType string                 `json:"materialType,omitempty"`
	SurfaceType  string                 `json:"surfaceType,omitempty"`
	Point        [2]float64             `json:"point"`
	Normal       [2]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// colorHex formats a radiance as a display color, saturating at 255
func colorHex(c core.Color) string {
	c = c.Clamp(0, 255)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R), int(c.G), int(c.B))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Emissive:
		properties["emission"] = [3]float64{m.Emission.R, m.Emission.G, m.Emission.B}
		properties["color"] = colorHex(m.Emission)
		return "emissive", properties

	case *material.Mirror:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = colorHex(m.Albedo.Multiply(255))
		return "mirror", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = colorHex(m.Albedo.Multiply(255))
		return "dielectric", properties

	case *material.Medium:
		properties["sigmaA"] = m.SigmaA
		properties["sigmaS"] = m.SigmaS
		properties["g"] = m.G
		// Phase function straight ahead and straight back, shows how forward-peaked the medium is
		properties["phaseForward"] = material.HenyeyGreenstein(m.G, 1)
		properties["phaseBackward"] = material.HenyeyGreenstein(m.G, -1)
		return "medium", properties

	default:
		return "unknown", properties
	}
}

// extractSurfaceInfo describes a surface, recursing into boolean combinations
func (s *Server) extractSurfaceInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	operands := func(a, b geometry.Surface) {
		aType, aProps := s.extractSurfaceInfo(a)
		bType, bProps := s.extractSurfaceInfo(b)
		properties["a"] = map[string]interface{}{"type": aType, "properties": aProps}
		properties["b"] = map[string]interface{}{"type": bType, "properties": bProps}
	}

	switch surf := surface.(type) {
	case *geometry.HalfPlane:
		properties["a"] = surf.A
		properties["b"] = surf.B
		properties["c"] = surf.C
		return "half-plane", properties

	case *geometry.Disk:
		properties["center"] = [2]float64{surf.Center.X, surf.Center.Y}
		properties["radius"] = surf.Radius
		return "disk", properties

	case *geometry.Union:
		operands(surf.A, surf.B)
		return "union", properties

	case *geometry.Intersection:
		operands(surf.A, surf.B)
		return "intersection", properties

	case *geometry.Difference:
		operands(surf.A, surf.B)
		return "difference", properties

	default:
		return "unknown", properties
	}
}

// inspectRay casts a single inspection ray and describes the nearest crossing
func (s *Server) inspectRay(sceneObj *scene.Scene, ray core.Ray) InspectResponse {
	response := InspectResponse{Inside: sceneObj.IsInside(ray.Origin)}

	hit, object, isHit := sceneObj.IntersectObject(ray)
	if !isHit {
		return response
	}

	materialType, materialProps := s.extractMaterialInfo(object.Material)
	surfaceType, surfaceProps := s.extractSurfaceInfo(object.Surface)

	response.Hit = true
	response.MaterialType = materialType
	response.SurfaceType = surfaceType
	response.Point = [2]float64{hit.Point.X, hit.Point.Y}
	response.Normal = [2]float64{hit.Normal.X, hit.Normal.Y}
	response.Distance = hit.T
	response.FrontFace = hit.FrontFace
	response.Properties = map[string]interface{}{
		"material": materialProps,
		"surface":  surfaceProps,
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneName
	}

	if query.Get("x") == "" || query.Get("y") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}

	coord := float64(MaxImageSize)
	x, err := parseFloatParam(query, "x", 0, -coord, coord)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseFloatParam(query, "y", 0, -coord, coord)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	angle, err := parseFloatParam(query, "angle", 0, -2*math.Pi, 2*math.Pi)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := scene.NewSceneByName(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ray := core.NewRay(core.NewVec2(x, y), core.DirectionFromAngle(angle))
	writeJSON(w, http.StatusOK, s.inspectRay(sceneObj, ray))
}
