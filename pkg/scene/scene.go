package scene

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/geometry"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// Object binds a surface to the material it is made of
type Object struct {
	Surface  geometry.Surface
	Material material.Material
}

// Scene is an ordered list of objects. Hits resolve to the nearest object
// regardless of insertion order.
type Scene struct {
	Name    string
	Objects []Object
}

// NewScene creates an empty scene
func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Objects: make([]Object, 0),
	}
}

// Add appends an object to the scene
func (s *Scene) Add(surface geometry.Surface, mat material.Material) {
	core.Invariant(surface != nil && mat != nil, "scene objects need a surface and a material")
	s.Objects = append(s.Objects, Object{Surface: surface, Material: mat})
}

// Len returns the number of objects in the scene
func (s *Scene) Len() int {
	return len(s.Objects)
}

// Intersect finds the nearest boundary crossing over all objects
func (s *Scene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	hit, _, ok := s.IntersectObject(ray)
	return hit, ok
}

// IntersectObject is Intersect that also returns the object that was hit
func (s *Scene) IntersectObject(ray core.Ray) (*material.SurfaceInteraction, *Object, bool) {
	closest := math.Inf(1)
	var nearest *material.SurfaceInteraction
	var nearestObject *Object

	for i := range s.Objects {
		object := &s.Objects[i]
		hit, ok := object.Surface.Hit(ray, closest)
		if !ok || hit.Enclosing {
			continue
		}
		closest = hit.T
		hit.Material = object.Material
		nearest = hit
		nearestObject = object
	}

	return nearest, nearestObject, nearest != nil
}

// IsInside reports whether p is contained in any object
func (s *Scene) IsInside(p core.Vec2) bool {
	for _, object := range s.Objects {
		if object.Surface.Inside(p) {
			return true
		}
	}
	return false
}
