package scene

import (
	"math"
	"testing"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/geometry"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

func TestScene_Intersect_NearestRegardlessOfOrder(t *testing.T) {
	far := material.NewEmissive(core.NewColor(1, 0, 0))
	near := material.NewEmissive(core.NewColor(0, 1, 0))

	orders := []struct {
		name    string
		reverse bool
	}{
		{"near first", false},
		{"far first", true},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene("test")
			if tt.reverse {
				s.Add(geometry.NewDisk(core.NewVec2(20, 0), 2), far)
				s.Add(geometry.NewDisk(core.NewVec2(10, 0), 2), near)
			} else {
				s.Add(geometry.NewDisk(core.NewVec2(10, 0), 2), near)
				s.Add(geometry.NewDisk(core.NewVec2(20, 0), 2), far)
			}

			hit, isHit := s.Intersect(core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0)))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-8) > 1e-9 {
				t.Errorf("Expected nearest crossing at t=8, got t=%f", hit.T)
			}
			if hit.Material != near {
				t.Error("Hit should carry the nearest object's material")
			}
		})
	}
}

func TestScene_Intersect_SkipsEnclosingRecords(t *testing.T) {
	s := NewScene("test")
	// The origin sits inside this half-plane and never leaves it
	s.Add(geometry.NewHalfPlane(0, 1, 0), material.NewMirror(core.White))
	light := material.NewEmissive(core.NewColor(5, 5, 5))
	s.Add(geometry.NewDisk(core.NewVec2(0, 50), 5), light)

	hit, isHit := s.Intersect(core.NewRay(core.NewVec2(0, 10), core.NewVec2(0, 1)))
	if !isHit {
		t.Fatal("Expected the disk to be hit")
	}
	if hit.Enclosing || hit.Material != light {
		t.Errorf("Expected the disk crossing, got %+v", hit)
	}
	if math.Abs(hit.T-35) > 1e-9 {
		t.Errorf("Expected t=35, got t=%f", hit.T)
	}
}

func TestScene_Intersect_EmptyMisses(t *testing.T) {
	s := NewScene("empty")
	if _, isHit := s.Intersect(core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))); isHit {
		t.Error("Empty scene should never be hit")
	}
	if s.Len() != 0 {
		t.Errorf("Expected 0 objects, got %d", s.Len())
	}
}

func TestScene_IntersectObject(t *testing.T) {
	s := NewScene("pair")
	s.Add(geometry.NewDisk(core.NewVec2(20, 0), 2), material.NewMirror(core.White))
	s.Add(geometry.NewDisk(core.NewVec2(10, 0), 2), material.NewMirror(core.White))

	hit, object, isHit := s.IntersectObject(core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0)))
	if !isHit {
		t.Fatal("Expected a hit")
	}
	if object != &s.Objects[1] {
		t.Errorf("Expected the nearer disk, got %+v", object)
	}
	if hit.Material != object.Material {
		t.Error("Hit material should come from the returned object")
	}
}

func TestScene_IsInside(t *testing.T) {
	s := NewGlassBoxScene()

	tests := []struct {
		name     string
		point    core.Vec2
		expected bool
	}{
		{"inside glass", core.NewVec2(220, 220), true},
		{"inside light", core.NewVec2(460, -70), true},
		{"empty space", core.NewVec2(50, 400), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsInside(tt.point); got != tt.expected {
				t.Errorf("IsInside(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestNewSceneByName(t *testing.T) {
	for _, name := range ListScenes() {
		t.Run(name, func(t *testing.T) {
			s, err := NewSceneByName(name)
			if err != nil {
				t.Fatalf("NewSceneByName(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.Len() == 0 {
				t.Error("Built-in scene should have objects")
			}

			hasLight := false
			for _, object := range s.Objects {
				if object.Material.IsLight() {
					hasLight = true
				}
			}
			if !hasLight {
				t.Error("Built-in scene should contain at least one light")
			}
		})
	}

	if _, err := NewSceneByName("cornell-box"); err == nil {
		t.Error("Expected error for unknown scene name")
	}
}

func TestListScenes_Sorted(t *testing.T) {
	names := ListScenes()
	if len(names) != len(registry) {
		t.Fatalf("Expected %d scenes, got %d", len(registry), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Scene names not sorted: %q before %q", names[i-1], names[i])
		}
	}

	infos := ListSceneInfos()
	if infos[0].ID != names[0] || infos[0].DisplayName == "" {
		t.Errorf("Unexpected first scene info %+v", infos[0])
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-box", "Glass Box"},
		{"lens_pair", "Lens Pair"},
		{"fog", "Fog"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
