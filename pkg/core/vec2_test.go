package core

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec2
		expected Vec2
	}{
		{"unit x", NewVec2(1, 0), NewVec2(1, 0)},
		{"scaled y", NewVec2(0, -5), NewVec2(0, -1)},
		{"diagonal", NewVec2(3, 4), NewVec2(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_ZeroVectorPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic when normalizing a zero vector")
		}
		if _, ok := r.(*InvariantError); !ok {
			t.Errorf("Expected *InvariantError panic, got %T", r)
		}
	}()
	Normalize(NewVec2(0, 0))
}

func TestRotate(t *testing.T) {
	v := NewVec2(1, 0)
	got := Rotate(v, math.Pi/2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("Expected (0, 1), got %v", got)
	}

	// Rotation preserves length
	w := NewVec2(3, -4)
	if math.Abs(Rotate(w, 1.234).Length()-5) > 1e-12 {
		t.Errorf("Rotation changed vector length")
	}
}

func TestDirectionFromAngle(t *testing.T) {
	for i := 0; i < 16; i++ {
		theta := 2 * math.Pi * float64(i) / 16
		d := DirectionFromAngle(theta)
		if math.Abs(d.Length()-1) > 1e-12 {
			t.Errorf("Direction at %f is not unit length: %v", theta, d)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec2(1, 2), NewVec2(0.5, -1))
	got := ray.At(4)
	if got.X != 3 || got.Y != -2 {
		t.Errorf("Expected (3, -2), got %v", got)
	}
}

func TestNewRay_NaNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for NaN ray direction")
		}
	}()
	NewRay(NewVec2(0, 0), NewVec2(math.NaN(), 1))
}
