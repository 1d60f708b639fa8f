package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestMovingSphere_Center(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)

	tests := []struct {
		name     string
		time     float64
		expected core.Vec3
	}{
		{"start", 0, core.NewVec3(0, 0, 0)},
		{"midpoint", 0.5, core.NewVec3(0, 1, 0)},
		{"end", 1, core.NewVec3(0, 2, 0)},
		{"before interval clamps", -1, core.NewVec3(0, 0, 0)},
		{"after interval clamps", 3, core.NewVec3(0, 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sphere.Center(tt.time)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected center %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMovingSphere_DegenerateInterval(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(1, 0, 0), core.NewVec3(5, 0, 0), 0.5, 0.5, 0.5, nil)
	if c := sphere.Center(0.9); c != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected Center0 for an empty interval, got %v", c)
	}
}

func TestMovingSphere_HitDependsOnRayTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 3, -2), 0, 1, 0.5, nil)

	early := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	late := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 1)

	hit, isHit := sphere.Hit(early, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit at time 0")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected t=1.5, got %f", hit.T)
	}

	if _, isHit := sphere.Hit(late, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss at time 1 after the sphere moved away")
	}
}
