package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func TestWorld_HitReturnsClosest(t *testing.T) {
	near := &stubMaterial{}
	far := &stubMaterial{}

	// Insert the far sphere first so ordering cannot decide the result
	world := NewWorld(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -3), 1, near),
	)

	hit, isHit := world.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != near {
		t.Error("Expected the nearer sphere to win")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
}

func TestWorld_ShrinksUpperBound(t *testing.T) {
	var bounds []float64
	recorder := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		bounds = append(bounds, tMax)
		return nil, false
	}}

	world := NewWorld(
		NewSphere(core.NewVec3(0, 0, -5), 1, nil),
		recorder,
	)

	world.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100)
	if len(bounds) != 1 || math.Abs(bounds[0]-4) > 1e-9 {
		t.Errorf("Expected later shape to be queried with tMax=4, got %v", bounds)
	}
}

func TestWorld_Empty(t *testing.T) {
	world := NewWorld()
	if _, isHit := world.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Expected empty world to miss")
	}

	world.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5, nil))
	if world.Len() != 1 {
		t.Errorf("Expected 1 shape, got %d", world.Len())
	}
}

func TestWorld_EqualTKeepsFirstInserted(t *testing.T) {
	first := &stubMaterial{}
	second := &stubMaterial{}

	world := NewWorld(
		NewSphere(core.NewVec3(0, 0, -1), 0.5, first),
		NewSphere(core.NewVec3(0, 0, -1), 0.5, second),
	)

	hit, isHit := world.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != first {
		t.Error("Expected the first inserted sphere to win a tie")
	}
}

func TestWorld_EqualTFromShapeIgnoringBound(t *testing.T) {
	first := &stubMaterial{}
	second := &stubMaterial{}
	at := func(mat material.Material) MockShape {
		return MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
			return &material.HitRecord{T: 2, Material: mat}, true
		}}
	}

	hit, isHit := NewWorld(at(first), at(second)).Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 10)
	if !isHit || hit.Material != first {
		t.Error("Expected a later candidate at equal t to be rejected")
	}
}

func TestWorld_NoNaNHitsFromValidSpheres(t *testing.T) {
	world := NewWorld(NewSphere(core.NewVec3(0, 0, -1), 0.5, nil))

	// Pointing away from every sphere
	hit, isHit := world.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, got hit at t=%f", hit.T)
	}
}
