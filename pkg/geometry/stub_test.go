package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// stubMaterial absorbs everything; tests only compare it by identity
type stubMaterial struct{}

func (m *stubMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// MockShape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}
