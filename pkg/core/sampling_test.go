package core

import (
	"math"
	"testing"
)

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with the same seed diverged at draw %d", i)
		}
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := sampler.Get3D()
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0 || c >= 1 {
				t.Fatalf("Sample %f outside [0,1)", c)
			}
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		p := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(p.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit length, got %f for %v", p.Length(), p)
		}
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-9 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	tests := []struct {
		name   string
		sample Vec2
	}{
		{"center", NewVec2(0.5, 0.5)},
		{"corner", NewVec2(0, 0)},
		{"edge", NewVec2(1, 0.5)},
		{"interior", NewVec2(0.2, 0.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SamplePointInUnitDisk(tt.sample)
			if p.Z != 0 {
				t.Errorf("Expected point in the z=0 plane, got %v", p)
			}
			if p.Length() > 1.0+1e-9 {
				t.Errorf("Point %v lies outside the unit disk", p)
			}
		})
	}
}
