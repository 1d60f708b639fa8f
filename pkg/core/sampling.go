package core

import (
	"math"
	"math/rand"
)

// Sampler hands out uniform values in [0, 1). Materials and the camera draw
// through it so tests can substitute fixed values.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler draws from a single *rand.Rand and is not safe for concurrent use
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler returns a sampler backed by random
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler returns a sampler over a fresh stream seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere maps a unit square sample to a direction distributed
// uniformly over the sphere: z is uniform in [-1, 1], the azimuth in [0, 2π)
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	ring := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(ring*math.Cos(phi), ring*math.Sin(phi), z)
}

// SamplePointInUnitDisk maps a unit square sample onto the unit disk in the
// z=0 plane (Shirley-Chiu concentric mapping). The square's center maps to the origin.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	sx, sy := 2*sample.X-1, 2*sample.Y-1
	if sx == 0 && sy == 0 {
		return NewVec3(0, 0, 0)
	}

	var radius, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		radius = sx
		theta = math.Pi / 4 * (sy / sx)
	} else {
		radius = sy
		theta = math.Pi/2 - math.Pi/4*(sx/sy)
	}

	return NewVec3(radius*math.Cos(theta), radius*math.Sin(theta), 0)
}

// SamplePointInUnitSphere maps a unit cube sample to a point uniformly
// distributed inside the unit ball
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	// Cube root keeps the density uniform in volume
	radius := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(
		radius*sinTheta*math.Cos(phi),
		radius*sinTheta*math.Sin(phi),
		radius*cosTheta,
	)
}
