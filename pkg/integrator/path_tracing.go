package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ShadowEpsilon is the minimum hit distance, which keeps scattered rays from
// re-hitting the surface they left
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	MaxDepth   int       // Maximum number of bounces
	SkyTop     core.Vec3 // Color straight up
	SkyHorizon core.Vec3 // Color straight down, blended towards SkyTop by direction
}

// NewPathTracingIntegrator creates a new path tracing integrator with the default sky
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		SkyTop:     core.NewVec3(0.5, 0.7, 1.0),
		SkyHorizon: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// RayColor computes the color for a single ray.
// The bounce loop carries the attenuation product instead of recursing, so the
// stack stays flat no matter how large MaxDepth is.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.BackgroundGradient(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}

// BackgroundGradient returns the sky color seen along a ray that escapes the scene
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.SkyHorizon.Lerp(pt.SkyTop, t)
}
