package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewRandomScene creates the many-spheres scene: a field of small random spheres
// around three large ones. Diffuse spheres bounce upward during the shutter
// interval, so the camera records motion blur. The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		ShutterOpen:   0.0,
		ShutterClose:  1.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	random := rand.New(rand.NewSource(seed))
	randomIn := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(randomIn(lo, hi), randomIn(lo, hi), randomIn(lo, hi))
	}

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the area in front of the metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				center1 := center.Add(core.NewVec3(0, randomIn(0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := randomIn(0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				world.Add(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return newScene(cameraConfig, world, SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
}
