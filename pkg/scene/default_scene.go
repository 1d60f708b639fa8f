package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewDefaultScene creates the four sphere scene: a large ground sphere with a
// diffuse sphere between a mirror and a brushed gold sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Pinhole camera at the origin looking down -z
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	lib := material.DefaultLibrary()
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lib["material_ground"]),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lib["material_center"]),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, lib["material_left"]),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, lib["material_right"]),
	)

	return newScene(cameraConfig, world, SamplingConfig{
		Width:           600,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
}
