package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewFileScene loads spheres from a scene file and frames them with the default
// scene's camera unless overridden
func NewFileScene(path string, lib material.Library, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	world, err := loaders.LoadScene(path, lib)
	if err != nil {
		return nil, err
	}

	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 16.0 / 9.0,
	}
	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	return newScene(cameraConfig, world, SamplingConfig{
		Width:           600,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}), nil
}
