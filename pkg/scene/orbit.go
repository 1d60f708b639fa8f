package scene

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// OrbitPath returns one camera config per frame, swinging the camera position
// about LookAt around the vertical axis by a total of degrees. Frame 0 is base.
// Height above LookAt and every other setting are kept.
func OrbitPath(base geometry.CameraConfig, frames int, degrees float64) []geometry.CameraConfig {
	if frames < 1 {
		return nil
	}

	path := make([]geometry.CameraConfig, frames)
	offset := base.Center.Subtract(base.LookAt)
	step := 0.0
	if frames > 1 {
		step = degrees * math.Pi / 180 / float64(frames-1)
	}

	for i := range path {
		angle := step * float64(i)
		sin, cos := math.Sincos(angle)
		rotated := core.NewVec3(
			offset.X*cos+offset.Z*sin,
			offset.Y,
			-offset.X*sin+offset.Z*cos,
		)

		cfg := base
		cfg.Center = base.LookAt.Add(rotated)
		path[i] = cfg
	}

	return path
}
