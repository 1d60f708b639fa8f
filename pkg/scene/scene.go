package scene

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.World
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the scene's preferred image settings
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// HeightForAspect returns the image height for width at the given aspect ratio, at least 1
func HeightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return max(1, int(float64(width)/aspectRatio))
}

// newScene assembles a scene, building the camera from cameraConfig
func newScene(cameraConfig geometry.CameraConfig, world *geometry.World, sampling SamplingConfig) *Scene {
	if sampling.Height == 0 {
		sampling.Height = HeightForAspect(sampling.Width, cameraConfig.AspectRatio)
	}
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: sampling,
	}
}

// Validate checks the camera and sampling settings before rendering
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	if s.World == nil {
		return fmt.Errorf("scene has no world")
	}
	sc := s.SamplingConfig
	if sc.Width < 1 || sc.Height < 1 || sc.SamplesPerPixel < 1 || sc.MaxDepth < 1 {
		return fmt.Errorf("%w: scene sampling config %+v", renderer.ErrInvalidConfig, sc)
	}
	return nil
}

// SetCameraConfig replaces the camera, rebuilding it from config
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
	return nil
}

// RenderConfig returns renderer settings for this scene's sampling config
func (s *Scene) RenderConfig(workers int, seed int64) renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		NumWorkers:      workers,
		Seed:            seed,
	}
}

// applyCameraOverrides merges the first override, if any, onto base
func applyCameraOverrides(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}

// ApplyOverrides replaces the scene's image size and sampling settings with any
// positive values given. When both width and height are set the camera aspect
// ratio follows them; when only one is set the other is derived from the aspect.
func (s *Scene) ApplyOverrides(width, height, samples, depth int) error {
	sc := &s.SamplingConfig
	if samples > 0 {
		sc.SamplesPerPixel = samples
	}
	if depth > 0 {
		sc.MaxDepth = depth
	}

	switch {
	case width > 0 && height > 0:
		sc.Width, sc.Height = width, height
		cam := s.CameraConfig
		cam.AspectRatio = float64(width) / float64(height)
		if err := s.SetCameraConfig(cam); err != nil {
			return err
		}
	case width > 0:
		sc.Width = width
		sc.Height = HeightForAspect(width, s.CameraConfig.AspectRatio)
	case height > 0:
		sc.Height = height
		sc.Width = max(1, int(float64(height)*s.CameraConfig.AspectRatio))
	}

	return s.Validate()
}
