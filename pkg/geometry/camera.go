package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidCamera is returned by CameraConfig.Validate
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 disables defocus blur
	FocusDistance float64   // Distance to the focus plane; 0 = distance to LookAt
	ShutterOpen   float64   // Start of the exposure interval
	ShutterClose  float64   // End of the exposure interval; <= ShutterOpen means a fixed time
}

// Validate reports configurations that cannot produce a camera basis
func (c CameraConfig) Validate() error {
	if c.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio must be positive, got %f", ErrInvalidCamera, c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: vertical fov must be in (0, 180), got %f", ErrInvalidCamera, c.VFov)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("%w: aperture must not be negative, got %f", ErrInvalidCamera, c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("%w: focus distance must not be negative, got %f", ErrInvalidCamera, c.FocusDistance)
	}
	view := c.Center.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: center and look-at coincide at %v", ErrInvalidCamera, c.Center)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, c.Up)
	}
	if c.ShutterClose < c.ShutterOpen {
		return fmt.Errorf("%w: shutter closes (%f) before it opens (%f)", ErrInvalidCamera, c.ShutterClose, c.ShutterOpen)
	}
	return nil
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 || override.ShutterClose != 0 {
		result.ShutterOpen = override.ShutterOpen
		result.ShutterClose = override.ShutterClose
	}
	return result
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // Lens plane axes
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera creates a camera from the configuration.
// The configuration is expected to pass Validate.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    config.ShutterClose,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner of the image plane.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		time += sampler.Get1D() * (c.shutterClose - c.shutterOpen)
	}

	return core.NewRayAtTime(origin, direction, time)
}
