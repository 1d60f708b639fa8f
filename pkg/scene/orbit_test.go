package scene

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

func vecClose(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

func TestOrbitPath(t *testing.T) {
	base := geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1.5,
	}

	path := OrbitPath(base, 5, 90)
	if len(path) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(path))
	}

	if !vecClose(path[0].Center, base.Center) {
		t.Errorf("Expected first frame at base position, got %v", path[0].Center)
	}

	// A quarter turn moves +z onto +x
	if !vecClose(path[4].Center, core.NewVec3(5, 2, 0)) {
		t.Errorf("Expected last frame at (5,2,0), got %v", path[4].Center)
	}

	radius := base.Center.Subtract(base.LookAt).Length()
	for i, cfg := range path {
		if d := cfg.Center.Subtract(cfg.LookAt).Length(); math.Abs(d-radius) > 1e-9 {
			t.Errorf("Frame %d: distance %f, expected %f", i, d, radius)
		}
		if cfg.VFov != base.VFov || cfg.LookAt != base.LookAt {
			t.Errorf("Frame %d changed settings other than the position", i)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Frame %d does not validate: %v", i, err)
		}
	}
}

func TestOrbitPath_EdgeCases(t *testing.T) {
	base := NewDefaultScene().CameraConfig
	base.Center = core.NewVec3(1, 0, 1)

	if path := OrbitPath(base, 0, 90); path != nil {
		t.Errorf("Expected no frames, got %d", len(path))
	}

	single := OrbitPath(base, 1, 360)
	if len(single) != 1 || single[0].Center != base.Center {
		t.Errorf("Expected one unchanged frame, got %v", single)
	}

	full := OrbitPath(base, 3, 360)
	if !vecClose(full[2].Center, base.Center) {
		t.Errorf("Expected full orbit to return to the start, got %v", full[2].Center)
	}
}
