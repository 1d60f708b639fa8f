package material

import "github.com/df07/go-weekend-raytracer/pkg/core"

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value float64
	pair  core.Vec2
	tuple core.Vec3
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return f.pair
}
func (f fixedSampler) Get3D() core.Vec3 { return f.tuple }
