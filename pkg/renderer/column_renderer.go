package renderer

import (
	"context"

	"github.com/df07/go-weekend-raytracer/pkg/bitmap"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Camera turns normalized image-plane coordinates into primary rays
type Camera interface {
	GetRay(s, t float64, sampler core.Sampler) core.Ray
}

// ColumnRenderer renders whole columns of a frame with an integrator.
// It only reads the camera and world, so one instance is shared by all workers.
type ColumnRenderer struct {
	camera     Camera
	world      geometry.Shape
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	seed       int64
}

// NewColumnRenderer creates a column renderer for a width x height frame
func NewColumnRenderer(camera Camera, world geometry.Shape, integratorInst integrator.Integrator, width, height, samples int, seed int64) *ColumnRenderer {
	return &ColumnRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samples,
		seed:       seed,
	}
}

// RenderColumns renders every pixel of the columns in cols into fb and returns
// the number of camera rays traced. Only pixels inside cols are written.
// The context is checked once per column.
func (cr *ColumnRenderer) RenderColumns(ctx context.Context, cols ColumnRange, fb *bitmap.Framebuffer) (int, error) {
	traced := 0
	for x := cols.Start; x < cols.End; x++ {
		if err := ctx.Err(); err != nil {
			return traced, err
		}
		sampler := core.NewSeededSampler(ColumnSeed(cr.seed, x))
		traced += cr.renderColumn(x, fb, sampler)
	}
	return traced, nil
}

// renderColumn walks column x from the bottom row up, matching the image-plane t axis
func (cr *ColumnRenderer) renderColumn(x int, fb *bitmap.Framebuffer, sampler core.Sampler) int {
	for j := cr.height - 1; j >= 0; j-- {
		sum := cr.samplePixel(x, j, sampler)
		r, g, b := QuantizeColor(sum, cr.samples)
		// j counts rows from the bottom, the framebuffer stores the top row first
		fb.SetRGB(x, cr.height-1-j, r, g, b)
	}
	return cr.height * cr.samples
}

// samplePixel accumulates jittered samples for pixel column i, row j (from the bottom)
func (cr *ColumnRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < cr.samples; sample++ {
		s := (float64(i) + sampler.Get1D()) / float64(cr.width)
		t := (float64(j) + sampler.Get1D()) / float64(cr.height)

		ray := cr.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(cr.integrator.RayColor(ray, cr.world, sampler))
	}
	return colorAccum
}
