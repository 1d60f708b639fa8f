package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/bitmap"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// ErrInvalidConfig is returned for render settings that cannot produce a frame
var ErrInvalidConfig = errors.New("invalid render configuration")

// RenderConfig contains the per-frame rendering parameters
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Goroutines sharing the frame
	Seed            int64 // Base seed for the per-column random streams
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      4,
		Seed:            42,
	}
}

// Validate rejects configurations before any rendering begins
func (c RenderConfig) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.NumWorkers < 1 {
		return fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer renders frames of a world through a camera
type Raytracer struct {
	camera     Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer using a path tracing integrator bounded by config.MaxDepth
func NewRaytracer(camera Camera, world geometry.Shape, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is required", ErrInvalidConfig)
	}
	if world == nil {
		return nil, fmt.Errorf("%w: world is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetCamera replaces the camera, used between frames of an animation
func (rt *Raytracer) SetCamera(camera Camera) {
	rt.camera = camera
}

// RenderFrame renders one frame. All workers are started before the first task
// is submitted and joined before the framebuffer is returned, so the caller
// owns the buffer exclusively. The first worker error wins.
func (rt *Raytracer) RenderFrame(ctx context.Context) (*bitmap.Framebuffer, RenderStats, error) {
	start := time.Now()

	partitions, err := PartitionColumns(rt.config.Width, rt.config.NumWorkers)
	if err != nil {
		return nil, RenderStats{}, err
	}
	fb, err := bitmap.NewFramebuffer(rt.config.Width, rt.config.Height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("failed to allocate framebuffer: %w", err)
	}

	columnRenderer := NewColumnRenderer(rt.camera, rt.world, rt.integrator,
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.Seed)
	pool := NewWorkerPool(columnRenderer, len(partitions), len(partitions))

	rt.logger.Printf("Rendering %dx%d at %d samples, depth %d (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	pool.Start(ctx)
	for _, cols := range partitions {
		pool.SubmitTask(ColumnTask{Columns: cols, Framebuffer: fb})
	}

	stats := RenderStats{
		TotalPixels: rt.config.Width * rt.config.Height,
		Workers:     pool.GetNumWorkers(),
		Partitions:  len(partitions),
	}

	var firstErr error
	for i := 0; i < len(partitions); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		stats.TotalSamples += result.Samples
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("partition %d failed: %w", result.TaskID, result.Error)
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		return nil, stats, firstErr
	}

	rt.logger.Printf("Frame done in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return fb, stats, nil
}
