package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/bitmap"
	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options is the parsed command line
type options struct {
	config config.Config
	help   bool
}

// parseArgs loads the .env file named by -env, overlays the environment and
// then applies the flags that were set explicitly
func parseArgs(args []string, environ []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.Default()
	envFile := fs.String("env", ".env", "Path to a .env file with RT_* settings")
	sceneID := fs.String("scene", defaults.Scene, "Scene ID: default, random, sphere-grid or file:<name>")
	sceneFile := fs.String("scene-file", "", "Path to a sphere file (x y z radius material per line)")
	scenesDir := fs.String("scenes-dir", defaults.ScenesDir, "Directory holding file: scenes")
	width := fs.Int("width", 0, "Image width (0 = scene default)")
	height := fs.Int("height", 0, "Image height (0 = derived from width and aspect ratio)")
	samples := fs.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := fs.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	workers := fs.Int("workers", defaults.Workers, "Number of render workers")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	frames := fs.Int("frames", defaults.Frames, "Number of frames along the camera orbit")
	orbit := fs.Float64("orbit", defaults.OrbitDegrees, "Total orbit angle in degrees across all frames")
	out := fs.String("output", defaults.Output, "Output BMP path (empty to only upload)")
	preview := fs.Uint("preview", 0, "Width of a PNG preview written next to each frame (0 = none)")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := config.LoadFrom(*envFile, environ)
	if err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneID
		case "scene-file":
			cfg.SceneFile = *sceneFile
		case "scenes-dir":
			cfg.ScenesDir = *scenesDir
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "samples":
			cfg.SamplesPerPixel = *samples
		case "depth":
			cfg.MaxDepth = *depth
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "frames":
			cfg.Frames = *frames
		case "orbit":
			cfg.OrbitDegrees = *orbit
		case "output":
			cfg.Output = *out
		case "preview":
			cfg.PreviewSize = *preview
		}
	})

	return options{config: cfg, help: *help}, nil
}

// createScene builds the configured scene and applies image size and sampling overrides
func createScene(cfg config.Config) (*scene.Scene, error) {
	var s *scene.Scene
	var err error
	if cfg.SceneFile != "" {
		s, err = scene.NewFileScene(cfg.SceneFile, material.DefaultLibrary())
	} else {
		s, err = scene.CreateScene(cfg.Scene, cfg.ScenesDir)
	}
	if err != nil {
		return nil, err
	}

	if err := s.ApplyOverrides(cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth); err != nil {
		return nil, err
	}
	return s, nil
}

// createSink returns the sink for cfg and the base frame name written to it
func createSink(cfg config.Config) (output.Sink, string, error) {
	var sinks output.MultiSink
	name := "image.bmp"

	if cfg.Output != "" {
		name = filepath.Base(cfg.Output)
		sinks = append(sinks, output.NewFileSink(filepath.Dir(cfg.Output)))
	}

	if cfg.S3Enabled() {
		client, err := output.NewS3Client(output.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		sinks = append(sinks, output.NewS3Sink(client, cfg.S3Bucket, cfg.S3Prefix))
	}

	return sinks, name, nil
}

// renderFrames renders every frame of the orbit and hands each encoded frame to sink.
// Frames are strictly sequential: frame i is written before frame i+1 starts.
func renderFrames(ctx context.Context, cfg config.Config, s *scene.Scene, sink output.Sink, baseName string, logger core.Logger) error {
	path := []geometry.CameraConfig{s.CameraConfig}
	if cfg.Frames > 1 {
		path = scene.OrbitPath(s.CameraConfig, cfg.Frames, cfg.OrbitDegrees)
	}

	raytracer, err := renderer.NewRaytracer(s.Camera, s.World, s.RenderConfig(cfg.Workers, cfg.Seed), logger)
	if err != nil {
		return err
	}

	for i, cameraConfig := range path {
		if err := s.SetCameraConfig(cameraConfig); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		raytracer.SetCamera(s.Camera)

		fb, stats, err := raytracer.RenderFrame(ctx)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		data, err := bitmap.EncodeBytes(fb)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		name := output.FrameName(baseName, i, len(path))
		if err := sink.Write(ctx, name, data, output.ContentTypeBMP); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		if cfg.PreviewSize > 0 {
			preview, err := output.EncodePreview(fb, cfg.PreviewSize)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			if err := sink.Write(ctx, output.PreviewName(name), preview, output.ContentTypePNG); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}

		logger.Printf("Frame %d/%d saved as %s (%.0f samples/s, avg luminance %.3f)\n",
			i+1, len(path), name, stats.SamplesPerSecond(), renderer.CalculateAverageLuminance(fb))
	}

	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings are read from .env, then RT_* environment variables, then flags.")
	fmt.Fprintln(w, "Run with -h for the list of flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	ids, err := scene.ListScenes(scene.FindScenesDir())
	if err != nil {
		fmt.Fprintf(w, "  (failed to list scenes: %v)\n", err)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scene file materials:")
	for _, name := range material.DefaultLibrary().Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Environ(), os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}
	if opts.help {
		printHelp(os.Stdout)
		return
	}

	cfg := opts.config
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	s, err := createScene(cfg)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	sink, baseName, err := createSink(cfg)
	if err != nil {
		log.Fatalf("Failed to set up output: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Rendering %dx%d, %d frame(s) with %d workers", s.SamplingConfig.Width, s.SamplingConfig.Height, cfg.Frames, cfg.Workers)
	if err := renderFrames(ctx, cfg, s, sink, baseName, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}
