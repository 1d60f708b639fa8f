package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
)

// ErrInvalidConfig is returned by Validate and by malformed environment values
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything the CLI and web service need to render and publish frames.
// Zero Width, Height, SamplesPerPixel and MaxDepth mean "use the scene's value".
type Config struct {
	Scene     string // Scene ID passed to scene.CreateScene
	SceneFile string // Path to a sphere file; takes precedence over Scene
	ScenesDir string // Directory searched for "file:" scenes

	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	Seed            int64

	Frames       int     // Number of frames along the orbit path
	OrbitDegrees float64 // Total camera rotation across all frames

	Output      string // Local output path; frames beyond the first get a numeric suffix
	PreviewSize uint   // Width of a PNG thumbnail written next to each frame, 0 disables

	ServerAddress string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Scene:         "default",
		ScenesDir:     "scenes",
		Workers:       DefaultWorkers(),
		Seed:          42,
		Frames:        1,
		OrbitDegrees:  360,
		Output:        "image.bmp",
		ServerAddress: ":8080",
		S3Region:      "us-east-1",
	}
}

// DefaultWorkers returns the number of logical CPUs, falling back to the Go runtime's count
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// LoadEnvFile reads KEY=VALUE pairs from a .env file. A missing file yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return vars, nil
}

// Load builds a Config from defaults, then envFile, then the process environment
func Load(envFile string) (Config, error) {
	return LoadFrom(envFile, os.Environ())
}

// LoadFrom is Load with an explicit environment in os.Environ form
func LoadFrom(envFile string, environ []string) (Config, error) {
	vars, err := LoadEnvFile(envFile)
	if err != nil {
		return Config{}, err
	}

	// Process environment wins over the file
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			vars[key] = value
		}
	}

	cfg := Default()
	if err := cfg.ApplyEnv(vars); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays RT_* variables onto c
func (c *Config) ApplyEnv(vars map[string]string) error {
	strs := map[string]*string{
		"RT_SCENE":          &c.Scene,
		"RT_SCENE_FILE":     &c.SceneFile,
		"RT_SCENES_DIR":     &c.ScenesDir,
		"RT_OUTPUT":         &c.Output,
		"RT_SERVER_ADDRESS": &c.ServerAddress,
		"RT_S3_BUCKET":      &c.S3Bucket,
		"RT_S3_REGION":      &c.S3Region,
		"RT_S3_ENDPOINT":    &c.S3Endpoint,
		"RT_S3_ACCESS_KEY":  &c.S3AccessKey,
		"RT_S3_SECRET_KEY":  &c.S3SecretKey,
		"RT_S3_PREFIX":      &c.S3Prefix,
	}
	for key, dst := range strs {
		if v, ok := vars[key]; ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"RT_WIDTH":   &c.Width,
		"RT_HEIGHT":  &c.Height,
		"RT_SAMPLES": &c.SamplesPerPixel,
		"RT_DEPTH":   &c.MaxDepth,
		"RT_WORKERS": &c.Workers,
		"RT_FRAMES":  &c.Frames,
	}
	for key, dst := range ints {
		v, ok := vars[key]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
		}
		*dst = n
	}

	if v := vars["RT_SEED"]; v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: RT_SEED=%q is not an integer", ErrInvalidConfig, v)
		}
		c.Seed = n
	}
	if v := vars["RT_ORBIT_DEGREES"]; v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: RT_ORBIT_DEGREES=%q is not a number", ErrInvalidConfig, v)
		}
		c.OrbitDegrees = f
	}
	if v := vars["RT_PREVIEW_SIZE"]; v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: RT_PREVIEW_SIZE=%q is not a non-negative integer", ErrInvalidConfig, v)
		}
		c.PreviewSize = uint(n)
	}

	return nil
}

// Validate rejects settings that can never render
func (c Config) Validate() error {
	if c.Scene == "" && c.SceneFile == "" {
		return fmt.Errorf("%w: no scene selected", ErrInvalidConfig)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: image size must not be negative, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("%w: samples per pixel must not be negative, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Frames < 1 {
		return fmt.Errorf("%w: frame count must be at least 1, got %d", ErrInvalidConfig, c.Frames)
	}
	if c.Output == "" && !c.S3Enabled() {
		return fmt.Errorf("%w: no output configured", ErrInvalidConfig)
	}
	return nil
}

// S3Enabled reports whether frames should be uploaded
func (c Config) S3Enabled() bool {
	return c.S3Bucket != ""
}
