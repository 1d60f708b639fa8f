package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var (
	// ErrInvalidScene is returned for lines that are not a well-formed sphere record
	ErrInvalidScene = errors.New("invalid scene file")

	// ErrUnknownMaterial is returned when a sphere names a material the library lacks
	ErrUnknownMaterial = material.ErrUnknownMaterial
)

// SphereEntry is one parsed sphere record: "cx cy cz radius material"
type SphereEntry struct {
	Line     int
	Center   core.Vec3
	Radius   float64
	Material string
}

// String formats the entry in scene file syntax
func (e SphereEntry) String() string {
	return fmt.Sprintf("%g %g %g %g %s", e.Center.X, e.Center.Y, e.Center.Z, e.Radius, e.Material)
}

// ParseSceneEntries reads sphere records from r.
// Blank lines and lines starting with '#' are skipped. A negative radius is
// kept as is: it flips the normals and makes a hollow glass shell.
func ParseSceneEntries(r io.Reader) ([]SphereEntry, error) {
	var entries []SphereEntry

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseSphereLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		entry.Line = lineNum
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return entries, nil
}

var sphereFieldNames = [4]string{"x", "y", "z", "radius"}

// parseSphereLine parses the five whitespace separated fields of a sphere record
func parseSphereLine(line string) (SphereEntry, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return SphereEntry{}, fmt.Errorf("%w: expected 5 fields (x y z radius material), got %d", ErrInvalidScene, len(fields))
	}

	var nums [4]float64
	for i := range nums {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return SphereEntry{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidScene, sphereFieldNames[i], fields[i])
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SphereEntry{}, fmt.Errorf("%w: %s %q is not finite", ErrInvalidScene, sphereFieldNames[i], fields[i])
		}
		nums[i] = v
	}

	if nums[3] == 0 {
		return SphereEntry{}, fmt.Errorf("%w: radius must be non-zero", ErrInvalidScene)
	}

	return SphereEntry{
		Center:   core.NewVec3(nums[0], nums[1], nums[2]),
		Radius:   nums[3],
		Material: fields[4],
	}, nil
}

// BuildWorld resolves entry materials against lib and creates one sphere per entry
func BuildWorld(entries []SphereEntry, lib material.Library) (*geometry.World, error) {
	world := geometry.NewWorld()
	for _, e := range entries {
		mat, err := lib.Lookup(e.Material)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", e.Line, err)
		}
		world.Add(geometry.NewSphere(e.Center, e.Radius, mat))
	}
	return world, nil
}

// ParseScene parses a scene file and builds its world
func ParseScene(r io.Reader, lib material.Library) (*geometry.World, error) {
	entries, err := ParseSceneEntries(r)
	if err != nil {
		return nil, err
	}
	return BuildWorld(entries, lib)
}

// LoadScene loads and parses a scene file from disk
func LoadScene(filename string, lib material.Library) (*geometry.World, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	world, err := ParseScene(file, lib)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return world, nil
}
