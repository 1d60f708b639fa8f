package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

const defaultSceneText = `0.0 -100.5 -1.0 100.0 material_ground
0.0 0.0 -1.0 0.5 material_center
-1.0 0.0 -1.0 0.5 material_left
1.0 0.0 -1.0 0.5 material_right
`

func TestParseSceneEntries(t *testing.T) {
	input := "# ground\n\n" + defaultSceneText + "  -1 0 -1 -0.45   material_glass  \n"
	entries, err := ParseSceneEntries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}

	ground := entries[0]
	if ground.Line != 3 {
		t.Errorf("Expected ground on line 3, got %d", ground.Line)
	}
	if ground.Center != core.NewVec3(0, -100.5, -1) || ground.Radius != 100 || ground.Material != "material_ground" {
		t.Errorf("Unexpected ground entry %+v", ground)
	}

	// x is taken as written
	if entries[2].Center.X != -1 {
		t.Errorf("Expected left sphere at x=-1, got %f", entries[2].Center.X)
	}

	shell := entries[4]
	if math.Abs(shell.Radius+0.45) > 1e-12 || shell.Material != "material_glass" {
		t.Errorf("Expected negative radius glass shell, got %+v", shell)
	}
}

func TestParseSceneEntries_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"too few fields", "0 0 -1 0.5\n", "line 1"},
		{"too many fields", "0 0 -1 0.5 material_center extra\n", "line 1"},
		{"bad number", "0 zero -1 0.5 material_center\n", "line 1"},
		{"zero radius", "# header\n0 0 -1 0 material_center\n", "line 2"},
		{"nan radius", "0 0 -1 0.5 material_center\n5 5 5 nan material_center\n", "line 2: invalid scene file: radius"},
		{"NaN center", "NaN 0 -1 0.5 material_center\n", "line 1: invalid scene file: x"},
		{"infinite z", "0 0 -Inf 0.5 material_center\n", "line 1: invalid scene file: z"},
		{"infinite radius", "0 0 -1 +Inf material_center\n", "radius"},
		{"overflowing y", "0 1e999 -1 0.5 material_center\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneEntries(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("Expected ErrInvalidScene, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("Expected error to mention %q, got %v", tt.line, err)
			}
		})
	}
}

func TestParseScene(t *testing.T) {
	lib := material.DefaultLibrary()
	world, err := ParseScene(strings.NewReader(defaultSceneText), lib)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if world.Len() != 4 {
		t.Fatalf("Expected 4 spheres, got %d", world.Len())
	}

	// A ray down -z from the origin hits the center sphere front face at t=0.5
	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the center sphere")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}
	if hit.Material != lib["material_center"] {
		t.Error("Expected the center sphere to share the library's material_center instance")
	}
}

func TestParseScene_UnknownMaterial(t *testing.T) {
	input := defaultSceneText + "0 1 -1 0.5 material_unobtainium\n"
	_, err := ParseScene(strings.NewReader(input), material.DefaultLibrary())
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("Expected ErrUnknownMaterial, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 5") || !strings.Contains(err.Error(), "material_unobtainium") {
		t.Errorf("Expected line number and material name in error, got %v", err)
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(defaultSceneText), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	world, err := LoadScene(path, material.DefaultLibrary())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if world.Len() != 4 {
		t.Errorf("Expected 4 spheres, got %d", world.Len())
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.txt"), material.DefaultLibrary()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist for a missing file, got %v", err)
	}
}

func TestSphereEntry_String(t *testing.T) {
	e := SphereEntry{Center: core.NewVec3(1, -0.5, 2), Radius: 0.25, Material: "material_left"}
	if got := e.String(); got != "1 -0.5 2 0.25 material_left" {
		t.Errorf("Unexpected format %q", got)
	}

	entries, err := ParseSceneEntries(strings.NewReader(e.String()))
	if err != nil || len(entries) != 1 || entries[0].Center != e.Center {
		t.Errorf("Formatted entry did not parse back: %v %v", entries, err)
	}
}
