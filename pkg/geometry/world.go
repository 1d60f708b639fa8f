package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// World is an insertion-ordered collection of shapes.
// It is read-only while a render is in flight and may be shared by all workers.
type World struct {
	Shapes []Shape
}

// NewWorld creates a world containing the given shapes
func NewWorld(shapes ...Shape) *World {
	return &World{Shapes: shapes}
}

// Add appends shapes to the world
func (w *World) Add(shapes ...Shape) {
	w.Shapes = append(w.Shapes, shapes...)
}

// Len returns the number of shapes in the world
func (w *World) Len() int {
	return len(w.Shapes)
}

// Hit returns the closest hit among all shapes with a linear scan.
// A later shape replaces the current best only when it is strictly closer,
// so on equal t the earlier inserted shape wins.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range w.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit && (!hitAnything || hit.T < closestSoFar) {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
