package renderer

import (
	"fmt"
)

// ColumnRange is a contiguous block of image columns [Start, End) owned by one task
type ColumnRange struct {
	ID    int // Partition index, used for deterministic result ordering
	Start int // First column (inclusive)
	End   int // Last column (exclusive)
}

// Width returns the number of columns in the range
func (c ColumnRange) Width() int {
	return c.End - c.Start
}

// PartitionColumns splits [0, width) into contiguous, disjoint ranges.
// Every range gets width/workers columns and the last one absorbs the remainder.
// Worker counts above width are clamped so no range is empty.
func PartitionColumns(width, workers int) ([]ColumnRange, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: width must be at least 1, got %d", ErrInvalidConfig, width)
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidConfig, workers)
	}
	workers = min(workers, width)

	step := width / workers
	ranges := make([]ColumnRange, workers)
	for i := range ranges {
		ranges[i] = ColumnRange{ID: i, Start: i * step, End: (i + 1) * step}
	}
	ranges[workers-1].End = width

	return ranges, nil
}

// ColumnSeed derives the random seed for column x from the frame seed.
// Each column owns its stream, so output does not depend on how columns are split.
func ColumnSeed(seed int64, x int) int64 {
	// splitmix64 finalizer
	z := uint64(seed) + uint64(x+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
