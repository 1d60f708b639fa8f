package renderer

import (
	"errors"
	"testing"
)

func TestPartitionColumns_Coverage(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		workers       int
		expectedParts int
	}{
		{"single pixel", 1, 1, 1},
		{"even split", 400, 4, 4},
		{"remainder", 10, 3, 3},
		{"one worker", 37, 1, 1},
		{"worker per column", 8, 8, 8},
		{"more workers than columns", 5, 16, 5},
		{"prime width", 401, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := PartitionColumns(tt.width, tt.workers)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(ranges) != tt.expectedParts {
				t.Fatalf("Expected %d partitions, got %d", tt.expectedParts, len(ranges))
			}

			covered := make([]int, tt.width)
			next := 0
			for i, r := range ranges {
				if r.ID != i {
					t.Errorf("Partition %d has ID %d", i, r.ID)
				}
				if r.Start != next {
					t.Errorf("Partition %d starts at %d, expected %d", i, r.Start, next)
				}
				if r.Width() < 1 {
					t.Errorf("Partition %d is empty: %+v", i, r)
				}
				for x := r.Start; x < r.End; x++ {
					covered[x]++
				}
				next = r.End
			}

			for x, count := range covered {
				if count != 1 {
					t.Errorf("Column %d covered %d times", x, count)
				}
			}
		})
	}
}

func TestPartitionColumns_LastAbsorbsRemainder(t *testing.T) {
	ranges, err := PartitionColumns(10, 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []ColumnRange{{0, 0, 3}, {1, 3, 6}, {2, 6, 10}}
	for i, r := range ranges {
		if r != expected[i] {
			t.Errorf("Partition %d: expected %+v, got %+v", i, expected[i], r)
		}
	}
}

func TestPartitionColumns_Invalid(t *testing.T) {
	tests := []struct {
		width, workers int
	}{
		{0, 1},
		{-4, 2},
		{10, 0},
		{10, -1},
	}

	for _, tt := range tests {
		if _, err := PartitionColumns(tt.width, tt.workers); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("PartitionColumns(%d, %d): expected ErrInvalidConfig, got %v", tt.width, tt.workers, err)
		}
	}
}

func TestColumnSeed(t *testing.T) {
	if ColumnSeed(42, 7) != ColumnSeed(42, 7) {
		t.Error("Same seed and column should give the same stream seed")
	}

	seen := make(map[int64]int)
	for x := 0; x < 1000; x++ {
		s := ColumnSeed(42, x)
		if prev, ok := seen[s]; ok {
			t.Fatalf("Columns %d and %d share seed %d", prev, x, s)
		}
		seen[s] = x
	}

	if ColumnSeed(1, 0) == ColumnSeed(2, 0) {
		t.Error("Different frame seeds should give different column seeds")
	}
}
