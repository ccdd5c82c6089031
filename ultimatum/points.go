package ultimatum

import "fmt"

// PointTable hands out the evenly spaced grid {0, 1/(n-1), ..., 1} for a
// given point count. Each grid is built on first request and shared by every
// caller asking for the same count; callers must treat it as read-only.
//
// A PointTable is not safe for concurrent first use of a new count.
type PointTable struct {
	grids map[int][]float64
}

// NewPointTable returns an empty table.
func NewPointTable() *PointTable {
	return &PointTable{grids: make(map[int][]float64)}
}

// Points returns the grid for n points. n must be at least 2.
func (t *PointTable) Points(n int) []float64 {
	if grid, ok := t.grids[n]; ok {
		return grid
	}
	if n < 2 {
		panic(fmt.Sprintf("ultimatum: point table needs at least 2 points, got %d", n))
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) / float64(n-1)
	}
	t.grids[n] = grid
	return grid
}

// Len reports how many distinct grids have been built.
func (t *PointTable) Len() int {
	return len(t.grids)
}
