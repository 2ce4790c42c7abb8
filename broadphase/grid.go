// Package broadphase implements the incremental spatial-hash broad phase
// (C7): an index of AABB proxies that reports pairs of proxies whose
// bounding volumes overlap, and Start/Stop events when a pair begins or
// ceases to overlap. Grounded on the teacher's spatialgrid.go (the hash
// grid itself) and trigger.go (the Enter/Stay/Exit pair-diffing, narrowed
// here to the broad phase's own Start/Stop notion).
package broadphase

import "math"

// cellKey is a cell's integer coordinate in the uniform grid.
type cellKey struct{ x, y, z int }

// cell holds the handles of proxies currently occupying it. Grounded
// verbatim on spatialgrid.go's Cell, generalized from body indices to
// Handle values.
type cell struct {
	handles []Handle
}

// hashGrid is the dense power-of-two-backed hash table spatialgrid.go
// implements, factored out of Index so Index can own proxy bookkeeping
// (dirty flags, free list) separately from cell storage.
type hashGrid struct {
	cellSize float64
	cells    []cell
	cellMask int
}

func newHashGrid(cellSize float64, numCells int) *hashGrid {
	numCells = nextPowerOfTwo(numCells)
	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].handles = make([]Handle, 0, 8)
	}
	return &hashGrid{cellSize: cellSize, cells: cells, cellMask: numCells - 1}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

func (g *hashGrid) clear() {
	for i := range g.cells {
		g.cells[i].handles = g.cells[i].handles[:0]
	}
}

func (g *hashGrid) worldToCell(x, y, z float64) cellKey {
	return cellKey{
		x: int(math.Floor(x / g.cellSize)),
		y: int(math.Floor(y / g.cellSize)),
		z: int(math.Floor(z / g.cellSize)),
	}
}

func (g *hashGrid) hashCell(key cellKey) int {
	h := (key.x * 73856093) ^ (key.y * 19349663) ^ (key.z * 83492791)
	return h & g.cellMask
}

func (g *hashGrid) insert(handle Handle, minCell, maxCell cellKey) {
	for x := minCell.x; x <= maxCell.x; x++ {
		for y := minCell.y; y <= maxCell.y; y++ {
			for z := minCell.z; z <= maxCell.z; z++ {
				idx := g.hashCell(cellKey{x, y, z})
				g.cells[idx].handles = append(g.cells[idx].handles, handle)
			}
		}
	}
}
