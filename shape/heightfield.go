package shape

import "github.com/go-gl/mathgl/mgl64"

// Grid is a HeightField over a regular grid of elevation samples. Each
// cell is represented by a single triangle (see CellTriangle) covering
// half of the cell's square; the other half is not part of the collision
// surface. Supplements spec.md's manifold-generator component (C5)
// with the concrete shape
// original_source/heightfield_shape_manifold_generator.rs generates
// contacts against; the distilled spec.md names the generator but not a
// shape to drive it with.
type Grid struct {
	Heights  [][]float64 // [row][col], row-major, size Rows x Cols
	CellSize float64
	aabb     AABB
}

// NewHeightField builds a height field from a row-major height grid.
// Panics if given fewer than 2 rows or columns: a height field needs at
// least one full cell to form a triangle.
func NewHeightField(heights [][]float64, cellSize float64) *Grid {
	if len(heights) < 2 || len(heights[0]) < 2 {
		panic("shape: NewHeightField requires at least a 2x2 grid")
	}
	rows, cols := len(heights), len(heights[0])
	minH, maxH := heights[0][0], heights[0][0]
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			h := heights[r][c]
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
	}
	return &Grid{
		Heights:  heights,
		CellSize: cellSize,
		aabb: AABB{
			Min: mgl64.Vec3{0, minH, 0},
			Max: mgl64.Vec3{float64(cols-1) * cellSize, maxH, float64(rows-1) * cellSize},
		},
	}
}

func (h *Grid) rows() int { return len(h.Heights) }
func (h *Grid) cols() int { return len(h.Heights[0]) }

func (h *Grid) LocalAABB() AABB { return h.aabb }

func (h *Grid) WorldAABB(transform Transform) AABB {
	// Height fields are axis-aligned by convention (no rotation support);
	// translate only, matching the grid's natural use as static terrain.
	return AABB{Min: h.aabb.Min.Add(transform.Position), Max: h.aabb.Max.Add(transform.Position)}
}

// NumCells returns the number of quad cells (each represented by one
// triangle).
func (h *Grid) NumCells() int {
	return (h.rows() - 1) * (h.cols() - 1)
}

func (h *Grid) cellRowCol(i int) (r, c int) {
	cols := h.cols() - 1
	return i / cols, i % cols
}

func (h *Grid) CellAABB(i int) AABB {
	a, b, c := h.CellTriangle(i)
	box := AABB{Min: a, Max: a}
	for _, p := range [...]mgl64.Vec3{a, b, c} {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < box.Min[axis] {
				box.Min[axis] = p[axis]
			}
			if p[axis] > box.Max[axis] {
				box.Max[axis] = p[axis]
			}
		}
	}
	return box
}

// CellsInAABB linearly scans cells, filtering by overlap with box. A real
// height field would narrow row/col ranges analytically; the pipeline's
// Non-goals exclude optimizing this shape's own geometry, only its use as
// a manifold-generator sub-part source, so a direct scan suffices.
func (h *Grid) CellsInAABB(box AABB) []int {
	var out []int
	for i := 0; i < h.NumCells(); i++ {
		if h.CellAABB(i).Overlaps(box) {
			out = append(out, i)
		}
	}
	return out
}

// CellTriangle returns the single triangle approximating cell i: the two
// diagonal corners plus the lower-left corner, consistent with a regular
// triangulated grid.
func (h *Grid) CellTriangle(i int) (a, b, c mgl64.Vec3) {
	r, col := h.cellRowCol(i)
	x0, x1 := float64(col)*h.CellSize, float64(col+1)*h.CellSize
	z0, z1 := float64(r)*h.CellSize, float64(r+1)*h.CellSize
	a = mgl64.Vec3{x0, h.Heights[r][col], z0}
	b = mgl64.Vec3{x1, h.Heights[r][col+1], z0}
	c = mgl64.Vec3{x0, h.Heights[r+1][col], z1}
	return
}
