package shape

import "github.com/go-gl/mathgl/mgl64"

// Compound is a shape built from a fixed list of sub-shapes, each posed at
// a local transform. Supplements spec.md with the composite-shape case
// from original_source/composite_shape_against_shape.rs, which the
// distilled spec.md only names in its manifold-generator component (C5)
// without spelling out a concrete shape.
type Compound struct {
	Parts   []Shape
	Local   []Transform
	aabb    AABB
	aabbSet bool
}

// NewCompound builds a Compound and precomputes its local AABB. Panics if
// given zero parts: an empty composite has no meaningful bounding volume
// and no caller can legitimately construct one (spec.md §7 fatal
// precondition, mirroring original_source's own .expect() on empty shape
// lists in composite_shape_against_shape.rs).
func NewCompound(parts []Shape, local []Transform) *Compound {
	if len(parts) == 0 {
		panic("shape: NewCompound requires at least one sub-shape")
	}
	if len(parts) != len(local) {
		panic("shape: NewCompound parts/local length mismatch")
	}
	c := &Compound{Parts: parts, Local: local}
	box := parts[0].WorldAABB(local[0])
	for i := 1; i < len(parts); i++ {
		box = box.Merge(parts[i].WorldAABB(local[i]))
	}
	c.aabb, c.aabbSet = box, true
	return c
}

func (c *Compound) LocalAABB() AABB { return c.aabb }

func (c *Compound) WorldAABB(transform Transform) AABB {
	local := c.aabb
	corners := [8]struct{ x, y, z float64 }{
		{local.Min.X(), local.Min.Y(), local.Min.Z()}, {local.Max.X(), local.Min.Y(), local.Min.Z()},
		{local.Min.X(), local.Max.Y(), local.Min.Z()}, {local.Max.X(), local.Max.Y(), local.Min.Z()},
		{local.Min.X(), local.Min.Y(), local.Max.Z()}, {local.Max.X(), local.Min.Y(), local.Max.Z()},
		{local.Min.X(), local.Max.Y(), local.Max.Z()}, {local.Max.X(), local.Max.Y(), local.Max.Z()},
	}
	first := transform.ToWorldPoint(mgl64.Vec3{corners[0].x, corners[0].y, corners[0].z})
	min, max := first, first
	for i := 1; i < 8; i++ {
		w := transform.ToWorldPoint(mgl64.Vec3{corners[i].x, corners[i].y, corners[i].z})
		for axis := 0; axis < 3; axis++ {
			if w[axis] < min[axis] {
				min[axis] = w[axis]
			}
			if w[axis] > max[axis] {
				max[axis] = w[axis]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

func (c *Compound) NumSubShapes() int { return len(c.Parts) }

func (c *Compound) SubShapeAABB(i int) AABB {
	return c.Parts[i].WorldAABB(c.Local[i])
}

func (c *Compound) SubShapeAt(i int, fn func(sub Shape, local Transform)) {
	fn(c.Parts[i], c.Local[i])
}
