// Package shape defines the capability protocol collision shapes implement
// and the concrete shapes the pipeline ships with. Components never branch
// on concrete shape identity directly; they query capabilities instead.
package shape

import "github.com/go-gl/mathgl/mgl64"

// maxFeaturePoints bounds the contact-feature buffers shared across the
// package: enough for a box face (4) plus clipping slack, matching the
// narrowphase clip buffers' own maxFeaturePoints.
const maxFeaturePoints = 8

// Shape is the capability protocol every collision shape implements.
// Each shape computes its own bounding volume, in its local frame and
// posed at a given Transform.
type Shape interface {
	// LocalAABB returns the shape's AABB in its own local frame.
	LocalAABB() AABB
	// WorldAABB returns the AABB of the shape posed at transform.
	WorldAABB(transform Transform) AABB
}

// SupportMap is implemented by convex shapes usable with GJK/EPA: ball,
// box, and any other shape whose furthest point in a direction can be
// computed without enumerating full geometry.
type SupportMap interface {
	Shape
	// Support returns the furthest point of the shape, in local space,
	// along direction.
	Support(direction mgl64.Vec3) mgl64.Vec3
	// GetContactFeature writes into out the local-space vertices of the
	// face/edge/point most aligned with direction (used to seed
	// manifold clipping) and sets *outCount to how many were written.
	// Zero-allocation by contract: out is caller-owned and reused.
	GetContactFeature(direction mgl64.Vec3, out *[maxFeaturePoints]mgl64.Vec3, outCount *int)
}

// CompositeShape is implemented by shapes made of indexed sub-shapes
// (e.g. Compound). Sub-parts are addressed by a dense index so generator
// caches can be kept in a slice instead of a map (spec.md design note).
type CompositeShape interface {
	Shape
	NumSubShapes() int
	SubShapeAABB(i int) AABB
	// SubShapeAt invokes fn with the sub-shape and its local transform.
	SubShapeAt(i int, fn func(sub Shape, local Transform))
}

// HeightField is implemented by terrain-like shapes: a dense grid of
// sub-triangles addressed by a single index, whose relevant range can be
// narrowed to an AABB without visiting the whole field.
type HeightField interface {
	Shape
	NumCells() int
	CellAABB(i int) AABB
	// CellsInAABB returns the indices of cells overlapping box.
	CellsInAABB(box AABB) []int
	// CellTriangle returns the three vertices of the triangle that
	// represents cell i, in local space.
	CellTriangle(i int) (a, b, c mgl64.Vec3)
}

// AsSupportMap type-asserts s to SupportMap, the idiomatic Go replacement
// for the original's trait-object downcast dispatch.
func AsSupportMap(s Shape) (SupportMap, bool) {
	sm, ok := s.(SupportMap)
	return sm, ok
}

// AsCompositeShape type-asserts s to CompositeShape.
func AsCompositeShape(s Shape) (CompositeShape, bool) {
	cs, ok := s.(CompositeShape)
	return cs, ok
}

// AsHeightField type-asserts s to HeightField.
func AsHeightField(s Shape) (HeightField, bool) {
	hf, ok := s.(HeightField)
	return hf, ok
}

// IsPlane reports whether s is the unbounded Plane shape, which several
// kernels (ball-plane, plane-support-map) special-case the way the teacher
// special-cases actor.Plane in BroadPhase/EPA.
func IsPlane(s Shape) (*Plane, bool) {
	p, ok := s.(*Plane)
	return p, ok
}

// IsBall reports whether s is a Ball.
func IsBall(s Shape) (*Ball, bool) {
	b, ok := s.(*Ball)
	return b, ok
}

func getTangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	tangent1 := mgl64.Vec3{1, 0, 0}
	if abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	}
	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()
	return tangent1, tangent2
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
