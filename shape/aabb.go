package shape

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box, the bounding volume used throughout
// the pipeline (broad phase proxies, composite/height-field sub-part culling).
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint reports whether point lies inside the box (inclusive).
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps reports whether two boxes intersect on all three axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Loosen grows the box by margin on every side. Used by the broad phase to
// build a prediction-padded bound so proxies don't need re-indexing on every
// tiny motion (spec.md deferred bounding-volume update contract).
func (a AABB) Loosen(margin float64) AABB {
	pad := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}

// Merge returns the smallest box containing both a and other.
func (a AABB) Merge(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{min(a.Min.X(), other.Min.X()), min(a.Min.Y(), other.Min.Y()), min(a.Min.Z(), other.Min.Z())},
		Max: mgl64.Vec3{max(a.Max.X(), other.Max.X()), max(a.Max.Y(), other.Max.Y()), max(a.Max.Z(), other.Max.Z())},
	}
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}
