// Package query holds the pipeline's shared data model: contacts, contact
// manifolds, feature ids, proximity status, and the id allocator used by
// the broad phase for proxy handles.
package query

import "github.com/go-gl/mathgl/mgl64"

// FeatureId identifies a vertex/edge/face of a shape, stable across frames
// for a fixed shape so a manifold's contacts can be matched and tracked
// across updates instead of rebuilt from scratch. Concrete shapes assign
// their own numbering (e.g. Box face indices, GJK/EPA simplex vertices).
type FeatureId uint32

// NoFeature marks a contact with no identifiable originating feature
// (e.g. the EPA degenerate-simplex fallback).
const NoFeature FeatureId = 0xFFFFFFFF

// ContactKinematic carries the local-space data needed to recompute a
// contact's world-space position/depth after either body moves, without
// rerunning the full generator — e.g. a dilated point for a ball, a plane
// normal for a plane, a point for a convex vertex.
type ContactKinematic struct {
	Local1, Local2 mgl64.Vec3
	FeatureId1     FeatureId
	FeatureId2     FeatureId
}

// Flipped swaps the two sides of the kinematic, the same role-swap
// Contact.Flipped performs on the contact it's attached to.
func (k ContactKinematic) Flipped() ContactKinematic {
	return ContactKinematic{
		Local1:     k.Local2,
		Local2:     k.Local1,
		FeatureId1: k.FeatureId2,
		FeatureId2: k.FeatureId1,
	}
}

// Contact is a single point of contact between two shapes.
type Contact struct {
	// WorldPoint1/WorldPoint2 are the contact point on shape 1 and shape
	// 2 respectively, in world space; they coincide at zero penetration
	// and separate as Depth goes negative (spec.md depth-sign convention).
	WorldPoint1 mgl64.Vec3
	WorldPoint2 mgl64.Vec3
	// Normal points from shape 1 toward shape 2.
	Normal mgl64.Vec3
	// Depth is positive when penetrating. The generators in narrowphase
	// only emit penetrating contacts, so they never produce a negative
	// (separated) Depth.
	Depth float64
	// FeatureId1/FeatureId2 identify the originating feature on each
	// shape, used to match this contact against a prior frame's.
	FeatureId1 FeatureId
	FeatureId2 FeatureId
	// Kinematic is the local-frame approximation generators attach so a
	// future pose update can recompute this contact without rerunning
	// the full algorithm.
	Kinematic ContactKinematic
}

// Flipped returns the same contact with shape 1/shape 2 roles swapped,
// normal negated and depth preserved — the symmetry operation every
// dispatch-order-independent generator must satisfy.
func (c Contact) Flipped() Contact {
	return Contact{
		WorldPoint1: c.WorldPoint2,
		WorldPoint2: c.WorldPoint1,
		Normal:      c.Normal.Mul(-1),
		Depth:       c.Depth,
		FeatureId1:  c.FeatureId2,
		FeatureId2:  c.FeatureId1,
		Kinematic:   c.Kinematic.Flipped(),
	}
}

// ContactPrediction carries a Contact interaction's prediction margin.
// The composite and height-field generators loosen their sub-part
// culling bounds by it; no generator emits a contact for a pair that is
// separated, even by less than the margin.
type ContactPrediction struct {
	Margin float64
}
