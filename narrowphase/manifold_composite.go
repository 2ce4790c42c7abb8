package narrowphase

import (
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// compositeContacts generates contacts between each sub-shape of comp that
// overlaps other's world AABB and other itself, recursing back through
// dispatchContacts so a Compound-of-Compounds works without special
// casing. Grounded on original_source/composite_shape_against_shape.rs,
// which performs exactly this broad-then-narrow sub-part filter instead
// of testing every sub-shape unconditionally, and on its per-sub-part
// generator cache: out.SubDetectors.Touch marks the start of a fresh
// pass, Mark(i) records that leaf i was visited this pass, and the
// manifold's own EvictStaleCache (driven by GenerateContacts, not here)
// takes care of dropping any leaf's contacts once it stops overlapping —
// SubDetectors only needs to track liveness, since the actual per-contact
// cache lives in the manifold's feature-id table. Each overlapping leaf's
// index is folded into its contacts' feature ids via subPartTag so the
// manifold can distinguish leaf 3's contacts from leaf 7's even though
// they share one manifold. Always returns true: a composite paired with
// any shape is within this generator's capability regardless of whether
// any sub-shape presently overlaps.
func (d *Dispatcher) compositeContacts(comp shape.CompositeShape, compT shape.Transform, preA Preprocessor, other shape.Shape, otherT shape.Transform, preB Preprocessor, prediction query.ContactPrediction, ids *query.IdAllocator, out *query.ContactManifold, flip bool) bool {
	otherAABB := other.WorldAABB(otherT).Loosen(prediction.Margin)

	out.SubDetectors.Touch()
	for i := 0; i < comp.NumSubShapes(); i++ {
		comp.SubShapeAt(i, func(sub shape.Shape, local shape.Transform) {
			worldT := compT.Compose(local)
			if !sub.WorldAABB(worldT).Overlaps(otherAABB) {
				return
			}
			out.SubDetectors.Mark(i)
			subPre := composePreprocessors(preA, subPartTag(i))
			d.dispatchContacts(worldT, sub, subPre, otherT, other, preB, prediction, ids, out, flip)
		})
	}
	return true
}

// compositeProximity reports the closest-to-intersecting status across
// comp's sub-shapes: Intersecting wins over WithinMargin wins over
// Disjoint, matching the "any sub-part touching counts as touching"
// semantics a composite's overall proximity needs.
func (d *Dispatcher) compositeProximity(comp shape.CompositeShape, compT shape.Transform, other shape.Shape, otherT shape.Transform, margin float64) query.Proximity {
	best := query.Disjoint
	for i := 0; i < comp.NumSubShapes(); i++ {
		var status query.Proximity
		comp.SubShapeAt(i, func(sub shape.Shape, local shape.Transform) {
			worldT := compT.Compose(local)
			status = d.DetectProximity(sub, worldT, other, otherT, margin)
		})
		if status < best {
			best = status
		}
		if best == query.Intersecting {
			break
		}
	}
	return best
}
