package narrowphase

import (
	"github.com/akmonengine/collide/kernel"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// supportMapProximity reports Intersecting when GJK/EPA finds overlap,
// otherwise approximates WithinMargin/Disjoint from the margin-loosened
// world AABBs. A true general support-map distance query (GJK's
// closest-point variant) isn't part of this kernel — original_source
// keeps that as a separate signed-distance subroutine per shape pair
// rather than a generic one, which SPEC_FULL.md's Non-goals exclude;
// the AABB approximation is a documented, conservative stand-in.
func (d *Dispatcher) supportMapProximity(a shape.SupportMap, aT shape.Transform, b shape.SupportMap, bT shape.Transform, margin float64) query.Proximity {
	if _, hit, err := kernel.SupportMapSupportMap(a, aT, b, bT); err == nil && hit {
		return query.Intersecting
	}

	aBox := a.WorldAABB(aT).Loosen(margin)
	bBox := b.WorldAABB(bT)
	if aBox.Overlaps(bBox) {
		return query.WithinMargin
	}
	return query.Disjoint
}
