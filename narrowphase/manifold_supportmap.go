package narrowphase

import (
	"github.com/akmonengine/collide/kernel"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// supportMapContacts runs GJK/EPA to find the separating normal and
// depth, then clips each shape's contact feature along that normal into a
// full manifold. Grounded on the teacher's collision.go NarrowPhase
// (GJK then EPA) combined with epa/manifold.go's Generate, which performs
// the same feature-clip step right after its own EPA call. Always returns
// true: a GJK/EPA error (a degenerate simplex EPA can't resolve) is
// treated as no contact this tick, and nothing is pushed into out.
func (d *Dispatcher) supportMapContacts(a shape.SupportMap, aT shape.Transform, preA Preprocessor, b shape.SupportMap, bT shape.Transform, preB Preprocessor, ids *query.IdAllocator, out *query.ContactManifold, flip bool) bool {
	result, hit, err := kernel.SupportMapSupportMap(a, aT, b, bT)
	if err != nil {
		return true
	}
	if !hit {
		return true
	}

	featureA := worldFeature(a, aT, result.Normal)
	featureB := worldFeature(b, bT, result.Normal.Mul(-1))

	for _, c := range d.clip.buildManifold(featureA, featureB, result.Normal, result.Depth) {
		c.Kinematic = query.ContactKinematic{
			Local1:     aT.ToLocal(c.WorldPoint1.Sub(aT.Position)),
			Local2:     bT.ToLocal(c.WorldPoint2.Sub(bT.Position)),
			FeatureId1: c.FeatureId1,
			FeatureId2: c.FeatureId2,
		}
		pushContact(c, preA, preB, flip, ids, out)
	}
	return true
}
