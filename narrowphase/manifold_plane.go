package narrowphase

import (
	"github.com/akmonengine/collide/kernel"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// planeSupportMapContacts clips the support-map shape's incident feature
// against the plane's reference feature, producing a full manifold
// instead of a single deepest point. Grounded on
// original_source/plane_convex_polyhedron_manifold_generator.rs, which
// performs exactly this clip, combined with epa/manifold.go's clipping
// machinery carried over into clip.go. Always returns true: a plane
// paired with any support-map shape is within this generator's
// capability regardless of whether the pair is presently touching.
func (d *Dispatcher) planeSupportMapContacts(plane *shape.Plane, planeT shape.Transform, preA Preprocessor, sm shape.SupportMap, smT shape.Transform, preB Preprocessor, ids *query.IdAllocator, out *query.ContactManifold, flip bool) bool {
	result, hit := kernel.PlaneSupportMap(plane, planeT, sm, smT)
	if !hit {
		return true
	}

	referenceFeature := worldFeature(plane, planeT, result.Normal)
	incidentFeature := worldFeature(sm, smT, result.Normal.Mul(-1))

	for _, c := range d.clip.buildManifold(referenceFeature, incidentFeature, result.Normal, result.Depth) {
		c.Kinematic = query.ContactKinematic{
			Local1:     planeT.ToLocal(c.WorldPoint1.Sub(planeT.Position)),
			Local2:     smT.ToLocal(c.WorldPoint2.Sub(smT.Position)),
			FeatureId1: c.FeatureId1,
			FeatureId2: c.FeatureId2,
		}
		pushContact(c, preA, preB, flip, ids, out)
	}
	return true
}
