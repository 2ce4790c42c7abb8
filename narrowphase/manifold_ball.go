package narrowphase

import (
	"github.com/akmonengine/collide/kernel"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// ballBallContacts wraps kernel.BallBall as a contact generator. Balls
// always produce exactly one contact point; prediction only widens
// whether the pair is considered overlapping at all, handled upstream by
// the pipeline's proximity gating rather than here, matching
// original_source/ball_ball_manifold_generator.rs which has no margin
// parameter of its own either. Returns true whenever the pair overlaps,
// even if preA/preB end up rejecting the single contact: capability
// mismatch (the false case) is a ball-vs-ball combination not matching
// this pair's shapes at all, which the dispatcher's type switch already
// guarantees before calling in.
func ballBallContacts(a *shape.Ball, aT shape.Transform, preA Preprocessor, b *shape.Ball, bT shape.Transform, preB Preprocessor, ids *query.IdAllocator, out *query.ContactManifold, flip bool) bool {
	result, hit := kernel.BallBall(a, aT, b, bT)
	if !hit {
		return true
	}

	c := query.Contact{
		WorldPoint1: result.Point1,
		WorldPoint2: result.Point2,
		Normal:      result.Normal,
		Depth:       result.Depth,
		FeatureId1:  query.NoFeature,
		FeatureId2:  query.NoFeature,
		Kinematic: query.ContactKinematic{
			Local1:     aT.ToLocal(result.Point1.Sub(aT.Position)),
			Local2:     bT.ToLocal(result.Point2.Sub(bT.Position)),
			FeatureId1: query.NoFeature,
			FeatureId2: query.NoFeature,
		},
	}
	pushContact(c, preA, preB, flip, ids, out)
	return true
}
