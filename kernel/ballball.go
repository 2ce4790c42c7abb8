package kernel

import (
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// BallBallResult is the closed-form outcome of testing two balls.
type BallBallResult struct {
	Normal mgl64.Vec3 // points from ball A toward ball B
	Depth  float64    // positive when penetrating
	Point1 mgl64.Vec3 // world point on A's surface
	Point2 mgl64.Vec3 // world point on B's surface
}

// BallBall tests two balls in closed form, grounded on
// original_source/ball_ball_manifold_generator.rs: balls never need
// GJK/EPA since their support function is trivial and their contact
// normal is simply the line between centers.
func BallBall(aBall *shape.Ball, aT shape.Transform, bBall *shape.Ball, bT shape.Transform) (BallBallResult, bool) {
	delta := bT.Position.Sub(aT.Position)
	dist := delta.Len()
	radiusSum := aBall.Radius + bBall.Radius

	if dist >= radiusSum {
		return BallBallResult{}, false
	}

	normal := mgl64.Vec3{0, 1, 0}
	if dist > 1e-12 {
		normal = delta.Mul(1.0 / dist)
	}

	return BallBallResult{
		Normal: normal,
		Depth:  radiusSum - dist,
		Point1: aT.Position.Add(normal.Mul(aBall.Radius)),
		Point2: bT.Position.Sub(normal.Mul(bBall.Radius)),
	}, true
}

// BallBallProximity reports proximity status for a margin-based query
// without requiring actual overlap, grounded on
// original_source/ball_ball_proximity_detector.rs.
func BallBallProximity(aBall *shape.Ball, aT shape.Transform, bBall *shape.Ball, bT shape.Transform, margin float64) (dist float64, intersecting, within bool) {
	delta := bT.Position.Sub(aT.Position)
	centerDist := delta.Len()
	radiusSum := aBall.Radius + bBall.Radius
	dist = centerDist - radiusSum
	return dist, dist <= 0, dist <= margin
}
