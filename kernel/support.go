// Package kernel implements the primitive geometric algorithms the narrow
// phase dispatches to: GJK/EPA for general support-map pairs, and closed
// forms for ball-ball. spec.md treats these primitives as an assumed
// external collaborator (C2); since no such crate exists in the retrieval
// pack, this package supplies them, grounded closely on the teacher's
// gjk/gjk.go and epa/epa.go, rehomed from *actor.RigidBody pairs to
// posed shape.SupportMap values since this module has no physics body.
package kernel

import (
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Posed pairs a SupportMap with the transform it's posed at.
type Posed struct {
	Shape     shape.SupportMap
	Transform shape.Transform
}

// SupportWorld returns p's furthest point along a world-space direction,
// in world space.
func (p Posed) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	local := p.Shape.Support(p.Transform.ToLocal(direction))
	return p.Transform.ToWorldPoint(local)
}

// MinkowskiSupport computes a support point of the Minkowski difference
// A-B in the given direction: furthest(A, dir) - furthest(B, -dir).
func MinkowskiSupport(a, b Posed, direction mgl64.Vec3) mgl64.Vec3 {
	return a.SupportWorld(direction).Sub(b.SupportWorld(direction.Mul(-1)))
}
