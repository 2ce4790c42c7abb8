package kernel

import (
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// SupportMapResult is the outcome of a GJK/EPA pass between two arbitrary
// support-map shapes.
type SupportMapResult struct {
	Normal mgl64.Vec3 // points from A toward B
	Depth  float64
	Face   [3]mgl64.Vec3 // the EPA polytope face the result converged on
}

// SupportMapSupportMap runs GJK to detect overlap and, on overlap, EPA to
// extract the separating normal/depth. Grounded on the teacher's
// collision.go NarrowPhase: "if collision, simplex := gjk.GJK(...); ...
// epa.EPA(...)" kept as a two-stage call, generalized from
// *actor.RigidBody pairs to Posed shape pairs.
func SupportMapSupportMap(aShape shape.SupportMap, aT shape.Transform, bShape shape.SupportMap, bT shape.Transform) (SupportMapResult, bool, error) {
	a := Posed{Shape: aShape, Transform: aT}
	b := Posed{Shape: bShape, Transform: bT}

	var simplex Simplex
	if !GJK(a, b, &simplex) {
		return SupportMapResult{}, false, nil
	}

	result, err := EPA(a, b, &simplex)
	if err != nil {
		return SupportMapResult{}, false, err
	}

	return SupportMapResult{Normal: result.Normal, Depth: result.Depth, Face: result.Vertices}, true, nil
}
