package kernel

import (
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// PlaneSupportMapResult is the closed-form outcome of testing a plane
// against a support-map shape.
type PlaneSupportMapResult struct {
	Normal mgl64.Vec3 // the plane's world-space normal, points away from the plane
	Depth  float64    // positive when the deepest point penetrates the plane
	Point  mgl64.Vec3 // world-space deepest point on the support-map shape
}

// PlaneSupportMap finds the support-map shape's deepest point against the
// plane and reports penetration. Grounded on
// original_source/plane_convex_polyhedron_manifold_generator.rs's
// dispatch: planes never need GJK/EPA since their normal is already
// known and the other shape's single deepest point fully determines
// separation.
func PlaneSupportMap(plane *shape.Plane, planeT shape.Transform, sm shape.SupportMap, smT shape.Transform) (PlaneSupportMapResult, bool) {
	worldNormal := planeT.ToWorldDir(plane.Normal).Normalize()

	deepestLocal := sm.Support(smT.ToLocal(worldNormal.Mul(-1)))
	deepestWorld := smT.ToWorldPoint(deepestLocal)

	depth := -(deepestWorld.Sub(planeT.Position).Dot(worldNormal))

	if depth <= 0 {
		return PlaneSupportMapResult{}, false
	}

	return PlaneSupportMapResult{Normal: worldNormal, Depth: depth, Point: deepestWorld}, true
}

// PlaneSupportMapProximity reports the signed separation between a plane
// and a support-map shape (negative means penetrating), grounded on
// original_source/plane_support_map_proximity_detector.rs.
func PlaneSupportMapProximity(plane *shape.Plane, planeT shape.Transform, sm shape.SupportMap, smT shape.Transform, margin float64) (dist float64, intersecting, within bool) {
	worldNormal := planeT.ToWorldDir(plane.Normal).Normalize()
	deepestLocal := sm.Support(smT.ToLocal(worldNormal.Mul(-1)))
	deepestWorld := smT.ToWorldPoint(deepestLocal)
	dist = deepestWorld.Sub(planeT.Position).Dot(worldNormal)
	return dist, dist <= 0, dist <= margin
}
