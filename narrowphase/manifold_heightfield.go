package narrowphase

import (
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// heightFieldContacts narrows to the cells overlapping sm's world AABB
// and treats each cell's triangle as a finite plane, reusing the same
// clip machinery plane-support-map contacts use. Grounded on
// original_source/heightfield_shape_manifold_generator.rs's per-cell
// generator cache: out.SubDetectors.Touch marks the start of a fresh
// pass and Mark(i) records that cell i contributed this pass (a dense
// slice indexed by cell index rather than a hash map, per SPEC_FULL.md's
// supplemented-features note on the domain being contiguous); the
// manifold's own EvictStaleCache drops any cell's contacts once the
// moving shape leaves it. Each cell's index is folded into its contacts'
// feature ids via subPartTag so the manifold can track cell 12's contact
// independently of cell 40's within the one shared manifold. Always
// returns true: a height-field paired with any support-map shape is
// within this generator's capability regardless of whether any cell
// presently overlaps.
func (d *Dispatcher) heightFieldContacts(hf shape.HeightField, hfT shape.Transform, preA Preprocessor, sm shape.SupportMap, smT shape.Transform, preB Preprocessor, prediction query.ContactPrediction, ids *query.IdAllocator, out *query.ContactManifold, flip bool) bool {
	smAABB := sm.WorldAABB(smT).Loosen(prediction.Margin)

	out.SubDetectors.Touch()
	for _, i := range hf.CellsInAABB(localize(hfT, smAABB)) {
		a, b, c := hf.CellTriangle(i)
		aw, bw, cw := hfT.ToWorldPoint(a), hfT.ToWorldPoint(b), hfT.ToWorldPoint(c)

		normal := bw.Sub(aw).Cross(cw.Sub(aw))
		length := normal.Len()
		if length < 1e-12 {
			continue
		}
		normal = normal.Mul(1.0 / length)
		if normal.Dot(smT.Position.Sub(aw)) < 0 {
			normal = normal.Mul(-1)
		}

		deepest := smT.ToWorldPoint(sm.Support(smT.ToLocal(normal.Mul(-1))))
		depth := -(deepest.Sub(aw).Dot(normal))
		if depth <= 0 {
			continue
		}

		out.SubDetectors.Mark(i)

		referenceFeature := []mgl64.Vec3{aw, bw, cw}
		incidentFeature := worldFeature(sm, smT, normal.Mul(-1))
		subPre := composePreprocessors(preA, subPartTag(i))

		for _, contact := range d.clip.buildManifold(referenceFeature, incidentFeature, normal, depth) {
			contact.Kinematic = query.ContactKinematic{
				Local1:     hfT.ToLocal(contact.WorldPoint1.Sub(hfT.Position)),
				Local2:     smT.ToLocal(contact.WorldPoint2.Sub(smT.Position)),
				FeatureId1: contact.FeatureId1,
				FeatureId2: contact.FeatureId2,
			}
			pushContact(contact, subPre, preB, flip, ids, out)
		}
	}
	return true
}

// localize maps a world-space AABB into hfT's local frame for the
// translation-only height-field transform (Grid.WorldAABB never
// rotates, see shape/heightfield.go).
func localize(hfT shape.Transform, box shape.AABB) shape.AABB {
	return shape.AABB{Min: box.Min.Sub(hfT.Position), Max: box.Max.Sub(hfT.Position)}
}
