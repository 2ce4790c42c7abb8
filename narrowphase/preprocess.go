package narrowphase

import "github.com/akmonengine/collide/query"

// Preprocessor adjusts or rejects a contact after it's generated,
// touching it in place and reporting whether to keep it. Composite and
// height-field generators compose a per-sub-part preprocessor (feature-id
// tagging) after whatever preprocessor the caller supplied, so a
// recursive dispatch sees both.
type Preprocessor func(c *query.Contact) bool

// composePreprocessors chains child after parent: both must accept the
// contact (in parent-then-child order) for the composed preprocessor to
// accept it. A nil side is treated as always-accept.
func composePreprocessors(parent, child Preprocessor) Preprocessor {
	if parent == nil {
		return child
	}
	if child == nil {
		return parent
	}
	return func(c *query.Contact) bool {
		return parent(c) && child(c)
	}
}

// applyPreprocessor reports whether c survives p, treating a nil
// preprocessor as always-accept.
func applyPreprocessor(p Preprocessor, c *query.Contact) bool {
	if p == nil {
		return true
	}
	return p(c)
}

// pushContact runs c through preA then preB (either may reject or adjust
// it in place), flips it if this generator ran in flipped order, and
// pushes whatever survives into out. Every leaf generator funnels its
// contacts through this single choke point so preprocessing, flipping
// and cache matching happen in the same order regardless of which
// generator produced the contact.
func pushContact(c query.Contact, preA, preB Preprocessor, flip bool, ids *query.IdAllocator, out *query.ContactManifold) {
	if !applyPreprocessor(preA, &c) {
		return
	}
	if !applyPreprocessor(preB, &c) {
		return
	}
	if flip {
		c = c.Flipped()
	}
	out.Push(ids, c)
}

// subPartTag returns a preprocessor that folds sub-part index i into the
// canonical-first-argument side's feature id, so a composite or
// height-field's recursive dispatch into many sub-parts produces
// contacts whose feature-id pairs distinguish which sub-part they came
// from — required for the manifold's per-feature cache to track each
// sub-part's contacts independently within the one shared manifold.
func subPartTag(i int) Preprocessor {
	return func(c *query.Contact) bool {
		c.FeatureId1 = query.FeatureId((uint32(i+1) << 16) | (uint32(c.FeatureId1) & 0xFFFF))
		return true
	}
}
