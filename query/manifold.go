package query

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxContactPoints bounds a manifold to the 4 extreme points a constraint
// solver needs for stability (Erin Catto, GDC 2007).
const maxContactPoints = 4

// entry pairs a live contact with the tracking-id assigned to it, the
// identity that survives across frames independent of the contact's
// drifting coordinates.
type entry struct {
	contact    Contact
	trackingId uint32
}

// ContactManifold is the persistent set of contact points between one
// shape pair across frames. A generator's invocation follows a strict
// cycle: SaveCacheAndClear moves the previous cycle's entries into a
// match cache and empties the live set; Push then re-populates the live
// set, reusing a cached entry's tracking-id whenever a fresh contact's
// feature-id pair matches one already in the cache; EvictStaleCache frees
// the ids of whatever the cache still holds once the cycle is done. This
// is the save-cache-and-clear dance: contact identity survives minor
// motion (the feature ids don't change) even though the coordinates do,
// and an id is only ever recycled once its contact has genuinely gone
// away for a full cycle.
type ContactManifold struct {
	live  []entry
	cache []entry

	// SubDetectors tracks, for a composite-vs-shape or height-field-vs-
	// shape generator using this manifold, which sub-part indices are
	// presently contributing contacts — zero value is empty and ready to
	// use, a no-op for any generator that doesn't recurse into sub-parts.
	SubDetectors SubDetectorCache
}

// NewContactManifold returns an empty manifold.
func NewContactManifold() *ContactManifold {
	return &ContactManifold{}
}

// Contacts returns the manifold's current contact points.
func (m *ContactManifold) Contacts() []Contact {
	out := make([]Contact, len(m.live))
	for i, e := range m.live {
		out[i] = e.contact
	}
	return out
}

// TrackingId returns the persistent tracking-id of the i-th live contact,
// stable across frames as long as its feature-id pair keeps matching.
func (m *ContactManifold) TrackingId(i int) uint32 {
	return m.live[i].trackingId
}

// Len reports the number of contacts currently held.
func (m *ContactManifold) Len() int {
	return len(m.live)
}

// DeepestContact returns the contact with the greatest Depth, and false
// if the manifold is empty. A Contact interaction is only effective when
// its deepest contact has non-negative depth (actual penetration, not a
// merely speculative contact within the prediction margin).
func (m *ContactManifold) DeepestContact() (Contact, bool) {
	if len(m.live) == 0 {
		return Contact{}, false
	}
	best := m.live[0].contact
	for _, e := range m.live[1:] {
		if e.contact.Depth > best.Depth {
			best = e.contact
		}
	}
	return best, true
}

// Clear drops all contacts and frees every tracking-id outright, used
// when a generator determines the pair is no longer in contact at all
// (as opposed to the normal per-cycle save/evict dance, which only frees
// ids for entries that failed to re-match).
func (m *ContactManifold) Clear(ids *IdAllocator) {
	for _, e := range m.live {
		ids.Free(e.trackingId)
	}
	for _, e := range m.cache {
		ids.Free(e.trackingId)
	}
	m.live = nil
	m.cache = nil
}

// SaveCacheAndClear moves the manifold's live entries into its match
// cache and empties the live set. A generator calls this once, before
// emitting any contact for the current tick.
func (m *ContactManifold) SaveCacheAndClear() {
	m.cache = m.live
	m.live = nil
}

// Push adds a contact to the manifold's live set. If c's feature-id pair
// matches an entry saved by the most recent SaveCacheAndClear, that
// entry's tracking-id is reused (manifold persistence) and the cache
// entry is consumed; otherwise a fresh tracking-id is allocated from ids.
// If the live set would exceed the manifold's capacity, reduceToSpread
// cuts it back to maxContactPoints, keeping the deepest contact plus the
// most widely spread ones, and frees the tracking-id of every dropped
// entry, whether or not it was matched from the cache.
func (m *ContactManifold) Push(ids *IdAllocator, c Contact) {
	trackingId, matched := uint32(0), false
	for i, cached := range m.cache {
		if cached.contact.FeatureId1 == c.FeatureId1 && cached.contact.FeatureId2 == c.FeatureId2 {
			trackingId = cached.trackingId
			matched = true
			m.cache = append(m.cache[:i], m.cache[i+1:]...)
			break
		}
	}
	if !matched {
		trackingId = ids.Alloc()
	}

	m.live = append(m.live, entry{contact: c, trackingId: trackingId})
	if len(m.live) > maxContactPoints {
		m.live = reduceToSpread(m.live, maxContactPoints, ids)
	}
}

// EvictStaleCache frees the tracking-ids of every cache entry that
// wasn't reclaimed by a Push since the last SaveCacheAndClear. A
// generator calls this once, after emitting every contact for the
// current tick.
func (m *ContactManifold) EvictStaleCache(ids *IdAllocator) {
	for _, cached := range m.cache {
		ids.Free(cached.trackingId)
	}
	m.cache = nil
}

// reduceToSpread keeps the deepest contact plus up to n-1 more chosen to
// maximize the area they span (the tangent-plane extreme-point
// selection), freeing the ids of whatever gets dropped. Used when a
// single generator call (or several sub-parts accumulating into the same
// manifold) produces more than the manifold's capacity.
func reduceToSpread(live []entry, n int, ids *IdAllocator) []entry {
	deepest := 0
	for i, e := range live {
		if e.contact.Depth > live[deepest].contact.Depth {
			deepest = i
		}
	}
	normal := live[deepest].contact.Normal

	kept := map[int]bool{deepest: true}
	t1, t2 := tangentBasis(normal)
	pick := func(axis mgl64.Vec3, preferMax bool) {
		best := -1
		bestVal := 0.0
		for i, e := range live {
			if kept[i] {
				continue
			}
			val := e.contact.WorldPoint1.Dot(axis)
			if !preferMax {
				val = -val
			}
			if best == -1 || val > bestVal {
				best, bestVal = i, val
			}
		}
		if best != -1 {
			kept[best] = true
		}
	}
	pick(t1, true)
	pick(t1, false)
	pick(t2, true)

	for len(kept) < n {
		added := false
		for i := range live {
			if !kept[i] {
				kept[i] = true
				added = true
				break
			}
		}
		if !added {
			break
		}
	}

	out := make([]entry, 0, len(kept))
	for i, e := range live {
		if kept[i] {
			out = append(out, e)
		} else {
			ids.Free(e.trackingId)
		}
	}
	return out
}

// tangentBasis returns two unit vectors spanning the plane perpendicular
// to normal, used to pick extreme points when spreading a manifold's
// contacts for maximum area.
func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	t1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		t1 = mgl64.Vec3{0, 1, 0}
	}
	t1 = t1.Sub(normal.Mul(t1.Dot(normal))).Normalize()
	t2 := normal.Cross(t1).Normalize()
	return t1, t2
}
