package query

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestContactFlipped(t *testing.T) {
	c := Contact{
		WorldPoint1: mgl64.Vec3{1, 0, 0},
		WorldPoint2: mgl64.Vec3{2, 0, 0},
		Normal:      mgl64.Vec3{1, 0, 0},
		Depth:       0.5,
		FeatureId1:  3,
		FeatureId2:  7,
	}
	f := c.Flipped()
	if f.WorldPoint1 != c.WorldPoint2 || f.WorldPoint2 != c.WorldPoint1 {
		t.Error("Flipped should swap world points")
	}
	if f.Normal != (mgl64.Vec3{-1, 0, 0}) {
		t.Errorf("Normal = %v, want negated", f.Normal)
	}
	if f.FeatureId1 != 7 || f.FeatureId2 != 3 {
		t.Error("Flipped should swap feature ids")
	}
	if f.Depth != c.Depth {
		t.Error("Flipped should preserve depth")
	}
}

func contactWithFeatures(f1, f2 FeatureId, depth float64) Contact {
	return Contact{FeatureId1: f1, FeatureId2: f2, Depth: depth, Normal: mgl64.Vec3{0, 1, 0}}
}

func pushAll(m *ContactManifold, ids *IdAllocator, contacts []Contact) {
	m.SaveCacheAndClear()
	for _, c := range contacts {
		m.Push(ids, c)
	}
	m.EvictStaleCache(ids)
}

func TestContactManifoldPushPreservesTrackingIdAcrossCycles(t *testing.T) {
	m := NewContactManifold()
	ids := &IdAllocator{}

	pushAll(m, ids, []Contact{
		contactWithFeatures(1, 1, 0.1),
		contactWithFeatures(2, 2, 0.2),
	})
	first := m.TrackingId(1)

	pushAll(m, ids, []Contact{
		contactWithFeatures(2, 2, 0.25),
		contactWithFeatures(3, 3, 0.05),
	})

	contacts := m.Contacts()
	if len(contacts) != 2 {
		t.Fatalf("len = %d, want 2", len(contacts))
	}
	if contacts[0].FeatureId1 != 2 || contacts[0].Depth != 0.25 {
		t.Errorf("expected the matched (2,2) contact to keep its slot, got %+v", contacts[0])
	}
	if m.TrackingId(0) != first {
		t.Errorf("expected the re-matched (2,2) contact to keep its tracking-id %d, got %d", first, m.TrackingId(0))
	}
	if contacts[1].FeatureId1 != 3 {
		t.Errorf("expected the unmatched (3,3) contact appended, got %+v", contacts[1])
	}
}

func TestContactManifoldEvictStaleCacheFreesUnmatchedIds(t *testing.T) {
	m := NewContactManifold()
	ids := &IdAllocator{}

	pushAll(m, ids, []Contact{contactWithFeatures(1, 1, 0.1)})
	before := ids.Len()

	pushAll(m, ids, nil)
	if ids.Len() != before-1 {
		t.Errorf("Len = %d, want %d after the (1,1) contact dropped out", ids.Len(), before-1)
	}
}

func TestContactManifoldPushCapsAtMaxContactPoints(t *testing.T) {
	m := NewContactManifold()
	ids := &IdAllocator{}
	fresh := []Contact{
		contactWithFeatures(1, 1, 0.1),
		contactWithFeatures(2, 2, 0.5),
		contactWithFeatures(3, 3, 0.2),
		contactWithFeatures(4, 4, 0.4),
		contactWithFeatures(5, 5, 0.3),
	}
	pushAll(m, ids, fresh)
	if m.Len() != maxContactPoints {
		t.Fatalf("Len = %d, want %d", m.Len(), maxContactPoints)
	}
	deepest, ok := m.DeepestContact()
	if !ok || deepest.FeatureId1 != 2 {
		t.Errorf("expected the deepest contact (2,2) to survive, got %+v", deepest)
	}
}

func TestContactManifoldDeepestContactEmpty(t *testing.T) {
	m := NewContactManifold()
	if _, ok := m.DeepestContact(); ok {
		t.Error("expected DeepestContact to report false on an empty manifold")
	}
}

func TestContactManifoldClear(t *testing.T) {
	m := NewContactManifold()
	ids := &IdAllocator{}
	pushAll(m, ids, []Contact{contactWithFeatures(1, 1, 0.1)})
	m.Clear(ids)
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0 after Clear", m.Len())
	}
	if ids.Len() != 0 {
		t.Errorf("Len = %d, want all ids freed after Clear", ids.Len())
	}
}

func TestIdAllocatorReusesFreedIds(t *testing.T) {
	alloc := IdAllocator{}
	a := alloc.Alloc()
	b := alloc.Alloc()
	alloc.Free(a)
	c := alloc.Alloc()
	if c != a {
		t.Errorf("expected freed id %d to be reused, got %d", a, c)
	}
	if b == c {
		t.Error("b and c should differ")
	}
}

func TestProximityString(t *testing.T) {
	cases := map[Proximity]string{
		Intersecting: "Intersecting",
		WithinMargin: "WithinMargin",
		Disjoint:     "Disjoint",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
