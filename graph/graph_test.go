package graph

import (
	"testing"

	"github.com/akmonengine/collide/query"
)

func manifoldWithDepth(depth float64) *query.ContactManifold {
	m := query.NewContactManifold()
	ids := &query.IdAllocator{}
	m.SaveCacheAndClear()
	m.Push(ids, query.Contact{Depth: depth})
	m.EvictStaleCache(ids)
	return m
}

func TestSetContactThenRemove(t *testing.T) {
	g := NewInteractionGraph()
	manifold := manifoldWithDepth(1)

	g.SetContact("a", "b", manifold)
	i, ok := g.Get("a", "b")
	if !ok {
		t.Fatal("expected an interaction between a and b")
	}
	if !i.IsContact() || i.IsProximity() {
		t.Errorf("expected IsContact, got %+v", i)
	}
	if !i.IsEffective() {
		t.Error("expected a positive-depth contact to be effective")
	}

	g.Remove("b", "a")
	if _, ok := g.Get("a", "b"); ok {
		t.Error("expected the interaction to be gone after Remove")
	}
}

func TestContactPairsIteratesOnlyContacts(t *testing.T) {
	g := NewInteractionGraph()
	g.SetContact("a", "b", query.NewContactManifold())
	g.SetProximity("a", "c", query.WithinMargin)

	var contactPairs, proximityPairs int
	g.ContactPairs(func(a, b string, m *query.ContactManifold) { contactPairs++ })
	g.ProximityPairs(func(a, b string, s query.Proximity) { proximityPairs++ })

	if contactPairs != 1 {
		t.Errorf("contactPairs = %d, want 1", contactPairs)
	}
	if proximityPairs != 1 {
		t.Errorf("proximityPairs = %d, want 1", proximityPairs)
	}
}

func TestRemoveVertexDropsAllItsInteractions(t *testing.T) {
	g := NewInteractionGraph()
	g.SetContact("a", "b", query.NewContactManifold())
	g.SetProximity("a", "c", query.Intersecting)

	g.RemoveVertex("a")

	if _, ok := g.Get("a", "b"); ok {
		t.Error("expected (a, b) interaction gone")
	}
	if _, ok := g.Get("a", "c"); ok {
		t.Error("expected (a, c) interaction gone")
	}
}

func TestEffectiveInteractionsExcludesEmptyManifold(t *testing.T) {
	g := NewInteractionGraph()
	g.SetContact("a", "b", query.NewContactManifold())
	g.SetContact("c", "d", manifoldWithDepth(0.1))

	var effective int
	g.EffectiveInteractions(func(a, b string, i *Interaction) { effective++ })
	if effective != 1 {
		t.Errorf("effective = %d, want 1", effective)
	}
}

func TestEffectiveInteractionsExcludesSpeculativeContact(t *testing.T) {
	g := NewInteractionGraph()
	g.SetContact("a", "b", manifoldWithDepth(-0.05))

	var effective int
	g.EffectiveInteractions(func(a, b string, i *Interaction) { effective++ })
	if effective != 0 {
		t.Error("expected a negative-depth (speculative) contact to be ineffective")
	}
}
