// Package graph tracks which pairs of collision objects currently have an
// active Contact or Proximity interaction (C8), exposing the pair-iterator
// surface a game loop queries each frame to react to collisions.
package graph

import "github.com/akmonengine/collide/query"

// ObjectID identifies a collision object as a graph vertex. collide.Pipeline
// converts the broad phase's proxy handle (broadphase.Handle) to this by
// formatting its numeric value as a decimal string, so the graph never
// needs its own id allocator.
type ObjectID = string

// Kind distinguishes a Contact interaction from a Proximity one.
type Kind uint8

const (
	// Contact interactions carry a persistent manifold of touching points.
	Contact Kind = iota
	// Proximity interactions carry only a tri-state status, no manifold.
	Proximity
)

// Interaction is the payload an edge of the graph carries, grounded on
// original_source/interaction_graph.rs's Interaction enum
// (Contact(ContactAlgorithm) / Proximity(ProximityAlgorithm)).
// core.Graph edges carry only an int64 weight, so Interaction values live
// in the graph package's own side table rather than on the library edge.
type Interaction struct {
	Kind     Kind
	Manifold *query.ContactManifold // non-nil iff Kind == Contact
	Status   query.Proximity        // meaningful iff Kind == Proximity
}

// IsContact reports whether this is a Contact interaction, mirroring
// original_source's Interaction::is_contact.
func (i *Interaction) IsContact() bool { return i.Kind == Contact }

// IsProximity reports whether this is a Proximity interaction, mirroring
// original_source's Interaction::is_proximity.
func (i *Interaction) IsProximity() bool { return i.Kind == Proximity }

// IsEffective reports whether the interaction currently represents actual
// touching contact — for a Contact interaction, a deepest contact with
// non-negative depth (real penetration, not a merely speculative contact
// produced within the prediction margin); for a Proximity interaction,
// status Intersecting — as opposed to a bookkeeping-only edge kept alive
// for hysteresis. Grounded on
// original_source/interaction_graph.rs's is_interaction_effective.
func (i *Interaction) IsEffective() bool {
	switch i.Kind {
	case Contact:
		if i.Manifold == nil {
			return false
		}
		deepest, ok := i.Manifold.DeepestContact()
		return ok && deepest.Depth >= 0
	case Proximity:
		return i.Status == query.Intersecting
	default:
		return false
	}
}
