package graph

import (
	"fmt"

	"github.com/akmonengine/collide/query"
	"github.com/katalvlaran/lvlath/core"
)

// edgeKey canonically orders a pair of vertex ids so the same pair always
// maps to the same side-table entry regardless of call order.
type edgeKey struct{ a, b ObjectID }

func makeEdgeKey(a, b ObjectID) edgeKey {
	if a <= b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// edgeState is the side-table payload for one tracked pair: the
// Interaction itself plus the library edge id backing it, since
// core.Graph.RemoveEdge takes an edge id rather than an endpoint pair.
type edgeState struct {
	interaction *Interaction
	edgeID      string
}

// InteractionGraph tracks one Interaction per unordered pair of collision
// objects presently close enough for the narrow phase to care about.
// Built on github.com/katalvlaran/lvlath/core.Graph for vertex/edge
// bookkeeping (adjacency, degree, connectivity queries a caller might
// still want via RawGraph) with the actual Contact/Proximity payload kept
// in a side map, since core.Graph edges carry only a plain weight.
type InteractionGraph struct {
	raw   *core.Graph
	edges map[edgeKey]edgeState
}

// NewInteractionGraph returns an empty interaction graph. Undirected,
// and since loops and multi-edges default to disallowed unless their
// respective GraphOptions are passed, "at most one edge per unordered
// pair" comes from the library's own defaults rather than a hand-rolled
// check (open question 3: Contact is preferred over Proximity when both
// would apply to the same pair, decided at the call site — see
// SetContact/SetProximity below).
func NewInteractionGraph() *InteractionGraph {
	return &InteractionGraph{
		raw:   core.NewGraph(core.WithDirected(false)),
		edges: make(map[edgeKey]edgeState),
	}
}

// EnsureVertex adds id as a vertex if not already present; a no-op
// otherwise, so callers don't need to track which ids have already been
// introduced to the graph.
func (g *InteractionGraph) EnsureVertex(id ObjectID) {
	if !g.raw.HasVertex(id) {
		_ = g.raw.AddVertex(id)
	}
}

// setInteraction records i for the pair (a, b), adding the backing edge
// the first time the pair is seen and reusing it thereafter.
func (g *InteractionGraph) setInteraction(a, b ObjectID, i *Interaction) {
	g.EnsureVertex(a)
	g.EnsureVertex(b)
	key := makeEdgeKey(a, b)
	state, exists := g.edges[key]
	if !exists {
		eid, err := g.raw.AddEdge(a, b, 0)
		if err != nil {
			panic(fmt.Sprintf("graph: AddEdge(%s, %s) failed on a graph with no-loop/no-multi-edge defaults: %v", a, b, err))
		}
		state.edgeID = eid
	}
	state.interaction = i
	g.edges[key] = state
}

// SetContact records a Contact interaction for the pair (a, b), replacing
// any existing interaction for that pair. Per the open-question decision,
// a Contact interaction always wins over a Proximity one for the same
// pair: callers only ever call SetProximity for a pair once they've
// established it doesn't also have a live Contact this frame.
func (g *InteractionGraph) SetContact(a, b ObjectID, manifold *query.ContactManifold) {
	g.setInteraction(a, b, &Interaction{Kind: Contact, Manifold: manifold})
}

// SetProximity records a Proximity interaction for the pair (a, b).
func (g *InteractionGraph) SetProximity(a, b ObjectID, status query.Proximity) {
	g.setInteraction(a, b, &Interaction{Kind: Proximity, Status: status})
}

// Remove drops the interaction (and the underlying edge) between a and b,
// used when the broad phase stops reporting the pair as interfering.
func (g *InteractionGraph) Remove(a, b ObjectID) {
	key := makeEdgeKey(a, b)
	state, exists := g.edges[key]
	if !exists {
		return
	}
	delete(g.edges, key)
	_ = g.raw.RemoveEdge(state.edgeID)
}

// RemoveVertex drops id and every interaction it participates in, used
// when a collision object is removed from the pipeline entirely.
func (g *InteractionGraph) RemoveVertex(id ObjectID) {
	for key := range g.edges {
		if key.a == id || key.b == id {
			delete(g.edges, key)
		}
	}
	_ = g.raw.RemoveVertex(id)
}

// Get returns the interaction between a and b, if any.
func (g *InteractionGraph) Get(a, b ObjectID) (*Interaction, bool) {
	state, ok := g.edges[makeEdgeKey(a, b)]
	if !ok {
		return nil, false
	}
	return state.interaction, true
}

// InteractionsWith calls fn for every interaction id currently
// participates in, mirroring original_source/interaction_graph.rs's
// interactions_with iterator.
func (g *InteractionGraph) InteractionsWith(id ObjectID, fn func(other ObjectID, i *Interaction)) {
	neighbors, err := g.raw.NeighborIDs(id)
	if err != nil {
		return
	}
	for _, n := range neighbors {
		if i, ok := g.Get(id, n); ok {
			fn(n, i)
		}
	}
}

// ContactPairs calls fn for every pair currently holding a Contact
// interaction, mirroring original_source/interaction_graph.rs's
// contact_pairs iterator.
func (g *InteractionGraph) ContactPairs(fn func(a, b ObjectID, manifold *query.ContactManifold)) {
	for key, state := range g.edges {
		if state.interaction.Kind == Contact {
			fn(key.a, key.b, state.interaction.Manifold)
		}
	}
}

// ProximityPairs calls fn for every pair currently holding a Proximity
// interaction, mirroring original_source/interaction_graph.rs's
// proximity_pairs iterator.
func (g *InteractionGraph) ProximityPairs(fn func(a, b ObjectID, status query.Proximity)) {
	for key, state := range g.edges {
		if state.interaction.Kind == Proximity {
			fn(key.a, key.b, state.interaction.Status)
		}
	}
}

// EffectiveInteractions calls fn for every pair whose interaction is
// currently effective (see Interaction.IsEffective), mirroring
// original_source/interaction_graph.rs's filter over
// is_interaction_effective.
func (g *InteractionGraph) EffectiveInteractions(fn func(a, b ObjectID, i *Interaction)) {
	for key, state := range g.edges {
		if state.interaction.IsEffective() {
			fn(key.a, key.b, state.interaction)
		}
	}
}

// Len reports the number of tracked vertices.
func (g *InteractionGraph) Len() int {
	return g.raw.VertexCount()
}

// RawGraph exposes the underlying core.Graph for callers that need
// adjacency/connectivity queries the interaction-specific surface above
// doesn't cover, mirroring original_source/interaction_graph.rs's
// raw_graph() escape hatch.
func (g *InteractionGraph) RawGraph() *core.Graph {
	return g.raw
}
