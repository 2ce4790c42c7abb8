package collide

import (
	"strconv"
	"sync"

	"github.com/akmonengine/collide/broadphase"
	"github.com/akmonengine/collide/graph"
	"github.com/akmonengine/collide/narrowphase"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

func handleKey(h Handle) graph.ObjectID {
	return strconv.FormatUint(uint64(h), 10)
}

// Pipeline orchestrates the broad phase, narrow phase, and interaction
// graph for a set of CollisionObjects: register/move objects, call
// Update once per tick, then read contacts/proximities off the graph.
// Grounded on world.go's World (register/Step/read-results shape),
// generalized from "integrate a physics step" to "advance a
// collision-detection tick" since there is no solver in scope.
type Pipeline struct {
	index      *broadphase.Index
	graph      *graph.InteractionGraph
	objects    map[Handle]*CollisionObject
	workers    int
	dispatcher []narrowphase.Dispatcher // one per worker: clipBuilder scratch isn't concurrency-safe
	mu         sync.Mutex
}

// NewPipeline returns a Pipeline using the given broad-phase cell size,
// an initial cell-table size hint, and a worker count for parallelizing
// the narrow-phase sweep across active pairs (via task(), reused
// unchanged from pipeline.go).
func NewPipeline(cellSize float64, numCellsHint int, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	p := &Pipeline{
		graph:      graph.NewInteractionGraph(),
		objects:    make(map[Handle]*CollisionObject),
		workers:    workers,
		dispatcher: make([]narrowphase.Dispatcher, workers),
	}
	p.index = broadphase.NewIndex(cellSize, numCellsHint, p.onPairStart, p.onPairStop)
	return p
}

func (p *Pipeline) onPairStart(a, b Handle) {
	// Nothing to do yet: the graph edge is created lazily by the first
	// Update sweep that actually runs the narrow phase on this pair, so a
	// pair that starts and stops within the same tick never gets a
	// half-populated edge.
}

func (p *Pipeline) onPairStop(a, b Handle) {
	p.graph.Remove(handleKey(a), handleKey(b))
}

// AddObject registers shape posed at transform with the given query type
// and returns its Handle.
func (p *Pipeline) AddObject(s shape.Shape, transform shape.Transform, queryType GeometricQueryType) Handle {
	obj := &CollisionObject{Shape: s, Transform: transform, Query: queryType}
	handle := p.index.CreateProxy(obj.worldAABB())
	p.objects[handle] = obj
	p.graph.EnsureVertex(handleKey(handle))
	return handle
}

// RemoveObject unregisters handle. Stop is reported (via the broad
// phase's onPairStop callback) for every pair handle was part of
// immediately before removal.
func (p *Pipeline) RemoveObject(handle Handle) {
	p.index.Remove(handle)
	p.graph.RemoveVertex(handleKey(handle))
	delete(p.objects, handle)
}

// SetTransform moves handle's object to transform, staging a new AABB for
// the next Update (spec.md §4.4 deferred bounding-volume update).
func (p *Pipeline) SetTransform(handle Handle, transform shape.Transform) {
	obj := p.objects[handle]
	obj.Transform = transform
	p.index.DeferredSetBoundingVolume(handle, obj.worldAABB())
}

// Object returns handle's CollisionObject.
func (p *Pipeline) Object(handle Handle) *CollisionObject {
	return p.objects[handle]
}

// Graph exposes the interaction graph for reading contacts/proximities
// after Update.
func (p *Pipeline) Graph() *graph.InteractionGraph {
	return p.graph
}

// Update advances the pipeline by one tick: applies staged transform
// changes, refreshes the broad phase (emitting Start/Stop), then runs the
// narrow phase on every currently active pair, updating the interaction
// graph with fresh contacts or proximity status. Grounded on world.go's
// Step (detectCollision → recordCollisions → flush), narrowed to the
// collision-detection-only subset of that loop.
func (p *Pipeline) Update() {
	p.index.Update()

	var pairs []handlePair
	p.index.ForEachActivePair(func(a, b Handle) {
		pairs = append(pairs, handlePair{a, b})
	})

	workers := min(p.workers, max(1, len(pairs)))
	chunkSize := (len(pairs) + workers - 1) / max(1, workers)
	task(workers, len(pairs), func(start, end int) {
		workerID := 0
		if chunkSize > 0 {
			workerID = start / chunkSize
		}
		if workerID >= len(p.dispatcher) {
			workerID = len(p.dispatcher) - 1
		}
		d := &p.dispatcher[workerID]
		for i := start; i < end; i++ {
			p.resolvePair(d, pairs[i].a, pairs[i].b)
		}
	})
}

type handlePair struct{ a, b Handle }

func (p *Pipeline) resolvePair(d *narrowphase.Dispatcher, a, b Handle) {
	oa, ob := p.objects[a], p.objects[b]
	if oa == nil || ob == nil {
		return
	}

	wantsContacts := oa.Query.Kind == ContactsQuery && ob.Query.Kind == ContactsQuery
	ida, idb := handleKey(a), handleKey(b)

	if wantsContacts {
		prediction := query.ContactPrediction{Margin: max(oa.Query.margin(), ob.Query.margin())}

		p.mu.Lock()
		existing, ok := p.graph.Get(ida, idb)
		var manifold *query.ContactManifold
		if ok && existing.IsContact() {
			manifold = existing.Manifold
		} else {
			manifold = query.NewContactManifold()
		}
		p.mu.Unlock()

		// d and its id allocator are worker-local (see p.dispatcher), and
		// manifold belongs to exactly this pair, so no lock is held while
		// the narrow phase itself runs.
		d.GenerateContacts(oa.Transform, oa.Shape, nil, ob.Transform, ob.Shape, nil, prediction, d.IDs(), manifold)

		p.mu.Lock()
		p.graph.SetContact(ida, idb, manifold)
		p.mu.Unlock()
		return
	}

	margin := max(oa.Query.margin(), ob.Query.margin())
	status := d.DetectProximity(oa.Shape, oa.Transform, ob.Shape, ob.Transform, margin)

	p.mu.Lock()
	p.graph.SetProximity(ida, idb, status)
	p.mu.Unlock()
}
