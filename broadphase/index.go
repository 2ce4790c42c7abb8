package broadphase

import (
	"github.com/akmonengine/collide/shape"
)

// proxyEntry is one registered AABB, grounded on spatialgrid.go's
// per-body state but widened with a pending/dirty pair since this index
// is incremental: a moved proxy's new bounding volume is staged by
// DeferredSetBoundingVolume and only takes effect at the next Update,
// matching spec.md §4.4's deferred-update contract.
type proxyEntry struct {
	alive   bool
	aabb    shape.AABB
	pending shape.AABB
	dirty   bool
}

// Index is the incremental spatial-hash broad phase. It reports pairs of
// proxies whose (margin-loosened) AABBs overlap, and calls onStart/onStop
// when a pair begins or stops overlapping across successive Update calls
// — the broad-phase half of trigger.go's Enter/Exit diffing, narrowed to
// "AABBs touch" rather than "narrow phase confirmed contact".
type Index struct {
	grid  *hashGrid
	ids   allocHandles
	proxy []proxyEntry

	recomputeAll bool
	active       map[pairKey]bool

	onStart func(a, b Handle)
	onStop  func(a, b Handle)
}

// NewIndex returns an empty Index using the given cell size and an
// initial cell-table size hint (rounded up to a power of two, as
// spatialgrid.go's NewSpatialGrid does).
func NewIndex(cellSize float64, numCellsHint int, onStart, onStop func(a, b Handle)) *Index {
	return &Index{
		grid:    newHashGrid(cellSize, numCellsHint),
		active:  make(map[pairKey]bool),
		onStart: onStart,
		onStop:  onStop,
	}
}

// CreateProxy registers a new AABB and returns its Handle. The proxy
// participates in pair detection starting at the next Update.
func (idx *Index) CreateProxy(aabb shape.AABB) Handle {
	h := idx.ids.alloc_()
	if int(h) == len(idx.proxy) {
		idx.proxy = append(idx.proxy, proxyEntry{})
	}
	idx.proxy[h] = proxyEntry{alive: true, aabb: aabb, pending: aabb, dirty: false}
	return h
}

// Remove unregisters handle. Per the open-question decision (spec.md §9
// / SPEC_FULL.md §7.1), Stop is reported for every pair handle was part
// of immediately before this call — not for pairs that would have formed
// had handle survived to the next Update, and never twice for the same
// pair.
func (idx *Index) Remove(handle Handle) {
	if !idx.proxy[handle].alive {
		return
	}
	for key := range idx.active {
		a, b := key.handles()
		if a == handle || b == handle {
			if idx.onStop != nil {
				idx.onStop(a, b)
			}
			delete(idx.active, key)
		}
	}
	idx.proxy[handle] = proxyEntry{}
	idx.ids.free(handle)
}

// DeferredSetBoundingVolume stages a new AABB for handle, to take effect
// at the next Update. Grounded on spec.md §4.4's deferred-mutation
// contract: a body that moves mid-frame doesn't perturb the index other
// callers are currently iterating over.
func (idx *Index) DeferredSetBoundingVolume(handle Handle, aabb shape.AABB) {
	idx.proxy[handle].pending = aabb
	idx.proxy[handle].dirty = true
}

// DeferredRecomputeAllProximities makes the next Update treat every
// currently-overlapping pair as newly started, re-firing Start for pairs
// that were already active; Stop is still reported for previously active
// pairs that no longer overlap. Used
// after a bulk change (e.g. reconfiguring cell size) where a caller needs
// every live overlap re-announced rather than only the ones that
// actually changed.
func (idx *Index) DeferredRecomputeAllProximities() {
	idx.recomputeAll = true
}

// Update applies staged AABB changes, rebuilds the grid, and reports
// Start/Stop events for pairs whose overlap status changed since the
// previous Update. Grounded on spatialgrid.go's Clear/Insert/FindPairs
// sequence, adapted from "rebuild every frame unconditionally" to
// "rebuild, then diff against the previous frame's active set" the way
// trigger.go's processCollisionEvents diffs previousActivePairs against
// currentActivePairs.
func (idx *Index) Update() {
	for h := range idx.proxy {
		if idx.proxy[h].alive && idx.proxy[h].dirty {
			idx.proxy[h].aabb = idx.proxy[h].pending
			idx.proxy[h].dirty = false
		}
	}
	refireAll := idx.recomputeAll
	idx.recomputeAll = false

	idx.grid.clear()
	for h := range idx.proxy {
		if !idx.proxy[h].alive {
			continue
		}
		aabb := idx.proxy[h].aabb
		minCell := idx.grid.worldToCell(aabb.Min.X(), aabb.Min.Y(), aabb.Min.Z())
		maxCell := idx.grid.worldToCell(aabb.Max.X(), aabb.Max.Y(), aabb.Max.Z())
		idx.grid.insert(Handle(h), minCell, maxCell)
	}

	current := make(map[pairKey]bool, len(idx.active))
	idx.forEachCandidatePair(func(a, b Handle) {
		if idx.proxy[a].aabb.Overlaps(idx.proxy[b].aabb) {
			current[makePairKey(a, b)] = true
		}
	})

	for key := range current {
		if refireAll || !idx.active[key] {
			if idx.onStart != nil {
				a, b := key.handles()
				idx.onStart(a, b)
			}
		}
	}
	for key := range idx.active {
		if !current[key] {
			if idx.onStop != nil {
				a, b := key.handles()
				idx.onStop(a, b)
			}
		}
	}

	idx.active = current
}

// forEachCandidatePair calls fn once per unordered pair of live proxies
// sharing at least one grid cell, deduped via a per-call seen set — the
// single-goroutine equivalent of spatialgrid.go's FindPairs (the
// FindPairsParallel channel-fanout variant is not carried forward:
// collide.Pipeline parallelizes one layer up, running the narrow phase
// over the active pairs with its own worker pool after this Update
// returns).
func (idx *Index) forEachCandidatePair(fn func(a, b Handle)) {
	seen := make(map[pairKey]bool)
	for ci := range idx.grid.cells {
		handles := idx.grid.cells[ci].handles
		for i := 0; i < len(handles); i++ {
			for j := i + 1; j < len(handles); j++ {
				a, b := handles[i], handles[j]
				key := makePairKey(a, b)
				if seen[key] {
					continue
				}
				seen[key] = true
				fn(a, b)
			}
		}
	}
}

// AABB returns handle's current (last-applied) bounding volume.
func (idx *Index) AABB(handle Handle) shape.AABB {
	return idx.proxy[handle].aabb
}

// ForEachActivePair calls fn once per pair currently considered
// overlapping, as of the most recent Update.
func (idx *Index) ForEachActivePair(fn func(a, b Handle)) {
	for key := range idx.active {
		a, b := key.handles()
		fn(a, b)
	}
}
