package broadphase

import "github.com/akmonengine/collide/query"

// Handle identifies a proxy registered with an Index. Stable across
// Update calls until Remove is called, at which point the same numeric
// value may be reused by a later CreateProxy (query.IdAllocator's
// free-list reuse) — callers must treat a removed Handle as dead rather
// than caching it past the Remove call.
type Handle uint32

// InvalidHandle is never returned by CreateProxy.
const InvalidHandle Handle = 0xFFFFFFFF

// pairKey canonically orders two handles, the Handle equivalent of
// trigger.go's pairKey (which orders two *actor.RigidBody pointers via
// unsafe.Pointer comparison; Handle is already a plain comparable
// integer, so ordering by value is enough).
type pairKey struct{ a, b Handle }

func makePairKey(a, b Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

func (p pairKey) handles() (Handle, Handle) { return p.a, p.b }

// allocHandles wraps query.IdAllocator, converting its uint32 ids to
// Handle so the broad phase's proxy-id lifecycle reuses the same
// allocator the query package already exposes for this exact purpose.
type allocHandles struct {
	alloc query.IdAllocator
}

func (a *allocHandles) alloc_() Handle { return Handle(a.alloc.Alloc()) }
func (a *allocHandles) free(h Handle)  { a.alloc.Free(uint32(h)) }
