package query

// IdAllocator hands out small dense uint32 ids and recycles freed ones, so
// callers (the broad phase's ProxyHandle, the narrow-phase generator
// cache) can index dense slices instead of maps. Grounded on
// spatialgrid.go's dense []Cell-over-hash idiom: prefer a contiguous
// slice addressed by a recycled index over a map keyed by pointer/string.
type IdAllocator struct {
	free []uint32
	next uint32
}

// Alloc returns an id, reusing a freed one if available.
func (a *IdAllocator) Alloc() uint32 {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id
	}
	id := a.next
	a.next++
	return id
}

// Free returns id to the pool for reuse by a later Alloc.
func (a *IdAllocator) Free(id uint32) {
	a.free = append(a.free, id)
}

// Len reports the number of ids currently allocated (not freed).
func (a *IdAllocator) Len() int {
	return int(a.next) - len(a.free)
}
