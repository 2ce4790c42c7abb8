package query

// SubDetectorCache tracks, for one composite-vs-shape or height-field-vs-
// shape generator's persistent edge state, which sub-part indices are
// currently producing contacts and evicts the ones that stopped. A dense
// slice indexed by sub-part id rather than a hash map, since both BVH
// leaf indices and height-field cell indices are small contiguous
// integers. Owned by the ContactManifold it's embedded in, which is in
// turn owned by the interaction edge, matching the requirement that this
// state survive exactly as long as the edge does.
type SubDetectorCache struct {
	lastSeen []uint64
	epoch    uint64
}

// Touch starts a new enumeration cycle; call once per generator
// invocation before visiting any sub-part.
func (c *SubDetectorCache) Touch() {
	c.epoch++
}

// Mark records that sub-part i produced a result in the current cycle.
func (c *SubDetectorCache) Mark(i int) {
	for len(c.lastSeen) <= i {
		c.lastSeen = append(c.lastSeen, 0)
	}
	c.lastSeen[i] = c.epoch
}

// Live reports whether sub-part i was marked during the current cycle.
func (c *SubDetectorCache) Live(i int) bool {
	return i < len(c.lastSeen) && c.lastSeen[i] == c.epoch
}

// EvictStale drops every sub-part that was live before this cycle but
// wasn't re-marked, returning their indices, and forgets them: a
// subsequent Live(i) for one of those indices reports false until it is
// Mark-ed again. Call once per generator invocation after the sub-part
// enumeration completes.
func (c *SubDetectorCache) EvictStale() []int {
	var stale []int
	for i, seen := range c.lastSeen {
		if seen != 0 && seen != c.epoch {
			stale = append(stale, i)
			c.lastSeen[i] = 0
		}
	}
	return stale
}
