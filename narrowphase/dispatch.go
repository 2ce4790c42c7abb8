package narrowphase

import (
	"fmt"

	"github.com/akmonengine/collide/kernel"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// Dispatcher routes a pair of shapes to the contact generator or proximity
// detector that knows that combination (C3), grounded on the teacher's
// collision.go NarrowPhase switch and, for the symmetric cases, on
// original_source's shape_against_shape dispatch table (which registers
// both orderings of a pair against the same detector rather than writing
// it twice): each generator below is implemented once for a canonical
// argument order, and the cascade wraps it with a flip flag that swaps
// poses, shapes and preprocessors going in and swaps the two contact
// points (negating the normal) coming out. A Dispatcher owns the id
// allocator its pushes consume — it must be thread-local to the ongoing
// update, so collide.Pipeline gives one Dispatcher to each worker — and
// the clipBuilder scratch space generators share, which is why a
// Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	clip clipBuilder
	ids  query.IdAllocator
}

// NewDispatcher returns a ready-to-use Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// IDs returns the dispatcher's id allocator. GenerateContacts takes it as
// an explicit parameter (matching the generator contract's id_allocator
// argument) rather than reading the field itself, so a caller composing
// several dispatchers could share or split allocators if it ever needed
// to; collide.Pipeline always passes a worker's own.
func (d *Dispatcher) IDs() *query.IdAllocator {
	return &d.ids
}

// GenerateContacts dispatches (aT, a) against (bT, b) to the matching
// contact generator (C5): before emitting any contact it calls
// out.SaveCacheAndClear, pushes whatever the matched generator (or its
// recursive composite/height-field decomposition) produces, then calls
// out.EvictStaleCache so any manifold entry that wasn't re-matched this
// tick is dropped and its tracking-id freed. preA/preB may reject or
// adjust a contact after generation — composite and height-field
// generators compose a per-sub-part tag after these. Never returns false:
// when no generator at all is registered for the pair it panics instead.
// The pipeline only calls this for shape combinations it expects to support,
// so reaching this case is the fatal "no algorithm" precondition
// violation, not the normal per-candidate "capabilities don't match, try
// the next one" outcome the cascade itself uses internally.
func (d *Dispatcher) GenerateContacts(
	aT shape.Transform, a shape.Shape, preA Preprocessor,
	bT shape.Transform, b shape.Shape, preB Preprocessor,
	prediction query.ContactPrediction, ids *query.IdAllocator, out *query.ContactManifold,
) bool {
	out.SaveCacheAndClear()
	accepted := d.dispatchContacts(aT, a, preA, bT, b, preB, prediction, ids, out, false)
	out.EvictStaleCache(ids)
	if !accepted {
		panic(fmt.Sprintf("narrowphase: no contact generator registered for shape pair (%T, %T)", a, b))
	}
	return accepted
}

// dispatchContacts is the selection matrix: first match wins, and pushes
// go straight into out. Used both as GenerateContacts's top-level cascade
// (outerFlip false) and recursively by compositeContacts/
// heightFieldContacts for each sub-part (outerFlip carrying whichever
// side the enclosing composite/height-field occupied in the original
// pair), which is why it does not itself touch out's cache lifecycle.
// Each candidate's own canonical-order flip is combined with outerFlip by
// xor: a sub-part match that would itself need no flip still gets
// flipped if the composite containing it does, and vice versa.
func (d *Dispatcher) dispatchContacts(
	aT shape.Transform, a shape.Shape, preA Preprocessor,
	bT shape.Transform, b shape.Shape, preB Preprocessor,
	prediction query.ContactPrediction, ids *query.IdAllocator, out *query.ContactManifold, outerFlip bool,
) bool {
	if ballA, ok := shape.IsBall(a); ok {
		if ballB, ok := shape.IsBall(b); ok {
			return ballBallContacts(ballA, aT, preA, ballB, bT, preB, ids, out, xor(false, outerFlip))
		}
	}
	if planeA, ok := shape.IsPlane(a); ok {
		if smB, ok := shape.AsSupportMap(b); ok {
			return d.planeSupportMapContacts(planeA, aT, preA, smB, bT, preB, ids, out, xor(false, outerFlip))
		}
	}
	if planeB, ok := shape.IsPlane(b); ok {
		if smA, ok := shape.AsSupportMap(a); ok {
			return d.planeSupportMapContacts(planeB, bT, preB, smA, aT, preA, ids, out, xor(true, outerFlip))
		}
	}
	if compA, ok := shape.AsCompositeShape(a); ok {
		return d.compositeContacts(compA, aT, preA, b, bT, preB, prediction, ids, out, xor(false, outerFlip))
	}
	if compB, ok := shape.AsCompositeShape(b); ok {
		return d.compositeContacts(compB, bT, preB, a, aT, preA, prediction, ids, out, xor(true, outerFlip))
	}
	if hfA, ok := shape.AsHeightField(a); ok {
		if smB, ok := shape.AsSupportMap(b); ok {
			return d.heightFieldContacts(hfA, aT, preA, smB, bT, preB, prediction, ids, out, xor(false, outerFlip))
		}
	}
	if hfB, ok := shape.AsHeightField(b); ok {
		if smA, ok := shape.AsSupportMap(a); ok {
			return d.heightFieldContacts(hfB, bT, preB, smA, aT, preA, prediction, ids, out, xor(true, outerFlip))
		}
	}
	if smA, ok := shape.AsSupportMap(a); ok {
		if smB, ok := shape.AsSupportMap(b); ok {
			return d.supportMapContacts(smA, aT, preA, smB, bT, preB, ids, out, xor(false, outerFlip))
		}
	}

	return false
}

// xor combines a leaf generator's own canonical-order flip with whatever
// flip its caller is already carrying (e.g. a composite occupying the B
// slot of the original pair).
func xor(a, b bool) bool {
	return a != b
}

// DetectProximity dispatches to the matching proximity detector (C6) and
// reports the pair's tri-state status without requiring either the
// manifold generator to have run yet or actual overlap to exist. Panics
// if no detector is registered for the pair, the same fatal precondition
// as GenerateContacts.
func (d *Dispatcher) DetectProximity(a shape.Shape, aT shape.Transform, b shape.Shape, bT shape.Transform, margin float64) query.Proximity {
	if ballA, ok := shape.IsBall(a); ok {
		if ballB, ok := shape.IsBall(b); ok {
			_, intersecting, within := kernel.BallBallProximity(ballA, aT, ballB, bT, margin)
			return classify(intersecting, within)
		}
	}
	if planeA, ok := shape.IsPlane(a); ok {
		if smB, ok := shape.AsSupportMap(b); ok {
			_, intersecting, within := kernel.PlaneSupportMapProximity(planeA, aT, smB, bT, margin)
			return classify(intersecting, within)
		}
	}
	if planeB, ok := shape.IsPlane(b); ok {
		if smA, ok := shape.AsSupportMap(a); ok {
			_, intersecting, within := kernel.PlaneSupportMapProximity(planeB, bT, smA, aT, margin)
			return classify(intersecting, within)
		}
	}
	if compA, ok := shape.AsCompositeShape(a); ok {
		return d.compositeProximity(compA, aT, b, bT, margin)
	}
	if compB, ok := shape.AsCompositeShape(b); ok {
		return d.compositeProximity(compB, bT, a, aT, margin)
	}

	if smA, ok := shape.AsSupportMap(a); ok {
		if smB, ok := shape.AsSupportMap(b); ok {
			return d.supportMapProximity(smA, aT, smB, bT, margin)
		}
	}

	panic(fmt.Sprintf("narrowphase: no proximity detector registered for shape pair (%T, %T)", a, b))
}

func classify(intersecting, within bool) query.Proximity {
	switch {
	case intersecting:
		return query.Intersecting
	case within:
		return query.WithinMargin
	default:
		return query.Disjoint
	}
}
