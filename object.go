package collide

import (
	"github.com/akmonengine/collide/broadphase"
	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
)

// Handle identifies a CollisionObject registered with a Pipeline. It is
// the broad phase's own proxy Handle, reused directly rather than
// wrapped again: the pipeline has no identity of its own beyond what the
// broad phase already assigns.
type Handle = broadphase.Handle

// QueryKind selects which kind of geometric query a CollisionObject
// participates in, spec.md §3's GeometricQueryType.
type QueryKind uint8

const (
	// ContactsQuery requests full contact manifolds against other
	// contacts-requesting objects.
	ContactsQuery QueryKind = iota
	// ProximityQuery requests only tri-state proximity status.
	ProximityQuery
)

// GeometricQueryType configures what a CollisionObject wants out of the
// narrow phase, grounded on original_source/shape_against_shape.rs's
// GeometricQueryType enum (Contacts{prediction} / Proximity{margin}).
type GeometricQueryType struct {
	Kind       QueryKind
	Prediction query.ContactPrediction // used when Kind == ContactsQuery
	Margin     float64                 // used when Kind == ProximityQuery
}

// Contacts returns a GeometricQueryType requesting full contact
// manifolds with the given prediction margin.
func Contacts(margin float64) GeometricQueryType {
	return GeometricQueryType{Kind: ContactsQuery, Prediction: query.ContactPrediction{Margin: margin}}
}

// Proximity returns a GeometricQueryType requesting only proximity
// status within the given margin.
func Proximity(margin float64) GeometricQueryType {
	return GeometricQueryType{Kind: ProximityQuery, Margin: margin}
}

func (q GeometricQueryType) margin() float64 {
	if q.Kind == ContactsQuery {
		return q.Prediction.Margin
	}
	return q.Margin
}

// CollisionObject is one shape tracked by a Pipeline: a shape, the pose
// it's currently posed at, and what kind of query it participates in.
// Grounded on world.go's per-body bookkeeping, narrowed to the
// collision-detection-only fields (no velocity/mass/sleep state, which
// belonged to the solver and is out of scope).
type CollisionObject struct {
	Shape     shape.Shape
	Transform shape.Transform
	Query     GeometricQueryType
}

func (o *CollisionObject) worldAABB() shape.AABB {
	return o.Shape.WorldAABB(o.Transform).Loosen(o.Query.margin())
}
