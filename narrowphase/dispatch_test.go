package narrowphase

import (
	"math"
	"testing"

	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

func identity(pos mgl64.Vec3) shape.Transform {
	return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

func generate(d *Dispatcher, aT shape.Transform, a shape.Shape, bT shape.Transform, b shape.Shape) []query.Contact {
	out := query.NewContactManifold()
	d.GenerateContacts(aT, a, nil, bT, b, nil, query.ContactPrediction{}, d.IDs(), out)
	return out.Contacts()
}

func TestDispatcherBallBallContacts(t *testing.T) {
	d := NewDispatcher()
	a := &shape.Ball{Radius: 1}
	b := &shape.Ball{Radius: 1}
	contacts := generate(d, identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.5, 0, 0}), b)
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1", len(contacts))
	}
	if contacts[0].Depth <= 0 {
		t.Errorf("Depth = %v, want > 0", contacts[0].Depth)
	}
}

func TestDispatcherBoxBoxContactsClipsToFourPoints(t *testing.T) {
	d := NewDispatcher()
	a := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	b := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	contacts := generate(d, identity(mgl64.Vec3{0, 0, 0}), a, identity(mgl64.Vec3{1.9, 0, 0}), b)
	if len(contacts) == 0 {
		t.Fatal("expected overlapping boxes to produce contacts")
	}
	if len(contacts) > maxContactPoints {
		t.Errorf("len(contacts) = %d, want <= %d", len(contacts), maxContactPoints)
	}
	for _, c := range contacts {
		if math.Abs(math.Abs(c.Normal.X())-1) > 1e-6 {
			t.Errorf("expected the separating normal to be along X, got %v", c.Normal)
		}
	}
}

func TestDispatcherPlaneBoxContacts(t *testing.T) {
	d := NewDispatcher()
	plane := &shape.Plane{Normal: mgl64.Vec3{0, 1, 0}}
	box := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	contacts := generate(d, identity(mgl64.Vec3{0, 0, 0}), plane, identity(mgl64.Vec3{0, 0.5, 0}), box)
	if len(contacts) == 0 {
		t.Fatal("expected the box resting through the plane to produce contacts")
	}
	for _, c := range contacts {
		if c.Depth <= 0 {
			t.Errorf("Depth = %v, want > 0", c.Depth)
		}
	}
}

func TestDispatcherFlipsOrderConsistently(t *testing.T) {
	d1 := NewDispatcher()
	d2 := NewDispatcher()
	plane := &shape.Plane{Normal: mgl64.Vec3{0, 1, 0}}
	box := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	planeT := identity(mgl64.Vec3{0, 0, 0})
	boxT := identity(mgl64.Vec3{0, 0.5, 0})

	forward := generate(d1, planeT, plane, boxT, box)
	backward := generate(d2, boxT, box, planeT, plane)

	if len(forward) != len(backward) {
		t.Fatalf("len(forward) = %d, len(backward) = %d", len(forward), len(backward))
	}
	for i := range forward {
		if forward[i].Normal != backward[i].Normal.Mul(-1) {
			t.Errorf("contact %d: normals should be opposite, got %v and %v", i, forward[i].Normal, backward[i].Normal)
		}
	}
}

func TestDispatcherPanicsOnUnregisteredPair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected GenerateContacts to panic on an unknown shape pair")
		}
	}()
	d := NewDispatcher()
	var unknownA, unknownB shape.Shape = &unknownShape{}, &unknownShape{}
	out := query.NewContactManifold()
	d.GenerateContacts(identity(mgl64.Vec3{}), unknownA, nil, identity(mgl64.Vec3{}), unknownB, nil, query.ContactPrediction{}, d.IDs(), out)
}

type unknownShape struct{}

func (unknownShape) LocalAABB() shape.AABB                 { return shape.AABB{} }
func (unknownShape) WorldAABB(t shape.Transform) shape.AABB { return shape.AABB{} }
