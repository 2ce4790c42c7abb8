package collide

import (
	"testing"

	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

func TestPipelineTwoBallsProduceContact(t *testing.T) {
	p := NewPipeline(2, 64, 2)

	a := p.AddObject(&shape.Ball{Radius: 1}, shape.Identity(), Contacts(0.1))
	identityAt := func(pos mgl64.Vec3) shape.Transform {
		return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
	}
	b := p.AddObject(&shape.Ball{Radius: 1}, identityAt(mgl64.Vec3{10, 0, 0}), Contacts(0.1))

	p.Update()
	if _, ok := p.Graph().Get(handleKey(a), handleKey(b)); ok {
		t.Fatal("expected no interaction while the balls are far apart")
	}

	p.SetTransform(b, identityAt(mgl64.Vec3{1.5, 0, 0}))
	p.Update()

	i, ok := p.Graph().Get(handleKey(a), handleKey(b))
	if !ok {
		t.Fatal("expected an interaction once the balls overlap")
	}
	if !i.IsContact() || i.Manifold.Len() != 1 {
		t.Errorf("expected a 1-point contact manifold, got %+v", i)
	}
}

func TestPipelineRemoveObjectClearsInteraction(t *testing.T) {
	p := NewPipeline(2, 64, 1)
	identityAt := func(pos mgl64.Vec3) shape.Transform {
		return shape.Transform{Position: pos, Rotation: mgl64.QuatIdent()}
	}
	a := p.AddObject(&shape.Ball{Radius: 1}, identityAt(mgl64.Vec3{0, 0, 0}), Contacts(0.1))
	b := p.AddObject(&shape.Ball{Radius: 1}, identityAt(mgl64.Vec3{1, 0, 0}), Contacts(0.1))
	p.Update()

	if _, ok := p.Graph().Get(handleKey(a), handleKey(b)); !ok {
		t.Fatal("expected an interaction before removal")
	}

	p.RemoveObject(a)
	if _, ok := p.Graph().Get(handleKey(a), handleKey(b)); ok {
		t.Error("expected the interaction gone after removing a")
	}
}
