package shape

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3Equal(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}

func TestBallSupport(t *testing.T) {
	b := &Ball{Radius: 2}
	got := b.Support(mgl64.Vec3{1, 0, 0})
	want := mgl64.Vec3{2, 0, 0}
	if !vec3Equal(got, want, 1e-9) {
		t.Errorf("Support = %v, want %v", got, want)
	}
}

func TestBallWorldAABB(t *testing.T) {
	b := &Ball{Radius: 1}
	transform := Transform{Position: mgl64.Vec3{5, 0, 0}, Rotation: mgl64.QuatIdent()}
	aabb := b.WorldAABB(transform)
	if !vec3Equal(aabb.Min, mgl64.Vec3{4, -1, -1}, 1e-9) {
		t.Errorf("Min = %v", aabb.Min)
	}
	if !vec3Equal(aabb.Max, mgl64.Vec3{6, 1, 1}, 1e-9) {
		t.Errorf("Max = %v", aabb.Max)
	}
}

func TestBoxGetContactFeaturePicksAlignedFace(t *testing.T) {
	b := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	var out [8]mgl64.Vec3
	var count int
	b.GetContactFeature(mgl64.Vec3{1, 0, 0}, &out, &count)
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
	for i := 0; i < count; i++ {
		if out[i].X() != 1 {
			t.Errorf("vertex %d = %v, want X = 1 (the +X face)", i, out[i])
		}
	}
}

func TestAABBOverlaps(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}
	c := AABB{Min: mgl64.Vec3{5, 5, 5}, Max: mgl64.Vec3{6, 6, 6}}

	if !a.Overlaps(b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected a and c not to overlap")
	}
}

func TestAABBLoosen(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	loose := a.Loosen(0.5)
	if !vec3Equal(loose.Min, mgl64.Vec3{-0.5, -0.5, -0.5}, 1e-9) {
		t.Errorf("Min = %v", loose.Min)
	}
	if !vec3Equal(loose.Max, mgl64.Vec3{1.5, 1.5, 1.5}, 1e-9) {
		t.Errorf("Max = %v", loose.Max)
	}
}

func TestCompoundPanicsOnEmptyParts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewCompound to panic on empty parts")
		}
	}()
	NewCompound(nil, nil)
}

func TestHeightFieldPanicsOnTooSmallGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewHeightField to panic on a sub-2x2 grid")
		}
	}()
	NewHeightField([][]float64{{0}}, 1)
}

func TestHeightFieldCellTriangle(t *testing.T) {
	heights := [][]float64{
		{0, 0},
		{0, 0},
	}
	grid := NewHeightField(heights, 2)
	if grid.NumCells() != 1 {
		t.Fatalf("NumCells = %d, want 1", grid.NumCells())
	}
	a, b, c := grid.CellTriangle(0)
	if !vec3Equal(a, mgl64.Vec3{0, 0, 0}, 1e-9) {
		t.Errorf("a = %v", a)
	}
	if !vec3Equal(b, mgl64.Vec3{2, 0, 0}, 1e-9) {
		t.Errorf("b = %v", b)
	}
	if !vec3Equal(c, mgl64.Vec3{0, 0, 2}, 1e-9) {
		t.Errorf("c = %v", c)
	}
}

func TestAsSupportMapAndIsPlane(t *testing.T) {
	var s Shape = &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	if _, ok := AsSupportMap(s); !ok {
		t.Error("expected Box to satisfy SupportMap")
	}
	if _, ok := IsPlane(s); ok {
		t.Error("Box should not be a Plane")
	}

	var p Shape = &Plane{Normal: mgl64.Vec3{0, 1, 0}}
	if _, ok := IsPlane(p); !ok {
		t.Error("expected Plane to be detected via IsPlane")
	}
}
