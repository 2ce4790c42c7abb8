package broadphase

import (
	"testing"

	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

func box(min, max mgl64.Vec3) shape.AABB {
	return shape.AABB{Min: min, Max: max}
}

func TestIndexReportsStartAndStop(t *testing.T) {
	var started, stopped []pairKey
	idx := NewIndex(1, 64,
		func(a, b Handle) { started = append(started, makePairKey(a, b)) },
		func(a, b Handle) { stopped = append(stopped, makePairKey(a, b)) },
	)

	a := idx.CreateProxy(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	b := idx.CreateProxy(box(mgl64.Vec3{10, 10, 10}, mgl64.Vec3{11, 11, 11}))
	idx.Update()
	if len(started) != 0 {
		t.Fatalf("expected no pairs to start while far apart, got %d", len(started))
	}

	idx.DeferredSetBoundingVolume(b, box(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1.5, 1.5, 1.5}))
	idx.Update()
	if len(started) != 1 {
		t.Fatalf("expected one Start event once the AABBs overlap, got %d", len(started))
	}
	if started[0] != makePairKey(a, b) {
		t.Errorf("Start pair = %v, want (%d, %d)", started[0], a, b)
	}

	idx.DeferredSetBoundingVolume(b, box(mgl64.Vec3{10, 10, 10}, mgl64.Vec3{11, 11, 11}))
	idx.Update()
	if len(stopped) != 1 {
		t.Fatalf("expected one Stop event once the AABBs separate again, got %d", len(stopped))
	}
}

func TestIndexRemoveEmitsStopForLivePairs(t *testing.T) {
	var stopped int
	idx := NewIndex(1, 64, nil, func(a, b Handle) { stopped++ })

	a := idx.CreateProxy(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	b := idx.CreateProxy(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}))
	idx.Update()

	idx.Remove(a)
	if stopped != 1 {
		t.Fatalf("expected Remove to emit one Stop for the live pair, got %d", stopped)
	}
	_ = b
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128}
	for in, want := range cases {
		if got := nextPowerOfTwo(in); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
