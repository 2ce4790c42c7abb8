package kernel

import (
	"math"
	"testing"

	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSupportMapSupportMapBoxes(t *testing.T) {
	boxA := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	boxB := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name    string
		posB    mgl64.Vec3
		wantHit bool
	}{
		{"far apart", mgl64.Vec3{10, 0, 0}, false},
		{"touching", mgl64.Vec3{2, 0, 0}, false},
		{"overlapping", mgl64.Vec3{1, 0, 0}, true},
		{"identical", mgl64.Vec3{0, 0, 0}, true},
	}

	aT := shape.Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bT := shape.Transform{Position: tc.posB, Rotation: mgl64.QuatIdent()}
			result, hit, err := SupportMapSupportMap(boxA, aT, boxB, bT)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hit != tc.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tc.wantHit)
			}
			if hit && result.Depth <= 0 {
				t.Errorf("Depth = %v, want > 0", result.Depth)
			}
		})
	}
}

func TestSupportMapSupportMapPenetrationDepth(t *testing.T) {
	boxA := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	boxB := &shape.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	aT := shape.Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()}
	bT := shape.Transform{Position: mgl64.Vec3{1.5, 0, 0}, Rotation: mgl64.QuatIdent()}

	result, hit, err := SupportMapSupportMap(boxA, aT, boxB, bT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Fatal("expected overlap")
	}
	// Boxes of half-extent 1 centered 1.5 apart on X overlap by 0.5.
	if math.Abs(result.Depth-0.5) > 1e-3 {
		t.Errorf("Depth = %v, want ~0.5", result.Depth)
	}
}
