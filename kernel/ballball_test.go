package kernel

import (
	"math"
	"testing"

	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

const testEpsilon = 1e-9

func vec3Close(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}

func TestBallBall(t *testing.T) {
	tests := []struct {
		name      string
		posA, posB mgl64.Vec3
		radiusA, radiusB float64
		wantHit   bool
		wantDepth float64
	}{
		{"separated", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0}, 1, 1, false, 0},
		{"touching exactly", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, 1, 1, false, 0},
		{"overlapping", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 1, 1, true, 1},
		{"concentric", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0}, 1, 1, true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &shape.Ball{Radius: tc.radiusA}
			b := &shape.Ball{Radius: tc.radiusB}
			aT := shape.Transform{Position: tc.posA, Rotation: mgl64.QuatIdent()}
			bT := shape.Transform{Position: tc.posB, Rotation: mgl64.QuatIdent()}

			result, hit := BallBall(a, aT, b, bT)
			if hit != tc.wantHit {
				t.Fatalf("BallBall() hit = %v, want %v", hit, tc.wantHit)
			}
			if !hit {
				return
			}
			if math.Abs(result.Depth-tc.wantDepth) > testEpsilon {
				t.Errorf("Depth = %v, want %v", result.Depth, tc.wantDepth)
			}
		})
	}
}

func TestBallBallNormalPointsAToB(t *testing.T) {
	a := &shape.Ball{Radius: 1}
	b := &shape.Ball{Radius: 1}
	aT := shape.Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()}
	bT := shape.Transform{Position: mgl64.Vec3{1.5, 0, 0}, Rotation: mgl64.QuatIdent()}

	result, hit := BallBall(a, aT, b, bT)
	if !hit {
		t.Fatal("expected a hit")
	}
	want := mgl64.Vec3{1, 0, 0}
	if !vec3Close(result.Normal, want, testEpsilon) {
		t.Errorf("Normal = %v, want %v", result.Normal, want)
	}
}
