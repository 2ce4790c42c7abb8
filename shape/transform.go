package shape

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid pose: position plus orientation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()}
}

// ToLocal rotates a world-space direction into this transform's local space.
func (t Transform) ToLocal(dir mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(dir)
}

// ToWorldPoint maps a local-space point into world space.
func (t Transform) ToWorldPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(p))
}

// ToWorldDir maps a local-space direction into world space (no translation).
func (t Transform) ToWorldDir(dir mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(dir)
}

// Compose returns the transform obtained by applying local within t's
// frame — i.e. the world transform of a sub-shape posed at local inside a
// Compound posed at t.
func (t Transform) Compose(local Transform) Transform {
	return Transform{
		Position: t.ToWorldPoint(local.Position),
		Rotation: t.Rotation.Mul(local.Rotation),
	}
}
