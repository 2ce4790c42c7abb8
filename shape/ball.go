package shape

import "github.com/go-gl/mathgl/mgl64"

// Ball is a sphere centered at the local origin. Grounded on
// actor/shape.go's Sphere.
type Ball struct {
	Radius float64
}

func (b *Ball) LocalAABB() AABB {
	r := mgl64.Vec3{b.Radius, b.Radius, b.Radius}
	return AABB{Min: r.Mul(-1), Max: r}
}

func (b *Ball) WorldAABB(transform Transform) AABB {
	r := mgl64.Vec3{b.Radius, b.Radius, b.Radius}
	return AABB{Min: transform.Position.Sub(r), Max: transform.Position.Add(r)}
}

func (b *Ball) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return direction.Normalize().Mul(b.Radius)
}

func (b *Ball) GetContactFeature(direction mgl64.Vec3, out *[maxFeaturePoints]mgl64.Vec3, outCount *int) {
	out[0] = b.Support(direction)
	*outCount = 1
}
