package shape

import "github.com/go-gl/mathgl/mgl64"

// Plane is an infinite plane through the local origin with the given unit
// normal. Grounded on actor/shape.go's Plane, including its bounded-box
// approximation for Support/GetContactFeature (an infinite plane has no
// true support point; feather approximates with a very large finite box,
// kept here unchanged).
type Plane struct {
	Normal mgl64.Vec3
}

const (
	planeApproxHalfWidth = 1000.0
	planeApproxHalfDepth = 1000.0
	planeApproxHalfBelow = 0.5
	planeApproxInfinity  = 1e10
	planeThickness       = 1.0
)

func (p *Plane) LocalAABB() AABB {
	absN := mgl64.Vec3{abs(p.Normal.X()), abs(p.Normal.Y()), abs(p.Normal.Z())}
	min := mgl64.Vec3{-planeApproxInfinity, -planeApproxInfinity, -planeApproxInfinity}
	max := mgl64.Vec3{planeApproxInfinity, planeApproxInfinity, planeApproxInfinity}
	const dominant = 1.0
	for axis := 0; axis < 3; axis++ {
		if absN[axis] >= dominant {
			min[axis] = -planeThickness
			max[axis] = 0
		}
	}
	return AABB{Min: min, Max: max}
}

func (p *Plane) WorldAABB(transform Transform) AABB {
	local := p.LocalAABB()
	return AABB{Min: local.Min.Add(transform.Position), Max: local.Max.Add(transform.Position)}
}

// Support approximates the plane as a large finite slab, matching the
// teacher's pragmatic bound: obviously wrong for planes bigger than
// ~1000 units, documented as a known limitation rather than hidden.
func (p *Plane) Support(direction mgl64.Vec3) mgl64.Vec3 {
	x := planeApproxHalfWidth
	if direction.X() < 0 {
		x = -x
	}
	y := -planeApproxHalfBelow
	if direction.Y() > 0 {
		y = 0
	}
	z := planeApproxHalfDepth
	if direction.Z() < 0 {
		z = -z
	}
	return mgl64.Vec3{x, y, z}
}

func (p *Plane) GetContactFeature(direction mgl64.Vec3, out *[maxFeaturePoints]mgl64.Vec3, outCount *int) {
	t1, t2 := getTangentBasis(p.Normal)
	const size = 1000.0
	out[0] = t1.Mul(-size).Add(t2.Mul(-size))
	out[1] = t1.Mul(-size).Add(t2.Mul(size))
	out[2] = t1.Mul(size).Add(t2.Mul(size))
	out[3] = t1.Mul(size).Add(t2.Mul(-size))
	*outCount = 4
}
