package shape

import "github.com/go-gl/mathgl/mgl64"

// Box is an oriented box defined by half-extents in local space. Grounded
// on actor/shape.go's Box, minus mass/inertia (solver concern, out of
// scope), and with GetContactFeature rewritten to the canonical
// buffer-based, zero-allocation signature (see DESIGN.md).
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) corners() [8]mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	return [8]mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {-hx, hy, hz}, {hx, hy, hz},
	}
}

func (b *Box) LocalAABB() AABB {
	return AABB{Min: b.HalfExtents.Mul(-1), Max: b.HalfExtents}
}

func (b *Box) WorldAABB(transform Transform) AABB {
	corners := b.corners()
	world := transform.ToWorldPoint(corners[0])
	min, max := world, world
	for i := 1; i < 8; i++ {
		world = transform.ToWorldPoint(corners[i])
		for axis := 0; axis < 3; axis++ {
			if world[axis] < min[axis] {
				min[axis] = world[axis]
			}
			if world[axis] > max[axis] {
				max[axis] = world[axis]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}
	return mgl64.Vec3{hx, hy, hz}
}

var boxFaceNormals = [6]mgl64.Vec3{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
}

// GetContactFeature picks the face whose normal is most aligned with
// direction and writes its 4 corners into out.
func (b *Box) GetContactFeature(direction mgl64.Vec3, out *[maxFeaturePoints]mgl64.Vec3, outCount *int) {
	dir := direction.Normalize()
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	bestDot := -1.0e300
	bestFace := 0
	for i, n := range boxFaceNormals {
		if d := dir.Dot(n); d > bestDot {
			bestDot, bestFace = d, i
		}
	}

	switch bestFace {
	case 0: // +X
		out[0] = mgl64.Vec3{hx, -hy, -hz}
		out[1] = mgl64.Vec3{hx, -hy, hz}
		out[2] = mgl64.Vec3{hx, hy, hz}
		out[3] = mgl64.Vec3{hx, hy, -hz}
	case 1: // -X
		out[0] = mgl64.Vec3{-hx, -hy, hz}
		out[1] = mgl64.Vec3{-hx, -hy, -hz}
		out[2] = mgl64.Vec3{-hx, hy, -hz}
		out[3] = mgl64.Vec3{-hx, hy, hz}
	case 2: // +Y
		out[0] = mgl64.Vec3{-hx, hy, -hz}
		out[1] = mgl64.Vec3{-hx, hy, hz}
		out[2] = mgl64.Vec3{hx, hy, hz}
		out[3] = mgl64.Vec3{hx, hy, -hz}
	case 3: // -Y
		out[0] = mgl64.Vec3{-hx, -hy, hz}
		out[1] = mgl64.Vec3{hx, -hy, hz}
		out[2] = mgl64.Vec3{hx, -hy, -hz}
		out[3] = mgl64.Vec3{-hx, -hy, -hz}
	case 4: // +Z
		out[0] = mgl64.Vec3{-hx, -hy, hz}
		out[1] = mgl64.Vec3{-hx, hy, hz}
		out[2] = mgl64.Vec3{hx, hy, hz}
		out[3] = mgl64.Vec3{hx, -hy, hz}
	case 5: // -Z
		out[0] = mgl64.Vec3{hx, -hy, -hz}
		out[1] = mgl64.Vec3{hx, hy, -hz}
		out[2] = mgl64.Vec3{-hx, hy, -hz}
		out[3] = mgl64.Vec3{-hx, -hy, -hz}
	}
	*outCount = 4
}
