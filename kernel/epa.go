package kernel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EPA expansion tuning constants, grounded on epa/epa.go's identically
// named constants.
const (
	epaMaxIterations        = 32
	epaConvergenceTolerance = 0.001
	epaMinFaceDistance      = 0.0001
	normalSnapThreshold     = 1e-8
)

// Face is a triangular face of the EPA polytope: 3 vertices, an
// outward-pointing normal, and the plane's distance from the origin.
// Grounded on epa/face.go's Face and epa/polytope.go's
// PolytopeBuilder.createFaceOutward.
type Face struct {
	Points   [3]mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// EPAResult is the closest-face outcome of a converged EPA run.
type EPAResult struct {
	Normal   mgl64.Vec3 // points from shape A toward shape B
	Depth    float64
	Vertices [3]mgl64.Vec3 // polytope face the result converged on, for feature assignment
}

type edgeEntry struct {
	a, b  mgl64.Vec3
	count int
}

// EPA expands the polytope seeded by a GJK tetrahedron simplex to find
// the face of the Minkowski difference closest to the origin — the
// minimum translation vector separating a and b. Grounded on
// epa/polytope.go's PolytopeBuilder expansion loop (visible-face removal,
// boundary-edge detection, new-face construction), condensed from its
// pooled/dynamic-slice machinery into a single-use slice since this
// package has no per-frame reuse pool yet.
func EPA(a, b Posed, simplex *Simplex) (EPAResult, error) {
	if simplex.Count < 4 {
		return degenerateEPA(a, b, simplex), nil
	}

	faces := buildInitialFaces(simplex)

	for i := 0; i < epaMaxIterations; i++ {
		if len(faces) == 0 {
			break
		}

		closestIdx := closestFaceIndex(faces)
		closest := faces[closestIdx]

		if closest.Distance < epaMinFaceDistance {
			faces = append(faces[:closestIdx], faces[closestIdx+1:]...)
			continue
		}

		support := MinkowskiSupport(a, b, closest.Normal)
		distance := support.Dot(closest.Normal)

		if distance-closest.Distance < epaConvergenceTolerance {
			return EPAResult{Normal: closest.Normal, Depth: closest.Distance, Vertices: closest.Points}, nil
		}

		faces = expandPolytope(faces, support)
	}

	return EPAResult{}, fmt.Errorf("kernel: EPA failed to converge after %d iterations", epaMaxIterations)
}

func degenerateEPA(a, b Posed, simplex *Simplex) EPAResult {
	if simplex.Count >= 2 {
		p0, p1 := simplex.Points[0], simplex.Points[1]
		d0, d1 := p0.Len(), p1.Len()
		if d0 < d1 {
			return EPAResult{Normal: p0.Normalize(), Depth: d0}
		}
		return EPAResult{Normal: p1.Normalize(), Depth: d1}
	}

	normal := b.Transform.Position.Sub(a.Transform.Position)
	if normal.LenSqr() < normalSnapThreshold*normalSnapThreshold {
		normal = mgl64.Vec3{0, 1, 0}
	} else {
		normal = normal.Normalize()
	}
	return EPAResult{Normal: normal, Depth: 0.01}
}

func buildInitialFaces(simplex *Simplex) []Face {
	p0, p1, p2, p3 := simplex.Points[0], simplex.Points[1], simplex.Points[2], simplex.Points[3]

	candidates := [4]Face{
		faceOutward(p0, p1, p2, p3),
		faceOutward(p0, p2, p3, p1),
		faceOutward(p0, p3, p1, p2),
		faceOutward(p1, p3, p2, p0),
	}

	faces := make([]Face, 0, 4)
	for _, f := range candidates {
		if f.Distance >= epaMinFaceDistance {
			faces = append(faces, f)
		}
	}
	if len(faces) < 3 {
		faces = faces[:0]
		faces = append(faces, candidates[:]...)
	}
	return faces
}

func faceOutward(p0, p1, p2, opposite mgl64.Vec3) Face {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	normal := edge1.Cross(edge2)

	length := normal.Len()
	if length < 1e-8 {
		return Face{Points: [3]mgl64.Vec3{p0, p1, p2}, Normal: mgl64.Vec3{0, 1, 0}, Distance: epaMinFaceDistance}
	}
	normal = normal.Mul(1.0 / length)

	if normal.Dot(opposite.Sub(p0)) > 0 {
		normal = normal.Mul(-1)
	}

	distance := p0.Dot(normal)
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}
	if distance < epaMinFaceDistance {
		distance = epaMinFaceDistance
	}

	return Face{Points: [3]mgl64.Vec3{p0, p1, p2}, Normal: snapNormal(normal), Distance: distance}
}

func closestFaceIndex(faces []Face) int {
	idx := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].Distance < faces[idx].Distance {
			idx = i
		}
	}
	return idx
}

func expandPolytope(faces []Face, support mgl64.Vec3) []Face {
	visible := make([]int, 0, len(faces))
	for i, f := range faces {
		if support.Sub(f.Points[0]).Dot(f.Normal) > 0 {
			visible = append(visible, i)
		}
	}
	if len(visible) >= len(faces) {
		visible = visible[:1]
	}

	var edges []edgeEntry
	isVisible := make([]bool, len(faces))
	for _, i := range visible {
		isVisible[i] = true
	}
	for _, i := range visible {
		f := faces[i]
		tri := [3][2]mgl64.Vec3{{f.Points[0], f.Points[1]}, {f.Points[1], f.Points[2]}, {f.Points[2], f.Points[0]}}
		for _, e := range tri {
			a, b := e[0], e[1]
			if cmpVec3(a, b) > 0 {
				a, b = b, a
			}
			found := false
			for j := range edges {
				if vec3Eq(edges[j].a, a) && vec3Eq(edges[j].b, b) {
					edges[j].count++
					found = true
					break
				}
			}
			if !found {
				edges = append(edges, edgeEntry{a: a, b: b, count: 1})
			}
		}
	}

	centroid := mgl64.Vec3{}
	n := 0
	for i, f := range faces {
		if isVisible[i] {
			continue
		}
		for _, p := range f.Points {
			centroid = centroid.Add(p)
			n++
		}
	}
	if n > 0 {
		centroid = centroid.Mul(1.0 / float64(n))
	}

	remaining := make([]Face, 0, len(faces))
	for i, f := range faces {
		if !isVisible[i] {
			remaining = append(remaining, f)
		}
	}
	for _, e := range edges {
		if e.count != 1 {
			continue
		}
		remaining = append(remaining, faceOutward(e.a, e.b, support, centroid))
	}
	if len(remaining) == 0 {
		remaining = append(remaining, Face{Points: [3]mgl64.Vec3{support, support, support}, Normal: mgl64.Vec3{0, 1, 0}, Distance: epaMinFaceDistance})
	}
	return remaining
}

func snapNormal(normal mgl64.Vec3) mgl64.Vec3 {
	x, y, z := normal[0], normal[1], normal[2]
	if math.Abs(x) < normalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < normalSnapThreshold {
		y = 0
	}
	if math.Abs(z) < normalSnapThreshold {
		z = 0
	}
	clamped := mgl64.Vec3{x, y, z}
	length := clamped.Len()
	if length < 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return clamped.Mul(1.0 / length)
}

func cmpVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func vec3Eq(a, b mgl64.Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}
