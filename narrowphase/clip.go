// Package narrowphase dispatches a pair of shapes to the manifold
// generator or proximity detector that knows how to handle that
// particular shape combination (C3), and implements those generators and
// detectors (C5, C6).
package narrowphase

import (
	"math"

	"github.com/akmonengine/collide/query"
	"github.com/akmonengine/collide/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Clipping tolerances and buffer sizes, grounded verbatim on
// epa/manifold.go's ManifoldBuilder constants.
const (
	maxFeaturePoints = 8
	maxContactPoints = 4

	epsilonColinear = 1e-6
	epsilonDistance = 1e-6
	epsilonParallel = 1e-10
)

// clipBuilder holds the fixed-size working buffers the Sutherland-Hodgman
// clip needs, reused across calls the way epa/manifold.go's
// ManifoldBuilder reuses its arrays via a sync.Pool. A single builder
// instance is not safe for concurrent use; callers running narrow-phase
// updates in parallel (collide.Pipeline with workers > 1) use one builder
// per worker.
type clipBuilder struct {
	clipBuffer1 [maxFeaturePoints]mgl64.Vec3
	clipBuffer2 [maxFeaturePoints]mgl64.Vec3
}

// buildManifold clips the incident feature against the reference feature
// and returns world-space contact points along normal at the given
// penetration depth. featureA/featureB are the world-space vertices
// GetContactFeature produced for shape A and shape B respectively; the
// smaller one is treated as incident. Grounded on epa/manifold.go's
// Generate/clipIncidentAgainstReference/clipAgainstReferencePlane.
func (b *clipBuilder) buildManifold(featureA, featureB []mgl64.Vec3, normal mgl64.Vec3, depth float64) []query.Contact {
	var incident, reference []mgl64.Vec3
	incidentIsA := false
	if len(featureB) <= len(featureA) {
		incident, reference = featureB, featureA
	} else {
		incident, reference = featureA, featureB
		incidentIsA = true
	}

	if len(incident) == 1 {
		return []query.Contact{singlePointContact(incident[0], reference, normal, depth, incidentIsA)}
	}

	clipped := b.clipIncidentAgainstReference(incident, reference, normal)
	contacts := b.clipAgainstReferencePlane(clipped, reference, normal, depth, incidentIsA)

	if len(contacts) == 0 {
		return []query.Contact{singlePointContact(incident[0], reference, normal, depth, incidentIsA)}
	}
	if len(contacts) > maxContactPoints {
		contacts = reduceToExtremePoints(contacts, normal, maxContactPoints)
	}
	return contacts
}

func singlePointContact(point mgl64.Vec3, reference []mgl64.Vec3, normal mgl64.Vec3, depth float64, incidentIsA bool) query.Contact {
	if incidentIsA {
		return query.Contact{WorldPoint1: point, WorldPoint2: point.Add(normal.Mul(-depth)), Normal: normal, Depth: depth}
	}
	return query.Contact{WorldPoint1: point.Add(normal.Mul(depth)), WorldPoint2: point, Normal: normal, Depth: depth}
}

func (b *clipBuilder) clipIncidentAgainstReference(incident, reference []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	if len(reference) < 2 {
		return append([]mgl64.Vec3(nil), incident...)
	}

	n := copy(b.clipBuffer1[:], incident)
	current := b.clipBuffer1[:n]

	center := centroid(reference)

	useBuffer1 := true
	for i := 0; i < len(reference); i++ {
		v1 := reference[i]
		v2 := reference[(i+1)%len(reference)]

		edge := v2.Sub(v1)
		edgeCrossNormal := edge.Cross(normal)
		edgeCrossLen := edgeCrossNormal.Len()
		if edgeCrossLen < epsilonColinear {
			continue
		}
		clipNormal := edgeCrossNormal.Mul(1.0 / edgeCrossLen)

		toCenter := center.Sub(v1)
		if toCenter.Dot(clipNormal) < 0 {
			clipNormal = clipNormal.Mul(-1)
		}

		var out []mgl64.Vec3
		if useBuffer1 {
			out = b.clipBuffer2[:0]
		} else {
			out = b.clipBuffer1[:0]
		}
		out = clipPolygonAgainstPlane(current, v1, clipNormal, out)

		if useBuffer1 {
			copy(b.clipBuffer2[:], out)
			current = b.clipBuffer2[:len(out)]
		} else {
			copy(b.clipBuffer1[:], out)
			current = b.clipBuffer1[:len(out)]
		}
		useBuffer1 = !useBuffer1

		if len(current) == 0 {
			break
		}
	}

	return append([]mgl64.Vec3(nil), current...)
}

func clipPolygonAgainstPlane(input []mgl64.Vec3, planePoint, planeNormal mgl64.Vec3, out []mgl64.Vec3) []mgl64.Vec3 {
	if len(input) == 0 {
		return out
	}
	for i := 0; i < len(input); i++ {
		current := input[i]
		next := input[(i+1)%len(input)]

		currentDist := current.Sub(planePoint).Dot(planeNormal)
		nextDist := next.Sub(planePoint).Dot(planeNormal)

		if currentDist >= -epsilonDistance {
			if len(out) < maxFeaturePoints {
				out = append(out, current)
			}
			if nextDist < -epsilonDistance && len(out) < maxFeaturePoints {
				out = append(out, lineIntersectPlane(current, next, planePoint, planeNormal))
			}
		} else if nextDist >= -epsilonDistance && len(out) < maxFeaturePoints {
			out = append(out, lineIntersectPlane(current, next, planePoint, planeNormal))
		}
	}
	return out
}

func (b *clipBuilder) clipAgainstReferencePlane(clipped, reference []mgl64.Vec3, normal mgl64.Vec3, depth float64, incidentIsA bool) []query.Contact {
	if len(clipped) == 0 || len(reference) < 3 {
		return nil
	}

	edge1 := reference[1].Sub(reference[0])
	edge2 := reference[2].Sub(reference[0])
	refNormal := edge1.Cross(edge2).Normalize()
	if refNormal.Dot(normal) < 0 {
		refNormal = refNormal.Mul(-1)
	}
	offset := reference[0].Dot(refNormal)

	contacts := make([]query.Contact, 0, len(clipped))
	for i, point := range clipped {
		distance := point.Dot(refNormal) - offset
		if distance <= 0 {
			var c query.Contact
			if incidentIsA {
				c = query.Contact{WorldPoint1: point, WorldPoint2: point.Add(normal.Mul(-depth)), Normal: normal, Depth: depth, FeatureId1: query.FeatureId(i)}
			} else {
				c = query.Contact{WorldPoint1: point.Add(normal.Mul(depth)), WorldPoint2: point, Normal: normal, Depth: depth, FeatureId2: query.FeatureId(i)}
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

func reduceToExtremePoints(contacts []query.Contact, normal mgl64.Vec3, n int) []query.Contact {
	t1, t2 := tangentBasis(normal)

	minX, maxX, minY, maxY := 0, 0, 0, 0
	minXv, maxXv := math.Inf(1), math.Inf(-1)
	minYv, maxYv := math.Inf(1), math.Inf(-1)

	for i, c := range contacts {
		p := c.WorldPoint1
		x, y := p.Dot(t1), p.Dot(t2)
		if x < minXv {
			minXv, minX = x, i
		}
		if x > maxXv {
			maxXv, maxX = x, i
		}
		if y < minYv {
			minYv, minY = y, i
		}
		if y > maxYv {
			maxYv, maxY = y, i
		}
	}

	indices := [4]int{minX, maxX, minY, maxY}
	seen := map[int]bool{}
	out := make([]query.Contact, 0, n)
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, contacts[idx])
		}
	}
	return out
}

func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	t1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		t1 = mgl64.Vec3{0, 1, 0}
	}
	t1 = t1.Sub(normal.Mul(t1.Dot(normal))).Normalize()
	t2 := normal.Cross(t1).Normalize()
	return t1, t2
}

func lineIntersectPlane(p1, p2, planePoint, planeNormal mgl64.Vec3) mgl64.Vec3 {
	dir := p2.Sub(p1)
	dist := p1.Sub(planePoint).Dot(planeNormal)
	denom := dir.Dot(planeNormal)
	if math.Abs(denom) < epsilonParallel {
		return p1
	}
	t := -dist / denom
	t = math.Max(0, math.Min(1, t))
	return p1.Add(dir.Mul(t))
}

func centroid(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{0, 0, 0}
	}
	sum := mgl64.Vec3{0, 0, 0}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

func worldFeature(s shape.SupportMap, t shape.Transform, direction mgl64.Vec3) []mgl64.Vec3 {
	var local [maxFeaturePoints]mgl64.Vec3
	var count int
	s.GetContactFeature(t.ToLocal(direction), &local, &count)

	out := make([]mgl64.Vec3, count)
	for i := 0; i < count; i++ {
		out[i] = t.ToWorldPoint(local[i])
	}
	return out
}
