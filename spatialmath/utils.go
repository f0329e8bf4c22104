package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

const floatEpsilon = 1e-6

// PlaneNormal returns the unit normal of the plane through three points, or the zero vector if they are colinear.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// ClosestPointSegmentPoint returns the point on segment ab closest to pt.
func ClosestPointSegmentPoint(a, b, pt r3.Vector) r3.Vector {
	return lerp(a, b, closestPointSegmentParam(a, b, pt))
}

// closestPointSegmentParam returns the parameter in [0, 1] along ab of the point closest to pt.
func closestPointSegmentParam(a, b, pt r3.Vector) float64 {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom == 0 {
		return 0
	}
	return math.Max(0, math.Min(1, pt.Sub(a).Dot(ab)/denom))
}

func lerp(a, b r3.Vector, s float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(s))
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
