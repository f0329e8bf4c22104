package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 3, Y: 0, Z: 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	expectedNormal := r3.Vector{X: 0, Y: 0, Z: 1}
	expectedArea := 4.5
	expectedCentroid := r3.Vector{X: 1, Y: 1, Z: 0}

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
		// the cross product of the normal with what is expected should result in nothing
		test.That(t, tri.Normal().Cross(expectedNormal), test.ShouldResemble, r3.Vector{})
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, expectedArea)
	})

	t.Run("centroid", func(t *testing.T) {
		test.That(t, R3VectorAlmostEqual(tri.Centroid(), expectedCentroid, 1e-9), test.ShouldBeTrue)
	})

	t.Run("closest triangle inside point", func(t *testing.T) {
		// interior
		closestPoint, isInside := tri.ClosestInsidePoint(r3.Vector{X: 1, Y: 1, Z: 1})
		test.That(t, closestPoint, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0})
		test.That(t, isInside, test.ShouldBeTrue)

		// above edge
		closestPoint, isInside = tri.ClosestInsidePoint(r3.Vector{X: 2, Y: 0, Z: 1})
		test.That(t, closestPoint, test.ShouldResemble, r3.Vector{X: 2, Y: 0, Z: 0})
		test.That(t, isInside, test.ShouldBeTrue)

		// outside (obtuse with triangle)
		_, isInside = tri.ClosestInsidePoint(r3.Vector{X: 1, Y: -1, Z: 1})
		test.That(t, isInside, test.ShouldBeFalse)

		// outside (straight with triangle)
		_, isInside = tri.ClosestInsidePoint(r3.Vector{X: 0, Y: 4, Z: 0})
		test.That(t, isInside, test.ShouldBeFalse)
	})

	t.Run("closest triangle point", func(t *testing.T) {
		// double check on interior point
		closestPoint := tri.ClosestPointToPoint(r3.Vector{X: 1, Y: 1, Z: 1})
		test.That(t, closestPoint, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0})

		// closest point is edge
		closestPoint = tri.ClosestPointToPoint(r3.Vector{X: 3, Y: 2, Z: 1})
		test.That(t, R3VectorAlmostEqual(closestPoint, r3.Vector{X: 2, Y: 1, Z: 0}, 1e-9), test.ShouldBeTrue)

		// closest point is vertex
		closestPoint = tri.ClosestPointToPoint(r3.Vector{X: -1, Y: -1, Z: 1})
		test.That(t, closestPoint, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	})

	t.Run("barycentric weights reproduce the closest point", func(t *testing.T) {
		for _, pt := range []r3.Vector{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 2, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: 0, Y: 5, Z: -2}, {X: 0.5, Y: -3, Z: 0}} {
			closest, weights := tri.closestPointBarycentric(pt)
			rebuilt := interpolate(weights, expectedPts[0], expectedPts[1], expectedPts[2])
			test.That(t, R3VectorAlmostEqual(rebuilt, closest, 1e-9), test.ShouldBeTrue)
			test.That(t, weights[0]+weights[1]+weights[2], test.ShouldAlmostEqual, 1.0)
		}
	})
}

func TestClosestPointSegmentPoint(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 2, Y: 0, Z: 0}
	test.That(t, ClosestPointSegmentPoint(a, b, r3.Vector{X: 1, Y: 5, Z: 0}), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, ClosestPointSegmentPoint(a, b, r3.Vector{X: -3, Y: 1, Z: 0}), test.ShouldResemble, a)
	test.That(t, ClosestPointSegmentPoint(a, b, r3.Vector{X: 9, Y: 1, Z: 0}), test.ShouldResemble, b)
	// zero length segment
	test.That(t, ClosestPointSegmentPoint(a, a, r3.Vector{X: 9, Y: 1, Z: 0}), test.ShouldResemble, a)
}

func TestPlaneNormal(t *testing.T) {
	n := PlaneNormal(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, n, test.ShouldResemble, r3.Vector{X: 0, Y: 1, Z: 0})

	colinear := PlaneNormal(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0})
	test.That(t, colinear, test.ShouldResemble, r3.Vector{})
}
