package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is a single face of a triangulated surface. Its normal follows the right-hand rule over p0, p1, p2.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle creates a Triangle from three points, computing its unit normal.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three corners of the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit face normal.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm()
}

// Centroid returns the average of the three corners.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// ClosestPointToPoint takes a point, and returns the closest point on the triangle to the given point.
func (t *Triangle) ClosestPointToPoint(point r3.Vector) r3.Vector {
	closest, _ := t.closestPointBarycentric(point)
	return closest
}

// closestPointBarycentric returns the closest point on the triangle along with its barycentric weights for p0, p1 and p2.
func (t *Triangle) closestPointBarycentric(point r3.Vector) (r3.Vector, [3]float64) {
	closestPtInside, u, v, inside := t.closestInsidePoint(point)
	if inside {
		return closestPtInside, [3]float64{1 - u - v, u, v}
	}

	// If the closest point is outside the triangle, it must be on an edge, so we
	// check each triangle edge for a closest point to the point pt.
	s := closestPointSegmentParam(t.p0, t.p1, point)
	closestPt := lerp(t.p0, t.p1, s)
	weights := [3]float64{1 - s, s, 0}
	bestDist := point.Sub(closestPt).Norm2()

	s = closestPointSegmentParam(t.p1, t.p2, point)
	newPt := lerp(t.p1, t.p2, s)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		closestPt = newPt
		weights = [3]float64{0, 1 - s, s}
		bestDist = newDist
	}

	s = closestPointSegmentParam(t.p2, t.p0, point)
	newPt = lerp(t.p2, t.p0, s)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		return newPt, [3]float64{s, 0, 1 - s}
	}
	return closestPt, weights
}

// ClosestInsidePoint returns the closest point on a triangle IF AND ONLY IF the query point's projection overlaps the triangle.
// Otherwise it will return the query point's projection onto the triangle's plane.
// To visualize this- if one draws a tetrahedron using the triangle and the query point, all angles from the triangle to the query point
// must be <= 90 degrees.
func (t *Triangle) ClosestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	pt, _, _, inside := t.closestInsidePoint(point)
	return pt, inside
}

func (t *Triangle) closestInsidePoint(point r3.Vector) (r3.Vector, float64, float64, bool) {
	eps := 1e-6

	// Parametrize the triangle s.t. a point inside the triangle is
	// Q = p0 + u * e0 + v * e1, when 0 <= u <= 1, 0 <= v <= 1, and
	// 0 <= u + v <= 1. Let e0 = (p1 - p0) and e1 = (p2 - p0).
	// We analytically minimize the distance between the point pt and Q.
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	// The determinant is 0 only if the angle between e1 and e0 is 0
	// (i.e. the triangle has overlapping lines).
	det := (a*c - b*b)
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), u, v, inside
}

// interpolate blends three per-corner vectors with barycentric weights.
func interpolate(weights [3]float64, a, b, c r3.Vector) r3.Vector {
	return a.Mul(weights[0]).Add(b.Mul(weights[1])).Add(c.Mul(weights[2]))
}
