package deform

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collidedeform/ramp"
	"go.viam.com/collidedeform/spatialmath"
)

type fakeSurface struct {
	result spatialmath.ClosestPointResult
	ok     bool
}

func (f fakeSurface) ClosestPoint(pt r3.Vector, maxDistance float64) (spatialmath.ClosestPointResult, bool) {
	return f.result, f.ok
}

func mustSurface(t *testing.T, m *Mesh) *spatialmath.Surface {
	t.Helper()
	s, err := m.Surface()
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestResolveVertexMissed(t *testing.T) {
	params := DefaultParams()
	params.Displacement = r3.Vector{X: 1, Y: 2, Z: 3}
	p := r3.Vector{X: 0.5, Y: -1, Z: 0}
	up := r3.Vector{Y: 1}

	t.Run("no surface", func(t *testing.T) {
		out, outcome := NewResolver(nil, params, ramp.Default()).ResolveVertex(p, up)
		test.That(t, outcome, test.ShouldEqual, Missed)
		test.That(t, out, test.ShouldResemble, p.Add(params.Displacement))
	})

	t.Run("query finds nothing", func(t *testing.T) {
		out, outcome := NewResolver(fakeSurface{}, params, ramp.Default()).ResolveVertex(p, up)
		test.That(t, outcome, test.ShouldEqual, Missed)
		test.That(t, out, test.ShouldResemble, p.Add(params.Displacement))
	})

	t.Run("surface beyond the safety bound", func(t *testing.T) {
		far := mustSurface(t, NewPlane(-2*MaxQueryDistance, 1, 1))
		out, outcome := NewResolver(far, params, ramp.Default()).ResolveVertex(p, up)
		test.That(t, outcome, test.ShouldEqual, Missed)
		test.That(t, out, test.ShouldResemble, p.Add(params.Displacement))
	})
}

func TestResolveVertexSnap(t *testing.T) {
	// the surface point is above the vertex and its normal also points up, so the vertex is behind the surface
	surface := fakeSurface{
		result: spatialmath.ClosestPointResult{Point: r3.Vector{X: 0.1, Y: 1, Z: -0.2}, Normal: r3.Vector{Y: 1}},
		ok:     true,
	}
	for _, params := range []Params{
		DefaultParams(),
		{SwellLength: 0, SwellStrength: 0},
		{SwellLength: 100, SwellStrength: -5, Displacement: r3.Vector{X: 0.1}},
	} {
		out, outcome := NewResolver(surface, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Snapped)
		test.That(t, out, test.ShouldResemble, surface.result.Point)
	}
}

func TestResolveVertexFarField(t *testing.T) {
	s := mustSurface(t, NewPlane(-1, 2, 2))
	out, outcome := NewResolver(s, DefaultParams(), ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
	test.That(t, outcome, test.ShouldEqual, Untouched)
	test.That(t, out, test.ShouldResemble, r3.Vector{})
}

func TestResolveVertexSwell(t *testing.T) {
	t.Run("plane below the vertex", func(t *testing.T) {
		s := mustSurface(t, NewPlane(-0.2, 2, 2))
		out, outcome := NewResolver(s, DefaultParams(), ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Swelled)
		test.That(t, out.X, test.ShouldAlmostEqual, 0)
		test.That(t, out.Y, test.ShouldAlmostEqual, 6.0/7.0*SwellScale)
		test.That(t, out.Z, test.ShouldAlmostEqual, 0)
	})

	t.Run("strength scales the offset", func(t *testing.T) {
		s := mustSurface(t, NewPlane(-0.2, 2, 2))
		params := DefaultParams()
		params.SwellStrength = 3
		out, _ := NewResolver(s, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, out.Y, test.ShouldAlmostEqual, 3*6.0/7.0*SwellScale)
	})

	t.Run("offset follows the base normal", func(t *testing.T) {
		s := mustSurface(t, NewPlane(-0.2, 2, 2))
		out, _ := NewResolver(s, DefaultParams(), ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{X: 1})
		test.That(t, out.X, test.ShouldAlmostEqual, 6.0/7.0*SwellScale)
		test.That(t, out.Y, test.ShouldAlmostEqual, 0)
	})

	t.Run("zero distance gives zero offset", func(t *testing.T) {
		surface := fakeSurface{result: spatialmath.ClosestPointResult{Normal: r3.Vector{Y: 1}}, ok: true}
		out, outcome := NewResolver(surface, DefaultParams(), ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Swelled)
		test.That(t, out, test.ShouldResemble, r3.Vector{})
	})

	t.Run("continuous at the swell boundary", func(t *testing.T) {
		params := DefaultParams()
		surface := fakeSurface{
			result: spatialmath.ClosestPointResult{Point: r3.Vector{Y: -params.SwellLength * (1 - 1e-9)}, Normal: r3.Vector{Y: 1}},
			ok:     true,
		}
		out, outcome := NewResolver(surface, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Swelled)
		test.That(t, out.Y, test.ShouldBeLessThan, 1e-9)

		surface.result.Point = r3.Vector{Y: -params.SwellLength}
		out, outcome = NewResolver(surface, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Untouched)
		test.That(t, out, test.ShouldResemble, r3.Vector{})
	})

	t.Run("non positive swell length never swells", func(t *testing.T) {
		s := mustSurface(t, NewPlane(-0.2, 2, 2))
		params := DefaultParams()
		params.SwellLength = 0
		out, outcome := NewResolver(s, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Untouched)
		test.That(t, out, test.ShouldResemble, r3.Vector{})
	})

	t.Run("displacement moves the query point", func(t *testing.T) {
		s := mustSurface(t, NewPlane(-1, 2, 2))
		params := DefaultParams()
		params.Displacement = r3.Vector{Y: -0.8}
		out, outcome := NewResolver(s, params, ramp.Default()).ResolveVertex(r3.Vector{}, r3.Vector{Y: 1})
		test.That(t, outcome, test.ShouldEqual, Swelled)
		test.That(t, out.Y, test.ShouldAlmostEqual, -0.8+6.0/7.0*SwellScale)
	})
}

func TestOutcomeString(t *testing.T) {
	test.That(t, Snapped.String(), test.ShouldEqual, "snapped")
	test.That(t, Outcome(12).String(), test.ShouldEqual, "outcome(12)")
}
