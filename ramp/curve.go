// Package ramp implements the one dimensional response curve that maps a normalized distance to a swell intensity.
package ramp

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrNoControlPoints is returned when a curve is created without any control points.
	ErrNoControlPoints = errors.New("curve needs at least one control point")
	// ErrPositionOutOfRange is returned when a control point lies outside [0, 1].
	ErrPositionOutOfRange = errors.New("control point position must be within [0, 1]")
)

// ControlPoint is a single key of a Curve.
type ControlPoint struct {
	Position float64       `json:"position" yaml:"position"`
	Value    float64       `json:"value" yaml:"value"`
	Interp   Interpolation `json:"interp" yaml:"interp"`
}

// Curve is an immutable piecewise curve over [0, 1]. It is safe for concurrent use.
type Curve struct {
	points []ControlPoint
	spline interp.Predictor
}

// New returns a Curve through the given control points. Points are ordered by position; when two share a position
// the one given last wins.
func New(points ...ControlPoint) (*Curve, error) {
	if len(points) == 0 {
		return nil, ErrNoControlPoints
	}
	for _, p := range points {
		if math.IsNaN(p.Position) || p.Position < 0 || p.Position > 1 {
			return nil, errors.Wrapf(ErrPositionOutOfRange, "got %v", p.Position)
		}
	}

	sorted := make([]ControlPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	deduped := sorted[:0]
	for _, p := range sorted {
		if n := len(deduped); n > 0 && deduped[n-1].Position == p.Position {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	c := &Curve{points: deduped}
	if len(deduped) >= 3 {
		xs := make([]float64, len(deduped))
		ys := make([]float64, len(deduped))
		for i, p := range deduped {
			xs[i] = p.Position
			ys[i] = p.Value
		}
		var fb interp.FritschButland
		if err := fb.Fit(xs, ys); err != nil {
			return nil, errors.Wrap(err, "fitting spline segments")
		}
		c.spline = &fb
	}
	return c, nil
}

// Default returns the triangular bump curve: 0 at 0, peaking at 1 at 0.3, back to 0 at 1.
func Default() *Curve {
	c, err := New(DefaultControlPoints()...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultControlPoints returns the control points of Default.
func DefaultControlPoints() []ControlPoint {
	return []ControlPoint{
		{Position: 0, Value: 0, Interp: Linear},
		{Position: 0.3, Value: 1, Interp: Linear},
		{Position: 1, Value: 0, Interp: Linear},
	}
}

// Points returns a copy of the ordered control points.
func (c *Curve) Points() []ControlPoint {
	out := make([]ControlPoint, len(c.points))
	copy(out, c.points)
	return out
}

// ValueAt samples the curve. ratio is clamped to [0, 1]; before the first control point the first value is returned,
// after the last the last value. Each segment uses the interpolation of its left control point.
func (c *Curve) ValueAt(ratio float64) float64 {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = math.Max(0, math.Min(1, ratio))

	first, last := c.points[0], c.points[len(c.points)-1]
	if ratio <= first.Position {
		return first.Value
	}
	if ratio >= last.Position {
		return last.Value
	}

	// index of the first control point strictly right of ratio
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Position > ratio
	})
	left, right := c.points[i-1], c.points[i]
	t := (ratio - left.Position) / (right.Position - left.Position)

	switch left.Interp {
	case None:
		return left.Value
	case Smooth:
		return left.Value + (right.Value-left.Value)*smoothstep(t)
	case Spline:
		if c.spline != nil {
			return c.spline.Predict(ratio)
		}
		return left.Value + (right.Value-left.Value)*t
	case Linear:
		fallthrough
	default:
		return left.Value + (right.Value-left.Value)*t
	}
}

// Sample returns n values of the curve at evenly spaced ratios from 0 to 1 inclusive.
func (c *Curve) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{c.ValueAt(0)}
	}
	ratios := floats.Span(make([]float64, n), 0, 1)
	out := make([]float64, n)
	for i, r := range ratios {
		out[i] = c.ValueAt(r)
	}
	return out
}
