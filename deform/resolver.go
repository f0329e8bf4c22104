package deform

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/collidedeform/spatialmath"
)

// Outcome is how a single vertex was resolved.
type Outcome int

const (
	// Missed means no surface point was found, the vertex stays at its displaced position.
	Missed Outcome = iota
	// Snapped means the vertex crossed the surface and was moved onto it.
	Snapped
	// Swelled means the vertex was within swell length and pushed along its normal.
	Swelled
	// Untouched means the vertex was outside swell length and stays at its displaced position.
	Untouched
)

func (o Outcome) String() string {
	switch o {
	case Missed:
		return "missed"
	case Snapped:
		return "snapped"
	case Swelled:
		return "swelled"
	case Untouched:
		return "untouched"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ClosestPointer answers closest point queries against a collision surface.
type ClosestPointer interface {
	ClosestPoint(pt r3.Vector, maxDistance float64) (spatialmath.ClosestPointResult, bool)
}

// Sampler maps a ratio in [0, 1] to a response value.
type Sampler interface {
	ValueAt(ratio float64) float64
}

// Resolver computes the deformed position of one vertex at a time. It holds only read-only state and is safe for
// concurrent use as long as its surface and sampler are.
//
// Classification assumes both meshes use outward facing normals; inverted normals are not detected.
type Resolver struct {
	surface ClosestPointer
	params  Params
	curve   Sampler
}

// NewResolver returns a Resolver. A nil surface resolves every vertex as Missed.
func NewResolver(surface ClosestPointer, params Params, curve Sampler) *Resolver {
	return &Resolver{surface: surface, params: params, curve: curve}
}

// ResolveVertex displaces position and resolves it against the collision surface.
func (r *Resolver) ResolveVertex(position, normal r3.Vector) (r3.Vector, Outcome) {
	displaced := position.Add(r.params.Displacement)
	if r.surface == nil {
		return displaced, Missed
	}
	loc, ok := r.surface.ClosestPoint(displaced, MaxQueryDistance)
	if !ok {
		return displaced, Missed
	}

	// a surface normal pointing the same way as the step to the surface means we are behind it
	dir := loc.Point.Sub(displaced).Normalize()
	if loc.Normal.Dot(dir) > 0 {
		return loc.Point, Snapped
	}

	dist := displaced.Distance(loc.Point)
	if !(dist < r.params.SwellLength) {
		return displaced, Untouched
	}
	rampVal := r.curve.ValueAt(dist / r.params.SwellLength)
	return displaced.Add(normal.Mul(rampVal * r.params.SwellStrength * SwellScale)), Swelled
}
