package ramp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Interpolation is how a curve segment blends from its left control point to the next one.
type Interpolation int

// The numeric values match the ordering hosts use for ramp interpolation attributes.
const (
	// None holds the left value across the segment.
	None Interpolation = iota
	// Linear interpolates linearly.
	Linear
	// Smooth eases in and out with zero slope at both ends.
	Smooth
	// Spline follows a monotone cubic through all control points.
	Spline
)

var interpolationNames = map[Interpolation]string{
	None:   "none",
	Linear: "linear",
	Smooth: "smooth",
	Spline: "spline",
}

// String returns the lowercase name of the interpolation.
func (i Interpolation) String() string {
	if name, ok := interpolationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("interpolation(%d)", int(i))
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) {
	if _, ok := interpolationNames[i]; !ok {
		return nil, errors.Errorf("unknown interpolation %d", int(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interpolation) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for interp, n := range interpolationNames {
		if n == name {
			*i = interp
			return nil
		}
	}
	return errors.Errorf("unknown interpolation %q", string(text))
}

// smoothstep is the cubic Hermite blend with zero tangents.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
