// Package deform conforms a base mesh to a collision surface, snapping penetrating vertices onto the surface and
// swelling nearby vertices along their normals.
package deform

import (
	"github.com/golang/geo/r3"
)

const (
	// SwellScale converts the curve value times swell strength into a world space offset. It is not configurable.
	SwellScale = 0.1
	// MaxQueryDistance bounds closest point queries. It is a numerical cutoff, not a swell radius.
	MaxQueryDistance = 1000.0
	// DefaultSwellLength is the distance within which non-penetrating vertices swell.
	DefaultSwellLength = 0.5
	// DefaultSwellStrength multiplies the swell offset.
	DefaultSwellStrength = 1.0
)

// Attribute names one input or output of an evaluation.
type Attribute struct {
	Name      string
	ShortName string
	Input     bool
}

// Schema describes the named attributes of an evaluation. Build one with NewSchema and share it by value; it is
// never modified.
type Schema struct {
	BaseMesh      Attribute
	CollisionMesh Attribute
	Displacement  Attribute
	Curve         Attribute
	SwellLength   Attribute
	SwellStrength Attribute
	OutMesh       Attribute
}

// NewSchema returns the attribute layout of the collide deformer.
func NewSchema() Schema {
	return Schema{
		BaseMesh:      Attribute{Name: "origMesh", ShortName: "oMesh", Input: true},
		CollisionMesh: Attribute{Name: "collisionMesh", ShortName: "colMesh", Input: true},
		Displacement:  Attribute{Name: "pos", ShortName: "pos", Input: true},
		Curve:         Attribute{Name: "ramp", ShortName: "ramp", Input: true},
		SwellLength:   Attribute{Name: "swellLength", ShortName: "swellLength", Input: true},
		SwellStrength: Attribute{Name: "swellVal", ShortName: "swellVal", Input: true},
		OutMesh:       Attribute{Name: "outMesh", ShortName: "outMesh"},
	}
}

// Attributes returns every attribute, inputs first.
func (s Schema) Attributes() []Attribute {
	return []Attribute{s.BaseMesh, s.CollisionMesh, s.Displacement, s.Curve, s.SwellLength, s.SwellStrength, s.OutMesh}
}

// Lookup finds an attribute by long or short name.
func (s Schema) Lookup(name string) (Attribute, bool) {
	for _, attr := range s.Attributes() {
		if attr.Name == name || attr.ShortName == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Affects reports whether changing the named attribute invalidates the output mesh. Every input does.
func (s Schema) Affects(name string) bool {
	attr, ok := s.Lookup(name)
	return ok && attr.Input
}

// Params are the scalar and vector inputs of one evaluation.
type Params struct {
	Displacement  r3.Vector
	SwellLength   float64
	SwellStrength float64
}

// DefaultParams returns zero displacement with the default swell length and strength.
func DefaultParams() Params {
	return Params{
		SwellLength:   DefaultSwellLength,
		SwellStrength: DefaultSwellStrength,
	}
}
