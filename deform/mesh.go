package deform

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collidedeform/spatialmath"
)

// Mesh is an indexed vertex buffer with optional per-vertex normals and triangle faces.
type Mesh struct {
	Positions []r3.Vector
	Normals   []r3.Vector
	Faces     [][3]int
}

// Empty reports whether the mesh is absent or has no vertices.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Positions) == 0
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	out := &Mesh{
		Positions: append([]r3.Vector(nil), m.Positions...),
	}
	if m.Normals != nil {
		out.Normals = append([]r3.Vector(nil), m.Normals...)
	}
	if m.Faces != nil {
		out.Faces = append([][3]int(nil), m.Faces...)
	}
	return out
}

// VertexNormals returns one normal per position. Supplied normals are used when there is one per vertex, otherwise
// they are computed from the faces. Without faces every normal is zero.
func (m *Mesh) VertexNormals() []r3.Vector {
	if len(m.Normals) == len(m.Positions) {
		return m.Normals
	}
	return spatialmath.VertexNormals(m.Positions, m.Faces)
}

// Surface builds a closest point query structure over the mesh.
func (m *Mesh) Surface(opts ...spatialmath.SurfaceOption) (*spatialmath.Surface, error) {
	if m.Empty() {
		return nil, spatialmath.ErrEmptySurface
	}
	return spatialmath.NewSurface(m.Positions, m.Faces, opts...)
}
