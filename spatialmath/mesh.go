package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var (
	// ErrEmptySurface is returned when a surface is built without points or faces.
	ErrEmptySurface = errors.New("surface has no triangles")
	// ErrDegenerateSurface is returned when every face of a surface has zero area.
	ErrDegenerateSurface = errors.New("surface has only degenerate triangles")
)

// degenerateArea is the area below which a face is dropped from the surface.
const degenerateArea = 1e-12

// NormalMode selects how the normal of a closest point is derived.
type NormalMode int

const (
	// SmoothNormals interpolates area-weighted vertex normals across the face.
	SmoothNormals NormalMode = iota
	// FaceNormals reports the flat normal of the face.
	FaceNormals
)

// ClosestPointResult is the nearest location on a Surface to a query point.
type ClosestPointResult struct {
	Point    r3.Vector
	Normal   r3.Vector
	Distance float64
	// Face is the index of the face in the slice the surface was built from.
	Face int
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithNormalMode sets the normal mode of a Surface.
func WithNormalMode(mode NormalMode) SurfaceOption {
	return func(s *Surface) {
		s.normalMode = mode
	}
}

// Surface is a read-only triangulated surface indexed for closest point queries.
// Queries do not mutate the surface and may run concurrently.
type Surface struct {
	triangles     []*Triangle
	faces         [][3]int
	faceIDs       []int
	vertexNormals []r3.Vector
	normalMode    NormalMode
	root          *bvhNode
}

// NewSurface builds a Surface from vertex positions and triangle indices. Faces with out of range indices are
// rejected, zero-area faces are dropped.
func NewSurface(points []r3.Vector, faces [][3]int, opts ...SurfaceOption) (*Surface, error) {
	if len(points) == 0 || len(faces) == 0 {
		return nil, ErrEmptySurface
	}
	s := &Surface{}
	for _, opt := range opts {
		opt(s)
	}

	for i, f := range faces {
		if !faceInRange(f, len(points)) {
			return nil, errors.Errorf("face %d references vertex outside [0, %d)", i, len(points))
		}
		tri := NewTriangle(points[f[0]], points[f[1]], points[f[2]])
		if tri.Area() <= degenerateArea {
			continue
		}
		s.triangles = append(s.triangles, tri)
		s.faces = append(s.faces, f)
		s.faceIDs = append(s.faceIDs, i)
	}
	if len(s.triangles) == 0 {
		return nil, ErrDegenerateSurface
	}
	s.vertexNormals = VertexNormals(points, s.faces)
	s.root = buildBVH(s.triangles)
	return s, nil
}

// VertexNormals returns the area-weighted unit normal of every point. Points that belong to no face, and faces with
// out of range indices, produce or contribute the zero vector.
func VertexNormals(points []r3.Vector, faces [][3]int) []r3.Vector {
	accum := make([]r3.Vector, len(points))
	for _, f := range faces {
		if !faceInRange(f, len(points)) {
			continue
		}
		// the unnormalized cross product weights each face by its area
		weighted := points[f[1]].Sub(points[f[0]]).Cross(points[f[2]].Sub(points[f[0]]))
		for _, idx := range f {
			accum[idx] = accum[idx].Add(weighted)
		}
	}
	for i := range accum {
		accum[i] = accum[i].Normalize()
	}
	return accum
}

func faceInRange(f [3]int, numPoints int) bool {
	for _, idx := range f {
		if idx < 0 || idx >= numPoints {
			return false
		}
	}
	return true
}

// Triangles returns the non-degenerate faces of the surface.
func (s *Surface) Triangles() []*Triangle {
	return s.triangles
}

// VertexNormals returns the area-weighted unit normal of every vertex.
func (s *Surface) VertexNormals() []r3.Vector {
	return s.vertexNormals
}

// ClosestPoint returns the point on the surface closest to pt, provided it lies within maxDistance.
// Equally close faces resolve to the lowest face index. A nil surface never reports a result.
func (s *Surface) ClosestPoint(pt r3.Vector, maxDistance float64) (ClosestPointResult, bool) {
	if s == nil || s.root == nil || maxDistance < 0 {
		return ClosestPointResult{}, false
	}

	found := false
	bestSq := maxDistance * maxDistance
	best := -1
	var bestPt r3.Vector
	var bestWeights [3]float64

	stack := make([]*bvhNode, 0, 64)
	stack = append(stack, s.root)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if aabbDistanceSq(pt, node.min, node.max) > bestSq {
			continue
		}
		if node.isLeaf() {
			for _, idx := range node.triangles {
				cp, weights := s.triangles[idx].closestPointBarycentric(pt)
				d := pt.Sub(cp).Norm2()
				if d > bestSq || (found && d == bestSq && idx > best) {
					continue
				}
				found = true
				bestSq = d
				best = idx
				bestPt = cp
				bestWeights = weights
			}
			continue
		}
		// the nearer child goes on top of the stack
		dl := aabbDistanceSq(pt, node.left.min, node.left.max)
		dr := aabbDistanceSq(pt, node.right.min, node.right.max)
		if dl <= dr {
			stack = append(stack, node.right, node.left)
		} else {
			stack = append(stack, node.left, node.right)
		}
	}
	if !found {
		return ClosestPointResult{}, false
	}

	return ClosestPointResult{
		Point:    bestPt,
		Normal:   s.normalAt(best, bestWeights),
		Distance: pt.Sub(bestPt).Norm(),
		Face:     s.faceIDs[best],
	}, true
}

func (s *Surface) normalAt(tri int, weights [3]float64) r3.Vector {
	faceNormal := s.triangles[tri].Normal()
	if s.normalMode == FaceNormals {
		return faceNormal
	}
	f := s.faces[tri]
	n := interpolate(weights, s.vertexNormals[f[0]], s.vertexNormals[f[1]], s.vertexNormals[f[2]]).Normalize()
	if n.Norm2() == 0 {
		return faceNormal
	}
	return n
}
