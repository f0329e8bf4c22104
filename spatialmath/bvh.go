package spatialmath

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

const maxTrianglesPerLeaf = 4

// bvhNode is a node of a bounding volume hierarchy over a triangle list. Leaves hold indices into that list.
type bvhNode struct {
	min, max    r3.Vector
	left, right *bvhNode
	triangles   []int
}

func (n *bvhNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// buildBVH builds a hierarchy by recursively splitting triangles at the median centroid of the longest axis.
func buildBVH(triangles []*Triangle) *bvhNode {
	if len(triangles) == 0 {
		return nil
	}
	indices := make([]int, len(triangles))
	for i := range indices {
		indices[i] = i
	}
	return buildBVHNode(triangles, indices)
}

func buildBVHNode(triangles []*Triangle, indices []int) *bvhNode {
	node := &bvhNode{}
	node.min, node.max = computeTrianglesAABB(triangles, indices)

	if len(indices) <= maxTrianglesPerLeaf {
		node.triangles = indices
		return node
	}

	centroidMin := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	centroidMax := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, idx := range indices {
		c := triangles[idx].Centroid()
		centroidMin = minVector(centroidMin, c)
		centroidMax = maxVector(centroidMax, c)
	}
	extent := centroidMax.Sub(centroidMin)
	axis := 0
	if extent.Y > extent.X && extent.Y >= extent.Z {
		axis = 1
	} else if extent.Z > extent.X && extent.Z > extent.Y {
		axis = 2
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci := component(triangles[sorted[i]].Centroid(), axis)
		cj := component(triangles[sorted[j]].Centroid(), axis)
		if ci == cj {
			return sorted[i] < sorted[j]
		}
		return ci < cj
	})

	mid := len(sorted) / 2
	node.left = buildBVHNode(triangles, sorted[:mid])
	node.right = buildBVHNode(triangles, sorted[mid:])
	return node
}

// computeTrianglesAABB returns the axis aligned bounds of the given triangles.
func computeTrianglesAABB(triangles []*Triangle, indices []int) (r3.Vector, r3.Vector) {
	minPt := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxPt := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, idx := range indices {
		for _, pt := range triangles[idx].Points() {
			minPt = minVector(minPt, pt)
			maxPt = maxVector(maxPt, pt)
		}
	}
	return minPt, maxPt
}

// aabbDistanceSq returns the squared distance from pt to the box, 0 if pt is inside.
func aabbDistanceSq(pt, minPt, maxPt r3.Vector) float64 {
	dx := math.Max(0, math.Max(minPt.X-pt.X, pt.X-maxPt.X))
	dy := math.Max(0, math.Max(minPt.Y-pt.Y, pt.Y-maxPt.Y))
	dz := math.Max(0, math.Max(minPt.Z-pt.Z, pt.Z-maxPt.Z))
	return dx*dx + dy*dy + dz*dz
}

func minVector(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVector(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func component(v r3.Vector, axis int) float64 {
	switch axis {
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.X
	}
}
