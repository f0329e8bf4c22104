package deform

import (
	"math"

	"github.com/golang/geo/r3"
)

// NewPlane returns a square grid in the plane y = height spanning [-half, half] in x and z, split into cells by
// cells quads, facing +y.
func NewPlane(height, half float64, cells int) *Mesh {
	if cells < 1 {
		cells = 1
	}
	step := 2 * half / float64(cells)
	row := cells + 1
	m := &Mesh{
		Positions: make([]r3.Vector, 0, row*row),
		Normals:   make([]r3.Vector, 0, row*row),
		Faces:     make([][3]int, 0, 2*cells*cells),
	}
	for i := 0; i <= cells; i++ {
		for j := 0; j <= cells; j++ {
			m.Positions = append(m.Positions, r3.Vector{X: -half + float64(j)*step, Y: height, Z: -half + float64(i)*step})
			m.Normals = append(m.Normals, r3.Vector{Y: 1})
		}
	}
	for i := 0; i < cells; i++ {
		for j := 0; j < cells; j++ {
			a := i*row + j
			b := a + 1
			c := a + row
			d := c + 1
			m.Faces = append(m.Faces, [3]int{a, c, b}, [3]int{b, c, d})
		}
	}
	return m
}

// NewSphere returns a UV sphere with outward facing faces and normals. stacks is the number of latitude bands and
// slices the number of longitude bands.
func NewSphere(center r3.Vector, radius float64, stacks, slices int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}
	m := &Mesh{}
	addVertex := func(dir r3.Vector) {
		m.Positions = append(m.Positions, center.Add(dir.Mul(radius)))
		m.Normals = append(m.Normals, dir)
	}

	addVertex(r3.Vector{Y: 1})
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		y, rho := math.Cos(phi), math.Sin(phi)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			addVertex(r3.Vector{X: rho * math.Cos(theta), Y: y, Z: rho * math.Sin(theta)})
		}
	}
	addVertex(r3.Vector{Y: -1})

	top, bottom := 0, len(m.Positions)-1
	ring := func(i, j int) int {
		return 1 + (i-1)*slices + j%slices
	}
	for j := 0; j < slices; j++ {
		m.Faces = append(m.Faces, [3]int{top, ring(1, j+1), ring(1, j)})
	}
	for i := 1; i < stacks-1; i++ {
		for j := 0; j < slices; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			m.Faces = append(m.Faces, [3]int{a, b, c}, [3]int{b, d, c})
		}
	}
	for j := 0; j < slices; j++ {
		m.Faces = append(m.Faces, [3]int{ring(stacks-1, j), ring(stacks-1, j+1), bottom})
	}
	return m
}
