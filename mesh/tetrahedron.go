package mesh

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidElement reports a tetrahedron built from unusable node tags
// (negative or duplicate).
var ErrInvalidElement = errors.New("invalid mesh element")

// ErrMalformedMesh reports a structural violation in mesh data: a
// non-positive or non-contiguous node tag, or a face shared by more
// than two elements.
var ErrMalformedMesh = errors.New("malformed mesh")

// Face is an unordered tet face stored as a sorted node-tag triple.
// Because element nodes are sorted at construction, two elements share
// a face iff their Face values are equal component-wise.
type Face [3]int

// Tetrahedron is a four-node volume element. Node tags are stored in
// ascending order; the input ordering is not preserved. MediumTag
// references a physical group after assembly (see readers).
type Tetrahedron struct {
	MediumTag int
	// sorted node tags
	a, b, c, d int
}

// NewTetrahedron builds a tetrahedron from four node tags. The tags
// are sorted ascending. Negative or duplicate tags return
// ErrInvalidElement.
func NewTetrahedron(mediumTag, a, b, c, d int) (Tetrahedron, error) {
	for _, n := range [4]int{a, b, c, d} {
		if n < 0 {
			return Tetrahedron{}, fmt.Errorf("%w: negative node %d", ErrInvalidElement, n)
		}
	}
	if a == b || a == c || a == d {
		return Tetrahedron{}, fmt.Errorf("%w: duplicate node %d", ErrInvalidElement, a)
	}
	if b == c || b == d {
		return Tetrahedron{}, fmt.Errorf("%w: duplicate node %d", ErrInvalidElement, b)
	}
	if c == d {
		return Tetrahedron{}, fmt.Errorf("%w: duplicate node %d", ErrInvalidElement, c)
	}
	sorted := []int{a, b, c, d}
	sort.Ints(sorted)
	return Tetrahedron{
		MediumTag: mediumTag,
		a:         sorted[0],
		b:         sorted[1],
		c:         sorted[2],
		d:         sorted[3],
	}, nil
}

// Nodes returns the four node tags in ascending order.
func (t Tetrahedron) Nodes() [4]int {
	return [4]int{t.a, t.b, t.c, t.d}
}

// MaxNode returns the largest node tag.
func (t Tetrahedron) MaxNode() int {
	return t.d
}

// Faces returns the four faces, each produced by omitting one of the
// sorted nodes in turn (omit-a, omit-b, omit-c, omit-d). The slot
// order is fixed so neighbour tables can be compared face-for-face.
func (t Tetrahedron) Faces() [4]Face {
	return [4]Face{
		{t.b, t.c, t.d},
		{t.a, t.c, t.d},
		{t.a, t.b, t.d},
		{t.a, t.b, t.c},
	}
}
