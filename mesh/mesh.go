// Package mesh holds the in-memory tetrahedral mesh representation
// consumed by particle transport codes: nodes, elements, media, and
// the element face-adjacency table.
package mesh

import "fmt"

// NumFaces is the number of faces per tetrahedron.
const NumFaces = 4

// None marks a face with no neighbour (mesh boundary).
const None = -1

// Node is a single 3D point with a positive tag unique within a mesh.
type Node struct {
	Tag     int
	X, Y, Z float64
}

// Medium is a named material region referenced by element medium tags.
type Medium struct {
	Tag  int
	Name string
}

// Mesh is a complete tetrahedral mesh. All cross-references are stored
// as tags or slice indices, never pointers, so a Mesh is trivially
// copyable. Mutation after construction is not supported.
type Mesh struct {
	Nodes    []Node
	Elements []Tetrahedron
	Media    []Medium

	// Neighbours is a flat table of NumFaces entries per element:
	// Neighbours[NumFaces*e+f] is the element index across face f of
	// element e, or None if that face lies on the boundary.
	Neighbours []int
}

// NewMesh assembles a mesh from parsed sections and builds the
// neighbour table.
func NewMesh(nodes []Node, elements []Tetrahedron, media []Medium) (*Mesh, error) {
	nbrs, err := TetrahedronNeighbours(elements)
	if err != nil {
		return nil, err
	}
	return &Mesh{
		Nodes:      nodes,
		Elements:   elements,
		Media:      media,
		Neighbours: nbrs,
	}, nil
}

// NumElements returns the number of tetrahedra.
func (m *Mesh) NumElements() int {
	return len(m.Elements)
}

// Neighbour returns the element index across face f of element e, or
// None if the face lies on the mesh boundary.
func (m *Mesh) Neighbour(e, f int) int {
	return m.Neighbours[NumFaces*e+f]
}

// IsBoundaryFace reports whether face f of element e has no neighbour.
func (m *Mesh) IsBoundaryFace(e, f int) bool {
	return m.Neighbours[NumFaces*e+f] == None
}

// BoundaryFaces returns the number of element faces on the mesh
// boundary.
func (m *Mesh) BoundaryFaces() (count int) {
	for _, n := range m.Neighbours {
		if n == None {
			count++
		}
	}
	return
}

// MediumName resolves a medium tag to its display name.
func (m *Mesh) MediumName(tag int) (string, error) {
	for _, med := range m.Media {
		if med.Tag == tag {
			return med.Name, nil
		}
	}
	return "", fmt.Errorf("unknown medium tag %d", tag)
}
