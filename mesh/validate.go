package mesh

import "fmt"

// Validate audits the post-construction invariants of a mesh. A mesh
// returned by the readers passes every check here except the isolation
// check, which the readers do not perform: a file may hold an element
// with all four faces on the boundary, and Validate reports it.
func (m *Mesh) Validate() error {
	if len(m.Neighbours) != NumFaces*len(m.Elements) {
		return fmt.Errorf("%w: neighbour table has %d entries for %d elements",
			ErrMalformedMesh, len(m.Neighbours), len(m.Elements))
	}

	media := make(map[int]bool, len(m.Media))
	for _, med := range m.Media {
		media[med.Tag] = true
	}

	for e, elt := range m.Elements {
		if !media[elt.MediumTag] {
			return fmt.Errorf("%w: element %d has unknown medium tag %d",
				ErrMalformedMesh, e, elt.MediumTag)
		}
		for _, n := range elt.Nodes() {
			if n < 1 || n > len(m.Nodes) {
				return fmt.Errorf("%w: element %d references unknown node %d",
					ErrMalformedMesh, e, n)
			}
		}

		isolated := true
		faces := elt.Faces()
		for f := 0; f < NumFaces; f++ {
			j := m.Neighbour(e, f)
			if j == None {
				continue
			}
			isolated = false
			if j < 0 || j >= len(m.Elements) {
				return fmt.Errorf("%w: element %d face %d points at out-of-range element %d",
					ErrMalformedMesh, e, f, j)
			}
			// reciprocity: the neighbour must see us across the same face
			otherFaces := m.Elements[j].Faces()
			reciprocal := false
			for jf := 0; jf < NumFaces; jf++ {
				if m.Neighbour(j, jf) == e && otherFaces[jf] == faces[f] {
					reciprocal = true
					break
				}
			}
			if !reciprocal {
				return fmt.Errorf("%w: element %d face %d neighbour %d is not reciprocal",
					ErrMalformedMesh, e, f, j)
			}
		}
		if isolated && len(m.Elements) > 1 {
			return fmt.Errorf("%w: element %d is isolated, all four faces are on the boundary",
				ErrMalformedMesh, e)
		}
	}
	return nil
}
