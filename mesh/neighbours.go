package mesh

import "fmt"

// eltsAroundNodes is a CSR-style index of the elements incident to
// each node. The elements containing node n are
// eltList[offsets[n-1]:offsets[n]]. Node tags must be contiguous from
// 1 to the maximum tag.
//
// Adapted from Applied CFD Techniques section 2.2.1.
type eltsAroundNodes struct {
	eltList []int
	offsets []int
}

func (e eltsAroundNodes) elementsAround(node int) []int {
	return e.eltList[e.offsets[node-1]:e.offsets[node]]
}

// elementsAroundNodes builds the node-to-element incidence index in
// two linear passes: a counting pass converted to offsets by a prefix
// sum, then a fill pass that advances each node's cursor, restored by
// a final right shift.
func elementsAroundNodes(elements []Tetrahedron) (eltsAroundNodes, error) {
	maxNode := 0
	for _, elt := range elements {
		if elt.MaxNode() > maxNode {
			maxNode = elt.MaxNode()
		}
	}
	offsets := make([]int, maxNode+1)

	for i, elt := range elements {
		for _, node := range elt.Nodes() {
			if node < 1 {
				return eltsAroundNodes{}, fmt.Errorf(
					"%w: element %d has node tag %d, tags must start at 1", ErrMalformedMesh, i, node)
			}
			offsets[node]++
		}
	}
	for i := 1; i < len(offsets); i++ {
		offsets[i] += offsets[i-1]
	}

	eltList := make([]int, offsets[maxNode])
	for i, elt := range elements {
		for _, node := range elt.Nodes() {
			eltList[offsets[node-1]] = i
			offsets[node-1]++
		}
	}

	// shift offsets right by one to restore canonical CSR form
	for i := len(offsets) - 1; i > 0; i-- {
		offsets[i] = offsets[i-1]
	}
	offsets[0] = 0

	return eltsAroundNodes{eltList: eltList, offsets: offsets}, nil
}

// TetrahedronNeighbours returns the flat neighbour table for a list of
// tetrahedra: NumFaces entries per element, each the index of the
// element across that face or None for a boundary face. Node tags must
// be contiguous starting at 1.
//
// Each face's neighbour is found by scanning only the elements
// incident to one of the face's nodes, so the whole table is built in
// near-linear time for meshes with bounded node valence.
//
// Adapted from Applied CFD Techniques section 2.2.3.
func TetrahedronNeighbours(elements []Tetrahedron) ([]int, error) {
	shared, err := elementsAroundNodes(elements)
	if err != nil {
		return nil, err
	}

	neighbours := make([]int, len(elements)*NumFaces)
	for i := range neighbours {
		neighbours[i] = None
	}

	for i, elt := range elements {
		eltFaces := elt.Faces()
		for f := 0; f < NumFaces; f++ {
			// already matched from the other side
			if neighbours[NumFaces*i+f] != None {
				continue
			}
			face := eltFaces[f]
			// any face node works: a neighbour must contain all three
			candidates := shared.elementsAround(face[0])
			for _, j := range candidates {
				if j == i {
					continue
				}
				otherFaces := elements[j].Faces()
				for jf := 0; jf < NumFaces; jf++ {
					if face != otherFaces[jf] {
						continue
					}
					if neighbours[NumFaces*j+jf] != None || neighbours[NumFaces*i+f] != None {
						return nil, fmt.Errorf(
							"%w: face (%d %d %d) is shared by more than two elements",
							ErrMalformedMesh, face[0], face[1], face[2])
					}
					neighbours[NumFaces*i+f] = j
					neighbours[NumFaces*j+jf] = i
					break
				}
			}
		}
	}
	return neighbours, nil
}
