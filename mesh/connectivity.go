package mesh

import (
	"github.com/james-bowman/sparse"
)

// ConnectivityMatrix returns the element-to-element adjacency as a
// sparse CSR matrix: entry (i, j) is 1 when elements i and j share a
// face. The matrix is symmetric. Downstream partitioners and transport
// hosts consume this form directly.
func (m *Mesh) ConnectivityMatrix() *sparse.CSR {
	k := m.NumElements()
	dok := sparse.NewDOK(k, k)
	for e := 0; e < k; e++ {
		for f := 0; f < NumFaces; f++ {
			if j := m.Neighbour(e, f); j != None {
				dok.Set(e, j, 1)
			}
		}
	}
	return dok.ToCSR()
}

// InteriorFaces returns the number of shared faces in the mesh. Each
// interior face is counted once.
func (m *Mesh) InteriorFaces() int {
	shared := 0
	for _, n := range m.Neighbours {
		if n != None {
			shared++
		}
	}
	// every interior face appears in two elements' tables
	return shared / 2
}
