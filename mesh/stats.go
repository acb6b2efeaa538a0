package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Statistics summarizes a mesh for reporting and sanity checks.
type Statistics struct {
	NumNodes       int
	NumElements    int
	NumMedia       int
	BoundaryFaces  int
	InteriorFaces  int
	TotalVolume    float64
	VolumeByMedium map[int]float64
	BoundingBox    [2][3]float64
}

// ElementVolume returns the volume of element e, computed from the
// determinant of the edge-vector matrix.
func (m *Mesh) ElementVolume(e int) (float64, error) {
	nodes := m.Elements[e].Nodes()
	var pts [4]Node
	for i, tag := range nodes {
		n, err := m.nodeByTag(tag)
		if err != nil {
			return 0, err
		}
		pts[i] = n
	}
	edges := mat.NewDense(3, 3, []float64{
		pts[1].X - pts[0].X, pts[1].Y - pts[0].Y, pts[1].Z - pts[0].Z,
		pts[2].X - pts[0].X, pts[2].Y - pts[0].Y, pts[2].Z - pts[0].Z,
		pts[3].X - pts[0].X, pts[3].Y - pts[0].Y, pts[3].Z - pts[0].Z,
	})
	return math.Abs(mat.Det(edges)) / 6.0, nil
}

func (m *Mesh) nodeByTag(tag int) (Node, error) {
	// node tags are contiguous from 1, but block order in the source
	// file is arbitrary, so Nodes[tag-1] may not hold tag
	if tag >= 1 && tag <= len(m.Nodes) && m.Nodes[tag-1].Tag == tag {
		return m.Nodes[tag-1], nil
	}
	for _, n := range m.Nodes {
		if n.Tag == tag {
			return n, nil
		}
	}
	return Node{}, fmt.Errorf("unknown node tag %d", tag)
}

// ComputeStatistics walks the mesh once and returns its summary.
func (m *Mesh) ComputeStatistics() (*Statistics, error) {
	s := &Statistics{
		NumNodes:       len(m.Nodes),
		NumElements:    len(m.Elements),
		NumMedia:       len(m.Media),
		BoundaryFaces:  m.BoundaryFaces(),
		InteriorFaces:  m.InteriorFaces(),
		VolumeByMedium: make(map[int]float64),
	}

	for i := 0; i < 3; i++ {
		s.BoundingBox[0][i] = math.Inf(1)
		s.BoundingBox[1][i] = math.Inf(-1)
	}
	for _, n := range m.Nodes {
		coords := [3]float64{n.X, n.Y, n.Z}
		for i, c := range coords {
			s.BoundingBox[0][i] = math.Min(s.BoundingBox[0][i], c)
			s.BoundingBox[1][i] = math.Max(s.BoundingBox[1][i], c)
		}
	}

	for e, elt := range m.Elements {
		vol, err := m.ElementVolume(e)
		if err != nil {
			return nil, err
		}
		s.TotalVolume += vol
		s.VolumeByMedium[elt.MediumTag] += vol
	}
	return s, nil
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	s, err := m.ComputeStatistics()
	if err != nil {
		fmt.Printf("statistics failed: %v\n", err)
		return
	}
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Nodes: %d\n", s.NumNodes)
	fmt.Printf("  Elements: %d\n", s.NumElements)
	fmt.Printf("  Interior faces: %d\n", s.InteriorFaces)
	fmt.Printf("  Boundary faces: %d\n", s.BoundaryFaces)
	fmt.Printf("  Total volume: %g\n", s.TotalVolume)
	fmt.Printf("  Media: %d\n", s.NumMedia)
	for _, med := range m.Media {
		fmt.Printf("    %d %q: volume %g\n", med.Tag, med.Name, s.VolumeByMedium[med.Tag])
	}
}
