package mesh

// TetMesh is a plain node/connectivity description used to build test
// meshes shared across the reader and topology tests. Node tags are
// implicit: node i has tag i+1.
type TetMesh struct {
	Nodes [][3]float64
	Tets  [][4]int // 1-based node tags
}

// TestMeshes provides standard tetrahedral test meshes.
type TestMeshes struct {
	SingleTet TetMesh
	TwoTets   TetMesh
	Cube      TetMesh // 2x2x2 cell grid, Kuhn-subdivided
}

// GetStandardTestMeshes returns a set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	return &TestMeshes{
		SingleTet: TetMesh{
			Nodes: [][3]float64{
				{0, 0, 0},
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
			},
			Tets: [][4]int{{1, 2, 3, 4}},
		},
		TwoTets: TetMesh{
			// two tets sharing the (1,2,3) face
			Nodes: [][3]float64{
				{0, 0, 0},
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
				{0, 0, -1},
			},
			Tets: [][4]int{
				{1, 2, 3, 4},
				{1, 2, 3, 5},
			},
		},
		Cube: GridTetMesh(2),
	}
}

// GridTetMesh builds an n x n x n cell unit-cube grid where every cell
// is split into six tetrahedra around its main diagonal (the Kuhn
// subdivision). Identical subdivision in every cell makes the mesh
// conforming, so each interior face is shared by exactly two elements.
func GridTetMesh(n int) TetMesh {
	var tm TetMesh
	nn := n + 1
	h := 1.0 / float64(n)
	tag := func(i, j, k int) int {
		return i + j*nn + k*nn*nn + 1
	}
	for k := 0; k < nn; k++ {
		for j := 0; j < nn; j++ {
			for i := 0; i < nn; i++ {
				tm.Nodes = append(tm.Nodes, [3]float64{
					float64(i) * h, float64(j) * h, float64(k) * h,
				})
			}
		}
	}

	// the six monotone paths from (0,0,0) to (1,1,1), each a tet with
	// the cell's corner and far corner
	paths := [6][2][3]int{
		{{1, 0, 0}, {1, 1, 0}},
		{{1, 0, 0}, {1, 0, 1}},
		{{0, 1, 0}, {1, 1, 0}},
		{{0, 1, 0}, {0, 1, 1}},
		{{0, 0, 1}, {1, 0, 1}},
		{{0, 0, 1}, {0, 1, 1}},
	}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				for _, p := range paths {
					tm.Tets = append(tm.Tets, [4]int{
						tag(i, j, k),
						tag(i+p[0][0], j+p[0][1], k+p[0][2]),
						tag(i+p[1][0], j+p[1][1], k+p[1][2]),
						tag(i+1, j+1, k+1),
					})
				}
			}
		}
	}
	return tm
}
