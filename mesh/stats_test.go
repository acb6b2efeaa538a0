package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMesh(t *testing.T, tm TetMesh) *Mesh {
	t.Helper()
	nodes := make([]Node, 0, len(tm.Nodes))
	for i, c := range tm.Nodes {
		nodes = append(nodes, Node{Tag: i + 1, X: c[0], Y: c[1], Z: c[2]})
	}
	m, err := NewMesh(nodes, mustTets(t, tm), []Medium{{Tag: 1, Name: "Water"}})
	require.NoError(t, err)
	return m
}

func TestElementVolumeUnitTet(t *testing.T) {
	m := buildMesh(t, GetStandardTestMeshes().SingleTet)

	vol, err := m.ElementVolume(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, vol, 1e-14)
}

func TestComputeStatisticsGrid(t *testing.T) {
	m := buildMesh(t, GridTetMesh(2))

	s, err := m.ComputeStatistics()
	require.NoError(t, err)

	assert.Equal(t, 27, s.NumNodes)
	assert.Equal(t, 48, s.NumElements)
	assert.Equal(t, 1, s.NumMedia)

	// the Kuhn tets tile the unit cube exactly
	assert.InDelta(t, 1.0, s.TotalVolume, 1e-12)
	assert.InDelta(t, 1.0, s.VolumeByMedium[1], 1e-12)

	assert.Equal(t, [2][3]float64{{0, 0, 0}, {1, 1, 1}}, s.BoundingBox)

	// each of the six cube sides is covered by 2x2 cells with two
	// boundary triangles each
	assert.Equal(t, 48, s.BoundaryFaces)
	// total faces = 4*48 = 192; interior faces are double counted
	assert.Equal(t, (4*48-48)/2, s.InteriorFaces)
}

func TestMediumName(t *testing.T) {
	m := buildMesh(t, GetStandardTestMeshes().SingleTet)

	name, err := m.MediumName(1)
	require.NoError(t, err)
	assert.Equal(t, "Water", name)

	_, err = m.MediumName(99)
	assert.Error(t, err)
}
