package readers

import (
	"fmt"
	"strings"

	"github.com/notargets/tetmsh/mesh"
)

// Msh41Builder helps build MSH 4.1 format test files from a TetMesh.
// One volume entity, one physical group.
type Msh41Builder struct {
	MediumName string
	GroupTag   int
	VolumeTag  int
}

// NewMsh41Builder creates a builder with a single default medium.
func NewMsh41Builder() *Msh41Builder {
	return &Msh41Builder{
		MediumName: "Water",
		GroupTag:   1,
		VolumeTag:  1,
	}
}

// Build creates a complete MSH 4.1 file from a TetMesh.
func (b *Msh41Builder) Build(tm mesh.TetMesh) string {
	var sections []string
	sections = append(sections, b.buildHeader())
	sections = append(sections, b.buildPhysicalNames())
	sections = append(sections, b.buildEntities())
	sections = append(sections, b.buildNodes(tm))
	sections = append(sections, b.buildElements(tm))
	return strings.Join(sections, "\n") + "\n"
}

func (b *Msh41Builder) buildHeader() string {
	return `$MeshFormat
4.1 0 8
$EndMeshFormat`
}

func (b *Msh41Builder) buildPhysicalNames() string {
	return fmt.Sprintf(`$PhysicalNames
1
3 %d %q
$EndPhysicalNames`, b.GroupTag, b.MediumName)
}

func (b *Msh41Builder) buildEntities() string {
	return fmt.Sprintf(`$Entities
0 0 0 1
%d 0 0 0 1 1 1 1 %d
$EndEntities`, b.VolumeTag, b.GroupTag)
}

func (b *Msh41Builder) buildNodes(tm mesh.TetMesh) string {
	numNodes := len(tm.Nodes)
	var lines []string
	lines = append(lines, "$Nodes")
	lines = append(lines, fmt.Sprintf("1 %d 1 %d", numNodes, numNodes))
	lines = append(lines, fmt.Sprintf("3 %d 0 %d", b.VolumeTag, numNodes))
	for i := 1; i <= numNodes; i++ {
		lines = append(lines, fmt.Sprintf("%d", i))
	}
	for _, coords := range tm.Nodes {
		lines = append(lines, fmt.Sprintf("%g %g %g", coords[0], coords[1], coords[2]))
	}
	lines = append(lines, "$EndNodes")
	return strings.Join(lines, "\n")
}

func (b *Msh41Builder) buildElements(tm mesh.TetMesh) string {
	numTets := len(tm.Tets)
	var lines []string
	lines = append(lines, "$Elements")
	lines = append(lines, fmt.Sprintf("1 %d 1 %d", numTets, numTets))
	lines = append(lines, fmt.Sprintf("3 %d %d %d", b.VolumeTag, tetrahedronType, numTets))
	for i, tet := range tm.Tets {
		lines = append(lines, fmt.Sprintf("%d %d %d %d %d", i+1, tet[0], tet[1], tet[2], tet[3]))
	}
	lines = append(lines, "$EndElements")
	return strings.Join(lines, "\n")
}
