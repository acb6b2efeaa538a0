package readers

import (
	"errors"
	"strings"
	"testing"

	"github.com/notargets/tetmsh/mesh"
)

// validSections returns a minimal well-formed mesh file with two tets. Each
// named section can be replaced to produce a specific failure.
func validSections() map[string]string {
	return map[string]string{
		"format": `$MeshFormat
4.1 0 8
$EndMeshFormat`,
		"names": `$PhysicalNames
1
3 1 "Water"
$EndPhysicalNames`,
		"entities": `$Entities
0 0 0 1
1 0 0 0 1 1 1 1 1
$EndEntities`,
		"nodes": `$Nodes
1 5 1 5
3 1 0 5
1
2
3
4
5
0 0 0
1 0 0
0 1 0
0 0 1
0 0 -1
$EndNodes`,
		"elements": `$Elements
1 2 1 2
3 1 4 2
1 1 2 3 4
2 1 2 3 5
$EndElements`,
	}
}

func buildContent(sections map[string]string) string {
	order := []string{"format", "names", "entities", "nodes", "elements"}
	var parts []string
	for _, k := range order {
		parts = append(parts, sections[k])
	}
	return strings.Join(parts, "\n") + "\n"
}

func parseWith(t *testing.T, replace map[string]string) (*mesh.Mesh, error) {
	t.Helper()
	sections := validSections()
	for k, v := range replace {
		sections[k] = v
	}
	return ReadMsh41(strings.NewReader(buildContent(sections)))
}

func TestReadMsh41ValidMesh(t *testing.T) {
	m, err := parseWith(t, nil)
	if err != nil {
		t.Fatalf("failed to read valid mesh: %v", err)
	}
	if m.NumElements() != 2 {
		t.Errorf("expected 2 elements, got %d", m.NumElements())
	}
	if len(m.Nodes) != 5 {
		t.Errorf("expected 5 nodes, got %d", len(m.Nodes))
	}
	if len(m.Media) != 1 || m.Media[0].Name != "Water" || m.Media[0].Tag != 1 {
		t.Errorf("unexpected media: %+v", m.Media)
	}
	if m.Neighbour(0, 3) != 1 || m.Neighbour(1, 3) != 0 {
		t.Errorf("expected tets to share their slot-3 face, got %v", m.Neighbours)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("valid mesh failed validation: %v", err)
	}
}

func TestReadMsh41MissingHeader(t *testing.T) {
	_, err := ReadMsh41(strings.NewReader("$Nodes\n"))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}

	_, err = ReadMsh41(strings.NewReader(""))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader on empty input, got %v", err)
	}
}

func TestReadMsh41UnsupportedVersion(t *testing.T) {
	_, err := parseWith(t, map[string]string{"format": `$MeshFormat
4.0 0 8
$EndMeshFormat`})
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "4.0") {
		t.Errorf("error should name the version: %v", err)
	}
}

func TestReadMsh41BinaryEncoding(t *testing.T) {
	_, err := parseWith(t, map[string]string{"format": `$MeshFormat
4.1 1 8
$EndMeshFormat`})
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestReadMsh41WrongSizeT(t *testing.T) {
	_, err := parseWith(t, map[string]string{"format": `$MeshFormat
4.1 0 4
$EndMeshFormat`})
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestReadMsh41MissingEndMeshFormat(t *testing.T) {
	_, err := ReadMsh41(strings.NewReader("$MeshFormat\n4.1 0 8\n$Nodes\n"))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestReadMsh41EntitiesZeroVolumes(t *testing.T) {
	_, err := parseWith(t, map[string]string{"entities": `$Entities
0 0 0 0
$EndEntities`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41EntityWithoutGroup(t *testing.T) {
	_, err := parseWith(t, map[string]string{"entities": `$Entities
0 0 0 1
1 0 0 0 1 1 1 0
$EndEntities`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "volume 1") {
		t.Errorf("error should name the entity: %v", err)
	}
}

func TestReadMsh41EntityWithTwoGroups(t *testing.T) {
	_, err := parseWith(t, map[string]string{"entities": `$Entities
0 0 0 1
1 0 0 0 1 1 1 2 1 2
$EndEntities`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "more than one physical group") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41DuplicateVolumeTag(t *testing.T) {
	_, err := parseWith(t, map[string]string{"entities": `$Entities
0 0 0 2
1 0 0 0 1 1 1 1 1
1 0 0 0 1 1 1 1 1
$EndEntities`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate volume tag 1") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41UnquotedGroupName(t *testing.T) {
	_, err := parseWith(t, map[string]string{"names": `$PhysicalNames
1
3 1 Water
$EndPhysicalNames`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41UnclosedGroupName(t *testing.T) {
	_, err := parseWith(t, map[string]string{"names": `$PhysicalNames
1
3 1 "Water
$EndPhysicalNames`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41EmptyGroupName(t *testing.T) {
	_, err := parseWith(t, map[string]string{"names": `$PhysicalNames
1
3 1 ""
$EndPhysicalNames`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41NonThreeDimGroupsIgnored(t *testing.T) {
	m, err := parseWith(t, map[string]string{"names": `$PhysicalNames
3
2 7 "Surface"
3 1 "Water"
1 8 "Curve"
$EndPhysicalNames`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Media) != 1 || m.Media[0].Name != "Water" {
		t.Errorf("expected only the 3D group, got %+v", m.Media)
	}
}

func TestReadMsh41UnreferencedGroupDropped(t *testing.T) {
	// "Steel" is declared but no volume, and therefore no element,
	// resolves to it; the media list only carries groups in use
	m, err := parseWith(t, map[string]string{"names": `$PhysicalNames
2
3 1 "Water"
3 2 "Steel"
$EndPhysicalNames`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Media) != 1 || m.Media[0].Tag != 1 || m.Media[0].Name != "Water" {
		t.Errorf("expected only the referenced group as media, got %+v", m.Media)
	}
}

func TestReadMsh41DuplicateGroupTag(t *testing.T) {
	_, err := parseWith(t, map[string]string{"names": `$PhysicalNames
2
3 1 "Water"
3 1 "Steel"
$EndPhysicalNames`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41MissingEndNodes(t *testing.T) {
	_, err := parseWith(t, map[string]string{"nodes": `$Nodes
1 5 1 5
3 1 0 5
1
2
3
4
5
0 0 0
1 0 0
0 1 0
0 0 1
0 0 -1`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "$EndNodes") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41DuplicateNodeTag(t *testing.T) {
	nodes := validSections()["nodes"]
	_, err := parseWith(t, map[string]string{"nodes": strings.Replace(nodes, "\n2\n", "\n1\n", 1)})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate node tag 1") {
		t.Errorf("error should name the tag: %v", err)
	}
}

func TestReadMsh41NodeCountMismatch(t *testing.T) {
	_, err := parseWith(t, map[string]string{"nodes": `$Nodes
1 6 1 6
3 1 0 5
1
2
3
4
5
0 0 0
1 0 0
0 1 0
0 0 1
0 0 -1
$EndNodes`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41NodeBlockBadDimension(t *testing.T) {
	nodes := validSections()["nodes"]
	_, err := parseWith(t, map[string]string{"nodes": strings.Replace(nodes, "3 1 0 5", "4 1 0 5", 1)})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Errorf("expected ErrMalformedMesh, got %v", err)
	}
}

func TestReadMsh41NodeTagTooLarge(t *testing.T) {
	nodes := validSections()["nodes"]
	_, err := parseWith(t, map[string]string{"nodes": strings.Replace(nodes, "1 5 1 5", "1 5 1 4294967296", 1)})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41NonContiguousNodeTags(t *testing.T) {
	_, err := parseWith(t, map[string]string{
		"nodes": `$Nodes
1 5 1 7
3 1 0 5
1
2
3
4
7
0 0 0
1 0 0
0 1 0
0 0 1
0 0 -1
$EndNodes`,
		"elements": `$Elements
1 2 1 2
3 1 4 2
1 1 2 3 4
2 1 2 3 7
$EndElements`,
	})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "contiguous") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41NonTetrahedralType(t *testing.T) {
	_, err := parseWith(t, map[string]string{"elements": `$Elements
1 1 1 1
3 1 5 1
1 1 2 3 4 5 6 7 8
$EndElements`})
	if !errors.Is(err, ErrUnsupportedElementType) {
		t.Fatalf("expected ErrUnsupportedElementType, got %v", err)
	}
	if !strings.Contains(err.Error(), "entity 1") || !strings.Contains(err.Error(), "type 5") {
		t.Errorf("error should name entity and type: %v", err)
	}
}

func TestReadMsh41NonThreeDimElementBlocksSkipped(t *testing.T) {
	m, err := parseWith(t, map[string]string{"elements": `$Elements
2 4 1 4
2 1 2 2
3 1 2 3
4 1 2 4
3 1 4 2
1 1 2 3 4
2 1 2 3 5
$EndElements`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NumElements() != 2 {
		t.Errorf("expected surface elements to be skipped, got %d elements", m.NumElements())
	}
}

func TestReadMsh41NoTetrahedra(t *testing.T) {
	_, err := parseWith(t, map[string]string{"elements": `$Elements
1 2 1 2
2 1 2 2
3 1 2 3
4 1 2 4
$EndElements`})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "no tetrahedral elements") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41DuplicateElementTag(t *testing.T) {
	elements := validSections()["elements"]
	_, err := parseWith(t, map[string]string{"elements": strings.Replace(elements, "2 1 2 3 5", "1 1 2 3 5", 1)})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate tetrahedron tag 1") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41ElementUnknownEntity(t *testing.T) {
	elements := validSections()["elements"]
	_, err := parseWith(t, map[string]string{"elements": strings.Replace(elements, "3 1 4 2", "3 12 4 2", 1)})
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if !strings.Contains(err.Error(), "volume tag 12") {
		t.Errorf("error should name the volume tag: %v", err)
	}
}

func TestReadMsh41VolumeUnknownGroup(t *testing.T) {
	_, err := parseWith(t, map[string]string{"entities": `$Entities
0 0 0 1
1 0 0 0 1 1 1 1 9
$EndEntities`})
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if !strings.Contains(err.Error(), "physical group tag 9") {
		t.Errorf("error should name the group tag: %v", err)
	}
}

func TestReadMsh41TetWithDuplicateNodes(t *testing.T) {
	elements := validSections()["elements"]
	_, err := parseWith(t, map[string]string{"elements": strings.Replace(elements, "1 1 2 3 4", "1 1 2 2 4", 1)})
	if !errors.Is(err, mesh.ErrInvalidElement) {
		t.Errorf("expected ErrInvalidElement, got %v", err)
	}
}

func TestReadMsh41ElementWithUnknownNode(t *testing.T) {
	elements := validSections()["elements"]
	_, err := parseWith(t, map[string]string{"elements": strings.Replace(elements, "2 1 2 3 5", "2 1 2 3 6", 1)})
	if !errors.Is(err, mesh.ErrMalformedMesh) {
		t.Fatalf("expected ErrMalformedMesh, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown node 6") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestReadMsh41SkipsUnknownSections(t *testing.T) {
	content := buildContent(validSections())
	content = strings.Replace(content, "$PhysicalNames",
		"$Comments\nanything at all\n$EndComments\n$PhysicalNames", 1)

	m, err := ReadMsh41(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unknown section should be skipped: %v", err)
	}
	if m.NumElements() != 2 {
		t.Errorf("expected 2 elements, got %d", m.NumElements())
	}
}

func TestReadMsh41TruncatedUnknownSection(t *testing.T) {
	content := buildContent(validSections()) + "$Comments\nno end marker\n"
	_, err := ReadMsh41(strings.NewReader(content))
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestReadMsh41StopsAtSecondMeshFormat(t *testing.T) {
	content := buildContent(validSections()) + "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"
	m, err := ReadMsh41(strings.NewReader(content))
	if err != nil {
		t.Fatalf("second mesh should stop the parse, not fail it: %v", err)
	}
	if m.NumElements() != 2 {
		t.Errorf("expected 2 elements, got %d", m.NumElements())
	}
}

// failingReader returns its payload, then a stream error instead of EOF
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReadMsh41StreamErrorPropagates(t *testing.T) {
	streamErr := errors.New("deadline exceeded")
	content := buildContent(validSections())
	r := &failingReader{data: []byte(content[:len(content)/2]), err: streamErr}

	_, err := ReadMsh41(r)
	if !errors.Is(err, streamErr) {
		t.Errorf("expected the stream error to propagate, got %v", err)
	}
}

func TestReadMsh41MissingSections(t *testing.T) {
	for _, section := range []string{"names", "entities", "nodes", "elements"} {
		sections := validSections()
		sections[section] = ""
		_, err := ReadMsh41(strings.NewReader(buildContent(sections)))
		if !errors.Is(err, mesh.ErrMalformedMesh) {
			t.Errorf("missing %s section: expected ErrMalformedMesh, got %v", section, err)
		}
	}
}
