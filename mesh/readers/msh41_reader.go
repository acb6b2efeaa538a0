// Package readers parses mesh exchange files into the in-memory mesh
// representation. Only the Gmsh MSH 4.1 ASCII format is supported: it
// is the interchange format produced by the meshing pipeline feeding
// the transport host, and the reader is deliberately strict so that a
// mesh accepted here is safe to track particles through.
package readers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/tetmsh/mesh"
)

// mshVersion enumerates the format versions the body dispatcher can
// route. Only 4.1 parses today.
type mshVersion int

const v41 mshVersion = iota

const tetrahedronType = 4

// meshVolume is a 3D geometric entity and its single physical group.
// Parse-time only: after assembly, elements carry the resolved group
// tag directly.
type meshVolume struct {
	tag   int
	group int
}

// physicalGroup is a 3D Gmsh physical group.
type physicalGroup struct {
	tag  int
	name string
}

// tetElement is a raw tetrahedron line, still annotated with the tag
// of its owning volume entity.
type tetElement struct {
	tag    int
	volume int
	a      int
	b      int
	c      int
	d      int
}

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".msh":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ReadMsh41(file)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// ReadMsh41 reads a Gmsh MSH 4.1 ASCII stream end-to-end, validates
// it, and returns the assembled mesh with its neighbour table built.
// No partial mesh is returned on failure.
func ReadMsh41(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	version, err := parseFormatHeader(scanner)
	if err != nil {
		return nil, err
	}
	switch version {
	case v41:
		return parseBody41(scanner)
	}
	return nil, fmt.Errorf("%w: unroutable msh version", ErrMalformedHeader)
}

// nextLine returns the next input line with trailing whitespace
// trimmed. An underlying stream failure propagates as-is; a clean EOF
// becomes ErrTruncatedInput for the caller to contextualize.
func nextLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrTruncatedInput
	}
	return strings.TrimRight(scanner.Text(), " \t\r"), nil
}

// nextNonEmptyLine skips blank lines.
func nextNonEmptyLine(scanner *bufio.Scanner) (string, error) {
	for {
		line, err := nextLine(scanner)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// skipSection consumes lines until the end marker. Used for
// forward-compatibility with sections this reader does not interpret.
func skipSection(scanner *bufio.Scanner, endMarker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w while looking for %s", ErrTruncatedInput, endMarker)
}

// expectEndMarker requires the section's $End line. A wrong line or
// EOF here is a structural violation of the section.
func expectEndMarker(scanner *bufio.Scanner, marker string) error {
	line, err := nextNonEmptyLine(scanner)
	if err != nil && !errors.Is(err, ErrTruncatedInput) {
		return err
	}
	if err != nil || strings.TrimSpace(line) != marker {
		return fmt.Errorf("%w: expected %s", mesh.ErrMalformedMesh, marker)
	}
	return nil
}

// parseFormatHeader reads the leading $MeshFormat section and gates on
// version 4.1, ASCII encoding, and 8-byte size_t.
func parseFormatHeader(scanner *bufio.Scanner) (mshVersion, error) {
	line, err := nextNonEmptyLine(scanner)
	if errors.Is(err, ErrTruncatedInput) {
		return 0, fmt.Errorf("%w: missing $MeshFormat", ErrMalformedHeader)
	}
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(line) != "$MeshFormat" {
		return 0, fmt.Errorf("%w: expected $MeshFormat, got `%s`", ErrMalformedHeader, line)
	}

	line, err = nextNonEmptyLine(scanner)
	if err != nil {
		return 0, fmt.Errorf("%w: missing format line", ErrMalformedHeader)
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, fmt.Errorf("%w: format line needs version, binary flag and size_t width", ErrMalformedHeader)
	}

	version := fields[0]
	if version != "4.1" {
		return 0, fmt.Errorf("%w `%s`, the only supported version is 4.1", ErrUnsupportedVersion, version)
	}
	binaryFlag, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad binary flag `%s`", ErrMalformedHeader, fields[1])
	}
	if binaryFlag != 0 {
		if binaryFlag == 1 {
			return 0, fmt.Errorf("%w: binary msh files are unsupported, please convert this file to ascii and try again", ErrUnsupportedEncoding)
		}
		return 0, fmt.Errorf("%w: bad binary flag %d", ErrMalformedHeader, binaryFlag)
	}
	sizeT, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("%w: bad size_t width `%s`", ErrMalformedHeader, fields[2])
	}
	if sizeT != 8 {
		return 0, fmt.Errorf("%w: msh file size_t must be 8, got %d", ErrUnsupportedEncoding, sizeT)
	}

	line, err = nextNonEmptyLine(scanner)
	if err != nil || strings.TrimSpace(line) != "$EndMeshFormat" {
		return 0, fmt.Errorf("%w: expected $EndMeshFormat", ErrMalformedHeader)
	}
	return v41, nil
}

// parseBody41 dispatches on section markers after the header. Unknown
// sections are skipped to their $End marker; a second $MeshFormat
// stops the body parse (multi-mesh files carry on past our mesh).
func parseBody41(scanner *bufio.Scanner) (*mesh.Mesh, error) {
	var (
		volumes  []meshVolume
		groups   []physicalGroup
		nodes    []mesh.Node
		elements []tetElement
		err      error
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "$MeshFormat" {
			break
		}
		switch {
		case line == "$Entities":
			if volumes, err = parseEntities(scanner); err != nil {
				return nil, fmt.Errorf("$Entities section: %w", err)
			}
		case line == "$PhysicalNames":
			if groups, err = parseGroups(scanner); err != nil {
				return nil, fmt.Errorf("$PhysicalNames section: %w", err)
			}
		case line == "$Nodes":
			if nodes, err = parseNodes(scanner); err != nil {
				return nil, fmt.Errorf("$Nodes section: %w", err)
			}
		case line == "$Elements":
			if elements, err = parseElements(scanner); err != nil {
				return nil, fmt.Errorf("$Elements section: %w", err)
			}
		case strings.HasPrefix(line, "$End"):
			// stray end marker, already consumed by its section
		case strings.HasPrefix(line, "$"):
			if err = skipSection(scanner, "$End"+line[1:]); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return assemble(volumes, groups, nodes, elements)
}

// parseEntities reads the $Entities section, returning only the 3D
// volume entities and their physical group assignments. Lower
// dimensional entities carry no material information for a
// tetrahedral-only mesh and are skipped without interpretation.
func parseEntities(scanner *bufio.Scanner) ([]meshVolume, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	counts := strings.Fields(header)
	if len(counts) < 4 {
		return nil, fmt.Errorf("%w: entity counts line needs four values", mesh.ErrMalformedMesh)
	}
	var n [4]int
	for i := 0; i < 4; i++ {
		n[i], err = strconv.Atoi(counts[i])
		if err != nil || n[i] < 0 {
			return nil, fmt.Errorf("%w: bad entity count `%s`", mesh.ErrMalformedMesh, counts[i])
		}
	}
	numVolumes := n[3]
	if numVolumes == 0 {
		return nil, fmt.Errorf("%w: no volumes found", mesh.ErrMalformedMesh)
	}

	// skip point, curve and surface entities, one per line
	for i := 0; i < n[0]+n[1]+n[2]; i++ {
		if _, err := nextLine(scanner); err != nil {
			return nil, err
		}
	}

	volumes := make([]meshVolume, 0, numVolumes)
	for {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "$EndEntities" {
			break
		}
		fields := strings.Fields(line)
		// tag, bbox (6 values), numGroups
		if len(fields) < 8 {
			return nil, fmt.Errorf("%w: 3d volume parsing failed", mesh.ErrMalformedMesh)
		}
		tag, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad volume tag `%s`", mesh.ErrMalformedMesh, fields[0])
		}
		for i := 1; i <= 6; i++ {
			if _, err := strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, fmt.Errorf("%w: volume %d has bad bounding box value `%s`", mesh.ErrMalformedMesh, tag, fields[i])
			}
		}
		numGroups, err := strconv.Atoi(fields[7])
		if err != nil {
			return nil, fmt.Errorf("%w: volume %d has bad physical group count `%s`", mesh.ErrMalformedMesh, tag, fields[7])
		}
		if numGroups == 0 {
			return nil, fmt.Errorf("%w: volume %d was not assigned a physical group", mesh.ErrMalformedMesh, tag)
		}
		if numGroups != 1 {
			return nil, fmt.Errorf("%w: volume %d has more than one physical group", mesh.ErrMalformedMesh, tag)
		}
		if len(fields) < 9 {
			return nil, fmt.Errorf("%w: volume %d is missing its physical group tag", mesh.ErrMalformedMesh, tag)
		}
		group, err := strconv.Atoi(fields[8])
		if err != nil {
			return nil, fmt.Errorf("%w: volume %d has bad physical group tag `%s`", mesh.ErrMalformedMesh, tag, fields[8])
		}
		// trailing bounding-surface fields are ignored
		volumes = append(volumes, meshVolume{tag: tag, group: group})
	}

	if len(volumes) != numVolumes {
		return nil, fmt.Errorf("%w: expected %d volumes but got %d", mesh.ErrMalformedMesh, numVolumes, len(volumes))
	}
	seen := make(map[int]bool, len(volumes))
	for _, v := range volumes {
		if seen[v.tag] {
			return nil, fmt.Errorf("%w: found duplicate volume tag %d", mesh.ErrMalformedMesh, v.tag)
		}
		seen[v.tag] = true
	}
	return volumes, nil
}

// parseGroups reads $PhysicalNames, keeping only the 3D groups. The
// group name is everything between the first and last double quote on
// the line.
func parseGroups(scanner *bufio.Scanner) ([]physicalGroup, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	// total count across all dimensions, not just 3D
	if _, err := strconv.Atoi(strings.TrimSpace(header)); err != nil {
		return nil, fmt.Errorf("%w: bad physical name count `%s`", mesh.ErrMalformedMesh, header)
	}

	var groups []physicalGroup
	for {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "$EndPhysicalNames" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: physical group parsing failed: %s", mesh.ErrMalformedMesh, line)
		}
		dim, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: physical group parsing failed: %s", mesh.ErrMalformedMesh, line)
		}
		tag, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: physical group parsing failed: %s", mesh.ErrMalformedMesh, line)
		}
		// only 3D groups name media
		if dim != 3 {
			continue
		}
		start := strings.IndexByte(line, '"')
		if start == -1 {
			return nil, fmt.Errorf("%w: physical group names must be quoted: %s", mesh.ErrMalformedMesh, line)
		}
		end := strings.LastIndexByte(line, '"')
		if end == start {
			return nil, fmt.Errorf("%w: couldn't find closing quote for physical group: %s", mesh.ErrMalformedMesh, line)
		}
		if end-start == 1 {
			return nil, fmt.Errorf("%w: empty physical group name: %s", mesh.ErrMalformedMesh, line)
		}
		groups = append(groups, physicalGroup{tag: tag, name: line[start+1 : end]})
	}

	seen := make(map[int]bool, len(groups))
	for _, g := range groups {
		if seen[g.tag] {
			return nil, fmt.Errorf("%w: found duplicate physical group tag %d", mesh.ErrMalformedMesh, g.tag)
		}
		seen[g.tag] = true
	}
	return groups, nil
}

// parseNodeBlock reads one entity block of the $Nodes section: a
// sub-header, the block's node tags, then the matching coordinates.
func parseNodeBlock(scanner *bufio.Scanner) ([]mesh.Node, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: node block header needs dimension, entity, parametric flag and count", mesh.ErrMalformedMesh)
	}
	dim, err0 := strconv.Atoi(fields[0])
	entity, err1 := strconv.Atoi(fields[1])
	_, err2 := strconv.Atoi(fields[2])
	count, err3 := strconv.Atoi(fields[3])
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad node block header: %s", mesh.ErrMalformedMesh, header)
	}
	if dim < 0 || dim > 3 {
		return nil, fmt.Errorf("%w: node block for entity %d has dimension %d, expected 0, 1, 2, or 3", mesh.ErrMalformedMesh, entity, dim)
	}

	nodes := make([]mesh.Node, 0, count)
	for i := 0; i < count; i++ {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		tagFields := strings.Fields(line)
		if len(tagFields) < 1 {
			return nil, fmt.Errorf("%w: missing node tag for entity %d", mesh.ErrMalformedMesh, entity)
		}
		tag, err := strconv.Atoi(tagFields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad node tag `%s` for entity %d", mesh.ErrMalformedMesh, tagFields[0], entity)
		}
		nodes = append(nodes, mesh.Node{Tag: tag})
	}
	for i := 0; i < count; i++ {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: node coordinate parsing failed for entity %d", mesh.ErrMalformedMesh, entity)
		}
		var coords [3]float64
		for k := 0; k < 3; k++ {
			coords[k], err = strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: node coordinate parsing failed for entity %d", mesh.ErrMalformedMesh, entity)
			}
		}
		nodes[i].X, nodes[i].Y, nodes[i].Z = coords[0], coords[1], coords[2]
	}
	return nodes, nil
}

// parseNodes reads the whole $Nodes section and checks the declared
// totals, the end marker, and tag uniqueness.
func parseNodes(scanner *bufio.Scanner) ([]mesh.Node, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: missing metadata", mesh.ErrMalformedMesh)
	}
	numBlocks, err0 := strconv.Atoi(fields[0])
	numNodes, err1 := strconv.Atoi(fields[1])
	_, err2 := strconv.Atoi(fields[2])
	maxTag, err3 := strconv.ParseInt(fields[3], 10, 64)
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || numBlocks < 0 || numNodes < 0 {
		return nil, fmt.Errorf("%w: missing metadata", mesh.ErrMalformedMesh)
	}
	if maxTag > math.MaxInt32 {
		return nil, fmt.Errorf("%w: max node tag is too large (%d), limit is %d", mesh.ErrMalformedMesh, maxTag, math.MaxInt32)
	}

	nodes := make([]mesh.Node, 0, numNodes)
	for i := 0; i < numBlocks; i++ {
		blockNodes, err := parseNodeBlock(scanner)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, blockNodes...)
	}
	if len(nodes) != numNodes {
		return nil, fmt.Errorf("%w: expected %d nodes but read %d", mesh.ErrMalformedMesh, numNodes, len(nodes))
	}
	if err := expectEndMarker(scanner, "$EndNodes"); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.Tag] {
			return nil, fmt.Errorf("%w: found duplicate node tag %d", mesh.ErrMalformedMesh, n.Tag)
		}
		seen[n.Tag] = true
	}
	return nodes, nil
}

// parseElementBlock reads one entity block of the $Elements section.
// Non-3D blocks are consumed line-for-line and discarded. 3D blocks
// must contain linear tetrahedra: a volume meshed with any other 3D
// element type would silently lose mass during particle transport, so
// it is rejected outright.
func parseElementBlock(scanner *bufio.Scanner) ([]tetElement, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: element block header needs dimension, entity, type and count", mesh.ErrMalformedMesh)
	}
	dim, err0 := strconv.Atoi(fields[0])
	entity, err1 := strconv.Atoi(fields[1])
	elementType, err2 := strconv.Atoi(fields[2])
	count, err3 := strconv.Atoi(fields[3])
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad element block header: %s", mesh.ErrMalformedMesh, header)
	}
	if dim < 0 || dim > 3 {
		return nil, fmt.Errorf("%w: element block for entity %d has dimension %d, expected 0, 1, 2, or 3", mesh.ErrMalformedMesh, entity, dim)
	}
	if dim != 3 {
		for i := 0; i < count; i++ {
			if _, err := nextLine(scanner); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	if elementType != tetrahedronType {
		return nil, fmt.Errorf("%w: block for entity %d: non-tetrahedral type %d", ErrUnsupportedElementType, entity, elementType)
	}

	elts := make([]tetElement, 0, count)
	for i := 0; i < count; i++ {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: element parsing failed for entity %d: %s", mesh.ErrMalformedMesh, entity, line)
		}
		var vals [5]int
		for k := 0; k < 5; k++ {
			vals[k], err = strconv.Atoi(fields[k])
			if err != nil || vals[k] < 0 {
				return nil, fmt.Errorf("%w: element parsing failed for entity %d: %s", mesh.ErrMalformedMesh, entity, line)
			}
		}
		elts = append(elts, tetElement{
			tag:    vals[0],
			volume: entity,
			a:      vals[1],
			b:      vals[2],
			c:      vals[3],
			d:      vals[4],
		})
	}
	return elts, nil
}

// parseElements reads the whole $Elements section. At least one
// tetrahedron must survive the block filter.
func parseElements(scanner *bufio.Scanner) ([]tetElement, error) {
	header, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: missing metadata", mesh.ErrMalformedMesh)
	}
	numBlocks, err0 := strconv.Atoi(fields[0])
	_, err1 := strconv.Atoi(fields[1])
	_, err2 := strconv.Atoi(fields[2])
	_, err3 := strconv.Atoi(fields[3])
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || numBlocks < 0 {
		return nil, fmt.Errorf("%w: missing metadata", mesh.ErrMalformedMesh)
	}

	var elts []tetElement
	for i := 0; i < numBlocks; i++ {
		blockElts, err := parseElementBlock(scanner)
		if err != nil {
			return nil, err
		}
		elts = append(elts, blockElts...)
	}
	// the declared total counts all dimensions, so it can't be checked
	// against the tetrahedra alone
	if err := expectEndMarker(scanner, "$EndElements"); err != nil {
		return nil, err
	}
	if len(elts) == 0 {
		return nil, fmt.Errorf("%w: no tetrahedral elements were read", mesh.ErrMalformedMesh)
	}

	seen := make(map[int]bool, len(elts))
	for _, e := range elts {
		if seen[e.tag] {
			return nil, fmt.Errorf("%w: found duplicate tetrahedron tag %d", mesh.ErrMalformedMesh, e.tag)
		}
		seen[e.tag] = true
	}
	return elts, nil
}

// assemble cross-links the four parsed sections into a Mesh, resolving
// every element's volume tag to its physical group, and builds the
// neighbour table.
func assemble(volumes []meshVolume, groups []physicalGroup, nodes []mesh.Node, elements []tetElement) (*mesh.Mesh, error) {
	if len(volumes) == 0 {
		return nil, fmt.Errorf("%w: no volumes were parsed", mesh.ErrMalformedMesh)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes were parsed", mesh.ErrMalformedMesh)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no physical groups were parsed", mesh.ErrMalformedMesh)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: no tetrahedrons were parsed", mesh.ErrMalformedMesh)
	}

	// the neighbour builder indexes a dense array by tag-1, so tags
	// must cover 1..len(nodes) exactly; uniqueness is already known
	maxTag := 0
	for _, n := range nodes {
		if n.Tag < 1 {
			return nil, fmt.Errorf("%w: node tag %d, tags must start at 1", mesh.ErrMalformedMesh, n.Tag)
		}
		if n.Tag > maxTag {
			maxTag = n.Tag
		}
	}
	if maxTag != len(nodes) {
		return nil, fmt.Errorf("%w: node tags are not contiguous, %d nodes but max tag %d", mesh.ErrMalformedMesh, len(nodes), maxTag)
	}

	groupTags := make(map[int]bool, len(groups))
	for _, g := range groups {
		groupTags[g.tag] = true
	}
	volumeGroups := make(map[int]int, len(volumes))
	for _, v := range volumes {
		if !groupTags[v.group] {
			return nil, fmt.Errorf("%w: volume %d had unknown physical group tag %d", ErrDanglingReference, v.tag, v.group)
		}
		volumeGroups[v.tag] = v.group
	}

	tets := make([]mesh.Tetrahedron, 0, len(elements))
	usedGroups := make(map[int]bool, len(groups))
	for _, e := range elements {
		group, ok := volumeGroups[e.volume]
		if !ok {
			return nil, fmt.Errorf("%w: tetrahedron %d had unknown volume tag %d", ErrDanglingReference, e.tag, e.volume)
		}
		usedGroups[group] = true
		for _, n := range [4]int{e.a, e.b, e.c, e.d} {
			if n < 1 || n > maxTag {
				return nil, fmt.Errorf("%w: tetrahedron %d references unknown node %d", mesh.ErrMalformedMesh, e.tag, n)
			}
		}
		tet, err := mesh.NewTetrahedron(group, e.a, e.b, e.c, e.d)
		if err != nil {
			return nil, fmt.Errorf("tetrahedron %d: %w", e.tag, err)
		}
		tets = append(tets, tet)
	}

	// only groups referenced by at least one tetrahedron become media
	media := make([]mesh.Medium, 0, len(groups))
	for _, g := range groups {
		if usedGroups[g.tag] {
			media = append(media, mesh.Medium{Tag: g.tag, Name: g.name})
		}
	}

	return mesh.NewMesh(nodes, tets, media)
}
