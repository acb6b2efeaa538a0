package readers

import "errors"

// Parse failure kinds. Every parse failure returned by the reader wraps
// one of these (or mesh.ErrInvalidElement / mesh.ErrMalformedMesh)
// together with a message naming the section and, where available, the
// offending tag. Errors from opening the file or reading the stream,
// and ReadMeshFile's unsupported-extension error, wrap none of them.
var (
	// ErrMalformedHeader reports a missing or malformed $MeshFormat
	// section.
	ErrMalformedHeader = errors.New("malformed mesh file header")

	// ErrUnsupportedVersion reports a format version other than 4.1.
	ErrUnsupportedVersion = errors.New("unsupported msh version")

	// ErrUnsupportedEncoding reports a binary-encoded file or an
	// incompatible size_t width.
	ErrUnsupportedEncoding = errors.New("unsupported msh encoding")

	// ErrUnsupportedElementType reports a 3D element block with a
	// non-tetrahedral element type.
	ErrUnsupportedElementType = errors.New("unsupported element type")

	// ErrDanglingReference reports an element referencing an unknown
	// volume entity, or a volume referencing an unknown physical group.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrTruncatedInput reports input that ended before a section's
	// $End marker.
	ErrTruncatedInput = errors.New("unexpected end of input")
)
