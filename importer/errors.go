package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMeshes is returned when a scene has no meshes.
	ErrNoMeshes = errors.New("importer: scene has no meshes")

	// ErrMalformedPositions is returned when a positions array length is
	// not a multiple of 3.
	ErrMalformedPositions = errors.New("importer: positions length is not a multiple of 3")

	// ErrMalformedIndices is returned when an indices array length is not a
	// multiple of 3 or holds a non-integer index.
	ErrMalformedIndices = errors.New("importer: malformed indices")

	// ErrMalformedVector is returned when position or rotation does not
	// have exactly 3 components.
	ErrMalformedVector = errors.New("importer: vector must have 3 components")

	// ErrUnknownFormat is returned by ImportFile for unrecognized extensions.
	ErrUnknownFormat = errors.New("importer: unknown scene format")
)

// ImportError reports which mesh of a scene could not be converted.
type ImportError struct {
	Mesh  string // mesh name, possibly empty
	Index int    // position of the mesh in the scene
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importer: mesh %d (%q): %v", e.Index, e.Mesh, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
