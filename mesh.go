package soft3d

import (
	"errors"
	"fmt"
)

// ErrFaceIndexOutOfRange is returned when a face references a vertex that
// does not exist.
var ErrFaceIndexOutOfRange = errors.New("soft3d: face index out of range")

// FaceIndexError describes the first face found with an out-of-range index.
type FaceIndexError struct {
	Mesh     string
	Face     int
	Index    int
	Vertices int
}

func (e *FaceIndexError) Error() string {
	return fmt.Sprintf("soft3d: mesh %q face %d: vertex index %d not in [0, %d)",
		e.Mesh, e.Face, e.Index, e.Vertices)
}

// Unwrap returns ErrFaceIndexOutOfRange.
func (e *FaceIndexError) Unwrap() error {
	return ErrFaceIndexOutOfRange
}

// Face is a triangle given by three indices into a mesh's vertex list.
// Index order defines winding; winding is not used for culling.
type Face struct {
	A, B, C int
}

// Mesh is a renderable object: local-space vertices, triangle faces and a
// rotation/position transform.
//
// Position and Rotation may be changed between frames to animate the mesh.
// Vertices and Faces must not change after construction.
type Mesh struct {
	Name string

	// Position is the world-space offset applied after rotation.
	Position Vector3

	// Rotation holds Euler angles in radians about X, Y and Z.
	Rotation Vector3

	Vertices []Vector3
	Faces    []Face
}

// NewMesh creates a mesh and validates that every face index is within
// bounds of the vertex list.
func NewMesh(name string, vertices []Vector3, faces []Face) (*Mesh, error) {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Faces:    faces,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every face index is in [0, len(Vertices)).
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range [3]int{f.A, f.B, f.C} {
			if idx < 0 || idx >= n {
				return &FaceIndexError{Mesh: m.Name, Face: i, Index: idx, Vertices: n}
			}
		}
	}
	return nil
}

// WorldMatrix returns the mesh's model-to-world transform: rotation
// (yaw = Rotation.Y, pitch = Rotation.X, roll = Rotation.Z) followed by
// translation to Position.
func (m *Mesh) WorldMatrix() Matrix {
	return RotationYawPitchRoll(m.Rotation.Y, m.Rotation.X, m.Rotation.Z).
		Multiply(Translation(m.Position.X, m.Position.Y, m.Position.Z))
}

// NewCube returns an axis-aligned cube centered on the origin with the
// given edge length (8 vertices, 12 faces).
func NewCube(name string, size float64) *Mesh {
	h := size / 2
	return &Mesh{
		Name: name,
		Vertices: []Vector3{
			{-h, h, h},
			{h, h, h},
			{-h, -h, h},
			{h, -h, h},
			{-h, h, -h},
			{h, h, -h},
			{h, -h, -h},
			{-h, -h, -h},
		},
		Faces: []Face{
			{0, 1, 2},
			{1, 2, 3},
			{1, 3, 6},
			{1, 5, 6},
			{0, 1, 4},
			{1, 4, 5},
			{2, 3, 7},
			{3, 6, 7},
			{0, 2, 7},
			{0, 4, 7},
			{4, 5, 6},
			{4, 6, 7},
		},
	}
}

// Camera is a viewpoint in world space looking at Target.
type Camera struct {
	Position Vector3
	Target   Vector3
}

// NewCamera creates a camera at position looking at target.
func NewCamera(position, target Vector3) *Camera {
	return &Camera{Position: position, Target: target}
}

// ViewMatrix returns the left-handed view matrix for the camera.
func (c *Camera) ViewMatrix(up Vector3) Matrix {
	return LookAtLH(c.Position, c.Target, up)
}

// Scene is the render context handed to a Device: exactly one camera and
// an ordered list of meshes. It is owned by the frame driver.
type Scene struct {
	Camera Camera
	Meshes []*Mesh
}

// NewScene creates a scene.
func NewScene(camera Camera, meshes ...*Mesh) *Scene {
	return &Scene{Camera: camera, Meshes: meshes}
}

// FaceCount returns the total number of faces across all meshes.
func (s *Scene) FaceCount() int {
	n := 0
	for _, m := range s.Meshes {
		if m != nil {
			n += len(m.Faces)
		}
	}
	return n
}
