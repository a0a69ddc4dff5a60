// Package soft3d is a software 3D rasterizer for Go.
//
// # Overview
//
// soft3d turns triangle meshes into pixels without any graphics API. It
// carries its own transform stack (vectors, 4x4 matrices, view and
// projection builders), projects vertices with a perspective divide, and
// fills triangles with a scanline algorithm and a per-pixel depth buffer.
//
// # Quick Start
//
//	import "github.com/gogpu/soft3d"
//
//	dev, err := soft3d.NewDevice(640, 480, soft3d.WithBackground(soft3d.Black))
//	if err != nil {
//	    return err
//	}
//	cam := soft3d.NewCamera(soft3d.V3(0, 0, 10), soft3d.Zero3())
//	cube := soft3d.NewCube("Cube", 2)
//
//	dev.Clear()
//	dev.Render(cam, []*soft3d.Mesh{cube})
//	dev.ColorBuffer().SavePNG("cube.png")
//
// # Conventions
//
// Matrices are row-major and transform row vectors: v' = v * M, so
// A.Multiply(B) applies A first. The world is left-handed with +Y up and
// the camera looking down +Z. Screen space has its origin at the top-left
// corner with Y growing downward; the projected Z is kept for the depth
// test, where smaller is nearer.
//
// # Shading
//
// Faces are flat-filled with a gray ramp: face i of a mesh with n faces
// gets intensity 0.25 + 0.75*i/n. There is no lighting, texturing or
// anti-aliasing.
//
// # Parallelism
//
// WithWorkers enables tiled rasterization: projected triangles are binned
// into 64x64 screen tiles and each tile is filled by one worker. The
// output is byte-identical to the single-threaded path.
//
// # Related Packages
//
//   - importer: Babylon JSON and YAML scene import
//   - surface: PNG, terminal and in-memory frame outputs
//   - driver: the Clear, Update, Render, Present frame loop
//   - integration/ebitenview: a desktop window for a frame loop
package soft3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
