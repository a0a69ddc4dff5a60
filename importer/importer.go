// Package importer decodes scene descriptions into soft3d meshes.
//
// The JSON form is the subset of the Babylon scene format written by common
// exporters:
//
//	{
//	  "meshes": [
//	    {
//	      "name": "Cube",
//	      "position": [0, 0, 0],
//	      "rotation": [0, 0, 0],
//	      "positions": [x0, y0, z0, x1, y1, z1, ...],
//	      "indices": [a0, b0, c0, a1, b1, c1, ...],
//	      "uvCount": 0
//	    }
//	  ]
//	}
//
// The YAML form uses the same keys. Any other fields are ignored.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/soft3d"
)

type sceneDoc struct {
	Meshes []meshDoc `json:"meshes" yaml:"meshes"`
}

type meshDoc struct {
	Name      string    `json:"name" yaml:"name"`
	Position  []float64 `json:"position" yaml:"position"`
	Rotation  []float64 `json:"rotation" yaml:"rotation"`
	Positions []float64 `json:"positions" yaml:"positions"`
	Indices   []float64 `json:"indices" yaml:"indices"`
	UVCount   int       `json:"uvCount" yaml:"uvCount"`
}

// Import decodes a JSON scene and returns its meshes in document order.
func Import(data []byte) ([]*soft3d.Mesh, error) {
	var doc sceneDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("importer: decode json: %w", err)
	}
	return build(&doc)
}

// ImportYAML decodes a YAML scene with the same schema as Import.
func ImportYAML(data []byte) ([]*soft3d.Mesh, error) {
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("importer: decode yaml: %w", err)
	}
	return build(&doc)
}

// ImportFile reads path and decodes it according to its extension:
// .babylon and .json use Import, .yaml and .yml use ImportYAML.
func ImportFile(path string) ([]*soft3d.Mesh, error) {
	var decode func([]byte) ([]*soft3d.Mesh, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".babylon", ".json":
		decode = Import
	case ".yaml", ".yml":
		decode = ImportYAML
	default:
		return nil, fmt.Errorf("importer: %s: %w %q", path, ErrUnknownFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: read scene: %w", err)
	}
	meshes, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	soft3d.Logger().Info("soft3d: scene imported", "path", path, "meshes", len(meshes))
	return meshes, nil
}

func build(doc *sceneDoc) ([]*soft3d.Mesh, error) {
	if len(doc.Meshes) == 0 {
		return nil, ErrNoMeshes
	}
	meshes := make([]*soft3d.Mesh, 0, len(doc.Meshes))
	for i := range doc.Meshes {
		m, err := buildMesh(i, &doc.Meshes[i])
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func buildMesh(index int, md *meshDoc) (*soft3d.Mesh, error) {
	fail := func(err error) error {
		return &ImportError{Mesh: md.Name, Index: index, Err: err}
	}

	if len(md.Positions)%3 != 0 {
		return nil, fail(fmt.Errorf("%w: %d values", ErrMalformedPositions, len(md.Positions)))
	}
	if len(md.Indices)%3 != 0 {
		return nil, fail(fmt.Errorf("%w: %d values", ErrMalformedIndices, len(md.Indices)))
	}

	position, err := vector(md.Position)
	if err != nil {
		return nil, fail(fmt.Errorf("position: %w", err))
	}
	rotation, err := vector(md.Rotation)
	if err != nil {
		return nil, fail(fmt.Errorf("rotation: %w", err))
	}

	vertices := make([]soft3d.Vector3, len(md.Positions)/3)
	for i := range vertices {
		vertices[i] = soft3d.Vector3FromSlice(md.Positions, i*3)
	}

	faces := make([]soft3d.Face, len(md.Indices)/3)
	for i := range faces {
		var idx [3]int
		for k := range idx {
			v := md.Indices[i*3+k]
			if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
				return nil, fail(fmt.Errorf("%w: face %d has index %v", ErrMalformedIndices, i, v))
			}
			idx[k] = int(v)
		}
		faces[i] = soft3d.Face{A: idx[0], B: idx[1], C: idx[2]}
	}

	mesh, err := soft3d.NewMesh(md.Name, vertices, faces)
	if err != nil {
		return nil, fail(err)
	}
	mesh.Position = position
	mesh.Rotation = rotation

	soft3d.Logger().Debug("soft3d: mesh imported",
		"name", md.Name, "vertices", len(vertices), "faces", len(faces))
	return mesh, nil
}

// vector converts an optional 3-element array. A missing array is the zero
// vector.
func vector(v []float64) (soft3d.Vector3, error) {
	switch len(v) {
	case 0:
		return soft3d.Zero3(), nil
	case 3:
		return soft3d.V3(v[0], v[1], v[2]), nil
	}
	return soft3d.Vector3{}, fmt.Errorf("%w: %d values", ErrMalformedVector, len(v))
}
