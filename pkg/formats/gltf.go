package formats

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/tanview/pkg/mesh"
)

// ErrNoGLTFMeshes is returned when a glTF document has no triangle primitives.
var ErrNoGLTFMeshes = errors.New("glTF has no triangle meshes")

// LoadGLTF opens a .gltf or .glb file and converts every triangle primitive
// into a mesh. Primitives without indices get a sequential index buffer.
func LoadGLTF(path string) ([]*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glTF: %w", err)
	}
	return convertGLTF(doc)
}

func convertGLTF(doc *gltf.Document) ([]*mesh.Mesh, error) {
	var meshes []*mesh.Mesh
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			m, err := convertPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			m.Name = gm.Name
			if len(gm.Primitives) > 1 {
				m.Name = fmt.Sprintf("%s.%d", gm.Name, pi)
			}
			meshes = append(meshes, m)
		}
	}
	if len(meshes) == 0 {
		return nil, ErrNoGLTFMeshes
	}
	return meshes, nil
}

func convertPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*mesh.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	m := &mesh.Mesh{Positions: make([]float32, 0, len(positions)*3)}
	for _, p := range positions {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		m.Normals = make([]float32, 0, len(normals)*3)
		for _, n := range normals {
			m.Normals = append(m.Normals, n[0], n[1], n[2])
		}
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read texcoords: %w", err)
		}
		// glTF puts v=0 at the top of the image; meshes use v=0 at the bottom like OBJ.
		m.UVs = make([]float32, 0, len(uvs)*2)
		for _, uv := range uvs {
			m.UVs = append(m.UVs, uv[0], 1-uv[1])
		}
	}

	if prim.Indices != nil {
		m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	return m, nil
}
