// Package formats loads meshes from Wavefront OBJ and glTF files.
package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/tanview/pkg/mesh"
)

// LoadMesh loads all meshes in the file at path, choosing the parser by extension.
func LoadMesh(path string) ([]*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		m, err := ParseOBJ(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return []*mesh.Mesh{m}, nil
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", filepath.Ext(path))
	}
}
