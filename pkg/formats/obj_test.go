package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const quadOBJ = `# unit quad
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Quad(t *testing.T) {
	m, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if m.Name != "Quad" {
		t.Errorf("expected name Quad, got %q", m.Name)
	}
	if m.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.TriangleCount())
	}

	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range wantIdx {
		if m.Indices[i] != idx {
			t.Errorf("indices[%d] = %d, want %d", i, m.Indices[i], idx)
		}
	}
	if m.UVs[4] != 1 || m.UVs[5] != 1 {
		t.Errorf("vertex 2 uv = (%f, %f), want (1, 1)", m.UVs[4], m.UVs[5])
	}
	if m.Normals[11] != 1 {
		t.Errorf("vertex 3 normal z = %f, want 1", m.Normals[11])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("parsed mesh does not validate: %v", err)
	}
}

func TestParseOBJ_SplitsSeams(t *testing.T) {
	// Position 1 is used with two different texture coordinates.
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vt 0 0
vt 1 0
vt 0 1
vt 1 1
f 1/1 2/2 3/3
f 2/4 4/4 3/3
`
	m, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if m.VertexCount() != 5 {
		t.Errorf("expected 5 unique vertices, got %d", m.VertexCount())
	}
	if m.HasNormals() {
		t.Error("expected no normals when file declares none")
	}
	if !m.HasUVs() {
		t.Error("expected uvs")
	}
}

func TestParseOBJ_NegativeAndPositionOnly(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", m.TriangleCount())
	}
	if m.HasUVs() || m.HasNormals() {
		t.Error("expected position-only mesh")
	}
	if m.Positions[3] != 1 {
		t.Errorf("vertex 1 x = %f, want 1", m.Positions[3])
	}
}

func TestParseOBJ_SingleComponentTexCoord(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25
vt 0.75
vt 0.5 1 0
f 1/1 2/2 3/3
`
	m, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	want := []float32{0.25, 0, 0.75, 0, 0.5, 1}
	for i, w := range want {
		if m.UVs[i] != w {
			t.Errorf("uvs = %v, want %v", m.UVs, want)
			break
		}
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "# nothing\n", ErrEmptyOBJ},
		{"no faces", "v 0 0 0\n", ErrEmptyOBJ},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidOBJFace},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrOBJIndexOutOfRange},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrOBJIndexOutOfRange},
		{"bad float", "v 0 zero 0\n", ErrInvalidOBJNumber},
		{"short vertex", "v 0 0\n", ErrInvalidOBJNumber},
		{"empty texcoord", "vt\n", ErrInvalidOBJNumber},
		{"bad texcoord v", "vt 0.5 up\n", ErrInvalidOBJNumber},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n", ErrInvalidOBJNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMesh_OBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	meshes, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].Name != "tri" {
		t.Errorf("expected name from file, got %q", meshes[0].Name)
	}
}

func TestLoadMesh_Unsupported(t *testing.T) {
	if _, err := LoadMesh("model.fbx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
