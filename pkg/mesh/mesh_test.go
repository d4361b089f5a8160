package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func quad() *Mesh {
	return &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestCounts(t *testing.T) {
	m := quad()
	if m.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
	if !m.HasNormals() || !m.HasUVs() {
		t.Error("expected normals and uvs")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *Mesh)
		want   error
	}{
		{"valid", func(m *Mesh) {}, nil},
		{"no normals or uvs", func(m *Mesh) { m.Normals, m.UVs = nil, nil }, nil},
		{"ragged positions", func(m *Mesh) { m.Positions = m.Positions[:11] }, ErrPositionCount},
		{"short normals", func(m *Mesh) { m.Normals = m.Normals[:9] }, ErrMismatchedBuffers},
		{"short uvs", func(m *Mesh) { m.UVs = m.UVs[:6] }, ErrMismatchedBuffers},
		{"ragged indices", func(m *Mesh) { m.Indices = m.Indices[:5] }, ErrIndexCount},
		{"index out of range", func(m *Mesh) { m.Indices[4] = 4 }, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quad()
			tt.modify(m)
			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	m := quad()
	m.Positions[5] = -2
	lo, hi := m.Bounds()
	if lo != (mgl32.Vec3{0, 0, -2}) {
		t.Errorf("min = %v", lo)
	}
	if hi != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("max = %v", hi)
	}

	empty := &Mesh{}
	lo, hi = empty.Bounds()
	if lo != (mgl32.Vec3{}) || hi != (mgl32.Vec3{}) {
		t.Errorf("empty bounds = %v %v", lo, hi)
	}
}

func TestComputeNormals(t *testing.T) {
	// Two triangles folded along the Y axis: one in the XY plane facing +Z,
	// one in the YZ plane facing +X. The shared edge averages both.
	m := &Mesh{
		Positions: []float32{
			0, 0, 0,
			0, 1, 0,
			-1, 0, 0,
			0, 0, 1,
			5, 5, 5, // unreferenced
		},
		Indices: []uint32{0, 1, 2, 0, 1, 3},
	}
	m.ComputeNormals()

	if err := m.Validate(); err != nil {
		t.Fatalf("computed normals do not validate: %v", err)
	}

	normal := func(i int) mgl32.Vec3 {
		return mgl32.Vec3{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
	}
	h := float32(1 / math.Sqrt2)
	checks := []struct {
		vertex int
		want   mgl32.Vec3
	}{
		{0, mgl32.Vec3{h, 0, h}},
		{1, mgl32.Vec3{h, 0, h}},
		{2, mgl32.Vec3{0, 0, 1}},
		{3, mgl32.Vec3{1, 0, 0}},
		{4, mgl32.Vec3{}},
	}
	for _, c := range checks {
		if got := normal(c.vertex); !got.ApproxEqualThreshold(c.want, 1e-6) {
			t.Errorf("normal %d = %v, want %v", c.vertex, got, c.want)
		}
	}
}
