// Package mesh defines the flat vertex/index buffers shared by loaders,
// the tangent generator and the renderer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Validation errors.
var (
	ErrPositionCount     = errors.New("position buffer length is not a multiple of 3")
	ErrMismatchedBuffers = errors.New("vertex buffers are not index-aligned")
	ErrIndexCount        = errors.New("index buffer length is not a multiple of 3")
	ErrIndexOutOfRange   = errors.New("index out of range")
)

// Mesh holds index-aligned vertex attributes and a triangle list.
// Positions and Normals hold 3 floats per vertex, UVs hold 2.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// HasUVs reports whether the mesh carries texture coordinates.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0
}

// Validate checks buffer lengths and index ranges.
// Normals and UVs are optional, but when present they must match the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrPositionCount, len(m.Positions))
	}
	n := m.VertexCount()
	if m.HasNormals() && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrMismatchedBuffers, len(m.Normals)/3, n)
	}
	if m.HasUVs() && len(m.UVs) != n*2 {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrMismatchedBuffers, len(m.UVs)/2, n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrIndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i uint32) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// Bounds returns the axis-aligned bounding box of all positions.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := m.Position(0)
	hi := lo
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi
}

// ComputeNormals replaces Normals with smooth per-vertex normals: the
// area-weighted sum of adjacent face normals, normalized. Vertices that no
// non-degenerate triangle touches get a zero normal. Call Validate first.
func (m *Mesh) ComputeNormals() {
	acc := make([]mgl32.Vec3, m.VertexCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0 := m.Position(i0)
		// Cross product length is twice the triangle area.
		n := m.Position(i1).Sub(p0).Cross(m.Position(i2).Sub(p0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}

	m.Normals = make([]float32, len(m.Positions))
	for i, n := range acc {
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		copy(m.Normals[i*3:i*3+3], n[:])
	}
}
