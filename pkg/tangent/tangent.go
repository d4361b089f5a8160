// Package tangent computes per-vertex tangent vectors for normal mapping.
package tangent

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tanview/pkg/mesh"
)

// Generation errors.
var (
	ErrMissingAttributes = errors.New("mesh has no normals or texture coordinates")
	ErrDegenerateUV      = errors.New("degenerate UV mapping")
)

// Generate computes one tangent per vertex from flat position, normal, uv and
// index buffers. Each triangle's tangent is orthogonalized against the normal
// of every vertex it touches and written to that vertex, replacing whatever an
// earlier triangle wrote. Vertices referenced by no triangle stay zero.
//
// Triangles with collinear UVs divide by zero and produce non-finite tangents.
// Buffers are not validated; an out-of-range index panics.
func Generate(positions, normals, uvs []float32, indices []uint32) []float32 {
	tangents := make([]float32, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		t, _ := triangleTangent(positions, uvs, tri)
		t = normalizeOrZero(t)

		for _, v := range tri {
			n := vec3At(normals, v)
			store(tangents, v, orthogonalize(t, n))
		}
	}

	return tangents
}

// triangleTangent returns the unnormalized tangent of a triangle and the
// determinant of its UV delta matrix.
func triangleTangent(positions, uvs []float32, tri [3]uint32) (mgl32.Vec3, float32) {
	p1 := vec3At(positions, tri[0])
	e1 := vec3At(positions, tri[1]).Sub(p1)
	e2 := vec3At(positions, tri[2]).Sub(p1)

	uv1 := vec2At(uvs, tri[0])
	d1 := vec2At(uvs, tri[1]).Sub(uv1)
	d2 := vec2At(uvs, tri[2]).Sub(uv1)

	det := d1.X()*d2.Y() - d1.Y()*d2.X()
	id := 1 / det

	return e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(id), det
}

// orthogonalize removes the component of t along n and normalizes the rest.
func orthogonalize(t, n mgl32.Vec3) mgl32.Vec3 {
	return normalizeOrZero(t.Sub(n.Mul(t.Dot(n))))
}

// normalizeOrZero divides by the length only when it is positive, so zero
// vectors stay zero and NaN vectors stay NaN.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

func vec3At(buf []float32, i uint32) mgl32.Vec3 {
	return mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

func vec2At(buf []float32, i uint32) mgl32.Vec2 {
	return mgl32.Vec2{buf[i*2], buf[i*2+1]}
}

func store(buf []float32, i uint32, v mgl32.Vec3) {
	buf[i*3] = v[0]
	buf[i*3+1] = v[1]
	buf[i*3+2] = v[2]
}

// GenerateWith validates m and computes tangents according to opts.
func GenerateWith(m *mesh.Mesh, opts Options) ([]float32, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tangents for %q: %w", m.Name, err)
	}
	if !m.HasNormals() || !m.HasUVs() {
		return nil, fmt.Errorf("tangents for %q: %w", m.Name, ErrMissingAttributes)
	}

	if opts.Mode == ModeOverwrite && opts.Degenerate == DegeneratePropagate {
		return Generate(m.Positions, m.Normals, m.UVs, m.Indices), nil
	}

	tangents := make([]float32, len(m.Positions))
	var sums []mgl32.Vec3
	if opts.Mode == ModeAccumulate {
		sums = make([]mgl32.Vec3, m.VertexCount())
	}

	for i := 0; i < m.TriangleCount(); i++ {
		tri := [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
		t, det := triangleTangent(m.Positions, m.UVs, tri)
		if det == 0 {
			switch opts.Degenerate {
			case DegenerateSkip:
				continue
			case DegenerateReject:
				return nil, fmt.Errorf("tangents for %q: triangle %d: %w", m.Name, i, ErrDegenerateUV)
			}
		}

		if opts.Mode == ModeAccumulate {
			for _, v := range tri {
				sums[v] = sums[v].Add(t)
			}
			continue
		}

		t = normalizeOrZero(t)
		for _, v := range tri {
			store(tangents, v, orthogonalize(t, vec3At(m.Normals, v)))
		}
	}

	for v, sum := range sums {
		store(tangents, uint32(v), orthogonalize(sum, vec3At(m.Normals, uint32(v))))
	}

	return tangents, nil
}
