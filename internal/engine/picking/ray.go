// Package picking provides ray casting against meshes.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tanview/pkg/mesh"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: nearWorld, Direction: normalize(farWorld.Sub(nearWorld))}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	// Perspective divide
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

// Transform returns the ray in the space m maps to. The direction is
// renormalized, so distances along the result are in the new space's units.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: normalize(mgl32.TransformNormal(r.Direction, m)),
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(lo, hi mgl32.Vec3) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < lo[axis] || r.Origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (hi[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to the triangle abc and the
// barycentric weights of b and c at the hit. Both faces are hit.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t, u, v float32, hit bool) {
	const eps = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, 0, 0, false // Ray parallel to triangle
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	v = r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, 0, 0, false // Intersection behind ray origin
	}
	return t, u, v, true
}

// Hit describes where a ray meets a mesh.
type Hit struct {
	Triangle int        // its indices start at Triangle*3
	Vertex   uint32     // the triangle corner closest to the hit
	Point    mgl32.Vec3 // in the mesh's local space
	Distance float32    // along the ray, in local units
}

// IntersectMesh finds the closest triangle of m hit by r. r must be in the
// mesh's local space.
func IntersectMesh(r Ray, m *mesh.Mesh) (Hit, bool) {
	lo, hi := m.Bounds()
	if _, ok := r.IntersectAABB(lo, hi); !ok {
		return Hit{}, false
	}

	best := Hit{Distance: gomath.MaxFloat32}
	found := false
	for tri := 0; tri < m.TriangleCount(); tri++ {
		idx := m.Indices[tri*3 : tri*3+3]
		t, u, v, ok := r.IntersectTriangle(m.Position(idx[0]), m.Position(idx[1]), m.Position(idx[2]))
		if !ok || t >= best.Distance {
			continue
		}

		// Largest barycentric weight marks the nearest corner.
		corner := idx[0]
		if w := 1 - u - v; u > w && u >= v {
			corner = idx[1]
		} else if v > w && v > u {
			corner = idx[2]
		}
		best = Hit{Triangle: tri, Vertex: corner, Point: r.At(t), Distance: t}
		found = true
	}
	return best, found
}
