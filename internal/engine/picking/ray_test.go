package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tanview/pkg/mesh"
)

func TestScreenToRay_Center(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(50, 50, 100, 100, inv)
	if !r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("center ray direction = %v, want -Z", r.Direction)
	}
	if !mgl32.FloatEqualThreshold(r.Origin[2], 4.9, 1e-3) {
		t.Errorf("ray should start on the near plane, got %v", r.Origin)
	}
}

func TestIntersectAABB(t *testing.T) {
	lo, hi := mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}
	tests := []struct {
		name string
		ray  Ray
		t    float32
		hit  bool
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, 4, true},
		{"inside", Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, 1, true},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(lo, hi)
			if hit != tt.hit || (hit && got != tt.t) {
				t.Errorf("got (%v, %v), want (%v, %v)", got, hit, tt.t, tt.hit)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}

	r := Ray{mgl32.Vec3{0.25, 0.5, 2}, mgl32.Vec3{0, 0, -1}}
	dist, u, v, hit := r.IntersectTriangle(a, b, c)
	if !hit || dist != 2 || u != 0.25 || v != 0.5 {
		t.Errorf("got t=%v u=%v v=%v hit=%v", dist, u, v, hit)
	}

	if _, _, _, hit := (Ray{mgl32.Vec3{0.8, 0.8, 2}, mgl32.Vec3{0, 0, -1}}).IntersectTriangle(a, b, c); hit {
		t.Error("point outside the hypotenuse should miss")
	}
	if _, _, _, hit := (Ray{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}}).IntersectTriangle(a, b, c); hit {
		t.Error("parallel ray should miss")
	}
}

func TestIntersectMesh_ClosestTriangle(t *testing.T) {
	// Two stacked triangles at z=0 and z=1, both facing +Z.
	m := &mesh.Mesh{
		Positions: []float32{
			0, 0, 0, 1, 0, 0, 0, 1, 0,
			0, 0, 1, 1, 0, 1, 0, 1, 1,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	r := Ray{mgl32.Vec3{0.9, 0.05, 5}, mgl32.Vec3{0, 0, -1}}

	hit, ok := IntersectMesh(r, m)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Triangle != 1 || hit.Distance != 4 {
		t.Errorf("expected the near triangle at distance 4, got %+v", hit)
	}
	if hit.Vertex != 4 {
		t.Errorf("nearest corner = %d, want 4", hit.Vertex)
	}

	if _, ok := IntersectMesh(Ray{mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, 0, -1}}, m); ok {
		t.Error("ray outside the bounds should miss")
	}
}

func TestRayTransform(t *testing.T) {
	r := Ray{mgl32.Vec3{2, 0, 5}, mgl32.Vec3{0, 0, -1}}
	local := r.Transform(mgl32.Translate3D(-2, 0, 0))
	if local.Origin != (mgl32.Vec3{0, 0, 5}) || local.Direction != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("unexpected local ray %+v", local)
	}
}
