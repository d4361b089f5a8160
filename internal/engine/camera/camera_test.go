package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraDefaults(t *testing.T) {
	c := New()
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Error("expected identity view")
	}
	if c.ProjectionMatrix() != mgl32.Ident4() {
		t.Error("expected identity projection")
	}
}

func TestCameraSetters(t *testing.T) {
	c := New()
	view := mgl32.Translate3D(1, 2, 3)
	c.SetViewMatrix(view)
	if c.ViewMatrix() != view {
		t.Errorf("view = %v, want %v", c.ViewMatrix(), view)
	}

	proj := mgl32.Ortho(-1, 1, -1, 1, 0.1, 10)
	c.SetProjectionMatrix(proj)
	if c.ProjectionMatrix() != proj {
		t.Errorf("projection = %v, want %v", c.ProjectionMatrix(), proj)
	}

	c.SetPerspective(45, 16.0/9.0, 0.1, 100)
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 100)
	if !c.ProjectionMatrix().ApproxEqual(want) {
		t.Errorf("perspective = %v, want %v", c.ProjectionMatrix(), want)
	}
}

func TestOrbitPosition(t *testing.T) {
	o := NewOrbitCamera()
	o.RotationX, o.RotationY = 0, 0
	o.Distance = 4
	o.Center = mgl32.Vec3{1, 0, 0}

	pos := o.Position()
	if !pos.ApproxEqual(mgl32.Vec3{1, 0, 4}) {
		t.Errorf("position = %v, want (1, 0, 4)", pos)
	}

	cam := New()
	o.Apply(cam)
	// The center must land on the view axis.
	p := mgl32.TransformCoordinate(o.Center, cam.ViewMatrix())
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 0, -4}, 1e-5) {
		t.Errorf("center in view space = %v, want (0, 0, -4)", p)
	}
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbitCamera()
	o.HandleDrag(0, 1e6)
	if o.RotationX != o.MaxPitch {
		t.Errorf("pitch = %f, want %f", o.RotationX, o.MaxPitch)
	}
	o.HandleZoom(-1e6)
	if o.Distance != o.MaxDistance {
		t.Errorf("distance = %f, want %f", o.Distance, o.MaxDistance)
	}
	o.HandleZoom(20)
	if o.Distance != o.MinDistance {
		t.Errorf("distance = %f, want %f", o.Distance, o.MinDistance)
	}
}

func TestOrbitFitToBounds(t *testing.T) {
	o := NewOrbitCamera()
	o.FitToBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{3, 1, 1})
	if o.Center != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("center = %v", o.Center)
	}
	if o.Distance <= 0 || o.Distance < o.MinDistance || o.Distance > o.MaxDistance {
		t.Errorf("distance %f outside [%f, %f]", o.Distance, o.MinDistance, o.MaxDistance)
	}
}

func TestOrbitMovement(t *testing.T) {
	o := NewOrbitCamera()
	o.RotationY = 0
	o.HandleMovement(1, 0, 0)
	if o.Center[2] >= 0 {
		t.Errorf("forward should move toward -Z, got %v", o.Center)
	}
}
