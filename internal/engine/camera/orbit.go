package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.3,
		RotationY:       0.0,
		MinDistance:     0.1,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	offset := mgl32.Vec3{
		float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// Apply writes the orbit view into cam.
func (c *OrbitCamera) Apply(cam *Camera) {
	cam.SetViewMatrix(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point in the camera's ground plane.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sin := float32(gomath.Sin(float64(c.RotationY)))
	cos := float32(gomath.Cos(float64(c.RotationY)))

	// Negate forward so it moves "into" the scene.
	c.Center[0] += (-sin*forward + cos*right) * speed
	c.Center[2] += (-cos*forward - sin*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough to see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)

	radius := hi.Sub(lo).Len() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius * 2.5
	c.MinDistance = radius * 0.05
	c.MaxDistance = radius * 50

	c.RotationX = 0.3
	c.RotationY = 0.0
}
