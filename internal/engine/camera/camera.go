// Package camera holds the view and projection matrices used for drawing.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera is a plain holder for a view and a projection matrix.
// Both start as identity.
type Camera struct {
	view       mgl32.Mat4
	projection mgl32.Mat4
}

// New creates a camera with identity matrices.
func New() *Camera {
	return &Camera{
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
	}
}

// SetViewMatrix replaces the view matrix.
func (c *Camera) SetViewMatrix(m mgl32.Mat4) {
	c.view = m
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.view
}

// SetProjectionMatrix replaces the projection matrix.
func (c *Camera) SetProjectionMatrix(m mgl32.Mat4) {
	c.projection = m
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// SetPerspective sets a perspective projection. fovY is in degrees.
func (c *Camera) SetPerspective(fovY, aspect, near, far float32) {
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far)
}
