// Package gfx defines the graphics device handed to every rendering call.
//
// Nothing in the engine reaches for a global context: code that needs the GPU
// takes a Device parameter, which keeps objects testable without a window.
package gfx

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Handles to device objects. Zero means "none".
type (
	Buffer  uint32
	Program uint32
	Texture uint32
)

// Filter selects texture sampling.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Device is the subset of a graphics API the engine uses.
// Attribute and uniform locations follow GL conventions: -1 means inactive.
type Device interface {
	CreateVertexBuffer(data []float32) Buffer
	CreateIndexBuffer(data []uint32) Buffer
	DeleteBuffer(b Buffer)

	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)
	DeleteProgram(p Program)
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	// CreateTexture returns the zero Texture for an empty image.
	CreateTexture(img *image.RGBA, filter Filter) Texture
	DeleteTexture(t Texture)

	UseProgram(p Program)
	UniformMatrix4(loc int32, m mgl32.Mat4)
	Uniform1i(loc int32, v int32)
	Uniform3f(loc int32, v mgl32.Vec3)
	BindTexture(unit int, t Texture)

	EnableAttrib(loc int32, b Buffer, size int32)
	DisableAttrib(loc int32)
	DrawTriangles(indices Buffer, count int32)
}
