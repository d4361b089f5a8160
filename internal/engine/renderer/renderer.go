// Package renderer implements the gfx device on OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/tanview/internal/engine/gfx"
	"github.com/Faultbox/tanview/internal/engine/shader"
	"github.com/Faultbox/tanview/internal/logger"
)

var _ gfx.Device = (*Renderer)(nil)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec3
}

// Renderer is a gfx.Device backed by an OpenGL 4.1 core context.
// It must be created and used on the thread that owns the context.
type Renderer struct {
	config Config
	vao    uint32
}

// New loads GL function pointers for the current context and sets up the
// default state: one bound VAO and depth testing.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d := &Renderer{config: cfg}
	// Core profile refuses attribute setup without a bound VAO.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return d, nil
}

// Close releases the default VAO.
func (d *Renderer) Close() {
	logger.Info("closing renderer")
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Resize handles window resize.
func (d *Renderer) Resize(width, height int) {
	d.config.Width = width
	d.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (d *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func (d *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = d.config.Width, d.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func (d *Renderer) CreateVertexBuffer(data []float32) gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ARRAY_BUFFER, b)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gfx.Buffer(b)
}

func (d *Renderer) CreateIndexBuffer(data []uint32) gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b)
	if len(data) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return gfx.Buffer(b)
}

func (d *Renderer) DeleteBuffer(b gfx.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Renderer) CompileProgram(vertexSrc, fragmentSrc string) (gfx.Program, error) {
	p, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	return gfx.Program(p), err
}

func (d *Renderer) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *Renderer) AttribLocation(p gfx.Program, name string) int32 {
	return shader.GetAttrib(uint32(p), name)
}

func (d *Renderer) UniformLocation(p gfx.Program, name string) int32 {
	return shader.GetUniform(uint32(p), name)
}

func (d *Renderer) CreateTexture(img *image.RGBA, filter gfx.Filter) gfx.Texture {
	if len(img.Pix) == 0 {
		return 0
	}
	glFilter := int32(gl.NEAREST)
	if filter == gfx.FilterLinear {
		glFilter = gl.LINEAR
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gfx.Texture(tex)
}

func (d *Renderer) DeleteTexture(t gfx.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (d *Renderer) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Renderer) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Renderer) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (d *Renderer) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (d *Renderer) BindTexture(unit int, t gfx.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *Renderer) EnableAttrib(loc int32, b gfx.Buffer, size int32) {
	gl.EnableVertexAttribArray(uint32(loc))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, 0, 0)
}

func (d *Renderer) DisableAttrib(loc int32) {
	gl.DisableVertexAttribArray(uint32(loc))
}

func (d *Renderer) DrawTriangles(indices gfx.Buffer, count int32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(indices))
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}
