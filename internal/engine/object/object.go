// Package object wraps a mesh with everything needed to draw it: a model
// matrix, a shader program, device buffers and albedo/normal textures.
package object

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/tanview/internal/engine/camera"
	"github.com/Faultbox/tanview/internal/engine/gfx"
	"github.com/Faultbox/tanview/internal/logger"
	"github.com/Faultbox/tanview/pkg/mesh"
	"github.com/Faultbox/tanview/pkg/tangent"
)

// Shader attribute and uniform names an object binds by.
const (
	AttribPosition = "aVertexPosition"
	AttribNormal   = "aVertexNormal"
	AttribTexCoord = "aTextureCoord"
	AttribTangent  = "aVertexTangent"

	UniformProjection     = "uPMatrix"
	UniformView           = "uVMatrix"
	UniformModel          = "uLWMatrix"
	UniformSampler        = "uSampler"
	UniformNormalSampler  = "uNormalSampler"
	UniformLightDirection = "uLightDirection"
)

// Texture units used by Draw.
const (
	AlbedoUnit = 0
	NormalUnit = 1
)

// ErrNotInitialized is returned by Draw before buffers and shaders exist.
var ErrNotInitialized = errors.New("object not initialized")

// Attribs holds vertex attribute locations; -1 means the program does not use it.
type Attribs struct {
	Position int32
	Normal   int32
	TexCoord int32
	Tangent  int32
}

// Uniforms holds uniform locations; -1 means the program does not use it.
type Uniforms struct {
	Projection     int32
	View           int32
	Model          int32
	Sampler        int32
	NormalSampler  int32
	LightDirection int32
}

// Buffers holds the device buffers built from the mesh. Optional attributes
// the mesh lacks stay zero.
type Buffers struct {
	Position   gfx.Buffer
	Normal     gfx.Buffer
	TexCoord   gfx.Buffer
	Tangent    gfx.Buffer
	Index      gfx.Buffer
	IndexCount int32
}

// Object is a drawable mesh instance.
type Object struct {
	Mesh *mesh.Mesh

	// Tangents is the generated tangent buffer, nil when the mesh lacks
	// normals or texture coordinates.
	Tangents []float32

	model    mgl32.Mat4
	program  gfx.Program
	attribs  Attribs
	uniforms Uniforms
	buffers  Buffers

	texture       gfx.Texture
	normalTexture gfx.Texture
}

// New wraps m with an identity model matrix and no GPU resources.
func New(m *mesh.Mesh) *Object {
	return &Object{
		Mesh:     m,
		model:    mgl32.Ident4(),
		attribs:  Attribs{-1, -1, -1, -1},
		uniforms: Uniforms{-1, -1, -1, -1, -1, -1},
	}
}

// ToOrigin resets the model matrix to identity.
func (o *Object) ToOrigin() {
	o.model = mgl32.Ident4()
}

// Translate appends a translation to the model matrix.
func (o *Object) Translate(x, y, z float32) {
	o.model = o.model.Mul4(mgl32.Translate3D(x, y, z))
}

// Rotate appends a rotation of angle radians around axis to the model matrix.
// A zero axis leaves the matrix unchanged.
func (o *Object) Rotate(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	o.model = o.model.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Scale appends a non-uniform scale to the model matrix.
func (o *Object) Scale(sx, sy, sz float32) {
	o.model = o.model.Mul4(mgl32.Scale3D(sx, sy, sz))
}

// Matrix returns the model matrix.
func (o *Object) Matrix() mgl32.Mat4 {
	return o.model
}

// SetProgram makes p the object's program and looks up its attribute and
// uniform locations on dev.
func (o *Object) SetProgram(dev gfx.Device, p gfx.Program) {
	o.program = p
	o.attribs = Attribs{
		Position: dev.AttribLocation(p, AttribPosition),
		Normal:   dev.AttribLocation(p, AttribNormal),
		TexCoord: dev.AttribLocation(p, AttribTexCoord),
		Tangent:  dev.AttribLocation(p, AttribTangent),
	}
	o.uniforms = Uniforms{
		Projection:     dev.UniformLocation(p, UniformProjection),
		View:           dev.UniformLocation(p, UniformView),
		Model:          dev.UniformLocation(p, UniformModel),
		Sampler:        dev.UniformLocation(p, UniformSampler),
		NormalSampler:  dev.UniformLocation(p, UniformNormalSampler),
		LightDirection: dev.UniformLocation(p, UniformLightDirection),
	}
}

// Program returns the object's program, zero before InitShaders or SetProgram.
func (o *Object) Program() gfx.Program {
	return o.program
}

// Attribs returns the resolved attribute locations.
func (o *Object) Attribs() Attribs {
	return o.attribs
}

// Buffers returns the device buffers.
func (o *Object) Buffers() Buffers {
	return o.buffers
}

// LoadTexture uploads img as the albedo texture, replacing any previous one.
// img should already be flipped for GL (see texture.DecodeRGBA).
func (o *Object) LoadTexture(dev gfx.Device, img *image.RGBA) {
	if o.texture != 0 {
		dev.DeleteTexture(o.texture)
	}
	o.texture = dev.CreateTexture(img, gfx.FilterNearest)
}

// LoadNormalTexture uploads img as the tangent-space normal map.
func (o *Object) LoadNormalTexture(dev gfx.Device, img *image.RGBA) {
	if o.normalTexture != 0 {
		dev.DeleteTexture(o.normalTexture)
	}
	o.normalTexture = dev.CreateTexture(img, gfx.FilterNearest)
}

// Init builds device buffers and compiles the object's shaders.
func (o *Object) Init(dev gfx.Device, vertexSrc, fragmentSrc string, opts tangent.Options) error {
	if err := o.InitBuffers(dev, opts); err != nil {
		return err
	}
	return o.InitShaders(dev, vertexSrc, fragmentSrc)
}

// InitBuffers validates the mesh and uploads its attribute and index buffers.
// Tangents are generated and uploaded only when the mesh has both normals and
// texture coordinates.
func (o *Object) InitBuffers(dev gfx.Device, opts tangent.Options) error {
	m := o.Mesh
	if err := m.Validate(); err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, err)
	}

	var tangents []float32
	if m.HasNormals() && m.HasUVs() {
		var err error
		tangents, err = tangent.GenerateWith(m, opts)
		if err != nil {
			return err
		}
	}

	o.releaseBuffers(dev)
	o.buffers.Position = dev.CreateVertexBuffer(m.Positions)
	if m.HasNormals() {
		o.buffers.Normal = dev.CreateVertexBuffer(m.Normals)
	}
	if m.HasUVs() {
		o.buffers.TexCoord = dev.CreateVertexBuffer(m.UVs)
	}
	if tangents != nil {
		o.buffers.Tangent = dev.CreateVertexBuffer(tangents)
	}
	o.buffers.Index = dev.CreateIndexBuffer(m.Indices)
	o.buffers.IndexCount = int32(len(m.Indices))
	o.Tangents = tangents

	logger.Debug("object buffers initialized",
		zap.String("mesh", m.Name),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(m.Indices)),
		zap.Bool("tangents", tangents != nil),
		zap.Stringer("tangent_mode", opts.Mode),
	)
	return nil
}

// InitShaders compiles and links the given sources and makes the result the
// object's program.
func (o *Object) InitShaders(dev gfx.Device, vertexSrc, fragmentSrc string) error {
	p, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("mesh %q shaders: %w", o.Mesh.Name, err)
	}
	if o.program != 0 {
		dev.DeleteProgram(o.program)
	}
	o.SetProgram(dev, p)
	return nil
}

// Draw renders the object with the camera's matrices. lightDir is the
// direction the light travels, in world space.
func (o *Object) Draw(dev gfx.Device, cam *camera.Camera, lightDir mgl32.Vec3) error {
	if o.program == 0 || o.buffers.Index == 0 {
		return ErrNotInitialized
	}

	dev.UseProgram(o.program)

	if o.uniforms.Projection >= 0 {
		dev.UniformMatrix4(o.uniforms.Projection, cam.ProjectionMatrix())
	}
	if o.uniforms.View >= 0 {
		dev.UniformMatrix4(o.uniforms.View, cam.ViewMatrix())
	}
	if o.uniforms.Model >= 0 {
		dev.UniformMatrix4(o.uniforms.Model, o.model)
	}

	if o.attribs.Position >= 0 {
		dev.EnableAttrib(o.attribs.Position, o.buffers.Position, 3)
	}

	if o.uniforms.Sampler >= 0 {
		dev.BindTexture(AlbedoUnit, o.texture)
		dev.Uniform1i(o.uniforms.Sampler, AlbedoUnit)
	}
	if o.uniforms.NormalSampler >= 0 {
		dev.BindTexture(NormalUnit, o.normalTexture)
		dev.Uniform1i(o.uniforms.NormalSampler, NormalUnit)
	}
	if o.uniforms.LightDirection >= 0 {
		dev.Uniform3f(o.uniforms.LightDirection, lightDir)
	}

	bindOptional(dev, o.attribs.TexCoord, o.buffers.TexCoord, 2)
	bindOptional(dev, o.attribs.Normal, o.buffers.Normal, 3)
	bindOptional(dev, o.attribs.Tangent, o.buffers.Tangent, 3)

	dev.DrawTriangles(o.buffers.Index, o.buffers.IndexCount)
	return nil
}

// bindOptional enables an attribute the program uses when the buffer exists,
// and disables it otherwise so a stale binding is not read.
func bindOptional(dev gfx.Device, loc int32, b gfx.Buffer, size int32) {
	if loc < 0 {
		return
	}
	if b != 0 {
		dev.EnableAttrib(loc, b, size)
	} else {
		dev.DisableAttrib(loc)
	}
}

// Destroy releases every device object the object owns.
func (o *Object) Destroy(dev gfx.Device) {
	o.releaseBuffers(dev)
	if o.program != 0 {
		dev.DeleteProgram(o.program)
		o.program = 0
	}
	if o.texture != 0 {
		dev.DeleteTexture(o.texture)
		o.texture = 0
	}
	if o.normalTexture != 0 {
		dev.DeleteTexture(o.normalTexture)
		o.normalTexture = 0
	}
}

func (o *Object) releaseBuffers(dev gfx.Device) {
	for _, b := range []gfx.Buffer{o.buffers.Position, o.buffers.Normal, o.buffers.TexCoord, o.buffers.Tangent, o.buffers.Index} {
		if b != 0 {
			dev.DeleteBuffer(b)
		}
	}
	o.buffers = Buffers{}
}
