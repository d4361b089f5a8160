// Package gfxtest provides an in-memory gfx.Device for tests that need no GPU.
package gfxtest

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tanview/internal/engine/gfx"
)

// Standard names a program exposes; Locations defaults to these.
var defaultLocations = map[string]int32{
	"aVertexPosition": 0,
	"aVertexNormal":   1,
	"aTextureCoord":   2,
	"aVertexTangent":  3,

	"uPMatrix":        10,
	"uVMatrix":        11,
	"uLWMatrix":       12,
	"uSampler":        13,
	"uNormalSampler":  14,
	"uLightDirection": 15,
}

// Device records calls instead of talking to a GPU.
type Device struct {
	next uint32

	// Live objects. Buffers maps to the element count uploaded.
	Buffers  map[gfx.Buffer]int
	Textures map[gfx.Texture]image.Rectangle
	Programs map[gfx.Program][2]string

	// Locations reported for attribute and uniform names; missing names are -1.
	Locations  map[string]int32
	CompileErr error

	Calls    []string
	Enabled  map[int32]gfx.Buffer
	Drawn    int32
	Matrices map[int32]mgl32.Mat4
	Vectors  map[int32]mgl32.Vec3
}

// NewDevice returns a Device whose programs expose every standard name.
func NewDevice() *Device {
	locs := make(map[string]int32, len(defaultLocations))
	for k, v := range defaultLocations {
		locs[k] = v
	}
	return &Device{
		Buffers:   make(map[gfx.Buffer]int),
		Textures:  make(map[gfx.Texture]image.Rectangle),
		Programs:  make(map[gfx.Program][2]string),
		Locations: locs,
		Enabled:   make(map[int32]gfx.Buffer),
		Matrices:  make(map[int32]mgl32.Mat4),
		Vectors:   make(map[int32]mgl32.Vec3),
	}
}

var _ gfx.Device = (*Device)(nil)

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) CreateVertexBuffer(data []float32) gfx.Buffer {
	b := gfx.Buffer(d.id())
	d.Buffers[b] = len(data)
	return b
}

func (d *Device) CreateIndexBuffer(data []uint32) gfx.Buffer {
	b := gfx.Buffer(d.id())
	d.Buffers[b] = len(data)
	return b
}

func (d *Device) DeleteBuffer(b gfx.Buffer) { delete(d.Buffers, b) }

func (d *Device) CompileProgram(vs, fs string) (gfx.Program, error) {
	if d.CompileErr != nil {
		return 0, d.CompileErr
	}
	p := gfx.Program(d.id())
	d.Programs[p] = [2]string{vs, fs}
	return p, nil
}

func (d *Device) DeleteProgram(p gfx.Program) { delete(d.Programs, p) }

func (d *Device) lookup(name string) int32 {
	if loc, ok := d.Locations[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) AttribLocation(p gfx.Program, name string) int32  { return d.lookup(name) }
func (d *Device) UniformLocation(p gfx.Program, name string) int32 { return d.lookup(name) }

func (d *Device) CreateTexture(img *image.RGBA, filter gfx.Filter) gfx.Texture {
	if len(img.Pix) == 0 {
		return 0
	}
	t := gfx.Texture(d.id())
	d.Textures[t] = img.Bounds()
	return t
}

func (d *Device) DeleteTexture(t gfx.Texture) { delete(d.Textures, t) }

func (d *Device) UseProgram(p gfx.Program) {
	d.Calls = append(d.Calls, fmt.Sprintf("use %d", p))
}

func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { d.Matrices[loc] = m }

func (d *Device) Uniform1i(loc int32, v int32) {
	d.Calls = append(d.Calls, fmt.Sprintf("uniform1i %d %d", loc, v))
}

func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	d.Vectors[loc] = v
	d.Calls = append(d.Calls, fmt.Sprintf("uniform3f %d", loc))
}

func (d *Device) BindTexture(unit int, t gfx.Texture) {
	d.Calls = append(d.Calls, fmt.Sprintf("bind unit %d tex %d", unit, t))
}

func (d *Device) EnableAttrib(loc int32, b gfx.Buffer, size int32) { d.Enabled[loc] = b }

func (d *Device) DisableAttrib(loc int32) {
	delete(d.Enabled, loc)
	d.Calls = append(d.Calls, fmt.Sprintf("disable %d", loc))
}

func (d *Device) DrawTriangles(indices gfx.Buffer, count int32) { d.Drawn = count }

// Called reports whether any recorded call starts with prefix.
func (d *Device) Called(prefix string) bool {
	for _, c := range d.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Live returns the number of buffers, textures and programs not yet deleted.
func (d *Device) Live() int {
	return len(d.Buffers) + len(d.Textures) + len(d.Programs)
}
