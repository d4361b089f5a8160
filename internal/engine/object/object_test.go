package object

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tanview/internal/engine/camera"
	"github.com/Faultbox/tanview/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/tanview/pkg/mesh"
	"github.com/Faultbox/tanview/pkg/tangent"
)

func texturedTriangle() *mesh.Mesh {
	return &mesh.Mesh{
		Name:      "tri",
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestTransforms(t *testing.T) {
	o := New(texturedTriangle())
	if o.Matrix() != mgl32.Ident4() {
		t.Fatal("expected identity model matrix")
	}

	o.Translate(1, 2, 3)
	o.Scale(2, 2, 2)
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, o.Matrix())
	if !p.ApproxEqual(mgl32.Vec3{3, 2, 3}) {
		t.Errorf("translate then scale: got %v, want (3, 2, 3)", p)
	}

	o.ToOrigin()
	o.Rotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 5})
	p = mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, o.Matrix())
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("rotate 90 about Z: got %v, want (0, 1, 0)", p)
	}

	before := o.Matrix()
	o.Rotate(1, mgl32.Vec3{})
	if o.Matrix() != before {
		t.Error("zero axis should not change the matrix")
	}
}

func TestInitAndDraw(t *testing.T) {
	dev := gfxtest.NewDevice()
	o := New(texturedTriangle())

	if err := o.Draw(dev, camera.New(), mgl32.Vec3{0, 0, -1}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	if err := o.Init(dev, "vs", "fs", tangent.Options{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if o.Program() == 0 {
		t.Fatal("expected program")
	}
	if len(o.Tangents) != 9 || o.Tangents[0] != 1 {
		t.Errorf("unexpected tangents %v", o.Tangents)
	}
	bufs := o.Buffers()
	if bufs.Tangent == 0 || bufs.TexCoord == 0 || bufs.Normal == 0 {
		t.Errorf("expected all attribute buffers, got %+v", bufs)
	}
	if dev.Buffers[bufs.Tangent] != 9 {
		t.Errorf("tangent buffer has %d floats, want 9", dev.Buffers[bufs.Tangent])
	}

	o.LoadTexture(dev, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	o.LoadNormalTexture(dev, image.NewRGBA(image.Rect(0, 0, 1, 1)))

	cam := camera.New()
	cam.SetViewMatrix(mgl32.Translate3D(0, 0, -5))
	o.Translate(1, 0, 0)
	if err := o.Draw(dev, cam, mgl32.Vec3{0, 0, -1}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if dev.Drawn != 3 {
		t.Errorf("drew %d indices, want 3", dev.Drawn)
	}
	for loc := int32(0); loc < 4; loc++ {
		if dev.Enabled[loc] == 0 {
			t.Errorf("attribute %d not enabled", loc)
		}
	}
	if dev.Matrices[11] != cam.ViewMatrix() {
		t.Error("view matrix not uploaded")
	}
	if dev.Matrices[12] != o.Matrix() {
		t.Error("model matrix not uploaded")
	}
	if !dev.Called("uniform1i 14 1") || !dev.Called("uniform1i 13 0") {
		t.Errorf("sampler units not set: %v", dev.Calls)
	}
	if !dev.Called("uniform3f 15") {
		t.Error("light direction not uploaded")
	}
}

func TestLoadTexture_EmptyImage(t *testing.T) {
	dev := gfxtest.NewDevice()
	o := New(texturedTriangle())
	if err := o.Init(dev, "vs", "fs", tangent.Options{}); err != nil {
		t.Fatal(err)
	}

	o.LoadTexture(dev, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	o.LoadTexture(dev, image.NewRGBA(image.Rectangle{}))
	if len(dev.Textures) != 0 {
		t.Errorf("empty image should replace the texture with none, have %d", len(dev.Textures))
	}

	if err := o.Draw(dev, camera.New(), mgl32.Vec3{0, 0, -1}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if !dev.Called("bind unit 0 tex 0") {
		t.Errorf("expected albedo unit unbound: %v", dev.Calls)
	}
}

func TestInitBuffers_UntexturedMeshSkipsTangents(t *testing.T) {
	dev := gfxtest.NewDevice()
	m := texturedTriangle()
	m.UVs = nil
	o := New(m)

	if err := o.Init(dev, "vs", "fs", tangent.Options{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if o.Tangents != nil {
		t.Error("expected no tangents without uvs")
	}
	if err := o.Draw(dev, camera.New(), mgl32.Vec3{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if _, ok := dev.Enabled[2]; ok {
		t.Error("texcoord attribute should be disabled")
	}
	if !dev.Called("disable 3") {
		t.Error("tangent attribute should be disabled")
	}
}

func TestInitBuffers_Errors(t *testing.T) {
	dev := gfxtest.NewDevice()
	m := texturedTriangle()
	m.Indices = []uint32{0, 1, 9}
	if err := New(m).InitBuffers(dev, tangent.Options{}); !errors.Is(err, mesh.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	m = texturedTriangle()
	m.UVs = make([]float32, 6)
	err := New(m).InitBuffers(dev, tangent.Options{Degenerate: tangent.DegenerateReject})
	if !errors.Is(err, tangent.ErrDegenerateUV) {
		t.Errorf("expected ErrDegenerateUV, got %v", err)
	}
	if len(dev.Buffers) != 0 {
		t.Errorf("failed init leaked %d buffers", len(dev.Buffers))
	}
}

func TestInitShaders_Error(t *testing.T) {
	dev := gfxtest.NewDevice()
	dev.CompileErr = errors.New("0:1: syntax error")
	o := New(texturedTriangle())
	if err := o.InitShaders(dev, "vs", "fs"); err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("expected compile error, got %v", err)
	}
	if o.Program() != 0 {
		t.Error("program should stay unset")
	}
}

func TestSetProgram_MissingLocations(t *testing.T) {
	dev := gfxtest.NewDevice()
	delete(dev.Locations, AttribTangent)
	o := New(texturedTriangle())
	if err := o.Init(dev, "vs", "fs", tangent.Options{}); err != nil {
		t.Fatal(err)
	}
	if o.Attribs().Tangent != -1 {
		t.Errorf("tangent location = %d, want -1", o.Attribs().Tangent)
	}
	if err := o.Draw(dev, camera.New(), mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := dev.Enabled[3]; ok {
		t.Error("inactive attribute must not be touched")
	}
}

func TestDestroy(t *testing.T) {
	dev := gfxtest.NewDevice()
	o := New(texturedTriangle())
	if err := o.Init(dev, "vs", "fs", tangent.Options{}); err != nil {
		t.Fatal(err)
	}
	o.LoadTexture(dev, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	o.LoadTexture(dev, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if len(dev.Textures) != 1 {
		t.Errorf("replacing a texture should free the old one, have %d", len(dev.Textures))
	}

	o.Destroy(dev)
	if len(dev.Buffers) != 0 || len(dev.Textures) != 0 || len(dev.Programs) != 0 {
		t.Errorf("leaked resources: %d buffers, %d textures, %d programs",
			len(dev.Buffers), len(dev.Textures), len(dev.Programs))
	}
}
