// Package scene assembles the viewer's drawable state: the objects built from
// a mesh file, the camera that looks at them and the directional light.
package scene

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/tanview/internal/config"
	"github.com/Faultbox/tanview/internal/engine/camera"
	"github.com/Faultbox/tanview/internal/engine/gfx"
	"github.com/Faultbox/tanview/internal/engine/lighting"
	"github.com/Faultbox/tanview/internal/engine/object"
	"github.com/Faultbox/tanview/internal/engine/picking"
	"github.com/Faultbox/tanview/internal/engine/shader/shaders"
	"github.com/Faultbox/tanview/internal/engine/texture"
	"github.com/Faultbox/tanview/internal/logger"
	"github.com/Faultbox/tanview/pkg/formats"
	"github.com/Faultbox/tanview/pkg/mesh"
)

// ErrNoMesh is returned when the scene has nothing to load.
var ErrNoMesh = errors.New("no mesh configured")

// Loader finds and reads asset files. *assets.Manager implements it.
type Loader interface {
	Resolve(name string) (string, error)
	Load(name string) ([]byte, error)
}

// Scene holds the objects, camera and light for one loaded mesh file.
type Scene struct {
	Objects []*object.Object
	Camera  *camera.Camera
	Orbit   *camera.OrbitCamera

	// Sun position in degrees; see lighting.SunDirection.
	LightAzimuth   float32
	LightElevation float32

	graphics config.GraphicsConfig
	lo, hi   mgl32.Vec3
	far      float32
}

// LoadMeshes resolves name through the loader and parses every mesh in it.
// Meshes without normals get smooth normals computed from their faces.
func LoadMeshes(l Loader, name string) ([]*mesh.Mesh, error) {
	if name == "" {
		return nil, ErrNoMesh
	}
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	meshes, err := formats.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	for _, m := range meshes {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		if !m.HasNormals() {
			logger.Warn("mesh has no normals, computing them", zap.String("mesh", m.Name))
			m.ComputeNormals()
		}
	}
	return meshes, nil
}

// New builds objects for meshes on dev using the scene, tangent and
// graphics settings in cfg. On error every device object created so far
// is released.
func New(dev gfx.Device, l Loader, cfg *config.Config, meshes []*mesh.Mesh) (*Scene, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMesh
	}
	opts, err := cfg.TangentOptions()
	if err != nil {
		return nil, err
	}

	albedo, err := loadTexture(l, cfg.Scene.Texture, texture.Solid(200, 200, 200))
	if err != nil {
		return nil, err
	}
	normalMap, err := loadTexture(l, cfg.Scene.NormalTexture, texture.FlatNormal())
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:   camera.New(),
		Orbit:    camera.NewOrbitCamera(),
		graphics: cfg.Graphics,
	}
	s.LightAzimuth, s.LightElevation = lighting.Angles(mgl32.Vec3(cfg.Scene.LightDir).Mul(-1))

	for _, m := range meshes {
		o := object.New(m)
		applyTransform(o, cfg.Scene.Transform)

		vs, fs := shaders.NormalMapVertexShader, shaders.NormalMapFragmentShader
		if !m.HasUVs() {
			vs, fs = shaders.FlatVertexShader, shaders.FlatFragmentShader
		}
		if err := o.Init(dev, vs, fs, opts); err != nil {
			o.Destroy(dev)
			s.Destroy(dev)
			return nil, err
		}
		if m.HasUVs() {
			o.LoadTexture(dev, albedo)
			o.LoadNormalTexture(dev, normalMap)
		}
		s.Objects = append(s.Objects, o)
		s.extend(o)

		logger.Info("object ready",
			zap.String("mesh", m.Name),
			zap.Int("triangles", m.TriangleCount()),
			zap.Bool("normal_mapped", o.Tangents != nil),
		)
	}

	s.ResetView()
	s.Resize(cfg.Graphics.Width, cfg.Graphics.Height)
	return s, nil
}

func loadTexture(l Loader, name string, fallback *image.RGBA) (*image.RGBA, error) {
	if name == "" {
		return fallback, nil
	}
	data, err := l.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading texture: %w", err)
	}
	return texture.DecodeRGBA(data, name)
}

func applyTransform(o *object.Object, t config.Transform) {
	o.Translate(t.Translate[0], t.Translate[1], t.Translate[2])
	o.Rotate(mgl32.DegToRad(t.RotateDeg), mgl32.Vec3(t.RotateAxis))
	o.Scale(t.Scale[0], t.Scale[1], t.Scale[2])
}

// extend grows the scene bounds by the object's mesh bounds in world space.
func (s *Scene) extend(o *object.Object) {
	lo, hi := o.Mesh.Bounds()
	model := o.Matrix()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{lo[0], lo[1], lo[2]}
		if i&1 != 0 {
			corner[0] = hi[0]
		}
		if i&2 != 0 {
			corner[1] = hi[1]
		}
		if i&4 != 0 {
			corner[2] = hi[2]
		}
		p := mgl32.TransformCoordinate(corner, model)
		if len(s.Objects) == 1 && i == 0 {
			s.lo, s.hi = p, p
			continue
		}
		for k := 0; k < 3; k++ {
			s.lo[k] = min(s.lo[k], p[k])
			s.hi[k] = max(s.hi[k], p[k])
		}
	}
}

// Bounds returns the world-space bounding box of all objects.
func (s *Scene) Bounds() (lo, hi mgl32.Vec3) {
	return s.lo, s.hi
}

// ResetView points the orbit camera at the whole scene. The far plane is
// pushed out so the scene stays inside it at the orbit's maximum distance.
func (s *Scene) ResetView() {
	s.Orbit.FitToBounds(s.lo, s.hi)
	diameter := s.hi.Sub(s.lo).Len()
	s.far = max(s.graphics.Far, s.Orbit.MaxDistance+diameter)
}

// Far returns the far clip distance in use.
func (s *Scene) Far() float32 {
	if s.far == 0 {
		return s.graphics.Far
	}
	return s.far
}

// Resize updates the projection for a new viewport size.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Camera.SetPerspective(s.graphics.FOV, float32(width)/float32(height), s.graphics.Near, s.Far())
}

// RotateLight moves the sun by the given angles in degrees. Elevation is
// kept within [-89, 89].
func (s *Scene) RotateLight(dAzimuth, dElevation float32) {
	s.LightAzimuth += dAzimuth
	s.LightElevation = mgl32.Clamp(s.LightElevation+dElevation, -89, 89)
}

// LightDir returns the direction light travels.
func (s *Scene) LightDir() mgl32.Vec3 {
	return lighting.Direction(s.LightAzimuth, s.LightElevation)
}

// StoreLight writes the current light direction into sc.
func (s *Scene) StoreLight(sc *config.SceneConfig) {
	sc.LightDir = [3]float32(s.LightDir())
}

// Draw renders every object from the orbit camera.
func (s *Scene) Draw(dev gfx.Device) error {
	s.Orbit.Apply(s.Camera)
	light := s.LightDir()
	for _, o := range s.Objects {
		if err := o.Draw(dev, s.Camera, light); err != nil {
			return fmt.Errorf("drawing %q: %w", o.Mesh.Name, err)
		}
	}
	return nil
}

// Pick casts a ray through the screen point (x, y) of a width x height
// viewport and returns the closest object it hits.
func (s *Scene) Pick(x, y float32, width, height int) (*object.Object, picking.Hit, bool) {
	s.Orbit.Apply(s.Camera)
	viewProj := s.Camera.ProjectionMatrix().Mul4(s.Camera.ViewMatrix())
	ray := picking.ScreenToRay(x, y, float32(width), float32(height), viewProj.Inv())

	var (
		best     *object.Object
		bestHit  picking.Hit
		bestDist float32
	)
	for _, o := range s.Objects {
		model := o.Matrix()
		hit, ok := picking.IntersectMesh(ray.Transform(model.Inv()), o.Mesh)
		if !ok {
			continue
		}
		// Compare in world units; object scales differ.
		d := mgl32.TransformCoordinate(hit.Point, model).Sub(ray.Origin).Len()
		if best == nil || d < bestDist {
			best, bestHit, bestDist = o, hit, d
		}
	}
	return best, bestHit, best != nil
}

// Destroy releases every object's device resources.
func (s *Scene) Destroy(dev gfx.Device) {
	for _, o := range s.Objects {
		o.Destroy(dev)
	}
	s.Objects = nil
}
