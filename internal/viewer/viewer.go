// Package viewer implements the interactive main loop: window, input,
// camera control and drawing of the loaded scene.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tanview/internal/assets"
	"github.com/Faultbox/tanview/internal/config"
	"github.com/Faultbox/tanview/internal/engine/debug"
	"github.com/Faultbox/tanview/internal/engine/input"
	"github.com/Faultbox/tanview/internal/engine/renderer"
	"github.com/Faultbox/tanview/internal/engine/scene"
	"github.com/Faultbox/tanview/internal/engine/window"
	"github.com/Faultbox/tanview/internal/logger"
	"github.com/Faultbox/tanview/pkg/mesh"
)

// Degrees per frame the arrow keys move the light.
const lightStep = 2

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	shots    *debug.ScreenshotCapture
}

// New opens the window, creates the GL renderer and uploads meshes.
func New(cfg *config.Config, am *assets.Manager, meshes []*mesh.Mesh) (*Viewer, error) {
	g := cfg.Graphics
	logger.Info("initializing viewer",
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
		zap.Int("meshes", len(meshes)),
	)

	v := &Viewer{
		config: cfg,
		shots:  debug.NewScreenshotCapture("screenshots", "tanview"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "tanview - " + cfg.Scene.Mesh,
		Width:      g.Width,
		Height:     g.Height,
		Fullscreen: g.Fullscreen,
		VSync:      g.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: mgl32.Vec3(g.ClearColor),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scene, err = scene.New(v.renderer, am, cfg, meshes)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}
	v.scene.Resize(w, h)

	v.input = input.New()

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Debug("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()

		// 2. Render
		v.renderer.Begin()
		if err := v.scene.Draw(v.renderer); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// Capture before the swap, while the back buffer holds the frame.
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			v.window.SetTitle(fmt.Sprintf("tanview - %s (%d fps)", v.config.Scene.Mesh, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleInput() {
	in := v.input

	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		v.running = false
		return
	}
	if _, _, ok := in.Resized(); ok {
		// Resize events carry window units; the viewport needs pixels.
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)
		v.scene.Resize(w, h)
	}

	orbit := v.scene.Orbit
	if dx, dy := in.Dragged(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		orbit.HandleDrag(float32(dx), float32(dy))
	}
	if wheel := in.Wheel(); wheel != 0 {
		orbit.HandleZoom(wheel)
	}
	if in.IsKeyPressed(sdl.SCANCODE_R) {
		v.scene.ResetView()
	}
	if in.IsKeyPressed(sdl.SCANCODE_F5) {
		v.saveView()
	}
	for _, e := range in.Events() {
		if e.Type == input.EventMouseDown && e.Button == sdl.BUTTON_RIGHT {
			v.inspect(e.MouseX, e.MouseY)
		}
	}

	// Held keys: pan the camera and move the light.
	keys := sdl.GetKeyboardState()
	held := func(sc sdl.Scancode) float32 {
		if keys[sc] != 0 {
			return 1
		}
		return 0
	}
	forward := held(sdl.SCANCODE_W) - held(sdl.SCANCODE_S)
	right := held(sdl.SCANCODE_D) - held(sdl.SCANCODE_A)
	up := held(sdl.SCANCODE_E) - held(sdl.SCANCODE_Q)
	if forward != 0 || right != 0 || up != 0 {
		orbit.HandleMovement(forward, right, up)
	}
	az := held(sdl.SCANCODE_RIGHT) - held(sdl.SCANCODE_LEFT)
	el := held(sdl.SCANCODE_UP) - held(sdl.SCANCODE_DOWN)
	if az != 0 || el != 0 {
		v.scene.RotateLight(az*lightStep, el*lightStep)
	}
}

// inspect logs the tangent frame of the vertex under the cursor.
func (v *Viewer) inspect(mouseX, mouseY int) {
	ww, wh := v.window.GetSize()
	dw, dh := v.window.DrawableSize()
	if ww == 0 || wh == 0 {
		return
	}
	// Mouse events are in window units.
	x := float32(mouseX) * float32(dw) / float32(ww)
	y := float32(mouseY) * float32(dh) / float32(wh)

	o, hit, ok := v.scene.Pick(x, y, dw, dh)
	if !ok {
		return
	}
	pos := o.Mesh.Position(hit.Vertex)
	fields := []zap.Field{
		zap.String("mesh", o.Mesh.Name),
		zap.Int("triangle", hit.Triangle),
		zap.Uint32("vertex", hit.Vertex),
		zap.Float32s("position", pos[:]),
	}
	i := int(hit.Vertex) * 3
	if o.Mesh.HasNormals() {
		fields = append(fields, zap.Float32s("normal", o.Mesh.Normals[i:i+3]))
	}
	if o.Tangents != nil {
		fields = append(fields, zap.Float32s("tangent", o.Tangents[i:i+3]))
	}
	logger.Info("picked vertex", fields...)
}

// saveView writes the current mesh and sun direction to the config file.
func (v *Viewer) saveView() {
	v.scene.StoreLight(&v.config.Scene)
	if err := v.config.Save(); err != nil {
		logger.Warn("saving config failed", zap.Error(err))
		return
	}
	logger.Info("config saved", zap.String("file", v.config.Path()))
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// Close releases scene, renderer and window.
func (v *Viewer) Close() {
	logger.Debug("closing viewer")

	if v.scene != nil {
		v.scene.Destroy(v.renderer)
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
