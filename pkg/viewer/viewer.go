// Package viewer displays user-selected STL models in an orbitable
// wireframe viewport.
//
// A Viewer is not safe for concurrent use. Every method must be called on
// the goroutine that drives its Scheduler; decoding happens elsewhere and
// completes through Scheduler.Post.
package viewer

import (
	"log/slog"
	"time"

	"github.com/philipparndt/stlview/pkg/controls"
	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/loop"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/scene"
	"github.com/philipparndt/stlview/pkg/stl"
)

// Scheduler runs posted tasks and frame callbacks on a single goroutine
type Scheduler interface {
	Post(fn func())
	RequestFrame(fn func(time.Time)) loop.FrameID
	CancelFrame(id loop.FrameID)
}

// Decoder turns file content into a model
type Decoder func(file ModelFile) (*stl.Model, error)

// Viewer owns the scene, camera, light, controls and render surface
type Viewer struct {
	sched   Scheduler
	opts    Options
	log     *slog.Logger
	decoder Decoder

	pending *ModelFile

	scene    *scene.Scene
	camera   *scene.PerspectiveCamera
	light    *scene.PointLight
	controls *controls.OrbitControls

	surface  *render.Surface
	renderer *render.Renderer

	frameID  loop.FrameID
	running  bool
	frames   uint64
	inFlight int
	closed   bool
}

// New creates an empty viewer. The scene is built on the first
// successful Display.
func New(sched Scheduler, opts Options) *Viewer {
	opts = opts.withDefaults()
	return &Viewer{
		sched:    sched,
		opts:     opts,
		log:      opts.Logger,
		decoder:  DecodeSTL,
		surface:  render.NewSurface(opts.Width, opts.Height),
		renderer: render.NewRenderer(opts.DepthCue),
	}
}

// DecodeSTL is the default Decoder
func DecodeSTL(file ModelFile) (*stl.Model, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return stl.Decode(rc)
}

// SetDecoder replaces the decoder used by later Display calls
func (v *Viewer) SetDecoder(d Decoder) {
	v.decoder = d
}

// SelectFile stores file as the pending selection, replacing any earlier
// one. The displayed scene is not touched.
func (v *Viewer) SelectFile(file ModelFile) {
	v.pending = &file
}

// Pending returns the selected file, if any
func (v *Viewer) Pending() (ModelFile, bool) {
	if v.pending == nil {
		return ModelFile{}, false
	}
	return *v.pending, true
}

// Display decodes the pending file in the background and adds it to the
// scene once decoded. Failures are logged and leave the scene unchanged.
//
// Overlapping calls are not serialized: each decode adds its mesh when it
// completes, in completion order.
func (v *Viewer) Display() {
	if v.closed {
		return
	}
	if v.pending == nil {
		v.log.Error("no file selected", "err", ErrNoFileSelected)
		v.notifyError(ErrNoFileSelected)
		return
	}

	file := *v.pending
	decode := v.decoder
	v.inFlight++
	v.log.Info("displaying file", "file", file.Name())

	go func() {
		model, err := decode(file)
		v.sched.Post(func() {
			v.complete(file, model, err)
		})
	}()
}

// InFlight returns the number of decodes that have not completed
func (v *Viewer) InFlight() int {
	return v.inFlight
}

func (v *Viewer) complete(file ModelFile, model *stl.Model, err error) {
	v.inFlight--
	if v.closed {
		v.log.Debug("dropping decode after close", "file", file.Name())
		return
	}
	if err != nil {
		derr := &DecodeError{File: file.Name(), Err: err}
		v.log.Error("error loading model", "file", file.Name(), "err", derr)
		v.notifyError(derr)
		return
	}

	mesh := scene.NewMesh(file.Name(), scene.NewBufferGeometry(model), scene.NewWireframeMaterial(v.opts.Wireframe))
	if v.scene == nil {
		v.setupScene()
	}
	v.scene.Add(mesh)

	v.log.Info("model loaded", "file", file.Name(), "triangles", mesh.Geometry.TriangleCount(), "meshes", len(v.scene.Meshes()))
	v.start()

	if v.opts.OnLoaded != nil {
		v.opts.OnLoaded(file, mesh)
	}
}

func (v *Viewer) notifyError(err error) {
	if v.opts.OnError != nil {
		v.opts.OnError(err)
	}
}

// setupScene builds the scene, camera, light and controls together
func (v *Viewer) setupScene() {
	w, h := v.surface.Size()

	s := scene.New()
	s.Background = v.opts.Background

	camera := scene.NewPerspectiveCamera(v.opts.FOV, float64(w)/float64(h), v.opts.Near, v.opts.Far)
	camera.Position = geometry.NewVector3(0, 0, v.opts.CameraDistance)
	camera.LookAt(geometry.Vector3{})

	light := scene.NewPointLight(v.opts.LightColor, 1, 100)
	light.Position = geometry.NewVector3(0, 0, v.opts.CameraDistance)

	s.Add(camera, light)

	ctl := controls.NewOrbitControls(camera, v.surface)
	ctl.EnableDamping = v.opts.EnableDamping
	ctl.DampingFactor = v.opts.DampingFactor
	ctl.AutoRotate = v.opts.AutoRotate
	ctl.AutoRotateSpeed = v.opts.AutoRotateSpeed

	v.scene, v.camera, v.light, v.controls = s, camera, light, ctl
}

func (v *Viewer) start() {
	if v.running {
		return
	}
	v.running = true
	v.frameID = v.sched.RequestFrame(v.frame)
}

// frame renders one frame and requests the next
func (v *Viewer) frame(now time.Time) {
	if v.closed {
		return
	}

	v.controls.Update()
	v.renderer.Render(v.scene, v.camera, v.surface)
	v.frames++

	if v.opts.OnFrame != nil {
		v.opts.OnFrame(Frame{Number: v.frames, Time: now, Image: v.surface.Image()})
	}

	v.frameID = v.sched.RequestFrame(v.frame)
}

// Resize follows a viewport resize. The camera aspect is updated once the
// scene exists; the surface always takes the new size.
func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if v.camera != nil {
		v.camera.Aspect = float64(width) / float64(height)
		v.camera.UpdateProjectionMatrix()
	}
	v.surface.SetSize(width, height)
}

// Orbit forwards a pointer drag to the controls
func (v *Viewer) Orbit(dx, dy float64) {
	if v.controls != nil {
		v.controls.Rotate(dx, dy)
	}
}

// Pan forwards a pan drag to the controls
func (v *Viewer) Pan(dx, dy float64) {
	if v.controls != nil {
		v.controls.Pan(dx, dy)
	}
}

// Zoom forwards a wheel movement to the controls
func (v *Viewer) Zoom(delta float64) {
	if v.controls != nil {
		v.controls.Zoom(delta)
	}
}

// EndDrag tells the controls a pointer drag finished
func (v *Viewer) EndDrag() {
	if v.controls != nil {
		v.controls.EndInteraction()
	}
}

// ResetView puts the camera back at its initial position
func (v *Viewer) ResetView() {
	if v.controls != nil {
		v.controls.Reset(v.opts.CameraDistance)
	}
}

// Close stops the render loop and detaches the controls. Decodes that
// finish afterwards are dropped.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.running {
		v.sched.CancelFrame(v.frameID)
		v.running = false
	}
	if v.controls != nil {
		v.controls.Dispose()
	}
	v.pending = nil
}

// Closed reports whether Close was called
func (v *Viewer) Closed() bool { return v.closed }

// Running reports whether frames are being produced
func (v *Viewer) Running() bool { return v.running }

// Frames returns the number of frames rendered so far
func (v *Viewer) Frames() uint64 { return v.frames }

// Scene returns the scene, or nil before the first successful decode
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera returns the camera, or nil before the first successful decode
func (v *Viewer) Camera() *scene.PerspectiveCamera { return v.camera }

// Light returns the point light, or nil before the first successful decode
func (v *Viewer) Light() *scene.PointLight { return v.light }

// Controls returns the orbit controls, or nil before the first successful decode
func (v *Viewer) Controls() *controls.OrbitControls { return v.controls }

// Surface returns the render surface
func (v *Viewer) Surface() *render.Surface { return v.surface }

// Renderer returns the wireframe renderer
func (v *Viewer) Renderer() *render.Renderer { return v.renderer }
