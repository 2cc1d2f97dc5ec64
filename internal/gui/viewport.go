package gui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/stlview/pkg/viewer"
)

// Navigator is the part of the viewer the viewport forwards input to
type Navigator interface {
	Orbit(dx, dy float64)
	Pan(dx, dy float64)
	Zoom(delta float64)
	EndDrag()
	Resize(width, height int)
}

// Poster queues work for the goroutine that owns the viewer
type Poster interface {
	Post(fn func())
}

// Viewport presents the viewer's render surface and turns pointer input
// into camera navigation. Input handlers run on the fyne goroutine and
// only post work to the loop.
type Viewport struct {
	widget.BaseWidget

	loop   Poster
	target Navigator
	raster *canvas.Raster

	mu     sync.Mutex
	front  *image.RGBA
	width  int
	height int

	panning bool
}

// NewViewport creates a viewport forwarding input to target through loop
func NewViewport(loop Poster, target Navigator) *Viewport {
	vp := &Viewport{loop: loop, target: target}
	vp.raster = canvas.NewRaster(vp.generate)
	vp.ExtendBaseWidget(vp)
	return vp
}

// CreateRenderer creates the renderer for the widget
func (vp *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vp.raster)
}

// MinSize keeps the viewport usable next to the controls
func (vp *Viewport) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// generate is the raster callback. It reports size changes to the viewer
// and returns the last presented frame.
func (vp *Viewport) generate(w, h int) image.Image {
	vp.mu.Lock()
	resized := w != vp.width || h != vp.height
	vp.width, vp.height = w, h
	front := vp.front
	vp.mu.Unlock()

	if resized && w > 0 && h > 0 {
		vp.loop.Post(func() {
			vp.target.Resize(w, h)
		})
	}
	if front == nil {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	return front
}

// Present copies a rendered frame into the front buffer and schedules a
// redraw. It is called on the loop goroutine.
func (vp *Viewport) Present(frame viewer.Frame) {
	vp.mu.Lock()
	if vp.front == nil || vp.front.Rect != frame.Image.Rect {
		vp.front = image.NewRGBA(frame.Image.Rect)
	}
	copy(vp.front.Pix, frame.Image.Pix)
	vp.mu.Unlock()

	fyne.Do(vp.raster.Refresh)
}

// Frame returns the last presented frame, nil before the first one
func (vp *Viewport) Frame() *image.RGBA {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	return vp.front
}

// MouseDown picks pan or orbit for the drag that follows
func (vp *Viewport) MouseDown(ev *desktop.MouseEvent) {
	vp.panning = ev.Button == desktop.MouseButtonSecondary ||
		ev.Button == desktop.MouseButtonTertiary ||
		ev.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp is required by desktop.Mouseable
func (vp *Viewport) MouseUp(*desktop.MouseEvent) {}

// Dragged orbits, or pans when the drag started with the secondary button
func (vp *Viewport) Dragged(ev *fyne.DragEvent) {
	dx, dy := float64(ev.Dragged.DX), float64(ev.Dragged.DY)
	if vp.panning {
		vp.loop.Post(func() { vp.target.Pan(dx, dy) })
		return
	}
	vp.loop.Post(func() { vp.target.Orbit(dx, dy) })
}

// DragEnd lets damping carry the motion on
func (vp *Viewport) DragEnd() {
	vp.panning = false
	vp.loop.Post(vp.target.EndDrag)
}

// Scrolled zooms in when scrolling up
func (vp *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	delta := -float64(ev.Scrolled.DY)
	vp.loop.Post(func() { vp.target.Zoom(delta) })
}
