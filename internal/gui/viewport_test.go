package gui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/loop"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/philipparndt/stlview/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op   string
	a, b float64
}

type navigator struct {
	calls []call
}

func (n *navigator) Orbit(dx, dy float64) { n.calls = append(n.calls, call{"orbit", dx, dy}) }
func (n *navigator) Pan(dx, dy float64)   { n.calls = append(n.calls, call{"pan", dx, dy}) }
func (n *navigator) Zoom(delta float64)   { n.calls = append(n.calls, call{"zoom", delta, 0}) }
func (n *navigator) EndDrag()             { n.calls = append(n.calls, call{op: "end"}) }
func (n *navigator) Resize(w, h int) {
	n.calls = append(n.calls, call{"resize", float64(w), float64(h)})
}

func TestViewportInputRunsOnLoop(t *testing.T) {
	l := loop.New()
	nav := &navigator{}
	vp := NewViewport(l, nav)

	vp.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(3, 4)})
	assert.Empty(t, nav.calls)

	l.RunPending()
	assert.Equal(t, []call{{"orbit", 3, 4}}, nav.calls)
}

func TestViewportSecondaryDragPans(t *testing.T) {
	l := loop.New()
	nav := &navigator{}
	vp := NewViewport(l, nav)

	vp.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	vp.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(5, -2)})
	vp.DragEnd()
	vp.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	vp.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(1, 1)})
	l.RunPending()

	assert.Equal(t, []call{
		{"pan", 5, -2},
		{op: "end"},
		{"orbit", 1, 1},
	}, nav.calls)
}

func TestViewportShiftDragPans(t *testing.T) {
	l := loop.New()
	nav := &navigator{}
	vp := NewViewport(l, nav)

	vp.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary, Modifier: fyne.KeyModifierShift})
	vp.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(2, 2)})
	l.RunPending()

	assert.Equal(t, []call{{"pan", 2, 2}}, nav.calls)
}

func TestViewportScrollUpZoomsIn(t *testing.T) {
	l := loop.New()
	nav := &navigator{}
	vp := NewViewport(l, nav)

	vp.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 10)})
	l.RunPending()

	assert.Equal(t, []call{{"zoom", -10, 0}}, nav.calls)
}

func TestViewportGenerateReportsResize(t *testing.T) {
	l := loop.New()
	nav := &navigator{}
	vp := NewViewport(l, nav)

	img := vp.generate(120, 80)
	assert.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())

	vp.generate(120, 80)
	l.RunPending()
	assert.Equal(t, []call{{"resize", 120, 80}}, nav.calls)
}

func TestViewportPresentCopiesFrame(t *testing.T) {
	test.NewTempApp(t)

	vp := NewViewport(loop.New(), &navigator{})
	assert.Nil(t, vp.Frame())

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(1, 1, color.RGBA{G: 255, A: 255})
	vp.Present(viewer.Frame{Number: 1, Image: src})

	front := vp.Frame()
	require.NotNil(t, front)
	assert.NotSame(t, src, front)
	assert.Equal(t, src.Pix, front.Pix)

	src.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	assert.Equal(t, color.RGBA{G: 255, A: 255}, front.RGBAAt(1, 1))
	assert.Same(t, front, vp.generate(4, 3))
}

func stlBytes(t *testing.T) []byte {
	t.Helper()

	m := stl.NewModel("tri")
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(-1, -1, 0),
		geometry.NewVector3(1, -1, 0),
		geometry.NewVector3(0, 1, 0),
	))
	var buf bytes.Buffer
	require.NoError(t, stl.WriteBinary(&buf, m))
	return buf.Bytes()
}

func TestWindowDisplaysSelectedFile(t *testing.T) {
	a := test.NewTempApp(t)

	cfg := config.Default()
	cfg.Window.Width = 64
	cfg.Window.Height = 48
	l := loop.New()
	w := NewWindow(a, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), l)
	defer w.viewer.Close()

	w.Select(viewer.FileFromBytes("tri.stl", stlBytes(t)))
	assert.Equal(t, "Selected: tri.stl", w.selected.Text)

	l.Post(w.viewer.Display)
	l.RunPending()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.RunNext(ctx))
	require.NotNil(t, w.viewer.Scene())

	l.Tick(time.Now())
	assert.NotNil(t, w.viewport.Frame())
	assert.Eventually(t, func() bool {
		return strings.HasPrefix(w.status.Text, "Loaded tri.stl")
	}, time.Second, 10*time.Millisecond)
}

func TestWindowReportsMissingSelection(t *testing.T) {
	a := test.NewTempApp(t)

	l := loop.New()
	w := NewWindow(a, config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)), l)
	defer w.viewer.Close()

	l.Post(w.viewer.Display)
	l.RunPending()

	assert.Nil(t, w.viewer.Scene())
	assert.Eventually(t, func() bool {
		return w.status.Text == viewer.ErrNoFileSelected.Error()
	}, time.Second, 10*time.Millisecond)
}
