package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/scene"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var green = color.RGBA{G: 255, A: 255}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func testScene(t *testing.T) (*scene.Scene, *scene.PerspectiveCamera) {
	t.Helper()
	model := stl.NewModel("tri")
	model.AddTriangle(geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(-1, -1, 0),
		geometry.NewVector3(1, -1, 0),
		geometry.NewVector3(0, 1, 0),
	))

	s := scene.New()
	s.Add(scene.NewMesh("tri", scene.NewBufferGeometry(model), scene.NewWireframeMaterial(green)))

	cam := scene.NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = geometry.NewVector3(0, 0, 5)
	cam.LookAt(geometry.Vector3{})
	return s, cam
}

func TestSurfaceSetSize(t *testing.T) {
	s := NewSurface(64, 32)
	w, h := s.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	s.SetSize(0, -3)
	w, h = s.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestSurfaceClearAndSnapshot(t *testing.T) {
	s := NewSurface(10, 10)
	red := color.RGBA{R: 255, A: 255}
	s.Clear(red)
	assert.Equal(t, 100, countColor(s.Image(), red))

	snap := s.Snapshot(1)
	s.Clear(color.RGBA{A: 255})
	assert.Equal(t, 100, countColor(snap, red), "snapshot must not alias the surface")

	half := s.Snapshot(0.5)
	assert.Equal(t, image.Rect(0, 0, 5, 5), half.Rect)
}

func TestRenderDrawsWireframe(t *testing.T) {
	s, cam := testScene(t)
	surface := NewSurface(100, 100)
	r := NewRenderer(0)

	r.Render(s, cam, surface)

	assert.Equal(t, 3, r.Lines())
	assert.Positive(t, countColor(surface.Image(), green))
	assert.Equal(t, color.RGBA{A: 255}, surface.Image().RGBAAt(0, 0), "background is cleared")
}

func TestRenderSkipsGeometryBehindCamera(t *testing.T) {
	s, cam := testScene(t)
	cam.Position = geometry.NewVector3(0, 0, -5)
	cam.LookAt(geometry.NewVector3(0, 0, -10))
	surface := NewSurface(50, 50)
	r := NewRenderer(0)

	r.Render(s, cam, surface)

	assert.Zero(t, r.Lines())
	assert.Zero(t, countColor(surface.Image(), green))
}

func TestRenderDepthCueDims(t *testing.T) {
	s, cam := testScene(t)
	surface := NewSurface(100, 100)
	r := NewRenderer(5)

	r.Render(s, cam, surface)

	assert.Zero(t, countColor(surface.Image(), green))
	assert.Equal(t, 3, r.Lines())
}

func TestRenderEmptyScene(t *testing.T) {
	_, cam := testScene(t)
	surface := NewSurface(20, 20)
	r := NewRenderer(0)

	r.Render(scene.New(), cam, surface)
	assert.Zero(t, r.Lines())
}

func TestClipDepth(t *testing.T) {
	a := geometry.NewVector3(0, 0, -1)
	b := geometry.NewVector3(0, 0, 3)

	ca, cb, ok := clipDepth(a, b, 1, 2)
	require.True(t, ok)
	assert.InDelta(t, 1, ca.Z, 1e-12)
	assert.InDelta(t, 2, cb.Z, 1e-12)

	_, _, ok = clipDepth(geometry.NewVector3(0, 0, 5), geometry.NewVector3(1, 1, 6), 1, 2)
	assert.False(t, ok)
}

func TestClipLine(t *testing.T) {
	x1, y1, x2, y2, ok := clipLine(-10, 5, 20, 5, 10, 10)
	require.True(t, ok)
	assert.InDelta(t, 0, x1, 1e-9)
	assert.InDelta(t, 5, y1, 1e-9)
	assert.InDelta(t, 10, x2, 1e-9)
	assert.InDelta(t, 5, y2, 1e-9)

	_, _, _, _, ok = clipLine(-10, -10, -5, -5, 10, 10)
	assert.False(t, ok)
}
