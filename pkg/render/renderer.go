package render

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/scene"
)

// Renderer rasterizes scenes as wireframes.
//
// DepthCue is the camera distance at which edges fade to their dimmest
// shade; zero disables depth cueing.
type Renderer struct {
	DepthCue float64

	lines int
}

// NewRenderer creates a renderer
func NewRenderer(depthCue float64) *Renderer {
	return &Renderer{DepthCue: depthCue}
}

// Lines returns how many edges were drawn by the last Render call
func (r *Renderer) Lines() int {
	return r.lines
}

// Render clears the surface and draws every visible mesh through cam
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera, surface *Surface) {
	surface.Clear(s.Background)
	r.lines = 0

	w, h := surface.Size()
	img := surface.Image()

	for _, mesh := range s.Meshes() {
		if !mesh.Visible || mesh.Geometry == nil || !mesh.Material.Wireframe {
			continue
		}
		g := mesh.Geometry
		for i := 0; i < g.TriangleCount(); i++ {
			tri := g.Triangle(i)
			for e := 0; e < 3; e++ {
				a := cam.ToView(tri[e].Add(mesh.Position))
				b := cam.ToView(tri[(e+1)%3].Add(mesh.Position))
				if r.drawEdge(img, cam, a, b, float64(w), float64(h), mesh.Material.Color) {
					r.lines++
				}
			}
		}
	}
}

// drawEdge clips a camera-space edge against the near and far planes and
// the viewport before rasterizing it.
func (r *Renderer) drawEdge(img *image.RGBA, cam *scene.PerspectiveCamera, a, b geometry.Vector3, w, h float64, col color.RGBA) bool {
	a, b, ok := clipDepth(a, b, cam.Near, cam.Far)
	if !ok {
		return false
	}

	x1, y1 := cam.ProjectView(a, w, h)
	x2, y2 := cam.ProjectView(b, w, h)
	x1, y1, x2, y2, ok = clipLine(x1, y1, x2, y2, w-1, h-1)
	if !ok {
		return false
	}

	drawLine(img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), r.shade(col, (a.Z+b.Z)/2))
	return true
}

func (r *Renderer) shade(col color.RGBA, depth float64) color.RGBA {
	if r.DepthCue <= 0 {
		return col
	}
	// Keep at least 35% brightness so distant edges stay visible
	f := 1 - 0.65*math.Min(depth/r.DepthCue, 1)
	return color.RGBA{
		R: uint8(float64(col.R) * f),
		G: uint8(float64(col.G) * f),
		B: uint8(float64(col.B) * f),
		A: col.A,
	}
}

// clipDepth trims the segment to near <= z <= far
func clipDepth(a, b geometry.Vector3, near, far float64) (geometry.Vector3, geometry.Vector3, bool) {
	if a.Z < near && b.Z < near || a.Z > far && b.Z > far {
		return a, b, false
	}
	if a.Z < near {
		a = a.Lerp(b, (near-a.Z)/(b.Z-a.Z))
	} else if b.Z < near {
		b = b.Lerp(a, (near-b.Z)/(a.Z-b.Z))
	}
	if a.Z > far {
		a = a.Lerp(b, (a.Z-far)/(a.Z-b.Z))
	} else if b.Z > far {
		b = b.Lerp(a, (b.Z-far)/(b.Z-a.Z))
	}
	return a, b, true
}
