package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is the drawable area frames are rasterized into
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a width x height surface
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.SetSize(width, height)
	return s
}

// SetSize reallocates the pixel buffer. Dimensions below one pixel are
// clamped to one.
func (s *Surface) SetSize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Size returns the pixel dimensions
func (s *Surface) Size() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Image returns the backing buffer. It is reused between frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear fills the surface with a single colour
func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Snapshot copies the current frame, optionally scaled by factor
func (s *Surface) Snapshot(factor float64) *image.RGBA {
	if factor <= 0 || factor == 1 {
		out := image.NewRGBA(s.img.Rect)
		copy(out.Pix, s.img.Pix)
		return out
	}
	w, h := s.Size()
	out := image.NewRGBA(image.Rect(0, 0, max(int(float64(w)*factor), 1), max(int(float64(h)*factor), 1)))
	draw.ApproxBiLinear.Scale(out, out.Rect, s.img, s.img.Rect, draw.Src, nil)
	return out
}
