package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label is a line of text stamped onto a frame
type Label struct {
	Face    font.Face
	Color   color.Color
	Padding int

	// Background fills the padded text box when set
	Background color.Color
}

// NewLabel returns a label using the built-in 7x13 bitmap face
func NewLabel(c color.Color) *Label {
	return &Label{Face: basicfont.Face7x13, Color: c, Padding: 4}
}

// Size returns the pixel size of text including padding
func (l *Label) Size(text string) image.Point {
	advance := font.MeasureString(l.Face, text)
	metrics := l.Face.Metrics()
	return image.Pt(advance.Ceil()+l.Padding*2, metrics.Height.Ceil()+l.Padding*2)
}

// Draw writes text with its top-left corner at pt
func (l *Label) Draw(dst draw.Image, pt image.Point, text string) {
	if l.Background != nil {
		box := image.Rectangle{Min: pt, Max: pt.Add(l.Size(text))}
		draw.Draw(dst, box, image.NewUniform(l.Background), image.Point{}, draw.Over)
	}

	ascent := l.Face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.Color),
		Face: l.Face,
		Dot:  fixed.P(pt.X+l.Padding, pt.Y+l.Padding+ascent),
	}
	d.DrawString(text)
}
