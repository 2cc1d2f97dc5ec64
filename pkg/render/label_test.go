package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSizeGrowsWithText(t *testing.T) {
	l := NewLabel(color.White)

	short := l.Size("ab")
	long := l.Size("abcd")

	// basicfont is fixed width: 7 pixels per glyph
	assert.Equal(t, 14, long.X-short.X)
	assert.Equal(t, short.Y, long.Y)
	assert.Equal(t, 2*7+8, short.X)
}

func TestLabelDrawsInsideBox(t *testing.T) {
	l := NewLabel(color.RGBA{R: 255, A: 255})
	img := image.NewRGBA(image.Rect(0, 0, 60, 30))

	l.Draw(img, image.Pt(2, 2), "Hi")

	box := image.Rectangle{Min: image.Pt(2, 2), Max: image.Pt(2, 2).Add(l.Size("Hi"))}
	inside, outside := 0, 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y).R == 0 {
				continue
			}
			if image.Pt(x, y).In(box) {
				inside++
			} else {
				outside++
			}
		}
	}
	assert.Positive(t, inside)
	assert.Zero(t, outside)
}

func TestLabelBackgroundFillsBox(t *testing.T) {
	l := NewLabel(color.RGBA{R: 255, A: 255})
	l.Background = color.RGBA{B: 255, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 60, 30))

	l.Draw(img, image.Pt(1, 1), "Hi")

	size := l.Size("Hi")
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(size.X, size.Y))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(size.X+1, size.Y+1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
}
