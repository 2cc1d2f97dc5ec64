package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlview/pkg/viewer"
)

// InteractionState holds mouse drag state between frames
type InteractionState struct {
	isDragging bool
	isPanning  bool
}

// ViewState holds the texture the render surface is uploaded to
type ViewState struct {
	texture    rl.Texture2D
	hasTexture bool
	width      int32
	height     int32
	lastFrame  uint64
}

// UIState holds what the overlay shows
type UIState struct {
	selected  string
	status    string
	statusErr bool
	showHelp  bool
}

// InputFrame is the input polled for one frame
type InputFrame struct {
	LeftDown   bool
	MiddleDown bool
	RightDown  bool
	Shift      bool
	Delta      rl.Vector2
	Wheel      float32

	Reset      bool
	Display    bool
	ToggleHelp bool
	Dropped    []string
}

// Navigator is the part of the viewer input is applied to
type Navigator interface {
	Orbit(dx, dy float64)
	Pan(dx, dy float64)
	Zoom(delta float64)
	EndDrag()
	ResetView()
	SelectFile(file viewer.ModelFile)
	Display()
}
