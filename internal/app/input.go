package app

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlview/pkg/viewer"
)

// pollInput reads this frame's keyboard, mouse and drop events
func pollInput() InputFrame {
	in := InputFrame{
		LeftDown:   rl.IsMouseButtonDown(rl.MouseLeftButton),
		MiddleDown: rl.IsMouseButtonDown(rl.MouseMiddleButton),
		RightDown:  rl.IsMouseButtonDown(rl.MouseRightButton),
		Shift:      rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Delta:      rl.GetMouseDelta(),
		Wheel:      rl.GetMouseWheelMove(),
		Reset:      rl.IsKeyPressed(rl.KeyHome),
		Display:    rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyD),
		ToggleHelp: rl.IsKeyPressed(rl.KeyH),
	}

	if rl.IsFileDropped() {
		in.Dropped = rl.LoadDroppedFiles()
		rl.UnloadDroppedFiles()
	}
	return in
}

// handleInput applies one frame of input to the viewer
func (app *App) handleInput(in InputFrame) {
	applyInput(app.viewer, &app.Interaction, &app.UI, in)
}

func applyInput(nav Navigator, state *InteractionState, ui *UIState, in InputFrame) {
	if len(in.Dropped) > 0 {
		// Only the last dropped file stays pending
		path := in.Dropped[len(in.Dropped)-1]
		nav.SelectFile(viewer.FileFromPath(path))
		ui.selected = filepath.Base(path)
	}
	if in.Display {
		nav.Display()
	}
	if in.Reset {
		nav.ResetView()
	}
	if in.ToggleHelp {
		ui.showHelp = !ui.showHelp
	}

	down := in.LeftDown || in.MiddleDown || in.RightDown
	if down && !state.isDragging {
		state.isDragging = true
		state.isPanning = in.MiddleDown || in.RightDown || in.Shift
	}
	if state.isDragging && !down {
		state.isDragging = false
		state.isPanning = false
		nav.EndDrag()
	}

	if state.isDragging && (in.Delta.X != 0 || in.Delta.Y != 0) {
		dx, dy := float64(in.Delta.X), float64(in.Delta.Y)
		if state.isPanning {
			nav.Pan(dx, dy)
		} else {
			nav.Orbit(dx, dy)
		}
	}

	if in.Wheel != 0 {
		// Wheel up is positive in raylib and zooms in
		nav.Zoom(-float64(in.Wheel))
	}
}
