package app

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlview/version"
)

// uploadFrame copies the render surface into the window texture when a
// new frame was rendered, recreating the texture after a resize.
func (app *App) uploadFrame() {
	frames := app.viewer.Frames()
	if frames == 0 || frames == app.View.lastFrame {
		return
	}
	app.View.lastFrame = frames

	img := app.viewer.Surface().Image()
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
	if !app.View.hasTexture || w != app.View.width || h != app.View.height {
		app.unloadTexture()
		rimg := rl.NewImageFromImage(img)
		app.View.texture = rl.LoadTextureFromImage(rimg)
		rl.UnloadImage(rimg)
		app.View.width, app.View.height = w, h
		app.View.hasTexture = true
		return
	}
	rl.UpdateTexture(app.View.texture, rgbaPixels(img))
}

func (app *App) unloadTexture() {
	if app.View.hasTexture {
		rl.UnloadTexture(app.View.texture)
		app.View.hasTexture = false
	}
}

// rgbaPixels reinterprets the surface buffer as the pixel slice raylib
// expects. Both are tightly packed 8-bit RGBA.
func rgbaPixels(img *image.RGBA) []color.RGBA {
	if len(img.Pix) == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), len(img.Pix)/4)
}

// drawUI draws the viewport texture and the text overlay
func (app *App) drawUI() {
	if app.View.hasTexture {
		rl.DrawTexture(app.View.texture, 0, 0, rl.White)
	} else {
		msg := "Drop an STL file here, then press Enter"
		size := rl.MeasureText(msg, 20)
		rl.DrawText(msg, (int32(rl.GetScreenWidth())-size)/2, int32(rl.GetScreenHeight())/2-10, 20, rl.LightGray)
	}

	y := int32(10)
	if app.UI.selected != "" {
		rl.DrawText("Selected: "+app.UI.selected, 10, y, 16, rl.White)
		y += 20
	}
	if app.UI.status != "" {
		c := rl.Lime
		if app.UI.statusErr {
			c = rl.Red
		}
		rl.DrawText(app.UI.status, 10, y, 16, c)
		y += 20
	}

	if app.UI.showHelp {
		y += 10
		for _, line := range helpLines {
			rl.DrawText(line, 10, y, 14, rl.NewColor(200, 200, 200, 255))
			y += 18
		}
	}

	bottomY := int32(rl.GetScreenHeight()) - 20
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawText(versionText, 10, bottomY, 12, rl.Gray)
	fpsText := fmt.Sprintf("FPS: %d  Meshes: %d", rl.GetFPS(), app.meshCount())
	rl.DrawText(fpsText, 10+rl.MeasureText(versionText, 12)+15, bottomY, 12, rl.Lime)
}

var helpLines = []string{
	"Controls:",
	"  Drop file: Select model",
	"  Enter / D: Display selected model",
	"  Left drag: Orbit",
	"  Shift / right / middle drag: Pan",
	"  Wheel: Zoom",
	"  Home: Reset view",
	"  H: Toggle help",
}

func (app *App) meshCount() int {
	if app.viewer.Scene() == nil {
		return 0
	}
	return len(app.viewer.Scene().Meshes())
}
