// Package app is the raylib frontend. The raylib main loop owns the event
// loop: it runs posted work, applies input and ticks frames on the
// window's thread.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/loop"
	"github.com/philipparndt/stlview/pkg/openscad"
	"github.com/philipparndt/stlview/pkg/scene"
	"github.com/philipparndt/stlview/pkg/viewer"
)

type App struct {
	loop   *loop.Loop
	viewer *viewer.Viewer
	log    *slog.Logger

	Interaction InteractionState
	View        ViewState
	UI          UIState
}

// New creates the app and its viewer. The viewer surface starts at the
// configured window size.
func New(cfg config.Config, logger *slog.Logger) *App {
	app := &App{
		loop: loop.New(),
		log:  logger,
		UI:   UIState{showHelp: true},
	}

	opts := cfg.ViewerOptions(logger)
	opts.OnLoaded = func(file viewer.ModelFile, mesh *scene.Mesh) {
		app.UI.status = fmt.Sprintf("Loaded %s (%d triangles)", file.Name(), mesh.Geometry.TriangleCount())
		app.UI.statusErr = false
	}
	opts.OnError = func(err error) {
		app.UI.status = err.Error()
		app.UI.statusErr = true
	}
	app.viewer = viewer.New(app.loop, opts)
	app.viewer.SetDecoder(openscad.NewRenderer(".", logger).Decoder(viewer.DecodeSTL))
	return app
}

// Open selects and displays a file given on the command line
func (app *App) Open(path string) {
	app.viewer.SelectFile(viewer.FileFromPath(path))
	app.UI.selected = filepath.Base(path)
	app.viewer.Display()
}

// Run opens the window and blocks until it is closed
func Run(cfg config.Config, logger *slog.Logger, args []string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "stlview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	app := New(cfg, logger)
	defer app.unloadTexture()
	defer app.viewer.Close()

	for _, path := range args {
		app.Open(path)
	}

	for !rl.WindowShouldClose() {
		app.step(time.Now())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		app.drawUI()
		rl.EndDrawing()
	}

	logger.Debug("window closed", "frames", app.viewer.Frames())
	return nil
}

// step runs one iteration of the event loop
func (app *App) step(now time.Time) {
	app.loop.RunPending()

	if rl.IsWindowResized() {
		app.viewer.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	app.handleInput(pollInput())

	app.loop.Tick(now)
	app.uploadFrame()
}
