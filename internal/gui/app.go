// Package gui is the fyne frontend: a file picker, a "Display STL" button
// and the 3D viewport.
package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/loop"
	"github.com/philipparndt/stlview/pkg/scene"
	"github.com/philipparndt/stlview/pkg/viewer"
	"github.com/philipparndt/stlview/version"
)

// Window holds the widgets of the viewer window
type Window struct {
	window   fyne.Window
	loop     *loop.Loop
	viewer   *viewer.Viewer
	viewport *Viewport
	log      *slog.Logger

	selected *widget.Label
	status   *widget.Label
}

// NewWindow builds the viewer window on app a. The viewer belongs to l;
// nothing runs until l is driven.
func NewWindow(a fyne.App, cfg config.Config, logger *slog.Logger, l *loop.Loop) *Window {
	w := &Window{
		window:   a.NewWindow("stlview " + version.GetVersion()),
		loop:     l,
		log:      logger,
		selected: widget.NewLabel("No file selected"),
		status:   widget.NewLabel(""),
	}
	w.status.Wrapping = fyne.TextWrapWord

	opts := cfg.ViewerOptions(logger)
	opts.OnLoaded = func(file viewer.ModelFile, mesh *scene.Mesh) {
		w.setStatus(fmt.Sprintf("Loaded %s (%d triangles)", file.Name(), mesh.Geometry.TriangleCount()))
	}
	opts.OnError = func(err error) {
		w.setStatus(err.Error())
	}
	opts.OnFrame = func(frame viewer.Frame) {
		w.viewport.Present(frame)
	}
	w.viewer = viewer.New(l, opts)
	w.viewport = NewViewport(l, w.viewer)

	openButton := widget.NewButton("Open STL File", w.showFileDialog)
	displayButton := widget.NewButton("Display STL", func() {
		l.Post(w.viewer.Display)
	})
	resetButton := widget.NewButton("Reset View", func() {
		l.Post(w.viewer.ResetView)
	})

	instructions := widget.NewLabel(
		"Drag to orbit\n" +
			"Right drag or shift drag to pan\n" +
			"Scroll to zoom",
	)

	panel := container.NewVBox(
		w.selected,
		container.NewHBox(openButton, displayButton, resetButton),
		widget.NewSeparator(),
		w.status,
		widget.NewSeparator(),
		instructions,
	)

	w.window.SetContent(container.NewBorder(panel, nil, nil, nil, w.viewport))
	w.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	return w
}

// Select makes file the pending file and shows its name
func (w *Window) Select(file viewer.ModelFile) {
	w.selected.SetText("Selected: " + file.Name())
	w.loop.Post(func() {
		w.viewer.SelectFile(file)
	})
}

func (w *Window) setStatus(text string) {
	fyne.Do(func() {
		w.status.SetText(text)
	})
}

func (w *Window) showFileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read %s: %w", reader.URI().Name(), err), w.window)
			return
		}
		w.Select(viewer.FileFromBytes(reader.URI().Name(), data))
	}, w.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".STL"}))
	d.Show()
}

// Run opens the window and blocks until it is closed. A file given in
// args is selected and displayed right away.
func Run(cfg config.Config, logger *slog.Logger, args []string) error {
	a := app.NewWithID("com.github.philipparndt.stlview")
	l := loop.New()
	w := NewWindow(a, cfg, logger, l)

	if len(args) > 0 {
		w.Select(viewer.FileFromPath(args[0]))
		l.Post(w.viewer.Display)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx, time.Second/time.Duration(cfg.Window.FPS))
	}()

	w.window.ShowAndRun()

	cancel()
	<-done
	w.viewer.Close()
	logger.Debug("window closed", "frames", w.viewer.Frames())
	return nil
}
