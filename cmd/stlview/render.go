package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/stlview/cmd"
	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/loop"
	"github.com/philipparndt/stlview/pkg/openscad"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/scene"
	"github.com/philipparndt/stlview/pkg/viewer"
	"github.com/philipparndt/stlview/pkg/watcher"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	output string
	frames int
	orbit  float64
	scale  float64
	label  bool
	watch  bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render <file>...",
	Short: "Render models to a PNG without opening a window",
	Long: `Display each file in turn in an off-screen viewer, run the render loop for
the requested number of frames and write the last frame as PNG.

With --watch the files are watched for changes. A changed file is displayed
again and the PNG is rewritten until the command is interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, logger, err := cmd.Setup(c, &flags)
		if err != nil {
			return err
		}
		return runRender(c.Context(), cfg, logger, args, renderOpts)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.output, "output", "o", "stlview.png", "PNG file to write")
	f.IntVarP(&renderOpts.frames, "frames", "n", 1, "number of frames to render")
	f.Float64Var(&renderOpts.orbit, "orbit", 0, "horizontal orbit per frame, in pixels of drag")
	f.Float64Var(&renderOpts.scale, "scale", 1, "scale factor applied to the written image")
	f.BoolVar(&renderOpts.label, "label", false, "stamp the model names and frame number onto the image")
	f.BoolVarP(&renderOpts.watch, "watch", "w", false, "re-render when a file changes")
}

var errNothingDisplayed = errors.New("no model could be displayed")

// headless bundles an off-screen viewer with the loop driving it
type headless struct {
	loop   *loop.Loop
	viewer *viewer.Viewer
	scad   *openscad.Renderer
	opts   renderOptions
	log    *slog.Logger

	dirty bool
	names []string
}

func newHeadless(cfg config.Config, logger *slog.Logger, opts renderOptions) *headless {
	h := &headless{loop: loop.New(), opts: opts, log: logger}

	vopts := cfg.ViewerOptions(logger)
	vopts.OnLoaded = func(file viewer.ModelFile, _ *scene.Mesh) {
		h.dirty = true
		h.names = append(h.names, file.Name())
	}
	h.viewer = viewer.New(h.loop, vopts)
	h.scad = openscad.NewRenderer(".", logger)
	h.viewer.SetDecoder(h.scad.Decoder(viewer.DecodeSTL))
	return h
}

// display decodes files one after another and waits for each completion
func (h *headless) display(ctx context.Context, files []string) error {
	for _, file := range files {
		h.viewer.SelectFile(viewer.FileFromPath(file))
		h.viewer.Display()
		if err := h.loop.RunNext(ctx); err != nil {
			return err
		}
	}
	if h.viewer.Scene() == nil {
		return errNothingDisplayed
	}
	return nil
}

// frames ticks the requested number of frames and writes the last one
func (h *headless) frames() error {
	for range h.opts.frames {
		h.viewer.Orbit(h.opts.orbit, 0)
		h.loop.Tick(time.Now())
	}
	return h.write()
}

func (h *headless) write() error {
	h.dirty = false
	img := h.viewer.Surface().Snapshot(h.opts.scale)
	if h.opts.label {
		text := fmt.Sprintf("%s  frame %d", strings.Join(h.names, ", "), h.viewer.Frames())
		label := render.NewLabel(color.White)
		label.Background = color.RGBA{A: 160}
		label.Draw(img, image.Point{}, text)
	}
	if err := writePNG(h.opts.output, img); err != nil {
		return err
	}
	h.log.Info("frame written", "file", h.opts.output, "frame", h.viewer.Frames())
	return nil
}

func runRender(ctx context.Context, cfg config.Config, logger *slog.Logger, files []string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", opts.frames)
	}
	if opts.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", opts.scale)
	}

	h := newHeadless(cfg, logger, opts)
	defer h.viewer.Close()

	if err := h.display(ctx, files); err != nil {
		return err
	}
	if err := h.frames(); err != nil || !opts.watch {
		return err
	}
	return h.watch(ctx, files, time.Second/time.Duration(cfg.Window.FPS))
}

// watch displays files again when they change and writes the first
// frame rendered after each reload, until ctx is done or interrupted.
func (h *headless) watch(ctx context.Context, files []string, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fw, err := watcher.NewFileWatcher(500*time.Millisecond, h.log)
	if err != nil {
		return err
	}
	defer fw.Close()

	roots, err := h.watchList(files)
	if err != nil {
		return err
	}
	watched := make([]string, 0, len(roots))
	for dep := range roots {
		watched = append(watched, dep)
	}

	err = fw.Watch(watched, func(changed string) {
		root := roots[changed]
		h.loop.Post(func() {
			h.viewer.SelectFile(viewer.FileFromPath(root))
			h.viewer.Display()
		})
	})
	if err != nil {
		return err
	}
	fw.Start()

	var writeErr error
	var afterFrame func(time.Time)
	afterFrame = func(time.Time) {
		if h.dirty {
			if writeErr = h.write(); writeErr != nil {
				stop()
				return
			}
		}
		h.loop.RequestFrame(afterFrame)
	}
	h.loop.RequestFrame(afterFrame)

	h.log.Info("watching for changes", "files", len(watched))
	err = h.loop.Run(ctx, interval)
	if writeErr != nil {
		return writeErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchList maps every file to watch onto the model it belongs to.
// OpenSCAD sources bring their use/include dependencies along.
func (h *headless) watchList(files []string) (map[string]string, error) {
	roots := make(map[string]string)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		if !openscad.IsSource(file) {
			roots[abs] = file
			continue
		}
		deps, err := h.scad.ResolveDependencies(abs)
		if err != nil {
			return nil, err
		}
		for _, dep := range deps {
			roots[dep] = file
		}
	}
	return roots, nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
