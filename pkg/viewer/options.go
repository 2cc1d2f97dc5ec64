package viewer

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/philipparndt/stlview/pkg/scene"
)

// Options configure a Viewer. Zero sizes, camera settings and colours are
// replaced by the defaults from DefaultOptions; the controls tuning is
// used as given.
type Options struct {
	Logger *slog.Logger

	// Initial render surface size in pixels
	Width  int
	Height int

	FOV            float64 // vertical, degrees
	Near           float64
	Far            float64
	CameraDistance float64

	Background color.RGBA
	Wireframe  color.RGBA
	LightColor color.RGBA
	DepthCue   float64

	EnableDamping   bool
	DampingFactor   float64
	AutoRotate      bool
	AutoRotateSpeed float64

	// OnFrame is called on the loop goroutine after every rendered frame.
	// The image is reused by the next frame.
	OnFrame func(frame Frame)

	// OnLoaded and OnError are called on the loop goroutine after a
	// Display call finishes, next to the log record.
	OnLoaded func(file ModelFile, mesh *scene.Mesh)
	OnError  func(err error)
}

// Frame describes a rendered frame handed to OnFrame
type Frame struct {
	Number uint64
	Time   time.Time
	Image  *image.RGBA
}

// DefaultOptions returns the stock viewer configuration
func DefaultOptions() Options {
	return Options{
		Logger:          slog.Default(),
		Width:           800,
		Height:          600,
		FOV:             75,
		Near:            0.1,
		Far:             1000,
		CameraDistance:  5,
		Background:      color.RGBA{A: 255},
		Wireframe:       color.RGBA{G: 255, A: 255},
		LightColor:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		DampingFactor:   0.05,
		AutoRotateSpeed: 2.0,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.FOV <= 0 {
		o.FOV = d.FOV
	}
	if o.Near <= 0 {
		o.Near = d.Near
	}
	if o.Far <= 0 {
		o.Far = d.Far
	}
	if o.CameraDistance <= 0 {
		o.CameraDistance = d.CameraDistance
	}
	if o.Background == (color.RGBA{}) {
		o.Background = d.Background
	}
	if o.Wireframe == (color.RGBA{}) {
		o.Wireframe = d.Wireframe
	}
	if o.LightColor == (color.RGBA{}) {
		o.LightColor = d.LightColor
	}
	return o
}
