// Package cmd holds the command-line plumbing shared by the stlview binaries.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/version"
	"github.com/spf13/cobra"
)

// Flags are the persistent flags every binary accepts
type Flags struct {
	ConfigFile string
	LogLevel   string
	Width      int
	Height     int
	FPS        int
	AutoRotate bool
	Damping    bool
}

// NewRootCommand creates a root command with the shared persistent flags
func NewRootCommand(use, short, long string, flags *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "TOML configuration file")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.IntVar(&flags.Width, "width", 0, "viewport width in pixels")
	pf.IntVar(&flags.Height, "height", 0, "viewport height in pixels")
	pf.IntVar(&flags.FPS, "fps", 0, "frames per second")
	pf.BoolVar(&flags.AutoRotate, "auto-rotate", false, "orbit the camera automatically")
	pf.BoolVar(&flags.Damping, "damping", false, "smooth camera motion")

	return root
}

// Setup loads the configuration, applies flags the user set explicitly
// and builds the logger.
func Setup(cmd *cobra.Command, flags *Flags) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return cfg, nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("width") {
		cfg.Window.Width = flags.Width
	}
	if changed("height") {
		cfg.Window.Height = flags.Height
	}
	if changed("fps") {
		cfg.Window.FPS = flags.FPS
	}
	if changed("auto-rotate") {
		cfg.Controls.AutoRotate = flags.AutoRotate
	}
	if changed("damping") {
		cfg.Controls.EnableDamping = flags.Damping
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// Execute runs the root command
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
