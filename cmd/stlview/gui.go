package main

import (
	"github.com/philipparndt/stlview/cmd"
	"github.com/philipparndt/stlview/internal/gui"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui [file]",
	Short: "Open the viewer window",
	Long: `Open a window with a file picker, a "Display STL" button and the 3D viewport.
A file given on the command line is selected and displayed right away.
Drag to orbit, drag with the secondary button to pan, scroll to zoom.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, logger, err := cmd.Setup(c, &flags)
		if err != nil {
			return err
		}
		return gui.Run(cfg, logger, args)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
