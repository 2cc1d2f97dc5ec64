package main

import (
	"github.com/philipparndt/stlview/cmd"
	"github.com/philipparndt/stlview/internal/app"
	"github.com/spf13/cobra"
)

var flags cmd.Flags

var rootCmd = cmd.NewRootCommand(
	"stlview-raylib [file]...",
	"View STL models in a raylib window",
	`stlview-raylib opens a resizable window showing the models as orbitable
wireframes. Files given on the command line are displayed on start; drop
more files onto the window and press Enter to add them to the scene.`,
	&flags,
)

func init() {
	rootCmd.RunE = func(c *cobra.Command, args []string) error {
		cfg, logger, err := cmd.Setup(c, &flags)
		if err != nil {
			return err
		}
		return app.Run(cfg, logger, args)
	}
}

func main() {
	cmd.Execute(rootCmd)
}
