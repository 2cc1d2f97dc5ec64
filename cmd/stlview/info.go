package main

import (
	"fmt"

	"github.com/philipparndt/stlview/pkg/analysis"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Display general information about STL files",
	Long:  "Show triangle count, bounding box, dimensions, surface area and edge statistics.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for i, filename := range args {
		model, err := stl.Parse(filename)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", filename, err)
		}

		s := analysis.Summarize(model)

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "STL File Information")
		fmt.Fprintln(out, "====================")
		if model.Name != "" {
			fmt.Fprintf(out, "Name: %s\n", model.Name)
		}
		fmt.Fprintf(out, "File: %s\n", filename)
		fmt.Fprintf(out, "Format: %s\n\n", model.Format)

		fmt.Fprintln(out, "Model Statistics:")
		fmt.Fprintf(out, "  Triangles: %d\n", s.TriangleCount)
		fmt.Fprintf(out, "  Degenerate: %d\n", s.DegenerateCount)
		fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", s.SurfaceArea)

		if s.TriangleCount == 0 {
			continue
		}

		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(s.BoundingBox.Min))
		fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(s.BoundingBox.Max))
		fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(s.BoundingBox.Center()))

		fmt.Fprintln(out, "Dimensions:")
		fmt.Fprintf(out, "  Width (X): %.6f units\n", s.Dimensions.X)
		fmt.Fprintf(out, "  Depth (Y): %.6f units\n", s.Dimensions.Y)
		fmt.Fprintf(out, "  Height (Z): %.6f units\n", s.Dimensions.Z)
		fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", s.BoundingBox.Diagonal())

		fmt.Fprintln(out, "Edge Lengths:")
		fmt.Fprintf(out, "  Minimum: %.6f units\n", s.MinEdgeLength)
		fmt.Fprintf(out, "  Maximum: %.6f units\n", s.MaxEdgeLength)
		fmt.Fprintf(out, "  Average: %.6f units\n", s.AvgEdgeLength)
	}

	return nil
}
