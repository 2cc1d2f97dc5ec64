package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/stl"
)

// Summary holds the statistics printed for a model
type Summary struct {
	TriangleCount   int
	DegenerateCount int
	EdgeCount       int
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	SurfaceArea     float64
	MinEdgeLength   float64
	MaxEdgeLength   float64
	AvgEdgeLength   float64
}

// Summarize walks the model once and collects its statistics
func Summarize(model *stl.Model) Summary {
	s := Summary{
		TriangleCount: model.TriangleCount(),
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
	}
	s.Dimensions = s.BoundingBox.Size()

	minLength := math.MaxFloat64
	totalLength := 0.0
	for _, triangle := range model.Triangles {
		if triangle.IsDegenerate() {
			s.DegenerateCount++
		}
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = math.Min(minLength, length)
			s.MaxEdgeLength = math.Max(s.MaxEdgeLength, length)
			s.EdgeCount++
		}
	}

	if s.EdgeCount > 0 {
		s.MinEdgeLength = minLength
		s.AvgEdgeLength = totalLength / float64(s.EdgeCount)
	}

	return s
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
