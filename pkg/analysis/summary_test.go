package analysis

import (
	"testing"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	model := stl.NewModel("pair")
	model.AddTriangle(geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, 0, 0),
		geometry.NewVector3(0, 4, 0),
	))
	model.AddTriangle(geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(2, 0, 0),
	))

	s := Summarize(model)

	assert.Equal(t, 2, s.TriangleCount)
	assert.Equal(t, 1, s.DegenerateCount)
	assert.Equal(t, 6, s.EdgeCount)
	assert.InDelta(t, 6.0, s.SurfaceArea, 1e-12)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), s.Dimensions)
	assert.InDelta(t, 1.0, s.MinEdgeLength, 1e-12)
	assert.InDelta(t, 5.0, s.MaxEdgeLength, 1e-12)
	assert.InDelta(t, 16.0/6.0, s.AvgEdgeLength, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(stl.NewModel(""))

	assert.Zero(t, s.EdgeCount)
	assert.Zero(t, s.MinEdgeLength)
	assert.Equal(t, geometry.Vector3{}, s.Dimensions)
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
}
