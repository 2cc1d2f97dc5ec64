package stl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTriangle(name string) *Model {
	m := NewModel(name)
	m.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))
	return m
}

func encode(t *testing.T, m *Model) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, m))
	return buf.Bytes()
}

func TestDecodeBinarySingleTriangle(t *testing.T) {
	data := encode(t, singleTriangle("part"))
	require.Len(t, data, 84+50)

	model, err := DecodeBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "part", model.Name)
	assert.Equal(t, FormatBinary, model.Format)
	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(1, 0, 0), model.Triangles[0].V2)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[0].Normal)
}

func TestDecodeBinaryHeaderStartingWithSolid(t *testing.T) {
	data := encode(t, singleTriangle("solid exported by cad"))

	model, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, model.Format)
	assert.Equal(t, 1, model.TriangleCount())
}

func TestDecodeSolidHeaderBinaryWithTrailingBytes(t *testing.T) {
	data := append(encode(t, singleTriangle("solid exported by cad")), 0, 0)

	model, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, model.Format)
	assert.Equal(t, 1, model.TriangleCount())
}

func TestIsBinaryNeedsPlainTextForASCII(t *testing.T) {
	assert.False(t, isBinary([]byte("solid cube\nendsolid cube\n")))
	assert.True(t, isBinary([]byte("solid cube\x00\x00")))
	assert.True(t, isBinary([]byte("solid cub\xe9\n")))
	assert.True(t, isBinary([]byte("not a solid")))
}

func TestDecodeBinaryZeroTriangles(t *testing.T) {
	data := encode(t, NewModel(""))

	model, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 0, model.TriangleCount())
	assert.True(t, model.BoundingBox().IsEmpty())
}

func TestDecodeTruncatedHeader(t *testing.T) {
	data := encode(t, singleTriangle("part"))[:40]

	_, err := DecodeBytes(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeTruncatedRecords(t *testing.T) {
	data := encode(t, singleTriangle("part"))
	data = data[:len(data)-10]

	_, err := DecodeBytes(data)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeASCII(t *testing.T) {
	src := `solid cube corner
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 0 0
      vertex 0 2 0
    endloop
  endfacet
endsolid cube corner
`
	model, err := Decode(bytes.NewBufferString(src))
	require.NoError(t, err)

	assert.Equal(t, "cube corner", model.Name)
	assert.Equal(t, FormatASCII, model.Format)
	require.Equal(t, 1, model.TriangleCount())
	assert.InDelta(t, 2.0, model.SurfaceArea(), 1e-12)
}

func TestDecodeASCIIMalformed(t *testing.T) {
	src := "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 zero\n"

	_, err := DecodeBytes([]byte(src))
	assert.ErrorIs(t, err, ErrMalformed)

	src = "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\n"
	_, err = DecodeBytes([]byte(src))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, encode(t, singleTriangle("disk")), 0o644))

	model, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", model.Name)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
