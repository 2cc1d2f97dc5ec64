package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
)

// WriteBinary encodes the model as binary STL
func WriteBinary(w io.Writer, model *Model) error {
	buf := make([]byte, preambleLen+len(model.Triangles)*recordSize)
	copy(buf[:headerSize], model.Name)
	binary.LittleEndian.PutUint32(buf[headerSize:preambleLen], uint32(len(model.Triangles)))

	offset := preambleLen
	for _, t := range model.Triangles {
		for i, v := range []geometry.Vector3{t.Normal, t.V1, t.V2, t.V3} {
			putVector(buf[offset+i*12:], v)
		}
		offset += recordSize
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

func putVector(b []byte, v geometry.Vector3) {
	c := v.Float32()
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(c[0]))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(c[1]))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(c[2]))
}
