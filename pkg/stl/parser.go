package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/stlview/pkg/geometry"
)

const (
	headerSize  = 80
	countSize   = 4
	recordSize  = 50 // normal + 3 vertices (12 float32) + uint16 attribute
	preambleLen = headerSize + countSize
)

// ErrTruncated is returned when binary content ends before the
// header or the announced triangle records are complete.
var ErrTruncated = errors.New("stl: truncated content")

// ErrMalformed is returned for ASCII content that cannot be read as facets
var ErrMalformed = errors.New("stl: malformed ascii content")

// Parse reads an STL file from disk and returns a Model
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeBytes(data)
}

// Decode reads all of r and decodes it as STL
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes STL content held in memory.
// It automatically detects whether the content is ASCII or binary.
func DecodeBytes(data []byte) (*Model, error) {
	if isBinary(data) {
		return parseBinary(data)
	}
	return parseASCII(bytes.NewReader(data))
}

// isBinary decides the encoding. A binary file whose size matches the
// announced triangle count wins even when its header starts with "solid",
// which many exporters write.
func isBinary(data []byte) bool {
	if len(data) >= preambleLen {
		count := binary.LittleEndian.Uint32(data[headerSize:preambleLen])
		if uint64(preambleLen)+uint64(count)*recordSize == uint64(len(data)) {
			return true
		}
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("solid")) {
		return true
	}
	return !isText(trimmed)
}

// isText reports whether data holds only 7-bit characters and no NUL
func isText(data []byte) bool {
	for _, b := range data {
		if b == 0 || b > 0x7f {
			return false
		}
	}
	return true
}

// parseBinary parses binary STL content
func parseBinary(data []byte) (*Model, error) {
	if len(data) < preambleLen {
		return nil, fmt.Errorf("failed to read header: got %d of %d bytes: %w", len(data), preambleLen, ErrTruncated)
	}

	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00"))))
	model.Format = FormatBinary

	triangleCount := binary.LittleEndian.Uint32(data[headerSize:preambleLen])
	need := uint64(preambleLen) + uint64(triangleCount)*recordSize
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("failed to read %d triangles: got %d of %d bytes: %w", triangleCount, len(data), need, ErrTruncated)
	}

	model.Triangles = make([]geometry.Triangle, 0, triangleCount)
	offset := preambleLen
	for i := uint32(0); i < triangleCount; i++ {
		record := data[offset : offset+recordSize]
		model.AddTriangle(geometry.NewTriangle(
			readVector(record[0:12]),
			readVector(record[12:24]),
			readVector(record[24:36]),
			readVector(record[36:48]),
		))
		// record[48:50] is the attribute byte count, unused
		offset += recordSize
	}

	return model, nil
}

func readVector(b []byte) geometry.Vector3 {
	return geometry.FromFloat32([3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	})
}

// parseASCII parses ASCII STL content
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")
	model.Format = FormatASCII

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: expected facet normal: %w", lineNo, ErrMalformed)
			}
			normal, err := parseVector(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			currentNormal = normal
			vertices = vertices[:0]

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: expected 3 vertex coordinates: %w", lineNo, ErrMalformed)
			}
			vertex, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, vertex)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices: %w", lineNo, len(vertices), ErrMalformed)
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid number %q: %w", field, ErrMalformed)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
