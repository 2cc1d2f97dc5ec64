package viewer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ModelFile is a user-selected model resource. The content is opened
// lazily when a decode starts and is never modified.
type ModelFile struct {
	name string
	path string
	open func() (io.ReadCloser, error)
}

// NewModelFile wraps an arbitrary content opener
func NewModelFile(name string, open func() (io.ReadCloser, error)) ModelFile {
	return ModelFile{name: name, open: open}
}

// FileFromPath refers to a file on disk
func FileFromPath(path string) ModelFile {
	return ModelFile{
		name: filepath.Base(path),
		path: path,
		open: func() (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open file: %w", err)
			}
			return f, nil
		},
	}
}

// FileFromBytes refers to content already held in memory
func FileFromBytes(name string, data []byte) ModelFile {
	return ModelFile{
		name: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Name returns the display name of the file
func (f ModelFile) Name() string {
	return f.name
}

// Path returns the location on disk, or "" for in-memory files
func (f ModelFile) Path() string {
	return f.path
}

// Open returns a reader over the file content
func (f ModelFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("file %q has no content", f.name)
	}
	return f.open()
}
