// Package openscad renders OpenSCAD sources to STL with the openscad
// binary so they can be displayed like any other model.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/philipparndt/stlview/pkg/viewer"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH")

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
	binary  string
	log     *slog.Logger
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string, logger *slog.Logger) *Renderer {
	return &Renderer{
		workDir: workDir,
		binary:  "openscad",
		log:     logger,
	}
}

// IsSource reports whether path names an OpenSCAD source
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders an OpenSCAD file to STL format
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return fmt.Errorf("%w: install OpenSCAD from https://openscad.org/", ErrNotInstalled)
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("rendering openscad", "file", scadFile, "output", outputFile)
	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			msg.WriteString("\nstderr: ")
			msg.WriteString(strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			msg.WriteString("\nstdout: ")
			msg.WriteString(strings.TrimSpace(stdout.String()))
		}
		return errors.New(msg.String())
	}
	return nil
}

// Decode renders scadFile to a temporary STL and parses it
func (r *Renderer) Decode(ctx context.Context, scadFile string) (*stl.Model, error) {
	tmp, err := os.CreateTemp("", "stlview-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := r.RenderToSTL(ctx, scadFile, tmp.Name()); err != nil {
		return nil, err
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))
	return model, nil
}

// Decoder returns a viewer decoder that renders OpenSCAD sources on disk
// and hands every other file to fallback.
func (r *Renderer) Decoder(fallback viewer.Decoder) viewer.Decoder {
	return func(file viewer.ModelFile) (*stl.Model, error) {
		if file.Path() == "" || !IsSource(file.Path()) {
			return fallback(file)
		}
		return r.Decode(context.Background(), file.Path())
	}
}

// ResolveDependencies finds all dependencies (use/include statements) in
// an OpenSCAD file. The file itself comes first, followed by absolute
// paths of everything it pulls in.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	// Avoid circular dependencies
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range fileDeps {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencies lists the use/include targets of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scanner := bufio.NewScanner(file)
	scadDir := filepath.Dir(scadFile)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		if m := useRegex.FindStringSubmatch(line); len(m) > 1 {
			deps = append(deps, r.resolveDepPath(m[1], scadDir))
		}
		if m := includeRegex.FindStringSubmatch(line); len(m) > 1 {
			deps = append(deps, r.resolveDepPath(m[1], scadDir))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	absPath := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(absPath); err == nil {
		return filepath.Clean(absPath)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
