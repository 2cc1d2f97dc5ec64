package scene

import "image/color"

// Scene is the container of everything that gets rendered
type Scene struct {
	Background color.RGBA

	children []Object
	nextID   ObjectID
}

// New creates an empty scene with a black background
func New() *Scene {
	return &Scene{Background: color.RGBA{A: 255}}
}

// Add appends objects to the scene. An object that already belongs to
// this scene is left in place.
func (s *Scene) Add(objects ...Object) {
	for _, obj := range objects {
		base := obj.Base()
		if base.parent == s {
			continue
		}
		s.nextID++
		base.id = s.nextID
		base.parent = s
		s.children = append(s.children, obj)
	}
}

// Children returns the objects in insertion order
func (s *Scene) Children() []Object {
	return s.children
}

// Len returns the number of objects in the scene
func (s *Scene) Len() int {
	return len(s.children)
}

// Meshes returns the meshes in insertion order
func (s *Scene) Meshes() []*Mesh {
	return collect[*Mesh](s.children)
}

// Lights returns the point lights in insertion order
func (s *Scene) Lights() []*PointLight {
	return collect[*PointLight](s.children)
}

// Cameras returns the cameras in insertion order
func (s *Scene) Cameras() []*PerspectiveCamera {
	return collect[*PerspectiveCamera](s.children)
}

func collect[T Object](objects []Object) []T {
	var out []T
	for _, obj := range objects {
		if t, ok := obj.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
