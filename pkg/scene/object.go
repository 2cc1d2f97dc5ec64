package scene

import "github.com/philipparndt/stlview/pkg/geometry"

// ObjectID identifies an object within its scene
type ObjectID uint32

// Object is anything that can be added to a Scene
type Object interface {
	Base() *Object3D
}

// Object3D holds the state shared by every scene object
type Object3D struct {
	id       ObjectID
	Name     string
	Position geometry.Vector3
	Visible  bool

	// parent is a non-owning back-link set by Scene.Add
	parent *Scene
}

func newObject3D(name string) Object3D {
	return Object3D{Name: name, Visible: true}
}

// Base returns the embedded object state
func (o *Object3D) Base() *Object3D {
	return o
}

// ID returns the identifier assigned when the object was added to a scene.
// It is zero for detached objects.
func (o *Object3D) ID() ObjectID {
	return o.id
}

// Parent returns the scene the object belongs to, or nil
func (o *Object3D) Parent() *Scene {
	return o.parent
}
