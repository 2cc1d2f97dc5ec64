package scene

import "image/color"

// PointLight emits light in all directions from its position.
// A Distance of zero means the light does not attenuate.
type PointLight struct {
	Object3D
	Color     color.RGBA
	Intensity float64
	Distance  float64
}

// NewPointLight creates a light with the given colour, intensity and range
func NewPointLight(c color.RGBA, intensity, distance float64) *PointLight {
	return &PointLight{
		Object3D:  newObject3D("light"),
		Color:     c,
		Intensity: intensity,
		Distance:  distance,
	}
}
