package controls

import (
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
)

// Spherical coordinates with Y up. Phi is the polar angle from +Y and
// Theta the azimuth around Y measured from +Z.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromVector converts an offset to spherical coordinates
func SphericalFromVector(v geometry.Vector3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(math.Max(-1, math.Min(1, v.Y/r))),
	}
}

// Vector converts back to a cartesian offset
func (s Spherical) Vector() geometry.Vector3 {
	sinPhi := math.Sin(s.Phi)
	return geometry.NewVector3(
		s.Radius*sinPhi*math.Sin(s.Theta),
		s.Radius*math.Cos(s.Phi),
		s.Radius*sinPhi*math.Cos(s.Theta),
	)
}

// makeSafe keeps phi away from the poles where the view basis degenerates
func (s Spherical) makeSafe() Spherical {
	const eps = 1e-6
	s.Phi = math.Max(eps, math.Min(math.Pi-eps, s.Phi))
	return s
}
