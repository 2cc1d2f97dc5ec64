package scene

import (
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
)

// PerspectiveCamera projects the scene with a pinhole model.
// FOV is the vertical field of view in degrees.
type PerspectiveCamera struct {
	Object3D
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
	Target geometry.Vector3
	Up     geometry.Vector3

	// derived by UpdateProjectionMatrix
	fovScale float64
	aspect   float64
}

// NewPerspectiveCamera creates a camera looking down -Z from the origin
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D: newObject3D("camera"),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Target:   geometry.NewVector3(0, 0, -1),
		Up:       geometry.NewVector3(0, 1, 0),
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after FOV or Aspect change
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.fovScale = math.Tan(c.FOV * math.Pi / 360)
	c.aspect = c.Aspect
}

// LookAt points the camera at target
func (c *PerspectiveCamera) LookAt(target geometry.Vector3) {
	c.Target = target
}

// Basis returns the camera's right, up and forward unit vectors
func (c *PerspectiveCamera) Basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// ToView transforms a world point into camera space where X points right,
// Y points up and Z is the distance in front of the camera.
func (c *PerspectiveCamera) ToView(point geometry.Vector3) geometry.Vector3 {
	right, up, forward := c.Basis()
	relative := point.Sub(c.Position)
	return geometry.NewVector3(relative.Dot(right), relative.Dot(up), relative.Dot(forward))
}

// ProjectView maps a camera-space point with positive depth to pixel
// coordinates on a width x height surface.
func (c *PerspectiveCamera) ProjectView(v geometry.Vector3, width, height float64) (float64, float64) {
	sx := (v.X/(v.Z*c.fovScale*c.aspect))*(width/2) + width/2
	sy := (-v.Y/(v.Z*c.fovScale))*(height/2) + height/2
	return sx, sy
}

// Project projects a world point to pixel coordinates. ok is false when
// the point lies outside the near/far range.
func (c *PerspectiveCamera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	v := c.ToView(point)
	if v.Z < c.Near || v.Z > c.Far {
		return 0, 0, v.Z, false
	}
	x, y = c.ProjectView(v, width, height)
	return x, y, v.Z, true
}
