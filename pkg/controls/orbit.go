package controls

import (
	"math"

	"github.com/philipparndt/stlview/pkg/geometry"
	"github.com/philipparndt/stlview/pkg/scene"
)

// Element is the surface the controls receive input from. Its pixel
// height scales drag distances into angles.
type Element interface {
	Size() (width, height int)
}

// OrbitControls orbits a camera around a target point. Drag rotates,
// pan moves the target in the view plane and zoom dollies the camera.
type OrbitControls struct {
	Target geometry.Vector3

	EnableDamping   bool
	DampingFactor   float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 2.0 is one orbit per 30s at 60fps

	RotateSpeed float64
	PanSpeed    float64
	ZoomSpeed   float64

	MinDistance   float64
	MaxDistance   float64
	MinPolarAngle float64
	MaxPolarAngle float64

	camera  *scene.PerspectiveCamera
	element Element

	sphericalDelta Spherical
	scale          float64
	panOffset      geometry.Vector3
	interacting    bool
	attached       bool
}

// NewOrbitControls binds controls to a camera and the element that
// receives pointer input.
func NewOrbitControls(camera *scene.PerspectiveCamera, element Element) *OrbitControls {
	return &OrbitControls{
		Target:          camera.Target,
		DampingFactor:   0.05,
		AutoRotateSpeed: 2.0,
		RotateSpeed:     1.0,
		PanSpeed:        1.0,
		ZoomSpeed:       1.0,
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		camera:          camera,
		element:         element,
		scale:           1,
		attached:        true,
	}
}

// Camera returns the controlled camera
func (c *OrbitControls) Camera() *scene.PerspectiveCamera {
	return c.camera
}

// Attached reports whether the controls still accept input
func (c *OrbitControls) Attached() bool {
	return c.attached
}

func (c *OrbitControls) elementHeight() float64 {
	_, h := c.element.Size()
	return math.Max(float64(h), 1)
}

// Rotate orbits by a pointer drag of dx, dy pixels. A drag across the
// full element height turns the camera once around.
func (c *OrbitControls) Rotate(dx, dy float64) {
	if !c.attached {
		return
	}
	h := c.elementHeight()
	c.sphericalDelta.Theta -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.sphericalDelta.Phi -= 2 * math.Pi * dy / h * c.RotateSpeed
	c.interacting = true
}

// Pan moves the target so that the point under the pointer follows a
// drag of dx, dy pixels.
func (c *OrbitControls) Pan(dx, dy float64) {
	if !c.attached {
		return
	}
	offset := c.camera.Position.Sub(c.Target)
	targetDistance := offset.Length() * math.Tan(c.camera.FOV*math.Pi/360)
	h := c.elementHeight()

	right, up, _ := c.camera.Basis()
	c.panOffset = c.panOffset.
		Add(right.Mul(-2 * dx * targetDistance / h * c.PanSpeed)).
		Add(up.Mul(2 * dy * targetDistance / h * c.PanSpeed))
	c.interacting = true
}

// Zoom dollies in for negative wheel deltas and out for positive ones
func (c *OrbitControls) Zoom(delta float64) {
	if !c.attached || delta == 0 {
		return
	}
	step := math.Pow(0.95, c.ZoomSpeed)
	if delta < 0 {
		c.scale *= step
	} else {
		c.scale /= step
	}
	c.interacting = true
}

// EndInteraction marks the end of a drag so auto-rotation resumes
func (c *OrbitControls) EndInteraction() {
	c.interacting = false
}

// Update applies pending input, damping and auto-rotation to the camera.
// It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	before := c.camera.Position

	offset := c.camera.Position.Sub(c.Target)
	s := SphericalFromVector(offset)

	if c.AutoRotate && !c.interacting {
		c.sphericalDelta.Theta -= 2 * math.Pi / 60 / 60 * c.AutoRotateSpeed
	}

	if c.EnableDamping {
		s.Theta += c.sphericalDelta.Theta * c.DampingFactor
		s.Phi += c.sphericalDelta.Phi * c.DampingFactor
	} else {
		s.Theta += c.sphericalDelta.Theta
		s.Phi += c.sphericalDelta.Phi
	}

	s.Phi = math.Max(c.MinPolarAngle, math.Min(c.MaxPolarAngle, s.Phi))
	s = s.makeSafe()

	s.Radius *= c.scale
	s.Radius = math.Max(c.MinDistance, math.Min(c.MaxDistance, s.Radius))

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	c.camera.Position = c.Target.Add(s.Vector())
	c.camera.LookAt(c.Target)

	if c.EnableDamping {
		c.sphericalDelta.Theta *= 1 - c.DampingFactor
		c.sphericalDelta.Phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.sphericalDelta = Spherical{}
		c.panOffset = geometry.Vector3{}
	}
	c.scale = 1

	return c.camera.Position.Distance(before) > 1e-9
}

// Reset moves the camera back to orbit the origin at distance
func (c *OrbitControls) Reset(distance float64) {
	c.Target = geometry.Vector3{}
	c.camera.Position = geometry.NewVector3(0, 0, distance)
	c.camera.LookAt(c.Target)
	c.sphericalDelta = Spherical{}
	c.panOffset = geometry.Vector3{}
	c.scale = 1
}

// Dispose detaches the controls from the element. Later input is ignored.
func (c *OrbitControls) Dispose() {
	c.attached = false
	c.interacting = false
	c.sphericalDelta = Spherical{}
	c.panOffset = geometry.Vector3{}
	c.scale = 1
}
