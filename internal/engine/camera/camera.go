package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/internal/config"
)

// Projection selects the projection matrix kind.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Props holds projection parameters.
type Props struct {
	Projection Projection
	FOVDegrees float32 // Vertical field of view for Perspective
	OrthoSize  float32 // Half height of the view volume for Orthographic
	Near       float32
	Far        float32
	Aspect     float32 // Width / height
}

// DefaultProps returns a 65 degree perspective projection.
func DefaultProps() Props {
	return Props{
		Projection: Perspective,
		FOVDegrees: 65,
		OrthoSize:  1,
		Near:       0.01,
		Far:        1000,
		Aspect:     16.0 / 9.0,
	}
}

// PropsFromConfig converts camera settings.
func PropsFromConfig(cfg config.CameraConfig) Props {
	p := DefaultProps()
	if cfg.Projection == config.ProjectionOrtho {
		p.Projection = Orthographic
	}
	p.FOVDegrees = cfg.FOVDegrees
	p.OrthoSize = cfg.OrthoSize
	p.Near = cfg.Near
	p.Far = cfg.Far
	return p
}

// Camera is a transform with a projection.
type Camera struct {
	Transform Transform
	Props     Props
}

// New creates a camera at position looking at target.
func New(position, target mgl32.Vec3, props Props) *Camera {
	c := &Camera{Transform: NewTransform(position), Props: props}
	c.Transform.LookAt(target)
	return c
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	return c.Transform.Position
}

// IsOrthographic reports whether picking rays should be parallel.
func (c *Camera) IsOrthographic() bool {
	return c.Props.Projection == Orthographic
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Props.Aspect = float32(width) / float32(height)
	}
}

// ViewMatrix returns the inverse of the camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.Transform.Matrix().Inv()
}

// ProjectionMatrix returns the perspective or orthographic projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	p := c.Props
	if p.Projection == Orthographic {
		sizeY := p.OrthoSize
		sizeX := sizeY * p.Aspect
		return mgl32.Ortho(-sizeX, sizeX, -sizeY, sizeY, p.Near, p.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOVDegrees), p.Aspect, p.Near, p.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

const (
	zoomDegreesPerSecond = 10
	zoomOrthoPerSecond   = 1
	minFOVDegrees        = 1
	maxFOVDegrees        = 170
	minOrthoSize         = 0.05
)

// Zoom widens (positive dir) or narrows the view over dt seconds.
func (c *Camera) Zoom(dir, dt float32) {
	c.Props.FOVDegrees = mgl32.Clamp(c.Props.FOVDegrees+dir*zoomDegreesPerSecond*dt, minFOVDegrees, maxFOVDegrees)
	c.Props.OrthoSize = mgl32.Clamp(c.Props.OrthoSize+dir*zoomOrthoPerSecond*dt, minOrthoSize, c.Props.Far)
}
