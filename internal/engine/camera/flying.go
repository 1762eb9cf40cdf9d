package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/internal/engine/input"
)

// Controller moves a camera from per-frame input.
type Controller interface {
	Update(in input.Snapshot, dt float32)
	Camera() *Camera
}

// Flying is a free-fly controller: right mouse rotates, WASD moves along
// the view, Space and left shift move along world Y.
type Flying struct {
	cam *Camera

	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per pixel of mouse movement
}

// NewFlying creates a flying controller for cam.
func NewFlying(cam *Camera, speed, sensitivity float32) *Flying {
	return &Flying{cam: cam, Speed: speed, Sensitivity: sensitivity}
}

// Camera returns the controlled camera.
func (f *Flying) Camera() *Camera {
	return f.cam
}

// Update applies one frame of input.
func (f *Flying) Update(in input.Snapshot, dt float32) {
	t := &f.cam.Transform

	if in.Button(input.MouseRight).Down() {
		t.RotateWorld(WorldUp, -in.MouseDelta.X()*f.Sensitivity)
		t.RotateLocal(WorldRight, -in.MouseDelta.Y()*f.Sensitivity)
	}

	forward := t.Forward()
	right := t.Right()
	step := f.Speed * dt
	pos := t.Position

	if in.Key(input.KeySpace).Down() {
		pos = pos.Add(mgl32.Vec3{0, step, 0})
	}
	if in.Key(input.KeyLShift).Down() {
		pos = pos.Sub(mgl32.Vec3{0, step, 0})
	}
	if in.Key(input.KeyW).Down() {
		pos = pos.Add(forward.Mul(step))
	}
	if in.Key(input.KeyS).Down() {
		pos = pos.Sub(forward.Mul(step))
	}
	if in.Key(input.KeyA).Down() {
		pos = pos.Sub(right.Mul(step))
	}
	if in.Key(input.KeyD).Down() {
		pos = pos.Add(right.Mul(step))
	}

	t.Position = pos
	applyZoomKeys(f.cam, in, dt)
}

// applyZoomKeys widens the view while E is held and narrows it while F is held.
func applyZoomKeys(c *Camera, in input.Snapshot, dt float32) {
	switch {
	case in.Key(input.KeyE) == input.KeyHolding:
		c.Zoom(1, dt)
	case in.Key(input.KeyF) == input.KeyHolding:
		c.Zoom(-1, dt)
	}
}
