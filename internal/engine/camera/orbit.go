package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/internal/engine/input"
)

// Orbit orbits a camera around a center point. Right mouse drag rotates,
// WASD pans the center, Space and left shift zoom.
type Orbit struct {
	cam *Camera

	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32 // Radians per pixel
	ZoomSensitivity float32 // Fraction of distance per second
	PanSensitivity  float32 // Fraction of distance per second
}

// NewOrbit creates an orbit controller looking at center from position.
func NewOrbit(cam *Camera, center mgl32.Vec3) *Orbit {
	o := &Orbit{
		cam:             cam,
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 1,
		PanSensitivity:  0.5,
	}
	o.FitTo(center, cam.Position())
	return o
}

// Camera returns the controlled camera.
func (o *Orbit) Camera() *Camera {
	return o.cam
}

// FitTo derives distance, pitch and yaw from a viewing position.
func (o *Orbit) FitTo(center, from mgl32.Vec3) {
	o.Center = center
	offset := from.Sub(center)

	o.Distance = mgl32.Clamp(offset.Len(), o.MinDistance, o.MaxDistance)
	horiz := math32.Sqrt(offset.X()*offset.X() + offset.Z()*offset.Z())
	o.Pitch = mgl32.Clamp(math32.Atan2(offset.Y(), horiz), o.MinPitch, o.MaxPitch)
	o.Yaw = math32.Atan2(offset.X(), offset.Z())
	o.apply()
}

// Position returns the orbiting position in world space.
func (o *Orbit) Position() mgl32.Vec3 {
	cosPitch := math32.Cos(o.Pitch)
	return o.Center.Add(mgl32.Vec3{
		o.Distance * cosPitch * math32.Sin(o.Yaw),
		o.Distance * math32.Sin(o.Pitch),
		o.Distance * cosPitch * math32.Cos(o.Yaw),
	})
}

// HandleDrag updates rotation based on mouse drag delta.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.Yaw -= deltaX * o.DragSensitivity
	o.Pitch = mgl32.Clamp(o.Pitch+deltaY*o.DragSensitivity, o.MinPitch, o.MaxPitch)
}

// HandleZoom moves toward (positive) or away from the center.
func (o *Orbit) HandleZoom(delta float32) {
	o.Distance = mgl32.Clamp(o.Distance-delta*o.Distance*o.ZoomSensitivity, o.MinDistance, o.MaxDistance)
}

// HandleMovement pans the center on the XZ plane relative to the view yaw.
func (o *Orbit) HandleMovement(forward, right float32) {
	// Speed scales with distance for consistent feel
	speed := o.Distance * o.PanSensitivity

	sin, cos := math32.Sincos(o.Yaw)
	dir := mgl32.Vec3{-sin, 0, -cos}
	side := mgl32.Vec3{cos, 0, -sin}

	o.Center = o.Center.Add(dir.Mul(forward * speed)).Add(side.Mul(right * speed))
}

// Update applies one frame of input.
func (o *Orbit) Update(in input.Snapshot, dt float32) {
	if in.Button(input.MouseRight).Down() {
		o.HandleDrag(in.MouseDelta.X(), in.MouseDelta.Y())
	}

	var forward, right, zoom float32
	if in.Key(input.KeyW).Down() {
		forward++
	}
	if in.Key(input.KeyS).Down() {
		forward--
	}
	if in.Key(input.KeyD).Down() {
		right++
	}
	if in.Key(input.KeyA).Down() {
		right--
	}
	if in.Key(input.KeySpace).Down() {
		zoom++
	}
	if in.Key(input.KeyLShift).Down() {
		zoom--
	}

	if forward != 0 || right != 0 {
		o.HandleMovement(forward*dt, right*dt)
	}
	if zoom != 0 {
		o.HandleZoom(zoom * dt)
	}

	o.apply()
	applyZoomKeys(o.cam, in, dt)
}

// apply writes the orbit position and orientation into the camera.
func (o *Orbit) apply() {
	o.cam.Transform.Position = o.Position()
	o.cam.Transform.LookAt(o.Center)
}
