// Package camera provides camera implementations for 3D rendering.
package camera

import "github.com/go-gl/mathgl/mgl32"

// World axes. The camera looks down -Z when unrotated.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

// Transform is a position and orientation in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewTransform creates a transform at position with no rotation.
func NewTransform(position mgl32.Vec3) Transform {
	return Transform{Position: position, Rotation: mgl32.QuatIdent()}
}

// Matrix returns translate * rotate.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// Forward returns the rotated -Z axis.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(WorldForward)
}

// Right returns the rotated +X axis.
func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(WorldRight)
}

// Up returns the rotated +Y axis.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(WorldUp)
}

// LookAt orients the transform toward target keeping world up.
func (t *Transform) LookAt(target mgl32.Vec3) {
	view := mgl32.LookAtV(t.Position, target, WorldUp)
	t.Rotation = mgl32.Mat4ToQuat(view).Conjugate().Normalize()
}

// RotateWorld rotates around a world-space axis by degrees.
func (t *Transform) RotateWorld(axis mgl32.Vec3, degrees float32) {
	delta := mgl32.QuatRotate(mgl32.DegToRad(degrees), axis)
	t.Rotation = delta.Mul(t.Rotation).Normalize()
}

// RotateLocal rotates around an axis expressed in the transform's own frame.
func (t *Transform) RotateLocal(axis mgl32.Vec3, degrees float32) {
	delta := mgl32.QuatRotate(mgl32.DegToRad(degrees), axis)
	t.Rotation = t.Rotation.Mul(delta).Normalize()
}
