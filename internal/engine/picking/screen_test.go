package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	viewportW = 800
	viewportH = 600
)

func perspectiveViewProj(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(65), float32(viewportW)/viewportH, 0.01, 1000)
	return proj.Mul4(mgl32.LookAtV(eye, center, up))
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{3, 4, 5}
	vp := perspectiveViewProj(eye, mgl32.Vec3{3, 4, 0}, mgl32.Vec3{0, 1, 0})

	r, err := ScreenToRay(eye, vp, mgl32.Vec2{viewportW / 2, viewportH / 2}, viewportW, viewportH)
	require.NoError(t, err)
	assert.Equal(t, eye, r.Origin)
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, r.Direction, 1e-4)
	assert.InDelta(t, 1, r.Direction.Len(), 1e-5)
}

func TestScreenToRayCorners(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 0}
	vp := perspectiveViewProj(eye, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	// Top-left pixel points left and up because screen Y grows downward.
	r, err := ScreenToRay(eye, vp, mgl32.Vec2{0, 0}, viewportW, viewportH)
	require.NoError(t, err)
	assert.Less(t, r.Direction.X(), float32(0))
	assert.Greater(t, r.Direction.Y(), float32(0))
	assert.Less(t, r.Direction.Z(), float32(0))

	r, err = ScreenToRay(eye, vp, mgl32.Vec2{viewportW, viewportH}, viewportW, viewportH)
	require.NoError(t, err)
	assert.Greater(t, r.Direction.X(), float32(0))
	assert.Less(t, r.Direction.Y(), float32(0))

	// The vertical half angle at the top edge matches the field of view.
	r, err = ScreenToRay(eye, vp, mgl32.Vec2{viewportW / 2, 0}, viewportW, viewportH)
	require.NoError(t, err)
	halfFov := mgl32.RadToDeg(float32(math.Asin(float64(r.Direction.Y()))))
	assert.InDelta(t, 65.0/2, halfFov, 0.05)
}

func TestScreenToRayErrors(t *testing.T) {
	vp := perspectiveViewProj(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	_, err := ScreenToRay(mgl32.Vec3{}, mgl32.Mat4{}, mgl32.Vec2{1, 1}, viewportW, viewportH)
	assert.ErrorIs(t, err, ErrSingularMatrix)

	_, err = ScreenToRay(mgl32.Vec3{}, vp, mgl32.Vec2{1, 1}, 0, viewportH)
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, err = ScreenToRay(mgl32.Vec3{}, vp, mgl32.Vec2{1, 1}, viewportW, -1)
	assert.ErrorIs(t, err, ErrInvalidViewport)

	// With an identity transform the screen center unprojects to (0, 0, -1).
	_, err = ScreenToRay(mgl32.Vec3{0, 0, -1}, mgl32.Ident4(), mgl32.Vec2{viewportW / 2, viewportH / 2}, viewportW, viewportH)
	assert.ErrorIs(t, err, ErrDegenerateRay)
}

func TestUnprojectRayOrthographic(t *testing.T) {
	proj := mgl32.Ortho(-10, 10, -10, 10, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 50, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	vp := proj.Mul4(view)

	r, err := UnprojectRay(vp, mgl32.Vec2{viewportW / 2, viewportH / 2}, viewportW, viewportH)
	require.NoError(t, err)
	assertVecInDelta(t, mgl32.Vec3{0, -1, 0}, r.Direction, 1e-5)
	assert.InDelta(t, 0, r.Origin.X(), 1e-4)
	assert.InDelta(t, 49.9, r.Origin.Y(), 1e-3)

	r, err = UnprojectRay(vp, mgl32.Vec2{viewportW, viewportH / 2}, viewportW, viewportH)
	require.NoError(t, err)
	assert.InDelta(t, 10, r.Origin.X(), 1e-4)
	assertVecInDelta(t, mgl32.Vec3{0, -1, 0}, r.Direction, 1e-5)

	_, err = UnprojectRay(mgl32.Mat4{}, mgl32.Vec2{}, viewportW, viewportH)
	assert.ErrorIs(t, err, ErrSingularMatrix)
}
