package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ScreenToRay builds a world-space ray from the camera position through a
// screen point. Screen coordinates are pixels with Y growing downward.
func ScreenToRay(camPos mgl32.Vec3, viewProj mgl32.Mat4, screen mgl32.Vec2, viewportW, viewportH float32) (Ray, error) {
	near, err := unproject(viewProj, screen, viewportW, viewportH, -1)
	if err != nil {
		return Ray{}, err
	}
	return rayBetween(camPos, near)
}

// UnprojectRay builds a ray from the near plane to the far plane under a
// screen point. Use it for orthographic cameras, whose rays do not pass
// through the camera position.
func UnprojectRay(viewProj mgl32.Mat4, screen mgl32.Vec2, viewportW, viewportH float32) (Ray, error) {
	near, err := unproject(viewProj, screen, viewportW, viewportH, -1)
	if err != nil {
		return Ray{}, err
	}
	far, err := unproject(viewProj, screen, viewportW, viewportH, 1)
	if err != nil {
		return Ray{}, err
	}
	return rayBetween(near, far)
}

// unproject maps a screen point at NDC depth z back to world space.
func unproject(viewProj mgl32.Mat4, screen mgl32.Vec2, viewportW, viewportH, z float32) (mgl32.Vec3, error) {
	if viewportW <= 0 || viewportH <= 0 {
		return mgl32.Vec3{}, ErrInvalidViewport
	}

	det := viewProj.Det()
	if det == 0 || !finite(det) {
		return mgl32.Vec3{}, ErrSingularMatrix
	}
	inv := viewProj.Inv()

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screen.X()/viewportW - 1
	ndcY := 1 - 2*screen.Y()/viewportH // Flip Y

	p := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, z, 1})
	if p.W() == 0 || !finite(p.W()) {
		return mgl32.Vec3{}, ErrSingularMatrix
	}

	// Perspective divide
	return p.Vec3().Mul(1 / p.W()), nil
}

func rayBetween(from, to mgl32.Vec3) (Ray, error) {
	dir := to.Sub(from)
	l := dir.Len()
	if l == 0 || !finite(l) {
		return Ray{}, ErrDegenerateRay
	}
	return Ray{Origin: from, Direction: dir.Mul(1 / l)}, nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
