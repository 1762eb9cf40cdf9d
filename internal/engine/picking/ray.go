// Package picking provides ray casting against triangle meshes.
package picking

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
)

// Epsilon is the parallel and behind-origin threshold of IntersectTriangle.
const Epsilon = 1e-8

var (
	// ErrSingularMatrix is returned when the view-projection cannot be inverted.
	ErrSingularMatrix = errors.New("picking: view-projection matrix is singular")

	// ErrInvalidViewport is returned for a non-positive viewport size.
	ErrInvalidViewport = errors.New("picking: viewport size must be positive")

	// ErrDegenerateRay is returned when the unprojected point gives no direction.
	ErrDegenerateRay = errors.New("picking: ray direction is degenerate")
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes the closest triangle struck by a ray.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	Triangle [3]uint32 // Vertex indices of the struck triangle
}

// IntersectTriangle runs the Moller-Trumbore test without backface culling.
// It returns the distance along the ray and the hit point.
func IntersectTriangle(r Ray, v0, v1, v2 mgl32.Vec3) (t float32, point mgl32.Vec3, ok bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	h := r.Direction.Cross(e2)
	a := e1.Dot(h)
	if math32.Abs(a) < Epsilon {
		return 0, mgl32.Vec3{}, false // Parallel to the triangle plane
	}

	f := 1 / a
	s := r.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, mgl32.Vec3{}, false
	}

	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, mgl32.Vec3{}, false
	}

	t = f * e2.Dot(q)
	if t <= Epsilon {
		return 0, mgl32.Vec3{}, false // Behind the origin
	}
	return t, r.At(t), true
}

// IntersectMesh tests every triangle and returns the closest hit.
func IntersectMesh(r Ray, m *mesh.Mesh) (Hit, bool) {
	best := Hit{Distance: math32.Inf(1)}
	found := false

	for tri := range m.TriangleCount() {
		idx, v0, v1, v2 := m.Triangle(tri)
		t, p, ok := IntersectTriangle(r, v0, v1, v2)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{Distance: t, Point: p, Triangle: idx}
		found = true
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}
