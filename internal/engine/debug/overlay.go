// Package debug provides editor visualization and capture utilities.
package debug

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
)

// BoundsWireframeVertexCount is the number of vertices for a bounds wireframe (12 edges × 2).
const BoundsWireframeVertexCount = 24

// BoundsWireframe returns line-list vertices for the edges of b grown by padding.
func BoundsWireframe(b mesh.Bounds, padding float32) []mgl32.Vec3 {
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) mgl32.Vec3 {
		c := lo
		if x {
			c[0] = hi[0]
		}
		if y {
			c[1] = hi[1]
		}
		if z {
			c[2] = hi[2]
		}
		return c
	}

	verts := make([]mgl32.Vec3, 0, BoundsWireframeVertexCount)
	for _, y := range []bool{false, true} {
		// Bottom then top face
		verts = append(verts,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	// Vertical edges
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		verts = append(verts, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return verts
}

// BrushRing returns line-list vertices for a circle of radius around center
// in the XZ plane. Fewer than 3 segments draws nothing.
func BrushRing(center mgl32.Vec3, radius float32, segments int) []mgl32.Vec3 {
	if segments < 3 || radius <= 0 {
		return nil
	}

	verts := make([]mgl32.Vec3, 0, 2*segments)
	step := 2 * math32.Pi / float32(segments)
	point := func(i int) mgl32.Vec3 {
		s, c := math32.Sincos(float32(i) * step)
		return center.Add(mgl32.Vec3{c * radius, 0, s * radius})
	}
	for i := range segments {
		verts = append(verts, point(i), point(i+1))
	}
	return verts
}
