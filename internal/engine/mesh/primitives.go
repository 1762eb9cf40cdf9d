package mesh

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive identifies a built-in procedural mesh.
type Primitive int

const (
	PrimitiveQuad Primitive = iota
	PrimitivePlane
	PrimitiveCube
	PrimitiveSphere
	PrimitiveCapsule
)

var primitiveNames = [...]string{
	PrimitiveQuad:    "quad",
	PrimitivePlane:   "plane",
	PrimitiveCube:    "cube",
	PrimitiveSphere:  "sphere",
	PrimitiveCapsule: "capsule",
}

func (p Primitive) String() string {
	if p >= 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ParsePrimitive looks up a primitive by name, case-insensitively.
func ParsePrimitive(name string) (Primitive, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range primitiveNames {
		if n == name {
			return Primitive(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPrimitive, name)
}

// PrimitiveNames lists the names accepted by ParsePrimitive.
func PrimitiveNames() []string {
	return append([]string(nil), primitiveNames[:]...)
}

const (
	primitiveHalfExtent = 0.5
	sphereSlices        = 32
	sphereStacks        = 16
	capsuleHeight       = 1 // Cylinder section between the hemispheres
	poleEpsilon         = 1e-6
)

// NewPrimitive builds a unit-sized primitive centered on the origin.
// Plane is a flat 5x5 terrain grid.
func NewPrimitive(kind Primitive) (*Mesh, error) {
	switch kind {
	case PrimitiveQuad:
		return NewQuad(), nil
	case PrimitivePlane:
		return NewTerrain(TerrainParams{
			Size:         5,
			QuadsPerSide: 5,
			TileX:        5,
			TileY:        5,
			NoiseScale:   1,
		})
	case PrimitiveCube:
		return NewCube(), nil
	case PrimitiveSphere:
		return NewSphere(primitiveHalfExtent, sphereSlices, sphereStacks), nil
	case PrimitiveCapsule:
		return NewCapsule(primitiveHalfExtent, capsuleHeight, sphereSlices, sphereStacks), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedPrimitive, kind)
}

// NewQuad builds a unit quad in the XY plane facing +Z.
func NewQuad() *Mesh {
	const s = primitiveHalfExtent
	m := &Mesh{}
	m.reset(
		[]mgl32.Vec3{{-s, -s, 0}, {s, -s, 0}, {s, s, 0}, {-s, s, 0}},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		nil,
		[]uint32{0, 1, 2, 2, 3, 0},
	)
	return m
}

// cubeFaces lists each face as two triangles of (position, uv) corners.
// Faces do not share vertices so every face gets its own UV square.
var cubeFaces = [6][6]struct {
	p mgl32.Vec3
	t mgl32.Vec2
}{
	// bottom
	{{mgl32.Vec3{1, -1, -1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, -1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, -1, -1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{-1, -1, -1}, mgl32.Vec2{0, 0}}},
	// top
	{{mgl32.Vec3{-1, 1, 1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 1, -1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{-1, 1, -1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{-1, 1, 1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, 1, -1}, mgl32.Vec2{1, 1}}},
	// back
	{{mgl32.Vec3{-1, -1, -1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{-1, 1, -1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{1, 1, -1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{1, 1, -1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{1, -1, -1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{-1, -1, -1}, mgl32.Vec2{1, 0}}},
	// front
	{{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{-1, 1, 1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, -1, 1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}}},
	// left
	{{mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{-1, 1, 1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{-1, 1, -1}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{-1, 1, -1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{-1, -1, -1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{-1, -1, 1}, mgl32.Vec2{1, 0}}},
	// right
	{{mgl32.Vec3{1, 1, -1}, mgl32.Vec2{1, 1}}, {mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 1}}, {mgl32.Vec3{1, -1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, -1, 1}, mgl32.Vec2{0, 0}}, {mgl32.Vec3{1, -1, -1}, mgl32.Vec2{1, 0}}, {mgl32.Vec3{1, 1, -1}, mgl32.Vec2{1, 1}}},
}

// NewCube builds a unit cube with 36 unshared vertices.
func NewCube() *Mesh {
	positions := make([]mgl32.Vec3, 0, 36)
	uvs := make([]mgl32.Vec2, 0, 36)
	indices := make([]uint32, 0, 36)

	for _, face := range cubeFaces {
		for _, c := range face {
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, c.p.Mul(primitiveHalfExtent))
			uvs = append(uvs, c.t)
		}
	}

	m := &Mesh{}
	m.reset(positions, uvs, nil, indices)
	return m
}

// ring is one latitude circle of a surface of revolution around Y.
type ring struct {
	y      float32
	radius float32
}

// NewSphere builds a UV sphere.
func NewSphere(radius float32, slices, stacks int) *Mesh {
	rings := make([]ring, 0, stacks+1)
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		rings = append(rings, ring{y: radius * math32.Cos(phi), radius: radius * math32.Sin(phi)})
	}
	return lathe(rings, slices)
}

// NewCapsule builds a Y-aligned capsule: a cylinder of the given height
// capped by two hemispheres of the given radius.
func NewCapsule(radius, height float32, slices, stacks int) *Mesh {
	half := stacks / 2
	if half < 1 {
		half = 1
	}

	rings := make([]ring, 0, 2*half+2)
	for i := 0; i <= half; i++ {
		phi := math32.Pi / 2 * float32(i) / float32(half)
		rings = append(rings, ring{y: height/2 + radius*math32.Cos(phi), radius: radius * math32.Sin(phi)})
	}
	for i := 0; i <= half; i++ {
		phi := math32.Pi/2 + math32.Pi/2*float32(i)/float32(half)
		rings = append(rings, ring{y: -height/2 + radius*math32.Cos(phi), radius: radius * math32.Sin(phi)})
	}
	return lathe(rings, slices)
}

// lathe sweeps rings (top to bottom) around the Y axis. Each ring repeats its
// first vertex at the seam so U runs cleanly from 0 to 1.
func lathe(rings []ring, slices int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	perRing := slices + 1

	positions := make([]mgl32.Vec3, 0, len(rings)*perRing)
	uvs := make([]mgl32.Vec2, 0, len(rings)*perRing)

	for i, r := range rings {
		v := float32(i) / float32(len(rings)-1)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			positions = append(positions, mgl32.Vec3{
				r.radius * math32.Cos(theta),
				r.y,
				r.radius * math32.Sin(theta),
			})
			uvs = append(uvs, mgl32.Vec2{float32(j) / float32(slices), v})
		}
	}

	var indices []uint32
	for i := 0; i < len(rings)-1; i++ {
		for j := range slices {
			a := uint32(i*perRing + j)
			b := a + uint32(perRing)

			// Pole rings collapse to a point; skip the zero-area half.
			if rings[i].radius > poleEpsilon {
				indices = append(indices, a, a+1, b)
			}
			if rings[i+1].radius > poleEpsilon {
				indices = append(indices, a+1, b+1, b)
			}
		}
	}

	m := &Mesh{}
	m.reset(positions, uvs, nil, indices)
	return m
}
