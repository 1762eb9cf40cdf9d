package mesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidIndices(t *testing.T, m *Mesh) {
	t.Helper()
	require.Zero(t, len(m.Indices)%3)
	require.Len(t, m.UVs, len(m.Positions))
	for _, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Positions))
	}
}

func TestQuad(t *testing.T) {
	m := NewQuad()
	requireValidIndices(t, m)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, m.Indices)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, 0}, m.Positions[0])
	assert.Equal(t, mgl32.Vec2{1, 1}, m.UVs[2])
}

func TestCube(t *testing.T) {
	m := NewCube()
	requireValidIndices(t, m)
	require.Equal(t, 36, m.VertexCount())
	for i, idx := range m.Indices {
		assert.Equal(t, uint32(i), idx)
	}
	for _, p := range m.Positions {
		for axis := range 3 {
			assert.Equal(t, float32(0.5), math32.Abs(p[axis]))
		}
	}
	b := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, b.Min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, b.Max)
}

func TestPlane(t *testing.T) {
	m, err := NewPrimitive(PrimitivePlane)
	require.NoError(t, err)
	requireValidIndices(t, m)

	assert.Equal(t, 36, m.VertexCount())
	assert.Equal(t, 150, len(m.Indices))
	assert.True(t, m.IsTerrain())
	for _, p := range m.Positions {
		assert.Equal(t, float32(0), p.Y())
	}
	assert.Equal(t, mgl32.Vec2{5, 5}, m.UVs[35])
}

// assertOutward checks that every non-degenerate triangle faces away from
// the closest point on the Y axis segment [-halfLen, halfLen].
func assertOutward(t *testing.T, m *Mesh, halfLen float32) {
	t.Helper()
	for tri := range m.TriangleCount() {
		_, v0, v1, v2 := m.Triangle(tri)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Len() < 1e-6 {
			continue
		}
		c := v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
		axis := mgl32.Vec3{0, mgl32.Clamp(c.Y(), -halfLen, halfLen), 0}
		assert.Greater(t, n.Dot(c.Sub(axis)), float32(0), "triangle %d faces inward", tri)
	}
}

func TestSphere(t *testing.T) {
	m, err := NewPrimitive(PrimitiveSphere)
	require.NoError(t, err)
	requireValidIndices(t, m)

	for _, p := range m.Positions {
		assert.InDelta(t, 0.5, p.Len(), 1e-5)
	}
	assertOutward(t, m, 0)

	// Poles get one triangle per slice, other bands two.
	assert.Equal(t, 2*sphereSlices*(sphereStacks-1), m.TriangleCount())
}

func TestCapsule(t *testing.T) {
	m, err := NewPrimitive(PrimitiveCapsule)
	require.NoError(t, err)
	requireValidIndices(t, m)

	b := m.Bounds()
	assert.InDelta(t, 1.0, b.Max.Y(), 1e-5)
	assert.InDelta(t, -1.0, b.Min.Y(), 1e-5)
	assert.InDelta(t, 0.5, b.Max.X(), 1e-5)
	assertOutward(t, m, 0.5)
}

func TestParsePrimitive(t *testing.T) {
	for _, name := range PrimitiveNames() {
		kind, err := ParsePrimitive(name)
		require.NoError(t, err)
		assert.Equal(t, name, kind.String())

		m, err := NewPrimitive(kind)
		require.NoError(t, err, name)
		assert.NotZero(t, m.TriangleCount(), name)
	}

	kind, err := ParsePrimitive(" Cube ")
	require.NoError(t, err)
	assert.Equal(t, PrimitiveCube, kind)

	_, err = ParsePrimitive("torus")
	assert.ErrorIs(t, err, ErrUnsupportedPrimitive)

	_, err = NewPrimitive(Primitive(42))
	assert.ErrorIs(t, err, ErrUnsupportedPrimitive)
	assert.Equal(t, "Primitive(42)", Primitive(42).String())
}
