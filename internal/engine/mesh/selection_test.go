package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatTerrain(t *testing.T) *Mesh {
	t.Helper()
	p := smallTerrain()
	p.HeightMin, p.HeightMax = 0, 0
	m, err := NewTerrain(p)
	require.NoError(t, err)
	return m
}

func TestTrianglesInRadiusEmpty(t *testing.T) {
	m := flatTerrain(t)
	sel := NewSelection(100)

	// Vertex positions are never triangle centroids.
	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{2, 0, -2}, 0, sel))
	assert.Zero(t, sel.Len())
}

func TestTrianglesInRadiusAll(t *testing.T) {
	m := flatTerrain(t)
	sel := NewSelection(100)

	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{2, 0, -2}, 100, sel))
	assert.Equal(t, m.Indices, sel.Indices(), "every triangle in index order, repeats kept")
}

func TestTrianglesInRadiusStrict(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec3{{0, 0, -1}, {3, 0, 0}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	}
	sel := NewSelection(3)

	// Centroid is (1, 0, 0): exactly on the radius is outside.
	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{}, 1, sel))
	assert.Zero(t, sel.Len())

	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{}, 1.01, sel))
	assert.Equal(t, []uint32{0, 1, 2}, sel.Indices())
}

func TestTrianglesInRadiusIgnoreHeight(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec3{{0, 50, -1}, {3, 50, 0}, {0, 50, 1}},
		Indices:   []uint32{0, 1, 2},
	}
	sel := NewSelection(3)

	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{}, 2, sel))
	assert.Zero(t, sel.Len(), "3D distance includes height")

	require.NoError(t, m.TrianglesInRadiusIgnoreHeight(mgl32.Vec3{}, 2, sel))
	assert.Equal(t, 3, sel.Len())
}

func TestTrianglesInRadiusClearsSelection(t *testing.T) {
	m := flatTerrain(t)
	sel := NewSelection(100)

	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{2, 0, -2}, 100, sel))
	require.NotZero(t, sel.Len())

	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{100, 0, 100}, 1, sel))
	assert.Zero(t, sel.Len())
}

func TestTrianglesInRadiusOverflow(t *testing.T) {
	m := flatTerrain(t)

	sel := NewSelection(7)
	err := m.TrianglesInRadius(mgl32.Vec3{2, 0, -2}, 100, sel)
	assert.ErrorIs(t, err, ErrSelectionFull)
	assert.Equal(t, m.Indices[:6], sel.Indices(), "partial result is kept")
	assert.Equal(t, 7, sel.Cap())

	exact := NewSelection(len(m.Indices))
	require.NoError(t, m.TrianglesInRadius(mgl32.Vec3{2, 0, -2}, 100, exact))
	assert.Equal(t, len(m.Indices), exact.Len())
}

func TestSelectionAccessors(t *testing.T) {
	sel := NewSelection(6)
	require.True(t, sel.pushTriangle(4, 5, 6))
	assert.Equal(t, uint32(5), sel.At(1))

	sel.Clear()
	assert.Zero(t, sel.Len())
	assert.Equal(t, 6, sel.Cap())
}
