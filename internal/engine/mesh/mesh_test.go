package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVertices(t *testing.T) {
	m := NewQuad()

	verts := m.RenderVertices(nil)
	require.Len(t, verts, 4)
	for i, v := range verts {
		assert.Equal(t, [3]float32(m.Positions[i]), v.Position)
		assert.Equal(t, [2]float32(m.UVs[i]), v.UV)
	}

	// Edits show up in the next derived view and storage is reused.
	m.SetHeight(2, 7)
	again := m.RenderVertices(verts)
	assert.Equal(t, float32(7), again[2].Position[1])
	assert.Same(t, &verts[0], &again[0])
}

func TestRenderVerticesWithoutUVs(t *testing.T) {
	m := &Mesh{Positions: []mgl32.Vec3{{1, 2, 3}}}
	verts := m.RenderVertices(make([]VertexPosUV, 0, 8))
	require.Len(t, verts, 1)
	assert.Equal(t, [2]float32{}, verts[0].UV)
}

func TestDirtyFlag(t *testing.T) {
	m := NewQuad()
	assert.True(t, m.Dirty(), "new meshes need an initial upload")

	m.ClearDirty()
	assert.False(t, m.Dirty())

	m.SetHeight(0, 1)
	assert.True(t, m.Dirty())
	assert.Equal(t, float32(1), m.Positions[0].Y())

	m.ClearDirty()
	m.MarkDirty()
	assert.True(t, m.Dirty())
}

func TestBounds(t *testing.T) {
	p := smallTerrain()
	p.HeightMin, p.HeightMax = 0, 0
	m, err := NewTerrain(p)
	require.NoError(t, err)

	b := m.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, -4}, b.Min)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, b.Max)
	assert.Equal(t, mgl32.Vec3{2, 0, -2}, b.Center())

	assert.Equal(t, Bounds{}, (&Mesh{}).Bounds())
}

func TestTriangle(t *testing.T) {
	m := NewQuad()
	idx, v0, v1, v2 := m.Triangle(1)
	assert.Equal(t, [3]uint32{2, 3, 0}, idx)
	assert.Equal(t, m.Positions[2], v0)
	assert.Equal(t, m.Positions[3], v1)
	assert.Equal(t, m.Positions[0], v2)
}
