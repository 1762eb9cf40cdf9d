package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTerrain() TerrainParams {
	return TerrainParams{
		Size:         4,
		QuadsPerSide: 2,
		TileX:        10,
		TileY:        6,
		HeightMin:    -1,
		HeightMax:    3,
		NoiseScale:   0.2,
	}
}

func TestNewTerrainLayout(t *testing.T) {
	m, err := NewTerrain(smallTerrain())
	require.NoError(t, err)

	assert.Equal(t, 9, m.VertexCount())
	assert.Len(t, m.UVs, 9)
	assert.Len(t, m.Indices, 24)
	assert.Nil(t, m.Normals)
	assert.True(t, m.IsTerrain())
	assert.True(t, m.Dirty())

	// First quad: bottomLeft 0, bottomRight 1, topLeft 3, topRight 4.
	assert.Equal(t, []uint32{3, 0, 1, 4, 3, 1}, m.Indices[:6])
	// Last quad starts at bottomLeft 4.
	assert.Equal(t, []uint32{7, 4, 5, 8, 7, 5}, m.Indices[18:])

	for i, p := range m.Positions {
		x, y := i%3, i/3
		assert.Equal(t, float32(x)*2, p.X(), "vertex %d x", i)
		assert.Equal(t, -float32(y)*2, p.Z(), "vertex %d z", i)
	}

	assert.Equal(t, mgl32.Vec2{0, 0}, m.UVs[0])
	assert.Equal(t, mgl32.Vec2{5, 3}, m.UVs[4])
	assert.Equal(t, mgl32.Vec2{10, 6}, m.UVs[8])

	// Noise is zero on the lattice origin, so the height is exactly HeightMin.
	assert.Equal(t, float32(-1), m.Positions[0].Y())
}

func TestNewTerrainCounts(t *testing.T) {
	for _, quads := range []int{1, 3, 16, 80} {
		p := smallTerrain()
		p.QuadsPerSide = quads
		p.Size = 40

		m, err := NewTerrain(p)
		require.NoError(t, err)

		assert.Equal(t, (quads+1)*(quads+1), m.VertexCount())
		assert.Equal(t, 6*quads*quads, len(m.Indices))
		for _, idx := range m.Indices {
			require.Less(t, int(idx), m.VertexCount())
		}
	}
}

func TestNewTerrainDeterministic(t *testing.T) {
	p := smallTerrain()
	p.QuadsPerSide = 20

	a, err := NewTerrain(p)
	require.NoError(t, err)
	b, err := NewTerrain(p)
	require.NoError(t, err)

	assert.Equal(t, a.Positions, b.Positions)

	varied := false
	for _, v := range a.Positions {
		if v.Y() != a.Positions[0].Y() {
			varied = true
			break
		}
	}
	assert.True(t, varied, "noise should produce differing heights")
}

func TestNewTerrainFlatWindingFacesUp(t *testing.T) {
	p := smallTerrain()
	p.HeightMin, p.HeightMax = 0, 0

	m, err := NewTerrain(p)
	require.NoError(t, err)

	for tri := range m.TriangleCount() {
		_, v0, v1, v2 := m.Triangle(tri)
		assert.Equal(t, float32(0), v0.Y())
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		assert.Greater(t, n.Y(), float32(0), "triangle %d", tri)
	}
}

func TestNewTerrainInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TerrainParams)
	}{
		{"zero quads", func(p *TerrainParams) { p.QuadsPerSide = 0 }},
		{"zero size", func(p *TerrainParams) { p.Size = 0 }},
		{"zero noise scale", func(p *TerrainParams) { p.NoiseScale = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := smallTerrain()
			tt.mutate(&p)
			_, err := NewTerrain(p)
			assert.ErrorIs(t, err, ErrInvalidTerrain)
		})
	}
}

func TestSetTerrainHeightPerlin(t *testing.T) {
	p := smallTerrain()
	p.QuadsPerSide = 8
	m, err := NewTerrain(p)
	require.NoError(t, err)
	before := append([]mgl32.Vec3(nil), m.Positions...)

	m.ClearDirty()
	require.NoError(t, m.SetTerrainHeightPerlin(HeightParams{Min: 0, Max: 6, Scale: 0.2, OffsetX: 1.3}))
	assert.True(t, m.Dirty())

	changed := 0
	for i := range m.Positions {
		assert.Equal(t, before[i].X(), m.Positions[i].X())
		assert.Equal(t, before[i].Z(), m.Positions[i].Z())
		if before[i].Y() != m.Positions[i].Y() {
			changed++
		}
	}
	assert.NotZero(t, changed)

	got, ok := m.Terrain()
	require.True(t, ok)
	assert.Equal(t, float32(6), got.HeightMax)

	// Zero offsets and the original range reproduce the generated heights.
	require.NoError(t, m.SetTerrainHeightPerlin(HeightParams{Min: p.HeightMin, Max: p.HeightMax, Scale: p.NoiseScale}))
	assert.Equal(t, before, m.Positions)

	assert.ErrorIs(t, m.SetTerrainHeightPerlin(HeightParams{Scale: 0}), ErrInvalidTerrain)
}

func TestSetTerrainHeightPerlinRequiresTerrain(t *testing.T) {
	err := NewCube().SetTerrainHeightPerlin(HeightParams{Min: 0, Max: 1, Scale: 1})
	assert.ErrorIs(t, err, ErrNotTerrain)
}
