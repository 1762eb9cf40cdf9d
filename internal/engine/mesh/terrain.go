package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrasculpt/pkg/noise"
)

// TerrainParams describes a square heightfield grid.
type TerrainParams struct {
	Size         float32 // World units per side
	QuadsPerSide int
	TileX        float32 // Texture repeats along X
	TileY        float32 // Texture repeats along Z
	HeightMin    float32
	HeightMax    float32
	NoiseScale   float32 // Noise period as a fraction of Size
}

// HeightParams controls Perlin re-heighting of a terrain.
type HeightParams struct {
	Min     float32
	Max     float32
	Scale   float32
	OffsetX float32 // Added to world X before sampling
	OffsetY float32 // Added to world Z before sampling
}

// VerticesPerSide returns QuadsPerSide+1.
func (p TerrainParams) VerticesPerSide() int {
	return p.QuadsPerSide + 1
}

// QuadSize returns the world size of one grid cell.
func (p TerrainParams) QuadSize() float32 {
	return p.Size / float32(p.QuadsPerSide)
}

func (p TerrainParams) validate() error {
	if p.QuadsPerSide < 1 {
		return fmt.Errorf("%w: quads per side %d", ErrInvalidTerrain, p.QuadsPerSide)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size %v", ErrInvalidTerrain, p.Size)
	}
	if p.NoiseScale <= 0 {
		return fmt.Errorf("%w: noise scale %v", ErrInvalidTerrain, p.NoiseScale)
	}
	return nil
}

// NewTerrain builds a grid of (QuadsPerSide+1)^2 vertices spanning
// [0, Size] on X and [-Size, 0] on Z, with heights sampled from Perlin noise.
func NewTerrain(p TerrainParams) (*Mesh, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	perSide := p.VerticesPerSide()
	quadSize := p.QuadSize()

	positions := make([]mgl32.Vec3, 0, perSide*perSide)
	uvs := make([]mgl32.Vec2, 0, perSide*perSide)

	for y := range perSide {
		for x := range perSide {
			positions = append(positions, mgl32.Vec3{
				float32(x) * quadSize,
				0,
				-float32(y) * quadSize,
			})
			uvs = append(uvs, mgl32.Vec2{
				float32(x) / float32(p.QuadsPerSide) * p.TileX,
				float32(y) / float32(p.QuadsPerSide) * p.TileY,
			})
		}
	}

	indices := make([]uint32, 0, 6*p.QuadsPerSide*p.QuadsPerSide)
	for qy := range p.QuadsPerSide {
		for qx := range p.QuadsPerSide {
			bottomLeft := uint32(qy*perSide + qx)
			bottomRight := bottomLeft + 1
			topLeft := bottomLeft + uint32(perSide)
			topRight := topLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, bottomRight,
				topRight, topLeft, bottomRight,
			)
		}
	}

	m := &Mesh{}
	m.reset(positions, uvs, nil, indices)
	m.terrain = &p

	if err := m.SetTerrainHeightPerlin(HeightParams{
		Min:   p.HeightMin,
		Max:   p.HeightMax,
		Scale: p.NoiseScale,
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// SetTerrainHeightPerlin resamples every vertex height from Perlin noise.
// Noise is sampled at ((x+OffsetX)/(Size*Scale), (z+OffsetY)/(Size*Scale)) and
// mapped to lerp(Min, Max, n). Noise values below zero extrapolate below Min.
func (m *Mesh) SetTerrainHeightPerlin(h HeightParams) error {
	if m.terrain == nil {
		return ErrNotTerrain
	}
	if h.Scale <= 0 {
		return fmt.Errorf("%w: noise scale %v", ErrInvalidTerrain, h.Scale)
	}

	period := m.terrain.Size * h.Scale
	for i, p := range m.Positions {
		n := noise.Perlin2((p[0]+h.OffsetX)/period, (p[2]+h.OffsetY)/period)
		m.Positions[i][1] = lerp(h.Min, h.Max, n)
	}

	m.terrain.HeightMin = h.Min
	m.terrain.HeightMax = h.Max
	m.terrain.NoiseScale = h.Scale
	m.dirty = true
	return nil
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
