package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrasculpt/internal/config"
	"github.com/Faultbox/terrasculpt/internal/engine/camera"
	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.QuadsPerSide = 4
	return cfg
}

func TestTerrainParams(t *testing.T) {
	p := TerrainParams(config.Default().Terrain)
	assert.Equal(t, mesh.TerrainParams{
		Size: 40, QuadsPerSide: 80, TileX: 10, TileY: 10,
		HeightMin: 0, HeightMax: 6, NoiseScale: 0.2,
	}, p)
}

func TestLoadMeshTerrain(t *testing.T) {
	cfg := smallConfig()
	m, err := LoadMesh(cfg)
	require.NoError(t, err)
	assert.True(t, m.IsTerrain())
	assert.Equal(t, 25, m.VertexCount())
	assert.Equal(t, 32, m.TriangleCount())

	cfg.Terrain.NoiseOffsetX = 3.7
	shifted, err := LoadMesh(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, m.Positions, shifted.Positions)
	for i := range m.Positions {
		assert.Equal(t, m.Positions[i].X(), shifted.Positions[i].X())
		assert.Equal(t, m.Positions[i].Z(), shifted.Positions[i].Z())
	}
}

func TestLoadMeshSources(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(objPath, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	tests := []struct {
		source    string
		vertices  int
		triangles int
	}{
		{"Cube", 36, 12},
		{" quad ", 4, 2},
		{"plane", 36, 50},
		{objPath, 3, 1},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.source), func(t *testing.T) {
			cfg := smallConfig()
			cfg.Mesh.Source = tt.source
			m, err := LoadMesh(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, m.VertexCount())
			assert.Equal(t, tt.triangles, m.TriangleCount())
		})
	}
}

func TestLoadMeshErrors(t *testing.T) {
	cfg := smallConfig()
	cfg.Mesh.Source = "teapot"
	_, err := LoadMesh(cfg)
	assert.ErrorContains(t, err, `unknown mesh source "teapot"`)

	cfg.Mesh.Source = filepath.Join(t.TempDir(), "missing.obj")
	_, err = LoadMesh(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg = smallConfig()
	cfg.Terrain.QuadsPerSide = 0
	_, err = LoadMesh(cfg)
	assert.ErrorIs(t, err, mesh.ErrInvalidTerrain)
}

func TestLoadTextureFallback(t *testing.T) {
	img := LoadTexture(config.TextureConfig{})
	assert.Equal(t, checkerSize, img.Bounds().Dx())

	img = LoadTexture(config.TextureConfig{Path: filepath.Join(t.TempDir(), "nope.png")})
	assert.Equal(t, checkerSize, img.Bounds().Dx())
}

func TestNewControllerUsesConfiguredPose(t *testing.T) {
	cfg := smallConfig()
	m, err := LoadMesh(cfg)
	require.NoError(t, err)

	ctrl := NewController(cfg, m)
	require.IsType(t, &camera.Flying{}, ctrl)

	cam := ctrl.Camera()
	assert.Equal(t, mgl32.Vec3{20, 15, 10}, cam.Position())
	assert.InDelta(t, float32(1280)/720, cam.Props.Aspect, 1e-6)

	toTarget := mgl32.Vec3{20, 0, -20}.Sub(cam.Position()).Normalize()
	assert.InDelta(t, 1, cam.Transform.Forward().Dot(toTarget), 1e-4)

	cfg.Camera.Mode = config.CameraOrbit
	orbit, ok := NewController(cfg, m).(*camera.Orbit)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{20, 0, -20}, orbit.Center)
}

func TestNewControllerFramesPrimitives(t *testing.T) {
	cfg := smallConfig()
	cfg.Mesh.Source = "cube"
	m, err := LoadMesh(cfg)
	require.NoError(t, err)

	cam := NewController(cfg, m).Camera()
	center := m.Bounds().Center()
	toCenter := center.Sub(cam.Position()).Normalize()
	assert.InDelta(t, 1, cam.Transform.Forward().Dot(toCenter), 1e-4)
	assert.Greater(t, cam.Position().Sub(center).Len(), float32(1))
}

func TestLoad(t *testing.T) {
	sc, err := Load(smallConfig())
	require.NoError(t, err)
	assert.NotNil(t, sc.Mesh)
	assert.NotNil(t, sc.Texture)
	assert.Same(t, sc.Controller.Camera(), sc.Controller.Camera())

	cfg := smallConfig()
	cfg.Mesh.Source = "nothing"
	_, err = Load(cfg)
	assert.Error(t, err)
}
