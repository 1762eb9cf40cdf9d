// Package scene assembles what the editor works on: the mesh named by the
// config, its texture and a camera controller placed to view it.
package scene

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrasculpt/internal/config"
	"github.com/Faultbox/terrasculpt/internal/engine/camera"
	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
	"github.com/Faultbox/terrasculpt/internal/engine/texture"
	"github.com/Faultbox/terrasculpt/internal/logger"
)

// Procedural texture used when no texture path is configured.
const (
	checkerSize  = 256
	checkerCells = 8
)

// TerrainParams converts terrain settings.
func TerrainParams(cfg config.TerrainConfig) mesh.TerrainParams {
	return mesh.TerrainParams{
		Size:         cfg.Size,
		QuadsPerSide: cfg.QuadsPerSide,
		TileX:        cfg.TileX,
		TileY:        cfg.TileY,
		HeightMin:    cfg.HeightMin,
		HeightMax:    cfg.HeightMax,
		NoiseScale:   cfg.NoiseScale,
	}
}

// LoadMesh builds the mesh selected by cfg.Mesh.Source: the procedural
// terrain, a named primitive, or an .obj file.
func LoadMesh(cfg *config.Config) (*mesh.Mesh, error) {
	source := strings.TrimSpace(cfg.Mesh.Source)
	log := logger.Named("scene")

	if strings.EqualFold(source, config.MeshSourceTerrain) {
		m, err := mesh.NewTerrain(TerrainParams(cfg.Terrain))
		if err != nil {
			return nil, err
		}
		if cfg.Terrain.NoiseOffsetX != 0 || cfg.Terrain.NoiseOffsetY != 0 {
			err = m.SetTerrainHeightPerlin(mesh.HeightParams{
				Min:     cfg.Terrain.HeightMin,
				Max:     cfg.Terrain.HeightMax,
				Scale:   cfg.Terrain.NoiseScale,
				OffsetX: cfg.Terrain.NoiseOffsetX,
				OffsetY: cfg.Terrain.NoiseOffsetY,
			})
			if err != nil {
				return nil, err
			}
		}
		log.Info("terrain generated",
			zap.Float32("size", cfg.Terrain.Size),
			zap.Int("quads", cfg.Terrain.QuadsPerSide),
			zap.Int("triangles", m.TriangleCount()))
		return m, nil
	}

	if kind, err := mesh.ParsePrimitive(source); err == nil {
		return mesh.NewPrimitive(kind)
	}

	if strings.EqualFold(filepath.Ext(source), ".obj") {
		m, _, err := mesh.LoadOBJFile(source)
		return m, err
	}

	return nil, fmt.Errorf("unknown mesh source %q (want %s, one of %s, or an .obj path)",
		source, config.MeshSourceTerrain, strings.Join(mesh.PrimitiveNames(), ", "))
}

// LoadTexture decodes the configured texture, falling back to a procedural
// checker when none is set or it cannot be read.
func LoadTexture(cfg config.TextureConfig) *image.RGBA {
	if cfg.Path == "" {
		return texture.Checker(checkerSize, checkerCells)
	}
	img, err := texture.LoadFile(cfg.Path, texture.MaxSize)
	if err != nil {
		logger.Named("scene").Warn("using procedural texture", zap.Error(err))
		return texture.Checker(checkerSize, checkerCells)
	}
	return img
}

// NewController places a camera for m and wraps it in the configured
// controller. Terrain uses the configured pose; other meshes are framed
// from their bounds.
func NewController(cfg *config.Config, m *mesh.Mesh) camera.Controller {
	pos := mgl32.Vec3(cfg.Camera.Position)
	target := mgl32.Vec3(cfg.Camera.Target)
	if !strings.EqualFold(strings.TrimSpace(cfg.Mesh.Source), config.MeshSourceTerrain) {
		pos, target = frame(m.Bounds())
	}

	props := camera.PropsFromConfig(cfg.Camera)
	props.Aspect = float32(cfg.Window.Width) / float32(cfg.Window.Height)
	cam := camera.New(pos, target, props)

	if cfg.Camera.Mode == config.CameraOrbit {
		return camera.NewOrbit(cam, target)
	}
	return camera.NewFlying(cam, cfg.Camera.Speed, cfg.Camera.Sensitivity)
}

// frame returns a pose that looks at the center of b from above and in front.
func frame(b mesh.Bounds) (pos, target mgl32.Vec3) {
	target = b.Center()
	extent := max(b.Max.Sub(b.Min).Len(), 1)
	return target.Add(mgl32.Vec3{0, 0.6 * extent, 1.2 * extent}), target
}

// Scene is a loaded editing session without GL state.
type Scene struct {
	Mesh       *mesh.Mesh
	Texture    *image.RGBA
	Controller camera.Controller
}

// Load builds the mesh, texture and camera for cfg.
func Load(cfg *config.Config) (*Scene, error) {
	m, err := LoadMesh(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	return &Scene{
		Mesh:       m,
		Texture:    LoadTexture(cfg.Texture),
		Controller: NewController(cfg, m),
	}, nil
}
