// Package config handles sculpting demo configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Editor  EditorConfig  `yaml:"editor"`
	Camera  CameraConfig  `yaml:"camera"`
	Texture TextureConfig `yaml:"texture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// TerrainConfig holds heightfield generation parameters.
type TerrainConfig struct {
	Size         float32 `yaml:"size"`           // World units per side
	QuadsPerSide int     `yaml:"quads_per_side"` // Grid resolution
	TileX        float32 `yaml:"tile_x"`         // Texture tiling along X
	TileY        float32 `yaml:"tile_y"`         // Texture tiling along Z
	HeightMin    float32 `yaml:"height_min"`
	HeightMax    float32 `yaml:"height_max"`
	NoiseScale   float32 `yaml:"noise_scale"`
	NoiseOffsetX float32 `yaml:"noise_offset_x"`
	NoiseOffsetY float32 `yaml:"noise_offset_y"`
}

// MeshConfig selects what gets loaded into the editor.
type MeshConfig struct {
	// Source is "terrain", a primitive name, or a path to an .obj file.
	Source string `yaml:"source"`
}

// EditorConfig holds terrain editing settings.
type EditorConfig struct {
	Tool              string  `yaml:"tool"`
	Radius            float32 `yaml:"radius"`
	RadiusMin         float32 `yaml:"radius_min"`
	RadiusMax         float32 `yaml:"radius_max"`
	ScrollSpeed       float32 `yaml:"scroll_speed"`
	DragScale         float32 `yaml:"drag_scale"` // Height units per pixel of vertical drag
	MaxFalloff        float32 `yaml:"max_falloff"`
	SelectionCapacity int     `yaml:"selection_capacity"` // Max selected indices (3 per triangle)
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	Mode        string     `yaml:"mode"`       // flying | orbit
	Projection  string     `yaml:"projection"` // perspective | orthographic
	FOVDegrees  float32    `yaml:"fov_degrees"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	OrthoSize   float32    `yaml:"ortho_size"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
}

// TextureConfig holds the terrain texture location.
type TextureConfig struct {
	Path string `yaml:"path"` // Empty uses a procedural checker
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Tool names accepted in EditorConfig.Tool.
const (
	ToolDragHeight = "drag_height"
	ToolFlatten    = "flatten"
)

// Camera modes and projections accepted in CameraConfig.
const (
	CameraFlying    = "flying"
	CameraOrbit     = "orbit"
	ProjectionPersp = "perspective"
	ProjectionOrtho = "orthographic"
)

// MeshSourceTerrain selects the procedural heightfield.
const MeshSourceTerrain = "terrain"

const minSelectionIndices = 3

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Terrasculpt",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Terrain: TerrainConfig{
			Size:         40,
			QuadsPerSide: 80,
			TileX:        10,
			TileY:        10,
			HeightMin:    0,
			HeightMax:    6,
			NoiseScale:   0.2,
		},
		Mesh: MeshConfig{
			Source: MeshSourceTerrain,
		},
		Editor: EditorConfig{
			Tool:              ToolDragHeight,
			Radius:            5,
			RadiusMin:         1,
			RadiusMax:         15,
			ScrollSpeed:       20,
			DragScale:         0.1,
			MaxFalloff:        0.9,
			SelectionCapacity: 30000,
		},
		Camera: CameraConfig{
			Mode:        CameraFlying,
			Projection:  ProjectionPersp,
			FOVDegrees:  65,
			Near:        0.01,
			Far:         1000,
			OrthoSize:   1,
			Speed:       3,
			Sensitivity: 0.2,
			Position:    [3]float32{20, 15, 10},
			Target:      [3]float32{20, 0, -20},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, fmt.Errorf("terrain: size %v must be positive", c.Terrain.Size))
	}
	if c.Terrain.QuadsPerSide < 1 {
		errs = append(errs, fmt.Errorf("terrain: quads_per_side %d must be at least 1", c.Terrain.QuadsPerSide))
	}
	if c.Terrain.NoiseScale <= 0 {
		errs = append(errs, fmt.Errorf("terrain: noise_scale %v must be positive", c.Terrain.NoiseScale))
	}
	if c.Mesh.Source == "" {
		errs = append(errs, errors.New("mesh: source is empty"))
	}

	switch c.Editor.Tool {
	case ToolDragHeight, ToolFlatten:
	default:
		errs = append(errs, fmt.Errorf("editor: unknown tool %q", c.Editor.Tool))
	}
	if c.Editor.RadiusMin <= 0 || c.Editor.RadiusMin > c.Editor.RadiusMax {
		errs = append(errs, fmt.Errorf("editor: radius range [%v, %v] is invalid", c.Editor.RadiusMin, c.Editor.RadiusMax))
	}
	if c.Editor.SelectionCapacity < minSelectionIndices {
		errs = append(errs, fmt.Errorf("editor: selection_capacity %d must hold at least one triangle", c.Editor.SelectionCapacity))
	}
	if c.Editor.MaxFalloff < 0 || c.Editor.MaxFalloff > 1 {
		errs = append(errs, fmt.Errorf("editor: max_falloff %v must be within [0, 1]", c.Editor.MaxFalloff))
	}

	switch c.Camera.Mode {
	case CameraFlying, CameraOrbit:
	default:
		errs = append(errs, fmt.Errorf("camera: unknown mode %q", c.Camera.Mode))
	}
	switch c.Camera.Projection {
	case ProjectionPersp, ProjectionOrtho:
	default:
		errs = append(errs, fmt.Errorf("camera: unknown projection %q", c.Camera.Projection))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: clip range [%v, %v] is invalid", c.Camera.Near, c.Camera.Far))
	}

	return multierr.Combine(errs...)
}
