// Package mesh provides the CPU-side triangle mesh used by the sculpting editor:
// procedural generators, OBJ import and export, and radius queries.
package mesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrSelectionFull is returned when a radius query gathers more indices
	// than the selection can hold. The selection keeps the partial result.
	ErrSelectionFull = errors.New("mesh: selection capacity exceeded")

	// ErrUnsupportedPrimitive is returned by NewPrimitive for unknown kinds.
	ErrUnsupportedPrimitive = errors.New("mesh: unsupported primitive")

	// ErrInvalidTerrain is returned for terrain parameters that cannot produce a grid.
	ErrInvalidTerrain = errors.New("mesh: invalid terrain parameters")

	// ErrNotTerrain is returned when a terrain-only operation is applied to another mesh.
	ErrNotTerrain = errors.New("mesh: not a terrain mesh")
)

// Mesh holds vertex attribute buffers and a triangle index buffer.
// Positions is the single source of truth for vertex locations; render
// buffers are derived from it with RenderVertices.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Normals   []mgl32.Vec3 // Only filled by the OBJ importer
	Indices   []uint32     // Counter-clockwise triangles, len is a multiple of 3

	terrain *TerrainParams
	dirty   bool
}

// VertexPosUV is the interleaved vertex layout uploaded to the GPU.
type VertexPosUV struct {
	Position [3]float32
	UV       [2]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices and positions of triangle t.
func (m *Mesh) Triangle(t int) (idx [3]uint32, v0, v1, v2 mgl32.Vec3) {
	base := t * 3
	idx = [3]uint32{m.Indices[base], m.Indices[base+1], m.Indices[base+2]}
	return idx, m.Positions[idx[0]], m.Positions[idx[1]], m.Positions[idx[2]]
}

// IsTerrain reports whether the mesh was built by NewTerrain.
func (m *Mesh) IsTerrain() bool {
	return m.terrain != nil
}

// Terrain returns the parameters the terrain was generated with.
func (m *Mesh) Terrain() (TerrainParams, bool) {
	if m.terrain == nil {
		return TerrainParams{}, false
	}
	return *m.terrain, true
}

// SetHeight sets the Y component of vertex i and marks the mesh dirty.
func (m *Mesh) SetHeight(i uint32, y float32) {
	m.Positions[i][1] = y
	m.dirty = true
}

// MarkDirty flags the vertex data as changed since the last upload.
func (m *Mesh) MarkDirty() {
	m.dirty = true
}

// Dirty reports whether vertex data changed since the last ClearDirty.
func (m *Mesh) Dirty() bool {
	return m.dirty
}

// ClearDirty is called by the renderer after uploading.
func (m *Mesh) ClearDirty() {
	m.dirty = false
}

// RenderVertices fills dst with the interleaved position+uv view of the mesh,
// reusing its storage when large enough. Missing UVs are written as zero.
func (m *Mesh) RenderVertices(dst []VertexPosUV) []VertexPosUV {
	n := len(m.Positions)
	if cap(dst) < n {
		dst = make([]VertexPosUV, n)
	}
	dst = dst[:n]

	for i, p := range m.Positions {
		v := VertexPosUV{Position: p}
		if i < len(m.UVs) {
			v.UV = m.UVs[i]
		}
		dst[i] = v
	}
	return dst
}

// Bounds computes the bounding box of all positions.
// An empty mesh returns a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		for axis := range 3 {
			if p[axis] < b.Min[axis] {
				b.Min[axis] = p[axis]
			}
			if p[axis] > b.Max[axis] {
				b.Max[axis] = p[axis]
			}
		}
	}
	return b
}

// reset replaces all buffers in one shot.
func (m *Mesh) reset(positions []mgl32.Vec3, uvs []mgl32.Vec2, normals []mgl32.Vec3, indices []uint32) {
	m.Positions = positions
	m.UVs = uvs
	m.Normals = normals
	m.Indices = indices
	m.terrain = nil
	m.dirty = true
}
