// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms position and texture coordinates.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader samples the terrain texture or draws flat wire color.
//
//go:embed mesh.frag
var MeshFragmentShader string

// OverlayFragmentShader fills the selection with a translucent color.
//
//go:embed overlay.frag
var OverlayFragmentShader string
