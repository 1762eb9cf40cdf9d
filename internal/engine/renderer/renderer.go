// Package renderer draws the edited mesh with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
	"github.com/Faultbox/terrasculpt/internal/engine/renderer/shaders"
	"github.com/Faultbox/terrasculpt/internal/engine/shader"
	"github.com/Faultbox/terrasculpt/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Colors used by the renderer.
var (
	ClearColor     = mgl32.Vec4{0.1, 0.1, 0.15, 1}
	WireColor      = mgl32.Vec4{0.85, 0.9, 1, 1}
	SelectionColor = mgl32.Vec4{1, 0.55, 0.1, 0.35}
	BrushColor     = mgl32.Vec4{1, 0.85, 0.2, 1}
)

// Renderer handles all OpenGL rendering.
// IMPORTANT: All methods must be called on the thread owning the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram    *shader.Program
	overlayProgram *shader.Program

	// Mesh buffers. The overlay VAO shares the vertex buffer and owns its
	// own index buffer for the selected triangles.
	vao, vbo, ebo     uint32
	overlayVAO        uint32
	overlayEBO        uint32
	vertexCount       int
	indexCount        int32
	overlayIndexCount int32
	scratch           []mesh.VertexPosUV

	// Debug lines in world space, position only.
	lineVAO, lineVBO uint32

	texture uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.meshProgram, err = shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, err
	}
	r.overlayProgram, err = shader.New("overlay", shaders.MeshVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		r.meshProgram.Delete()
		return nil, err
	}

	r.createBuffers()
	return r, nil
}

func (r *Renderer) createBuffers() {
	vertexSize := int32(unsafe.Sizeof(mesh.VertexPosUV{}))

	gl.GenBuffers(1, &r.vbo)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// TexCoord (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.GenBuffers(1, &r.overlayEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.overlayEBO)

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// UploadMesh replaces the GPU copy of m and clears its dirty flag.
func (r *Renderer) UploadMesh(m *mesh.Mesh) {
	r.scratch = m.RenderVertices(r.scratch)
	vertexSize := int(unsafe.Sizeof(mesh.VertexPosUV{}))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*vertexSize, dataPtr(r.scratch), gl.DYNAMIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, dataPtr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	r.vertexCount = len(r.scratch)
	r.indexCount = int32(len(m.Indices))
	r.overlayIndexCount = 0
	m.ClearDirty()

	r.log.Info("mesh uploaded",
		zap.Int("vertices", r.vertexCount),
		zap.Int("triangles", m.TriangleCount()))
}

// SyncMesh re-uploads vertex data when m has been edited since the last upload.
func (r *Renderer) SyncMesh(m *mesh.Mesh) {
	if !m.Dirty() {
		return
	}
	if m.VertexCount() != r.vertexCount || int32(len(m.Indices)) != r.indexCount {
		r.UploadMesh(m)
		return
	}

	r.scratch = m.RenderVertices(r.scratch)
	vertexSize := int(unsafe.Sizeof(mesh.VertexPosUV{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.scratch)*vertexSize, dataPtr(r.scratch))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.ClearDirty()
}

// UploadTexture replaces the mesh texture.
func (r *Renderer) UploadTexture(img *image.RGBA) {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	b := img.Bounds()
	if b.Empty() {
		r.texture = 0
		return
	}

	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(b.Dx()), int32(b.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMesh draws the uploaded mesh textured, or as lines when wireframe is set.
func (r *Renderer) DrawMesh(viewProj mgl32.Mat4, wireframe bool) {
	if r.indexCount == 0 {
		return
	}

	r.meshProgram.Use()
	r.meshProgram.SetMat4("uViewProj", viewProj)
	r.meshProgram.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	if wireframe {
		r.meshProgram.SetInt("uWireframe", 1)
		r.meshProgram.SetVec4("uWireColor", WireColor)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		r.meshProgram.SetInt("uWireframe", 0)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// DrawSelection blends the selected triangles over the mesh.
func (r *Renderer) DrawSelection(viewProj mgl32.Mat4, indices []uint32) {
	if len(indices) == 0 || r.vertexCount == 0 {
		return
	}

	gl.BindVertexArray(r.overlayVAO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, dataPtr(indices), gl.STREAM_DRAW)
	r.overlayIndexCount = int32(len(indices))

	r.overlayProgram.Use()
	r.overlayProgram.SetMat4("uViewProj", viewProj)
	r.overlayProgram.SetVec4("uColor", SelectionColor)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(-1, -1)
	gl.DepthMask(false)

	gl.DrawElements(gl.TRIANGLES, r.overlayIndexCount, gl.UNSIGNED_INT, nil)

	gl.DepthMask(true)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// DrawLines draws a line list on top of the scene.
func (r *Renderer) DrawLines(viewProj mgl32.Mat4, verts []mgl32.Vec3, color mgl32.Vec4) {
	if len(verts) < 2 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*3*4, dataPtr(verts), gl.STREAM_DRAW)

	r.overlayProgram.Use()
	r.overlayProgram.SetMat4("uViewProj", viewProj)
	r.overlayProgram.SetVec4("uColor", color)

	gl.Disable(gl.DEPTH_TEST)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)))
	gl.Enable(gl.DEPTH_TEST)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, vao := range []*uint32{&r.vao, &r.overlayVAO, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, buf := range []*uint32{&r.vbo, &r.ebo, &r.overlayEBO, &r.lineVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	r.meshProgram.Delete()
	r.overlayProgram.Delete()
}

// dataPtr returns a pointer to the first element, or nil for an empty slice.
func dataPtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
