// Package editor implements the terrain sculpting state machine: it picks the
// mesh under the cursor each frame and applies the active tool.
package editor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrasculpt/internal/config"
	"github.com/Faultbox/terrasculpt/internal/engine/input"
	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
	"github.com/Faultbox/terrasculpt/internal/engine/picking"
	"github.com/Faultbox/terrasculpt/internal/logger"
)

// Tool is the active sculpting tool.
type Tool int

const (
	ToolDragHeight Tool = iota
	ToolFlatten
)

func (t Tool) String() string {
	switch t {
	case ToolDragHeight:
		return "DragHeight"
	case ToolFlatten:
		return "Flatten"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// State is the state machine state.
type State int

const (
	StateInitial State = iota
	StateDragHeight
)

func (s State) String() string {
	if s == StateDragHeight {
		return "DragHeight"
	}
	return "Initial"
}

// RenderMode selects how the renderer draws the mesh.
type RenderMode int

const (
	RenderTextured RenderMode = iota
	RenderWireframe
)

func (m RenderMode) String() string {
	if m == RenderWireframe {
		return "Wireframe"
	}
	return "Textured"
}

// Viewer is the camera as seen by picking.
type Viewer interface {
	Position() mgl32.Vec3
	ViewProjection() mgl32.Mat4
}

// orthographic is implemented by viewers whose picking rays are parallel.
type orthographic interface {
	IsOrthographic() bool
}

// Settings tune the tools.
type Settings struct {
	Tool              Tool
	Radius            float32
	RadiusMin         float32
	RadiusMax         float32
	ScrollSpeed       float32 // Radius units per scroll step per second
	DragScale         float32 // Height units per pixel of vertical drag
	MaxFalloff        float32
	SelectionCapacity int // Indices, three per triangle
}

// DefaultSettings mirrors the config defaults.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default().Editor)
}

// SettingsFromConfig converts editor settings.
func SettingsFromConfig(cfg config.EditorConfig) Settings {
	s := Settings{
		Tool:              ToolDragHeight,
		Radius:            cfg.Radius,
		RadiusMin:         cfg.RadiusMin,
		RadiusMax:         cfg.RadiusMax,
		ScrollSpeed:       cfg.ScrollSpeed,
		DragScale:         cfg.DragScale,
		MaxFalloff:        cfg.MaxFalloff,
		SelectionCapacity: cfg.SelectionCapacity,
	}
	if cfg.Tool == config.ToolFlatten {
		s.Tool = ToolFlatten
	}
	return s
}

// Editor owns the edit session for one mesh. It is the only mutator of the
// mesh positions and must be driven from a single goroutine.
type Editor struct {
	mesh     *mesh.Mesh
	settings Settings
	log      *zap.Logger

	tool       Tool
	state      State
	radius     float32
	renderMode RenderMode
	selection  *mesh.Selection
	overflowed bool

	hit    picking.Hit
	hasHit bool

	// Captured when a drag starts, parallel to the selection.
	startMouse    mgl32.Vec2
	startHit      mgl32.Vec3
	origPositions []mgl32.Vec3
	origDistances []float32

	flattenHeight  float32
	flattenLatched bool
}

// New creates an editor for m.
func New(m *mesh.Mesh, s Settings) *Editor {
	e := &Editor{
		mesh:      m,
		settings:  s,
		log:       logger.Named("editor"),
		tool:      s.Tool,
		radius:    mgl32.Clamp(s.Radius, s.RadiusMin, s.RadiusMax),
		selection: mesh.NewSelection(s.SelectionCapacity),
	}
	e.origPositions = make([]mgl32.Vec3, 0, s.SelectionCapacity)
	e.origDistances = make([]float32, 0, s.SelectionCapacity)
	return e
}

// Update advances the editor by one frame. Picking failures are returned
// after the frame has been treated as a miss.
func (e *Editor) Update(in input.Snapshot, cam Viewer, viewportW, viewportH, dt float32) error {
	e.handleKeys(in)

	e.radius -= in.Scroll.Y() * dt * e.settings.ScrollSpeed
	e.radius = mgl32.Clamp(e.radius, e.settings.RadiusMin, e.settings.RadiusMax)

	switch e.state {
	case StateInitial:
		return e.updateInitial(in, cam, viewportW, viewportH)
	case StateDragHeight:
		e.updateDrag(in)
	}
	return nil
}

func (e *Editor) handleKeys(in input.Snapshot) {
	if in.Key(input.Key1) == input.KeyPressed {
		e.SetTool(ToolDragHeight)
	}
	if in.Key(input.Key2) == input.KeyPressed {
		e.SetTool(ToolFlatten)
	}
	if in.Key(input.KeyTab) == input.KeyPressed {
		e.ToggleRenderMode()
	}
}

func (e *Editor) updateInitial(in input.Snapshot, cam Viewer, viewportW, viewportH float32) error {
	e.selection.Clear()
	e.hasHit = false
	button := in.Button(input.MouseLeft)

	ray, err := pickRay(cam, in.Mouse, viewportW, viewportH)
	if err != nil {
		e.releaseLatch(button)
		return fmt.Errorf("pick: %w", err)
	}

	hit, ok := picking.IntersectMesh(ray, e.mesh)
	if !ok {
		e.releaseLatch(button)
		return nil
	}
	e.hit, e.hasHit = hit, true

	switch e.tool {
	case ToolDragHeight:
		e.selectAround(hit.Point, false)
		if button == input.KeyPressed {
			e.beginDrag(in.Mouse, hit.Point)
		}

	case ToolFlatten:
		e.selectAround(hit.Point, true)
		if !button.Down() {
			e.flattenLatched = false
			return nil
		}
		if !e.flattenLatched {
			e.flattenHeight = hit.Point.Y()
			e.flattenLatched = true
		}
		for _, idx := range e.selection.Indices() {
			e.mesh.Positions[idx][1] = e.flattenHeight
		}
		e.mesh.MarkDirty()
	}
	return nil
}

// releaseLatch drops the flatten height once the button is up, even when
// the cursor left the mesh before release.
func (e *Editor) releaseLatch(button input.KeyState) {
	if !button.Down() {
		e.flattenLatched = false
	}
}

func (e *Editor) selectAround(center mgl32.Vec3, ignoreHeight bool) {
	var err error
	if ignoreHeight {
		err = e.mesh.TrianglesInRadiusIgnoreHeight(center, e.radius, e.selection)
	} else {
		err = e.mesh.TrianglesInRadius(center, e.radius, e.selection)
	}

	full := errors.Is(err, mesh.ErrSelectionFull)
	if full && !e.overflowed {
		e.log.Warn("selection capacity too low, using partial selection",
			zap.Int("capacity", e.selection.Cap()),
			zap.Float32("radius", e.radius))
	}
	e.overflowed = full
}

func (e *Editor) beginDrag(mouse mgl32.Vec2, hitPoint mgl32.Vec3) {
	e.state = StateDragHeight
	e.startMouse = mouse
	e.startHit = hitPoint

	e.origPositions = e.origPositions[:0]
	e.origDistances = e.origDistances[:0]
	for _, idx := range e.selection.Indices() {
		p := e.mesh.Positions[idx]
		e.origPositions = append(e.origPositions, p)
		e.origDistances = append(e.origDistances, hitPoint.Sub(p).Len())
	}

	e.log.Debug("drag started",
		zap.Int("indices", e.selection.Len()),
		zap.Float32("radius", e.radius))
}

func (e *Editor) updateDrag(in input.Snapshot) {
	if in.Button(input.MouseLeft) != input.KeyHolding {
		e.state = StateInitial
		e.log.Debug("drag finished")
		return
	}

	delta := in.Mouse.Sub(e.startMouse)
	heightDelta := delta.Y() * -e.settings.DragScale

	for i, idx := range e.selection.Indices() {
		falloff := mgl32.Clamp(1-e.origDistances[i]/e.radius, 0, e.settings.MaxFalloff)
		p := e.origPositions[i]
		e.mesh.Positions[idx] = mgl32.Vec3{p.X(), p.Y() + heightDelta*falloff, p.Z()}
	}
	e.mesh.MarkDirty()
}

func pickRay(cam Viewer, mouse mgl32.Vec2, viewportW, viewportH float32) (picking.Ray, error) {
	if o, ok := cam.(orthographic); ok && o.IsOrthographic() {
		return picking.UnprojectRay(cam.ViewProjection(), mouse, viewportW, viewportH)
	}
	return picking.ScreenToRay(cam.Position(), cam.ViewProjection(), mouse, viewportW, viewportH)
}

// SetTool switches tools. A drag in progress continues with its captured
// selection; the flatten height is released.
func (e *Editor) SetTool(t Tool) {
	if t != e.tool {
		e.log.Debug("tool changed", zap.Stringer("tool", t))
	}
	e.tool = t
	e.flattenLatched = false
}

// ToggleRenderMode flips between textured and wireframe drawing.
func (e *Editor) ToggleRenderMode() {
	if e.renderMode == RenderTextured {
		e.renderMode = RenderWireframe
	} else {
		e.renderMode = RenderTextured
	}
	e.log.Debug("render mode changed", zap.Stringer("mode", e.renderMode))
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// State returns the state machine state.
func (e *Editor) State() State { return e.state }

// Radius returns the current selection radius.
func (e *Editor) Radius() float32 { return e.radius }

// RenderMode returns the current render mode.
func (e *Editor) RenderMode() RenderMode { return e.renderMode }

// Mesh returns the edited mesh.
func (e *Editor) Mesh() *mesh.Mesh { return e.mesh }

// Selection returns the current selection. The renderer draws it as an overlay.
func (e *Editor) Selection() *mesh.Selection { return e.selection }

// LastHit returns the most recent pick while in the initial state.
func (e *Editor) LastHit() (picking.Hit, bool) { return e.hit, e.hasHit }

// DragOrigin returns where the current drag started.
func (e *Editor) DragOrigin() (mouse mgl32.Vec2, hit mgl32.Vec3, ok bool) {
	return e.startMouse, e.startHit, e.state == StateDragHeight
}

// FlattenHeight returns the latched flatten height, if any.
func (e *Editor) FlattenHeight() (float32, bool) {
	return e.flattenHeight, e.flattenLatched
}

// Status summarizes the editor for display.
type Status struct {
	Tool       Tool
	State      State
	Radius     float32
	Triangles  int
	RenderMode RenderMode
}

// Status returns the current editor status.
func (e *Editor) Status() Status {
	return Status{
		Tool:       e.tool,
		State:      e.state,
		Radius:     e.radius,
		Triangles:  e.selection.Len() / 3,
		RenderMode: e.renderMode,
	}
}

func (s Status) String() string {
	return fmt.Sprintf("%s | radius %.1f | %d tris | %s", s.Tool, s.Radius, s.Triangles, s.RenderMode)
}
