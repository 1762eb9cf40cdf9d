// Package app implements the sculpting demo main loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terrasculpt/internal/config"
	"github.com/Faultbox/terrasculpt/internal/editor"
	"github.com/Faultbox/terrasculpt/internal/engine/camera"
	"github.com/Faultbox/terrasculpt/internal/engine/debug"
	"github.com/Faultbox/terrasculpt/internal/engine/input"
	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
	"github.com/Faultbox/terrasculpt/internal/engine/picking"
	"github.com/Faultbox/terrasculpt/internal/engine/renderer"
	"github.com/Faultbox/terrasculpt/internal/engine/scene"
	"github.com/Faultbox/terrasculpt/internal/engine/window"
	"github.com/Faultbox/terrasculpt/internal/logger"
)

// App is the running sculpting session.
type App struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	events   *window.EventSource
	tracker  *input.Tracker
	renderer *renderer.Renderer

	mesh       *mesh.Mesh
	controller camera.Controller
	editor     *editor.Editor

	screenshots *debug.ScreenshotCapture

	// Window size in points; mouse coordinates use the same space.
	width, height int
	status        editor.Status
}

const (
	brushSegments = 48
	screenshotDir = "screenshots"
)

// New creates the window, GL resources and edit session.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("mesh", cfg.Mesh.Source),
	)

	sc, err := scene.Load(cfg)
	if err != nil {
		return nil, err
	}
	m := sc.Mesh

	a := &App{
		config:      cfg,
		log:         log,
		events:      window.NewEventSource(),
		tracker:     input.NewTracker(),
		mesh:        m,
		controller:  sc.Controller,
		screenshots: debug.NewScreenshotCapture(screenshotDir, "terrasculpt"),
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.width, a.height = a.window.GetSize()
	drawW, drawH := a.window.GetDrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{Width: drawW, Height: drawH})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.UploadTexture(sc.Texture)
	a.renderer.UploadMesh(m)

	a.controller.Camera().SetViewport(a.width, a.height)
	a.editor = editor.New(m, editor.SettingsFromConfig(cfg.Editor))

	log.Info("initialized",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
	return a, nil
}

// Run starts the main loop and returns when the window is closed or
// Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.events.Update(a.tracker) {
			a.running = false
			break
		}
		for _, event := range a.events.Events() {
			if event.Type == window.EventWindowResize {
				a.resize(event.Width, event.Height)
			}
		}

		in := a.tracker.Snapshot()
		if in.Key(input.KeyEscape) == input.KeyPressed {
			a.running = false
			break
		}

		a.update(in, dt)
		a.render()
		if in.Key(input.KeyF12) == input.KeyPressed {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dtMs", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.controller.Camera().SetViewport(width, height)
	drawW, drawH := a.window.GetDrawableSize()
	a.renderer.Resize(drawW, drawH)
}

func (a *App) update(in input.Snapshot, dt float32) {
	a.controller.Update(in, dt)

	err := a.editor.Update(in, a.controller.Camera(), float32(a.width), float32(a.height), dt)
	switch {
	case errors.Is(err, picking.ErrInvalidViewport):
		// Minimized.
	case err != nil:
		a.log.Debug("pick failed", zap.Error(err))
	}

	if st := a.editor.Status(); st != a.status {
		a.status = st
		a.window.SetTitle(a.config.Window.Title + " | " + st.String())
	}
}

func (a *App) render() {
	a.renderer.SyncMesh(a.mesh)

	viewProj := a.controller.Camera().ViewProjection()
	a.renderer.Begin()
	a.renderer.DrawMesh(viewProj, a.editor.RenderMode() == editor.RenderWireframe)
	a.renderer.DrawSelection(viewProj, a.editor.Selection().Indices())

	if _, center, ok := a.editor.DragOrigin(); ok {
		a.renderer.DrawLines(viewProj, debug.BrushRing(center, a.editor.Radius(), brushSegments), renderer.BrushColor)
	} else if hit, ok := a.editor.LastHit(); ok {
		a.renderer.DrawLines(viewProj, debug.BrushRing(hit.Point, a.editor.Radius(), brushSegments), renderer.BrushColor)
	}
	if a.editor.RenderMode() == editor.RenderWireframe {
		a.renderer.DrawLines(viewProj, debug.BoundsWireframe(a.mesh.Bounds(), 0), renderer.WireColor)
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
