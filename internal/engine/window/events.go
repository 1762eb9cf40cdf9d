package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrasculpt/internal/engine/input"
)

// EventType identifies window-level events the frame loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

var scancodeKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_LSHIFT: input.KeyLShift,
	sdl.SCANCODE_TAB:    input.KeyTab,
	sdl.SCANCODE_1:      input.Key1,
	sdl.SCANCODE_2:      input.Key2,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
}

var sdlButtons = map[uint8]input.MouseButton{
	sdl.BUTTON_LEFT:   input.MouseLeft,
	sdl.BUTTON_MIDDLE: input.MouseMiddle,
	sdl.BUTTON_RIGHT:  input.MouseRight,
}

// EventSource polls SDL events into an input.Tracker.
type EventSource struct {
	events []Event
}

// NewEventSource creates a new SDL event source.
func NewEventSource() *EventSource {
	return &EventSource{
		events: make([]Event, 0, 4),
	}
}

// Update starts a new tracker frame and drains the SDL event queue into it.
// Returns true if the application should quit.
func (s *EventSource) Update(t *input.Tracker) bool {
	s.events = s.events[:0]
	t.BeginFrame()

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.events = append(s.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				s.events = append(s.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if k, ok := scancodeKeys[e.Keysym.Scancode]; ok {
				t.SetKey(k, e.Type == sdl.KEYDOWN)
			}

		case *sdl.MouseMotionEvent:
			t.SetMousePosition(float32(e.X), float32(e.Y))

		case *sdl.MouseButtonEvent:
			t.SetMousePosition(float32(e.X), float32(e.Y))
			if b, ok := sdlButtons[e.Button]; ok {
				t.SetButton(b, e.Type == sdl.MOUSEBUTTONDOWN)
			}

		case *sdl.MouseWheelEvent:
			dx, dy := float32(e.X), float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dx, dy = -dx, -dy
			}
			t.AddScroll(dx, dy)
		}
	}

	return quit
}

// Events returns the window events from the last Update.
func (s *EventSource) Events() []Event {
	return s.events
}
