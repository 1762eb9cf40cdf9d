package input

import "github.com/go-gl/mathgl/mgl32"

// Tracker accumulates input events for the current frame. Call BeginFrame
// before feeding the frame's events and Snapshot after.
type Tracker struct {
	keys, prevKeys       [keyCount]bool
	keyTaps              [keyCount]bool
	buttons, prevButtons [buttonCount]bool
	buttonTaps           [buttonCount]bool

	mouse     mgl32.Vec2
	prevMouse mgl32.Vec2
	scroll    mgl32.Vec2
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// BeginFrame rolls the current state into the previous state and clears
// per-frame accumulators.
func (t *Tracker) BeginFrame() {
	t.prevKeys = t.keys
	t.prevButtons = t.buttons
	t.keyTaps = [keyCount]bool{}
	t.buttonTaps = [buttonCount]bool{}
	t.prevMouse = t.mouse
	t.scroll = mgl32.Vec2{}
}

// SetKey records a key transition.
func (t *Tracker) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	if down && !t.keys[k] {
		t.keyTaps[k] = true
	}
	t.keys[k] = down
}

// SetButton records a mouse button transition.
func (t *Tracker) SetButton(b MouseButton, down bool) {
	if b < 0 || b >= buttonCount {
		return
	}
	if down && !t.buttons[b] {
		t.buttonTaps[b] = true
	}
	t.buttons[b] = down
}

// SetMousePosition records the cursor position in window pixels.
func (t *Tracker) SetMousePosition(x, y float32) {
	t.mouse = mgl32.Vec2{x, y}
}

// AddScroll accumulates wheel movement for this frame.
func (t *Tracker) AddScroll(dx, dy float32) {
	t.scroll = t.scroll.Add(mgl32.Vec2{dx, dy})
}

// Snapshot returns the input state for the current frame.
func (t *Tracker) Snapshot() Snapshot {
	var s Snapshot
	for k := range t.keys {
		s.keys[k] = transition(t.keys[k], t.prevKeys[k], t.keyTaps[k])
	}
	for b := range t.buttons {
		s.buttons[b] = transition(t.buttons[b], t.prevButtons[b], t.buttonTaps[b])
	}
	s.Mouse = t.mouse
	s.MouseDelta = t.mouse.Sub(t.prevMouse)
	s.Scroll = t.scroll
	return s
}

// transition derives the frame state. A press and release inside one
// frame still reports Pressed so quick taps are not lost.
func transition(down, prevDown, tapped bool) KeyState {
	switch {
	case down && prevDown:
		return KeyHolding
	case down:
		return KeyPressed
	case prevDown:
		return KeyReleased
	case tapped:
		return KeyPressed
	}
	return KeyNone
}

// Snapshot is an immutable view of one frame of input.
type Snapshot struct {
	keys    [keyCount]KeyState
	buttons [buttonCount]KeyState

	Mouse      mgl32.Vec2 // Cursor position in window pixels, Y down
	MouseDelta mgl32.Vec2 // Cursor movement since the previous frame
	Scroll     mgl32.Vec2 // Wheel movement accumulated this frame
}

// Key returns the state of k.
func (s Snapshot) Key(k Key) KeyState {
	if k < 0 || k >= keyCount {
		return KeyNone
	}
	return s.keys[k]
}

// Button returns the state of b.
func (s Snapshot) Button(b MouseButton) KeyState {
	if b < 0 || b >= buttonCount {
		return KeyNone
	}
	return s.buttons[b]
}

// WithKey returns a copy of s with k forced to state. Used to script input.
func (s Snapshot) WithKey(k Key, state KeyState) Snapshot {
	if k >= 0 && k < keyCount {
		s.keys[k] = state
	}
	return s
}

// WithButton returns a copy of s with b forced to state.
func (s Snapshot) WithButton(b MouseButton, state KeyState) Snapshot {
	if b >= 0 && b < buttonCount {
		s.buttons[b] = state
	}
	return s
}
