// Package input tracks keyboard and mouse state across frames and exposes it
// as immutable per-frame snapshots.
package input

// KeyState is the per-frame transition state of a key or mouse button.
type KeyState uint8

const (
	KeyNone     KeyState = iota // Up this frame and last frame
	KeyPressed                  // Went down this frame
	KeyHolding                  // Down this frame and last frame
	KeyReleased                 // Went up this frame
)

var keyStateNames = [...]string{"None", "Pressed", "Holding", "Released"}

func (s KeyState) String() string {
	if int(s) < len(keyStateNames) {
		return keyStateNames[s]
	}
	return "Unknown"
}

// Down reports whether the key is currently held.
func (s KeyState) Down() bool {
	return s == KeyPressed || s == KeyHolding
}

// Key identifies a keyboard key used by the editor and cameras.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyF
	KeySpace
	KeyLShift
	KeyTab
	Key1
	Key2
	KeyEscape
	KeyF12
	keyCount
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	buttonCount
)
