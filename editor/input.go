package editor

import (
	"pbr-engine/core"
)

// editorKeys is the set of keys the input manager polls each frame. Edge
// detection only works for keys in this list; everything else should be
// polled straight off the window.
var editorKeys = []core.Key{
	core.KeyZ, core.KeyX, core.KeyD, core.KeyDelete,
	core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight,
	core.KeyPageUp, core.KeyPageDown,
}

// InputManager polls window input once per frame and exposes edge-detected
// key and button queries plus cursor deltas for camera control.
type InputManager struct {
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	lastMouseX, lastMouseY   float64

	// ScrollDelta accumulates wheel movement since the last EndFrame.
	ScrollDelta float64

	ShiftDown bool
	CtrlDown  bool

	buttons     map[core.MouseButton]bool
	buttonsPrev map[core.MouseButton]bool
	keys        map[core.Key]bool
	keysPrev    map[core.Key]bool

	window     *core.Window
	firstFrame bool
}

// NewInputManager wires the scroll callback and returns a manager ready for
// per-frame Update calls.
func NewInputManager(window *core.Window) *InputManager {
	im := &InputManager{
		buttons:     make(map[core.MouseButton]bool, 3),
		buttonsPrev: make(map[core.MouseButton]bool, 3),
		keys:        make(map[core.Key]bool, len(editorKeys)),
		keysPrev:    make(map[core.Key]bool, len(editorKeys)),
		window:      window,
		firstFrame:  true,
	}
	window.SetScrollCallback(func(_, yoff float64) {
		im.ScrollDelta += yoff
	})
	return im
}

// Update polls the cursor, buttons, modifiers and the editor key set. Call
// once per frame before any queries.
func (im *InputManager) Update() {
	x, y := im.window.CursorPos()
	if im.firstFrame {
		// Without this the first frame reports a delta from (0,0) to the
		// cursor, which yanks the camera.
		im.lastMouseX, im.lastMouseY = x, y
		im.firstFrame = false
	}
	im.MouseDeltaX = x - im.lastMouseX
	im.MouseDeltaY = y - im.lastMouseY
	im.lastMouseX, im.lastMouseY = x, y
	im.MouseX, im.MouseY = x, y

	for b, down := range im.buttons {
		im.buttonsPrev[b] = down
	}
	for k, down := range im.keys {
		im.keysPrev[k] = down
	}

	for _, b := range []core.MouseButton{core.MouseButtonLeft, core.MouseButtonRight, core.MouseButtonMiddle} {
		im.buttons[b] = im.window.IsMouseButtonPressed(b)
	}
	for _, k := range editorKeys {
		im.keys[k] = im.window.IsKeyPressed(k)
	}

	im.ShiftDown = im.window.IsKeyPressed(core.KeyLeftShift) || im.window.IsKeyPressed(core.KeyRightShift)
	im.CtrlDown = im.window.IsKeyPressed(core.KeyLeftControl) || im.window.IsKeyPressed(core.KeyRightControl)
}

// EndFrame clears the per-frame scroll accumulator. Call after all queries.
func (im *InputManager) EndFrame() {
	im.ScrollDelta = 0
}

// ── Mouse queries ─────────────────────────────────────────────────────────────

// IsMouseDown reports whether the button is currently held.
func (im *InputManager) IsMouseDown(button core.MouseButton) bool {
	return im.buttons[button]
}

// IsMousePressed reports whether the button went down this frame.
func (im *InputManager) IsMousePressed(button core.MouseButton) bool {
	return im.buttons[button] && !im.buttonsPrev[button]
}

// IsMouseReleased reports whether the button went up this frame.
func (im *InputManager) IsMouseReleased(button core.MouseButton) bool {
	return !im.buttons[button] && im.buttonsPrev[button]
}

// ── Key queries ───────────────────────────────────────────────────────────────

// IsKeyDown reports whether the key is currently held. Only keys in
// editorKeys are tracked.
func (im *InputManager) IsKeyDown(key core.Key) bool {
	return im.keys[key]
}

// IsKeyPressed reports whether the key went down this frame.
func (im *InputManager) IsKeyPressed(key core.Key) bool {
	return im.keys[key] && !im.keysPrev[key]
}

// IsShortcut reports a Ctrl+key press this frame.
func (im *InputManager) IsShortcut(key core.Key) bool {
	return im.CtrlDown && im.IsKeyPressed(key)
}

// IsShiftShortcut reports a Ctrl+Shift+key press this frame.
func (im *InputManager) IsShiftShortcut(key core.Key) bool {
	return im.CtrlDown && im.ShiftDown && im.IsKeyPressed(key)
}
