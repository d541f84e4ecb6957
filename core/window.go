package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// ── Configuration ─────────────────────────────────────────────────────────────

// WindowConfig describes the window to create.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

// DefaultWindowConfig returns a 1280x720 resizable window with vsync on.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "PBR Engine",
		Resizable: true,
		VSync:     true,
	}
}

// ── Window ────────────────────────────────────────────────────────────────────

// Key identifies a keyboard key for polling.
type Key int

const (
	KeyEscape = Key(glfw.KeyEscape)
	KeySpace  = Key(glfw.KeySpace)
	Key1      = Key(glfw.Key1)
	Key2      = Key(glfw.Key2)
	Key3      = Key(glfw.Key3)
	KeyB      = Key(glfw.KeyB)
	KeyC      = Key(glfw.KeyC)
	KeyD      = Key(glfw.KeyD)
	KeyE      = Key(glfw.KeyE)
	KeyG      = Key(glfw.KeyG)
	KeyN      = Key(glfw.KeyN)
	KeyO      = Key(glfw.KeyO)
	KeyP      = Key(glfw.KeyP)
	KeyX      = Key(glfw.KeyX)
	KeyZ      = Key(glfw.KeyZ)

	KeyF5     = Key(glfw.KeyF5)
	KeyF9     = Key(glfw.KeyF9)
	KeyDelete = Key(glfw.KeyDelete)

	KeyUp    = Key(glfw.KeyUp)
	KeyDown  = Key(glfw.KeyDown)
	KeyLeft  = Key(glfw.KeyLeft)
	KeyRight = Key(glfw.KeyRight)

	KeyPageUp   = Key(glfw.KeyPageUp)
	KeyPageDown = Key(glfw.KeyPageDown)
	KeyComma    = Key(glfw.KeyComma)
	KeyPeriod   = Key(glfw.KeyPeriod)

	KeyLeftShift    = Key(glfw.KeyLeftShift)
	KeyRightShift   = Key(glfw.KeyRightShift)
	KeyLeftControl  = Key(glfw.KeyLeftControl)
	KeyRightControl = Key(glfw.KeyRightControl)
)

// MouseButton identifies a mouse button for polling.
type MouseButton int

const (
	MouseButtonLeft   = MouseButton(glfw.MouseButtonLeft)
	MouseButtonRight  = MouseButton(glfw.MouseButtonRight)
	MouseButtonMiddle = MouseButton(glfw.MouseButtonMiddle)
)

// Window owns the GLFW window and the OpenGL context bound to it.
type Window struct {
	handle *glfw.Window
	width  int
	height int

	resizeCallback func(width, height int)
}

// NewWindow initializes GLFW, creates a window with an OpenGL 4.1 core
// context and makes that context current on the calling goroutine.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if config.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{handle: handle, width: config.Width, height: config.Height}

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.resizeCallback != nil {
			w.resizeCallback(width, height)
		}
	})

	return w, nil
}

// SetResizeCallback registers a function invoked with the new framebuffer
// size whenever the window is resized.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.resizeCallback = fn
}

// FramebufferSize returns the current framebuffer dimensions in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// ShouldClose reports whether the user has requested the window to close.
func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

// RequestClose marks the window for closing at the end of the frame.
func (w *Window) RequestClose() {
	w.handle.SetShouldClose(true)
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

// IsKeyPressed reports whether the given key is currently held down.
func (w *Window) IsKeyPressed(key Key) bool {
	return w.handle.GetKey(glfw.Key(key)) == glfw.Press
}

// IsMouseButtonPressed reports whether the given button is currently held.
func (w *Window) IsMouseButtonPressed(button MouseButton) bool {
	return w.handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

// CursorPos returns the cursor position in screen coordinates relative to
// the top-left corner of the content area.
func (w *Window) CursorPos() (x, y float64) {
	return w.handle.GetCursorPos()
}

// SetScrollCallback registers a function invoked with the scroll wheel
// offsets. Passing nil removes the callback.
func (w *Window) SetScrollCallback(fn func(xoff, yoff float64)) {
	if fn == nil {
		w.handle.SetScrollCallback(nil)
		return
	}
	w.handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		fn(xoff, yoff)
	})
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}

// Size returns the window size in screen coordinates. This can differ from
// FramebufferSize on high-DPI displays; cursor coordinates use this space.
func (w *Window) Size() (int, int) {
	return w.handle.GetSize()
}

// Time returns the GLFW timer in seconds.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// Destroy releases the window and terminates GLFW.
func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}
