package editor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
	"pbr-engine/scene"
)

const (
	minOrbitDistance = 0.5
	maxOrbitDistance = 100.0
	nudgeStep        = 0.25
)

// Editor owns the interactive tooling for a scene: picking, selection,
// undo history and orbit camera control. It drives the camera it is given;
// the renderer is not touched directly, the demo forwards the active
// selection to the outline.
type Editor struct {
	Selection *Selection
	History   *History
	Input     *InputManager

	// StatusText describes the last editor action, for the overlay.
	StatusText string

	scene  *scene.Scene
	window *core.Window
	camera *scene.Camera

	// Orbit state. The camera position is derived from these every time
	// they change.
	target   mgl32.Vec3
	yaw      float32
	pitch    float32
	distance float32
}

// NewEditor wraps a scene and camera with editing state. The orbit
// parameters are derived from the camera's current placement, so the
// demo's initial framing is kept.
func NewEditor(window *core.Window, sc *scene.Scene, cam *scene.Camera) *Editor {
	e := &Editor{
		Selection:  NewSelection(),
		History:    NewHistory(100),
		Input:      NewInputManager(window),
		StatusText: "Ready",
		scene:      sc,
		window:     window,
		camera:     cam,
	}

	e.target = cam.Target()
	offset := cam.Position().Sub(e.target)
	e.distance = offset.Len()
	if e.distance < minOrbitDistance {
		e.distance = 5
		offset = mgl32.Vec3{0, 0, e.distance}
	}
	dir := offset.Mul(1 / e.distance)
	e.pitch = float32(math.Asin(float64(dir.Y())))
	e.yaw = float32(math.Atan2(float64(dir.X()), float64(dir.Z())))

	return e
}

// Update runs one frame of editor logic: keyboard shortcuts, camera
// control, then mouse picking.
func (e *Editor) Update() {
	e.Input.Update()

	e.handleShortcuts()
	e.handleCamera()
	e.handlePicking()

	e.Input.EndFrame()
}

func (e *Editor) handleShortcuts() {
	if e.Input.IsShiftShortcut(core.KeyZ) {
		if e.History.Redo() {
			e.StatusText = "Redo"
		}
	} else if e.Input.IsShortcut(core.KeyZ) {
		if e.History.Undo() {
			e.StatusText = "Undo"
		}
	}

	if (e.Input.IsKeyPressed(core.KeyX) || e.Input.IsKeyPressed(core.KeyDelete)) && !e.Input.CtrlDown {
		e.deleteSelected()
	}

	if e.Input.ShiftDown && e.Input.IsKeyPressed(core.KeyD) {
		e.duplicateSelected()
	}

	e.handleNudges()
}

// handleNudges moves the selection along the world axes: arrows for the
// ground plane, page up/down for height. Each press is one undo step.
func (e *Editor) handleNudges() {
	if !e.Selection.HasSelection() {
		return
	}

	var delta mgl32.Vec3
	switch {
	case e.Input.IsKeyPressed(core.KeyLeft):
		delta = mgl32.Vec3{-nudgeStep, 0, 0}
	case e.Input.IsKeyPressed(core.KeyRight):
		delta = mgl32.Vec3{nudgeStep, 0, 0}
	case e.Input.IsKeyPressed(core.KeyUp):
		delta = mgl32.Vec3{0, 0, -nudgeStep}
	case e.Input.IsKeyPressed(core.KeyDown):
		delta = mgl32.Vec3{0, 0, nudgeStep}
	case e.Input.IsKeyPressed(core.KeyPageUp):
		delta = mgl32.Vec3{0, nudgeStep, 0}
	case e.Input.IsKeyPressed(core.KeyPageDown):
		delta = mgl32.Vec3{0, -nudgeStep, 0}
	default:
		return
	}

	for _, idx := range e.Selection.Indices() {
		obj := e.scene.Object(idx)
		if obj == nil {
			continue
		}
		e.History.Do(NewMoveCommand(obj, obj.Transform.Position.Add(delta)))
	}
	e.StatusText = "Move"
}

func (e *Editor) handleCamera() {
	changed := false

	if e.Input.ScrollDelta != 0 {
		e.distance -= float32(e.Input.ScrollDelta) * 0.5
		e.distance = mgl32.Clamp(e.distance, minOrbitDistance, maxOrbitDistance)
		changed = true
	}

	if e.Input.IsMouseDown(core.MouseButtonMiddle) {
		dx := float32(e.Input.MouseDeltaX) * 0.01
		dy := float32(e.Input.MouseDeltaY) * 0.01

		if e.Input.ShiftDown {
			view := e.camera.ViewMatrix()
			right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
			up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
			panSpeed := e.distance * 0.2
			e.target = e.target.Add(right.Mul(-dx * panSpeed)).Add(up.Mul(dy * panSpeed))
		} else {
			e.yaw -= dx
			e.pitch += dy
			// Stop just short of the poles so LookAt's up vector stays valid.
			limit := float32(math.Pi/2) - 0.01
			e.pitch = mgl32.Clamp(e.pitch, -limit, limit)
		}
		changed = true
	}

	if changed {
		e.applyOrbit()
	}
}

// applyOrbit positions the camera on the sphere described by target, yaw,
// pitch and distance.
func (e *Editor) applyOrbit() {
	cp := float32(math.Cos(float64(e.pitch)))
	dir := mgl32.Vec3{
		cp * float32(math.Sin(float64(e.yaw))),
		float32(math.Sin(float64(e.pitch))),
		cp * float32(math.Cos(float64(e.yaw))),
	}
	e.camera.SetPosition(e.target.Add(dir.Mul(e.distance)))
	e.camera.LookAt(e.target, mgl32.Vec3{0, 1, 0})
}

func (e *Editor) handlePicking() {
	if !e.Input.IsMousePressed(core.MouseButtonLeft) {
		return
	}

	// Cursor coordinates live in window space, not framebuffer pixels.
	w, h := e.window.Size()
	ray := ScreenToRay(
		float32(e.Input.MouseX), float32(e.Input.MouseY),
		float32(w), float32(h),
		e.camera,
	)

	hit := PickObject(ray, e.scene)
	if hit.Hit {
		if e.Input.ShiftDown {
			e.Selection.Toggle(hit.ObjectIndex)
		} else {
			e.Selection.SelectSingle(hit.ObjectIndex)
		}
		if obj := e.scene.Object(hit.ObjectIndex); obj != nil {
			e.StatusText = fmt.Sprintf("Selected: %s", obj.Name)
		}
	} else if !e.Input.ShiftDown {
		e.Selection.Clear()
		e.StatusText = "Selection cleared"
	}
}

func (e *Editor) deleteSelected() {
	if !e.Selection.HasSelection() {
		return
	}
	for _, idx := range e.Selection.Indices() {
		if obj := e.scene.Object(idx); obj != nil {
			e.History.Do(NewDeleteObjectCommand(obj))
		}
	}
	e.Selection.Clear()
	e.StatusText = "Deleted"
}

func (e *Editor) duplicateSelected() {
	if !e.Selection.HasSelection() {
		return
	}
	last := -1
	for _, idx := range e.Selection.Indices() {
		obj := e.scene.Object(idx)
		if obj == nil {
			continue
		}
		cmd := NewDuplicateObjectCommand(e.scene, obj)
		e.History.Do(cmd)
		last = cmd.Index()
	}
	if last >= 0 {
		e.Selection.SelectSingle(last)
	}
	e.StatusText = "Duplicated"
}

// Stats returns active object, vertex and triangle counts for the overlay.
func (e *Editor) Stats() (objects, vertices, triangles int) {
	for _, obj := range e.scene.Objects() {
		if !obj.Active || obj.Mesh == nil {
			continue
		}
		objects++
		vertices += len(obj.Mesh.Vertices)
		triangles += obj.Mesh.TriangleCount()
	}
	return objects, vertices, triangles
}
