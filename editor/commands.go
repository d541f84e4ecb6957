package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
	"pbr-engine/scene"
)

// Command is an undoable editor action. Execute must be safe to call again
// after Undo; History replays commands on redo.
type Command interface {
	Execute()
	Undo()
	Description() string
}

// History holds the undo and redo stacks. A new action clears the redo
// stack; exceeding maxDepth evicts the oldest undo entry.
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory returns a history keeping at most maxDepth undo steps.
func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes the command and records it for undo.
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the most recent action. Returns false when there is nothing
// to undo.
func (h *History) Undo() bool {
	if len(h.undoStack) == 0 {
		return false
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return true
}

// Redo reapplies the most recently undone action.
func (h *History) Redo() bool {
	if len(h.redoStack) == 0 {
		return false
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear drops both stacks, for example after loading a scene.
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// ── Concrete commands ─────────────────────────────────────────────────────────

// TransformCommand swaps an object's whole transform.
type TransformCommand struct {
	Object       *scene.SceneObject
	OldTransform core.Transform
	NewTransform core.Transform
	desc         string
}

func NewTransformCommand(obj *scene.SceneObject, newTransform core.Transform, desc string) *TransformCommand {
	return &TransformCommand{
		Object:       obj,
		OldTransform: obj.Transform,
		NewTransform: newTransform,
		desc:         desc,
	}
}

func (c *TransformCommand) Execute()            { c.Object.Transform = c.NewTransform }
func (c *TransformCommand) Undo()               { c.Object.Transform = c.OldTransform }
func (c *TransformCommand) Description() string { return c.desc }

// MoveCommand changes only the position.
type MoveCommand struct {
	Object *scene.SceneObject
	OldPos mgl32.Vec3
	NewPos mgl32.Vec3
}

func NewMoveCommand(obj *scene.SceneObject, newPos mgl32.Vec3) *MoveCommand {
	return &MoveCommand{Object: obj, OldPos: obj.Transform.Position, NewPos: newPos}
}

func (c *MoveCommand) Execute()            { c.Object.Transform.Position = c.NewPos }
func (c *MoveCommand) Undo()               { c.Object.Transform.Position = c.OldPos }
func (c *MoveCommand) Description() string { return "Move " + c.Object.Name }

// RotateCommand changes only the Euler rotation.
type RotateCommand struct {
	Object *scene.SceneObject
	OldRot mgl32.Vec3
	NewRot mgl32.Vec3
}

func NewRotateCommand(obj *scene.SceneObject, newRot mgl32.Vec3) *RotateCommand {
	return &RotateCommand{Object: obj, OldRot: obj.Transform.Rotation, NewRot: newRot}
}

func (c *RotateCommand) Execute()            { c.Object.Transform.Rotation = c.NewRot }
func (c *RotateCommand) Undo()               { c.Object.Transform.Rotation = c.OldRot }
func (c *RotateCommand) Description() string { return "Rotate " + c.Object.Name }

// ScaleCommand changes only the scale.
type ScaleCommand struct {
	Object   *scene.SceneObject
	OldScale mgl32.Vec3
	NewScale mgl32.Vec3
}

func NewScaleCommand(obj *scene.SceneObject, newScale mgl32.Vec3) *ScaleCommand {
	return &ScaleCommand{Object: obj, OldScale: obj.Transform.Scale, NewScale: newScale}
}

func (c *ScaleCommand) Execute()            { c.Object.Transform.Scale = c.NewScale }
func (c *ScaleCommand) Undo()               { c.Object.Transform.Scale = c.OldScale }
func (c *ScaleCommand) Description() string { return "Scale " + c.Object.Name }

// DeleteObjectCommand deactivates an object. Scene indices must stay
// stable, so deletion hides rather than removes; every pass already skips
// inactive objects.
type DeleteObjectCommand struct {
	Object    *scene.SceneObject
	wasActive bool
}

func NewDeleteObjectCommand(obj *scene.SceneObject) *DeleteObjectCommand {
	return &DeleteObjectCommand{Object: obj, wasActive: obj.Active}
}

func (c *DeleteObjectCommand) Execute()            { c.Object.Active = false }
func (c *DeleteObjectCommand) Undo()               { c.Object.Active = c.wasActive }
func (c *DeleteObjectCommand) Description() string { return "Delete " + c.Object.Name }

// DuplicateObjectCommand clones an object, sharing the mesh and texture.
// The clone is appended to the scene on the first Execute and kept there
// afterwards; undo and redo only flip its Active flag, so the scene index
// it received stays valid.
type DuplicateObjectCommand struct {
	Scene     *scene.Scene
	Original  *scene.SceneObject
	Duplicate *scene.SceneObject

	index int
}

func NewDuplicateObjectCommand(s *scene.Scene, original *scene.SceneObject) *DuplicateObjectCommand {
	dup := *original
	dup.Name = original.Name + ".copy"
	// Nudge sideways so the copy is visible next to the original.
	dup.Transform.Position = dup.Transform.Position.Add(mgl32.Vec3{0.5, 0, 0})
	return &DuplicateObjectCommand{Scene: s, Original: original, Duplicate: &dup, index: -1}
}

func (c *DuplicateObjectCommand) Execute() {
	if c.index < 0 {
		c.index = c.Scene.Add(c.Duplicate)
		return
	}
	c.Duplicate.Active = true
}

func (c *DuplicateObjectCommand) Undo() { c.Duplicate.Active = false }

// Index returns the scene index of the duplicate, or -1 before the first
// Execute.
func (c *DuplicateObjectCommand) Index() int { return c.index }

func (c *DuplicateObjectCommand) Description() string { return "Duplicate " + c.Original.Name }
