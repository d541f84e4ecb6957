package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/scene"
)

// Selection tracks selected objects by their stable scene indices. The
// active index is the last one selected; the renderer outlines it.
type Selection struct {
	indices []int
	active  int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{active: -1}
}

// Clear removes everything from the selection.
func (s *Selection) Clear() {
	s.indices = s.indices[:0]
	s.active = -1
}

// SelectSingle replaces the selection with a single object.
func (s *Selection) SelectSingle(index int) {
	s.indices = append(s.indices[:0], index)
	s.active = index
}

// Toggle adds the object to the selection, or removes it when already
// selected. Used for shift-click.
func (s *Selection) Toggle(index int) {
	for i, idx := range s.indices {
		if idx == index {
			s.indices = append(s.indices[:i], s.indices[i+1:]...)
			if s.active == index {
				if len(s.indices) > 0 {
					s.active = s.indices[len(s.indices)-1]
				} else {
					s.active = -1
				}
			}
			return
		}
	}
	s.indices = append(s.indices, index)
	s.active = index
}

// IsSelected reports whether the scene index is in the selection.
func (s *Selection) IsSelected(index int) bool {
	for _, idx := range s.indices {
		if idx == index {
			return true
		}
	}
	return false
}

// Active returns the scene index shown as the primary selection, or -1.
func (s *Selection) Active() int { return s.active }

// Indices returns the selected scene indices. Callers must not mutate the
// slice.
func (s *Selection) Indices() []int { return s.indices }

// HasSelection reports whether anything is selected.
func (s *Selection) HasSelection() bool { return len(s.indices) > 0 }

// Center returns the mean position of the selected objects, for orbiting
// the camera around a multi-selection.
func (s *Selection) Center(sc *scene.Scene) mgl32.Vec3 {
	if len(s.indices) == 0 {
		return mgl32.Vec3{}
	}
	var center mgl32.Vec3
	n := 0
	for _, idx := range s.indices {
		if obj := sc.Object(idx); obj != nil {
			center = center.Add(obj.Transform.Position)
			n++
		}
	}
	if n == 0 {
		return mgl32.Vec3{}
	}
	return center.Mul(1.0 / float32(n))
}
