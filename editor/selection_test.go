package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"pbr-engine/scene"
)

func TestSelectionSingle(t *testing.T) {
	s := NewSelection()
	assert.False(t, s.HasSelection())
	assert.Equal(t, -1, s.Active())

	s.SelectSingle(3)
	assert.True(t, s.IsSelected(3))
	assert.Equal(t, 3, s.Active())
	assert.Equal(t, []int{3}, s.Indices())

	s.SelectSingle(5)
	assert.False(t, s.IsSelected(3), "single select replaces the set")
	assert.Equal(t, 5, s.Active())
}

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()

	s.Toggle(1)
	s.Toggle(4)
	assert.True(t, s.IsSelected(1))
	assert.True(t, s.IsSelected(4))
	assert.Equal(t, 4, s.Active(), "last toggled-on becomes active")

	s.Toggle(4)
	assert.False(t, s.IsSelected(4))
	assert.True(t, s.IsSelected(1))
	assert.Equal(t, 1, s.Active(), "active falls back to a remaining index")

	s.Toggle(1)
	assert.False(t, s.HasSelection())
	assert.Equal(t, -1, s.Active())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection()
	s.Toggle(0)
	s.Toggle(2)

	s.Clear()
	assert.False(t, s.HasSelection())
	assert.Equal(t, -1, s.Active())
	assert.Empty(t, s.Indices())
}

func TestSelectionCenter(t *testing.T) {
	sc := scene.NewScene()
	a := scene.NewSceneObject("a", nil)
	a.Transform.Position = mgl32.Vec3{2, 0, 0}
	sc.Add(a)
	b := scene.NewSceneObject("b", nil)
	b.Transform.Position = mgl32.Vec3{0, 4, 0}
	sc.Add(b)

	s := NewSelection()
	s.Toggle(0)
	s.Toggle(1)

	assert.Equal(t, mgl32.Vec3{1, 2, 0}, s.Center(sc))
}

func TestSelectionCenterIgnoresInvalidIndices(t *testing.T) {
	sc := scene.NewScene()
	a := scene.NewSceneObject("a", nil)
	a.Transform.Position = mgl32.Vec3{6, 0, 0}
	sc.Add(a)

	s := NewSelection()
	s.Toggle(0)
	s.Toggle(17)

	assert.Equal(t, mgl32.Vec3{6, 0, 0}, s.Center(sc), "stale indices contribute nothing")
}

func TestSelectionCenterEmpty(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, mgl32.Vec3{}, s.Center(scene.NewScene()))
}
