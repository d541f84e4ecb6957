package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/core"
)

func TestSceneSaveLoadRoundTrip(t *testing.T) {
	cube := CreateCube(1)
	sphere := CreateSphere(1, 8, 4)

	s := NewScene()
	a := NewSceneObject("gold", sphere)
	a.Transform.Position = mgl32.Vec3{-3, 0.5, 0}
	a.Transform.Rotation = mgl32.Vec3{0, 1.2, 0}
	a.Transform.Scale = mgl32.Vec3{2, 2, 2}
	a.Color = core.Color{R: 1, G: 0.8, B: 0.3, A: 1}
	a.Roughness = 0.2
	a.Metallic = 1
	s.Add(a)

	b := NewSceneObject("glass", cube)
	b.Color.A = 0.4
	b.Active = false
	s.Add(b)

	field := NewSceneObject("field", sphere)
	field.InstanceCount = 16
	s.Add(field)

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveScene(s, path))

	sd, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, 1, sd.Version)
	require.Len(t, sd.Objects, 3)

	restored := NewScene()
	n := sd.Apply(restored, map[string]*Mesh{"cube": cube, "sphere": sphere})
	assert.Equal(t, 3, n)
	require.Equal(t, 3, restored.Size())

	ra := restored.Object(0)
	assert.Equal(t, "gold", ra.Name)
	assert.Equal(t, a.Transform.Position, ra.Transform.Position)
	assert.Equal(t, a.Transform.Rotation, ra.Transform.Rotation)
	assert.Equal(t, a.Transform.Scale, ra.Transform.Scale)
	assert.Equal(t, a.Color, ra.Color)
	assert.Equal(t, a.Roughness, ra.Roughness)
	assert.Equal(t, a.Metallic, ra.Metallic)
	assert.Same(t, sphere, ra.Mesh, "mesh re-binds by name")

	rb := restored.Object(1)
	assert.False(t, rb.Active, "the active flag survives the round trip")
	assert.Equal(t, float32(0.4), rb.Color.A)

	rf := restored.Object(2)
	assert.Equal(t, 16, rf.InstanceCount)
}

func TestSceneApplySkipsUnknownMeshes(t *testing.T) {
	cube := CreateCube(1)

	s := NewScene()
	s.Add(NewSceneObject("keep", cube))
	orphanMesh := CreateSphere(1, 8, 4)
	s.Add(NewSceneObject("orphan", orphanMesh))

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveScene(s, path))

	sd, err := LoadScene(path)
	require.NoError(t, err)

	restored := NewScene()
	n := sd.Apply(restored, map[string]*Mesh{"cube": cube})
	assert.Equal(t, 1, n, "objects without a known mesh are dropped")
	assert.Equal(t, "keep", restored.Object(0).Name)
}

func TestSceneApplyReplacesExistingObjects(t *testing.T) {
	cube := CreateCube(1)

	s := NewScene()
	s.Add(NewSceneObject("old", cube))

	sd := &SceneData{Version: 1, Objects: []ObjectData{{
		Name:     "new",
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    core.ColorWhite,
		Active:   true,
		MeshName: "cube",
	}}}

	n := sd.Apply(s, map[string]*Mesh{"cube": cube})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Size(), "apply replaces, never appends")
	assert.Equal(t, "new", s.Object(0).Name)
}

func TestSceneApplyLeavesEmittersAlone(t *testing.T) {
	cube := CreateCube(1)
	s := NewScene()
	s.AddEmitter(NewParticleEmitter(8))

	sd := &SceneData{Objects: []ObjectData{{Name: "x", MeshName: "cube", Active: true}}}
	sd.Apply(s, map[string]*Mesh{"cube": cube})

	assert.Len(t, s.Emitters(), 1)
}

func TestLoadSceneErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScene(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadScene(bad)
	assert.Error(t, err)
}

func TestSaveSceneWritesReadableJSON(t *testing.T) {
	s := NewScene()
	obj := NewSceneObject("thing", CreateCube(1))
	s.Add(obj)

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveScene(s, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"meshName": "cube"`)
	assert.Contains(t, string(data), `"version": 1`)
}
