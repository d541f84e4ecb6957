package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/scene"
)

func pickScene(t *testing.T) (*scene.Scene, *scene.Camera) {
	t.Helper()
	s := scene.NewScene()
	cam := scene.NewCamera(60, 16.0/9.0, 0.1, 100)
	cam.SetPosition(mgl32.Vec3{0, 0, 10})
	cam.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return s, cam
}

func TestScreenToRayCenterMatchesForward(t *testing.T) {
	_, cam := pickScene(t)

	ray := ScreenToRay(400, 300, 800, 600, cam)

	assert.Equal(t, cam.Position(), ray.Origin)
	assert.InDelta(t, 1.0, float64(ray.Direction.Len()), 1e-5)
	fwd := cam.Forward()
	assert.InDelta(t, float64(fwd.X()), float64(ray.Direction.X()), 1e-4)
	assert.InDelta(t, float64(fwd.Y()), float64(ray.Direction.Y()), 1e-4)
	assert.InDelta(t, float64(fwd.Z()), float64(ray.Direction.Z()), 1e-4)
}

func TestScreenToRayCornersDiverge(t *testing.T) {
	_, cam := pickScene(t)

	left := ScreenToRay(0, 300, 800, 600, cam)
	right := ScreenToRay(800, 300, 800, 600, cam)
	top := ScreenToRay(400, 0, 800, 600, cam)

	assert.Less(t, left.Direction.X(), float32(0), "left edge of the screen aims left")
	assert.Greater(t, right.Direction.X(), float32(0))
	assert.Greater(t, top.Direction.Y(), float32(0), "screen y grows downward")
}

func TestRayAABB(t *testing.T) {
	box := scene.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	tHit, hit := rayAABB(Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}, box)
	require.True(t, hit)
	assert.InDelta(t, 4.0, float64(tHit), 1e-5)

	_, hit = rayAABB(Ray{
		Origin:    mgl32.Vec3{0, 5, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}, box)
	assert.False(t, hit, "parallel miss above the box")

	_, hit = rayAABB(Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{0, 0, 1},
	}, box)
	assert.False(t, hit, "box entirely behind the ray")
}

func TestRayAABBFromInside(t *testing.T) {
	box := scene.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	_, hit := rayAABB(Ray{
		Origin:    mgl32.Vec3{0, 0, 0},
		Direction: mgl32.Vec3{0, 0, -1},
	}, box)
	assert.True(t, hit, "rays starting inside the box still hit it")
}

func TestMollerTrumbore(t *testing.T) {
	v0 := mgl32.Vec3{-1, -1, 0}
	v1 := mgl32.Vec3{1, -1, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	tHit, hit := mollerTrumbore(Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}, v0, v1, v2)
	require.True(t, hit)
	assert.InDelta(t, 5.0, float64(tHit), 1e-5)

	// Just outside an edge.
	_, hit = mollerTrumbore(Ray{
		Origin:    mgl32.Vec3{2, 0, 5},
		Direction: mgl32.Vec3{0, 0, -1},
	}, v0, v1, v2)
	assert.False(t, hit)

	// Parallel to the triangle plane.
	_, hit = mollerTrumbore(Ray{
		Origin:    mgl32.Vec3{0, 0, 5},
		Direction: mgl32.Vec3{1, 0, 0},
	}, v0, v1, v2)
	assert.False(t, hit)
}

func TestMollerTrumboreBackface(t *testing.T) {
	v0 := mgl32.Vec3{-1, -1, 0}
	v1 := mgl32.Vec3{1, -1, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	// Approaching from behind the winding still counts.
	_, hit := mollerTrumbore(Ray{
		Origin:    mgl32.Vec3{0, 0, -5},
		Direction: mgl32.Vec3{0, 0, 1},
	}, v0, v1, v2)
	assert.True(t, hit)
}

func TestPickObjectClosestWins(t *testing.T) {
	s, cam := pickScene(t)

	far := scene.NewSceneObject("far", scene.CreateCube(1))
	far.Transform.Position = mgl32.Vec3{0, 0, -4}
	s.Add(far)

	near := scene.NewSceneObject("near", scene.CreateCube(1))
	near.Transform.Position = mgl32.Vec3{0, 0, 2}
	s.Add(near)

	ray := ScreenToRay(400, 300, 800, 600, cam)
	hit := PickObject(ray, s)

	require.True(t, hit.Hit)
	assert.Equal(t, 1, hit.ObjectIndex)
	// Camera at z=10, near cube front face at z=2.5.
	assert.InDelta(t, 7.5, float64(hit.Distance), 0.05)
	assert.GreaterOrEqual(t, hit.Triangle, 0)
}

func TestPickObjectSkipsInactiveAndMeshless(t *testing.T) {
	s, cam := pickScene(t)

	hidden := scene.NewSceneObject("hidden", scene.CreateCube(1))
	hidden.Active = false
	s.Add(hidden)
	s.Add(scene.NewSceneObject("empty", nil))

	ray := ScreenToRay(400, 300, 800, 600, cam)
	hit := PickObject(ray, s)

	assert.False(t, hit.Hit)
	assert.Equal(t, -1, hit.ObjectIndex)
}

func TestPickObjectMiss(t *testing.T) {
	s, cam := pickScene(t)
	s.Add(scene.NewSceneObject("cube", scene.CreateCube(1)))

	// Aim at the top-left corner of the screen, far away from the cube.
	ray := ScreenToRay(2, 2, 800, 600, cam)
	hit := PickObject(ray, s)

	assert.False(t, hit.Hit)
	assert.Equal(t, -1, hit.ObjectIndex)
}

func TestPickObjectHonorsTransform(t *testing.T) {
	s, cam := pickScene(t)

	cube := scene.NewSceneObject("cube", scene.CreateCube(1))
	cube.Transform.Position = mgl32.Vec3{4, 0, 0}
	cube.Transform.Scale = mgl32.Vec3{3, 3, 3}
	s.Add(cube)

	// Straight ahead misses the translated cube.
	center := ScreenToRay(400, 300, 800, 600, cam)
	assert.False(t, PickObject(center, s).Hit)

	// A ray aimed at its world position hits.
	aimed := Ray{
		Origin:    cam.Position(),
		Direction: mgl32.Vec3{4, 0, 0}.Sub(cam.Position()).Normalize(),
	}
	hit := PickObject(aimed, s)
	require.True(t, hit.Hit)
	assert.Equal(t, 0, hit.ObjectIndex)
}
