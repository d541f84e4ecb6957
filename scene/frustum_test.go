package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFrustum builds the frustum of a camera at +Z looking at the origin.
func testFrustum(t *testing.T) Frustum {
	t.Helper()
	cam := NewCamera(60, 16.0/9.0, 0.1, 100)
	cam.SetPosition(mgl32.Vec3{0, 0, 10})
	cam.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return FrustumFromVP(cam.ProjectionMatrix().Mul4(cam.ViewMatrix()))
}

func TestPlaneDistanceTo(t *testing.T) {
	p := Plane{Normal: mgl32.Vec3{0, 1, 0}, D: -1} // plane y = 1

	assert.InDelta(t, 1.0, float64(p.DistanceTo(mgl32.Vec3{0, 2, 0})), 1e-6)
	assert.InDelta(t, -1.0, float64(p.DistanceTo(mgl32.Vec3{5, 0, 5})), 1e-6)
	assert.InDelta(t, 0.0, float64(p.DistanceTo(mgl32.Vec3{3, 1, -3})), 1e-6)
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := testFrustum(t)
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, float64(p.Normal.Len()), 1e-5, "plane %d", i)
	}
}

func TestFrustumContainsLookTarget(t *testing.T) {
	f := testFrustum(t)

	// The look target sits in the middle of the frustum, so every plane
	// must report a positive distance.
	for i, p := range f.Planes {
		assert.Greater(t, p.DistanceTo(mgl32.Vec3{0, 0, 0}), float32(0), "plane %d", i)
	}
}

func TestAABBIntersectsFrustum(t *testing.T) {
	f := testFrustum(t)
	unit := AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}

	assert.True(t, unit.IntersectsFrustum(&f), "box at the look target")

	behind := AABB{Min: mgl32.Vec3{-0.5, -0.5, 19.5}, Max: mgl32.Vec3{0.5, 0.5, 20.5}}
	assert.False(t, behind.IntersectsFrustum(&f), "box behind the camera")

	beyondFar := AABB{Min: mgl32.Vec3{-0.5, -0.5, -200}, Max: mgl32.Vec3{0.5, 0.5, -199}}
	assert.False(t, beyondFar.IntersectsFrustum(&f), "box beyond the far plane")

	farLeft := AABB{Min: mgl32.Vec3{-200, -0.5, -0.5}, Max: mgl32.Vec3{-199, 0.5, 0.5}}
	assert.False(t, farLeft.IntersectsFrustum(&f), "box far off to the side")
}

func TestAABBIntersectsFrustumWhenStraddling(t *testing.T) {
	f := testFrustum(t)

	// A huge box surrounding the whole frustum still intersects it even
	// though its center is nowhere near the view volume.
	huge := AABB{Min: mgl32.Vec3{-500, -500, -500}, Max: mgl32.Vec3{500, 500, 500}}
	assert.True(t, huge.IntersectsFrustum(&f))
}

func TestAABBCenter(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-2, 0, 4}, Max: mgl32.Vec3{2, 6, 8}}
	assert.Equal(t, mgl32.Vec3{0, 3, 6}, box.Center())
}

func TestAABBTransformedTranslateScale(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := mgl32.Translate3D(5, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))

	out := box.Transformed(m)
	assert.InDelta(t, 3.0, float64(out.Min.X()), 1e-5)
	assert.InDelta(t, 7.0, float64(out.Max.X()), 1e-5)
	assert.InDelta(t, -2.0, float64(out.Min.Y()), 1e-5)
	assert.InDelta(t, 2.0, float64(out.Max.Y()), 1e-5)
}

func TestAABBTransformedRotationGrowsBox(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := mgl32.HomogRotate3DY(mgl32.DegToRad(45))

	// A rotated cube needs a larger axis-aligned box: sqrt(2) on X and Z.
	out := box.Transformed(m)
	root2 := float64(1.41421356)
	assert.InDelta(t, -root2, float64(out.Min.X()), 1e-4)
	assert.InDelta(t, root2, float64(out.Max.X()), 1e-4)
	assert.InDelta(t, -1.0, float64(out.Min.Y()), 1e-4)
	assert.InDelta(t, 1.0, float64(out.Max.Y()), 1e-4)
}

func TestMeshBounds(t *testing.T) {
	cube := CreateCube(2)
	b := cube.Bounds()

	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, b.Max)

	// Cached: a second call returns the same box.
	assert.Equal(t, b, cube.Bounds())
}

func TestMeshBoundsSphere(t *testing.T) {
	sphere := CreateSphere(1.5, 24, 12)
	b := sphere.Bounds()

	require.NotEqual(t, AABB{}, b)
	assert.InDelta(t, -1.5, float64(b.Min.Y()), 1e-3)
	assert.InDelta(t, 1.5, float64(b.Max.Y()), 1e-3)
	assert.LessOrEqual(t, b.Max.X(), float32(1.5)+1e-3)
}

func TestMeshBoundsEmpty(t *testing.T) {
	m := NewMesh("empty", nil, nil)
	assert.Equal(t, AABB{}, m.Bounds())
}
