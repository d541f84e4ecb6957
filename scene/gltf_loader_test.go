package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func eulerMatrix(angles mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.HomogRotate3DX(angles.X())
	m = m.Mul4(mgl32.HomogRotate3DY(angles.Y()))
	return m.Mul4(mgl32.HomogRotate3DZ(angles.Z()))
}

func TestEulerXYZFromQuatIdentity(t *testing.T) {
	got := eulerXYZFromQuat(mgl32.QuatIdent())
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, float64(got[i]), 1e-6, "axis %d", i)
	}
}

func TestEulerXYZFromQuatRoundTrip(t *testing.T) {
	// Angles themselves may alias, so compare the rotations they produce.
	cases := []mgl32.Vec3{
		{0.3, 0, 0},
		{0, -0.7, 0},
		{0, 0, 1.2},
		{0.3, -0.7, 1.2},
		{-1.0, 0.4, 2.9},
	}
	for _, want := range cases {
		q := mgl32.QuatRotate(want.X(), mgl32.Vec3{1, 0, 0}).
			Mul(mgl32.QuatRotate(want.Y(), mgl32.Vec3{0, 1, 0})).
			Mul(mgl32.QuatRotate(want.Z(), mgl32.Vec3{0, 0, 1}))

		got := eulerXYZFromQuat(q)

		wantM := eulerMatrix(want)
		gotM := eulerMatrix(got)
		for i := range wantM {
			assert.InDelta(t, float64(wantM[i]), float64(gotM[i]), 1e-4,
				"angles %v element %d", want, i)
		}
	}
}

func TestEulerXYZFromQuatGimbalLock(t *testing.T) {
	// Pitch straight up: the decomposition folds roll into yaw but must
	// still reproduce the same rotation.
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	got := eulerXYZFromQuat(q)

	assert.InDelta(t, float64(mgl32.DegToRad(90)), float64(got.Y()), 1e-4)

	wantM := q.Mat4()
	gotM := eulerMatrix(got)
	for i := range wantM {
		assert.InDelta(t, float64(wantM[i]), float64(gotM[i]), 1e-4, "element %d", i)
	}
}

func TestClampF64(t *testing.T) {
	assert.Equal(t, 0.5, clampF64(0.5, 0, 1))
	assert.Equal(t, 0.0, clampF64(-2, 0, 1))
	assert.Equal(t, 1.0, clampF64(7, 0, 1))
}
