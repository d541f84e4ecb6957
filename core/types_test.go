package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewTransformIsIdentity(t *testing.T) {
	tr := NewTransform()
	m := tr.ModelMatrix()

	assert.Equal(t, mgl32.Ident4(), m)
}

func TestModelMatrixTranslatesAfterScale(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{2, -1, 3}
	tr.Scale = mgl32.Vec3{5, 5, 5}

	m := tr.ModelMatrix()

	// Scale must not stretch the translation column.
	assert.Equal(t, float32(2), m.At(0, 3))
	assert.Equal(t, float32(-1), m.At(1, 3))
	assert.Equal(t, float32(3), m.At(2, 3))
	assert.Equal(t, float32(5), m.At(0, 0))
	assert.Equal(t, float32(5), m.At(1, 1))
	assert.Equal(t, float32(5), m.At(2, 2))
}

func TestModelMatrixRotatesPoints(t *testing.T) {
	tr := NewTransform()
	tr.SetRotationDegrees(mgl32.Vec3{0, 90, 0})

	p := tr.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})

	// +X rotated 90 degrees about Y lands on -Z.
	assert.InDelta(t, 0.0, float64(p.X()), 1e-6)
	assert.InDelta(t, 0.0, float64(p.Y()), 1e-6)
	assert.InDelta(t, -1.0, float64(p.Z()), 1e-6)
}

func TestRotationDegreesRoundTrip(t *testing.T) {
	tr := NewTransform()
	want := mgl32.Vec3{30, -45, 180}
	tr.SetRotationDegrees(want)

	got := tr.RotationDegrees()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64(want[i]), float64(got[i]), 1e-4, "axis %d", i)
	}
}

func TestColorConversions(t *testing.T) {
	c := NewColor(0.2, 0.4, 0.6)

	assert.Equal(t, float32(1), c.A, "NewColor is opaque")
	assert.Equal(t, mgl32.Vec3{0.2, 0.4, 0.6}, c.Vec3())
	assert.Equal(t, mgl32.Vec4{0.2, 0.4, 0.6, 1}, c.Vec4())

	hdr := Color{2.5, 1.8, 0.4, 1}
	assert.Equal(t, mgl32.Vec3{2.5, 1.8, 0.4}, hdr.Vec3(), "HDR values pass through unclamped")
}
