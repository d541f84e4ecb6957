package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestComputeLightSpaceMatrixStraightDown(t *testing.T) {
	// Straight down is the degenerate case for a Y-up look-at; the up
	// reference must be swapped so the matrix stays usable.
	m := ComputeLightSpaceMatrix(mgl32.Vec3{0, -1, 0})

	assert.NotEqual(t, float32(0), m.Det(), "view basis degenerated")
	for i, v := range m {
		assert.False(t, v != v, "NaN at element %d", i)
	}
}

func TestComputeLightSpaceMatrixCentersOrigin(t *testing.T) {
	dirs := []mgl32.Vec3{
		{-0.2, -1, -0.3},
		{0.5, -1, 0.5},
		{1, 0, 0},
		{0, -1, 0.001},
	}
	for _, dir := range dirs {
		m := ComputeLightSpaceMatrix(dir)

		// The world origin is the center of the light frustum: it must
		// project well inside NDC on every axis.
		clip := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		ndc := clip.Vec3().Mul(1 / clip.W())
		assert.InDelta(t, 0, float64(ndc.X()), 0.01, "dir %v", dir)
		assert.InDelta(t, 0, float64(ndc.Y()), 0.01, "dir %v", dir)
		assert.Greater(t, float64(ndc.Z()), -1.0, "dir %v", dir)
		assert.Less(t, float64(ndc.Z()), 1.0, "dir %v", dir)
	}
}

func TestComputeLightSpaceMatrixNormalizesDirection(t *testing.T) {
	a := ComputeLightSpaceMatrix(mgl32.Vec3{0, -2, 0})
	b := ComputeLightSpaceMatrix(mgl32.Vec3{0, -7.5, 0})
	assert.Equal(t, a, b, "direction length must not change the projection")
}

func TestComputeLightSpaceMatrixZeroDirection(t *testing.T) {
	zero := ComputeLightSpaceMatrix(mgl32.Vec3{})
	down := ComputeLightSpaceMatrix(mgl32.Vec3{0, -1, 0})
	assert.Equal(t, down, zero)
}

func TestShadowPassInvalidProcess(t *testing.T) {
	// A zero-value pass never built its resources; Process must hand back
	// disabled shadow data without touching the GPU.
	var p ShadowPass
	data := p.Process(nil, nil, mgl32.Vec3{0, -1, 0})
	assert.False(t, data.Valid)
	assert.Nil(t, data.ShadowMap)
}
