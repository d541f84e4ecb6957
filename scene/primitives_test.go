package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCubeGeometry(t *testing.T) {
	m := CreateCube(2)
	require.NotNil(t, m)

	assert.Len(t, m.Vertices, 24, "6 faces x 4 corners")
	assert.Len(t, m.Indices, 36, "6 faces x 2 triangles")
	assert.Equal(t, 12, m.TriangleCount())

	// Every corner lies on the half-size box surface.
	for i, v := range m.Vertices {
		assert.Equal(t, float32(1), max32(abs32(v.Position.X()),
			max32(abs32(v.Position.Y()), abs32(v.Position.Z()))),
			"vertex %d off the surface", i)
		assert.InDelta(t, 1.0, float64(v.Normal.Len()), 1e-6, "vertex %d normal", i)
	}
	for i, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices), "index %d out of range", i)
	}
}

func TestCreateSphereGeometry(t *testing.T) {
	const segments, rings = 12, 6
	m := CreateSphere(1.5, segments, rings)
	require.NotNil(t, m)

	assert.Len(t, m.Vertices, (rings+1)*(segments+1))
	assert.Len(t, m.Indices, rings*segments*6)

	for i, v := range m.Vertices {
		assert.InDelta(t, 1.5, float64(v.Position.Len()), 1e-4, "vertex %d radius", i)
		assert.InDelta(t, 1.0, float64(v.Normal.Len()), 1e-4, "vertex %d normal", i)
	}
	for i, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices), "index %d out of range", i)
	}
}

func TestCreateSphereClampsParameters(t *testing.T) {
	m := CreateSphere(1, 1, 0)
	require.NotNil(t, m)

	// Clamped to 3 segments, 2 rings.
	assert.Len(t, m.Vertices, (2+1)*(3+1))
	assert.Len(t, m.Indices, 2*3*6)
}

func TestCreatePlaneGeometry(t *testing.T) {
	const n = 4
	m := CreatePlane(10, 6, n)
	require.NotNil(t, m)

	assert.Len(t, m.Vertices, (n+1)*(n+1))
	assert.Len(t, m.Indices, n*n*6)

	for i, v := range m.Vertices {
		assert.Equal(t, float32(0), v.Position.Y(), "vertex %d not on the plane", i)
		assert.Equal(t, float32(1), v.Normal.Y(), "vertex %d normal", i)
		assert.LessOrEqual(t, abs32(v.Position.X()), float32(5), "vertex %d x extent", i)
		assert.LessOrEqual(t, abs32(v.Position.Z()), float32(3), "vertex %d z extent", i)
	}
}

func TestCreatePlaneClampsSubdivisions(t *testing.T) {
	m := CreatePlane(1, 1, 0)
	require.NotNil(t, m)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Indices, 6)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
