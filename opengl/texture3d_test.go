package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutralLUTDataIsIdentity(t *testing.T) {
	const size = 16
	data := neutralLUTData(size)
	require.Len(t, data, size*size*size*3)

	// First texel is black, last is white.
	assert.Equal(t, float32(0), data[0])
	assert.Equal(t, float32(0), data[1])
	assert.Equal(t, float32(0), data[2])

	last := (size*size*size - 1) * 3
	assert.Equal(t, float32(1), data[last])
	assert.Equal(t, float32(1), data[last+1])
	assert.Equal(t, float32(1), data[last+2])

	// Texel (r,g,b) stores its own normalized coordinate.
	r, g, b := 5, 9, 13
	idx := (b*size*size + g*size + r) * 3
	assert.InDelta(t, float64(r)/(size-1), float64(data[idx]), 1e-6)
	assert.InDelta(t, float64(g)/(size-1), float64(data[idx+1]), 1e-6)
	assert.InDelta(t, float64(b)/(size-1), float64(data[idx+2]), 1e-6)
}

func TestNeutralLUTDataMonotonicAlongRed(t *testing.T) {
	const size = 8
	data := neutralLUTData(size)
	for r := 1; r < size; r++ {
		prev := data[(r-1)*3]
		cur := data[r*3]
		assert.Greater(t, cur, prev, "red channel must increase along the r axis")
	}
}

func TestNeutralLUTDataSingleTexel(t *testing.T) {
	data := neutralLUTData(1)
	require.Len(t, data, 3)
	assert.Equal(t, []float32{0, 0, 0}, data)
}

func TestNewTexture3DRejectsBadInput(t *testing.T) {
	_, err := NewTexture3D(0, nil)
	assert.Error(t, err)

	_, err = NewTexture3D(4, make([]float32, 5))
	assert.Error(t, err)

	_, err = NewNeutralLUT(-2)
	assert.Error(t, err)
}

func TestTexture3DDestroyNilSafe(t *testing.T) {
	var tex *Texture3D
	tex.Destroy()

	assert.NotPanics(t, func() { (&Texture3D{}).Destroy() })
}
