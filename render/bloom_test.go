package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/opengl"
)

func TestBlurChainNeverReadsWriteTarget(t *testing.T) {
	for n := 0; n <= 8; n++ {
		steps := blurChain(n)
		require.Len(t, steps, 2*n, "passes %d", n)

		for i, step := range steps {
			assert.NotEqual(t, step.Src, step.Dst,
				"passes %d step %d reads its own write target", n, i)
		}
	}
}

func TestBlurChainAlternatesAxes(t *testing.T) {
	steps := blurChain(5)
	for i, step := range steps {
		wantHorizontal := i%2 == 0
		assert.Equal(t, wantHorizontal, step.Horizontal, "step %d", i)
	}
}

func TestBlurChainIsContinuous(t *testing.T) {
	steps := blurChain(4)
	require.NotEmpty(t, steps)

	assert.Equal(t, bloomExtract, steps[0].Src, "first read must be the extract result")
	for i := 1; i < len(steps); i++ {
		assert.Equal(t, steps[i-1].Dst, steps[i].Src,
			"step %d must read what step %d wrote", i, i-1)
	}
	// The extract target is only ever a source; blurring back into it
	// would corrupt the next frame's bright-pass.
	for i, step := range steps {
		assert.NotEqual(t, bloomExtract, step.Dst, "step %d", i)
	}
}

func TestBlurChainZeroPasses(t *testing.T) {
	assert.Empty(t, blurChain(0))
}

func TestBloomInvalidPassThrough(t *testing.T) {
	// Construction failure leaves valid unset; Process must return the
	// exact input handle without touching any GPU state.
	var b Bloom
	in := &opengl.Texture{}

	out := b.Process(in, nil, nil)
	assert.Same(t, in, out)

	assert.Nil(t, (&Bloom{}).Process(nil, nil, nil))
	assert.False(t, b.IsValid())

	var nilBloom *Bloom
	assert.False(t, nilBloom.IsValid())
}
