package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/opengl"
	"pbr-engine/scene"
)

func TestOutlineModelMatrix(t *testing.T) {
	m := outlineModelMatrix(mgl32.Ident4(), 1.05)

	assert.InDelta(t, 1.05, float64(m.At(0, 0)), 1e-6)
	assert.InDelta(t, 1.05, float64(m.At(1, 1)), 1e-6)
	assert.InDelta(t, 1.05, float64(m.At(2, 2)), 1e-6)
	assert.InDelta(t, 1.0, float64(m.At(3, 3)), 1e-6)
}

func TestOutlineModelMatrixKeepsTranslation(t *testing.T) {
	model := mgl32.Translate3D(2, -1, 5)
	m := outlineModelMatrix(model, 1.05)

	// Scaling happens in object space, so the placement must not move.
	assert.InDelta(t, 2.0, float64(m.At(0, 3)), 1e-6)
	assert.InDelta(t, -1.0, float64(m.At(1, 3)), 1e-6)
	assert.InDelta(t, 5.0, float64(m.At(2, 3)), 1e-6)
}

func TestOnResizeRollsBackOnFailure(t *testing.T) {
	fb := &opengl.Framebuffer{}
	color := &opengl.Texture{}
	depth := &opengl.Texture{}

	r := &SceneRenderer{
		width:          800,
		height:         600,
		hdrFramebuffer: fb,
		hdrColor:       color,
		hdrDepth:       depth,
		hdrEnabled:     true,
	}

	// Zero dimensions cannot produce a complete target; the renderer must
	// keep the old target and old dimensions instead of going dark.
	r.OnResize(0, 0)

	assert.Equal(t, 800, r.width)
	assert.Equal(t, 600, r.height)
	assert.Same(t, fb, r.hdrFramebuffer)
	assert.Same(t, color, r.hdrColor)
	assert.Same(t, depth, r.hdrDepth)
	assert.True(t, r.hdrEnabled)
}

func TestOnResizeFailureWithoutPriorTarget(t *testing.T) {
	r := &SceneRenderer{width: 800, height: 600}

	r.OnResize(-1, 300)

	assert.False(t, r.hdrEnabled, "no prior target to fall back to")
	assert.Nil(t, r.hdrFramebuffer)
}

func TestSetRenderPathSameTypeIsNoOp(t *testing.T) {
	path := NewForwardRenderPath()
	path.OnAttach(4, 4)

	r := &SceneRenderer{activePath: path, currentType: PathForward}
	r.SetRenderPath(PathForward)

	assert.Same(t, path, r.activePath)
	assert.True(t, r.activePath.IsValid())
}

func TestSetRenderPathCoercesUnimplemented(t *testing.T) {
	for _, requested := range []PathType{PathForwardPlus, PathDeferred} {
		old := NewForwardRenderPath()
		old.OnAttach(4, 4)
		r := &SceneRenderer{activePath: old, currentType: PathForward, width: 4, height: 4}

		r.SetRenderPath(requested)

		require.NotNil(t, r.activePath, "requested %v", requested)
		assert.NotSame(t, old, r.activePath, "requested %v", requested)
		assert.Equal(t, PathForward, r.currentType, "requested %v", requested)
		assert.True(t, r.activePath.IsValid(), "requested %v", requested)
		assert.False(t, old.IsValid(), "old path must be detached")
	}
}

func TestRenderIsNoOpWithoutHDRTarget(t *testing.T) {
	// No HDR target means no frame; deliberately no LDR fallback.
	r := &SceneRenderer{}
	r.Render(nil, nil, nil, scene.Lights{})
}

func TestPathTypeString(t *testing.T) {
	assert.Equal(t, "Forward", PathForward.String())
	assert.Equal(t, "Forward+", PathForwardPlus.String())
	assert.Equal(t, "Deferred", PathDeferred.String())
	assert.Equal(t, "Unknown", PathType(42).String())
}

func TestRenderPathName(t *testing.T) {
	r := &SceneRenderer{}
	assert.Equal(t, "None", r.RenderPathName())

	r.activePath = NewForwardRenderPath()
	assert.Equal(t, "Forward", r.RenderPathName())
}
