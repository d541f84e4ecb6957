package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/opengl"
)

func TestMaterialParameterStore(t *testing.T) {
	m := New(nil, "test")

	m.SetFloat("u_Roughness", 0.5)
	m.SetInt("u_Mode", 3)
	m.SetBool("u_UseIBL", true)
	m.SetVec3("u_Albedo", mgl32.Vec3{1, 0.5, 0})

	assert.True(t, m.HasParameter("u_Roughness"))
	assert.True(t, m.HasParameter("u_Mode"))
	assert.True(t, m.HasParameter("u_UseIBL"))
	assert.True(t, m.HasParameter("u_Albedo"))
	assert.False(t, m.HasParameter("u_Missing"))

	assert.Equal(t, float32(0.5), m.params["u_Roughness"].f)
	assert.Equal(t, int32(3), m.params["u_Mode"].i)
	assert.True(t, m.params["u_UseIBL"].b)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0}, m.params["u_Albedo"].v3)
}

func TestMaterialParameterOverwrite(t *testing.T) {
	m := New(nil, "test")

	m.SetFloat("u_Metallic", 0.1)
	m.SetFloat("u_Metallic", 0.9)

	assert.Len(t, m.params, 1)
	assert.Equal(t, float32(0.9), m.params["u_Metallic"].f)
}

func TestMaterialParameterKindSwitch(t *testing.T) {
	m := New(nil, "test")

	// The last set wins even across kinds; upload dispatches on the kind
	// tag, never on the uniform name.
	m.SetFloat("u_Value", 1.0)
	m.SetVec4("u_Value", mgl32.Vec4{1, 2, 3, 4})

	assert.Equal(t, kindVec4, m.params["u_Value"].kind)
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, m.params["u_Value"].v4)
}

func TestSetTextureUpdatesInPlace(t *testing.T) {
	m := New(nil, "test")
	first := &opengl.Texture{}
	second := &opengl.Texture{}

	m.SetTexture("u_AlbedoMap", first, 0, false)
	m.SetTexture("u_NormalMap", &opengl.Texture{}, 1, false)
	m.SetTexture("u_AlbedoMap", second, 0, false)

	bindings := m.TextureBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "u_AlbedoMap", bindings[0].UniformName)
	assert.Same(t, second, bindings[0].Texture)
	assert.Equal(t, "u_NormalMap", bindings[1].UniformName)
}

func TestRemoveTexture(t *testing.T) {
	m := New(nil, "test")
	m.SetTexture("u_A", &opengl.Texture{}, 0, false)
	m.SetTexture("u_B", &opengl.Texture{}, 1, false)
	m.SetTexture("u_C", &opengl.Texture{}, 2, true)

	m.RemoveTexture("u_B")

	bindings := m.TextureBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "u_A", bindings[0].UniformName)
	assert.Equal(t, "u_C", bindings[1].UniformName)
	assert.True(t, bindings[1].Cubemap)

	// Removing an absent binding is a no-op.
	m.RemoveTexture("u_B")
	assert.Len(t, m.TextureBindings(), 2)
}

func TestBindWithoutShaderIsSafe(t *testing.T) {
	m := New(nil, "orphan")
	m.SetFloat("u_X", 1)
	m.Bind()
	m.Unbind()
}
