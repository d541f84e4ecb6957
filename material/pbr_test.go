package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/opengl"
)

func TestNewPBRDefaults(t *testing.T) {
	m := NewPBR(nil, "test")

	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Albedo())
	assert.Equal(t, float32(0), m.Metallic())
	assert.Equal(t, float32(0.5), m.Roughness())
	assert.Equal(t, float32(1), m.AO())
	assert.Equal(t, float32(1), m.Alpha())

	for _, flag := range []string{
		"u_UseAlbedoTexture",
		"u_UseNormalMap",
		"u_UseMetallicRoughnessTexture",
		"u_UseAOTexture",
		"u_UseEmissiveTexture",
		"u_UseIBL",
		"u_UseShadows",
	} {
		require.True(t, m.HasParameter(flag), flag)
		assert.False(t, m.params[flag].b, "%s must start lowered", flag)
	}
}

func TestPBRScalarClamps(t *testing.T) {
	m := NewPBR(nil, "test")

	m.SetMetallic(-0.5)
	assert.Equal(t, float32(0), m.Metallic())
	m.SetMetallic(1.5)
	assert.Equal(t, float32(1), m.Metallic())

	// Roughness keeps a floor above zero so the specular lobe never
	// degenerates to a point.
	m.SetRoughness(0)
	assert.Equal(t, float32(0.05), m.Roughness())
	m.SetRoughness(2)
	assert.Equal(t, float32(1), m.Roughness())

	m.SetAO(-1)
	assert.Equal(t, float32(0), m.AO())
	m.SetAlpha(3)
	assert.Equal(t, float32(1), m.Alpha())

	m.SetLowerHemisphereIntensity(5)
	assert.Equal(t, float32(2), m.params["u_LowerHemisphereIntensity"].f)
}

func TestPBRSettersMirrorToParams(t *testing.T) {
	m := NewPBR(nil, "test")

	m.SetAlbedo(mgl32.Vec3{0.9, 0.5, 0.3})
	m.SetMetallic(0.8)
	m.SetAlpha(0.4)

	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0.3}, m.params["u_Albedo"].v3)
	assert.Equal(t, float32(0.8), m.params["u_Metallic"].f)
	assert.Equal(t, float32(0.4), m.params["u_Alpha"].f)
}

func TestMappedTexturesRaiseAndLowerFlags(t *testing.T) {
	cases := []struct {
		name    string
		set     func(m *PBRMaterial, tex *opengl.Texture)
		uniform string
		flag    string
		slot    int
	}{
		{"albedo", (*PBRMaterial).SetAlbedoTexture, "u_AlbedoTexture", "u_UseAlbedoTexture", opengl.SlotAlbedo},
		{"normal", (*PBRMaterial).SetNormalMap, "u_NormalTexture", "u_UseNormalMap", opengl.SlotNormal},
		{"metallicRoughness", (*PBRMaterial).SetMetallicRoughnessTexture, "u_MetallicRoughnessTexture", "u_UseMetallicRoughnessTexture", opengl.SlotMetallicRoughness},
		{"ao", (*PBRMaterial).SetAOTexture, "u_AOTexture", "u_UseAOTexture", opengl.SlotAO},
		{"emissive", (*PBRMaterial).SetEmissiveTexture, "u_EmissiveTexture", "u_UseEmissiveTexture", opengl.SlotEmissive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewPBR(nil, "test")
			tex := &opengl.Texture{}

			tc.set(m, tex)
			assert.True(t, m.params[tc.flag].b)

			bindings := m.TextureBindings()
			require.Len(t, bindings, 1)
			assert.Equal(t, tc.uniform, bindings[0].UniformName)
			assert.Equal(t, tc.slot, bindings[0].Slot)
			assert.Same(t, tex, bindings[0].Texture)

			tc.set(m, nil)
			assert.False(t, m.params[tc.flag].b)
			assert.Empty(t, m.TextureBindings())
		})
	}
}

func TestShadowMapCouplesUseFlag(t *testing.T) {
	m := NewPBR(nil, "test")

	m.SetShadowMap(&opengl.Texture{})
	assert.True(t, m.params["u_UseShadows"].b)

	m.SetShadowMap(nil)
	assert.False(t, m.params["u_UseShadows"].b)
	assert.Empty(t, m.TextureBindings())
}

func TestIBLMapsBindAsCubemaps(t *testing.T) {
	m := NewPBR(nil, "test")

	m.SetIrradianceMap(&opengl.Texture{})
	m.SetPrefilteredMap(&opengl.Texture{})
	m.SetBRDFLUT(&opengl.Texture{})

	bindings := m.TextureBindings()
	require.Len(t, bindings, 3)
	assert.True(t, bindings[0].Cubemap)
	assert.True(t, bindings[1].Cubemap)
	assert.False(t, bindings[2].Cubemap, "the BRDF LUT is a 2D table")

	assert.Equal(t, opengl.SlotIrradiance, bindings[0].Slot)
	assert.Equal(t, opengl.SlotPrefiltered, bindings[1].Slot)
	assert.Equal(t, opengl.SlotBRDFLUT, bindings[2].Slot)

	// IBL maps carry no per-map flags; clearing one just drops the binding.
	m.SetPrefilteredMap(nil)
	assert.Len(t, m.TextureBindings(), 2)
}
