package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/opengl"
)

// PBRMaterial layers a metallic-roughness workflow over the generic
// parameter store: typed setters with physical clamps, and texture setters
// that keep each map's use-flag uniform in sync so the shader never samples
// a stale binding.
type PBRMaterial struct {
	*Material

	albedo    mgl32.Vec3
	metallic  float32
	roughness float32
	ao        float32
	alpha     float32
}

// NewPBR creates a PBR material with dielectric defaults: white albedo,
// metallic 0, roughness 0.5, full ambient occlusion, opaque. Every
// texture use-flag starts false.
func NewPBR(shader *opengl.Shader, name string) *PBRMaterial {
	m := &PBRMaterial{
		Material:  New(shader, name),
		albedo:    mgl32.Vec3{1, 1, 1},
		metallic:  0,
		roughness: 0.5,
		ao:        1,
		alpha:     1,
	}
	m.SetVec3("u_Albedo", m.albedo)
	m.SetFloat("u_Metallic", m.metallic)
	m.SetFloat("u_Roughness", m.roughness)
	m.SetFloat("u_AO", m.ao)
	m.SetFloat("u_Alpha", m.alpha)
	m.SetBool("u_UseAlbedoTexture", false)
	m.SetBool("u_UseNormalMap", false)
	m.SetBool("u_UseMetallicRoughnessTexture", false)
	m.SetBool("u_UseAOTexture", false)
	m.SetBool("u_UseEmissiveTexture", false)
	m.SetBool("u_UseIBL", false)
	m.SetBool("u_UseShadows", false)
	return m
}

// ── Scalar and color properties ───────────────────────────────────────────────

func (m *PBRMaterial) SetAlbedo(color mgl32.Vec3) {
	m.albedo = color
	m.SetVec3("u_Albedo", color)
}

func (m *PBRMaterial) Albedo() mgl32.Vec3 {
	return m.albedo
}

// SetMetallic clamps to [0,1].
func (m *PBRMaterial) SetMetallic(v float32) {
	m.metallic = clamp(v, 0, 1)
	m.SetFloat("u_Metallic", m.metallic)
}

func (m *PBRMaterial) Metallic() float32 {
	return m.metallic
}

// SetRoughness clamps to [0.05,1]. A perfectly smooth surface makes the
// specular highlight degenerate, so 0.05 is the floor.
func (m *PBRMaterial) SetRoughness(v float32) {
	m.roughness = clamp(v, 0.05, 1)
	m.SetFloat("u_Roughness", m.roughness)
}

func (m *PBRMaterial) Roughness() float32 {
	return m.roughness
}

// SetAO clamps the ambient occlusion factor to [0,1].
func (m *PBRMaterial) SetAO(v float32) {
	m.ao = clamp(v, 0, 1)
	m.SetFloat("u_AO", m.ao)
}

func (m *PBRMaterial) AO() float32 {
	return m.ao
}

// SetAlpha clamps opacity to [0,1].
func (m *PBRMaterial) SetAlpha(v float32) {
	m.alpha = clamp(v, 0, 1)
	m.SetFloat("u_Alpha", m.alpha)
}

func (m *PBRMaterial) Alpha() float32 {
	return m.alpha
}

// ── Surface textures ──────────────────────────────────────────────────────────

// setMappedTexture implements the texture/flag coupling: a non-nil texture
// binds the sampler and raises the use flag, nil lowers the flag and drops
// the binding so the shader takes the textureless path.
func (m *PBRMaterial) setMappedTexture(uniformName, flagName string, tex *opengl.Texture, slot int) {
	if tex != nil {
		m.SetTexture(uniformName, tex, slot, false)
		m.SetBool(flagName, true)
		return
	}
	m.RemoveTexture(uniformName)
	m.SetBool(flagName, false)
}

func (m *PBRMaterial) SetAlbedoTexture(tex *opengl.Texture) {
	m.setMappedTexture("u_AlbedoTexture", "u_UseAlbedoTexture", tex, opengl.SlotAlbedo)
}

func (m *PBRMaterial) SetNormalMap(tex *opengl.Texture) {
	m.setMappedTexture("u_NormalTexture", "u_UseNormalMap", tex, opengl.SlotNormal)
}

func (m *PBRMaterial) SetMetallicRoughnessTexture(tex *opengl.Texture) {
	m.setMappedTexture("u_MetallicRoughnessTexture", "u_UseMetallicRoughnessTexture",
		tex, opengl.SlotMetallicRoughness)
}

func (m *PBRMaterial) SetAOTexture(tex *opengl.Texture) {
	m.setMappedTexture("u_AOTexture", "u_UseAOTexture", tex, opengl.SlotAO)
}

func (m *PBRMaterial) SetEmissiveTexture(tex *opengl.Texture) {
	m.setMappedTexture("u_EmissiveTexture", "u_UseEmissiveTexture", tex, opengl.SlotEmissive)
}

// ── Image-based lighting ──────────────────────────────────────────────────────

// The three IBL maps have no individual use flags; the render path decides
// per frame whether IBL as a whole is active via SetUseIBL.

func (m *PBRMaterial) SetIrradianceMap(tex *opengl.Texture) {
	if tex == nil {
		m.RemoveTexture("u_IrradianceMap")
		return
	}
	m.SetTexture("u_IrradianceMap", tex, opengl.SlotIrradiance, true)
}

func (m *PBRMaterial) SetPrefilteredMap(tex *opengl.Texture) {
	if tex == nil {
		m.RemoveTexture("u_PrefilteredMap")
		return
	}
	m.SetTexture("u_PrefilteredMap", tex, opengl.SlotPrefiltered, true)
}

func (m *PBRMaterial) SetBRDFLUT(tex *opengl.Texture) {
	if tex == nil {
		m.RemoveTexture("u_BRDF_LUT")
		return
	}
	m.SetTexture("u_BRDF_LUT", tex, opengl.SlotBRDFLUT, false)
}

func (m *PBRMaterial) SetUseIBL(use bool) {
	m.SetBool("u_UseIBL", use)
}

// ── Shadows ───────────────────────────────────────────────────────────────────

func (m *PBRMaterial) SetShadowMap(tex *opengl.Texture) {
	if tex == nil {
		m.RemoveTexture("u_ShadowMap")
		m.SetBool("u_UseShadows", false)
		return
	}
	m.SetTexture("u_ShadowMap", tex, opengl.SlotShadowMap, false)
	m.SetBool("u_UseShadows", true)
}

func (m *PBRMaterial) SetUseShadows(use bool) {
	m.SetBool("u_UseShadows", use)
}

func (m *PBRMaterial) SetLightSpaceMatrix(mat mgl32.Mat4) {
	m.SetMat4("u_LightSpaceMatrix", mat)
}

// ── Ambient hemisphere ────────────────────────────────────────────────────────

// SetLowerHemisphereColor sets the ambient fill color used for surfaces
// facing away from the sky when IBL is off.
func (m *PBRMaterial) SetLowerHemisphereColor(color mgl32.Vec3) {
	m.SetVec3("u_LowerHemisphereColor", color)
}

// SetLowerHemisphereIntensity clamps to [0,2].
func (m *PBRMaterial) SetLowerHemisphereIntensity(v float32) {
	m.SetFloat("u_LowerHemisphereIntensity", clamp(v, 0, 2))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
