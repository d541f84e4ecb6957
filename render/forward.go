package render

import (
	"fmt"
	"sort"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/internal/logger"
	"pbr-engine/scene"
)

// ForwardRenderPath shades every object in a single pass over the scene:
// opaque objects front-to-back order-independent, then transparent objects
// blended back-to-front with depth writes off.
type ForwardRenderPath struct {
	valid bool
}

func NewForwardRenderPath() *ForwardRenderPath {
	return &ForwardRenderPath{}
}

func (p *ForwardRenderPath) OnAttach(width, height int) {
	// Forward rendering draws straight into the shared HDR target, so
	// there is nothing to allocate.
	p.valid = true
	logger.Log.Info("forward render path attached",
		zap.Int("width", width), zap.Int("height", height))
}

func (p *ForwardRenderPath) OnDetach() {
	p.valid = false
	logger.Log.Info("forward render path detached")
}

func (p *ForwardRenderPath) OnResize(width, height int) {}

func (p *ForwardRenderPath) NeedsDepthPrepass() bool { return false }

func (p *ForwardRenderPath) IsValid() bool { return p.valid }

func (p *ForwardRenderPath) Name() string { return "Forward" }

func (p *ForwardRenderPath) Type() PathType { return PathForward }

// Execute clears the HDR target, uploads the frame's lighting state and
// draws the scene.
func (p *ForwardRenderPath) Execute(data *RenderPassData) {
	if data.Scene == nil || data.Camera == nil || data.Renderer == nil || data.Material == nil {
		logger.Log.Error("forward path: incomplete pass data")
		return
	}
	if data.Target == nil {
		logger.Log.Error("forward path: no target framebuffer")
		return
	}

	data.Target.Bind()
	data.Renderer.Clear(data.ClearColor)

	p.setupLighting(data)
	p.renderSceneObjects(data)
}

// setupLighting uploads the per-frame uniforms shared by every object:
// camera, punctual lights, shadow and IBL state.
func (p *ForwardRenderPath) setupLighting(data *RenderPassData) {
	mat := data.Material
	shader := mat.Shader()
	shader.Bind()

	shader.SetMat4("u_View", data.Camera.ViewMatrix())
	shader.SetMat4("u_Projection", data.Camera.ProjectionMatrix())
	shader.SetVec3("u_ViewPos", data.Camera.Position())

	count := len(data.Lights.Points)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	shader.SetInt("u_LightCount", int32(count))
	for i := 0; i < count; i++ {
		shader.SetVec3(fmt.Sprintf("u_LightPositions[%d]", i), data.Lights.Points[i].Position)
		shader.SetVec3(fmt.Sprintf("u_LightColors[%d]", i), data.Lights.Points[i].Color)
	}

	if dir := data.Lights.Directional; dir != nil {
		shader.SetBool("u_UseDirLight", true)
		shader.SetVec3("u_DirLightDirection", dir.NormalizedDirection())
		shader.SetVec3("u_DirLightColor", dir.Color)
	} else {
		shader.SetBool("u_UseDirLight", false)
	}

	if data.Shadow.Valid && data.Shadow.ShadowMap != nil {
		shader.SetMat4("u_LightSpaceMatrix", data.Shadow.LightSpaceMatrix)
		mat.SetShadowMap(data.Shadow.ShadowMap)
	} else {
		// The flag must go false explicitly; a stale true from last frame
		// would sample an unbound shadow map.
		mat.SetUseShadows(false)
	}

	mat.SetUseIBL(data.UseIBL)
	if data.UseIBL && data.IrradianceMap != nil && data.PrefilteredMap != nil && data.BRDFLUT != nil {
		mat.SetIrradianceMap(data.IrradianceMap)
		mat.SetPrefilteredMap(data.PrefilteredMap)
		mat.SetBRDFLUT(data.BRDFLUT)
		shader.SetFloat("u_MaxReflectionLOD", 4.0)
		shader.SetFloat("u_IBLIntensity", data.IBLIntensity)
	} else {
		shader.SetFloat("u_IBLIntensity", 0.0)
	}

	mat.SetLowerHemisphereColor(data.LowerHemisphereColor)
	mat.SetLowerHemisphereIntensity(data.LowerHemisphereIntensity)
}

// renderSceneObjects draws opaque objects first, then transparent ones
// sorted farthest-first with blending on and depth writes off.
func (p *ForwardRenderPath) renderSceneObjects(data *RenderPassData) {
	objects := data.Scene.Objects()
	opaque, transparent := splitByAlpha(objects)

	if data.FrustumCull {
		f := scene.FrustumFromVP(data.Camera.ProjectionMatrix().Mul4(data.Camera.ViewMatrix()))
		opaque = cullAgainstFrustum(objects, opaque, &f)
		transparent = cullAgainstFrustum(objects, transparent, &f)
	}

	for _, idx := range opaque {
		p.renderSingleObject(data, objects[idx])
	}

	if len(transparent) == 0 {
		return
	}
	sortBackToFront(objects, transparent, data.Camera.Position())

	r := data.Renderer
	r.EnableBlending()
	r.SetBlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.SetDepthMask(false)
	for _, idx := range transparent {
		p.renderSingleObject(data, objects[idx])
	}
	r.SetDepthMask(true)
	r.DisableBlending()
}

func (p *ForwardRenderPath) renderSingleObject(data *RenderPassData, obj *scene.SceneObject) {
	mat := data.Material
	mat.SetAlbedo(obj.Color.Vec3())
	mat.SetAlpha(obj.Color.A)
	mat.SetMetallic(obj.Metallic)
	mat.SetRoughness(obj.Roughness)
	mat.SetAO(1.0)
	mat.SetAlbedoTexture(obj.Texture)
	mat.Bind()

	model := obj.Transform.ModelMatrix()
	normalMatrix := model.Mat3().Inv().Transpose()
	shader := mat.Shader()
	shader.SetMat4("u_Model", model)
	shader.SetMat3("u_NormalMatrix", normalMatrix)

	va, err := obj.Mesh.EnsureUploaded()
	if err != nil {
		logger.Log.Warn("skipping object without geometry",
			zap.String("object", obj.Name), zap.Error(err))
		return
	}
	if obj.InstanceCount > 1 {
		data.Renderer.DrawInstanced(va, obj.InstanceCount)
	} else {
		data.Renderer.Draw(va)
	}
}

// splitByAlpha partitions drawable object indices into opaque and
// transparent lists, preserving scene order. Inactive and meshless objects
// are dropped.
func splitByAlpha(objects []*scene.SceneObject) (opaque, transparent []int) {
	for i, obj := range objects {
		if !obj.Active || obj.Mesh == nil {
			continue
		}
		if obj.IsTransparent() {
			transparent = append(transparent, i)
		} else {
			opaque = append(opaque, i)
		}
	}
	return opaque, transparent
}

// cullAgainstFrustum filters indices down to objects whose world-space
// bounds touch the frustum, in place. Instanced objects always pass:
// instance placement happens in the vertex shader, so the anchor mesh
// bounds say nothing about where the copies land.
func cullAgainstFrustum(objects []*scene.SceneObject, indices []int, f *scene.Frustum) []int {
	visible := indices[:0]
	for _, idx := range indices {
		obj := objects[idx]
		if obj.InstanceCount > 1 {
			visible = append(visible, idx)
			continue
		}
		box := obj.Mesh.Bounds().Transformed(obj.Transform.ModelMatrix())
		if box.IntersectsFrustum(f) {
			visible = append(visible, idx)
		}
	}
	return visible
}

// sortBackToFront orders indices by descending distance from the camera to
// the object origin. The sort is stable so equal distances keep scene
// order.
func sortBackToFront(objects []*scene.SceneObject, indices []int, camPos mgl32.Vec3) {
	sort.SliceStable(indices, func(a, b int) bool {
		da := objects[indices[a]].Transform.Position.Sub(camPos).Len()
		db := objects[indices[b]].Transform.Position.Sub(camPos).Len()
		return da > db
	})
}
