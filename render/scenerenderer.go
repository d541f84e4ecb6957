package render

import (
	"errors"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
	"pbr-engine/material"
	"pbr-engine/opengl"
	"pbr-engine/scene"
)

var errHDRIncomplete = errors.New("hdr framebuffer incomplete")

// SceneRenderer orchestrates a full frame: shadow pass, the active render
// path into the HDR target, skybox, selection outline, then post-processing
// to the default framebuffer. When the HDR target is missing Render is a
// no-op; there is no LDR fallback.
type SceneRenderer struct {
	width  int
	height int

	hdrFramebuffer *opengl.Framebuffer
	hdrColor       *opengl.Texture
	hdrDepth       *opengl.Texture
	hdrEnabled     bool

	quad        *opengl.FullscreenQuad
	shadowPass  *ShadowPass
	postProcess *PostProcessPipeline
	particles   *opengl.ParticleRenderer

	activePath  RenderPath
	currentType PathType

	pbrMaterial   *material.PBRMaterial
	litShader     *opengl.Shader
	outlineShader *opengl.Shader

	skybox     *opengl.Skybox
	showSkybox bool

	irradianceMap  *opengl.Texture
	prefilteredMap *opengl.Texture
	brdfLUT        *opengl.Texture
	useIBL         bool
	iblIntensity   float32

	lowerHemisphereColor     mgl32.Vec3
	lowerHemisphereIntensity float32

	enableOutlines bool
	outlineColor   mgl32.Vec4
	outlineScale   float32
	selectedObject int

	frustumCulling bool

	clearColor core.Color
}

// NewSceneRenderer builds the HDR target, shadow pass, post-processing
// pipeline and the default forward path. The factory provides the shared
// PBR material and the lit/outline shaders; the renderer does not own them.
func NewSceneRenderer(width, height int, factory *material.Factory) *SceneRenderer {
	r := &SceneRenderer{
		width:  width,
		height: height,

		showSkybox:   true,
		useIBL:       true,
		iblIntensity: 0.3,

		lowerHemisphereColor:     mgl32.Vec3{0.15, 0.15, 0.2},
		lowerHemisphereIntensity: 0.5,

		enableOutlines: true,
		outlineColor:   mgl32.Vec4{1.0, 0.6, 0.0, 1.0},
		outlineScale:   1.05,
		selectedObject: 0,

		frustumCulling: true,

		clearColor: core.Color{R: 0.1, G: 0.1, B: 0.15, A: 1.0},
	}

	fb, color, depth, err := newHDRTarget(width, height)
	if err != nil {
		logger.Log.Error("scene renderer: no HDR target, rendering disabled", zap.Error(err))
	} else {
		r.hdrFramebuffer, r.hdrColor, r.hdrDepth = fb, color, depth
		r.hdrEnabled = true
	}

	r.quad = opengl.NewFullscreenQuad()
	r.shadowPass = NewShadowPass(DefaultShadowResolution)
	r.postProcess = NewPostProcessPipeline(width, height)

	if pr, err := opengl.NewParticleRenderer(); err != nil {
		logger.Log.Error("scene renderer: particles disabled", zap.Error(err))
	} else {
		r.particles = pr
	}

	if factory != nil {
		r.pbrMaterial = factory.CreatePBR("scene_pbr")
		r.litShader = factory.LitShader()
		r.outlineShader = factory.OutlineShader()
	} else {
		logger.Log.Error("scene renderer: nil material factory, rendering disabled")
	}

	r.activePath = NewForwardRenderPath()
	r.activePath.OnAttach(width, height)
	r.currentType = PathForward

	logger.Log.Info("scene renderer created",
		zap.Int("width", width), zap.Int("height", height),
		zap.String("path", r.activePath.Name()))
	return r
}

// newHDRTarget allocates the HDR color and depth-stencil textures and a
// framebuffer holding them. Nothing is assigned to the renderer until the
// whole target is complete, so a failed allocation leaves no partial state.
func newHDRTarget(width, height int) (*opengl.Framebuffer, *opengl.Texture, *opengl.Texture, error) {
	color, err := opengl.NewHDRColorTexture(width, height)
	if err != nil {
		return nil, nil, nil, err
	}
	depth, err := opengl.NewDepthStencilTexture(width, height)
	if err != nil {
		color.Destroy()
		return nil, nil, nil, err
	}
	fb, err := opengl.NewFramebuffer(width, height)
	if err != nil {
		color.Destroy()
		depth.Destroy()
		return nil, nil, nil, err
	}
	fb.AttachColorTexture(color, 0)
	fb.AttachDepthStencilTexture(depth)
	if !fb.IsComplete() {
		color.Destroy()
		depth.Destroy()
		fb.Destroy()
		return nil, nil, nil, errHDRIncomplete
	}
	return fb, color, depth, nil
}

// Render draws one frame. The lights snapshot must stay untouched for the
// duration of the call; the renderer keeps no reference to it afterwards.
func (r *SceneRenderer) Render(sc *scene.Scene, cam *scene.Camera, renderer *opengl.Renderer, lights scene.Lights) {
	if !r.hdrEnabled || r.hdrFramebuffer == nil || r.pbrMaterial == nil || r.litShader == nil {
		return
	}
	if sc == nil || cam == nil || renderer == nil {
		return
	}

	var shadow ShadowData
	if r.shadowPass.IsValid() && lights.Directional != nil {
		shadow = r.shadowPass.Process(sc, renderer, lights.Directional.NormalizedDirection())
	}

	if r.activePath != nil && r.activePath.IsValid() {
		data := RenderPassData{
			Scene:    sc,
			Camera:   cam,
			Renderer: renderer,

			Target: r.hdrFramebuffer,
			Quad:   r.quad,

			Material:         r.pbrMaterial,
			DefaultLitShader: r.litShader,

			Shadow: shadow,
			Lights: lights,

			FrustumCull: r.frustumCulling,

			UseIBL:         r.useIBL && r.irradianceMap != nil && r.prefilteredMap != nil && r.brdfLUT != nil,
			IBLIntensity:   r.iblIntensity,
			IrradianceMap:  r.irradianceMap,
			PrefilteredMap: r.prefilteredMap,
			BRDFLUT:        r.brdfLUT,

			LowerHemisphereColor:     r.lowerHemisphereColor,
			LowerHemisphereIntensity: r.lowerHemisphereIntensity,

			ClearColor: r.clearColor,
		}
		r.activePath.Execute(&data)
	}

	// The render path may leave the framebuffer unbound, or the main pass
	// may have been skipped entirely. Skybox and outlines must land in the
	// HDR target either way.
	r.hdrFramebuffer.Bind()

	if r.showSkybox && r.skybox != nil {
		r.skybox.Draw(cam.ViewMatrix(), cam.ProjectionMatrix())
	}

	r.renderParticles(sc, cam)

	r.renderStencilOutline(sc, cam, renderer)

	r.hdrFramebuffer.Unbind()

	if r.postProcess.IsValid() && r.hdrColor != nil {
		r.postProcess.Process(r.hdrColor, renderer, r.width, r.height)
	}

	renderer.EnableDepthTest()
}

// renderStencilOutline re-draws the selected object tagging its silhouette
// in the stencil buffer, then draws a slightly scaled copy in flat color
// wherever the tag is absent.
func (r *SceneRenderer) renderStencilOutline(sc *scene.Scene, cam *scene.Camera, renderer *opengl.Renderer) {
	if !r.enableOutlines || r.outlineShader == nil {
		return
	}
	obj := sc.Object(r.selectedObject)
	if obj == nil || !obj.Active || obj.Mesh == nil {
		return
	}
	va, err := obj.Mesh.EnsureUploaded()
	if err != nil {
		return
	}

	renderer.ClearStencil()
	renderer.EnableStencilTest()
	renderer.SetStencilFunc(gl.ALWAYS, 1, 0xFF)
	renderer.SetStencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)
	renderer.SetStencilMask(0xFF)
	// The object was already drawn this frame, so its fragments only pass
	// at equal depth.
	renderer.SetDepthFunc(gl.LEQUAL)

	r.pbrMaterial.SetAlbedo(obj.Color.Vec3())
	r.pbrMaterial.SetAlpha(obj.Color.A)
	r.pbrMaterial.SetMetallic(obj.Metallic)
	r.pbrMaterial.SetRoughness(obj.Roughness)
	r.pbrMaterial.SetAO(1.0)
	r.pbrMaterial.SetAlbedoTexture(obj.Texture)
	r.pbrMaterial.Bind()

	shader := r.pbrMaterial.Shader()
	model := obj.Transform.ModelMatrix()
	shader.SetMat4("u_View", cam.ViewMatrix())
	shader.SetMat4("u_Projection", cam.ProjectionMatrix())
	shader.SetMat4("u_Model", model)
	shader.SetMat3("u_NormalMatrix", model.Mat3().Inv().Transpose())
	renderer.Draw(va)

	renderer.SetDepthFunc(gl.LESS)

	renderer.SetStencilFunc(gl.NOTEQUAL, 1, 0xFF)
	renderer.SetStencilMask(0x00)
	renderer.SetDepthMask(false)

	r.outlineShader.Bind()
	r.outlineShader.SetMat4("u_View", cam.ViewMatrix())
	r.outlineShader.SetMat4("u_Projection", cam.ProjectionMatrix())
	r.outlineShader.SetVec4("u_OutlineColor", r.outlineColor)
	r.outlineShader.SetMat4("u_Model", outlineModelMatrix(model, r.outlineScale))
	renderer.Draw(va)

	renderer.SetDepthMask(true)
	renderer.SetStencilMask(0xFF)
	renderer.DisableStencilTest()
}

// outlineModelMatrix grows the model matrix by the outline scale around the
// object's own origin.
func outlineModelMatrix(model mgl32.Mat4, scale float32) mgl32.Mat4 {
	return model.Mul4(mgl32.Scale3D(scale, scale, scale))
}

// SetRenderPath switches the rendering strategy. Unimplemented paths log a
// warning and fall back to forward. Re-selecting the active type is a no-op.
func (r *SceneRenderer) SetRenderPath(t PathType) {
	if r.currentType == t && r.activePath != nil {
		return
	}
	if r.activePath != nil {
		r.activePath.OnDetach()
	}

	switch t {
	case PathForwardPlus:
		logger.Log.Warn("forward+ render path not implemented, falling back to forward")
		t = PathForward
	case PathDeferred:
		logger.Log.Warn("deferred render path not implemented, falling back to forward")
		t = PathForward
	}

	r.activePath = NewForwardRenderPath()
	r.activePath.OnAttach(r.width, r.height)
	r.currentType = t
	logger.Log.Info("render path switched", zap.String("path", r.activePath.Name()))
}

// RenderPathName returns the active path's name, or "None".
func (r *SceneRenderer) RenderPathName() string {
	if r.activePath == nil {
		return "None"
	}
	return r.activePath.Name()
}

// CurrentPathType returns the active path's type.
func (r *SceneRenderer) CurrentPathType() PathType { return r.currentType }

// OnResize rebuilds the HDR target at the new size. The old target is only
// released after the new one is complete; on failure the renderer keeps the
// previous target and dimensions so the next frame still has something to
// draw into.
func (r *SceneRenderer) OnResize(width, height int) {
	oldWidth, oldHeight := r.width, r.height
	r.width, r.height = width, height

	fb, color, depth, err := newHDRTarget(width, height)
	if err != nil {
		logger.Log.Error("resize failed, keeping previous render target",
			zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		r.width, r.height = oldWidth, oldHeight
		r.hdrEnabled = r.hdrFramebuffer != nil
		return
	}

	oldFB, oldColor, oldDepth := r.hdrFramebuffer, r.hdrColor, r.hdrDepth
	r.hdrFramebuffer, r.hdrColor, r.hdrDepth = fb, color, depth
	r.hdrEnabled = true

	if oldFB != nil {
		oldFB.Destroy()
	}
	if oldColor != nil {
		oldColor.Destroy()
	}
	if oldDepth != nil {
		oldDepth.Destroy()
	}

	if r.activePath != nil {
		r.activePath.OnResize(width, height)
	}
	r.postProcess.OnResize(width, height)
}

// ── Shared state setters ──────────────────────────────────────────────────────

// SetIBLMaps installs the environment maps used for image-based lighting.
// IBL only activates when all three are present.
func (r *SceneRenderer) SetIBLMaps(irradiance, prefiltered, brdfLUT *opengl.Texture) {
	r.irradianceMap = irradiance
	r.prefilteredMap = prefiltered
	r.brdfLUT = brdfLUT
}

func (r *SceneRenderer) SetUseIBL(use bool)        { r.useIBL = use }
func (r *SceneRenderer) SetIBLIntensity(v float32) { r.iblIntensity = v }

func (r *SceneRenderer) SetLowerHemisphereColor(c mgl32.Vec3)  { r.lowerHemisphereColor = c }
func (r *SceneRenderer) SetLowerHemisphereIntensity(v float32) { r.lowerHemisphereIntensity = v }

// SetSkybox installs the skybox drawn behind the scene. The renderer does
// not take ownership.
func (r *SceneRenderer) SetSkybox(sb *opengl.Skybox) { r.skybox = sb }
func (r *SceneRenderer) SetShowSkybox(show bool)     { r.showSkybox = show }

func (r *SceneRenderer) SetEnableOutlines(enable bool) { r.enableOutlines = enable }
func (r *SceneRenderer) SetOutlineColor(c mgl32.Vec4)  { r.outlineColor = c }
func (r *SceneRenderer) SetOutlineScale(scale float32) { r.outlineScale = scale }

// SetSelectedObject picks the scene index to outline. Out-of-range values
// disable the outline.
func (r *SceneRenderer) SetSelectedObject(index int) { r.selectedObject = index }

// SelectedObject returns the scene index currently outlined.
func (r *SceneRenderer) SelectedObject() int { return r.selectedObject }

// SetFrustumCulling toggles world-bounds culling against the camera
// frustum in the main pass.
func (r *SceneRenderer) SetFrustumCulling(enable bool) { r.frustumCulling = enable }

func (r *SceneRenderer) SetClearColor(c core.Color) { r.clearColor = c }

// PostProcess exposes the owned post-processing pipeline for tuning.
func (r *SceneRenderer) PostProcess() *PostProcessPipeline { return r.postProcess }

// Shadows exposes the owned shadow pass.
func (r *SceneRenderer) Shadows() *ShadowPass { return r.shadowPass }

// Destroy releases everything the renderer owns. Injected resources
// (skybox, IBL maps, the factory's shaders) are left to their owners.
func (r *SceneRenderer) Destroy() {
	if r == nil {
		return
	}
	if r.activePath != nil {
		r.activePath.OnDetach()
		r.activePath = nil
	}
	if r.postProcess != nil {
		r.postProcess.Destroy()
		r.postProcess = nil
	}
	if r.shadowPass != nil {
		r.shadowPass.Destroy()
		r.shadowPass = nil
	}
	if r.particles != nil {
		r.particles.Destroy()
		r.particles = nil
	}
	if r.quad != nil {
		r.quad.Destroy()
		r.quad = nil
	}
	if r.hdrFramebuffer != nil {
		r.hdrFramebuffer.Destroy()
		r.hdrFramebuffer = nil
	}
	if r.hdrColor != nil {
		r.hdrColor.Destroy()
		r.hdrColor = nil
	}
	if r.hdrDepth != nil {
		r.hdrDepth.Destroy()
		r.hdrDepth = nil
	}
	r.hdrEnabled = false
}
