package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
	"pbr-engine/scene"
)

// DefaultShadowResolution is the side length of the square shadow map.
const DefaultShadowResolution = 2048

// Bounds of the directional light's orthographic frustum. The light camera
// sits lightDistance units up the reversed light direction and covers a
// shadowExtent box around the origin.
const (
	shadowExtent  = 15.0
	shadowNear    = 0.1
	shadowFar     = 30.0
	lightDistance = 15.0
)

// ShadowPass renders scene depth from the directional light into a dedicated
// depth-only framebuffer. A pass that fails to build its GPU resources stays
// permanently invalid and produces disabled ShadowData every frame.
type ShadowPass struct {
	resolution  int
	depthTex    *opengl.Texture
	framebuffer *opengl.Framebuffer
	shader      *opengl.Shader
	valid       bool
}

// NewShadowPass builds the depth map target and shader. A non-positive
// resolution falls back to DefaultShadowResolution.
func NewShadowPass(resolution int) *ShadowPass {
	if resolution <= 0 {
		resolution = DefaultShadowResolution
	}
	p := &ShadowPass{resolution: resolution}

	depthTex, err := opengl.NewDepthTexture(resolution, resolution)
	if err != nil {
		logger.Log.Error("shadow pass disabled: depth texture", zap.Error(err))
		return p
	}
	fb, err := opengl.NewFramebuffer(resolution, resolution)
	if err != nil {
		depthTex.Destroy()
		logger.Log.Error("shadow pass disabled: framebuffer", zap.Error(err))
		return p
	}
	fb.AttachDepthTexture(depthTex)
	if !fb.IsComplete() {
		logger.Log.Error("shadow pass disabled: framebuffer incomplete",
			zap.Int("resolution", resolution))
		depthTex.Destroy()
		fb.Destroy()
		return p
	}

	shader, err := opengl.NewShader("shadow_depth", depthVertexSrc, depthFragmentSrc)
	if err != nil {
		logger.Log.Error("shadow pass disabled: shader", zap.Error(err))
		depthTex.Destroy()
		fb.Destroy()
		return p
	}

	p.depthTex = depthTex
	p.framebuffer = fb
	p.shader = shader
	p.valid = true
	logger.Log.Info("shadow pass ready", zap.Int("resolution", resolution))
	return p
}

// IsValid reports whether the pass owns a complete depth target and shader.
func (p *ShadowPass) IsValid() bool { return p != nil && p.valid }

// Resolution returns the shadow map side length in pixels.
func (p *ShadowPass) Resolution() int { return p.resolution }

// DepthTexture exposes the raw shadow map, e.g. for debug visualization.
func (p *ShadowPass) DepthTexture() *opengl.Texture { return p.depthTex }

// Process renders every active mesh into the shadow map from the directional
// light's point of view and returns the map together with the light-space
// matrix. An invalid pass returns disabled ShadowData without touching GPU
// state. The caller's viewport is preserved.
func (p *ShadowPass) Process(sc *scene.Scene, renderer *opengl.Renderer, lightDir mgl32.Vec3) ShadowData {
	if !p.IsValid() || sc == nil || renderer == nil {
		return ShadowData{}
	}

	lightSpace := ComputeLightSpaceMatrix(lightDir)

	renderer.PushViewport()
	p.framebuffer.Bind()
	renderer.ClearDepth()

	// Push geometry slightly away from the light to keep self-shadowing
	// acne off flat surfaces.
	renderer.EnablePolygonOffset(2.0, 4.0)

	p.shader.Bind()
	p.shader.SetMat4("u_LightSpaceMatrix", lightSpace)

	for _, obj := range sc.Objects() {
		if !obj.Active || obj.Mesh == nil {
			continue
		}
		va, err := obj.Mesh.EnsureUploaded()
		if err != nil {
			continue
		}
		p.shader.SetMat4("u_Model", obj.Transform.ModelMatrix())
		if obj.InstanceCount > 1 {
			renderer.DrawInstanced(va, obj.InstanceCount)
		} else {
			renderer.Draw(va)
		}
	}

	renderer.DisablePolygonOffset()
	p.framebuffer.Unbind()
	renderer.PopViewport()

	return ShadowData{
		ShadowMap:        p.depthTex,
		LightSpaceMatrix: lightSpace,
		Valid:            true,
	}
}

// ComputeLightSpaceMatrix builds the combined orthographic projection and
// view matrix for a directional light shining along dir. A dir close to
// vertical swaps the up reference to the Z axis so the view basis never
// degenerates.
func ComputeLightSpaceMatrix(dir mgl32.Vec3) mgl32.Mat4 {
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	dir = dir.Normalize()

	lightPos := dir.Mul(-lightDistance)

	up := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(lightPos, mgl32.Vec3{}, up)
	proj := mgl32.Ortho(-shadowExtent, shadowExtent, -shadowExtent, shadowExtent, shadowNear, shadowFar)
	return proj.Mul4(view)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Destroy releases the depth texture, framebuffer and shader.
func (p *ShadowPass) Destroy() {
	if p == nil {
		return
	}
	if p.shader != nil {
		p.shader.Destroy()
		p.shader = nil
	}
	if p.framebuffer != nil {
		p.framebuffer.Destroy()
		p.framebuffer = nil
	}
	if p.depthTex != nil {
		p.depthTex.Destroy()
		p.depthTex = nil
	}
	p.valid = false
}
