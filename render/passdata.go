// Package render implements the frame pipeline: shadow pass, pluggable
// render paths, stencil outlining and HDR post-processing, orchestrated by
// SceneRenderer.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
	"pbr-engine/material"
	"pbr-engine/opengl"
	"pbr-engine/scene"
)

// MaxPointLights is the point light capacity of the lit shader; extra
// lights in the snapshot are ignored.
const MaxPointLights = 4

// PathType selects a rendering strategy.
type PathType int

const (
	PathForward PathType = iota
	PathForwardPlus
	PathDeferred
)

func (t PathType) String() string {
	switch t {
	case PathForward:
		return "Forward"
	case PathForwardPlus:
		return "Forward+"
	case PathDeferred:
		return "Deferred"
	default:
		return "Unknown"
	}
}

// ShadowData is the result of the shadow pass. When Valid is false the
// other fields are meaningless and consumers must render unshadowed.
type ShadowData struct {
	ShadowMap        *opengl.Texture
	LightSpaceMatrix mgl32.Mat4
	Valid            bool
}

// RenderPassData carries everything a render path needs for one Execute
// call. It is assembled fresh every frame and must not be retained: the
// references are only guaranteed for the duration of the call.
type RenderPassData struct {
	Scene    *scene.Scene
	Camera   *scene.Camera
	Renderer *opengl.Renderer

	Target *opengl.Framebuffer
	Quad   *opengl.FullscreenQuad

	Material         *material.PBRMaterial
	DefaultLitShader *opengl.Shader

	Shadow ShadowData

	Lights scene.Lights

	// FrustumCull skips objects whose world bounds fall outside the camera
	// frustum. Instanced objects are exempt; see cullAgainstFrustum.
	FrustumCull bool

	UseIBL         bool
	IBLIntensity   float32
	IrradianceMap  *opengl.Texture
	PrefilteredMap *opengl.Texture
	BRDFLUT        *opengl.Texture

	LowerHemisphereColor     mgl32.Vec3
	LowerHemisphereIntensity float32

	ClearColor core.Color
}
