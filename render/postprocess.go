package render

import (
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

// Tone-mapping operators selectable via PostProcessPipeline.ToneMappingMode.
const (
	ToneMapReinhard = iota
	ToneMapReinhardExtended
	ToneMapExposure
	ToneMapACES
	ToneMapUncharted2
)

const colorGradingLUTSize = 16

// PostProcessPipeline composes bloom with a single tone-mapping and color
// grading pass that reads the HDR scene texture and writes the final LDR
// image to the default framebuffer. Bloom runs at half the main resolution.
//
// The exported fields are per-frame settings; changing them takes effect on
// the next Process call.
type PostProcessPipeline struct {
	width  int
	height int

	bloom  *Bloom
	shader *opengl.Shader
	quad   *opengl.FullscreenQuad
	lut    *opengl.Texture3D

	EnableBloom     bool
	BloomThreshold  float32
	BloomKnee       float32
	BloomIntensity  float32
	BloomBlurPasses int

	// Mode selects the operator; Exposure scales radiance before mapping,
	// WhitePoint only shapes ToneMapReinhardExtended.
	ToneMappingMode int
	Exposure        float32
	Gamma           float32
	WhitePoint      float32

	EnableColorGrading bool
	LUTContribution    float32
	Saturation         float32
	Contrast           float32
	Brightness         float32

	valid bool
}

// NewPostProcessPipeline builds the tone-mapping shader, a half-resolution
// bloom processor and a neutral color grading LUT. A failed bloom or LUT
// degrades that feature only; a failed shader invalidates the pipeline.
func NewPostProcessPipeline(width, height int) *PostProcessPipeline {
	p := &PostProcessPipeline{
		width:  width,
		height: height,

		EnableBloom:     true,
		BloomThreshold:  1.5,
		BloomKnee:       0.5,
		BloomIntensity:  0.04,
		BloomBlurPasses: 5,

		ToneMappingMode: ToneMapACES,
		Exposure:        1.0,
		Gamma:           2.2,
		WhitePoint:      4.0,

		EnableColorGrading: false,
		LUTContribution:    1.0,
		Saturation:         1.0,
		Contrast:           1.0,
		Brightness:         0.0,
	}

	p.bloom = NewBloom(max(width/2, 1), max(height/2, 1))
	if !p.bloom.IsValid() {
		logger.Log.Error("post-process: bloom processor invalid, continuing without bloom")
	}

	shader, err := opengl.NewShader("tonemapping", fullscreenVertexSrc, tonemapFragmentSrc)
	if err != nil {
		logger.Log.Error("post-process disabled: tone mapping shader", zap.Error(err))
		return p
	}
	p.shader = shader
	p.quad = opengl.NewFullscreenQuad()

	lut, err := opengl.NewNeutralLUT(colorGradingLUTSize)
	if err != nil {
		logger.Log.Warn("post-process: neutral grading LUT unavailable", zap.Error(err))
	}
	p.lut = lut

	p.valid = true
	logger.Log.Info("post-process pipeline ready",
		zap.Int("width", width), zap.Int("height", height))
	return p
}

// IsValid reports whether the final tone-mapping pass can run.
func (p *PostProcessPipeline) IsValid() bool { return p != nil && p.valid }

// BloomProcessor exposes the owned bloom instance.
func (p *PostProcessPipeline) BloomProcessor() *Bloom { return p.bloom }

// Process tone-maps the HDR texture to the currently bound target at the
// full window viewport, compositing bloom and color grading when their
// resources are available. The bloom and grading uniforms are written every
// frame so a missing resource forces the shader flag off rather than leaving
// a stale value. Depth testing is always enabled on return.
func (p *PostProcessPipeline) Process(hdr *opengl.Texture, renderer *opengl.Renderer, windowWidth, windowHeight int) {
	if !p.IsValid() || hdr == nil || renderer == nil {
		return
	}

	var bloomTex *opengl.Texture
	if p.EnableBloom && p.bloom.IsValid() {
		p.bloom.Threshold = p.BloomThreshold
		p.bloom.Knee = p.BloomKnee
		p.bloom.BlurPasses = p.BloomBlurPasses
		bloomTex = p.bloom.Process(hdr, renderer, p.quad)
	}

	renderer.SetViewport(0, 0, windowWidth, windowHeight)
	renderer.Clear(core.ColorBlack)
	renderer.DisableDepthTest()

	p.shader.Bind()

	hdr.Bind(opengl.SlotHDRBuffer)
	p.shader.SetInt("u_HDRBuffer", opengl.SlotHDRBuffer)

	p.shader.SetInt("u_ToneMappingMode", int32(p.ToneMappingMode))
	p.shader.SetFloat("u_Exposure", p.Exposure)
	p.shader.SetFloat("u_Gamma", p.Gamma)
	p.shader.SetFloat("u_WhitePoint", p.WhitePoint)

	enableBloom := p.EnableBloom && bloomTex != nil
	p.shader.SetBool("u_EnableBloom", enableBloom)
	p.shader.SetFloat("u_BloomIntensity", p.BloomIntensity)
	if enableBloom {
		bloomTex.Bind(opengl.SlotBloom)
		p.shader.SetInt("u_BloomTexture", opengl.SlotBloom)
	}

	enableGrading := p.EnableColorGrading && p.lut != nil
	p.shader.SetBool("u_EnableColorGrading", enableGrading)
	p.shader.SetFloat("u_LUTContribution", p.LUTContribution)
	p.shader.SetFloat("u_Saturation", p.Saturation)
	p.shader.SetFloat("u_Contrast", p.Contrast)
	p.shader.SetFloat("u_Brightness", p.Brightness)
	if enableGrading {
		p.lut.Bind(opengl.SlotColorGradingLUT)
		p.shader.SetInt("u_ColorGradingLUT", opengl.SlotColorGradingLUT)
	}

	p.quad.Draw()

	renderer.EnableDepthTest()
}

// OnResize rebuilds the bloom processor at the new half resolution. When the
// rebuild fails the previous processor is kept, stale-sized but functional.
func (p *PostProcessPipeline) OnResize(width, height int) {
	if p == nil {
		return
	}
	p.width = width
	p.height = height

	if p.bloom == nil {
		return
	}
	replacement := NewBloom(max(width/2, 1), max(height/2, 1))
	if !replacement.IsValid() {
		replacement.Destroy()
		logger.Log.Error("post-process: bloom rebuild failed on resize, keeping previous",
			zap.Int("width", width), zap.Int("height", height))
		return
	}
	replacement.Threshold = p.BloomThreshold
	replacement.Knee = p.BloomKnee
	replacement.BlurPasses = p.BloomBlurPasses

	p.bloom.Destroy()
	p.bloom = replacement
}

// Destroy releases the bloom processor, shader, quad and LUT.
func (p *PostProcessPipeline) Destroy() {
	if p == nil {
		return
	}
	if p.bloom != nil {
		p.bloom.Destroy()
		p.bloom = nil
	}
	if p.shader != nil {
		p.shader.Destroy()
		p.shader = nil
	}
	if p.quad != nil {
		p.quad.Destroy()
		p.quad = nil
	}
	if p.lut != nil {
		p.lut.Destroy()
		p.lut = nil
	}
	p.valid = false
}
