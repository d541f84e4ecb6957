package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

var errBloomIncomplete = errors.New("bloom framebuffer incomplete")

// Indices into the Bloom target arrays.
const (
	bloomExtract = 0
	bloomBlur1   = 1
	bloomBlur2   = 2
)

// Bloom extracts bright regions of an HDR texture and blurs them with a
// separable Gaussian, ping-ponging between two framebuffers. A processor
// whose GPU resources failed to build is permanently invalid and passes its
// input through unchanged.
type Bloom struct {
	width  int
	height int

	textures     [3]*opengl.Texture
	framebuffers [3]*opengl.Framebuffer

	extractShader *opengl.Shader
	blurShader    *opengl.Shader

	Threshold  float32
	Knee       float32
	BlurPasses int

	valid bool
}

// NewBloom allocates the extract and two blur targets at the given size.
// Any incomplete framebuffer or failed shader leaves the processor invalid;
// the condition is logged here once and Process degrades silently.
func NewBloom(width, height int) *Bloom {
	b := &Bloom{
		width:      width,
		height:     height,
		Threshold:  1.0,
		Knee:       0.1,
		BlurPasses: 5,
	}
	if width <= 0 || height <= 0 {
		logger.Log.Error("bloom disabled: non-positive size",
			zap.Int("width", width), zap.Int("height", height))
		return b
	}

	for i := range b.textures {
		tex, fb, err := newBloomTarget(width, height)
		if err != nil {
			logger.Log.Error("bloom disabled", zap.Int("target", i), zap.Error(err))
			b.destroyTargets()
			return b
		}
		b.textures[i] = tex
		b.framebuffers[i] = fb
	}

	extract, err := opengl.NewShader("bloom_extract", fullscreenVertexSrc, bloomExtractFragmentSrc)
	if err != nil {
		logger.Log.Error("bloom disabled: extract shader", zap.Error(err))
		b.destroyTargets()
		return b
	}
	blur, err := opengl.NewShader("bloom_blur", fullscreenVertexSrc, bloomBlurFragmentSrc)
	if err != nil {
		logger.Log.Error("bloom disabled: blur shader", zap.Error(err))
		extract.Destroy()
		b.destroyTargets()
		return b
	}

	b.extractShader = extract
	b.blurShader = blur
	b.valid = true
	logger.Log.Info("bloom ready",
		zap.Int("width", width), zap.Int("height", height),
		zap.Int("blurPasses", b.BlurPasses))
	return b
}

func newBloomTarget(width, height int) (*opengl.Texture, *opengl.Framebuffer, error) {
	tex, err := opengl.NewHDRColorTexture(width, height)
	if err != nil {
		return nil, nil, err
	}
	fb, err := opengl.NewFramebuffer(width, height)
	if err != nil {
		tex.Destroy()
		return nil, nil, err
	}
	fb.AttachColorTexture(tex, 0)
	if !fb.IsComplete() {
		tex.Destroy()
		fb.Destroy()
		return nil, nil, errBloomIncomplete
	}
	return tex, fb, nil
}

// IsValid reports whether the processor can run.
func (b *Bloom) IsValid() bool { return b != nil && b.valid }

// Process runs the bright-pass extraction and BlurPasses blur iterations and
// returns the blurred result. The input texture is returned unchanged when
// the processor is invalid. The caller's depth-test enable state is restored
// exactly as found.
func (b *Bloom) Process(hdr *opengl.Texture, renderer *opengl.Renderer, quad *opengl.FullscreenQuad) *opengl.Texture {
	if !b.IsValid() || hdr == nil || renderer == nil || quad == nil {
		return hdr
	}

	depthWasEnabled := renderer.DepthTestEnabled()
	renderer.DisableDepthTest()

	// Bright-pass extraction into the first target.
	b.framebuffers[bloomExtract].Bind()
	renderer.Clear(core.ColorBlack)

	b.extractShader.Bind()
	b.extractShader.SetInt("u_HDRBuffer", 0)
	b.extractShader.SetFloat("u_Threshold", b.Threshold)
	b.extractShader.SetFloat("u_Knee", b.Knee)
	hdr.Bind(0)
	quad.Draw()
	b.framebuffers[bloomExtract].Unbind()

	// Separable blur, alternating between the two blur targets. Each step
	// reads from one target and writes to another, never the same.
	b.blurShader.Bind()
	b.blurShader.SetVec2("u_TextureSize", mgl32.Vec2{float32(b.width), float32(b.height)})

	result := b.textures[bloomExtract]
	for _, step := range blurChain(b.BlurPasses) {
		b.framebuffers[step.Dst].Bind()
		renderer.Clear(core.ColorBlack)
		b.blurShader.SetBool("u_Horizontal", step.Horizontal)
		b.blurShader.SetInt("u_Image", 0)
		b.textures[step.Src].Bind(0)
		quad.Draw()
		b.framebuffers[step.Dst].Unbind()
		result = b.textures[step.Dst]
	}

	if depthWasEnabled {
		renderer.EnableDepthTest()
	}
	return result
}

// blurStep is one half of a blur iteration: read target Src, write target
// Dst, along one axis.
type blurStep struct {
	Src        int
	Dst        int
	Horizontal bool
}

// blurChain schedules n blur iterations over the three targets (bloomExtract,
// bloomBlur1, bloomBlur2). Every iteration blurs horizontally into whichever
// blur target is not the current source, then vertically into the other, so
// no target is ever read and written by the same step.
func blurChain(n int) []blurStep {
	steps := make([]blurStep, 0, 2*n)
	src := bloomExtract
	for i := 0; i < n; i++ {
		intermediate, final := bloomBlur1, bloomBlur2
		if src == bloomBlur1 {
			intermediate, final = bloomBlur2, bloomBlur1
		}
		steps = append(steps,
			blurStep{Src: src, Dst: intermediate, Horizontal: true},
			blurStep{Src: intermediate, Dst: final, Horizontal: false})
		src = final
	}
	return steps
}

func (b *Bloom) destroyTargets() {
	for i := range b.textures {
		if b.textures[i] != nil {
			b.textures[i].Destroy()
			b.textures[i] = nil
		}
		if b.framebuffers[i] != nil {
			b.framebuffers[i].Destroy()
			b.framebuffers[i] = nil
		}
	}
}

// Destroy releases all GPU resources.
func (b *Bloom) Destroy() {
	if b == nil {
		return
	}
	if b.extractShader != nil {
		b.extractShader.Destroy()
		b.extractShader = nil
	}
	if b.blurShader != nil {
		b.blurShader.Destroy()
		b.blurShader = nil
	}
	b.destroyTargets()
	b.valid = false
}
