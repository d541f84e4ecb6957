package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"pbr-engine/internal/logger"
)

const maxColorAttachments = 8

// Framebuffer is an off-screen render target. It keeps references to the
// textures attached to it so they stay alive as long as the framebuffer,
// but Destroy only deletes the framebuffer object, never the textures.
type Framebuffer struct {
	fbo    uint32
	width  int
	height int

	colorAttachments [maxColorAttachments]*Texture
	depthAttachment  *Texture
}

// NewFramebuffer creates an empty framebuffer. Attach at least one texture
// and check IsComplete before rendering into it.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer: invalid dimensions %dx%d", width, height)
	}
	f := &Framebuffer{width: width, height: height}
	gl.GenFramebuffers(1, &f.fbo)
	return f, nil
}

// Bind makes this framebuffer the render target and sizes the viewport to
// match it.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
}

// Unbind restores the default (window) framebuffer.
func (f *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AttachColorTexture attaches a texture to color slot [0,8).
func (f *Framebuffer) AttachColorTexture(tex *Texture, slot int) {
	if slot < 0 || slot >= maxColorAttachments {
		logger.Log.Error("framebuffer: color slot out of range", zap.Int("slot", slot))
		return
	}
	if tex == nil {
		logger.Log.Error("framebuffer: nil color texture", zap.Int("slot", slot))
		return
	}
	if tex.Width() != f.width || tex.Height() != f.height {
		logger.Log.Warn("framebuffer: color texture size mismatch",
			zap.Int("texWidth", tex.Width()), zap.Int("texHeight", tex.Height()),
			zap.Int("fbWidth", f.width), zap.Int("fbHeight", f.height))
	}
	f.Bind()
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(slot),
		gl.TEXTURE_2D, tex.Handle(), 0)
	f.colorAttachments[slot] = tex
}

// AttachDepthTexture attaches a depth-only texture and disables the color
// draw/read buffers, making this a depth-only target.
func (f *Framebuffer) AttachDepthTexture(tex *Texture) {
	if tex == nil {
		logger.Log.Error("framebuffer: nil depth texture")
		return
	}
	if tex.Width() != f.width || tex.Height() != f.height {
		logger.Log.Warn("framebuffer: depth texture size mismatch",
			zap.Int("texWidth", tex.Width()), zap.Int("texHeight", tex.Height()),
			zap.Int("fbWidth", f.width), zap.Int("fbHeight", f.height))
	}
	f.Bind()
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D, tex.Handle(), 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	f.depthAttachment = tex
}

// AttachDepthStencilTexture attaches a combined depth-stencil texture.
func (f *Framebuffer) AttachDepthStencilTexture(tex *Texture) {
	if tex == nil {
		logger.Log.Error("framebuffer: nil depth-stencil texture")
		return
	}
	if tex.Width() != f.width || tex.Height() != f.height {
		logger.Log.Warn("framebuffer: depth-stencil texture size mismatch",
			zap.Int("texWidth", tex.Width()), zap.Int("texHeight", tex.Height()),
			zap.Int("fbWidth", f.width), zap.Int("fbHeight", f.height))
	}
	f.Bind()
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT,
		gl.TEXTURE_2D, tex.Handle(), 0)
	f.depthAttachment = tex
}

// IsComplete checks framebuffer completeness without disturbing the
// currently bound framebuffer.
func (f *Framebuffer) IsComplete() bool {
	var previous int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &previous)

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(previous))

	if status != gl.FRAMEBUFFER_COMPLETE {
		logger.Log.Error("framebuffer incomplete",
			zap.Uint32("status", status), zap.Uint32("fbo", f.fbo))
		return false
	}
	return true
}

// ColorTexture returns the texture attached to the given color slot, or nil.
func (f *Framebuffer) ColorTexture(slot int) *Texture {
	if slot < 0 || slot >= maxColorAttachments {
		return nil
	}
	return f.colorAttachments[slot]
}

// DepthTexture returns the attached depth or depth-stencil texture, or nil.
func (f *Framebuffer) DepthTexture() *Texture {
	return f.depthAttachment
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Destroy deletes the framebuffer object. Attached textures are owned by
// the caller and must be destroyed separately.
func (f *Framebuffer) Destroy() {
	if f == nil || f.fbo == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &f.fbo)
	f.fbo = 0
}
