package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-engine/core"
)

// Texture is a GPU texture object. The target distinguishes 2D textures
// from cubemaps; Bind always uses the target the texture was created with.
type Texture struct {
	handle uint32
	target uint32
	width  int
	height int
}

// NewHDRColorTexture creates an RGB16F texture suitable as an HDR color
// attachment. The contents are undefined until rendered to.
func NewHDRColorTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("hdr color texture: invalid dimensions %dx%d", width, height)
	}
	t := &Texture{target: gl.TEXTURE_2D, width: width, height: height}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F,
		int32(width), int32(height), 0, gl.RGB, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewDepthTexture creates a 24-bit depth texture for shadow mapping.
// Samples outside the shadow frustum read the white border, which the
// shadow comparison treats as fully lit.
func NewDepthTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth texture: invalid dimensions %dx%d", width, height)
	}
	t := &Texture{target: gl.TEXTURE_2D, width: width, height: height}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24,
		int32(width), int32(height), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewDepthStencilTexture creates a combined 24-bit depth / 8-bit stencil
// texture for the HDR framebuffer.
func NewDepthStencilTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth-stencil texture: invalid dimensions %dx%d", width, height)
	}
	t := &Texture{target: gl.TEXTURE_2D, width: width, height: height}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH24_STENCIL8,
		int32(width), int32(height), 0, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewTextureRGBA uploads 8-bit RGBA pixels (row-major, top row first) as a
// mipmapped repeating texture.
func NewTextureRGBA(width, height int, pixels []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rgba texture: invalid dimensions %dx%d", width, height)
	}
	if len(pixels) < width*height*4 {
		return nil, fmt.Errorf("rgba texture: %d pixels bytes for %dx%d (need %d)",
			len(pixels), width, height, width*height*4)
	}
	t := &Texture{target: gl.TEXTURE_2D, width: width, height: height}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewSolidTexture creates a 1x1 texture of the given color. Handy as a
// stand-in albedo map.
func NewSolidTexture(c core.Color) (*Texture, error) {
	clamp := func(v float32) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return NewTextureRGBA(1, 1, []uint8{clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)})
}

// Bind makes the texture active on the given texture unit.
func (t *Texture) Bind(slot int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(t.target, t.handle)
}

func (t *Texture) Unbind() {
	gl.BindTexture(t.target, 0)
}

// Handle returns the raw GL texture name.
func (t *Texture) Handle() uint32 {
	return t.handle
}

// IsCubemap reports whether the texture was created as a cubemap.
func (t *Texture) IsCubemap() bool {
	return t.target == gl.TEXTURE_CUBE_MAP
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Destroy deletes the GL texture.
func (t *Texture) Destroy() {
	if t == nil || t.handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.handle)
	t.handle = 0
}
